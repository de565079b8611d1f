package models

import "time"

// AboutPage is a singleton row (id 1) holding the about page text.
type AboutPage struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	Exergue   string    `gorm:"size:1000" json:"exergue"`
	Content   string    `gorm:"type:text" json:"content"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Client is a past client shown on the about page.
type Client struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	Name       string    `gorm:"size:100;not null" json:"name"`
	LogoURL    string    `gorm:"size:512" json:"logo_url,omitempty"`
	WebsiteURL string    `gorm:"size:512" json:"website_url,omitempty"`
	OrderIndex int       `gorm:"index;not null;default:0" json:"order_index"`
	CreatedAt  time.Time `json:"created_at"`
}

// Contact kinds shown on the about page.
const (
	ContactEmail     = "email"
	ContactPhone     = "phone"
	ContactInstagram = "instagram"
	ContactWebsite   = "website"
	ContactLinkedIn  = "linkedin"
	ContactTwitter   = "twitter"
)

// Contact is a contact method shown on the about page.
type Contact struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	Type       string    `gorm:"size:16;not null" json:"type"`
	Label      string    `gorm:"size:100" json:"label"`
	Value      string    `gorm:"size:255;not null" json:"value"`
	IsVisible  bool      `gorm:"not null;default:true" json:"is_visible"`
	OrderIndex int       `gorm:"index;not null;default:0" json:"order_index"`
	CreatedAt  time.Time `json:"created_at"`
}
