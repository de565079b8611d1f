package handler

import (
	"net/http"

	"github.com/Domi31tls/valentine/internal/models"
	"github.com/Domi31tls/valentine/internal/store"
	"github.com/Domi31tls/valentine/internal/util"

	"github.com/gin-gonic/gin"
)

// AboutHandler serves the about page: public read, admin replace.
type AboutHandler struct {
	About *store.AboutStore
}

func NewAboutHandler(about *store.AboutStore) *AboutHandler {
	return &AboutHandler{About: about}
}

func aboutView(content *store.AboutContent) util.Response {
	return util.Response{
		"exergue":    content.Page.Exergue,
		"content":    content.Page.Content,
		"clients":    content.Clients,
		"contacts":   content.Contacts,
		"updated_at": content.Page.UpdatedAt,
	}
}

// Get serves the about page. Anonymous callers only see visible contacts.
func (h *AboutHandler) Get(c *gin.Context) {
	content, err := h.About.Get()
	if err != nil {
		storeError(c, err)
		return
	}

	visible := content.Contacts[:0:0]
	for _, contact := range content.Contacts {
		if contact.IsVisible {
			visible = append(visible, contact)
		}
	}
	content.Contacts = visible

	util.Success(c, aboutView(content))
}

// GetAdmin serves the about page with hidden contacts included.
func (h *AboutHandler) GetAdmin(c *gin.Context) {
	content, err := h.About.Get()
	if err != nil {
		storeError(c, err)
		return
	}
	util.Success(c, aboutView(content))
}

type aboutInput struct {
	Exergue  string           `json:"exergue"`
	Content  string           `json:"content"`
	Clients  []models.Client  `json:"clients"`
	Contacts []models.Contact `json:"contacts"`
}

var contactTypes = map[string]bool{
	models.ContactEmail:     true,
	models.ContactPhone:     true,
	models.ContactInstagram: true,
	models.ContactWebsite:   true,
	models.ContactLinkedIn:  true,
	models.ContactTwitter:   true,
}

// Update replaces the whole page: text, clients and contacts. The admin
// edits the page as one form, so partial variants do not exist.
func (h *AboutHandler) Update(c *gin.Context) {
	var in aboutInput
	if err := c.ShouldBindJSON(&in); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeValidation, "invalid request body")
		return
	}
	for _, contact := range in.Contacts {
		if !contactTypes[contact.Type] {
			util.Error(c, http.StatusBadRequest, util.CodeValidation, "invalid contact type "+contact.Type)
			return
		}
		if contact.Value == "" {
			util.Error(c, http.StatusBadRequest, util.CodeValidation, "contact value is required")
			return
		}
	}
	for _, client := range in.Clients {
		if client.Name == "" {
			util.Error(c, http.StatusBadRequest, util.CodeValidation, "client name is required")
			return
		}
	}

	page := models.AboutPage{ID: 1, Exergue: in.Exergue, Content: in.Content}
	if err := h.About.Replace(page, in.Clients, in.Contacts); err != nil {
		storeError(c, err)
		return
	}

	content, err := h.About.Get()
	if err != nil {
		storeError(c, err)
		return
	}
	util.Success(c, aboutView(content))
}
