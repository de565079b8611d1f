package store

import "gorm.io/gorm"

// Filter narrows listing queries. A zero Filter means everything, newest
// first.
type Filter struct {
	Status string
	Limit  int
	Offset int
}

func (f Filter) apply(tx *gorm.DB) *gorm.DB {
	if f.Status != "" {
		tx = tx.Where("status = ?", f.Status)
	}
	if f.Limit > 0 {
		tx = tx.Limit(f.Limit)
	}
	if f.Offset > 0 {
		tx = tx.Offset(f.Offset)
	}
	return tx.Order("created_at DESC")
}

// Stores bundles one store per entity over a shared database handle. The
// handle is injected once at startup; nothing in this package holds global
// state.
type Stores struct {
	DB        *gorm.DB
	Users     *UserStore
	Sessions  *SessionStore
	Media     *MediaStore
	Projects  *ProjectStore
	Retouches *RetoucheStore
	About     *AboutStore
	Settings  *SettingsStore
	Legal     *LegalStore
}

// New builds the store set over db.
func New(db *gorm.DB) *Stores {
	return &Stores{
		DB:        db,
		Users:     &UserStore{db: db},
		Sessions:  &SessionStore{db: db},
		Media:     &MediaStore{db: db},
		Projects:  &ProjectStore{db: db},
		Retouches: &RetoucheStore{db: db},
		About:     &AboutStore{db: db},
		Settings:  &SettingsStore{db: db},
		Legal:     &LegalStore{db: db},
	}
}
