package handler

import (
	"testing"
	"time"

	"github.com/Domi31tls/valentine/internal/auth"
	"github.com/Domi31tls/valentine/internal/config"
	"github.com/Domi31tls/valentine/internal/database"
	"github.com/Domi31tls/valentine/internal/hydrate"
	"github.com/Domi31tls/valentine/internal/models"
	"github.com/Domi31tls/valentine/internal/store"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	cfg      *config.Config
	stores   *store.Stores
	sessions *auth.Manager
	hydrator *hydrate.Hydrator
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open in-memory db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	cfg := &config.Config{}
	cfg.Server.SiteURL = "http://localhost:3000"
	cfg.Session = config.SessionConfig{
		VerificationTTL:  15 * time.Minute,
		AuthTTL:          30 * 24 * time.Hour,
		RenewalThreshold: time.Hour,
		RenewalExtension: 24 * time.Hour,
		SweepInterval:    time.Hour,
	}
	cfg.App.PageSize = 42
	cfg.App.MaxPageSize = 100
	cfg.Export.Secret = "test-secret"
	cfg.Export.TokenTTL = 5 * time.Minute
	cfg.Upload.Dir = t.TempDir()
	cfg.Upload.MaxFileSizeMB = 10

	stores := store.New(db)
	return &testEnv{
		cfg:      cfg,
		stores:   stores,
		sessions: auth.NewManager(cfg.Session, stores.Sessions, stores.Users),
		hydrator: hydrate.New(stores.Media),
	}
}

func (e *testEnv) addMedia(t *testing.T, ids ...string) {
	t.Helper()
	for _, id := range ids {
		m := &models.Media{
			ID:       id,
			Filename: id + ".jpg",
			URL:      "/uploads/" + id + ".jpg",
			MimeType: "image/jpeg",
			Size:     1,
		}
		if err := e.stores.Media.Create(m); err != nil {
			t.Fatalf("create media %s: %v", id, err)
		}
	}
}
