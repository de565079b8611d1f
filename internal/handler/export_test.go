package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Domi31tls/valentine/internal/models"
	"github.com/Domi31tls/valentine/internal/util"

	"github.com/gin-gonic/gin"
)

func exportRouter(e *testEnv, user *models.User) *gin.Engine {
	h := NewExportHandler(e.stores, e.cfg)
	r := gin.New()
	r.GET("/export/:resource/link", func(c *gin.Context) {
		c.Set("currentUser", user)
		c.Next()
	}, h.Link)
	// registered where the issued link points
	r.GET("/api/export/download", h.Download)
	return r
}

func TestExportDownload_FormatBoundToToken(t *testing.T) {
	e := newTestEnv(t)
	e.addMedia(t, "m1")
	admin := &models.User{ID: "u1", Email: "v@example.com", Role: models.RoleAdmin}
	r := exportRouter(e, admin)

	w, payload := doJSON(t, r, http.MethodGet, "/export/media/link?format=csv", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("link status = %d, body = %s", w.Code, w.Body.String())
	}
	url, _ := dataOf(t, payload)["url"].(string)
	if url == "" {
		t.Fatal("link response has no url")
	}

	// a conflicting query parameter must not override the signed format
	req := httptest.NewRequest(http.MethodGet, url+"&format=xlsx", nil)
	dw := httptest.NewRecorder()
	r.ServeHTTP(dw, req)

	if dw.Code != http.StatusOK {
		t.Fatalf("download status = %d, body = %s", dw.Code, dw.Body.String())
	}
	if ct := dw.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("Content-Type = %q, want text/csv", ct)
	}
	if !strings.Contains(dw.Body.String(), "m1.jpg") {
		t.Errorf("csv body does not list the media row:\n%s", dw.Body.String())
	}
}

func TestExportDownload_RejectsForgedToken(t *testing.T) {
	e := newTestEnv(t)
	r := exportRouter(e, &models.User{ID: "u1", Role: models.RoleAdmin})

	token, err := util.GenerateDownloadToken("wrong-secret", "u1", "media", "csv", e.cfg.Export.TokenTTL)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	w, _ := doJSON(t, r, http.MethodGet, "/api/export/download?token="+token, nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}
