package handler

import (
	"net/http"
	"testing"

	"github.com/Domi31tls/valentine/internal/models"

	"github.com/gin-gonic/gin"
)

func legalRouter(e *testEnv) *gin.Engine {
	h := NewLegalHandler(e.stores.Legal)
	r := gin.New()
	r.GET("/legal", h.List)
	r.GET("/legal/:type", h.Get)
	r.GET("/admin/legal", h.ListAdmin)
	r.PUT("/admin/legal/:type", h.Update)
	return r
}

func TestLegalUpdate_UpsertAndGet(t *testing.T) {
	e := newTestEnv(t)
	r := legalRouter(e)

	w, payload := doJSON(t, r, http.MethodPut, "/admin/legal/"+models.LegalMentions, gin.H{
		"title":   "Mentions légales",
		"content": "Site édité par Valentine.",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("update status = %d, body = %s", w.Code, w.Body.String())
	}
	data := dataOf(t, payload)
	if data["is_published"] != true {
		t.Errorf("is_published = %v, want true (seeded default kept)", data["is_published"])
	}

	w, payload = doJSON(t, r, http.MethodGet, "/legal/"+models.LegalMentions, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d, body = %s", w.Code, w.Body.String())
	}
	if got := dataOf(t, payload)["content"]; got != "Site édité par Valentine." {
		t.Errorf("content = %v, want the upserted text", got)
	}
}

func TestLegalUpdate_RequiresTitleAndContent(t *testing.T) {
	e := newTestEnv(t)
	r := legalRouter(e)

	w, _ := doJSON(t, r, http.MethodPut, "/admin/legal/cgu", gin.H{"content": "texte"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing title status = %d, want 400", w.Code)
	}
	w, _ = doJSON(t, r, http.MethodPut, "/admin/legal/cgu", gin.H{"title": "CGU"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing content status = %d, want 400", w.Code)
	}
}

func TestLegalGet_UnpublishedHiddenFromPublic(t *testing.T) {
	e := newTestEnv(t)
	r := legalRouter(e)

	w, _ := doJSON(t, r, http.MethodPut, "/admin/legal/"+models.LegalTerms, gin.H{
		"title":        "CGU",
		"content":      "brouillon",
		"is_published": false,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("update status = %d, body = %s", w.Code, w.Body.String())
	}

	w, _ = doJSON(t, r, http.MethodGet, "/legal/"+models.LegalTerms, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("public get of unpublished page status = %d, want 404", w.Code)
	}

	w, payload := doJSON(t, r, http.MethodGet, "/legal", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d", w.Code)
	}
	pages, _ := payload["data"].([]interface{})
	for _, p := range pages {
		if p.(map[string]interface{})["type"] == models.LegalTerms {
			t.Error("public list still contains the unpublished page")
		}
	}

	w, payload = doJSON(t, r, http.MethodGet, "/admin/legal", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("admin list status = %d", w.Code)
	}
	adminPages, _ := payload["data"].([]interface{})
	found := false
	for _, p := range adminPages {
		if p.(map[string]interface{})["type"] == models.LegalTerms {
			found = true
		}
	}
	if !found {
		t.Error("admin list is missing the unpublished page")
	}
}

func TestLegalUpdate_PreservesPublishedFlagWhenOmitted(t *testing.T) {
	e := newTestEnv(t)
	r := legalRouter(e)

	w, _ := doJSON(t, r, http.MethodPut, "/admin/legal/"+models.LegalPrivacy, gin.H{
		"title":        "Politique de confidentialité",
		"content":      "v1",
		"is_published": false,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("first update status = %d", w.Code)
	}

	w, payload := doJSON(t, r, http.MethodPut, "/admin/legal/"+models.LegalPrivacy, gin.H{
		"title":   "Politique de confidentialité",
		"content": "v2",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("second update status = %d", w.Code)
	}
	if got := dataOf(t, payload)["is_published"]; got != false {
		t.Errorf("is_published = %v, want false preserved across the update", got)
	}
}

func TestLegalDefaults_SeededAtMigration(t *testing.T) {
	e := newTestEnv(t)
	r := legalRouter(e)

	w, payload := doJSON(t, r, http.MethodGet, "/legal", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d", w.Code)
	}
	pages, _ := payload["data"].([]interface{})
	if len(pages) != 3 {
		t.Fatalf("len(pages) = %d, want the 3 seeded defaults", len(pages))
	}
}
