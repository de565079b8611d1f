package handler

import (
	"net/http"
	"testing"

	"github.com/Domi31tls/valentine/internal/models"
	"github.com/Domi31tls/valentine/internal/store"

	"github.com/gin-gonic/gin"
)

func mediaRouter(e *testEnv) *gin.Engine {
	h := NewMediaHandler(e.stores, e.cfg)
	r := gin.New()
	r.GET("/media", h.List)
	r.PUT("/media/:id", h.Update)
	r.DELETE("/media/:id", h.Delete)
	return r
}

func TestMediaDelete_RefusedWhileReferenced(t *testing.T) {
	e := newTestEnv(t)
	e.addMedia(t, "m1")
	p := &models.Project{Title: "uses m1", ImagesJSON: `["m1"]`}
	if err := e.stores.Projects.Create(p); err != nil {
		t.Fatalf("create project: %v", err)
	}
	r := mediaRouter(e)

	w, payload := doJSON(t, r, http.MethodDelete, "/media/m1", nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409 while referenced", w.Code)
	}
	refs, ok := payload["references"].(map[string]interface{})
	if !ok {
		t.Fatalf("response lacks references: %v", payload)
	}
	projects := refs["projects"].([]interface{})
	if len(projects) != 1 || projects[0] != p.ID {
		t.Errorf("references.projects = %v, want [%s]", projects, p.ID)
	}
}

func TestMediaDelete_AfterUnlink(t *testing.T) {
	e := newTestEnv(t)
	e.addMedia(t, "m1")
	p := &models.Project{Title: "uses m1", ImagesJSON: `["m1"]`}
	if err := e.stores.Projects.Create(p); err != nil {
		t.Fatalf("create project: %v", err)
	}
	r := mediaRouter(e)

	empty := []string{}
	if err := e.stores.Projects.Update(p.ID, store.ProjectUpdate{ImageIDs: &empty}); err != nil {
		t.Fatalf("unlink: %v", err)
	}

	w, _ := doJSON(t, r, http.MethodDelete, "/media/m1", nil)
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 after unlink", w.Code)
	}
}

func TestMediaDelete_RetoucheReference(t *testing.T) {
	e := newTestEnv(t)
	e.addMedia(t, "b1", "a1")
	rt := &models.Retouche{Title: "r", BeforeImageID: "b1", AfterImageID: "a1"}
	if err := e.stores.Retouches.Create(rt); err != nil {
		t.Fatalf("create retouche: %v", err)
	}
	r := mediaRouter(e)

	w, _ := doJSON(t, r, http.MethodDelete, "/media/b1", nil)
	if w.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409 for retouche reference", w.Code)
	}
}

func TestMediaUpdate_CaptionTooLong(t *testing.T) {
	e := newTestEnv(t)
	e.addMedia(t, "m1")
	r := mediaRouter(e)

	long := make([]byte, 501)
	for i := range long {
		long[i] = 'a'
	}
	w, _ := doJSON(t, r, http.MethodPut, "/media/m1", gin.H{"caption": string(long)})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}
