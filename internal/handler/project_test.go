package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Domi31tls/valentine/internal/models"

	"github.com/gin-gonic/gin"
)

func projectRouter(e *testEnv) *gin.Engine {
	h := NewProjectHandler(e.stores, e.hydrator, e.cfg)
	r := gin.New()
	r.GET("/projects", h.List)
	r.GET("/public/projects", h.ListPublished)
	r.POST("/projects", h.Create)
	r.GET("/projects/:id", h.Get)
	r.PUT("/projects/:id", h.Update)
	r.DELETE("/projects/:id", h.Delete)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var payload map[string]interface{}
	if len(w.Body.Bytes()) > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
			t.Fatalf("decode response %q: %v", w.Body.String(), err)
		}
	}
	return w, payload
}

func dataOf(t *testing.T, payload map[string]interface{}) map[string]interface{} {
	t.Helper()
	data, ok := payload["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("response has no data object: %v", payload)
	}
	return data
}

func TestProjectCreate_HydratesImages(t *testing.T) {
	e := newTestEnv(t)
	e.addMedia(t, "m1", "m2")
	r := projectRouter(e)

	w, payload := doJSON(t, r, http.MethodPost, "/projects", gin.H{
		"title":  "Mariage",
		"images": []string{"m2", "m1"},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	data := dataOf(t, payload)
	images, ok := data["images"].([]interface{})
	if !ok || len(images) != 2 {
		t.Fatalf("images = %v, want 2 hydrated rows", data["images"])
	}
	first := images[0].(map[string]interface{})
	if first["id"] != "m2" {
		t.Errorf("images[0].id = %v, want m2 (order preserved)", first["id"])
	}
	if data["status"] != models.StatusInvisible {
		t.Errorf("status = %v, want invisible default", data["status"])
	}
}

func TestProjectCreate_RequiresTitle(t *testing.T) {
	e := newTestEnv(t)
	r := projectRouter(e)

	w, _ := doJSON(t, r, http.MethodPost, "/projects", gin.H{"description": "no title"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestProjectUpdate_FreshImagesInResponse(t *testing.T) {
	e := newTestEnv(t)
	e.addMedia(t, "m1", "m2", "m3")
	r := projectRouter(e)

	_, payload := doJSON(t, r, http.MethodPost, "/projects", gin.H{
		"title":  "Portraits",
		"images": []string{"m1", "m2", "m3"},
	})
	id := dataOf(t, payload)["id"].(string)

	w, payload := doJSON(t, r, http.MethodPut, "/projects/"+id, gin.H{
		"images": []string{"m2"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	data := dataOf(t, payload)
	images := data["images"].([]interface{})
	if len(images) != 1 {
		t.Fatalf("images = %v, want exactly the replacement list", images)
	}
	if images[0].(map[string]interface{})["id"] != "m2" {
		t.Errorf("images[0].id = %v, want m2", images[0])
	}
	if data["title"] != "Portraits" {
		t.Errorf("title = %v, omitted field must survive", data["title"])
	}
}

func TestProjectUpdate_UnknownID(t *testing.T) {
	e := newTestEnv(t)
	r := projectRouter(e)

	w, _ := doJSON(t, r, http.MethodPut, "/projects/missing", gin.H{"title": "x"})
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestProjectUpdate_RejectsBadStatus(t *testing.T) {
	e := newTestEnv(t)
	r := projectRouter(e)

	_, payload := doJSON(t, r, http.MethodPost, "/projects", gin.H{"title": "p"})
	id := dataOf(t, payload)["id"].(string)

	w, _ := doJSON(t, r, http.MethodPut, "/projects/"+id, gin.H{"status": "archived"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestProjectListPublished_FiltersHidden(t *testing.T) {
	e := newTestEnv(t)
	e.addMedia(t, "m1")
	r := projectRouter(e)

	for _, body := range []gin.H{
		{"title": "visible", "status": "published", "images": []string{"m1"}},
		{"title": "no images", "status": "published"},
		{"title": "hidden", "status": "invisible", "images": []string{"m1"}},
	} {
		if w, _ := doJSON(t, r, http.MethodPost, "/projects", body); w.Code != http.StatusCreated {
			t.Fatalf("seed create status = %d", w.Code)
		}
	}

	w, payload := doJSON(t, r, http.MethodGet, "/public/projects", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	data := dataOf(t, payload)
	projects := data["projects"].([]interface{})
	if len(projects) != 1 {
		t.Fatalf("got %d public projects, want 1", len(projects))
	}
	if projects[0].(map[string]interface{})["title"] != "visible" {
		t.Errorf("public project = %v, want the visible one", projects[0])
	}
	if data["total"].(float64) != 1 {
		t.Errorf("total = %v, want 1", data["total"])
	}
}

func TestProjectDelete(t *testing.T) {
	e := newTestEnv(t)
	r := projectRouter(e)

	_, payload := doJSON(t, r, http.MethodPost, "/projects", gin.H{"title": "gone"})
	id := dataOf(t, payload)["id"].(string)

	w, _ := doJSON(t, r, http.MethodDelete, "/projects/"+id, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete status = %d", w.Code)
	}
	w, _ = doJSON(t, r, http.MethodDelete, "/projects/"+id, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", w.Code)
	}
}
