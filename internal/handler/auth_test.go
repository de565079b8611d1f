package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Domi31tls/valentine/internal/middleware"
	"github.com/Domi31tls/valentine/internal/models"
	"github.com/Domi31tls/valentine/internal/service"

	"github.com/gin-gonic/gin"
)

func authRouter(e *testEnv) *gin.Engine {
	h := NewAuthHandler(e.stores.Users, e.sessions, service.NewEmailService(e.cfg.SMTP, e.cfg.Session.VerificationTTL), e.cfg)
	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.GET("/auth/verify", h.Verify)
	r.POST("/auth/logout", h.Logout)
	r.GET("/me", middleware.RequireAuth(e.sessions), h.Me)
	return r
}

func TestLogin_UnknownEmail(t *testing.T) {
	e := newTestEnv(t)
	r := authRouter(e)

	w, _ := doJSON(t, r, http.MethodPost, "/auth/login", gin.H{"email": "nobody@example.com"})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}

	// no session side effects for unknown emails
	var count int64
	if err := e.stores.DB.Model(&models.Session{}).Count(&count).Error; err != nil {
		t.Fatalf("count sessions: %v", err)
	}
	if count != 0 {
		t.Errorf("%d sessions created for unknown email, want 0", count)
	}
}

func TestLogin_InvalidEmail(t *testing.T) {
	e := newTestEnv(t)
	r := authRouter(e)

	w, _ := doJSON(t, r, http.MethodPost, "/auth/login", gin.H{"email": "not-an-email"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestLogin_KnownEmailCreatesVerification(t *testing.T) {
	e := newTestEnv(t)
	u := &models.User{Email: "v@example.com", Name: "Valentine"}
	if err := e.stores.Users.Create(u); err != nil {
		t.Fatalf("create user: %v", err)
	}
	r := authRouter(e)

	// smtp unconfigured, the service logs the link instead of sending
	w, _ := doJSON(t, r, http.MethodPost, "/auth/login", gin.H{"email": "v@example.com"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var count int64
	if err := e.stores.DB.Model(&models.Session{}).Count(&count).Error; err != nil {
		t.Fatalf("count sessions: %v", err)
	}
	if count != 1 {
		t.Errorf("%d sessions, want the verification session", count)
	}
}

func TestVerify_FullFlow(t *testing.T) {
	e := newTestEnv(t)
	u := &models.User{Email: "v@example.com", Name: "Valentine"}
	if err := e.stores.Users.Create(u); err != nil {
		t.Fatalf("create user: %v", err)
	}
	verif, err := e.sessions.CreateVerification(u.ID)
	if err != nil {
		t.Fatalf("create verification: %v", err)
	}
	r := authRouter(e)

	w, payload := doJSON(t, r, http.MethodGet, "/auth/verify?token="+verif.Token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	data := dataOf(t, payload)
	authToken, _ := data["token"].(string)
	if authToken == "" || authToken == verif.Token {
		t.Fatalf("token = %q, want a fresh authenticated token", authToken)
	}

	// the session cookie is set
	found := false
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == middleware.SessionCookie && cookie.Value == authToken {
			found = true
			if !cookie.HttpOnly {
				t.Error("session cookie must be http-only")
			}
		}
	}
	if !found {
		t.Error("session cookie not set on verify")
	}

	// the magic link is single use
	w, _ = doJSON(t, r, http.MethodGet, "/auth/verify?token="+verif.Token, nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("second verify status = %d, want 401", w.Code)
	}

	// the new token opens the admin surface
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+authToken)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("/me status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), u.ID) {
		t.Errorf("/me body = %s, want the principal", rec.Body.String())
	}
}

func TestVerify_MissingToken(t *testing.T) {
	e := newTestEnv(t)
	r := authRouter(e)

	w, _ := doJSON(t, r, http.MethodGet, "/auth/verify", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestLogout_RevokesSession(t *testing.T) {
	e := newTestEnv(t)
	u := &models.User{Email: "v@example.com"}
	if err := e.stores.Users.Create(u); err != nil {
		t.Fatalf("create user: %v", err)
	}
	sess, err := e.sessions.CreateAuthenticated(u.ID)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	r := authRouter(e)

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer "+sess.Token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("logout status = %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+sess.Token)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("/me after logout status = %d, want 401", rec.Code)
	}
}
