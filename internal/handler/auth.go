package handler

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/Domi31tls/valentine/internal/auth"
	"github.com/Domi31tls/valentine/internal/config"
	"github.com/Domi31tls/valentine/internal/middleware"
	"github.com/Domi31tls/valentine/internal/service"
	"github.com/Domi31tls/valentine/internal/store"
	"github.com/Domi31tls/valentine/internal/util"

	"github.com/gin-gonic/gin"
)

// AuthHandler serves the magic-link flow.
type AuthHandler struct {
	Users    *store.UserStore
	Sessions *auth.Manager
	Email    *service.EmailService
	SiteURL  string
	AuthTTL  time.Duration
}

func NewAuthHandler(users *store.UserStore, sessions *auth.Manager, email *service.EmailService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		Users:    users,
		Sessions: sessions,
		Email:    email,
		SiteURL:  cfg.Server.SiteURL,
		AuthTTL:  cfg.Session.AuthTTL,
	}
}

type loginReq struct {
	Email string `json:"email" binding:"required"`
}

// Login requests a magic link. Only known emails get one; unknown emails
// receive the product's 401 with no session side effects.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeValidation, "email is required")
		return
	}
	if err := util.ValidateEmail(req.Email); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeValidation, err.Error())
		return
	}

	user, err := h.Users.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			util.Error(c, http.StatusUnauthorized, util.CodeUnauthenticated,
				"cet email n'est pas autorisé à accéder à l'administration")
			return
		}
		storeError(c, err)
		return
	}

	h.Sessions.SweepIfDue()

	sess, err := h.Sessions.CreateVerification(user.ID)
	if err != nil {
		storeError(c, err)
		return
	}

	link := fmt.Sprintf("%s/admin/verify?token=%s", h.SiteURL, sess.Token)
	if err := h.Email.SendMagicLink(user.Email, user.Name, link); err != nil {
		// no point keeping a link nobody received
		if revokeErr := h.Sessions.RevokeByID(sess.ID); revokeErr != nil {
			log.Printf("auth: revoke undelivered magic link: %v", revokeErr)
		}
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to send magic link email")
		return
	}

	util.Success(c, util.Response{
		"message": "un lien de connexion vous a été envoyé par email",
	})
}

// Verify consumes the magic-link token and opens an authenticated session.
func (h *AuthHandler) Verify(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		util.Error(c, http.StatusBadRequest, util.CodeValidation, "token is required")
		return
	}

	user, sess, err := h.Sessions.Verify(token)
	if err != nil {
		util.Error(c, http.StatusUnauthorized, util.CodeUnauthenticated, "invalid or expired token")
		return
	}

	h.Email.SendLoginNotification(user.Email, user.Name, time.Now(), c.Request.UserAgent())

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, sess.Token, int(h.AuthTTL.Seconds()), "/", "", false, true)

	util.Success(c, util.Response{
		"user":  user,
		"token": sess.Token,
	})
}

// Logout revokes the presented session, if any. Always succeeds.
func (h *AuthHandler) Logout(c *gin.Context) {
	if token := middleware.ExtractToken(c); token != "" {
		if err := h.Sessions.Revoke(token); err != nil {
			log.Printf("auth: logout revoke: %v", err)
		}
	}
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	util.Success(c, util.Response{"message": "logout successful"})
}

// Me returns the authenticated principal.
func (h *AuthHandler) Me(c *gin.Context) {
	user := middleware.CurrentUser(c)
	sess := middleware.CurrentSession(c)
	if user == nil || sess == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeUnauthenticated, "authentication required")
		return
	}
	util.Success(c, util.Response{
		"user": user,
		"session": gin.H{
			"id":         sess.ID,
			"expires_at": sess.ExpiresAt,
			"created_at": sess.CreatedAt,
		},
	})
}

// RevokeAll revokes every session of the current user, including this one.
func (h *AuthHandler) RevokeAll(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeUnauthenticated, "authentication required")
		return
	}
	n, err := h.Sessions.RevokeAllForUser(user.ID)
	if err != nil {
		storeError(c, err)
		return
	}
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	util.Success(c, util.Response{"revoked": n})
}
