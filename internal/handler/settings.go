package handler

import (
	"net/http"
	"strings"

	"github.com/Domi31tls/valentine/internal/models"
	"github.com/Domi31tls/valentine/internal/store"
	"github.com/Domi31tls/valentine/internal/util"

	"github.com/gin-gonic/gin"
)

// SettingsHandler serves the site-wide SEO settings and the robots.txt
// derived from them.
type SettingsHandler struct {
	Settings *store.SettingsStore
}

func NewSettingsHandler(settings *store.SettingsStore) *SettingsHandler {
	return &SettingsHandler{Settings: settings}
}

func (h *SettingsHandler) Get(c *gin.Context) {
	s, err := h.Settings.Get()
	if err != nil {
		storeError(c, err)
		return
	}
	util.Success(c, s)
}

var robotsModes = map[string]bool{
	models.RobotsAllowAll:     true,
	models.RobotsProtectAdmin: true,
	models.RobotsBlockAll:     true,
}

// Update overwrites the settings row. The admin edits the whole form at
// once.
func (h *SettingsHandler) Update(c *gin.Context) {
	var in models.SEOSettings
	if err := c.ShouldBindJSON(&in); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeValidation, "invalid request body")
		return
	}
	if in.ContactEmail != "" {
		if err := util.ValidateEmail(in.ContactEmail); err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeValidation, err.Error())
			return
		}
	}
	if in.RobotsMode == "" {
		in.RobotsMode = models.RobotsProtectAdmin
	}
	if !robotsModes[in.RobotsMode] {
		util.Error(c, http.StatusBadRequest, util.CodeValidation, "invalid robots mode "+in.RobotsMode)
		return
	}
	if in.DefaultLanguage == "" {
		in.DefaultLanguage = "fr"
	}

	if err := h.Settings.Update(&in); err != nil {
		storeError(c, err)
		return
	}

	s, err := h.Settings.Get()
	if err != nil {
		storeError(c, err)
		return
	}
	util.Success(c, s)
}

// RobotsTXT renders robots.txt from the configured robots mode.
func (h *SettingsHandler) RobotsTXT(c *gin.Context) {
	s, err := h.Settings.Get()
	if err != nil {
		storeError(c, err)
		return
	}

	var b strings.Builder
	b.WriteString("User-agent: *\n")
	switch s.RobotsMode {
	case models.RobotsBlockAll:
		b.WriteString("Disallow: /\n")
	case models.RobotsAllowAll:
		b.WriteString("Allow: /\n")
	default:
		b.WriteString("Disallow: /admin\n")
		b.WriteString("Disallow: /api\n")
	}

	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(b.String()))
}
