package handler

import (
	"errors"
	"net/http"

	"github.com/Domi31tls/valentine/internal/models"
	"github.com/Domi31tls/valentine/internal/store"
	"github.com/Domi31tls/valentine/internal/util"

	"github.com/gin-gonic/gin"
)

// LegalHandler serves the static legal pages: public reads limited to
// published pages, admin upsert keyed by the type slug.
type LegalHandler struct {
	Legal *store.LegalStore
}

func NewLegalHandler(legal *store.LegalStore) *LegalHandler {
	return &LegalHandler{Legal: legal}
}

// List serves the published legal pages.
func (h *LegalHandler) List(c *gin.Context) {
	pages, err := h.Legal.FindPublished()
	if err != nil {
		storeError(c, err)
		return
	}
	util.Success(c, pages)
}

// Get serves one legal page by its type slug. Unpublished pages stay
// invisible to anonymous callers.
func (h *LegalHandler) Get(c *gin.Context) {
	page, err := h.Legal.FindByType(c.Param("type"))
	if err != nil {
		storeError(c, err)
		return
	}
	if !page.IsPublished {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "resource not found")
		return
	}
	util.Success(c, page)
}

// ListAdmin serves every legal page, drafts included.
func (h *LegalHandler) ListAdmin(c *gin.Context) {
	pages, err := h.Legal.FindAll()
	if err != nil {
		storeError(c, err)
		return
	}
	util.Success(c, pages)
}

type legalInput struct {
	Title       string `json:"title"`
	Content     string `json:"content"`
	IsPublished *bool  `json:"is_published"`
}

// Update upserts the page for the type slug in the URL. Omitting
// is_published keeps the stored value, and defaults to published when the
// page is new.
func (h *LegalHandler) Update(c *gin.Context) {
	pageType := c.Param("type")

	var in legalInput
	if err := c.ShouldBindJSON(&in); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeValidation, "invalid request body")
		return
	}
	if in.Title == "" {
		util.Error(c, http.StatusBadRequest, util.CodeValidation, "title is required")
		return
	}
	if in.Content == "" {
		util.Error(c, http.StatusBadRequest, util.CodeValidation, "content is required")
		return
	}
	if len(in.Title) > util.TitleMaxLength {
		util.Error(c, http.StatusBadRequest, util.CodeValidation, errTooLong("title", util.TitleMaxLength).Error())
		return
	}

	published := true
	if existing, err := h.Legal.FindByType(pageType); err == nil {
		published = existing.IsPublished
	} else if !errors.Is(err, store.ErrNotFound) {
		storeError(c, err)
		return
	}
	if in.IsPublished != nil {
		published = *in.IsPublished
	}

	page := models.LegalPage{
		Type:        pageType,
		Title:       in.Title,
		Content:     in.Content,
		IsPublished: published,
	}
	if err := h.Legal.Upsert(&page); err != nil {
		storeError(c, err)
		return
	}
	util.Success(c, page)
}
