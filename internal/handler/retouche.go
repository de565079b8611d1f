package handler

import (
	"net/http"

	"github.com/Domi31tls/valentine/internal/config"
	"github.com/Domi31tls/valentine/internal/hydrate"
	"github.com/Domi31tls/valentine/internal/models"
	"github.com/Domi31tls/valentine/internal/store"
	"github.com/Domi31tls/valentine/internal/util"

	"github.com/gin-gonic/gin"
)

// RetoucheHandler serves admin CRUD and the public before/after listing.
type RetoucheHandler struct {
	Retouches *store.RetoucheStore
	Hydrator  *hydrate.Hydrator
	PageSize  int
	MaxPage   int
}

func NewRetoucheHandler(s *store.Stores, h *hydrate.Hydrator, cfg *config.Config) *RetoucheHandler {
	return &RetoucheHandler{
		Retouches: s.Retouches,
		Hydrator:  h,
		PageSize:  cfg.App.PageSize,
		MaxPage:   cfg.App.MaxPageSize,
	}
}

type retoucheInput struct {
	Title         *string   `json:"title"`
	Status        *string   `json:"status"`
	BeforeImageID *string   `json:"before_image_id"`
	AfterImageID  *string   `json:"after_image_id"`
	SEO           *seoInput `json:"seo"`
}

func (in *retoucheInput) validate() error {
	if in.Title != nil && len(*in.Title) > util.TitleMaxLength {
		return errTooLong("title", util.TitleMaxLength)
	}
	if in.Status != nil && !util.ValidStatus(*in.Status) {
		return errInvalidStatus(*in.Status)
	}
	if in.BeforeImageID != nil && *in.BeforeImageID == "" {
		return errEmptyID("before image")
	}
	if in.AfterImageID != nil && *in.AfterImageID == "" {
		return errEmptyID("after image")
	}
	if in.SEO != nil {
		return in.SEO.validate()
	}
	return nil
}

// retoucheView renders a retouche with both images resolved. A missing image
// row surfaces as a broken reference, never as a partial view.
func retoucheView(r *hydrate.Retouche) (util.Response, error) {
	before, err := r.BeforeImage()
	if err != nil {
		return nil, err
	}
	after, err := r.AfterImage()
	if err != nil {
		return nil, err
	}
	seo, err := r.SEO()
	if err != nil {
		return nil, err
	}
	return util.Response{
		"id":           r.ID,
		"title":        r.Title,
		"status":       r.Status,
		"before_image": before,
		"after_image":  after,
		"seo":          seo,
		"created_at":   r.CreatedAt,
		"updated_at":   r.UpdatedAt,
	}, nil
}

func (h *RetoucheHandler) renderAll(c *gin.Context, rows []models.Retouche) ([]util.Response, bool) {
	views := make([]util.Response, 0, len(rows))
	for i := range rows {
		view, err := retoucheView(h.Hydrator.Retouche(&rows[i]))
		if err != nil {
			storeError(c, err)
			return nil, false
		}
		views = append(views, view)
	}
	return views, true
}

// List serves the admin listing, optionally filtered by status.
func (h *RetoucheHandler) List(c *gin.Context) {
	status := c.Query("status")
	if status != "" && !util.ValidStatus(status) {
		util.Error(c, http.StatusBadRequest, util.CodeValidation, errInvalidStatus(status).Error())
		return
	}
	limit, offset := util.Pagination(c.Query("page"), c.Query("limit"), h.PageSize, h.MaxPage)

	rows, err := h.Retouches.FindAll(store.Filter{Status: status, Limit: limit, Offset: offset})
	if err != nil {
		storeError(c, err)
		return
	}
	total, err := h.Retouches.Count(status)
	if err != nil {
		storeError(c, err)
		return
	}

	views, ok := h.renderAll(c, rows)
	if !ok {
		return
	}
	util.Success(c, util.Response{
		"retouches": views,
		"total":     total,
		"limit":     limit,
		"offset":    offset,
	})
}

// ListPublished serves the public before/after gallery.
func (h *RetoucheHandler) ListPublished(c *gin.Context) {
	limit, offset := util.Pagination(c.Query("page"), c.Query("limit"), h.PageSize, h.MaxPage)

	rows, total, err := h.Retouches.FindPublished(limit, offset)
	if err != nil {
		storeError(c, err)
		return
	}
	views, ok := h.renderAll(c, rows)
	if !ok {
		return
	}
	util.Success(c, util.Response{
		"retouches": views,
		"total":     total,
		"limit":     limit,
		"offset":    offset,
	})
}

// Random serves hero picks for the public landing page.
func (h *RetoucheHandler) Random(c *gin.Context) {
	limit, _ := util.Pagination("", c.Query("count"), 1, 10)

	rows, err := h.Retouches.Random(limit)
	if err != nil {
		storeError(c, err)
		return
	}
	views, ok := h.renderAll(c, rows)
	if !ok {
		return
	}
	util.Success(c, util.Response{"retouches": views})
}

func (h *RetoucheHandler) Get(c *gin.Context) {
	r, err := h.Retouches.FindByID(c.Param("id"))
	if err != nil {
		storeError(c, err)
		return
	}
	view, err := retoucheView(h.Hydrator.Retouche(r))
	if err != nil {
		storeError(c, err)
		return
	}
	util.Success(c, view)
}

// Create requires both image references up front; a retouche without its
// pair makes no sense.
func (h *RetoucheHandler) Create(c *gin.Context) {
	var in retoucheInput
	if err := c.ShouldBindJSON(&in); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeValidation, "invalid request body")
		return
	}
	if in.Title == nil || *in.Title == "" {
		util.Error(c, http.StatusBadRequest, util.CodeValidation, "title is required")
		return
	}
	if in.BeforeImageID == nil || in.AfterImageID == nil {
		util.Error(c, http.StatusBadRequest, util.CodeValidation, "before and after images are required")
		return
	}
	if err := in.validate(); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeValidation, err.Error())
		return
	}

	r := &models.Retouche{
		Title:         *in.Title,
		BeforeImageID: *in.BeforeImageID,
		AfterImageID:  *in.AfterImageID,
	}
	if in.Status != nil {
		r.Status = *in.Status
	}
	if in.SEO != nil {
		r.SEOFields = in.SEO.fields()
	}

	if err := h.Retouches.Create(r); err != nil {
		storeError(c, err)
		return
	}

	view, err := retoucheView(h.Hydrator.Retouche(r))
	if err != nil {
		storeError(c, err)
		return
	}
	util.Created(c, view)
}

// Update applies a partial update and responds with the fresh row, wrapped
// after the write so stale image caches cannot leak into the response.
func (h *RetoucheHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var in retoucheInput
	if err := c.ShouldBindJSON(&in); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeValidation, "invalid request body")
		return
	}
	if in.Title != nil && *in.Title == "" {
		util.Error(c, http.StatusBadRequest, util.CodeValidation, "title cannot be empty")
		return
	}
	if err := in.validate(); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeValidation, err.Error())
		return
	}

	upd := store.RetoucheUpdate{
		Title:         in.Title,
		Status:        in.Status,
		BeforeImageID: in.BeforeImageID,
		AfterImageID:  in.AfterImageID,
	}
	if in.SEO != nil {
		f := in.SEO.fields()
		upd.SEO = &f
	}

	if err := h.Retouches.Update(id, upd); err != nil {
		storeError(c, err)
		return
	}

	r, err := h.Retouches.FindByID(id)
	if err != nil {
		storeError(c, err)
		return
	}
	view, err := retoucheView(h.Hydrator.Retouche(r))
	if err != nil {
		storeError(c, err)
		return
	}
	util.Success(c, view)
}

func (h *RetoucheHandler) Delete(c *gin.Context) {
	deleted, err := h.Retouches.Delete(c.Param("id"))
	if err != nil {
		storeError(c, err)
		return
	}
	if !deleted {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "retouche not found")
		return
	}
	util.Success(c, util.Response{"deleted": true})
}
