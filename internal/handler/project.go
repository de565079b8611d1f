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

// ProjectHandler serves admin CRUD and the public portfolio listing.
type ProjectHandler struct {
	Projects *store.ProjectStore
	Media    *store.MediaStore
	Hydrator *hydrate.Hydrator
	PageSize int
	MaxPage  int
}

func NewProjectHandler(s *store.Stores, h *hydrate.Hydrator, cfg *config.Config) *ProjectHandler {
	return &ProjectHandler{
		Projects: s.Projects,
		Media:    s.Media,
		Hydrator: h,
		PageSize: cfg.App.PageSize,
		MaxPage:  cfg.App.MaxPageSize,
	}
}

// seoInput is the SEO sub-record as the admin edits it: keywords as a list,
// the open-graph image as a media id.
type seoInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords"`
	OGImageID   string   `json:"og_image_id"`
}

func (in *seoInput) fields() models.SEOFields {
	var f models.SEOFields
	f.SEOTitle = in.Title
	f.SEODescription = in.Description
	f.SEOOGImageID = in.OGImageID
	f.SetKeywords(in.Keywords)
	return f
}

func (in *seoInput) validate() error {
	if len(in.Title) > util.SEOTitleMaxLength {
		return errTooLong("seo title", util.SEOTitleMaxLength)
	}
	if len(in.Description) > util.SEODescMaxLength {
		return errTooLong("seo description", util.SEODescMaxLength)
	}
	if len(in.Keywords) > util.SEOKeywordsMaxCount {
		return errTooMany("seo keywords", util.SEOKeywordsMaxCount)
	}
	return nil
}

// projectInput carries create and partial-update payloads; nil means "leave
// untouched" on update.
type projectInput struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Status      *string   `json:"status"`
	IsDraft     *bool     `json:"is_draft"`
	Images      *[]string `json:"images"`
	SEO         *seoInput `json:"seo"`
}

func (in *projectInput) validate() error {
	if in.Title != nil && len(*in.Title) > util.TitleMaxLength {
		return errTooLong("title", util.TitleMaxLength)
	}
	if in.Description != nil && len(*in.Description) > util.DescriptionMaxLength {
		return errTooLong("description", util.DescriptionMaxLength)
	}
	if in.Status != nil && !util.ValidStatus(*in.Status) {
		return errInvalidStatus(*in.Status)
	}
	if in.Images != nil {
		if len(*in.Images) > util.MaxProjectImages {
			return errTooMany("images", util.MaxProjectImages)
		}
		for _, id := range *in.Images {
			if id == "" {
				return errEmptyID("image")
			}
		}
	}
	if in.SEO != nil {
		return in.SEO.validate()
	}
	return nil
}

// projectView renders a project with its relations resolved. Unresolvable
// image ids have already been dropped by hydration.
func projectView(p *hydrate.Project) (util.Response, error) {
	images, err := p.Images()
	if err != nil {
		return nil, err
	}
	seo, err := p.SEO()
	if err != nil {
		return nil, err
	}
	return util.Response{
		"id":          p.ID,
		"title":       p.Title,
		"slug":        p.Slug(),
		"description": p.Description,
		"status":      p.Status,
		"is_draft":    p.IsDraft,
		"images":      images,
		"seo":         seo,
		"created_at":  p.CreatedAt,
		"updated_at":  p.UpdatedAt,
	}, nil
}

// List serves the admin listing: every project, optionally filtered by
// status, newest first.
func (h *ProjectHandler) List(c *gin.Context) {
	status := c.Query("status")
	if status != "" && !util.ValidStatus(status) {
		util.Error(c, http.StatusBadRequest, util.CodeValidation, errInvalidStatus(status).Error())
		return
	}
	limit, offset := util.Pagination(c.Query("page"), c.Query("limit"), h.PageSize, h.MaxPage)

	rows, err := h.Projects.FindAll(store.Filter{Status: status, Limit: limit, Offset: offset})
	if err != nil {
		storeError(c, err)
		return
	}
	total, err := h.Projects.Count(status)
	if err != nil {
		storeError(c, err)
		return
	}

	views := make([]util.Response, 0, len(rows))
	for i := range rows {
		view, err := projectView(h.Hydrator.Project(&rows[i]))
		if err != nil {
			storeError(c, err)
			return
		}
		views = append(views, view)
	}

	util.Success(c, util.Response{
		"projects": views,
		"total":    total,
		"limit":    limit,
		"offset":   offset,
	})
}

// ListPublished serves the public portfolio: published, non-draft projects
// that have at least one image.
func (h *ProjectHandler) ListPublished(c *gin.Context) {
	limit, offset := util.Pagination(c.Query("page"), c.Query("limit"), h.PageSize, h.MaxPage)

	rows, total, err := h.Projects.FindPublishedWithImages(limit, offset)
	if err != nil {
		storeError(c, err)
		return
	}

	views := make([]util.Response, 0, len(rows))
	for i := range rows {
		view, err := projectView(h.Hydrator.Project(&rows[i]))
		if err != nil {
			storeError(c, err)
			return
		}
		views = append(views, view)
	}

	util.Success(c, util.Response{
		"projects": views,
		"total":    total,
		"limit":    limit,
		"offset":   offset,
	})
}

// Random serves hero picks for the public landing page.
func (h *ProjectHandler) Random(c *gin.Context) {
	limit, _ := util.Pagination("", c.Query("count"), 1, 10)

	rows, err := h.Projects.Random(limit)
	if err != nil {
		storeError(c, err)
		return
	}

	views := make([]util.Response, 0, len(rows))
	for i := range rows {
		view, err := projectView(h.Hydrator.Project(&rows[i]))
		if err != nil {
			storeError(c, err)
			return
		}
		views = append(views, view)
	}
	util.Success(c, util.Response{"projects": views})
}

func (h *ProjectHandler) Get(c *gin.Context) {
	p, err := h.Projects.FindByID(c.Param("id"))
	if err != nil {
		storeError(c, err)
		return
	}
	view, err := projectView(h.Hydrator.Project(p))
	if err != nil {
		storeError(c, err)
		return
	}
	util.Success(c, view)
}

func (h *ProjectHandler) Create(c *gin.Context) {
	var in projectInput
	if err := c.ShouldBindJSON(&in); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeValidation, "invalid request body")
		return
	}
	if in.Title == nil || *in.Title == "" {
		util.Error(c, http.StatusBadRequest, util.CodeValidation, "title is required")
		return
	}
	if err := in.validate(); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeValidation, err.Error())
		return
	}

	p := &models.Project{Title: *in.Title}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Status != nil {
		p.Status = *in.Status
	}
	if in.IsDraft != nil {
		p.IsDraft = *in.IsDraft
	}
	if in.Images != nil {
		p.ImagesJSON = models.EncodeImageIDs(*in.Images)
	}
	if in.SEO != nil {
		p.SEOFields = in.SEO.fields()
	}

	if err := h.Projects.Create(p); err != nil {
		storeError(c, err)
		return
	}

	view, err := projectView(h.Hydrator.Project(p))
	if err != nil {
		storeError(c, err)
		return
	}
	util.Created(c, view)
}

// Update applies a partial update and responds with the fresh row. The
// hydration wrapper is built after the write, so the relation caches can
// never serve the pre-update image list.
func (h *ProjectHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var in projectInput
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

	upd := store.ProjectUpdate{
		Title:       in.Title,
		Description: in.Description,
		Status:      in.Status,
		IsDraft:     in.IsDraft,
		ImageIDs:    in.Images,
	}
	if in.SEO != nil {
		f := in.SEO.fields()
		upd.SEO = &f
	}

	if err := h.Projects.Update(id, upd); err != nil {
		storeError(c, err)
		return
	}

	p, err := h.Projects.FindByID(id)
	if err != nil {
		storeError(c, err)
		return
	}
	view, err := projectView(h.Hydrator.Project(p))
	if err != nil {
		storeError(c, err)
		return
	}
	util.Success(c, view)
}

// Delete removes a project. Media rows it referenced are left alone.
func (h *ProjectHandler) Delete(c *gin.Context) {
	deleted, err := h.Projects.Delete(c.Param("id"))
	if err != nil {
		storeError(c, err)
		return
	}
	if !deleted {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "project not found")
		return
	}
	util.Success(c, util.Response{"deleted": true})
}
