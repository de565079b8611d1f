package handler

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/Domi31tls/valentine/internal/config"
	"github.com/Domi31tls/valentine/internal/models"
	"github.com/Domi31tls/valentine/internal/store"
	"github.com/Domi31tls/valentine/internal/util"

	"github.com/gin-gonic/gin"
)

// MediaHandler serves the media library: upload, listing, edits and
// reference-checked deletion.
type MediaHandler struct {
	Media     *store.MediaStore
	Projects  *store.ProjectStore
	Retouches *store.RetoucheStore
	UploadCfg config.UploadConfig
	PageSize  int
	MaxPage   int
}

func NewMediaHandler(s *store.Stores, cfg *config.Config) *MediaHandler {
	return &MediaHandler{
		Media:     s.Media,
		Projects:  s.Projects,
		Retouches: s.Retouches,
		UploadCfg: cfg.Upload,
		PageSize:  cfg.App.PageSize,
		MaxPage:   cfg.App.MaxPageSize,
	}
}

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// List serves the media library, newest first.
func (h *MediaHandler) List(c *gin.Context) {
	limit, offset := util.Pagination(c.Query("page"), c.Query("limit"), h.PageSize, h.MaxPage)

	rows, err := h.Media.FindAll(limit, offset)
	if err != nil {
		storeError(c, err)
		return
	}
	total, err := h.Media.Count()
	if err != nil {
		storeError(c, err)
		return
	}

	util.Success(c, util.Response{
		"media":  rows,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}

func (h *MediaHandler) Get(c *gin.Context) {
	m, err := h.Media.FindByID(c.Param("id"))
	if err != nil {
		storeError(c, err)
		return
	}
	util.Success(c, m)
}

// Upload stores the file under the upload directory and records a media row.
// Dimensions are decoded when the format supports it; webp uploads simply
// carry zero dimensions.
func (h *MediaHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeValidation, "file is required")
		return
	}

	maxBytes := int64(h.UploadCfg.MaxFileSizeMB) << 20
	if maxBytes > 0 && fileHeader.Size > maxBytes {
		util.Error(c, http.StatusBadRequest, util.CodeValidation,
			fmt.Sprintf("file exceeds the %d MB limit", h.UploadCfg.MaxFileSizeMB))
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedImageExts[ext] {
		util.Error(c, http.StatusBadRequest, util.CodeValidation, "unsupported file type")
		return
	}

	if err := os.MkdirAll(h.UploadCfg.Dir, 0o755); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to store file")
		return
	}

	id := util.NewID()
	storedName := id + ext
	dst := filepath.Join(h.UploadCfg.Dir, storedName)
	if err := c.SaveUploadedFile(fileHeader, dst); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to store file")
		return
	}

	width, height := imageDimensions(dst)

	mimeType := mime.TypeByExtension(ext)
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	m := &models.Media{
		ID:       id,
		Filename: fileHeader.Filename,
		URL:      "/uploads/" + storedName,
		MimeType: mimeType,
		Size:     fileHeader.Size,
		Width:    width,
		Height:   height,
	}
	if err := h.Media.Create(m); err != nil {
		_ = os.Remove(dst)
		storeError(c, err)
		return
	}

	util.Created(c, m)
}

func imageDimensions(path string) (int, int) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0
	}
	return cfg.Width, cfg.Height
}

// Update edits the descriptive fields. Identity fields are immutable.
func (h *MediaHandler) Update(c *gin.Context) {
	var in struct {
		Filename *string `json:"filename"`
		Caption  *string `json:"caption"`
		Alt      *string `json:"alt"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeValidation, "invalid request body")
		return
	}
	if in.Caption != nil && len(*in.Caption) > util.CaptionMaxLength {
		util.Error(c, http.StatusBadRequest, util.CodeValidation,
			errTooLong("caption", util.CaptionMaxLength).Error())
		return
	}
	if in.Alt != nil && len(*in.Alt) > util.AltMaxLength {
		util.Error(c, http.StatusBadRequest, util.CodeValidation,
			errTooLong("alt", util.AltMaxLength).Error())
		return
	}

	id := c.Param("id")
	if err := h.Media.Update(id, store.MediaUpdate{
		Filename: in.Filename,
		Caption:  in.Caption,
		Alt:      in.Alt,
	}); err != nil {
		storeError(c, err)
		return
	}

	m, err := h.Media.FindByID(id)
	if err != nil {
		storeError(c, err)
		return
	}
	util.Success(c, m)
}

// Delete refuses to remove media still referenced by a project or retouche
// and reports who references it, so the admin can unlink first.
func (h *MediaHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	projects, err := h.Projects.ReferencingMedia(id)
	if err != nil {
		storeError(c, err)
		return
	}
	retouches, err := h.Retouches.ReferencingMedia(id)
	if err != nil {
		storeError(c, err)
		return
	}
	if len(projects) > 0 || len(retouches) > 0 {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"code":    util.CodeConflict,
			"error":   "media is still referenced",
			"references": gin.H{
				"projects":  projects,
				"retouches": retouches,
			},
		})
		return
	}

	m, err := h.Media.FindByID(id)
	if err != nil {
		storeError(c, err)
		return
	}

	deleted, err := h.Media.Delete(id)
	if err != nil {
		storeError(c, err)
		return
	}
	if !deleted {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "media not found")
		return
	}

	// the row is gone either way, a leftover file is just disk noise
	if name := filepath.Base(m.URL); name != "" && name != "." {
		_ = os.Remove(filepath.Join(h.UploadCfg.Dir, name))
	}

	util.Success(c, util.Response{"deleted": true})
}
