package handler

import (
	"encoding/csv"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/Domi31tls/valentine/internal/config"
	"github.com/Domi31tls/valentine/internal/middleware"
	"github.com/Domi31tls/valentine/internal/store"
	"github.com/Domi31tls/valentine/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ExportHandler produces content inventories as CSV or XLSX. Downloads are
// plain GETs opened by the browser, so the link carries a short-lived signed
// token instead of the session header.
type ExportHandler struct {
	Stores   *store.Stores
	Secret   string
	TokenTTL time.Duration
}

func NewExportHandler(s *store.Stores, cfg *config.Config) *ExportHandler {
	return &ExportHandler{
		Stores:   s,
		Secret:   cfg.Export.Secret,
		TokenTTL: cfg.Export.TokenTTL,
	}
}

var exportResources = map[string]bool{
	"media":     true,
	"projects":  true,
	"retouches": true,
}

// Link issues a signed download URL for one resource.
func (h *ExportHandler) Link(c *gin.Context) {
	resource := c.Param("resource")
	if !exportResources[resource] {
		util.Error(c, http.StatusBadRequest, util.CodeValidation, "unknown export resource "+resource)
		return
	}

	user := middleware.CurrentUser(c)
	if user == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeUnauthenticated, "authentication required")
		return
	}

	format := c.DefaultQuery("format", "xlsx")
	if format != "xlsx" && format != "csv" {
		util.Error(c, http.StatusBadRequest, util.CodeValidation, "format must be xlsx or csv")
		return
	}

	token, err := util.GenerateDownloadToken(h.Secret, user.ID, resource, format, h.TokenTTL)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to sign download token")
		return
	}

	util.Success(c, util.Response{
		"url":        "/api/export/download?token=" + token,
		"expires_in": int(h.TokenTTL.Seconds()),
	})
}

// Download validates the signed token and streams the inventory.
func (h *ExportHandler) Download(c *gin.Context) {
	claims, err := util.ParseDownloadToken(h.Secret, c.Query("token"))
	if err != nil {
		util.Error(c, http.StatusUnauthorized, util.CodeUnauthenticated, "invalid or expired download token")
		return
	}
	if !exportResources[claims.Resource] {
		util.Error(c, http.StatusBadRequest, util.CodeValidation, "unknown export resource")
		return
	}

	header, rows, err := h.inventory(claims.Resource)
	if err != nil {
		storeError(c, err)
		return
	}

	// the format was fixed when the link was signed, query params are ignored
	name := fmt.Sprintf("%s-%s", claims.Resource, time.Now().Format("2006-01-02"))
	if claims.Format == "csv" {
		h.writeCSV(c, name, header, rows)
		return
	}
	h.writeXLSX(c, name, claims.Resource, header, rows)
}

func (h *ExportHandler) inventory(resource string) ([]string, [][]string, error) {
	switch resource {
	case "media":
		media, err := h.Stores.Media.FindAll(0, 0)
		if err != nil {
			return nil, nil, err
		}
		header := []string{"ID", "Filename", "URL", "Mime Type", "Size", "Width", "Height", "Created"}
		rows := make([][]string, 0, len(media))
		for _, m := range media {
			rows = append(rows, []string{
				m.ID, m.Filename, m.URL, m.MimeType,
				strconv.FormatInt(m.Size, 10),
				strconv.Itoa(m.Width), strconv.Itoa(m.Height),
				m.CreatedAt.Format(time.RFC3339),
			})
		}
		return header, rows, nil

	case "projects":
		projects, err := h.Stores.Projects.FindAll(store.Filter{})
		if err != nil {
			return nil, nil, err
		}
		header := []string{"ID", "Title", "Slug", "Status", "Draft", "Images", "Created", "Updated"}
		rows := make([][]string, 0, len(projects))
		for i := range projects {
			p := &projects[i]
			rows = append(rows, []string{
				p.ID, p.Title, p.Slug(), p.Status,
				strconv.FormatBool(p.IsDraft),
				strconv.Itoa(len(p.ImageIDs())),
				p.CreatedAt.Format(time.RFC3339),
				p.UpdatedAt.Format(time.RFC3339),
			})
		}
		return header, rows, nil

	case "retouches":
		retouches, err := h.Stores.Retouches.FindAll(store.Filter{})
		if err != nil {
			return nil, nil, err
		}
		header := []string{"ID", "Title", "Status", "Before Image", "After Image", "Created", "Updated"}
		rows := make([][]string, 0, len(retouches))
		for _, r := range retouches {
			rows = append(rows, []string{
				r.ID, r.Title, r.Status, r.BeforeImageID, r.AfterImageID,
				r.CreatedAt.Format(time.RFC3339),
				r.UpdatedAt.Format(time.RFC3339),
			})
		}
		return header, rows, nil
	}
	return nil, nil, store.ErrNotFound
}

func (h *ExportHandler) writeCSV(c *gin.Context, name string, header []string, rows [][]string) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.csv", name))
	c.Header("Content-Type", "text/csv; charset=utf-8")

	w := csv.NewWriter(c.Writer)
	_ = w.Write(header)
	for _, row := range rows {
		_ = w.Write(row)
	}
	w.Flush()
}

func (h *ExportHandler) writeXLSX(c *gin.Context, name, sheet string, header []string, rows [][]string) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheet)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to build workbook")
		return
	}
	f.SetActiveSheet(index)
	_ = f.DeleteSheet("Sheet1")

	for col, title := range header {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		_ = f.SetCellValue(sheet, cell, title)
	}
	for i, row := range rows {
		for col, value := range row {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			_ = f.SetCellValue(sheet, cell, value)
		}
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.xlsx", name))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		// headers are already out, nothing left to do but log
		log.Printf("export: write workbook: %v", err)
	}
}
