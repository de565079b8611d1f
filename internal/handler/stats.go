package handler

import (
	"github.com/Domi31tls/valentine/internal/models"
	"github.com/Domi31tls/valentine/internal/store"
	"github.com/Domi31tls/valentine/internal/util"

	"github.com/gin-gonic/gin"
)

// StatsHandler serves the admin dashboard counters.
type StatsHandler struct {
	Stores *store.Stores
}

func NewStatsHandler(s *store.Stores) *StatsHandler {
	return &StatsHandler{Stores: s}
}

func (h *StatsHandler) Get(c *gin.Context) {
	projectsTotal, err := h.Stores.Projects.Count("")
	if err != nil {
		storeError(c, err)
		return
	}
	projectsPublished, err := h.Stores.Projects.Count(models.StatusPublished)
	if err != nil {
		storeError(c, err)
		return
	}
	retouchesTotal, err := h.Stores.Retouches.Count("")
	if err != nil {
		storeError(c, err)
		return
	}
	retouchesPublished, err := h.Stores.Retouches.Count(models.StatusPublished)
	if err != nil {
		storeError(c, err)
		return
	}
	mediaTotal, err := h.Stores.Media.Count()
	if err != nil {
		storeError(c, err)
		return
	}
	usersTotal, err := h.Stores.Users.Count()
	if err != nil {
		storeError(c, err)
		return
	}

	util.Success(c, util.Response{
		"projects":  util.Response{"total": projectsTotal, "published": projectsPublished},
		"retouches": util.Response{"total": retouchesTotal, "published": retouchesPublished},
		"media":     util.Response{"total": mediaTotal},
		"users":     util.Response{"total": usersTotal},
	})
}
