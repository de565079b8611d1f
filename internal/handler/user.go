package handler

import (
	"net/http"

	"github.com/Domi31tls/valentine/internal/auth"
	"github.com/Domi31tls/valentine/internal/middleware"
	"github.com/Domi31tls/valentine/internal/models"
	"github.com/Domi31tls/valentine/internal/store"
	"github.com/Domi31tls/valentine/internal/util"

	"github.com/gin-gonic/gin"
)

// UserHandler serves admin-only user management.
type UserHandler struct {
	Users    *store.UserStore
	Sessions *auth.Manager
}

func NewUserHandler(users *store.UserStore, sessions *auth.Manager) *UserHandler {
	return &UserHandler{Users: users, Sessions: sessions}
}

type userInput struct {
	Email *string `json:"email"`
	Name  *string `json:"name"`
	Role  *string `json:"role"`
}

func (in *userInput) validate() error {
	if in.Email != nil {
		if err := util.ValidateEmail(*in.Email); err != nil {
			return err
		}
	}
	if in.Role != nil && !util.ValidRole(*in.Role) {
		return errInvalidRole(*in.Role)
	}
	return nil
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.Users.FindAll(store.Filter{})
	if err != nil {
		storeError(c, err)
		return
	}
	util.Success(c, util.Response{"users": users})
}

func (h *UserHandler) Get(c *gin.Context) {
	u, err := h.Users.FindByID(c.Param("id"))
	if err != nil {
		storeError(c, err)
		return
	}
	util.Success(c, u)
}

func (h *UserHandler) Create(c *gin.Context) {
	var in userInput
	if err := c.ShouldBindJSON(&in); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeValidation, "invalid request body")
		return
	}
	if in.Email == nil {
		util.Error(c, http.StatusBadRequest, util.CodeValidation, "email is required")
		return
	}
	if err := in.validate(); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeValidation, err.Error())
		return
	}

	u := &models.User{Email: *in.Email}
	if in.Name != nil {
		u.Name = *in.Name
	}
	if in.Role != nil {
		u.Role = *in.Role
	}

	if err := h.Users.Create(u); err != nil {
		storeError(c, err)
		return
	}
	util.Created(c, u)
}

// Update applies a partial update. Demoting the last admin is refused, the
// system must always keep one account able to manage users.
func (h *UserHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var in userInput
	if err := c.ShouldBindJSON(&in); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeValidation, "invalid request body")
		return
	}
	if err := in.validate(); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeValidation, err.Error())
		return
	}

	if in.Role != nil && *in.Role != models.RoleAdmin {
		last, err := h.isLastAdmin(id)
		if err != nil {
			storeError(c, err)
			return
		}
		if last {
			util.Error(c, http.StatusConflict, util.CodeConflict, "cannot demote the last admin")
			return
		}
	}

	if err := h.Users.Update(id, store.UserUpdate{
		Email: in.Email,
		Name:  in.Name,
		Role:  in.Role,
	}); err != nil {
		storeError(c, err)
		return
	}

	u, err := h.Users.FindByID(id)
	if err != nil {
		storeError(c, err)
		return
	}
	util.Success(c, u)
}

// Delete removes a user and revokes every session they hold. The last admin
// and the caller's own account are protected.
func (h *UserHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	if caller := middleware.CurrentUser(c); caller != nil && caller.ID == id {
		util.Error(c, http.StatusConflict, util.CodeConflict, "cannot delete your own account")
		return
	}

	last, err := h.isLastAdmin(id)
	if err != nil {
		storeError(c, err)
		return
	}
	if last {
		util.Error(c, http.StatusConflict, util.CodeConflict, "cannot delete the last admin")
		return
	}

	deleted, err := h.Users.Delete(id)
	if err != nil {
		storeError(c, err)
		return
	}
	if !deleted {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "user not found")
		return
	}

	if _, err := h.Sessions.RevokeAllForUser(id); err != nil {
		storeError(c, err)
		return
	}

	util.Success(c, util.Response{"deleted": true})
}

// isLastAdmin reports whether id names the only remaining admin. An unknown
// id is not an admin at all; the store surfaces the 404 later.
func (h *UserHandler) isLastAdmin(id string) (bool, error) {
	u, err := h.Users.FindByID(id)
	if err != nil {
		return false, err
	}
	if !u.IsAdmin() {
		return false, nil
	}
	n, err := h.Users.CountByRole(models.RoleAdmin)
	if err != nil {
		return false, err
	}
	return n <= 1, nil
}
