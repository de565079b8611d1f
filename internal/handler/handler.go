package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Domi31tls/valentine/internal/hydrate"
	"github.com/Domi31tls/valentine/internal/store"
	"github.com/Domi31tls/valentine/internal/util"

	"github.com/gin-gonic/gin"
)

// storeError maps store and hydration failures onto API responses.
func storeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "resource not found")
	case errors.Is(err, store.ErrDuplicateKey):
		util.Error(c, http.StatusConflict, util.CodeDuplicate, "duplicate entry")
	case errors.Is(err, hydrate.ErrBrokenReference):
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "broken media reference")
	default:
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "internal server error")
	}
}

func errTooLong(field string, max int) error {
	return fmt.Errorf("%s must be at most %d characters", field, max)
}

func errTooMany(field string, max int) error {
	return fmt.Errorf("%s allows at most %d entries", field, max)
}

func errEmptyID(field string) error {
	return fmt.Errorf("%s id cannot be empty", field)
}

func errInvalidStatus(s string) error {
	return fmt.Errorf("invalid status %q, want published or invisible", s)
}

func errInvalidRole(s string) error {
	return fmt.Errorf("invalid role %q, want admin or editor", s)
}
