package util

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the data payload of a successful API reply.
type Response map[string]interface{}

// Application error codes carried next to the HTTP status.
const (
	CodeOK              = "OK"
	CodeValidation      = "VALIDATION_ERROR"
	CodeNotFound        = "NOT_FOUND"
	CodeUnauthenticated = "UNAUTHORIZED"
	CodeForbidden       = "FORBIDDEN"
	CodeDuplicate       = "DUPLICATE_ENTRY"
	CodeConflict        = "CONFLICT"
	CodeServerErr       = "INTERNAL_ERROR"
)

// Success writes the standard success envelope.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
	})
}

// Created writes the success envelope with a 201.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    data,
	})
}

// Error writes the standard error envelope.
func Error(c *gin.Context, httpStatus int, code, msg string) {
	c.JSON(httpStatus, gin.H{
		"success": false,
		"code":    code,
		"error":   msg,
	})
}
