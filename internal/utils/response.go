// internal/utils/response.go
package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vendordesk/backend/internal/apperrors"
)

// The admin UI consumes flat JSON bodies: records and arrays directly, and
// {"message": ...} for errors. Backup endpoints use a {"success": ...}
// envelope. These helpers keep the handlers to one line per outcome.

func MessageResponse(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"message": message})
}

func BadRequestResponse(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"message": message})
}

func ValidationErrorResponse(c *gin.Context, fields []apperrors.FieldError) {
	c.JSON(http.StatusBadRequest, gin.H{
		"message": "Validation failed",
		"errors":  fields,
	})
}

func NotFoundResponse(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, gin.H{"message": message})
}

func UnauthorizedResponse(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, gin.H{"message": message})
}

func InternalErrorResponse(c *gin.Context, message string) {
	if message == "" {
		message = "Server error"
	}
	c.JSON(http.StatusInternalServerError, gin.H{"message": message})
}
