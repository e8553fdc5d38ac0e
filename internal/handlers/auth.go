// internal/handlers/auth.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/vendordesk/backend/internal/apperrors"
	"github.com/vendordesk/backend/internal/services"
	"github.com/vendordesk/backend/internal/utils"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// POST /auth/admin
//
// Failed logins answer 200 with success=false rather than an HTTP error
// status. The admin UI branches on the success flag; keep the contract.
func (h *AuthHandler) AdminLogin(c *gin.Context) {
	var req services.AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "Invalid credentials"})
		return
	}

	token, err := h.authService.Login(&req)
	if err != nil {
		if !errors.Is(err, apperrors.ErrInvalidCredentials) {
			logrus.WithError(err).Error("Admin login failed")
			utils.InternalErrorResponse(c, "")
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "Invalid credentials"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful",
		"token":   token,
	})
}
