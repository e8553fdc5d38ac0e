// internal/services/auth_service.go
package services

import (
	"crypto/subtle"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/vendordesk/backend/internal/apperrors"
	"github.com/vendordesk/backend/internal/config"
	"github.com/vendordesk/backend/internal/utils"
)

// AuthService checks the single static admin credential pair and issues the
// bearer token the admin UI stores client-side. There is no user table and no
// session state: token verification is fully stateless.
type AuthService struct {
	cfg *config.Config
}

type AdminLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func NewAuthService(cfg *config.Config) *AuthService {
	return &AuthService{cfg: cfg}
}

// Login returns a signed token on success and ErrInvalidCredentials on any
// mismatch. The configured password may be a bcrypt hash or plaintext.
func (s *AuthService) Login(req *AdminLoginRequest) (string, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return "", apperrors.ErrInvalidCredentials
	}

	emailMatch := subtle.ConstantTimeCompare([]byte(req.Email), []byte(s.cfg.Admin.Email)) == 1
	if !emailMatch || !s.passwordMatches(req.Password) {
		return "", apperrors.ErrInvalidCredentials
	}

	token, err := utils.GenerateAdminToken(req.Email)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return token, nil
}

func (s *AuthService) passwordMatches(password string) bool {
	configured := s.cfg.Admin.Password
	if configured == "" {
		return false
	}

	if strings.HasPrefix(configured, "$2a$") || strings.HasPrefix(configured, "$2b$") || strings.HasPrefix(configured, "$2y$") {
		return bcrypt.CompareHashAndPassword([]byte(configured), []byte(password)) == nil
	}

	return subtle.ConstantTimeCompare([]byte(password), []byte(configured)) == 1
}
