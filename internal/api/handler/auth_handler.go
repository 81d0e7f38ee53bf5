package handler

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/akrgroup/backoffice/internal/api/service"
)

// AuthHandler manages admin authentication requests
type AuthHandler struct {
	logger      *slog.Logger
	authService service.AuthService
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(logger *slog.Logger, authService service.AuthService) *AuthHandler {
	return &AuthHandler{
		logger:      logger,
		authService: authService,
	}
}

// Login handles POST /api/v1/auth/login requests
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "Invalid request: "+err.Error())
		return
	}

	token, a, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			RespondUnauthorized(c, "Invalid email or password")
			return
		}
		RespondInternalError(c)
		return
	}

	RespondOK(c, &LoginResponse{
		Token: token,
		Admin: &AdminResponse{
			ID:        a.ID.String(),
			Email:     a.Email,
			Name:      a.Name,
			Role:      a.Role,
			CreatedAt: a.CreatedAt.Format(time.RFC3339),
		},
	})
}
