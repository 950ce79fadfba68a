package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/academic-portal/internal/model"
	"github.com/stemsi/academic-portal/internal/response"
	"github.com/stemsi/academic-portal/internal/service"
)

const (
	msgLoginSuccessful = "Login successful"
	msgLoginFailed     = "Internal server error"
)

// AuthHandler handles the credential check endpoint.
type AuthHandler struct {
	authService *service.AuthService
	obs         Observer
	log         zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *service.AuthService, obs Observer, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		obs:         obs,
		log:         log.With().Str("component", "auth_handler").Logger(),
	}
}

// Login godoc
// POST /api/v1/login
// Checks a {loginId, loginPassword} pair against the login file.
// Every outcome, including a server failure, is the bare
// {success, message} object rather than the envelope.
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil ||
		strings.TrimSpace(req.LoginID) == "" || req.LoginPassword == "" {
		c.JSON(http.StatusBadRequest, model.LoginResponse{
			Message: response.GetMessage(response.ErrCredentialsMissing),
		})
		return
	}

	err := h.authService.Authenticate(c.Request.Context(), req.LoginID, req.LoginPassword)
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		h.obs.ObserveLogin(false)
		c.JSON(http.StatusUnauthorized, model.LoginResponse{
			Message: response.GetMessage(response.ErrInvalidCredentials),
		})
		return
	case err != nil:
		h.log.Error().
			Err(err).
			Str("request_id", response.RequestID(c)).
			Msg("login check failed")
		c.JSON(http.StatusInternalServerError, model.LoginResponse{Message: msgLoginFailed})
		return
	}

	h.obs.ObserveLogin(true)
	c.JSON(http.StatusOK, model.LoginResponse{Success: true, Message: msgLoginSuccessful})
}
