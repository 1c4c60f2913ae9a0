package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"phonebook/internal/logger"
	"phonebook/internal/model"
	"phonebook/internal/service"
)

// AuthHandler handles login and registration requests
type AuthHandler struct {
	service service.AuthService
	logger  *logger.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(s service.AuthService, log *logger.Logger) *AuthHandler {
	return &AuthHandler{service: s, logger: log}
}

// Login authenticates a credential pair and returns a token. Invalid
// credentials come back as 404; whether the login was unknown or the
// password wrong is intentionally not revealed.
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.AuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid params")
		return
	}

	token, err := h.service.Login(c.Request.Context(), req.Login, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondError(c, http.StatusNotFound, "Incorrect login or password")
			return
		}
		h.logger.Error().Err(err).Msg("login failed")
		respondError(c, http.StatusInternalServerError, "Failed to login")
		return
	}

	c.JSON(http.StatusOK, gin.H{"jwt-token": token})
}

// Register creates an account and returns a token. A 400 response lists
// every violated field and its reason, including a taken login.
func (h *AuthHandler) Register(c *gin.Context) {
	var req model.AuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, registrationErrorMessage(err))
		return
	}

	token, err := h.service.Register(c.Request.Context(), req.Login, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrLoginTaken) {
			respondError(c, http.StatusBadRequest, "login - User with this login has already created;")
			return
		}
		h.logger.Error().Err(err).Msg("registration failed")
		respondError(c, http.StatusInternalServerError, "Failed to register user")
		return
	}

	c.JSON(http.StatusOK, gin.H{"jwt-token": token})
}

// RegisterAuthRoutes registers auth routes
func (h *AuthHandler) RegisterAuthRoutes(r *gin.Engine) {
	r.POST("/login", h.Login)
	r.POST("/register", h.Register)
}
