package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"phonebook/internal/logger"
	"phonebook/internal/middleware"
	"phonebook/internal/model"
	"phonebook/internal/service"
)

// ContactHandler handles contact CRUD requests for the authenticated owner
type ContactHandler struct {
	contactService service.ContactService
	authService    service.AuthService
	logger         *logger.Logger
}

// NewContactHandler creates a new ContactHandler
func NewContactHandler(cs service.ContactService, as service.AuthService, log *logger.Logger) *ContactHandler {
	return &ContactHandler{contactService: cs, authService: as, logger: log}
}

// currentUser resolves the verified token login from the context into a
// user. The token may outlive the account, so a valid token whose user is
// gone is a distinct, later-stage failure (404) from an anonymous request.
func (h *ContactHandler) currentUser(c *gin.Context) (*model.User, bool) {
	loginVal, exists := c.Get(middleware.AuthLoginKey)
	if !exists {
		respondError(c, http.StatusUnauthorized, "Unauthorized request (use JWT-token)")
		return nil, false
	}
	login, ok := loginVal.(string)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Unauthorized request (use JWT-token)")
		return nil, false
	}

	user, err := h.authService.UserByLogin(c.Request.Context(), login)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			respondError(c, http.StatusNotFound, "Can not found user with such login")
			return nil, false
		}
		h.logger.Error().Err(err).Msg("failed to resolve user from token")
		respondError(c, http.StatusInternalServerError, "Failed to resolve user")
		return nil, false
	}
	return user, true
}

// GetContacts returns the owner's contacts keyed by contact id
func (h *ContactHandler) GetContacts(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	contacts, err := h.contactService.ListContacts(c.Request.Context(), user)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list contacts")
		respondError(c, http.StatusInternalServerError, "Failed to retrieve contacts")
		return
	}

	c.JSON(http.StatusOK, contacts)
}

// AddContact creates a contact with its phone numbers for the owner. The
// created id is not returned; callers needing it must re-fetch.
func (h *ContactHandler) AddContact(c *gin.Context) {
	var req model.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid params")
		return
	}

	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	if err := h.contactService.AddContact(c.Request.Context(), user, req.ToContact()); err != nil {
		if errors.Is(err, service.ErrContactExists) {
			respondError(c, http.StatusBadRequest, "Invalid params")
			return
		}
		h.logger.Error().Err(err).Msg("failed to add contact")
		respondError(c, http.StatusInternalServerError, "Failed to add contact")
		return
	}

	c.Status(http.StatusOK)
}

// UpdateContact replaces the contact wholesale, phone numbers included
func (h *ContactHandler) UpdateContact(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid params")
		return
	}

	var req model.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid params")
		return
	}

	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	contact := req.ToContact()
	contact.ID = id

	if err := h.contactService.UpdateContact(c.Request.Context(), user, contact); err != nil {
		if errors.Is(err, service.ErrContactNotFound) {
			respondError(c, http.StatusNotFound, "Contact not found")
			return
		}
		h.logger.Error().Err(err).Msg("failed to update contact")
		respondError(c, http.StatusInternalServerError, "Failed to update contact")
		return
	}

	c.Status(http.StatusOK)
}

// DeleteContact removes a contact from the owner's set only
func (h *ContactHandler) DeleteContact(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid params")
		return
	}

	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	if err := h.contactService.DeleteContact(c.Request.Context(), user, id); err != nil {
		if errors.Is(err, service.ErrContactNotFound) {
			respondError(c, http.StatusNotFound, "Contact not found")
			return
		}
		h.logger.Error().Err(err).Msg("failed to delete contact")
		respondError(c, http.StatusInternalServerError, "Failed to delete contact")
		return
	}

	c.Status(http.StatusOK)
}

// RegisterContactRoutes registers contact routes behind the auth middleware
func (h *ContactHandler) RegisterContactRoutes(r *gin.Engine, authMW gin.HandlerFunc) {
	contactRoutes := r.Group("/contact")
	contactRoutes.Use(authMW)
	{
		contactRoutes.GET("", h.GetContacts)
		contactRoutes.POST("", h.AddContact)
		contactRoutes.PUT("/:id", h.UpdateContact)
		contactRoutes.DELETE("/:id", h.DeleteContact)
	}
}
