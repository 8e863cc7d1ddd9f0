package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/upb/greeting-app/internal/auth"
	"github.com/upb/greeting-app/middleware"
	"github.com/upb/greeting-app/models"
	"github.com/upb/greeting-app/services"
	"github.com/upb/greeting-app/services/users"
	"github.com/upb/greeting-app/utils"
	"go.uber.org/zap"
)

// UsernameResponse is the body of GET /api/getUsername.
type UsernameResponse struct {
	Username string `json:"username"`
}

// UserListResponse is the body of GET /api/users.
type UserListResponse struct {
	Users       []models.UserRecord `json:"users"`
	RequestedBy *auth.Identity      `json:"requestedBy"`
}

// UserHandler handles the /api user endpoints
type UserHandler struct {
	service *users.Service
	logger  *zap.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(service *users.Service, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		logger:  logger,
	}
}

// GetUsername handles GET /api/getUsername
func (h *UserHandler) GetUsername(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	name, err := h.service.Username(ctx)
	if err != nil {
		h.logger.Error("username lookup failed",
			zap.String("request_id", middleware.GetRequestIDFromContext(ctx)),
			zap.Error(err))
		HandleServiceError(w, err, h.logger)
		return
	}

	if err := utils.WriteOK(w, UsernameResponse{Username: name}); err != nil {
		h.logger.Error("failed to write username response", zap.Error(err))
	}
}

// SearchUsers handles GET /api/users/search?username=&email=
func (h *UserHandler) SearchUsers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	result := h.service.Search(r.Context(), users.SearchQuery{
		Username: query.Get("username"),
		Email:    query.Get("email"),
	})

	if err := utils.WriteOK(w, result); err != nil {
		h.logger.Error("failed to write search response", zap.Error(err))
	}
}

// ListUsers handles GET /api/users
// Requires AttachIdentity and the read:users permission in front of it.
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity := middleware.GetIdentityFromContext(ctx)
	if identity == nil {
		HandleServiceError(w, services.NewUnauthenticatedError(nil), h.logger)
		return
	}

	response := UserListResponse{
		Users:       h.service.List(ctx),
		RequestedBy: identity,
	}

	if err := utils.WriteOK(w, response); err != nil {
		h.logger.Error("failed to write user list response", zap.Error(err))
	}
}

// DeleteUser handles DELETE /api/users/{id}
// Requires AttachIdentity and the admin role in front of it.
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity := middleware.GetIdentityFromContext(ctx)
	if identity == nil {
		HandleServiceError(w, services.NewUnauthenticatedError(nil), h.logger)
		return
	}

	result := h.service.Delete(ctx, chi.URLParam(r, "id"), identity)

	if err := utils.WriteOK(w, result); err != nil {
		h.logger.Error("failed to write delete response", zap.Error(err))
	}
}
