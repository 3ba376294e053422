package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mer-dating/backend/internal/domain/model"
	authsvc "github.com/mer-dating/backend/internal/services/auth"
	usersvc "github.com/mer-dating/backend/internal/services/users"
	"github.com/mer-dating/backend/internal/transport/http/dto"
	httperrors "github.com/mer-dating/backend/internal/transport/http/errors"
)

type ProfileHandler struct {
	service *usersvc.Service
}

func NewProfileHandler(service *usersvc.Service) *ProfileHandler {
	return &ProfileHandler{service: service}
}

func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "USER_SERVICE_UNAVAILABLE", "user service is unavailable")
		return
	}

	var req dto.UpdateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	in := usersvc.UpdateInput{
		Name:       req.Name,
		Age:        req.Age,
		Bio:        req.Bio,
		Occupation: req.Occupation,
		Education:  req.Education,
		Interests:  req.Interests,
	}
	if req.Preferences != nil {
		in.Preferences = &model.Preferences{
			MinAge:      req.Preferences.MinAge,
			MaxAge:      req.Preferences.MaxAge,
			MaxDistance: req.Preferences.MaxDistance,
		}
	}

	user, err := h.service.UpdateProfile(r.Context(), identity.UserID, in)
	if err != nil {
		handleUserError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.NewUserResponse(user))
}

func (h *ProfileHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	if _, ok := authsvc.IdentityFromContext(r.Context()); !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "USER_SERVICE_UNAVAILABLE", "user service is unavailable")
		return
	}

	userID := chi.URLParam(r, "userID")
	user, err := h.service.GetProfile(r.Context(), userID)
	if err != nil {
		handleUserError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.NewPublicProfileResponse(user))
}

func handleUserError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, usersvc.ErrValidation):
		writeBadRequest(w, "VALIDATION_ERROR", "request validation failed")
	case errors.Is(err, usersvc.ErrNotFound):
		writeNotFound(w, "USER_NOT_FOUND", "user not found")
	default:
		writeStoreError(w, err)
	}
}
