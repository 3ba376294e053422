package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	authsvc "github.com/mer-dating/backend/internal/services/auth"
	discsvc "github.com/mer-dating/backend/internal/services/discovery"
	"github.com/mer-dating/backend/internal/transport/http/dto"
	httperrors "github.com/mer-dating/backend/internal/transport/http/errors"
)

type DiscoverHandler struct {
	service *discsvc.Service
}

func NewDiscoverHandler(service *discsvc.Service) *DiscoverHandler {
	return &DiscoverHandler{service: service}
}

func (h *DiscoverHandler) Handle(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "DISCOVERY_SERVICE_UNAVAILABLE", "discovery service is unavailable")
		return
	}

	limit := 0
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			writeBadRequest(w, "VALIDATION_ERROR", "limit must be a non-negative integer")
			return
		}
		limit = parsed
	}

	candidates, err := h.service.Discover(r.Context(), identity.UserID, limit)
	if err != nil {
		switch {
		case errors.Is(err, discsvc.ErrValidation):
			writeBadRequest(w, "VALIDATION_ERROR", "request validation failed")
		case errors.Is(err, discsvc.ErrUserNotFound):
			writeUnauthorized(w, "UNAUTHORIZED", "authentication failed")
		default:
			writeStoreError(w, err)
		}
		return
	}

	users := make([]dto.DiscoverCandidateResponse, 0, len(candidates))
	for _, candidate := range candidates {
		users = append(users, dto.DiscoverCandidateResponse{
			PublicProfileResponse: dto.NewPublicProfileResponse(candidate.User),
			DistanceKM:            candidate.DistanceKM,
		})
	}

	httperrors.Write(w, http.StatusOK, dto.DiscoverResponse{Users: users})
}
