package handlers

import (
	"errors"
	"net/http"

	authsvc "github.com/mer-dating/backend/internal/services/auth"
	matchsvc "github.com/mer-dating/backend/internal/services/matches"
	"github.com/mer-dating/backend/internal/transport/http/dto"
	httperrors "github.com/mer-dating/backend/internal/transport/http/errors"
)

type MatchesHandler struct {
	service *matchsvc.Service
}

func NewMatchesHandler(service *matchsvc.Service) *MatchesHandler {
	return &MatchesHandler{service: service}
}

func (h *MatchesHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "MATCH_SERVICE_UNAVAILABLE", "match service is unavailable")
		return
	}

	views, err := h.service.List(r.Context(), identity.UserID)
	if err != nil {
		switch {
		case errors.Is(err, matchsvc.ErrValidation):
			writeBadRequest(w, "VALIDATION_ERROR", "request validation failed")
		default:
			writeStoreError(w, err)
		}
		return
	}

	matches := make([]dto.MatchResponse, 0, len(views))
	for _, view := range views {
		item := dto.MatchResponse{
			MatchID:     view.MatchID,
			User:        dto.NewPublicProfileResponse(view.Other),
			MatchedAt:   view.MatchedAt,
			UnreadCount: view.UnreadCount,
		}
		if view.LastMessage != nil {
			item.LastMessage = &dto.LastMessagePayload{
				Content:  view.LastMessage.Content,
				SenderID: view.LastMessage.SenderID,
				SentAt:   view.LastMessage.SentAt,
			}
		}
		matches = append(matches, item)
	}

	httperrors.Write(w, http.StatusOK, dto.MatchListResponse{Matches: matches})
}
