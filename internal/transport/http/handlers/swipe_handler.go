package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/mer-dating/backend/internal/domain/model"
	authsvc "github.com/mer-dating/backend/internal/services/auth"
	swipesvc "github.com/mer-dating/backend/internal/services/swipes"
	"github.com/mer-dating/backend/internal/transport/http/dto"
	httperrors "github.com/mer-dating/backend/internal/transport/http/errors"
)

type SwipeHandler struct {
	service *swipesvc.Service
}

func NewSwipeHandler(service *swipesvc.Service) *SwipeHandler {
	return &SwipeHandler{service: service}
}

func (h *SwipeHandler) Handle(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "SWIPE_SERVICE_UNAVAILABLE", "swipe service is unavailable")
		return
	}

	var req dto.SwipeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}
	if strings.TrimSpace(req.TargetID) == "" || strings.TrimSpace(req.Action) == "" {
		writeBadRequest(w, "VALIDATION_ERROR", "target_id and action are required")
		return
	}

	result, err := h.service.Swipe(r.Context(), identity.UserID, req.TargetID, model.SwipeAction(req.Action))
	if err != nil {
		switch {
		case errors.Is(err, swipesvc.ErrValidation):
			writeBadRequest(w, "VALIDATION_ERROR", "invalid swipe request")
		case errors.Is(err, swipesvc.ErrAlreadySwiped):
			writeBadRequest(w, "ALREADY_SWIPED", "you already swiped on this user")
		case errors.Is(err, swipesvc.ErrTargetNotFound):
			writeNotFound(w, "USER_NOT_FOUND", "target user not found")
		default:
			writeStoreError(w, err)
		}
		return
	}

	resp := dto.SwipeResponse{
		OK:      true,
		Swipe:   dto.NewSwipePayload(result.Swipe),
		IsMatch: result.IsMatch,
	}
	if result.Match != nil {
		resp.MatchID = &result.Match.ID
	}

	httperrors.Write(w, http.StatusOK, resp)
}
