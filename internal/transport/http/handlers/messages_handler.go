package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mer-dating/backend/internal/domain/model"
	authsvc "github.com/mer-dating/backend/internal/services/auth"
	msgsvc "github.com/mer-dating/backend/internal/services/messages"
	"github.com/mer-dating/backend/internal/transport/http/dto"
	httperrors "github.com/mer-dating/backend/internal/transport/http/errors"
)

type MessagesHandler struct {
	service *msgsvc.Service
}

func NewMessagesHandler(service *msgsvc.Service) *MessagesHandler {
	return &MessagesHandler{service: service}
}

func (h *MessagesHandler) Send(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "MESSAGE_SERVICE_UNAVAILABLE", "message service is unavailable")
		return
	}

	var req dto.SendMessageRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	msg, err := h.service.Send(r.Context(), identity.UserID, req.MatchID, req.ReceiverID, req.Content)
	if err != nil {
		handleMessageError(w, err)
		return
	}

	httperrors.Write(w, http.StatusCreated, messageResponse(msg, identity.UserID))
}

func (h *MessagesHandler) ListByMatch(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "MESSAGE_SERVICE_UNAVAILABLE", "message service is unavailable")
		return
	}

	matchID := chi.URLParam(r, "matchID")
	items, err := h.service.ListForMatch(r.Context(), matchID, identity.UserID)
	if err != nil {
		handleMessageError(w, err)
		return
	}

	messages := make([]dto.MessageResponse, 0, len(items))
	for _, msg := range items {
		messages = append(messages, messageResponse(msg, identity.UserID))
	}

	httperrors.Write(w, http.StatusOK, dto.MessageListResponse{Messages: messages})
}

func handleMessageError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, msgsvc.ErrValidation):
		writeBadRequest(w, "VALIDATION_ERROR", "request validation failed")
	case errors.Is(err, msgsvc.ErrMatchNotFound):
		writeNotFound(w, "MATCH_NOT_FOUND", "match not found")
	default:
		writeStoreError(w, err)
	}
}

func messageResponse(msg model.Message, viewerID string) dto.MessageResponse {
	return dto.MessageResponse{
		ID:         msg.ID,
		MatchID:    msg.MatchID,
		SenderID:   msg.SenderID,
		ReceiverID: msg.ReceiverID,
		Content:    msg.Content,
		CreatedAt:  msg.CreatedAt,
		IsRead:     msg.IsRead,
		IsMine:     msg.SenderID == viewerID,
	}
}
