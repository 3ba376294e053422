package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"

	"github.com/mer-dating/backend/internal/domain/model"
	pgrepo "github.com/mer-dating/backend/internal/repo/postgres"
	authsvc "github.com/mer-dating/backend/internal/services/auth"
	msgsvc "github.com/mer-dating/backend/internal/services/messages"
)

type messageStoreStub struct {
	mu       sync.Mutex
	matches  map[string]model.Match
	messages []model.Message
}

func newMessageStoreStub(matches ...model.Match) *messageStoreStub {
	s := &messageStoreStub{matches: map[string]model.Match{}}
	for _, m := range matches {
		s.matches[m.ID] = m
	}
	return s
}

func (s *messageStoreStub) GetForUpdate(ctx context.Context, _ pgx.Tx, matchID string) (model.Match, error) {
	return s.GetByID(ctx, matchID)
}

func (s *messageStoreStub) GetByID(_ context.Context, matchID string) (model.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	match, ok := s.matches[matchID]
	if !ok {
		return model.Match{}, pgrepo.ErrMatchNotFound
	}
	return match, nil
}

func (s *messageStoreStub) TouchLastMessage(_ context.Context, _ pgx.Tx, matchID string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	match, ok := s.matches[matchID]
	if !ok {
		return pgrepo.ErrMatchNotFound
	}
	match.LastMessageAt = &at
	s.matches[matchID] = match
	return nil
}

func (s *messageStoreStub) Create(_ context.Context, _ pgx.Tx, msg model.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, msg)
	return nil
}

func (s *messageStoreStub) ListByMatch(_ context.Context, matchID string) ([]model.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]model.Message, 0, len(s.messages))
	for _, msg := range s.messages {
		if msg.MatchID == matchID {
			items = append(items, msg)
		}
	}
	return items, nil
}

func newMessagesHandlerForTest(matches ...model.Match) *MessagesHandler {
	store := newMessageStoreStub(matches...)
	svc := msgsvc.NewService(msgsvc.Dependencies{
		RunTx: func(ctx context.Context, fn func(context.Context, pgx.Tx) error) error {
			return fn(ctx, nil)
		},
		Matches:  store,
		Messages: store,
	})
	return NewMessagesHandler(svc)
}

func sendMessage(t *testing.T, h *MessagesHandler, userID, matchID, receiverID, content string) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(map[string]string{
		"match_id":    matchID,
		"receiver_id": receiverID,
		"content":     content,
	})
	if err != nil {
		t.Fatalf("marshal request body: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/messages/send", bytes.NewReader(body))
	req = req.WithContext(authsvc.WithIdentity(context.Background(), authsvc.Identity{
		UserID: userID,
		SID:    "sid-" + userID,
	}))

	rr := httptest.NewRecorder()
	h.Send(rr, req)
	return rr
}

func TestSendMessageAndListBothSides(t *testing.T) {
	h := newMessagesHandlerForTest(model.Match{
		ID: "m1", UserAID: "emma", UserBID: "ryan", IsActive: true,
	})

	rr := sendMessage(t, h, "emma", "m1", "ryan", "hi")
	if rr.Code != http.StatusCreated {
		t.Fatalf("send status: got %d want %d, body %s", rr.Code, http.StatusCreated, rr.Body.String())
	}

	for viewer, wantMine := range map[string]bool{"emma": true, "ryan": false} {
		req := httptest.NewRequest(http.MethodGet, "/messages/m1", nil)
		ctx := chi.NewRouteContext()
		ctx.URLParams.Add("matchID", "m1")
		req = req.WithContext(context.WithValue(
			authsvc.WithIdentity(req.Context(), authsvc.Identity{UserID: viewer, SID: "sid-" + viewer}),
			chi.RouteCtxKey, ctx,
		))

		rr := httptest.NewRecorder()
		h.ListByMatch(rr, req)
		if rr.Code != http.StatusOK {
			t.Fatalf("list status for %s: %d", viewer, rr.Code)
		}

		var payload struct {
			Messages []struct {
				Content string `json:"content"`
				IsMine  bool   `json:"is_mine"`
			} `json:"messages"`
		}
		if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if len(payload.Messages) != 1 || payload.Messages[0].Content != "hi" {
			t.Fatalf("unexpected messages for %s: %+v", viewer, payload.Messages)
		}
		if payload.Messages[0].IsMine != wantMine {
			t.Fatalf("is_mine for %s: got %v want %v", viewer, payload.Messages[0].IsMine, wantMine)
		}
	}
}

func TestSendMessageOutsiderGetsNotFound(t *testing.T) {
	h := newMessagesHandlerForTest(model.Match{
		ID: "m1", UserAID: "ava", UserBID: "zoe", IsActive: true,
	})

	rr := sendMessage(t, h, "emma", "m1", "zoe", "hi")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("unexpected status: got %d want %d", rr.Code, http.StatusNotFound)
	}

	var payload struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Code != "MATCH_NOT_FOUND" {
		t.Fatalf("unexpected error code: %q", payload.Code)
	}
}

func TestSendMessageWrongReceiver(t *testing.T) {
	h := newMessagesHandlerForTest(model.Match{
		ID: "m1", UserAID: "emma", UserBID: "ryan", IsActive: true,
	})

	rr := sendMessage(t, h, "emma", "m1", "zoe", "hi")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: got %d want %d", rr.Code, http.StatusBadRequest)
	}
}
