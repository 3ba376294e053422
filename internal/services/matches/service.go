package matches

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/mer-dating/backend/internal/domain/model"
	pgrepo "github.com/mer-dating/backend/internal/repo/postgres"
)

var (
	ErrValidation    = errors.New("validation error")
	ErrMatchNotFound = errors.New("match not found")
)

type MatchStore interface {
	ListForUser(ctx context.Context, userID string) ([]pgrepo.MatchListItem, error)
	GetByID(ctx context.Context, matchID string) (model.Match, error)
}

// LastMessage is the conversation preview shown on the match list.
type LastMessage struct {
	Content  string
	SenderID string
	SentAt   time.Time
}

type MatchView struct {
	MatchID     string
	Other       model.User
	MatchedAt   time.Time
	LastMessage *LastMessage
	UnreadCount int
}

type Service struct {
	store MatchStore
}

func NewService(store MatchStore) *Service {
	return &Service{store: store}
}

// List returns the user's active matches, most recently active first. A match
// with messages sorts by its newest message, an untouched match by its
// creation time; ties break by creation time descending.
func (s *Service) List(ctx context.Context, userID string) ([]MatchView, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrValidation
	}
	if s.store == nil {
		return nil, fmt.Errorf("match store is nil")
	}

	items, err := s.store.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}

	views := make([]MatchView, 0, len(items))
	for _, item := range items {
		view := MatchView{
			MatchID:   item.Match.ID,
			Other:     item.Other,
			MatchedAt: item.Match.CreatedAt,
		}
		if item.LastMessage != nil && item.LastMessageAt != nil && item.LastSenderID != nil {
			view.LastMessage = &LastMessage{
				Content:  *item.LastMessage,
				SenderID: *item.LastSenderID,
				SentAt:   *item.LastMessageAt,
			}
		}
		views = append(views, view)
	}

	sort.SliceStable(views, func(i, j int) bool {
		ai, aj := lastActivity(views[i]), lastActivity(views[j])
		if ai.Equal(aj) {
			return views[i].MatchedAt.After(views[j].MatchedAt)
		}
		return ai.After(aj)
	})

	return views, nil
}

// GetForParty loads a match and verifies the caller is one of its two users.
// Outsiders get ErrMatchNotFound rather than a hint that the match exists.
func (s *Service) GetForParty(ctx context.Context, matchID, userID string) (model.Match, error) {
	if strings.TrimSpace(matchID) == "" || strings.TrimSpace(userID) == "" {
		return model.Match{}, ErrValidation
	}
	if s.store == nil {
		return model.Match{}, fmt.Errorf("match store is nil")
	}

	match, err := s.store.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrMatchNotFound) {
			return model.Match{}, ErrMatchNotFound
		}
		return model.Match{}, fmt.Errorf("get match: %w", err)
	}
	if !match.IsActive || !match.HasParty(userID) {
		return model.Match{}, ErrMatchNotFound
	}

	return match, nil
}

func lastActivity(view MatchView) time.Time {
	if view.LastMessage != nil {
		return view.LastMessage.SentAt
	}
	return view.MatchedAt
}
