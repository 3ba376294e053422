package matches_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mer-dating/backend/internal/domain/model"
	pgrepo "github.com/mer-dating/backend/internal/repo/postgres"
	matchsvc "github.com/mer-dating/backend/internal/services/matches"
)

type stubMatchStore struct {
	items   []pgrepo.MatchListItem
	byID    map[string]model.Match
	listErr error
}

func (s *stubMatchStore) ListForUser(_ context.Context, _ string) ([]pgrepo.MatchListItem, error) {
	return s.items, s.listErr
}

func (s *stubMatchStore) GetByID(_ context.Context, matchID string) (model.Match, error) {
	match, ok := s.byID[matchID]
	if !ok {
		return model.Match{}, pgrepo.ErrMatchNotFound
	}
	return match, nil
}

func TestListOrdersByLastActivity(t *testing.T) {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	msgAt := base.Add(3 * time.Hour)
	hi := "hi"
	sender := "ryan"

	store := &stubMatchStore{
		items: []pgrepo.MatchListItem{
			{
				Match:         model.Match{ID: "m-old", UserAID: "emma", UserBID: "ryan", CreatedAt: base, IsActive: true},
				Other:         model.User{ID: "ryan", Name: "Ryan"},
				LastMessage:   &hi,
				LastMessageAt: &msgAt,
				LastSenderID:  &sender,
			},
			{
				Match: model.Match{ID: "m-new", UserAID: "emma", UserBID: "zoe", CreatedAt: base.Add(time.Hour), IsActive: true},
				Other: model.User{ID: "zoe", Name: "Zoe"},
			},
		},
	}

	views, err := matchsvc.NewService(store).List(context.Background(), "emma")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(views))
	}
	if views[0].MatchID != "m-old" {
		t.Fatalf("match with newer message should sort first, got %q", views[0].MatchID)
	}
	if views[0].LastMessage == nil || views[0].LastMessage.Content != "hi" {
		t.Fatalf("last message preview missing: %+v", views[0])
	}
	if views[1].LastMessage != nil {
		t.Fatalf("untouched match should have no preview: %+v", views[1])
	}
	if views[0].UnreadCount != 0 {
		t.Fatalf("unexpected unread count: %d", views[0].UnreadCount)
	}
}

func TestListTieBreaksByCreation(t *testing.T) {
	created := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	activity := created.Add(2 * time.Hour)
	hi := "hi"
	sender := "ryan"

	// The older match's newest message lands at the exact instant the newer
	// match is created.
	store := &stubMatchStore{
		items: []pgrepo.MatchListItem{
			{
				Match:         model.Match{ID: "m-older", UserAID: "emma", UserBID: "ryan", CreatedAt: created, IsActive: true},
				Other:         model.User{ID: "ryan", Name: "Ryan"},
				LastMessage:   &hi,
				LastMessageAt: &activity,
				LastSenderID:  &sender,
			},
			{
				Match: model.Match{ID: "m-newer", UserAID: "emma", UserBID: "zoe", CreatedAt: activity, IsActive: true},
				Other: model.User{ID: "zoe", Name: "Zoe"},
			},
		},
	}

	views, err := matchsvc.NewService(store).List(context.Background(), "emma")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(views))
	}
	if views[0].MatchID != "m-newer" || views[1].MatchID != "m-older" {
		t.Fatalf("tie on last activity must break by creation desc, got %q then %q",
			views[0].MatchID, views[1].MatchID)
	}
}

func TestGetForParty(t *testing.T) {
	store := &stubMatchStore{
		byID: map[string]model.Match{
			"m1": {ID: "m1", UserAID: "emma", UserBID: "ryan", IsActive: true},
			"m2": {ID: "m2", UserAID: "ava", UserBID: "zoe", IsActive: true},
			"m3": {ID: "m3", UserAID: "emma", UserBID: "zoe", IsActive: false},
		},
	}
	svc := matchsvc.NewService(store)
	ctx := context.Background()

	match, err := svc.GetForParty(ctx, "m1", "emma")
	if err != nil {
		t.Fatalf("get for party: %v", err)
	}
	if match.OtherUser("emma") != "ryan" {
		t.Fatalf("unexpected other user: %q", match.OtherUser("emma"))
	}

	if _, err := svc.GetForParty(ctx, "m2", "emma"); !errors.Is(err, matchsvc.ErrMatchNotFound) {
		t.Fatalf("outsider should get ErrMatchNotFound, got err=%v", err)
	}
	if _, err := svc.GetForParty(ctx, "m3", "emma"); !errors.Is(err, matchsvc.ErrMatchNotFound) {
		t.Fatalf("inactive match should get ErrMatchNotFound, got err=%v", err)
	}
	if _, err := svc.GetForParty(ctx, "missing", "emma"); !errors.Is(err, matchsvc.ErrMatchNotFound) {
		t.Fatalf("missing match should get ErrMatchNotFound, got err=%v", err)
	}
}
