package discovery_test

import (
	"context"
	"errors"
	"testing"

	"github.com/mer-dating/backend/internal/domain/model"
	pgrepo "github.com/mer-dating/backend/internal/repo/postgres"
	discsvc "github.com/mer-dating/backend/internal/services/discovery"
)

type stubStore struct {
	users     map[string]model.User
	swiped    map[string][]string
	lastQuery pgrepo.CandidateQuery
}

func (s *stubStore) GetByID(_ context.Context, userID string) (model.User, error) {
	user, ok := s.users[userID]
	if !ok {
		return model.User{}, pgrepo.ErrUserNotFound
	}
	return user, nil
}

func (s *stubStore) ListCandidates(_ context.Context, q pgrepo.CandidateQuery) ([]model.User, error) {
	s.lastQuery = q

	excluded := map[string]bool{q.ViewerID: true}
	for _, id := range q.ExcludeIDs {
		excluded[id] = true
	}

	items := make([]model.User, 0)
	for _, user := range s.users {
		if excluded[user.ID] || !user.IsActive {
			continue
		}
		if user.Age < q.MinAge || user.Age > q.MaxAge {
			continue
		}
		items = append(items, user)
		if len(items) == q.Limit {
			break
		}
	}
	return items, nil
}

func (s *stubStore) SwipedIDs(_ context.Context, swiperID string) ([]string, error) {
	return s.swiped[swiperID], nil
}

func TestDiscoverFiltersSwipedAndAge(t *testing.T) {
	store := &stubStore{
		users: map[string]model.User{
			"viewer": {ID: "viewer", Age: 30, Preferences: model.Preferences{MinAge: 25, MaxAge: 35, MaxDistance: 25}, IsActive: true},
			"young":  {ID: "young", Age: 20, IsActive: true},
			"seen":   {ID: "seen", Age: 30, IsActive: true},
			"fresh":  {ID: "fresh", Age: 30, IsActive: true},
		},
		swiped: map[string][]string{"viewer": {"seen"}},
	}
	svc := discsvc.NewService(store, store)

	candidates, err := svc.Discover(context.Background(), "viewer", 10)
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	if len(candidates) != 1 || candidates[0].User.ID != "fresh" {
		t.Fatalf("unexpected candidates: %+v", candidates)
	}
	if candidates[0].DistanceKM != discsvc.StubDistanceKM {
		t.Fatalf("unexpected distance: %d", candidates[0].DistanceKM)
	}
	if store.lastQuery.MinAge != 25 || store.lastQuery.MaxAge != 35 {
		t.Fatalf("viewer preferences were not applied: %+v", store.lastQuery)
	}
}

func TestDiscoverLimitClamping(t *testing.T) {
	store := &stubStore{
		users: map[string]model.User{
			"viewer": {ID: "viewer", Age: 30, Preferences: model.DefaultPreferences(), IsActive: true},
		},
	}
	svc := discsvc.NewService(store, store)
	ctx := context.Background()

	if _, err := svc.Discover(ctx, "viewer", 0); err != nil {
		t.Fatalf("discover with zero limit: %v", err)
	}
	if store.lastQuery.Limit != discsvc.DefaultLimit {
		t.Fatalf("zero limit should fall back to default, got %d", store.lastQuery.Limit)
	}

	if _, err := svc.Discover(ctx, "viewer", 1000); err != nil {
		t.Fatalf("discover with huge limit: %v", err)
	}
	if store.lastQuery.Limit != discsvc.MaxLimit {
		t.Fatalf("oversized limit should clamp to max, got %d", store.lastQuery.Limit)
	}
}

func TestDiscoverUnknownViewer(t *testing.T) {
	store := &stubStore{users: map[string]model.User{}}
	svc := discsvc.NewService(store, store)

	if _, err := svc.Discover(context.Background(), "ghost", 10); !errors.Is(err, discsvc.ErrUserNotFound) {
		t.Fatalf("unknown viewer should fail with ErrUserNotFound, got err=%v", err)
	}
}
