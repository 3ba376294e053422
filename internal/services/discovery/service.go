package discovery

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mer-dating/backend/internal/domain/model"
	pgrepo "github.com/mer-dating/backend/internal/repo/postgres"
)

const (
	DefaultLimit = 10
	MaxLimit     = 50

	// Distance is not computed yet: profiles carry an optional last known
	// location but there is no geo index behind it. Until that lands every
	// candidate reports a fixed placeholder distance.
	// TODO: compute real distance once locations are indexed.
	StubDistanceKM = 2
)

var (
	ErrValidation   = errors.New("validation error")
	ErrUserNotFound = errors.New("user not found")
)

type UserStore interface {
	GetByID(ctx context.Context, userID string) (model.User, error)
	ListCandidates(ctx context.Context, q pgrepo.CandidateQuery) ([]model.User, error)
}

type SwipeStore interface {
	SwipedIDs(ctx context.Context, swiperID string) ([]string, error)
}

type Candidate struct {
	User       model.User
	DistanceKM int
}

type Service struct {
	users  UserStore
	swipes SwipeStore
}

func NewService(users UserStore, swipes SwipeStore) *Service {
	return &Service{
		users:  users,
		swipes: swipes,
	}
}

// Discover returns candidate profiles for the viewer: active users within the
// viewer's preferred age range who the viewer has not swiped on yet.
func (s *Service) Discover(ctx context.Context, viewerID string, limit int) ([]Candidate, error) {
	if strings.TrimSpace(viewerID) == "" {
		return nil, ErrValidation
	}
	if s.users == nil || s.swipes == nil {
		return nil, fmt.Errorf("discovery dependencies are not configured")
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	viewer, err := s.users.GetByID(ctx, viewerID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get viewer: %w", err)
	}

	swiped, err := s.swipes.SwipedIDs(ctx, viewerID)
	if err != nil {
		return nil, fmt.Errorf("list swiped ids: %w", err)
	}

	users, err := s.users.ListCandidates(ctx, pgrepo.CandidateQuery{
		ViewerID:   viewerID,
		MinAge:     viewer.Preferences.MinAge,
		MaxAge:     viewer.Preferences.MaxAge,
		ExcludeIDs: swiped,
		Limit:      limit,
	})
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}

	candidates := make([]Candidate, 0, len(users))
	for _, user := range users {
		candidates = append(candidates, Candidate{
			User:       user,
			DistanceKM: StubDistanceKM,
		})
	}

	return candidates, nil
}
