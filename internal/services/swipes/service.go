package swipes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/mer-dating/backend/internal/domain/model"
	pgrepo "github.com/mer-dating/backend/internal/repo/postgres"
)

var (
	ErrValidation     = errors.New("validation error")
	ErrTargetNotFound = errors.New("target user not found")
	ErrAlreadySwiped  = errors.New("already swiped on this user")
)

type UserStore interface {
	ExistsActive(ctx context.Context, tx pgx.Tx, userID string) (bool, error)
}

type SwipeStore interface {
	Create(ctx context.Context, tx pgx.Tx, swipe model.Swipe) error
	HasLike(ctx context.Context, tx pgx.Tx, swiperID, swipedID string) (bool, error)
}

type MatchStore interface {
	CreateForPair(ctx context.Context, tx pgx.Tx, match model.Match) (model.Match, bool, error)
}

type SwipeResult struct {
	Swipe   model.Swipe
	IsMatch bool
	Match   *model.Match
}

type Service struct {
	runTx   pgrepo.TxRunner
	users   UserStore
	swipes  SwipeStore
	matches MatchStore
	now     func() time.Time
}

type Dependencies struct {
	RunTx   pgrepo.TxRunner
	Users   UserStore
	Swipes  SwipeStore
	Matches MatchStore
}

func NewService(deps Dependencies) *Service {
	return &Service{
		runTx:   deps.RunTx,
		users:   deps.Users,
		swipes:  deps.Swipes,
		matches: deps.Matches,
		now:     time.Now,
	}
}

// Swipe records the action and, when it completes a mutual pair of plain
// likes, creates the match in the same transaction. A super_like counts as
// interest but never completes a match on its own.
func (s *Service) Swipe(ctx context.Context, userID, targetID string, action model.SwipeAction) (SwipeResult, error) {
	userID = strings.TrimSpace(userID)
	targetID = strings.TrimSpace(targetID)
	if userID == "" || targetID == "" {
		return SwipeResult{}, ErrValidation
	}
	if userID == targetID {
		return SwipeResult{}, fmt.Errorf("cannot swipe on yourself: %w", ErrValidation)
	}
	if !action.Valid() {
		return SwipeResult{}, fmt.Errorf("unsupported action: %w", ErrValidation)
	}
	if s.runTx == nil || s.users == nil || s.swipes == nil || s.matches == nil {
		return SwipeResult{}, fmt.Errorf("swipe dependencies are not configured")
	}

	now := s.now().UTC()
	result := SwipeResult{
		Swipe: model.Swipe{
			ID:        model.NewSwipeID(),
			SwiperID:  userID,
			SwipedID:  targetID,
			Action:    action,
			CreatedAt: now,
		},
	}

	if err := s.runTx(ctx, func(txCtx context.Context, tx pgx.Tx) error {
		exists, err := s.users.ExistsActive(txCtx, tx, targetID)
		if err != nil {
			return err
		}
		if !exists {
			return ErrTargetNotFound
		}

		if err := s.swipes.Create(txCtx, tx, result.Swipe); err != nil {
			if errors.Is(err, pgrepo.ErrDuplicateSwipe) {
				return ErrAlreadySwiped
			}
			return err
		}

		if action != model.SwipeLike {
			return nil
		}

		mutual, err := s.swipes.HasLike(txCtx, tx, targetID, userID)
		if err != nil {
			return err
		}
		if !mutual {
			return nil
		}

		userA, userB := model.NormalizePair(userID, targetID)
		match, _, err := s.matches.CreateForPair(txCtx, tx, model.Match{
			ID:        model.NewMatchID(),
			UserAID:   userA,
			UserBID:   userB,
			CreatedAt: now,
			IsActive:  true,
		})
		if err != nil {
			return err
		}

		result.IsMatch = true
		result.Match = &match
		return nil
	}); err != nil {
		return SwipeResult{}, err
	}

	return result, nil
}
