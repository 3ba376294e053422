package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mer-dating/backend/internal/domain/model"
)

type SwipeRepo struct {
	pool *pgxpool.Pool
}

func NewSwipeRepo(pool *pgxpool.Pool) *SwipeRepo {
	return &SwipeRepo{pool: pool}
}

// Create inserts a swipe inside the caller's transaction. A repeated
// (swiper, swiped) pair maps to ErrDuplicateSwipe regardless of action.
func (r *SwipeRepo) Create(ctx context.Context, tx pgx.Tx, swipe model.Swipe) error {
	if tx == nil {
		return fmt.Errorf("transaction is required")
	}
	if strings.TrimSpace(swipe.ID) == "" || strings.TrimSpace(swipe.SwiperID) == "" || strings.TrimSpace(swipe.SwipedID) == "" {
		return fmt.Errorf("invalid swipe payload")
	}

	_, err := tx.Exec(ctx, `
INSERT INTO swipes (id, swiper_id, swiped_id, action, created_at)
VALUES ($1, $2, $3, $4, $5)
`, swipe.ID, swipe.SwiperID, swipe.SwipedID, string(swipe.Action), swipe.CreatedAt.UTC())
	if err != nil {
		if isUniqueViolation(err, "swipes_swiper_swiped_key") {
			return ErrDuplicateSwipe
		}
		return fmt.Errorf("insert swipe: %w", err)
	}

	return nil
}

// HasLike reports whether swiper has recorded exactly a "like" on swiped.
// Runs in the swipe transaction so the mutual check observes the just-written
// row and no later one.
func (r *SwipeRepo) HasLike(ctx context.Context, tx pgx.Tx, swiperID, swipedID string) (bool, error) {
	if tx == nil {
		return false, fmt.Errorf("transaction is required")
	}

	var one int
	err := tx.QueryRow(ctx, `
SELECT 1
FROM swipes
WHERE swiper_id = $1 AND swiped_id = $2 AND action = $3
`, swiperID, swipedID, string(model.SwipeLike)).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check like: %w", err)
	}

	return true, nil
}

// SwipedIDs returns every user id the swiper has already acted on, for
// exclusion from discovery.
func (r *SwipeRepo) SwipedIDs(ctx context.Context, swiperID string) ([]string, error) {
	if r.pool == nil {
		return []string{}, nil
	}

	rows, err := r.pool.Query(ctx, `
SELECT swiped_id
FROM swipes
WHERE swiper_id = $1
`, swiperID)
	if err != nil {
		return nil, fmt.Errorf("list swiped ids: %w", err)
	}
	defer rows.Close()

	ids := make([]string, 0, 32)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan swiped id: %w", err)
		}
		ids = append(ids, id)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate swiped ids: %w", rows.Err())
	}

	return ids, nil
}
