package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mer-dating/backend/internal/domain/model"
)

type MatchRepo struct {
	pool *pgxpool.Pool
}

func NewMatchRepo(pool *pgxpool.Pool) *MatchRepo {
	return &MatchRepo{pool: pool}
}

// MatchListItem is a match joined with the other party's profile and the
// newest message in the conversation, if any.
type MatchListItem struct {
	Match         model.Match
	Other         model.User
	LastMessage   *string
	LastMessageAt *time.Time
	LastSenderID  *string
}

// CreateForPair inserts a match for the normalized pair. The unique constraint
// on (user_a_id, user_b_id) makes concurrent mutual likes converge on one row:
// the loser of the race reads back the winner's match. Returns the stored
// match and whether this call created it.
func (r *MatchRepo) CreateForPair(ctx context.Context, tx pgx.Tx, match model.Match) (model.Match, bool, error) {
	if tx == nil {
		return model.Match{}, false, fmt.Errorf("transaction is required")
	}
	if match.UserAID >= match.UserBID {
		return model.Match{}, false, fmt.Errorf("match pair is not normalized")
	}

	tag, err := tx.Exec(ctx, `
INSERT INTO matches (id, user_a_id, user_b_id, created_at, is_active)
VALUES ($1, $2, $3, $4, TRUE)
ON CONFLICT ON CONSTRAINT matches_pair_key DO NOTHING
`, match.ID, match.UserAID, match.UserBID, match.CreatedAt.UTC())
	if err != nil {
		return model.Match{}, false, fmt.Errorf("insert match: %w", err)
	}

	if tag.RowsAffected() == 1 {
		return match, true, nil
	}

	existing, err := scanMatch(tx.QueryRow(ctx, `
SELECT id, user_a_id, user_b_id, created_at, last_message_at, is_active
FROM matches
WHERE user_a_id = $1 AND user_b_id = $2
`, match.UserAID, match.UserBID))
	if err != nil {
		return model.Match{}, false, fmt.Errorf("read existing match: %w", err)
	}

	return existing, false, nil
}

// GetForUpdate loads a match inside the caller's transaction and locks the row
// so last_message_at updates serialize with the message insert.
func (r *MatchRepo) GetForUpdate(ctx context.Context, tx pgx.Tx, matchID string) (model.Match, error) {
	if tx == nil {
		return model.Match{}, fmt.Errorf("transaction is required")
	}

	match, err := scanMatch(tx.QueryRow(ctx, `
SELECT id, user_a_id, user_b_id, created_at, last_message_at, is_active
FROM matches
WHERE id = $1
FOR UPDATE
`, matchID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Match{}, ErrMatchNotFound
		}
		return model.Match{}, fmt.Errorf("get match for update: %w", err)
	}

	return match, nil
}

func (r *MatchRepo) GetByID(ctx context.Context, matchID string) (model.Match, error) {
	if r.pool == nil {
		return model.Match{}, fmt.Errorf("postgres pool is nil")
	}
	if strings.TrimSpace(matchID) == "" {
		return model.Match{}, ErrMatchNotFound
	}

	match, err := scanMatch(r.pool.QueryRow(ctx, `
SELECT id, user_a_id, user_b_id, created_at, last_message_at, is_active
FROM matches
WHERE id = $1
`, matchID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Match{}, ErrMatchNotFound
		}
		return model.Match{}, fmt.Errorf("get match: %w", err)
	}

	return match, nil
}

// ListForUser returns every active match of the user with the other party's
// profile and the newest message joined in. Ordering is left to the caller.
func (r *MatchRepo) ListForUser(ctx context.Context, userID string) ([]MatchListItem, error) {
	if r.pool == nil {
		return []MatchListItem{}, nil
	}

	rows, err := r.pool.Query(ctx, `
SELECT
	m.id, m.user_a_id, m.user_b_id, m.created_at, m.last_message_at, m.is_active,
	u.id, u.email, u.password_hash, u.name, u.age, u.bio, u.photos, u.occupation,
	u.education, u.interests, u.pref_min_age, u.pref_max_age, u.pref_max_distance,
	u.last_lat, u.last_lng, u.is_active, u.created_at, u.updated_at,
	lm.content, lm.created_at, lm.sender_id
FROM matches m
JOIN users u
	ON u.id = CASE WHEN m.user_a_id = $1 THEN m.user_b_id ELSE m.user_a_id END
LEFT JOIN LATERAL (
	SELECT content, created_at, sender_id
	FROM messages
	WHERE match_id = m.id
	ORDER BY created_at DESC, id DESC
	LIMIT 1
) lm ON TRUE
WHERE (m.user_a_id = $1 OR m.user_b_id = $1) AND m.is_active = TRUE
`, userID)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	defer rows.Close()

	items := make([]MatchListItem, 0, 16)
	for rows.Next() {
		var item MatchListItem
		var lat, lng *float64
		if err := rows.Scan(
			&item.Match.ID,
			&item.Match.UserAID,
			&item.Match.UserBID,
			&item.Match.CreatedAt,
			&item.Match.LastMessageAt,
			&item.Match.IsActive,
			&item.Other.ID,
			&item.Other.Email,
			&item.Other.PasswordHash,
			&item.Other.Name,
			&item.Other.Age,
			&item.Other.Bio,
			&item.Other.Photos,
			&item.Other.Occupation,
			&item.Other.Education,
			&item.Other.Interests,
			&item.Other.Preferences.MinAge,
			&item.Other.Preferences.MaxAge,
			&item.Other.Preferences.MaxDistance,
			&lat,
			&lng,
			&item.Other.IsActive,
			&item.Other.CreatedAt,
			&item.Other.UpdatedAt,
			&item.LastMessage,
			&item.LastMessageAt,
			&item.LastSenderID,
		); err != nil {
			return nil, fmt.Errorf("scan match row: %w", err)
		}
		if lat != nil && lng != nil {
			item.Other.Location = &model.Location{Lat: *lat, Lng: *lng}
		}
		items = append(items, item)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate matches: %w", rows.Err())
	}

	return items, nil
}

// TouchLastMessage stamps the match with the newest message time inside the
// message transaction.
func (r *MatchRepo) TouchLastMessage(ctx context.Context, tx pgx.Tx, matchID string, at time.Time) error {
	if tx == nil {
		return fmt.Errorf("transaction is required")
	}

	tag, err := tx.Exec(ctx, `
UPDATE matches
SET last_message_at = $2
WHERE id = $1
`, matchID, at.UTC())
	if err != nil {
		return fmt.Errorf("touch match last message: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrMatchNotFound
	}

	return nil
}

func scanMatch(row pgx.Row) (model.Match, error) {
	var match model.Match
	if err := row.Scan(
		&match.ID,
		&match.UserAID,
		&match.UserBID,
		&match.CreatedAt,
		&match.LastMessageAt,
		&match.IsActive,
	); err != nil {
		return model.Match{}, err
	}
	return match, nil
}
