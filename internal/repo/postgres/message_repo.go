package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mer-dating/backend/internal/domain/model"
)

type MessageRepo struct {
	pool *pgxpool.Pool
}

func NewMessageRepo(pool *pgxpool.Pool) *MessageRepo {
	return &MessageRepo{pool: pool}
}

// Create inserts a message inside the caller's transaction, alongside the
// last_message_at touch on the parent match.
func (r *MessageRepo) Create(ctx context.Context, tx pgx.Tx, msg model.Message) error {
	if tx == nil {
		return fmt.Errorf("transaction is required")
	}
	if strings.TrimSpace(msg.ID) == "" || strings.TrimSpace(msg.MatchID) == "" {
		return fmt.Errorf("invalid message payload")
	}

	_, err := tx.Exec(ctx, `
INSERT INTO messages (id, match_id, sender_id, receiver_id, content, created_at, is_read)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`, msg.ID, msg.MatchID, msg.SenderID, msg.ReceiverID, msg.Content, msg.CreatedAt.UTC(), msg.IsRead)
	if err != nil {
		return fmt.Errorf("insert message: %w", err)
	}

	return nil
}

// ListByMatch returns the conversation oldest first.
func (r *MessageRepo) ListByMatch(ctx context.Context, matchID string) ([]model.Message, error) {
	if r.pool == nil {
		return []model.Message{}, nil
	}

	rows, err := r.pool.Query(ctx, `
SELECT id, match_id, sender_id, receiver_id, content, created_at, is_read
FROM messages
WHERE match_id = $1
ORDER BY created_at ASC, id ASC
`, matchID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	items := make([]model.Message, 0, 32)
	for rows.Next() {
		msg, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		items = append(items, msg)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate messages: %w", rows.Err())
	}

	return items, nil
}

func scanMessage(row pgx.Row) (model.Message, error) {
	var msg model.Message
	if err := row.Scan(
		&msg.ID,
		&msg.MatchID,
		&msg.SenderID,
		&msg.ReceiverID,
		&msg.Content,
		&msg.CreatedAt,
		&msg.IsRead,
	); err != nil {
		return model.Message{}, err
	}
	return msg, nil
}
