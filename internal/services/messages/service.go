package messages

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

const MaxContentLen = 2000

var (
	ErrValidation    = errors.New("validation error")
	ErrMatchNotFound = errors.New("match not found")
)

type MatchStore interface {
	GetForUpdate(ctx context.Context, tx pgx.Tx, matchID string) (model.Match, error)
	TouchLastMessage(ctx context.Context, tx pgx.Tx, matchID string, at time.Time) error
	GetByID(ctx context.Context, matchID string) (model.Match, error)
}

type MessageStore interface {
	Create(ctx context.Context, tx pgx.Tx, msg model.Message) error
	ListByMatch(ctx context.Context, matchID string) ([]model.Message, error)
}

type Service struct {
	runTx    pgrepo.TxRunner
	matches  MatchStore
	messages MessageStore
	now      func() time.Time
}

type Dependencies struct {
	RunTx    pgrepo.TxRunner
	Matches  MatchStore
	Messages MessageStore
}

func NewService(deps Dependencies) *Service {
	return &Service{
		runTx:    deps.RunTx,
		matches:  deps.Matches,
		messages: deps.Messages,
		now:      time.Now,
	}
}

// Send stores the message and bumps the match's last_message_at in one
// transaction. The sender must be a party of the match and the receiver must
// be the other party. Outsiders get ErrMatchNotFound.
func (s *Service) Send(ctx context.Context, senderID, matchID, receiverID, content string) (model.Message, error) {
	senderID = strings.TrimSpace(senderID)
	matchID = strings.TrimSpace(matchID)
	receiverID = strings.TrimSpace(receiverID)
	content = strings.TrimSpace(content)

	if senderID == "" || matchID == "" || receiverID == "" {
		return model.Message{}, ErrValidation
	}
	if content == "" {
		return model.Message{}, fmt.Errorf("message content is empty: %w", ErrValidation)
	}
	if len(content) > MaxContentLen {
		return model.Message{}, fmt.Errorf("message content is too long: %w", ErrValidation)
	}
	if s.runTx == nil || s.matches == nil || s.messages == nil {
		return model.Message{}, fmt.Errorf("message dependencies are not configured")
	}

	now := s.now().UTC()
	msg := model.Message{
		ID:         model.NewMessageID(),
		MatchID:    matchID,
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
		CreatedAt:  now,
	}

	if err := s.runTx(ctx, func(txCtx context.Context, tx pgx.Tx) error {
		match, err := s.matches.GetForUpdate(txCtx, tx, matchID)
		if err != nil {
			if errors.Is(err, pgrepo.ErrMatchNotFound) {
				return ErrMatchNotFound
			}
			return err
		}
		if !match.IsActive || !match.HasParty(senderID) {
			return ErrMatchNotFound
		}
		if match.OtherUser(senderID) != receiverID {
			return fmt.Errorf("receiver is not the other party: %w", ErrValidation)
		}

		if err := s.messages.Create(txCtx, tx, msg); err != nil {
			return err
		}
		return s.matches.TouchLastMessage(txCtx, tx, matchID, now)
	}); err != nil {
		return model.Message{}, err
	}

	return msg, nil
}

// ListForMatch returns the conversation oldest first, gated on the caller
// being a party of the match.
func (s *Service) ListForMatch(ctx context.Context, matchID, userID string) ([]model.Message, error) {
	matchID = strings.TrimSpace(matchID)
	userID = strings.TrimSpace(userID)
	if matchID == "" || userID == "" {
		return nil, ErrValidation
	}
	if s.matches == nil || s.messages == nil {
		return nil, fmt.Errorf("message dependencies are not configured")
	}

	match, err := s.matches.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("get match: %w", err)
	}
	if !match.IsActive || !match.HasParty(userID) {
		return nil, ErrMatchNotFound
	}

	items, err := s.messages.ListByMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}

	return items, nil
}
