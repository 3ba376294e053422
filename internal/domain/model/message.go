package model

import (
	"time"

	"github.com/google/uuid"
)

type Message struct {
	ID         string
	MatchID    string
	SenderID   string
	ReceiverID string
	Content    string
	CreatedAt  time.Time
	IsRead     bool
}

func NewMessageID() string {
	return uuid.NewString()
}
