package model

import (
	"time"

	"github.com/google/uuid"
)

// Match links two users with mutual like interest. The pair is stored
// normalized: UserAID is always the lexicographically smaller user id, so the
// store-level unique constraint covers the unordered pair.
type Match struct {
	ID            string
	UserAID       string
	UserBID       string
	CreatedAt     time.Time
	LastMessageAt *time.Time
	IsActive      bool
}

// OtherUser returns the party opposite to userID, or "" when userID is not a
// party of the match.
func (m Match) OtherUser(userID string) string {
	switch userID {
	case m.UserAID:
		return m.UserBID
	case m.UserBID:
		return m.UserAID
	default:
		return ""
	}
}

func (m Match) HasParty(userID string) bool {
	return userID != "" && (userID == m.UserAID || userID == m.UserBID)
}

// NormalizePair orders two user ids into the canonical (user_a, user_b) form.
func NormalizePair(userID, targetID string) (string, string) {
	if userID > targetID {
		return targetID, userID
	}
	return userID, targetID
}

func NewMatchID() string {
	return uuid.NewString()
}
