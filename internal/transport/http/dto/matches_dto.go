package dto

import "time"

type LastMessagePayload struct {
	Content  string    `json:"content"`
	SenderID string    `json:"sender_id"`
	SentAt   time.Time `json:"sent_at"`
}

type MatchResponse struct {
	MatchID     string                `json:"match_id"`
	User        PublicProfileResponse `json:"user"`
	MatchedAt   time.Time             `json:"matched_at"`
	LastMessage *LastMessagePayload   `json:"last_message,omitempty"`
	UnreadCount int                   `json:"unread_count"`
}

type MatchListResponse struct {
	Matches []MatchResponse `json:"matches"`
}
