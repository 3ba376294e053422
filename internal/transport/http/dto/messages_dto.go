package dto

import "time"

type SendMessageRequest struct {
	MatchID    string `json:"match_id"`
	ReceiverID string `json:"receiver_id"`
	Content    string `json:"content"`
}

type MessageResponse struct {
	ID         string    `json:"id"`
	MatchID    string    `json:"match_id"`
	SenderID   string    `json:"sender_id"`
	ReceiverID string    `json:"receiver_id"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
	IsRead     bool      `json:"is_read"`
	IsMine     bool      `json:"is_mine"`
}

type MessageListResponse struct {
	Messages []MessageResponse `json:"messages"`
}
