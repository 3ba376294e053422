package dto

import (
	"time"

	"github.com/mer-dating/backend/internal/domain/model"
)

type SwipeRequest struct {
	TargetID string `json:"target_id"`
	Action   string `json:"action"`
}

// SwipePayload echoes the recorded swipe back to the caller.
type SwipePayload struct {
	ID        string    `json:"id"`
	SwipedID  string    `json:"swiped_id"`
	Action    string    `json:"action"`
	CreatedAt time.Time `json:"created_at"`
}

type SwipeResponse struct {
	OK      bool         `json:"ok"`
	Swipe   SwipePayload `json:"swipe"`
	IsMatch bool         `json:"is_match"`
	MatchID *string      `json:"match_id,omitempty"`
}

func NewSwipePayload(swipe model.Swipe) SwipePayload {
	return SwipePayload{
		ID:        swipe.ID,
		SwipedID:  swipe.SwipedID,
		Action:    string(swipe.Action),
		CreatedAt: swipe.CreatedAt,
	}
}
