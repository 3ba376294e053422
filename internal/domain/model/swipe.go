package model

import (
	"time"

	"github.com/google/uuid"
)

type SwipeAction string

const (
	SwipeLike      SwipeAction = "like"
	SwipeDislike   SwipeAction = "dislike"
	SwipeSuperLike SwipeAction = "super_like"
)

func (a SwipeAction) Valid() bool {
	switch a {
	case SwipeLike, SwipeDislike, SwipeSuperLike:
		return true
	default:
		return false
	}
}

type Swipe struct {
	ID        string
	SwiperID  string
	SwipedID  string
	Action    SwipeAction
	CreatedAt time.Time
}

func NewSwipeID() string {
	return uuid.NewString()
}
