package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	MinAge = 18
	MaxAge = 100

	MinDistanceKM = 1
	MaxDistanceKM = 100
)

// Preferences are the viewer-side discovery bounds.
type Preferences struct {
	MinAge      int `json:"min_age"`
	MaxAge      int `json:"max_age"`
	MaxDistance int `json:"max_distance"`
}

func DefaultPreferences() Preferences {
	return Preferences{
		MinAge:      18,
		MaxAge:      35,
		MaxDistance: 25,
	}
}

type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Age          int
	Bio          string
	Photos       []string
	Occupation   string
	Education    string
	Interests    []string
	Preferences  Preferences
	Location     *Location
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func NewUserID() string {
	return uuid.NewString()
}
