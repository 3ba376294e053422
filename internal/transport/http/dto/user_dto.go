package dto

import (
	"time"

	"github.com/mer-dating/backend/internal/domain/model"
)

type LocationPayload struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type PreferencesPayload struct {
	MinAge      int `json:"min_age"`
	MaxAge      int `json:"max_age"`
	MaxDistance int `json:"max_distance"`
}

// UserResponse is the caller's own profile, email included.
type UserResponse struct {
	ID          string             `json:"id"`
	Email       string             `json:"email"`
	Name        string             `json:"name"`
	Age         int                `json:"age"`
	Bio         string             `json:"bio"`
	Photos      []string           `json:"photos"`
	Occupation  string             `json:"occupation"`
	Education   string             `json:"education"`
	Interests   []string           `json:"interests"`
	Preferences PreferencesPayload `json:"preferences"`
	CreatedAt   time.Time          `json:"created_at"`
}

// PublicProfileResponse is what other users see: no email, no preferences.
type PublicProfileResponse struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Age        int      `json:"age"`
	Bio        string   `json:"bio"`
	Photos     []string `json:"photos"`
	Occupation string   `json:"occupation"`
	Education  string   `json:"education"`
	Interests  []string `json:"interests"`
}

type UpdateProfileRequest struct {
	Name        *string             `json:"name,omitempty"`
	Age         *int                `json:"age,omitempty"`
	Bio         *string             `json:"bio,omitempty"`
	Occupation  *string             `json:"occupation,omitempty"`
	Education   *string             `json:"education,omitempty"`
	Interests   *[]string           `json:"interests,omitempty"`
	Preferences *PreferencesPayload `json:"preferences,omitempty"`
}

func NewUserResponse(user model.User) UserResponse {
	return UserResponse{
		ID:         user.ID,
		Email:      user.Email,
		Name:       user.Name,
		Age:        user.Age,
		Bio:        user.Bio,
		Photos:     emptyIfNil(user.Photos),
		Occupation: user.Occupation,
		Education:  user.Education,
		Interests:  emptyIfNil(user.Interests),
		Preferences: PreferencesPayload{
			MinAge:      user.Preferences.MinAge,
			MaxAge:      user.Preferences.MaxAge,
			MaxDistance: user.Preferences.MaxDistance,
		},
		CreatedAt: user.CreatedAt,
	}
}

func NewPublicProfileResponse(user model.User) PublicProfileResponse {
	return PublicProfileResponse{
		ID:         user.ID,
		Name:       user.Name,
		Age:        user.Age,
		Bio:        user.Bio,
		Photos:     emptyIfNil(user.Photos),
		Occupation: user.Occupation,
		Education:  user.Education,
		Interests:  emptyIfNil(user.Interests),
	}
}

func emptyIfNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
