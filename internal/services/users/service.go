package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mer-dating/backend/internal/domain/model"
	pgrepo "github.com/mer-dating/backend/internal/repo/postgres"
)

const (
	MaxBioLen  = 500
	MaxNameLen = 100
)

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("user not found")
)

type UserStore interface {
	GetByID(ctx context.Context, userID string) (model.User, error)
	UpdateProfile(ctx context.Context, userID string, update pgrepo.ProfileUpdate, now time.Time) (model.User, error)
}

// UpdateInput carries a partial profile update. Nil fields are left as they
// are; provided fields replace the stored value after validation.
type UpdateInput struct {
	Name        *string
	Age         *int
	Bio         *string
	Occupation  *string
	Education   *string
	Interests   *[]string
	Preferences *model.Preferences
}

type Service struct {
	store UserStore
	now   func() time.Time
}

func NewService(store UserStore) *Service {
	return &Service{
		store: store,
		now:   time.Now,
	}
}

// GetProfile returns another user's profile for viewing. Deactivated users are
// reported as missing.
func (s *Service) GetProfile(ctx context.Context, targetID string) (model.User, error) {
	if strings.TrimSpace(targetID) == "" {
		return model.User{}, ErrValidation
	}
	if s.store == nil {
		return model.User{}, fmt.Errorf("user store is nil")
	}

	user, err := s.store.GetByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrUserNotFound) {
			return model.User{}, ErrNotFound
		}
		return model.User{}, fmt.Errorf("get user: %w", err)
	}
	if !user.IsActive {
		return model.User{}, ErrNotFound
	}

	return user, nil
}

func (s *Service) UpdateProfile(ctx context.Context, userID string, in UpdateInput) (model.User, error) {
	if strings.TrimSpace(userID) == "" {
		return model.User{}, ErrValidation
	}
	if s.store == nil {
		return model.User{}, fmt.Errorf("user store is nil")
	}

	update, err := validateUpdate(in)
	if err != nil {
		return model.User{}, err
	}

	user, err := s.store.UpdateProfile(ctx, userID, update, s.now().UTC())
	if err != nil {
		if errors.Is(err, pgrepo.ErrUserNotFound) {
			return model.User{}, ErrNotFound
		}
		return model.User{}, fmt.Errorf("update profile: %w", err)
	}

	return user, nil
}

func validateUpdate(in UpdateInput) (pgrepo.ProfileUpdate, error) {
	update := pgrepo.ProfileUpdate{
		Age:         in.Age,
		Interests:   in.Interests,
		Preferences: in.Preferences,
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" || len(name) > MaxNameLen {
			return pgrepo.ProfileUpdate{}, fmt.Errorf("invalid name: %w", ErrValidation)
		}
		update.Name = &name
	}
	if in.Age != nil && (*in.Age < model.MinAge || *in.Age > model.MaxAge) {
		return pgrepo.ProfileUpdate{}, fmt.Errorf("age is out of range: %w", ErrValidation)
	}
	if in.Bio != nil {
		bio := strings.TrimSpace(*in.Bio)
		if len(bio) > MaxBioLen {
			return pgrepo.ProfileUpdate{}, fmt.Errorf("bio is too long: %w", ErrValidation)
		}
		update.Bio = &bio
	}
	if in.Occupation != nil {
		occupation := strings.TrimSpace(*in.Occupation)
		update.Occupation = &occupation
	}
	if in.Education != nil {
		education := strings.TrimSpace(*in.Education)
		update.Education = &education
	}
	if in.Preferences != nil {
		prefs := *in.Preferences
		if prefs.MinAge < model.MinAge || prefs.MaxAge > model.MaxAge || prefs.MinAge > prefs.MaxAge {
			return pgrepo.ProfileUpdate{}, fmt.Errorf("preference age range is invalid: %w", ErrValidation)
		}
		if prefs.MaxDistance < model.MinDistanceKM || prefs.MaxDistance > model.MaxDistanceKM {
			return pgrepo.ProfileUpdate{}, fmt.Errorf("preference distance is out of range: %w", ErrValidation)
		}
	}

	return update, nil
}
