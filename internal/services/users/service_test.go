package users_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/mer-dating/backend/internal/domain/model"
	pgrepo "github.com/mer-dating/backend/internal/repo/postgres"
	usersvc "github.com/mer-dating/backend/internal/services/users"
)

type stubUserStore struct {
	users map[string]model.User
}

func (s *stubUserStore) GetByID(_ context.Context, userID string) (model.User, error) {
	user, ok := s.users[userID]
	if !ok {
		return model.User{}, pgrepo.ErrUserNotFound
	}
	return user, nil
}

func (s *stubUserStore) UpdateProfile(_ context.Context, userID string, update pgrepo.ProfileUpdate, now time.Time) (model.User, error) {
	user, ok := s.users[userID]
	if !ok {
		return model.User{}, pgrepo.ErrUserNotFound
	}

	if update.Name != nil {
		user.Name = *update.Name
	}
	if update.Age != nil {
		user.Age = *update.Age
	}
	if update.Bio != nil {
		user.Bio = *update.Bio
	}
	if update.Occupation != nil {
		user.Occupation = *update.Occupation
	}
	if update.Education != nil {
		user.Education = *update.Education
	}
	if update.Interests != nil {
		user.Interests = *update.Interests
	}
	if update.Preferences != nil {
		user.Preferences = *update.Preferences
	}
	user.UpdatedAt = now
	s.users[userID] = user
	return user, nil
}

func newUserServiceForTest(users ...model.User) (*usersvc.Service, *stubUserStore) {
	store := &stubUserStore{users: map[string]model.User{}}
	for _, user := range users {
		store.users[user.ID] = user
	}
	return usersvc.NewService(store), store
}

func TestGetProfile(t *testing.T) {
	svc, _ := newUserServiceForTest(
		model.User{ID: "emma", Name: "Emma", IsActive: true},
		model.User{ID: "gone", Name: "Gone", IsActive: false},
	)
	ctx := context.Background()

	user, err := svc.GetProfile(ctx, "emma")
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if user.Name != "Emma" {
		t.Fatalf("unexpected profile: %+v", user)
	}

	if _, err := svc.GetProfile(ctx, "missing"); !errors.Is(err, usersvc.ErrNotFound) {
		t.Fatalf("missing user should fail with ErrNotFound, got err=%v", err)
	}
	if _, err := svc.GetProfile(ctx, "gone"); !errors.Is(err, usersvc.ErrNotFound) {
		t.Fatalf("deactivated user should fail with ErrNotFound, got err=%v", err)
	}
}

func TestUpdateProfilePartial(t *testing.T) {
	svc, store := newUserServiceForTest(model.User{
		ID: "emma", Name: "Emma", Age: 28, Bio: "old bio",
		Preferences: model.DefaultPreferences(), IsActive: true,
	})
	ctx := context.Background()

	bio := "  new bio  "
	age := 29
	updated, err := svc.UpdateProfile(ctx, "emma", usersvc.UpdateInput{Bio: &bio, Age: &age})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Bio != "new bio" || updated.Age != 29 {
		t.Fatalf("fields not applied: %+v", updated)
	}
	if updated.Name != "Emma" {
		t.Fatalf("untouched field changed: %+v", updated)
	}
	if store.users["emma"].Bio != "new bio" {
		t.Fatalf("update was not persisted")
	}
}

func TestUpdateProfileValidation(t *testing.T) {
	svc, _ := newUserServiceForTest(model.User{ID: "emma", Name: "Emma", Age: 28, IsActive: true})
	ctx := context.Background()

	badAge := 17
	if _, err := svc.UpdateProfile(ctx, "emma", usersvc.UpdateInput{Age: &badAge}); !errors.Is(err, usersvc.ErrValidation) {
		t.Fatalf("underage update should fail with ErrValidation, got err=%v", err)
	}

	blank := "   "
	if _, err := svc.UpdateProfile(ctx, "emma", usersvc.UpdateInput{Name: &blank}); !errors.Is(err, usersvc.ErrValidation) {
		t.Fatalf("blank name should fail with ErrValidation, got err=%v", err)
	}

	longBio := strings.Repeat("x", usersvc.MaxBioLen+1)
	if _, err := svc.UpdateProfile(ctx, "emma", usersvc.UpdateInput{Bio: &longBio}); !errors.Is(err, usersvc.ErrValidation) {
		t.Fatalf("oversized bio should fail with ErrValidation, got err=%v", err)
	}

	badPrefs := model.Preferences{MinAge: 40, MaxAge: 20, MaxDistance: 10}
	if _, err := svc.UpdateProfile(ctx, "emma", usersvc.UpdateInput{Preferences: &badPrefs}); !errors.Is(err, usersvc.ErrValidation) {
		t.Fatalf("inverted age range should fail with ErrValidation, got err=%v", err)
	}

	if _, err := svc.UpdateProfile(ctx, "missing", usersvc.UpdateInput{}); !errors.Is(err, usersvc.ErrNotFound) {
		t.Fatalf("missing user should fail with ErrNotFound, got err=%v", err)
	}
}
