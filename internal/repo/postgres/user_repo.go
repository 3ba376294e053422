package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mer-dating/backend/internal/domain/model"
)

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

// ProfileUpdate carries the optional fields of a partial profile update. Nil
// pointers leave the stored value untouched.
type ProfileUpdate struct {
	Name        *string
	Age         *int
	Bio         *string
	Occupation  *string
	Education   *string
	Interests   *[]string
	Preferences *model.Preferences
}

type CandidateQuery struct {
	ViewerID   string
	MinAge     int
	MaxAge     int
	ExcludeIDs []string
	Limit      int
}

const userColumns = `
	id, email, password_hash, name, age, bio, photos, occupation, education,
	interests, pref_min_age, pref_max_age, pref_max_distance, last_lat, last_lng,
	is_active, created_at, updated_at`

func (r *UserRepo) Create(ctx context.Context, user model.User) (model.User, error) {
	if r.pool == nil {
		return model.User{}, fmt.Errorf("postgres pool is nil")
	}
	if strings.TrimSpace(user.ID) == "" || strings.TrimSpace(user.Email) == "" {
		return model.User{}, fmt.Errorf("invalid user payload")
	}

	var lat, lng *float64
	if user.Location != nil {
		lat = &user.Location.Lat
		lng = &user.Location.Lng
	}

	row := r.pool.QueryRow(ctx, `
INSERT INTO users (
	id, email, password_hash, name, age, bio, photos, occupation, education,
	interests, pref_min_age, pref_max_age, pref_max_distance, last_lat, last_lng,
	is_active, created_at, updated_at
) VALUES (
	$1, $2, $3, $4, $5, $6, $7, $8, $9,
	$10, $11, $12, $13, $14, $15,
	TRUE, $16, $16
)
RETURNING`+userColumns,
		user.ID,
		strings.ToLower(strings.TrimSpace(user.Email)),
		user.PasswordHash,
		user.Name,
		user.Age,
		user.Bio,
		user.Photos,
		user.Occupation,
		user.Education,
		user.Interests,
		user.Preferences.MinAge,
		user.Preferences.MaxAge,
		user.Preferences.MaxDistance,
		lat,
		lng,
		user.CreatedAt.UTC(),
	)

	created, err := scanUser(row)
	if err != nil {
		if isUniqueViolation(err, "users_email_key") {
			return model.User{}, ErrEmailTaken
		}
		return model.User{}, fmt.Errorf("create user: %w", err)
	}

	return created, nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	if r.pool == nil {
		return model.User{}, fmt.Errorf("postgres pool is nil")
	}

	row := r.pool.QueryRow(ctx, `
SELECT`+userColumns+`
FROM users
WHERE email = $1
`, strings.ToLower(strings.TrimSpace(email)))

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, ErrUserNotFound
		}
		return model.User{}, fmt.Errorf("get user by email: %w", err)
	}

	return user, nil
}

func (r *UserRepo) GetByID(ctx context.Context, userID string) (model.User, error) {
	if r.pool == nil {
		return model.User{}, fmt.Errorf("postgres pool is nil")
	}

	row := r.pool.QueryRow(ctx, `
SELECT`+userColumns+`
FROM users
WHERE id = $1
`, userID)

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, ErrUserNotFound
		}
		return model.User{}, fmt.Errorf("get user by id: %w", err)
	}

	return user, nil
}

// ExistsActive checks a user id inside the swipe transaction so the target
// cannot be deactivated between the check and the swipe insert.
func (r *UserRepo) ExistsActive(ctx context.Context, tx pgx.Tx, userID string) (bool, error) {
	if tx == nil {
		return false, fmt.Errorf("transaction is required")
	}
	if strings.TrimSpace(userID) == "" {
		return false, nil
	}

	var one int
	err := tx.QueryRow(ctx, `
SELECT 1
FROM users
WHERE id = $1 AND is_active = TRUE
`, userID).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check active user: %w", err)
	}

	return true, nil
}

func (r *UserRepo) UpdateProfile(ctx context.Context, userID string, update ProfileUpdate, now time.Time) (model.User, error) {
	if r.pool == nil {
		return model.User{}, fmt.Errorf("postgres pool is nil")
	}
	if strings.TrimSpace(userID) == "" {
		return model.User{}, fmt.Errorf("invalid user id")
	}

	var interests []string
	hasInterests := update.Interests != nil
	if hasInterests {
		interests = *update.Interests
	}

	var prefMin, prefMax, prefDistance *int
	if update.Preferences != nil {
		prefMin = &update.Preferences.MinAge
		prefMax = &update.Preferences.MaxAge
		prefDistance = &update.Preferences.MaxDistance
	}

	row := r.pool.QueryRow(ctx, `
UPDATE users SET
	name = COALESCE($2, name),
	age = COALESCE($3, age),
	bio = COALESCE($4, bio),
	occupation = COALESCE($5, occupation),
	education = COALESCE($6, education),
	interests = CASE WHEN $7::boolean THEN $8::text[] ELSE interests END,
	pref_min_age = COALESCE($9, pref_min_age),
	pref_max_age = COALESCE($10, pref_max_age),
	pref_max_distance = COALESCE($11, pref_max_distance),
	updated_at = $12
WHERE id = $1
RETURNING`+userColumns,
		userID,
		update.Name,
		update.Age,
		update.Bio,
		update.Occupation,
		update.Education,
		hasInterests,
		interests,
		prefMin,
		prefMax,
		prefDistance,
		now.UTC(),
	)

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, ErrUserNotFound
		}
		return model.User{}, fmt.Errorf("update user profile: %w", err)
	}

	return user, nil
}

func (r *UserRepo) ListCandidates(ctx context.Context, q CandidateQuery) ([]model.User, error) {
	if strings.TrimSpace(q.ViewerID) == "" {
		return nil, fmt.Errorf("invalid viewer id")
	}
	if q.Limit <= 0 {
		q.Limit = 10
	}
	if r.pool == nil {
		return []model.User{}, nil
	}

	exclude := q.ExcludeIDs
	if exclude == nil {
		exclude = []string{}
	}

	rows, err := r.pool.Query(ctx, `
SELECT`+userColumns+`
FROM users
WHERE
	is_active = TRUE
	AND id <> $1
	AND NOT (id = ANY($2::text[]))
	AND age BETWEEN $3 AND $4
ORDER BY created_at DESC, id DESC
LIMIT $5
`, q.ViewerID, exclude, q.MinAge, q.MaxAge, q.Limit)
	if err != nil {
		return nil, fmt.Errorf("list discovery candidates: %w", err)
	}
	defer rows.Close()

	items := make([]model.User, 0, q.Limit)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan discovery candidate: %w", err)
		}
		items = append(items, user)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate discovery candidates: %w", rows.Err())
	}

	return items, nil
}

func scanUser(row pgx.Row) (model.User, error) {
	var user model.User
	var lat, lng *float64
	if err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Name,
		&user.Age,
		&user.Bio,
		&user.Photos,
		&user.Occupation,
		&user.Education,
		&user.Interests,
		&user.Preferences.MinAge,
		&user.Preferences.MaxAge,
		&user.Preferences.MaxDistance,
		&lat,
		&lng,
		&user.IsActive,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return model.User{}, err
	}

	if lat != nil && lng != nil {
		user.Location = &model.Location{Lat: *lat, Lng: *lng}
	}

	return user, nil
}
