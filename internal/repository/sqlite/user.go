package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/msomdec/pokedex/internal/domain"
)

// UserRepository implements domain.UserRepository using SQLite.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new SQLite-backed UserRepository.
func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db.SqlDB}
}

const userColumns = `id, first_name, middle_name, last_name, date_of_birth, gender,
	email, password_hash, phone, created_at, updated_at`

// Create inserts the user. A zero ID lets SQLite assign one.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	now := time.Now().UTC()

	var id any
	if user.ID != 0 {
		id = user.ID
	}

	result, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, first_name, middle_name, last_name, date_of_birth, gender,
			email, password_hash, phone, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, user.FirstName, user.MiddleName, user.LastName, nullTime(user.DateOfBirth), user.Gender,
		user.Email, user.PasswordHash, user.Phone, now, now,
	)
	if err != nil {
		return translateUserError(err, "insert user")
	}

	if user.ID == 0 {
		lastID, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("get last insert id: %w", err)
		}
		user.ID = lastID
	}

	user.CreatedAt = now
	user.UpdatedAt = now
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query user by id: %w", err)
	}
	return user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query user by email: %w", err)
	}
	return user, nil
}

// Update applies the non-nil patch fields and returns the stored row.
func (r *UserRepository) Update(ctx context.Context, id int64, patch domain.UserPatch) (*domain.User, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE users SET
			first_name    = COALESCE(?, first_name),
			middle_name   = COALESCE(?, middle_name),
			last_name     = COALESCE(?, last_name),
			date_of_birth = COALESCE(?, date_of_birth),
			gender        = COALESCE(?, gender),
			email         = COALESCE(?, email),
			password_hash = COALESCE(?, password_hash),
			phone         = COALESCE(?, phone),
			updated_at    = ?
		 WHERE id = ?`,
		nullString(patch.FirstName), nullString(patch.MiddleName), nullString(patch.LastName),
		nullTime(patch.DateOfBirth), nullString(patch.Gender), nullString(patch.Email),
		nullString(patch.PasswordHash), nullString(patch.Phone), time.Now().UTC(), id,
	)
	if err != nil {
		return nil, translateUserError(err, "update user")
	}

	if err := requireAffected(result); err != nil {
		return nil, err
	}

	return r.GetByID(ctx, id)
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return requireAffected(result)
}

func scanUser(row *sql.Row) (*domain.User, error) {
	user := &domain.User{}
	var dob sql.NullTime
	err := row.Scan(&user.ID, &user.FirstName, &user.MiddleName, &user.LastName, &dob, &user.Gender,
		&user.Email, &user.PasswordHash, &user.Phone, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if dob.Valid {
		t := dob.Time
		user.DateOfBirth = &t
	}
	return user, nil
}

func translateUserError(err error, op string) error {
	if column, ok := uniqueViolation(err); ok {
		switch column {
		case "users.email":
			return domain.ErrDuplicateEmail
		case "users.id":
			return domain.ErrDuplicateID
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

// requireAffected maps a write that touched no rows to domain.ErrNotFound.
func requireAffected(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}
