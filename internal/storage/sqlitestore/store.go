package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/avenk/careerpath-be/internal/models"
)

// Store is the relational Store implementation backed by sqlite. Every write
// is a single statement, so each mutation is atomic at the row level.
type Store struct {
	db *sql.DB
}

// New creates a sqlite-backed store over an already migrated database.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// CreateUser inserts a new user row. A violated UNIQUE constraint on email is
// reported as models.ErrDuplicateEmail.
func (s *Store) CreateUser(ctx context.Context, email, passwordHash string) (models.User, error) {
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO users (email, password_hash, created_at, updated_at) VALUES (?, ?, ?, ?)",
		email, passwordHash, now, now)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE") {
			return models.User{}, models.ErrDuplicateEmail
		}
		return models.User{}, fmt.Errorf("insert user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.User{}, err
	}
	return models.User{ID: id, Email: email, PasswordHash: passwordHash, CreatedAt: now, UpdatedAt: now}, nil
}

// GetUserByID retrieves a single user by id.
func (s *Store) GetUserByID(ctx context.Context, id int64) (models.User, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, email, password_hash, created_at, updated_at FROM users WHERE id = ?", id)
	return scanUser(row)
}

// GetUserByEmail retrieves a single user by exact (case-sensitive) email match.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, email, password_hash, created_at, updated_at FROM users WHERE email = ?", email)
	return scanUser(row)
}

func scanUser(row *sql.Row) (models.User, error) {
	var user models.User
	err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, models.ErrNotFound
		}
		return models.User{}, fmt.Errorf("scan user: %w", err)
	}
	return user, nil
}
