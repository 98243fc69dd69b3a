package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/fkhayef/splitledger/internal/database"
)

// Repository handles user data persistence
type Repository struct {
	db *database.DB
}

// NewRepository creates a new user repository with database dependency injected
func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new user into the database
func (r *Repository) Create(ctx context.Context, u *User) error {
	query := r.db.Rebind(`
		INSERT INTO users (id, username, email, created_at)
		VALUES ($1, $2, $3, $4)
	`)

	if _, err := r.db.ExecContext(ctx, query, u.ID, u.Username, u.Email, u.CreatedAt.UnixMilli()); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByID retrieves a user by their ID
func (r *Repository) GetByID(ctx context.Context, id string) (*User, error) {
	query := r.db.Rebind(`
		SELECT id, username, email, created_at
		FROM users
		WHERE id = $1
	`)

	u, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

// GetByEmail retrieves a user by their email
func (r *Repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	query := r.db.Rebind(`
		SELECT id, username, email, created_at
		FROM users
		WHERE email = $1
	`)

	u, err := scanUser(r.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return u, nil
}

// Usernames maps each known id to its username. Unknown ids are left out.
func (r *Repository) Usernames(ctx context.Context, ids []string) (map[string]string, error) {
	names := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	query := r.db.Rebind(`SELECT id, username FROM users WHERE id IN (` + database.Placeholders(1, len(ids)) + `)`)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to look up usernames: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id, username string
		if err := rows.Scan(&id, &username); err != nil {
			return nil, fmt.Errorf("failed to scan username: %w", err)
		}
		names[id] = username
	}
	return names, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*User, error) {
	u := &User{}
	var createdAt int64
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &createdAt); err != nil {
		return nil, err
	}
	u.CreatedAt = time.UnixMilli(createdAt).UTC()
	return u, nil
}
