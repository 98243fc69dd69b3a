package group

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/fkhayef/splitledger/internal/database"
)

// Repository handles group data persistence
type Repository struct {
	db *database.DB
}

// NewRepository creates a new group repository
func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a group together with its initial members
func (r *Repository) Create(ctx context.Context, g *Group) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := r.db.Rebind(`
		INSERT INTO expense_groups (id, name, created_by, created_at)
		VALUES ($1, $2, $3, $4)
	`)
	if _, err := tx.ExecContext(ctx, query, g.ID, g.Name, g.CreatedBy, g.CreatedAt.UnixMilli()); err != nil {
		return fmt.Errorf("failed to create group: %w", err)
	}

	insert := r.db.Rebind(`
		INSERT INTO group_members (group_id, user_id, role, joined_at)
		VALUES ($1, $2, $3, $4)
	`)
	for _, m := range g.Members {
		if _, err := tx.ExecContext(ctx, insert, g.ID, m.UserID, string(m.Role), m.JoinedAt.UnixMilli()); err != nil {
			return fmt.Errorf("failed to add group member: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit group: %w", err)
	}
	return nil
}

// GetByID retrieves a group and its members, or nil when it does not exist
func (r *Repository) GetByID(ctx context.Context, id string) (*Group, error) {
	query := r.db.Rebind(`
		SELECT id, name, created_by, created_at
		FROM expense_groups
		WHERE id = $1
	`)

	g := &Group{}
	var createdAt int64
	err := r.db.QueryRowContext(ctx, query, id).Scan(&g.ID, &g.Name, &g.CreatedBy, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	g.CreatedAt = time.UnixMilli(createdAt).UTC()

	members, err := r.members(ctx, id)
	if err != nil {
		return nil, err
	}
	g.Members = members
	return g, nil
}

func (r *Repository) members(ctx context.Context, groupID string) ([]Member, error) {
	query := r.db.Rebind(`
		SELECT user_id, role, joined_at
		FROM group_members
		WHERE group_id = $1
		ORDER BY joined_at, user_id
	`)

	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to get group members: %w", err)
	}
	defer rows.Close()

	var members []Member
	for rows.Next() {
		var m Member
		var role string
		var joinedAt int64
		if err := rows.Scan(&m.UserID, &role, &joinedAt); err != nil {
			return nil, fmt.Errorf("failed to scan group member: %w", err)
		}
		m.Role = MemberRole(role)
		m.JoinedAt = time.UnixMilli(joinedAt).UTC()
		members = append(members, m)
	}
	return members, rows.Err()
}

// AddMember adds a user to a group
func (r *Repository) AddMember(ctx context.Context, groupID string, m Member) error {
	query := r.db.Rebind(`
		INSERT INTO group_members (group_id, user_id, role, joined_at)
		VALUES ($1, $2, $3, $4)
	`)
	if _, err := r.db.ExecContext(ctx, query, groupID, m.UserID, string(m.Role), m.JoinedAt.UnixMilli()); err != nil {
		return fmt.Errorf("failed to add group member: %w", err)
	}
	return nil
}

// RemoveMember removes a user from a group
func (r *Repository) RemoveMember(ctx context.Context, groupID, userID string) error {
	query := r.db.Rebind(`DELETE FROM group_members WHERE group_id = $1 AND user_id = $2`)
	if _, err := r.db.ExecContext(ctx, query, groupID, userID); err != nil {
		return fmt.Errorf("failed to remove group member: %w", err)
	}
	return nil
}
