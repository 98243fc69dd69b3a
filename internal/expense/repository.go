package expense

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/fkhayef/splitledger/internal/database"
	"github.com/fkhayef/splitledger/internal/expense/split"
	"github.com/fkhayef/splitledger/pkg/money"
)

// ErrExpenseNotFound is returned by writes against a missing expense
var ErrExpenseNotFound = errors.New("expense not found")

const dateLayout = "2006-01-02"

const expenseColumns = `e.id, e.payer_id, e.description, e.amount_minor, e.currency, e.split_policy,
	e.group_id, e.category, e.expense_date, e.created_at, e.updated_at`

// Repository handles expense and share persistence
type Repository struct {
	db *database.DB
}

// NewRepository creates a new expense repository
func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts an expense together with its shares
func (r *Repository) Create(ctx context.Context, e *Expense) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := r.db.Rebind(`
		INSERT INTO expenses (id, payer_id, description, amount_minor, currency, split_policy,
			group_id, category, expense_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`)
	_, err = tx.ExecContext(ctx, query,
		e.ID,
		e.PayerID,
		e.Description,
		e.Amount.Amount,
		e.Amount.Currency,
		string(e.Policy),
		nullString(e.GroupID),
		e.Category,
		e.Date.Format(dateLayout),
		e.CreatedAt.UnixMilli(),
		e.UpdatedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}

	if err := r.insertShares(ctx, tx, e); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit expense: %w", err)
	}
	return nil
}

// Update replaces the expense fields and all of its shares
func (r *Repository) Update(ctx context.Context, e *Expense) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := r.db.Rebind(`
		UPDATE expenses
		SET payer_id = $1, description = $2, amount_minor = $3, currency = $4, split_policy = $5,
			group_id = $6, category = $7, expense_date = $8, updated_at = $9
		WHERE id = $10
	`)
	result, err := tx.ExecContext(ctx, query,
		e.PayerID,
		e.Description,
		e.Amount.Amount,
		e.Amount.Currency,
		string(e.Policy),
		nullString(e.GroupID),
		e.Category,
		e.Date.Format(dateLayout),
		e.UpdatedAt.UnixMilli(),
		e.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ErrExpenseNotFound
	}

	if _, err := tx.ExecContext(ctx, r.db.Rebind(`DELETE FROM expense_shares WHERE expense_id = $1`), e.ID); err != nil {
		return fmt.Errorf("failed to delete shares: %w", err)
	}
	if err := r.insertShares(ctx, tx, e); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit expense update: %w", err)
	}
	return nil
}

// SaveSettlements persists the settlement state of every share of the given
// expenses in a single transaction
func (r *Repository) SaveSettlements(ctx context.Context, expenses ...Expense) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	shareQuery := r.db.Rebind(`UPDATE expense_shares SET settled = $1, settled_at = $2 WHERE id = $3`)
	expenseQuery := r.db.Rebind(`UPDATE expenses SET updated_at = $1 WHERE id = $2`)

	for _, e := range expenses {
		for _, s := range e.Shares {
			var settledAt sql.NullInt64
			if s.SettledAt != nil {
				settledAt = sql.NullInt64{Int64: s.SettledAt.UnixMilli(), Valid: true}
			}
			if _, err := tx.ExecContext(ctx, shareQuery, s.Settled, settledAt, s.ID); err != nil {
				return fmt.Errorf("failed to settle share %s: %w", s.ID, err)
			}
		}
		if _, err := tx.ExecContext(ctx, expenseQuery, e.UpdatedAt.UnixMilli(), e.ID); err != nil {
			return fmt.Errorf("failed to touch expense %s: %w", e.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit settlements: %w", err)
	}
	return nil
}

// GetByID retrieves an expense with its shares; nil if it does not exist
func (r *Repository) GetByID(ctx context.Context, id string) (*Expense, error) {
	query := r.db.Rebind(`SELECT ` + expenseColumns + ` FROM expenses e WHERE e.id = $1`)

	e, err := scanExpense(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	expenses := []Expense{*e}
	if err := r.attachShares(ctx, expenses); err != nil {
		return nil, err
	}
	return &expenses[0], nil
}

// Delete removes an expense and its shares
func (r *Repository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Delete shares first (foreign key constraint)
	if _, err := tx.ExecContext(ctx, r.db.Rebind(`DELETE FROM expense_shares WHERE expense_id = $1`), id); err != nil {
		return fmt.Errorf("failed to delete shares: %w", err)
	}

	result, err := tx.ExecContext(ctx, r.db.Rebind(`DELETE FROM expenses WHERE id = $1`), id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ErrExpenseNotFound
	}

	return tx.Commit()
}

// ListBetweenUsers returns a page of expenses where one user paid and the
// other holds a share, in either direction
func (r *Repository) ListBetweenUsers(ctx context.Context, userID, otherID string, limit, offset int) ([]Expense, error) {
	query := r.db.Rebind(`
		SELECT ` + expenseColumns + `
		FROM expenses e
		WHERE (e.payer_id = $1 AND EXISTS (
				SELECT 1 FROM expense_shares s WHERE s.expense_id = e.id AND s.participant_id = $2))
		   OR (e.payer_id = $3 AND EXISTS (
				SELECT 1 FROM expense_shares s WHERE s.expense_id = e.id AND s.participant_id = $4))
		ORDER BY e.created_at, e.id
		LIMIT $5 OFFSET $6
	`)
	return r.list(ctx, query, userID, otherID, otherID, userID, limit, offset)
}

// ListByUser returns a page of expenses the user paid for or has a share in
func (r *Repository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Expense, error) {
	query := r.db.Rebind(`
		SELECT ` + expenseColumns + `
		FROM expenses e
		WHERE e.payer_id = $1 OR EXISTS (
			SELECT 1 FROM expense_shares s WHERE s.expense_id = e.id AND s.participant_id = $2)
		ORDER BY e.created_at, e.id
		LIMIT $3 OFFSET $4
	`)
	return r.list(ctx, query, userID, userID, limit, offset)
}

// ListByGroup returns a page of a group's expenses, newest first, and the total count
func (r *Repository) ListByGroup(ctx context.Context, groupID string, limit, offset int) ([]Expense, int, error) {
	var total int
	countQuery := r.db.Rebind(`SELECT COUNT(*) FROM expenses WHERE group_id = $1`)
	if err := r.db.QueryRowContext(ctx, countQuery, groupID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count expenses: %w", err)
	}

	query := r.db.Rebind(`
		SELECT ` + expenseColumns + `
		FROM expenses e
		WHERE e.group_id = $1
		ORDER BY e.expense_date DESC, e.created_at DESC, e.id
		LIMIT $2 OFFSET $3
	`)
	expenses, err := r.list(ctx, query, groupID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return expenses, total, nil
}

func (r *Repository) list(ctx context.Context, query string, args ...any) ([]Expense, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}

	if err := r.attachShares(ctx, expenses); err != nil {
		return nil, err
	}
	return expenses, nil
}

// attachShares loads the shares of every expense in one query
func (r *Repository) attachShares(ctx context.Context, expenses []Expense) error {
	if len(expenses) == 0 {
		return nil
	}

	index := make(map[string]int, len(expenses))
	args := make([]any, len(expenses))
	for i, e := range expenses {
		index[e.ID] = i
		args[i] = e.ID
	}

	query := r.db.Rebind(`
		SELECT id, expense_id, participant_id, amount_minor, percentage_bp, settled, settled_at
		FROM expense_shares
		WHERE expense_id IN (` + database.Placeholders(1, len(args)) + `)
		ORDER BY expense_id, position
	`)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to get shares: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			s         Share
			amount    int64
			percent   sql.NullInt64
			settledAt sql.NullInt64
		)
		if err := rows.Scan(&s.ID, &s.ExpenseID, &s.UserID, &amount, &percent, &s.Settled, &settledAt); err != nil {
			return fmt.Errorf("failed to scan share: %w", err)
		}

		i := index[s.ExpenseID]
		s.Amount = money.New(amount, expenses[i].Amount.Currency)
		if percent.Valid {
			p := split.Percent(percent.Int64)
			s.Percentage = &p
		}
		if settledAt.Valid {
			at := time.UnixMilli(settledAt.Int64).UTC()
			s.SettledAt = &at
		}
		expenses[i].Shares = append(expenses[i].Shares, s)
	}
	return rows.Err()
}

func (r *Repository) insertShares(ctx context.Context, tx *sql.Tx, e *Expense) error {
	query := r.db.Rebind(`
		INSERT INTO expense_shares (id, expense_id, participant_id, position, amount_minor, percentage_bp, settled, settled_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`)
	for i, s := range e.Shares {
		var percent, settledAt sql.NullInt64
		if s.Percentage != nil {
			percent = sql.NullInt64{Int64: int64(*s.Percentage), Valid: true}
		}
		if s.SettledAt != nil {
			settledAt = sql.NullInt64{Int64: s.SettledAt.UnixMilli(), Valid: true}
		}
		if _, err := tx.ExecContext(ctx, query, s.ID, e.ID, s.UserID, i, s.Amount.Amount, percent, s.Settled, settledAt); err != nil {
			return fmt.Errorf("failed to create share: %w", err)
		}
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExpense(row rowScanner) (*Expense, error) {
	var (
		e         Expense
		amount    int64
		currency  string
		policy    string
		groupID   sql.NullString
		date      string
		createdAt int64
		updatedAt int64
	)
	if err := row.Scan(&e.ID, &e.PayerID, &e.Description, &amount, &currency, &policy,
		&groupID, &e.Category, &date, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	e.Amount = money.New(amount, currency)
	e.Policy = split.Policy(policy)
	e.GroupID = groupID.String
	e.CreatedAt = time.UnixMilli(createdAt).UTC()
	e.UpdatedAt = time.UnixMilli(updatedAt).UTC()
	if parsed, err := time.Parse(dateLayout, date); err == nil {
		e.Date = parsed
	}
	return &e, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
