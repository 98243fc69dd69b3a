package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/fkhayef/splitledger/internal/balance"
	"github.com/fkhayef/splitledger/internal/expense"
	"github.com/fkhayef/splitledger/internal/expense/split"
	"github.com/fkhayef/splitledger/pkg/money"
)

// Common errors
var (
	ErrShareNotFound       = errors.New("share not found")
	ErrNotPayer            = errors.New("only the payer can do this")
	ErrNotParticipant      = errors.New("only the payer or the share owner can settle a share")
	ErrNotInvolved         = errors.New("only the payer and participants can view this expense")
	ErrCannotDeleteExpense = errors.New("cannot delete expense with settled shares")
	ErrCannotSettleSelf    = errors.New("cannot settle up with yourself")
	ErrAlreadySettled      = errors.New("already settled up - no pending debts")
)

// DefaultPageSize is how many expenses are read per store round trip when
// folding balances
const DefaultPageSize = 100

// ExpenseStore persists expenses and their shares
type ExpenseStore interface {
	Create(ctx context.Context, e *expense.Expense) error
	Update(ctx context.Context, e *expense.Expense) error
	SaveSettlements(ctx context.Context, expenses ...expense.Expense) error
	GetByID(ctx context.Context, id string) (*expense.Expense, error)
	Delete(ctx context.Context, id string) error
	ListBetweenUsers(ctx context.Context, userID, otherID string, limit, offset int) ([]expense.Expense, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]expense.Expense, error)
	ListByGroup(ctx context.Context, groupID string, limit, offset int) ([]expense.Expense, int, error)
}

// UserDirectory resolves display names for balance messages
type UserDirectory interface {
	Usernames(ctx context.Context, ids []string) (map[string]string, error)
}

// GroupDirectory checks group membership. It returns an error when the
// group is unknown or any of userIDs is not in it.
type GroupDirectory interface {
	CheckMembers(ctx context.Context, groupID string, userIDs []string) error
}

// Service handles expense and balance business logic on top of a store
type Service struct {
	ledger   *Ledger
	store    ExpenseStore
	users    UserDirectory
	groups   GroupDirectory
	pageSize int
}

// NewService creates a new ledger service with dependencies injected
func NewService(l *Ledger, store ExpenseStore, users UserDirectory, pageSize int) *Service {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return &Service{
		ledger:   l,
		store:    store,
		users:    users,
		pageSize: pageSize,
	}
}

// WithGroups makes the service enforce group membership. Without a
// directory, group ids are free-form tags.
func (s *Service) WithGroups(groups GroupDirectory) *Service {
	s.groups = groups
	return s
}

// Overview is the acting user's balance with everyone they share expenses with
type Overview struct {
	Balances []balance.Balance
	Net      money.Money
	Owed     money.Money
	Owing    money.Money
}

// GroupBalance is the acting user's standing inside one group
type GroupBalance struct {
	GroupID  string
	Balances []balance.Balance
	Net      money.Money
}

// SettleUpResult reports what a settle-up cleared
type SettleUpResult struct {
	Balance  balance.Balance // balance before settling
	Expenses []expense.Expense
}

// Preview computes shares without storing anything
func (s *Service) Preview(d Draft) ([]split.Share, error) {
	return s.ledger.Preview(d)
}

// CreateExpense validates the draft in commit mode and stores the expense
func (s *Service) CreateExpense(ctx context.Context, d Draft) (*expense.Expense, error) {
	e, err := s.ledger.Prepare(d)
	if err != nil {
		return nil, err
	}
	if err := s.checkGroup(ctx, &e); err != nil {
		return nil, err
	}
	if err := s.store.Create(ctx, &e); err != nil {
		slog.Error("Failed to store expense", "expense_id", e.ID, "error", err)
		return nil, err
	}
	slog.Info("Expense created", "expense_id", e.ID, "payer_id", e.PayerID, "amount", e.Amount.String(), "policy", e.Policy)
	return &e, nil
}

// GetExpense retrieves an expense with its shares
func (s *Service) GetExpense(ctx context.Context, id string) (*expense.Expense, error) {
	e, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, expense.ErrExpenseNotFound
	}
	return e, nil
}

// ViewExpense retrieves an expense for someone who paid for it or has a share
// in it
func (s *Service) ViewExpense(ctx context.Context, id, actorID string) (*expense.Expense, error) {
	e, err := s.GetExpense(ctx, id)
	if err != nil {
		return nil, err
	}
	if !e.Involves(actorID) {
		return nil, ErrNotInvolved
	}
	return e, nil
}

// EditExpense recomputes an expense from a new draft. Only the payer can edit,
// and every share comes back unsettled.
func (s *Service) EditExpense(ctx context.Context, id, actorID string, d Draft) (*expense.Expense, error) {
	existing, err := s.GetExpense(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.PayerID != actorID {
		return nil, ErrNotPayer
	}
	if d.PayerID == "" {
		d.PayerID = existing.PayerID
	}
	if d.Date.IsZero() {
		d.Date = existing.Date
	}

	e, err := s.ledger.Edit(*existing, d)
	if err != nil {
		return nil, err
	}
	if err := s.checkGroup(ctx, &e); err != nil {
		return nil, err
	}
	if err := s.store.Update(ctx, &e); err != nil {
		slog.Error("Failed to update expense", "expense_id", id, "error", err)
		return nil, err
	}
	return &e, nil
}

// DeleteExpense deletes an expense if nobody has paid their share back yet
func (s *Service) DeleteExpense(ctx context.Context, id, actorID string) error {
	e, err := s.GetExpense(ctx, id)
	if err != nil {
		return err
	}
	if e.PayerID != actorID {
		return ErrNotPayer
	}
	for _, sh := range e.Shares {
		if sh.Settled && sh.UserID != e.PayerID {
			return ErrCannotDeleteExpense
		}
	}
	return s.store.Delete(ctx, id)
}

// SettleShare marks one participant's share as paid. The payer or the share
// owner may do this.
func (s *Service) SettleShare(ctx context.Context, id, actorID, userID string) (*expense.Expense, error) {
	e, err := s.GetExpense(ctx, id)
	if err != nil {
		return nil, err
	}
	if actorID != e.PayerID && actorID != userID {
		return nil, ErrNotParticipant
	}

	settled, ok := s.ledger.Settle(*e, userID)
	if !ok {
		return nil, ErrShareNotFound
	}
	if err := s.store.SaveSettlements(ctx, settled); err != nil {
		slog.Error("Failed to settle share", "expense_id", id, "user_id", userID, "error", err)
		return nil, err
	}
	return &settled, nil
}

// SettleExpense marks every share of the expense as paid. Only the payer can
// do this.
func (s *Service) SettleExpense(ctx context.Context, id, actorID string) (*expense.Expense, error) {
	e, err := s.GetExpense(ctx, id)
	if err != nil {
		return nil, err
	}
	if e.PayerID != actorID {
		return nil, ErrNotPayer
	}

	settled := s.ledger.SettleAll(*e)
	if err := s.store.SaveSettlements(ctx, settled); err != nil {
		slog.Error("Failed to settle expense", "expense_id", id, "error", err)
		return nil, err
	}
	return &settled, nil
}

// SettleUp clears every pending debt between two users, in both directions,
// in one batch
func (s *Service) SettleUp(ctx context.Context, actorID, counterpartyID string) (*SettleUpResult, error) {
	if actorID == counterpartyID {
		return nil, ErrCannotSettleSelf
	}

	var all []expense.Expense
	err := s.eachPage(func(limit, offset int) ([]expense.Expense, error) {
		return s.store.ListBetweenUsers(ctx, actorID, counterpartyID, limit, offset)
	}, func(page []expense.Expense) {
		all = append(all, page...)
	})
	if err != nil {
		return nil, err
	}

	changed := s.ledger.SettleUp(actorID, counterpartyID, all)
	if len(changed) == 0 {
		return nil, ErrAlreadySettled
	}

	names, err := s.names(ctx, []string{counterpartyID})
	if err != nil {
		return nil, err
	}
	before := s.ledger.FriendBalance(actorID, counterpartyID, names[counterpartyID], all)

	if err := s.store.SaveSettlements(ctx, changed...); err != nil {
		slog.Error("Failed to settle up", "user_id", actorID, "counterparty_id", counterpartyID, "error", err)
		return nil, err
	}
	slog.Info("Settled up", "user_id", actorID, "counterparty_id", counterpartyID,
		"expenses", len(changed), "amount", before.Amount.String())

	return &SettleUpResult{Balance: before, Expenses: changed}, nil
}

// FriendBalance returns the acting user's balance with one friend. Expenses
// are read page by page and folded as they arrive.
func (s *Service) FriendBalance(ctx context.Context, actorID, counterpartyID string) (balance.Balance, error) {
	totals := s.ledger.NewTotals(actorID)
	err := s.eachPage(func(limit, offset int) ([]expense.Expense, error) {
		return s.store.ListBetweenUsers(ctx, actorID, counterpartyID, limit, offset)
	}, totals.Fold)
	if err != nil {
		return balance.Balance{}, err
	}

	names, err := s.names(ctx, []string{counterpartyID})
	if err != nil {
		return balance.Balance{}, err
	}
	return balance.New(counterpartyID, names[counterpartyID], totals.Balance(counterpartyID)), nil
}

// Overview returns the acting user's balances with everyone
func (s *Service) Overview(ctx context.Context, actorID string) (*Overview, error) {
	totals := s.ledger.NewTotals(actorID)
	err := s.eachPage(func(limit, offset int) ([]expense.Expense, error) {
		return s.store.ListByUser(ctx, actorID, limit, offset)
	}, totals.Fold)
	if err != nil {
		return nil, err
	}

	ids := totals.Counterparties()
	names, err := s.names(ctx, ids)
	if err != nil {
		return nil, err
	}

	balances := make([]balance.Balance, len(ids))
	for i, id := range ids {
		balances[i] = balance.New(id, names[id], totals.Balance(id))
	}
	return &Overview{
		Balances: balances,
		Net:      totals.Net(),
		Owed:     totals.Owed(),
		Owing:    totals.Owing(),
	}, nil
}

// GroupBalance returns the acting user's balances inside a group
func (s *Service) GroupBalance(ctx context.Context, actorID, groupID string) (*GroupBalance, error) {
	if err := s.checkMembers(ctx, groupID, actorID); err != nil {
		return nil, err
	}

	var all []expense.Expense
	err := s.eachPage(func(limit, offset int) ([]expense.Expense, error) {
		page, _, err := s.store.ListByGroup(ctx, groupID, limit, offset)
		return page, err
	}, func(page []expense.Expense) {
		all = append(all, page...)
	})
	if err != nil {
		return nil, err
	}

	totals := s.ledger.GroupBalance(actorID, groupID, all)
	ids := make([]string, 0, len(totals.Members))
	for id := range totals.Members {
		ids = append(ids, id)
	}
	names, err := s.names(ctx, ids)
	if err != nil {
		return nil, err
	}

	sort.Strings(ids)
	balances := make([]balance.Balance, len(ids))
	for i, id := range ids {
		balances[i] = balance.New(id, names[id], totals.Members[id])
	}
	return &GroupBalance{GroupID: groupID, Balances: balances, Net: totals.Net}, nil
}

// ListGroupExpenses retrieves one page of a group's expenses
func (s *Service) ListGroupExpenses(ctx context.Context, actorID, groupID string, page, perPage int) ([]expense.Expense, int, error) {
	if err := s.checkMembers(ctx, groupID, actorID); err != nil {
		return nil, 0, err
	}
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.store.ListByGroup(ctx, groupID, perPage, offset)
}

// checkGroup requires the payer and every participant of a group expense to
// belong to the group
func (s *Service) checkGroup(ctx context.Context, e *expense.Expense) error {
	if e.GroupID == "" {
		return nil
	}
	ids := []string{e.PayerID}
	for _, sh := range e.Shares {
		ids = append(ids, sh.UserID)
	}
	return s.checkMembers(ctx, e.GroupID, ids...)
}

func (s *Service) checkMembers(ctx context.Context, groupID string, userIDs ...string) error {
	if s.groups == nil {
		return nil
	}
	return s.groups.CheckMembers(ctx, groupID, userIDs)
}

// eachPage reads pages until one comes back short and hands each to fn once
func (s *Service) eachPage(fetch func(limit, offset int) ([]expense.Expense, error), fn func([]expense.Expense)) error {
	for offset := 0; ; offset += s.pageSize {
		page, err := fetch(s.pageSize, offset)
		if err != nil {
			return fmt.Errorf("failed to read expenses: %w", err)
		}
		fn(page)
		if len(page) < s.pageSize {
			return nil
		}
	}
}

func (s *Service) names(ctx context.Context, ids []string) (map[string]string, error) {
	if len(ids) == 0 {
		return map[string]string{}, nil
	}
	names, err := s.users.Usernames(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve usernames: %w", err)
	}
	return names, nil
}
