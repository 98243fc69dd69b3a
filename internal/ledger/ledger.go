// Package ledger sequences the split engine for callers: calculator and
// validator when an expense is written, settlement transitions when it is
// paid back, and the aggregator when balances are read.
//
// Ledger itself does no I/O. Service wraps it with a store and a user
// directory, and Handler exposes the service over HTTP.
package ledger

import (
	"time"

	"github.com/google/uuid"

	"github.com/fkhayef/splitledger/internal/balance"
	"github.com/fkhayef/splitledger/internal/expense"
	"github.com/fkhayef/splitledger/internal/expense/split"
	"github.com/fkhayef/splitledger/pkg/money"
)

// Options configures a Ledger. Zero values fall back to sensible defaults.
type Options struct {
	Currency  string           // balances are netted in this currency only
	Tolerance int64            // allowed share-sum drift, in minor units
	Now       func() time.Time // clock used for timestamps
	NewID     func() string    // id generator for expenses and shares
}

// Ledger is safe for concurrent use; it holds no mutable state.
type Ledger struct {
	factory    *split.Factory
	validator  split.Validator
	aggregator balance.Aggregator
	now        func() time.Time
	newID      func() string
}

// New creates a ledger from options
func New(opts Options) *Ledger {
	if opts.Currency == "" {
		opts.Currency = money.DefaultCurrency
	}
	if opts.Now == nil {
		opts.Now = func() time.Time { return time.Now().UTC() }
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	return &Ledger{
		factory:    split.NewFactory(),
		validator:  split.NewValidator(opts.Tolerance),
		aggregator: balance.NewAggregator(opts.Currency),
		now:        opts.Now,
		newID:      opts.NewID,
	}
}

// Currency returns the currency balances are computed in
func (l *Ledger) Currency() string {
	return l.aggregator.Currency
}

// Draft is an expense as entered, before its shares are computed
type Draft struct {
	PayerID      string
	Description  string
	Amount       money.Money
	Policy       string
	Participants []split.Input
	GroupID      string
	Category     string
	Date         time.Time // zero means today
}

func (l *Ledger) compute(d Draft) (split.Policy, []split.Share, error) {
	if d.PayerID == "" {
		return "", nil, &split.InvalidInputError{Field: "payer", Reason: "is required"}
	}
	strategy, err := l.factory.CreateFromString(d.Policy)
	if err != nil {
		return "", nil, err
	}
	shares, err := strategy.Calculate(d.Amount, d.Participants)
	if err != nil {
		return "", nil, err
	}
	return strategy.Policy(), shares, nil
}

// Preview computes shares for a form that is still being edited. Shares are
// returned even when validation fails so the caller can show them next to the
// error; only malformed input yields nil shares.
func (l *Ledger) Preview(d Draft) ([]split.Share, error) {
	policy, shares, err := l.compute(d)
	if err != nil {
		return nil, err
	}
	return shares, l.validator.Validate(d.Amount, d.PayerID, shares, policy, split.Interactive)
}

// Prepare computes and validates a new expense for storage. Percentage splits
// may drift from the total by the configured tolerance; that drift is moved
// onto the first shares so the stored shares add up exactly.
func (l *Ledger) Prepare(d Draft) (expense.Expense, error) {
	policy, shares, err := l.compute(d)
	if err != nil {
		return expense.Expense{}, err
	}
	if err := l.validator.Validate(d.Amount, d.PayerID, shares, policy, split.Commit); err != nil {
		return expense.Expense{}, err
	}
	reconcile(shares, d.Amount.Amount)

	now := l.now()
	date := d.Date
	if date.IsZero() {
		date = now
	}
	e := expense.Expense{
		ID:          l.newID(),
		PayerID:     d.PayerID,
		Description: d.Description,
		Amount:      d.Amount,
		Policy:      policy,
		GroupID:     d.GroupID,
		Category:    d.Category,
		Date:        time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	e.Shares = l.mintShares(e.ID, shares)
	return e, nil
}

// Edit recomputes an existing expense from a new draft. The expense keeps its
// id and creation time but every share is minted fresh and unsettled.
func (l *Ledger) Edit(existing expense.Expense, d Draft) (expense.Expense, error) {
	e, err := l.Prepare(d)
	if err != nil {
		return expense.Expense{}, err
	}
	e.ID = existing.ID
	e.CreatedAt = existing.CreatedAt
	for i := range e.Shares {
		e.Shares[i].ExpenseID = existing.ID
	}
	return e, nil
}

func (l *Ledger) mintShares(expenseID string, shares []split.Share) []expense.Share {
	out := make([]expense.Share, len(shares))
	for i, s := range shares {
		out[i] = expense.Share{
			ID:         l.newID(),
			ExpenseID:  expenseID,
			UserID:     s.UserID,
			Amount:     s.Amount,
			Percentage: s.Percentage,
		}
	}
	return out
}

// reconcile spreads total - sum(shares) one minor unit at a time over the
// first shares in order.
func reconcile(shares []split.Share, total int64) {
	var sum int64
	for _, s := range shares {
		sum += s.Amount.Amount
	}
	diff := total - sum
	step := int64(1)
	if diff < 0 {
		step = -1
	}
	for i := 0; diff != 0 && len(shares) > 0; i = (i + 1) % len(shares) {
		shares[i].Amount.Amount += step
		diff -= step
	}
}

// Settle marks one participant's share as settled
func (l *Ledger) Settle(e expense.Expense, userID string) (expense.Expense, bool) {
	now := l.now()
	settled, ok := expense.SettleParticipant(e, userID, now)
	if ok {
		settled.UpdatedAt = now
	}
	return settled, ok
}

// SettleAll marks every share of the expense as settled
func (l *Ledger) SettleAll(e expense.Expense) expense.Expense {
	now := l.now()
	settled := expense.SettleAll(e, now)
	settled.UpdatedAt = now
	return settled
}

// SettleUp settles every outstanding claim between two users, in both
// directions, that FriendBalance would count. Only the expenses that changed
// are returned; the caller persists them together.
func (l *Ledger) SettleUp(actorID, counterpartyID string, expenses []expense.Expense) []expense.Expense {
	now := l.now()
	var changed []expense.Expense
	for _, e := range expenses {
		if e.Amount.Currency != l.Currency() {
			continue
		}
		var debtor string
		switch e.PayerID {
		case actorID:
			debtor = counterpartyID
		case counterpartyID:
			debtor = actorID
		default:
			continue
		}
		if e.Outstanding(debtor).IsZero() {
			continue
		}
		settled, ok := expense.SettleParticipant(e, debtor, now)
		if !ok {
			continue
		}
		settled.UpdatedAt = now
		changed = append(changed, settled)
	}
	return changed
}

// FriendBalance nets the expenses into the actor's balance with one friend
func (l *Ledger) FriendBalance(actorID, counterpartyID, name string, expenses []expense.Expense) balance.Balance {
	return balance.New(counterpartyID, name, l.aggregator.NetBalance(actorID, counterpartyID, expenses))
}

// GroupBalance nets the expenses of one group from the actor's point of view
func (l *Ledger) GroupBalance(actorID, groupID string, expenses []expense.Expense) balance.GroupTotals {
	return l.aggregator.GroupTotals(actorID, groupID, expenses)
}

// Overview folds expenses into the actor's balances with everyone
func (l *Ledger) Overview(actorID string, expenses []expense.Expense) *balance.Totals {
	totals := l.NewTotals(actorID)
	totals.Fold(expenses)
	return totals
}

// NewTotals starts an empty fold for callers that read expenses page by page
func (l *Ledger) NewTotals(actorID string) *balance.Totals {
	return l.aggregator.NewTotals(actorID)
}
