package expense

import (
	"time"

	"github.com/fkhayef/splitledger/internal/expense/split"
	"github.com/fkhayef/splitledger/pkg/money"
)

// Expense represents a shared cost with one payer and a share per participant
type Expense struct {
	ID          string
	PayerID     string
	Description string
	Amount      money.Money
	Policy      split.Policy
	Shares      []Share
	GroupID     string // empty for a direct friend-to-friend expense
	Category    string
	Date        time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Share represents one participant's portion of an expense
type Share struct {
	ID         string
	ExpenseID  string
	UserID     string
	Amount     money.Money
	Percentage *split.Percent // Only meaningful under PERCENTAGE
	Settled    bool
	SettledAt  *time.Time
}

// ShareOf returns the participant's share, if any.
func (e Expense) ShareOf(userID string) (Share, bool) {
	for _, s := range e.Shares {
		if s.UserID == userID {
			return s, true
		}
	}
	return Share{}, false
}

// Outstanding returns what the participant still owes the payer for this
// expense. The payer's own share never counts.
func (e Expense) Outstanding(userID string) money.Money {
	if userID == e.PayerID {
		return money.Zero(e.Amount.Currency)
	}
	s, ok := e.ShareOf(userID)
	if !ok || s.Settled {
		return money.Zero(e.Amount.Currency)
	}
	return s.Amount
}

// Involves reports whether the user paid for or has a share in the expense.
func (e Expense) Involves(userID string) bool {
	if e.PayerID == userID {
		return true
	}
	_, ok := e.ShareOf(userID)
	return ok
}

// SplitShares converts the shares to the calculator representation.
func (e Expense) SplitShares() []split.Share {
	out := make([]split.Share, len(e.Shares))
	for i, s := range e.Shares {
		out[i] = split.Share{UserID: s.UserID, Amount: s.Amount, Percentage: s.Percentage}
	}
	return out
}

// Clone returns a deep copy so transitions never mutate the caller's value.
func (e Expense) Clone() Expense {
	shares := make([]Share, len(e.Shares))
	for i, s := range e.Shares {
		if s.Percentage != nil {
			p := *s.Percentage
			s.Percentage = &p
		}
		if s.SettledAt != nil {
			at := *s.SettledAt
			s.SettledAt = &at
		}
		shares[i] = s
	}
	e.Shares = shares
	return e
}
