package balance

import (
	"fmt"

	"github.com/fkhayef/splitledger/pkg/money"
)

// Balance represents the net amount between the actor and one counterparty
type Balance struct {
	CounterpartyID string
	Name           string
	Amount         money.Money // Positive = they owe you, Negative = you owe them
	Message        string      // e.g., "You owe John $50.00" or "John owes you $30.00"
}

// New builds a Balance with its message
func New(counterpartyID, name string, amount money.Money) Balance {
	if name == "" {
		name = counterpartyID
	}
	return Balance{
		CounterpartyID: counterpartyID,
		Name:           name,
		Amount:         amount,
		Message:        Describe(amount, name),
	}
}

// Describe renders a balance from the actor's point of view
func Describe(amount money.Money, name string) string {
	switch {
	case amount.IsPositive():
		return fmt.Sprintf("%s owes you %s", name, amount)
	case amount.IsNegative():
		return fmt.Sprintf("You owe %s %s", name, amount.Abs())
	default:
		return fmt.Sprintf("You and %s are settled up", name)
	}
}

// Display renders a signed balance, or "All settled up" when it is zero
func Display(amount money.Money) string {
	if amount.IsZero() {
		return "All settled up"
	}
	return money.FormatSigned(amount)
}
