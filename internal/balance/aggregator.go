// Package balance nets expenses into signed balances between participants.
//
// Balances are derived on demand and never stored. A positive amount means the
// counterparty owes the actor, a negative amount means the actor owes the
// counterparty. Only the direct claim implied by who paid is counted: when
// neither of the two paid an expense, it contributes nothing to their balance.
package balance

import (
	"sort"

	"github.com/fkhayef/splitledger/internal/expense"
	"github.com/fkhayef/splitledger/pkg/money"
)

// Aggregator nets expenses in a single currency. Expenses in any other
// currency are ignored; there is no conversion.
type Aggregator struct {
	Currency string
}

// NewAggregator creates an aggregator for the given currency
func NewAggregator(currency string) Aggregator {
	return Aggregator{Currency: money.Zero(currency).Currency}
}

// NetBalance returns what counterparty owes actor across the expenses.
func (a Aggregator) NetBalance(actorID, counterpartyID string, expenses []expense.Expense) money.Money {
	var net int64
	for _, e := range expenses {
		if e.Amount.Currency != a.Currency || actorID == counterpartyID {
			continue
		}
		switch e.PayerID {
		case actorID:
			net += e.Outstanding(counterpartyID).Amount
		case counterpartyID:
			net -= e.Outstanding(actorID).Amount
		}
	}
	return money.New(net, a.Currency)
}

// Totals accumulates an actor's balance with every counterparty. Pages of
// expenses can be folded one at a time; folding the same page twice counts
// it twice, so callers must fold each page exactly once.
type Totals struct {
	actorID  string
	currency string
	balances map[string]int64
}

// NewTotals starts an empty fold for the actor
func (a Aggregator) NewTotals(actorID string) *Totals {
	return &Totals{
		actorID:  actorID,
		currency: a.Currency,
		balances: make(map[string]int64),
	}
}

// Fold adds a page of expenses to the running balances
func (t *Totals) Fold(expenses []expense.Expense) {
	for _, e := range expenses {
		if e.Amount.Currency != t.currency {
			continue
		}
		if e.PayerID == t.actorID {
			for _, s := range e.Shares {
				if s.UserID == t.actorID || s.Settled {
					continue
				}
				t.balances[s.UserID] += s.Amount.Amount
			}
			continue
		}
		if owed := e.Outstanding(t.actorID); !owed.IsZero() {
			t.balances[e.PayerID] -= owed.Amount
		}
	}
}

// Balance returns the net balance with one counterparty
func (t *Totals) Balance(counterpartyID string) money.Money {
	return money.New(t.balances[counterpartyID], t.currency)
}

// Counterparties lists everyone with a non-zero balance, sorted by id
func (t *Totals) Counterparties() []string {
	ids := make([]string, 0, len(t.balances))
	for id, amount := range t.balances {
		if amount != 0 {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// Net is the actor's overall balance: owed minus owing
func (t *Totals) Net() money.Money {
	var net int64
	for _, amount := range t.balances {
		net += amount
	}
	return money.New(net, t.currency)
}

// Owed is the total others owe the actor
func (t *Totals) Owed() money.Money {
	var owed int64
	for _, amount := range t.balances {
		if amount > 0 {
			owed += amount
		}
	}
	return money.New(owed, t.currency)
}

// Owing is the total the actor owes others, as a positive amount
func (t *Totals) Owing() money.Money {
	var owing int64
	for _, amount := range t.balances {
		if amount < 0 {
			owing -= amount
		}
	}
	return money.New(owing, t.currency)
}

// GroupTotals holds an actor's balances inside one group
type GroupTotals struct {
	GroupID string
	Members map[string]money.Money // counterparty -> balance, zero balances omitted
	Net     money.Money
}

// GroupTotals nets only the expenses that belong to the group
func (a Aggregator) GroupTotals(actorID, groupID string, expenses []expense.Expense) GroupTotals {
	inGroup := make([]expense.Expense, 0, len(expenses))
	for _, e := range expenses {
		if e.GroupID == groupID {
			inGroup = append(inGroup, e)
		}
	}

	totals := a.NewTotals(actorID)
	totals.Fold(inGroup)

	members := make(map[string]money.Money)
	for _, id := range totals.Counterparties() {
		members[id] = totals.Balance(id)
	}
	return GroupTotals{
		GroupID: groupID,
		Members: members,
		Net:     totals.Net(),
	}
}
