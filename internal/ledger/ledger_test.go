package ledger

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fkhayef/splitledger/internal/expense"
	"github.com/fkhayef/splitledger/internal/expense/split"
	"github.com/fkhayef/splitledger/pkg/money"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestLedger() *Ledger {
	n := 0
	return New(Options{
		Currency:  "USD",
		Tolerance: 1,
		Now:       func() time.Time { return fixedNow },
		NewID: func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		},
	})
}

func usd(minor int64) money.Money { return money.New(minor, "USD") }

func pct(p split.Percent) *split.Percent { return &p }

func amt(minor int64) *money.Money {
	m := usd(minor)
	return &m
}

func equalDraft(total int64, payer string, users ...string) Draft {
	inputs := make([]split.Input, len(users))
	for i, u := range users {
		inputs[i] = split.Input{UserID: u}
	}
	return Draft{
		PayerID:      payer,
		Description:  "Groceries",
		Amount:       usd(total),
		Policy:       "EQUAL",
		Participants: inputs,
	}
}

func shareSum(shares []expense.Share) int64 {
	var total int64
	for _, s := range shares {
		total += s.Amount.Amount
	}
	return total
}

func TestPreview(t *testing.T) {
	l := newTestLedger()

	t.Run("equal split previews remainder order", func(t *testing.T) {
		shares, err := l.Preview(equalDraft(1000, "alice", "alice", "bob", "carol"))
		require.NoError(t, err)
		require.Len(t, shares, 3)
		assert.Equal(t, []int64{334, 333, 333}, []int64{shares[0].Amount.Amount, shares[1].Amount.Amount, shares[2].Amount.Amount})
	})

	t.Run("mismatch returns shares with the error", func(t *testing.T) {
		d := Draft{
			PayerID: "alice",
			Amount:  usd(10000),
			Policy:  "UNEQUAL",
			Participants: []split.Input{
				{UserID: "alice", Amount: amt(5000)},
				{UserID: "bob", Amount: amt(4000)},
			},
		}
		shares, err := l.Preview(d)
		assert.ErrorIs(t, err, split.ErrAmountMismatch)
		assert.Len(t, shares, 2)
	})

	t.Run("malformed input returns no shares", func(t *testing.T) {
		shares, err := l.Preview(equalDraft(0, "alice", "alice", "bob"))
		assert.ErrorIs(t, err, split.ErrInvalidInput)
		assert.Nil(t, shares)
	})

	t.Run("missing payer", func(t *testing.T) {
		_, err := l.Preview(equalDraft(100, "", "alice", "bob"))
		assert.ErrorIs(t, err, split.ErrInvalidInput)
	})

	t.Run("unknown policy", func(t *testing.T) {
		d := equalDraft(100, "alice", "alice", "bob")
		d.Policy = "BY_SHARES"
		_, err := l.Preview(d)
		assert.ErrorIs(t, err, split.ErrInvalidInput)
	})
}

func TestPrepare(t *testing.T) {
	t.Run("mints ids and timestamps", func(t *testing.T) {
		l := newTestLedger()
		d := equalDraft(1000, "alice", "alice", "bob", "carol")
		d.GroupID = "trip"
		d.Date = time.Date(2026, 2, 20, 18, 45, 0, 0, time.UTC)

		e, err := l.Prepare(d)
		require.NoError(t, err)
		assert.Equal(t, "id-1", e.ID)
		assert.Equal(t, split.PolicyEqual, e.Policy)
		assert.Equal(t, "trip", e.GroupID)
		assert.Equal(t, time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC), e.Date)
		assert.Equal(t, fixedNow, e.CreatedAt)
		require.Len(t, e.Shares, 3)
		for i, s := range e.Shares {
			assert.Equal(t, fmt.Sprintf("id-%d", i+2), s.ID)
			assert.Equal(t, "id-1", s.ExpenseID)
			assert.False(t, s.Settled)
		}
		assert.Equal(t, int64(1000), shareSum(e.Shares))
	})

	t.Run("date defaults to today", func(t *testing.T) {
		e, err := newTestLedger().Prepare(equalDraft(500, "alice", "alice", "bob"))
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), e.Date)
	})

	t.Run("percentage drift is reconciled onto the first share", func(t *testing.T) {
		d := Draft{
			PayerID: "alice",
			Amount:  usd(1000),
			Policy:  "PERCENTAGE",
			Participants: []split.Input{
				{UserID: "alice", Percentage: pct(3333)},
				{UserID: "bob", Percentage: pct(3333)},
				{UserID: "carol", Percentage: pct(3334)},
			},
		}
		e, err := newTestLedger().Prepare(d)
		require.NoError(t, err)
		assert.Equal(t, int64(1000), shareSum(e.Shares))
		assert.Equal(t, int64(334), e.Shares[0].Amount.Amount)
		assert.Equal(t, int64(333), e.Shares[1].Amount.Amount)
		assert.Equal(t, split.Percent(3334), *e.Shares[2].Percentage)
	})

	t.Run("six-way percentage rounding drift is reconciled", func(t *testing.T) {
		users := []string{"alice", "bob", "carol", "dave", "erin", "frank"}
		pcts := []split.Percent{1667, 1667, 1667, 1667, 1666, 1666}
		inputs := make([]split.Input, len(users))
		for i, u := range users {
			inputs[i] = split.Input{UserID: u, Percentage: pct(pcts[i])}
		}
		d := Draft{PayerID: "alice", Amount: usd(100), Policy: "PERCENTAGE", Participants: inputs}

		shares, err := newTestLedger().Preview(d)
		require.NoError(t, err)
		var raw int64
		for _, s := range shares {
			raw += s.Amount.Amount
		}
		assert.Equal(t, int64(102), raw, "every share rounds up on its own")

		e, err := newTestLedger().Prepare(d)
		require.NoError(t, err)
		assert.Equal(t, int64(100), shareSum(e.Shares))
		assert.Equal(t, int64(16), e.Shares[0].Amount.Amount)
		assert.Equal(t, int64(16), e.Shares[1].Amount.Amount)
		assert.Equal(t, int64(17), e.Shares[2].Amount.Amount)
	})

	t.Run("unequal commit has no tolerance", func(t *testing.T) {
		d := Draft{
			PayerID: "alice",
			Amount:  usd(10000),
			Policy:  "EXACT",
			Participants: []split.Input{
				{UserID: "alice", Amount: amt(5000)},
				{UserID: "bob", Amount: amt(4999)},
			},
		}
		_, err := newTestLedger().Prepare(d)
		var verr *split.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, split.AmountMismatch, verr.Kind)
	})

	t.Run("percentages must add up", func(t *testing.T) {
		d := Draft{
			PayerID: "alice",
			Amount:  usd(1000),
			Policy:  "PERCENTAGE",
			Participants: []split.Input{
				{UserID: "alice", Percentage: pct(5000)},
				{UserID: "bob", Percentage: pct(4000)},
			},
		}
		_, err := newTestLedger().Prepare(d)
		assert.ErrorIs(t, err, split.ErrPercentageMismatch)
	})

	t.Run("payer alone is rejected", func(t *testing.T) {
		_, err := newTestLedger().Prepare(equalDraft(1000, "alice", "alice"))
		assert.ErrorIs(t, err, split.ErrEmptyShareSet)
	})
}

func TestReconcile(t *testing.T) {
	shares := []split.Share{{Amount: usd(10)}, {Amount: usd(10)}}
	reconcile(shares, 17)
	assert.Equal(t, int64(8), shares[0].Amount.Amount)
	assert.Equal(t, int64(9), shares[1].Amount.Amount)

	reconcile(nil, 5)
}

func TestEdit(t *testing.T) {
	l := newTestLedger()
	original, err := l.Prepare(equalDraft(1000, "alice", "alice", "bob"))
	require.NoError(t, err)
	original = l.SettleAll(original)
	original.CreatedAt = fixedNow.Add(-time.Hour)

	edited, err := l.Edit(original, equalDraft(3000, "alice", "alice", "bob", "carol"))
	require.NoError(t, err)
	assert.Equal(t, original.ID, edited.ID)
	assert.Equal(t, original.CreatedAt, edited.CreatedAt)
	assert.Equal(t, fixedNow, edited.UpdatedAt)
	require.Len(t, edited.Shares, 3)
	for _, s := range edited.Shares {
		assert.Equal(t, original.ID, s.ExpenseID)
		assert.False(t, s.Settled, "edits mint unsettled shares")
		assert.NotEqual(t, original.Shares[0].ID, s.ID)
	}

	_, err = l.Edit(original, equalDraft(-5, "alice", "alice", "bob"))
	assert.ErrorIs(t, err, split.ErrInvalidInput)
}

func TestSettleAndBalances(t *testing.T) {
	l := newTestLedger()
	e := expense.Expense{
		ID:      "e1",
		PayerID: "A",
		Amount:  usd(9000),
		Shares:  []expense.Share{{ID: "s1", UserID: "B", Amount: usd(4500)}},
	}
	expenses := []expense.Expense{e}

	ab := l.FriendBalance("A", "B", "Bob", expenses)
	assert.Equal(t, usd(4500), ab.Amount)
	assert.Equal(t, "Bob owes you $45.00", ab.Message)
	assert.Equal(t, usd(-4500), l.FriendBalance("B", "A", "Alice", expenses).Amount)

	settled, ok := l.Settle(e, "B")
	require.True(t, ok)
	assert.True(t, settled.IsSettled())
	assert.Equal(t, fixedNow, *settled.Shares[0].SettledAt)
	assert.False(t, e.Shares[0].Settled, "input must not change")

	after := l.FriendBalance("A", "B", "Bob", []expense.Expense{settled})
	assert.True(t, after.Amount.IsZero())
	assert.Equal(t, "You and Bob are settled up", after.Message)

	_, ok = l.Settle(e, "C")
	assert.False(t, ok)
}

func TestSettleUp(t *testing.T) {
	l := newTestLedger()
	expenses := []expense.Expense{
		{ID: "e1", PayerID: "alice", Amount: usd(2000), Shares: []expense.Share{
			{UserID: "alice", Amount: usd(1000)}, {UserID: "bob", Amount: usd(1000)},
		}},
		{ID: "e2", PayerID: "bob", Amount: usd(600), Shares: []expense.Share{
			{UserID: "alice", Amount: usd(300)}, {UserID: "bob", Amount: usd(300)},
		}},
		{ID: "e3", PayerID: "alice", Amount: usd(500), Shares: []expense.Share{
			{UserID: "bob", Amount: usd(500), Settled: true},
		}},
		{ID: "e4", PayerID: "carol", Amount: usd(900), Shares: []expense.Share{
			{UserID: "alice", Amount: usd(450)}, {UserID: "bob", Amount: usd(450)},
		}},
	}

	changed := l.SettleUp("alice", "bob", expenses)
	require.Len(t, changed, 2)
	assert.Equal(t, "e1", changed[0].ID)
	assert.Equal(t, "e2", changed[1].ID)

	bob, _ := changed[0].ShareOf("bob")
	assert.True(t, bob.Settled)
	alice, _ := changed[0].ShareOf("alice")
	assert.False(t, alice.Settled, "the payer's own share is left alone")

	assert.True(t, l.FriendBalance("alice", "bob", "", changed).Amount.IsZero())
	assert.Empty(t, l.SettleUp("alice", "bob", changed))
}

func TestGroupBalanceAndOverview(t *testing.T) {
	l := newTestLedger()
	expenses := []expense.Expense{
		{ID: "e1", PayerID: "alice", GroupID: "flat", Amount: usd(900), Shares: []expense.Share{
			{UserID: "alice", Amount: usd(300)}, {UserID: "bob", Amount: usd(300)}, {UserID: "carol", Amount: usd(300)},
		}},
		{ID: "e2", PayerID: "bob", Amount: usd(1000), Shares: []expense.Share{
			{UserID: "alice", Amount: usd(1000)},
		}},
	}

	group := l.GroupBalance("alice", "flat", expenses)
	assert.Equal(t, usd(600), group.Net)
	assert.Len(t, group.Members, 2)

	overview := l.Overview("alice", expenses)
	assert.Equal(t, usd(-700), overview.Balance("bob"))
	assert.Equal(t, usd(300), overview.Balance("carol"))
	assert.Equal(t, usd(-400), overview.Net())
	assert.Equal(t, usd(300), overview.Owed())
	assert.Equal(t, usd(700), overview.Owing())
}
