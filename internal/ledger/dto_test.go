package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fkhayef/splitledger/internal/expense/split"
)

func decimalPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestExpenseRequestToDraft(t *testing.T) {
	req := ExpenseRequest{
		Description: " Taxi ",
		Amount:      decimal.RequireFromString("12.345"),
		SplitType:   "EQUAL",
		Date:        "2026-02-14",
		Participants: []*ParticipantRequest{
			{UserID: " alice "},
			{UserID: "bob"},
		},
	}
	d, err := req.ToDraft("alice", "USD")
	require.NoError(t, err)
	assert.Equal(t, "alice", d.PayerID)
	assert.Equal(t, "Taxi", d.Description)
	assert.Equal(t, usd(1235), d.Amount)
	assert.Equal(t, "alice", d.Participants[0].UserID)
	assert.Equal(t, 2026, d.Date.Year())
}

func TestExpenseRequestToDraftRejectsOutOfRange(t *testing.T) {
	tests := []struct {
		name string
		req  ExpenseRequest
	}{
		{
			name: "total beyond int64",
			req: ExpenseRequest{
				Amount:       decimal.RequireFromString("100000000000000000000"),
				SplitType:    "EQUAL",
				Participants: []*ParticipantRequest{{UserID: "alice"}, {UserID: "bob"}},
			},
		},
		{
			name: "participant amount beyond int64",
			req: ExpenseRequest{
				Amount:    decimal.RequireFromString("10.00"),
				SplitType: "UNEQUAL",
				Participants: []*ParticipantRequest{
					{UserID: "alice", Amount: decimalPtr("100000000000000000000")},
					{UserID: "bob", Amount: decimalPtr("0")},
				},
			},
		},
		{
			name: "percentage beyond int64",
			req: ExpenseRequest{
				Amount:    decimal.RequireFromString("10.00"),
				SplitType: "PERCENTAGE",
				Participants: []*ParticipantRequest{
					{UserID: "alice", Percentage: decimalPtr("184467440737095516.17")},
					{UserID: "bob", Percentage: decimalPtr("0")},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.req.ToDraft("alice", "USD")
			var invalid *split.InvalidInputError
			assert.ErrorAs(t, err, &invalid)
		})
	}
}
