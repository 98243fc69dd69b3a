package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fkhayef/splitledger/internal/balance"
	"github.com/fkhayef/splitledger/internal/expense"
	"github.com/fkhayef/splitledger/internal/expense/split"
	"github.com/fkhayef/splitledger/pkg/money"
)

const (
	dateLayout      = "2006-01-02"
	timestampLayout = "2006-01-02T15:04:05Z"
)

// ExpenseRequest represents the request to preview, create or edit an expense.
// Amounts are major units, e.g. "25.50"; percentages are plain numbers, e.g. 33.33.
type ExpenseRequest struct {
	PayerID      string                `json:"payer_id,omitempty"` // defaults to the acting user
	Description  string                `json:"description"`
	Amount       decimal.Decimal       `json:"amount" swaggertype:"string" example:"100.00"`
	Currency     string                `json:"currency,omitempty" example:"USD"`
	SplitType    string                `json:"split_type" example:"EQUAL"` // EQUAL, PERCENTAGE or UNEQUAL
	Participants []*ParticipantRequest `json:"participants"`
	GroupID      string                `json:"group_id,omitempty"`
	Category     string                `json:"category,omitempty"`
	Date         string                `json:"date,omitempty" example:"2026-02-14"`
}

// ParticipantRequest represents one participant in a split request
type ParticipantRequest struct {
	UserID     string           `json:"user_id"`
	Percentage *decimal.Decimal `json:"percentage,omitempty" swaggertype:"string"` // For PERCENTAGE split
	Amount     *decimal.Decimal `json:"amount,omitempty" swaggertype:"string"`     // For UNEQUAL split
}

// ToDraft converts the request into a ledger draft
func (req *ExpenseRequest) ToDraft(actorID, defaultCurrency string) (Draft, error) {
	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = defaultCurrency
	}

	payerID := req.PayerID
	if payerID == "" {
		payerID = actorID
	}

	var date time.Time
	if req.Date != "" {
		d, err := time.Parse(dateLayout, req.Date)
		if err != nil {
			return Draft{}, &split.InvalidInputError{Field: "date", Reason: fmt.Sprintf("%q is not a YYYY-MM-DD date", req.Date)}
		}
		date = d
	}

	inputs := make([]split.Input, len(req.Participants))
	for i, p := range req.Participants {
		if p == nil {
			return Draft{}, &split.InvalidInputError{Field: "participants", Reason: "must not contain null entries"}
		}
		in := split.Input{UserID: strings.TrimSpace(p.UserID)}
		if p.Percentage != nil {
			pct, err := split.PercentFromDecimal(*p.Percentage)
			if err != nil {
				return Draft{}, err
			}
			in.Percentage = &pct
		}
		if p.Amount != nil {
			m, err := money.FromDecimal(*p.Amount, currency)
			if err != nil {
				return Draft{}, &split.InvalidInputError{Field: "participants.amount", Reason: err.Error()}
			}
			in.Amount = &m
		}
		inputs[i] = in
	}

	amount, err := money.FromDecimal(req.Amount, currency)
	if err != nil {
		return Draft{}, &split.InvalidInputError{Field: "amount", Reason: err.Error()}
	}

	return Draft{
		PayerID:      payerID,
		Description:  strings.TrimSpace(req.Description),
		Amount:       amount,
		Policy:       req.SplitType,
		Participants: inputs,
		GroupID:      req.GroupID,
		Category:     req.Category,
		Date:         date,
	}, nil
}

// ExpenseResponse represents the response for an expense
type ExpenseResponse struct {
	ID          string           `json:"id"`
	PayerID     string           `json:"payer_id"`
	Description string           `json:"description"`
	Amount      string           `json:"amount" example:"100.00"`
	Currency    string           `json:"currency"`
	SplitType   string           `json:"split_type"`
	GroupID     string           `json:"group_id,omitempty"`
	Category    string           `json:"category,omitempty"`
	Date        string           `json:"date"`
	Settled     bool             `json:"settled"`
	CreatedAt   string           `json:"created_at"`
	UpdatedAt   string           `json:"updated_at"`
	Shares      []*ShareResponse `json:"shares"`
}

// ShareResponse represents one participant's share
type ShareResponse struct {
	ID         string  `json:"id,omitempty"`
	UserID     string  `json:"user_id"`
	Amount     string  `json:"amount" example:"33.34"`
	Percentage string  `json:"percentage,omitempty" example:"33.34"`
	Settled    bool    `json:"settled"`
	SettledAt  *string `json:"settled_at,omitempty"`
}

// PreviewResponse carries computed shares and, when they do not reconcile,
// the reason. A failed preview is still a 200: the form stays editable.
type PreviewResponse struct {
	Shares []*ShareResponse `json:"shares"`
	Valid  bool             `json:"valid"`
	Code   string           `json:"code,omitempty"`
	Error  string           `json:"error,omitempty"`
}

// BalanceResponse represents the net balance with another user
type BalanceResponse struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Amount   string `json:"amount" example:"-15.75"` // Positive = they owe you, Negative = you owe them
	Currency string `json:"currency"`
	Display  string `json:"display" example:"-$15.75"`
	Message  string `json:"message" example:"You owe Bob $15.75"`
}

// OverviewResponse represents the acting user's balances with everyone
type OverviewResponse struct {
	Net      string             `json:"net"`
	Owed     string             `json:"owed"`
	Owing    string             `json:"owing"`
	Currency string             `json:"currency"`
	Display  string             `json:"display"`
	Balances []*BalanceResponse `json:"balances"`
}

// GroupBalanceResponse represents the acting user's balances in a group
type GroupBalanceResponse struct {
	GroupID  string             `json:"group_id"`
	Net      string             `json:"net"`
	Currency string             `json:"currency"`
	Display  string             `json:"display"`
	Balances []*BalanceResponse `json:"balances"`
}

// SettleUpResponse reports a settle-up
type SettleUpResponse struct {
	SettledExpenses int              `json:"settled_expenses"`
	Settled         *BalanceResponse `json:"settled"` // balance that was cleared
}

func toExpenseResponse(e *expense.Expense) *ExpenseResponse {
	shares := make([]*ShareResponse, len(e.Shares))
	for i, s := range e.Shares {
		shares[i] = toShareResponse(s)
	}
	return &ExpenseResponse{
		ID:          e.ID,
		PayerID:     e.PayerID,
		Description: e.Description,
		Amount:      e.Amount.StringFixed(),
		Currency:    e.Amount.Currency,
		SplitType:   string(e.Policy),
		GroupID:     e.GroupID,
		Category:    e.Category,
		Date:        e.Date.Format(dateLayout),
		Settled:     e.IsSettled(),
		CreatedAt:   e.CreatedAt.UTC().Format(timestampLayout),
		UpdatedAt:   e.UpdatedAt.UTC().Format(timestampLayout),
		Shares:      shares,
	}
}

func toShareResponse(s expense.Share) *ShareResponse {
	resp := &ShareResponse{
		ID:      s.ID,
		UserID:  s.UserID,
		Amount:  s.Amount.StringFixed(),
		Settled: s.Settled,
	}
	if s.Percentage != nil {
		resp.Percentage = s.Percentage.Decimal().StringFixed(2)
	}
	if s.SettledAt != nil {
		at := s.SettledAt.UTC().Format(timestampLayout)
		resp.SettledAt = &at
	}
	return resp
}

func toPreviewResponse(shares []split.Share, validationErr *split.ValidationError) *PreviewResponse {
	resp := &PreviewResponse{
		Shares: make([]*ShareResponse, len(shares)),
		Valid:  validationErr == nil,
	}
	for i, s := range shares {
		resp.Shares[i] = toShareResponse(expense.Share{UserID: s.UserID, Amount: s.Amount, Percentage: s.Percentage})
	}
	if validationErr != nil {
		resp.Code = string(validationErr.Kind)
		resp.Error = validationErr.Error()
	}
	return resp
}

func toBalanceResponse(b balance.Balance) *BalanceResponse {
	return &BalanceResponse{
		UserID:   b.CounterpartyID,
		Username: b.Name,
		Amount:   b.Amount.StringFixed(),
		Currency: b.Amount.Currency,
		Display:  balance.Display(b.Amount),
		Message:  b.Message,
	}
}

func toBalanceResponses(balances []balance.Balance) []*BalanceResponse {
	out := make([]*BalanceResponse, len(balances))
	for i, b := range balances {
		out[i] = toBalanceResponse(b)
	}
	return out
}
