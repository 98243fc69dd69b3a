package split

import "github.com/fkhayef/splitledger/pkg/money"

// Mode selects how strictly share amounts must reconcile with the total
type Mode int

const (
	// Interactive applies while a user is still editing a split
	Interactive Mode = iota
	// Commit applies right before an expense is persisted
	Commit
)

// DefaultTolerance is one minor unit ($0.01)
const DefaultTolerance int64 = 1

// percentTolerance is 0.01 percentage points
const percentTolerance = 1

// Validator checks that shares reconcile with the expense they belong to.
type Validator struct {
	// Tolerance is the allowed |sum - total| in minor units. It applies in
	// Interactive mode for every policy and in Commit mode for PERCENTAGE only.
	// PERCENTAGE splits are also allowed the drift that rounding each share
	// separately can produce.
	Tolerance int64
}

// NewValidator returns a Validator with the given tolerance. Negative values
// are treated as zero.
func NewValidator(tolerance int64) Validator {
	if tolerance < 0 {
		tolerance = 0
	}
	return Validator{Tolerance: tolerance}
}

// Validate returns nil or a *ValidationError. The payer counts as a
// participant even without a share of their own.
func (v Validator) Validate(total money.Money, payerID string, shares []Share, policy Policy, mode Mode) error {
	parties := make(map[string]bool, len(shares)+1)
	if payerID != "" {
		parties[payerID] = true
	}
	for _, s := range shares {
		parties[s.UserID] = true
	}
	if len(parties) < 2 {
		return &ValidationError{Kind: EmptyShareSet, Expected: 2, Actual: int64(len(parties))}
	}

	// a wrong percentage also breaks the amounts, so report it first
	var pctDiff int64
	if policy == PolicyPercentage {
		var pctSum int64
		for _, s := range shares {
			if s.Percentage == nil {
				return &ValidationError{Kind: PercentageMismatch, Expected: int64(FullPercent), Actual: pctSum}
			}
			pctSum += int64(*s.Percentage)
		}
		pctDiff = abs(pctSum - int64(FullPercent))
		if pctDiff > percentTolerance {
			return &ValidationError{Kind: PercentageMismatch, Expected: int64(FullPercent), Actual: pctSum}
		}
	}

	var sum int64
	for _, s := range shares {
		if s.Amount.Currency != total.Currency {
			return &ValidationError{Kind: AmountMismatch, Expected: total.Amount, Actual: sum}
		}
		sum += s.Amount.Amount
	}
	tolerance := v.tolerance(policy, mode)
	if policy == PolicyPercentage {
		tolerance = max(tolerance, RoundingDrift(total.Amount, len(shares), pctDiff))
	}
	if diff := abs(sum - total.Amount); diff > tolerance {
		return &ValidationError{Kind: AmountMismatch, Expected: total.Amount, Actual: sum}
	}

	return nil
}

func (v Validator) tolerance(policy Policy, mode Mode) int64 {
	if mode == Commit && policy != PolicyPercentage {
		return 0
	}
	return v.Tolerance
}

// RoundingDrift bounds |sum - total| for n percentage shares each rounded to
// the nearest minor unit, when the percentages miss 100% by pctDiff
// hundredths of a percent. Each share rounds by at most half a unit.
func RoundingDrift(total int64, n int, pctDiff int64) int64 {
	drift := (int64(n) + 1) / 2
	if pctDiff > 0 {
		full := int64(FullPercent)
		drift += (abs(total)*pctDiff + full - 1) / full
	}
	return drift
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
