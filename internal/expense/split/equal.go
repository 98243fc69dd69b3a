package split

import "github.com/fkhayef/splitledger/pkg/money"

// =============================================================================
// EQUAL SPLIT STRATEGY
// Divides the expense equally among all participants
// =============================================================================

// EqualStrategy implements the Strategy interface for equal splits
type EqualStrategy struct{}

// Policy returns the split policy identifier
func (s *EqualStrategy) Policy() Policy {
	return PolicyEqual
}

// Calculate divides the amount evenly. Leftover minor units go to the first
// participants in input order, one each, so the shares always sum to the amount.
// The percentage on each share is informational and is divided the same way.
func (s *EqualStrategy) Calculate(amount money.Money, participants []Input) ([]Share, error) {
	if err := checkCommon(amount, participants); err != nil {
		return nil, err
	}

	amounts := money.Allocate(amount.Amount, len(participants))
	percents := money.Allocate(int64(FullPercent), len(participants))

	shares := make([]Share, len(participants))
	for i, p := range participants {
		pct := Percent(percents[i])
		shares[i] = Share{
			UserID:     p.UserID,
			Amount:     money.New(amounts[i], amount.Currency),
			Percentage: &pct,
		}
	}
	return shares, nil
}
