package split

import "github.com/fkhayef/splitledger/pkg/money"

// =============================================================================
// PERCENTAGE SPLIT STRATEGY
// Divides the expense based on specified percentages for each participant
// =============================================================================

// PercentageStrategy implements the Strategy interface for percentage-based splits
type PercentageStrategy struct{}

// Policy returns the split policy identifier
func (s *PercentageStrategy) Policy() Policy {
	return PolicyPercentage
}

// Calculate derives each amount as amount * percentage / 100, rounded half-up
// per participant. Percentages are not required to add up to 100 here and
// rounding drift is left in place; the Validator reports both.
func (s *PercentageStrategy) Calculate(amount money.Money, participants []Input) ([]Share, error) {
	if err := checkCommon(amount, participants); err != nil {
		return nil, err
	}

	shares := make([]Share, len(participants))
	for i, p := range participants {
		if p.Percentage == nil {
			return nil, invalidInput("percentage", "percentage required for participant %s", p.UserID)
		}
		pct := *p.Percentage
		if pct < 0 || pct > FullPercent {
			return nil, invalidInput("percentage", "percentage for %s must be between 0 and 100", p.UserID)
		}

		owed, err := money.MultiplyByFraction(amount, int64(pct), int64(FullPercent))
		if err != nil {
			return nil, err
		}
		shares[i] = Share{
			UserID:     p.UserID,
			Amount:     owed,
			Percentage: &pct,
		}
	}
	return shares, nil
}
