package split

import "github.com/fkhayef/splitledger/pkg/money"

// =============================================================================
// UNEQUAL SPLIT STRATEGY
// Each participant owes an amount entered by the caller
// =============================================================================

// UnequalStrategy implements the Strategy interface for exact amount splits
type UnequalStrategy struct{}

// Policy returns the split policy identifier
func (s *UnequalStrategy) Policy() Policy {
	return PolicyUnequal
}

// Calculate returns the entered amounts unchanged. Whether they add up to the
// expense amount is the Validator's concern.
func (s *UnequalStrategy) Calculate(amount money.Money, participants []Input) ([]Share, error) {
	if err := checkCommon(amount, participants); err != nil {
		return nil, err
	}

	shares := make([]Share, len(participants))
	for i, p := range participants {
		if p.Amount == nil {
			return nil, invalidInput("amount", "amount required for participant %s", p.UserID)
		}
		if p.Amount.Amount < 0 {
			return nil, invalidInput("amount", "amount for %s cannot be negative", p.UserID)
		}
		if p.Amount.Currency != amount.Currency {
			return nil, invalidInput("amount", "amount for %s must be in %s", p.UserID, amount.Currency)
		}
		shares[i] = Share{
			UserID: p.UserID,
			Amount: *p.Amount,
		}
	}
	return shares, nil
}
