package split

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/fkhayef/splitledger/pkg/money"
)

// Policy defines how an expense amount is divided among participants
type Policy string

const (
	PolicyEqual      Policy = "EQUAL"
	PolicyPercentage Policy = "PERCENTAGE"
	PolicyUnequal    Policy = "UNEQUAL"
)

// Percent is a percentage in hundredths of a percent: 10000 is 100%, 3333 is 33.33%.
type Percent int64

// FullPercent is 100%.
const FullPercent Percent = 10000

var maxPercentInput = decimal.NewFromInt(int64(FullPercent) * 100)

// PercentFromDecimal rounds a percentage such as 33.335 to the nearest
// hundredth. Values far outside 0-100 are rejected before conversion so they
// cannot wrap around into a plausible percentage.
func PercentFromDecimal(d decimal.Decimal) (Percent, error) {
	p := d.Shift(2).Round(0)
	if p.Abs().GreaterThan(maxPercentInput) {
		return 0, &InvalidInputError{Field: "percentage", Reason: "must be between 0 and 100"}
	}
	return Percent(p.IntPart()), nil
}

// Decimal returns the percentage as a plain number, e.g. 33.33.
func (p Percent) Decimal() decimal.Decimal {
	return decimal.New(int64(p), -2)
}

func (p Percent) String() string {
	return p.Decimal().StringFixed(2) + "%"
}

// Input represents a participant in a split with optional values.
// The order of inputs is significant: remainders go to the first participants.
type Input struct {
	UserID     string
	Percentage *Percent     // For PERCENTAGE split
	Amount     *money.Money // For UNEQUAL split
}

// Share represents the calculated portion of a single participant
type Share struct {
	UserID     string
	Amount     money.Money
	Percentage *Percent
}

// Strategy is the interface that all split strategies must implement
type Strategy interface {
	// Calculate computes one share per participant, in input order
	Calculate(amount money.Money, participants []Input) ([]Share, error)

	// Policy returns the policy implemented by this strategy
	Policy() Policy
}

// Factory creates split strategies based on the requested policy
type Factory struct{}

// NewFactory creates a new factory instance
func NewFactory() *Factory {
	return &Factory{}
}

// Create returns the strategy implementing the policy
func (f *Factory) Create(policy Policy) (Strategy, error) {
	switch policy {
	case PolicyEqual:
		return &EqualStrategy{}, nil
	case PolicyPercentage:
		return &PercentageStrategy{}, nil
	case PolicyUnequal:
		return &UnequalStrategy{}, nil
	default:
		return nil, invalidInput("policy", "unknown split policy %q", policy)
	}
}

// CreateFromString creates a strategy from a request value such as "equal".
func (f *Factory) CreateFromString(policy string) (Strategy, error) {
	return f.Create(ParsePolicy(policy))
}

// ParsePolicy normalises a policy name. EVEN and EXACT are accepted as
// aliases of EQUAL and UNEQUAL.
func ParsePolicy(s string) Policy {
	switch p := Policy(strings.ToUpper(strings.TrimSpace(s))); p {
	case "EVEN":
		return PolicyEqual
	case "EXACT":
		return PolicyUnequal
	default:
		return p
	}
}

// checkCommon validates the inputs every strategy shares
func checkCommon(amount money.Money, participants []Input) error {
	if len(participants) == 0 {
		return invalidInput("participants", "at least one participant is required")
	}
	if amount.Amount <= 0 {
		return invalidInput("amount", "amount must be greater than zero")
	}

	seen := make(map[string]bool, len(participants))
	for _, p := range participants {
		if strings.TrimSpace(p.UserID) == "" {
			return invalidInput("participants", "participant user id is required")
		}
		if seen[p.UserID] {
			return invalidInput("participants", "participant %s listed more than once", p.UserID)
		}
		seen[p.UserID] = true
	}
	return nil
}
