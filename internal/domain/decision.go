package domain

import "fmt"

type Decision string

const (
	DecisionYes Decision = "SI"
	DecisionNo  Decision = "NO"
)

func Decisions() []Decision {
	return []Decision{DecisionYes, DecisionNo}
}

// ParseDecision accepts only the exact outcome names, case-sensitive.
func ParseDecision(s string) (Decision, error) {
	switch d := Decision(s); d {
	case DecisionYes, DecisionNo:
		return d, nil
	default:
		return "", fmt.Errorf("%w: decision must be %q or %q, got %q", ErrInvalidInput, DecisionYes, DecisionNo, s)
	}
}

func (d Decision) String() string {
	return string(d)
}
