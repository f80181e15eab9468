package split

import "splitmate/pkg/money"

// =============================================================================
// EQUAL SPLIT STRATEGY
// Divides the expense equally among the sharing participants
// =============================================================================

// EqualStrategy implements the Strategy interface for equal splits
type EqualStrategy struct{}

// Type returns the split type identifier
func (s *EqualStrategy) Type() Type {
	return TypeEqual
}

// Validate checks if the inputs are valid for an equal split
func (s *EqualStrategy) Validate(in *Input) error {
	return validateBase(in)
}

// Calculate divides the total cents evenly among the sharers. When the total
// does not divide cleanly, the first total%n sharers in list order absorb one
// extra cent each, so the sum is always exact and the output deterministic.
func (s *EqualStrategy) Calculate(in *Input) (*Result, error) {
	if err := s.Validate(in); err != nil {
		return nil, err
	}

	sharerIDs := sharers(in)
	n := money.Cents(len(sharerIDs))
	base := in.TotalAmount / n
	remainder := in.TotalAmount % n

	amounts := make([]money.Cents, len(sharerIDs))
	for i := range amounts {
		amounts[i] = base
		if money.Cents(i) < remainder {
			amounts[i]++
		}
	}

	return &Result{
		Shares:    buildShares(in, sharerIDs, amounts),
		Remainder: remainder,
	}, nil
}
