package split

// =============================================================================
// PERCENTAGE SPLIT STRATEGY
// Divides the expense proportionally to per-participant percentages
// =============================================================================

// PercentageStrategy implements the Strategy interface for percentage-based splits
type PercentageStrategy struct{}

// Type returns the split type identifier
func (s *PercentageStrategy) Type() Type {
	return TypePercentage
}

// Validate checks if the inputs are valid for a percentage split.
// Percentages need not sum to 100; they are treated as relative weights,
// but the sum must be positive and no single value negative.
func (s *PercentageStrategy) Validate(in *Input) error {
	if err := validateBase(in); err != nil {
		return err
	}

	values, err := alignedValues(in, sharers(in))
	if err != nil {
		return err
	}

	positive := false
	for _, v := range values {
		if v.IsNegative() {
			return ErrNegativeValue
		}
		if v.IsPositive() {
			positive = true
		}
	}
	if !positive {
		return ErrNonPositiveSum
	}
	return nil
}

// Calculate allocates floor(percent/sum*total) cents to each sharer, then
// distributes the leftover cents in list order.
func (s *PercentageStrategy) Calculate(in *Input) (*Result, error) {
	if err := s.Validate(in); err != nil {
		return nil, err
	}

	sharerIDs := sharers(in)
	values, err := alignedValues(in, sharerIDs)
	if err != nil {
		return nil, err
	}

	amounts, remainder := distributeByWeights(in.TotalAmount, values)
	return &Result{
		Shares:    buildShares(in, sharerIDs, amounts),
		Remainder: remainder,
	}, nil
}
