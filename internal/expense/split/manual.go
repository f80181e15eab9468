package split

// =============================================================================
// MANUAL SPLIT STRATEGY
// Participants owe in proportion to hand-entered amounts
// =============================================================================

// ManualStrategy implements the Strategy interface for manual amount splits.
// Manual entries express relative weight: they need not already sum to the
// total, the output is rescaled so it does.
type ManualStrategy struct{}

// Type returns the split type identifier
func (s *ManualStrategy) Type() Type {
	return TypeManual
}

// Validate checks if the inputs are valid for a manual split
func (s *ManualStrategy) Validate(in *Input) error {
	if err := validateBase(in); err != nil {
		return err
	}

	values, err := alignedValues(in, sharers(in))
	if err != nil {
		return err
	}

	for _, v := range values {
		if v.IsNegative() {
			return ErrNegativeValue
		}
	}
	return nil
}

// Calculate rescales the manual amounts proportionally so they sum exactly
// to the total. All-zero amounts fall back to an equal split among the
// sharers.
func (s *ManualStrategy) Calculate(in *Input) (*Result, error) {
	if err := s.Validate(in); err != nil {
		return nil, err
	}

	sharerIDs := sharers(in)
	values, err := alignedValues(in, sharerIDs)
	if err != nil {
		return nil, err
	}

	allZero := true
	for _, v := range values {
		if v.IsPositive() {
			allZero = false
			break
		}
	}
	if allZero {
		equal := &EqualStrategy{}
		return equal.Calculate(in)
	}

	amounts, remainder := distributeByWeights(in.TotalAmount, values)
	return &Result{
		Shares:    buildShares(in, sharerIDs, amounts),
		Remainder: remainder,
	}, nil
}
