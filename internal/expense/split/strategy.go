package split

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"splitmate/pkg/money"
)

// Type defines the type of split strategy
type Type string

const (
	TypeEqual      Type = "equal"
	TypePercentage Type = "percentage"
	TypeManual     Type = "manual"
)

// Alignment names the participant set that Values is ordered against.
// Callers must state it explicitly; guessing from length equality is
// ambiguous when both sets happen to be the same size.
type Alignment string

const (
	AlignParticipants Alignment = "participants"
	AlignSplitBetween Alignment = "split_between"
)

// Input carries everything a strategy needs to compute owed shares.
// All amounts are integer cents; Values stay decimal because percentages
// and manual weights arrive with arbitrary precision.
type Input struct {
	TotalAmount     money.Cents
	Participants    []uuid.UUID // ordered; everyone recorded on the expense
	SplitBetween    []uuid.UUID // subset that actually shares; empty = all participants
	Values          []decimal.Decimal
	ValuesAlignedTo Alignment
}

// Share is the calculated owed amount for a single participant
type Share struct {
	UserID     uuid.UUID
	OwedAmount money.Cents
}

// Result holds the computed shares plus the rounding remainder that was
// distributed cent-by-cent, so callers can log the adjustment.
type Result struct {
	Shares    []Share
	Remainder money.Cents
}

// Strategy is the interface that all split strategies must implement
type Strategy interface {
	// Calculate computes owed shares for all participants, summing exactly
	// to the input total
	Calculate(in *Input) (*Result, error)

	// Type returns the type identifier for this strategy
	Type() Type

	// Validate checks if the inputs are valid for this strategy
	Validate(in *Input) error
}

// Factory creates split strategies based on the requested type
type Factory struct{}

// NewFactory creates a new factory instance
func NewFactory() *Factory {
	return &Factory{}
}

// Create returns the appropriate strategy implementation based on the type
func (f *Factory) Create(splitType Type) (Strategy, error) {
	switch splitType {
	case TypeEqual, "":
		return &EqualStrategy{}, nil
	case TypePercentage:
		return &PercentageStrategy{}, nil
	case TypeManual:
		return &ManualStrategy{}, nil
	default:
		return nil, fmt.Errorf("unknown split type: %s", splitType)
	}
}

// CreateFromString creates a strategy from a string type (useful for API requests)
func (f *Factory) CreateFromString(splitType string) (Strategy, error) {
	return f.Create(Type(splitType))
}

var (
	ErrNoParticipants     = errors.New("at least one participant is required")
	ErrNonPositiveTotal   = errors.New("total amount must be positive")
	ErrSharerNotRecorded  = errors.New("split_between contains a user that is not a participant")
	ErrValueCountMismatch = errors.New("split_values length must match the aligned participant set")
	ErrMissingAlignment   = errors.New("values_aligned_to must be \"participants\" or \"split_between\" when split_values are given")
	ErrNegativeValue      = errors.New("split_values cannot be negative")
	ErrNonPositiveSum     = errors.New("percentages must sum to a positive value")
)

// validateBase checks the constraints shared by every strategy.
func validateBase(in *Input) error {
	if len(in.Participants) == 0 {
		return ErrNoParticipants
	}
	if in.TotalAmount <= 0 {
		return ErrNonPositiveTotal
	}
	seen := make(map[uuid.UUID]bool, len(in.Participants))
	for _, p := range in.Participants {
		seen[p] = true
	}
	for _, s := range in.SplitBetween {
		if !seen[s] {
			return ErrSharerNotRecorded
		}
	}
	return nil
}

// sharers returns the ordered set of users that actually share the cost.
func sharers(in *Input) []uuid.UUID {
	if len(in.SplitBetween) > 0 {
		return in.SplitBetween
	}
	return in.Participants
}

// alignedValues maps in.Values onto the sharer list according to the stated
// alignment. With AlignParticipants, the value of a sharer is the value at
// that user's position in the full participants list.
func alignedValues(in *Input, sharerIDs []uuid.UUID) ([]decimal.Decimal, error) {
	switch in.ValuesAlignedTo {
	case AlignSplitBetween:
		if len(in.Values) != len(sharerIDs) {
			return nil, ErrValueCountMismatch
		}
		return in.Values, nil
	case AlignParticipants:
		if len(in.Values) != len(in.Participants) {
			return nil, ErrValueCountMismatch
		}
		byUser := make(map[uuid.UUID]decimal.Decimal, len(in.Participants))
		for i, p := range in.Participants {
			byUser[p] = in.Values[i]
		}
		values := make([]decimal.Decimal, len(sharerIDs))
		for i, s := range sharerIDs {
			values[i] = byUser[s]
		}
		return values, nil
	default:
		return nil, ErrMissingAlignment
	}
}

// distributeByWeights splits total cents proportionally to weights using
// floor division, then hands the leftover cents one-by-one to the earliest
// entries. The returned amounts always sum exactly to total.
func distributeByWeights(total money.Cents, weights []decimal.Decimal) ([]money.Cents, money.Cents) {
	sum := decimal.Zero
	for _, w := range weights {
		sum = sum.Add(w)
	}

	totalDec := decimal.NewFromInt(int64(total))
	amounts := make([]money.Cents, len(weights))
	var allocated money.Cents
	for i, w := range weights {
		raw := w.Mul(totalDec).Div(sum).Floor()
		amounts[i] = money.Cents(raw.IntPart())
		allocated += amounts[i]
	}

	remainder := total - allocated
	for i := money.Cents(0); i < remainder; i++ {
		amounts[int(i)%len(amounts)]++
	}
	return amounts, remainder
}

// buildShares produces one share per participant, in participant order,
// with zero owed for anyone outside the sharer set.
func buildShares(in *Input, sharerIDs []uuid.UUID, amounts []money.Cents) []Share {
	owed := make(map[uuid.UUID]money.Cents, len(sharerIDs))
	for i, s := range sharerIDs {
		owed[s] = amounts[i]
	}

	out := make([]Share, len(in.Participants))
	for i, p := range in.Participants {
		out[i] = Share{UserID: p, OwedAmount: owed[p]}
	}
	return out
}
