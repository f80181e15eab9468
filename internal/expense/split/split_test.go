package split

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"splitmate/pkg/money"
)

func users(n int) []uuid.UUID {
	out := make([]uuid.UUID, n)
	for i := range out {
		out[i] = uuid.New()
	}
	return out
}

func values(vs ...string) []decimal.Decimal {
	out := make([]decimal.Decimal, len(vs))
	for i, v := range vs {
		out[i] = decimal.RequireFromString(v)
	}
	return out
}

func sumShares(shares []Share) money.Cents {
	var sum money.Cents
	for _, s := range shares {
		sum += s.OwedAmount
	}
	return sum
}

func amounts(shares []Share) []money.Cents {
	out := make([]money.Cents, len(shares))
	for i, s := range shares {
		out[i] = s.OwedAmount
	}
	return out
}

func TestFactoryCreate(t *testing.T) {
	factory := NewFactory()

	tests := []struct {
		name      string
		splitType string
		wantType  Type
		wantErr   bool
	}{
		{name: "equal", splitType: "equal", wantType: TypeEqual},
		{name: "percentage", splitType: "percentage", wantType: TypePercentage},
		{name: "manual", splitType: "manual", wantType: TypeManual},
		{name: "empty defaults to equal", splitType: "", wantType: TypeEqual},
		{name: "unknown type", splitType: "random", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			strategy, err := factory.CreateFromString(tt.splitType)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, strategy.Type())
		})
	}
}

func TestEqualSplitExactSum(t *testing.T) {
	strategy := &EqualStrategy{}

	tests := []struct {
		name  string
		total money.Cents
		n     int
		want  []money.Cents
	}{
		{name: "10.00 among 3", total: 1000, n: 3, want: []money.Cents{334, 333, 333}},
		{name: "100.00 among 3", total: 10000, n: 3, want: []money.Cents{3334, 3333, 3333}},
		{name: "divisible", total: 9000, n: 3, want: []money.Cents{3000, 3000, 3000}},
		{name: "single sharer", total: 1234, n: 1, want: []money.Cents{1234}},
		{name: "0.01 among 2", total: 1, n: 2, want: []money.Cents{1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := strategy.Calculate(&Input{
				TotalAmount:  tt.total,
				Participants: users(tt.n),
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, amounts(result.Shares))
			assert.Equal(t, tt.total, sumShares(result.Shares))
		})
	}
}

func TestEqualSplitSubsetGetsZeroRows(t *testing.T) {
	participants := users(3)
	strategy := &EqualStrategy{}

	result, err := strategy.Calculate(&Input{
		TotalAmount:  1000,
		Participants: participants,
		SplitBetween: []uuid.UUID{participants[1], participants[2]},
	})
	require.NoError(t, err)

	// One share per participant, in participant order, zero for non-sharers
	require.Len(t, result.Shares, 3)
	assert.Equal(t, participants[0], result.Shares[0].UserID)
	assert.Equal(t, money.Cents(0), result.Shares[0].OwedAmount)
	assert.Equal(t, money.Cents(500), result.Shares[1].OwedAmount)
	assert.Equal(t, money.Cents(500), result.Shares[2].OwedAmount)
}

func TestEqualSplitValidation(t *testing.T) {
	strategy := &EqualStrategy{}

	_, err := strategy.Calculate(&Input{TotalAmount: 1000})
	assert.ErrorIs(t, err, ErrNoParticipants)

	_, err = strategy.Calculate(&Input{TotalAmount: 0, Participants: users(2)})
	assert.ErrorIs(t, err, ErrNonPositiveTotal)

	_, err = strategy.Calculate(&Input{
		TotalAmount:  1000,
		Participants: users(2),
		SplitBetween: users(1),
	})
	assert.ErrorIs(t, err, ErrSharerNotRecorded)
}

func TestPercentageSplit(t *testing.T) {
	strategy := &PercentageStrategy{}

	t.Run("summing to 100", func(t *testing.T) {
		result, err := strategy.Calculate(&Input{
			TotalAmount:     10000,
			Participants:    users(3),
			Values:          values("50", "30", "20"),
			ValuesAlignedTo: AlignParticipants,
		})
		require.NoError(t, err)
		assert.Equal(t, []money.Cents{5000, 3000, 2000}, amounts(result.Shares))
		assert.Equal(t, money.Cents(0), result.Remainder)
	})

	t.Run("treated as weights when not summing to 100", func(t *testing.T) {
		result, err := strategy.Calculate(&Input{
			TotalAmount:     1000,
			Participants:    users(3),
			Values:          values("1", "1", "1"),
			ValuesAlignedTo: AlignParticipants,
		})
		require.NoError(t, err)
		assert.Equal(t, []money.Cents{334, 333, 333}, amounts(result.Shares))
		assert.Equal(t, money.Cents(1), result.Remainder)
	})

	t.Run("uneven thirds stay exact", func(t *testing.T) {
		result, err := strategy.Calculate(&Input{
			TotalAmount:     10000,
			Participants:    users(3),
			Values:          values("33.33", "33.33", "33.34"),
			ValuesAlignedTo: AlignParticipants,
		})
		require.NoError(t, err)
		assert.Equal(t, money.Cents(10000), sumShares(result.Shares))
	})
}

func TestPercentageSplitValidation(t *testing.T) {
	strategy := &PercentageStrategy{}
	participants := users(3)

	tests := []struct {
		name    string
		input   *Input
		wantErr error
	}{
		{
			name: "negative percentage",
			input: &Input{
				TotalAmount:     1000,
				Participants:    participants,
				Values:          values("-10", "60", "50"),
				ValuesAlignedTo: AlignParticipants,
			},
			wantErr: ErrNegativeValue,
		},
		{
			name: "all zero percentages",
			input: &Input{
				TotalAmount:     1000,
				Participants:    participants,
				Values:          values("0", "0", "0"),
				ValuesAlignedTo: AlignParticipants,
			},
			wantErr: ErrNonPositiveSum,
		},
		{
			name: "length mismatch",
			input: &Input{
				TotalAmount:     1000,
				Participants:    participants,
				Values:          values("50", "50"),
				ValuesAlignedTo: AlignParticipants,
			},
			wantErr: ErrValueCountMismatch,
		},
		{
			name: "missing alignment",
			input: &Input{
				TotalAmount:  1000,
				Participants: participants,
				Values:       values("50", "30", "20"),
			},
			wantErr: ErrMissingAlignment,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := strategy.Calculate(tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestPercentageSplitAlignedToParticipants(t *testing.T) {
	participants := users(3)
	strategy := &PercentageStrategy{}

	// Values aligned to the full participant list; only B and C share.
	result, err := strategy.Calculate(&Input{
		TotalAmount:     1000,
		Participants:    participants,
		SplitBetween:    []uuid.UUID{participants[1], participants[2]},
		Values:          values("0", "60", "40"),
		ValuesAlignedTo: AlignParticipants,
	})
	require.NoError(t, err)
	assert.Equal(t, []money.Cents{0, 600, 400}, amounts(result.Shares))
}

func TestPercentageSplitAlignedToSplitBetween(t *testing.T) {
	participants := users(3)
	strategy := &PercentageStrategy{}

	result, err := strategy.Calculate(&Input{
		TotalAmount:     1000,
		Participants:    participants,
		SplitBetween:    []uuid.UUID{participants[1], participants[2]},
		Values:          values("75", "25"),
		ValuesAlignedTo: AlignSplitBetween,
	})
	require.NoError(t, err)
	assert.Equal(t, []money.Cents{0, 750, 250}, amounts(result.Shares))
}

func TestManualSplit(t *testing.T) {
	strategy := &ManualStrategy{}

	t.Run("amounts summing to total pass through", func(t *testing.T) {
		result, err := strategy.Calculate(&Input{
			TotalAmount:     10000,
			Participants:    users(2),
			Values:          values("40", "60"),
			ValuesAlignedTo: AlignParticipants,
		})
		require.NoError(t, err)
		assert.Equal(t, []money.Cents{4000, 6000}, amounts(result.Shares))
	})

	t.Run("amounts are rescaled to the total", func(t *testing.T) {
		// Entries sum to 50.00 against a 100.00 total; proportions hold.
		result, err := strategy.Calculate(&Input{
			TotalAmount:     10000,
			Participants:    users(2),
			Values:          values("20", "30"),
			ValuesAlignedTo: AlignParticipants,
		})
		require.NoError(t, err)
		assert.Equal(t, []money.Cents{4000, 6000}, amounts(result.Shares))
	})

	t.Run("rescaling keeps exact sum", func(t *testing.T) {
		result, err := strategy.Calculate(&Input{
			TotalAmount:     1000,
			Participants:    users(3),
			Values:          values("1", "1", "1"),
			ValuesAlignedTo: AlignParticipants,
		})
		require.NoError(t, err)
		assert.Equal(t, []money.Cents{334, 333, 333}, amounts(result.Shares))
		assert.Equal(t, money.Cents(1000), sumShares(result.Shares))
	})

	t.Run("all-zero amounts fall back to equal", func(t *testing.T) {
		result, err := strategy.Calculate(&Input{
			TotalAmount:     1000,
			Participants:    users(3),
			Values:          values("0", "0", "0"),
			ValuesAlignedTo: AlignParticipants,
		})
		require.NoError(t, err)
		assert.Equal(t, []money.Cents{334, 333, 333}, amounts(result.Shares))
	})

	t.Run("negative amount rejected", func(t *testing.T) {
		_, err := strategy.Calculate(&Input{
			TotalAmount:     1000,
			Participants:    users(2),
			Values:          values("-5", "15"),
			ValuesAlignedTo: AlignParticipants,
		})
		assert.ErrorIs(t, err, ErrNegativeValue)
	})
}

func TestCalculateIsDeterministic(t *testing.T) {
	participants := users(5)
	input := &Input{
		TotalAmount:     10003,
		Participants:    participants,
		Values:          values("17", "23", "5", "31", "24"),
		ValuesAlignedTo: AlignParticipants,
	}

	strategy := &PercentageStrategy{}
	first, err := strategy.Calculate(input)
	require.NoError(t, err)
	second, err := strategy.Calculate(input)
	require.NoError(t, err)

	assert.Equal(t, first.Shares, second.Shares)
	assert.Equal(t, first.Remainder, second.Remainder)
	assert.Equal(t, money.Cents(10003), sumShares(first.Shares))
}
