package balance

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"splitmate/pkg/money"
)

// applyPlan replays the transfers onto the balances: the sender's debt
// shrinks, the receiver's credit shrinks.
func applyPlan(balances []UserBalance, transfers []Transfer) map[uuid.UUID]money.Cents {
	after := make(map[uuid.UUID]money.Cents, len(balances))
	for _, b := range balances {
		after[b.UserID] = b.Amount
	}
	for _, t := range transfers {
		after[t.From] += t.Amount
		after[t.To] -= t.Amount
	}
	return after
}

func TestPlanSingleCreditor(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	balances := []UserBalance{
		{UserID: a, Amount: 6666},
		{UserID: b, Amount: -3333},
		{UserID: c, Amount: -3333},
	}

	transfers, residual := Plan(balances)

	require.Len(t, transfers, 2)
	assert.Equal(t, Transfer{From: b, To: a, Amount: 3333}, transfers[0])
	assert.Equal(t, Transfer{From: c, To: a, Amount: 3333}, transfers[1])
	assert.Equal(t, money.Cents(0), residual)
}

func TestPlanDrivesBalancesToZero(t *testing.T) {
	a, b, c, d := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	balances := []UserBalance{
		{UserID: a, Amount: 5000},
		{UserID: b, Amount: 3000},
		{UserID: c, Amount: -4000},
		{UserID: d, Amount: -4000},
	}

	transfers, residual := Plan(balances)

	assert.Equal(t, money.Cents(0), residual)
	// Bounded by one fewer transfer than there are non-zero balances
	assert.LessOrEqual(t, len(transfers), 3)

	for userID, amount := range applyPlan(balances, transfers) {
		assert.Equal(t, money.Cents(0), amount, "user %s not settled", userID)
	}
}

func TestPlanSkipsZeroBalances(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	transfers, residual := Plan([]UserBalance{
		{UserID: a, Amount: 100},
		{UserID: b, Amount: 0},
		{UserID: c, Amount: -100},
	})

	require.Len(t, transfers, 1)
	assert.Equal(t, Transfer{From: c, To: a, Amount: 100}, transfers[0])
	assert.Equal(t, money.Cents(0), residual)
}

func TestPlanEmptyBalances(t *testing.T) {
	transfers, residual := Plan(nil)
	assert.Empty(t, transfers)
	assert.Equal(t, money.Cents(0), residual)
}

func TestPlanReportsResidualOnDrift(t *testing.T) {
	a, b := uuid.New(), uuid.New()

	// Balances do not sum to zero; the unmatched cent is surfaced, not hidden.
	transfers, residual := Plan([]UserBalance{
		{UserID: a, Amount: 101},
		{UserID: b, Amount: -100},
	})

	require.Len(t, transfers, 1)
	assert.Equal(t, money.Cents(100), transfers[0].Amount)
	assert.Equal(t, money.Cents(1), residual)
}

func TestPlanIsDeterministic(t *testing.T) {
	a, b, c, d := uuid.New(), uuid.New(), uuid.New(), uuid.New()

	// b and c tie in magnitude; stable sorting keeps input order, so the
	// earlier entry is always matched first.
	balances := func() []UserBalance {
		return []UserBalance{
			{UserID: a, Amount: 4000},
			{UserID: b, Amount: -2000},
			{UserID: c, Amount: -2000},
			{UserID: d, Amount: 0},
		}
	}

	first, _ := Plan(balances())
	second, _ := Plan(balances())

	assert.Equal(t, first, second)
	require.Len(t, first, 2)
	assert.Equal(t, b, first[0].From)
	assert.Equal(t, c, first[1].From)
}
