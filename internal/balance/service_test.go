package balance

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"splitmate/pkg/apperr"
	"splitmate/pkg/money"
)

type stubExpenseSource struct {
	records []ExpenseRecord
	err     error
}

func (s *stubExpenseSource) ExpensesForBalances(_ context.Context, _ uuid.UUID) ([]ExpenseRecord, error) {
	return s.records, s.err
}

type stubSettlementSource struct {
	records []TransferRecord
	err     error
}

func (s *stubSettlementSource) SettlementsForBalances(_ context.Context, _ uuid.UUID) ([]TransferRecord, error) {
	return s.records, s.err
}

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestGroupBalances(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	groupID := uuid.New()

	// One 100.00 expense paid by a, split equally among a, b, c.
	expense := ExpenseRecord{
		ExpenseID:   uuid.New(),
		TotalAmount: 10000,
		Payers:      []PayerEntry{{UserID: a, PaidAmount: 10000}},
		OwedShares: []OwedEntry{
			{UserID: a, OwedAmount: 3334},
			{UserID: b, OwedAmount: 3333},
			{UserID: c, OwedAmount: 3333},
		},
	}

	t.Run("expense only", func(t *testing.T) {
		svc := NewService(
			&stubExpenseSource{records: []ExpenseRecord{expense}},
			&stubSettlementSource{},
			newTestLogger(),
		)

		sheet, err := svc.GroupBalances(context.Background(), groupID)
		require.NoError(t, err)

		assert.Equal(t, []UserBalance{
			{UserID: a, Amount: 6666},
			{UserID: b, Amount: -3333},
			{UserID: c, Amount: -3333},
		}, sheet.Balances)
		assert.Equal(t, money.Cents(0), sheet.Drift)
	})

	t.Run("settlement credits the sender", func(t *testing.T) {
		svc := NewService(
			&stubExpenseSource{records: []ExpenseRecord{expense}},
			&stubSettlementSource{records: []TransferRecord{
				{FromUser: b, ToUser: a, Amount: 2000},
			}},
			newTestLogger(),
		)

		sheet, err := svc.GroupBalances(context.Background(), groupID)
		require.NoError(t, err)

		assert.Equal(t, []UserBalance{
			{UserID: a, Amount: 4666},
			{UserID: b, Amount: -1333},
			{UserID: c, Amount: -3333},
		}, sheet.Balances)
		assert.Equal(t, money.Cents(0), sheet.Drift)
	})

	t.Run("payer-only user stays positive", func(t *testing.T) {
		payer := uuid.New()
		svc := NewService(
			&stubExpenseSource{records: []ExpenseRecord{{
				ExpenseID:   uuid.New(),
				TotalAmount: 1000,
				Payers:      []PayerEntry{{UserID: payer, PaidAmount: 1000}},
				OwedShares:  []OwedEntry{{UserID: b, OwedAmount: 1000}},
			}}},
			&stubSettlementSource{},
			newTestLogger(),
		)

		sheet, err := svc.GroupBalances(context.Background(), groupID)
		require.NoError(t, err)
		assert.Equal(t, []UserBalance{
			{UserID: payer, Amount: 1000},
			{UserID: b, Amount: -1000},
		}, sheet.Balances)
	})

	t.Run("empty group yields empty sheet", func(t *testing.T) {
		svc := NewService(&stubExpenseSource{}, &stubSettlementSource{}, newTestLogger())

		sheet, err := svc.GroupBalances(context.Background(), groupID)
		require.NoError(t, err)
		assert.Empty(t, sheet.Balances)
		assert.Equal(t, money.Cents(0), sheet.Drift)
	})

	t.Run("inconsistent data reported as drift", func(t *testing.T) {
		svc := NewService(
			&stubExpenseSource{records: []ExpenseRecord{{
				ExpenseID:   uuid.New(),
				TotalAmount: 1000,
				Payers:      []PayerEntry{{UserID: a, PaidAmount: 1000}},
				OwedShares:  []OwedEntry{{UserID: b, OwedAmount: 999}},
			}}},
			&stubSettlementSource{},
			newTestLogger(),
		)

		sheet, err := svc.GroupBalances(context.Background(), groupID)
		require.NoError(t, err)
		assert.Equal(t, money.Cents(1), sheet.Drift)
	})

	t.Run("missing group id", func(t *testing.T) {
		svc := NewService(&stubExpenseSource{}, &stubSettlementSource{}, newTestLogger())

		_, err := svc.GroupBalances(context.Background(), uuid.Nil)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	})

	t.Run("source failure wrapped as collaborator error", func(t *testing.T) {
		svc := NewService(
			&stubExpenseSource{err: errors.New("connection refused")},
			&stubSettlementSource{},
			newTestLogger(),
		)

		_, err := svc.GroupBalances(context.Background(), groupID)
		assert.Equal(t, apperr.KindCollaborator, apperr.KindOf(err))
	})
}

func TestSettlementPlan(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	groupID := uuid.New()

	svc := NewService(
		&stubExpenseSource{records: []ExpenseRecord{{
			ExpenseID:   uuid.New(),
			TotalAmount: 10000,
			Payers:      []PayerEntry{{UserID: a, PaidAmount: 10000}},
			OwedShares: []OwedEntry{
				{UserID: a, OwedAmount: 3334},
				{UserID: b, OwedAmount: 3333},
				{UserID: c, OwedAmount: 3333},
			},
		}}},
		&stubSettlementSource{},
		newTestLogger(),
	)

	plan, err := svc.SettlementPlan(context.Background(), groupID)
	require.NoError(t, err)

	assert.Equal(t, []Transfer{
		{From: b, To: a, Amount: 3333},
		{From: c, To: a, Amount: 3333},
	}, plan.Transfers)
	assert.Equal(t, money.Cents(0), plan.Residual)
}
