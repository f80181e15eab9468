package settlement

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"splitmate/pkg/apperr"
	"splitmate/pkg/money"
)

type fakeNotifier struct {
	recipients []uuid.UUID
}

func (f *fakeNotifier) NotifySettlementRecorded(_ context.Context, recipientID uuid.UUID, _ decimal.Decimal, _ uuid.UUID) error {
	f.recipients = append(f.recipients, recipientID)
	return nil
}

func newTestService(t *testing.T) (*Service, sqlmock.Sqlmock, *fakeNotifier) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	notifier := &fakeNotifier{}
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewService(NewRepository(db), notifier, log), mock, notifier
}

func TestCreateSettlement(t *testing.T) {
	svc, mock, notifier := newTestService(t)
	from, to := uuid.New(), uuid.New()

	mock.ExpectQuery("INSERT INTO settlements").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

	settlement, err := svc.Create(context.Background(), from, &CreateSettlementRequest{
		GroupID:  uuid.New(),
		FromUser: from,
		ToUser:   to,
		Amount:   decimal.RequireFromString("20.005"),
	})
	require.NoError(t, err)

	assert.Equal(t, "20.01", settlement.Amount.StringFixed(2))
	assert.Equal(t, []uuid.UUID{to}, notifier.recipients)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateSettlementValidation(t *testing.T) {
	svc, _, _ := newTestService(t)
	from, to := uuid.New(), uuid.New()

	tests := []struct {
		name string
		req  *CreateSettlementRequest
	}{
		{
			name: "missing group",
			req:  &CreateSettlementRequest{FromUser: from, ToUser: to, Amount: decimal.NewFromInt(10)},
		},
		{
			name: "missing from user",
			req:  &CreateSettlementRequest{GroupID: uuid.New(), ToUser: to, Amount: decimal.NewFromInt(10)},
		},
		{
			name: "self settlement",
			req:  &CreateSettlementRequest{GroupID: uuid.New(), FromUser: from, ToUser: from, Amount: decimal.NewFromInt(10)},
		},
		{
			name: "zero amount",
			req:  &CreateSettlementRequest{GroupID: uuid.New(), FromUser: from, ToUser: to, Amount: decimal.Zero},
		},
		{
			name: "negative amount",
			req:  &CreateSettlementRequest{GroupID: uuid.New(), FromUser: from, ToUser: to, Amount: decimal.NewFromInt(-5)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), from, tt.req)
			require.Error(t, err)
			assert.True(t, apperr.IsValidation(err), "expected validation error, got %v", err)
		})
	}
}

func TestDeleteSettlement(t *testing.T) {
	svc, mock, _ := newTestService(t)
	id := uuid.New()

	t.Run("existing record", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM settlements").
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, svc.Delete(context.Background(), id))
	})

	t.Run("missing record", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM settlements").
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, svc.Delete(context.Background(), id), ErrSettlementNotFound)
	})
}

func TestSettlementsForBalances(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	repo := NewRepository(db)

	groupID := uuid.New()
	from, to := uuid.New(), uuid.New()

	mock.ExpectQuery("SELECT (.+) FROM settlements").
		WithArgs(groupID).
		WillReturnRows(sqlmock.NewRows([]string{"from_user", "to_user", "amount"}).
			AddRow(from.String(), to.String(), "20.00"))

	records, err := repo.SettlementsForBalances(context.Background(), groupID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, from, records[0].FromUser)
	assert.Equal(t, to, records[0].ToUser)
	assert.Equal(t, money.Cents(2000), records[0].Amount)
	assert.NoError(t, mock.ExpectationsWereMet())
}
