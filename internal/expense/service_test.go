package expense

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

	"splitmate/internal/expense/split"
	"splitmate/pkg/apperr"
)

type fakeNotifier struct {
	recipients []uuid.UUID
}

func (f *fakeNotifier) NotifyExpenseAdded(_ context.Context, recipientID uuid.UUID, _ string, _ decimal.Decimal, _ uuid.UUID) error {
	f.recipients = append(f.recipients, recipientID)
	return nil
}

func newTestService(t *testing.T) (*Service, sqlmock.Sqlmock, *fakeNotifier) {
	t.Helper()
	repo, mock := newMockRepository(t)
	notifier := &fakeNotifier{}
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewService(repo, split.NewFactory(), notifier, log), mock, notifier
}

func validRequest(creator uuid.UUID) *CreateExpenseRequest {
	return &CreateExpenseRequest{
		GroupID:     uuid.New(),
		Description: "Dinner",
		TotalAmount: decimal.RequireFromString("100.00"),
		Payers: []PayerInput{
			{UserID: creator, PaidAmount: decimal.RequireFromString("100.00")},
		},
		Participants: []uuid.UUID{creator, uuid.New(), uuid.New()},
		SplitType:    "equal",
	}
}

func TestCreateExpense(t *testing.T) {
	svc, mock, notifier := newTestService(t)
	creator := uuid.New()
	req := validRequest(creator)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO expenses").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))
	mock.ExpectExec("INSERT INTO expense_payers").
		WillReturnResult(sqlmock.NewResult(1, 1))
	for range req.Participants {
		mock.ExpectExec("INSERT INTO expense_splits").
			WillReturnResult(sqlmock.NewResult(1, 1))
	}
	mock.ExpectCommit()

	expense, err := svc.CreateExpense(context.Background(), creator, req)
	require.NoError(t, err)

	assert.Equal(t, "equal", expense.SplitType)
	require.Len(t, expense.Splits, 3)
	assert.Equal(t, "33.34", expense.Splits[0].OwedAmount.StringFixed(2))
	assert.Equal(t, "33.33", expense.Splits[1].OwedAmount.StringFixed(2))
	assert.Equal(t, "33.33", expense.Splits[2].OwedAmount.StringFixed(2))

	// Only the two non-creator participants with owed shares get notified
	assert.ElementsMatch(t, req.Participants[1:], notifier.recipients)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateExpenseValidation(t *testing.T) {
	svc, _, _ := newTestService(t)
	creator := uuid.New()

	tests := []struct {
		name    string
		mutate  func(*CreateExpenseRequest)
		creator uuid.UUID
	}{
		{name: "missing group", mutate: func(r *CreateExpenseRequest) { r.GroupID = uuid.Nil }, creator: creator},
		{name: "missing creator", mutate: func(r *CreateExpenseRequest) {}, creator: uuid.Nil},
		{name: "zero total", mutate: func(r *CreateExpenseRequest) { r.TotalAmount = decimal.Zero }, creator: creator},
		{name: "negative total", mutate: func(r *CreateExpenseRequest) { r.TotalAmount = decimal.RequireFromString("-1") }, creator: creator},
		{name: "no payers", mutate: func(r *CreateExpenseRequest) { r.Payers = nil }, creator: creator},
		{name: "no participants", mutate: func(r *CreateExpenseRequest) { r.Participants = nil }, creator: creator},
		{name: "negative paid amount", mutate: func(r *CreateExpenseRequest) {
			r.Payers[0].PaidAmount = decimal.RequireFromString("-5")
		}, creator: creator},
		{name: "unknown split type", mutate: func(r *CreateExpenseRequest) { r.SplitType = "random" }, creator: creator},
		{name: "sharer outside participants", mutate: func(r *CreateExpenseRequest) {
			r.SplitBetween = []uuid.UUID{uuid.New()}
		}, creator: creator},
		{name: "values without alignment", mutate: func(r *CreateExpenseRequest) {
			r.SplitType = "percentage"
			r.SplitValues = []decimal.Decimal{decimal.NewFromInt(50), decimal.NewFromInt(30), decimal.NewFromInt(20)}
		}, creator: creator},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest(creator)
			tt.mutate(req)

			_, err := svc.CreateExpense(context.Background(), tt.creator, req)
			require.Error(t, err)
			assert.True(t, apperr.IsValidation(err), "expected validation error, got %v", err)
		})
	}
}

func TestCreateExpensePersistFailure(t *testing.T) {
	svc, mock, _ := newTestService(t)
	creator := uuid.New()

	mock.ExpectBegin().WillReturnError(context.DeadlineExceeded)

	_, err := svc.CreateExpense(context.Background(), creator, validRequest(creator))
	require.Error(t, err)
	assert.Equal(t, apperr.KindCollaborator, apperr.KindOf(err))
}

func TestListByGroupIDClampsPaging(t *testing.T) {
	svc, mock, _ := newTestService(t)
	groupID := uuid.New()

	mock.ExpectQuery("SELECT COUNT").
		WithArgs(groupID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery("SELECT (.+) FROM expenses").
		WithArgs(groupID, 20, 0).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "group_id", "description", "total_amount", "split_type", "created_by", "created_at",
		}))

	// Out-of-range paging falls back to the defaults
	expenses, total, err := svc.ListByGroupID(context.Background(), groupID, -3, 1000)
	require.NoError(t, err)
	assert.Empty(t, expenses)
	assert.Equal(t, 0, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}
