package balance

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"splitmate/pkg/apperr"
	"splitmate/pkg/money"
)

// ExpenseSource provides a group's expense history for balancing
type ExpenseSource interface {
	ExpensesForBalances(ctx context.Context, groupID uuid.UUID) ([]ExpenseRecord, error)
}

// SettlementSource provides a group's settlement history for balancing
type SettlementSource interface {
	SettlementsForBalances(ctx context.Context, groupID uuid.UUID) ([]TransferRecord, error)
}

// Sheet is the computed balance state for one group. Drift is the sum of all
// balances, which must be zero for internally consistent data; a nonzero
// value is reported to the caller as a warning, never hidden.
type Sheet struct {
	Balances []UserBalance
	Drift    money.Cents
}

// PlanResult is a settlement plan plus the residual left unmatched by the
// greedy pass.
type PlanResult struct {
	Transfers []Transfer
	Residual  money.Cents
}

// Service derives balances and settlement plans. It holds no state between
// calls: every query folds the group's full history fresh, so results are
// always consistent with the underlying records.
type Service struct {
	expenses    ExpenseSource
	settlements SettlementSource
	log         *logrus.Logger
}

// NewService creates a new balance service with its data sources injected
func NewService(expenses ExpenseSource, settlements SettlementSource, log *logrus.Logger) *Service {
	return &Service{
		expenses:    expenses,
		settlements: settlements,
		log:         log,
	}
}

// GroupBalances computes each user's net balance from the group's expenses
// and settlements. Payers gain what they paid in, participants lose what
// they owe, and a settlement credits the sender for the cash they handed
// over while debiting the receiver.
func (s *Service) GroupBalances(ctx context.Context, groupID uuid.UUID) (*Sheet, error) {
	if groupID == uuid.Nil {
		return nil, apperr.Validation("group_id is required")
	}

	expenses, err := s.expenses.ExpensesForBalances(ctx, groupID)
	if err != nil {
		return nil, apperr.Collaborator(err, "failed to load expenses")
	}
	settlements, err := s.settlements.SettlementsForBalances(ctx, groupID)
	if err != nil {
		return nil, apperr.Collaborator(err, "failed to load settlements")
	}

	sh := newSheet()
	for _, exp := range expenses {
		for _, p := range exp.Payers {
			sh.add(p.UserID, p.PaidAmount)
		}
		for _, o := range exp.OwedShares {
			sh.add(o.UserID, -o.OwedAmount)
		}
	}
	for _, st := range settlements {
		sh.add(st.FromUser, st.Amount)
		sh.add(st.ToUser, -st.Amount)
	}

	balances := sh.balances()
	var drift money.Cents
	for _, b := range balances {
		drift += b.Amount
	}
	if drift != 0 {
		s.log.WithFields(logrus.Fields{
			"group_id":    groupID,
			"drift_cents": int64(drift),
		}).Warn("group balances do not sum to zero")
	}

	return &Sheet{Balances: balances, Drift: drift}, nil
}

// SettlementPlan computes balances and reduces them to a transfer list.
func (s *Service) SettlementPlan(ctx context.Context, groupID uuid.UUID) (*PlanResult, error) {
	sheet, err := s.GroupBalances(ctx, groupID)
	if err != nil {
		return nil, err
	}

	transfers, residual := Plan(sheet.Balances)
	if residual != 0 {
		s.log.WithFields(logrus.Fields{
			"group_id":       groupID,
			"residual_cents": int64(residual),
		}).Warn("settlement plan left a residual balance")
	}

	return &PlanResult{Transfers: transfers, Residual: residual}, nil
}
