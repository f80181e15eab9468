package expense

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"splitmate/internal/expense/split"
	"splitmate/pkg/apperr"
	"splitmate/pkg/money"
)

// Common errors
var (
	ErrExpenseNotFound = errors.New("expense not found")
)

// Notifier receives best-effort notifications about new expenses. Failures
// are logged and never fail the expense itself.
type Notifier interface {
	NotifyExpenseAdded(ctx context.Context, recipientID uuid.UUID, description string, owedAmount decimal.Decimal, expenseID uuid.UUID) error
}

// Service handles expense business logic
type Service struct {
	repo         *Repository
	splitFactory *split.Factory
	notifier     Notifier
	log          *logrus.Logger
}

// NewService creates a new expense service with dependencies injected
func NewService(repo *Repository, splitFactory *split.Factory, notifier Notifier, log *logrus.Logger) *Service {
	return &Service{
		repo:         repo,
		splitFactory: splitFactory,
		notifier:     notifier,
		log:          log,
	}
}

// CreateExpense validates the request, computes owed shares with the
// requested strategy, and persists the header plus payer and owed rows as
// one unit.
func (s *Service) CreateExpense(ctx context.Context, createdBy uuid.UUID, req *CreateExpenseRequest) (*Expense, error) {
	if err := validateCreate(createdBy, req); err != nil {
		return nil, err
	}

	strategy, err := s.splitFactory.CreateFromString(req.SplitType)
	if err != nil {
		return nil, &apperr.Error{Kind: apperr.KindValidation, Message: "invalid split type", Err: err}
	}

	totalCents := money.FromDecimal(req.TotalAmount)
	result, err := strategy.Calculate(&split.Input{
		TotalAmount:     totalCents,
		Participants:    req.Participants,
		SplitBetween:    req.SplitBetween,
		Values:          req.SplitValues,
		ValuesAlignedTo: split.Alignment(req.ValuesAlignedTo),
	})
	if err != nil {
		return nil, &apperr.Error{Kind: apperr.KindValidation, Message: "invalid split input", Err: err}
	}

	var sum money.Cents
	for _, share := range result.Shares {
		sum += share.OwedAmount
	}
	if sum != totalCents {
		return nil, apperr.Consistency("owed shares sum to %s, expected %s", sum, totalCents)
	}

	if result.Remainder > 0 {
		s.log.WithFields(logrus.Fields{
			"group_id":        req.GroupID,
			"split_type":      strategy.Type(),
			"remainder_cents": int64(result.Remainder),
		}).Info("distributed rounding remainder across owed shares")
	}

	expense := &Expense{
		ID:          uuid.New(),
		GroupID:     req.GroupID,
		Description: req.Description,
		TotalAmount: req.TotalAmount.Round(2),
		SplitType:   string(strategy.Type()),
		CreatedBy:   createdBy,
	}

	payers := make([]*PayerShare, len(req.Payers))
	for i, p := range req.Payers {
		payers[i] = &PayerShare{
			ExpenseID:  expense.ID,
			UserID:     p.UserID,
			PaidAmount: p.PaidAmount.Round(2),
		}
	}

	splits := make([]*OwedShare, len(result.Shares))
	for i, share := range result.Shares {
		splits[i] = &OwedShare{
			ExpenseID:  expense.ID,
			UserID:     share.UserID,
			OwedAmount: share.OwedAmount.Decimal(),
		}
	}

	if err := s.repo.CreateWithShares(ctx, expense, payers, splits); err != nil {
		return nil, apperr.Collaborator(err, "failed to persist expense")
	}
	expense.Payers = payers
	expense.Splits = splits

	s.notifyShares(ctx, expense, result.Shares)

	return expense, nil
}

// GetByID retrieves an expense with its shares
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*Expense, error) {
	expense, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.Collaborator(err, "failed to load expense")
	}
	if expense == nil {
		return nil, ErrExpenseNotFound
	}
	return expense, nil
}

// ListByGroupID retrieves expenses for a group
func (s *Service) ListByGroupID(ctx context.Context, groupID uuid.UUID, page, perPage int) ([]*Expense, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	expenses, total, err := s.repo.ListByGroupID(ctx, groupID, perPage, offset)
	if err != nil {
		return nil, 0, apperr.Collaborator(err, "failed to list expenses")
	}
	return expenses, total, nil
}

func (s *Service) notifyShares(ctx context.Context, expense *Expense, shares []split.Share) {
	if s.notifier == nil {
		return
	}
	for _, share := range shares {
		if share.OwedAmount <= 0 || share.UserID == expense.CreatedBy {
			continue
		}
		err := s.notifier.NotifyExpenseAdded(ctx, share.UserID, expense.Description, share.OwedAmount.Decimal(), expense.ID)
		if err != nil {
			s.log.WithError(err).WithField("expense_id", expense.ID).Warn("failed to notify participant")
		}
	}
}

func validateCreate(createdBy uuid.UUID, req *CreateExpenseRequest) error {
	if req.GroupID == uuid.Nil {
		return apperr.Validation("group_id is required")
	}
	if createdBy == uuid.Nil {
		return apperr.Validation("created_by is required")
	}
	if !req.TotalAmount.IsPositive() {
		return apperr.Validation("total_amount must be positive")
	}
	if len(req.Payers) == 0 {
		return apperr.Validation("payers are required")
	}
	if len(req.Participants) == 0 {
		return apperr.Validation("participants are required")
	}
	for _, p := range req.Payers {
		if p.UserID == uuid.Nil {
			return apperr.Validation("payer user_id is required")
		}
		if p.PaidAmount.IsNegative() {
			return apperr.Validation("paid_amount cannot be negative")
		}
	}
	return nil
}
