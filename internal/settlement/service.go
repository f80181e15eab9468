package settlement

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"splitmate/pkg/apperr"
)

// Common errors
var (
	ErrSettlementNotFound = errors.New("settlement not found")
)

// Notifier receives best-effort notifications about recorded settlements
type Notifier interface {
	NotifySettlementRecorded(ctx context.Context, recipientID uuid.UUID, amount decimal.Decimal, settlementID uuid.UUID) error
}

// Service handles settlement business logic
type Service struct {
	repo     *Repository
	notifier Notifier
	log      *logrus.Logger
}

// NewService creates a new settlement service
func NewService(repo *Repository, notifier Notifier, log *logrus.Logger) *Service {
	return &Service{
		repo:     repo,
		notifier: notifier,
		log:      log,
	}
}

// Create records a payment from one user to another
func (s *Service) Create(ctx context.Context, createdBy uuid.UUID, req *CreateSettlementRequest) (*Settlement, error) {
	if req.GroupID == uuid.Nil {
		return nil, apperr.Validation("group_id is required")
	}
	if req.FromUser == uuid.Nil || req.ToUser == uuid.Nil {
		return nil, apperr.Validation("from_user and to_user are required")
	}
	if req.FromUser == req.ToUser {
		return nil, apperr.Validation("from_user and to_user cannot be the same")
	}
	if !req.Amount.IsPositive() {
		return nil, apperr.Validation("amount must be a positive number")
	}

	settlement := &Settlement{
		ID:        uuid.New(),
		GroupID:   req.GroupID,
		FromUser:  req.FromUser,
		ToUser:    req.ToUser,
		Amount:    req.Amount.Round(2),
		Note:      req.Note,
		CreatedBy: createdBy,
	}

	if err := s.repo.Create(ctx, settlement); err != nil {
		return nil, apperr.Collaborator(err, "failed to persist settlement")
	}

	if s.notifier != nil {
		err := s.notifier.NotifySettlementRecorded(ctx, settlement.ToUser, settlement.Amount, settlement.ID)
		if err != nil {
			s.log.WithError(err).WithField("settlement_id", settlement.ID).Warn("failed to notify settlement recipient")
		}
	}

	return settlement, nil
}

// ListByGroupID retrieves all settlements for a group
func (s *Service) ListByGroupID(ctx context.Context, groupID uuid.UUID) ([]*Settlement, error) {
	if groupID == uuid.Nil {
		return nil, apperr.Validation("group_id is required")
	}

	settlements, err := s.repo.ListByGroupID(ctx, groupID)
	if err != nil {
		return nil, apperr.Collaborator(err, "failed to list settlements")
	}
	return settlements, nil
}

// Delete removes a settlement record. This is the correction mechanism for
// a mistaken entry; balances recompute from the remaining history.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrSettlementNotFound
		}
		return apperr.Collaborator(err, "failed to delete settlement")
	}
	return nil
}
