package notification

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"splitmate/pkg/apperr"
)

// Common errors
var (
	ErrNotificationNotFound = errors.New("notification not found")
)

// Service handles notification business logic. It also satisfies the
// Notifier interfaces of the expense and settlement services.
type Service struct {
	repo *Repository
}

// NewService creates a new notification service
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// NotifyExpenseAdded records a notification for a participant who was
// assigned an owed share
func (s *Service) NotifyExpenseAdded(ctx context.Context, recipientID uuid.UUID, description string, owedAmount decimal.Decimal, expenseID uuid.UUID) error {
	if description == "" {
		description = "an expense"
	}
	entityType := "EXPENSE"
	n := &Notification{
		ID:          uuid.New(),
		RecipientID: recipientID,
		Message:     fmt.Sprintf("You owe %s on %q", owedAmount.StringFixed(2), description),
		EntityType:  &entityType,
		EntityID:    &expenseID,
	}
	return s.repo.Create(ctx, n)
}

// NotifySettlementRecorded records a notification for the receiving side of
// a settlement
func (s *Service) NotifySettlementRecorded(ctx context.Context, recipientID uuid.UUID, amount decimal.Decimal, settlementID uuid.UUID) error {
	entityType := "SETTLEMENT"
	n := &Notification{
		ID:          uuid.New(),
		RecipientID: recipientID,
		Message:     fmt.Sprintf("A payment of %s to you was recorded", amount.StringFixed(2)),
		EntityType:  &entityType,
		EntityID:    &settlementID,
	}
	return s.repo.Create(ctx, n)
}

// ListByRecipientID retrieves a page of notifications for a user
func (s *Service) ListByRecipientID(ctx context.Context, recipientID uuid.UUID, page, perPage int, unreadOnly bool) ([]*Notification, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	notifications, err := s.repo.ListByRecipientID(ctx, recipientID, perPage, offset, unreadOnly)
	if err != nil {
		return nil, apperr.Collaborator(err, "failed to list notifications")
	}
	return notifications, nil
}

// MarkAsRead marks a notification as read
func (s *Service) MarkAsRead(ctx context.Context, id, recipientID uuid.UUID) error {
	if err := s.repo.MarkAsRead(ctx, id, recipientID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotificationNotFound
		}
		return apperr.Collaborator(err, "failed to mark notification as read")
	}
	return nil
}

// MarkAllAsRead marks all notifications as read for a user
func (s *Service) MarkAllAsRead(ctx context.Context, recipientID uuid.UUID) error {
	if err := s.repo.MarkAllAsRead(ctx, recipientID); err != nil {
		return apperr.Collaborator(err, "failed to mark notifications as read")
	}
	return nil
}

// CountUnread returns the count of unread notifications
func (s *Service) CountUnread(ctx context.Context, recipientID uuid.UUID) (int, error) {
	count, err := s.repo.CountUnread(ctx, recipientID)
	if err != nil {
		return 0, apperr.Collaborator(err, "failed to count notifications")
	}
	return count, nil
}
