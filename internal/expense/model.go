package expense

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Expense represents a shared expense in a group. Expenses are immutable
// once created: corrections happen through settlements, never edits.
type Expense struct {
	ID          uuid.UUID       `json:"id"`
	GroupID     uuid.UUID       `json:"group_id"`
	Description string          `json:"description"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	SplitType   string          `json:"split_type"`
	CreatedBy   uuid.UUID       `json:"created_by"`
	CreatedAt   time.Time       `json:"created_at"`

	// Owned child rows, populated on reads
	Payers []*PayerShare `json:"payers,omitempty"`
	Splits []*OwedShare  `json:"splits,omitempty"`
}

// PayerShare records how much a payer actually contributed to an expense
type PayerShare struct {
	ExpenseID  uuid.UUID       `json:"expense_id"`
	UserID     uuid.UUID       `json:"user_id"`
	PaidAmount decimal.Decimal `json:"paid_amount"`
}

// OwedShare records a participant's responsibility within an expense.
// Every participant gets a row; non-sharing participants carry zero.
type OwedShare struct {
	ExpenseID  uuid.UUID       `json:"expense_id"`
	UserID     uuid.UUID       `json:"user_id"`
	OwedAmount decimal.Decimal `json:"owed_amount"`
}
