package expense

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PayerInput is one payer's contribution in a create request
type PayerInput struct {
	UserID     uuid.UUID       `json:"user_id"`
	PaidAmount decimal.Decimal `json:"paid_amount"`
}

// CreateExpenseRequest represents the request to create an expense.
// split_values are percentages for "percentage" and absolute weights for
// "manual"; values_aligned_to states which list they are ordered against.
type CreateExpenseRequest struct {
	GroupID         uuid.UUID         `json:"group_id"`
	Description     string            `json:"description"`
	TotalAmount     decimal.Decimal   `json:"total_amount"`
	Payers          []PayerInput      `json:"payers"`
	Participants    []uuid.UUID       `json:"participants"`
	SplitBetween    []uuid.UUID       `json:"split_between,omitempty"`
	SplitType       string            `json:"split_type"` // equal, percentage, manual
	SplitValues     []decimal.Decimal `json:"split_values,omitempty"`
	ValuesAlignedTo string            `json:"values_aligned_to,omitempty"` // participants | split_between
}

// ShareResponse is one participant's owed amount in a response
type ShareResponse struct {
	UserID     uuid.UUID `json:"user_id"`
	OwedAmount string    `json:"owed_amount"`
}

// ExpenseResponse represents the response for an expense
type ExpenseResponse struct {
	ID          uuid.UUID        `json:"id"`
	GroupID     uuid.UUID        `json:"group_id"`
	Description string           `json:"description"`
	TotalAmount string           `json:"total_amount"`
	SplitType   string           `json:"split_type"`
	CreatedBy   uuid.UUID        `json:"created_by"`
	CreatedAt   string           `json:"created_at"`
	Payers      []*PayerResponse `json:"payers,omitempty"`
	Splits      []*ShareResponse `json:"splits,omitempty"`
}

// PayerResponse is one payer row in a response
type PayerResponse struct {
	UserID     uuid.UUID `json:"user_id"`
	PaidAmount string    `json:"paid_amount"`
}

// ToResponse converts an Expense model to an ExpenseResponse DTO
func (e *Expense) ToResponse() *ExpenseResponse {
	resp := &ExpenseResponse{
		ID:          e.ID,
		GroupID:     e.GroupID,
		Description: e.Description,
		TotalAmount: e.TotalAmount.StringFixed(2),
		SplitType:   e.SplitType,
		CreatedBy:   e.CreatedBy,
		CreatedAt:   e.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
	for _, p := range e.Payers {
		resp.Payers = append(resp.Payers, &PayerResponse{
			UserID:     p.UserID,
			PaidAmount: p.PaidAmount.StringFixed(2),
		})
	}
	for _, s := range e.Splits {
		resp.Splits = append(resp.Splits, &ShareResponse{
			UserID:     s.UserID,
			OwedAmount: s.OwedAmount.StringFixed(2),
		})
	}
	return resp
}
