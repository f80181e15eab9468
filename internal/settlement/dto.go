package settlement

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateSettlementRequest represents the request to record a settlement
type CreateSettlementRequest struct {
	GroupID  uuid.UUID       `json:"group_id"`
	FromUser uuid.UUID       `json:"from_user"`
	ToUser   uuid.UUID       `json:"to_user"`
	Amount   decimal.Decimal `json:"amount"`
	Note     *string         `json:"note,omitempty"`
}

// SettlementResponse represents the response for a settlement
type SettlementResponse struct {
	ID        uuid.UUID `json:"id"`
	GroupID   uuid.UUID `json:"group_id"`
	FromUser  uuid.UUID `json:"from_user"`
	ToUser    uuid.UUID `json:"to_user"`
	Amount    string    `json:"amount"`
	Note      *string   `json:"note,omitempty"`
	CreatedBy uuid.UUID `json:"created_by"`
	CreatedAt string    `json:"created_at"`
}

// ToResponse converts a Settlement model to a SettlementResponse DTO
func (s *Settlement) ToResponse() *SettlementResponse {
	return &SettlementResponse{
		ID:        s.ID,
		GroupID:   s.GroupID,
		FromUser:  s.FromUser,
		ToUser:    s.ToUser,
		Amount:    s.Amount.StringFixed(2),
		Note:      s.Note,
		CreatedBy: s.CreatedBy,
		CreatedAt: s.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
