package settlement

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Settlement represents a real-world payment from one group member to
// another. Settlements are immutable historical records; a wrong entry is
// corrected by deleting it, not editing it.
type Settlement struct {
	ID        uuid.UUID       `json:"id"`
	GroupID   uuid.UUID       `json:"group_id"`
	FromUser  uuid.UUID       `json:"from_user"`
	ToUser    uuid.UUID       `json:"to_user"`
	Amount    decimal.Decimal `json:"amount"`
	Note      *string         `json:"note,omitempty"`
	CreatedBy uuid.UUID       `json:"created_by"`
	CreatedAt time.Time       `json:"created_at"`
}
