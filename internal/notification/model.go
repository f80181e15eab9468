package notification

import (
	"time"

	"github.com/google/uuid"
)

// Notification represents an in-app notification
type Notification struct {
	ID          uuid.UUID  `json:"id"`
	RecipientID uuid.UUID  `json:"recipient_id"`
	Message     string     `json:"message"`
	IsRead      bool       `json:"is_read"`
	EntityType  *string    `json:"entity_type,omitempty"` // "EXPENSE" or "SETTLEMENT"
	EntityID    *uuid.UUID `json:"entity_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}
