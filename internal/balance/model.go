package balance

import (
	"github.com/google/uuid"

	"splitmate/pkg/money"
)

// PayerEntry is a payer-share row reduced to what balancing needs
type PayerEntry struct {
	UserID     uuid.UUID
	PaidAmount money.Cents
}

// OwedEntry is an owed-share row reduced to what balancing needs
type OwedEntry struct {
	UserID     uuid.UUID
	OwedAmount money.Cents
}

// ExpenseRecord is one expense's money movements, in the order they were
// recorded
type ExpenseRecord struct {
	ExpenseID   uuid.UUID
	TotalAmount money.Cents
	Payers      []PayerEntry
	OwedShares  []OwedEntry
}

// TransferRecord is a recorded settlement reduced to what balancing needs
type TransferRecord struct {
	FromUser uuid.UUID
	ToUser   uuid.UUID
	Amount   money.Cents
}

// UserBalance is a user's net position in a group. Positive means the group
// owes them, negative means they owe the group.
type UserBalance struct {
	UserID uuid.UUID
	Amount money.Cents
}

// Transfer is one recommended payment in a settlement plan
type Transfer struct {
	From   uuid.UUID
	To     uuid.UUID
	Amount money.Cents
}

// sheet accumulates balances while preserving first-seen order, which keeps
// downstream planning deterministic across runs on identical input.
type sheet struct {
	order   []uuid.UUID
	amounts map[uuid.UUID]money.Cents
}

func newSheet() *sheet {
	return &sheet{amounts: make(map[uuid.UUID]money.Cents)}
}

func (s *sheet) add(userID uuid.UUID, delta money.Cents) {
	if _, seen := s.amounts[userID]; !seen {
		s.order = append(s.order, userID)
	}
	s.amounts[userID] += delta
}

func (s *sheet) balances() []UserBalance {
	out := make([]UserBalance, len(s.order))
	for i, id := range s.order {
		out[i] = UserBalance{UserID: id, Amount: s.amounts[id]}
	}
	return out
}
