package settlement

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"splitmate/internal/balance"
	"splitmate/pkg/money"
)

// Repository handles settlement data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new settlement repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new settlement
func (r *Repository) Create(ctx context.Context, s *Settlement) error {
	query := `
		INSERT INTO settlements (id, group_id, from_user, to_user, amount, note, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		s.ID,
		s.GroupID,
		s.FromUser,
		s.ToUser,
		s.Amount,
		s.Note,
		s.CreatedBy,
	).Scan(&s.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create settlement: %w", err)
	}

	return nil
}

// GetByID retrieves a settlement by its ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Settlement, error) {
	query := `
		SELECT id, group_id, from_user, to_user, amount, note, created_by, created_at
		FROM settlements
		WHERE id = $1
	`

	s := &Settlement{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&s.ID,
		&s.GroupID,
		&s.FromUser,
		&s.ToUser,
		&s.Amount,
		&s.Note,
		&s.CreatedBy,
		&s.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get settlement: %w", err)
	}

	return s, nil
}

// ListByGroupID retrieves all settlements for a group, newest first
func (r *Repository) ListByGroupID(ctx context.Context, groupID uuid.UUID) ([]*Settlement, error) {
	query := `
		SELECT id, group_id, from_user, to_user, amount, note, created_by, created_at
		FROM settlements
		WHERE group_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements: %w", err)
	}
	defer rows.Close()

	var settlements []*Settlement
	for rows.Next() {
		s := &Settlement{}
		if err := rows.Scan(
			&s.ID,
			&s.GroupID,
			&s.FromUser,
			&s.ToUser,
			&s.Amount,
			&s.Note,
			&s.CreatedBy,
			&s.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan settlement: %w", err)
		}
		settlements = append(settlements, s)
	}

	return settlements, rows.Err()
}

// Delete removes a settlement record
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM settlements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete settlement: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// SettlementsForBalances loads a group's settlements in insertion order,
// reduced to the cent-amount records the balance service folds over.
func (r *Repository) SettlementsForBalances(ctx context.Context, groupID uuid.UUID) ([]balance.TransferRecord, error) {
	query := `
		SELECT from_user, to_user, amount
		FROM settlements
		WHERE group_id = $1
		ORDER BY created_at ASC, id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements: %w", err)
	}
	defer rows.Close()

	var records []balance.TransferRecord
	for rows.Next() {
		var (
			rec    balance.TransferRecord
			amount decimal.Decimal
		)
		if err := rows.Scan(&rec.FromUser, &rec.ToUser, &amount); err != nil {
			return nil, fmt.Errorf("failed to scan settlement: %w", err)
		}
		rec.Amount = money.FromDecimal(amount)
		records = append(records, rec)
	}

	return records, rows.Err()
}
