package expense

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"splitmate/internal/balance"
	"splitmate/pkg/money"
)

// Repository handles expense, payer-share, and owed-share persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new expense repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreateWithShares inserts an expense header with its payer and owed rows as
// one transaction, so a failure at any phase leaves no partial expense
// behind.
func (r *Repository) CreateWithShares(ctx context.Context, e *Expense, payers []*PayerShare, splits []*OwedShare) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO expenses (id, group_id, description, total_amount, split_type, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`
	err = tx.QueryRowContext(ctx, query,
		e.ID,
		e.GroupID,
		e.Description,
		e.TotalAmount,
		e.SplitType,
		e.CreatedBy,
	).Scan(&e.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}

	for _, p := range payers {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO expense_payers (expense_id, user_id, paid_amount) VALUES ($1, $2, $3)`,
			p.ExpenseID, p.UserID, p.PaidAmount,
		)
		if err != nil {
			return fmt.Errorf("failed to create payer share: %w", err)
		}
	}

	for _, s := range splits {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO expense_splits (expense_id, user_id, owed_amount) VALUES ($1, $2, $3)`,
			s.ExpenseID, s.UserID, s.OwedAmount,
		)
		if err != nil {
			return fmt.Errorf("failed to create owed share: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit expense: %w", err)
	}
	return nil
}

// GetByID retrieves an expense with its payer and owed rows
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Expense, error) {
	query := `
		SELECT id, group_id, description, total_amount, split_type, created_by, created_at
		FROM expenses
		WHERE id = $1
	`

	expense := &Expense{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&expense.ID,
		&expense.GroupID,
		&expense.Description,
		&expense.TotalAmount,
		&expense.SplitType,
		&expense.CreatedBy,
		&expense.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	if expense.Payers, err = r.getPayers(ctx, id); err != nil {
		return nil, err
	}
	if expense.Splits, err = r.getSplits(ctx, id); err != nil {
		return nil, err
	}

	return expense, nil
}

// ListByGroupID retrieves a page of expenses for a group, newest first,
// with payer and owed rows attached
func (r *Repository) ListByGroupID(ctx context.Context, groupID uuid.UUID, limit, offset int) ([]*Expense, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM expenses WHERE group_id = $1`
	if err := r.db.QueryRowContext(ctx, countQuery, groupID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count expenses: %w", err)
	}

	query := `
		SELECT id, group_id, description, total_amount, split_type, created_by, created_at
		FROM expenses
		WHERE group_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, groupID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*Expense
	for rows.Next() {
		expense := &Expense{}
		if err := rows.Scan(
			&expense.ID,
			&expense.GroupID,
			&expense.Description,
			&expense.TotalAmount,
			&expense.SplitType,
			&expense.CreatedBy,
			&expense.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to list expenses: %w", err)
	}

	for _, expense := range expenses {
		if expense.Payers, err = r.getPayers(ctx, expense.ID); err != nil {
			return nil, 0, err
		}
		if expense.Splits, err = r.getSplits(ctx, expense.ID); err != nil {
			return nil, 0, err
		}
	}

	return expenses, total, nil
}

// ExpensesForBalances loads a group's full expense history in insertion
// order, reduced to the cent-amount records the balance service folds over.
func (r *Repository) ExpensesForBalances(ctx context.Context, groupID uuid.UUID) ([]balance.ExpenseRecord, error) {
	query := `
		SELECT id, total_amount
		FROM expenses
		WHERE group_id = $1
		ORDER BY created_at ASC, id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var records []balance.ExpenseRecord
	for rows.Next() {
		var (
			rec   balance.ExpenseRecord
			total decimal.Decimal
		)
		if err := rows.Scan(&rec.ExpenseID, &total); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		rec.TotalAmount = money.FromDecimal(total)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}

	for i := range records {
		payers, err := r.getPayers(ctx, records[i].ExpenseID)
		if err != nil {
			return nil, err
		}
		for _, p := range payers {
			records[i].Payers = append(records[i].Payers, balance.PayerEntry{
				UserID:     p.UserID,
				PaidAmount: money.FromDecimal(p.PaidAmount),
			})
		}

		splits, err := r.getSplits(ctx, records[i].ExpenseID)
		if err != nil {
			return nil, err
		}
		for _, s := range splits {
			records[i].OwedShares = append(records[i].OwedShares, balance.OwedEntry{
				UserID:     s.UserID,
				OwedAmount: money.FromDecimal(s.OwedAmount),
			})
		}
	}

	return records, nil
}

func (r *Repository) getPayers(ctx context.Context, expenseID uuid.UUID) ([]*PayerShare, error) {
	query := `
		SELECT expense_id, user_id, paid_amount
		FROM expense_payers
		WHERE expense_id = $1
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get payer shares: %w", err)
	}
	defer rows.Close()

	var payers []*PayerShare
	for rows.Next() {
		p := &PayerShare{}
		if err := rows.Scan(&p.ExpenseID, &p.UserID, &p.PaidAmount); err != nil {
			return nil, fmt.Errorf("failed to scan payer share: %w", err)
		}
		payers = append(payers, p)
	}
	return payers, rows.Err()
}

func (r *Repository) getSplits(ctx context.Context, expenseID uuid.UUID) ([]*OwedShare, error) {
	query := `
		SELECT expense_id, user_id, owed_amount
		FROM expense_splits
		WHERE expense_id = $1
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get owed shares: %w", err)
	}
	defer rows.Close()

	var splits []*OwedShare
	for rows.Next() {
		s := &OwedShare{}
		if err := rows.Scan(&s.ExpenseID, &s.UserID, &s.OwedAmount); err != nil {
			return nil, fmt.Errorf("failed to scan owed share: %w", err)
		}
		splits = append(splits, s)
	}
	return splits, rows.Err()
}
