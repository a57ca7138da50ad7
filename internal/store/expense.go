package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/expensetracker/apiserver/types"
)

// ExpenseRepository handles persistence for expenses.
type ExpenseRepository struct {
	db *sql.DB
}

func NewExpenseRepository(db *sql.DB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

func (r *ExpenseRepository) Create(ctx context.Context, expense types.Expense) (types.Expense, error) {
	expense.CreatedAt = time.Now()

	const query = `
		INSERT INTO expenses (user_id, title, amount, date, category, budget, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		expense.UserID,
		expense.Title,
		expense.Amount,
		expense.Date,
		expense.Category,
		expense.Budget,
		expense.CreatedAt,
	).Scan(&expense.ID); err != nil {
		return types.Expense{}, err
	}
	return expense, nil
}

// GetForUser is the ownership gate: the row must both exist and belong to
// userID, otherwise ErrNotFound.
func (r *ExpenseRepository) GetForUser(ctx context.Context, id, userID int) (types.Expense, error) {
	const query = `
		SELECT id, user_id, title, amount, date, category, budget, created_at
		FROM expenses
		WHERE id = $1 AND user_id = $2`
	var expense types.Expense
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(
		&expense.ID,
		&expense.UserID,
		&expense.Title,
		&expense.Amount,
		&expense.Date,
		&expense.Category,
		&expense.Budget,
		&expense.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Expense{}, ErrNotFound
		}
		return types.Expense{}, err
	}
	return expense, nil
}

func (r *ExpenseRepository) ListForUser(ctx context.Context, userID int) ([]types.Expense, error) {
	const query = `
		SELECT id, user_id, title, amount, date, category, budget, created_at
		FROM expenses
		WHERE user_id = $1
		ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	expenses := make([]types.Expense, 0)
	for rows.Next() {
		var expense types.Expense
		if err := rows.Scan(
			&expense.ID,
			&expense.UserID,
			&expense.Title,
			&expense.Amount,
			&expense.Date,
			&expense.Category,
			&expense.Budget,
			&expense.CreatedAt,
		); err != nil {
			return nil, err
		}
		expenses = append(expenses, expense)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return expenses, nil
}

func (r *ExpenseRepository) Update(ctx context.Context, expense types.Expense) (types.Expense, error) {
	const query = `
		UPDATE expenses
		SET title = $1,
			amount = $2,
			date = $3,
			category = $4,
			budget = $5
		WHERE id = $6`
	result, err := r.db.ExecContext(
		ctx,
		query,
		expense.Title,
		expense.Amount,
		expense.Date,
		expense.Category,
		expense.Budget,
		expense.ID,
	)
	if err != nil {
		return types.Expense{}, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return types.Expense{}, err
	}
	if affected == 0 {
		return types.Expense{}, ErrNotFound
	}
	return expense, nil
}

func (r *ExpenseRepository) Delete(ctx context.Context, id int) error {
	const query = `DELETE FROM expenses WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
