package services

import (
	"context"

	"github.com/expensetracker/apiserver/types"
)

// ExpenseRepository defines persistence operations for expenses.
type ExpenseRepository interface {
	Create(ctx context.Context, expense types.Expense) (types.Expense, error)
	GetForUser(ctx context.Context, id, userID int) (types.Expense, error)
	ListForUser(ctx context.Context, userID int) ([]types.Expense, error)
	Update(ctx context.Context, expense types.Expense) (types.Expense, error)
	Delete(ctx context.Context, id int) error
}

// ExpenseInput carries the fields for a new expense.
type ExpenseInput struct {
	Title    string
	Amount   int64
	Date     string
	Category string
	Budget   int64
}

// ExpensePatch is a merge-patch: nil fields keep their stored values.
type ExpensePatch struct {
	Title    *string
	Amount   *int64
	Date     *string
	Category *string
	Budget   *int64
}

// ExpenseService encapsulates expense use-cases. Every operation takes
// the acting userID, established by token verification at the HTTP
// boundary, and never touches rows owned by anyone else.
type ExpenseService struct {
	expenses ExpenseRepository
}

func NewExpenseService(expenses ExpenseRepository) *ExpenseService {
	return &ExpenseService{expenses: expenses}
}

func (s *ExpenseService) Add(ctx context.Context, userID int, input ExpenseInput) (types.Expense, error) {
	return s.expenses.Create(ctx, types.Expense{
		UserID:   userID,
		Title:    input.Title,
		Amount:   input.Amount,
		Date:     input.Date,
		Category: input.Category,
		Budget:   input.Budget,
	})
}

// List returns the user's expenses. Ordering follows the store and is
// not part of the contract.
func (s *ExpenseService) List(ctx context.Context, userID int) ([]types.Expense, error) {
	return s.expenses.ListForUser(ctx, userID)
}

// Update applies a merge-patch to an expense after the ownership gate.
// A missing row and a row owned by another user both surface as
// store.ErrNotFound.
func (s *ExpenseService) Update(ctx context.Context, userID, expenseID int, patch ExpensePatch) (types.Expense, error) {
	expense, err := s.expenses.GetForUser(ctx, expenseID, userID)
	if err != nil {
		return types.Expense{}, err
	}

	if patch.Title != nil {
		expense.Title = *patch.Title
	}
	if patch.Amount != nil {
		expense.Amount = *patch.Amount
	}
	if patch.Date != nil {
		expense.Date = *patch.Date
	}
	if patch.Category != nil {
		expense.Category = *patch.Category
	}
	if patch.Budget != nil {
		expense.Budget = *patch.Budget
	}

	return s.expenses.Update(ctx, expense)
}

// Delete removes an expense after the ownership gate.
func (s *ExpenseService) Delete(ctx context.Context, userID, expenseID int) error {
	if _, err := s.expenses.GetForUser(ctx, expenseID, userID); err != nil {
		return err
	}
	return s.expenses.Delete(ctx, expenseID)
}
