package services_test

import (
	"context"

	"github.com/expensetracker/apiserver/internal/store"
	"github.com/expensetracker/apiserver/types"
)

// fakeUserRepo is an in-memory services.UserRepository.
type fakeUserRepo struct {
	nextID int
	users  []types.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1}
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int) (types.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return types.User{}, store.ErrNotFound
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (types.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return types.User{}, store.ErrNotFound
}

func (f *fakeUserRepo) Create(ctx context.Context, user types.User) (types.User, error) {
	user.ID = f.nextID
	f.nextID++
	f.users = append(f.users, user)
	return user, nil
}

// fakeExpenseRepo is an in-memory services.ExpenseRepository.
type fakeExpenseRepo struct {
	nextID int
	rows   []types.Expense
}

func newFakeExpenseRepo() *fakeExpenseRepo {
	return &fakeExpenseRepo{nextID: 1}
}

func (f *fakeExpenseRepo) Create(ctx context.Context, expense types.Expense) (types.Expense, error) {
	expense.ID = f.nextID
	f.nextID++
	f.rows = append(f.rows, expense)
	return expense, nil
}

func (f *fakeExpenseRepo) GetForUser(ctx context.Context, id, userID int) (types.Expense, error) {
	for _, e := range f.rows {
		if e.ID == id && e.UserID == userID {
			return e, nil
		}
	}
	return types.Expense{}, store.ErrNotFound
}

func (f *fakeExpenseRepo) ListForUser(ctx context.Context, userID int) ([]types.Expense, error) {
	out := make([]types.Expense, 0)
	for _, e := range f.rows {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeExpenseRepo) Update(ctx context.Context, expense types.Expense) (types.Expense, error) {
	for i, e := range f.rows {
		if e.ID == expense.ID {
			f.rows[i] = expense
			return expense, nil
		}
	}
	return types.Expense{}, store.ErrNotFound
}

func (f *fakeExpenseRepo) Delete(ctx context.Context, id int) error {
	for i, e := range f.rows {
		if e.ID == id {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}
