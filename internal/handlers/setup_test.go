package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/expensetracker/apiserver/config"
	"github.com/expensetracker/apiserver/internal/server"
	"github.com/expensetracker/apiserver/internal/services"
	"github.com/expensetracker/apiserver/internal/store"
	"github.com/expensetracker/apiserver/internal/token"
	"github.com/expensetracker/apiserver/types"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

// In-memory repositories so the full router can run without Postgres.

type fakeUserRepo struct {
	nextID int
	users  []types.User
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

type fakeExpenseRepo struct {
	nextID int
	rows   []types.Expense
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

func setupRouter(t *testing.T) (*chi.Mux, *token.Service) {
	t.Helper()

	tokens := token.NewService([]byte("test-secret"), time.Hour)
	authService := services.NewAuthService(&fakeUserRepo{nextID: 1}, tokens)
	expenseService := services.NewExpenseService(&fakeExpenseRepo{nextID: 1})

	cfg := config.Config{CORSOrigin: "*"}
	router := server.NewRouter(cfg, authService, expenseService, tokens)
	return router, tokens
}

func doRequest(t *testing.T, router http.Handler, method, path, bearer string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func decodeBody[T any](t *testing.T, resp *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out))
	return out
}
