package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/expensetracker/apiserver/internal/services"
	"github.com/expensetracker/apiserver/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// ExpenseHandler provides HTTP handlers for expense CRUD. All routes are
// behind the auth middleware; the acting user always comes from the
// verified token, never from the payload.
type ExpenseHandler struct {
	expenseService *services.ExpenseService
}

// NewExpenseHandler constructs a handler with the provided service.
func NewExpenseHandler(expenseService *services.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// ExpenseRouter registers expense routes on the given router.
func ExpenseRouter(r chi.Router, expenseService *services.ExpenseService, authMiddleware func(http.Handler) http.Handler) {
	handler := NewExpenseHandler(expenseService)

	r.Use(authMiddleware)
	r.Post("/", handler.AddExpense)
	r.Get("/", handler.ListExpenses)
	r.Route("/{expenseID}", func(r chi.Router) {
		r.Patch("/", handler.UpdateExpense)
		r.Delete("/", handler.DeleteExpense)
	})
}

type ExpenseRequest struct {
	Title    string `json:"title"`
	Amount   int64  `json:"amount"`
	Date     string `json:"date"`
	Category string `json:"category"`
	Budget   int64  `json:"budget"`
}

// ExpensePatchRequest mirrors ExpenseRequest with optional fields;
// omitted fields keep their stored values.
type ExpensePatchRequest struct {
	Title    *string `json:"title"`
	Amount   *int64  `json:"amount"`
	Date     *string `json:"date"`
	Category *string `json:"category"`
	Budget   *int64  `json:"budget"`
}

func (h *ExpenseHandler) AddExpense(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req ExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	expense, err := h.expenseService.Add(r.Context(), identity.ID, services.ExpenseInput{
		Title:    req.Title,
		Amount:   req.Amount,
		Date:     req.Date,
		Category: req.Category,
		Budget:   req.Budget,
	})
	if err != nil {
		log.Error().Err(err).Int("user_id", identity.ID).Msg("failed to add expense")
		writeError(w, http.StatusInternalServerError, "failed to add expense")
		return
	}

	writeJSON(w, http.StatusOK, expense)
}

func (h *ExpenseHandler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	expenses, err := h.expenseService.List(r.Context(), identity.ID)
	if err != nil {
		log.Error().Err(err).Int("user_id", identity.ID).Msg("failed to list expenses")
		writeError(w, http.StatusInternalServerError, "failed to list expenses")
		return
	}

	writeJSON(w, http.StatusOK, expenses)
}

func (h *ExpenseHandler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := parseExpenseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req ExpensePatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	expense, err := h.expenseService.Update(r.Context(), identity.ID, id, services.ExpensePatch{
		Title:    req.Title,
		Amount:   req.Amount,
		Date:     req.Date,
		Category: req.Category,
		Budget:   req.Budget,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "expense not found")
			return
		}
		log.Error().Err(err).Int("user_id", identity.ID).Int("expense_id", id).Msg("failed to update expense")
		writeError(w, http.StatusInternalServerError, "failed to update expense")
		return
	}

	writeJSON(w, http.StatusOK, expense)
}

func (h *ExpenseHandler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := parseExpenseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.expenseService.Delete(r.Context(), identity.ID, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "expense not found")
			return
		}
		log.Error().Err(err).Int("user_id", identity.ID).Int("expense_id", id).Msg("failed to delete expense")
		writeError(w, http.StatusInternalServerError, "failed to delete expense")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "expense deleted"})
}

func parseExpenseID(r *http.Request) (int, error) {
	raw := strings.TrimSpace(chi.URLParam(r, "expenseID"))
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		return 0, errors.New("invalid expense id")
	}
	return id, nil
}
