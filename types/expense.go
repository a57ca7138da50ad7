package types

import "time"

// Expense is a single expense record owned by exactly one user.
type Expense struct {
	ID     int `json:"id" db:"id"`
	UserID int `json:"user_id" db:"user_id"`

	Title string `json:"title" db:"title"`

	// Amount is in minor currency units; the API treats it as an
	// opaque integer.
	Amount int64 `json:"amount" db:"amount"`

	// Date is the calendar date of the expense in ISO-8601 form
	// (e.g. "2025-01-01").
	Date string `json:"date" db:"date"`

	Category string `json:"category" db:"category"`
	Budget   int64  `json:"budget" db:"budget"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
