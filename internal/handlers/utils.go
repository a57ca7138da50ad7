package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/expensetracker/apiserver/internal/token"
)

type contextKey string

const contextIdentityKey contextKey = "identity"

// ErrorResponse is a simple error payload.
type ErrorResponse struct {
	Error string `json:"error"`
}

func contextWithIdentity(ctx context.Context, identity token.Identity) context.Context {
	return context.WithValue(ctx, contextIdentityKey, identity)
}

func identityFromContext(ctx context.Context) (token.Identity, error) {
	identity, ok := ctx.Value(contextIdentityKey).(token.Identity)
	if !ok || identity.ID < 1 {
		return token.Identity{}, errors.New("missing identity")
	}
	return identity, nil
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}
