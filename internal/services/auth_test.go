package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/expensetracker/apiserver/internal/services"
	"github.com/expensetracker/apiserver/internal/token"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthService() (*services.AuthService, *fakeUserRepo, *token.Service) {
	users := newFakeUserRepo()
	tokens := token.NewService([]byte("test-secret"), time.Hour)
	return services.NewAuthService(users, tokens), users, tokens
}

func TestSignupStoresHashNotPlaintext(t *testing.T) {
	svc, users, _ := newAuthService()
	ctx := context.Background()

	user, err := svc.Signup(ctx, "Ada", "ada@x.com", "pw1")
	require.NoError(t, err)
	require.Equal(t, "Ada", user.Name)
	require.Equal(t, "ada@x.com", user.Email)
	require.Empty(t, user.PasswordHash)

	stored, err := users.GetByEmail(ctx, "ada@x.com")
	require.NoError(t, err)
	require.NotEmpty(t, stored.PasswordHash)
	require.NotEqual(t, "pw1", stored.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("pw1")))
}

func TestSignupDuplicateEmail(t *testing.T) {
	svc, users, _ := newAuthService()
	ctx := context.Background()

	_, err := svc.Signup(ctx, "Ada", "ada@x.com", "pw1")
	require.NoError(t, err)

	_, err = svc.Signup(ctx, "Imposter", "ada@x.com", "pw2")
	require.ErrorIs(t, err, services.ErrDuplicateEmail)
	require.Len(t, users.users, 1)
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	svc, _, tokens := newAuthService()
	ctx := context.Background()

	created, err := svc.Signup(ctx, "Ada", "ada@x.com", "pw1")
	require.NoError(t, err)

	signed, user, err := svc.Login(ctx, "ada@x.com", "pw1")
	require.NoError(t, err)
	require.Equal(t, created.ID, user.ID)
	require.Empty(t, user.PasswordHash)

	identity, err := tokens.Verify(signed)
	require.NoError(t, err)
	require.Equal(t, created.ID, identity.ID)
	require.Equal(t, "Ada", identity.Name)
	require.Equal(t, "ada@x.com", identity.Email)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, _ := newAuthService()
	ctx := context.Background()

	_, err := svc.Signup(ctx, "Ada", "ada@x.com", "pw1")
	require.NoError(t, err)

	signed, _, err := svc.Login(ctx, "ada@x.com", "wrong")
	require.ErrorIs(t, err, services.ErrInvalidCredentials)
	require.Empty(t, signed)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _, _ := newAuthService()

	_, _, err := svc.Login(context.Background(), "nobody@x.com", "pw1")
	require.ErrorIs(t, err, services.ErrUserNotFound)
}

func TestCurrentUser(t *testing.T) {
	svc, _, _ := newAuthService()
	ctx := context.Background()

	created, err := svc.Signup(ctx, "Ada", "ada@x.com", "pw1")
	require.NoError(t, err)

	user, err := svc.CurrentUser(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "ada@x.com", user.Email)
	require.Empty(t, user.PasswordHash)

	_, err = svc.CurrentUser(ctx, created.ID+100)
	require.ErrorIs(t, err, services.ErrUserNotFound)
}
