package services

import (
	"context"
	"errors"

	"github.com/expensetracker/apiserver/internal/store"
	"github.com/expensetracker/apiserver/internal/token"
	"github.com/expensetracker/apiserver/types"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrDuplicateEmail is returned by Signup when the email is taken.
	ErrDuplicateEmail = errors.New("email already exists")

	// ErrUserNotFound is returned when no account matches the email or id.
	ErrUserNotFound = errors.New("user does not exist")

	// ErrInvalidCredentials is returned when the password check fails.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id int) (types.User, error)
	GetByEmail(ctx context.Context, email string) (types.User, error)
	Create(ctx context.Context, user types.User) (types.User, error)
}

// AuthService implements signup and login on top of a user repository and
// the token service.
type AuthService struct {
	users  UserRepository
	tokens *token.Service
}

func NewAuthService(users UserRepository, tokens *token.Service) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Signup creates a new account. The duplicate check runs before the
// insert so the caller gets ErrDuplicateEmail rather than a raw unique
// constraint violation; the unique index remains as a backstop.
func (s *AuthService) Signup(ctx context.Context, name, email, password string) (types.User, error) {
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return types.User{}, ErrDuplicateEmail
	} else if !errors.Is(err, store.ErrNotFound) {
		return types.User{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return types.User{}, err
	}

	user, err := s.users.Create(ctx, types.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashed),
	})
	if err != nil {
		return types.User{}, err
	}

	user.PasswordHash = ""
	return user, nil
}

// Login verifies the credentials and issues a bearer token carrying the
// user's id, name, and email.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, types.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", types.User{}, ErrUserNotFound
		}
		return "", types.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", types.User{}, ErrInvalidCredentials
	}

	signed, err := s.tokens.Issue(token.Identity{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	}, s.tokens.TTL())
	if err != nil {
		return "", types.User{}, err
	}

	user.PasswordHash = ""
	return signed, user, nil
}

// CurrentUser loads the account behind an already-verified identity.
func (s *AuthService) CurrentUser(ctx context.Context, id int) (types.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return types.User{}, ErrUserNotFound
		}
		return types.User{}, err
	}
	user.PasswordHash = ""
	return user, nil
}
