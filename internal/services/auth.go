package services

import (
	"context"
	"errors"

	"github.com/illodev/technical-test-go/internal/apperr"
	"github.com/illodev/technical-test-go/internal/auth"
	"github.com/illodev/technical-test-go/internal/events"
	"github.com/illodev/technical-test-go/internal/store"
	"github.com/illodev/technical-test-go/types"
)

// RegisterInput carries the validated fields for self-registration.
// Unlike administrative creation, callers cannot choose roles here.
type RegisterInput struct {
	Email    string
	Name     string
	Password string
}

// AuthService covers registration and credential checks.
type AuthService struct {
	users  *UserService
	events *events.Publisher
}

func NewAuthService(users *UserService, publisher *events.Publisher) *AuthService {
	return &AuthService{users: users, events: publisher}
}

// Register creates an account with the default role.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (types.User, error) {
	user, err := s.users.Create(ctx, CreateUserInput{
		Email:    input.Email,
		Name:     input.Name,
		Password: input.Password,
		Roles:    []string{types.RoleUser},
	})
	if err != nil {
		return types.User{}, err
	}
	s.events.Emit(ctx, events.UserRegistered, map[string]string{"id": user.ID, "email": user.Email})
	return user, nil
}

// Login verifies credentials. The failure message never reveals whether
// the email or the password was wrong.
func (s *AuthService) Login(ctx context.Context, email, password string) (types.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return types.User{}, apperr.Domain("Invalid email or password")
		}
		return types.User{}, err
	}
	if !auth.CheckPassword(password, user.PasswordHash) {
		return types.User{}, apperr.Domain("Invalid email or password")
	}
	return user, nil
}
