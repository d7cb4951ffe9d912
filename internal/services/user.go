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

// UserRepository defines persistence operations for users.
type UserRepository interface {
	List(ctx context.Context) ([]types.User, error)
	GetByID(ctx context.Context, id string) (types.User, error)
	GetByEmail(ctx context.Context, email string) (types.User, error)
	Create(ctx context.Context, user types.User) (types.User, error)
	Update(ctx context.Context, user types.User) (types.User, error)
	Delete(ctx context.Context, id string) error
}

// CreateUserInput carries the validated fields for user creation.
// Roles come from the caller unchecked against the caller's own role;
// this mirrors the existing product behavior.
type CreateUserInput struct {
	Email    string
	Name     string
	Password string
	Roles    []string
}

// UpdateUserInput carries the validated fields for a partial update.
// Nil pointers leave the stored value untouched.
type UpdateUserInput struct {
	Email    *string
	Name     *string
	Password *string
	Roles    []string
}

// UserService encapsulates user use-cases.
type UserService struct {
	repo   UserRepository
	events *events.Publisher
}

func NewUserService(repo UserRepository, publisher *events.Publisher) *UserService {
	return &UserService{repo: repo, events: publisher}
}

func (s *UserService) List(ctx context.Context) ([]types.User, error) {
	return s.repo.List(ctx)
}

func (s *UserService) GetByID(ctx context.Context, id string) (types.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (types.User, error) {
	return s.repo.GetByEmail(ctx, email)
}

// Create stores a new user with a hashed password. A taken email yields
// a domain failure.
func (s *UserService) Create(ctx context.Context, input CreateUserInput) (types.User, error) {
	if _, err := s.repo.GetByEmail(ctx, input.Email); err == nil {
		return types.User{}, apperr.Domain("User already exists")
	} else if !errors.Is(err, store.ErrNotFound) {
		return types.User{}, err
	}

	hashed, err := auth.HashPassword(input.Password)
	if err != nil {
		return types.User{}, err
	}

	roles := input.Roles
	if len(roles) == 0 {
		roles = []string{types.RoleUser}
	}

	user, err := s.repo.Create(ctx, types.User{
		Email:        input.Email,
		Name:         input.Name,
		Roles:        roles,
		PasswordHash: hashed,
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return types.User{}, apperr.Domain("User already exists")
		}
		return types.User{}, err
	}
	return user, nil
}

// Update applies the non-nil fields of input to the stored user.
// A password change is re-hashed before storage.
func (s *UserService) Update(ctx context.Context, id string, input UpdateUserInput) (types.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return types.User{}, err
	}

	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Roles != nil {
		user.Roles = input.Roles
	}
	if input.Password != nil {
		hashed, err := auth.HashPassword(*input.Password)
		if err != nil {
			return types.User{}, err
		}
		user.PasswordHash = hashed
	}

	updated, err := s.repo.Update(ctx, user)
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return types.User{}, apperr.Domain("User already exists")
		}
		return types.User{}, err
	}
	return updated, nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.events.Emit(ctx, events.UserDeleted, map[string]string{"id": id})
	return nil
}
