package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/illodev/technical-test-go/internal/apperr"
	"github.com/illodev/technical-test-go/internal/auth"
	"github.com/illodev/technical-test-go/internal/services"
	"github.com/illodev/technical-test-go/internal/store"
	"github.com/illodev/technical-test-go/internal/validate"
	"github.com/illodev/technical-test-go/types"
)

// UserHandler provides HTTP handlers for user management.
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler constructs a handler with the provided service.
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// UserRouter registers user routes on the given router. Listing is
// admin-only; everything else admits any authenticated caller.
func UserRouter(r chi.Router, userService *services.UserService, tokens *auth.TokenService) {
	handler := NewUserHandler(userService)

	authenticated := RequireAuth(tokens, auth.AnyAuthenticated)
	adminOnly := RequireAuth(tokens, auth.AdminOnly(types.RoleAdmin))

	r.With(authenticated).Post("/", handler.CreateUser)
	r.With(adminOnly).Get("/", handler.ListUsers)
	r.Route("/{id}", func(r chi.Router) {
		r.With(authenticated).Get("/", handler.GetUser)
		r.With(authenticated).Put("/", handler.UpdateUser)
		r.With(authenticated).Delete("/", handler.DeleteUser)
	})
}

// CreateUserRequest carries caller-supplied roles. Note this is not
// restricted by the caller's own role set.
type CreateUserRequest struct {
	Email    string   `json:"email"`
	Name     string   `json:"name"`
	Password string   `json:"password"`
	Roles    []string `json:"roles"`
}

type UpdateUserRequest struct {
	Email    *string  `json:"email"`
	Name     *string  `json:"name"`
	Password *string  `json:"password"`
	Roles    []string `json:"roles"`
}

func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIError(w, apperr.Domain("Invalid request body"))
		return
	}

	var violations validate.Violations
	validate.String(&violations, "email", req.Email, emailRules)
	validate.String(&violations, "name", req.Name, nameRules)
	validate.String(&violations, "password", req.Password, passwordRules)
	if req.Roles == nil {
		violations.Add("roles", "is required")
	}
	validate.Enum(&violations, "roles", req.Roles, types.ValidRoles)
	if err := violations.Err(validationFailedMessage); err != nil {
		writeAPIError(w, err)
		return
	}

	user, err := h.userService.Create(r.Context(), services.CreateUserInput{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
		Roles:    req.Roles,
	})
	if err != nil {
		writeAPIError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.List(r.Context())
	if err != nil {
		writeAPIError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	user, err := h.userService.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeNotFound(w, "User not found")
			return
		}
		writeAPIError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIError(w, apperr.Domain("Invalid request body"))
		return
	}

	var violations validate.Violations
	if req.Email != nil {
		validate.String(&violations, "email", *req.Email, emailRules)
	}
	if req.Name != nil {
		validate.String(&violations, "name", *req.Name, nameRules)
	}
	if req.Password != nil {
		validate.String(&violations, "password", *req.Password, passwordRules)
	}
	validate.Enum(&violations, "roles", req.Roles, types.ValidRoles)
	if err := violations.Err(validationFailedMessage); err != nil {
		writeAPIError(w, err)
		return
	}

	user, err := h.userService.Update(r.Context(), id, services.UpdateUserInput{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
		Roles:    req.Roles,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeNotFound(w, "User not found")
			return
		}
		writeAPIError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.userService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeNotFound(w, "User not found")
			return
		}
		writeAPIError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
