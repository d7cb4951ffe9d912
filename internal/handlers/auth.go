package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/illodev/technical-test-go/internal/apperr"
	"github.com/illodev/technical-test-go/internal/auth"
	"github.com/illodev/technical-test-go/internal/services"
	"github.com/illodev/technical-test-go/internal/validate"
)

// AuthHandler provides registration, login and logout endpoints.
type AuthHandler struct {
	authService *services.AuthService
	tokens      *auth.TokenService
}

// NewAuthHandler constructs an AuthHandler with the provided dependencies.
func NewAuthHandler(authService *services.AuthService, tokens *auth.TokenService) *AuthHandler {
	return &AuthHandler{authService: authService, tokens: tokens}
}

// AuthRouter registers auth routes on the given router.
func AuthRouter(r chi.Router, authService *services.AuthService, tokens *auth.TokenService) {
	handler := NewAuthHandler(authService, tokens)

	r.Post("/register", handler.Register)
	r.Post("/login", handler.Login)
	r.With(RequireAuth(tokens, auth.AnyAuthenticated)).Post("/logout", handler.Logout)
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string `json:"accessToken"`
}

type LogoutResponse struct {
	Message string `json:"message"`
}

// Register creates a new account with the default role and returns it
// without the password.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIError(w, apperr.Domain("Invalid request body"))
		return
	}

	var violations validate.Violations
	validate.String(&violations, "email", req.Email, emailRules)
	validate.String(&violations, "name", req.Name, nameRules)
	validate.String(&violations, "password", req.Password, passwordRules)
	if err := violations.Err(validationFailedMessage); err != nil {
		writeAPIError(w, err)
		return
	}

	user, err := h.authService.Register(r.Context(), services.RegisterInput{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		writeAPIError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// Login verifies credentials, sets the access token cookie and returns
// the token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIError(w, apperr.Domain("Invalid request body"))
		return
	}

	var violations validate.Violations
	validate.String(&violations, "email", req.Email, emailRules)
	validate.String(&violations, "password", req.Password, validate.StringRules{Required: true})
	if err := violations.Err(validationFailedMessage); err != nil {
		writeAPIError(w, err)
		return
	}

	user, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeAPIError(w, err)
		return
	}

	token, err := h.tokens.Issue(user.ID, user.Email, user.Roles)
	if err != nil {
		writeAPIError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     AccessTokenCookie,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.tokens.TTL()),
		HttpOnly: true,
		Secure:   true,
	})

	writeJSON(w, http.StatusOK, LoginResponse{AccessToken: token})
}

// Logout clears the access token cookie. The token itself stays valid
// until it expires; there is no server-side revocation.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     AccessTokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
	})

	writeJSON(w, http.StatusOK, LogoutResponse{Message: "User logged out successfully"})
}
