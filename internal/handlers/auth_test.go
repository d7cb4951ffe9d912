package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/illodev/technical-test-go/types"
)

func registerTestUser(t *testing.T, env *testEnv) types.User {
	t.Helper()

	rec := env.do(t, http.MethodPost, "/auth/register", "", RegisterRequest{
		Email:    "a@b.com",
		Name:     "A",
		Password: "Abcdefg1",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	return decodeBody[types.User](t, rec)
}

func TestRegisterOmitsPassword(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/auth/register", "", RegisterRequest{
		Email:    "a@b.com",
		Name:     "A",
		Password: "Abcdefg1",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	raw := rec.Body.String()
	if strings.Contains(raw, "password") || strings.Contains(raw, "Abcdefg1") {
		t.Fatalf("response leaks password material: %s", raw)
	}

	var user types.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(user.Roles) != 1 || user.Roles[0] != types.RoleUser {
		t.Fatalf("expected default ROLE_USER, got %v", user.Roles)
	}
}

func TestRegisterDuplicateEmailIsBadRequest(t *testing.T) {
	env := newTestEnv(t)
	registerTestUser(t, env)

	rec := env.do(t, http.MethodPost, "/auth/register", "", RegisterRequest{
		Email:    "a@b.com",
		Name:     "B",
		Password: "Abcdefg1",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	body := decodeBody[apiError](t, rec)
	if body.Error != "Bad Request" || body.Message != "User already exists" {
		t.Fatalf("unexpected error body: %+v", body)
	}
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name  string
		req   RegisterRequest
		field string
	}{
		{"short password", RegisterRequest{Email: "a@b.com", Password: "Abcdef1"}, "password"},
		{"no uppercase", RegisterRequest{Email: "a@b.com", Password: "abcdefg1"}, "password"},
		{"bad email", RegisterRequest{Email: "nope", Password: "Abcdefg1"}, "email"},
		{"missing email", RegisterRequest{Password: "Abcdefg1"}, "email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodPost, "/auth/register", "", tt.req)
			if rec.Code != http.StatusUnprocessableEntity {
				t.Fatalf("expected 422, got %d: %s", rec.Code, rec.Body.String())
			}
			body := decodeBody[apiError](t, rec)
			if body.Error != "Unprocessable Entity" || len(body.Errors) == 0 {
				t.Fatalf("expected structured errors, got %+v", body)
			}
			if body.Errors[0].Field != tt.field {
				t.Fatalf("expected violation on %q, got %+v", tt.field, body.Errors)
			}
		})
	}
}

func TestLoginSetsCookieAndReturnsToken(t *testing.T) {
	env := newTestEnv(t)
	registerTestUser(t, env)

	rec := env.do(t, http.MethodPost, "/auth/login", "", LoginRequest{
		Email:    "a@b.com",
		Password: "Abcdefg1",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	body := decodeBody[LoginResponse](t, rec)
	if body.AccessToken == "" {
		t.Fatal("expected non-empty access token")
	}

	var cookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == AccessTokenCookie {
			cookie = c
		}
	}
	if cookie == nil {
		t.Fatal("expected access token cookie")
	}
	if cookie.Value != body.AccessToken {
		t.Fatal("cookie must carry the issued token")
	}
	if !cookie.HttpOnly || !cookie.Secure {
		t.Fatalf("cookie must be HttpOnly and Secure: %+v", cookie)
	}

	claims, err := env.tokens.Verify(body.AccessToken)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if claims.Email != "a@b.com" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestLoginWrongCredentials(t *testing.T) {
	env := newTestEnv(t)
	registerTestUser(t, env)

	for _, req := range []LoginRequest{
		{Email: "missing@b.com", Password: "Abcdefg1"},
		{Email: "a@b.com", Password: "Wrongpass1"},
	} {
		rec := env.do(t, http.MethodPost, "/auth/login", "", req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		body := decodeBody[apiError](t, rec)
		if body.Message != "Invalid email or password" {
			t.Fatalf("message must not reveal which field was wrong: %+v", body)
		}
	}
}

func TestLogout(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/auth/logout", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("logout without token: expected 401, got %d", rec.Code)
	}

	rec = env.do(t, http.MethodPost, "/auth/logout", env.userToken(t), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := decodeBody[LogoutResponse](t, rec)
	if body.Message != "User logged out successfully" {
		t.Fatalf("unexpected body: %+v", body)
	}

	cleared := false
	for _, c := range rec.Result().Cookies() {
		if c.Name == AccessTokenCookie && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Fatal("expected the access token cookie to be cleared")
	}
}

func TestAdminGateOnUserList(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/users", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("no token: expected 401, got %d", rec.Code)
	}
	body := decodeBody[apiError](t, rec)
	if body.StatusCode != http.StatusUnauthorized || body.Error != "Unauthorized" {
		t.Fatalf("unexpected 401 body: %+v", body)
	}

	rec = env.do(t, http.MethodGet, "/users", env.userToken(t), nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("user token: expected 403, got %d", rec.Code)
	}
	body = decodeBody[apiError](t, rec)
	if body.Error != "Forbidden" {
		t.Fatalf("unexpected 403 body: %+v", body)
	}

	rec = env.do(t, http.MethodGet, "/users", env.adminToken(t), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("admin token: expected 200, got %d", rec.Code)
	}
	users := decodeBody[[]types.User](t, rec)
	if users == nil {
		t.Fatal("expected an array body")
	}
}

func TestAuthFailureBeatsRoleFailure(t *testing.T) {
	env := newTestEnv(t)

	// An invalid token on an admin-gated route must 401, never 403.
	rec := env.do(t, http.MethodGet, "/users", "not-a-token", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestUnknownFailureStaysGeneric(t *testing.T) {
	// A plain error (no apperr kind) normalizes to a generic 400.
	rec := httptest.NewRecorder()
	writeAPIError(rec, assertAnError())
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	body := decodeBody[apiError](t, rec)
	if body.Message != "An error occurred" {
		t.Fatalf("internal detail leaked: %+v", body)
	}
}

func assertAnError() error {
	return errInternal{}
}

type errInternal struct{}

func (errInternal) Error() string { return "pq: connection refused" }
