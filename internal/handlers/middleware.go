package handlers

import (
	"net/http"
	"strings"

	"github.com/illodev/technical-test-go/internal/apperr"
	"github.com/illodev/technical-test-go/internal/auth"
)

// AccessTokenCookie names the cookie that carries the session token.
const AccessTokenCookie = "accessToken"

const (
	msgUnauthorized = "You need to be logged in to access this resource."
	msgForbidden    = "You do not have permission to access this resource."
)

// RequireAuth gates a route behind its authorization descriptor. The
// token is verified first and a missing or invalid one always yields
// 401; only then is the caller's role set intersected with the
// descriptor, yielding 403 on an empty intersection. On success the
// verified claims are attached to the request context.
func RequireAuth(tokens *auth.TokenService, descriptor auth.Descriptor) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, ok := extractToken(r)
			if !ok {
				writeAPIError(w, apperr.Unauthorized(msgUnauthorized))
				return
			}

			claims, err := tokens.Verify(tokenString)
			if err != nil {
				writeAPIError(w, apperr.Unauthorized(msgUnauthorized))
				return
			}

			if !descriptor.Allows(claims.Roles) {
				writeAPIError(w, apperr.Forbidden(msgForbidden))
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.ContextWithClaims(r.Context(), claims)))
		})
	}
}

// extractToken reads the session token from the Authorization header,
// falling back to the access token cookie. The header wins if both are
// present.
func extractToken(r *http.Request) (string, bool) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			token := strings.TrimSpace(parts[1])
			if token != "" {
				return token, true
			}
		}
		return "", false
	}

	cookie, err := r.Cookie(AccessTokenCookie)
	if err != nil || strings.TrimSpace(cookie.Value) == "" {
		return "", false
	}
	return cookie.Value, true
}
