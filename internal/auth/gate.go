package auth

import "context"

// Descriptor is the static authorization metadata attached to a route.
// An empty AllowedRoles set admits any authenticated caller; a non-empty
// set requires the caller to hold at least one listed role.
type Descriptor struct {
	AllowedRoles []string
}

// AnyAuthenticated admits every caller with a valid token.
var AnyAuthenticated = Descriptor{}

// AdminOnly admits only callers holding the admin role.
func AdminOnly(adminRole string) Descriptor {
	return Descriptor{AllowedRoles: []string{adminRole}}
}

// Allows reports whether a caller holding roles may pass the gate.
// The decision is a pure set intersection; authentication has already
// been established by the time this runs.
func (d Descriptor) Allows(roles []string) bool {
	if len(d.AllowedRoles) == 0 {
		return true
	}
	for _, role := range roles {
		for _, allowed := range d.AllowedRoles {
			if role == allowed {
				return true
			}
		}
	}
	return false
}

type claimsContextKey struct{}

// ContextWithClaims attaches verified caller claims to the context.
func ContextWithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsContextKey{}, claims)
}

// ClaimsFromContext extracts the verified caller claims, if present.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey{}).(*Claims)
	if !ok || claims == nil {
		return nil, false
	}
	return claims, true
}
