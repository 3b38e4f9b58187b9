package middleware

import "net/http"

// Allowed is the authorization decision: a public operation (no required
// roles) always passes, an anonymous request never passes a protected
// one, and otherwise any overlap between the identity's roles and the
// requirement suffices.
func Allowed(identity *Identity, required []string) bool {
	if len(required) == 0 {
		return true
	}
	if identity == nil {
		return false
	}
	for _, role := range required {
		if identity.HasRole(role) {
			return true
		}
	}
	return false
}

// RequireRoles maps the Allowed decision onto HTTP: a missing identity
// is 401, a present identity lacking every required role is 403.
func (m *AuthMiddleware) RequireRoles(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := GetIdentity(r.Context())
			if Allowed(identity, roles) {
				next.ServeHTTP(w, r)
				return
			}
			if identity == nil {
				http.Error(w, `{"error": "unauthorized"}`, http.StatusUnauthorized)
				return
			}
			http.Error(w, `{"error": "forbidden"}`, http.StatusForbidden)
		})
	}
}
