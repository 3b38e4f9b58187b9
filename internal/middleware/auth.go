package middleware

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gym-manager/internal/auth"
	"github.com/gym-manager/internal/model"
)

type contextKey string

const IdentityContextKey contextKey = "identity"

// Identity is the per-request resolved principal made available to
// downstream handlers. It is read-only and never persisted.
type Identity struct {
	UserID string
	Email  string
	Roles  []string
}

func (id *Identity) HasRole(name string) bool {
	for _, r := range id.Roles {
		if r == name {
			return true
		}
	}
	return false
}

// PrincipalResolver looks up the candidate principal for a token subject.
type PrincipalResolver interface {
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}

// AuthMiddleware attaches request identity from bearer tokens and gates
// endpoints on role requirements.
type AuthMiddleware struct {
	codec *auth.TokenCodec
	users PrincipalResolver
	now   func() time.Time
}

func NewAuthMiddleware(codec *auth.TokenCodec, users PrincipalResolver, now func() time.Time) *AuthMiddleware {
	if now == nil {
		now = time.Now
	}
	return &AuthMiddleware{codec: codec, users: users, now: now}
}

// Identify extracts and validates a bearer token, attaching an Identity
// to the request context on success. Every failure mode falls through to
// processing the request anonymously; turning "no identity" into a
// rejection is RequireRoles' job, downstream. An identity attached by an
// earlier stage wins and is never overwritten.
func (m *AuthMiddleware) Identify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if GetIdentity(ctx) != nil {
			next.ServeHTTP(w, r)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			next.ServeHTTP(w, r)
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

		subject, err := m.codec.ExtractSubject(tokenStr)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		user, err := m.users.FindByEmail(ctx, subject)
		if err != nil || user == nil {
			next.ServeHTTP(w, r)
			return
		}

		ok, err := m.codec.Validate(tokenStr, user.Email, m.now())
		if errors.Is(err, auth.ErrTokenExpired) {
			log.Printf("expired token for %s", user.Email)
			next.ServeHTTP(w, r)
			return
		}
		if err != nil || !ok {
			next.ServeHTTP(w, r)
			return
		}

		identity := &Identity{
			UserID: user.ID,
			Email:  user.Email,
			Roles:  user.Roles,
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(ctx, IdentityContextKey, identity)))
	})
}

// GetIdentity extracts the request identity from context, nil when the
// request is anonymous.
func GetIdentity(ctx context.Context) *Identity {
	identity, ok := ctx.Value(IdentityContextKey).(*Identity)
	if !ok {
		return nil
	}
	return identity
}

// CORS middleware
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// JSON middleware sets JSON content type
func JSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

// Logger middleware logs requests
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}
