package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gym-manager/internal/auth"
	"github.com/gym-manager/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeResolver struct {
	users map[string]*model.User
}

func (f *fakeResolver) FindByEmail(_ context.Context, email string) (*model.User, error) {
	return f.users[email], nil
}

func alice() *model.User {
	return &model.User{
		ID:       "user-1",
		Email:    "alice@example.com",
		IsActive: true,
		Roles:    []string{model.RoleClient},
	}
}

// identitySpy records whether the wrapped handler ran and what identity
// it saw.
type identitySpy struct {
	called   bool
	identity *Identity
}

func (s *identitySpy) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.called = true
		s.identity = GetIdentity(r.Context())
	})
}

func newTestMiddleware(users ...*model.User) (*AuthMiddleware, *auth.TokenCodec) {
	resolver := &fakeResolver{users: make(map[string]*model.User)}
	for _, u := range users {
		resolver.users[u.Email] = u
	}
	codec := auth.NewTokenCodec("unit-test-secret")
	return NewAuthMiddleware(codec, resolver, nil), codec
}

func TestIdentifyAttachesIdentity(t *testing.T) {
	m, codec := newTestMiddleware(alice())

	token, err := codec.Issue("alice@example.com", time.Now(), time.Hour)
	require.NoError(t, err)

	spy := &identitySpy{}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	m.Identify(spy.handler()).ServeHTTP(httptest.NewRecorder(), req)

	require.True(t, spy.called)
	require.NotNil(t, spy.identity)
	assert.Equal(t, "user-1", spy.identity.UserID)
	assert.Equal(t, "alice@example.com", spy.identity.Email)
	assert.Equal(t, []string{model.RoleClient}, spy.identity.Roles)
}

func TestIdentifyFailsOpenToAnonymous(t *testing.T) {
	m, codec := newTestMiddleware(alice())
	now := time.Now()

	valid, err := codec.Issue("alice@example.com", now, time.Hour)
	require.NoError(t, err)
	expired, err := codec.Issue("alice@example.com", now.Add(-2*time.Hour), time.Hour)
	require.NoError(t, err)
	unknown, err := codec.Issue("nobody@example.com", now, time.Hour)
	require.NoError(t, err)
	foreign, err := auth.NewTokenCodec("other-secret").Issue("alice@example.com", now, time.Hour)
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"wrong scheme", "Basic dXNlcjpwdw=="},
		{"bare prefix", "Bearer "},
		{"malformed token", "Bearer not-a-token"},
		{"tampered token", "Bearer " + valid + "x"},
		{"unresolvable subject", "Bearer " + unknown},
		{"foreign signature", "Bearer " + foreign},
		{"expired token", "Bearer " + expired},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			spy := &identitySpy{}
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			m.Identify(spy.handler()).ServeHTTP(rec, req)

			// The interceptor never terminates the request itself.
			assert.True(t, spy.called)
			assert.Nil(t, spy.identity)
			assert.Equal(t, http.StatusOK, rec.Code)
		})
	}
}

func TestIdentifyFirstSetWins(t *testing.T) {
	m, codec := newTestMiddleware(alice())

	token, err := codec.Issue("alice@example.com", time.Now(), time.Hour)
	require.NoError(t, err)

	earlier := &Identity{UserID: "preset", Email: "preset@example.com"}
	spy := &identitySpy{}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	req = req.WithContext(context.WithValue(req.Context(), IdentityContextKey, earlier))
	m.Identify(spy.handler()).ServeHTTP(httptest.NewRecorder(), req)

	require.True(t, spy.called)
	assert.Same(t, earlier, spy.identity)
}
