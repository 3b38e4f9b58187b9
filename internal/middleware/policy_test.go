package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gym-manager/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllowed(t *testing.T) {
	client := &Identity{UserID: "u1", Roles: []string{model.RoleClient}}
	trainer := &Identity{UserID: "u2", Roles: []string{model.RoleTrainer, model.RoleClient}}

	cases := []struct {
		name     string
		identity *Identity
		required []string
		want     bool
	}{
		{"public op always allows", nil, nil, true},
		{"public op with identity", client, nil, true},
		{"anonymous denied", nil, []string{model.RoleClient}, false},
		{"matching role", client, []string{model.RoleClient}, true},
		{"missing role", client, []string{model.RoleAdmin}, false},
		{"any overlap suffices", trainer, []string{model.RoleAdmin, model.RoleTrainer}, true},
		{"no overlap", trainer, []string{model.RoleAdmin}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Allowed(tc.identity, tc.required))
		})
	}
}

func TestRequireRolesStatusCodes(t *testing.T) {
	m, codec := newTestMiddleware(alice())

	token, err := codec.Issue("alice@example.com", time.Now(), time.Hour)
	require.NoError(t, err)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	protected := m.Identify(m.RequireRoles(model.RoleAdmin)(next))
	clientOnly := m.Identify(m.RequireRoles(model.RoleClient)(next))

	// Anonymous request to a protected endpoint: 401.
	rec := httptest.NewRecorder()
	protected.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Authenticated client hitting an admin endpoint: 403.
	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	protected.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Authenticated client hitting a client endpoint: through.
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	clientOnly.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
