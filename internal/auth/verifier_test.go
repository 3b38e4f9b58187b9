package auth

import (
	"context"
	"testing"
	"time"

	"github.com/gym-manager/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// fakeStore is an in-memory IdentityStore keyed by email.
type fakeStore struct {
	users map[string]*model.User
}

func newFakeStore() *fakeStore {
	return &fakeStore{users: make(map[string]*model.User)}
}

func (s *fakeStore) FindByEmail(_ context.Context, email string) (*model.User, error) {
	return s.users[email], nil
}

func (s *fakeStore) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, ok := s.users[email]
	return ok, nil
}

func (s *fakeStore) Save(_ context.Context, user *model.User, roleNames []string) (*model.User, error) {
	u := *user
	u.ID = "user-" + u.Email
	u.Roles = roleNames
	s.users[u.Email] = &u
	return &u, nil
}

func (s *fakeStore) UpdateLastLogin(_ context.Context, _ string) error {
	return nil
}

func newTestVerifier(store IdentityStore) (*Verifier, *TokenCodec) {
	codec := NewTokenCodec("unit-test-secret")
	return NewVerifier(store, codec, time.Hour, nil), codec
}

func TestRegisterIssuesValidToken(t *testing.T) {
	store := newFakeStore()
	v, codec := newTestVerifier(store)
	ctx := context.Background()

	resp, err := v.Register(ctx, &model.RegisterRequest{
		Email:    "alice@example.com",
		Password: "pw123long",
		Name:     "Alice",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", resp.Email)
	assert.Contains(t, resp.Roles, model.RoleClient)

	subject, err := codec.ExtractSubject(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", subject)

	ok, err := codec.Validate(resp.Token, "alice@example.com", time.Now())
	require.NoError(t, err)
	assert.True(t, ok)

	// Plaintext is never stored.
	stored := store.users["alice@example.com"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "pw123long", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("pw123long")))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	store := newFakeStore()
	v, _ := newTestVerifier(store)
	ctx := context.Background()

	req := &model.RegisterRequest{Email: "alice@example.com", Password: "pw123long", Name: "Alice"}
	_, err := v.Register(ctx, req)
	require.NoError(t, err)

	_, err = v.Register(ctx, req)
	assert.ErrorIs(t, err, ErrDuplicateEmail)
	assert.Len(t, store.users, 1)
}

func TestLoginProducesFreshIndependentTokens(t *testing.T) {
	store := newFakeStore()
	codec := NewTokenCodec("unit-test-secret")
	clock := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	v := NewVerifier(store, codec, time.Hour, func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	})
	ctx := context.Background()

	_, err := v.Register(ctx, &model.RegisterRequest{Email: "alice@example.com", Password: "pw123long", Name: "Alice"})
	require.NoError(t, err)

	first, err := v.Login(ctx, &model.LoginRequest{Email: "alice@example.com", Password: "pw123long"})
	require.NoError(t, err)
	second, err := v.Login(ctx, &model.LoginRequest{Email: "alice@example.com", Password: "pw123long"})
	require.NoError(t, err)

	assert.NotEqual(t, first.Token, second.Token)
	for _, resp := range []*model.AuthResponse{first, second} {
		ok, err := codec.Validate(resp.Token, "alice@example.com", clock)
		require.NoError(t, err)
		assert.True(t, ok)
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	store := newFakeStore()
	v, _ := newTestVerifier(store)
	ctx := context.Background()

	_, err := v.Register(ctx, &model.RegisterRequest{Email: "alice@example.com", Password: "pw123long", Name: "Alice"})
	require.NoError(t, err)

	_, wrongPassword := v.Login(ctx, &model.LoginRequest{Email: "alice@example.com", Password: "nope"})
	_, unknownEmail := v.Login(ctx, &model.LoginRequest{Email: "nobody@example.com", Password: "pw123long"})

	assert.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestLoginInactiveAccount(t *testing.T) {
	store := newFakeStore()
	v, _ := newTestVerifier(store)
	ctx := context.Background()

	_, err := v.Register(ctx, &model.RegisterRequest{Email: "alice@example.com", Password: "pw123long", Name: "Alice"})
	require.NoError(t, err)
	store.users["alice@example.com"].IsActive = false

	_, err = v.Login(ctx, &model.LoginRequest{Email: "alice@example.com", Password: "pw123long"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
