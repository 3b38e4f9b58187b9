package auth

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gym-manager/internal/model"
	"golang.org/x/crypto/bcrypt"
)

// IdentityStore is the durable user/role record collaborator consumed by
// the verifier. The Postgres implementation lives in internal/storage.
type IdentityStore interface {
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Save(ctx context.Context, user *model.User, roleNames []string) (*model.User, error)
	UpdateLastLogin(ctx context.Context, userID string) error
}

// Verifier authenticates login attempts and admits new registrations,
// issuing a fresh token on every success. It holds no state besides its
// immutable collaborators, so it is safe for concurrent use.
type Verifier struct {
	store IdentityStore
	codec *TokenCodec
	ttl   time.Duration
	now   func() time.Time
}

// NewVerifier wires the verifier to its identity store and token codec.
// A nil clock defaults to time.Now.
func NewVerifier(store IdentityStore, codec *TokenCodec, ttl time.Duration, now func() time.Time) *Verifier {
	if now == nil {
		now = time.Now
	}
	return &Verifier{store: store, codec: codec, ttl: ttl, now: now}
}

// Register creates a new principal with the default client role and
// returns a token for it. The email existence check runs before any
// write, so a duplicate registration leaves no partial record.
func (v *Verifier) Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error) {
	exists, err := v.store.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, ErrDuplicateEmail
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := v.store.Save(ctx, &model.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		Name:         req.Name,
		Phone:        req.Phone,
		IsActive:     true,
	}, []string{model.RoleClient})
	if err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}

	return v.issue(user)
}

// Login authenticates email/password and issues a fresh token. Unknown
// email and wrong password fail identically with ErrInvalidCredentials.
func (v *Verifier) Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error) {
	user, err := v.store.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil || !user.IsActive {
		return nil, ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	// Best effort, a successful login must not fail on this.
	if err := v.store.UpdateLastLogin(ctx, user.ID); err != nil {
		log.Printf("Failed to record login for %s: %v", user.ID, err)
	}

	return v.issue(user)
}

func (v *Verifier) issue(user *model.User) (*model.AuthResponse, error) {
	now := v.now()
	token, err := v.codec.Issue(user.Email, now, v.ttl)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &model.AuthResponse{
		Token:     token,
		ExpiresAt: now.Add(v.ttl).Unix(),
		Email:     user.Email,
		Roles:     user.Roles,
	}, nil
}
