package auth

import "errors"

// Domain errors for the credential verifier. Infrastructure failures
// from the identity store propagate wrapped and are distinct from these.
var (
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrInvalidCredentials covers both unknown email and wrong
	// password so callers cannot probe which accounts exist.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Token errors. A malformed token and an expired one are distinguishable
// so the interceptor can log expiry separately, but both downgrade to an
// anonymous request at the HTTP layer.
var (
	ErrTokenMalformed = errors.New("token malformed")
	ErrTokenExpired   = errors.New("token expired")
)
