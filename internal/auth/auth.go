package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrInvalidToken is returned when a credential is rejected: bad signature in
// strict mode, missing or malformed subject, or a rejection from the remote
// verifier.
var ErrInvalidToken = errors.New("invalid token")

// ErrUnavailable is returned when no verifier can render a verdict: the remote
// verifier is unreachable, answered garbage, or is not configured at all.
var ErrUnavailable = errors.New("auth service unavailable")

// Resolver verifies a bearer credential and returns the owning user ID.
// Implementations must not mutate any local state.
type Resolver interface {
	Resolve(ctx context.Context, credential string) (uuid.UUID, error)
}
