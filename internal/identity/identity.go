// Package identity verifies bearer credentials and returns the email of the
// authenticated subject.
package identity

import (
	"context"
	"errors"
)

// ErrUnauthenticated is returned for absent, malformed or rejected credentials.
var ErrUnauthenticated = errors.New("unauthenticated")

// Verifier turns an opaque bearer credential into a verified identity.
type Verifier interface {
	Verify(ctx context.Context, credential string) (string, error)
}

// VerifierFunc adapts a plain function to Verifier.
type VerifierFunc func(ctx context.Context, credential string) (string, error)

func (f VerifierFunc) Verify(ctx context.Context, credential string) (string, error) {
	return f(ctx, credential)
}
