// Package auth provides bearer-token authentication for compute service
// endpoints.
package auth

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// Authenticator validates bearer tokens and returns a caller identity.
// Implementations MUST be goroutine-safe.
type Authenticator interface {
	// Authenticate validates a bearer token and returns the caller
	// identity used for logging. Returns an error for invalid or expired
	// tokens. The context allows timeouts on auth backend calls.
	Authenticate(ctx context.Context, token string) (identity string, err error)
}

// bearerAuthenticator wraps a user-provided validation function.
type bearerAuthenticator struct {
	validate func(token string) (identity string, err error)
}

// BearerAuth creates an Authenticator from a validation function. This is
// the simplest way to add authentication to a compute service:
//
//	a := auth.BearerAuth(func(token string) (string, error) {
//	    if token != apiKey {
//	        return "", errors.New("unknown token")
//	    }
//	    return "analytics", nil
//	})
func BearerAuth(validate func(token string) (identity string, err error)) Authenticator {
	return &bearerAuthenticator{validate: validate}
}

// Authenticate implements Authenticator.
func (b *bearerAuthenticator) Authenticate(_ context.Context, token string) (string, error) {
	return b.validate(token)
}

// contextKey is a private type for context keys to avoid collisions.
type contextKey int

const identityKey contextKey = iota

// WithIdentity returns a context carrying the authenticated identity.
func WithIdentity(ctx context.Context, identity string) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// IdentityFromContext retrieves the authenticated identity from the
// context, or an empty string for unauthenticated requests.
func IdentityFromContext(ctx context.Context) string {
	identity, ok := ctx.Value(identityKey).(string)
	if !ok {
		return ""
	}
	return identity
}

// ExtractToken extracts the bearer token from gRPC metadata. Looks for an
// "authorization" header in "Bearer <token>" format. A missing header is
// not an error (the empty token fails validation later); a malformed one
// is.
func ExtractToken(ctx context.Context) (string, error) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return "", nil
	}

	headers := md.Get("authorization")
	if len(headers) == 0 {
		return "", nil
	}

	const bearerPrefix = "Bearer "
	if !strings.HasPrefix(headers[0], bearerPrefix) {
		return "", status.Error(codes.Unauthenticated, "authorization header must use Bearer scheme")
	}

	token := strings.TrimPrefix(headers[0], bearerPrefix)
	if token == "" {
		return "", status.Error(codes.Unauthenticated, "bearer token is empty")
	}

	return token, nil
}

// ValidateToken validates a bearer token with the given Authenticator and
// returns a context carrying the identity, or an error with an
// appropriate gRPC status code.
func ValidateToken(ctx context.Context, token string, authenticator Authenticator) (context.Context, error) {
	if token == "" {
		return ctx, status.Error(codes.Unauthenticated, "missing bearer token")
	}

	identity, err := authenticator.Authenticate(ctx, token)
	if err != nil {
		return ctx, status.Error(codes.Unauthenticated, fmt.Sprintf("invalid token: %v", err))
	}

	return WithIdentity(ctx, identity), nil
}
