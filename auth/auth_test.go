package auth

import (
	"context"
	"errors"
	"testing"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

func staticAuth() Authenticator {
	return BearerAuth(func(token string) (string, error) {
		if token == "valid-token" {
			return "analyst", nil
		}
		return "", errors.New("unknown token")
	})
}

// TestBearerAuthSuccess tests successful bearer token validation.
func TestBearerAuthSuccess(t *testing.T) {
	identity, err := staticAuth().Authenticate(context.Background(), "valid-token")

	if err != nil {
		t.Errorf("Expected no error, got: %v", err)
	}
	if identity != "analyst" {
		t.Errorf("Expected identity 'analyst', got '%s'", identity)
	}
}

// TestBearerAuthFailure tests failed bearer token validation.
func TestBearerAuthFailure(t *testing.T) {
	identity, err := staticAuth().Authenticate(context.Background(), "wrong-token")

	if err == nil {
		t.Error("Expected error for invalid token, got nil")
	}
	if identity != "" {
		t.Errorf("Expected empty identity for invalid token, got '%s'", identity)
	}
}

// TestIdentityContext tests identity propagation through context.
func TestIdentityContext(t *testing.T) {
	ctx := context.Background()

	if got := IdentityFromContext(ctx); got != "" {
		t.Errorf("Expected empty identity for fresh context, got '%s'", got)
	}

	ctx = WithIdentity(ctx, "analyst")
	if got := IdentityFromContext(ctx); got != "analyst" {
		t.Errorf("Expected identity 'analyst', got '%s'", got)
	}
}

// TestExtractToken tests bearer token extraction from gRPC metadata.
func TestExtractToken(t *testing.T) {
	tests := []struct {
		name      string
		md        metadata.MD
		wantToken string
		wantErr   bool
	}{
		{name: "valid bearer", md: metadata.Pairs("authorization", "Bearer abc123"), wantToken: "abc123", wantErr: false},
		{name: "missing header", md: metadata.MD{}, wantToken: "", wantErr: false},
		{name: "wrong scheme", md: metadata.Pairs("authorization", "Basic abc123"), wantToken: "", wantErr: true},
		{name: "empty token", md: metadata.Pairs("authorization", "Bearer "), wantToken: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := metadata.NewIncomingContext(context.Background(), tt.md)

			token, err := ExtractToken(ctx)
			if (err != nil) != tt.wantErr {
				t.Errorf("ExtractToken() error = %v, wantErr %v", err, tt.wantErr)
			}
			if token != tt.wantToken {
				t.Errorf("ExtractToken() = %q, want %q", token, tt.wantToken)
			}
		})
	}
}

// TestExtractTokenNoMetadata tests extraction without incoming metadata.
func TestExtractTokenNoMetadata(t *testing.T) {
	token, err := ExtractToken(context.Background())

	if err != nil {
		t.Errorf("Expected no error without metadata, got: %v", err)
	}
	if token != "" {
		t.Errorf("Expected empty token without metadata, got '%s'", token)
	}
}

// TestValidateToken tests token validation and identity propagation.
func TestValidateToken(t *testing.T) {
	ctx, err := ValidateToken(context.Background(), "valid-token", staticAuth())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if got := IdentityFromContext(ctx); got != "analyst" {
		t.Errorf("Expected identity 'analyst', got '%s'", got)
	}
}

// TestValidateTokenMissing tests rejection of empty tokens.
func TestValidateTokenMissing(t *testing.T) {
	_, err := ValidateToken(context.Background(), "", staticAuth())

	if status.Code(err) != codes.Unauthenticated {
		t.Errorf("Expected Unauthenticated, got: %v", err)
	}
}

// TestValidateTokenInvalid tests rejection of invalid tokens.
func TestValidateTokenInvalid(t *testing.T) {
	_, err := ValidateToken(context.Background(), "wrong-token", staticAuth())

	if status.Code(err) != codes.Unauthenticated {
		t.Errorf("Expected Unauthenticated, got: %v", err)
	}
}
