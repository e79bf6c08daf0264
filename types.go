package auth

import (
	"context"
	"fmt"
)

type Logger interface {
	Debug(message string, args ...any)
	Info(message string, args ...any)
	Warn(message string, args ...any)
	Error(message string, args ...any)
}

// Identity holds the attributes of an identity
type Identity interface {
	ID() string
	Name() string
	Email() string
}

// Authenticator holds methods to deal with authentication
type Authenticator interface {
	Login(ctx context.Context, identifier, password string) (string, error)
	TokenService() TokenService
}

// TokenService issues and validates bearer tokens
type TokenService interface {
	Generate(identity Identity) (string, error)
	SignClaims(claims *JWTClaims) (string, error)
	Validate(tokenString string) (AuthClaims, error)
}

// IdentityProvider ensure we have a store to retrieve auth identity
type IdentityProvider interface {
	VerifyIdentity(ctx context.Context, identifier, password string) (Identity, error)
	FindIdentityByIdentifier(ctx context.Context, identifier string) (Identity, error)
}

// PasswordAuthenticator authenticates passwords
type PasswordAuthenticator interface {
	HashPassword(password string) (string, error)
	ComparePasswordAndHash(password, hash string) error
}

// Config holds auth options. The signing key is loaded once at startup and
// passed in explicitly; it is never read from a global and never logged.
type Config interface {
	GetSigningKey() string
	GetIssuer() string
	GetContextKey() string
	GetAuthScheme() string
	GetTokenLookup() string
}

type defLogger struct{}

func (d defLogger) Error(message string, args ...any) {
	fmt.Printf("[ERR] AUTH "+newline(message), args...)
}

func (d defLogger) Warn(message string, args ...any) {
	fmt.Printf("[WRN] AUTH "+newline(message), args...)
}

func (d defLogger) Info(message string, args ...any) {
	fmt.Printf("[INF] AUTH "+newline(message), args...)
}

func (d defLogger) Debug(message string, args ...any) {
	fmt.Printf("[DBG] AUTH "+newline(message), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
