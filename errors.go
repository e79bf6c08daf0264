package auth

import (
	"strings"

	"github.com/goliatone/go-errors"
)

// Text codes surfaced to API clients alongside error messages.
const (
	TextCodeInvalidCreds   = "INVALID_CREDENTIALS"
	TextCodeDuplicateEmail = "DUPLICATE_EMAIL"
	TextCodeUserNotFound   = "USER_NOT_FOUND"
	TextCodeTokenMalformed = "TOKEN_MALFORMED"
	TextCodeMissingToken   = "MISSING_TOKEN"
	TextCodeEmptyPassword  = "EMPTY_PASSWORD"
)

// ErrIdentityNotFound is the error we return for non found identities
var ErrIdentityNotFound = errors.New("identity not found", errors.CategoryNotFound)

// ErrMismatchedHashAndPassword covers both unknown emails and wrong
// passwords so responses cannot be used to enumerate accounts.
var ErrMismatchedHashAndPassword = errors.New("invalid email or password", errors.CategoryAuth).
	WithTextCode(TextCodeInvalidCreds)

// ErrDuplicateEmail signals a registration against an email that already
// has a record.
var ErrDuplicateEmail = errors.New("email is already registered", errors.CategoryConflict).
	WithTextCode(TextCodeDuplicateEmail)

// ErrUserNotFound is returned when a user lookup matches no record
var ErrUserNotFound = errors.New("user not found", errors.CategoryNotFound).
	WithTextCode(TextCodeUserNotFound)

// ErrTokenMalformed covers bad signatures, garbage tokens, and tokens signed
// with a different key.
var ErrTokenMalformed = errors.New("invalid authentication token", errors.CategoryAuth).
	WithTextCode(TextCodeTokenMalformed)

// ErrMissingToken is returned when a protected route receives no bearer token
var ErrMissingToken = errors.New("access denied", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized).
	WithTextCode(TextCodeMissingToken)

// ErrNoEmptyString rejects empty passwords before they reach the hasher
var ErrNoEmptyString = errors.New("password must not be empty", errors.CategoryValidation).
	WithTextCode(TextCodeEmptyPassword)

// IsMalformedError will check for error message
func IsMalformedError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "token is malformed") ||
		strings.Contains(err.Error(), "missing or malformed JWT")
}
