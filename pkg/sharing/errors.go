package sharing

import (
	"errors"
	"fmt"
)

// Error types
var (
	// ErrMalformedToken indicates a bearer token that does not match the
	// expected wire format (segment count or encoding).
	ErrMalformedToken = errors.New("malformed token")

	// ErrTokenMismatch indicates a token whose signature does not verify
	// against the configured secret.
	ErrTokenMismatch = errors.New("token signature mismatch")

	// ErrUnauthorized is the single outcome for any claims validation
	// failure. Callers must not learn which check failed.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrUnsupportedLocation indicates an object store URL whose scheme is
	// not backed by a signer.
	ErrUnsupportedLocation = errors.New("unsupported object store location")

	// ErrAccountNotFound indicates an account was not found
	ErrAccountNotFound = errors.New("account not found")

	// ErrTokenNotFound indicates a persisted token record was not found
	ErrTokenNotFound = errors.New("token not found")

	// ErrDuplicateRecord indicates an insert conflicting with an existing row
	ErrDuplicateRecord = errors.New("record already exists")
)

// TokenError represents an error related to token signing or verification
type TokenError struct {
	Scheme string
	Op     string
	Err    error
}

func (e *TokenError) Error() string {
	return fmt.Sprintf("token operation %s failed for scheme %s: %v", e.Op, e.Scheme, e.Err)
}

func (e *TokenError) Unwrap() error {
	return e.Err
}

// SigningError represents an error related to presigned URL generation.
// It carries bucket and path for diagnosis but never credential material.
type SigningError struct {
	Store  string
	Bucket string
	Path   string
	Err    error
}

func (e *SigningError) Error() string {
	return fmt.Sprintf("url signing failed for %s://%s/%s: %v", e.Store, e.Bucket, e.Path, e.Err)
}

func (e *SigningError) Unwrap() error {
	return e.Err
}
