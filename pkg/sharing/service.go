package sharing

import (
	"context"
)

// Service defines the main interface for the simple-sharing library
type Service interface {
	// Login upserts the account matching a completed social sign-in. The
	// returned bool reports whether the account was newly registered.
	Login(ctx context.Context, req LoginRequest) (*Account, bool, error)

	// IssueProfile mints a credential profile for a recipient of the given
	// provider and persists the issued token record.
	IssueProfile(ctx context.Context, req IssueProfileRequest) (*Profile, error)

	// VerifyBearer checks a raw bearer token presented against the named
	// provider's sharing endpoint. Claims are returned for the claims
	// scheme and nil for the HMAC scheme.
	VerifyBearer(ctx context.Context, token, provider string) (*Claims, error)

	// Issuer exposes the profile issuer, mainly for endpoint construction.
	Issuer() *ProfileIssuer
}
