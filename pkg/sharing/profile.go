package sharing

import (
	"fmt"
	"time"
)

// ShareCredentialsVersion is the protocol version stamped into every
// issued profile.
const ShareCredentialsVersion = 1

// Profile is the credential bundle returned to a recipient: where to call,
// what to present, and when it stops working.
type Profile struct {
	ShareCredentialsVersion int    `json:"shareCredentialsVersion"`
	Endpoint                string `json:"endpoint"`
	BearerToken             string `json:"bearerToken"`
	ExpirationTime          string `json:"expirationTime"`
}

// ProfileIssuer mints profiles against a configured server address and
// token scheme. Instances are immutable after construction and safe for
// concurrent use.
type ProfileIssuer struct {
	serverAddr string
	scheme     TokenScheme
}

// NewProfileIssuer creates an issuer for the given base address and scheme.
func NewProfileIssuer(serverAddr string, scheme TokenScheme) (*ProfileIssuer, error) {
	if serverAddr == "" {
		return nil, fmt.Errorf("server address is required")
	}
	if scheme == nil {
		return nil, fmt.Errorf("token scheme is required")
	}
	return &ProfileIssuer{serverAddr: serverAddr, scheme: scheme}, nil
}

// Endpoint returns the sharing endpoint for a provider.
func (p *ProfileIssuer) Endpoint(provider string) string {
	return fmt.Sprintf("%s/sharing/%s", p.serverAddr, provider)
}

// Issue mints a profile whose bearer token is scoped to the provider's
// sharing endpoint and expires ttl seconds from now.
func (p *ProfileIssuer) Issue(id, provider, recipient string, ttl int64) (*Profile, error) {
	endpoint := p.Endpoint(provider)
	_, expiresAt, err := expiryFromTTL(ttl)
	if err != nil {
		return nil, fmt.Errorf("failed to compute profile expiry: %w", err)
	}
	token, err := p.scheme.Sign(TokenRequest{
		TokenID:    id,
		Issuer:     p.serverAddr,
		Subject:    recipient,
		Audience:   []string{endpoint},
		TTLSeconds: ttl,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to sign profile token: %w", err)
	}
	return &Profile{
		ShareCredentialsVersion: ShareCredentialsVersion,
		Endpoint:                endpoint,
		BearerToken:             token,
		ExpirationTime:          expiresAt.Format(time.RFC3339),
	}, nil
}
