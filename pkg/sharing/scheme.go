package sharing

import (
	"github.com/golang-jwt/jwt/v5"
)

// TokenRequest carries everything a token scheme may need to mint a bearer
// token. The HMAC scheme uses only TokenID and TTLSeconds; the claims scheme
// embeds the full set.
type TokenRequest struct {
	TokenID    string
	Issuer     string
	Subject    string
	Audience   []string
	Role       Role
	TTLSeconds int64
}

// VerifyRequest carries the expectations a verifier checks an incoming
// bearer token against. The HMAC scheme ignores issuer and audience.
type VerifyRequest struct {
	Issuer   string
	Audience string
}

// TokenScheme is the strategy interface over the two coexisting bearer
// token formats. Verify returns the decoded claims for the claims scheme
// and nil claims for the HMAC scheme.
type TokenScheme interface {
	Name() string
	Sign(req TokenRequest) (string, error)
	Verify(token string, req VerifyRequest) (*Claims, error)
}

// Scheme names accepted by NewTokenScheme.
const (
	SchemeHMAC = "hmac"
	SchemeJWT  = "jwt"
)

// NewTokenScheme selects a token scheme by configured name. Unrecognized
// names resolve to the HMAC scheme.
func NewTokenScheme(name string, secret []byte, hasher Hasher) TokenScheme {
	if name == SchemeJWT {
		return &jwtScheme{codec: NewJWTCodec(secret)}
	}
	return &hmacScheme{codec: NewHMACCodec(secret, hasher)}
}

type hmacScheme struct {
	codec *HMACCodec
}

func (s *hmacScheme) Name() string { return SchemeHMAC }

func (s *hmacScheme) Sign(req TokenRequest) (string, error) {
	return s.codec.Sign(req.TokenID, req.TTLSeconds)
}

func (s *hmacScheme) Verify(token string, _ VerifyRequest) (*Claims, error) {
	if err := s.codec.Verify(token); err != nil {
		return nil, err
	}
	return nil, nil
}

// Codec exposes the underlying codec so callers can decode the expiry
// segment of verified tokens.
func (s *hmacScheme) Codec() *HMACCodec { return s.codec }

type jwtScheme struct {
	codec *JWTCodec
}

func (s *jwtScheme) Name() string { return SchemeJWT }

func (s *jwtScheme) Sign(req TokenRequest) (string, error) {
	exp, _, err := ExpiresIn(req.TTLSeconds)
	if err != nil {
		return "", &TokenError{Scheme: SchemeJWT, Op: "sign", Err: err}
	}
	return s.codec.Issue(Claims{
		Role: req.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    req.Issuer,
			Subject:   req.Subject,
			Audience:  jwt.ClaimStrings(req.Audience),
			ID:        req.TokenID,
			ExpiresAt: exp,
		},
	})
}

func (s *jwtScheme) Verify(token string, req VerifyRequest) (*Claims, error) {
	return s.codec.Verify(token, req.Issuer, req.Audience)
}
