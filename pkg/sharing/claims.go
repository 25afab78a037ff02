package sharing

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Role is the authorization level carried by claims-scheme tokens.
type Role string

// Role constants (typed).
const (
	RoleAdmin Role = "admin"
	RoleGuest Role = "guest"
)

// ParseRole resolves a role name, case-insensitively. Unrecognized names
// resolve to RoleGuest.
func ParseRole(name string) Role {
	switch strings.ToLower(name) {
	case "admin":
		return RoleAdmin
	default:
		return RoleGuest
	}
}

// RequiredRole derives the role a request path demands from its first
// segment. Paths that do not name a role require only RoleGuest.
func RequiredRole(path string) Role {
	path = strings.TrimPrefix(path, "/")
	segment, _, _ := strings.Cut(path, "/")
	if strings.EqualFold(segment, string(RoleAdmin)) {
		return RoleAdmin
	}
	return RoleGuest
}

// Claims is the structured payload of the claims token scheme. The
// registered claims carry issuer, subject, audience, token id and expiry;
// Role is empty on recipient profile tokens and set on operator tokens.
type Claims struct {
	Role Role `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// JWTCodec issues and validates claims-scheme tokens signed with HS256
// under an injected symmetric secret.
type JWTCodec struct {
	secret []byte
}

// NewJWTCodec creates a codec bound to a signing secret.
func NewJWTCodec(secret []byte) *JWTCodec {
	return &JWTCodec{secret: secret}
}

// Issue encodes and signs the given claims.
func (c *JWTCodec) Issue(claims Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", &TokenError{Scheme: "jwt", Op: "sign", Err: err}
	}
	return signed, nil
}

// Verify decodes the token and validates its signature, expiry, issuer and
// audience membership. Every failure collapses to ErrUnauthorized so the
// caller cannot leak which check rejected the token.
func (c *JWTCodec) Verify(token, issuer, audience string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims,
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
			}
			return c.secret, nil
		},
		jwt.WithIssuer(issuer),
		jwt.WithAudience(audience),
		jwt.WithExpirationRequired(),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil || !parsed.Valid {
		return nil, ErrUnauthorized
	}
	return claims, nil
}

// ExpiresIn computes the absolute expiry ttl seconds from now, for embedding
// into claims. Conversion failures are reported, never panic.
func ExpiresIn(ttl int64) (*jwt.NumericDate, time.Time, error) {
	_, exp, err := expiryFromTTL(ttl)
	if err != nil {
		return nil, time.Time{}, err
	}
	return jwt.NewNumericDate(exp), exp, nil
}
