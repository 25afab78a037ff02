package sharing_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/simple-sharing/pkg/sharing"
)

const (
	testIssuer   = "https://sharing.example.com"
	testAudience = "https://sharing.example.com/sharing/acme"
)

func newTestClaims(audience string, ttl time.Duration) sharing.Claims {
	return sharing.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    testIssuer,
			Subject:   "bob",
			Audience:  jwt.ClaimStrings{audience},
			ID:        "t1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
}

func TestJWTIssueAndVerify(t *testing.T) {
	codec := sharing.NewJWTCodec([]byte("test-secret"))

	token, err := codec.Issue(newTestClaims(testAudience, time.Hour))
	require.NoError(t, err)

	claims, err := codec.Verify(token, testIssuer, testAudience)
	require.NoError(t, err)
	assert.Equal(t, "bob", claims.Subject)
	assert.Equal(t, "t1", claims.ID)
}

func TestJWTVerifyFailures(t *testing.T) {
	codec := sharing.NewJWTCodec([]byte("test-secret"))

	tests := []struct {
		name     string
		token    func(t *testing.T) string
		issuer   string
		audience string
	}{
		{
			name: "audience mismatch",
			token: func(t *testing.T) string {
				token, err := codec.Issue(newTestClaims(testAudience, time.Hour))
				require.NoError(t, err)
				return token
			},
			issuer:   testIssuer,
			audience: "https://sharing.example.com/sharing/other",
		},
		{
			name: "issuer mismatch",
			token: func(t *testing.T) string {
				token, err := codec.Issue(newTestClaims(testAudience, time.Hour))
				require.NoError(t, err)
				return token
			},
			issuer:   "https://evil.example.com",
			audience: testAudience,
		},
		{
			name: "expired",
			token: func(t *testing.T) string {
				token, err := codec.Issue(newTestClaims(testAudience, -time.Minute))
				require.NoError(t, err)
				return token
			},
			issuer:   testIssuer,
			audience: testAudience,
		},
		{
			name: "wrong secret",
			token: func(t *testing.T) string {
				other := sharing.NewJWTCodec([]byte("other-secret"))
				token, err := other.Issue(newTestClaims(testAudience, time.Hour))
				require.NoError(t, err)
				return token
			},
			issuer:   testIssuer,
			audience: testAudience,
		},
		{
			name: "garbage",
			token: func(t *testing.T) string {
				return "not.a.jwt"
			},
			issuer:   testIssuer,
			audience: testAudience,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := codec.Verify(tt.token(t), tt.issuer, tt.audience)
			assert.ErrorIs(t, err, sharing.ErrUnauthorized)
			assert.Nil(t, claims)
		})
	}
}

func TestJWTVerifyRejectsUnsignedToken(t *testing.T) {
	codec := sharing.NewJWTCodec([]byte("test-secret"))

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, newTestClaims(testAudience, time.Hour))
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = codec.Verify(token, testIssuer, testAudience)
	assert.ErrorIs(t, err, sharing.ErrUnauthorized)
}

func TestParseRole(t *testing.T) {
	assert.Equal(t, sharing.RoleAdmin, sharing.ParseRole("admin"))
	assert.Equal(t, sharing.RoleAdmin, sharing.ParseRole("Admin"))
	assert.Equal(t, sharing.RoleGuest, sharing.ParseRole("guest"))
	assert.Equal(t, sharing.RoleGuest, sharing.ParseRole("superuser"))
	assert.Equal(t, sharing.RoleGuest, sharing.ParseRole(""))
}

func TestRequiredRole(t *testing.T) {
	tests := []struct {
		path     string
		expected sharing.Role
	}{
		{path: "/admin/thing", expected: sharing.RoleAdmin},
		{path: "/admin", expected: sharing.RoleAdmin},
		{path: "/shares", expected: sharing.RoleGuest},
		{path: "/sharing/acme/files", expected: sharing.RoleGuest},
		{path: "/", expected: sharing.RoleGuest},
		{path: "", expected: sharing.RoleGuest},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.expected, sharing.RequiredRole(tt.path))
		})
	}
}
