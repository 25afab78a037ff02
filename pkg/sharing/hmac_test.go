package sharing_test

import (
	"encoding/hex"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/simple-sharing/pkg/sharing"
)

var hmacHashers = []sharing.Hasher{
	sharing.HasherSHA224,
	sharing.HasherSHA256,
	sharing.HasherSHA384,
	sharing.HasherSHA512,
}

func TestHMACSignAndVerify(t *testing.T) {
	secret := []byte("test-secret")

	for _, hasher := range hmacHashers {
		t.Run(string(hasher), func(t *testing.T) {
			codec := sharing.NewHMACCodec(secret, hasher)

			token, err := codec.Sign(uuid.NewString(), 3600)
			require.NoError(t, err)
			assert.NoError(t, codec.Verify(token))
		})
	}
}

func TestHMACTamperDetection(t *testing.T) {
	secret := []byte("test-secret")

	for _, hasher := range hmacHashers {
		t.Run(string(hasher), func(t *testing.T) {
			codec := sharing.NewHMACCodec(secret, hasher)

			token, err := codec.Sign(uuid.NewString(), 3600)
			require.NoError(t, err)

			// Swap the token-id segment for a different id, keeping
			// expiry and signature intact.
			parts := strings.Split(token, ".")
			require.Len(t, parts, 3)
			parts[0] = hex.EncodeToString([]byte(uuid.NewString()))
			tampered := strings.Join(parts, ".")

			err = codec.Verify(tampered)
			assert.ErrorIs(t, err, sharing.ErrTokenMismatch)
		})
	}
}

func TestHMACVerifyMalformed(t *testing.T) {
	codec := sharing.NewHMACCodec([]byte("test-secret"), sharing.HasherSHA256)

	valid, err := codec.Sign("t1", 600)
	require.NoError(t, err)
	parts := strings.Split(valid, ".")

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "no dots", token: "deadbeef"},
		{name: "one dot", token: "deadbeef.ff"},
		{name: "three dots", token: valid + ".ff"},
		{name: "non-hex signature", token: parts[0] + "." + parts[1] + ".zzzz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := codec.Verify(tt.token)
			assert.ErrorIs(t, err, sharing.ErrMalformedToken)
		})
	}
}

func TestHMACCrossAlgorithmRejected(t *testing.T) {
	secret := []byte("test-secret")
	signer := sharing.NewHMACCodec(secret, sharing.HasherSHA256)
	verifier := sharing.NewHMACCodec(secret, sharing.HasherSHA384)

	token, err := signer.Sign("t1", 600)
	require.NoError(t, err)

	assert.ErrorIs(t, verifier.Verify(token), sharing.ErrTokenMismatch)
}

func TestHMACWrongSecretRejected(t *testing.T) {
	signer := sharing.NewHMACCodec([]byte("one secret"), sharing.HasherSHA256)
	verifier := sharing.NewHMACCodec([]byte("another secret"), sharing.HasherSHA256)

	token, err := signer.Sign("t1", 600)
	require.NoError(t, err)

	assert.ErrorIs(t, verifier.Verify(token), sharing.ErrTokenMismatch)
}

func TestHMACSignRejectsNegativeTTL(t *testing.T) {
	codec := sharing.NewHMACCodec([]byte("test-secret"), sharing.HasherSHA256)

	_, err := codec.Sign("t1", -1)
	require.Error(t, err)

	var tokenErr *sharing.TokenError
	assert.ErrorAs(t, err, &tokenErr)
}

func TestHMACDecode(t *testing.T) {
	codec := sharing.NewHMACCodec([]byte("test-secret"), sharing.HasherSHA256)

	before := time.Now().UTC().Add(600 * time.Second).Add(-time.Second)
	token, err := codec.Sign("t1", 600)
	require.NoError(t, err)
	after := time.Now().UTC().Add(600 * time.Second).Add(time.Second)

	tid, expiresAt, err := codec.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, "t1", tid)
	assert.True(t, expiresAt.After(before) && expiresAt.Before(after),
		"expiry %v not within [%v, %v]", expiresAt, before, after)

	_, _, err = codec.Decode("not-a-token")
	assert.ErrorIs(t, err, sharing.ErrMalformedToken)
}
