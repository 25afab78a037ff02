package sharing

import (
	"crypto/hmac"
	"encoding/hex"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// HMACCodec signs and verifies compact bearer tokens of the form
//
//	hex(token-id) "." hex(expiry-epoch-seconds) "." hex(mac)
//
// where the MAC is computed over the first two segments exactly as they
// appear on the wire. The token is opaque to its holder; only a party
// knowing the secret can produce a valid signature.
type HMACCodec struct {
	secret []byte
	hasher Hasher
}

// NewHMACCodec creates a codec bound to a secret and hash width. Both are
// fixed for the lifetime of the codec, so a single instance is safe for
// concurrent use.
func NewHMACCodec(secret []byte, hasher Hasher) *HMACCodec {
	return &HMACCodec{secret: secret, hasher: hasher}
}

// expiryFromTTL converts a TTL in seconds into an absolute expiry. A
// negative or out-of-range TTL is a reported error, never a panic.
func expiryFromTTL(ttl int64) (int64, time.Time, error) {
	if ttl < 0 {
		return 0, time.Time{}, fmt.Errorf("ttl must be non-negative, got %d", ttl)
	}
	if ttl > math.MaxInt64/int64(time.Second) {
		return 0, time.Time{}, fmt.Errorf("ttl %d seconds is not representable as a duration", ttl)
	}
	exp := time.Now().UTC().Add(time.Duration(ttl) * time.Second)
	return exp.Unix(), exp, nil
}

// Sign mints a token for the given id expiring ttl seconds from now.
func (c *HMACCodec) Sign(tokenID string, ttl int64) (string, error) {
	exp, _, err := expiryFromTTL(ttl)
	if err != nil {
		return "", &TokenError{Scheme: "hmac", Op: "sign", Err: err}
	}
	body := hex.EncodeToString([]byte(tokenID)) + "." + strconv.FormatInt(exp, 16)
	mac := hmac.New(c.hasher.New(), c.secret)
	mac.Write([]byte(body))
	return body + "." + hex.EncodeToString(mac.Sum(nil)), nil
}

// Verify recomputes the MAC over the token body and compares it in constant
// time against the signature segment. It authenticates integrity and origin
// only: the embedded expiry is not compared to the current time here. Use
// Decode when the caller needs to enforce expiry.
func (c *HMACCodec) Verify(token string) error {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return ErrMalformedToken
	}
	sig, err := hex.DecodeString(parts[2])
	if err != nil {
		return fmt.Errorf("%w: signature segment is not valid hex", ErrMalformedToken)
	}
	body := parts[0] + "." + parts[1]
	mac := hmac.New(c.hasher.New(), c.secret)
	mac.Write([]byte(body))
	if !hmac.Equal(mac.Sum(nil), sig) {
		return ErrTokenMismatch
	}
	return nil
}

// Decode extracts the token id and expiry from a token without verifying its
// signature. Callers must Verify first when the token is untrusted.
func (c *HMACCodec) Decode(token string) (string, time.Time, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return "", time.Time{}, ErrMalformedToken
	}
	tid, err := hex.DecodeString(parts[0])
	if err != nil {
		return "", time.Time{}, fmt.Errorf("%w: token id segment is not valid hex", ErrMalformedToken)
	}
	exp, err := strconv.ParseInt(parts[1], 16, 64)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("%w: expiry segment is not valid hex", ErrMalformedToken)
	}
	return string(tid), time.Unix(exp, 0).UTC(), nil
}
