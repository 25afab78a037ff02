package sharing

import (
	"crypto/sha256"
	"crypto/sha512"
	"hash"
	"strings"
)

// Hasher is the domain type for the HMAC hash width used by the token codec.
type Hasher string

// Hasher constants (typed).
const (
	HasherSHA224 Hasher = "sha224"
	HasherSHA256 Hasher = "sha256"
	HasherSHA384 Hasher = "sha384"
	HasherSHA512 Hasher = "sha512"
)

// DefaultHasher is used when configuration names an unknown algorithm.
const DefaultHasher = HasherSHA256

// ParseHasher resolves a configured algorithm name, case-insensitively.
// Unrecognized names resolve to DefaultHasher rather than failing startup.
func ParseHasher(name string) Hasher {
	switch strings.ToLower(name) {
	case "sha224":
		return HasherSHA224
	case "sha256":
		return HasherSHA256
	case "sha384":
		return HasherSHA384
	case "sha512":
		return HasherSHA512
	default:
		return DefaultHasher
	}
}

// New returns the hash constructor for this width, suitable for hmac.New.
func (h Hasher) New() func() hash.Hash {
	switch h {
	case HasherSHA224:
		return sha256.New224
	case HasherSHA384:
		return sha512.New384
	case HasherSHA512:
		return sha512.New
	default:
		return sha256.New
	}
}
