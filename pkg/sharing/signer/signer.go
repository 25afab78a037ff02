// Package signer classifies object store locations and produces presigned
// URLs that let recipients fetch objects without holding cloud credentials.
package signer

import (
	"context"
	"fmt"
	"time"

	"github.com/tendant/simple-sharing/pkg/sharing"
)

// URLSigner produces a time-limited URL for an object held in an external
// store. Implementations are pure functions of their inputs plus the clock;
// no network I/O happens during signing.
type URLSigner interface {
	SignedURL(ctx context.Context, loc Location, expiry time.Duration) (string, error)
}

// Registry dispatches signing requests to the signer registered for a
// location's store kind.
type Registry struct {
	signers map[StoreKind]URLSigner
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{signers: make(map[StoreKind]URLSigner)}
}

// Register binds a signer to a store kind, replacing any previous binding.
func (r *Registry) Register(kind StoreKind, s URLSigner) {
	r.signers[kind] = s
}

// SignedURL signs the location with the signer registered for its kind.
func (r *Registry) SignedURL(ctx context.Context, loc Location, expiry time.Duration) (string, error) {
	s, ok := r.signers[loc.Kind]
	if !ok {
		return "", fmt.Errorf("%w: %s", sharing.ErrUnsupportedLocation, loc.URL)
	}
	return s.SignedURL(ctx, loc, expiry)
}
