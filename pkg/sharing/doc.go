// Package sharing provides a reusable library for issuing and verifying the
// short-lived credentials a data-sharing server hands to its recipients.
//
// It exposes a single Service interface that orchestrates social-login
// account registration, credential profile issuance and bearer token
// verification over a pluggable Repository (memory, Postgres under repo/).
// Two bearer token formats coexist behind the TokenScheme interface: a
// compact HMAC-signed format and a JWT claims format; the scheme is selected
// once by configuration. Presigned object-store URL generation lives in the
// signer subpackage.
//
// Token Expiry
//
// The HMAC codec's Verify authenticates integrity and origin only; the
// Service enforces the embedded expiry after verification. The claims scheme
// rejects expired tokens at decode time.
package sharing
