// Package gcs provides presigned (V4-signed) GET URLs for Google Cloud
// Storage objects using service account key material.
package gcs

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"cloud.google.com/go/storage"

	"github.com/tendant/simple-sharing/pkg/sharing"
	"github.com/tendant/simple-sharing/pkg/sharing/signer"
)

// ServiceAccount is the subset of a GCP service account key file needed for
// URL signing.
type ServiceAccount struct {
	ClientEmail string `json:"client_email"`
	PrivateKey  string `json:"private_key"`
}

// LoadServiceAccount reads and parses a service account key file.
func LoadServiceAccount(path string) (*ServiceAccount, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read service account file: %w", err)
	}
	var account ServiceAccount
	if err := json.Unmarshal(raw, &account); err != nil {
		return nil, fmt.Errorf("failed to parse service account file: %w", err)
	}
	if account.ClientEmail == "" || account.PrivateKey == "" {
		return nil, fmt.Errorf("service account file is missing client_email or private_key")
	}
	return &account, nil
}

// Signer produces V4-signed GCS URLs. Signing is local; the service account
// key is never sent anywhere.
type Signer struct {
	account ServiceAccount
}

// New creates a GCS signer for the given service account.
func New(account ServiceAccount) (*Signer, error) {
	if account.ClientEmail == "" || account.PrivateKey == "" {
		return nil, fmt.Errorf("service account client_email and private_key are required")
	}
	return &Signer{account: account}, nil
}

// SignedURL validates the location's bucket and object names against GCS
// naming constraints and produces a signed GET URL valid for expiry.
func (s *Signer) SignedURL(_ context.Context, loc signer.Location, expiry time.Duration) (string, error) {
	if err := validateBucketName(loc.Bucket); err != nil {
		return "", &sharing.SigningError{Store: "gcs", Bucket: loc.Bucket, Path: loc.Path, Err: err}
	}
	if err := validateObjectName(loc.Path); err != nil {
		return "", &sharing.SigningError{Store: "gcs", Bucket: loc.Bucket, Path: loc.Path, Err: err}
	}

	u, err := storage.SignedURL(loc.Bucket, loc.Path, &storage.SignedURLOptions{
		GoogleAccessID: s.account.ClientEmail,
		PrivateKey:     []byte(s.account.PrivateKey),
		Method:         http.MethodGet,
		Expires:        time.Now().UTC().Add(expiry),
		Scheme:         storage.SigningSchemeV4,
	})
	if err != nil {
		return "", &sharing.SigningError{Store: "gcs", Bucket: loc.Bucket, Path: loc.Path, Err: err}
	}
	return u, nil
}

// validateBucketName checks GCS bucket naming constraints: 3-63 characters
// of lowercase letters, digits, dashes, underscores and dots, starting and
// ending with a letter or digit.
func validateBucketName(bucket string) error {
	if len(bucket) < 3 || len(bucket) > 63 {
		return fmt.Errorf("bucket name must be 3-63 characters, got %d", len(bucket))
	}
	if !isAlnum(bucket[0]) || !isAlnum(bucket[len(bucket)-1]) {
		return fmt.Errorf("bucket name must start and end with a letter or digit")
	}
	for i := 0; i < len(bucket); i++ {
		c := bucket[i]
		if isAlnum(c) || c == '-' || c == '_' || c == '.' {
			continue
		}
		return fmt.Errorf("bucket name contains invalid character %q", c)
	}
	return nil
}

// validateObjectName checks GCS object naming constraints: 1-1024 bytes of
// valid UTF-8 without carriage returns or line feeds.
func validateObjectName(object string) error {
	if len(object) == 0 || len(object) > 1024 {
		return fmt.Errorf("object name must be 1-1024 bytes, got %d", len(object))
	}
	if !utf8.ValidString(object) {
		return fmt.Errorf("object name must be valid UTF-8")
	}
	if strings.ContainsAny(object, "\r\n") {
		return fmt.Errorf("object name must not contain carriage returns or line feeds")
	}
	if object == "." || object == ".." {
		return fmt.Errorf("object name must not be %q", object)
	}
	return nil
}

func isAlnum(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9')
}
