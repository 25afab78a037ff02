package gcs_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/simple-sharing/pkg/sharing/signer"
	gcssigner "github.com/tendant/simple-sharing/pkg/sharing/signer/gcs"
)

func testServiceAccount(t *testing.T) gcssigner.ServiceAccount {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	keyPEM := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})

	return gcssigner.ServiceAccount{
		ClientEmail: "signer@test-project.iam.gserviceaccount.com",
		PrivateKey:  string(keyPEM),
	}
}

func TestGCSSignedURL(t *testing.T) {
	s, err := gcssigner.New(testServiceAccount(t))
	require.NoError(t, err)

	loc, err := signer.ParseLocation("gs://test-bucket/covid/data.parquet")
	require.NoError(t, err)

	signed, err := s.SignedURL(context.Background(), loc, 5*time.Minute)
	require.NoError(t, err)

	u, err := url.Parse(signed)
	require.NoError(t, err)
	assert.Contains(t, u.Host, "storage.googleapis.com")
	assert.Contains(t, u.Path, "test-bucket")
	assert.Contains(t, u.Path, "covid/data.parquet")

	query := u.Query()
	assert.NotEmpty(t, query.Get("X-Goog-Signature"))
	assert.Equal(t, "300", query.Get("X-Goog-Expires"))
}

func TestGCSNameValidation(t *testing.T) {
	s, err := gcssigner.New(testServiceAccount(t))
	require.NoError(t, err)

	tests := []struct {
		name   string
		bucket string
		path   string
	}{
		{name: "bucket too short", bucket: "ab", path: "key"},
		{name: "bucket too long", bucket: strings.Repeat("a", 64), path: "key"},
		{name: "bucket with uppercase", bucket: "Bucket", path: "key"},
		{name: "bucket ends with dash", bucket: "bucket-", path: "key"},
		{name: "empty object", bucket: "bucket", path: ""},
		{name: "object too long", bucket: "bucket", path: strings.Repeat("a", 1025)},
		{name: "object with newline", bucket: "bucket", path: "key\nwith-newline"},
		{name: "object is dot", bucket: "bucket", path: "."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.SignedURL(context.Background(), signer.Location{
				Kind:   signer.StoreGCS,
				Bucket: tt.bucket,
				Path:   tt.path,
			}, time.Minute)
			assert.Error(t, err)
		})
	}
}

func TestNewRequiresKeyMaterial(t *testing.T) {
	_, err := gcssigner.New(gcssigner.ServiceAccount{})
	assert.Error(t, err)

	_, err = gcssigner.New(gcssigner.ServiceAccount{ClientEmail: "a@b.iam.gserviceaccount.com"})
	assert.Error(t, err)
}

func TestLoadServiceAccount(t *testing.T) {
	account := testServiceAccount(t)

	raw, err := json.Marshal(map[string]string{
		"type":         "service_account",
		"client_email": account.ClientEmail,
		"private_key":  account.PrivateKey,
	})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "service-account.json")
	require.NoError(t, os.WriteFile(path, raw, 0o600))

	loaded, err := gcssigner.LoadServiceAccount(path)
	require.NoError(t, err)
	assert.Equal(t, account.ClientEmail, loaded.ClientEmail)
	assert.Equal(t, account.PrivateKey, loaded.PrivateKey)

	_, err = gcssigner.LoadServiceAccount(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
