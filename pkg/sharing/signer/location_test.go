package signer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/simple-sharing/pkg/sharing/signer"
)

func TestParseLocation(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected signer.Location
	}{
		{
			name: "s3",
			url:  "s3://bucket/key/sub",
			expected: signer.Location{
				Kind: signer.StoreS3, URL: "s3://bucket/key/sub",
				Bucket: "bucket", Path: "key/sub",
			},
		},
		{
			name: "s3a",
			url:  "s3a://bucket/key",
			expected: signer.Location{
				Kind: signer.StoreS3, URL: "s3a://bucket/key",
				Bucket: "bucket", Path: "key",
			},
		},
		{
			name: "gcs",
			url:  "gs://bucket/key",
			expected: signer.Location{
				Kind: signer.StoreGCS, URL: "gs://bucket/key",
				Bucket: "bucket", Path: "key",
			},
		},
		{
			name: "bucket only",
			url:  "s3://bucket",
			expected: signer.Location{
				Kind: signer.StoreS3, URL: "s3://bucket",
				Bucket: "bucket", Path: "",
			},
		},
		{
			name:     "https is unsupported",
			url:      "https://example.com/x",
			expected: signer.Location{Kind: signer.StoreUnsupported, URL: "https://example.com/x"},
		},
		{
			name:     "abfss is unsupported",
			url:      "abfss://container@account.dfs.core.windows.net/path",
			expected: signer.Location{Kind: signer.StoreUnsupported, URL: "abfss://container@account.dfs.core.windows.net/path"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := signer.ParseLocation(tt.url)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, loc)
		})
	}
}

func TestParseLocationMalformed(t *testing.T) {
	_, err := signer.ParseLocation("s3://bucket/%zz\x7f")
	assert.Error(t, err)
}
