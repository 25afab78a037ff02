package signer

import (
	"fmt"
	"net/url"
	"strings"
)

// StoreKind identifies the object store family a location belongs to.
type StoreKind string

// Store kind constants (typed).
const (
	StoreS3          StoreKind = "s3"
	StoreGCS         StoreKind = "gcs"
	StoreUnsupported StoreKind = "unsupported"
)

// Location is a classified object store location. Bucket and Path are set
// for S3 and GCS locations; unsupported locations retain only the URL.
type Location struct {
	Kind   StoreKind
	URL    string
	Bucket string
	Path   string
}

// ParseLocation classifies a storage location URL by scheme. Dispatch is
// total: every syntactically valid URL maps to exactly one kind, so unknown
// schemes come back as StoreUnsupported rather than an error.
func ParseLocation(raw string) (Location, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Location{}, fmt.Errorf("failed to parse storage location %q: %w", raw, err)
	}
	switch u.Scheme {
	case "s3", "s3a":
		return Location{
			Kind:   StoreS3,
			URL:    raw,
			Bucket: u.Host,
			Path:   strings.TrimPrefix(u.Path, "/"),
		}, nil
	case "gs":
		return Location{
			Kind:   StoreGCS,
			URL:    raw,
			Bucket: u.Host,
			Path:   strings.TrimPrefix(u.Path, "/"),
		}, nil
	default:
		return Location{Kind: StoreUnsupported, URL: raw}, nil
	}
}
