// Package s3 provides presigned GET URLs for S3-compatible object stores.
package s3

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/tendant/simple-sharing/pkg/sharing"
	"github.com/tendant/simple-sharing/pkg/sharing/signer"
)

// Config options for the S3 signer
type Config struct {
	Region          string // AWS region
	AccessKeyID     string // AWS access key ID
	SecretAccessKey string // AWS secret access key
	Endpoint        string // Optional custom endpoint for S3-compatible services
	UsePathStyle    bool   // Use path-style addressing (default: false)
}

// Signer produces SigV4-presigned GET URLs. Credentials are resolved once
// at construction; signing itself is local and involves no network I/O.
type Signer struct {
	presign *s3.PresignClient
}

// New creates an S3 signer from the given configuration. When no static
// credentials are provided the default AWS credential chain applies.
func New(config Config) (*Signer, error) {
	if config.Region == "" {
		config.Region = "us-east-1"
	}

	var awsCfg aws.Config
	var err error

	if config.AccessKeyID != "" && config.SecretAccessKey != "" {
		awsCfg, err = awsconfig.LoadDefaultConfig(context.Background(),
			awsconfig.WithRegion(config.Region),
			awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
				config.AccessKeyID,
				config.SecretAccessKey,
				"",
			)),
		)
	} else {
		awsCfg, err = awsconfig.LoadDefaultConfig(context.Background(),
			awsconfig.WithRegion(config.Region),
		)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	var s3Options []func(*s3.Options)
	if config.Endpoint != "" {
		s3Options = append(s3Options, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(config.Endpoint)
			o.UsePathStyle = config.UsePathStyle
		})
	}

	client := s3.NewFromConfig(awsCfg, s3Options...)

	return &Signer{presign: s3.NewPresignClient(client)}, nil
}

// SignedURL presigns a GET-object request for the location's bucket and key,
// valid for the given expiry.
func (s *Signer) SignedURL(ctx context.Context, loc signer.Location, expiry time.Duration) (string, error) {
	result, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(loc.Bucket),
		Key:    aws.String(loc.Path),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = expiry
	})
	if err != nil {
		return "", &sharing.SigningError{Store: "s3", Bucket: loc.Bucket, Path: loc.Path, Err: err}
	}

	if _, err := url.Parse(result.URL); err != nil {
		return "", &sharing.SigningError{Store: "s3", Bucket: loc.Bucket, Path: loc.Path,
			Err: fmt.Errorf("presigned URL is not parseable: %w", err)}
	}

	return result.URL, nil
}
