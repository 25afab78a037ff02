package sharing

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// service implements the Service interface
type service struct {
	repository Repository
	serverAddr string
	scheme     TokenScheme
	issuer     *ProfileIssuer
}

// Option represents a functional option for configuring the service
type Option func(*service)

// WithRepository sets the repository for the service
func WithRepository(repo Repository) Option {
	return func(s *service) {
		s.repository = repo
	}
}

// WithServerAddr sets the public base address used in endpoints, issuers
// and audiences
func WithServerAddr(addr string) Option {
	return func(s *service) {
		s.serverAddr = strings.TrimSuffix(addr, "/")
	}
}

// WithTokenScheme sets the bearer token scheme
func WithTokenScheme(scheme TokenScheme) Option {
	return func(s *service) {
		s.scheme = scheme
	}
}

// New creates a new service instance with the given options
func New(options ...Option) (Service, error) {
	s := &service{}

	for _, option := range options {
		option(s)
	}

	if s.repository == nil {
		return nil, fmt.Errorf("repository is required")
	}
	if s.serverAddr == "" {
		return nil, fmt.Errorf("server address is required")
	}
	if s.scheme == nil {
		return nil, fmt.Errorf("token scheme is required")
	}

	issuer, err := NewProfileIssuer(s.serverAddr, s.scheme)
	if err != nil {
		return nil, err
	}
	s.issuer = issuer

	return s, nil
}

func (s *service) Issuer() *ProfileIssuer { return s.issuer }

func (s *service) Login(ctx context.Context, req LoginRequest) (*Account, bool, error) {
	if req.Email == "" {
		return nil, false, fmt.Errorf("email is required")
	}

	account, err := s.repository.GetAccountByEmail(ctx, req.Email)
	if err == nil {
		account.Image = req.Image
		account.UpdatedAt = time.Now().UTC()
		if err := s.repository.UpsertAccount(ctx, account); err != nil {
			return nil, false, fmt.Errorf("failed to update account: %w", err)
		}
		return account, false, nil
	}
	if !errors.Is(err, ErrAccountNotFound) {
		return nil, false, fmt.Errorf("failed to look up account: %w", err)
	}

	// First login: derive a unique account name from the social name by
	// appending the count of accounts already sharing the prefix.
	prefix := strings.ToLower(strings.Join(strings.Fields(req.SocialName), ""))
	if prefix == "" {
		return nil, false, fmt.Errorf("social name is required")
	}
	count, err := s.repository.CountAccountsByNamePrefix(ctx, prefix)
	if err != nil {
		return nil, false, fmt.Errorf("failed to count accounts by name prefix: %w", err)
	}

	now := time.Now().UTC()
	account = &Account{
		ID:             uuid.New(),
		Name:           prefix + strconv.FormatInt(count, 10),
		Email:          req.Email,
		Image:          req.Image,
		SocialPlatform: req.SocialPlatform,
		SocialID:       req.SocialID,
		SocialName:     req.SocialName,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.repository.UpsertAccount(ctx, account); err != nil {
		return nil, false, fmt.Errorf("failed to register account: %w", err)
	}
	return account, true, nil
}

func (s *service) IssueProfile(ctx context.Context, req IssueProfileRequest) (*Profile, error) {
	provider, err := s.repository.GetAccountByName(ctx, req.Provider)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve provider %q: %w", req.Provider, err)
	}
	recipient, err := s.repository.GetAccountByName(ctx, req.Recipient)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve recipient %q: %w", req.Recipient, err)
	}

	id := uuid.New()
	profile, err := s.issuer.Issue(id.String(), provider.Name, recipient.Name, req.TTLSeconds)
	if err != nil {
		return nil, fmt.Errorf("failed to issue profile: %w", err)
	}

	now := time.Now().UTC()
	token := &Token{
		ID:         id,
		Value:      profile.BearerToken,
		Active:     true,
		CreatedBy:  provider.ID,
		CreatedFor: recipient.ID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repository.UpsertToken(ctx, token); err != nil {
		return nil, fmt.Errorf("failed to register token: %w", err)
	}

	return profile, nil
}

func (s *service) VerifyBearer(ctx context.Context, token, provider string) (*Claims, error) {
	claims, err := s.scheme.Verify(token, VerifyRequest{
		Issuer:   s.serverAddr,
		Audience: s.issuer.Endpoint(provider),
	})
	if err != nil {
		return nil, err
	}

	// The HMAC codec authenticates integrity only; the embedded expiry is
	// enforced here. The claims scheme rejects expired tokens at decode
	// time already.
	if hs, ok := s.scheme.(*hmacScheme); ok {
		_, expiresAt, err := hs.Codec().Decode(token)
		if err != nil {
			return nil, err
		}
		if time.Now().After(expiresAt) {
			return nil, ErrUnauthorized
		}
	}

	return claims, nil
}
