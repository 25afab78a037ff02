package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/tendant/simple-sharing/pkg/sharing"
)

// Repository implements sharing.Repository using in-memory storage
type Repository struct {
	mu              sync.RWMutex
	accounts        map[uuid.UUID]*sharing.Account
	accountsByName  map[string]uuid.UUID
	accountsByEmail map[string]uuid.UUID
	tokens          map[uuid.UUID]*sharing.Token
}

// New creates a new in-memory repository
func New() sharing.Repository {
	return &Repository{
		accounts:        make(map[uuid.UUID]*sharing.Account),
		accountsByName:  make(map[string]uuid.UUID),
		accountsByEmail: make(map[string]uuid.UUID),
		tokens:          make(map[uuid.UUID]*sharing.Token),
	}
}

// Account operations

func (r *Repository) UpsertAccount(ctx context.Context, account *sharing.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.accounts[account.ID]; ok {
		delete(r.accountsByName, existing.Name)
		delete(r.accountsByEmail, existing.Email)
	}

	// Store a copy to avoid external modifications
	accountCopy := *account
	r.accounts[account.ID] = &accountCopy
	r.accountsByName[account.Name] = account.ID
	r.accountsByEmail[account.Email] = account.ID

	return nil
}

func (r *Repository) GetAccountByName(ctx context.Context, name string) (*sharing.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.accountsByName[name]
	if !ok {
		return nil, sharing.ErrAccountNotFound
	}
	accountCopy := *r.accounts[id]
	return &accountCopy, nil
}

func (r *Repository) GetAccountByEmail(ctx context.Context, email string) (*sharing.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.accountsByEmail[email]
	if !ok {
		return nil, sharing.ErrAccountNotFound
	}
	accountCopy := *r.accounts[id]
	return &accountCopy, nil
}

func (r *Repository) CountAccountsByNamePrefix(ctx context.Context, prefix string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for name := range r.accountsByName {
		if strings.HasPrefix(name, prefix) {
			count++
		}
	}
	return count, nil
}

// Token operations

func (r *Repository) UpsertToken(ctx context.Context, token *sharing.Token) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tokenCopy := *token
	r.tokens[token.ID] = &tokenCopy

	return nil
}

func (r *Repository) GetToken(ctx context.Context, id uuid.UUID) (*sharing.Token, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	token, ok := r.tokens[id]
	if !ok {
		return nil, sharing.ErrTokenNotFound
	}
	tokenCopy := *token
	return &tokenCopy, nil
}

func (r *Repository) ListTokensByRecipient(ctx context.Context, recipientID uuid.UUID) ([]*sharing.Token, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var tokens []*sharing.Token
	for _, token := range r.tokens {
		if token.CreatedFor == recipientID {
			tokenCopy := *token
			tokens = append(tokens, &tokenCopy)
		}
	}
	return tokens, nil
}
