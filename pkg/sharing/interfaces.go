package sharing

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for account and token persistence.
// Implementations live under repo/ (memory, postgres).
type Repository interface {
	// Account operations
	UpsertAccount(ctx context.Context, account *Account) error
	GetAccountByName(ctx context.Context, name string) (*Account, error)
	GetAccountByEmail(ctx context.Context, email string) (*Account, error)
	CountAccountsByNamePrefix(ctx context.Context, prefix string) (int64, error)

	// Token operations
	UpsertToken(ctx context.Context, token *Token) error
	GetToken(ctx context.Context, id uuid.UUID) (*Token, error)
	ListTokensByRecipient(ctx context.Context, recipientID uuid.UUID) ([]*Token, error)
}
