package store

import (
	"context"
	"time"

	"github.com/vodintech/caragecarcare/internal/models"
)

// SelectionStore carries the committed vehicle selection between screens
type SelectionStore interface {
	GetSelection(ctx context.Context, sessionID string) (models.Selection, error)
	PutSelection(ctx context.Context, sessionID string, sel models.Selection) error
}

// CartStore carries the cart between screens; order of items is preserved exactly
type CartStore interface {
	GetCart(ctx context.Context, sessionID string) ([]models.CartItem, error)
	PutCart(ctx context.Context, sessionID string, items []models.CartItem) error
	DeleteCart(ctx context.Context, sessionID string) error
}

// SessionStore is the full tab-scoped record store contract
type SessionStore interface {
	SelectionStore
	CartStore
	Clear(ctx context.Context, sessionID string) error
	PurgeOlderThan(ctx context.Context, age time.Duration) (int64, error)
}

// Ensure Store implements the full contract
var _ SessionStore = (*Store)(nil)
