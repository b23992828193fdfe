package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/isekco/vestia/internal/domain"
)

// ErrCacheMiss is returned by Cache.Get when the key is absent.
var ErrCacheMiss = errors.New("cache miss")

// RawSource supplies the raw serialized ledger document. Implementations
// may block on I/O; cancellation and retry live behind this boundary,
// never in the mapper or the engine.
type RawSource interface {
	Read(ctx context.Context) ([]byte, error)
}

// DocumentStore persists raw ledger documents as revisions.
type DocumentStore interface {
	SaveDocument(ctx context.Context, revisionID string, body []byte) error
	LoadActive(ctx context.Context) ([]byte, error)
}

// Cache defines byte caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// LedgerProvider supplies the validated ledger, optionally cached.
type LedgerProvider interface {
	GetLedger(ctx context.Context, forceRefresh bool) (*domain.Ledger, error)
	Invalidate()
}

// PositionCalculator derives positions from a validated ledger.
type PositionCalculator interface {
	Calculate(ledger *domain.Ledger) ([]domain.Position, error)
}
