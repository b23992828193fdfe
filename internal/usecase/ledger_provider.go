package usecase

import (
	"context"
	"sync"

	"github.com/isekco/vestia/internal/domain"
	"github.com/isekco/vestia/internal/ingest"
)

// inflightLoad is a single shared load. Waiters block on done and read
// the result afterwards.
type inflightLoad struct {
	done   chan struct{}
	ledger *domain.Ledger
	err    error
}

// CachedLedgerProvider reads, validates and caches the ledger. At most
// one load is in flight per provider: concurrent callers join the
// running load instead of duplicating it. Invalidate clears the cache
// for the next read without cancelling an in-flight load.
type CachedLedgerProvider struct {
	source RawSource
	mapper *ingest.Mapper

	mu       sync.Mutex
	cached   *domain.Ledger
	inflight *inflightLoad
}

// NewCachedLedgerProvider creates a new CachedLedgerProvider.
func NewCachedLedgerProvider(source RawSource, mapper *ingest.Mapper) *CachedLedgerProvider {
	return &CachedLedgerProvider{
		source: source,
		mapper: mapper,
	}
}

// GetLedger returns the cached ledger, or loads it through the source
// and mapper. forceRefresh bypasses the cache but still joins a load
// that is already in flight.
func (p *CachedLedgerProvider) GetLedger(ctx context.Context, forceRefresh bool) (*domain.Ledger, error) {
	p.mu.Lock()

	if !forceRefresh && p.cached != nil {
		ledger := p.cached
		p.mu.Unlock()
		return ledger, nil
	}

	if load := p.inflight; load != nil {
		p.mu.Unlock()
		select {
		case <-load.done:
			return load.ledger, load.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	load := &inflightLoad{done: make(chan struct{})}
	p.inflight = load
	p.mu.Unlock()

	if forceRefresh {
		p.invalidateSource(ctx)
	}

	ledger, err := p.load(ctx)

	p.mu.Lock()
	if err == nil {
		p.cached = ledger
	}
	p.inflight = nil
	p.mu.Unlock()

	load.ledger = ledger
	load.err = err
	close(load.done)

	return ledger, err
}

// Invalidate clears the cached ledger. The next GetLedger reloads.
func (p *CachedLedgerProvider) Invalidate() {
	p.mu.Lock()
	p.cached = nil
	p.mu.Unlock()

	p.invalidateSource(context.Background())
}

// sourceInvalidator is implemented by sources that hold their own cache
// layer, such as CachedSource.
type sourceInvalidator interface {
	Invalidate(ctx context.Context)
}

// invalidateSource drops the source's cache layer so a bypassing read
// reaches the backing store instead of stale cached bytes.
func (p *CachedLedgerProvider) invalidateSource(ctx context.Context) {
	if s, ok := p.source.(sourceInvalidator); ok {
		s.Invalidate(ctx)
	}
}

func (p *CachedLedgerProvider) load(ctx context.Context) (*domain.Ledger, error) {
	data, err := p.source.Read(ctx)
	if err != nil {
		return nil, err
	}
	return p.mapper.Parse(data)
}
