package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/isekco/vestia/internal/domain"
	"github.com/isekco/vestia/internal/usecase"
)

// MockRawSource is a mock implementation of RawSource.
type MockRawSource struct {
	mu    sync.Mutex
	reads int

	ReadFunc func(ctx context.Context) ([]byte, error)
}

func NewMockRawSource() *MockRawSource {
	return &MockRawSource{}
}

func (m *MockRawSource) Read(ctx context.Context) ([]byte, error) {
	m.mu.Lock()
	m.reads++
	m.mu.Unlock()

	if m.ReadFunc != nil {
		return m.ReadFunc(ctx)
	}
	return nil, nil
}

// Reads reports how many times Read was called.
func (m *MockRawSource) Reads() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reads
}

// MockCache is an in-memory mock implementation of Cache.
type MockCache struct {
	mu     sync.RWMutex
	values map[string][]byte

	GetFunc    func(ctx context.Context, key string) ([]byte, error)
	SetFunc    func(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeleteFunc func(ctx context.Context, key string) error
}

func NewMockCache() *MockCache {
	return &MockCache{values: make(map[string][]byte)}
}

func (m *MockCache) Get(ctx context.Context, key string) ([]byte, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.values[key]
	if !ok {
		return nil, usecase.ErrCacheMiss
	}
	return value, nil
}

func (m *MockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	return "mock-id"
}

// MockLedgerProvider is a mock implementation of LedgerProvider.
type MockLedgerProvider struct {
	mu          sync.Mutex
	invalidated int

	GetLedgerFunc func(ctx context.Context, forceRefresh bool) (*domain.Ledger, error)
}

func NewMockLedgerProvider() *MockLedgerProvider {
	return &MockLedgerProvider{}
}

func (m *MockLedgerProvider) GetLedger(ctx context.Context, forceRefresh bool) (*domain.Ledger, error) {
	if m.GetLedgerFunc != nil {
		return m.GetLedgerFunc(ctx, forceRefresh)
	}
	return &domain.Ledger{}, nil
}

func (m *MockLedgerProvider) Invalidate() {
	m.mu.Lock()
	m.invalidated++
	m.mu.Unlock()
}

// Invalidations reports how many times Invalidate was called.
func (m *MockLedgerProvider) Invalidations() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.invalidated
}

// MockPositionCalculator is a mock implementation of PositionCalculator.
type MockPositionCalculator struct {
	CalculateFunc func(ledger *domain.Ledger) ([]domain.Position, error)
}

func NewMockPositionCalculator() *MockPositionCalculator {
	return &MockPositionCalculator{}
}

func (m *MockPositionCalculator) Calculate(ledger *domain.Ledger) ([]domain.Position, error) {
	if m.CalculateFunc != nil {
		return m.CalculateFunc(ledger)
	}
	return []domain.Position{}, nil
}
