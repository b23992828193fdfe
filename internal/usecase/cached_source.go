package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
)

// CachedSource layers a byte cache in front of a raw source. Cache
// failures degrade to the inner source; a broken cache never blocks a
// ledger load.
type CachedSource struct {
	inner  RawSource
	cache  Cache
	key    string
	ttl    time.Duration
	logger zerolog.Logger
}

// NewCachedSource creates a new CachedSource.
func NewCachedSource(inner RawSource, cache Cache, key string, ttl time.Duration, logger zerolog.Logger) *CachedSource {
	return &CachedSource{
		inner:  inner,
		cache:  cache,
		key:    key,
		ttl:    ttl,
		logger: logger,
	}
}

// Read returns the cached raw document, falling back to the inner
// source and repopulating the cache on a miss.
func (s *CachedSource) Read(ctx context.Context) ([]byte, error) {
	data, err := s.cache.Get(ctx, s.key)
	if err == nil {
		return data, nil
	}
	if !errors.Is(err, ErrCacheMiss) {
		s.logger.Warn().Err(err).Str("key", s.key).Msg("document cache read failed")
	}

	data, err = s.inner.Read(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, s.key, data, s.ttl); err != nil {
		s.logger.Warn().Err(err).Str("key", s.key).Msg("document cache write failed")
	}

	return data, nil
}

// Invalidate drops the cached raw document.
func (s *CachedSource) Invalidate(ctx context.Context) {
	if err := s.cache.Delete(ctx, s.key); err != nil {
		s.logger.Warn().Err(err).Str("key", s.key).Msg("document cache delete failed")
	}
}
