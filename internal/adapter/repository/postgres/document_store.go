package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/isekco/vestia/internal/domain"
)

// DocumentStore persists raw ledger documents as revisions. Exactly one
// revision is active at a time; replacing the ledger deactivates the
// previous revision in the same transaction.
type DocumentStore struct {
	pool    *pgxpool.Pool
	retrier *Retrier
}

// NewDocumentStore creates a new DocumentStore.
func NewDocumentStore(pool *pgxpool.Pool, retrier *Retrier) *DocumentStore {
	return &DocumentStore{
		pool:    pool,
		retrier: retrier,
	}
}

// SaveDocument stores a new active revision.
func (s *DocumentStore) SaveDocument(ctx context.Context, revisionID string, body []byte) error {
	return s.retrier.Retry(ctx, func() error {
		tx, err := s.pool.Begin(ctx)
		if err != nil {
			return fmt.Errorf("failed to begin transaction: %w", err)
		}
		defer tx.Rollback(ctx)

		if _, err := tx.Exec(ctx,
			`UPDATE ledger_documents SET active = FALSE WHERE active`,
		); err != nil {
			return fmt.Errorf("failed to deactivate previous revision: %w", err)
		}

		if _, err := tx.Exec(ctx,
			`INSERT INTO ledger_documents (revision_id, body, active, created_at) VALUES ($1, $2, TRUE, $3)`,
			revisionID, body, time.Now().UTC(),
		); err != nil {
			return fmt.Errorf("failed to insert revision %s: %w", revisionID, err)
		}

		return tx.Commit(ctx)
	})
}

// LoadActive returns the body of the active revision.
func (s *DocumentStore) LoadActive(ctx context.Context) ([]byte, error) {
	var body []byte

	err := s.retrier.Retry(ctx, func() error {
		row := s.pool.QueryRow(ctx,
			`SELECT body FROM ledger_documents WHERE active ORDER BY created_at DESC LIMIT 1`,
		)
		if err := row.Scan(&body); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrNoLedgerDocument
			}
			return fmt.Errorf("failed to load active revision: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return body, nil
}

// Read satisfies the raw source interface by serving the active
// revision.
func (s *DocumentStore) Read(ctx context.Context) ([]byte, error) {
	return s.LoadActive(ctx)
}
