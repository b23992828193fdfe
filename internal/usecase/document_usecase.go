package usecase

import (
	"context"

	"github.com/isekco/vestia/internal/ingest"
)

// DocumentUseCase manages stored raw ledger documents. A pushed document
// is validated wholesale before it replaces the active revision; invalid
// documents are rejected without touching the store.
type DocumentUseCase struct {
	store    DocumentStore
	mapper   *ingest.Mapper
	provider LedgerProvider
	idGen    IDGenerator
}

// NewDocumentUseCase creates a new DocumentUseCase.
func NewDocumentUseCase(store DocumentStore, mapper *ingest.Mapper, provider LedgerProvider, idGen IDGenerator) *DocumentUseCase {
	return &DocumentUseCase{
		store:    store,
		mapper:   mapper,
		provider: provider,
		idGen:    idGen,
	}
}

// ReplaceLedger validates and stores a new document revision, then
// invalidates the provider cache so the next read sees it. Returns the
// new revision id.
func (uc *DocumentUseCase) ReplaceLedger(ctx context.Context, body []byte) (string, error) {
	if _, err := uc.mapper.Parse(body); err != nil {
		return "", err
	}

	revisionID := uc.idGen.Generate()
	if err := uc.store.SaveDocument(ctx, revisionID, body); err != nil {
		return "", err
	}

	uc.provider.Invalidate()
	return revisionID, nil
}
