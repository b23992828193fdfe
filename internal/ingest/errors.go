package ingest

import (
	"errors"
	"fmt"
)

// ErrInvalidDocument is the root of every mapping failure. A ledger is
// valid or rejected wholesale; callers match this with errors.Is.
var ErrInvalidDocument = errors.New("invalid ledger document")

// FieldError reports a single offending field with enough context to
// locate the entity it belongs to.
type FieldError struct {
	Entity   string // "owner", "account", "transaction", "ledger"
	EntityID string
	Field    string
	Reason   string
}

func (e *FieldError) Error() string {
	if e.EntityID == "" {
		return fmt.Sprintf("invalid ledger document: %s.%s: %s", e.Entity, e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid ledger document: %s.%s: %s (%s=%s)", e.Entity, e.Field, e.Reason, e.Entity+"Id", e.EntityID)
}

func (e *FieldError) Unwrap() error {
	return ErrInvalidDocument
}

func fieldErr(entity, entityID, field, format string, args ...any) error {
	return &FieldError{
		Entity:   entity,
		EntityID: entityID,
		Field:    field,
		Reason:   fmt.Sprintf(format, args...),
	}
}
