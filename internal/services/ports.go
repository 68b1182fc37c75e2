package services

import (
	"context"
	"time"

	"ledgerlink/internal/core"
)

// ContactSource is the CRM side of the pipeline: the paginated contact
// collection and the custom-field catalog.
type ContactSource interface {
	FetchAllContacts(ctx context.Context) ([]core.RawContact, error)
	FetchCustomFields(ctx context.Context) (map[string]core.FieldDefinition, error)
}

// TransactionSource loads the full transactions table.
type TransactionSource interface {
	ListTransactions(ctx context.Context) ([]core.Transaction, error)
}

// EventPublisher emits reconciliation lifecycle events. Implementations
// must treat publishing as best-effort; the service never fails a
// request over it.
type EventPublisher interface {
	PublishReconciliationCompleted(ctx context.Context, entryCount int, totalAmount float64, duration time.Duration) error
}
