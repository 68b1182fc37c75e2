// Package services orchestrates the reconciliation pipeline: CRM
// retrieval, normalization, transaction matching and aggregation.
package services

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"ledgerlink/internal/core"
	"ledgerlink/internal/log"
)

// ReconcileService runs the pipeline end to end. All intermediate
// state (catalog, contacts, accumulator) is request-scoped: each call
// builds its own instances and nothing is cached across calls.
type ReconcileService struct {
	contacts ContactSource
	txns     TransactionSource
	events   EventPublisher // nil when event publishing is disabled
	logger   *log.Logger
}

func NewReconcileService(contacts ContactSource, txns TransactionSource, events EventPublisher, logger *log.Logger) *ReconcileService {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &ReconcileService{
		contacts: contacts,
		txns:     txns,
		events:   events,
		logger:   logger.WithComponent(log.ComponentReconcile),
	}
}

// Contacts fetches and normalizes the full CRM contact collection.
// The catalog request and the pagination loop are independent, so they
// run concurrently; pagination itself stays strictly sequential.
func (s *ReconcileService) Contacts(ctx context.Context) ([]core.NormalizedContact, error) {
	var (
		raw     []core.RawContact
		catalog map[string]core.FieldDefinition
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		raw, err = s.contacts.FetchAllContacts(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		catalog, err = s.contacts.FetchCustomFields(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.logger.DebugContext(ctx, "Fetched CRM data",
		log.FieldContactCount, len(raw),
		log.FieldFieldCount, len(catalog))

	return core.Normalize(raw, catalog), nil
}

// Reconcile runs the full pipeline and returns the per-identity
// summaries in first-match order.
func (s *ReconcileService) Reconcile(ctx context.Context) ([]core.ReconciledSummary, error) {
	start := time.Now()

	contacts, err := s.Contacts(ctx)
	if err != nil {
		return nil, err
	}

	txns, err := s.txns.ListTransactions(ctx)
	if err != nil {
		return nil, err
	}

	set := core.Reconcile(contacts, txns)
	summaries, err := set.Aggregate()
	if err != nil {
		return nil, err
	}

	duration := time.Since(start)
	s.logger.InfoContext(ctx, "Reconciliation completed",
		log.FieldContactCount, len(contacts),
		log.FieldTxnCount, len(txns),
		log.FieldEntryCount, len(summaries),
		log.FieldDuration, duration.Milliseconds())

	s.publishCompleted(ctx, summaries, duration)

	return summaries, nil
}

// publishCompleted emits the completion event when a publisher is
// configured. Failures are logged and swallowed: the result has
// already been computed and belongs to the caller.
func (s *ReconcileService) publishCompleted(ctx context.Context, summaries []core.ReconciledSummary, duration time.Duration) {
	if s.events == nil {
		return
	}
	var total float64
	for _, sum := range summaries {
		total += sum.TotalAmount
	}
	if err := s.events.PublishReconciliationCompleted(ctx, len(summaries), total, duration); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish reconciliation event", log.FieldError, err)
	}
}
