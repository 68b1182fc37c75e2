package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"ledgerlink/internal/core"
)

type fakeContacts struct {
	contacts []core.RawContact
	catalog  map[string]core.FieldDefinition
	err      error
}

func (f fakeContacts) FetchAllContacts(ctx context.Context) ([]core.RawContact, error) {
	return f.contacts, f.err
}

func (f fakeContacts) FetchCustomFields(ctx context.Context) (map[string]core.FieldDefinition, error) {
	return f.catalog, f.err
}

type fakeTxns struct {
	txns []core.Transaction
	err  error
}

func (f fakeTxns) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	return f.txns, f.err
}

type capturedEvent struct {
	entryCount  int
	totalAmount float64
}

type fakePublisher struct {
	events []capturedEvent
	err    error
}

func (f *fakePublisher) PublishReconciliationCompleted(ctx context.Context, entryCount int, totalAmount float64, duration time.Duration) error {
	f.events = append(f.events, capturedEvent{entryCount, totalAmount})
	return f.err
}

func demoSources() (fakeContacts, fakeTxns) {
	contacts := fakeContacts{
		contacts: []core.RawContact{{
			ID:        "c1",
			FirstName: "Jane",
			Email:     "jane@x.com",
			CustomField: []core.RawCustomField{
				{ID: "f1", Value: "Acme Roofing LLC"},
			},
		}},
		catalog: map[string]core.FieldDefinition{
			"f1": {ID: "f1", Name: "Business Legal Name", Group: "General"},
		},
	}
	txns := fakeTxns{txns: []core.Transaction{
		{ID: 1, MerchantName: "acme roofing", Amount: "10.50"},
		{ID: 2, MerchantName: "acme", Amount: "5"},
		{ID: 3, MerchantName: "unrelated", Amount: "99"},
	}}
	return contacts, txns
}

func TestReconcileEndToEnd(t *testing.T) {
	contacts, txns := demoSources()
	pub := &fakePublisher{}
	svc := NewReconcileService(contacts, txns, pub, nil)

	sums, err := svc.Reconcile(context.Background())
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if len(sums) != 1 {
		t.Fatalf("expected 1 summary, got %d", len(sums))
	}
	s := sums[0]
	if s.MatchKey != "jane@x.com" || s.TotalTransactions != 2 || s.TotalAmount != 15.5 {
		t.Fatalf("summary = %+v", s)
	}

	if len(pub.events) != 1 {
		t.Fatalf("expected 1 published event, got %d", len(pub.events))
	}
	if pub.events[0].entryCount != 1 || pub.events[0].totalAmount != 15.5 {
		t.Fatalf("event = %+v", pub.events[0])
	}
}

func TestReconcileEmptyContacts(t *testing.T) {
	_, txns := demoSources()
	svc := NewReconcileService(fakeContacts{catalog: map[string]core.FieldDefinition{}}, txns, nil, nil)

	sums, err := svc.Reconcile(context.Background())
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if len(sums) != 0 {
		t.Fatalf("expected empty result, got %d", len(sums))
	}
}

func TestReconcileUpstreamFailurePropagates(t *testing.T) {
	upstream := &core.UpstreamError{Op: "fetch contacts page 1", Err: errors.New("boom")}
	svc := NewReconcileService(fakeContacts{err: upstream}, fakeTxns{}, nil, nil)

	_, err := svc.Reconcile(context.Background())
	var ue *core.UpstreamError
	if !errors.As(err, &ue) {
		t.Fatalf("expected upstream error, got %v", err)
	}
}

func TestReconcileStorageFailurePropagates(t *testing.T) {
	contacts, _ := demoSources()
	svc := NewReconcileService(contacts, fakeTxns{err: &core.StorageError{Err: errors.New("locked")}}, nil, nil)

	_, err := svc.Reconcile(context.Background())
	var se *core.StorageError
	if !errors.As(err, &se) {
		t.Fatalf("expected storage error, got %v", err)
	}
}

func TestReconcilePublishFailureDoesNotFailRequest(t *testing.T) {
	contacts, txns := demoSources()
	pub := &fakePublisher{err: errors.New("broker down")}
	svc := NewReconcileService(contacts, txns, pub, nil)

	if _, err := svc.Reconcile(context.Background()); err != nil {
		t.Fatalf("publish failure must not fail reconciliation: %v", err)
	}
}

func TestContactsNormalizes(t *testing.T) {
	contacts, _ := demoSources()
	svc := NewReconcileService(contacts, fakeTxns{}, nil, nil)

	got, err := svc.Contacts(context.Background())
	if err != nil {
		t.Fatalf("contacts: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Jane" {
		t.Fatalf("contacts = %+v", got)
	}
	if got[0].CustomFields["General"]["Business Legal Name"] != "Acme Roofing LLC" {
		t.Fatalf("custom fields = %v", got[0].CustomFields)
	}
}
