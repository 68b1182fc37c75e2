package amqp

import (
	"encoding/json"
	"time"
)

// ReconciliationCompletedEvent summarizes one finished reconciliation
// run. Consumers wanting the full result call the HTTP endpoint; the
// event carries totals only.
type ReconciliationCompletedEvent struct {
	EntryCount  int       `json:"entryCount"`
	TotalAmount float64   `json:"totalAmount"`
	DurationMS  int64     `json:"durationMs"`
	Timestamp   time.Time `json:"timestamp"`
}

func NewReconciliationCompletedEvent(entryCount int, totalAmount float64, duration time.Duration) *ReconciliationCompletedEvent {
	return &ReconciliationCompletedEvent{
		EntryCount:  entryCount,
		TotalAmount: totalAmount,
		DurationMS:  duration.Milliseconds(),
		Timestamp:   time.Now(),
	}
}

func (e *ReconciliationCompletedEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

func ReconciliationCompletedEventFromJSON(data []byte) (*ReconciliationCompletedEvent, error) {
	var e ReconciliationCompletedEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}
