package core

import "strconv"

// ReconciledSummary is one reconciled identity with its transaction
// totals, as served to the caller.
type ReconciledSummary struct {
	MatchKey          string        `json:"matchKey"`
	ContactEmail      string        `json:"originalContactEmail"`
	ContactName       string        `json:"contactName"`
	BusinessName      string        `json:"businessName"`
	OwnerName         string        `json:"ownerName,omitempty"`
	Transactions      []Transaction `json:"transactions"`
	TotalTransactions int           `json:"totalTransactions"`
	TotalAmount       float64       `json:"totalAmount"`
}

// Aggregate computes per-entry transaction counts and amount totals,
// in the set's first-insertion order. It does not re-validate
// matching. An amount that fails to parse as a decimal aborts the
// whole aggregation with a *ConversionError; rows are stored as
// decimal strings and a row that cannot be summed means the table
// itself is bad.
func (s *ReconciledSet) Aggregate() ([]ReconciledSummary, error) {
	out := make([]ReconciledSummary, 0, len(s.order))
	for _, key := range s.order {
		e := s.entries[key]
		var total float64
		for _, t := range e.Transactions {
			amt, err := ParseAmount(t.Amount)
			if err != nil {
				return nil, err
			}
			total += amt
		}
		out = append(out, ReconciledSummary{
			MatchKey:          e.MatchKey,
			ContactEmail:      e.ContactEmail,
			ContactName:       e.ContactName,
			BusinessName:      e.BusinessName,
			OwnerName:         e.OwnerName,
			Transactions:      e.Transactions,
			TotalTransactions: len(e.Transactions),
			TotalAmount:       total,
		})
	}
	return out, nil
}

// ParseAmount parses a stored decimal amount string.
func ParseAmount(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &ConversionError{Value: s, Err: err}
	}
	return v, nil
}
