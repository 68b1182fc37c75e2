package core

import "strings"

// Custom-field names the reconciler reads from the "General" group.
const (
	generalGroup       = "General"
	businessNameField  = "Business Legal Name"
	matchKeyEmailField = "MySQL User-Email"
	ownerNameField     = "Name"
)

// ReconciledEntry groups one resolved identity with every transaction
// matched to it. Metadata is frozen from the first contact observed
// for the match key; later contacts sharing the key add transactions
// only.
type ReconciledEntry struct {
	MatchKey     string        `json:"matchKey"`
	ContactEmail string        `json:"originalContactEmail"`
	ContactName  string        `json:"contactName"`
	BusinessName string        `json:"businessName"`
	OwnerName    string        `json:"ownerName,omitempty"`
	Transactions []Transaction `json:"transactions"`
}

// ReconciledSet is the reconciliation accumulator: entries addressable
// by match key, with first-insertion order preserved so downstream
// output stays deterministic. Built fresh per request, never shared.
type ReconciledSet struct {
	entries map[string]*ReconciledEntry
	order   []string
}

// Len returns the number of distinct match keys with at least one
// matched transaction.
func (s *ReconciledSet) Len() int { return len(s.order) }

// Get returns the entry for a match key, or nil.
func (s *ReconciledSet) Get(key string) *ReconciledEntry { return s.entries[key] }

// Keys returns the match keys in first-insertion order.
func (s *ReconciledSet) Keys() []string { return s.order }

func (s *ReconciledSet) add(key string, meta ReconciledEntry, matched []Transaction) {
	e, ok := s.entries[key]
	if !ok {
		e = &meta
		s.entries[key] = e
		s.order = append(s.order, key)
	}
	e.Transactions = append(e.Transactions, matched...)
}

// Reconcile matches every normalized contact against the transaction
// rows and accumulates matches per resolved match key.
//
// A contact participates only when it carries a business legal name
// and resolves a usable match key (the CRM-supplied "MySQL User-Email"
// field, falling back to the contact's own email; empty or "N/A"
// disqualifies). A transaction matches when its merchant name,
// lower-cased, is contained in the lower-cased business name. One
// merchant may match several contacts and vice versa.
func Reconcile(contacts []NormalizedContact, txns []Transaction) *ReconciledSet {
	set := &ReconciledSet{entries: make(map[string]*ReconciledEntry)}

	for _, c := range contacts {
		general := c.CustomFields[generalGroup]
		businessName := general[businessNameField]
		if businessName == "" {
			continue
		}

		matchKey := general[matchKeyEmailField]
		if matchKey == "" {
			matchKey = c.Email
		}
		if matchKey == "" || matchKey == notAvailable {
			continue
		}

		businessLower := strings.ToLower(businessName)
		var matched []Transaction
		for _, t := range txns {
			if strings.Contains(businessLower, strings.ToLower(t.MerchantName)) {
				matched = append(matched, t)
			}
		}
		if len(matched) == 0 {
			continue
		}

		set.add(matchKey, ReconciledEntry{
			MatchKey:     matchKey,
			ContactEmail: c.Email,
			ContactName:  c.Name,
			BusinessName: businessName,
			OwnerName:    firstOwnerName(c.Owners),
		}, matched)
	}

	return set
}

func firstOwnerName(owners []map[string]string) string {
	if len(owners) == 0 {
		return ""
	}
	return owners[0][ownerNameField]
}
