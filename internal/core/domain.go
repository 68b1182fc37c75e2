package core

const notAvailable = "N/A"

type (
	// FieldDefinition is one entry of the CRM custom-field catalog,
	// resolving an opaque field id to a human name and a display group.
	FieldDefinition struct {
		ID    string
		Name  string
		Group string
	}

	// RawCustomField is a single tagged value on a raw CRM contact.
	RawCustomField struct {
		ID    string `json:"id"`
		Value string `json:"value"`
	}

	// RawContact is a contact exactly as the CRM returns it: flat
	// identity fields plus an ordered list of tagged custom fields.
	RawContact struct {
		ID          string           `json:"id"`
		FirstName   string           `json:"firstName"`
		LastName    string           `json:"lastName"`
		Email       string           `json:"email"`
		Phone       string           `json:"phone"`
		CustomField []RawCustomField `json:"customField"`
	}

	// NormalizedContact is the grouped view of a RawContact. Custom
	// fields are keyed group -> field name -> value; owner fields are
	// split out into positional owner records (index 0 = 1st owner).
	// Owners with no populated fields are dropped, so the slice holds
	// 0, 1 or 2 entries.
	NormalizedContact struct {
		ID           string                       `json:"id"`
		Name         string                       `json:"name"`
		Email        string                       `json:"email"`
		Phone        string                       `json:"phone"`
		CustomFields map[string]map[string]string `json:"customFields"`
		Owners       []map[string]string          `json:"owners"`
	}

	// Transaction is one row of the transactions table. Amount stays a
	// decimal string until aggregation parses it.
	Transaction struct {
		ID            int64  `json:"id"`
		MerchantName  string `json:"merchantName"`
		Amount        string `json:"amount"`
		OriginateDate string `json:"originateDate"`
		CurrentStatus string `json:"currentStatus"`
		TransactionID string `json:"transactionId"`
		Notes         string `json:"notes"`
	}
)
