package log

// Common field names for structured logging.
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldUserAgent  = "user_agent"
	FieldError      = "error"

	FieldPage         = "page"
	FieldContactCount = "contact_count"
	FieldFieldCount   = "field_count"
	FieldTxnCount     = "transaction_count"
	FieldEntryCount   = "entry_count"
	FieldTotalAmount  = "total_amount"
	FieldMatchKey     = "match_key"
)

// Standard component names.
const (
	ComponentApp       = "app"
	ComponentHTTP      = "http"
	ComponentCRM       = "crm"
	ComponentStorage   = "storage"
	ComponentReconcile = "reconcile"
	ComponentAMQP      = "amqp"
	ComponentRateLimit = "rate_limit"
)
