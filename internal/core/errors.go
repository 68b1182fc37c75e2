package core

// The pipeline's failure taxonomy. None of these are retried: the
// request handler catches whichever one surfaces and turns it into a
// single {"success":false} response.

// UpstreamError means a CRM request failed or returned malformed
// pagination data.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string { return "crm " + e.Op + ": " + e.Err.Error() }
func (e *UpstreamError) Unwrap() error { return e.Err }

// SchemaError means the custom-field catalog response is not a
// well-formed sequence. Without the catalog no restructuring is
// possible, so this is kept distinct from a plain upstream failure.
type SchemaError struct {
	Err error
}

func (e *SchemaError) Error() string { return "custom-field catalog: " + e.Err.Error() }
func (e *SchemaError) Unwrap() error { return e.Err }

// StorageError means the transactions query could not be executed.
type StorageError struct {
	Err error
}

func (e *StorageError) Error() string { return "transaction store: " + e.Err.Error() }
func (e *StorageError) Unwrap() error { return e.Err }

// ConversionError means a stored transaction amount could not be
// parsed as a number during aggregation.
type ConversionError struct {
	Value string
	Err   error
}

func (e *ConversionError) Error() string { return "parse amount " + e.Value + ": " + e.Err.Error() }
func (e *ConversionError) Unwrap() error { return e.Err }
