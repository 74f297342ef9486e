package log

// Canonical field name constants for structured logging.
const (
	// Identity fields
	FieldCollection = "collection"
	FieldProductID  = "product_id"
	FieldProduct    = "product"

	// Process fields
	FieldEvent     = "event"
	FieldComponent = "component"
	FieldAttempt   = "attempt"

	// Transfer fields
	FieldURL   = "url"
	FieldPath  = "path"
	FieldBytes = "bytes"
)
