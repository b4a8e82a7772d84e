package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
	FieldOperation  = "operation"
	FieldUserID     = "user_id"
	FieldTxnID      = "transaction_id"
	FieldCategory   = "category"
	FieldAmount     = "amount"
	FieldFilter     = "filter"
	FieldBackend    = "backend"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentStore   = "store"
	ComponentRecords = "records"
	ComponentEvents  = "events"
	ComponentSession = "session"
	ComponentBackend = "backend"
)

// Operations defines standard operation names
const (
	OpFetch    = "fetch"
	OpAdd      = "add"
	OpEdit     = "edit"
	OpDelete   = "delete"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)
