package log

// Common field names for structured logging
const (
	FieldComponent     = "component"
	FieldOperation     = "operation"
	FieldError         = "error"
	FieldRecordID      = "record_id"
	FieldTaskType      = "task_type"
	FieldRecipientType = "recipient_type"
	FieldMinutes       = "minutes"
	FieldWeight        = "emotional_weight"
	FieldVisible       = "visible"
	FieldBackend       = "backend"
	FieldBlobKey       = "blob_key"
	FieldRecordCount   = "record_count"
	FieldRevision      = "revision"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentJournal = "journal"
	ComponentStorage = "storage"
	ComponentBackend = "backend"
)

// Operations defines standard operation names
const (
	OpCreate = "create"
	OpDelete = "delete"
	OpLoad   = "load"
	OpSave   = "save"
)
