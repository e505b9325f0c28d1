package logging

// Shared structured log field names. Keep these stable: operators filter
// on them.
const (
	FieldComponent = "component"
	FieldEventType = "event_type"
	FieldErrorHint = "error_hint"
	FieldSessionID = "session_id"
)
