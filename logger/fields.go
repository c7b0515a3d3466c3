package logger

// Standard field names for structured logging across fsdefs.
// Use these constants instead of raw strings to keep log keys consistent.
const (
	FieldSession   = "session"
	FieldComponent = "component"
	FieldFile      = "file"
	FieldLanguage  = "lang"
	FieldType      = "type"
	FieldField     = "field"
	FieldRef       = "ref"
	FieldCount     = "count"
	FieldError     = "error"

	FieldDurationMS = "duration_ms"
)
