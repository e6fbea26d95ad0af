package log

// FieldComponent keys the component name attached to every entry.
const FieldComponent = "component"

// Component names for the two binaries.
const (
	ComponentApp    = "app"
	ComponentWorker = "backup_worker"
)
