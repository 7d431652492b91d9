package logging

// LogEntry represents a structured log record emitted during optimization runs.
type LogEntry struct {
	// Standard fields
	Time     int64
	Severity Severity
	Message  string
	File     string
	Line     int
	Function string

	// Run-specific fields
	RunID string // Identifier of the optimization run, if any
	Step  int    // Iteration number, -1 when outside the step loop

	// General structured data
	Fields map[string]interface{}
}
