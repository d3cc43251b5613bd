package logging

// LogEntry represents a structured log record with fields relevant to
// optimization runs.
type LogEntry struct {
	// Standard fields
	Time     int64
	Severity Severity
	Message  string
	File     string
	Line     int
	Function string

	// Optimizer-specific fields
	RunID      string // Identifier of the optimization run
	Generation int    // Generation counter, -1 when not inside the GA loop

	// General structured data
	Fields map[string]interface{}
}
