package logging

import "log/slog"

// Common field names for consistent logging.
const (
	FieldService   = "service"
	FieldSessionID = "session_id"
	FieldIntent    = "intent"
	FieldQuery     = "query"
	FieldResults   = "result_count"
	FieldError     = "error"
)

// Service returns a slog attribute for the service name.
func Service(name string) slog.Attr {
	return slog.String(FieldService, name)
}

// SessionID returns a slog attribute for the chat session ID.
func SessionID(id string) slog.Attr {
	return slog.String(FieldSessionID, id)
}

// Intent returns a slog attribute for the interpreted intent.
func Intent(intent string) slog.Attr {
	return slog.String(FieldIntent, intent)
}

// Query returns a slog attribute for the user's question.
func Query(query string) slog.Attr {
	return slog.String(FieldQuery, query)
}

// Results returns a slog attribute for the matched event count.
func Results(n int) slog.Attr {
	return slog.Int(FieldResults, n)
}

// Error returns a slog attribute for an error.
func Error(err error) slog.Attr {
	return slog.String(FieldError, err.Error())
}
