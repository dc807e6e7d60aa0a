package payload

import "time"

// ErrorDetails is the body of every error response.
type ErrorDetails struct {
	Timestamp time.Time   `json:"timestamp"`
	Message   string      `json:"message"`
	Details   string      `json:"details"`
	Fields    FieldErrors `json:"fields,omitempty"`
}

// NewErrorDetails describes a failure of the request made to path.
func NewErrorDetails(message, path string) ErrorDetails {
	return ErrorDetails{
		Timestamp: time.Now().UTC(),
		Message:   message,
		Details:   "uri=" + path,
	}
}

// Message is the body of responses that only confirm an action.
type Message struct {
	Message string `json:"message"`
}
