package allegrodomain

// ErrorResponse is the error body returned by the Allegro REST API
type ErrorResponse struct {
	Errors []ErrorDetails `json:"errors"`
}

type ErrorDetails struct {
	Code        string `json:"code"`
	Message     string `json:"message"`
	Details     string `json:"details,omitempty"`
	Path        string `json:"path,omitempty"`
	UserMessage string `json:"userMessage,omitempty"`
}

// FirstMessage returns the most user friendly message of the first error.
func (e *ErrorResponse) FirstMessage() string {
	if e == nil || len(e.Errors) == 0 {
		return ""
	}
	if e.Errors[0].UserMessage != "" {
		return e.Errors[0].UserMessage
	}
	return e.Errors[0].Message
}
