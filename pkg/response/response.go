package response

// Envelope is the single response shape every endpoint returns.
// Message is always set; Data and Total only when the endpoint has them.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Total   *int64      `json:"total,omitempty"`
}

// Success wraps data in a successful envelope.
func Success(message string, data interface{}) Envelope {
	return Envelope{
		Success: true,
		Message: message,
		Data:    data,
	}
}

// List wraps a collection together with its total count (pre-pagination).
func List(message string, data interface{}, total int64) Envelope {
	return Envelope{
		Success: true,
		Message: message,
		Data:    data,
		Total:   &total,
	}
}

// Error wraps a failure reason.
func Error(message string) Envelope {
	return Envelope{
		Success: false,
		Message: message,
	}
}
