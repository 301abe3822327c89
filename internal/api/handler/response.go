package handler

// envelope is the uniform success/failure response body. Every endpoint
// returns it so clients can branch on success before touching data.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func ok(message string, data any) envelope {
	return envelope{Success: true, Message: message, Data: data}
}
