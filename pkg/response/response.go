// Package response defines the envelope returned by every endpoint.
// Clients branch on the status field alone; field names and the status
// representation are identical on success and error paths.
package response

// Envelope is the uniform success/error wrapper for all API responses.
// Status is always serialized, even when Data is absent.
type Envelope struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// Success creates an envelope for a successful outcome.
func Success(message string, data any) Envelope {
	return Envelope{
		Status:  true,
		Message: message,
		Data:    data,
	}
}

// Error creates an envelope for a failed outcome. details is optional
// structured context, e.g. the validator's field/reason map.
func Error(message string, details any) Envelope {
	return Envelope{
		Status:  false,
		Message: message,
		Data:    details,
	}
}
