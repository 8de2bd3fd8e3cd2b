package transport

// ErrorResponse is the error wire shape: a human message, a machine code,
// and optional per-field validation detail.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Code    string            `json:"code,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

// SuccessResponse acknowledges a mutation with no payload.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// NewError builds an error response body.
func NewError(code, message string, details map[string]string) ErrorResponse {
	return ErrorResponse{
		Error:   message,
		Code:    code,
		Details: details,
	}
}

// OK is the canonical success acknowledgement.
var OK = SuccessResponse{Success: true}
