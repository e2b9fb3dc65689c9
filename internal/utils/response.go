package utils

// Response is the canonical envelope. Success responses carry a message and
// payload; error responses carry only the error string.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// NewSuccessResponse creates a success Response instance.
func NewSuccessResponse(message string, data interface{}) Response {
	return Response{
		Success: true,
		Message: message,
		Data:    data,
	}
}

// NewErrorResponse creates an error Response instance.
func NewErrorResponse(message string) Response {
	return Response{
		Success: false,
		Error:   message,
	}
}
