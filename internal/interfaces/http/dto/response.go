package dto

// Response represents the standard success envelope
type Response struct {
	Success bool `json:"success"`
	Data    any  `json:"data,omitempty"`
}

// NewSuccessResponse creates a success response
func NewSuccessResponse(data any) Response {
	return Response{
		Success: true,
		Data:    data,
	}
}
