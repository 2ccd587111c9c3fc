package shared

// SuccessResponse is the only success-shaped body the API produces. Failures
// never pass through it -- they go through TranslateError instead.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

type ErrorResponse struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// Success builds the uniform success envelope. The data and message keys are
// included only when set.
func Success(data any, message string) SuccessResponse {
	return SuccessResponse{
		Success: true,
		Data:    data,
		Message: message,
	}
}
