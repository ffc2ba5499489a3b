package dto

// ErrorResponse is the single error envelope used by every endpoint.
type ErrorResponse struct {
	Error string `json:"error"`
}
