package dto

// Envelope is the body of every API response.
type Envelope struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Result  any    `json:"result,omitempty"`
	Error   string `json:"error,omitempty"`
}
