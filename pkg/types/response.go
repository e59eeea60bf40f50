// Package types holds wire shapes shared across API surfaces.
package types

// SuccessEnvelope wraps every successful JSON response body. Clients read
// the payload from the data key regardless of endpoint.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// APIError is the client-facing error shape. Code is a stable machine
// string; Message is safe to display.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorEnvelope wraps every error response body.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
