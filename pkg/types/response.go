package types

// RequestIDHeader carries the request id on both the request and the response.
const RequestIDHeader = "X-Request-Id"

// SuccessEnvelope wraps every 2xx body, including cart results that carry a rejection notice.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorEnvelope wraps every non-2xx body. RequestID lets a storefront report the failing
// call so it can be matched with the server log line.
type ErrorEnvelope struct {
	Error     APIError `json:"error"`
	RequestID string   `json:"request_id,omitempty"`
}
