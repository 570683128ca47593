// Package response holds the envelopes a handler may return instead of plain data.
package response

import (
	"net/http"
)

// Response carries data plus metadata such as filters and row counts.
type Response struct {
	Data    any               `json:"data"`
	Meta    map[string]any    `json:"meta,omitempty"`
	Headers map[string]string `json:"-"`
}

// SetCustomHeaders copies Headers onto w.
func (resp Response) SetCustomHeaders(w http.ResponseWriter) {
	for key, value := range resp.Headers {
		w.Header().Set(key, value)
	}
}

// Raw is written as-is, without the {code, data, message} envelope.
type Raw struct {
	Data any

	// StatusCode overrides the default success status when it is a valid HTTP status.
	StatusCode int
}
