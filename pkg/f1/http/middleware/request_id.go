package middleware

import (
	"net/http"

	"github.com/google/uuid"
)

// RequestIDHeader carries the id of a request, generated when the client sends none.
const RequestIDHeader = "X-Request-ID"

// RequestID echoes or creates the X-Request-ID header on both request and response.
func RequestID(inner http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
			r.Header.Set(RequestIDHeader, id)
		}

		w.Header().Set(RequestIDHeader, id)

		inner.ServeHTTP(w, r)
	})
}
