package middleware

import (
	"net/http"
	"strings"
)

const (
	allowOrigin  = "Access-Control-Allow-Origin"
	allowHeaders = "Access-Control-Allow-Headers"
	allowMethods = "Access-Control-Allow-Methods"
)

// CORS adds the Access-Control headers, letting a browser front end call the API. Values in
// headers override the defaults. Preflight requests are answered directly.
func CORS(headers map[string]string) func(inner http.Handler) http.Handler {
	defaults := map[string]string{
		allowOrigin:  "*",
		allowHeaders: strings.Join([]string{"Authorization", "Content-Type", "x-requested-with", "origin", "true-client-ip", RequestIDHeader}, ", "),
		allowMethods: strings.Join([]string{http.MethodGet, http.MethodPost, http.MethodOptions}, ", "),
	}

	for k, v := range headers {
		if v != "" {
			defaults[k] = v
		}
	}

	return func(inner http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for k, v := range defaults {
				w.Header().Set(k, v)
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			inner.ServeHTTP(w, r)
		})
	}
}
