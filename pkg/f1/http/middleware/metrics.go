// Package middleware contains the net/http middlewares wrapped around every dashboard route.
package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

type metrics interface {
	RecordHistogram(ctx context.Context, name string, value float64, labels ...string)
}

// Metrics records the response time of every request in app_http_response.
func Metrics(metrics metrics) func(inner http.Handler) http.Handler {
	return func(inner http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			srw := &StatusResponseWriter{ResponseWriter: w}

			inner.ServeHTTP(srw, r)

			// chi fills the route context while routing, so the pattern is read afterwards
			var path string

			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				path = rctx.RoutePattern()
			}

			if path == "" || path == "/" {
				path = r.URL.Path
			}

			path = strings.TrimSuffix(path, "/")

			metrics.RecordHistogram(context.Background(), "app_http_response", time.Since(start).Seconds(),
				"path", path, "method", r.Method, "status", strconv.Itoa(srw.Status()))
		})
	}
}

// StatusResponseWriter remembers the status code written by the handler.
type StatusResponseWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *StatusResponseWriter) WriteHeader(status int) {
	if w.wroteHeader {
		return
	}

	w.status = status
	w.wroteHeader = true
	w.ResponseWriter.WriteHeader(status)
}

func (w *StatusResponseWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}

	return w.ResponseWriter.Write(b)
}

// Status is the written status, 200 when the handler wrote nothing.
func (w *StatusResponseWriter) Status() int {
	if w.status == 0 {
		return http.StatusOK
	}

	return w.status
}

// Unwrap exposes the underlying writer to http.ResponseController.
func (w *StatusResponseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
