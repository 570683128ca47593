package middleware

import (
	"fmt"
	"io"
	"net"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"go.opentelemetry.io/otel/trace"
)

type logger interface {
	Log(args ...any)
	Error(args ...any)
}

// RequestLog is written once per request.
type RequestLog struct {
	TraceID      string `json:"trace_id,omitempty"`
	SpanID       string `json:"span_id,omitempty"`
	RequestID    string `json:"request_id,omitempty"`
	StartTime    string `json:"start_time,omitempty"`
	ResponseTime int64  `json:"response_time,omitempty"`
	Method       string `json:"method,omitempty"`
	UserAgent    string `json:"user_agent,omitempty"`
	IP           string `json:"ip,omitempty"`
	URI          string `json:"uri,omitempty"`
	Response     int    `json:"response,omitempty"`
}

func (rl *RequestLog) PrettyPrint(writer io.Writer) {
	fmt.Fprintf(writer, "\u001B[38;5;8m%s \u001B[38;5;%dm%-6d\u001B[0m %8d\u001B[38;5;8mµs\u001B[0m %s %s \n",
		rl.TraceID, colorForStatusCode(rl.Response), rl.Response, rl.ResponseTime, rl.Method, rl.URI)
}

func colorForStatusCode(status int) int {
	const (
		blue   = 34
		red    = 202
		yellow = 220
	)

	switch {
	case status >= 200 && status < 300:
		return blue
	case status >= 400 && status < 500:
		return yellow
	case status >= 500 && status < 600:
		return red
	}

	return 0
}

type panicLog struct {
	Error      string `json:"error,omitempty"`
	StackTrace string `json:"stack_trace,omitempty"`
}

// Logging logs every request and turns handler panics into a 500 response. Health probes are skipped
// unless logProbes is set.
func Logging(logProbes bool, logger logger) func(inner http.Handler) http.Handler {
	return func(inner http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			srw := &StatusResponseWriter{ResponseWriter: w}

			defer func() {
				if re := recover(); re != nil {
					logger.Error(panicLog{Error: fmt.Sprint(re), StackTrace: string(debug.Stack())})

					srw.Header().Set("Content-Type", "application/json")
					srw.WriteHeader(http.StatusInternalServerError)
					_, _ = srw.Write([]byte(`{"code":500,"data":null,"message":"Internal Server Error"}` + "\n"))
				}

				if !logProbes && isHealthProbe(r.URL.Path) {
					return
				}

				spanCtx := trace.SpanFromContext(r.Context()).SpanContext()

				l := &RequestLog{
					RequestID:    srw.Header().Get(RequestIDHeader),
					StartTime:    start.Format("2006-01-02T15:04:05.999999999-07:00"),
					ResponseTime: time.Since(start).Microseconds(),
					Method:       r.Method,
					UserAgent:    r.UserAgent(),
					IP:           clientIP(r),
					URI:          r.RequestURI,
					Response:     srw.Status(),
				}

				if spanCtx.IsValid() {
					l.TraceID = spanCtx.TraceID().String()
					l.SpanID = spanCtx.SpanID().String()
				}

				logger.Log(l)
			}()

			inner.ServeHTTP(srw, r)
		})
	}
}

func isHealthProbe(path string) bool {
	return strings.HasPrefix(path, "/.well-known/")
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		return strings.TrimSpace(first)
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}
