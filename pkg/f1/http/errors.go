package http

import (
	"fmt"
	"net/http"
	"strings"
)

// ErrorInvalidParam is returned when a path or query parameter cannot be parsed.
type ErrorInvalidParam struct {
	Params []string
}

func (e ErrorInvalidParam) Error() string {
	return fmt.Sprintf("'%d' invalid parameter(s): %s", len(e.Params), strings.Join(e.Params, ", "))
}

func (ErrorInvalidParam) StatusCode() int { return http.StatusBadRequest }

// ErrorMissingBody is returned when a write request has no body.
type ErrorMissingBody struct{}

func (ErrorMissingBody) Error() string   { return "request body is required" }
func (ErrorMissingBody) StatusCode() int { return http.StatusBadRequest }

// ErrorInvalidBody is returned when the body is not the expected JSON.
type ErrorInvalidBody struct {
	Cause error
}

func (e ErrorInvalidBody) Error() string { return "invalid request body: " + e.Cause.Error() }
func (e ErrorInvalidBody) Unwrap() error { return e.Cause }
func (ErrorInvalidBody) StatusCode() int { return http.StatusBadRequest }

// ErrorInvalidRoute is returned for paths no route matches.
type ErrorInvalidRoute struct{}

func (ErrorInvalidRoute) Error() string   { return "route not registered" }
func (ErrorInvalidRoute) StatusCode() int { return http.StatusNotFound }

// ErrorRequestTimeout is returned when a handler outlives REQUEST_TIMEOUT.
type ErrorRequestTimeout struct{}

func (ErrorRequestTimeout) Error() string   { return "request timed out" }
func (ErrorRequestTimeout) StatusCode() int { return http.StatusRequestTimeout }

// ErrorPanicRecovery is returned when a handler panics.
type ErrorPanicRecovery struct{}

func (ErrorPanicRecovery) Error() string   { return http.StatusText(http.StatusInternalServerError) }
func (ErrorPanicRecovery) StatusCode() int { return http.StatusInternalServerError }
