// Package http provides routing, request access and JSON responses for the dashboard API.
package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"

	resTypes "github.com/Takshak-CS/F1-Database-Analytics/pkg/f1/http/response"
)

// NewResponder creates a new Responder instance from the given http.ResponseWriter.
func NewResponder(w http.ResponseWriter, method string) *Responder {
	return &Responder{w: w, method: method}
}

// Responder writes {code, data, message, meta} JSON envelopes.
type Responder struct {
	w      http.ResponseWriter
	method string
}

// Respond writes data, or err when it is not nil. The status comes from the error's StatusCode when it
// has one.
func (r Responder) Respond(data any, err error) {
	var resp any

	switch v := data.(type) {
	case resTypes.Raw:
		resp = v.Data
	case resTypes.Response:
		v.SetCustomHeaders(r.w)
		resp = r.buildResponse(v.Data, v.Meta, err)
	default:
		if isNil(data) {
			data = nil
		}

		resp = r.buildResponse(data, nil, err)
	}

	if r.w.Header().Get("Content-Type") == "" {
		r.w.Header().Set("Content-Type", "application/json")
	}

	jsonData, encodeErr := json.Marshal(resp)
	if encodeErr != nil {
		r.w.WriteHeader(http.StatusInternalServerError)

		_, _ = r.w.Write([]byte(`{"code":-1,"data":null,"message":"failed to encode response as JSON"}` + "\n"))

		return
	}

	r.w.WriteHeader(r.getHTTPStatusCode(data, err))
	_, _ = r.w.Write(jsonData)
	_, _ = r.w.Write([]byte("\n"))
}

func (Responder) buildResponse(data any, meta map[string]any, err error) response {
	if err == nil {
		return response{Code: 0, Data: data, Message: "ok", Meta: meta}
	}

	return response{Code: getErrorCode(err), Data: nil, Message: err.Error(), Meta: meta}
}

func (r Responder) getHTTPStatusCode(data any, err error) int {
	if err == nil {
		if raw, ok := data.(resTypes.Raw); ok && raw.StatusCode >= http.StatusContinue && raw.StatusCode <= 999 {
			return raw.StatusCode
		}

		return handleSuccessStatusCode(r.method, data)
	}

	return StatusCode(err)
}

// StatusCode is the HTTP status for err: its own when it implements StatusCodeResponder, 500 otherwise.
func StatusCode(err error) int {
	var sc StatusCodeResponder
	if errors.As(err, &sc) {
		return sc.StatusCode()
	}

	return http.StatusInternalServerError
}

// getErrorCode returns the business error code.
// Priority: CodeResponder.Code() > StatusCodeResponder.StatusCode() > -1
func getErrorCode(err error) int {
	var cr CodeResponder
	if errors.As(err, &cr) {
		return cr.Code()
	}

	var sc StatusCodeResponder
	if errors.As(err, &sc) {
		return sc.StatusCode()
	}

	return -1
}

func handleSuccessStatusCode(method string, data any) int {
	switch method {
	case http.MethodPost:
		if data != nil {
			return http.StatusCreated
		}

		return http.StatusAccepted
	case http.MethodDelete:
		return http.StatusNoContent
	default:
		return http.StatusOK
	}
}

type response struct {
	Code    int            `json:"code"`
	Data    any            `json:"data"`
	Message string         `json:"message"`
	Meta    map[string]any `json:"meta,omitempty"`
}

// StatusCodeResponder allows errors to specify the HTTP status code.
type StatusCodeResponder interface {
	StatusCode() int
}

// CodeResponder allows errors to specify the business code of the envelope.
// If not implemented, falls back to StatusCodeResponder.StatusCode(), or -1.
type CodeResponder interface {
	Code() int
}

func isNil(i any) bool {
	if i == nil {
		return true
	}

	v := reflect.ValueOf(i)

	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface:
		return v.IsNil()
	default:
		return false
	}
}
