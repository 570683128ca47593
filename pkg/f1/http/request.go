package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

const maxBodySize = 1 << 20

// Request wraps an incoming *http.Request.
type Request struct {
	req *http.Request
}

// NewRequest wraps r.
func NewRequest(r *http.Request) *Request {
	return &Request{req: r}
}

// Context returns the request context.
func (r *Request) Context() context.Context {
	return r.req.Context()
}

// Param returns the first value of a query parameter.
func (r *Request) Param(key string) string {
	return r.req.URL.Query().Get(key)
}

// Params returns every value of a query parameter. Both repeated keys and comma separated lists are
// accepted; blanks are dropped.
func (r *Request) Params(key string) []string {
	var out []string

	for _, v := range r.req.URL.Query()[key] {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}

	return out
}

// PathParam returns a chi URL parameter.
func (r *Request) PathParam(key string) string {
	return chi.URLParam(r.req, key)
}

// IntPathParam parses a positive integer URL parameter.
func (r *Request) IntPathParam(key string) (int64, error) {
	v, err := strconv.ParseInt(r.PathParam(key), 10, 64)
	if err != nil || v <= 0 {
		return 0, ErrorInvalidParam{Params: []string{key}}
	}

	return v, nil
}

// IntParam parses an optional integer query parameter. A missing parameter yields def.
func (r *Request) IntParam(key string, def int) (int, error) {
	raw := r.Param(key)
	if raw == "" {
		return def, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, ErrorInvalidParam{Params: []string{key}}
	}

	return v, nil
}

// Bind decodes the JSON body into i.
func (r *Request) Bind(i any) error {
	dec := json.NewDecoder(io.LimitReader(r.req.Body, maxBodySize))

	if err := dec.Decode(i); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrorMissingBody{}
		}

		return ErrorInvalidBody{Cause: err}
	}

	return nil
}

// HostName returns the host the request was sent to.
func (r *Request) HostName() string {
	proto := r.req.Header.Get("X-Forwarded-Proto")
	if proto == "" {
		proto = "http"
	}

	return proto + "://" + r.req.Host
}
