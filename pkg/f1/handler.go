package f1

import (
	"context"
	"errors"
	"net/http"
	"runtime/debug"
	"time"

	pkghttp "github.com/Takshak-CS/F1-Database-Analytics/pkg/f1/http"
	"github.com/Takshak-CS/F1-Database-Analytics/pkg/f1/infra"
)

// Handler serves one route. The returned value becomes the data field of the response envelope.
type Handler func(c *Context) (any, error)

type handler struct {
	function       Handler
	container      *infra.Container
	requestTimeout time.Duration
}

type handlerResult struct {
	data any
	err  error
}

func (h handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	reqCtx := r.Context()

	if h.requestTimeout > 0 {
		var cancel context.CancelFunc

		reqCtx, cancel = context.WithTimeout(reqCtx, h.requestTimeout)
		defer cancel()
	}

	c := newContext(reqCtx, pkghttp.NewRequest(r.WithContext(reqCtx)), h.container)

	// buffered so a handler finishing after the timeout does not leak
	done := make(chan handlerResult, 1)

	go func() {
		defer func() {
			if re := recover(); re != nil {
				c.Errorf("panic recovered in %s %s: %v\n%s", r.Method, r.URL.Path, re, debug.Stack())
				done <- handlerResult{err: pkghttp.ErrorPanicRecovery{}}
			}
		}()

		data, err := h.function(c)
		done <- handlerResult{data: data, err: err}
	}()

	var res handlerResult

	select {
	case <-reqCtx.Done():
		if errors.Is(reqCtx.Err(), context.DeadlineExceeded) {
			res.err = pkghttp.ErrorRequestTimeout{}
		} else {
			res.err = reqCtx.Err()
		}
	case res = <-done:
	}

	pkghttp.NewResponder(w, r.Method).Respond(res.data, res.err)
}

func healthHandler(c *Context) (any, error) {
	return c.Health(c), nil
}

func catchAllHandler(*Context) (any, error) {
	return nil, pkghttp.ErrorInvalidRoute{}
}
