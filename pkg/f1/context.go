package f1

import (
	"context"

	pkghttp "github.com/Takshak-CS/F1-Database-Analytics/pkg/f1/http"
	"github.com/Takshak-CS/F1-Database-Analytics/pkg/f1/infra"
	"github.com/Takshak-CS/F1-Database-Analytics/pkg/f1/logging"
)

// Context is what every handler receives. Logging methods carry the request's trace id.
type Context struct {
	context.Context

	Request *pkghttp.Request

	*infra.Container
	*logging.ContextLogger
}

func newContext(ctx context.Context, r *pkghttp.Request, c *infra.Container) *Context {
	return &Context{
		Context:       ctx,
		Request:       r,
		Container:     c,
		ContextLogger: logging.NewContextLogger(ctx, c.Logger),
	}
}

// Param returns the first query parameter named key.
func (c *Context) Param(key string) string {
	return c.Request.Param(key)
}

// PathParam returns the path segment bound to key.
func (c *Context) PathParam(key string) string {
	return c.Request.PathParam(key)
}

// Bind decodes the JSON body into i.
func (c *Context) Bind(i any) error {
	return c.Request.Bind(i)
}
