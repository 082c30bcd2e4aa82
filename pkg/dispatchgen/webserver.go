package dispatchgen

import (
	"context"
	"io"
)

// WebServer is the part of a web framework the playground depends on. The
// adapters package implements it for gin, echo and fiber.
type WebServer interface {
	RegisterRoute(method, path string, handler HandlerFunc, middlewares ...MiddlewareFunc)
	Use(middleware MiddlewareFunc)

	// Start blocks until the server stops. Stop shuts it down gracefully.
	Start(addr string) error
	Stop(ctx context.Context) error

	Name() string
}

// RequestContext is one HTTP exchange as seen by a playground handler
type RequestContext interface {
	Context() context.Context
	Method() string
	Path() string
	RealIP() string
	QueryParam(key string) string
	Header(key string) string
	ContentType() string

	// Body reads the request body. A body longer than limit bytes fails with
	// ErrBodyTooLarge without being read past limit+1 bytes. A limit of zero
	// or less reads the whole body.
	Body(limit int64) ([]byte, error)

	// Get and Set carry values from middleware to handlers, such as the request ID
	Get(key string) interface{}
	Set(key string, val interface{})

	SetHeader(key, value string)
	JSON(code int, i interface{}) error
	String(code int, s string) error
	Blob(code int, contentType string, b []byte) error
}

// HandlerFunc serves a request. A returned *HTTPError selects the status code.
type HandlerFunc func(RequestContext) error

// MiddlewareFunc wraps a handler
type MiddlewareFunc func(HandlerFunc) HandlerFunc

// ReadBody reads r for RequestContext.Body implementations
func ReadBody(r io.Reader, limit int64) ([]byte, error) {
	if limit <= 0 {
		return io.ReadAll(r)
	}
	body, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(body)) > limit {
		return nil, ErrBodyTooLarge
	}
	return body, nil
}
