package adapters

import (
	"context"
	"net/http"
	"sync/atomic"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/toyz/dispatchgen/pkg/dispatchgen"
)

// EchoAdapter implements dispatchgen.WebServer for Echo v4
type EchoAdapter struct {
	engine  *echo.Echo
	stopped atomic.Bool
}

// NewEchoAdapter creates a new Echo adapter
func NewEchoAdapter(e *echo.Echo) *EchoAdapter {
	e.HTTPErrorHandler = echoErrorHandler(e.HTTPErrorHandler)
	return &EchoAdapter{engine: e}
}

// NewDefaultEchoAdapter creates a new Echo adapter with recovery middleware
func NewDefaultEchoAdapter() *EchoAdapter {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	return NewEchoAdapter(e)
}

// echoErrorHandler renders dispatchgen errors and leaves the rest to Echo
func echoErrorHandler(fallback echo.HTTPErrorHandler) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if _, ok := err.(*echo.HTTPError); ok || c.Response().Committed {
			fallback(err, c)
			return
		}
		code, body := dispatchgen.StatusOf(err)
		_ = c.JSON(code, body)
	}
}

// RegisterRoute registers a route with the Echo server
func (ea *EchoAdapter) RegisterRoute(method, path string, handler dispatchgen.HandlerFunc, middlewares ...dispatchgen.MiddlewareFunc) {
	echoMiddlewares := make([]echo.MiddlewareFunc, len(middlewares))
	for i, mw := range middlewares {
		echoMiddlewares[i] = ea.convertMiddleware(mw)
	}
	ea.engine.Add(method, path, ea.convertHandler(handler), echoMiddlewares...)
}

// Use adds global middleware
func (ea *EchoAdapter) Use(middleware dispatchgen.MiddlewareFunc) {
	ea.engine.Use(ea.convertMiddleware(middleware))
}

// Start starts the server
func (ea *EchoAdapter) Start(addr string) error {
	if ea.stopped.Load() {
		return http.ErrServerClosed
	}
	return ea.engine.Start(addr)
}

// Stop stops the server
func (ea *EchoAdapter) Stop(ctx context.Context) error {
	ea.stopped.Store(true)
	return ea.engine.Shutdown(ctx)
}

// Name returns the adapter name
func (ea *EchoAdapter) Name() string {
	return "Echo"
}

// GetEngine returns the underlying Echo instance
func (ea *EchoAdapter) GetEngine() *echo.Echo {
	return ea.engine
}

// convertHandler converts dispatchgen.HandlerFunc to echo.HandlerFunc
func (ea *EchoAdapter) convertHandler(handler dispatchgen.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		return handler(&EchoRequestContext{context: c})
	}
}

// convertMiddleware converts dispatchgen.MiddlewareFunc to echo.MiddlewareFunc
func (ea *EchoAdapter) convertMiddleware(mw dispatchgen.MiddlewareFunc) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			wrapped := mw(func(dispatchgen.RequestContext) error {
				return next(c)
			})
			return wrapped(&EchoRequestContext{context: c})
		}
	}
}

// EchoRequestContext implements dispatchgen.RequestContext for Echo
type EchoRequestContext struct {
	context echo.Context
}

// Context returns the request context
func (erc *EchoRequestContext) Context() context.Context {
	return erc.context.Request().Context()
}

// Method returns the HTTP method
func (erc *EchoRequestContext) Method() string {
	return erc.context.Request().Method
}

// Path returns the request path
func (erc *EchoRequestContext) Path() string {
	return erc.context.Request().URL.Path
}

// RealIP returns the real IP address
func (erc *EchoRequestContext) RealIP() string {
	return erc.context.RealIP()
}

// QueryParam returns a query parameter
func (erc *EchoRequestContext) QueryParam(key string) string {
	return erc.context.QueryParam(key)
}

// Header returns a request header
func (erc *EchoRequestContext) Header(key string) string {
	return erc.context.Request().Header.Get(key)
}

// ContentType returns the request content type
func (erc *EchoRequestContext) ContentType() string {
	return erc.context.Request().Header.Get(echo.HeaderContentType)
}

// Body reads at most limit bytes of the request body
func (erc *EchoRequestContext) Body(limit int64) ([]byte, error) {
	return dispatchgen.ReadBody(erc.context.Request().Body, limit)
}

// Get returns a value from context
func (erc *EchoRequestContext) Get(key string) interface{} {
	return erc.context.Get(key)
}

// Set sets a value in context
func (erc *EchoRequestContext) Set(key string, val interface{}) {
	erc.context.Set(key, val)
}

// SetHeader sets a response header
func (erc *EchoRequestContext) SetHeader(key, value string) {
	erc.context.Response().Header().Set(key, value)
}

// JSON writes a JSON response
func (erc *EchoRequestContext) JSON(code int, i interface{}) error {
	return erc.context.JSON(code, i)
}

// String writes a plain text response
func (erc *EchoRequestContext) String(code int, s string) error {
	return erc.context.String(code, s)
}

// Blob writes a raw response
func (erc *EchoRequestContext) Blob(code int, contentType string, b []byte) error {
	return erc.context.Blob(code, contentType, b)
}
