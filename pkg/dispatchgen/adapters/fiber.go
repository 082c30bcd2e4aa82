package adapters

import (
	"context"
	"net"
	"net/http"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/toyz/dispatchgen/pkg/dispatchgen"
)

// FiberAdapter wraps a Fiber app to implement dispatchgen.WebServer
type FiberAdapter struct {
	app *fiber.App

	mu       sync.Mutex
	listener net.Listener
	stopped  bool
}

// NewFiberAdapter creates a new Fiber adapter instance
func NewFiberAdapter() *FiberAdapter {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(dispatchgen.NewHTTPError(e.Code, e.Message))
			}
			code, body := dispatchgen.StatusOf(err)
			return c.Status(code).JSON(body)
		},
	})

	return &FiberAdapter{app: app}
}

// NewDefaultFiberAdapter creates a new Fiber adapter with recovery middleware
func NewDefaultFiberAdapter() *FiberAdapter {
	adapter := NewFiberAdapter()
	adapter.app.Use(recover.New())
	return adapter
}

// RegisterRoute registers a route with the Fiber app
func (fa *FiberAdapter) RegisterRoute(method, path string, handler dispatchgen.HandlerFunc, middlewares ...dispatchgen.MiddlewareFunc) {
	handlers := make([]fiber.Handler, 0, len(middlewares)+1)
	for _, mw := range middlewares {
		handlers = append(handlers, convertMiddlewareToFiber(mw))
	}
	handlers = append(handlers, convertHandlerToFiber(handler))
	fa.app.Add(method, path, handlers...)
}

// Use adds global middleware
func (fa *FiberAdapter) Use(middleware dispatchgen.MiddlewareFunc) {
	fa.app.Use(convertMiddlewareToFiber(middleware))
}

// Start listens on addr and serves until Stop is called
func (fa *FiberAdapter) Start(addr string) error {
	fa.mu.Lock()
	if fa.stopped {
		fa.mu.Unlock()
		return http.ErrServerClosed
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		fa.mu.Unlock()
		return err
	}
	fa.listener = ln
	fa.mu.Unlock()

	err = fa.app.Listener(ln)

	fa.mu.Lock()
	defer fa.mu.Unlock()
	if fa.stopped {
		return http.ErrServerClosed
	}
	return err
}

// Stop gracefully shuts the app down
func (fa *FiberAdapter) Stop(ctx context.Context) error {
	fa.mu.Lock()
	fa.stopped = true
	ln := fa.listener
	fa.mu.Unlock()

	if ln == nil {
		return nil
	}
	err := fa.app.ShutdownWithContext(ctx)
	_ = ln.Close()
	return err
}

// Name returns the adapter name
func (fa *FiberAdapter) Name() string {
	return "Fiber"
}

// GetApp returns the underlying Fiber app
func (fa *FiberAdapter) GetApp() *fiber.App {
	return fa.app
}

// convertHandlerToFiber converts a dispatchgen handler to a Fiber handler
func convertHandlerToFiber(handler dispatchgen.HandlerFunc) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return handler(&FiberRequestContext{ctx: c})
	}
}

// convertMiddlewareToFiber converts a dispatchgen middleware to a Fiber middleware
func convertMiddlewareToFiber(middleware dispatchgen.MiddlewareFunc) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return middleware(func(dispatchgen.RequestContext) error {
			return c.Next()
		})(&FiberRequestContext{ctx: c})
	}
}

// FiberRequestContext wraps fiber.Ctx to implement dispatchgen.RequestContext
type FiberRequestContext struct {
	ctx *fiber.Ctx
}

// Context returns the request context
func (frc *FiberRequestContext) Context() context.Context {
	return frc.ctx.UserContext()
}

func (frc *FiberRequestContext) Method() string {
	return frc.ctx.Method()
}

func (frc *FiberRequestContext) Path() string {
	return frc.ctx.Path()
}

func (frc *FiberRequestContext) RealIP() string {
	return frc.ctx.IP()
}

func (frc *FiberRequestContext) QueryParam(key string) string {
	return frc.ctx.Query(key)
}

func (frc *FiberRequestContext) Header(key string) string {
	return frc.ctx.Get(key)
}

func (frc *FiberRequestContext) ContentType() string {
	return frc.ctx.Get(fiber.HeaderContentType)
}

// Body returns a copy of the request body; Fiber reuses its buffers. The app
// has already buffered the body within its own BodyLimit.
func (frc *FiberRequestContext) Body(limit int64) ([]byte, error) {
	body := frc.ctx.Body()
	if limit > 0 && int64(len(body)) > limit {
		return nil, dispatchgen.ErrBodyTooLarge
	}
	return append([]byte(nil), body...), nil
}

func (frc *FiberRequestContext) Get(key string) interface{} {
	return frc.ctx.Locals(key)
}

func (frc *FiberRequestContext) Set(key string, val interface{}) {
	frc.ctx.Locals(key, val)
}

func (frc *FiberRequestContext) SetHeader(key, value string) {
	frc.ctx.Set(key, value)
}

func (frc *FiberRequestContext) JSON(code int, i interface{}) error {
	return frc.ctx.Status(code).JSON(i)
}

func (frc *FiberRequestContext) String(code int, s string) error {
	return frc.ctx.Status(code).SendString(s)
}

func (frc *FiberRequestContext) Blob(code int, contentType string, b []byte) error {
	frc.ctx.Set(fiber.HeaderContentType, contentType)
	return frc.ctx.Status(code).Send(b)
}
