package adapters

import (
	"context"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/toyz/dispatchgen/pkg/dispatchgen"
)

// GinAdapter implements dispatchgen.WebServer for the Gin framework
type GinAdapter struct {
	engine *gin.Engine

	mu     sync.Mutex
	server *http.Server
}

// NewGinAdapter creates a new Gin adapter
func NewGinAdapter(g *gin.Engine) *GinAdapter {
	return &GinAdapter{engine: g}
}

// NewDefaultGinAdapter creates a new Gin adapter with recovery middleware
func NewDefaultGinAdapter() *GinAdapter {
	engine := gin.New()
	engine.Use(gin.Recovery())
	return NewGinAdapter(engine)
}

// RegisterRoute registers a route with the Gin server
func (ga *GinAdapter) RegisterRoute(method, path string, handler dispatchgen.HandlerFunc, middlewares ...dispatchgen.MiddlewareFunc) {
	var handlers []gin.HandlerFunc
	for _, middleware := range middlewares {
		handlers = append(handlers, ga.convertMiddleware(middleware))
	}
	handlers = append(handlers, ga.convertHandler(handler))
	ga.engine.Handle(method, path, handlers...)
}

// Use registers a global middleware with the Gin server
func (ga *GinAdapter) Use(middleware dispatchgen.MiddlewareFunc) {
	ga.engine.Use(ga.convertMiddleware(middleware))
}

// Start serves the engine on addr until Stop is called
func (ga *GinAdapter) Start(addr string) error {
	ga.mu.Lock()
	if ga.server == nil {
		ga.server = &http.Server{Addr: addr, Handler: ga.engine}
	}
	server := ga.server
	ga.mu.Unlock()

	return server.ListenAndServe()
}

// Stop gracefully shuts the server down. Gin has no shutdown of its own, so
// the engine is served through an http.Server.
func (ga *GinAdapter) Stop(ctx context.Context) error {
	ga.mu.Lock()
	if ga.server == nil {
		ga.server = &http.Server{Handler: ga.engine}
	}
	server := ga.server
	ga.mu.Unlock()

	return server.Shutdown(ctx)
}

// Name returns the adapter name
func (ga *GinAdapter) Name() string {
	return "Gin"
}

// GetEngine returns the underlying Gin engine
func (ga *GinAdapter) GetEngine() *gin.Engine {
	return ga.engine
}

// convertHandler converts dispatchgen.HandlerFunc to gin.HandlerFunc
func (ga *GinAdapter) convertHandler(handler dispatchgen.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := handler(&GinRequestContext{ctx: c}); err != nil {
			code, body := dispatchgen.StatusOf(err)
			c.AbortWithStatusJSON(code, body)
		}
	}
}

// convertMiddleware converts dispatchgen.MiddlewareFunc to gin.HandlerFunc
func (ga *GinAdapter) convertMiddleware(middleware dispatchgen.MiddlewareFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		// The rest of the chain reports its errors itself
		next := func(dispatchgen.RequestContext) error {
			c.Next()
			return nil
		}

		if err := middleware(next)(&GinRequestContext{ctx: c}); err != nil && !c.Writer.Written() {
			code, body := dispatchgen.StatusOf(err)
			c.AbortWithStatusJSON(code, body)
		}
	}
}

// GinRequestContext implements dispatchgen.RequestContext for Gin
type GinRequestContext struct {
	ctx *gin.Context
}

// Context returns the request context
func (grc *GinRequestContext) Context() context.Context {
	return grc.ctx.Request.Context()
}

// Method returns the HTTP method
func (grc *GinRequestContext) Method() string {
	return grc.ctx.Request.Method
}

// Path returns the request path
func (grc *GinRequestContext) Path() string {
	return grc.ctx.Request.URL.Path
}

// RealIP returns the real IP address
func (grc *GinRequestContext) RealIP() string {
	return grc.ctx.ClientIP()
}

// QueryParam returns a query parameter
func (grc *GinRequestContext) QueryParam(name string) string {
	return grc.ctx.Query(name)
}

// Header returns a request header
func (grc *GinRequestContext) Header(key string) string {
	return grc.ctx.GetHeader(key)
}

// ContentType returns the request content type
func (grc *GinRequestContext) ContentType() string {
	return grc.ctx.GetHeader("Content-Type")
}

// Body reads at most limit bytes of the request body
func (grc *GinRequestContext) Body(limit int64) ([]byte, error) {
	return dispatchgen.ReadBody(grc.ctx.Request.Body, limit)
}

// Get returns a value from context
func (grc *GinRequestContext) Get(key string) interface{} {
	value, _ := grc.ctx.Get(key)
	return value
}

// Set sets a value in context
func (grc *GinRequestContext) Set(key string, val interface{}) {
	grc.ctx.Set(key, val)
}

// SetHeader sets a response header
func (grc *GinRequestContext) SetHeader(key, value string) {
	grc.ctx.Header(key, value)
}

// JSON writes a JSON response
func (grc *GinRequestContext) JSON(code int, i interface{}) error {
	grc.ctx.JSON(code, i)
	return nil
}

// String writes a plain text response
func (grc *GinRequestContext) String(code int, s string) error {
	grc.ctx.String(code, "%s", s)
	return nil
}

// Blob writes a raw response
func (grc *GinRequestContext) Blob(code int, contentType string, b []byte) error {
	grc.ctx.Data(code, contentType, b)
	return nil
}
