package dispatchgen

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/toyz/dispatchgen/internal/errors"
	"github.com/toyz/dispatchgen/internal/utils"
)

// Playground routes
const (
	GeneratePath = "/v1/generate"
	MarkerPath   = "/v1/marker"
	HealthPath   = "/v1/healthz"
)

// RequestIDHeader carries the id of a request in both directions
const RequestIDHeader = "X-Request-ID"

// TxtarContentType is the media type of txtar request and response bodies
const TxtarContentType = "text/x-txtar"

// DefaultMaxBodySize limits generate request bodies
const DefaultMaxBodySize = 1 << 20

// RequestOptions are the per-request overrides of the playground options
type RequestOptions struct {
	Namespace        string `json:"namespace,omitempty"`
	MarkerName       string `json:"markerName,omitempty"`
	MarkerVisibility string `json:"markerVisibility,omitempty"`
	DispatcherType   string `json:"dispatcherType,omitempty"`
	DispatchMethod   string `json:"dispatchMethod,omitempty"`
	FunctionPrefix   string `json:"functionPrefix,omitempty"`
	QualifyNames     *bool  `json:"qualifyNames,omitempty"`
	EscapeStrings    *bool  `json:"escapeStrings,omitempty"`
}

// GenerateRequest is the JSON body of a generate request
type GenerateRequest struct {
	AssemblyName string         `json:"assemblyName,omitempty"`
	Sources      []Source       `json:"sources"`
	Options      RequestOptions `json:"options"`
}

// ErrorDetails describes a generation failure in a 422 response
type ErrorDetails struct {
	Code        string   `json:"code"`
	Location    string   `json:"location,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// Playground serves generation over HTTP
type Playground struct {
	defaults    Options
	maxBodySize int64
	diagnostics *utils.DiagnosticSystem
}

// NewPlayground creates a playground whose requests start from defaults
func NewPlayground(defaults Options, diagnostics *utils.DiagnosticSystem) *Playground {
	if diagnostics == nil {
		diagnostics = utils.NewQuietDiagnostics()
	}
	return &Playground{
		defaults:    defaults.WithDefaults(),
		maxBodySize: DefaultMaxBodySize,
		diagnostics: diagnostics,
	}
}

// RegisterRoutes registers the playground routes and middleware on server
func (p *Playground) RegisterRoutes(server WebServer) {
	server.Use(RequestID())
	server.Use(p.logRequests)

	server.RegisterRoute(http.MethodPost, GeneratePath, p.handleGenerate)
	server.RegisterRoute(http.MethodGet, MarkerPath, p.handleMarker)
	server.RegisterRoute(http.MethodGet, HealthPath, p.handleHealth)
}

// RequestID propagates the caller's request id, or assigns a new UUID
func RequestID() MiddlewareFunc {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx RequestContext) error {
			id := ctx.Header(RequestIDHeader)
			if _, err := uuid.Parse(id); err != nil {
				id = uuid.NewString()
			}
			ctx.Set("request_id", id)
			ctx.SetHeader(RequestIDHeader, id)
			return next(ctx)
		}
	}
}

func (p *Playground) logRequests(next HandlerFunc) HandlerFunc {
	return func(ctx RequestContext) error {
		start := time.Now()
		err := next(ctx)
		p.diagnostics.Verbose("%s %s %v (%s)", ctx.Method(), ctx.Path(), ctx.Get("request_id"), time.Since(start).Round(time.Microsecond))
		if err != nil {
			p.diagnostics.Warn("%s %s: %v", ctx.Method(), ctx.Path(), err)
		}
		return err
	}
}

func (p *Playground) handleHealth(ctx RequestContext) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (p *Playground) handleMarker(ctx RequestContext) error {
	opts := p.defaults
	applyQuery(ctx, &opts)

	text, err := MarkerSource(opts)
	if err != nil {
		return p.generationError(err)
	}
	return ctx.Blob(http.StatusOK, "text/plain; charset=utf-8", []byte(text))
}

func (p *Playground) handleGenerate(ctx RequestContext) error {
	body, err := ctx.Body(p.maxBodySize)
	switch {
	case errors.Is(err, ErrBodyTooLarge):
		return NewHTTPError(http.StatusRequestEntityTooLarge, fmt.Sprintf("request body exceeds %d bytes", p.maxBodySize))
	case err != nil:
		return ErrBadRequest("cannot read request body")
	}

	req := GenerateRequest{AssemblyName: ctx.QueryParam("assembly")}
	mediaType, _, _ := mime.ParseMediaType(ctx.ContentType())
	switch mediaType {
	case "application/json":
		if err := json.Unmarshal(body, &req); err != nil {
			return ErrBadRequest(fmt.Sprintf("invalid JSON body: %v", err))
		}
	case TxtarContentType, "text/plain", "":
		req.Sources = ParseArchive(body)
	default:
		return ErrUnsupportedMediaType(mediaType)
	}
	if len(req.Sources) == 0 {
		return ErrBadRequest("no C# sources in request")
	}

	opts := req.Options.apply(p.defaults)
	applyQuery(ctx, &opts)

	out, err := Generate(ctx.Context(), req.AssemblyName, req.Sources, opts)
	if err != nil {
		return p.generationError(err)
	}

	if ctx.QueryParam("format") == "txtar" {
		return ctx.Blob(http.StatusOK, TxtarContentType, FormatArchive(out.Units))
	}
	return ctx.JSON(http.StatusOK, out)
}

func (p *Playground) generationError(err error) error {
	code := errors.CodeOf(err)
	if code == errors.ConfigurationErrorCode {
		return ErrBadRequest(err.Error())
	}

	details := ErrorDetails{Code: code.String()}
	if loc := errors.LocationOf(err); !loc.IsEmpty() {
		details.Location = loc.String()
	}
	var genErr errors.GeneratorError
	if errors.As(err, &genErr) {
		details.Suggestions = genErr.Suggestions()
	}
	return ErrUnprocessableEntityWithDetails(err.Error(), details, err)
}

func (o RequestOptions) apply(opts Options) Options {
	overrides := []struct {
		value  string
		target *string
	}{
		{o.Namespace, &opts.Namespace},
		{o.MarkerName, &opts.MarkerName},
		{o.MarkerVisibility, &opts.MarkerVisibility},
		{o.DispatcherType, &opts.DispatcherType},
		{o.DispatchMethod, &opts.DispatchMethod},
		{o.FunctionPrefix, &opts.FunctionPrefix},
	}
	for _, ov := range overrides {
		if ov.value != "" {
			*ov.target = ov.value
		}
	}
	if o.QualifyNames != nil {
		opts.QualifyNames = *o.QualifyNames
	}
	if o.EscapeStrings != nil {
		opts.EscapeStrings = *o.EscapeStrings
	}
	return opts
}

// applyQuery applies the option overrides given as query parameters
func applyQuery(ctx RequestContext, opts *Options) {
	o := RequestOptions{
		Namespace:        ctx.QueryParam("namespace"),
		MarkerName:       ctx.QueryParam("markerName"),
		MarkerVisibility: ctx.QueryParam("markerVisibility"),
		DispatcherType:   ctx.QueryParam("dispatcherType"),
		DispatchMethod:   ctx.QueryParam("dispatchMethod"),
		FunctionPrefix:   ctx.QueryParam("functionPrefix"),
	}
	if v, err := strconv.ParseBool(ctx.QueryParam("qualifyNames")); err == nil {
		o.QualifyNames = &v
	}
	if v, err := strconv.ParseBool(ctx.QueryParam("escapeStrings")); err == nil {
		o.EscapeStrings = &v
	}
	*opts = o.apply(*opts)
}
