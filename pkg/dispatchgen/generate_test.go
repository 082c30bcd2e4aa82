package dispatchgen

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dgerrors "github.com/toyz/dispatchgen/internal/errors"
)

const demoArchive = `-- Demo.cs --
using System;
using Fluxor;

namespace FluxorGeneratorsDemo.Cli;

public enum Foo { Val1, Val2 }

[Dispatchable]
public record Foo5(Foo? A = Foo.Val2, int? X = 6, int? Y = null);
`

func TestGenerate(t *testing.T) {
	sources := ParseArchive([]byte(demoArchive))
	require.Len(t, sources, 1)
	assert.Equal(t, "Demo.cs", sources[0].Path)

	out, err := Generate(context.Background(), "Demo", sources, Options{})
	require.NoError(t, err)

	assert.Equal(t, "Demo", out.Identity)
	assert.True(t, out.MarkerGenerated)
	assert.Equal(t, []string{"FluxorGeneratorsDemo.Cli.Foo5"}, out.Records)
	assert.Equal(t, 1, out.Forwarders)
	require.Len(t, out.Units, 2)
	assert.Equal(t, "DispatchableAttribute.g.cs", out.Units[0].Name)
	assert.Equal(t, "DemoDispatcherExtensions.g.cs", out.Units[1].Name)
	assert.Contains(t, out.Units[1].Text, "DispatchFoo5(this IDispatcher dispatcher, ")

	archive := string(FormatArchive(out.Units))
	assert.True(t, strings.HasPrefix(archive, "-- DispatchableAttribute.g.cs --\n"))
	assert.Contains(t, archive, "-- DemoDispatcherExtensions.g.cs --\n")

	// generated members of a bundle are not read back as sources
	assert.Len(t, ParseArchive([]byte(demoArchive+archive)), 1)
}

func TestGenerateErrors(t *testing.T) {
	_, err := Generate(context.Background(), "Demo", []Source{{Path: "Bad.cs", Text: "public record ("}}, Options{})
	require.Error(t, err)
	assert.Equal(t, dgerrors.SyntaxErrorCode, dgerrors.CodeOf(err))

	opts := DefaultOptions()
	opts.MarkerVisibility = "private"
	_, err = Generate(context.Background(), "Demo", ParseArchive([]byte(demoArchive)), opts)
	require.Error(t, err)
	assert.Equal(t, dgerrors.ConfigurationErrorCode, dgerrors.CodeOf(err))
}

func TestMarkerSource(t *testing.T) {
	text, err := MarkerSource(Options{Namespace: "Acme", MarkerName: "Action"})
	require.NoError(t, err)
	assert.Contains(t, text, "namespace Acme\n")
	assert.Contains(t, text, "internal sealed class ActionAttribute : Attribute")

	_, err = MarkerSource(Options{Namespace: "Acme..Store"})
	assert.Error(t, err)
}

func TestHTTPError(t *testing.T) {
	he := NewHTTPError(http.StatusNotFound)
	assert.Equal(t, "Not Found", he.Message)
	assert.Equal(t, "HTTP 404: Not Found", he.Error())

	cause := errors.New("boom")
	he = ErrUnprocessableEntityWithDetails("generation failed", nil, cause)
	assert.True(t, errors.Is(he, cause))

	code, body := StatusOf(ErrBadRequest("bad"))
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "bad", body.(*HTTPError).Message)

	code, body = StatusOf(cause)
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "boom", body.(*HTTPError).Message)
}

type fakeServer struct {
	started  chan string
	stop     chan struct{}
	startErr error
	stopErr  error
}

func newFakeServer() *fakeServer {
	return &fakeServer{started: make(chan string, 1), stop: make(chan struct{})}
}

func (s *fakeServer) RegisterRoute(string, string, HandlerFunc, ...MiddlewareFunc) {}
func (s *fakeServer) Use(MiddlewareFunc)                                           {}
func (s *fakeServer) Name() string                                                 { return "Fake" }

func (s *fakeServer) Start(addr string) error {
	s.started <- addr
	if s.startErr != nil {
		return s.startErr
	}
	<-s.stop
	return http.ErrServerClosed
}

func (s *fakeServer) Stop(context.Context) error {
	close(s.stop)
	return s.stopErr
}

func TestServe(t *testing.T) {
	t.Run("stops on cancellation", func(t *testing.T) {
		server := newFakeServer()
		ctx, cancel := context.WithCancel(context.Background())

		done := make(chan error, 1)
		go func() { done <- Serve(ctx, server, ServerConfig{Addr: ":9090"}) }()

		assert.Equal(t, ":9090", <-server.started)
		cancel()

		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("Serve did not return after cancellation")
		}
	})

	t.Run("start failure", func(t *testing.T) {
		server := newFakeServer()
		server.startErr = errors.New("address in use")

		err := Serve(context.Background(), server, DefaultServerConfig())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Fake server failed: address in use")
	})
}
