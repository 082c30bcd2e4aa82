package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const demoSource = `using System;
using Fluxor;

namespace FluxorGeneratorsDemo.Cli;

public enum Foo { Val1, Val2 }

[Dispatchable]
public record Foo5(Foo? A = Foo.Val2, int? X = 6, int? Y = null);
`

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func writeSource(t *testing.T, dir, name, text string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
	return path
}

func TestCLIArgumentParsing(t *testing.T) {
	t.Run("help flag", func(t *testing.T) {
		code, _, stderr := runCLI(t, "--help")
		assert.Equal(t, 0, code)
		assert.Contains(t, stderr, "Usage:")
		assert.Contains(t, stderr, "Fluxor Dispatcher Extensions Generator")
		assert.Contains(t, stderr, "-assembly")
		assert.Contains(t, stderr, "source-paths")
	})

	t.Run("no arguments", func(t *testing.T) {
		code, _, stderr := runCLI(t)
		assert.Equal(t, 1, code)
		assert.Contains(t, stderr, "At least one source path is required")
	})

	t.Run("unknown flag", func(t *testing.T) {
		code, _, stderr := runCLI(t, "--module", "x", ".")
		assert.Equal(t, 2, code)
		assert.Contains(t, stderr, "flag provided but not defined: -module")
	})

	t.Run("nonexistent source", func(t *testing.T) {
		code, _, stderr := runCLI(t, "--out", t.TempDir(), "/nonexistent/directory")
		assert.Equal(t, 1, code)
		assert.Contains(t, stderr, "File System Error")
	})

	t.Run("verbose and quiet", func(t *testing.T) {
		code, _, stderr := runCLI(t, "--verbose", "--quiet", t.TempDir())
		assert.Equal(t, 1, code)
		assert.Contains(t, stderr, "mutually exclusive")
	})

	t.Run("missing config file", func(t *testing.T) {
		code, _, stderr := runCLI(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), ".")
		assert.Equal(t, 1, code)
		assert.Contains(t, stderr, "File System Error")
	})
}

func TestCLIGenerate(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()
	writeSource(t, src, "Demo.cs", demoSource)

	code, stdout, stderr := runCLI(t, "--assembly", "Demo", "--out", out, src)
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "Code Generation Completed Successfully!")
	assert.Contains(t, stdout, "Generated 1 forwarders")

	marker, err := os.ReadFile(filepath.Join(out, "DispatchableAttribute.g.cs"))
	require.NoError(t, err)
	assert.Contains(t, string(marker), "internal sealed class DispatchableAttribute : Attribute")

	extensions, err := os.ReadFile(filepath.Join(out, "DemoDispatcherExtensions.g.cs"))
	require.NoError(t, err)
	assert.Contains(t, string(extensions), "public static void DispatchFoo5(this IDispatcher dispatcher, ")

	t.Run("quiet", func(t *testing.T) {
		code, stdout, _ := runCLI(t, "--quiet", "--assembly", "Demo", "--out", out, src)
		assert.Equal(t, 0, code)
		assert.Empty(t, stdout)
	})

	t.Run("failure", func(t *testing.T) {
		bad := t.TempDir()
		writeSource(t, bad, "Bad.cs", "public record (\n")

		code, _, stderr := runCLI(t, "--out", t.TempDir(), bad)
		assert.Equal(t, 1, code)
		assert.Contains(t, stderr, "ERROR: Code Generation Failed")
		assert.Contains(t, stderr, "Type: Syntax Error")
	})
}

func TestCLIConfigFile(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "src/Demo.cs", demoSource)
	out := filepath.Join(dir, "out")
	config := writeSource(t, dir, "dispatchgen.yaml", "sources:\n  - "+src+"\noutput: "+out+"\nassemblyName: Store\nfunctionPrefix: Send\n")

	t.Run("values from the file", func(t *testing.T) {
		code, _, stderr := runCLI(t, "--quiet", "--config", config)
		require.Equal(t, 0, code, stderr)

		text, err := os.ReadFile(filepath.Join(out, "StoreDispatcherExtensions.g.cs"))
		require.NoError(t, err)
		assert.Contains(t, string(text), "SendFoo5(this IDispatcher dispatcher")
	})

	t.Run("flags override the file", func(t *testing.T) {
		code, _, stderr := runCLI(t, "--quiet", "--config", config, "--prefix", "Post", "--assembly", "Shop")
		require.Equal(t, 0, code, stderr)

		text, err := os.ReadFile(filepath.Join(out, "ShopDispatcherExtensions.g.cs"))
		require.NoError(t, err)
		assert.Contains(t, string(text), "PostFoo5(this IDispatcher dispatcher")
	})

	t.Run("unknown key", func(t *testing.T) {
		bad := writeSource(t, dir, "bad.yaml", "module: github.com/example\n")
		code, _, stderr := runCLI(t, "--config", bad, ".")
		assert.Equal(t, 1, code)
		assert.Contains(t, stderr, "Type: Configuration Error")
	})
}

func TestCLIClean(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()
	writeSource(t, src, "Demo.cs", demoSource)
	handwritten := writeSource(t, out, "Handwritten.g.cs", "namespace Other { }\n")

	code, _, stderr := runCLI(t, "--quiet", "--assembly", "Demo", "--out", out, src)
	require.Equal(t, 0, code, stderr)
	assert.FileExists(t, filepath.Join(out, "DemoDispatcherExtensions.g.cs"))

	code, stdout, stderr := runCLI(t, "--clean", "--out", out)
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "Removed 2 generated files")

	assert.NoFileExists(t, filepath.Join(out, "DemoDispatcherExtensions.g.cs"))
	assert.NoFileExists(t, filepath.Join(out, "DispatchableAttribute.g.cs"))
	assert.FileExists(t, handwritten)
	assert.FileExists(t, filepath.Join(src, "Demo.cs"))
}

func TestCLIServeValidation(t *testing.T) {
	code, _, stderr := runCLI(t, "--serve", ":8080", "--server", "nginx")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "Type: Configuration Error")

	code, _, stderr = runCLI(t, "--serve", "not an address")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "Type: Configuration Error")
}
