package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/dispatchgen/internal/errors"
)

func TestProjectResolver_ResolveAssemblyName(t *testing.T) {
	resolver := NewProjectResolver()

	t.Run("custom name provided", func(t *testing.T) {
		name, err := resolver.ResolveAssemblyName("Custom", []string{"./..."})
		require.NoError(t, err)
		assert.Equal(t, "Custom", name)
	})

	t.Run("declared assembly name", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "Demo.csproj"), demoProject)
		writeFile(t, filepath.Join(root, "Actions", "Foo5.cs"), demoSource)

		name, err := resolver.ResolveAssemblyName("", []string{filepath.Join(root, "Actions") + "/..."})
		require.NoError(t, err)
		assert.Equal(t, "Demo.App", name)

		name, err = resolver.ResolveAssemblyName("", []string{filepath.Join(root, "Actions", "Foo5.cs")})
		require.NoError(t, err)
		assert.Equal(t, "Demo.App", name)
	})

	t.Run("project file name", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "Store.Web.csproj"), `<Project Sdk="Microsoft.NET.Sdk">
  <PropertyGroup>
    <TargetFramework>net8.0</TargetFramework>
  </PropertyGroup>
</Project>
`)
		name, err := resolver.ResolveAssemblyName("", []string{root})
		require.NoError(t, err)
		assert.Equal(t, "Store.Web", name)
	})

	t.Run("project name property", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "Shop.csproj"), `<Project>
  <PropertyGroup />
  <PropertyGroup>
    <AssemblyName>$(MSBuildProjectName).Core</AssemblyName>
  </PropertyGroup>
</Project>
`)
		name, err := resolver.ResolveAssemblyName("", []string{root})
		require.NoError(t, err)
		assert.Equal(t, "Shop.Core", name)
	})

	t.Run("first project in lexical order", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "B.csproj"), "<Project />")
		writeFile(t, filepath.Join(root, "A.csproj"), "<Project />")

		project, err := resolver.FindProjectFile(root)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(root, "A.csproj"), project)
	})

	t.Run("malformed project", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "Broken.csproj"), "<Project><PropertyGroup>")

		_, err := resolver.ResolveAssemblyName("", []string{root})
		require.Error(t, err)
		assert.Equal(t, errors.SyntaxErrorCode, errors.CodeOf(err))
	})

	t.Run("no sources", func(t *testing.T) {
		name, err := resolver.ResolveAssemblyName("", nil)
		require.NoError(t, err)
		assert.Empty(t, name)
	})
}
