package generator

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/dispatchgen/internal/errors"
	"github.com/toyz/dispatchgen/internal/symbols"
)

const demoSource = `using System;
using Fluxor;

namespace FluxorGeneratorsDemo.Cli;

public enum Foo { Val1, Val2 }

[Dispatchable]
public record Foo5(Foo? A = Foo.Val2, int? X = 6, int? Y = null);
`

const markerSource = `namespace Fluxor
{
    [System.AttributeUsage(System.AttributeTargets.Class, Inherited = false)]
    internal sealed class DispatchableAttribute : System.Attribute
    {
        public DispatchableAttribute() { }
    }
}
`

func compile(t *testing.T, assembly string, sources ...symbols.Source) *symbols.Program {
	t.Helper()
	p, err := symbols.Compile(assembly, sources...)
	require.NoError(t, err)
	return p
}

func runPass(t *testing.T, opts Options, program *symbols.Program) (*Result, *MemorySink, error) {
	t.Helper()
	pass, err := NewPass(opts)
	require.NoError(t, err)

	sink := NewMemorySink()
	result, err := pass.Run(context.Background(), NewProgramHost(program, sink))
	return result, sink, err
}

func extensionsText(t *testing.T, sink *MemorySink, identity string) string {
	t.Helper()
	unit, ok := sink.Unit(ExtensionsUnitName(identity))
	require.True(t, ok, "missing extensions unit for %s", identity)
	return unit.Text
}

func TestPassDemo(t *testing.T) {
	program := compile(t, "Demo", symbols.Source{Path: "Demo.cs", Text: demoSource})

	result, sink, err := runPass(t, DefaultOptions(), program)
	require.NoError(t, err)

	assert.True(t, result.MarkerGenerated)
	assert.Equal(t, "Demo", result.Identity)
	require.Len(t, result.Types, 1)
	assert.Equal(t, "Foo5", result.Types[0].Name)
	assert.Equal(t, "FluxorGeneratorsDemo.Cli", result.Types[0].Namespace)
	assert.Equal(t, 1, result.Forwarders)
	assert.Empty(t, result.Exclusions)

	units := sink.Units()
	require.Len(t, units, 2)
	assert.Equal(t, "DispatchableAttribute.g.cs", units[0].Name)
	assert.Equal(t, "DemoDispatcherExtensions.g.cs", units[1].Name)
	assert.Equal(t, result.Units, units)

	marker := units[0].Text
	assert.Contains(t, marker, "namespace Fluxor")
	assert.Contains(t, marker, "[CompilerGenerated]")
	assert.Contains(t, marker, "[AttributeUsage(AttributeTargets.Class, Inherited = false)]")
	assert.Contains(t, marker, "internal sealed class DispatchableAttribute : Attribute")

	text := units[1].Text
	assert.Contains(t, text, "using System;\n\nusing Fluxor;\n")
	assert.Contains(t, text, "public static class DemoDispatcherExtensions")
	assert.Contains(t, text, "        public static void DispatchFoo5(this IDispatcher dispatcher, "+
		"FluxorGeneratorsDemo.Cli.Foo? A = FluxorGeneratorsDemo.Cli.Foo.Val2, int? X = 6, int? Y = null)\n")
	assert.Contains(t, text, "            dispatcher.Dispatch(new FluxorGeneratorsDemo.Cli.Foo5(A, X, Y));\n")

	// the program the pass started from is untouched
	assert.Nil(t, program.TypeByMetadataName("Fluxor.DispatchableAttribute"))
}

func TestPassMarkerAlreadyPresent(t *testing.T) {
	program := compile(t, "Demo",
		symbols.Source{Path: "Marker.cs", Text: markerSource},
		symbols.Source{Path: "Demo.cs", Text: demoSource},
	)

	result, sink, err := runPass(t, DefaultOptions(), program)
	require.NoError(t, err)

	assert.False(t, result.MarkerGenerated)
	units := sink.Units()
	require.Len(t, units, 1)
	assert.Equal(t, "DemoDispatcherExtensions.g.cs", units[0].Name)
	assert.Contains(t, units[0].Text, "DispatchFoo5(")
}

func TestPassIsRepeatable(t *testing.T) {
	program := compile(t, "Demo", symbols.Source{Path: "Demo.cs", Text: demoSource})

	_, first, err := runPass(t, DefaultOptions(), program)
	require.NoError(t, err)
	_, second, err := runPass(t, DefaultOptions(), program)
	require.NoError(t, err)

	assert.Equal(t, first.Units(), second.Units())
}

func TestPassWithoutAnnotatedRecords(t *testing.T) {
	program := compile(t, "Empty", symbols.Source{Path: "Plain.cs", Text: `namespace Plain { public record Nothing(int A); }`})

	result, sink, err := runPass(t, DefaultOptions(), program)
	require.NoError(t, err)

	assert.Empty(t, result.Types)
	assert.Zero(t, result.Forwarders)
	text := extensionsText(t, sink, "Empty")
	assert.Contains(t, text, "public static class EmptyDispatcherExtensions")
	assert.NotContains(t, text, "static void")
}

func TestPassDefaultLiterals(t *testing.T) {
	program := compile(t, "Notes", symbols.Source{Path: "Note.cs", Text: `using Fluxor;

namespace Sample;

public enum Color { Red = 1, Green = 2 }

[Dispatchable]
public record Note(
    string Text = "",
    string? Tag = null,
    int? Count = 6,
    Color? Shade = null,
    Color Main = Color.Green,
    float Ratio = 0.5f,
    decimal Price = 2.50m,
    long Big = 5000000000,
    char Sep = ',',
    bool On = true,
    System.Guid Id = default);
`})

	_, sink, err := runPass(t, DefaultOptions(), program)
	require.NoError(t, err)

	text := extensionsText(t, sink, "Notes")
	for _, want := range []string{
		`string Text = ""`,
		`string? Tag = null`,
		`int? Count = 6`,
		`Sample.Color? Shade = null`,
		`Sample.Color Main = Sample.Color.Green`,
		`float Ratio = 0.5F`,
		`decimal Price = 2.5M`,
		`long Big = 5000000000`,
		`char Sep = ','`,
		`bool On = true`,
		`System.Guid Id = default`,
		`new Sample.Note(Text, Tag, Count, Shade, Main, Ratio, Price, Big, Sep, On, Id)`,
	} {
		assert.Contains(t, text, want)
	}
}

func TestPassEnumWithoutMatchingMember(t *testing.T) {
	program := compile(t, "Paint", symbols.Source{Path: "Paint.cs", Text: `using Fluxor;

namespace Sample
{
    public enum Color { Red, Green }

    [Dispatchable]
    public record Paint(Color C = (Color)5);
}
`})

	result, sink, err := runPass(t, DefaultOptions(), program)
	require.Error(t, err)
	assert.Nil(t, result)
	assert.Empty(t, sink.Units())

	var enumErr *errors.EnumMemberNotFoundError
	require.True(t, errors.As(err, &enumErr))
	assert.Equal(t, "Sample.Color", enumErr.EnumType)
	assert.Equal(t, "C", enumErr.Parameter)
	assert.Equal(t, "5", enumErr.Value)
	assert.Equal(t, "Paint.cs", enumErr.Location().File)
}

func TestPassExclusions(t *testing.T) {
	program := compile(t, "Mixed", symbols.Source{Path: "Mixed.cs", Text: `using Fluxor;

namespace Mixed
{
    [Dispatchable]
    public record Box<T>(T Value);

    public class Outer
    {
        [Dispatchable]
        private record Hidden(int A);
    }

    [Dispatchable]
    public class NotARecord { }

    [Dispatchable]
    internal record Secret(int A = 1);

    [Dispatchable]
    public record Broken(int A = "x");
}
`})

	result, sink, err := runPass(t, DefaultOptions(), program)
	require.NoError(t, err)

	require.Len(t, result.Types, 1)
	assert.Equal(t, "Secret", result.Types[0].Name)

	reasons := make(map[string]string)
	for _, ex := range result.Exclusions {
		reasons[ex.Name] = ex.Reason
	}
	assert.Len(t, reasons, 3)
	assert.Contains(t, reasons["Box"], "generic")
	assert.Contains(t, reasons["Hidden"], "not accessible")
	assert.Contains(t, reasons["Broken"], "could not be resolved")
	assert.NotContains(t, reasons, "NotARecord")

	text := extensionsText(t, sink, "Mixed")
	assert.Contains(t, text, "internal static void DispatchSecret(this IDispatcher dispatcher, int A = 1)")
}

func TestPassMultipleConstructors(t *testing.T) {
	program := compile(t, "Moves", symbols.Source{Path: "Move.cs", Text: `using Fluxor;

namespace Game
{
    [Dispatchable]
    public record Move
    {
        public Move(int x) { }
        private Move(string s) { }
        public Move(int x, int y = 2) { }
    }

    [Dispatchable]
    public record Fill(in int Count, params int[] Cells);
}
`})

	result, sink, err := runPass(t, DefaultOptions(), program)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Forwarders)

	text := extensionsText(t, sink, "Moves")
	first := strings.Index(text, "DispatchMove(this IDispatcher dispatcher, int x)")
	second := strings.Index(text, "DispatchMove(this IDispatcher dispatcher, int x, int y = 2)")
	require.NotEqual(t, -1, first)
	require.NotEqual(t, -1, second)
	assert.Less(t, first, second)
	assert.NotContains(t, text, "string s")

	assert.Contains(t, text, "DispatchFill(this IDispatcher dispatcher, in int Count, params int[] Cells)")
	assert.Contains(t, text, "new Game.Fill(in Count, Cells)")
}

func TestPassOptions(t *testing.T) {
	program := compile(t, "Demo",
		symbols.Source{Path: "Demo.cs", Text: demoSource},
		symbols.Source{Path: "Quote.cs", Text: `using Fluxor;
namespace Quotes { [Dispatchable] public record Say(string S = "a\"b"); }
`},
	)

	opts := DefaultOptions()
	opts.QualifyNames = true
	opts.EscapeStrings = true
	opts.AssemblyName = "Custom.Name"

	result, sink, err := runPass(t, opts, program)
	require.NoError(t, err)
	assert.Equal(t, "CustomName", result.Identity)

	text := extensionsText(t, sink, "CustomName")
	assert.Contains(t, text, "public static void DispatchFluxorGeneratorsDemo_Cli_Foo5(")
	assert.Contains(t, text, "public static void DispatchQuotes_Say(this IDispatcher dispatcher, string S = \"a\\\"b\")")
}

func TestPassQualifiedNamesDoNotCollide(t *testing.T) {
	program := compile(t, "Split",
		symbols.Source{Path: "One.cs", Text: `using Fluxor;
namespace A.BC { [Dispatchable] public record R(int X); }
namespace AB.C { [Dispatchable] public record R(int X); }
namespace A_B { [Dispatchable] public record C(int X); }
namespace A { public class B_C { [Dispatchable] public record D(int X); } }
`},
	)

	opts := DefaultOptions()
	opts.QualifyNames = true
	result, sink, err := runPass(t, opts, program)
	require.NoError(t, err)
	assert.Equal(t, 4, result.Forwarders)

	text := extensionsText(t, sink, "Split")
	for _, want := range []string{
		"public static void DispatchA_BC_R(",
		"public static void DispatchAB_C_R(",
		"public static void DispatchA__B_C(",
		"public static void DispatchA_B__C_D(",
	} {
		assert.Equal(t, 1, strings.Count(text, want), want)
	}
}

func TestPassMarkerThroughUsingAlias(t *testing.T) {
	program := compile(t, "Aliased",
		symbols.Source{Path: "Placed.cs", Text: `using F = Fluxor.DispatchableAttribute;
namespace Shop
{
    [F] public record Placed(int Id);
}
`},
		symbols.Source{Path: "Refunded.cs", Text: `using D = Fluxor.DispatchableAttribute;
namespace Shop
{
    [D()] public record Refunded(int Id);
    [Obsolete] public record Ignored(int Id);
}
`},
	)

	result, sink, err := runPass(t, DefaultOptions(), program)
	require.NoError(t, err)

	require.Len(t, result.Types, 2)
	assert.Equal(t, "Placed", result.Types[0].Name)
	assert.Equal(t, "Refunded", result.Types[1].Name)

	text := extensionsText(t, sink, "Aliased")
	assert.Contains(t, text, "public static void DispatchPlaced(this IDispatcher dispatcher, int Id)")
	assert.Contains(t, text, "public static void DispatchRefunded(this IDispatcher dispatcher, int Id)")
	assert.NotContains(t, text, "DispatchIgnored")
}

func TestPassConstantAndExternalDefaults(t *testing.T) {
	program := compile(t, "Paging", symbols.Source{Path: "Page.cs", Text: `using System;
using Fluxor;

namespace Shop
{
    public static class K
    {
        public const int V = 25;
        public const string Name = "page";
    }

    public class Catalog
    {
        private const int D = 3;

        [Dispatchable]
        public record Page(int Size = K.V, string Label = K.Name, int Depth = D, DayOfWeek? Day = DayOfWeek.Monday, DayOfWeek Start = DayOfWeek.Sunday);
    }
}
`})

	_, sink, err := runPass(t, DefaultOptions(), program)
	require.NoError(t, err)

	text := extensionsText(t, sink, "Paging")
	assert.Contains(t, text, "public static void DispatchPage(this IDispatcher dispatcher, "+
		`int Size = 25, string Label = "page", int Depth = 3, DayOfWeek? Day = DayOfWeek.Monday, DayOfWeek Start = DayOfWeek.Sunday)`)
}

func TestPassUsingsOfExternalNamespaces(t *testing.T) {
	program := compile(t, "Vendor", symbols.Source{Path: "Order.cs", Text: `using System;
using Fluxor;
using Vendor.Sdk;

namespace Shop
{
    [Dispatchable]
    public record Order(Widget? Item = null);
}
`})

	_, sink, err := runPass(t, DefaultOptions(), program)
	require.NoError(t, err)

	text := extensionsText(t, sink, "Vendor")
	assert.Contains(t, text, "using System;\nusing Vendor.Sdk;\n\nusing Fluxor;\n")
	assert.Contains(t, text, "DispatchOrder(this IDispatcher dispatcher, Widget? Item = null)")
}

func TestPassCanceled(t *testing.T) {
	program := compile(t, "Demo", symbols.Source{Path: "Demo.cs", Text: demoSource})
	pass, err := NewPass(DefaultOptions())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sink := NewMemorySink()
	_, err = pass.Run(ctx, NewProgramHost(program, sink))
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, errors.CanceledErrorCode, errors.CodeOf(err))
	assert.Empty(t, sink.Units())
}

type staleHost struct {
	*ProgramHost
}

func (h staleHost) Resnapshot(program *symbols.Program, _ Unit) (*symbols.Program, error) {
	return program, nil
}

func TestPassMarkerUnavailable(t *testing.T) {
	program := compile(t, "Demo", symbols.Source{Path: "Demo.cs", Text: demoSource})
	pass, err := NewPass(DefaultOptions())
	require.NoError(t, err)

	sink := NewMemorySink()
	_, err = pass.Run(context.Background(), staleHost{NewProgramHost(program, sink)})
	require.Error(t, err)

	var unavailable *errors.MarkerUnavailableError
	require.True(t, errors.As(err, &unavailable))
	assert.Equal(t, "Fluxor.DispatchableAttribute", unavailable.MetadataName)
	assert.Empty(t, sink.Units())
}

func TestPassPreconditions(t *testing.T) {
	pass, err := NewPass(DefaultOptions())
	require.NoError(t, err)

	_, err = pass.Run(context.Background(), nil)
	assert.Equal(t, errors.PreconditionErrorCode, errors.CodeOf(err))

	_, err = NewPass(Options{Namespace: "Not Valid"})
	assert.Equal(t, errors.ConfigurationErrorCode, errors.CodeOf(err))
}
