package csharp

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		text string
		kind NumberKind
		bits uint64
	}{
		{"6", NumberInt, 6},
		{"1_000", NumberInt, 1000},
		{"0x1F", NumberInt, 31},
		{"0b101", NumberInt, 5},
		{"2147483648", NumberUInt, 2147483648},
		{"4294967296", NumberLong, 4294967296},
		{"9223372036854775808", NumberULong, 9223372036854775808},
		{"5u", NumberUInt, 5},
		{"5L", NumberLong, 5},
		{"5UL", NumberULong, 5},
		{"5lu", NumberULong, 5},
		{"0xFFu", NumberUInt, 255},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			n, err := ParseNumber(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, n.Kind)
			assert.Equal(t, tt.bits, n.Bits)
			assert.True(t, n.Kind.IsIntegral())
		})
	}
}

func TestParseRealNumber(t *testing.T) {
	n, err := ParseNumber("1.5")
	require.NoError(t, err)
	assert.Equal(t, NumberDouble, n.Kind)
	assert.Equal(t, 1.5, n.Float)

	n, err = ParseNumber("2f")
	require.NoError(t, err)
	assert.Equal(t, NumberFloat, n.Kind)
	assert.Equal(t, 2.0, n.Float)

	n, err = ParseNumber("1e3")
	require.NoError(t, err)
	assert.Equal(t, NumberDouble, n.Kind)
	assert.Equal(t, 1000.0, n.Float)

	n, err = ParseNumber("19.99m")
	require.NoError(t, err)
	assert.Equal(t, NumberDecimal, n.Kind)
	assert.Equal(t, 0, n.Decimal.Cmp(big.NewRat(1999, 100)))

	_, err = ParseNumber("99999999999999999999")
	assert.Error(t, err)
}

func TestUnquote(t *testing.T) {
	s, err := UnquoteString(`"a\"b\\c\n\u0041\x42"`)
	require.NoError(t, err)
	assert.Equal(t, "a\"b\\c\nAB", s)

	s, err = UnquoteString(`""`)
	require.NoError(t, err)
	assert.Equal(t, "", s)

	s, err = UnquoteVerbatim(`@"C:\temp ""quoted"""`)
	require.NoError(t, err)
	assert.Equal(t, `C:\temp "quoted"`, s)

	r, err := UnquoteChar(`'\''`)
	require.NoError(t, err)
	assert.Equal(t, '\'', r)

	r, err = UnquoteChar(`'x'`)
	require.NoError(t, err)
	assert.Equal(t, 'x', r)

	_, err = UnquoteString(`"bad \q"`)
	assert.Error(t, err)
}

func TestQuote(t *testing.T) {
	assert.Equal(t, `"say \"hi\"\n"`, QuoteString("say \"hi\"\n"))
	assert.Equal(t, `"C:\\dir"`, QuoteString(`C:\dir`))
	assert.Equal(t, `""`, QuoteString(""))
	assert.Equal(t, `'\''`, QuoteChar('\''))
	assert.Equal(t, `'\0'`, QuoteChar(0))
	assert.Equal(t, `'a'`, QuoteChar('a'))
	assert.Equal(t, `'\u001B'`, QuoteChar(0x1b))
}

func TestIdentifier(t *testing.T) {
	assert.Equal(t, "@class", Identifier("class"))
	assert.Equal(t, "record", Identifier("record"))
	assert.Equal(t, "value", TrimVerbatimPrefix("@value"))
}
