package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidators(t *testing.T) {
	tests := []struct {
		name      string
		validator Validator[string]
		value     string
		wantErr   bool
	}{
		{"not empty ok", NotEmpty("name"), "x", false},
		{"not empty blank", NotEmpty("name"), "  ", true},
		{"identifier", IsValidIdentifier("prefix"), "Dispatch", false},
		{"verbatim identifier", IsValidIdentifier("prefix"), "@class", true},
		{"unicode identifier", IsValidIdentifier("prefix"), "Versand_Ü", false},
		{"keyword", IsValidIdentifier("prefix"), "class", true},
		{"leading digit", IsValidIdentifier("prefix"), "1st", true},
		{"qualified", IsQualifiedName("namespace"), "Acme.Store.Actions", false},
		{"empty part", IsQualifiedName("namespace"), "Acme..Store", true},
		{"suffix", HasSuffix("project", ".csproj"), "App.csproj", false},
		{"wrong suffix", HasSuffix("project", ".csproj"), "App.sln", true},
		{"regex", MatchesRegex("version", `^\d+$`), "12", false},
		{"address", IsListenAddress("addr"), "127.0.0.1:8080", false},
		{"address without port", IsListenAddress("addr"), "localhost", true},
		{"one of", IsOneOf("visibility", "internal", "public"), "public", false},
		{"not one of", IsOneOf("visibility", "internal", "public"), "private", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.validator(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				var ve ValidationError
				assert.ErrorAs(t, err, &ve)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatorChain(t *testing.T) {
	chain := NewValidatorChain(NotEmpty("project"))
	chain.Add(HasSuffix("project", ".csproj"))

	assert.NoError(t, chain.Validate("Shop.csproj"))
	assert.EqualError(t, chain.Validate(""), "validation error for field 'project': cannot be empty")
	assert.EqualError(t, chain.Validate("Shop"), "validation error for field 'project': must end with '.csproj'")

	onlyWhenSet := Conditional(func(s string) bool { return s != "" }, IsListenAddress("addr"))
	assert.NoError(t, onlyWhenSet(""))
	assert.Error(t, onlyWhenSet("nope"))

	even := Custom("count", "must be even", func(n int) bool { return n%2 == 0 })
	assert.NoError(t, even(2))
	assert.EqualError(t, even(3), "validation error for field 'count': must be even")
}
