package extractor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bennypowers.dev/scssimpact/internal/extractor"
	"bennypowers.dev/scssimpact/internal/variables"
)

func TestExtract(t *testing.T) {
	t.Run("simple declarations", func(t *testing.T) {
		text := "$primary-color: #007bff;\n$spacing: 8px;\n"
		defs, err := extractor.Extract(text, "theme.scss")
		require.NoError(t, err)
		require.Len(t, defs, 2)

		primary := defs["primary-color"]
		require.NotNil(t, primary)
		assert.Equal(t, "#007bff", primary.Value)
		assert.Equal(t, "theme.scss", primary.FilePath)
		assert.Equal(t, 1, primary.LineNumber)
		assert.Equal(t, variables.ScopeGlobal, primary.Scope)
		assert.Empty(t, primary.Dependencies)
		assert.Empty(t, primary.Usage, "usage is populated by callers, not extraction")

		assert.Equal(t, 2, defs["spacing"].LineNumber)
	})

	t.Run("dependencies from references", func(t *testing.T) {
		text := "$base: 16px;\n$large: $base * 1.5;\n"
		defs, err := extractor.Extract(text, "type.scss")
		require.NoError(t, err)

		large := defs["large"]
		require.NotNil(t, large)
		assert.Equal(t, "$base * 1.5", large.Value)
		assert.Equal(t, []string{"base"}, large.Dependencies)
	})

	t.Run("dependencies inside calc, interpolation and function calls", func(t *testing.T) {
		text := "$w: calc(100% - $gutter);\n" +
			"$label: \"size-#{$variant}\";\n" +
			"$tint: mix($base, lighten($accent, 10%));\n"
		defs, err := extractor.Extract(text, "mix.scss")
		require.NoError(t, err)

		assert.Equal(t, []string{"gutter"}, defs["w"].Dependencies)
		assert.Equal(t, []string{"variant"}, defs["label"].Dependencies)
		assert.ElementsMatch(t, []string{"base", "accent"}, defs["tint"].Dependencies)
	})

	t.Run("duplicate references deduplicate", func(t *testing.T) {
		defs, err := extractor.Extract("$frame: $gap $gap 0 $gap;", "frame.scss")
		require.NoError(t, err)
		assert.Equal(t, []string{"gap"}, defs["frame"].Dependencies)
	})

	t.Run("redeclaration is last write wins", func(t *testing.T) {
		text := "$color: red;\n$color: blue;\n"
		defs, err := extractor.Extract(text, "dup.scss")
		require.NoError(t, err)
		require.Len(t, defs, 1)
		assert.Equal(t, "blue", defs["color"].Value)
		assert.Equal(t, 2, defs["color"].LineNumber)
	})

	t.Run("default and global modifiers", func(t *testing.T) {
		text := "$brand: teal !default;\n$hoisted: 4px !global;\n"
		defs, err := extractor.Extract(text, "flags.scss")
		require.NoError(t, err)

		brand := defs["brand"]
		assert.True(t, brand.IsDefault)
		assert.False(t, brand.IsGlobal)
		assert.Equal(t, "teal", brand.Value, "modifier is stripped from the stored value")

		hoisted := defs["hoisted"]
		assert.True(t, hoisted.IsGlobal)
		assert.False(t, hoisted.IsDefault)
		assert.Equal(t, "4px", hoisted.Value)
	})

	t.Run("parenthesized values keep their semicolon-free commas", func(t *testing.T) {
		text := "$shadow: rgba(0, 0, 0, 0.25);\n$breakpoints: (small: 576px, large: 992px);\n"
		defs, err := extractor.Extract(text, "maps.scss")
		require.NoError(t, err)
		assert.Equal(t, "rgba(0, 0, 0, 0.25)", defs["shadow"].Value)
		assert.Equal(t, "(small: 576px, large: 992px)", defs["breakpoints"].Value)
	})

	t.Run("interpolated values keep their braces", func(t *testing.T) {
		defs, err := extractor.Extract("$suffix: #{$variant}-wide;", "interp.scss")
		require.NoError(t, err)
		assert.Equal(t, "#{$variant}-wide", defs["suffix"].Value)
	})
}

func TestExtractScopes(t *testing.T) {
	t.Run("declaration inside a block is local", func(t *testing.T) {
		text := ".card {\n  $padding: 12px;\n  padding: $padding;\n}\n"
		defs, err := extractor.Extract(text, "card.scss")
		require.NoError(t, err)
		assert.Equal(t, variables.ScopeLocal, defs["padding"].Scope)
	})

	t.Run("mixin signature default is mixin scope", func(t *testing.T) {
		text := "@mixin button($radius: 4px) {\n  border-radius: $radius;\n}\n"
		defs, err := extractor.Extract(text, "button.scss")
		require.NoError(t, err)
		require.NotNil(t, defs["radius"])
		assert.Equal(t, variables.ScopeMixin, defs["radius"].Scope)
		assert.Equal(t, "4px", defs["radius"].Value)
	})

	t.Run("function signature default is mixin scope", func(t *testing.T) {
		text := "@function scale($factor: 1.25) {\n  @return $factor;\n}\n"
		defs, err := extractor.Extract(text, "scale.scss")
		require.NoError(t, err)
		require.NotNil(t, defs["factor"])
		assert.Equal(t, variables.ScopeMixin, defs["factor"].Scope)
	})

	t.Run("declaration after a closed mixin is global", func(t *testing.T) {
		text := "@mixin pad($p: 2px) { padding: $p; }\n$after: 1px;\n"
		defs, err := extractor.Extract(text, "after.scss")
		require.NoError(t, err)
		assert.Equal(t, variables.ScopeGlobal, defs["after"].Scope)
	})

	t.Run("declaration inside a mixin body is local", func(t *testing.T) {
		text := "@mixin theme {\n  $shade: 10%;\n  color: darken(red, $shade);\n}\n"
		defs, err := extractor.Extract(text, "theme.scss")
		require.NoError(t, err)
		assert.Equal(t, variables.ScopeLocal, defs["shade"].Scope)
	})

	t.Run("interpolation does not unbalance scope counting", func(t *testing.T) {
		text := "$name: #{$base}-x;\n$later: 1px;\n"
		defs, err := extractor.Extract(text, "interp.scss")
		require.NoError(t, err)
		assert.Equal(t, variables.ScopeGlobal, defs["later"].Scope)
	})
}

func TestExtractMalformedInput(t *testing.T) {
	t.Run("unterminated statement keeps earlier definitions", func(t *testing.T) {
		text := "$good: 1px;\n$broken: unfinished"
		defs, err := extractor.Extract(text, "broken.scss")
		require.NoError(t, err, "malformed but textual SCSS never raises a parse failure")
		assert.Contains(t, defs, "good")
		assert.NotContains(t, defs, "broken")
	})

	t.Run("invalid UTF-8 is a parse failure", func(t *testing.T) {
		_, err := extractor.Extract("$a: 1px;\xff\xfe", "bin.scss")
		require.Error(t, err)
		assert.ErrorIs(t, err, variables.ErrParseFailure)
	})

	t.Run("NUL bytes are a parse failure", func(t *testing.T) {
		_, err := extractor.Extract("$a: 1px;\x00", "nul.scss")
		require.Error(t, err)
		assert.ErrorIs(t, err, variables.ErrParseFailure)
	})

	t.Run("empty input yields an empty map", func(t *testing.T) {
		defs, err := extractor.Extract("", "empty.scss")
		require.NoError(t, err)
		assert.Empty(t, defs)
	})
}

func TestExtractIdempotence(t *testing.T) {
	text := "$base: 16px;\n.a { $local: $base; margin: $local; }\n@mixin m($p: 1px) {}\n"
	first, err := extractor.Extract(text, "same.scss")
	require.NoError(t, err)
	second, err := extractor.Extract(text, "same.scss")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestReferences(t *testing.T) {
	t.Run("maximal identifiers", func(t *testing.T) {
		refs := extractor.References("$base $base-dark $base")
		assert.Equal(t, []string{"base", "base-dark"}, refs)
	})

	t.Run("no references", func(t *testing.T) {
		assert.Empty(t, extractor.References("12px solid red"))
	})
}
