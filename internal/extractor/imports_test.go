package extractor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bennypowers.dev/scssimpact/internal/extractor"
)

func TestExtractImports(t *testing.T) {
	t.Run("import, use and forward statements", func(t *testing.T) {
		text := "@import 'reset';\n@use \"theme/colors\";\n@forward 'mixins';\n"
		imports := extractor.ExtractImports(text)
		require.Len(t, imports, 3)

		assert.Equal(t, "reset", imports[0].Path)
		assert.Equal(t, 1, imports[0].LineNumber)
		assert.Equal(t, "theme/colors", imports[1].Path)
		assert.Equal(t, 2, imports[1].LineNumber)
		assert.Equal(t, "mixins", imports[2].Path)
	})

	t.Run("comma-separated import targets split", func(t *testing.T) {
		imports := extractor.ExtractImports("@import 'a', 'b';\n")
		require.Len(t, imports, 2)
		assert.Equal(t, "a", imports[0].Path)
		assert.Equal(t, "b", imports[1].Path)
		assert.Equal(t, 1, imports[1].LineNumber)
	})

	t.Run("partial detection", func(t *testing.T) {
		imports := extractor.ExtractImports(
			"@use '_colors.scss';\n@use 'colors';\n@use 'colors.scss';\n@use 'nested/_base.scss';\n")
		require.Len(t, imports, 4)
		assert.True(t, imports[0].IsPartial, "leading underscore")
		assert.True(t, imports[1].IsPartial, "no extension resolves against partials")
		assert.False(t, imports[2].IsPartial)
		assert.True(t, imports[3].IsPartial, "underscore on the basename, not the path")
	})

	t.Run("show clause yields imported items", func(t *testing.T) {
		imports := extractor.ExtractImports("@forward 'colors' show $brand, $muted;\n")
		require.Len(t, imports, 1)
		assert.Equal(t, []string{"brand", "muted"}, imports[0].ImportedItems)
	})

	t.Run("no imports", func(t *testing.T) {
		assert.Empty(t, extractor.ExtractImports("$a: 1px;\n"))
	})
}

func TestScanUsages(t *testing.T) {
	t.Run("property usage with selector context", func(t *testing.T) {
		text := ".btn {\n  color: $primary;\n  border: 1px solid $primary;\n}\n"
		usages := extractor.ScanUsages(text, "btn.scss")
		require.Len(t, usages, 2)

		assert.Equal(t, "primary", usages[0].Name)
		assert.Equal(t, ".btn", usages[0].Context.Selector)
		assert.Equal(t, "color", usages[0].Context.Property)
		assert.Equal(t, 2, usages[0].Context.LineNumber)
		assert.Equal(t, 1, usages[0].Context.NestingLevel)

		assert.Equal(t, "border", usages[1].Context.Property)
		assert.Equal(t, "1px solid $primary", usages[1].Context.Value)
	})

	t.Run("nested selectors flatten", func(t *testing.T) {
		text := ".card {\n  .title {\n    font-size: $heading;\n  }\n}\n"
		usages := extractor.ScanUsages(text, "card.scss")
		require.Len(t, usages, 1)
		assert.Equal(t, ".card .title", usages[0].Context.Selector)
		assert.Equal(t, 2, usages[0].Context.NestingLevel)
	})

	t.Run("media query inside a selector", func(t *testing.T) {
		text := ".nav {\n  @media (min-width: 768px) {\n    padding: $gutter;\n  }\n}\n"
		usages := extractor.ScanUsages(text, "nav.scss")
		require.Len(t, usages, 1)
		assert.Equal(t, ".nav", usages[0].Context.Selector)
		assert.Equal(t, "(min-width: 768px)", usages[0].Context.MediaQuery)
		assert.Equal(t, 2, usages[0].Context.NestingLevel)
	})

	t.Run("single-line blocks scan correctly", func(t *testing.T) {
		usages := extractor.ScanUsages(".h1 { font-size: $large; }", "h.scss")
		require.Len(t, usages, 1)
		assert.Equal(t, ".h1", usages[0].Context.Selector)
		assert.Equal(t, "font-size", usages[0].Context.Property)
	})

	t.Run("variable declarations are not usages", func(t *testing.T) {
		text := ".a {\n  $local: $base;\n  margin: $local;\n}\n"
		usages := extractor.ScanUsages(text, "a.scss")
		require.Len(t, usages, 1)
		assert.Equal(t, "local", usages[0].Name)
		assert.Equal(t, "margin", usages[0].Context.Property)
	})

	t.Run("top-level statements are not usages", func(t *testing.T) {
		assert.Empty(t, extractor.ScanUsages("$a: $b;\n", "top.scss"))
	})

	t.Run("properties without references are skipped", func(t *testing.T) {
		assert.Empty(t, extractor.ScanUsages(".a { color: red; }", "plain.scss"))
	})
}
