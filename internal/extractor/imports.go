package extractor

import (
	"path"
	"strings"

	"bennypowers.dev/scssimpact/internal/variables"
)

// ExtractImports returns the @import/@use/@forward statements found in text,
// in source order. @import statements with comma-separated targets produce
// one record per target, all on the statement's line.
func ExtractImports(text string) []variables.ScssImportInfo {
	imports := []variables.ScssImportInfo{}

	for _, m := range ImportStatementRegexp.FindAllStringSubmatchIndex(text, -1) {
		body := text[m[4]:m[5]]
		line := lineAt(text, m[0])

		var items []string
		if show := ShowClauseRegexp.FindStringSubmatch(body); show != nil {
			items = splitSymbolList(show[1])
			body = body[:len(body)-len(show[0])]
		}

		for _, pm := range QuotedPathRegexp.FindAllStringSubmatch(body, -1) {
			target := pm[1]
			imports = append(imports, variables.ScssImportInfo{
				Path:          target,
				LineNumber:    line,
				IsPartial:     IsPartialPath(target),
				ImportedItems: items,
			})
		}
	}

	return imports
}

// IsPartialPath reports whether an import target follows the Sass partial
// convention: a leading underscore on the basename, or no file extension
// (which Sass resolves against partials first).
func IsPartialPath(target string) bool {
	base := path.Base(target)
	if strings.HasPrefix(base, "_") {
		return true
	}
	return path.Ext(base) == ""
}

// splitSymbolList splits a "show a, b, c" symbol list, stripping sigils so
// the names line up with VariableDefinition.Name.
func splitSymbolList(list string) []string {
	var items []string
	for _, part := range strings.Split(list, ",") {
		name := variables.NormalizeName(strings.TrimSpace(part))
		if name != "" {
			items = append(items, name)
		}
	}
	return items
}
