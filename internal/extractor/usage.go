package extractor

import (
	"strings"

	"bennypowers.dev/scssimpact/internal/variables"
)

// Usage pairs a referenced variable name with the property declaration that
// consumes it.
type Usage struct {
	Name    string
	Context variables.PropertyContext
}

// blockFrame is one open block on the scan stack: either a selector or an
// at-media condition.
type blockFrame struct {
	selector string
	media    string
}

// ScanUsages finds property declarations that consume variables, tracking the
// selector stack, enclosing media query and nesting level by brace counting.
// Statements are delimited by braces and semicolons at the byte level, so
// single-line blocks and multi-line values both scan correctly.
//
// Extraction itself leaves VariableDefinition.Usage empty; callers feed these
// records to VariableResolutionContext.RecordUsage.
func ScanUsages(text, filePath string) []Usage {
	text = NormalizeLineEndings(text)

	usages := []Usage{}
	var stack []blockFrame
	segStart := 0
	interps := 0

	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '{':
			if i > 0 && text[i-1] == '#' {
				interps++
				continue
			}
			head := strings.TrimSpace(text[segStart:i])
			frame := blockFrame{selector: head}
			if strings.HasPrefix(head, "@media") {
				frame = blockFrame{media: strings.TrimSpace(strings.TrimPrefix(head, "@media"))}
			}
			stack = append(stack, frame)
			segStart = i + 1
		case '}':
			if interps > 0 {
				interps--
				continue
			}
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
			segStart = i + 1
		case ';':
			if len(stack) > 0 {
				usages = appendStatementUsages(usages, text, text[segStart:i], segStart, filePath, stack)
			}
			segStart = i + 1
		}
	}

	return usages
}

// appendStatementUsages records one usage per variable referenced by a
// property declaration statement. Variable declarations and at-rules never
// match the property pattern.
func appendStatementUsages(usages []Usage, text, stmt string, stmtStart int, filePath string, stack []blockFrame) []Usage {
	trimmed := strings.TrimSpace(stmt)
	m := PropertyStatementRegexp.FindStringSubmatch(trimmed)
	if m == nil {
		return usages
	}

	property, value := m[1], strings.TrimSpace(m[2])
	refs := References(value)
	if len(refs) == 0 {
		return usages
	}

	offset := stmtStart + strings.Index(stmt, trimmed[:1])
	pctx := variables.PropertyContext{
		Selector:     joinSelectors(stack),
		Property:     property,
		Value:        value,
		LineNumber:   lineAt(text, offset),
		FilePath:     filePath,
		MediaQuery:   innerMedia(stack),
		NestingLevel: len(stack),
	}
	for _, name := range refs {
		usages = append(usages, Usage{Name: name, Context: pctx})
	}
	return usages
}

// joinSelectors composes the nested selector path, skipping media frames,
// in the same way nested SCSS flattens to a descendant selector.
func joinSelectors(stack []blockFrame) string {
	parts := make([]string, 0, len(stack))
	for _, f := range stack {
		if f.media == "" && f.selector != "" {
			parts = append(parts, f.selector)
		}
	}
	return strings.Join(parts, " ")
}

// innerMedia returns the innermost enclosing media condition, if any.
func innerMedia(stack []blockFrame) string {
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i].media != "" {
			return stack[i].media
		}
	}
	return ""
}
