// Package extractor scans raw SCSS text for variable declarations, import
// statements and variable usages. It is deliberately a tokenizer, not a
// parser: statement boundaries are recovered by brace and paren counting,
// and malformed input degrades to a partial result instead of failing.
package extractor

import (
	"strings"
	"unicode/utf8"

	"bennypowers.dev/scssimpact/internal/collections"
	"bennypowers.dev/scssimpact/internal/variables"
)

// Extract scans text and returns one VariableDefinition per declared name.
// Redeclaration overwrites the earlier definition (last-write-wins).
//
// Extraction is idempotent and has no side effects. The only error it can
// return is a ParseError for non-textual input; syntactically incomplete
// SCSS yields whatever definitions were successfully parsed.
func Extract(text, filePath string) (map[string]*variables.VariableDefinition, error) {
	if err := checkTextual(text, filePath); err != nil {
		return nil, err
	}

	defs := make(map[string]*variables.VariableDefinition)

	matches := VariableDeclarationHeadRegexp.FindAllStringSubmatchIndex(text, -1)
	for _, m := range matches {
		// m[0]:m[1] is the full "$name :" head, m[2]:m[3] the name.
		name := text[m[2]:m[3]]
		rawValue, ok := scanValue(text, m[1])
		if !ok {
			// Unterminated statement: skip it, keep everything else.
			continue
		}

		value, isDefault, isGlobal := stripModifiers(rawValue)

		defs[name] = &variables.VariableDefinition{
			Name:         name,
			Value:        value,
			FilePath:     filePath,
			LineNumber:   lineAt(text, m[0]),
			Scope:        scopeAt(text, m[0]),
			IsDefault:    isDefault,
			IsGlobal:     isGlobal,
			Dependencies: References(value),
		}
	}

	return defs, nil
}

// References returns the deduplicated variable names referenced in value, in
// first-seen order. Every sigil-prefixed identifier counts, including those
// inside calc(), #{...} and nested function arguments.
func References(value string) []string {
	seen := collections.NewSet[string]()
	refs := []string{}
	for _, m := range VariableReferenceRegexp.FindAllStringSubmatch(value, -1) {
		name := m[1]
		if seen.Has(name) {
			continue
		}
		seen.Add(name)
		refs = append(refs, name)
	}
	return refs
}

// NormalizeLineEndings normalizes line endings to LF for consistent offsets.
func NormalizeLineEndings(content string) string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	return content
}

// checkTextual rejects input that is not text at all: invalid UTF-8 or
// embedded NUL bytes. Anything else, however broken as SCSS, is scanned.
func checkTextual(text, filePath string) error {
	if !utf8.ValidString(text) {
		return variables.NewParseError(filePath, "content is not valid UTF-8")
	}
	if strings.ContainsRune(text, 0) {
		return variables.NewParseError(filePath, "content contains NUL bytes")
	}
	return nil
}

// scanValue reads a declaration value starting at offset (just past the
// colon) up to its statement terminator. Parens are tracked so function
// arguments and map literals may contain semicolon-free commas; the value
// ends at ";", or at an unbalanced ")" (a default in a @mixin/@function
// signature), or at a block brace at paren depth zero. A value that runs to
// EOF is unterminated and reports !ok.
func scanValue(text string, offset int) (string, bool) {
	parens := 0
	interps := 0
	for i := offset; i < len(text); i++ {
		switch text[i] {
		case '(':
			parens++
		case ')':
			if parens == 0 {
				return strings.TrimSpace(text[offset:i]), true
			}
			parens--
		case ';':
			return strings.TrimSpace(text[offset:i]), true
		case '{':
			// Interpolation "#{" is part of the value, not a block.
			if i > offset && text[i-1] == '#' {
				interps++
				continue
			}
			if parens == 0 {
				return strings.TrimSpace(text[offset:i]), true
			}
		case '}':
			if interps > 0 {
				interps--
				continue
			}
			if parens == 0 {
				return strings.TrimSpace(text[offset:i]), true
			}
		}
	}
	return "", false
}

// stripModifiers removes !default and !global from a raw value and reports
// which were present.
func stripModifiers(raw string) (value string, isDefault, isGlobal bool) {
	isDefault = DefaultFlagRegexp.MatchString(raw)
	isGlobal = GlobalFlagRegexp.MatchString(raw)
	value = DefaultFlagRegexp.ReplaceAllString(raw, "")
	value = GlobalFlagRegexp.ReplaceAllString(value, "")
	return strings.TrimSpace(value), isDefault, isGlobal
}

// scopeAt determines the syntactic scope of a declaration at the given byte
// offset:
//
//  1. more unmatched "{" than "}" before the offset: the declaration sits
//     inside a block body, scope is local;
//  2. otherwise, an enclosing @mixin/@function whose block has not yet
//     opened (the declaration is a signature default): scope is mixin;
//  3. otherwise global.
func scopeAt(text string, offset int) variables.Scope {
	// Raw brace counts stay balanced across interpolations because "#{"
	// contributes both the open and its matching close.
	before := text[:offset]
	if strings.Count(before, "{") > strings.Count(before, "}") {
		return variables.ScopeLocal
	}
	if locs := mixinKeywordRegexp.FindAllStringIndex(before, -1); len(locs) > 0 {
		last := locs[len(locs)-1]
		if !strings.Contains(before[last[1]:], "{") {
			return variables.ScopeMixin
		}
	}
	return variables.ScopeGlobal
}

// lineAt returns the 1-based line number of a byte offset.
func lineAt(text string, offset int) int {
	return strings.Count(text[:offset], "\n") + 1
}
