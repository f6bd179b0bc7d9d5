package extractor

import "regexp"

// Shared regex patterns for SCSS variable scanning. The engine is a
// tokenizer-level scanner, not a Sass grammar; these patterns define the
// identifier and statement boundaries everything else builds on.

// VariableReferenceRegexp matches a sigil-prefixed identifier anywhere in a
// value. The identifier run is maximal, so "$base-dark" never matches as
// "$base" followed by "-dark". References inside calc(), #{...} and nested
// function arguments match like any other.
var VariableReferenceRegexp = regexp.MustCompile(`\$([a-zA-Z_][a-zA-Z0-9_-]*)`)

// VariableDeclarationHeadRegexp matches the head of a declaration:
// "$name" followed by a colon. The value is scanned separately because it
// may contain parenthesized commas and nested function calls that a single
// statement regex cannot terminate correctly.
var VariableDeclarationHeadRegexp = regexp.MustCompile(`\$([a-zA-Z_][a-zA-Z0-9_-]*)\s*:`)

// ImportStatementRegexp matches @import/@use/@forward statements up to the
// terminating semicolon.
var ImportStatementRegexp = regexp.MustCompile(`@(import|use|forward)\s+([^;]+);`)

// QuotedPathRegexp extracts quoted targets from an import statement body.
var QuotedPathRegexp = regexp.MustCompile(`['"]([^'"]+)['"]`)

// ShowClauseRegexp captures the symbol list of a "show" clause on
// @use/@forward statements.
var ShowClauseRegexp = regexp.MustCompile(`\bshow\s+([^;]+)$`)

// PropertyStatementRegexp matches a CSS property declaration statement,
// already stripped of its terminating semicolon: "property: value". Variable
// declarations and at-rules never match because the property name must start
// with a letter or custom-property dashes.
var PropertyStatementRegexp = regexp.MustCompile(`(?s)^(-{0,2}[a-zA-Z][a-zA-Z0-9-]*)\s*:\s*(.+)$`)

// DefaultFlagRegexp and GlobalFlagRegexp detect declaration modifiers.
// They are stripped from the stored value.
var (
	DefaultFlagRegexp = regexp.MustCompile(`\s*!default\b`)
	GlobalFlagRegexp  = regexp.MustCompile(`\s*!global\b`)
)

// mixinKeywordRegexp finds @mixin/@function keywords for positional scope
// determination.
var mixinKeywordRegexp = regexp.MustCompile(`@(?:mixin|function)\b`)
