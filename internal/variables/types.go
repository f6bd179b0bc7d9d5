package variables

import "strings"

// Scope is the lexical region in which a variable declaration is visible.
type Scope string

const (
	// ScopeGlobal is a top-level declaration outside any block.
	ScopeGlobal Scope = "global"
	// ScopeLocal is a declaration nested inside a selector or block body.
	ScopeLocal Scope = "local"
	// ScopeMixin is a declaration in a @mixin or @function signature.
	ScopeMixin Scope = "mixin"
	// ScopeImported marks definitions merged in through import resolution.
	ScopeImported Scope = "imported"
	// ScopeFile, ScopeComponent and ScopeFunction are assigned by callers
	// that ingest whole file trees or component libraries; extraction never
	// produces them.
	ScopeFile      Scope = "file"
	ScopeComponent Scope = "component"
	ScopeFunction  Scope = "function"
)

// VariableDefinition is one declared SCSS variable. Names are unique within a
// context; redeclaration in source text overwrites the earlier definition
// (last-write-wins, matching how Sass evaluates a flat file).
type VariableDefinition struct {
	// Name is the identifier without the leading sigil.
	Name string `json:"name"`

	// Value is the raw right-hand side, trimmed, with !default/!global
	// modifiers stripped.
	Value string `json:"value"`

	// FilePath and LineNumber record where the declaration appeared.
	FilePath   string `json:"filePath"`
	LineNumber int    `json:"lineNumber"`

	// Scope is determined positionally at extraction time.
	Scope Scope `json:"scope"`

	// IsDefault is true when the declaration carries !default.
	IsDefault bool `json:"isDefault"`

	// IsGlobal is true when the declaration carries !global.
	IsGlobal bool `json:"isGlobal"`

	// Dependencies lists the other variable names referenced in Value,
	// deduplicated. Order is not significant.
	Dependencies []string `json:"dependencies"`

	// Usage records where the variable is consumed by a property. It is
	// empty at extraction time and populated by callers; the impact
	// analyzer reads it.
	Usage []PropertyContext `json:"usage,omitempty"`
}

// Ref returns the reference form of the variable, e.g. "$primary-color".
func (d *VariableDefinition) Ref() string {
	return "$" + d.Name
}

// DependsOn reports whether name appears in the definition's dependency list.
func (d *VariableDefinition) DependsOn(name string) bool {
	for _, dep := range d.Dependencies {
		if dep == name {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the definition. Contexts hand out clones so
// callers cannot mutate a built context through a returned definition.
func (d *VariableDefinition) Clone() *VariableDefinition {
	c := *d
	c.Dependencies = append([]string(nil), d.Dependencies...)
	c.Usage = append([]PropertyContext(nil), d.Usage...)
	return &c
}

// ScssImportInfo describes one @import/@use/@forward statement.
type ScssImportInfo struct {
	// Path is the import target as written, quotes stripped.
	Path string `json:"path"`

	// LineNumber is the 1-based line of the statement.
	LineNumber int `json:"lineNumber"`

	// IsPartial is true when the target follows the Sass partial convention
	// (leading underscore on the basename, or no extension).
	IsPartial bool `json:"isPartial"`

	// ImportedItems optionally lists symbol names the caller pre-resolved
	// for this import. Nil means "unknown, resolve everything".
	ImportedItems []string `json:"importedItems,omitempty"`
}

// PropertyContext describes one point of variable use: a property declaration
// inside a selector. It doubles as a resolution cache key component and as
// the unit returned by impact analysis.
type PropertyContext struct {
	Selector     string `json:"selector"`
	Property     string `json:"property"`
	Value        string `json:"value"`
	LineNumber   int    `json:"lineNumber"`
	FilePath     string `json:"filePath"`
	MediaQuery   string `json:"mediaQuery,omitempty"`
	NestingLevel int    `json:"nestingLevel"`
}

// Key returns the deduplication key for affected-property reporting:
// file, selector and property, ignoring value and position.
func (p PropertyContext) Key() string {
	return p.FilePath + "\x00" + p.Selector + "\x00" + p.Property
}

// VariableResolutionContext is the result of analyzing one snapshot of SCSS
// text. Once built it is immutable apart from usage recording; resolvers keep
// their cache privately, so the same context may back any number of
// resolution and impact queries.
type VariableResolutionContext struct {
	// FilePath labels the analyzed snapshot. Provenance only; the engine
	// performs no I/O against it.
	FilePath string `json:"filePath"`

	// Imports lists the import statements found in the text, in order.
	Imports []ScssImportInfo `json:"imports"`

	// Variables maps name to definition.
	Variables map[string]*VariableDefinition `json:"variables"`

	// Dependencies is the dependency graph adjacency: name to the subset of
	// its dependencies that exist in Variables. Dangling references stay in
	// the definition's own Dependencies list but are dropped here.
	Dependencies map[string][]string `json:"dependencies"`
}

// Variable looks up a definition by name.
func (c *VariableResolutionContext) Variable(name string) (*VariableDefinition, bool) {
	def, ok := c.Variables[name]
	return def, ok
}

// RecordUsage appends a usage site to the named variable's definition.
// Unknown names are ignored; usage of undeclared variables is a resolution
// error, not a recording error.
func (c *VariableResolutionContext) RecordUsage(name string, use PropertyContext) {
	if def, ok := c.Variables[name]; ok {
		def.Usage = append(def.Usage, use)
	}
}

// NormalizeName strips the sigil from a variable reference, so callers may
// pass either "$primary" or "primary" to the query surfaces.
func NormalizeName(name string) string {
	return strings.TrimPrefix(name, "$")
}
