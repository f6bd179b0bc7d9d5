// Package compare diffs two independently built resolution contexts. It is a
// pure set-difference computation; neither context is mutated and no graph
// traversal happens here.
package compare

import (
	"sort"

	"bennypowers.dev/scssimpact/internal/variables"
)

// ModifiedVariable pairs the before and after definitions of one variable
// whose declaration changed between snapshots.
type ModifiedVariable struct {
	Variable string                        `json:"variable"`
	Before   *variables.VariableDefinition `json:"before"`
	After    *variables.VariableDefinition `json:"after"`
}

// ScopeChange reports a variable whose scope specifically differs.
type ScopeChange struct {
	Variable    string          `json:"variable"`
	BeforeScope variables.Scope `json:"beforeScope"`
	AfterScope  variables.Scope `json:"afterScope"`
}

// ContextComparison is the result of comparing a before and after snapshot.
type ContextComparison struct {
	// Added holds definitions present only in the after context.
	Added []*variables.VariableDefinition `json:"added"`

	// Removed holds definitions present only in the before context.
	Removed []*variables.VariableDefinition `json:"removed"`

	// Modified holds variables defined in both whose value, scope, default
	// flag or dependency list differ.
	Modified []ModifiedVariable `json:"modified"`

	// ScopeChanges is the subset of Modified where the scope differs.
	ScopeChanges []ScopeChange `json:"scopeChanges"`
}

// Contexts compares two resolution contexts. Membership is decided by key
// presence alone; modification by deep equality over value, scope, default
// flag and the (order-insensitive) dependency list. Results are sorted by
// variable name and built from clones, so neither input can be mutated
// through the comparison.
func Contexts(before, after *variables.VariableResolutionContext) *ContextComparison {
	cmp := &ContextComparison{
		Added:        []*variables.VariableDefinition{},
		Removed:      []*variables.VariableDefinition{},
		Modified:     []ModifiedVariable{},
		ScopeChanges: []ScopeChange{},
	}

	for _, name := range sortedNames(after.Variables) {
		if _, ok := before.Variables[name]; !ok {
			cmp.Added = append(cmp.Added, after.Variables[name].Clone())
		}
	}

	for _, name := range sortedNames(before.Variables) {
		b := before.Variables[name]
		a, ok := after.Variables[name]
		if !ok {
			cmp.Removed = append(cmp.Removed, b.Clone())
			continue
		}
		if definitionsEqual(b, a) {
			continue
		}
		cmp.Modified = append(cmp.Modified, ModifiedVariable{
			Variable: name,
			Before:   b.Clone(),
			After:    a.Clone(),
		})
		if b.Scope != a.Scope {
			cmp.ScopeChanges = append(cmp.ScopeChanges, ScopeChange{
				Variable:    name,
				BeforeScope: b.Scope,
				AfterScope:  a.Scope,
			})
		}
	}

	return cmp
}

// definitionsEqual compares the fields that constitute a modification:
// value, scope, the default flag and the dependency list.
func definitionsEqual(a, b *variables.VariableDefinition) bool {
	if a.Value != b.Value || a.Scope != b.Scope || a.IsDefault != b.IsDefault {
		return false
	}
	return dependenciesEqual(a.Dependencies, b.Dependencies)
}

// dependenciesEqual compares dependency lists as sets; extraction order is
// not significant.
func dependenciesEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	as := append([]string(nil), a...)
	bs := append([]string(nil), b...)
	sort.Strings(as)
	sort.Strings(bs)
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}

func sortedNames(vars map[string]*variables.VariableDefinition) []string {
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
