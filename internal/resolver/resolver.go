// Package resolver recursively substitutes variable references to produce
// final literal values. Substitution is purely textual: no arithmetic, color
// or unit evaluation happens here, so "$base * 1.5" with $base: 16px
// resolves to "16px * 1.5".
package resolver

import (
	"bennypowers.dev/scssimpact/internal/extractor"
	"bennypowers.dev/scssimpact/internal/graph"
	"bennypowers.dev/scssimpact/internal/variables"
)

// Resolution is the result of resolving one variable in one property context.
type Resolution struct {
	// Value is the fully substituted literal.
	Value string `json:"value"`

	// Definition is a copy of the resolved variable's definition; mutating
	// it does not touch the resolver's context.
	Definition *variables.VariableDefinition `json:"definition"`

	// DependencyChain is the full transitive closure reachable from the
	// variable, starting with the variable itself.
	DependencyChain []string `json:"dependencyChain"`
}

type cacheKey struct {
	name     string
	selector string
	property string
}

// Resolver resolves variables against one VariableResolutionContext. The
// memoization cache is private to the resolver and not safe for concurrent
// use; give each analysis task its own context and resolver pair.
type Resolver struct {
	ctx   *variables.VariableResolutionContext
	graph *graph.DependencyGraph
	cache map[cacheKey]string
}

// New creates a resolver for the given context.
func New(ctx *variables.VariableResolutionContext) *Resolver {
	return &Resolver{
		ctx:   ctx,
		graph: graph.Build(ctx.Variables),
		cache: make(map[cacheKey]string),
	}
}

// Resolve resolves name within the given property context. The name may
// carry its sigil or not.
//
// Results are memoized by (name, selector, property); only the terminal
// literal is cached, the dependency chain is recomputed from the graph on
// every call. The cache is written only on a fully successful top-level
// return, so an abandoned resolution never leaves partial entries behind.
func (r *Resolver) Resolve(name string, pctx variables.PropertyContext) (*Resolution, error) {
	name = variables.NormalizeName(name)

	def, ok := r.ctx.Variable(name)
	if !ok {
		return nil, variables.NewUnresolvedVariableError(name, r.ctx.FilePath)
	}

	key := cacheKey{name: name, selector: pctx.Selector, property: pctx.Property}
	if value, ok := r.cache[key]; ok {
		return &Resolution{
			Value:           value,
			Definition:      def.Clone(),
			DependencyChain: r.graph.Reachable(name),
		}, nil
	}

	value, err := r.resolve(name, nil)
	if err != nil {
		return nil, err
	}

	r.cache[key] = value
	return &Resolution{
		Value:           value,
		Definition:      def.Clone(),
		DependencyChain: r.graph.Reachable(name),
	}, nil
}

// resolve substitutes references in name's value depth-first. The chain is
// copied forward on every recursion so sibling branches cannot contaminate
// one another; re-entry of a name already on the chain is a circular
// dependency even if the eager whole-graph check missed it from its
// traversal order.
func (r *Resolver) resolve(name string, chain []string) (string, error) {
	for i, n := range chain {
		if n == name {
			cycle := append(append([]string(nil), chain[i:]...), name)
			return "", variables.NewCircularDependencyError(r.ctx.FilePath, cycle)
		}
	}

	def, ok := r.ctx.Variable(name)
	if !ok {
		return "", variables.NewUnresolvedVariableError(name, r.ctx.FilePath)
	}

	next := make([]string, len(chain), len(chain)+1)
	copy(next, chain)
	next = append(next, name)

	resolved := make(map[string]string)
	for _, ref := range extractor.References(def.Value) {
		value, err := r.resolve(ref, next)
		if err != nil {
			return "", err
		}
		resolved[ref] = value
	}

	return substitute(def.Value, resolved), nil
}

// substitute splices resolved values over every reference occurrence in a
// single pass. The reference pattern consumes the maximal identifier, so a
// resolved "$base" never corrupts a "$base-dark" occurrence.
func substitute(value string, resolved map[string]string) string {
	matches := extractor.VariableReferenceRegexp.FindAllStringSubmatchIndex(value, -1)
	if len(matches) == 0 {
		return value
	}

	var out []byte
	last := 0
	for _, m := range matches {
		name := value[m[2]:m[3]]
		replacement, ok := resolved[name]
		if !ok {
			continue
		}
		out = append(out, value[last:m[0]]...)
		out = append(out, replacement...)
		last = m[1]
	}
	out = append(out, value[last:]...)
	return string(out)
}
