// Package analyzer runs the full analysis pipeline over one snapshot of SCSS
// text: extraction, import merging, usage scanning, graph construction and
// eager cycle detection. Its output, the VariableResolutionContext, backs
// every later resolution, impact and comparison query.
package analyzer

import (
	"context"

	"bennypowers.dev/scssimpact/internal/compare"
	"bennypowers.dev/scssimpact/internal/config"
	"bennypowers.dev/scssimpact/internal/extractor"
	"bennypowers.dev/scssimpact/internal/graph"
	"bennypowers.dev/scssimpact/internal/impact"
	"bennypowers.dev/scssimpact/internal/importres"
	"bennypowers.dev/scssimpact/internal/log"
	"bennypowers.dev/scssimpact/internal/resolver"
	"bennypowers.dev/scssimpact/internal/variables"
)

// Option configures AnalyzeContent.
type Option func(*options)

type options struct {
	imports    importres.Resolver
	scanUsages bool
}

// WithImportResolver plugs in an import resolution implementation. Without
// one, imports contribute no variables.
func WithImportResolver(r importres.Resolver) Option {
	return func(o *options) { o.imports = r }
}

// WithUsageScan toggles usage recording during analysis.
func WithUsageScan(enabled bool) Option {
	return func(o *options) { o.scanUsages = enabled }
}

// WithConfig applies a loaded configuration's usage-scan setting. Impact
// thresholds live on the impact analyzer, not the pipeline; see
// impact.NewWithThresholds.
func WithConfig(cfg *config.Config) Option {
	return func(o *options) {
		o.scanUsages = cfg.UsageScanEnabled()
	}
}

func newOptions(opts []Option) *options {
	o := &options{
		imports:    importres.Noop{},
		scanUsages: true,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// AnalyzeContent analyzes one snapshot of SCSS text and returns its
// resolution context. filePath is a provenance label only; the engine reads
// no files through it.
//
// Pipeline: extract definitions and imports, merge imported variables
// (locally defined names always win; import failures are warnings), record
// usages, build the dependency graph, and validate it is acyclic. A context
// that fails cycle detection is never returned, so resolvers only ever see
// graphs whose every reachable path terminates.
func AnalyzeContent(ctx context.Context, text, filePath string, opts ...Option) (*variables.VariableResolutionContext, error) {
	o := newOptions(opts)

	vars, err := extractor.Extract(text, filePath)
	if err != nil {
		return nil, err
	}

	vctx := &variables.VariableResolutionContext{
		FilePath:  filePath,
		Imports:   extractor.ExtractImports(text),
		Variables: vars,
	}

	mergeImports(ctx, vctx, o.imports)

	if o.scanUsages {
		for _, use := range extractor.ScanUsages(text, filePath) {
			vctx.RecordUsage(use.Name, use.Context)
		}
	}

	g := graph.Build(vctx.Variables)
	if err := g.Detect(filePath); err != nil {
		return nil, err
	}
	vctx.Dependencies = g.AdjacencyMap()

	return vctx, nil
}

// mergeImports resolves each import and merges the contributed definitions.
// Local definitions always win; merged definitions are re-scoped to
// imported. Failures never abort analysis.
func mergeImports(ctx context.Context, vctx *variables.VariableResolutionContext, r importres.Resolver) {
	for _, imp := range vctx.Imports {
		imported, err := r.ResolveImportedFile(ctx, imp.Path)
		if err != nil {
			log.Warn("%v", variables.NewImportResolutionError(imp.Path, err))
			continue
		}
		for name, def := range imported {
			if _, exists := vctx.Variables[name]; exists {
				continue
			}
			if len(imp.ImportedItems) > 0 && !contains(imp.ImportedItems, name) {
				continue
			}
			merged := def.Clone()
			merged.Scope = variables.ScopeImported
			vctx.Variables[name] = merged
		}
	}
}

func contains(items []string, name string) bool {
	for _, item := range items {
		if item == name {
			return true
		}
	}
	return false
}

// NewResolver creates a resolver bound to a built context.
func NewResolver(vctx *variables.VariableResolutionContext) *resolver.Resolver {
	return resolver.New(vctx)
}

// ResolveVariable resolves one variable in one property context.
func ResolveVariable(vctx *variables.VariableResolutionContext, name string, pctx variables.PropertyContext) (*resolver.Resolution, error) {
	return resolver.New(vctx).Resolve(name, pctx)
}

// AnalyzeVariableImpact reports the impact of a hypothetical change to one
// variable, using default thresholds.
func AnalyzeVariableImpact(vctx *variables.VariableResolutionContext, name, newValue string) (*impact.VariableImpactAnalysis, error) {
	return impact.New(vctx).Analyze(name, newValue)
}

// CompareVariableContexts diffs two built contexts.
func CompareVariableContexts(before, after *variables.VariableResolutionContext) *compare.ContextComparison {
	return compare.Contexts(before, after)
}
