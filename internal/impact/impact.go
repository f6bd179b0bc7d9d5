// Package impact walks the dependency graph to report the blast radius of a
// hypothetical variable change: cascading variables, affected property
// usages, and a scope/risk classification.
package impact

import (
	"sort"

	"bennypowers.dev/scssimpact/internal/collections"
	"bennypowers.dev/scssimpact/internal/graph"
	"bennypowers.dev/scssimpact/internal/variables"
)

// ImpactScope classifies the breadth of an impact.
type ImpactScope string

const (
	// ScopeLocal means every affected property shares one file.
	ScopeLocal ImpactScope = "local"
	// ScopeComponent means the impact spreads across a handful of files.
	ScopeComponent ImpactScope = "component"
	// ScopeGlobal means the impact crosses the component threshold.
	ScopeGlobal ImpactScope = "global"
)

// RiskLevel classifies how risky a change is.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Thresholds holds the classification boundaries. The defaults match the
// engine's documented behavior; configuration may widen or narrow them.
type Thresholds struct {
	// LowRiskMax is the largest affected+cascading total still low risk.
	LowRiskMax int
	// MediumRiskMax is the largest total still medium risk.
	MediumRiskMax int
	// ComponentFileMax is the largest file spread still component scope.
	ComponentFileMax int
}

// DefaultThresholds returns the standard classification boundaries.
func DefaultThresholds() Thresholds {
	return Thresholds{LowRiskMax: 5, MediumRiskMax: 20, ComponentFileMax: 5}
}

// VariableImpactAnalysis reports the downstream effect of changing one
// variable to a hypothetical new value.
type VariableImpactAnalysis struct {
	Variable     string `json:"variable"`
	CurrentValue string `json:"currentValue"`
	NewValue     string `json:"newValue"`

	// DirectDependents lists the graph's stored out-edges of the variable:
	// the names the changed variable itself depends on. Historical naming,
	// preserved deliberately; see DESIGN.md and the tests that pin it.
	DirectDependents []string `json:"directDependents"`

	// CascadingVariables lists every other definition whose own dependency
	// list contains the variable. First-order only, deduplicated.
	CascadingVariables []string `json:"cascadingVariables"`

	// AffectedProperties is the union of the variable's and the cascading
	// variables' recorded usages, deduplicated by (file, selector,
	// property).
	AffectedProperties []variables.PropertyContext `json:"affectedProperties"`

	ImpactScope ImpactScope `json:"impactScope"`
	RiskLevel   RiskLevel   `json:"riskLevel"`

	// Recommendations is a deterministic, rule-based advisory list; it is
	// guidance, not a correctness guarantee.
	Recommendations []string `json:"recommendations"`
}

// Analyzer answers impact queries against one context. It never mutates the
// context.
type Analyzer struct {
	ctx        *variables.VariableResolutionContext
	graph      *graph.DependencyGraph
	thresholds Thresholds
}

// New creates an impact analyzer with default thresholds.
func New(ctx *variables.VariableResolutionContext) *Analyzer {
	return NewWithThresholds(ctx, DefaultThresholds())
}

// NewWithThresholds creates an impact analyzer with custom thresholds.
func NewWithThresholds(ctx *variables.VariableResolutionContext, t Thresholds) *Analyzer {
	return &Analyzer{
		ctx:        ctx,
		graph:      graph.Build(ctx.Variables),
		thresholds: t,
	}
}

// Analyze reports the impact of setting name to newValue. The name may carry
// its sigil or not. Unknown names are an UnresolvedVariableError.
func (a *Analyzer) Analyze(name, newValue string) (*VariableImpactAnalysis, error) {
	name = variables.NormalizeName(name)

	def, ok := a.ctx.Variable(name)
	if !ok {
		return nil, variables.NewUnresolvedVariableError(name, a.ctx.FilePath)
	}

	cascading := a.cascadingVariables(name)
	affected := a.affectedProperties(name, cascading)

	analysis := &VariableImpactAnalysis{
		Variable:           name,
		CurrentValue:       def.Value,
		NewValue:           newValue,
		DirectDependents:   a.graph.Dependencies(name),
		CascadingVariables: cascading,
		AffectedProperties: affected,
		ImpactScope:        a.classifyScope(affected),
		RiskLevel:          a.classifyRisk(len(affected) + len(cascading)),
	}
	analysis.Recommendations = recommendations(analysis)

	return analysis, nil
}

// cascadingVariables scans every definition's own dependency list for a
// first-order reference to name.
func (a *Analyzer) cascadingVariables(name string) []string {
	seen := collections.NewSet[string]()
	for other, def := range a.ctx.Variables {
		if other == name {
			continue
		}
		if def.DependsOn(name) {
			seen.Add(other)
		}
	}
	return collections.SortedMembers(seen)
}

// affectedProperties unions the recorded usages of name and its cascading
// variables, deduplicated by (file, selector, property).
func (a *Analyzer) affectedProperties(name string, cascading []string) []variables.PropertyContext {
	names := append([]string{name}, cascading...)

	seen := collections.NewSet[string]()
	var affected []variables.PropertyContext
	for _, n := range names {
		def, ok := a.ctx.Variable(n)
		if !ok {
			continue
		}
		for _, use := range def.Usage {
			if seen.Has(use.Key()) {
				continue
			}
			seen.Add(use.Key())
			affected = append(affected, use)
		}
	}

	sort.Slice(affected, func(i, j int) bool {
		if affected[i].FilePath != affected[j].FilePath {
			return affected[i].FilePath < affected[j].FilePath
		}
		if affected[i].Selector != affected[j].Selector {
			return affected[i].Selector < affected[j].Selector
		}
		return affected[i].Property < affected[j].Property
	})

	return affected
}

func (a *Analyzer) classifyScope(affected []variables.PropertyContext) ImpactScope {
	files := collections.NewSet[string]()
	for _, p := range affected {
		files.Add(p.FilePath)
	}
	switch {
	case len(files) <= 1:
		return ScopeLocal
	case len(files) <= a.thresholds.ComponentFileMax:
		return ScopeComponent
	default:
		return ScopeGlobal
	}
}

func (a *Analyzer) classifyRisk(total int) RiskLevel {
	switch {
	case total <= a.thresholds.LowRiskMax:
		return RiskLow
	case total <= a.thresholds.MediumRiskMax:
		return RiskMedium
	default:
		return RiskHigh
	}
}
