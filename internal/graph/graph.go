// Package graph builds and validates the variable dependency graph of one
// resolution context.
package graph

import (
	"fmt"
	"sort"

	"bennypowers.dev/scssimpact/internal/variables"
)

// DependencyGraph is a directed graph of variable dependencies.
type DependencyGraph struct {
	// adjacency list: variable name -> names it depends on
	dependencies map[string][]string
	// reverse lookup: variable name -> names that depend on it
	dependents map[string][]string
	// all variable names in the graph
	nodes map[string]bool
}

// Build constructs the graph from a set of definitions. Each definition's
// dependency list is filtered to names that exist in vars; dangling
// references are simply absent from the graph (they surface as resolution
// errors only when resolution actually reaches them). Build is pure and
// total: it cannot fail.
func Build(vars map[string]*variables.VariableDefinition) *DependencyGraph {
	g := &DependencyGraph{
		dependencies: make(map[string][]string),
		dependents:   make(map[string][]string),
		nodes:        make(map[string]bool),
	}

	for name := range vars {
		g.nodes[name] = true
	}

	for name, def := range vars {
		var deps []string
		for _, dep := range def.Dependencies {
			if g.nodes[dep] {
				deps = append(deps, dep)
			}
		}
		if len(deps) > 0 {
			g.dependencies[name] = deps
			for _, dep := range deps {
				g.dependents[dep] = append(g.dependents[dep], name)
			}
		}
	}

	// Dependent lists are built in map iteration order; sort them so
	// reports are stable across runs.
	for name := range g.dependents {
		sort.Strings(g.dependents[name])
	}

	return g
}

// Dependencies returns the names the given variable depends on.
func (g *DependencyGraph) Dependencies(name string) []string {
	if deps, ok := g.dependencies[name]; ok {
		return append([]string(nil), deps...)
	}
	return []string{}
}

// Dependents returns the names that depend directly on the given variable.
func (g *DependencyGraph) Dependents(name string) []string {
	if deps, ok := g.dependents[name]; ok {
		return append([]string(nil), deps...)
	}
	return []string{}
}

// AdjacencyMap returns a copy of the adjacency list, suitable for storing on
// a VariableResolutionContext.
func (g *DependencyGraph) AdjacencyMap() map[string][]string {
	m := make(map[string][]string, len(g.dependencies))
	for name, deps := range g.dependencies {
		m[name] = append([]string(nil), deps...)
	}
	return m
}

// Reachable returns the transitive closure of names reachable from start,
// including start itself, in depth-first preorder. This is the resolver's
// dependency chain, computed from the graph rather than the substitution
// recursion so it is available for cached results too.
func (g *DependencyGraph) Reachable(start string) []string {
	visited := make(map[string]bool)
	var order []string

	var visit func(node string)
	visit = func(node string) {
		if visited[node] {
			return
		}
		visited[node] = true
		order = append(order, node)
		for _, dep := range g.dependencies[node] {
			visit(dep)
		}
	}
	visit(start)

	return order
}

// HasCycle returns true if the graph contains a circular dependency.
func (g *DependencyGraph) HasCycle() bool {
	visited := make(map[string]bool)
	recStack := make(map[string]bool)

	for _, node := range g.sortedNodes() {
		if g.hasCycleDFS(node, visited, recStack) {
			return true
		}
	}

	return false
}

func (g *DependencyGraph) hasCycleDFS(node string, visited, recStack map[string]bool) bool {
	if recStack[node] {
		return true
	}
	if visited[node] {
		return false
	}

	visited[node] = true
	recStack[node] = true

	for _, dep := range g.dependencies[node] {
		if g.hasCycleDFS(dep, visited, recStack) {
			return true
		}
	}

	recStack[node] = false
	return false
}

// Detect validates that the graph is acyclic. On failure it returns a
// *variables.CircularDependencyError carrying the full cycle path, first and
// last element equal. filePath labels the error for diagnostics.
func (g *DependencyGraph) Detect(filePath string) error {
	if cycle := g.FindCycle(); cycle != nil {
		return variables.NewCircularDependencyError(filePath, cycle)
	}
	return nil
}

// FindCycle returns the cycle path if one exists, or nil if no cycle.
// Traversal starts from nodes in lexical order so the reported path is
// deterministic.
func (g *DependencyGraph) FindCycle() []string {
	visited := make(map[string]bool)
	recStack := make(map[string]bool)
	path := []string{}

	for _, node := range g.sortedNodes() {
		if cycle := g.findCycleDFS(node, visited, recStack, path); cycle != nil {
			return cycle
		}
	}

	return nil
}

func (g *DependencyGraph) findCycleDFS(node string, visited, recStack map[string]bool, path []string) []string {
	if recStack[node] {
		// Found a cycle: return the path from the repeated node.
		// Invariant: node must be in path because we append it immediately
		// after setting recStack[node] = true.
		cycleStart := -1
		for i, n := range path {
			if n == node {
				cycleStart = i
				break
			}
		}
		if cycleStart == -1 {
			panic(fmt.Sprintf("cycle detection invariant violated: node %q in recStack but not in path %v", node, path))
		}
		return append(append([]string(nil), path[cycleStart:]...), node)
	}
	if visited[node] {
		return nil
	}

	visited[node] = true
	recStack[node] = true
	path = append(path, node)

	for _, dep := range g.dependencies[node] {
		if cycle := g.findCycleDFS(dep, visited, recStack, path); cycle != nil {
			return cycle
		}
	}

	recStack[node] = false
	return nil
}

// TopologicalSort returns variable names in dependency order (dependencies
// first). Returns an error if the graph contains a cycle. Used by tooling to
// print a safe resolution order.
func (g *DependencyGraph) TopologicalSort() ([]string, error) {
	if err := g.Detect(""); err != nil {
		return nil, err
	}

	visited := make(map[string]bool)
	result := []string{}

	for _, node := range g.sortedNodes() {
		if !visited[node] {
			g.topologicalSortDFS(node, visited, &result)
		}
	}

	return result, nil
}

func (g *DependencyGraph) topologicalSortDFS(node string, visited map[string]bool, stack *[]string) {
	visited[node] = true

	for _, dep := range g.dependencies[node] {
		if !visited[dep] {
			g.topologicalSortDFS(dep, visited, stack)
		}
	}

	// Node follows its dependencies.
	*stack = append(*stack, node)
}

func (g *DependencyGraph) sortedNodes() []string {
	nodes := make([]string, 0, len(g.nodes))
	for node := range g.nodes {
		nodes = append(nodes, node)
	}
	sort.Strings(nodes)
	return nodes
}
