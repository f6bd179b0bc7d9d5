// Package importres defines the import-resolution hook: how @import/@use
// targets become variable definitions. The engine itself performs no I/O;
// anything that does lives behind the Resolver interface so filesystem or
// network-backed resolution can be substituted without touching the core.
package importres

import (
	"context"

	"bennypowers.dev/scssimpact/internal/variables"
)

// Resolver resolves an import target to the variable definitions it
// contributes. Implementations that read from a filesystem or network should
// honor ctx cancellation; this is the engine's only suspension point.
type Resolver interface {
	ResolveImportedFile(ctx context.Context, path string) (map[string]*variables.VariableDefinition, error)
}

// Noop is the default resolver: every import contributes nothing. Analysis
// continues with locally declared variables only.
type Noop struct{}

// ResolveImportedFile returns an empty mapping.
func (Noop) ResolveImportedFile(ctx context.Context, path string) (map[string]*variables.VariableDefinition, error) {
	return map[string]*variables.VariableDefinition{}, nil
}
