package variables

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for errors.Is checks across package boundaries.
var (
	// ErrParseFailure indicates the input was not textual at all.
	ErrParseFailure = errors.New("parse failure")

	// ErrCircularDependency indicates a variable reference cycle.
	ErrCircularDependency = errors.New("circular dependency detected")

	// ErrUnresolvedVariable indicates a reference to a name with no
	// definition in the context.
	ErrUnresolvedVariable = errors.New("unresolved variable")

	// ErrImportResolution indicates an import contributed no variables.
	// Always handled as a warning at the merge boundary, never fatal.
	ErrImportResolution = errors.New("import resolution failed")
)

// ParseError reports non-textual input. Malformed but textual SCSS never
// produces this; extraction degrades to a partial result instead.
type ParseError struct {
	FilePath string
	Reason   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse %s: %s", e.FilePath, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return ErrParseFailure
}

// NewParseError creates a new parse error.
func NewParseError(filePath, reason string) error {
	return &ParseError{FilePath: filePath, Reason: reason}
}

// CircularDependencyError carries the exact cycle path, first and last
// element equal, e.g. [a b c a].
type CircularDependencyError struct {
	FilePath string
	Path     []string
}

func (e *CircularDependencyError) Error() string {
	where := ""
	if e.FilePath != "" {
		where = " in " + e.FilePath
	}
	return fmt.Sprintf("circular variable dependency%s: %s", where, strings.Join(e.Path, " -> "))
}

func (e *CircularDependencyError) Unwrap() error {
	return ErrCircularDependency
}

// NewCircularDependencyError creates a new circular dependency error.
func NewCircularDependencyError(filePath string, path []string) error {
	return &CircularDependencyError{FilePath: filePath, Path: path}
}

// UnresolvedVariableError names the missing variable and the file context.
type UnresolvedVariableError struct {
	Name     string
	FilePath string
}

func (e *UnresolvedVariableError) Error() string {
	where := e.FilePath
	if where == "" {
		where = "context"
	}
	return fmt.Sprintf("variable $%s is not defined in %s", e.Name, where)
}

func (e *UnresolvedVariableError) Unwrap() error {
	return ErrUnresolvedVariable
}

// NewUnresolvedVariableError creates a new unresolved variable error.
func NewUnresolvedVariableError(name, filePath string) error {
	return &UnresolvedVariableError{Name: name, FilePath: filePath}
}

// ImportResolutionError wraps a failure from the import resolution hook.
type ImportResolutionError struct {
	ImportPath string
	Cause      error
}

func (e *ImportResolutionError) Error() string {
	return fmt.Sprintf("import %q resolved no variables: %v", e.ImportPath, e.Cause)
}

func (e *ImportResolutionError) Unwrap() error {
	return ErrImportResolution
}

// NewImportResolutionError creates a new import resolution error.
func NewImportResolutionError(importPath string, cause error) error {
	return &ImportResolutionError{ImportPath: importPath, Cause: cause}
}
