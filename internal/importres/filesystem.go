package importres

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"

	"bennypowers.dev/scssimpact/internal/extractor"
	"bennypowers.dev/scssimpact/internal/variables"
)

// DefaultPatterns admits any SCSS file under the root.
var DefaultPatterns = []string{"**/*.scss"}

// Filesystem resolves imports against a directory tree following the Sass
// partial conventions: "buttons" may live at buttons.scss, _buttons.scss,
// buttons/_index.scss or buttons/index.scss. A resolved file must match one
// of the configured doublestar glob patterns, so callers can fence analysis
// into the style tree and keep vendored directories out.
type Filesystem struct {
	root     string
	patterns []string
}

// NewFilesystem creates a filesystem resolver rooted at root. With no
// patterns, DefaultPatterns applies.
func NewFilesystem(root string, patterns ...string) *Filesystem {
	if len(patterns) == 0 {
		patterns = DefaultPatterns
	}
	return &Filesystem{root: root, patterns: patterns}
}

// ResolveImportedFile locates the file behind an import target and extracts
// its variable definitions. Missing files and pattern mismatches are errors;
// the analyzer treats them as warnings at the merge boundary.
func (f *Filesystem) ResolveImportedFile(ctx context.Context, target string) (map[string]*variables.VariableDefinition, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resolved, err := f.locate(target)
	if err != nil {
		return nil, err
	}

	if err := f.checkPatterns(resolved); err != nil {
		return nil, err
	}

	content, err := os.ReadFile(resolved)
	if err != nil {
		return nil, err
	}

	return extractor.Extract(string(content), resolved)
}

// locate tries the partial-convention candidates in Sass resolution order.
func (f *Filesystem) locate(target string) (string, error) {
	dir, base := filepath.Split(filepath.FromSlash(target))

	candidates := []string{
		filepath.Join(dir, "_"+base+".scss"),
		filepath.Join(dir, base+".scss"),
		filepath.Join(dir, base),
		filepath.Join(dir, base, "_index.scss"),
		filepath.Join(dir, base, "index.scss"),
	}

	for _, candidate := range candidates {
		full := filepath.Join(f.root, candidate)
		if info, err := os.Stat(full); err == nil && !info.IsDir() {
			return full, nil
		}
	}

	return "", fmt.Errorf("no file for import %q under %s", target, f.root)
}

// checkPatterns requires the resolved path to match a configured glob.
func (f *Filesystem) checkPatterns(resolved string) error {
	rel, err := filepath.Rel(f.root, resolved)
	if err != nil {
		return err
	}
	// doublestar matches forward slashes regardless of platform.
	rel = filepath.ToSlash(rel)

	for _, pattern := range f.patterns {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return nil
		}
	}
	return fmt.Errorf("resolved import %s matches no configured pattern", rel)
}
