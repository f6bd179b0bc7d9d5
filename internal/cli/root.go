// Package cli is the command surface over the analysis engine. It owns
// argument parsing and JSON output only; every semantic lives in the
// internal analysis packages.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"bennypowers.dev/scssimpact/internal/analyzer"
	"bennypowers.dev/scssimpact/internal/config"
	"bennypowers.dev/scssimpact/internal/importres"
	"bennypowers.dev/scssimpact/internal/log"
	"bennypowers.dev/scssimpact/internal/variables"
)

type rootFlags struct {
	configPath  string
	logLevel    string
	noUsageScan bool
	noImports   bool
}

// NewRootCmd builds the scss-impact command tree.
func NewRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:           "scss-impact",
		Short:         "Analyze SCSS variable dependencies and change impact",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flags.logLevel != "" {
				log.SetLevel(log.ParseLevel(flags.logLevel))
			}
		},
	}

	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "path to .scss-impact.json or .scss-impact.yaml")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "debug, info, warn or error")
	root.PersistentFlags().BoolVar(&flags.noUsageScan, "no-usage-scan", false, "skip property usage recording")
	root.PersistentFlags().BoolVar(&flags.noImports, "no-imports", false, "do not resolve imports from the filesystem")

	root.AddCommand(
		newAnalyzeCmd(flags),
		newResolveCmd(flags),
		newImpactCmd(flags),
		newCompareCmd(flags),
		newOrderCmd(flags),
	)

	return root
}

// loadConfig returns the configured or default settings and applies the
// configured log level. The --log-level flag, already applied in
// PersistentPreRun, takes precedence over the file.
func (f *rootFlags) loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if f.configPath != "" {
		loaded, err := config.Load(f.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if f.logLevel == "" {
		log.SetLevel(log.ParseLevel(cfg.LogLevel))
	}
	return cfg, nil
}

// analyzeFile runs the pipeline over one file, resolving imports relative to
// the file's directory unless disabled.
func (f *rootFlags) analyzeFile(ctx context.Context, path string) (*variables.VariableResolutionContext, error) {
	cfg, err := f.loadConfig()
	if err != nil {
		return nil, err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	opts := []analyzer.Option{analyzer.WithConfig(cfg)}
	if f.noUsageScan {
		opts = append(opts, analyzer.WithUsageScan(false))
	}
	if !f.noImports {
		fs := importres.NewFilesystem(filepath.Dir(path), cfg.ImportPatterns...)
		opts = append(opts, analyzer.WithImportResolver(fs))
	}

	return analyzer.AnalyzeContent(ctx, string(content), path, opts...)
}

// printJSON writes v to the command's stdout as indented JSON.
func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
