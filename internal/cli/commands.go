package cli

import (
	"github.com/spf13/cobra"

	"bennypowers.dev/scssimpact/internal/analyzer"
	"bennypowers.dev/scssimpact/internal/graph"
	"bennypowers.dev/scssimpact/internal/impact"
	"bennypowers.dev/scssimpact/internal/variables"
)

func newAnalyzeCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze FILE",
		Short: "Extract variables, imports and the dependency graph from a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vctx, err := flags.analyzeFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, vctx)
		},
	}
}

func newResolveCmd(flags *rootFlags) *cobra.Command {
	var selector, property string

	cmd := &cobra.Command{
		Use:   "resolve FILE NAME",
		Short: "Resolve a variable to its final literal value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			vctx, err := flags.analyzeFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			res, err := analyzer.ResolveVariable(vctx, args[1], variables.PropertyContext{
				Selector: selector,
				Property: property,
				FilePath: args[0],
			})
			if err != nil {
				return err
			}
			return printJSON(cmd, res)
		},
	}

	cmd.Flags().StringVar(&selector, "selector", "", "selector context for the resolution")
	cmd.Flags().StringVar(&property, "property", "", "property context for the resolution")
	return cmd
}

func newImpactCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "impact FILE NAME NEWVALUE",
		Short: "Report the blast radius of changing a variable's value",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			vctx, err := flags.analyzeFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}
			analysis, err := impact.NewWithThresholds(vctx, cfg.Thresholds()).Analyze(args[1], args[2])
			if err != nil {
				return err
			}
			return printJSON(cmd, analysis)
		},
	}
}

func newCompareCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "compare BEFORE AFTER",
		Short: "Diff the variable sets of two files or file versions",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			before, err := flags.analyzeFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			after, err := flags.analyzeFile(cmd.Context(), args[1])
			if err != nil {
				return err
			}
			return printJSON(cmd, analyzer.CompareVariableContexts(before, after))
		},
	}
}

func newOrderCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "order FILE",
		Short: "Print variables in safe resolution order (dependencies first)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vctx, err := flags.analyzeFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			order, err := graph.Build(vctx.Variables).TopologicalSort()
			if err != nil {
				return err
			}
			return printJSON(cmd, order)
		},
	}
}
