package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/san-kum/scramble/internal/viz"
)

var (
	// table and curve
	a          float64
	iterations int
	length     int
	x0         float64
	seed       int64
	argsort    bool
	plot       bool
	// curve range
	from      int
	to        int
	step      int
	seedsPerN int
	workers   int
	// output
	jsonOut bool
	svgFile string
	width   int
	height  int
	// analysis
	sweep     int
	orbitX0   float64
	bifSteps  int
	gridSteps int
	scoreN    int
	transient int
	record    int
	// Config file
	configFile string
	// Preset name
	preset string

	theme   string
	verbose bool
)

// main registers the commands and runs the root command. Without a
// subcommand the interactive menu starts. Errors are printed on stderr and
// the process exits with status 1.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, viz.ErrorStyle.Render("error: "+err.Error()))
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "scramble",
		Short:         "chaotic-map permutation lab",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			viz.SetTheme(theme)
		},
		RunE: runMenu,
	}

	rootCmd.PersistentFlags().StringVar(&theme, "theme", "cyberpunk", "color theme ("+strings.Join(viz.ThemeNames(), ", ")+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "report progress on stderr")

	tableCmd := &cobra.Command{
		Use:   "table [map]",
		Short: "generate one scramble table and analyze its cycles",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runTable,
	}
	addMapFlags(tableCmd)
	tableCmd.Flags().IntVarP(&length, "length", "N", 16, "table length")
	tableCmd.Flags().Float64Var(&x0, "x0", 0, "initial state (default: drawn from --seed)")
	tableCmd.Flags().Int64Var(&seed, "seed", 0, "random seed for x0 (default: time based)")
	tableCmd.Flags().BoolVar(&argsort, "argsort", false, "print the sorting indices instead of the ranks")
	tableCmd.Flags().BoolVar(&plot, "plot", false, "draw the table as a dot plot")
	tableCmd.Flags().StringVar(&svgFile, "svg", "", "write the dot plot to an SVG file")
	tableCmd.Flags().BoolVar(&jsonOut, "json", false, "print a JSON report")

	curveCmd := &cobra.Command{
		Use:   "curve [map]",
		Short: "estimate the average order as a function of N",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runCurve,
	}
	addMapFlags(curveCmd)
	addRangeFlags(curveCmd)
	addOutputFlags(curveCmd)

	compareCmd := &cobra.Command{
		Use:   "compare [map:a] [map:a] ...",
		Short: "compare average order curves of several maps",
		Args:  cobra.MinimumNArgs(2),
		RunE:  runCompare,
	}
	compareCmd.Flags().IntVarP(&iterations, "iterations", "n", 5, "map iterations per entry")
	addRangeFlags(compareCmd)
	addOutputFlags(compareCmd)

	lyapunovCmd := &cobra.Command{
		Use:   "lyapunov [map]",
		Short: "estimate the Lyapunov exponent of a map",
		Args:  cobra.ExactArgs(1),
		RunE:  runLyapunov,
	}
	lyapunovCmd.Flags().Float64VarP(&a, "a", "a", 0, "map parameter (default: first preset)")
	lyapunovCmd.Flags().Float64Var(&orbitX0, "x0", 0.1, "initial state")
	lyapunovCmd.Flags().IntVar(&sweep, "sweep", 0, "sweep this many values of a across the range")
	lyapunovCmd.Flags().IntVar(&width, "width", 60, "plot width")
	lyapunovCmd.Flags().IntVar(&height, "height", 12, "plot height")

	bifurcationCmd := &cobra.Command{
		Use:   "bifurcation [map]",
		Short: "ascii bifurcation diagram over the parameter range",
		Args:  cobra.ExactArgs(1),
		RunE:  runBifurcation,
	}
	bifurcationCmd.Flags().IntVar(&bifSteps, "steps", 60, "parameter values to sample")
	bifurcationCmd.Flags().Float64Var(&orbitX0, "x0", 0.1, "initial state")
	bifurcationCmd.Flags().IntVar(&transient, "transient", 500, "iterations discarded before recording")
	bifurcationCmd.Flags().IntVar(&record, "record", 100, "iterations recorded per parameter")
	bifurcationCmd.Flags().IntVar(&width, "width", 60, "diagram width")
	bifurcationCmd.Flags().IntVar(&height, "height", 12, "diagram height")

	searchCmd := &cobra.Command{
		Use:   "search [map]",
		Short: "grid search the parameter range for the highest mean order",
		Args:  cobra.ExactArgs(1),
		RunE:  runSearch,
	}
	searchCmd.Flags().IntVar(&gridSteps, "steps", 10, "parameter values to try")
	searchCmd.Flags().IntVarP(&iterations, "iterations", "n", 5, "map iterations per entry")
	searchCmd.Flags().IntVarP(&scoreN, "length", "N", 20, "table length to score")
	searchCmd.Flags().IntVar(&seedsPerN, "seeds", 100, "trials per parameter value")
	searchCmd.Flags().IntVar(&workers, "workers", 1, "parallel trials")

	batchCmd := &cobra.Command{
		Use:   "batch [scenario.yaml]",
		Short: "run a scripted scenario of tables and curves",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}
	batchCmd.Flags().IntVar(&workers, "workers", 1, "parallel trials for curve steps")
	batchCmd.Flags().BoolVar(&jsonOut, "json", false, "print JSON reports")

	mapsCmd := &cobra.Command{
		Use:   "maps",
		Short: "list chaotic map families",
		Args:  cobra.NoArgs,
		RunE:  listMaps,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [map]",
		Short: "list available presets for a map",
		Args:  cobra.ExactArgs(1),
		RunE:  listPresets,
	}

	rootCmd.AddCommand(tableCmd, curveCmd, compareCmd, lyapunovCmd, bifurcationCmd, searchCmd, batchCmd, mapsCmd, presetsCmd)
	return rootCmd
}

func addMapFlags(cmd *cobra.Command) {
	cmd.Flags().Float64VarP(&a, "a", "a", 0, "map parameter")
	cmd.Flags().IntVarP(&iterations, "iterations", "n", 5, "map iterations per entry")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

func addRangeFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&from, "from", 10, "smallest N")
	cmd.Flags().IntVar(&to, "to", 30, "largest N")
	cmd.Flags().IntVar(&step, "step", 1, "N increment")
	cmd.Flags().IntVar(&seedsPerN, "seeds", 100, "trials per N")
	cmd.Flags().IntVar(&workers, "workers", 1, "parallel trials")
}

func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&jsonOut, "json", false, "print a JSON report")
	cmd.Flags().StringVar(&svgFile, "svg", "", "also write the plot to an SVG file")
	cmd.Flags().IntVar(&width, "width", 60, "plot width")
	cmd.Flags().IntVar(&height, "height", 12, "plot height")
}
