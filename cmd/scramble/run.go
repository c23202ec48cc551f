package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/hyp3rd/ewrap"
	"github.com/spf13/cobra"

	"github.com/san-kum/scramble/internal/analysis"
	"github.com/san-kum/scramble/internal/automation"
	"github.com/san-kum/scramble/internal/chaos"
	"github.com/san-kum/scramble/internal/config"
	"github.com/san-kum/scramble/internal/cycles"
	"github.com/san-kum/scramble/internal/experiment"
	"github.com/san-kum/scramble/internal/export"
	"github.com/san-kum/scramble/internal/optim"
	"github.com/san-kum/scramble/internal/scramble"
	"github.com/san-kum/scramble/internal/stats"
	"github.com/san-kum/scramble/internal/tui"
	"github.com/san-kum/scramble/internal/viz"
)

const labelWidth = 13

// resolveConfig merges defaults, preset, config file and flags, in that
// order. Flags only override when set explicitly.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, ewrap.Wrap(err, "load config")
		}
		cfg = loaded
	}
	if len(args) > 0 {
		cfg.Map = args[0]
	}

	kind, err := chaos.ParseKind(cfg.Map)
	if err != nil {
		return nil, err
	}
	cfg.Map = kind.String()

	if preset != "" {
		p := config.GetPreset(cfg.Map, preset)
		if p == nil {
			return nil, ewrap.Wrapf(chaos.ErrInvalidParameter, "unknown preset: %s (available: %v)", preset, config.ListPresets(cfg.Map))
		}
		p.Curve = cfg.Curve
		cfg = p
	} else if configFile == "" && len(args) > 0 && !cmd.Flags().Changed("a") {
		// a map given without a value for a starts from its first preset
		if names := config.ListPresets(cfg.Map); len(names) > 0 {
			cfg.A = config.GetPreset(cfg.Map, names[0]).A
		}
	}

	flags := cmd.Flags()
	if flags.Changed("a") {
		cfg.A = a
	}
	if flags.Changed("iterations") {
		cfg.Iterations = iterations
	}
	if flags.Changed("length") {
		cfg.Length = length
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("x0") {
		v := x0
		cfg.X0 = &v
	}
	if flags.Changed("from") {
		cfg.Curve.From = from
	}
	if flags.Changed("to") {
		cfg.Curve.To = to
	}
	if flags.Changed("step") {
		cfg.Curve.Step = step
	}
	if flags.Changed("seeds") {
		cfg.Curve.SeedsPerN = seedsPerN
	}
	if flags.Changed("workers") {
		cfg.Curve.Workers = workers
	}
	return cfg, nil
}

func runMenu(cmd *cobra.Command, args []string) error {
	sel, err := tui.Run()
	if err != nil {
		return err
	}
	if sel == nil {
		return nil
	}

	out := cmd.OutOrStdout()
	switch sel.Mode {
	case tui.ModeTable:
		s := time.Now().UnixNano()
		return printTable(out, sel.Param, sel.Iterations, sel.Length, experiment.InitialState(s), &s)
	case tui.ModeCurve:
		curve, err := computeCurve(cmd.Context(), sel.Param, sel.Iterations, stats.DefaultNs(),
			stats.DefaultSeedsPerN, config.DefaultWorkers)
		if err != nil {
			return err
		}
		printCurve(out, curve, 60, 12)
	}
	return nil
}

func runTable(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	p, err := cfg.Param()
	if err != nil {
		return err
	}

	var start float64
	var seedUsed *int64
	switch {
	case cfg.X0 != nil:
		start = *cfg.X0
	default:
		s := cfg.Seed
		if s == 0 && !cmd.Flags().Changed("seed") {
			s = time.Now().UnixNano()
		}
		seedUsed = &s
		start = experiment.InitialState(s)
	}

	return printTable(cmd.OutOrStdout(), p, cfg.Iterations, cfg.Length, start, seedUsed)
}

func printTable(out io.Writer, p chaos.Param, n, N int, start float64, seedUsed *int64) error {
	table, err := scramble.Generate(p, start, n, N)
	if err != nil {
		return err
	}
	if argsort {
		table = table.Inverse()
	}
	d := cycles.Analyze(table)

	if svgFile != "" {
		svg := export.CanvasToSVG(viz.DotPlot(table, 40, 20), 4)
		if err := os.WriteFile(svgFile, []byte(svg), 0644); err != nil {
			return ewrap.Wrap(err, "write svg")
		}
	}

	if jsonOut {
		in := export.TableInput{Map: p.Kind.String(), A: p.A, Iterations: n, X0: start, Seed: seedUsed, Argsort: argsort}
		return export.WriteJSON(out, export.NewTableReport(in, table, d))
	}

	label := "table"
	if argsort {
		label = "argsort"
	}

	fmt.Fprintln(out, viz.Title.Render(fmt.Sprintf("%s  n=%d  N=%d", p, n, N)))
	fmt.Fprintln(out, viz.KeyValue("x0", start, labelWidth))
	if seedUsed != nil {
		fmt.Fprintln(out, viz.KeyValue("seed", *seedUsed, labelWidth))
	}
	fmt.Fprintln(out, viz.KeyValue(label, viz.FormatTable(table, 16), labelWidth))
	fmt.Fprintln(out, viz.KeyValue("cycles", d.String(), labelWidth))
	fmt.Fprintln(out, viz.KeyValue("order", d.Order.String(), labelWidth))
	if N <= cycles.LandauLimit {
		fmt.Fprintln(out, viz.KeyValue("max order", cycles.Landau(N).String(), labelWidth))
	}
	fmt.Fprintln(out, viz.KeyValue("fingerprint", fmt.Sprintf("%016x", table.Fingerprint()), labelWidth))

	if plot {
		fmt.Fprintln(out)
		fmt.Fprint(out, viz.DotPlot(table, 40, 20).String())
	}
	return nil
}

func runCurve(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	p, err := cfg.Param()
	if err != nil {
		return err
	}
	ns, err := cfg.Ns()
	if err != nil {
		return err
	}

	curve, err := computeCurve(cmd.Context(), p, cfg.Iterations, ns, cfg.Curve.SeedsPerN, cfg.Curve.Workers)
	if err != nil {
		return err
	}

	if svgFile != "" {
		if err := writeCurveSVG([]*stats.Curve{curve}); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if jsonOut {
		return export.WriteJSON(out, export.NewCurveReport(curve))
	}
	printCurve(out, curve, width, height)
	return nil
}

func computeCurve(ctx context.Context, p chaos.Param, n int, ns []int, seeds, k int) (*stats.Curve, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	opts := []stats.Option{stats.WithWorkers(k)}
	if verbose {
		opts = append(opts, stats.WithProgress(func(done, total int) {
			fmt.Fprintf(os.Stderr, "\r  %s %s  %d/%d", p, viz.ProgressBar(float64(done)/float64(total), 30), done, total)
			if done == total {
				fmt.Fprintln(os.Stderr)
			}
		}))
	}

	start := time.Now()
	curve, err := stats.AverageOrderVsN(ctx, p, n, ns, seeds, opts...)
	if err != nil {
		return nil, err
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "  completed in %v\n", time.Since(start).Round(time.Millisecond))
	}
	return curve, nil
}

func printCurve(out io.Writer, c *stats.Curve, w, h int) {
	fmt.Fprintln(out, viz.Title.Render(fmt.Sprintf("%s  n=%d  seeds=%d", c.Param, c.Iterations, c.SeedsPerN)))
	for _, pt := range c.Points {
		fmt.Fprintf(out, "N=%d, mean order=%.2f\n", pt.N, pt.Mean)
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, viz.PlotCurve(c, w, h))
}

// parseMapArg parses "map:a", e.g. "logistic:3.9".
func parseMapArg(s string) (chaos.Param, error) {
	name, val, ok := strings.Cut(s, ":")
	if !ok {
		return chaos.Param{}, ewrap.Wrapf(chaos.ErrInvalidParameter, "%q: expected map:a", s)
	}
	kind, err := chaos.ParseKind(name)
	if err != nil {
		return chaos.Param{}, err
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
	if err != nil {
		return chaos.Param{}, ewrap.Wrapf(chaos.ErrInvalidParameter, "%q: bad value for a", s)
	}
	return chaos.NewParam(kind, v)
}

func runCompare(cmd *cobra.Command, args []string) error {
	params := make([]chaos.Param, len(args))
	for i, arg := range args {
		p, err := parseMapArg(arg)
		if err != nil {
			return err
		}
		params[i] = p
	}
	ns, err := stats.Range(from, to, step)
	if err != nil {
		return err
	}

	curves := make([]*stats.Curve, len(params))
	legends := make([]string, len(params))
	for i, p := range params {
		c, err := computeCurve(cmd.Context(), p, iterations, ns, seedsPerN, workers)
		if err != nil {
			return err
		}
		curves[i] = c
		legends[i] = p.String()
	}

	if svgFile != "" {
		if err := writeCurveSVG(curves); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if jsonOut {
		reports := make([]export.CurveReport, len(curves))
		for i, c := range curves {
			reports[i] = export.NewCurveReport(c)
		}
		return export.WriteJSON(out, reports)
	}

	fmt.Fprintln(out, viz.Title.Render(fmt.Sprintf("mean order  n=%d  seeds=%d", iterations, seedsPerN)))
	fmt.Fprintf(out, "%-6s", "N")
	for _, l := range legends {
		fmt.Fprintf(out, "%22s", l)
	}
	fmt.Fprintln(out)
	for j, N := range ns {
		fmt.Fprintf(out, "%-6d", N)
		for _, c := range curves {
			fmt.Fprintf(out, "%22.2f", c.Points[j].Mean)
		}
		fmt.Fprintln(out)
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, viz.PlotCurves(curves, legends, width, height))
	return nil
}

func writeCurveSVG(curves []*stats.Curve) error {
	svg := export.CurveToSVG(curves, 800, 400)
	if err := os.WriteFile(svgFile, []byte(svg), 0644); err != nil {
		return ewrap.Wrap(err, "write svg")
	}
	return nil
}

// paramFor returns a from the flag, or the map's first preset.
func paramFor(cmd *cobra.Command, name string) (chaos.Param, error) {
	kind, err := chaos.ParseKind(name)
	if err != nil {
		return chaos.Param{}, err
	}
	v := a
	if !cmd.Flags().Changed("a") {
		names := config.ListPresets(kind.String())
		v = config.GetPreset(kind.String(), names[0]).A
	}
	return chaos.NewParam(kind, v)
}

func runLyapunov(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	lcfg := analysis.DefaultLyapunovConfig()

	if sweep <= 0 {
		p, err := paramFor(cmd, args[0])
		if err != nil {
			return err
		}
		lambda, err := analysis.LyapunovExponent(p, orbitX0, lcfg)
		if err != nil {
			return err
		}
		verdict := "chaotic"
		if lambda <= 0 {
			verdict = "not chaotic from this x0"
		}
		fmt.Fprintln(out, viz.Title.Render(p.String()))
		fmt.Fprintln(out, viz.KeyValue("lyapunov", fmt.Sprintf("%.4f", lambda), labelWidth))
		fmt.Fprintln(out, viz.KeyValue("verdict", verdict, labelWidth))
		return nil
	}

	kind, err := chaos.ParseKind(args[0])
	if err != nil {
		return err
	}
	r := kind.Range()
	series := make([]float64, 0, sweep)
	finite := 0

	fmt.Fprintln(out, viz.Title.Render(fmt.Sprintf("%s  a in %s", kind, r)))
	for i := 1; i <= sweep; i++ {
		p, err := chaos.NewParam(kind, r.Min+(r.Max-r.Min)*float64(i)/float64(sweep+1))
		if err != nil {
			return err
		}
		lambda, err := analysis.LyapunovExponent(p, orbitX0, lcfg)
		switch {
		case errors.Is(err, analysis.ErrDiverged):
			fmt.Fprintf(out, "a=%-10.5f diverged\n", p.A)
			series = append(series, math.NaN())
			continue
		case err != nil:
			return err
		}
		fmt.Fprintf(out, "a=%-10.5f λ=%8.4f\n", p.A, lambda)
		if math.IsInf(lambda, -1) {
			lambda = math.NaN()
		} else {
			finite++
		}
		series = append(series, lambda)
	}

	if finite > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, asciigraph.Plot(series,
			asciigraph.Height(height),
			asciigraph.Width(width),
			asciigraph.Precision(2),
			asciigraph.SeriesColors(viz.CurrentTheme.Series[0]),
			asciigraph.Caption("lyapunov exponent vs a"),
		))
	}
	return nil
}

func runBifurcation(cmd *cobra.Command, args []string) error {
	kind, err := chaos.ParseKind(args[0])
	if err != nil {
		return err
	}
	data, err := analysis.BifurcationDiagram(kind, bifSteps, orbitX0, transient, record)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, viz.Title.Render(fmt.Sprintf("%s  a in %s", kind, kind.Range())))
	fmt.Fprint(out, analysis.BifurcationToASCII(data, width, height))
	return nil
}

func listMaps(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, viz.Title.Render("map families"))
	for _, k := range chaos.Kinds {
		fmt.Fprintf(out, "  %s %s  %s\n",
			viz.Value.Render(fmt.Sprintf("%-9s", k)),
			viz.Label.Render(fmt.Sprintf("%-12s", k.Range())),
			k.Description())
	}
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	kind, err := chaos.ParseKind(args[0])
	if err != nil {
		return err
	}
	presets := config.ListPresets(kind.String())
	if len(presets) == 0 {
		fmt.Fprintf(out, "no presets for map: %s\n", kind)
		return nil
	}
	fmt.Fprintf(out, "presets for %s:\n", kind)
	for _, name := range presets {
		p := config.GetPreset(kind.String(), name)
		fmt.Fprintf(out, "  %-8s a=%-6g n=%-3d N=%d\n", name, p.A, p.Iterations, p.Length)
	}
	return nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	kind, err := chaos.ParseKind(args[0])
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	g := optim.NewGridSearch(kind, gridSteps)
	res, err := g.Search(ctx, optim.MeanOrderAt(iterations, scoreN, seedsPerN, stats.WithWorkers(workers)))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, viz.Title.Render(fmt.Sprintf("%s  n=%d  N=%d  seeds=%d", kind, iterations, scoreN, seedsPerN)))
	for _, s := range res.Scores {
		if s.Err != nil {
			fmt.Fprintf(out, "a=%-10.5f %s\n", s.A, viz.ErrorStyle.Render(s.Err.Error()))
			continue
		}
		mark := " "
		if s.A == res.Best.A {
			mark = viz.SuccessMark.Render("◆")
		}
		fmt.Fprintf(out, "%s a=%-10.5f mean order=%.2f\n", mark, s.A, s.Value)
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, viz.KeyValue("best", res.Best, labelWidth))
	fmt.Fprintln(out, viz.KeyValue("mean order", fmt.Sprintf("%.2f", res.Value), labelWidth))
	if scoreN <= cycles.LandauLimit {
		fmt.Fprintln(out, viz.KeyValue("max order", cycles.Landau(scoreN).String(), labelWidth))
	}
	return nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	onStep := func(i, total int, step automation.ScenarioStep) {
		if verbose {
			fmt.Fprintf(os.Stderr, "running step %d/%d: %s %s\n", i+1, total, step.Mode, step.Map)
		}
	}
	results, err := automation.RunScenario(ctx, sc, onStep, stats.WithWorkers(workers))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOut {
		reports := make([]any, len(results))
		for i, r := range results {
			if r.Curve != nil {
				reports[i] = export.NewCurveReport(r.Curve)
				continue
			}
			seed := r.Step.Seed
			in := export.TableInput{Map: r.Param.Kind.String(), A: r.Param.A, Iterations: r.Step.Iterations, X0: r.X0, Seed: &seed}
			reports[i] = export.NewTableReport(in, r.Table, r.Cycles)
		}
		return export.WriteJSON(out, reports)
	}

	if sc.Name != "" {
		fmt.Fprintln(out, viz.Title.Render(sc.Name))
	}
	if sc.Description != "" {
		fmt.Fprintln(out, viz.Subtle.Render(sc.Description))
	}
	for i, r := range results {
		name := r.Step.Name
		if name == "" {
			name = fmt.Sprintf("step %d", i+1)
		}
		fmt.Fprintln(out)
		if r.Curve != nil {
			fmt.Fprintln(out, viz.Value.Render(name)+"  "+viz.Label.Render(fmt.Sprintf("%s  n=%d", r.Param, r.Step.Iterations)))
			for _, pt := range r.Curve.Points {
				fmt.Fprintf(out, "N=%d, mean order=%.2f\n", pt.N, pt.Mean)
			}
			continue
		}
		fmt.Fprintln(out, viz.Value.Render(name)+"  "+viz.Label.Render(fmt.Sprintf("%s  n=%d  N=%d", r.Param, r.Step.Iterations, len(r.Table))))
		fmt.Fprintln(out, viz.KeyValue("table", viz.FormatTable(r.Table, 16), labelWidth))
		fmt.Fprintln(out, viz.KeyValue("cycles", r.Cycles.String(), labelWidth))
		fmt.Fprintln(out, viz.KeyValue("order", r.Cycles.Order.String(), labelWidth))
	}
	return nil
}
