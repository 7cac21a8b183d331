package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/physlab/internal/analysis"
	"github.com/san-kum/physlab/internal/canvas"
	"github.com/san-kum/physlab/internal/config"
	"github.com/san-kum/physlab/internal/engine"
	"github.com/san-kum/physlab/internal/export"
	"github.com/san-kum/physlab/internal/server"
	"github.com/san-kum/physlab/internal/sims"
	"github.com/san-kum/physlab/internal/store"
	"github.com/san-kum/physlab/internal/sweep"
	"github.com/san-kum/physlab/internal/viz"
)

var (
	dataDir    string
	dt         float64
	steps      int
	fps        int
	preset     string
	configFile string
	setParams  []string
	record     bool
	showFrame  bool
	svgOut     string
	addr       string
	varyParams []string
	workers    int
	objective  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "physlab",
		Short: "interactive physics, chemistry and math simulations",
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".physlab", "data directory")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list available simulations",
		RunE:  listSims,
	}

	describeCmd := &cobra.Command{
		Use:   "describe [slug]",
		Short: "show a simulation's parameters",
		Args:  cobra.ExactArgs(1),
		RunE:  describeSim,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [slug]",
		Short: "list presets for a simulation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names := config.ListPresets(args[0])
			if len(names) == 0 {
				fmt.Printf("no presets for: %s\n", args[0])
				return nil
			}
			sort.Strings(names)
			fmt.Printf("presets for %s:\n", args[0])
			for _, n := range names {
				fmt.Printf("  %s\n", n)
			}
			return nil
		},
	}

	runCmd := &cobra.Command{
		Use:   "run [slug]",
		Short: "run a simulation headless",
		Args:  cobra.ExactArgs(1),
		RunE:  runSim,
	}
	runCmd.Flags().Float64Var(&dt, "dt", 1.0/60, "frame time delta")
	runCmd.Flags().IntVar(&steps, "steps", 600, "number of frames")
	runCmd.Flags().StringVar(&preset, "preset", "", "named preset")
	runCmd.Flags().StringVar(&configFile, "config", "", "parameter overrides file (yaml)")
	runCmd.Flags().StringArrayVar(&setParams, "set", nil, "override a parameter, key=value")
	runCmd.Flags().BoolVar(&record, "record", false, "save the run for later analysis")
	runCmd.Flags().BoolVar(&showFrame, "frame", false, "print the final rendered frame")
	runCmd.Flags().StringVar(&svgOut, "svg", "", "save the final frame as SVG")

	liveCmd := &cobra.Command{
		Use:   "live [slug]",
		Short: "watch a simulation in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  liveSim,
	}
	liveCmd.Flags().IntVar(&fps, "fps", 30, "frame rate")
	liveCmd.Flags().StringVar(&preset, "preset", "", "named preset")
	liveCmd.Flags().StringVar(&configFile, "config", "", "parameter overrides file (yaml)")
	liveCmd.Flags().StringArrayVar(&setParams, "set", nil, "override a parameter, key=value")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "serve simulations to websocket clients",
		RunE:  serveSims,
	}
	serveCmd.Flags().StringVar(&addr, "addr", ":8420", "listen address")
	serveCmd.Flags().IntVar(&fps, "fps", 30, "frame rate")

	sweepCmd := &cobra.Command{
		Use:   "sweep [slug]",
		Short: "run a parameter grid and summarize each point",
		Args:  cobra.ExactArgs(1),
		RunE:  sweepSim,
	}
	sweepCmd.Flags().Float64Var(&dt, "dt", 1.0/60, "frame time delta")
	sweepCmd.Flags().IntVar(&steps, "steps", 600, "frames per grid point")
	sweepCmd.Flags().StringArrayVar(&varyParams, "vary", nil, "sweep a parameter, key=min:max:steps")
	sweepCmd.Flags().StringArrayVar(&setParams, "set", nil, "fix a parameter, key=value")
	sweepCmd.Flags().IntVar(&workers, "workers", 0, "concurrent grid points (0 = all cores)")
	sweepCmd.Flags().StringVar(&objective, "best", "", "report the point maximizing this summary column")

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "list recorded runs",
		RunE:  listRuns,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of a recorded run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	rootCmd.AddCommand(listCmd, describeCmd, presetsCmd, runCmd, liveCmd, serveCmd, sweepCmd, runsCmd, analyzeCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func listSims(cmd *cobra.Command, args []string) error {
	registry := sims.DefaultRegistry()
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SLUG\tNAME\tCATEGORY\tPARAMS")
	for _, slug := range registry.List() {
		e, err := registry.Lookup(slug)
		if err != nil {
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", e.Config.Slug, e.Config.Name, e.Config.Category, len(e.Config.ParamSpecs))
	}
	return w.Flush()
}

func describeSim(cmd *cobra.Command, args []string) error {
	registry := sims.DefaultRegistry()
	e, err := registry.Lookup(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("%s (%s)\n\n", e.Config.Name, e.Config.Slug)
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tLABEL\tRANGE\tDEFAULT\tUNIT")
	for _, s := range e.Config.ParamSpecs {
		rng := fmt.Sprintf("%g..%g", s.Min, s.Max)
		if s.Integer {
			rng += " (int)"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%g\t%s\n", s.Key, s.Label, rng, s.Default, s.Unit)
	}
	return w.Flush()
}

// resolveParams layers preset, config file, and --set overrides over the
// schema defaults, then normalizes.
func resolveParams(cfg config.SimConfig) (map[string]float64, error) {
	params := cfg.Defaults()

	if preset != "" {
		bag := config.GetPreset(cfg.Slug, preset)
		if bag == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(cfg.Slug))
		}
		for k, v := range bag {
			params[k] = v
		}
	}

	if configFile != "" {
		overrides, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		for k, v := range overrides[cfg.Slug] {
			params[k] = v
		}
	}

	for _, kv := range setParams {
		key, val, ok := strings.Cut(kv, "=")
		if !ok {
			return nil, fmt.Errorf("bad --set %q, want key=value", kv)
		}
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return nil, fmt.Errorf("bad --set %q: %w", kv, err)
		}
		params[key] = f
	}

	return config.Normalize(params, cfg.ParamSpecs), nil
}

func runSim(cmd *cobra.Command, args []string) error {
	registry := sims.DefaultRegistry()
	entry, err := registry.Lookup(args[0])
	if err != nil {
		return err
	}
	params, err := resolveParams(entry.Config)
	if err != nil {
		return err
	}

	surface := canvas.New(80, 28)
	sim := entry.New()
	if err := sim.Init(surface); err != nil {
		return err
	}
	defer sim.Destroy()

	probeSeries := make([]float64, 0, steps)
	probeName := ""
	for i := 0; i < steps; i++ {
		sim.Update(dt, engine.Params(params))
		if p, ok := sim.(engine.Probe); ok {
			probeName = p.ProbeName()
			probeSeries = append(probeSeries, p.ProbeValue())
		}
	}
	sim.Render()

	if showFrame {
		fmt.Println(surface.String())
	}
	if svgOut != "" {
		if err := export.WriteFile(svgOut, export.CanvasToSVG(surface, 3)); err != nil {
			return err
		}
	}
	fmt.Println(sim.StateDescription())

	if len(probeSeries) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(probeSeries, asciigraph.Height(10), asciigraph.Width(72), asciigraph.Caption(probeName)))
	}

	if record {
		st := store.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		meta := store.RunMetadata{
			Slug:        entry.Config.Slug,
			Timestamp:   time.Now(),
			Dt:          dt,
			Steps:       steps,
			Params:      params,
			Summary:     map[string]float64{},
			Description: sim.StateDescription(),
		}
		if len(probeSeries) > 0 {
			meta.Summary["final_"+probeName] = probeSeries[len(probeSeries)-1]
		}
		id, err := st.Save(meta, map[string][]float64{probeName: probeSeries})
		if err != nil {
			return err
		}
		fmt.Printf("\nrecorded run %s\n", id)
	}
	return nil
}

func liveSim(cmd *cobra.Command, args []string) error {
	registry := sims.DefaultRegistry()
	entry, err := registry.Lookup(args[0])
	if err != nil {
		return err
	}
	params, err := resolveParams(entry.Config)
	if err != nil {
		return err
	}
	return viz.Run(entry, params, fps)
}

func serveSims(cmd *cobra.Command, args []string) error {
	logger, err := zap.NewProduction()
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(sims.DefaultRegistry(), logger, fps)
	return srv.ListenAndServe(ctx, addr)
}

// parseAxis parses a --vary flag of the form key=min:max:steps.
func parseAxis(spec string) (sweep.Axis, error) {
	key, rest, ok := strings.Cut(spec, "=")
	if !ok {
		return sweep.Axis{}, fmt.Errorf("bad --vary %q, want key=min:max:steps", spec)
	}
	parts := strings.Split(rest, ":")
	if len(parts) != 3 {
		return sweep.Axis{}, fmt.Errorf("bad --vary %q, want key=min:max:steps", spec)
	}
	min, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return sweep.Axis{}, fmt.Errorf("bad --vary %q: %w", spec, err)
	}
	max, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return sweep.Axis{}, fmt.Errorf("bad --vary %q: %w", spec, err)
	}
	n, err := strconv.Atoi(parts[2])
	if err != nil {
		return sweep.Axis{}, fmt.Errorf("bad --vary %q: %w", spec, err)
	}
	return sweep.Axis{Key: key, Min: min, Max: max, Steps: n}, nil
}

func sweepSim(cmd *cobra.Command, args []string) error {
	registry := sims.DefaultRegistry()
	entry, err := registry.Lookup(args[0])
	if err != nil {
		return err
	}

	axes := make([]sweep.Axis, 0, len(varyParams))
	for _, spec := range varyParams {
		axis, err := parseAxis(spec)
		if err != nil {
			return err
		}
		axes = append(axes, axis)
	}

	base := entry.Config.Defaults()
	for _, kv := range setParams {
		key, val, ok := strings.Cut(kv, "=")
		if !ok {
			return fmt.Errorf("bad --set %q, want key=value", kv)
		}
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return fmt.Errorf("bad --set %q: %w", kv, err)
		}
		base[key] = f
	}

	s, err := sweep.New(entry, sweep.Config{
		Base:    base,
		Axes:    axes,
		Dt:      dt,
		Steps:   steps,
		Workers: workers,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	points, err := s.Run(ctx)
	if err != nil {
		return err
	}
	if len(points) == 0 {
		return nil
	}

	cols := make([]string, 0, len(points[0].Summary))
	for name := range points[0].Summary {
		cols = append(cols, name)
	}
	sort.Strings(cols)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	header := make([]string, 0, len(axes)+len(cols))
	for _, a := range axes {
		header = append(header, strings.ToUpper(a.Key))
	}
	for _, c := range cols {
		header = append(header, strings.ToUpper(c))
	}
	fmt.Fprintln(w, strings.Join(header, "\t"))
	for _, p := range points {
		row := make([]string, 0, len(header))
		for _, a := range axes {
			row = append(row, fmt.Sprintf("%g", p.Params[a.Key]))
		}
		for _, c := range cols {
			row = append(row, fmt.Sprintf("%.4f", p.Summary[c]))
		}
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if objective != "" {
		best, err := sweep.Best(points, objective, true)
		if err != nil {
			return err
		}
		fmt.Printf("\nbest %s=%.4f at", objective, best.Summary[objective])
		for _, a := range axes {
			fmt.Printf(" %s=%g", a.Key, best.Params[a.Key])
		}
		fmt.Println()
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no recorded runs")
		return nil
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSIM\tSTEPS\tWHEN")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", r.ID, r.Slug, r.Steps, r.Timestamp.Format(time.RFC3339))
	}
	return w.Flush()
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	series, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run %s (%s, %d steps at dt=%.4f)\n\n", meta.ID, meta.Slug, meta.Steps, meta.Dt)
	for name, data := range series {
		if len(data) < 8 {
			continue
		}
		period := analysis.DominantPeriod(data)
		fmt.Printf("%s: %d samples", name, len(data))
		if period > 0 {
			fmt.Printf(", dominant period %.1f samples (%.2f s)", period, period*meta.Dt)
		}
		fmt.Println()

		ps := analysis.PowerSpectrum(data)
		if len(ps) > 1 {
			fmt.Println(asciigraph.Plot(ps[1:], asciigraph.Height(8), asciigraph.Width(72), asciigraph.Caption("power spectrum")))
		}
		fmt.Println()
	}
	return nil
}
