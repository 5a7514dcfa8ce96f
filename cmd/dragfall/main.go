package main

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/averdu/dragfall/internal/config"
	"github.com/averdu/dragfall/internal/fall"
	"github.com/averdu/dragfall/internal/storage"
	"github.com/averdu/dragfall/internal/viz"
)

var (
	dataDir       string
	tMax          float64
	points        int
	mass          float64
	drag          float64
	gravity       float64
	v0            float64
	label         string
	scenarioSpecs []string
	configFile    string
	preset        string
	parallel      bool
	noPlot        bool
	plotWidth     int
	plotHeight    int
	dt            float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "dragfall",
		Short: "falling body with linear drag, solved by laplace transform",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".dragfall", "data directory")

	deriveCmd := &cobra.Command{
		Use:   "derive",
		Short: "print the closed-form velocity solution",
		RunE:  deriveModel,
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "evaluate fall scenarios and plot the comparison",
		RunE:  runScenarios,
	}
	runCmd.Flags().Float64Var(&tMax, "tmax", config.DefaultTMax, "sampling horizon (s)")
	runCmd.Flags().IntVar(&points, "points", config.DefaultPoints, "samples over [0, tmax]")
	runCmd.Flags().Float64Var(&mass, "mass", config.DefaultMass, "mass (kg)")
	runCmd.Flags().Float64Var(&drag, "drag", config.DefaultDrag, "drag coefficient (kg/s)")
	runCmd.Flags().Float64Var(&gravity, "gravity", config.DefaultGravity, "gravity (m/s^2)")
	runCmd.Flags().Float64Var(&v0, "v0", config.DefaultV0, "initial velocity (m/s)")
	runCmd.Flags().StringVar(&label, "label", "skydiver", "scenario label")
	runCmd.Flags().StringArrayVar(&scenarioSpecs, "scenario", nil, "extra scenario as label:m,gamma[,g[,v0]] (repeatable)")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset scenario set")
	runCmd.Flags().BoolVar(&parallel, "parallel", false, "evaluate scenarios concurrently")
	runCmd.Flags().BoolVar(&noPlot, "no-plot", false, "skip the terminal plot")
	runCmd.Flags().IntVar(&plotWidth, "width", 80, "plot width")
	runCmd.Flags().IntVar(&plotHeight, "height", 15, "plot height")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&plotWidth, "width", 80, "plot width")
	plotCmd.Flags().IntVar(&plotHeight, "height", 15, "plot height")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run curves to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run curves and metadata to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "animate one fall approaching terminal velocity",
		RunE:  runLive,
	}
	liveCmd.Flags().Float64Var(&mass, "mass", config.DefaultMass, "mass (kg)")
	liveCmd.Flags().Float64Var(&drag, "drag", config.DefaultDrag, "drag coefficient (kg/s)")
	liveCmd.Flags().Float64Var(&gravity, "gravity", config.DefaultGravity, "gravity (m/s^2)")
	liveCmd.Flags().Float64Var(&v0, "v0", config.DefaultV0, "initial velocity (m/s)")
	liveCmd.Flags().Float64Var(&dt, "dt", 0.05, "simulated seconds per frame")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list preset scenario sets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				cfg := config.GetPreset(name)
				fmt.Printf("  %-12s %d scenarios, tmax=%gs\n", name, len(cfg.Scenarios), cfg.TMax)
			}
			return nil
		},
	}

	rootCmd.AddCommand(deriveCmd, runCmd, listCmd, plotCmd, exportCmd, exportCSVCmd, exportJSONCmd, liveCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func deriveModel(cmd *cobra.Command, args []string) error {
	fmt.Println("model: m dv/dt = m g - gamma v, v(0) = v0 (downward positive)")
	fmt.Println("deriving closed form via laplace transform...")

	closedForm, err := fall.ClosedForm()
	if err != nil {
		return err
	}

	fmt.Printf("v(t) = %s\n", closedForm)
	return nil
}

func runScenarios(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		// Copy so flag overrides never touch the preset table.
		c := *p
		cfg = &c
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	// CLI flags override preset and config file.
	if cmd.Flags().Changed("tmax") {
		cfg.TMax = tMax
	}
	if cmd.Flags().Changed("points") {
		cfg.Points = points
	}

	singleFlags := cmd.Flags().Changed("mass") || cmd.Flags().Changed("drag") ||
		cmd.Flags().Changed("gravity") || cmd.Flags().Changed("v0") || cmd.Flags().Changed("label")
	if singleFlags && preset == "" && configFile == "" {
		cfg.Scenarios = []config.ScenarioConfig{
			{Label: label, Mass: mass, Drag: drag, Gravity: gravity, V0: v0},
		}
	}

	for _, spec := range scenarioSpecs {
		sc, err := parseScenarioSpec(spec)
		if err != nil {
			return err
		}
		cfg.Scenarios = append(cfg.Scenarios, sc)
	}

	if len(cfg.Scenarios) == 0 {
		return fmt.Errorf("no scenarios to evaluate")
	}

	ev, err := fall.Compiled()
	if err != nil {
		return err
	}

	scenarios := cfg.BuildScenarios()

	fmt.Printf("evaluating %d scenarios over [0, %gs] with %d samples...\n", len(scenarios), cfg.TMax, cfg.Points)

	var report *fall.Report
	if parallel {
		report = fall.NewEnsemble(ev).Run(scenarios)
	} else {
		report = fall.EvaluateAll(ev, scenarios)
	}

	for _, f := range report.Failures {
		fmt.Printf("skipped %s: %v\n", f.Label, f.Err)
	}

	if len(report.Results) > 0 {
		fmt.Println()
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "LABEL\tV_T (m/s)\tV(TMAX) (m/s)\tREL_ERR")
		for _, res := range report.Results {
			fmt.Fprintf(w, "%s\t%.4f\t%.4f\t%.4e\n", res.Label, res.Terminal, res.FinalV, res.RelError)
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}

	if !noPlot && len(report.Results) > 0 {
		fmt.Println()
		fmt.Println(viz.RenderComparison(report.Series(), plotWidth, plotHeight))
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(cfg.TMax, cfg.Points, scenarios, report)
	if err != nil {
		return err
	}

	fmt.Printf("\nrun id: %s\n", runID)
	return nil
}

// parseScenarioSpec parses "label:m,gamma[,g[,v0]]". Gravity and initial
// velocity fall back to defaults when omitted.
func parseScenarioSpec(spec string) (config.ScenarioConfig, error) {
	sc := config.ScenarioConfig{Gravity: config.DefaultGravity}

	valuesPart := spec
	if lbl, rest, ok := strings.Cut(spec, ":"); ok {
		sc.Label = lbl
		valuesPart = rest
	}

	values := strings.Split(valuesPart, ",")
	if len(values) < 2 || len(values) > 4 {
		return sc, fmt.Errorf("bad scenario %q: want label:m,gamma[,g[,v0]]", spec)
	}

	parsed := make([]float64, len(values))
	for i, raw := range values {
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return sc, fmt.Errorf("bad scenario %q: %w", spec, err)
		}
		parsed[i] = v
	}

	sc.Mass = parsed[0]
	sc.Drag = parsed[1]
	if len(parsed) > 2 {
		sc.Gravity = parsed[2]
	}
	if len(parsed) > 3 {
		sc.V0 = parsed[3]
	}
	return sc, nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tTMAX\tPOINTS\tCURVES\tSKIPPED")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%.2fs\t%d\t%d\t%d\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.TMax,
			run.Points,
			len(run.Scenarios),
			len(run.Skipped),
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}

	if len(series) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("window: [0, %gs], %d samples\n\n", meta.TMax, meta.Points)

	fmt.Println(viz.RenderComparison(series, plotWidth, plotHeight))
	fmt.Println()

	report := &fall.Report{}
	for _, sc := range meta.Scenarios {
		report.Results = append(report.Results, &fall.Result{
			Label:    sc.Label,
			Terminal: sc.Terminal,
			FinalV:   sc.FinalV,
			RelError: sc.RelError,
		})
	}
	for _, sk := range meta.Skipped {
		report.Failures = append(report.Failures, fall.Failure{Label: sk.Label, Err: errors.New(sk.Reason)})
	}
	fmt.Print(viz.RenderSummary(report))
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}

	if len(series) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	header := []string{"time"}
	for _, sr := range series {
		header = append(header, sr.Label)
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i := range series[0].Times {
		row := []string{strconv.FormatFloat(series[0].Times[i], 'f', 6, 64)}
		for _, sr := range series {
			row = append(row, strconv.FormatFloat(sr.Velocities[i], 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}

	return storage.ExportJSONStdout(meta, series)
}

func runLive(cmd *cobra.Command, args []string) error {
	ev, err := fall.Compiled()
	if err != nil {
		return err
	}

	params := fall.Params{Mass: mass, Drag: drag, Gravity: gravity, V0: v0}
	if err := params.Validate(); err != nil {
		return err
	}

	m := viz.NewLive(ev, params, dt)
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
