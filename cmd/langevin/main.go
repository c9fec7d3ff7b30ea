package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/san-kum/langevin/internal/analysis"
	"github.com/san-kum/langevin/internal/config"
	"github.com/san-kum/langevin/internal/sim"
	"github.com/san-kum/langevin/internal/storage"
	"github.com/san-kum/langevin/internal/tui"
)

var (
	dataDir    string
	configFile string
	preset     string

	natoms     int
	mass       float64
	boxSide    float64
	temp       float64
	dt         float64
	tau        float64
	nsteps     int
	boundary   string
	integrator string
	radius     float64
	seed       int64
	outputFile string
	dumpFreq   int
	quiet      bool

	avgWindow    int
	stepsPerTick int
)

func main() {
	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      slog.LevelInfo,
			TimeFormat: time.Kitchen,
		}),
	))

	rootCmd := &cobra.Command{
		Use:   "langevin",
		Short: "Langevin dynamics molecular simulator",
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".langevin", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation",
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)
	runCmd.Flags().StringVar(&outputFile, "output", "", "LAMMPS dump file path")
	runCmd.Flags().IntVar(&dumpFreq, "dump-freq", config.DefaultDumpFrequency, "frame dump frequency (steps)")
	runCmd.Flags().BoolVar(&quiet, "quiet", false, "suppress progress output")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run with a live temperature monitor",
		RunE:  runLive,
	}
	addSimFlags(liveCmd)
	liveCmd.Flags().IntVar(&stepsPerTick, "steps-per-tick", 10, "simulation steps per frame")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored temperature trajectory",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&avgWindow, "window", 0, "running average window (0 disables)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [gas]",
		Short: "list preset configurations",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				for _, gas := range config.ListGases() {
					fmt.Println(gas)
				}
				return nil
			}
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				return fmt.Errorf("no presets for gas: %s", args[0])
			}
			for _, p := range presets {
				fmt.Printf("%s/%s\n", args[0], p)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, exportJSONCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "YAML config file")
	cmd.Flags().StringVar(&preset, "preset", "", "preset as gas/name (see 'langevin presets')")
	cmd.Flags().IntVar(&natoms, "natoms", 1000, "number of particles")
	cmd.Flags().Float64Var(&mass, "mass", 1.008e-3, "molar mass (kg/mol)")
	cmd.Flags().Float64Var(&boxSide, "box-size", 1e-8, "cubic box side (m)")
	cmd.Flags().Float64Var(&temp, "temp", 300, "target temperature (K)")
	cmd.Flags().Float64Var(&dt, "dt", 1e-15, "timestep (s)")
	cmd.Flags().Float64Var(&tau, "tau", 1e-12, "thermostat relaxation time (s)")
	cmd.Flags().IntVar(&nsteps, "steps", 10000, "number of steps")
	cmd.Flags().StringVar(&boundary, "boundary", config.DefaultBoundary, "boundary type (reflective, periodic)")
	cmd.Flags().StringVar(&integrator, "integrator", config.DefaultIntegrator, "integrator (euler, verlet)")
	cmd.Flags().Float64Var(&radius, "radius", config.DefaultRadius, "particle radius (m)")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
}

// buildConfig resolves preset, config file, and flags into one Config.
// Precedence: explicit flags > config file > preset > flag defaults.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	cfg.NAtoms = natoms
	cfg.Mass = mass
	cfg.Box = [][2]float64{{0, boxSide}, {0, boxSide}, {0, boxSide}}
	cfg.Temperature = temp
	cfg.Dt = dt
	cfg.RelaxationTime = tau
	cfg.NSteps = nsteps
	cfg.BoundaryType = boundary
	cfg.Integrator = integrator
	cfg.Radius = radius
	cfg.Seed = seed
	cfg.OutputFile = outputFile
	cfg.DumpFrequency = dumpFreq

	var base *config.Config
	if preset != "" {
		gas, name, ok := splitPreset(preset)
		if !ok {
			return nil, fmt.Errorf("preset must be gas/name, got %q", preset)
		}
		base = config.GetPreset(gas, name)
		if base == nil {
			return nil, fmt.Errorf("unknown preset %q (available gases: %v)", preset, config.ListGases())
		}
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		base = loaded
	}

	if base != nil {
		if !cmd.Flags().Changed("natoms") {
			cfg.NAtoms = base.NAtoms
		}
		if !cmd.Flags().Changed("mass") {
			cfg.Mass = base.Mass
		}
		if !cmd.Flags().Changed("box-size") && len(base.Box) > 0 {
			cfg.Box = base.Box
		}
		if !cmd.Flags().Changed("temp") {
			cfg.Temperature = base.Temperature
		}
		if !cmd.Flags().Changed("dt") {
			cfg.Dt = base.Dt
		}
		if !cmd.Flags().Changed("tau") {
			cfg.RelaxationTime = base.RelaxationTime
		}
		if !cmd.Flags().Changed("steps") {
			cfg.NSteps = base.NSteps
		}
		if !cmd.Flags().Changed("boundary") {
			cfg.BoundaryType = base.BoundaryType
		}
		if !cmd.Flags().Changed("integrator") {
			cfg.Integrator = base.Integrator
		}
		if !cmd.Flags().Changed("radius") {
			cfg.Radius = base.Radius
		}
		if base.Seed != 0 && !cmd.Flags().Changed("seed") {
			cfg.Seed = base.Seed
		}
		if base.OutputFile != "" && !cmd.Flags().Changed("output") {
			cfg.OutputFile = base.OutputFile
		}
		if base.DumpFrequency != 0 && !cmd.Flags().Changed("dump-freq") {
			cfg.DumpFrequency = base.DumpFrequency
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func splitPreset(s string) (gas, name string, ok bool) {
	for i := range s {
		if s[i] == '/' {
			return s[:i], s[i+1:], s[:i] != "" && s[i+1:] != ""
		}
	}
	return "", "", false
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	s, err := sim.New(cfg.SimConfig())
	if err != nil {
		return err
	}

	slog.Info("starting simulation",
		"natoms", cfg.NAtoms,
		"temperature_K", cfg.Temperature,
		"steps", cfg.NSteps,
		"boundary", cfg.BoundaryType,
		"seed", cfg.Seed)

	start := time.Now()
	traj, err := s.Run(context.Background(), cfg.RunOptions(!quiet))
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := st.Save(cfg.SimConfig(), traj)
	if err != nil {
		return err
	}

	slog.Info("run saved",
		"run_id", runID,
		"elapsed", elapsed,
		"mean_temperature_K", traj.MeanTemperature())

	if cfg.PlotTemperature {
		printTemperaturePlot(traj, 0)
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	s, err := sim.New(cfg.SimConfig())
	if err != nil {
		return err
	}
	return tui.Run(s, cfg.NSteps, stepsPerTick)
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

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tATOMS\tTARGET K\tMEAN K\tSTEPS\tBOUNDARY\tDATE")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%d\t%.1f\t%.1f\t%d\t%s\t%s\n",
			r.ID, r.NAtoms, r.Temperature, r.MeanTemperature, r.Steps,
			r.Boundary, r.Timestamp.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	traj, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	if traj.Len() == 0 {
		return fmt.Errorf("run %s has no trajectory data", args[0])
	}
	printTemperaturePlot(traj, avgWindow)
	return nil
}

func printTemperaturePlot(traj *sim.Trajectory, window int) {
	series := traj.Temperatures
	caption := "temperature (K)"

	if window > 1 && window <= len(series) {
		avg, err := analysis.RunningAverage(series, window)
		if err == nil {
			series = avg
			caption = fmt.Sprintf("temperature (K), %d-sample running average", window)
		}
	}

	// Downsample long series to terminal width.
	const maxPoints = 120
	if len(series) > maxPoints {
		stride := len(series) / maxPoints
		sampled := make([]float64, 0, maxPoints)
		for i := 0; i < len(series); i += stride {
			sampled = append(sampled, series[i])
		}
		series = sampled
	}

	fmt.Println(asciigraph.Plot(series,
		asciigraph.Height(12),
		asciigraph.Caption(caption)))
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	traj, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}

	data := struct {
		storage.RunMetadata
		Times        []float64 `json:"times"`
		Temperatures []float64 `json:"temperatures"`
	}{
		RunMetadata:  *meta,
		Times:        traj.Times,
		Temperatures: traj.Temperatures,
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
