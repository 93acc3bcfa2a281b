package main

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/san-kum/chargefield/internal/config"
	"github.com/san-kum/chargefield/internal/electro"
	"github.com/san-kum/chargefield/internal/export"
	"github.com/san-kum/chargefield/internal/logger"
	"github.com/san-kum/chargefield/internal/session"
	"github.com/san-kum/chargefield/internal/viz"
	"github.com/spf13/cobra"
)

var (
	configFile string
	preset     string
	gridSize   float64
	gridPoints int
	workers    int
	themeName  string
	debug      bool
	logFile    string
	// surface camera
	rotX float64
	rotZ float64
	// output paths
	svgPath string
	outPath string
	// profile row
	profileY float64
)

// main registers the commands and runs the root command. With no subcommand
// it opens the interactive view and prints the 3D surface on exit.
func main() {
	rootCmd := &cobra.Command{
		Use:           "chargefield",
		Short:         "electrostatic field and potential of point charges",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(cmd, true)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", config.DefaultPreset, "charge preset")
	pf.Float64Var(&gridSize, "size", electro.DefaultGridSize, "side length of the sampled square (m)")
	pf.IntVar(&gridPoints, "points", electro.DefaultGridPoints, "samples per axis")
	pf.IntVar(&workers, "workers", config.DefaultWorkers, "goroutines for grid evaluation")
	pf.StringVar(&themeName, "theme", config.DefaultTheme, "color theme ("+strings.Join(viz.ThemeNames(), ", ")+")")
	pf.BoolVar(&debug, "debug", false, "debug logging")
	pf.StringVar(&logFile, "log-file", "", "write logs to this file (json)")

	interactiveCmd := &cobra.Command{
		Use:   "interactive",
		Short: "live field view with sliders for charge 0",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(cmd, false)
		},
	}

	surfaceCmd := &cobra.Command{
		Use:   "surface",
		Short: "render the potential as a 3D surface",
		Args:  cobra.NoArgs,
		RunE:  runSurface,
	}
	surfaceCmd.Flags().Float64Var(&rotX, "rot-x", -1.1, "camera tilt (rad)")
	surfaceCmd.Flags().Float64Var(&rotZ, "rot-z", -0.6, "camera spin (rad)")
	surfaceCmd.Flags().StringVar(&svgPath, "svg", "", "write svg to path instead of printing")

	fieldCmd := &cobra.Command{
		Use:   "field",
		Short: "render field arrows and equipotential lines",
		Args:  cobra.NoArgs,
		RunE:  runField,
	}
	fieldCmd.Flags().StringVar(&svgPath, "svg", "", "write svg to path instead of printing")

	probeCmd := &cobra.Command{
		Use:   "probe [x] [y]",
		Short: "field and potential at a point",
		Args:  cobra.ExactArgs(2),
		RunE:  runProbe,
	}

	profileCmd := &cobra.Command{
		Use:   "profile",
		Short: "plot the potential along a horizontal line",
		Args:  cobra.NoArgs,
		RunE:  runProfile,
	}
	profileCmd.Flags().Float64Var(&profileY, "y", 0, "y of the grid row to plot (m)")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv",
		Short: "dump the grid as csv",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, export.WriteCSV)
		},
	}
	exportCSVCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json",
		Short: "dump the grid as json",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, export.WriteJSON)
		},
	}
	exportJSONCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list charge presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	rootCmd.AddCommand(interactiveCmd, surfaceCmd, fieldCmd, probeCmd, profileCmd,
		exportCSVCmd, exportJSONCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// loadConfig reads the config file, if any, then applies the flags the user
// actually set.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		var err error
		if cfg, err = config.Load(configFile); err != nil {
			return nil, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("preset") {
		if err := cfg.ApplyPreset(preset); err != nil {
			return nil, err
		}
	}
	if flags.Changed("size") {
		cfg.Grid.Size = gridSize
	}
	if flags.Changed("points") {
		cfg.Grid.Points = gridPoints
	}
	if flags.Changed("workers") {
		cfg.Render.Workers = workers
	}
	if flags.Changed("theme") {
		cfg.Render.Theme = themeName
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	viz.SetTheme(cfg.Render.Theme)
	return cfg, nil
}

// setup loads the config, installs the logger and builds the session. quiet
// keeps log output off the terminal unless a log file is given.
func setup(cmd *cobra.Command, quiet bool) (*config.Config, *session.Session, func(), error) {
	cleanup, err := logger.Setup(logger.Config{Path: logFile, Debug: debug, Quiet: quiet})
	if err != nil {
		return nil, nil, nil, err
	}
	done := func() {
		if err := cleanup(); err != nil {
			fmt.Fprintln(os.Stderr, "warning: close log:", err)
		}
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		done()
		return nil, nil, nil, err
	}

	sess, err := session.New(cfg.ChargeList(), cfg.GridSpec(), cfg.SessionControls(), logger.L())
	if err != nil {
		done()
		return nil, nil, nil, err
	}
	sess.SetWorkers(cfg.Render.Workers)

	logger.L().Info("session.start",
		"command", cmd.Name(),
		"preset", cfg.Preset,
		"charges", len(cfg.Charges),
		"size", cfg.Grid.Size,
		"points", cfg.Grid.Points,
	)
	return cfg, sess, done, nil
}

func runInteractive(cmd *cobra.Command, thenSurface bool) error {
	cfg, sess, done, err := setup(cmd, true)
	if err != nil {
		return err
	}
	defer done()

	opts := viz.DefaultFieldPlotOptions()
	opts.ContourLevels = cfg.Render.ContourLevels

	err = viz.RunInteractive(sess, viz.InteractiveOptions{
		Width:    cfg.Render.Width,
		Height:   cfg.Render.Height,
		Theme:    viz.CurrentTheme,
		Plot:     opts,
		Snapshot: snapshotter(cfg),
	})
	if err != nil {
		return fmt.Errorf("interactive view: %w", err)
	}
	if !thenSurface {
		return nil
	}

	g := sess.Last()
	if g == nil {
		g = sess.Evaluate()
	}
	fmt.Println(viz.RenderSurface(g, nil, cfg.Render.Width, cfg.Render.Height,
		viz.DefaultSurfaceOptions(), viz.CurrentTheme, true))
	printCharges(os.Stdout, g)
	return nil
}

// snapshotter writes the displayed grid as an svg in the working directory.
func snapshotter(cfg *config.Config) func(*electro.FieldGrid) (string, error) {
	return func(g *electro.FieldGrid) (string, error) {
		path := fmt.Sprintf("chargefield-%s.svg", time.Now().Format("20060102-150405"))
		svg := export.FieldToSVG(g, 800, 800, cfg.Render.ContourLevels, viz.CurrentTheme)
		if err := export.WriteFile(path, export.WriteString(svg)); err != nil {
			logger.L().Error("snapshot.failed", "path", path, "error", err)
			return "", err
		}
		logger.L().Info("snapshot.saved", "path", path)
		return path, nil
	}
}

func runSurface(cmd *cobra.Command, args []string) error {
	cfg, sess, done, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer done()

	cam := viz.NewSurfaceCamera()
	cam.RotX, cam.RotZ = rotX, rotZ
	g := sess.Evaluate()

	if svgPath != "" {
		svg := export.SurfaceToSVG(g, cam, cfg.Render.Width, cfg.Render.Height, 4, viz.CurrentTheme)
		return writeSVG(svgPath, svg)
	}
	fmt.Println(viz.RenderSurface(g, cam, cfg.Render.Width, cfg.Render.Height,
		viz.DefaultSurfaceOptions(), viz.CurrentTheme, true))
	printCharges(os.Stdout, g)
	return nil
}

func runField(cmd *cobra.Command, args []string) error {
	cfg, sess, done, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer done()

	g := sess.Evaluate()
	if svgPath != "" {
		return writeSVG(svgPath, export.FieldToSVG(g, 800, 800, cfg.Render.ContourLevels, viz.CurrentTheme))
	}

	opts := viz.DefaultFieldPlotOptions()
	opts.ContourLevels = cfg.Render.ContourLevels
	fmt.Println("Electrostatic Field and Equipotential Lines")
	fmt.Print(viz.RenderField(g, cfg.Render.Width, cfg.Render.Height, opts, viz.CurrentTheme, true))
	e := g.Spec.Extent()
	fmt.Printf("X (m) %.1f … %.1f   Y (m) %.1f … %.1f\n", -e, e, -e, e)
	printCharges(os.Stdout, g)
	return nil
}

func runProbe(cmd *cobra.Command, args []string) error {
	x, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("invalid x: %w", err)
	}
	y, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("invalid y: %w", err)
	}

	_, sess, done, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer done()

	p := electro.Vec2{X: x, Y: y}
	s := sess.Evaluator().Sample(p)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "POINT\t(%g, %g) m\n", x, y)
	fmt.Fprintf(w, "Ex\t%.6g V/m\n", s.Field.X)
	fmt.Fprintf(w, "Ey\t%.6g V/m\n", s.Field.Y)
	fmt.Fprintf(w, "|E|\t%.6g V/m\n", s.Field.Norm())
	fmt.Fprintf(w, "angle\t%.2f°\n", math.Atan2(s.Field.Y, s.Field.X)*180/math.Pi)
	fmt.Fprintf(w, "V\t%.6g V\n", s.Potential)
	for i, c := range sess.Charges() {
		if c.Position.Sub(p).Norm() < electro.MinDistance {
			fmt.Fprintf(w, "note\tcharge %d is within %.1f m and was left out\n", i, electro.MinDistance)
		}
	}
	return w.Flush()
}

func runProfile(cmd *cobra.Command, args []string) error {
	cfg, sess, done, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer done()

	g := sess.Evaluate()
	out := viz.PotentialProfile(g, profileY, cfg.Render.Width, max(6, cfg.Render.Height/2))
	if out == "" {
		return fmt.Errorf("no grid row near y=%g", profileY)
	}
	fmt.Println(out)
	return nil
}

func runExport(cmd *cobra.Command, write func(io.Writer, *electro.FieldGrid) error) error {
	_, sess, done, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer done()

	g := sess.Evaluate()
	fn := func(w io.Writer) error { return write(w, g) }
	if outPath == "" {
		return fn(os.Stdout)
	}
	if err := export.WriteFile(outPath, fn); err != nil {
		return err
	}
	logger.L().Info("export.saved", "path", outPath, "nodes", g.Rows()*g.Cols())
	fmt.Fprintf(os.Stderr, "exported %d nodes to %s\n", g.Rows()*g.Cols(), outPath)
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tCHARGES")
	for _, name := range config.ListPresets() {
		var parts []string
		for _, c := range config.GetPreset(name) {
			parts = append(parts, fmt.Sprintf("%+.1f nC @ (%g, %g)", c.Q/electro.Nano, c.X, c.Y))
		}
		fmt.Fprintf(w, "%s\t%s\n", name, strings.Join(parts, ", "))
	}
	return w.Flush()
}

func writeSVG(path, svg string) error {
	if err := export.WriteFile(path, export.WriteString(svg)); err != nil {
		return err
	}
	logger.L().Info("svg.saved", "path", path)
	fmt.Fprintf(os.Stderr, "wrote %s\n", path)
	return nil
}

func printCharges(w io.Writer, g *electro.FieldGrid) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tQ (nC)\tX (m)\tY (m)\tV at charge (V)")
	for i, c := range g.Charges {
		fmt.Fprintf(tw, "%d\t%+.2f\t%.2f\t%.2f\t%.4g\n", i, c.Magnitude/electro.Nano,
			c.Position.X, c.Position.Y, electro.Potential(g.Charges, c.Position))
	}
	tw.Flush()
}
