package main

import (
	"fmt"
	"image/color"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/olivierh59500/particle-backdrop/internal/backdrop"
	"github.com/olivierh59500/particle-backdrop/internal/config"
	"github.com/olivierh59500/particle-backdrop/internal/logging"
	"github.com/olivierh59500/particle-backdrop/internal/loop"
	"github.com/olivierh59500/particle-backdrop/internal/palette"
	"github.com/olivierh59500/particle-backdrop/internal/particles"
	"github.com/olivierh59500/particle-backdrop/internal/raster"
	"github.com/spf13/cobra"
)

var version = "0.1.0-dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "backdrop",
		Short: "Animated particle backdrop",
		Long: `backdrop renders drifting particles joined by faint lines when near
each other, tinted with a randomly chosen two-color theme.

Click to add particles. Resizing the window starts over.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runWindow,
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "Config file (default: user config dir)")
	rootCmd.PersistentFlags().Int64("seed", 0, "Random seed (0 picks one from the clock)")
	rootCmd.PersistentFlags().String("theme", "", "Theme slug or name (default: random)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: info, debug, trace, warn, error")
	rootCmd.PersistentFlags().Bool("noise", false, "Paint a noise tint beneath the particles")

	rootCmd.AddCommand(
		newRunCmd(),
		newSnapshotCmd(),
		newThemesCmd(),
		newCSSCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Open the backdrop in a window",
		RunE:  runWindow,
	}
}

func newSnapshotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Render frames headlessly and write the last one as PNG",
		RunE:  runSnapshot,
	}
	cmd.Flags().StringP("out", "o", "backdrop.png", "Output PNG path")
	cmd.Flags().Int("frames", 120, "Frames to simulate")
	cmd.Flags().Int("width", 0, "Surface width (default: window width)")
	cmd.Flags().Int("height", 0, "Surface height (default: window height)")
	cmd.Flags().StringArray("click", nil, "Spawn particles at x,y before the first frame (repeatable)")
	cmd.Flags().Bool("realtime", false, "Pace frames at the configured tps")
	return cmd
}

func newThemesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "List the color themes",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), palette.Swatches())
		},
	}
}

func newCSSCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "css",
		Short: "Print CSS applying the session theme to page elements",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			return palette.WriteCSS(cmd.OutOrStdout(), s.theme)
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "backdrop version %s\n", version)
		},
	}
}

// session is the state shared by every command for one invocation: the
// validated config, logger, seeded random source and chosen theme.
type session struct {
	cfg        *config.Config
	log        *slog.Logger
	seed       int64
	rng        *rand.Rand
	theme      palette.Theme
	background color.RGBA
}

func newSession(cmd *cobra.Command) (*session, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	applyFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logger := logging.NewLogger(cfg.Logging.Level, cmd.ErrOrStderr())

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	// The theme is drawn first so a seed reproduces the whole session.
	theme := palette.Pick(rng)
	if cfg.Palette.Theme != "" {
		if theme, err = palette.Lookup(cfg.Palette.Theme); err != nil {
			return nil, err
		}
	}

	bg, err := palette.ParseRGBA(cfg.Window.Background)
	if err != nil {
		return nil, err
	}

	logger.Debug("session started", "seed", seed, "theme", theme.Slug)

	return &session{
		cfg:        cfg,
		log:        logger,
		seed:       seed,
		rng:        rng,
		theme:      theme,
		background: bg,
	}, nil
}

// applyFlags overrides config values with flags the user set explicitly.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed, _ = flags.GetInt64("seed")
	}
	if flags.Changed("theme") {
		cfg.Palette.Theme, _ = flags.GetString("theme")
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level, _ = flags.GetString("log-level")
	}
	if flags.Changed("noise") {
		cfg.Backdrop.Enabled, _ = flags.GetBool("noise")
	}
	if flags.Lookup("width") != nil && flags.Changed("width") {
		cfg.Window.Width, _ = flags.GetInt("width")
	}
	if flags.Lookup("height") != nil && flags.Changed("height") {
		cfg.Window.Height, _ = flags.GetInt("height")
	}
}

func (s *session) fieldOptions() particles.Options {
	p, c := s.cfg.Particles, s.cfg.Connections
	return particles.Options{
		Divisor:     p.Divisor,
		MaxCount:    p.MaxCount,
		MaxDistance: c.MaxDistance,
		RadiusMin:   p.RadiusMin,
		RadiusSpan:  p.RadiusSpan,
		Speed:       p.Speed,
		ClickSpeed:  p.ClickSpeed,
		ClickBurst:  p.ClickBurst,
		MaxOpacity:  c.MaxOpacity,
		LineWidth:   c.LineWidth,
	}
}

func (s *session) newField(width, height int) *particles.Field {
	return particles.NewField(particles.Config{
		Width:   float64(width),
		Height:  float64(height),
		Colors:  s.theme.Colors(),
		Rand:    s.rng,
		Options: s.fieldOptions(),
		Logger:  s.log,
	})
}

func (s *session) noise() *backdrop.Noise {
	if !s.cfg.Backdrop.Enabled {
		return nil
	}
	return backdrop.NewNoise(s.seed)
}

func (s *session) backdropOptions() backdrop.Options {
	return backdrop.Options{Scale: s.cfg.Backdrop.Scale, Strength: s.cfg.Backdrop.Strength}
}

func runWindow(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	w := s.cfg.Window
	if w.Width <= 0 || w.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", w.Width, w.Height)
	}

	field := s.newField(w.Width, w.Height)
	surface := &screenSurface{
		background: s.background,
		noise:      s.noise(),
		theme:      s.theme,
		opts:       s.backdropOptions(),
	}
	surface.resize(w.Width, w.Height)

	ebiten.SetWindowSize(w.Width, w.Height)
	ebiten.SetWindowTitle(w.Title)
	ebiten.SetTPS(w.TPS)
	if w.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	s.log.Info("opening window", "width", w.Width, "height", w.Height, "theme", s.theme.Name, "particles", field.Len())

	g := newGame(field, surface, s.theme, w.Resizable, s.log)
	return g.Run(ctx, func() error {
		field.Step(surface)
		return nil
	})
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	out, _ := cmd.Flags().GetString("out")
	frames, _ := cmd.Flags().GetInt("frames")
	clicks, _ := cmd.Flags().GetStringArray("click")
	realtime, _ := cmd.Flags().GetBool("realtime")

	if frames < 1 {
		return fmt.Errorf("frames must be at least 1, got %d", frames)
	}

	w, h := s.cfg.Window.Width, s.cfg.Window.Height
	if w <= 0 || h <= 0 {
		return fmt.Errorf("snapshot size must be positive, got %dx%d", w, h)
	}
	field := s.newField(w, h)
	for _, c := range clicks {
		x, y, err := parsePoint(c)
		if err != nil {
			return err
		}
		field.Spawn(x, y)
	}

	canvas := raster.NewCanvas(w, h, s.background)
	if n := s.noise(); n != nil {
		canvas.SetUnderlay(backdrop.Render(w, h, n, s.theme, s.backdropOptions()))
	}

	var src loop.Source = loop.Frames{Count: frames}
	if realtime {
		src = loop.Interval{Period: loop.PeriodForTPS(s.cfg.Window.TPS), Limit: frames}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	start := time.Now()
	err = src.Run(ctx, func() error {
		field.Step(canvas)
		return nil
	})
	if err != nil {
		return fmt.Errorf("rendering: %w", err)
	}
	if err := canvas.SavePNG(out); err != nil {
		return err
	}

	s.log.Info("snapshot written",
		"path", out,
		"frames", field.Frames(),
		"particles", field.Len(),
		"theme", s.theme.Slug,
		"elapsed", time.Since(start).Round(time.Millisecond))
	return nil
}

// parsePoint parses "x,y" into surface coordinates.
func parsePoint(s string) (float64, float64, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, fmt.Errorf("invalid point %q: want x,y", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid point %q: %w", s, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid point %q: %w", s, err)
	}
	return x, y, nil
}
