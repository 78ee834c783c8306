package quill

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures Run. It can be loaded from a TOML file with
// LoadRunConfig:
//
//	title = "quill demo"
//	width = 800
//	height = 600
//	tps = 60
//	clear_color = "#1e1e28"
//	redraw_on_change = false
//	stop_on_error = false
//	debug = false
//	log_level = "info"
//	screenshot_dir = "screenshots"
type RunConfig struct {
	Title          string `toml:"title"`
	Width          int    `toml:"width"`
	Height         int    `toml:"height"`
	TPS            int    `toml:"tps"`
	ClearColor     string `toml:"clear_color"`
	RedrawOnChange bool   `toml:"redraw_on_change"`
	StopOnError    bool   `toml:"stop_on_error"`
	Debug          bool   `toml:"debug"`
	LogLevel       string `toml:"log_level"`
	ScreenshotDir  string `toml:"screenshot_dir"`
}

// DefaultRunConfig returns the configuration used for unset fields.
func DefaultRunConfig() RunConfig {
	return RunConfig{
		Title:    "quill",
		Width:    640,
		Height:   480,
		TPS:      60,
		LogLevel: "info",
	}
}

// LoadRunConfig reads a TOML file and fills unset fields from
// DefaultRunConfig.
func LoadRunConfig(path string) (RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RunConfig{}, fmt.Errorf("read config: %w", err)
	}
	return ParseRunConfig(data)
}

// ParseRunConfig decodes TOML data and fills unset fields from
// DefaultRunConfig. Unknown keys are an error.
func ParseRunConfig(data []byte) (RunConfig, error) {
	var cfg RunConfig
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return RunConfig{}, fmt.Errorf("parse config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return RunConfig{}, fmt.Errorf("parse config: unknown key %q", undecoded[0].String())
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return RunConfig{}, err
	}
	return cfg, nil
}

func (c *RunConfig) applyDefaults() {
	def := DefaultRunConfig()
	if c.Title == "" {
		c.Title = def.Title
	}
	if c.Width == 0 {
		c.Width = def.Width
	}
	if c.Height == 0 {
		c.Height = def.Height
	}
	if c.TPS == 0 {
		c.TPS = def.TPS
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
}

// Validate checks sizes, TPS, clear color and log level.
func (c RunConfig) Validate() error {
	if c.Width < 0 || c.Height < 0 {
		return fmt.Errorf("config: invalid window size %dx%d", c.Width, c.Height)
	}
	if c.TPS < 0 {
		return fmt.Errorf("config: invalid tps %d", c.TPS)
	}
	if c.ClearColor != "" {
		if _, err := parseColor(c.ClearColor); err != nil {
			return fmt.Errorf("config: clear_color: %w", err)
		}
	}
	if _, err := log.ParseLevel(c.LogLevel); c.LogLevel != "" && err != nil {
		return fmt.Errorf("config: log_level: %w", err)
	}
	return nil
}

// Apply copies the scene-level settings onto s and sets the package
// logger's level.
func (c RunConfig) Apply(s *Scene) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.ClearColor != "" {
		clr, _ := parseColor(c.ClearColor)
		s.ClearColor = clr
	}
	s.RedrawOnChange = c.RedrawOnChange
	if c.ScreenshotDir != "" {
		s.ScreenshotDir = c.ScreenshotDir
	}
	s.SetDebugMode(c.Debug)
	if c.LogLevel != "" {
		level, _ := log.ParseLevel(c.LogLevel)
		logger.SetLevel(level)
	}
	if c.Debug {
		logger.SetLevel(log.DebugLevel)
	}
	return nil
}

// errStopped is returned from the game's Update to end the loop cleanly.
var errStopped = errors.New("quill: stopped")

// game adapts a Scene to ebiten.Game.
type game struct {
	scene  *Scene
	cfg    RunConfig
	err    error
	stop   func() bool
	width  int
	height int
}

func (g *game) Update() error {
	if g.err != nil {
		return g.err
	}
	if g.stop != nil && g.stop() {
		return errStopped
	}
	g.scene.Update(float32(1.0 / float64(ebiten.TPS())))
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	if err := g.scene.Draw(screen); err != nil && g.cfg.StopOnError {
		g.err = err
	}
}

func (g *game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}

// Run opens a window and drives the scene until the window is closed. Failed
// frames are logged and skipped unless cfg.StopOnError is set, in which case
// Run returns the *FrameError.
func Run(scene *Scene, cfg RunConfig) error {
	return RunUntil(scene, cfg, nil)
}

// RunUntil is Run with a stop condition polled once per tick.
func RunUntil(scene *Scene, cfg RunConfig, stop func() bool) error {
	cfg.applyDefaults()
	if err := cfg.Apply(scene); err != nil {
		return err
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetScreenClearedEveryFrame(!cfg.RedrawOnChange)

	g := &game{scene: scene, cfg: cfg, stop: stop, width: cfg.Width, height: cfg.Height}
	err := ebiten.RunGame(g)
	if errors.Is(err, errStopped) {
		return nil
	}
	return err
}
