package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/phanxgames/quill"
	"github.com/phanxgames/quill/internal/demo"
)

type runOpts struct {
	config      string
	title       string
	width       int
	height      int
	tps         int
	debug       bool
	stopOnError bool
	frames      uint64
	headless    bool
	fps         bool
	shotFrame   uint64
	shotDir     string
}

func newRunCmd() *cobra.Command {
	var opts runOpts

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Animate the demo scene",
		Long: `Run opens a window and animates the demo scene until the window is closed.

Settings come from --config (TOML) and are overridden by any flag given
explicitly. With --headless the scene is updated and drawn --frames times
without a window.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := resolveRunConfig(cmd, opts)
			if err != nil {
				return err
			}
			return runDemo(cmd, cfg, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.config, "config", "c", "", "TOML run config")
	cmd.Flags().StringVar(&opts.title, "title", "", "window title")
	cmd.Flags().IntVar(&opts.width, "width", 0, "window width")
	cmd.Flags().IntVar(&opts.height, "height", 0, "window height")
	cmd.Flags().IntVar(&opts.tps, "tps", 0, "ticks per second")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "log per-frame draw statistics")
	cmd.Flags().BoolVar(&opts.stopOnError, "stop-on-error", false, "exit on the first failed frame")
	cmd.Flags().Uint64Var(&opts.frames, "frames", 0, "stop after this many frames (0 = until closed)")
	cmd.Flags().BoolVar(&opts.headless, "headless", false, "draw without opening a window")
	cmd.Flags().BoolVar(&opts.fps, "fps", false, "show an FPS/TPS readout")
	cmd.Flags().Uint64Var(&opts.shotFrame, "screenshot-frame", 0, "save a PNG of this frame (1-based)")
	cmd.Flags().StringVar(&opts.shotDir, "screenshot-dir", "", "directory for screenshots")
	return cmd
}

// resolveRunConfig loads --config (or the defaults) and applies the flags
// the user set explicitly.
func resolveRunConfig(cmd *cobra.Command, opts runOpts) (quill.RunConfig, error) {
	cfg := quill.DefaultRunConfig()
	if opts.config != "" {
		loaded, err := quill.LoadRunConfig(opts.config)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}
	flags := cmd.Flags()
	if flags.Changed("title") {
		cfg.Title = opts.title
	}
	if flags.Changed("width") {
		cfg.Width = opts.width
	}
	if flags.Changed("height") {
		cfg.Height = opts.height
	}
	if flags.Changed("tps") {
		cfg.TPS = opts.tps
	}
	if flags.Changed("debug") {
		cfg.Debug = opts.debug
	}
	if flags.Changed("stop-on-error") {
		cfg.StopOnError = opts.stopOnError
	}
	if flags.Changed("screenshot-dir") {
		cfg.ScreenshotDir = opts.shotDir
	}
	return cfg, cfg.Validate()
}

func runDemo(cmd *cobra.Command, cfg quill.RunConfig, opts runOpts) error {
	logger := loggerFromContext(cmd.Context())
	quill.SetLogger(logger)
	defer quill.SetLogger(nil)

	scene := quill.NewScene()
	defer scene.Dispose()
	if _, err := demo.Build(scene, demo.Options{FPS: opts.fps}); err != nil {
		return err
	}
	logger.Debug("scene built", "title", cfg.Title, "size", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height))

	if opts.headless {
		return runHeadless(cmd, scene, cfg, opts.frames)
	}

	stop := func() bool {
		if opts.shotFrame > 0 && scene.Frame()+1 == opts.shotFrame && scene.PendingScreenshots() == 0 {
			scene.Screenshot(fmt.Sprintf("frame%d", opts.shotFrame))
		}
		return opts.frames > 0 && scene.Frame() >= opts.frames
	}
	prog := newProgress(logger)
	if err := quill.RunUntil(scene, cfg, stop); err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Drew %d frames", scene.Frame()))
	return nil
}

func runHeadless(cmd *cobra.Command, scene *quill.Scene, cfg quill.RunConfig, frames uint64) error {
	if frames == 0 {
		return fmt.Errorf("--headless needs --frames")
	}
	if err := cfg.Apply(scene); err != nil {
		return err
	}
	dt := float32(1.0 / float64(cfg.TPS))
	failed := 0
	for range frames {
		scene.Update(dt)
		if err := scene.Draw(nil); err != nil {
			if cfg.StopOnError {
				return err
			}
			failed++
		}
	}
	printSuccess(cmd.OutOrStdout(), "Drew %d of %d frames headless", scene.Frame(), frames)
	if failed > 0 {
		printKeyValue(cmd.OutOrStdout(), "failed", fmt.Sprint(failed))
	}
	return nil
}
