package globe

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig holds window and tooling options for Run, plus the Config used
// to build the globe. Every field can be set from GLOBE_* environment
// variables; see LoadRunConfig.
type RunConfig struct {
	Title     string `env:"TITLE"`
	Width     int    `env:"WIDTH"`
	Height    int    `env:"HEIGHT"`
	Resizable bool   `env:"RESIZABLE"`
	ShowFPS   bool   `env:"SHOW_FPS"`
	Debug     bool   `env:"DEBUG"`
	// ARMode attaches the globe in AR mode: transparent background, no
	// starfield, no built-in gestures.
	ARMode bool `env:"AR"`
	// TestScript is a JSON test script file run from the first frame. The
	// window closes when it finishes.
	TestScript    string `env:"TEST_SCRIPT"`
	ScreenshotDir string `env:"SCREENSHOT_DIR"`

	Globe Config
}

// DefaultRunConfig returns a resizable 1024x768 window around the default
// globe.
func DefaultRunConfig() RunConfig {
	return RunConfig{
		Title:         "Globe",
		Width:         1024,
		Height:        768,
		Resizable:     true,
		ScreenshotDir: "screenshots",
		Globe:         DefaultConfig(),
	}
}

// envPrefix is prepended to every variable read by LoadRunConfig.
const envPrefix = "GLOBE_"

// LoadRunConfig returns DefaultRunConfig overridden by GLOBE_* environment
// variables, for example GLOBE_WIDTH=1280 or GLOBE_TILT_MODEL=ephemeris.
func LoadRunConfig() (RunConfig, error) {
	cfg := DefaultRunConfig()
	if err := parseEnv(&cfg); err != nil {
		return RunConfig{}, err
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return RunConfig{}, fmt.Errorf("load run config: window size %dx%d", cfg.Width, cfg.Height)
	}
	return cfg, nil
}

func parseEnv(target any) error {
	if err := env.ParseWithOptions(target, env.Options{Prefix: envPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// game adapts a Globe to ebiten.Game.
type game struct {
	globe   *Globe
	cfg     RunConfig
	runner  *TestRunner
	showFPS bool
}

func (gm *game) Update() error {
	if err := gm.globe.Update(); err != nil {
		return err
	}
	if gm.runner != nil && gm.runner.Done() && len(gm.globe.screenshotQueue) == 0 {
		return ebiten.Termination
	}
	return nil
}

func (gm *game) Draw(screen *ebiten.Image) {
	gm.globe.Draw(screen)
	if gm.showFPS {
		drawHUD(screen, gm.globe)
	}
}

func (gm *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

// Run opens a window showing g and blocks until it is closed. A nil g is
// built from cfg.Globe.
func Run(g *Globe, cfg RunConfig) error {
	if g == nil {
		var err error
		if g, err = NewGlobe(cfg.Globe); err != nil {
			return err
		}
	}
	defer g.Dispose()

	gm := &game{globe: g, cfg: cfg, showFPS: cfg.ShowFPS}
	if cfg.ScreenshotDir != "" {
		g.ScreenshotDir = cfg.ScreenshotDir
	}
	if cfg.Debug {
		g.SetDebugMode(true)
	}
	if cfg.TestScript != "" {
		data, err := os.ReadFile(cfg.TestScript)
		if err != nil {
			return fmt.Errorf("read test script: %w", err)
		}
		runner, err := LoadTestScript(data)
		if err != nil {
			return err
		}
		g.SetTestRunner(runner)
		gm.runner = runner
	}

	w, h := cfg.Width, cfg.Height
	if w <= 0 || h <= 0 {
		w, h = 1024, 768
	}
	g.AttachToView(SizedView{w, h}, cfg.ARMode)

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(w, h)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	var opts ebiten.RunGameOptions
	opts.ScreenTransparent = cfg.ARMode
	if err := ebiten.RunGameWithOptions(gm, &opts); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}
