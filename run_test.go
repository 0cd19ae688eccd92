package globe

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestDefaultRunConfig(t *testing.T) {
	cfg := DefaultRunConfig()
	if cfg.Title != "Globe" || cfg.Width != 1024 || cfg.Height != 768 || !cfg.Resizable {
		t.Errorf("window = %q %dx%d resizable=%v", cfg.Title, cfg.Width, cfg.Height, cfg.Resizable)
	}
	if cfg.Globe.FOV != DefaultFOV || cfg.Globe.Stars.Count != DefaultStarCount {
		t.Errorf("globe config not defaulted: %+v", cfg.Globe)
	}
}

func TestLoadRunConfigFromEnv(t *testing.T) {
	t.Setenv("GLOBE_TITLE", "Earth")
	t.Setenv("GLOBE_WIDTH", "1280")
	t.Setenv("GLOBE_HEIGHT", "720")
	t.Setenv("GLOBE_SHOW_FPS", "true")
	t.Setenv("GLOBE_AR", "true")
	t.Setenv("GLOBE_DAY_TEXTURE", "earth.jpg")
	t.Setenv("GLOBE_FOV", "20")
	t.Setenv("GLOBE_SPIN_PERIOD", "90s")
	t.Setenv("GLOBE_TILT_MODEL", "ephemeris")
	t.Setenv("GLOBE_STARS_COUNT", "500")
	t.Setenv("GLOBE_STARS_SEED", "42")

	cfg, err := LoadRunConfig()
	if err != nil {
		t.Fatalf("LoadRunConfig: %v", err)
	}
	if cfg.Title != "Earth" || cfg.Width != 1280 || cfg.Height != 720 {
		t.Errorf("window = %q %dx%d", cfg.Title, cfg.Width, cfg.Height)
	}
	if !cfg.ShowFPS || !cfg.ARMode {
		t.Error("boolean flags not read")
	}
	g := cfg.Globe
	if g.DayTexture != "earth.jpg" || g.FOV != 20 || g.SpinPeriod != 90*time.Second {
		t.Errorf("globe = texture %q fov %v period %v", g.DayTexture, g.FOV, g.SpinPeriod)
	}
	if g.TiltModel != TiltEphemeris {
		t.Errorf("TiltModel = %v, want ephemeris", g.TiltModel)
	}
	if g.Stars.Count != 500 || g.Stars.Seed != 42 {
		t.Errorf("stars = %d seed %d, want 500 seed 42", g.Stars.Count, g.Stars.Seed)
	}
	// Values not in the environment keep their defaults.
	if g.Segments != DefaultSegments || cfg.ScreenshotDir != "screenshots" {
		t.Errorf("defaults lost: segments %d dir %q", g.Segments, cfg.ScreenshotDir)
	}
}

func TestLoadRunConfigErrors(t *testing.T) {
	tests := []struct {
		name, key, value, want string
	}{
		{"bad number", "GLOBE_WIDTH", "wide", "parse env"},
		{"bad tilt model", "GLOBE_TILT_MODEL", "sundial", "parse env"},
		{"zero size", "GLOBE_HEIGHT", "0", "window size"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := LoadRunConfig()
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to contain %q", err, tt.want)
			}
		})
	}
}

// --- Game loop ---

func TestGameTerminatesAfterScript(t *testing.T) {
	g := newTestGlobe(t)
	g.cfg.DisableInput = true
	runner := loadRunner(t, `{"steps": [{"action": "screenshot", "label": "only"}]}`)
	g.SetTestRunner(runner)
	gm := &game{globe: g, runner: runner}

	// The screenshot is still queued, so the loop keeps going.
	if err := gm.Update(); err != nil {
		t.Fatalf("first Update = %v, want nil", err)
	}
	g.screenshotQueue = g.screenshotQueue[:0]
	if err := gm.Update(); !errors.Is(err, ebiten.Termination) {
		t.Errorf("Update = %v, want ebiten.Termination", err)
	}
}

func TestGamePropagatesUpdateError(t *testing.T) {
	g := newTestGlobe(t)
	g.cfg.DisableInput = true
	stop := errors.New("stop")
	g.SetUpdateFunc(func() error { return stop })
	gm := &game{globe: g}
	if err := gm.Update(); !errors.Is(err, stop) {
		t.Errorf("Update = %v, want %v", err, stop)
	}
}

func TestGameLayoutFollowsWindow(t *testing.T) {
	gm := &game{}
	if w, h := gm.Layout(640, 480); w != 640 || h != 480 {
		t.Errorf("Layout = %dx%d, want 640x480", w, h)
	}
}

// --- HUD ---

func TestHUDText(t *testing.T) {
	g := newTestGlobe(t)
	g.SetZoom(12)
	g.RotateTo(0.5, 0, 0)
	g.advance(0)

	text := hudText(59.94, 60, g)
	for _, want := range []string{"FPS: 59.9", "TPS: 60.0", "FOV: 12.0", "spin 28.6", "auto off"} {
		if !strings.Contains(text, want) {
			t.Errorf("hud text missing %q:\n%s", want, text)
		}
	}

	g.SetAutoSpin(true)
	if text := hudText(60, 60, g); !strings.Contains(text, "auto on") {
		t.Errorf("hud text should report auto spin on:\n%s", text)
	}
}
