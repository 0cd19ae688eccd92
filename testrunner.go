package globe

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	// FromDist and ToDist are the finger spread for "pinch".
	FromDist float64 `json:"fromDist,omitempty"`
	ToDist   float64 `json:"toDist,omitempty"`
	// FOV is the target for "zoom"; Spin and Tilt (degrees) for "rotate".
	FOV  float64 `json:"fov,omitempty"`
	Spin float64 `json:"spin,omitempty"`
	Tilt float64 `json:"tilt,omitempty"`
	// Enabled is read by "autospin".
	Enabled  bool    `json:"enabled,omitempty"`
	Duration float32 `json:"duration,omitempty"`
	Frames   int     `json:"frames,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

// TestRunner sequences injected gestures, camera changes and screenshots
// across frames for automated visual testing. Attach to a Globe via
// SetTestRunner.
//
// Supported actions: screenshot, tap, drag, pinch, zoom, rotate, autospin,
// wait.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON test script and returns a TestRunner ready
// to be attached to a Globe via SetTestRunner.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		if !knownAction(st.Action) {
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

func knownAction(a string) bool {
	switch a {
	case "screenshot", "tap", "click", "drag", "pinch", "zoom", "rotate", "autospin", "wait":
		return true
	}
	return false
}

// SetTestRunner attaches a TestRunner to the globe. The runner's step method
// is called from Globe.Update before input processing each frame.
func (g *Globe) SetTestRunner(runner *TestRunner) {
	g.testRunner = runner
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the test runner by one frame. Called from Globe.Update.
func (r *TestRunner) step(g *Globe) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(g.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "screenshot":
		g.Screenshot(st.Label)
	case "tap", "click":
		g.InjectClick(st.X, st.Y)
	case "drag":
		frames := st.Frames
		if frames < 2 {
			frames = 2
		}
		g.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, frames)
	case "pinch":
		x, y := st.X, st.Y
		if x == 0 && y == 0 {
			c := g.viewport
			x, y = c.X+c.Width/2, c.Y+c.Height/2
		}
		g.InjectPinch(x, y, st.FromDist, st.ToDist, st.Frames)
	case "zoom":
		g.ZoomTo(st.FOV, st.Duration, ease.InOutSine)
		r.waitForAnimation(st.Duration)
	case "rotate":
		spin := mgl64.DegToRad(st.Spin)
		tilt := mgl64.DegToRad(st.Tilt)
		g.RotateTo(spin, tilt, st.Duration)
		r.waitForAnimation(st.Duration)
	case "autospin":
		g.SetAutoSpin(st.Enabled)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(g.injectQueue) == 0 {
		r.done = true
	}
}

// waitForAnimation holds the script until an animation of the given
// duration has finished.
func (r *TestRunner) waitForAnimation(duration float32) {
	if duration <= 0 {
		return
	}
	r.waitCount = int(math.Ceil(float64(duration) * float64(ebiten.TPS())))
}
