package globe

import (
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func loadRunner(t *testing.T, script string) *TestRunner {
	t.Helper()
	runner, err := LoadTestScript([]byte(script))
	if err != nil {
		t.Fatalf("LoadTestScript: %v", err)
	}
	return runner
}

// --- Loading ---

func TestLoadTestScript(t *testing.T) {
	runner := loadRunner(t, `{
		"steps": [
			{"action": "screenshot", "label": "initial"},
			{"action": "tap", "x": 100, "y": 200},
			{"action": "pinch", "fromDist": 100, "toDist": 200, "frames": 6},
			{"action": "rotate", "spin": 90, "tilt": 10, "duration": 0.5},
			{"action": "wait", "frames": 3}
		]
	}`)
	if len(runner.steps) != 5 {
		t.Fatalf("expected 5 steps, got %d", len(runner.steps))
	}
	if runner.steps[1].Action != "tap" || runner.steps[1].X != 100 || runner.steps[1].Y != 200 {
		t.Error("step 1 mismatch")
	}
	if runner.steps[2].FromDist != 100 || runner.steps[2].ToDist != 200 || runner.steps[2].Frames != 6 {
		t.Error("step 2 mismatch")
	}
	if runner.steps[3].Spin != 90 || runner.steps[3].Tilt != 10 || runner.steps[3].Duration != 0.5 {
		t.Error("step 3 mismatch")
	}
}

func TestLoadTestScript_Errors(t *testing.T) {
	tests := []struct {
		name   string
		script string
		want   string
	}{
		{"invalid json", `not json`, "parse test script"},
		{"empty", `{"steps": []}`, "no steps"},
		{"unknown action", `{"steps": [{"action": "teleport"}]}`, `unknown action "teleport"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadTestScript([]byte(tt.script))
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to contain %q", err, tt.want)
			}
		})
	}
}

// --- Stepping ---

func TestRunnerStep_Tap(t *testing.T) {
	g := newTestGlobe(t)
	lat, lon := subsolarLatLon(g)
	m := NewGlowingMarker(lat, lon)
	clicks := 0
	m.OnClick = func(ClickContext) { clicks++ }
	g.AddMarker(m)
	g.advance(0)
	g.layout(g.Viewport())

	runner := loadRunner(t, `{"steps": [{"action": "tap", "x": 400, "y": 300}]}`)
	g.SetTestRunner(runner)

	runner.step(g)
	if len(g.injectQueue) != 2 {
		t.Fatalf("expected 2 queued frames, got %d", len(g.injectQueue))
	}
	if runner.Done() {
		t.Error("runner should not be done while the inject queue has frames")
	}

	g.processInjectedInput()
	g.processInjectedInput()
	if clicks != 1 {
		t.Errorf("clicks = %d, want 1", clicks)
	}

	runner.step(g)
	if !runner.Done() {
		t.Error("runner should be done once the queue is drained")
	}
}

func TestRunnerStep_Drag(t *testing.T) {
	g := newTestGlobe(t)
	runner := loadRunner(t, `{"steps": [{"action": "drag", "fromX": 300, "fromY": 300, "toX": 500, "toY": 300, "frames": 4}]}`)

	runner.step(g)
	if len(g.injectQueue) != 4 {
		t.Fatalf("expected 4 queued frames, got %d", len(g.injectQueue))
	}
	for g.processInjectedInput() {
	}
	if g.Orientation().Spin <= 0 {
		t.Errorf("Spin = %v, want positive after a rightward drag", g.Orientation().Spin)
	}
}

func TestRunnerStep_PinchDefaultsToCenter(t *testing.T) {
	g := newTestGlobe(t)
	runner := loadRunner(t, `{"steps": [{"action": "pinch", "fromDist": 100, "toDist": 200, "frames": 3}]}`)

	runner.step(g)
	first := g.injectQueue[0]
	if mid := (first[0].x + first[1].x) / 2; mid != 400 || first[0].y != 300 {
		t.Errorf("pinch center = (%v, %v), want (400, 300)", mid, first[0].y)
	}
	for g.processInjectedInput() {
		g.detectPinch()
	}
	if g.Zoom() != 15 {
		t.Errorf("Zoom = %v, want 15", g.Zoom())
	}
}

func TestRunnerStep_Zoom(t *testing.T) {
	g := newTestGlobe(t)
	runner := loadRunner(t, `{"steps": [{"action": "zoom", "fov": 10, "duration": 0.5}]}`)

	runner.step(g)
	if !g.zoom.Animating() {
		t.Fatal("zoom step should start an animation")
	}
	if runner.waitCount != 30 {
		t.Errorf("waitCount = %d, want 30 frames at 60 TPS", runner.waitCount)
	}
	for i := 0; i < 30; i++ {
		g.advance(1.0 / 60)
	}
	if !approxEqual(g.Zoom(), 10, 1e-3) {
		t.Errorf("Zoom = %v, want 10", g.Zoom())
	}
}

func TestRunnerStep_Rotate(t *testing.T) {
	g := newTestGlobe(t)
	runner := loadRunner(t, `{"steps": [{"action": "rotate", "spin": 90, "tilt": -20}]}`)

	runner.step(g)
	o := g.Orientation()
	if !approxEqual(o.Spin, mgl64.DegToRad(90), 1e-9) || !approxEqual(o.Tilt, mgl64.DegToRad(-20), 1e-9) {
		t.Errorf("orientation = %+v, want (90°, -20°)", o)
	}
	if !runner.Done() {
		t.Error("an instant rotate should finish the script")
	}
}

func TestRunnerStep_AutoSpin(t *testing.T) {
	g := newTestGlobe(t)
	runner := loadRunner(t, `{"steps": [{"action": "autospin", "enabled": true}]}`)
	runner.step(g)
	if !g.AutoSpin().Enabled() {
		t.Error("autospin step should enable the auto spin")
	}
}

func TestRunnerStep_Wait(t *testing.T) {
	g := newTestGlobe(t)
	runner := loadRunner(t, `{"steps": [
		{"action": "wait", "frames": 3},
		{"action": "screenshot", "label": "done"}
	]}`)

	// The wait step itself counts as the first frame.
	for i := 0; i < 3; i++ {
		runner.step(g)
		if runner.Done() {
			t.Fatalf("done after %d frames, want 4", i+1)
		}
	}
	runner.step(g)
	if !runner.Done() {
		t.Error("runner should be done after the screenshot step")
	}
	if len(g.screenshotQueue) != 1 || g.screenshotQueue[0] != "done" {
		t.Errorf("screenshot queue = %v, want [done]", g.screenshotQueue)
	}
}

func TestRunnerWaitsForInjectQueue(t *testing.T) {
	g := newTestGlobe(t)
	runner := loadRunner(t, `{"steps": [
		{"action": "tap", "x": 50, "y": 50},
		{"action": "screenshot", "label": "after"}
	]}`)

	runner.step(g)
	runner.step(g)
	if runner.cursor != 1 {
		t.Errorf("cursor = %d, want 1 while frames are pending", runner.cursor)
	}

	g.injectQueue = g.injectQueue[:0]
	runner.step(g)
	if len(g.screenshotQueue) != 1 || g.screenshotQueue[0] != "after" {
		t.Errorf("screenshot queue = %v, want [after]", g.screenshotQueue)
	}
	if !runner.Done() {
		t.Error("runner should be done")
	}
}

func TestUpdateDrivesRunner(t *testing.T) {
	g := newTestGlobe(t)
	g.cfg.DisableInput = true
	g.SetTestRunner(loadRunner(t, `{"steps": [{"action": "rotate", "spin": 45}]}`))

	if err := g.Update(); err != nil {
		t.Fatal(err)
	}
	if !approxEqual(g.Orientation().Spin, mgl64.DegToRad(45), 1e-9) {
		t.Errorf("Spin = %v, want 45°", g.Orientation().Spin)
	}
}
