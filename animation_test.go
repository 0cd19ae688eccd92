package globe

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func TestTweenMarkerScaleReachesTarget(t *testing.T) {
	m := NewGlowingMarker(0, 0)

	g := TweenMarkerScale(m, 2.0, 0.5, ease.Linear)

	// Exact halves avoid float32 accumulation drift.
	g.Update(0.25)
	g.Update(0.25)

	if !g.Done {
		t.Fatal("expected Done after full duration")
	}
	if math.Abs(m.Scale-2.0) > 0.01 {
		t.Errorf("Scale = %f, want ~2.0", m.Scale)
	}
}

func TestTweenMarkerColorAllComponents(t *testing.T) {
	m := NewGlowingMarker(0, 0)
	m.Color = Color{R: 1, G: 0, B: 0, A: 1}
	target := Color{R: 0, G: 1, B: 0.5, A: 0.5}

	g := TweenMarkerColor(m, target, 1.0, ease.Linear)

	g.Update(0.5)
	g.Update(0.5)

	if !g.Done {
		t.Fatal("expected Done after full duration")
	}
	if math.Abs(m.Color.R-0) > 0.01 {
		t.Errorf("R = %f, want ~0", m.Color.R)
	}
	if math.Abs(m.Color.G-1) > 0.01 {
		t.Errorf("G = %f, want ~1", m.Color.G)
	}
	if math.Abs(m.Color.B-0.5) > 0.01 {
		t.Errorf("B = %f, want ~0.5", m.Color.B)
	}
	if math.Abs(m.Color.A-0.5) > 0.01 {
		t.Errorf("A = %f, want ~0.5", m.Color.A)
	}
}

func TestTweenMarkerAlphaInterpolates(t *testing.T) {
	m := NewGlowingMarker(0, 0)
	m.Alpha = 1.0

	g := TweenMarkerAlpha(m, 0.0, 1.0, ease.Linear)

	g.Update(0.5)
	if g.Done {
		t.Fatal("should not be done at midpoint")
	}
	if math.Abs(m.Alpha-0.5) > 0.05 {
		t.Errorf("Alpha at midpoint = %f, want ~0.5", m.Alpha)
	}

	g.Update(0.5)
	if !g.Done {
		t.Fatal("expected Done after full duration")
	}
	if math.Abs(m.Alpha) > 0.01 {
		t.Errorf("Alpha = %f, want ~0", m.Alpha)
	}
}

func TestTweenGroupDoneFlagTransition(t *testing.T) {
	m := NewGlowingMarker(0, 0)
	g := TweenMarkerAlpha(m, 0, 1.0, ease.Linear)

	if g.Done {
		t.Fatal("should not be Done initially")
	}

	g.Update(0.5)
	if g.Done {
		t.Fatal("should not be Done at halfway")
	}

	g.Update(0.5)
	if !g.Done {
		t.Fatal("should be Done after full duration")
	}

	// Further updates are no-ops.
	m.Alpha = 42
	g.Update(0.1)
	if m.Alpha != 42 {
		t.Error("Update after Done should not write")
	}
}

func TestTweenGroupDisposedMarker(t *testing.T) {
	m := NewGlowingMarker(0, 0)
	g := TweenMarkerScale(m, 3, 1.0, ease.Linear)

	m.Node().Dispose()
	g.Update(0.5)

	if !g.Done {
		t.Fatal("expected Done after marker node disposed")
	}
	if m.Scale != 1 {
		t.Errorf("Scale = %f, want 1 (unchanged)", m.Scale)
	}
}

func TestTweenGroupDisposedMidAnimation(t *testing.T) {
	m := NewGlowingMarker(0, 0)
	g := TweenMarkerScale(m, 3, 1.0, ease.Linear)

	g.Update(0.3)
	saved := m.Scale

	m.Node().Dispose()
	g.Update(0.1)
	if !g.Done {
		t.Fatal("expected Done after node disposed mid-animation")
	}
	if m.Scale != saved {
		t.Error("scale should not change after disposal")
	}
}

func TestTweenEasingFunctionsProduceDifferentCurves(t *testing.T) {
	mL := NewGlowingMarker(0, 0)
	mC := NewGlowingMarker(0, 0)

	gL := TweenMarkerScale(mL, 3, 1.0, ease.Linear)
	gC := TweenMarkerScale(mC, 3, 1.0, ease.OutCubic)

	gL.Update(0.5)
	gC.Update(0.5)

	// OutCubic should be ahead of linear at the midpoint.
	if mC.Scale-mL.Scale < 0.1 {
		t.Errorf("easing curves should differ at midpoint: linear=%f cubic=%f", mL.Scale, mC.Scale)
	}
}

// --- Orientation tween ---

func TestTweenOrientationReachesTarget(t *testing.T) {
	var o Orientation
	g := TweenOrientation(&o, 1.0, -0.5, 1.0, ease.InOutSine)

	g.Update(0.5)
	if o.Spin <= 0 || o.Spin >= 1 {
		t.Errorf("mid Spin = %v, want between 0 and 1", o.Spin)
	}
	g.Update(0.5)
	if !g.Done {
		t.Fatal("expected Done after full duration")
	}
	if math.Abs(o.Spin-1) > 1e-6 || math.Abs(o.Tilt+0.5) > 1e-6 {
		t.Errorf("end = (%v, %v), want (1, -0.5)", o.Spin, o.Tilt)
	}
}

func TestTweenOrientationShortWay(t *testing.T) {
	o := Orientation{Spin: 3.0}
	// From 3.0 to -3.0 is 0.28 rad forward across π, not 6 rad back.
	g := TweenOrientation(&o, -3.0, 0, 1.0, ease.Linear)

	g.Update(0.5)
	if o.Spin < 3.0 && o.Spin > -3.0 {
		t.Errorf("mid Spin = %v, should pass through ±π", o.Spin)
	}
	g.Update(0.5)
	if math.Abs(o.Spin-(-3.0)) > 1e-5 {
		t.Errorf("end Spin = %v, want -3.0", o.Spin)
	}
	if o.Spin <= -math.Pi || o.Spin > math.Pi {
		t.Errorf("Spin %v outside (-π, π]", o.Spin)
	}
}

func TestTweenOrientationClampsTilt(t *testing.T) {
	var o Orientation
	g := TweenOrientation(&o, 0, 5, 0.5, ease.Linear)
	g.Update(0.5)
	if math.Abs(o.Tilt-MaxTilt) > 1e-6 {
		t.Errorf("Tilt = %v, want %v", o.Tilt, MaxTilt)
	}
}

func TestTweenGroupUpdateZeroAlloc(t *testing.T) {
	m := NewGlowingMarker(0, 0)
	g := TweenMarkerScale(m, 100, 1.0, ease.Linear)

	// Warm up.
	g.Update(0.01)

	result := testing.AllocsPerRun(100, func() {
		g.Update(0.001)
	})
	if result > 0 {
		t.Errorf("TweenGroup.Update allocated %f times per run, want 0", result)
	}
}
