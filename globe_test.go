package globe

import (
	"image"
	"math"
	"math/rand/v2"
	"testing"
)

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

// --- Rect ---

func TestRectContains(t *testing.T) {
	r := Rect{10, 20, 100, 50}
	tests := []struct {
		name   string
		x, y   float64
		expect bool
	}{
		{"inside", 50, 40, true},
		{"top-left corner", 10, 20, true},
		{"bottom-right corner", 110, 70, true},
		{"outside left", 9, 40, false},
		{"outside right", 111, 40, false},
		{"outside above", 50, 19, false},
		{"outside below", 50, 71, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.x, tt.y); got != tt.expect {
				t.Errorf("Rect%v.Contains(%v, %v) = %v, want %v", r, tt.x, tt.y, got, tt.expect)
			}
		})
	}
}

func TestRectEmpty(t *testing.T) {
	if !(Rect{0, 0, 0, 100}).Empty() {
		t.Error("zero width should be empty")
	}
	if !(Rect{0, 0, 100, -1}).Empty() {
		t.Error("negative height should be empty")
	}
	if (Rect{0, 0, 1, 1}).Empty() {
		t.Error("1x1 should not be empty")
	}
}

func TestRectFromImage(t *testing.T) {
	r := rectFromImage(image.Rect(10, 20, 110, 70))
	if r != (Rect{10, 20, 100, 50}) {
		t.Errorf("rectFromImage = %v", r)
	}
	if r.Size() != (Vec2{100, 50}) {
		t.Errorf("Size = %v", r.Size())
	}
}

// --- Color ---

func TestColorRGBAPremultiplies(t *testing.T) {
	c := Color{1, 0.5, 0, 0.5}.RGBA()
	if c.A != 127 {
		t.Errorf("A = %d, want 127", c.A)
	}
	if c.R != 127 {
		t.Errorf("R = %d, want 127", c.R)
	}
	if c.G != 63 {
		t.Errorf("G = %d, want 63", c.G)
	}
	if c.B != 0 {
		t.Errorf("B = %d, want 0", c.B)
	}
}

func TestColorRGBAClamps(t *testing.T) {
	c := Color{2, -1, 0.5, 1}.RGBA()
	if c.R != 255 || c.G != 0 {
		t.Errorf("RGBA = %v, want R=255 G=0", c)
	}
}

func TestColorLuma(t *testing.T) {
	if !approxEqual(ColorWhite.Luma(), 1, 1e-9) {
		t.Errorf("white luma = %v", ColorWhite.Luma())
	}
	if ColorBlack.Luma() != 0 {
		t.Errorf("black luma = %v", ColorBlack.Luma())
	}
}

func TestColorScaleKeepsAlpha(t *testing.T) {
	c := Color{0.5, 0.5, 0.5, 0.25}.Scale(2)
	if c != (Color{1, 1, 1, 0.25}) {
		t.Errorf("Scale = %v", c)
	}
}

// --- Range ---

func TestRangeRandomWithinBounds(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	r := Range{Min: 3, Max: 5}
	for i := 0; i < 1000; i++ {
		v := r.Random(rng)
		if v < 3 || v >= 5 {
			t.Fatalf("Random = %v, out of [3, 5)", v)
		}
	}
}

func TestRangeRandomDegenerate(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	if v := (Range{Min: 4, Max: 4}).Random(rng); v != 4 {
		t.Errorf("Random = %v, want 4", v)
	}
}

func TestEventTypeString(t *testing.T) {
	if EventPinch.String() != "pinch" {
		t.Errorf("EventPinch = %q", EventPinch.String())
	}
	if EventType(200).String() != "unknown" {
		t.Errorf("EventType(200) = %q", EventType(200).String())
	}
}
