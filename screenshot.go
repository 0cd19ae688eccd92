package globe

import (
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
)

// Screenshot queues a labeled capture of the next drawn frame. Each capture
// is written to ScreenshotDir as a PNG named after the label and the view
// (<timestamp>_<label>_fov<f>_spin<s>_tilt<t>.png) next to a JSON file
// holding the full pose.
func (g *Globe) Screenshot(label string) {
	g.screenshotQueue = append(g.screenshotQueue, label)
}

// capture is the view state recorded with a screenshot. Angles are degrees.
type capture struct {
	Label    string  `json:"label"`
	Width    int     `json:"width"`
	Height   int     `json:"height"`
	FOV      float64 `json:"fov"`
	Spin     float64 `json:"spin"`
	Tilt     float64 `json:"tilt"`
	Seasonal float64 `json:"seasonalTilt"`
	AutoSpin float64 `json:"autoSpin"`
	Date     string  `json:"date"`
	AR       bool    `json:"ar"`
}

func (g *Globe) captureState(label string, w, h int) capture {
	c := capture{
		Label:    label,
		Width:    w,
		Height:   h,
		FOV:      g.zoom.FOV(),
		Spin:     mgl64.RadToDeg(g.orientation.Spin),
		Tilt:     mgl64.RadToDeg(g.orientation.Tilt),
		Seasonal: mgl64.RadToDeg(g.orientation.Seasonal),
		AutoSpin: mgl64.RadToDeg(g.spin.Angle()),
		AR:       g.arMode,
	}
	if g.cfg.Clock != nil {
		c.Date = g.cfg.Clock().UTC().Format(time.RFC3339)
	}
	return c
}

// baseName is the file name shared by the PNG and its JSON, without extension.
func (c capture) baseName(stamp string) string {
	return fmt.Sprintf("%s_%s_fov%.1f_spin%.1f_tilt%.1f",
		stamp, sanitizeLabel(c.Label), c.FOV, c.Spin, c.Tilt)
}

// flushScreenshots writes the rendered frame once per queued label. Failures
// are reported on stderr and never interrupt drawing.
func (g *Globe) flushScreenshots(screen *ebiten.Image) {
	if len(g.screenshotQueue) == 0 {
		return
	}
	bounds := screen.Bounds()
	pixels := make([]byte, 4*bounds.Dx()*bounds.Dy())
	screen.ReadPixels(pixels)
	g.writeCaptures(pixels, bounds.Dx(), bounds.Dy(), time.Now().Format("20060102_150405"))
}

// writeCaptures encodes pixels, premultiplied RGBA as read back from the GPU,
// for every queued label and empties the queue.
func (g *Globe) writeCaptures(pixels []byte, w, h int, stamp string) {
	defer func() { g.screenshotQueue = g.screenshotQueue[:0] }()

	if err := os.MkdirAll(g.ScreenshotDir, 0o755); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "[globe] screenshot: mkdir %s: %v\n", g.ScreenshotDir, err)
		return
	}

	img := frameImage(pixels, w, h, g.arMode)
	for _, label := range g.screenshotQueue {
		c := g.captureState(label, w, h)
		base := filepath.Join(g.ScreenshotDir, c.baseName(stamp))
		if err := writePNG(base+".png", img); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "[globe] screenshot: %v\n", err)
			continue
		}
		if err := writeCapture(base+".json", c); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "[globe] screenshot: %v\n", err)
		}
	}
}

// frameImage converts premultiplied pixels to NRGBA. In AR mode the camera
// feed is composited behind the frame, so transparency is kept. Otherwise the
// frame is flattened onto black and every pixel is opaque.
func frameImage(pixels []byte, w, h int, keepAlpha bool) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i+3 < len(pixels) && i+3 < len(img.Pix); i += 4 {
		r, gr, b, a := pixels[i], pixels[i+1], pixels[i+2], pixels[i+3]
		switch {
		case !keepAlpha:
			a = 255
		case a > 0 && a < 255:
			r = uint8(min(int(r)*255/int(a), 255))
			gr = uint8(min(int(gr)*255/int(a), 255))
			b = uint8(min(int(b)*255/int(a), 255))
		}
		img.Pix[i] = r
		img.Pix[i+1] = gr
		img.Pix[i+2] = b
		img.Pix[i+3] = a
	}
	return img
}

func writePNG(path string, img *image.NRGBA) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

func writeCapture(path string, c capture) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// sanitizeLabel keeps letters, digits, '-' and '.', replaces anything else
// with '_' and names empty labels "unlabeled".
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			return r
		}
		return '_'
	}, label)
}
