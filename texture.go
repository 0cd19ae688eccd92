package globe

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	xdraw "golang.org/x/image/draw"
)

// LoadImage decodes a PNG or JPEG file.
func LoadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load texture %s: %w", path, err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("load texture %s: %w", path, err)
	}
	return img, nil
}

// resample scales src to exactly w x h.
func resample(src image.Image, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}

// limitSize shrinks img (keeping its aspect) so neither side exceeds maxSide.
func limitSize(img image.Image, maxSide int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxSide && h <= maxSide {
		return img
	}
	scale := float64(maxSide) / float64(w)
	if h > w {
		scale = float64(maxSide) / float64(h)
	}
	nw := int(math.Max(1, math.Round(float64(w)*scale)))
	nh := int(math.Max(1, math.Round(float64(h)*scale)))
	return resample(img, nw, nh)
}

// Graticule colors.
var (
	graticuleOcean = color.RGBA{R: 18, G: 52, B: 110, A: 255}
	graticuleLine  = color.RGBA{R: 120, G: 170, B: 230, A: 255}
	graticuleMajor = color.RGBA{R: 230, G: 200, B: 90, A: 255}
	graticuleIce   = color.RGBA{R: 225, G: 235, B: 245, A: 255}
)

// GenerateGraticule draws an equirectangular placeholder map: ocean blue with
// lines every stepDeg degrees, the equator and prime meridian highlighted and
// polar caps above 75°.
func GenerateGraticule(w, h int, stepDeg float64) *image.RGBA {
	if w < 2 {
		w = 2
	}
	if h < 1 {
		h = 1
	}
	if stepDeg <= 0 {
		stepDeg = 15
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	degPerX := 360.0 / float64(w)
	degPerY := 180.0 / float64(h)
	for y := 0; y < h; y++ {
		lat := 90 - (float64(y)+0.5)*degPerY
		onLat := nearMultiple(lat, stepDeg, degPerY)
		for x := 0; x < w; x++ {
			lon := (float64(x)+0.5)*degPerX - 180
			c := graticuleOcean
			switch {
			case math.Abs(lat) > 75:
				c = graticuleIce
			case math.Abs(lat) < degPerY || math.Abs(lon) < degPerX:
				c = graticuleMajor
			case onLat || nearMultiple(lon, stepDeg, degPerX):
				c = graticuleLine
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// nearMultiple reports whether v lies within half a pixel (tol degrees) of a
// multiple of step.
func nearMultiple(v, step, tol float64) bool {
	r := math.Mod(math.Abs(v), step)
	return r < tol/2+1e-9 || step-r < tol/2+1e-9
}

// textureSet holds the globe's source images and their GPU copies. The GPU
// images are created on first draw.
type textureSet struct {
	dayImg   image.Image
	nightImg image.Image
	day      *ebiten.Image
	night    *ebiten.Image
	width    float64
	height   float64
}

// newTextureSet prepares day and night images. A nil day image is replaced
// by a generated graticule. The night image, if any, is resampled to the day
// image's size so the shader can sample both at the same coordinates.
func newTextureSet(day, night image.Image) *textureSet {
	if day == nil {
		day = GenerateGraticule(1024, 512, 15)
	}
	day = limitSize(day, MaxTextureSize)
	b := day.Bounds()
	t := &textureSet{
		dayImg: day,
		width:  float64(b.Dx()),
		height: float64(b.Dy()),
	}
	if night != nil {
		nb := night.Bounds()
		if nb.Dx() != b.Dx() || nb.Dy() != b.Dy() {
			night = resample(night, b.Dx(), b.Dy())
		}
		t.nightImg = night
	}
	return t
}

// ensure uploads the images to the GPU if that hasn't happened yet.
func (t *textureSet) ensure() {
	if t.day == nil && t.dayImg != nil {
		t.day = ebiten.NewImageFromImage(t.dayImg)
	}
	if t.night == nil && t.nightImg != nil {
		t.night = ebiten.NewImageFromImage(t.nightImg)
	}
}

func (t *textureSet) dispose() {
	if t.day != nil {
		t.day.Deallocate()
		t.day = nil
	}
	if t.night != nil {
		t.night.Deallocate()
		t.night = nil
	}
}
