package globe

import (
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

const (
	hudWidth  = 190
	hudHeight = 80
	hudMargin = 8
)

// hudText formats the overlay lines: frame rates, zoom and orientation.
func hudText(fps, tps float64, g *Globe) string {
	o := g.Orientation()
	spin := "off"
	if o.AutoSpin {
		spin = "on"
	}
	return fmt.Sprintf("FPS: %.1f  TPS: %.1f\nFOV: %.1f\nspin %.1f tilt %.1f\nseason %.2f  auto %s",
		fps, tps, g.Zoom(),
		mgl64.RadToDeg(o.Spin), mgl64.RadToDeg(o.Tilt),
		mgl64.RadToDeg(o.Seasonal), spin)
}

var hudPanel *ebiten.Image

// drawHUD prints the overlay in the top-left corner on a translucent panel.
func drawHUD(screen *ebiten.Image, g *Globe) {
	if hudPanel == nil {
		hudPanel = ebiten.NewImage(hudWidth, hudHeight)
		hudPanel.Fill(color.RGBA{0, 0, 0, 128})
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Translate(hudMargin, hudMargin)
	screen.DrawImage(hudPanel, &op)

	text := hudText(ebiten.ActualFPS(), ebiten.ActualTPS(), g)
	ebitenutil.DebugPrintAt(screen, text, hudMargin+4, hudMargin+4)
}
