package globe

import (
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
)

// nightShaderSrc blends the day texture (lit by the vertex color) with the
// night-lights texture where the surface is dark. Both source images must
// share a size.
const nightShaderSrc = `//kage:unit pixels
package main

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	day := imageSrc0At(src)
	night := imageSrc1At(src)
	luma := dot(color.rgb, vec3(0.2126, 0.7152, 0.0722))
	glow := max(0.0, 1.0-16.0*luma) * 0.5
	return vec4(day.rgb*color.rgb+night.rgb*glow, 1.0)
}
`

var (
	nightShader       *ebiten.Shader
	nightShaderFailed bool
)

// ensureNightShader compiles the night-lights shader on first use. A compile
// failure is reported once and the globe falls back to day-only rendering.
func ensureNightShader() *ebiten.Shader {
	if nightShader == nil && !nightShaderFailed {
		s, err := ebiten.NewShader([]byte(nightShaderSrc))
		if err != nil {
			nightShaderFailed = true
			_, _ = fmt.Fprintf(os.Stderr, "[globe] night shader disabled: %v\n", err)
			return nil
		}
		nightShader = s
	}
	return nightShader
}
