package globe

import (
	"fmt"
	"os"
	"time"
)

// debugStats holds per-frame timing and geometry counts.
// Only populated when Globe.debug is true.
type debugStats struct {
	advanceTime time.Duration
	layoutTime  time.Duration
	drawTime    time.Duration
	triangles   int
	stars       int
	markers     int
}

// debugLog prints timing and geometry stats to stderr.
func (g *Globe) debugLog(stats debugStats) {
	if !g.debug {
		return
	}
	total := stats.advanceTime + stats.layoutTime + stats.drawTime
	_, _ = fmt.Fprintf(os.Stderr,
		"[globe] advance: %v | layout: %v | draw: %v | total: %v\n",
		stats.advanceTime, stats.layoutTime, stats.drawTime, total)
	_, _ = fmt.Fprintf(os.Stderr,
		"[globe] triangles: %d | stars: %d | markers: %d | fov: %.1f\n",
		stats.triangles, stats.stars, stats.markers, g.zoom.FOV())
}

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. Only called in debug mode.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("globe debug: %s on disposed node %q (ID was %d)", op, n.Name, n.ID))
	}
}

// debugCheckTreeDepth warns on stderr if tree depth exceeds the threshold.
const debugMaxTreeDepth = 16

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		_, _ = fmt.Fprintf(os.Stderr, "[globe] warning: tree depth %d exceeds %d (node %q)\n",
			depth, debugMaxTreeDepth, n.Name)
	}
}

// debugCheckChildCount warns on stderr if a node has more markers than the
// glow pass handles comfortably.
const debugMaxChildCount = 1000

func debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		_, _ = fmt.Fprintf(os.Stderr, "[globe] warning: node %q has %d children (threshold %d)\n",
			n.Name, len(n.children), debugMaxChildCount)
	}
}
