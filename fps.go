package quill

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// NewFPSNode creates a skip-processing node that prints the current FPS
// and TPS at (x, y) with ebitenutil.DebugPrintAt. The text is refreshed at
// most every half second of clock time.
func NewFPSNode(tracker DependencyTracker, clock *Clock, x, y int) (*DrawingNode, error) {
	var (
		text       string
		lastUpdate = -1.0
	)
	draw := func(ctx DrawingContext, _ Props, _ *DrawingNode) error {
		dst := ctx.Surface()
		if dst == nil {
			return nil
		}
		if now := clock.Elapsed(); lastUpdate < 0 || now-lastUpdate >= 0.5 {
			lastUpdate = now
			text = formatFPS(ebiten.ActualFPS(), ebiten.ActualTPS())
		}
		ebitenutil.DebugPrintAt(dst, text, x, y)
		return nil
	}
	return NewDrawingNode(tracker, draw, true, "fps", Props{PropX: float64(x), PropY: float64(y)})
}

func formatFPS(fps, tps float64) string {
	return fmt.Sprintf("FPS: %.1f\nTPS: %.1f", fps, tps)
}
