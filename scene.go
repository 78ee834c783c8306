package quill

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Scene is the frame orchestrator: it owns the root node, the animation
// clock, and the dependency registry nodes are built against. Update and
// Draw are called once per tick/frame, from the same goroutine.
type Scene struct {
	root     Node
	clock    *Clock
	registry *Registry

	// ClearColor fills the screen before each frame when its alpha is > 0.
	ClearColor Color
	// Paint is the ambient paint of the root; copied fresh for every frame.
	Paint *Paint
	// Opacity is the ambient opacity of the root.
	Opacity float64
	// RedrawOnChange skips frames while no registered animated value has
	// changed since the last successful frame.
	RedrawOnChange bool
	// ScreenshotDir is where Screenshot writes PNG files ("." if empty).
	ScreenshotDir string

	screenshotQueue []string

	frame   uint64
	drawn   bool
	lastErr error
	debug   bool
}

// NewScene creates an empty scene with its own clock and registry.
func NewScene() *Scene {
	return &Scene{
		clock:    NewClock(),
		registry: NewRegistry(nil),
		Paint:    NewPaint(),
		Opacity:  1,
	}
}

// Root returns the scene's root node (nil until SetRoot).
func (s *Scene) Root() Node {
	return s.root
}

// SetRoot replaces the root node. The previous root is disposed if it
// implements Disposer.
func (s *Scene) SetRoot(n Node) {
	if s.root != nil && s.root != n {
		if d, ok := s.root.(Disposer); ok {
			d.Dispose()
		}
	}
	s.root = n
	s.drawn = false
}

// Clock returns the clock tweens should be created from.
func (s *Scene) Clock() *Clock {
	return s.clock
}

// Registry returns the dependency tracker nodes of this scene register with.
func (s *Scene) Registry() *Registry {
	return s.registry
}

// Frame returns the number of frames drawn or attempted so far.
func (s *Scene) Frame() uint64 {
	return s.frame
}

// LastError returns the error of the most recent failed frame, or nil if the
// most recent frame succeeded.
func (s *Scene) LastError() error {
	return s.lastErr
}

// SetDebugMode enables or disables debug mode for this scene and the
// package. When enabled, frame timing and pass counts are logged at debug
// level.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	SetDebugMode(enabled)
}

// Update advances the animation clock by dt seconds.
func (s *Scene) Update(dt float32) {
	s.clock.Advance(dt)
}

// NeedsRedraw reports whether Draw would traverse the tree.
func (s *Scene) NeedsRedraw() bool {
	return !s.RedrawOnChange || !s.drawn || s.lastErr != nil || s.registry.Dirty()
}

// Draw renders one frame onto screen (nil draws headless). The root's Draw is
// called exactly once with a fresh context. A failed traversal is logged and
// returned as a *FrameError; the tree is untouched and the next call starts
// over.
func (s *Scene) Draw(screen *ebiten.Image) error {
	if s.root == nil || !s.NeedsRedraw() {
		return nil
	}
	s.frame++

	if screen != nil && s.ClearColor.A > 0 {
		screen.Fill(s.ClearColor.toRGBA())
	}

	var t0 time.Time
	if s.debug {
		debugResetCounters()
		t0 = time.Now()
	}

	ctx := NewDrawingContext(screen, ebiten.GeoM{}, s.Paint.Copy(), s.Opacity)
	_, err := s.root.Draw(ctx)
	invalidated := s.registry.TakeDirty()

	if s.debug {
		debugLog(frameStats{
			frame:    s.frame,
			drawTime: time.Since(t0),
			nodes:    debugCounters.nodes,
			passes:   debugCounters.passes,
			dirty:    len(invalidated),
		})
	}

	if err != nil {
		s.lastErr = &FrameError{Frame: s.frame, Err: err}
		logger.Error("frame failed", "frame", s.frame, "err", err)
		return s.lastErr
	}
	s.lastErr = nil
	s.drawn = true
	s.flushScreenshots(screen)
	return nil
}

// Dispose disposes the root and drops every clock tween.
func (s *Scene) Dispose() {
	s.SetRoot(nil)
	for _, t := range s.clock.tweens {
		t.Dispose()
	}
	s.clock.Advance(0)
}
