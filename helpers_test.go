package quill

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// --- Fakes shared by the drawing tests ---

// countingMaterializer returns snap (or a fresh empty snapshot) and counts
// its calls.
type countingMaterializer struct {
	snap  Props
	err   error
	calls int
}

func (m *countingMaterializer) Materialize(Props) (Props, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	if m.snap == nil {
		m.snap = Props{}
	}
	return m.snap, nil
}

// recordingProcessor hands out selected and records what it was given.
type recordingProcessor struct {
	selected   *Paint
	selectErr  error
	processErr error

	selectCalls  int
	processCalls int
	ambient      *Paint
	opacity      float64
	props        Props
}

func (p *recordingProcessor) SelectPaint(ambient *Paint, props Props) (*Paint, error) {
	p.selectCalls++
	p.ambient = ambient
	p.props = props
	if p.selectErr != nil {
		return nil, p.selectErr
	}
	if p.selected == nil {
		p.selected = NewPaint()
	}
	return p.selected, nil
}

func (p *recordingProcessor) ProcessPaint(_ *Paint, opacity float64, _ Props) error {
	p.processCalls++
	p.opacity = opacity
	return p.processErr
}

// stubNode is a leaf that returns a fixed paint and error.
type stubNode struct {
	Tree
	paint *Paint
	err   error
	draws []DrawingContext
}

func (n *stubNode) Draw(ctx DrawingContext) (*Paint, error) {
	n.draws = append(n.draws, ctx)
	return n.paint, n.err
}

// pass records one callback invocation.
type pass struct {
	paint *Paint
	props string
}

// recorder collects callback invocations.
type recorder struct {
	passes []pass
	ctxs   []DrawingContext
	nodes  []*DrawingNode
	failAt int // 1-based pass number to fail at, 0 = never
	err    error
}

func (r *recorder) draw(ctx DrawingContext, props Props, node *DrawingNode) error {
	r.passes = append(r.passes, pass{paint: ctx.Paint(), props: fmt.Sprintf("%p", props)})
	r.ctxs = append(r.ctxs, ctx)
	r.nodes = append(r.nodes, node)
	if r.failAt == len(r.passes) {
		return r.err
	}
	return nil
}

// failingTracker rejects every registration.
type failingTracker struct{ err error }

func (f failingTracker) Register(uint32, Props) (Registration, error) {
	return nil, f.err
}

var errBoom = errors.New("boom")

func testContext() DrawingContext {
	return NewDrawingContext(nil, ebiten.GeoM{}, &Paint{Color: ColorWhite, Alpha: 1, StrokeWidth: 1}, 0.5)
}

// newTestNode builds a drawing node wired to a counting materializer and a
// recording processor.
func newTestNode(skip bool, rec *recorder, children ...Node) (*DrawingNode, *countingMaterializer, *recordingProcessor) {
	n, err := NewDrawingNode(NopTracker{}, rec.draw, skip, "test", Props{"k": 1.0}, children...)
	if err != nil {
		panic(err)
	}
	m := &countingMaterializer{}
	p := &recordingProcessor{}
	n.SetPipeline(Pipeline{Materializer: m, Paint: p})
	return n, m, p
}
