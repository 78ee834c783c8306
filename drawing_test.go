package quill

import (
	"errors"
	"testing"
)

// --- Pass composition ---

func TestDrawLeafSinglePass(t *testing.T) {
	rec := &recorder{}
	n, m, p := newTestNode(false, rec)

	paint, err := n.Draw(testContext())
	if err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if paint != nil {
		t.Errorf("Draw returned paint %v, want nil", paint)
	}
	if len(rec.passes) != 1 {
		t.Fatalf("passes = %d, want 1", len(rec.passes))
	}
	if rec.passes[0].paint != p.selected {
		t.Error("base pass should use the selected paint")
	}
	if m.calls != 1 || p.selectCalls != 1 || p.processCalls != 1 {
		t.Errorf("materialize/select/process = %d/%d/%d, want 1/1/1", m.calls, p.selectCalls, p.processCalls)
	}
	if rec.nodes[0] != n {
		t.Error("callback should receive the node being drawn")
	}
}

func TestDrawPassPerChildPaint(t *testing.T) {
	paintX := &Paint{Alpha: 0.25}
	a := &stubNode{}
	b := &stubNode{paint: paintX}
	c := &stubNode{}
	rec := &recorder{}
	n, m, p := newTestNode(false, rec, a, b, c)

	ctx := testContext()
	if _, err := n.Draw(ctx); err != nil {
		t.Fatalf("Draw: %v", err)
	}

	if len(rec.passes) != 2 {
		t.Fatalf("passes = %d, want 2", len(rec.passes))
	}
	if rec.passes[0].paint != p.selected {
		t.Error("pass 0 should use the selected paint")
	}
	if rec.passes[1].paint != paintX {
		t.Error("pass 1 should use the paint yielded by the second child")
	}
	if rec.passes[0].props != rec.passes[1].props {
		t.Error("all passes of one Draw should share the same props snapshot")
	}
	if m.calls != 1 {
		t.Errorf("materialize calls = %d, want 1", m.calls)
	}
	for i, child := range []*stubNode{a, b, c} {
		if len(child.draws) != 1 {
			t.Fatalf("child %d drawn %d times, want 1", i, len(child.draws))
		}
		if child.draws[0].Paint() != ctx.Paint() || child.draws[0].Opacity() != ctx.Opacity() {
			t.Errorf("child %d should be drawn with the incoming context", i)
		}
	}
}

func TestDrawPassOrderFollowsChildOrder(t *testing.T) {
	p1, p2, p3 := &Paint{}, &Paint{}, &Paint{}
	rec := &recorder{}
	n, _, p := newTestNode(false, rec, &stubNode{paint: p1}, &stubNode{paint: p2}, &stubNode{paint: p3})

	if _, err := n.Draw(testContext()); err != nil {
		t.Fatal(err)
	}
	want := []*Paint{p.selected, p1, p2, p3}
	if len(rec.passes) != len(want) {
		t.Fatalf("passes = %d, want %d", len(rec.passes), len(want))
	}
	for i, w := range want {
		if rec.passes[i].paint != w {
			t.Errorf("pass %d paint mismatch", i)
		}
	}
}

func TestDrawPassContextKeepsOpacity(t *testing.T) {
	rec := &recorder{}
	n, _, p := newTestNode(false, rec, &stubNode{paint: &Paint{}})
	ctx := testContext()

	if _, err := n.Draw(ctx); err != nil {
		t.Fatal(err)
	}
	for i, c := range rec.ctxs {
		if c.Opacity() != ctx.Opacity() {
			t.Errorf("pass %d opacity = %v, want %v", i, c.Opacity(), ctx.Opacity())
		}
	}
	if p.opacity != ctx.Opacity() {
		t.Errorf("ProcessPaint opacity = %v, want %v", p.opacity, ctx.Opacity())
	}
	if p.ambient != ctx.Paint() {
		t.Error("SelectPaint should receive the incoming ambient paint")
	}
	if ctx.Paint().Alpha != 1 {
		t.Errorf("incoming paint Alpha = %v, want untouched 1", ctx.Paint().Alpha)
	}
}

func TestDrawRepeatable(t *testing.T) {
	rec := &recorder{}
	n, m, _ := newTestNode(false, rec, &stubNode{paint: &Paint{}})

	for range 2 {
		if _, err := n.Draw(testContext()); err != nil {
			t.Fatal(err)
		}
	}
	if len(rec.passes) != 4 {
		t.Errorf("passes after two draws = %d, want 4", len(rec.passes))
	}
	if m.calls != 2 {
		t.Errorf("materialize calls = %d, want 2", m.calls)
	}
}

func TestDrawingNodeDoesNotYieldChildPaint(t *testing.T) {
	inner, err := NewPaintNode(NopTracker{}, Props{PropStyle: "stroke"})
	if err != nil {
		t.Fatal(err)
	}
	rec := &recorder{}
	n, err := NewDrawingNode(NopTracker{}, rec.draw, false, "rect", nil, inner)
	if err != nil {
		t.Fatal(err)
	}
	paint, err := n.Draw(testContext())
	if err != nil {
		t.Fatal(err)
	}
	if paint != nil {
		t.Error("a drawing node should never return a paint")
	}
	if len(rec.passes) != 2 {
		t.Fatalf("passes = %d, want 2", len(rec.passes))
	}
	if rec.passes[1].paint.Style != StyleStroke {
		t.Errorf("pass 1 style = %v, want stroke", rec.passes[1].paint.Style)
	}
}

// --- Skip-processing ---

func TestDrawSkipProcessing(t *testing.T) {
	child := &stubNode{paint: &Paint{}}
	rec := &recorder{}
	n, m, p := newTestNode(true, rec, child)
	ctx := testContext()

	paint, err := n.Draw(ctx)
	if err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if paint != nil {
		t.Error("skip-processing node should return nil paint")
	}
	if len(rec.passes) != 1 {
		t.Fatalf("passes = %d, want 1", len(rec.passes))
	}
	if rec.passes[0].paint != ctx.Paint() {
		t.Error("skip-processing callback should receive the incoming context unchanged")
	}
	if m.calls != 1 {
		t.Errorf("materialize calls = %d, want 1", m.calls)
	}
	if p.selectCalls != 0 || p.processCalls != 0 {
		t.Errorf("select/process = %d/%d, want 0/0", p.selectCalls, p.processCalls)
	}
	if len(child.draws) != 0 {
		t.Errorf("children drawn %d times, want 0", len(child.draws))
	}
}

// --- Errors ---

func TestDrawErrors(t *testing.T) {
	tests := []struct {
		name  string
		setup func(m *countingMaterializer, p *recordingProcessor, child *stubNode, rec *recorder)
		// wantPasses is the number of callback attempts made before failing.
		wantPasses int
	}{
		{
			name:  "materialize",
			setup: func(m *countingMaterializer, _ *recordingProcessor, _ *stubNode, _ *recorder) { m.err = errBoom },
		},
		{
			name:  "select",
			setup: func(_ *countingMaterializer, p *recordingProcessor, _ *stubNode, _ *recorder) { p.selectErr = errBoom },
		},
		{
			name:  "process",
			setup: func(_ *countingMaterializer, p *recordingProcessor, _ *stubNode, _ *recorder) { p.processErr = errBoom },
		},
		{
			name:  "child",
			setup: func(_ *countingMaterializer, _ *recordingProcessor, c *stubNode, _ *recorder) { c.err = errBoom },
		},
		{
			name: "first pass",
			setup: func(_ *countingMaterializer, _ *recordingProcessor, _ *stubNode, r *recorder) {
				r.failAt, r.err = 1, errBoom
			},
			wantPasses: 1,
		},
		{
			name: "second pass",
			setup: func(_ *countingMaterializer, _ *recordingProcessor, _ *stubNode, r *recorder) {
				r.failAt, r.err = 2, errBoom
			},
			wantPasses: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			child := &stubNode{paint: &Paint{}}
			after := &stubNode{}
			rec := &recorder{}
			n, m, p := newTestNode(false, rec, child, after)
			tt.setup(m, p, child, rec)

			paint, err := n.Draw(testContext())
			if err != errBoom {
				t.Fatalf("err = %v, want errBoom unchanged", err)
			}
			if paint != nil {
				t.Error("failed Draw should return nil paint")
			}
			if len(rec.passes) != tt.wantPasses {
				t.Errorf("callback attempts = %d, want %d", len(rec.passes), tt.wantPasses)
			}
			if tt.name == "child" && len(after.draws) != 0 {
				t.Error("children after a failing child should not be drawn")
			}
		})
	}
}

func TestDrawSkipProcessingError(t *testing.T) {
	rec := &recorder{failAt: 1, err: errBoom}
	n, _, _ := newTestNode(true, rec)
	if _, err := n.Draw(testContext()); err != errBoom {
		t.Errorf("err = %v, want errBoom", err)
	}
}

func TestDrawMaterializeErrorFromAnimated(t *testing.T) {
	s := NewShared(1.0)
	rec := &recorder{}
	n, err := NewDrawingNode(NopTracker{}, rec.draw, false, "rect", Props{"x": s})
	if err != nil {
		t.Fatal(err)
	}
	s.Dispose()

	_, err = n.Draw(testContext())
	if !errors.Is(err, ErrDisposedValue) {
		t.Fatalf("err = %v, want ErrDisposedValue", err)
	}
	var pe *PropError
	if !errors.As(err, &pe) || pe.Path != "x" {
		t.Errorf("err = %v, want *PropError at x", err)
	}
	if len(rec.passes) != 0 {
		t.Errorf("callback ran %d times, want 0", len(rec.passes))
	}
}

// --- Descriptor ---

func TestDescriptor(t *testing.T) {
	props := Props{"x": NewShared(3.0), "width": 10.0}
	n, err := NewDrawingNode(NopTracker{}, (&recorder{}).draw, false, "rect", props)
	if err != nil {
		t.Fatal(err)
	}

	before := n.Descriptor()
	if before.DrawingType != "rect" {
		t.Errorf("DrawingType = %q, want rect", before.DrawingType)
	}
	if _, err := n.Draw(testContext()); err != nil {
		t.Fatal(err)
	}
	after := n.Descriptor()
	if after.DrawingType != before.DrawingType {
		t.Error("descriptor type changed after Draw")
	}
	if after.Props["x"] != props["x"] {
		t.Error("descriptor should expose the unmaterialized animated value")
	}
	if len(after.Props) != len(props) {
		t.Errorf("len(Props) = %d, want %d", len(after.Props), len(props))
	}
}

func TestDescriptorEmptyType(t *testing.T) {
	n, err := NewDrawingNode(NopTracker{}, (&recorder{}).draw, false, "", nil)
	if err != nil {
		t.Fatal(err)
	}
	d := n.Descriptor()
	if d.DrawingType != "" {
		t.Errorf("DrawingType = %q, want empty", d.DrawingType)
	}
	if d.Props == nil {
		t.Error("nil props should be normalized to an empty map")
	}
}

// --- Construction ---

func TestNewDrawingNodeRegistrationError(t *testing.T) {
	child := &stubNode{}
	n, err := NewDrawingNode(failingTracker{err: errBoom}, (&recorder{}).draw, false, "rect", nil, child)
	if !errors.Is(err, errBoom) {
		t.Fatalf("err = %v, want errBoom", err)
	}
	if n != nil {
		t.Error("node should not be created on registration failure")
	}
	if child.parent != nil {
		t.Error("child should not be adopted by a node that failed to construct")
	}
}

func TestNewDrawingNodePanics(t *testing.T) {
	tests := []struct {
		name string
		fn   func()
	}{
		{"nil tracker", func() { NewDrawingNode(nil, (&recorder{}).draw, false, "", nil) }},
		{"nil draw func", func() { NewDrawingNode(NopTracker{}, nil, false, "", nil) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			tt.fn()
		})
	}
}

func TestDrawingNodeAccessors(t *testing.T) {
	props := Props{"a": 1.0}
	n, err := NewDrawingNode(NopTracker{}, (&recorder{}).draw, true, "group", props)
	if err != nil {
		t.Fatal(err)
	}
	if n.ID() == 0 {
		t.Error("ID should be non-zero")
	}
	if !n.SkipProcessing() {
		t.Error("SkipProcessing = false, want true")
	}
	if n.DrawingType() != "group" {
		t.Errorf("DrawingType = %q, want group", n.DrawingType())
	}
	if len(n.Props()) != 1 {
		t.Errorf("len(Props) = %d, want 1", len(n.Props()))
	}
	if _, ok := n.Pipeline().Materializer.(DefaultMaterializer); !ok {
		t.Error("default materializer not installed")
	}
}

func TestSetPipelineKeepsNilFields(t *testing.T) {
	n, _, p := newTestNode(false, &recorder{})
	n.SetPipeline(Pipeline{})
	if n.Pipeline().Paint != p {
		t.Error("SetPipeline with nil Paint should keep the current processor")
	}
}

// --- Props replacement ---

func TestSetPropsReRegisters(t *testing.T) {
	reg := NewRegistry(nil)
	a, b := NewShared(1.0), NewShared(2.0)
	n, err := NewDrawingNode(reg, (&recorder{}).draw, false, "rect", Props{"x": a})
	if err != nil {
		t.Fatal(err)
	}
	if a.Subscribers() != 1 {
		t.Fatalf("a subscribers = %d, want 1", a.Subscribers())
	}

	if err := n.SetProps(Props{"x": b}); err != nil {
		t.Fatalf("SetProps: %v", err)
	}
	if a.Subscribers() != 0 {
		t.Errorf("a subscribers = %d, want 0 after SetProps", a.Subscribers())
	}
	if b.Subscribers() != 1 {
		t.Errorf("b subscribers = %d, want 1", b.Subscribers())
	}
	if n.Props()["x"] != b {
		t.Error("Props not replaced")
	}
}

func TestSetPropsFailureKeepsOld(t *testing.T) {
	reg := NewRegistry(nil)
	a := NewShared(1.0)
	n, err := NewDrawingNode(reg, (&recorder{}).draw, false, "rect", Props{"x": a})
	if err != nil {
		t.Fatal(err)
	}
	var nilShared *Shared
	if err := n.SetProps(Props{"x": nilShared}); !errors.Is(err, ErrNilAnimated) {
		t.Fatalf("err = %v, want ErrNilAnimated", err)
	}
	if n.Props()["x"] != a {
		t.Error("failed SetProps should keep the old props")
	}
	if a.Subscribers() != 1 {
		t.Errorf("a subscribers = %d, want 1", a.Subscribers())
	}
}

// --- Dispose ---

func TestDrawingNodeDispose(t *testing.T) {
	reg := NewRegistry(nil)
	s := NewShared(1.0)
	leaf, err := NewDrawingNode(reg, (&recorder{}).draw, false, "leaf", Props{"x": s})
	if err != nil {
		t.Fatal(err)
	}
	root, err := NewDrawingNode(reg, (&recorder{}).draw, false, "root", nil, leaf)
	if err != nil {
		t.Fatal(err)
	}

	root.Dispose()
	if !root.IsDisposed() || !leaf.IsDisposed() {
		t.Error("Dispose should dispose the subtree")
	}
	if s.Subscribers() != 0 {
		t.Errorf("subscribers = %d, want 0 after Dispose", s.Subscribers())
	}
	if reg.Len() != 0 {
		t.Errorf("registry Len = %d, want 0", reg.Len())
	}
	root.Dispose()
}
