package quill

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// Geometry prop keys read by the shape callbacks. When present in the
// materialized props they override the geometry the callback was built with,
// which is how shapes are animated.
const (
	PropX      = "x"
	PropY      = "y"
	PropWidth  = "width"
	PropHeight = "height"
	PropCX     = "cx"
	PropCY     = "cy"
	PropR      = "r"
)

// defaultCircleSegments is used when Circle is given fewer than 3 segments.
const defaultCircleSegments = 48

var whitePixelImage *ebiten.Image

// ensureWhitePixel returns a lazily-initialized 1x1 white pixel image.
func ensureWhitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	}
	return whitePixelImage
}

// Rect returns a DrawFunc that fills or strokes an axis-aligned rectangle
// with the pass paint. Props x, y, width and height override the arguments.
func Rect(x, y, w, h float64) DrawFunc {
	return func(ctx DrawingContext, props Props, _ *DrawingNode) error {
		r := rectGeometry{
			x: props.FloatOr(PropX, x),
			y: props.FloatOr(PropY, y),
			w: props.FloatOr(PropWidth, w),
			h: props.FloatOr(PropHeight, h),
		}
		dst := ctx.Surface()
		if dst == nil || r.w <= 0 || r.h <= 0 {
			return nil
		}
		p := ctx.Paint()
		if p.Style == StyleFill {
			fillRect(dst, r, p, ctx.GeoM())
			return nil
		}
		for _, edge := range r.strokeEdges(p.StrokeWidth) {
			fillRect(dst, edge, p, ctx.GeoM())
		}
		return nil
	}
}

// Circle returns a DrawFunc that fills or strokes a circle approximated by a
// polygon of the given number of segments. Props cx, cy and r override the
// arguments.
func Circle(cx, cy, radius float64, segments int) DrawFunc {
	if segments < 3 {
		segments = defaultCircleSegments
	}
	return func(ctx DrawingContext, props Props, _ *DrawingNode) error {
		c := Vec2{props.FloatOr(PropCX, cx), props.FloatOr(PropCY, cy)}
		rad := props.FloatOr(PropR, radius)
		dst := ctx.Surface()
		if dst == nil || rad <= 0 {
			return nil
		}
		drawPath(dst, circlePoints(c, rad, segments), ctx.Paint(), ctx.GeoM())
		return nil
	}
}

// Polygon returns a DrawFunc that fills (fan triangulation, convex polygons)
// or strokes a closed polygon.
func Polygon(points []Vec2) DrawFunc {
	pts := append([]Vec2(nil), points...)
	return func(ctx DrawingContext, _ Props, _ *DrawingNode) error {
		dst := ctx.Surface()
		if dst == nil || len(pts) < 3 {
			return nil
		}
		drawPath(dst, pts, ctx.Paint(), ctx.GeoM())
		return nil
	}
}

type rectGeometry struct {
	x, y, w, h float64
}

// strokeEdges splits a rectangle outline of width sw into four filled rects
// centered on the rectangle's edges.
func (r rectGeometry) strokeEdges(sw float64) [4]rectGeometry {
	if sw <= 0 {
		sw = 1
	}
	half := sw / 2
	return [4]rectGeometry{
		{r.x - half, r.y - half, r.w + sw, sw},       // top
		{r.x - half, r.y + r.h - half, r.w + sw, sw}, // bottom
		{r.x - half, r.y + half, sw, r.h - sw},       // left
		{r.x + r.w - half, r.y + half, sw, r.h - sw}, // right
	}
}

func fillRect(dst *ebiten.Image, r rectGeometry, p *Paint, base ebiten.GeoM) {
	if r.w <= 0 || r.h <= 0 {
		return
	}
	var geoM ebiten.GeoM
	geoM.Scale(r.w, r.h)
	geoM.Translate(r.x, r.y)
	geoM.Concat(base)

	var op ebiten.DrawImageOptions
	p.DrawImageOptions(&op, geoM)
	dst.DrawImage(ensureWhitePixel(), &op)
}

func drawPath(dst *ebiten.Image, points []Vec2, p *Paint, base ebiten.GeoM) {
	var verts []ebiten.Vertex
	var inds []uint16
	if p.Style == StyleFill {
		verts, inds = fanVertices(points)
	} else {
		verts, inds = strokeVertices(points, p.StrokeWidth)
	}
	if len(inds) == 0 {
		return
	}
	transformVertices(verts, base)
	applyVertexColor(verts, p)

	var op ebiten.DrawTrianglesOptions
	p.DrawTrianglesOptions(&op)
	dst.DrawTriangles(verts, inds, ensureWhitePixel(), &op)
}

func circlePoints(c Vec2, r float64, segments int) []Vec2 {
	pts := make([]Vec2, segments)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(segments)
		pts[i] = Vec2{c.X + r*math.Cos(a), c.Y + r*math.Sin(a)}
	}
	return pts
}

// fanVertices generates vertices and indices for a fan-triangulated polygon.
// N vertices, 3*(N-2) indices. Untextured: every vertex samples the center of
// the white pixel.
func fanVertices(points []Vec2) ([]ebiten.Vertex, []uint16) {
	n := len(points)
	if n < 3 {
		return nil, nil
	}
	verts := make([]ebiten.Vertex, n)
	inds := make([]uint16, 0, (n-2)*3)
	for i, pt := range points {
		verts[i] = ebiten.Vertex{DstX: float32(pt.X), DstY: float32(pt.Y), SrcX: 0.5, SrcY: 0.5}
	}
	// Fan triangulation: vertex 0 is the hub.
	for i := 0; i < n-2; i++ {
		inds = append(inds, 0, uint16(i+1), uint16(i+2))
	}
	return verts, inds
}

// strokeVertices builds a closed outline of width sw as one quad per edge,
// offset half the width to each side of the edge.
func strokeVertices(points []Vec2, sw float64) ([]ebiten.Vertex, []uint16) {
	n := len(points)
	if n < 2 {
		return nil, nil
	}
	if sw <= 0 {
		sw = 1
	}
	half := sw / 2
	verts := make([]ebiten.Vertex, 0, n*4)
	inds := make([]uint16, 0, n*6)
	for i := 0; i < n; i++ {
		a, b := points[i], points[(i+1)%n]
		px, py := perpendicular(a, b)
		px, py = px*half, py*half
		base := uint16(len(verts))
		verts = append(verts,
			ebiten.Vertex{DstX: float32(a.X + px), DstY: float32(a.Y + py), SrcX: 0.5, SrcY: 0.5},
			ebiten.Vertex{DstX: float32(a.X - px), DstY: float32(a.Y - py), SrcX: 0.5, SrcY: 0.5},
			ebiten.Vertex{DstX: float32(b.X + px), DstY: float32(b.Y + py), SrcX: 0.5, SrcY: 0.5},
			ebiten.Vertex{DstX: float32(b.X - px), DstY: float32(b.Y - py), SrcX: 0.5, SrcY: 0.5},
		)
		inds = append(inds, base, base+1, base+2, base+1, base+3, base+2)
	}
	return verts, inds
}

// perpendicular returns the unit normal of segment a->b, or (0, 0) for a
// degenerate segment.
func perpendicular(a, b Vec2) (float64, float64) {
	dx, dy := b.X-a.X, b.Y-a.Y
	l := math.Hypot(dx, dy)
	if l == 0 {
		return 0, 0
	}
	return -dy / l, dx / l
}

func transformVertices(verts []ebiten.Vertex, m ebiten.GeoM) {
	for i := range verts {
		x, y := m.Apply(float64(verts[i].DstX), float64(verts[i].DstY))
		verts[i].DstX = float32(x)
		verts[i].DstY = float32(y)
	}
}

// applyVertexColor writes the paint's premultiplied color into every vertex.
func applyVertexColor(verts []ebiten.Vertex, p *Paint) {
	a := float32(p.EffectiveAlpha())
	r := float32(clamp01(p.Color.R)) * a
	g := float32(clamp01(p.Color.G)) * a
	b := float32(clamp01(p.Color.B)) * a
	for i := range verts {
		verts[i].ColorR = r
		verts[i].ColorG = g
		verts[i].ColorB = b
		verts[i].ColorA = a
	}
}
