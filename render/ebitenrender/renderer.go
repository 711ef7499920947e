package ebitenrender

import (
	"image/color"
	"unicode/utf8"

	"github.com/phanxgames/shapetree"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// whiteImage is the small, fully opaque white source image passed to every
// DrawTriangles call; fill and stroke colors come from the vertex colors.
var whiteImage = func() *ebiten.Image {
	img := ebiten.NewImage(3, 3)
	img.Fill(color.White)
	return img
}()

// layer is one entry of the renderer's stack, mirroring the traversal
// driver's own transform stack in walk.go but carrying everything a draw
// call needs: where to draw, the accumulated transform, and the active
// stroke color (style operations, unlike transforms, don't get their own
// stack in the core — the renderer tracks them itself).
type layer struct {
	target *ebiten.Image
	geoM   ebiten.GeoM

	strokeColor *shapetree.Vec3

	// Set only for Opacity/Blur layers: these render into an offscreen
	// buffer (target, above) and composite it into parent on pop.
	compositing bool
	parent      *ebiten.Image
	opacity     float64
	blurRadius  float64
	isBlur      bool
}

// Renderer implements shapetree.Renderer, drawing into an *ebiten.Image.
type Renderer struct {
	stack []layer
}

// NewRenderer creates a Renderer that draws into dst.
func NewRenderer(dst *ebiten.Image) *Renderer {
	return &Renderer{stack: []layer{{target: dst}}}
}

func (r *Renderer) top() *layer {
	return &r.stack[len(r.stack)-1]
}

func (r *Renderer) push(l layer) {
	r.stack = append(r.stack, l)
}

func (r *Renderer) pop() layer {
	l := r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]
	return l
}

// OnShape implements shapetree.Renderer.
func (r *Renderer) OnShape(s *shapetree.Shape) {
	top := r.top()
	switch s.Kind {
	case shapetree.ShapeEmpty:
		return
	case shapetree.ShapeCircle:
		var path vector.Path
		path.Arc(0, 0, float32(s.Radius), 0, 2*3.14159265358979, vector.Clockwise)
		path.Close()
		r.draw(top, &path)
	case shapetree.ShapeRectangle, shapetree.ShapeRoundedRectangle:
		// Both kinds are drawn with square corners; Radii is not used.
		var path vector.Path
		path.MoveTo(float32(s.Min.X), float32(s.Min.Y))
		path.LineTo(float32(s.Max.X), float32(s.Min.Y))
		path.LineTo(float32(s.Max.X), float32(s.Max.Y))
		path.LineTo(float32(s.Min.X), float32(s.Max.Y))
		path.Close()
		r.draw(top, &path)
	case shapetree.ShapeText:
		// No glyphs are drawn; this draws a placeholder box matching the
		// conservative AABB the core already caches for ShapeText, so the
		// renderer never diverges from the traversal driver's own idea of
		// where the glyph sits.
		right := float32(utf8.RuneCountInString(s.Content)) * 10
		var path vector.Path
		path.MoveTo(-5, -10)
		path.LineTo(right, -10)
		path.LineTo(right, 5)
		path.LineTo(-5, 5)
		path.Close()
		r.draw(top, &path)
	}
}

func (r *Renderer) draw(top *layer, path *vector.Path) {
	fillVs, fillIs := path.AppendVerticesAndIndicesForFilling(nil, nil)
	transformVertices(fillVs, top.geoM)
	tintVertices(fillVs, color.White)
	var fillOp ebiten.DrawTrianglesOptions
	fillOp.AntiAlias = true
	top.target.DrawTriangles(fillVs, fillIs, whiteImage, &fillOp)

	if top.strokeColor == nil {
		return
	}
	strokeVs, strokeIs := path.AppendVerticesAndIndicesForStroke(nil, nil, &vector.StrokeOptions{Width: 2})
	transformVertices(strokeVs, top.geoM)
	tintVertices(strokeVs, colorFromVec3(*top.strokeColor))
	var strokeOp ebiten.DrawTrianglesOptions
	strokeOp.AntiAlias = true
	top.target.DrawTriangles(strokeVs, strokeIs, whiteImage, &strokeOp)
}

func transformVertices(vs []ebiten.Vertex, g ebiten.GeoM) {
	for i := range vs {
		x, y := g.Apply(float64(vs[i].DstX), float64(vs[i].DstY))
		vs[i].DstX, vs[i].DstY = float32(x), float32(y)
	}
}

func tintVertices(vs []ebiten.Vertex, c color.Color) {
	r, g, b, a := c.RGBA()
	cr, cg, cb, ca := float32(r)/0xffff, float32(g)/0xffff, float32(b)/0xffff, float32(a)/0xffff
	for i := range vs {
		vs[i].ColorR, vs[i].ColorG, vs[i].ColorB, vs[i].ColorA = cr, cg, cb, ca
	}
}

func colorFromVec3(v shapetree.Vec3) color.Color {
	return color.RGBA{R: clamp8(v.X), G: clamp8(v.Y), B: clamp8(v.Z), A: 255}
}

func clamp8(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	default:
		return uint8(v * 255)
	}
}

// PushOperation implements shapetree.Renderer.
func (r *Renderer) PushOperation(op *shapetree.Operation) {
	top := r.top()
	switch op.Kind {
	case shapetree.OpTranslate:
		var g ebiten.GeoM
		g.Translate(op.Offset.X, op.Offset.Y)
		g.Concat(top.geoM)
		r.push(layer{target: top.target, geoM: g, strokeColor: top.strokeColor})
	case shapetree.OpRotation:
		var g ebiten.GeoM
		g.Rotate(op.Angle)
		g.Concat(top.geoM)
		r.push(layer{target: top.target, geoM: g, strokeColor: top.strokeColor})
	case shapetree.OpScale:
		var g ebiten.GeoM
		g.Scale(op.Scale, op.Scale)
		g.Concat(top.geoM)
		r.push(layer{target: top.target, geoM: g, strokeColor: top.strokeColor})
	case shapetree.OpStroke:
		c := op.StrokeColor
		r.push(layer{target: top.target, geoM: top.geoM, strokeColor: &c})
	case shapetree.OpOpacity:
		buf := r.newOffscreen()
		r.push(layer{target: buf, geoM: top.geoM, strokeColor: top.strokeColor, compositing: true, parent: top.target, opacity: op.Opacity})
	case shapetree.OpBlur:
		buf := r.newOffscreen()
		r.push(layer{target: buf, geoM: top.geoM, strokeColor: top.strokeColor, compositing: true, parent: top.target, blurRadius: op.BlurRadius, isBlur: true})
	}
}

// PopOperation implements shapetree.Renderer.
func (r *Renderer) PopOperation(op *shapetree.Operation) {
	l := r.pop()
	if !l.compositing {
		return
	}
	var drawOp ebiten.DrawImageOptions
	if l.isBlur {
		blurred := r.newOffscreen()
		newKawaseBlur(l.blurRadius).apply(l.target, blurred)
		l.parent.DrawImage(blurred, &drawOp)
		return
	}
	drawOp.ColorScale.Scale(1, 1, 1, float32(l.opacity))
	l.parent.DrawImage(l.target, &drawOp)
}

// newOffscreen allocates a buffer the size of the root draw target: nested
// Opacity/Blur layers composite 1:1 onto their parent, so every offscreen
// shares the same coordinate space as the final framebuffer.
func (r *Renderer) newOffscreen() *ebiten.Image {
	bounds := r.stack[0].target.Bounds()
	return ebiten.NewImage(bounds.Dx(), bounds.Dy())
}
