package ebitenrender

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// kawaseBlur applies an iterative downscale/upscale blur: bilinear filtering
// during each DrawImage pass does the blurring, no shader required. It
// backs [shapetree.Operation]'s Blur kind.
type kawaseBlur struct {
	radius int
	temps  []*ebiten.Image
	op     ebiten.DrawImageOptions
}

func newKawaseBlur(radius float64) *kawaseBlur {
	r := int(math.Round(radius))
	if r < 0 {
		r = 0
	}
	return &kawaseBlur{radius: r}
}

// apply renders a blurred copy of src into dst, which must already be sized
// to hold it (same bounds as src, plus whatever padding the caller added).
func (b *kawaseBlur) apply(src, dst *ebiten.Image) {
	if b.radius <= 0 {
		b.op.GeoM.Reset()
		b.op.ColorScale.Reset()
		b.op.Filter = ebiten.FilterNearest
		dst.DrawImage(src, &b.op)
		return
	}

	passes := int(math.Ceil(math.Log2(float64(b.radius))))
	if passes < 1 {
		passes = 1
	}

	srcBounds := src.Bounds()
	w, h := srcBounds.Dx(), srcBounds.Dy()

	for len(b.temps) < passes {
		b.temps = append(b.temps, nil)
	}
	for i := passes; i < len(b.temps); i++ {
		if b.temps[i] != nil {
			b.temps[i].Deallocate()
			b.temps[i] = nil
		}
	}
	b.temps = b.temps[:passes]

	op := &b.op
	current := src
	for i := 0; i < passes; i++ {
		w = max(w/2, 1)
		h = max(h/2, 1)
		if b.temps[i] == nil || b.temps[i].Bounds().Dx() != w || b.temps[i].Bounds().Dy() != h {
			if b.temps[i] != nil {
				b.temps[i].Deallocate()
			}
			b.temps[i] = ebiten.NewImage(w, h)
		} else {
			b.temps[i].Clear()
		}
		op.GeoM.Reset()
		op.ColorScale.Reset()
		sw, sh := float64(current.Bounds().Dx()), float64(current.Bounds().Dy())
		op.GeoM.Scale(float64(w)/sw, float64(h)/sh)
		op.Filter = ebiten.FilterLinear
		b.temps[i].DrawImage(current, op)
		current = b.temps[i]
	}

	for i := passes - 2; i >= 0; i-- {
		b.temps[i].Clear()
		op.GeoM.Reset()
		op.ColorScale.Reset()
		sw, sh := float64(current.Bounds().Dx()), float64(current.Bounds().Dy())
		tw, th := float64(b.temps[i].Bounds().Dx()), float64(b.temps[i].Bounds().Dy())
		op.GeoM.Scale(tw/sw, th/sh)
		op.Filter = ebiten.FilterLinear
		b.temps[i].DrawImage(current, op)
		current = b.temps[i]
	}

	op.GeoM.Reset()
	op.ColorScale.Reset()
	sw, sh := float64(current.Bounds().Dx()), float64(current.Bounds().Dy())
	tw, th := float64(dst.Bounds().Dx()), float64(dst.Bounds().Dy())
	op.GeoM.Scale(tw/sw, th/sh)
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(current, op)
}
