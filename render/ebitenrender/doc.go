// Package ebitenrender implements shapetree.Renderer against an
// *ebiten.Image, and provides AnimateOpacity, a small helper that drives a
// tree's opacity node across frames with a gween tween.
package ebitenrender
