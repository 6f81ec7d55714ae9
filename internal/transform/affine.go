// Package transform builds layer affine transforms and composes them through
// parent layers and nested compositions.
package transform

import (
	"math"

	"github.com/vk/framegrid/internal/value"
)

// Affine is a decomposed 2D transform. Applied to a point it translates by
// -Anchor, scales, rotates and finally translates by Translate.
type Affine struct {
	Anchor    value.Vec2 `json:"anchor"`
	Scale     float64    `json:"scale"`
	Rotation  float64    `json:"rotation"` // radians
	Translate value.Vec2 `json:"translate"`
}

// Identity returns the transform that maps every point onto itself.
func Identity() Affine {
	return Affine{Scale: 1}
}

// Matrix returns the transform as [a, b, c, d, tx, ty]:
//
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
func (t Affine) Matrix() [6]float64 {
	sin, cos := math.Sincos(t.Rotation)
	a := cos * t.Scale
	b := sin * t.Scale
	c := -sin * t.Scale
	d := cos * t.Scale
	return [6]float64{
		a, b, c, d,
		t.Translate.X - (a*t.Anchor.X + c*t.Anchor.Y),
		t.Translate.Y - (b*t.Anchor.X + d*t.Anchor.Y),
	}
}

// Apply maps p through the transform.
func (t Affine) Apply(p value.Vec2) value.Vec2 {
	return ApplyMatrix(t.Matrix(), p)
}

// Compose places t inside parent: rotations add, scales multiply, the
// translation is the parent's mapping of t's translation and the anchor stays
// t's own.
func (t Affine) Compose(parent Affine) Affine {
	return Affine{
		Anchor:    t.Anchor,
		Scale:     parent.Scale * t.Scale,
		Rotation:  parent.Rotation + t.Rotation,
		Translate: parent.Apply(t.Translate),
	}
}

// Multiply multiplies two affine matrices: result = parent * child.
func Multiply(p, c [6]float64) [6]float64 {
	return [6]float64{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// Invert returns the inverse of m. ok is false when m is singular.
func Invert(m [6]float64) (inv [6]float64, ok bool) {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return [6]float64{1, 0, 0, 1, 0, 0}, false
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return [6]float64{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}, true
}

// ApplyMatrix maps p through m.
func ApplyMatrix(m [6]float64, p value.Vec2) value.Vec2 {
	return value.Vec2{
		X: m[0]*p.X + m[2]*p.Y + m[4],
		Y: m[1]*p.X + m[3]*p.Y + m[5],
	}
}
