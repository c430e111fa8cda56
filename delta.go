package gesture

import (
	"fmt"
	"math"
)

// Delta is a manipulation change: a translation, a rotation in degrees
// normalized to [-180, 180), a scale ratio and an expansion (signed change
// of the distance between contacts).
type Delta struct {
	Translation Vec2
	Rotation    float64
	Scale       float64
	Expansion   float64
}

// Identity is the empty delta.
var Identity = Delta{Scale: 1}

// IsEmpty reports whether d is the identity.
func (d Delta) IsEmpty() bool {
	return d.Translation.X == 0 && d.Translation.Y == 0 &&
		d.Rotation == 0 && d.Scale == 1 && d.Expansion == 0
}

// Add composes d with o: translations, rotations and expansions add, scales
// multiply.
func (d Delta) Add(o Delta) Delta {
	return Delta{
		Translation: d.Translation.Add(o.Translation),
		Rotation:    normalizeDegrees(d.Rotation + o.Rotation),
		Scale:       d.Scale * o.Scale,
		Expansion:   d.Expansion + o.Expansion,
	}
}

// Sub returns the change that leads from prev to d, so that prev.Add(d.Sub(prev))
// equals d up to rotation wrap-around.
func (d Delta) Sub(prev Delta) Delta {
	scale := 1.0
	switch {
	case prev.Scale != 0:
		scale = d.Scale / prev.Scale
	case d.Scale != 0:
		scale = d.Scale
	}
	return Delta{
		Translation: d.Translation.Sub(prev.Translation),
		Rotation:    normalizeDegrees(d.Rotation - prev.Rotation),
		Scale:       scale,
		Expansion:   d.Expansion - prev.Expansion,
	}
}

func (d Delta) String() string {
	return fmt.Sprintf("{t:(%.2f,%.2f) r:%.2f s:%.3f e:%.2f}",
		d.Translation.X, d.Translation.Y, d.Rotation, d.Scale, d.Expansion)
}

// Matrix converts d into an affine matrix [a, b, c, d, tx, ty] that scales
// and rotates around center, then translates.
//
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
func (d Delta) Matrix(center Vec2) ([6]float64, error) {
	for _, v := range [...]float64{d.Translation.X, d.Translation.Y, d.Rotation, d.Scale, center.X, center.Y} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return [6]float64{}, fmt.Errorf("matrix of %v: %w", d, ErrUnsupportedDelta)
		}
	}
	if d.Scale < 0 {
		return [6]float64{}, fmt.Errorf("matrix of %v: negative scale: %w", d, ErrUnsupportedDelta)
	}

	sin, cos := math.Sincos(d.Rotation * math.Pi / 180)
	a := cos * d.Scale
	b := sin * d.Scale
	c := -sin * d.Scale
	dd := cos * d.Scale

	// Translate(-center) -> Scale -> Rotate -> Translate(center + translation)
	tx := -(a*center.X + c*center.Y) + center.X + d.Translation.X
	ty := -(b*center.X + dd*center.Y) + center.Y + d.Translation.Y
	return [6]float64{a, b, c, dd, tx, ty}, nil
}

// TransformPoint applies an affine matrix produced by Delta.Matrix to p.
func TransformPoint(m [6]float64, p Vec2) Vec2 {
	return Vec2{
		X: m[0]*p.X + m[2]*p.Y + m[4],
		Y: m[1]*p.X + m[3]*p.Y + m[5],
	}
}

// Velocities are the rates of change of a manipulation, per millisecond.
type Velocities struct {
	Linear    Vec2    // px/ms
	Angular   float64 // degrees/ms
	Expansion float64 // px/ms
}

// IsZero reports whether every component is zero.
func (v Velocities) IsZero() bool {
	return v.Linear.X == 0 && v.Linear.Y == 0 && v.Angular == 0 && v.Expansion == 0
}

// normalizeDegrees maps an angle to [-180, 180).
func normalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg+180, 360)
	if deg < 0 {
		deg += 360
	}
	return deg - 180
}
