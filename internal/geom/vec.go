// Package geom holds the plane geometry used by the scene engine: vectors,
// lines, containment tests, rectangles and affine matrices.
package geom

import (
	"fmt"
	"math"
)

// Vec is a point or a displacement in the plane.
type Vec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// V returns the vector (x, y).
func V(x, y float64) Vec {
	return Vec{X: x, Y: y}
}

// Zero returns the zero vector.
func Zero() Vec {
	return Vec{}
}

// FromSlice builds a vector from exactly two coordinates.
// Any other shape is a programming mistake and panics.
func FromSlice(xy []float64) Vec {
	if len(xy) != 2 {
		panic(fmt.Sprintf("geom: vector needs 2 coordinates, got %d", len(xy)))
	}
	return Vec{X: xy[0], Y: xy[1]}
}

// Add returns v + o.
func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec) Sub(o Vec) Vec {
	return Vec{X: v.X - o.X, Y: v.Y - o.Y}
}

// Mul scales v by n.
func (v Vec) Mul(n float64) Vec {
	return Vec{X: v.X * n, Y: v.Y * n}
}

// Dot returns the dot product.
func (v Vec) Dot(o Vec) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Cross returns the z component of the cross product.
func (v Vec) Cross(o Vec) float64 {
	return v.X*o.Y - o.X*v.Y
}

// Len returns the length of v.
func (v Vec) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Angle returns the direction of v in radians, normalized to [0, 2π).
func (v Vec) Angle() float64 {
	r := math.Atan2(v.Y, v.X)
	if r < 0 {
		r += 2 * math.Pi
	}
	return r
}

// Distance returns the distance between two points.
func (v Vec) Distance(o Vec) float64 {
	return math.Hypot(o.X-v.X, o.Y-v.Y)
}

// Unit returns v scaled to length 1.
func (v Vec) Unit() Vec {
	l := v.Len()
	return Vec{X: v.X / l, Y: v.Y / l}
}

// Rotate rotates v about the origin by radians.
func (v Vec) Rotate(radians float64) Vec {
	cos := math.Cos(radians)
	sin := math.Sin(radians)
	return Vec{X: v.X*cos - v.Y*sin, Y: v.X*sin + v.Y*cos}
}

// RotateAround rotates v about p by radians.
func (v Vec) RotateAround(p Vec, radians float64) Vec {
	return v.Sub(p).Rotate(radians).Add(p)
}

// AngleTo returns the unsigned angle between v and o in radians.
func (v Vec) AngleTo(o Vec) float64 {
	c := v.Dot(o) / (v.Len() * o.Len())
	// rounding can push the cosine slightly out of range
	c = math.Max(-1, math.Min(1, c))
	return math.Acos(c)
}

// Project returns the projection of v onto the direction of o.
func (v Vec) Project(o Vec) Vec {
	return o.Unit().Mul(v.Len() * math.Cos(v.AngleTo(o)))
}

// IsAcuteTriangle reports whether p3 falls within the band spanned by the
// segment p1-p2, i.e. both base angles of the triangle are not obtuse.
func IsAcuteTriangle(p1, p2, p3 Vec) bool {
	v1 := p2.Sub(p1)
	v2 := p3.Sub(p1)
	v3 := p3.Sub(p2)
	if v1.Dot(v2) < 0 {
		return false
	}
	if v1.Dot(v3) > 0 {
		return false
	}
	return true
}

// AngleByPos returns the angle of side as seen from center, in [0, 2π).
func AngleByPos(center, side Vec) float64 {
	return side.Sub(center).Angle()
}

// Radians converts degrees to radians.
func Radians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// Degrees converts radians to degrees.
func Degrees(radians float64) float64 {
	return radians * 180 / math.Pi
}
