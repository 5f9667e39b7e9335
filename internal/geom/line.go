package geom

import "math"

// Line is the general line a*x + b*y + c = 0.
type Line struct {
	A, B, C float64
}

// Slope returns -a/b, which is infinite for vertical lines.
func (l Line) Slope() float64 {
	return -l.A / l.B
}

// X solves the line for x at the given y. Horizontal lines have no solution
// and return +Inf.
func (l Line) X(y float64) float64 {
	if l.A == 0 {
		return math.Inf(1)
	}
	return (-l.B*y - l.C) / l.A
}

// Y solves the line for y at the given x. Vertical lines return +Inf.
func (l Line) Y(x float64) float64 {
	if l.B == 0 {
		return math.Inf(1)
	}
	return (-l.A*x - l.C) / l.B
}

// Cross returns the intersection with o. Parallel lines report false.
func (l Line) Cross(o Line) (Vec, bool) {
	det := l.A*o.B - o.A*l.B
	if det == 0 {
		return Vec{}, false
	}
	dx := l.B*o.C - o.B*l.C
	dy := o.A*l.C - l.A*o.C
	return Vec{X: dx / det, Y: dy / det}, true
}

// Distance returns the distance from p to the line.
func (l Line) Distance(p Vec) float64 {
	return math.Abs(p.X*l.A+p.Y*l.B+l.C) / math.Sqrt(l.A*l.A+l.B*l.B)
}

// Reflect mirrors p across the line.
func (l Line) Reflect(p Vec) Vec {
	a2 := l.A * l.A
	b2 := l.B * l.B
	return Vec{
		X: ((b2-a2)*p.X - 2*l.A*(l.B*p.Y+l.C)) / (a2 + b2),
		Y: ((a2-b2)*p.Y - 2*l.B*(l.A*p.X+l.C)) / (a2 + b2),
	}
}

// PointSlope returns the line through p with slope k. An infinite slope
// gives the vertical line x = p.X.
func PointSlope(p Vec, k float64) Line {
	if math.IsInf(k, 0) || math.IsNaN(k) {
		return Line{A: 1, B: 0, C: -p.X}
	}
	return Line{A: -k, B: 1, C: k*p.X - p.Y}
}

// Segment is the finite piece of a line between two points.
type Segment struct {
	Line
	P1, P2 Vec
}

// NewSegment returns the segment p1-p2 together with its supporting line.
func NewSegment(p1, p2 Vec) Segment {
	return Segment{
		Line: Line{
			A: p2.Y - p1.Y,
			B: p1.X - p2.X,
			C: p2.X*p1.Y - p1.X*p2.Y,
		},
		P1: p1,
		P2: p2,
	}
}

// CrossLine returns where the infinite line l crosses the segment.
func (s Segment) CrossLine(l Line) (Vec, bool) {
	p, ok := s.Line.Cross(l)
	if !ok {
		return Vec{}, false
	}
	if !IsAcuteTriangle(s.P1, s.P2, p) {
		return Vec{}, false
	}
	return p, true
}

// Within reports whether the projection of p falls between the endpoints.
func (s Segment) Within(p Vec) bool {
	return IsAcuteTriangle(s.P1, s.P2, p)
}
