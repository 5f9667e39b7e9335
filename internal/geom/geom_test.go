package geom

import (
	"math"
	"testing"
)

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func nearVec(a, b Vec) bool {
	return near(a.X, b.X) && near(a.Y, b.Y)
}

func TestVecArithmetic(t *testing.T) {
	a := V(3, 4)
	b := V(1, -2)

	if got := a.Add(b); got != V(4, 2) {
		t.Errorf("Add = %v, want (4,2)", got)
	}
	if got := a.Sub(b); got != V(2, 6) {
		t.Errorf("Sub = %v, want (2,6)", got)
	}
	if got := a.Mul(2); got != V(6, 8) {
		t.Errorf("Mul = %v, want (6,8)", got)
	}
	if got := a.Dot(b); got != -5 {
		t.Errorf("Dot = %v, want -5", got)
	}
	if got := a.Cross(b); got != -10 {
		t.Errorf("Cross = %v, want -10", got)
	}
	if got := a.Len(); got != 5 {
		t.Errorf("Len = %v, want 5", got)
	}
	if got := a.Distance(V(0, 0)); got != 5 {
		t.Errorf("Distance = %v, want 5", got)
	}
	if got := a.Unit(); !nearVec(got, V(0.6, 0.8)) {
		t.Errorf("Unit = %v, want (0.6,0.8)", got)
	}
}

func TestVecAngles(t *testing.T) {
	if got := V(0, -1).Angle(); !near(got, 3*math.Pi/2) {
		t.Errorf("Angle of (0,-1) = %v, want 3π/2", got)
	}
	if got := V(1, 0).Rotate(math.Pi / 2); !nearVec(got, V(0, 1)) {
		t.Errorf("Rotate = %v, want (0,1)", got)
	}
	if got := V(2, 1).RotateAround(V(1, 1), math.Pi); !nearVec(got, V(0, 1)) {
		t.Errorf("RotateAround = %v, want (0,1)", got)
	}
	if got := V(1, 0).AngleTo(V(0, 3)); !near(got, math.Pi/2) {
		t.Errorf("AngleTo = %v, want π/2", got)
	}
	if got := V(2, 2).Project(V(5, 0)); !nearVec(got, V(2, 0)) {
		t.Errorf("Project = %v, want (2,0)", got)
	}
	if got := AngleByPos(V(1, 1), V(1, 3)); !near(got, math.Pi/2) {
		t.Errorf("AngleByPos = %v, want π/2", got)
	}
	if got := Degrees(Radians(45)); !near(got, 45) {
		t.Errorf("Degrees(Radians(45)) = %v", got)
	}
}

func TestFromSlicePanicsOnWrongShape(t *testing.T) {
	if got := FromSlice([]float64{1, 2}); got != V(1, 2) {
		t.Errorf("FromSlice = %v, want (1,2)", got)
	}

	defer func() {
		if recover() == nil {
			t.Error("FromSlice with 3 coordinates should panic")
		}
	}()
	FromSlice([]float64{1, 2, 3})
}

func TestLineCrossAndDistance(t *testing.T) {
	diag := NewSegment(V(0, 0), V(2, 2)).Line
	anti := NewSegment(V(0, 2), V(2, 0)).Line

	p, ok := diag.Cross(anti)
	if !ok || !nearVec(p, V(1, 1)) {
		t.Fatalf("Cross = %v,%v, want (1,1),true", p, ok)
	}

	if _, ok := diag.Cross(PointSlope(V(0, 1), 1)); ok {
		t.Error("parallel lines should not cross")
	}

	if got := PointSlope(V(0, 0), 0).Distance(V(5, 3)); !near(got, 3) {
		t.Errorf("Distance = %v, want 3", got)
	}

	vertical := PointSlope(V(4, 0), math.Inf(1))
	if got := vertical.X(10); !near(got, 4) {
		t.Errorf("vertical.X = %v, want 4", got)
	}
	if got := vertical.Y(4); !math.IsInf(got, 1) {
		t.Errorf("vertical.Y = %v, want +Inf", got)
	}

	if got := diag.Reflect(V(1, 0)); !nearVec(got, V(0, 1)) {
		t.Errorf("Reflect = %v, want (0,1)", got)
	}
}

func TestSegmentCrossLine(t *testing.T) {
	s := NewSegment(V(0, 0), V(10, 0))

	if p, ok := s.CrossLine(PointSlope(V(5, 0), math.Inf(1))); !ok || !nearVec(p, V(5, 0)) {
		t.Errorf("CrossLine inside = %v,%v", p, ok)
	}
	if _, ok := s.CrossLine(PointSlope(V(20, 0), math.Inf(1))); ok {
		t.Error("CrossLine outside the span should miss")
	}
}

func TestContainment(t *testing.T) {
	square := []Vec{V(0, 0), V(4, 0), V(4, 4), V(0, 4)}

	tests := []struct {
		p    Vec
		want bool
	}{
		{V(2, 2), true},
		{V(0, 0), true},
		{V(4, 2), true},
		{V(5, 2), false},
		{V(-1, -1), false},
	}
	for _, tt := range tests {
		if got := InPolygon(tt.p, square); got != tt.want {
			t.Errorf("InPolygon(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}

	if !InRect(V(1, -1), 0, 0, 2, 2) {
		t.Error("InRect should contain a point below the top-left corner")
	}
	if InRect(V(1, 1), 0, 0, 2, 2) {
		t.Error("InRect extends downwards, (1,1) is above it")
	}
}

func TestRectUnionAndBounds(t *testing.T) {
	r := Rect{X: 0, Y: 0, Width: 2, Height: 2}.Union(Rect{X: 1, Y: 1, Width: 3, Height: 3})
	if r != (Rect{X: 0, Y: 0, Width: 4, Height: 4}) {
		t.Errorf("Union = %+v", r)
	}
	if got := r.Center(); got != V(2, 2) {
		t.Errorf("Center = %v", got)
	}
	if got := (Rect{}).Union(r); got != r {
		t.Errorf("empty Union = %+v", got)
	}
	if got := Bounds([]Vec{V(3, -1), V(-2, 5)}); got != (Rect{X: -2, Y: -1, Width: 5, Height: 6}) {
		t.Errorf("Bounds = %+v", got)
	}
}

func TestMatrixInvert(t *testing.T) {
	m := Translate(10, -4).Multiply(Scale(2, -0.5))
	p := V(3, 7)

	back := m.Invert().Apply(m.Apply(p))
	if !nearVec(back, p) {
		t.Errorf("Invert round trip = %v, want %v", back, p)
	}
	if !m.Multiply(m.Invert()).IsIdentity() {
		t.Error("m * m^-1 should be identity")
	}
	if got := (Matrix2D{}).Invert(); got != Identity() {
		t.Errorf("singular Invert = %v, want identity", got)
	}
	if got := Scale(2, 3).ApplyRect(Rect{X: 1, Y: 1, Width: 1, Height: 1}); got != (Rect{X: 2, Y: 3, Width: 2, Height: 3}) {
		t.Errorf("ApplyRect = %+v", got)
	}
}
