// Package view maps between the physical drawing surface and the logical
// coordinate space of the scene and defines the render contract.
package view

import (
	"math"
	"strconv"

	"github.com/wlmath-dwl/neuron/internal/geom"
)

const (
	// DefaultDensity is 1 logical unit per 100 physical pixels.
	DefaultDensity = 0.01
	// DefaultZoomStep is the relative density change of one zoom notch.
	DefaultZoomStep = 0.05
)

// Transform converts between physical surface coordinates (origin top-left,
// y down) and logical coordinates (origin at the viewport center shifted by
// the pan offset, y up, scaled by density).
//
// OX and OY are the pan offset in physical pixels. Gesture code writes them
// directly while panning.
type Transform struct {
	OX float64
	OY float64

	viewWidth  float64
	viewHeight float64
	halfWidth  float64
	halfHeight float64

	density   float64
	zoomStep  float64
	scaleSize float64
	scaleUnit float64
}

// NewTransform returns a 1x1 viewport at the default density.
func NewTransform() *Transform {
	t := &Transform{
		viewWidth:  1,
		viewHeight: 1,
		halfWidth:  1,
		halfHeight: 1,
		density:    DefaultDensity,
		zoomStep:   DefaultZoomStep,
	}
	t.updateScale()
	return t
}

func (t *Transform) ViewWidth() float64  { return t.viewWidth }
func (t *Transform) ViewHeight() float64 { return t.viewHeight }
func (t *Transform) HalfWidth() float64  { return t.halfWidth }
func (t *Transform) HalfHeight() float64 { return t.halfHeight }
func (t *Transform) Density() float64    { return t.density }

// ScaleSize is the on-screen tick spacing in physical pixels.
func (t *Transform) ScaleSize() float64 { return t.scaleSize }

// ScaleUnit is the logical distance between two ticks, used as label unit.
func (t *Transform) ScaleUnit() float64 { return t.scaleUnit }

// SetDensity replaces the logical-units-per-pixel ratio and recomputes the
// tick spacing. Non-positive or non-finite values are ignored so that the
// density stays strictly positive.
func (t *Transform) SetDensity(v float64) {
	if !(v > 0) || math.IsInf(v, 0) {
		return
	}
	t.density = v
	t.updateScale()
}

// SetZoomStep changes the relative density change applied by ZoomAt.
func (t *Transform) SetZoomStep(step float64) {
	if step > 0 && step < 1 {
		t.zoomStep = step
	}
}

// Resize sets the physical viewport size. The pan offset is rescaled so the
// same fraction of the viewport stays in view. Non-positive sizes are ignored.
func (t *Transform) Resize(width, height float64) {
	if !(width > 0) || !(height > 0) {
		return
	}
	rx := t.OX / t.viewWidth
	ry := t.OY / t.viewHeight

	t.viewWidth = width
	t.viewHeight = height
	t.halfWidth = round(width * 0.5)
	t.halfHeight = round(height * 0.5)

	t.OX = round(rx * width)
	t.OY = round(ry * height)
}

// ToLogical converts a physical point to logical coordinates.
func (t *Transform) ToLogical(p geom.Vec) geom.Vec {
	return geom.Vec{X: t.LogicalX(p.X), Y: t.LogicalY(p.Y)}
}

// LogicalX converts a physical x coordinate.
func (t *Transform) LogicalX(x float64) float64 {
	return (x - t.halfWidth - t.OX) * t.density
}

// LogicalY converts a physical y coordinate.
func (t *Transform) LogicalY(y float64) float64 {
	return (t.halfHeight - y + t.OY) * t.density
}

// LogicalLength converts a physical length.
func (t *Transform) LogicalLength(v float64) float64 {
	return v * t.density
}

// ToPhysical converts a logical point to physical pixels, rounded.
func (t *Transform) ToPhysical(p geom.Vec) geom.Vec {
	return geom.Vec{X: t.PhysicalX(p.X), Y: t.PhysicalY(p.Y)}
}

// PhysicalX converts a logical x coordinate, rounded to a pixel.
func (t *Transform) PhysicalX(x float64) float64 {
	return round(t.OX + t.halfWidth + x/t.density)
}

// PhysicalY converts a logical y coordinate, rounded to a pixel.
func (t *Transform) PhysicalY(y float64) float64 {
	return round(t.halfHeight + t.OY - y/t.density)
}

// PhysicalLength converts a logical length. It is not rounded.
func (t *Transform) PhysicalLength(v float64) float64 {
	return v / t.density
}

// Matrix returns the unrounded logical to physical mapping.
func (t *Transform) Matrix() geom.Matrix2D {
	return geom.Translate(t.OX+t.halfWidth, t.halfHeight+t.OY).
		Multiply(geom.Scale(1/t.density, -1/t.density))
}

// ZoomAt changes density by one zoom step about the physical focal point
// p and shifts the pan offset so that p keeps its logical coordinate.
// zoomOut increases density, showing more of the scene.
func (t *Transform) ZoomAt(p geom.Vec, zoomOut bool) {
	focus := t.ToLogical(p)

	factor := 1 - t.zoomStep
	if zoomOut {
		factor = 1 + t.zoomStep
	}
	t.SetDensity(t.density * factor)

	// unrounded so repeated zooms do not drift
	moved := t.Matrix().Apply(focus)
	t.OX -= moved.X - p.X
	t.OY -= moved.Y - p.Y
}

// FormatScaleLabel formats a tick label with as many decimals as the current
// density warrants. Zero always formats as "0".
func (t *Transform) FormatScaleLabel(v float64) string {
	if v == 0 {
		return "0"
	}
	digits := 0
	if level := magnitude(t.density); level < 0 {
		digits = -level
	}
	fixed, _ := strconv.ParseFloat(strconv.FormatFloat(v, 'f', digits, 64), 64)
	if fixed == 0 {
		return "0"
	}
	return strconv.FormatFloat(fixed, 'f', -1, 64)
}

// Ticks returns the physical x and y positions of the grid ticks that fall
// before the right and bottom viewport edges.
func (t *Transform) Ticks() (xs, ys []float64) {
	if t.scaleSize <= 0 {
		return nil, nil
	}
	for x := math.Mod(t.halfWidth+t.OX, t.scaleSize); x < t.viewWidth; x += t.scaleSize {
		xs = append(xs, x)
	}
	for y := math.Mod(t.halfHeight+t.OY, t.scaleSize); y < t.viewHeight; y += t.scaleSize {
		ys = append(ys, y)
	}
	return xs, ys
}

func (t *Transform) updateScale() {
	num := t.LogicalLength(100)
	level := math.Pow(10, float64(magnitude(num)))
	t.scaleUnit = closest([]float64{level, 2 * level, 5 * level}, num)
	t.scaleSize = t.PhysicalLength(t.scaleUnit)
}

// magnitude returns floor(log10(|num|)) clamped to [-15, 15].
func magnitude(num float64) int {
	if num == 0 {
		return 0
	}
	level := int(math.Floor(math.Log10(math.Abs(num))))
	return max(-15, min(15, level))
}

func closest(candidates []float64, target float64) float64 {
	best := candidates[0]
	diff := math.Inf(1)
	for _, c := range candidates {
		if d := math.Abs(c - target); d < diff {
			diff = d
			best = c
		}
	}
	return best
}

// round rounds half up, matching pixel snapping on the drawing surface.
func round(v float64) float64 {
	return math.Floor(v + 0.5)
}
