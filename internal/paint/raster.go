package paint

import (
	"fmt"
	"image"
	"io"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/wlmath-dwl/neuron/internal/geom"
	"github.com/wlmath-dwl/neuron/internal/view"
)

const (
	background  = "#ffffff"
	defaultInk  = "#000000"
	defaultSize = 12.0
)

var (
	monoOnce sync.Once
	mono     *truetype.Font
	monoErr  error
)

func monoFont() (*truetype.Font, error) {
	monoOnce.Do(func() {
		mono, monoErr = truetype.Parse(gomono.TTF)
	})
	return mono, monoErr
}

// Raster is a Canvas backed by an in-memory RGBA image.
type Raster struct {
	dc    *gg.Context
	font  *truetype.Font
	faces map[float64]font.Face
}

// NewRaster allocates a width x height raster filled with white.
func NewRaster(width, height int) (*Raster, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("raster size %dx%d must be positive", width, height)
	}
	f, err := monoFont()
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	r := &Raster{
		dc:    gg.NewContext(width, height),
		font:  f,
		faces: make(map[float64]font.Face),
	}
	r.Clear()
	return r, nil
}

func (r *Raster) Clear() {
	r.dc.SetHexColor(background)
	r.dc.Clear()
}

func (r *Raster) Line(a, b geom.Vec, s view.Style) {
	r.stroke(s)
	r.dc.DrawLine(a.X, a.Y, b.X, b.Y)
	r.dc.Stroke()
}

func (r *Raster) Polyline(points []geom.Vec, s view.Style) {
	if len(points) < 2 {
		return
	}
	r.stroke(s)
	r.dc.MoveTo(points[0].X, points[0].Y)
	for _, p := range points[1:] {
		r.dc.LineTo(p.X, p.Y)
	}
	r.dc.Stroke()
}

func (r *Raster) Circle(center geom.Vec, radius float64, s view.Style) {
	r.dc.DrawCircle(center.X, center.Y, radius)
	r.fillAndStroke(s)
}

func (r *Raster) Polygon(points []geom.Vec, s view.Style) {
	if len(points) < 3 {
		return
	}
	r.dc.MoveTo(points[0].X, points[0].Y)
	for _, p := range points[1:] {
		r.dc.LineTo(p.X, p.Y)
	}
	r.dc.ClosePath()
	r.fillAndStroke(s)
}

func (r *Raster) Text(pos geom.Vec, text string, s view.TextStyle) {
	size := s.Size
	if size <= 0 {
		size = defaultSize
	}
	r.dc.SetFontFace(r.face(size))
	r.dc.SetHexColor(orDefault(s.Color, defaultInk))

	ax, ay := 0.0, 0.0
	switch s.AlignX {
	case "center":
		ax = 0.5
	case "right":
		ax = 1
	}
	switch s.AlignY {
	case "top":
		ay = 1
	case "middle":
		ay = 0.5
	}
	r.dc.DrawStringAnchored(text, pos.X, pos.Y, ax, ay)
}

func (r *Raster) face(size float64) font.Face {
	f, ok := r.faces[size]
	if !ok {
		f = truetype.NewFace(r.font, &truetype.Options{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		r.faces[size] = f
	}
	return f
}

func (r *Raster) stroke(s view.Style) {
	r.dc.SetHexColor(orDefault(s.Color, defaultInk))
	w := s.Width
	if w <= 0 {
		w = 1
	}
	r.dc.SetLineWidth(w)
	if s.Dash {
		r.dc.SetDash(4, 4)
	} else {
		r.dc.SetDash()
	}
}

func (r *Raster) fillAndStroke(s view.Style) {
	if s.Fill != "" {
		r.dc.SetHexColor(s.Fill)
		if s.Color == "" {
			r.dc.Fill()
			return
		}
		r.dc.FillPreserve()
	}
	r.stroke(s)
	r.dc.Stroke()
}

// Image returns the raster.
func (r *Raster) Image() image.Image { return r.dc.Image() }

// SavePNG writes the raster to a PNG file.
func (r *Raster) SavePNG(path string) error {
	return r.dc.SavePNG(path)
}

// EncodePNG writes the raster as PNG to w.
func (r *Raster) EncodePNG(w io.Writer) error {
	return r.dc.EncodePNG(w)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
