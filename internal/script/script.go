// Package script replays YAML gesture scripts against an engine without a
// display. Coordinates in scripts are logical.
package script

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/wlmath-dwl/neuron/internal/geom"
)

// Default surface size when a script sets none.
const (
	DefaultWidth  = 800
	DefaultHeight = 600
)

var ErrInvalidStep = errors.New("invalid step")

// Script is a recorded editing session.
type Script struct {
	Width  float64  `yaml:"width"`
	Height float64  `yaml:"height"`
	Layers []string `yaml:"layers"`
	// Seed fills the scene with the demo cells before the first step.
	Seed  bool   `yaml:"seed"`
	Steps []Step `yaml:"steps"`
}

// Point is a logical [x, y] pair.
type Point [2]float64

func (p Point) Vec() geom.Vec { return geom.V(p[0], p[1]) }

// Step holds exactly one action.
type Step struct {
	Place  *Place  `yaml:"place"`
	Create *Create `yaml:"create"`
	Drag   *Drag   `yaml:"drag"`
	Zoom   *Zoom   `yaml:"zoom"`
	Undo   *Repeat `yaml:"undo"`
	Redo   *Repeat `yaml:"redo"`
}

// Place switches to the placing gesture and presses at At.
type Place struct {
	Cell string `yaml:"cell"`
	At   Point  `yaml:"at"`
}

// Create adds a cell directly, as one history entry. Link targets of the
// form $N name the N-th cell created by the script so far.
type Create struct {
	ID    string              `yaml:"id"`
	Cell  string              `yaml:"cell"`
	At    *Point              `yaml:"at"`
	Data  map[string]any      `yaml:"data"`
	Links map[string][]string `yaml:"links"`
}

// Drag presses at the first point, moves through the rest and releases at
// the last one.
type Drag struct {
	Path []Point `yaml:"path"`
}

// Zoom turns the wheel Times notches at At.
type Zoom struct {
	At    Point `yaml:"at"`
	Out   bool  `yaml:"out"`
	Times int   `yaml:"times"`
}

// Repeat runs undo or redo Times times, at least once.
type Repeat struct {
	Times int `yaml:"times"`
}

func (s Step) kind() (string, int) {
	var name string
	n := 0
	for _, k := range []struct {
		name string
		set  bool
	}{
		{"place", s.Place != nil},
		{"create", s.Create != nil},
		{"drag", s.Drag != nil},
		{"zoom", s.Zoom != nil},
		{"undo", s.Undo != nil},
		{"redo", s.Redo != nil},
	} {
		if k.set {
			name = k.name
			n++
		}
	}
	return name, n
}

// Parse decodes a script. Unknown fields are rejected.
func Parse(r io.Reader) (*Script, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var s Script
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("parse script: empty document")
		}
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if s.Width == 0 {
		s.Width = DefaultWidth
	}
	if s.Height == 0 {
		s.Height = DefaultHeight
	}
	if s.Width < 0 || s.Height < 0 {
		return nil, fmt.Errorf("parse script: negative surface size %vx%v", s.Width, s.Height)
	}
	for i, step := range s.Steps {
		if _, n := step.kind(); n != 1 {
			return nil, fmt.Errorf("step %d: %w: want one action, got %d", i, ErrInvalidStep, n)
		}
	}
	return &s, nil
}

// Load reads and parses a script file.
func Load(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open script: %w", err)
	}
	defer f.Close()
	return Parse(f)
}
