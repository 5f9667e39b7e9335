package shapes

import (
	"github.com/wlmath-dwl/neuron/internal/engine"
	"github.com/wlmath-dwl/neuron/internal/model"
)

// Seed fills b with a small demo scene: points A and B, the segment
// between them and the line through them.
func Seed(b *engine.Body) {
	for _, s := range []model.Store{
		{ID: "A", Name: NamePoint, Data: model.Data{"x": model.Num(-2), "y": model.Num(-1), "label": model.Str("A")}},
		{ID: "B", Name: NamePoint, Data: model.Data{"x": model.Num(2), "y": model.Num(1), "label": model.Str("B")}},
		{ID: "AB", Name: NameSegment, LinkChild: model.Links{SlotP1: {"A"}, SlotP2: {"B"}}},
		{ID: "lAB", Name: NameLine, LinkChild: model.Links{SlotP1: {"A"}, SlotP2: {"B"}}},
	} {
		b.CreateCell(s, true)
	}
}
