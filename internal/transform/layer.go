package transform

import (
	"math"

	"github.com/vk/framegrid/internal/arraymod"
	"github.com/vk/framegrid/internal/document"
	"github.com/vk/framegrid/internal/value"
)

// additive lists the properties an array modifier override is added to.
var additive = map[document.PropertyName]bool{
	document.PositionX: true,
	document.PositionY: true,
	document.Rotation:  true,
	document.Scale:     true,
}

// LayerInput is what ComposeLayer reads for one layer.
type LayerInput struct {
	// Properties are the layer's Transform group members keyed by name.
	Properties map[document.PropertyName]*document.Property
	// Values are resolved property values keyed by property id.
	Values map[string]value.Value
	// Overrides are the array modifier overrides, nil without a modifier.
	Overrides arraymod.Overrides
	// Count is the number of iterations; values below 1 mean 1.
	Count int
}

// ComposeLayer returns one world transform per iteration of the layer. parent
// is the transform the layer is placed in; nil means identity.
func ComposeLayer(in LayerInput, parent *Affine) []Affine {
	count := in.Count
	if count < 1 {
		count = 1
	}
	out := make([]Affine, count)
	for i := range out {
		local := in.Local(i)
		if parent != nil {
			local = local.Compose(*parent)
		}
		out[i] = local
	}
	return out
}

// Local returns the layer's own transform at iteration i. Rotation is read
// in degrees.
func (in LayerInput) Local(i int) Affine {
	return Affine{
		Anchor: value.Vec2{
			X: in.read(document.AnchorX, i, 0),
			Y: in.read(document.AnchorY, i, 0),
		},
		Scale:    in.read(document.Scale, i, 1),
		Rotation: in.read(document.Rotation, i, 0) * math.Pi / 180,
		Translate: value.Vec2{
			X: in.read(document.PositionX, i, 0),
			Y: in.read(document.PositionY, i, 0),
		},
	}
}

func (in LayerInput) read(name document.PropertyName, i int, fallback float64) float64 {
	p, ok := in.Properties[name]
	if !ok {
		return fallback
	}
	v, ok := in.Values[p.ID]
	if !ok {
		v = p.Value
	}
	base := v.Float()
	if additive[name] {
		if o, ok := in.Overrides.Lookup(p.ID, i); ok {
			base += o.Float()
		}
	}
	return base
}
