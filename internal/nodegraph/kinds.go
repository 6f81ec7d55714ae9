package nodegraph

import (
	"math"

	"github.com/vk/framegrid/internal/document"
	"github.com/vk/framegrid/internal/evalerr"
	"github.com/vk/framegrid/internal/expr"
	"github.com/vk/framegrid/internal/value"
)

// Built-in kind tags.
const (
	KindEmpty                = "empty"
	KindNumInput             = "num_input"
	KindNumCap               = "num_cap"
	KindNumLerp              = "num_lerp"
	KindVec2Add              = "vec2_add"
	KindVec2Lerp             = "vec2_lerp"
	KindVec2Factors          = "vec2_factors"
	KindVec2Input            = "vec2_input"
	KindDegToRad             = "deg_to_rad"
	KindRadToDeg             = "rad_to_deg"
	KindRectTranslate        = "rect_translate"
	KindExpr                 = "expr"
	KindColorFromRGBAFactors = "color_from_rgba_factors"
	KindColorToRGBAFactors   = "color_to_rgba_factors"
	KindColorInput           = "color_input"
	KindPropertyInput        = "property_input"
	KindPropertyOutput       = "property_output"
	KindArrayModifierIndex   = "array_modifier_index"
	KindComposition          = "composition"
)

func registerBuiltins(r *Registry) {
	r.Register(KindEmpty, KindFunc(computeEmpty))
	r.Register(KindNumInput, KindFunc(computeLiteral(value.TypeNumber)))
	r.Register(KindVec2Input, KindFunc(computeLiteral(value.TypeVec2)))
	r.Register(KindColorInput, KindFunc(computeLiteral(value.TypeColor)))
	r.Register(KindNumCap, KindFunc(computeNumCap))
	r.Register(KindNumLerp, KindFunc(computeNumLerp))
	r.Register(KindVec2Add, KindFunc(computeVec2Add))
	r.Register(KindVec2Lerp, KindFunc(computeVec2Lerp))
	r.Register(KindVec2Factors, KindFunc(computeVec2Factors))
	r.Register(KindDegToRad, KindFunc(computeDegToRad))
	r.Register(KindRadToDeg, KindFunc(computeRadToDeg))
	r.Register(KindRectTranslate, KindFunc(computeRectTranslate))
	r.Register(KindColorFromRGBAFactors, KindFunc(computeColorFromFactors))
	r.Register(KindColorToRGBAFactors, KindFunc(computeColorToFactors))
	r.Register(KindExpr, KindFunc(computeExpr))
	r.Register(KindPropertyInput, KindFunc(computePropertyInput))
	r.Register(KindPropertyOutput, KindFunc(computePropertyOutput))
	r.Register(KindArrayModifierIndex, KindFunc(computeArrayModifierIndex))
	r.Register(KindComposition, KindFunc(computeComposition))
}

func num(inputs []value.Value, i int) float64 {
	if i >= len(inputs) {
		return 0
	}
	return inputs[i].Float()
}

func vec2(inputs []value.Value, i int) value.Vec2 {
	if i >= len(inputs) || inputs[i].Type != value.TypeVec2 {
		return value.Vec2{}
	}
	return inputs[i].Vec2
}

func computeEmpty(_ []value.Value, n *document.Node, _ *Context) ([]value.Value, error) {
	out := make([]value.Value, len(n.Outputs))
	for i, o := range n.Outputs {
		out[i] = value.Zero(o.Type)
	}
	return out, nil
}

func computeLiteral(t value.Type) KindFunc {
	return func(_ []value.Value, n *document.Node, _ *Context) ([]value.Value, error) {
		if n.Value.Type != t {
			return []value.Value{value.Zero(t)}, nil
		}
		return []value.Value{n.Value}, nil
	}
}

// computeNumCap clamps inputs [value, min, max]. Reversed bounds are swapped.
func computeNumCap(inputs []value.Value, _ *document.Node, _ *Context) ([]value.Value, error) {
	v, lo, hi := num(inputs, 0), num(inputs, 1), num(inputs, 2)
	if lo > hi {
		lo, hi = hi, lo
	}
	return []value.Value{value.Num(math.Max(lo, math.Min(hi, v)))}, nil
}

func computeNumLerp(inputs []value.Value, _ *document.Node, _ *Context) ([]value.Value, error) {
	a, b, t := num(inputs, 0), num(inputs, 1), num(inputs, 2)
	return []value.Value{value.Num(a + (b-a)*t)}, nil
}

func computeVec2Add(inputs []value.Value, _ *document.Node, _ *Context) ([]value.Value, error) {
	v := vec2(inputs, 0).Add(vec2(inputs, 1))
	return []value.Value{value.V2(v.X, v.Y)}, nil
}

func computeVec2Lerp(inputs []value.Value, _ *document.Node, _ *Context) ([]value.Value, error) {
	v := vec2(inputs, 0).Lerp(vec2(inputs, 1), num(inputs, 2))
	return []value.Value{value.V2(v.X, v.Y)}, nil
}

// computeVec2Factors splits a vec2 into its x and y components.
func computeVec2Factors(inputs []value.Value, _ *document.Node, _ *Context) ([]value.Value, error) {
	v := vec2(inputs, 0)
	return []value.Value{value.Num(v.X), value.Num(v.Y)}, nil
}

func computeDegToRad(inputs []value.Value, _ *document.Node, _ *Context) ([]value.Value, error) {
	return []value.Value{value.Num(num(inputs, 0) * math.Pi / 180)}, nil
}

func computeRadToDeg(inputs []value.Value, _ *document.Node, _ *Context) ([]value.Value, error) {
	return []value.Value{value.Num(num(inputs, 0) * 180 / math.Pi)}, nil
}

func computeRectTranslate(inputs []value.Value, _ *document.Node, _ *Context) ([]value.Value, error) {
	var r value.Rect
	if len(inputs) > 0 && inputs[0].Type == value.TypeRect {
		r = inputs[0].Rect
	}
	return []value.Value{value.FromRect(r.Translate(vec2(inputs, 1)))}, nil
}

func computeColorFromFactors(inputs []value.Value, _ *document.Node, _ *Context) ([]value.Value, error) {
	return []value.Value{value.RGBA(num(inputs, 0), num(inputs, 1), num(inputs, 2), num(inputs, 3))}, nil
}

func computeColorToFactors(inputs []value.Value, _ *document.Node, _ *Context) ([]value.Value, error) {
	var c value.Color
	if len(inputs) > 0 && inputs[0].Type == value.TypeColor {
		c = inputs[0].Color
	}
	return []value.Value{value.Num(c.R), value.Num(c.G), value.Num(c.B), value.Num(c.A)}, nil
}

// computeExpr evaluates the node's expression with its inputs bound by name.
// Results are memoized in the context's expression cache.
func computeExpr(inputs []value.Value, n *document.Node, ectx *Context) ([]value.Value, error) {
	cache := ectx.expressions()
	key := expr.ResultKey(n.ID, inputs)
	if out, ok := cache.Result(key); ok {
		return out, nil
	}

	prog, err := cache.Program(n.ID, n.Expression)
	if err != nil {
		return nil, &evalerr.Error{Kind: evalerr.ErrExpression, Err: err}
	}

	vars := make(map[string]value.Value, len(inputs))
	for i, in := range n.Inputs {
		vars[in.Name] = inputs[i]
	}
	slots := make([]expr.Slot, len(n.Outputs))
	for i, o := range n.Outputs {
		slots[i] = expr.Slot{Name: o.Name, Type: o.Type}
	}

	out, err := prog.Run(vars, slots)
	if err != nil {
		return nil, &evalerr.Error{Kind: evalerr.ErrExpression, Err: err}
	}
	cache.Store(key, out)
	return out, nil
}

// computePropertyInput outputs the values of the selected property, or of a
// selected group's direct child properties in order. Without a resolvable
// selection the declared outputs read as zero values.
func computePropertyInput(_ []value.Value, n *document.Node, ectx *Context) ([]value.Value, error) {
	targets, ok := ectx.resolveTargets(n.PropertyID)
	if !ok {
		return computeEmpty(nil, n, ectx)
	}
	out := make([]value.Value, len(targets))
	for i, p := range targets {
		v, found := ectx.Properties[p.ID]
		if !found {
			v = p.Value
		}
		out[i] = v
	}
	return out, nil
}

// computePropertyOutput passes its inputs through; ApplyOutputs reads them.
func computePropertyOutput(inputs []value.Value, _ *document.Node, _ *Context) ([]value.Value, error) {
	return inputs, nil
}

func computeArrayModifierIndex(_ []value.Value, _ *document.Node, ectx *Context) ([]value.Value, error) {
	return []value.Value{value.Num(float64(ectx.ArrayModifierIndex))}, nil
}

// computeComposition exposes the frame index and container size.
func computeComposition(_ []value.Value, _ *document.Node, ectx *Context) ([]value.Value, error) {
	return []value.Value{
		value.Num(float64(ectx.Frame)),
		value.Num(ectx.Container.Width),
		value.Num(ectx.Container.Height),
	}, nil
}
