package value

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

var (
	vec2CtyType = cty.Object(map[string]cty.Type{
		"x": cty.Number,
		"y": cty.Number,
	})
	colorCtyType = cty.Object(map[string]cty.Type{
		"r": cty.Number,
		"g": cty.Number,
		"b": cty.Number,
		"a": cty.Number,
	})
	rectCtyType = cty.Object(map[string]cty.Type{
		"left":   cty.Number,
		"top":    cty.Number,
		"width":  cty.Number,
		"height": cty.Number,
	})
)

// CtyType returns the cty.Type a value of type t is represented as inside
// HCL expressions.
func CtyType(t Type) cty.Type {
	switch t {
	case TypeNumber:
		return cty.Number
	case TypeVec2:
		return vec2CtyType
	case TypeColor:
		return colorCtyType
	case TypeRect:
		return rectCtyType
	case TypeEnum:
		return cty.String
	}
	return cty.DynamicPseudoType
}

// ToCty converts a Value into its cty representation.
func ToCty(v Value) (cty.Value, error) {
	var (
		out cty.Value
		err error
	)
	switch v.Type {
	case TypeNumber:
		out = cty.NumberFloatVal(v.Number)
	case TypeEnum:
		out = cty.StringVal(v.Enum)
	case TypeVec2:
		out, err = gocty.ToCtyValue(v.Vec2, vec2CtyType)
	case TypeColor:
		out, err = gocty.ToCtyValue(v.Color, colorCtyType)
	case TypeRect:
		out, err = gocty.ToCtyValue(v.Rect, rectCtyType)
	default:
		return cty.NilVal, fmt.Errorf("cannot represent value of type %s", v.Type)
	}
	if err != nil {
		return cty.NilVal, fmt.Errorf("unable to convert %s to cty: %w", v.Type, err)
	}
	return out, nil
}

// FromCty decodes a cty value into a Value of type t. With TypeAny the type is
// inferred from the shape of the cty value.
func FromCty(val cty.Value, t Type) (Value, error) {
	if val.IsNull() {
		return Value{}, fmt.Errorf("value is null")
	}
	if !val.IsWhollyKnown() {
		return Value{}, fmt.Errorf("value is not known")
	}

	if t == TypeAny {
		inferred, ok := inferType(val.Type())
		if !ok {
			return Value{}, fmt.Errorf("cannot infer a value type from %s", val.Type().FriendlyName())
		}
		t = inferred
	}

	converted, err := convert.Convert(val, CtyType(t))
	if err != nil {
		return Value{}, fmt.Errorf("cannot convert %s to %s: %w", val.Type().FriendlyName(), t, err)
	}

	out := Value{Type: t}
	switch t {
	case TypeNumber:
		err = gocty.FromCtyValue(converted, &out.Number)
	case TypeEnum:
		err = gocty.FromCtyValue(converted, &out.Enum)
	case TypeVec2:
		err = gocty.FromCtyValue(converted, &out.Vec2)
	case TypeColor:
		err = gocty.FromCtyValue(converted, &out.Color)
	case TypeRect:
		err = gocty.FromCtyValue(converted, &out.Rect)
	}
	if err != nil {
		return Value{}, fmt.Errorf("failed to decode %s: %w", t, err)
	}
	return out, nil
}

// inferType maps a cty type onto the closest value type. Objects are matched
// on their exact attribute sets.
func inferType(ty cty.Type) (Type, bool) {
	switch {
	case ty == cty.Number:
		return TypeNumber, true
	case ty == cty.String:
		return TypeEnum, true
	case ty.IsObjectType():
		for _, t := range []Type{TypeVec2, TypeColor, TypeRect} {
			if sameAttributes(ty, CtyType(t)) {
				return t, true
			}
		}
	}
	return TypeAny, false
}

func sameAttributes(a, b cty.Type) bool {
	aa, ba := a.AttributeTypes(), b.AttributeTypes()
	if len(aa) != len(ba) {
		return false
	}
	for name := range ba {
		if _, ok := aa[name]; !ok {
			return false
		}
	}
	return true
}
