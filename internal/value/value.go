// Package value defines the concrete, non-animated values that properties and
// compute nodes carry: numbers, 2-vectors, colors, rectangles and enums.
//
// A Value is a small tagged struct rather than an interface so that values can
// be compared with == and used directly in test assertions.
package value

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Type is the value type tag of a property, node input or node output.
type Type int

const (
	// TypeNumber is a single float64.
	TypeNumber Type = iota
	// TypeVec2 is a 2D vector.
	TypeVec2
	// TypeColor is an RGBA color with 0-255 channels and a 0-1 alpha.
	TypeColor
	// TypeRect is an axis-aligned rectangle.
	TypeRect
	// TypeEnum is a named choice, e.g. a transform behavior.
	TypeEnum
	// TypeAny accepts any value; it is only valid on node inputs and outputs.
	TypeAny
)

var typeNames = map[Type]string{
	TypeNumber: "number",
	TypeVec2:   "vec2",
	TypeColor:  "color",
	TypeRect:   "rect",
	TypeEnum:   "enum",
	TypeAny:    "any",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "unknown"
}

// ParseType converts a type keyword into its Type.
func ParseType(name string) (Type, error) {
	for t, n := range typeNames {
		if n == name {
			return t, nil
		}
	}
	return TypeAny, fmt.Errorf("unknown value type %q", name)
}

// Vec2 is a 2D vector.
type Vec2 struct {
	X float64 `json:"x" cty:"x"`
	Y float64 `json:"y" cty:"y"`
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{X: v.X + o.X, Y: v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{X: v.X - o.X, Y: v.Y - o.Y} }

// Scale returns v * s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{X: v.X * s, Y: v.Y * s} }

// Lerp interpolates from v to o by t.
func (v Vec2) Lerp(o Vec2, t float64) Vec2 {
	return Vec2{X: v.X + (o.X-v.X)*t, Y: v.Y + (o.Y-v.Y)*t}
}

// Color is an RGBA color.
type Color struct {
	R float64 `json:"r" cty:"r"`
	G float64 `json:"g" cty:"g"`
	B float64 `json:"b" cty:"b"`
	A float64 `json:"a" cty:"a"`
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	Left   float64 `json:"left" cty:"left"`
	Top    float64 `json:"top" cty:"top"`
	Width  float64 `json:"width" cty:"width"`
	Height float64 `json:"height" cty:"height"`
}

// Translate returns r moved by d.
func (r Rect) Translate(d Vec2) Rect {
	r.Left += d.X
	r.Top += d.Y
	return r
}

// Value is a tagged union over the supported value types. Only the field
// matching Type is meaningful.
type Value struct {
	Type   Type
	Number float64
	Vec2   Vec2
	Color  Color
	Rect   Rect
	Enum   string
}

// Num builds a number value.
func Num(n float64) Value { return Value{Type: TypeNumber, Number: n} }

// V2 builds a vec2 value.
func V2(x, y float64) Value { return Value{Type: TypeVec2, Vec2: Vec2{X: x, Y: y}} }

// RGBA builds a color value.
func RGBA(r, g, b, a float64) Value {
	return Value{Type: TypeColor, Color: Color{R: r, G: g, B: b, A: a}}
}

// FromRect builds a rect value.
func FromRect(r Rect) Value { return Value{Type: TypeRect, Rect: r} }

// Enum builds an enum value.
func Enum(s string) Value { return Value{Type: TypeEnum, Enum: s} }

// Zero returns the zero value of a type.
func Zero(t Type) Value {
	if t == TypeAny {
		return Num(0)
	}
	return Value{Type: t}
}

// Float returns the numeric reading of a value. Non-number values read as 0,
// which matches how unconnected or mistyped numeric inputs behave.
func (v Value) Float() float64 {
	if v.Type == TypeNumber {
		return v.Number
	}
	return 0
}

// Key serializes the value into a stable string. It is used to build cache
// keys, so two values produce the same key iff they are equal.
func (v Value) Key() string {
	f := func(n float64) string { return strconv.FormatFloat(n, 'g', -1, 64) }
	switch v.Type {
	case TypeNumber:
		return "n:" + f(v.Number)
	case TypeVec2:
		return "v:" + f(v.Vec2.X) + "," + f(v.Vec2.Y)
	case TypeColor:
		return "c:" + strings.Join([]string{f(v.Color.R), f(v.Color.G), f(v.Color.B), f(v.Color.A)}, ",")
	case TypeRect:
		return "r:" + strings.Join([]string{f(v.Rect.Left), f(v.Rect.Top), f(v.Rect.Width), f(v.Rect.Height)}, ",")
	case TypeEnum:
		return "e:" + strconv.Quote(v.Enum)
	}
	return "?"
}

func (v Value) String() string {
	switch v.Type {
	case TypeNumber:
		return strconv.FormatFloat(v.Number, 'g', -1, 64)
	case TypeVec2:
		return fmt.Sprintf("(%g, %g)", v.Vec2.X, v.Vec2.Y)
	case TypeColor:
		return fmt.Sprintf("rgba(%g, %g, %g, %g)", v.Color.R, v.Color.G, v.Color.B, v.Color.A)
	case TypeRect:
		return fmt.Sprintf("rect(%g, %g, %g, %g)", v.Rect.Left, v.Rect.Top, v.Rect.Width, v.Rect.Height)
	case TypeEnum:
		return v.Enum
	}
	return "<invalid>"
}

// MarshalJSON encodes the value as its natural JSON shape: a number, a string,
// or an object with the type's fields.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Type {
	case TypeNumber:
		return json.Marshal(v.Number)
	case TypeVec2:
		return json.Marshal(v.Vec2)
	case TypeColor:
		return json.Marshal(v.Color)
	case TypeRect:
		return json.Marshal(v.Rect)
	case TypeEnum:
		return json.Marshal(v.Enum)
	}
	return nil, fmt.Errorf("cannot encode value of type %s", v.Type)
}
