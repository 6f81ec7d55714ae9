package value

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestParseType(t *testing.T) {
	for _, name := range []string{"number", "vec2", "color", "rect", "enum", "any"} {
		t.Run(name, func(t *testing.T) {
			ty, err := ParseType(name)
			require.NoError(t, err)
			assert.Equal(t, name, ty.String())
		})
	}

	_, err := ParseType("matrix")
	assert.ErrorContains(t, err, "unknown value type")
}

func TestKey_DistinguishesTypesAndValues(t *testing.T) {
	assert.Equal(t, Num(1.5).Key(), Num(1.5).Key())
	assert.NotEqual(t, Num(1).Key(), Num(2).Key())
	assert.NotEqual(t, V2(1, 2).Key(), V2(2, 1).Key())
	assert.NotEqual(t, Num(0).Key(), Enum("0").Key())
	assert.NotEqual(t, RGBA(1, 2, 3, 1).Key(), FromRect(Rect{1, 2, 3, 1}).Key())
}

func TestFromCty_InfersShape(t *testing.T) {
	testCases := []struct {
		name     string
		in       cty.Value
		expected Value
	}{
		{
			name:     "number",
			in:       cty.NumberIntVal(4),
			expected: Num(4),
		},
		{
			name:     "string becomes enum",
			in:       cty.StringVal("recursive"),
			expected: Enum("recursive"),
		},
		{
			name: "xy object becomes vec2",
			in: cty.ObjectVal(map[string]cty.Value{
				"x": cty.NumberIntVal(1),
				"y": cty.NumberIntVal(2),
			}),
			expected: V2(1, 2),
		},
		{
			name: "rgba object becomes color",
			in: cty.ObjectVal(map[string]cty.Value{
				"r": cty.NumberIntVal(255),
				"g": cty.NumberIntVal(0),
				"b": cty.NumberIntVal(10),
				"a": cty.NumberFloatVal(0.5),
			}),
			expected: RGBA(255, 0, 10, 0.5),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := FromCty(tc.in, TypeAny)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestFromCty_ConvertsToDeclaredType(t *testing.T) {
	got, err := FromCty(cty.StringVal("12.5"), TypeNumber)
	require.NoError(t, err)
	assert.Equal(t, Num(12.5), got)

	_, err = FromCty(cty.NumberIntVal(1), TypeVec2)
	assert.ErrorContains(t, err, "cannot convert")

	_, err = FromCty(cty.NullVal(cty.Number), TypeNumber)
	assert.ErrorContains(t, err, "null")

	_, err = FromCty(cty.True, TypeAny)
	assert.ErrorContains(t, err, "cannot infer")
}

func TestToCty_FeedsBackIntoFromCty(t *testing.T) {
	for _, v := range []Value{Num(-3), V2(0.25, 8), RGBA(1, 2, 3, 0.4), FromRect(Rect{1, 2, 30, 40}), Enum("a")} {
		c, err := ToCty(v)
		require.NoError(t, err)
		back, err := FromCty(c, v.Type)
		require.NoError(t, err)
		assert.Equal(t, v, back)
	}
}

func TestMarshalJSON(t *testing.T) {
	out, err := json.Marshal(map[string]Value{
		"n": Num(2),
		"v": V2(1, 2),
		"e": Enum("x"),
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"n":2,"v":{"x":1,"y":2},"e":"x"}`, string(out))
}

func TestVec2AndRectHelpers(t *testing.T) {
	assert.Equal(t, Vec2{X: 4, Y: 6}, Vec2{X: 1, Y: 2}.Add(Vec2{X: 3, Y: 4}))
	assert.Equal(t, Vec2{X: 2, Y: 3}, Vec2{X: 0, Y: 0}.Lerp(Vec2{X: 4, Y: 6}, 0.5))
	assert.Equal(t, Rect{Left: 11, Top: 18, Width: 5, Height: 5}, Rect{Left: 1, Top: 8, Width: 5, Height: 5}.Translate(Vec2{X: 10, Y: 10}))
}
