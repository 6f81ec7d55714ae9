package nodegraph_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/framegrid/internal/document"
	"github.com/vk/framegrid/internal/nodegraph"
	"github.com/vk/framegrid/internal/testutil"
	"github.com/vk/framegrid/internal/value"
)

func TestBuiltinKinds(t *testing.T) {
	snapDoc := testutil.NewDoc().Composition("comp", 100, 100, 10)
	snapDoc.Layer("comp", "layer", document.LayerRect)
	snapDoc.Set("layer", document.Width, value.Num(40))

	testCases := []struct {
		name   string
		node   *document.Node
		inputs []value.Value
		want   []value.Value
	}{
		{
			name: "empty outputs zero values",
			node: testutil.Node("n", nodegraph.KindEmpty, nil, testutil.Out("a", value.TypeNumber), testutil.Out("b", value.TypeVec2)),
			want: []value.Value{value.Num(0), value.V2(0, 0)},
		},
		{
			name: "num_input",
			node: testutil.NumInput("n", 4.5),
			want: []value.Value{value.Num(4.5)},
		},
		{
			name: "vec2_input",
			node: &document.Node{ID: "n", Kind: nodegraph.KindVec2Input, Value: value.V2(1, 2)},
			want: []value.Value{value.V2(1, 2)},
		},
		{
			name: "color_input",
			node: &document.Node{ID: "n", Kind: nodegraph.KindColorInput, Value: value.RGBA(1, 0, 0, 1)},
			want: []value.Value{value.RGBA(1, 0, 0, 1)},
		},
		{
			name:   "num_cap clamps",
			node:   testutil.Node("n", nodegraph.KindNumCap, nil),
			inputs: []value.Value{value.Num(-3), value.Num(0), value.Num(1)},
			want:   []value.Value{value.Num(0)},
		},
		{
			name:   "num_cap swaps reversed bounds",
			node:   testutil.Node("n", nodegraph.KindNumCap, nil),
			inputs: []value.Value{value.Num(7), value.Num(5), value.Num(1)},
			want:   []value.Value{value.Num(5)},
		},
		{
			name:   "num_lerp",
			node:   testutil.Node("n", nodegraph.KindNumLerp, nil),
			inputs: []value.Value{value.Num(10), value.Num(20), value.Num(0.25)},
			want:   []value.Value{value.Num(12.5)},
		},
		{
			name:   "vec2_add",
			node:   testutil.Node("n", nodegraph.KindVec2Add, nil),
			inputs: []value.Value{value.V2(1, 2), value.V2(3, 4)},
			want:   []value.Value{value.V2(4, 6)},
		},
		{
			name:   "vec2_lerp",
			node:   testutil.Node("n", nodegraph.KindVec2Lerp, nil),
			inputs: []value.Value{value.V2(0, 0), value.V2(10, -10), value.Num(0.5)},
			want:   []value.Value{value.V2(5, -5)},
		},
		{
			name:   "vec2_factors",
			node:   testutil.Node("n", nodegraph.KindVec2Factors, nil),
			inputs: []value.Value{value.V2(3, 4)},
			want:   []value.Value{value.Num(3), value.Num(4)},
		},
		{
			name:   "rad_to_deg",
			node:   testutil.Node("n", nodegraph.KindRadToDeg, nil),
			inputs: []value.Value{value.Num(math.Pi)},
			want:   []value.Value{value.Num(180)},
		},
		{
			name:   "rect_translate",
			node:   testutil.Node("n", nodegraph.KindRectTranslate, nil),
			inputs: []value.Value{value.FromRect(value.Rect{Left: 1, Top: 2, Width: 3, Height: 4}), value.V2(10, 20)},
			want:   []value.Value{value.FromRect(value.Rect{Left: 11, Top: 22, Width: 3, Height: 4})},
		},
		{
			name:   "color_from_rgba_factors",
			node:   testutil.Node("n", nodegraph.KindColorFromRGBAFactors, nil),
			inputs: []value.Value{value.Num(0.1), value.Num(0.2), value.Num(0.3), value.Num(0.4)},
			want:   []value.Value{value.RGBA(0.1, 0.2, 0.3, 0.4)},
		},
		{
			name:   "color_to_rgba_factors",
			node:   testutil.Node("n", nodegraph.KindColorToRGBAFactors, nil),
			inputs: []value.Value{value.RGBA(0.1, 0.2, 0.3, 0.4)},
			want:   []value.Value{value.Num(0.1), value.Num(0.2), value.Num(0.3), value.Num(0.4)},
		},
		{
			name: "property_input reads the resolved property",
			node: testutil.PropertyInput("n", testutil.PropID("layer", document.Width)),
			want: []value.Value{value.Num(40)},
		},
		{
			name: "property_input reads a group positionally",
			node: testutil.PropertyInput("n", testutil.GroupID("layer", document.GroupDimensions)),
			want: []value.Value{value.Num(40), value.Num(100)},
		},
		{
			name: "property_input without selection",
			node: testutil.PropertyInput("n", "", testutil.Out("v", value.TypeNumber)),
			want: []value.Value{value.Num(0)},
		},
		{
			name: "array_modifier_index outside expansion",
			node: testutil.Node("n", nodegraph.KindArrayModifierIndex, nil),
			want: []value.Value{value.Num(-1)},
		},
		{
			name: "composition",
			node: testutil.Node("n", nodegraph.KindComposition, nil),
			want: []value.Value{value.Num(6), value.Num(320), value.Num(240)},
		},
	}

	reg := nodegraph.DefaultRegistry()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ectx := nodegraph.NewContext(snapDoc.Snap, "comp", "layer", 6)
			ectx.Container = nodegraph.Size{Width: 320, Height: 240}

			kind, ok := reg.Lookup(tc.node.Kind)
			require.True(t, ok)
			got, err := kind.Compute(tc.inputs, tc.node, ectx)
			require.NoError(t, err)
			require.Len(t, got, len(tc.want))
			for i := range tc.want {
				require.Equal(t, tc.want[i].Type, got[i].Type)
				if tc.want[i].Type == value.TypeNumber {
					assert.InDelta(t, tc.want[i].Number, got[i].Number, 1e-9)
					continue
				}
				assert.Equal(t, tc.want[i].Key(), got[i].Key())
			}
		})
	}
}

func TestDegToRad(t *testing.T) {
	kind, ok := nodegraph.DefaultRegistry().Lookup(nodegraph.KindDegToRad)
	require.True(t, ok)
	got, err := kind.Compute([]value.Value{value.Num(90)}, &document.Node{ID: "n"}, nil)
	require.NoError(t, err)
	assert.InDelta(t, math.Pi/2, got[0].Number, 1e-12)
}

func TestRegistry(t *testing.T) {
	r := nodegraph.NewRegistry()
	noop := nodegraph.KindFunc(func([]value.Value, *document.Node, *nodegraph.Context) ([]value.Value, error) {
		return nil, nil
	})
	r.Register("noop", noop)

	_, ok := r.Lookup("noop")
	assert.True(t, ok)
	_, ok = r.Lookup("other")
	assert.False(t, ok)

	assert.Panics(t, func() { r.Register("noop", noop) })

	assert.Contains(t, nodegraph.DefaultRegistry().Tags(), nodegraph.KindExpr)
	assert.Len(t, nodegraph.DefaultRegistry().Tags(), 19)
}
