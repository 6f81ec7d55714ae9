package integration_tests

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
	"github.com/vk/framegrid/internal/document"
	"github.com/vk/framegrid/internal/render"
	"github.com/vk/framegrid/internal/testutil"
	"github.com/vk/framegrid/internal/value"
)

// boxHCL spells out the document testutil builds in builtBox, using the same
// identifiers.
const boxHCL = `
composition "main" {
  name   = "main"
  width  = 200
  height = 100
  length = 10
}

layer "box" {
  composition = "main"
  name        = "box"
  kind        = "rect"
  graph       = "box.graph"
  properties  = ["box.Transform", "box.Dimensions", "box.Modifiers"]
}

group "box.Transform" {
  layer = "box"
  name  = "Transform"
  properties = [
    "box.AnchorX", "box.AnchorY", "box.Scale",
    "box.PositionX", "box.PositionY", "box.Rotation", "box.Opacity",
  ]
}

property "box.AnchorX" {
  layer = "box"
  name  = "AnchorX"
  type  = number
}

property "box.AnchorY" {
  layer = "box"
  name  = "AnchorY"
  type  = number
}

property "box.Scale" {
  layer = "box"
  name  = "Scale"
  type  = number
  value = 1
}

property "box.PositionX" {
  layer    = "box"
  name     = "PositionX"
  type     = number
  timeline = "box.PositionX.timeline"
}

property "box.PositionY" {
  layer = "box"
  name  = "PositionY"
  type  = number
}

property "box.Rotation" {
  layer = "box"
  name  = "Rotation"
  type  = number
}

property "box.Opacity" {
  layer = "box"
  name  = "Opacity"
  type  = number
  value = 1
}

group "box.Dimensions" {
  layer      = "box"
  name       = "Dimensions"
  properties = ["box.Width", "box.Height"]
}

property "box.Width" {
  layer = "box"
  name  = "Width"
  type  = number
  value = 100
}

property "box.Height" {
  layer = "box"
  name  = "Height"
  type  = number
  value = 100
}

group "box.Modifiers" {
  layer      = "box"
  name       = "Modifiers"
  properties = ["box.ArrayModifier"]
}

group "box.ArrayModifier" {
  layer      = "box"
  name       = "ArrayModifier"
  properties = ["box.ArrayModifierCount"]
  graph      = "box.ArrayModifier.graph"
}

property "box.ArrayModifierCount" {
  layer = "box"
  name  = "ArrayModifierCount"
  type  = number
  value = 2
}

timeline "box.PositionX.timeline" {
  keyframe "k0" {
    index = 0
    value = 0
  }
  keyframe "k1" {
    index = 9
    value = 90
  }
}

graph "box.graph" {
  layer = "box"

  node "seven" {
    kind  = "num_input"
    value = 7
    output "value" { type = number }
  }

  node "out" {
    kind     = "property_output"
    property = "box.PositionY"
    input "v" {
      type = number
      from = "seven[0]"
    }
  }
}

graph "box.ArrayModifier.graph" {
  layer = "box"

  node "idx" {
    kind = "array_modifier_index"
    output "i" { type = number }
  }

  node "step" {
    kind       = "expr"
    expression = "i * 10"
    input "i" {
      type = number
      from = "idx[0]"
    }
    output "x" { type = number }
  }

  node "apply" {
    kind     = "property_output"
    property = "box.PositionX"
    input "x" {
      type = number
      from = "step[0]"
    }
  }
}
`

func builtBox() *document.Snapshot {
	px := testutil.PropID("box", document.PositionX)
	py := testutil.PropID("box", document.PositionY)

	d := testutil.NewDoc().Composition("main", 200, 100, 10)
	d.Layer("main", "box", document.LayerRect)
	d.Animate("box", document.PositionX,
		document.Keyframe{ID: "k0", Index: 0, Value: 0},
		document.Keyframe{ID: "k1", Index: 9, Value: 90},
	)
	d.Graph("box", "box.graph",
		testutil.NumInput("seven", 7),
		testutil.PropertyOutput("out", py, testutil.Ref("v", value.TypeNumber, "seven", 0)),
	)
	d.ArrayModifier("box", 2,
		testutil.Node("idx", "array_modifier_index", nil, testutil.Out("i", value.TypeNumber)),
		testutil.Expr("step", "i * 10",
			[]document.Input{testutil.Ref("i", value.TypeNumber, "idx", 0)},
			testutil.Out("x", value.TypeNumber)),
		testutil.PropertyOutput("apply", px, testutil.Ref("x", value.TypeNumber, "step", 0)),
	)
	return d.Snap
}

// Test for: the HCL loader produces the same snapshot as the programmatic
// builder, and both evaluate identically.
func TestHCLFeatures_DocumentEquivalence(t *testing.T) {
	// --- Arrange ---
	loaded := testutil.LoadHCL(t, boxHCL)
	built := builtBox()

	// --- Assert: snapshots ---
	if diff := cmp.Diff(built, loaded, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("loaded snapshot differs from built snapshot (-built +loaded):\n%s", diff)
	}

	// --- Act ---
	opts := render.Options{Recursive: true}
	want, err := render.Evaluate(context.Background(), built, "main", 4, opts)
	require.NoError(t, err)
	got, err := render.Evaluate(context.Background(), loaded, "main", 4, opts)
	require.NoError(t, err)

	// --- Assert: evaluations ---
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("evaluation mismatch (-built +loaded):\n%s", diff)
	}

	require.Len(t, got.Transforms["box"].Transform, 2)
	require.Equal(t, 40.0, got.Transforms["box"].Transform[0].Translate.X)
	require.Equal(t, 50.0, got.Transforms["box"].Transform[1].Translate.X)
	require.Equal(t, 7.0, got.Transforms["box"].Transform[1].Translate.Y)
}
