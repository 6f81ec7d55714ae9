package integration_tests

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/framegrid/internal/app"
	"github.com/vk/framegrid/internal/testutil"
)

const graphExpressionHCL = `
composition "main" {
  width  = 200
  height = 100
  length = 10
  frame  = 3
}

layer "box" {
  composition = "main"
  graph       = "box_graph"
  properties  = ["box_tf"]
}

group "box_tf" {
  layer      = "box"
  name       = "Transform"
  properties = ["box_px", "box_py"]
}

property "box_px" {
  layer = "box"
  name  = "PositionX"
  type  = number
}

property "box_py" {
  layer = "box"
  name  = "PositionY"
  type  = number
  value = 1
  max   = 40
}

graph "box_graph" {
  layer = "box"

  node "comp" {
    kind = "composition"
    output "frame" { type = number }
    output "width" { type = number }
    output "height" { type = number }
  }

  node "calc" {
    kind       = "expr"
    expression = "{ x = frame * 2 + width, y = max(frame, 1) * height }"
    input "frame" {
      type = number
      from = "comp[0]"
    }
    input "width" {
      type = number
      from = "comp[1]"
    }
    input "height" {
      type = number
      from = "comp[2]"
    }
    output "x" { type = number }
    output "y" { type = number }
  }

  node "set_x" {
    kind     = "property_output"
    property = "box_px"
    input "v" {
      type = number
      from = "calc[0]"
    }
  }

  node "set_y" {
    kind     = "property_output"
    property = "box_py"
    input "v" {
      type = number
      from = "calc[1]"
    }
  }
}
`

// Test for: a layer graph reads the frame and container through a
// composition node, computes with an HCL expression and overrides
// properties, clamped to their range.
func TestHCLFeatures_GraphExpression(t *testing.T) {
	// --- Act ---
	result, out := testutil.RunHCLDocumentTest(t, graphExpressionHCL, app.Config{})

	// --- Assert ---
	require.NoError(t, result.Err)
	props := out["properties"].(map[string]any)

	px := props["box_px"].(map[string]any)
	assert.Equal(t, 0.0, px["rawValue"])
	assert.Equal(t, 206.0, px["computedValue"], "3*2 + composition width")

	py := props["box_py"].(map[string]any)
	assert.Equal(t, 1.0, py["rawValue"])
	assert.Equal(t, 40.0, py["computedValue"], "3*100 is clamped to max")
}

// Test for: the container size override reaches the top-level graphs.
func TestHCLFeatures_GraphExpression_ContainerOverride(t *testing.T) {
	result, out := testutil.RunHCLDocumentTest(t, graphExpressionHCL, app.Config{Width: 50, Height: 10})
	require.NoError(t, result.Err)

	props := out["properties"].(map[string]any)
	assert.Equal(t, 56.0, props["box_px"].(map[string]any)["computedValue"])
	assert.Equal(t, 30.0, props["box_py"].(map[string]any)["computedValue"])
}

// Test for: the JSON output is stable for the same document and frame.
func TestHCLFeatures_GraphExpression_Deterministic(t *testing.T) {
	first, _ := testutil.RunHCLDocumentTest(t, graphExpressionHCL, app.Config{})
	second, _ := testutil.RunHCLDocumentTest(t, graphExpressionHCL, app.Config{})
	require.NoError(t, first.Err)
	require.NoError(t, second.Err)

	assert.True(t, json.Valid([]byte(first.Output)))
	assert.Equal(t, first.Output, second.Output)
}
