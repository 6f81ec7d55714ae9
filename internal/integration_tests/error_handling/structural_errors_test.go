package integration_tests

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/framegrid/internal/app"
	"github.com/vk/framegrid/internal/evalerr"
	"github.com/vk/framegrid/internal/testutil"
)

// Test for: a layer without a Transform group is a structural error.
func TestErrorHandling_MissingTransformGroup(t *testing.T) {
	doc := `
composition "main" {
  width  = 10
  height = 10
  length = 1
}

layer "bare" {
  composition = "main"
}
`
	result, _ := testutil.RunHCLDocumentTest(t, doc, app.Config{})
	require.Error(t, result.Err)
	assert.ErrorIs(t, result.Err, evalerr.ErrStructural)
	assert.Contains(t, result.Err.Error(), "Transform property group")
	assert.Contains(t, result.Err.Error(), `layer="bare"`)
}

// Test for: a composition nesting itself is rejected in recursive mode.
func TestErrorHandling_SelfNestingComposition(t *testing.T) {
	doc := `
composition "loop" {
  width  = 10
  height = 10
  length = 1
}

layer "inner" {
  composition = "loop"
  nested      = "loop"
  properties  = ["inner_tf"]
}

group "inner_tf" {
  layer = "inner"
  name  = "Transform"
}
`
	result, _ := testutil.RunHCLDocumentTest(t, doc, app.Config{Recursive: true})
	require.Error(t, result.Err)
	assert.ErrorIs(t, result.Err, evalerr.ErrStructural)
	assert.Contains(t, result.Err.Error(), "contains itself")

	// Without recursion the nested layer is never descended into.
	result, _ = testutil.RunHCLDocumentTest(t, doc, app.Config{})
	require.NoError(t, result.Err)
}

// Test for: invalid hcl is rejected before any evaluation.
func TestErrorHandling_InvalidHCL_IsRejected(t *testing.T) {
	invalidHCL := `
		composition "main" {
			width = 10
		// Missing closing brace here
	`
	result, _ := testutil.RunHCLDocumentTest(t, invalidHCL, app.Config{})
	if result.Err == nil {
		t.Fatal("expected an error for invalid HCL, but got nil")
	}

	errMsg := result.Err.Error()
	if !strings.Contains(errMsg, "failed to parse") && !strings.Contains(errMsg, "failed to decode") {
		t.Errorf("expected error message to indicate an HCL parsing failure, but got: %s", errMsg)
	}
	assert.NotContains(t, result.LogOutput, "Starting evaluation.")
}
