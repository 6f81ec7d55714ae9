package integration_tests

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

// field walks a decoded JSON document along keys, failing the test when a
// step is missing.
func field(t *testing.T, doc any, keys ...string) any {
	t.Helper()
	cur := doc
	for _, k := range keys {
		m, ok := cur.(map[string]any)
		require.True(t, ok, "expected an object before key %q", k)
		cur, ok = m[k]
		require.True(t, ok, "key %q missing", k)
	}
	return cur
}

// translateX returns the x translation of iteration i of a layer's transforms.
func translateX(t *testing.T, out map[string]any, layerID string, i int) float64 {
	t.Helper()
	tfs, ok := field(t, out, "transforms", layerID, "transform").([]any)
	require.True(t, ok)
	require.Greater(t, len(tfs), i)
	return field(t, tfs[i], "translate", "x").(float64)
}

// decode parses the JSON render output of a harness run.
func decode(t *testing.T, output string) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(output), &out))
	return out
}
