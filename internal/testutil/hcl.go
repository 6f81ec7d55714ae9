package testutil

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/framegrid/internal/app"
	"github.com/vk/framegrid/internal/document"
	"github.com/vk/framegrid/internal/hcl"
)

// LoadHCL loads a single HCL document string into a snapshot, failing the
// test on any loader error.
func LoadHCL(t *testing.T, documentHCL string) *document.Snapshot {
	t.Helper()

	path := filepath.Join(t.TempDir(), "document.hcl")
	require.NoError(t, os.WriteFile(path, []byte(documentHCL), 0o644))

	snap, err := hcl.NewLoader().Load(context.Background(), path)
	require.NoError(t, err)
	return snap
}

// RunHCLDocumentTest provides a simplified harness for rendering a single
// HCL document string. On success the JSON output is decoded into a generic
// map so tests can assert on individual fields.
func RunHCLDocumentTest(t *testing.T, documentHCL string, cfg app.Config) (*HarnessResult, map[string]any) {
	t.Helper()

	result := RunRenderTest(t, map[string]string{"document.hcl": documentHCL}, cfg)
	if result.Err != nil {
		return result, nil
	}

	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(result.Output), &out))
	return result, out
}
