package testutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/framegrid/internal/app"
	"github.com/vk/framegrid/internal/hcl"
)

// HarnessResult holds the outcomes of an end-to-end render run.
type HarnessResult struct {
	// Output is the JSON written by the app.
	Output    string
	LogOutput string
	Err       error
	App       *app.App
}

// RunRenderTest provides a standardized harness for running end-to-end
// render tests using a default background context.
func RunRenderTest(t *testing.T, files map[string]string, cfg app.Config) *HarnessResult {
	t.Helper()
	return RunRenderTestWithContext(context.Background(), t, files, cfg)
}

// RunRenderTestWithContext writes the given document files into a temporary
// directory, loads them with the HCL loader and runs one evaluation. The
// document path of cfg is replaced by the temporary directory. Load and run
// errors are both reported through Err.
func RunRenderTestWithContext(ctx context.Context, t *testing.T, files map[string]string, cfg app.Config) *HarnessResult {
	t.Helper()

	// 1. Write all HCL files to a temporary document directory. The test
	//    provides relative paths, which may include subdirectories.
	docDir := t.TempDir()
	for name, content := range files {
		filePath := filepath.Join(docDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0o755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0o644))
	}

	// 2. Configure the app to read the temporary directory.
	cfg.DocumentPath = docDir
	cfg.LogLevel = "debug"
	cfg.LogFormat = "text"
	appConfig, err := app.NewConfig(cfg)
	require.NoError(t, err)

	outBuffer := &app.SafeBuffer{}
	logBuffer := &app.SafeBuffer{}

	testApp, err := app.NewApp(outBuffer, logBuffer, appConfig, hcl.NewLoader())
	if err == nil {
		err = testApp.Run(ctx)
	}

	if os.Getenv("FRAMEGRID_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
	}

	return &HarnessResult{
		Output:    outBuffer.String(),
		LogOutput: logBuffer.String(),
		Err:       err,
		App:       testApp,
	}
}
