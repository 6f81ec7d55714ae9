package app

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/framegrid/internal/config"
)

// SafeBuffer captures render output or log lines in tests. Writes may come
// from several goroutines when evaluations run side by side.
type SafeBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// Lines returns the non-empty lines written so far, one per log record.
func (b *SafeBuffer) Lines() []string {
	var lines []string
	for _, l := range strings.Split(b.String(), "\n") {
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

// DecodeJSON unmarshals the captured render output into v.
func (b *SafeBuffer) DecodeJSON(v any) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return json.Unmarshal(b.buf.Bytes(), v)
}

// SetupAppTest builds an app around loader with debug logging, returning the
// render output and log buffers. FRAMEGRID_TEST_LOGS=true dumps the log of
// each test on cleanup.
func SetupAppTest(t *testing.T, cfg *Config, loader config.Loader) (*App, *SafeBuffer, *SafeBuffer) {
	t.Helper()

	out, logs := &SafeBuffer{}, &SafeBuffer{}
	cfg.LogLevel = "debug"
	a, err := NewApp(out, logs, cfg, loader)
	require.NoError(t, err)

	t.Cleanup(func() {
		if os.Getenv("FRAMEGRID_TEST_LOGS") == "true" {
			t.Logf("--- log output for %s ---\n%s", t.Name(), logs.String())
		}
	})
	return a, out, logs
}
