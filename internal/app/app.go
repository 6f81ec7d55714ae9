package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/vk/framegrid/internal/config"
	"github.com/vk/framegrid/internal/ctxlog"
	"github.com/vk/framegrid/internal/document"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
	snap   *document.Snapshot
}

// NewApp is the constructor for the main application. Render output goes to
// outW and logs to logW. The document is loaded eagerly so that a broken
// document fails before any evaluation starts.
func NewApp(outW, logW io.Writer, appConfig *Config, loader config.Loader) (*App, error) {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	snap, err := loader.Load(ctx, appConfig.DocumentPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load document: %w", err)
	}
	logger.Debug("Document loaded into snapshot.", "compositions", len(snap.Compositions))

	return &App{
		outW:   outW,
		logger: logger,
		config: appConfig,
		snap:   snap,
	}, nil
}

// Snapshot returns the loaded document. This is primarily for testing.
func (a *App) Snapshot() *document.Snapshot {
	return a.snap
}

// compositionID returns the configured composition, or the only composition
// of the document when none is configured.
func (a *App) compositionID() (string, error) {
	if a.config.CompositionID != "" {
		return a.config.CompositionID, nil
	}
	if len(a.snap.Compositions) == 1 {
		for id := range a.snap.Compositions {
			return id, nil
		}
	}
	ids := make([]string, 0, len(a.snap.Compositions))
	for id := range a.snap.Compositions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return "", fmt.Errorf("a composition id is required when the document has %d compositions %v", len(ids), ids)
}
