package app

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/vk/framegrid/internal/ctxlog"
	"github.com/vk/framegrid/internal/nodegraph"
	"github.com/vk/framegrid/internal/render"
)

// Run evaluates the configured composition frame and writes the render
// values to the output writer as indented JSON.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	ctx = ctxlog.With(ctx, "evaluation_id", uuid.NewString())
	logger := ctxlog.FromContext(ctx)
	logger.Debug("App.Run method started.")

	compositionID, err := a.compositionID()
	if err != nil {
		return err
	}
	comp, err := a.snap.Composition(compositionID)
	if err != nil {
		return err
	}

	frame := comp.FrameIndex
	if a.config.Frame != nil {
		frame = *a.config.Frame
	}

	opts := render.Options{
		Recursive: a.config.Recursive,
		Container: nodegraph.Size{Width: a.config.Width, Height: a.config.Height},
	}
	logger.Info("Starting evaluation.", "composition", compositionID, "frame", frame, "recursive", opts.Recursive)

	values, err := render.Evaluate(ctx, a.snap, compositionID, frame, opts)
	if err != nil {
		return fmt.Errorf("evaluation failed: %w", err)
	}
	logger.Info("Evaluation finished.", "properties", len(values.Properties), "layers", len(values.Transforms))

	enc := json.NewEncoder(a.outW)
	enc.SetIndent("", "  ")
	if err := enc.Encode(values); err != nil {
		return fmt.Errorf("failed to write render values: %w", err)
	}

	logger.Debug("App.Run method finished.")
	return nil
}
