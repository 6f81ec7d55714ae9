package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/framegrid/internal/ctxlog"
	"github.com/vk/framegrid/internal/document"
	"github.com/vk/framegrid/internal/fsutil"
	"github.com/vk/framegrid/internal/schema"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL document loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load orchestrates the entire HCL document loading process. Paths may name
// files or directories; every block of every discovered file is merged into
// one snapshot.
func (l *Loader) Load(ctx context.Context, paths ...string) (*document.Snapshot, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	hclFiles, err := fsutil.CollectFiles(paths, ".hcl")
	if err != nil {
		return nil, err
	}
	if len(hclFiles) == 0 {
		return nil, fmt.Errorf("no .hcl files found in %v", paths)
	}
	logger.Debug("Discovered HCL files.", "count", len(hclFiles))

	parser := hclparse.NewParser()
	b := newBuilder()

	for _, file := range hclFiles {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root schema.File
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		if err := b.add(ctx, &root); err != nil {
			return nil, fmt.Errorf("failed to translate HCL file %s: %w", file, err)
		}
	}

	snap, err := b.finish()
	if err != nil {
		return nil, err
	}

	logger.Debug("HCL loading complete.",
		"compositions", len(snap.Compositions),
		"layers", len(snap.Layers),
		"properties", len(snap.Properties),
		"timelines", len(snap.Timelines),
		"graphs", len(snap.Graphs),
	)
	return snap, nil
}

// builder accumulates translated blocks across files and resolves the
// defaults that depend on blocks from other files.
type builder struct {
	snap *document.Snapshot
	// layerOrder records layers per composition in file order, used when a
	// composition does not list its layers explicitly.
	layerOrder map[string][]string
	// defaultLength marks layers whose length falls back to the composition's.
	defaultLength map[string]bool
}

func newBuilder() *builder {
	return &builder{
		snap:          document.New(),
		layerOrder:    make(map[string][]string),
		defaultLength: make(map[string]bool),
	}
}

func (b *builder) add(ctx context.Context, f *schema.File) error {
	for _, c := range f.Compositions {
		if _, dup := b.snap.Compositions[c.ID]; dup {
			return fmt.Errorf("duplicate composition %q", c.ID)
		}
		b.snap.Compositions[c.ID] = translateComposition(c)
	}
	for _, s := range f.Layers {
		if _, dup := b.snap.Layers[s.ID]; dup {
			return fmt.Errorf("duplicate layer %q", s.ID)
		}
		layer, err := translateLayer(s)
		if err != nil {
			return err
		}
		b.snap.Layers[s.ID] = layer
		b.layerOrder[s.Composition] = append(b.layerOrder[s.Composition], s.ID)
		if s.Length == nil {
			b.defaultLength[s.ID] = true
		}
	}
	for _, s := range f.Groups {
		if err := b.checkPropertyID(s.ID); err != nil {
			return err
		}
		b.snap.Groups[s.ID] = translateGroup(s)
	}
	for _, s := range f.Properties {
		if err := b.checkPropertyID(s.ID); err != nil {
			return err
		}
		p, err := translateProperty(ctx, s)
		if err != nil {
			return err
		}
		b.snap.Properties[s.ID] = p
	}
	for _, s := range f.Timelines {
		if _, dup := b.snap.Timelines[s.ID]; dup {
			return fmt.Errorf("duplicate timeline %q", s.ID)
		}
		tl, err := translateTimeline(s)
		if err != nil {
			return err
		}
		b.snap.Timelines[s.ID] = tl
	}
	for _, s := range f.Selections {
		if _, dup := b.snap.Selections[s.Timeline]; dup {
			return fmt.Errorf("duplicate selection for timeline %q", s.Timeline)
		}
		b.snap.Selections[s.Timeline] = translateSelection(s)
	}
	for _, s := range f.Graphs {
		if _, dup := b.snap.Graphs[s.ID]; dup {
			return fmt.Errorf("duplicate graph %q", s.ID)
		}
		g, err := translateGraph(ctx, s)
		if err != nil {
			return err
		}
		b.snap.Graphs[s.ID] = g
	}
	return nil
}

// checkPropertyID enforces the namespace shared by properties and groups.
func (b *builder) checkPropertyID(id string) error {
	if _, dup := b.snap.Properties[id]; dup {
		return fmt.Errorf("duplicate property or group %q", id)
	}
	if _, dup := b.snap.Groups[id]; dup {
		return fmt.Errorf("duplicate property or group %q", id)
	}
	return nil
}

func (b *builder) finish() (*document.Snapshot, error) {
	for _, layer := range b.snap.Layers {
		comp, ok := b.snap.Compositions[layer.CompositionID]
		if !ok {
			return nil, fmt.Errorf("layer %q references unknown composition %q", layer.ID, layer.CompositionID)
		}
		if b.defaultLength[layer.ID] {
			layer.Length = comp.Length
		}
	}
	for id, comp := range b.snap.Compositions {
		if len(comp.Layers) == 0 {
			comp.Layers = b.layerOrder[id]
		}
	}
	for id := range b.snap.Selections {
		if _, ok := b.snap.Timelines[id]; !ok {
			return nil, fmt.Errorf("selection references unknown timeline %q", id)
		}
	}
	return b.snap, nil
}
