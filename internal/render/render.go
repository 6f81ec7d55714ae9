package render

import (
	"context"
	"math"

	"github.com/vk/framegrid/internal/arraymod"
	"github.com/vk/framegrid/internal/ctxlog"
	"github.com/vk/framegrid/internal/document"
	"github.com/vk/framegrid/internal/evalerr"
	"github.com/vk/framegrid/internal/nodegraph"
	"github.com/vk/framegrid/internal/timeline"
	"github.com/vk/framegrid/internal/transform"
	"github.com/vk/framegrid/internal/value"
)

// Evaluate computes the render values of composition compositionID at frame.
// The snapshot is only read. Any error aborts the call and no partial result
// is returned.
func Evaluate(ctx context.Context, snap *document.Snapshot, compositionID string, frame int, opts Options) (*CompositionRenderValues, error) {
	r := &renderer{
		snap:     snap,
		opts:     opts,
		cache:    newCache(),
		visiting: make(map[string]bool),
	}
	out, err := r.visit(ctx, compositionID, frame, nil, true)
	if err != nil {
		return nil, err
	}
	return out, nil
}

type renderer struct {
	snap  *document.Snapshot
	opts  Options
	cache *cache
	// visiting holds the compositions on the current descent path.
	visiting map[string]bool
}

// visit evaluates a composition placed by parent (nil at the top level).
func (r *renderer) visit(ctx context.Context, compositionID string, frame int, parent *transform.Affine, top bool) (*CompositionRenderValues, error) {
	logger := ctxlog.FromContext(ctx)

	if r.visiting[compositionID] {
		e := evalerr.Structuralf("composition contains itself through nested composition layers")
		e.CompositionID = compositionID
		return nil, e
	}
	r.visiting[compositionID] = true
	defer delete(r.visiting, compositionID)

	comp, err := r.snap.Composition(compositionID)
	if err != nil {
		return nil, err
	}

	ev, ok := r.cache.get(compositionID, frame)
	if ok {
		logger.Debug("Reusing cached composition evaluation.", "composition", compositionID, "frame", frame)
	} else {
		container := nodegraph.Size{Width: comp.Width, Height: comp.Height}
		if top && (r.opts.Container.Width != 0 || r.opts.Container.Height != 0) {
			container = r.opts.Container
		}
		logger.Debug("Evaluating composition.", "composition", compositionID, "frame", frame)
		ev, err = r.evaluate(ctx, comp, frame, container)
		if err != nil {
			return nil, err
		}
		r.cache.put(compositionID, frame, ev)
	}

	transforms, err := r.layerTransforms(comp, ev, parent)
	if err != nil {
		return nil, err
	}

	out := &CompositionRenderValues{
		CompositionID:           compositionID,
		FrameIndex:              frame,
		Properties:              ev.properties,
		ArrayModifierProperties: ev.overrides,
		Transforms:              make(map[string]LayerTransforms, len(transforms)),
	}
	for id, tfs := range transforms {
		out.Transforms[id] = LayerTransforms{Transform: tfs}
	}

	if !r.opts.Recursive {
		return out, nil
	}

	for _, layerID := range comp.Layers {
		layer := r.snap.Layers[layerID]
		if layer.Kind != document.LayerComposition || layer.NestedCompositionID == "" {
			continue
		}
		if out.CompositionLayers == nil {
			out.CompositionLayers = make(map[string]map[int]*CompositionRenderValues)
		}
		children := make(map[int]*CompositionRenderValues, len(transforms[layerID]))
		for i := range transforms[layerID] {
			tf := transforms[layerID][i]
			child, err := r.visit(ctx, layer.NestedCompositionID, frame-layer.StartIndex, &tf, false)
			if err != nil {
				return nil, evalerr.Locate(err, compositionID, layerID)
			}
			children[i] = child
		}
		out.CompositionLayers[layerID] = children
	}
	return out, nil
}

// evaluate resolves every property of the composition's layers at frame.
func (r *renderer) evaluate(ctx context.Context, comp *document.Composition, frame int, container nodegraph.Size) (*evaluation, error) {
	logger := ctxlog.FromContext(ctx)

	ev := &evaluation{
		properties: make(map[string]PropertyValue),
		computed:   make(map[string]value.Value),
		overrides:  make(arraymod.Overrides),
		counts:     make(map[string]int),
	}

	// Raw values of every layer come first so graphs can read any property of
	// the composition regardless of layer order.
	raw := make(map[string]value.Value)
	for _, layerID := range comp.Layers {
		layer, err := r.snap.Layer(layerID)
		if err != nil {
			return nil, evalerr.Locate(err, comp.ID, layerID)
		}
		props, err := r.snap.LayerProperties(layerID)
		if err != nil {
			return nil, evalerr.Locate(err, comp.ID, layerID)
		}
		for _, p := range props {
			v, err := r.rawValue(p, frame-layer.StartIndex)
			if err != nil {
				return nil, evalerr.Locate(err, comp.ID, layerID)
			}
			raw[p.ID] = v
			ev.computed[p.ID] = v
		}
	}

	newContext := func(layerID string) *nodegraph.Context {
		ectx := nodegraph.NewContext(r.snap, comp.ID, layerID, frame)
		ectx.Container = container
		return ectx
	}

	for _, layerID := range comp.Layers {
		layer := r.snap.Layers[layerID]
		if layer.GraphID == "" {
			continue
		}
		g, err := r.snap.Graph(layer.GraphID)
		if err != nil {
			return nil, evalerr.Locate(err, comp.ID, layerID)
		}
		ectx := newContext(layerID)
		ectx.Properties = raw
		err = nodegraph.ApplyOutputs(ctx, g, ectx, func(id string, v value.Value) {
			if _, ok := raw[id]; !ok {
				logger.Debug("Skipping graph output to a property outside the composition.", "graph", g.ID, "property", id)
				return
			}
			ev.computed[id] = v
		})
		if err != nil {
			return nil, evalerr.Locate(err, comp.ID, layerID)
		}
	}

	for id := range raw {
		ev.computed[id] = clampToRange(r.snap.Properties[id], ev.computed[id])
	}

	for _, layerID := range comp.Layers {
		mods, err := arraymod.LayerModifiers(r.snap, layerID)
		if err != nil {
			return nil, evalerr.Locate(err, comp.ID, layerID)
		}
		if len(mods) == 0 {
			continue
		}
		if len(mods) > 1 {
			logger.Debug("Layer has several array modifiers; only the first is applied.", "layer", layerID, "count", len(mods))
		}

		base := newContext(layerID)
		base.Properties = ev.computed
		exp, err := arraymod.Expand(ctx, mods[0], base, arraymod.Options{Recursive: r.opts.Recursive})
		if err != nil {
			return nil, evalerr.Locate(err, comp.ID, layerID)
		}
		ev.counts[layerID] = exp.Count
		for id, byIter := range exp.Overrides {
			for i, v := range byIter {
				ev.overrides.Set(id, i, v)
			}
		}
	}

	for id, v := range raw {
		ev.properties[id] = PropertyValue{RawValue: v, ComputedValue: ev.computed[id]}
	}
	return ev, nil
}

// rawValue is the property's timeline value at the layer-relative frame, or
// its static value.
func (r *renderer) rawValue(p *document.Property, frame int) (value.Value, error) {
	if !p.Animated() {
		return p.Value, nil
	}
	tl, ok := r.snap.Timelines[p.TimelineID]
	if !ok {
		return value.Value{}, evalerr.Structuralf("timeline %q of property %q not found", p.TimelineID, p.ID)
	}
	v := timeline.ValueAtFrame(tl, float64(frame), r.snap.Selections[tl.ID])
	return value.Num(v), nil
}

// clampToRange limits a number to the property's optional bounds.
func clampToRange(p *document.Property, v value.Value) value.Value {
	if p == nil || v.Type != value.TypeNumber {
		return v
	}
	n := v.Number
	if p.Min != nil {
		n = math.Max(*p.Min, n)
	}
	if p.Max != nil {
		n = math.Min(*p.Max, n)
	}
	return value.Num(n)
}

// layerTransforms composes the world transforms of every layer. A layer with
// a parent layer is placed in iteration 0 of its parent's world transform;
// other layers are placed by the composition's parent transform.
func (r *renderer) layerTransforms(comp *document.Composition, ev *evaluation, parent *transform.Affine) (map[string][]transform.Affine, error) {
	inComp := make(map[string]bool, len(comp.Layers))
	for _, id := range comp.Layers {
		inComp[id] = true
	}

	out := make(map[string][]transform.Affine, len(comp.Layers))
	visiting := make(map[string]bool)

	var resolve func(layerID string) ([]transform.Affine, error)
	resolve = func(layerID string) ([]transform.Affine, error) {
		if tfs, ok := out[layerID]; ok {
			return tfs, nil
		}
		if visiting[layerID] {
			e := evalerr.Structuralf("layer parent chain forms a cycle")
			e.CompositionID = comp.ID
			e.LayerID = layerID
			return nil, e
		}
		visiting[layerID] = true
		defer delete(visiting, layerID)

		layer, err := r.snap.Layer(layerID)
		if err != nil {
			return nil, evalerr.Locate(err, comp.ID, layerID)
		}

		place := parent
		if layer.ParentLayerID != "" {
			if !inComp[layer.ParentLayerID] {
				e := evalerr.Structuralf("parent layer %q is not part of the composition", layer.ParentLayerID)
				e.CompositionID = comp.ID
				e.LayerID = layerID
				return nil, e
			}
			parentTfs, err := resolve(layer.ParentLayerID)
			if err != nil {
				return nil, err
			}
			place = &parentTfs[0]
		}

		props, err := r.snap.TransformProperties(layerID)
		if err != nil {
			return nil, evalerr.Locate(err, comp.ID, layerID)
		}
		tfs := transform.ComposeLayer(transform.LayerInput{
			Properties: props,
			Values:     ev.computed,
			Overrides:  ev.overrides,
			Count:      ev.counts[layerID],
		}, place)
		out[layerID] = tfs
		return tfs, nil
	}

	for _, id := range comp.Layers {
		if _, err := resolve(id); err != nil {
			return nil, err
		}
	}
	return out, nil
}
