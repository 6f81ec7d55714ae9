package hcl

import (
	"context"
	"fmt"
	"sort"

	"github.com/vk/framegrid/internal/ctxlog"
	"github.com/vk/framegrid/internal/document"
	"github.com/vk/framegrid/internal/nodegraph"
	"github.com/vk/framegrid/internal/nodeid"
	"github.com/vk/framegrid/internal/schema"
	"github.com/vk/framegrid/internal/timeline"
	"github.com/vk/framegrid/internal/value"
)

var layerKinds = map[document.LayerKind]bool{
	document.LayerRect:        true,
	document.LayerEllipse:     true,
	document.LayerLine:        true,
	document.LayerComposition: true,
}

// literalKinds maps the literal node kinds onto the type of their value.
var literalKinds = map[string]value.Type{
	nodegraph.KindNumInput:   value.TypeNumber,
	nodegraph.KindVec2Input:  value.TypeVec2,
	nodegraph.KindColorInput: value.TypeColor,
}

// translateComposition converts the HCL-specific composition schema into the document model.
func translateComposition(s *schema.Composition) *document.Composition {
	return &document.Composition{
		ID:         s.ID,
		Name:       s.Name,
		Layers:     s.Layers,
		Width:      s.Width,
		Height:     s.Height,
		Length:     s.Length,
		FrameIndex: s.Frame,
	}
}

// translateLayer converts the HCL-specific layer schema into the document
// model. The kind defaults to composition when a nested composition is set
// and to rect otherwise.
func translateLayer(s *schema.Layer) (*document.Layer, error) {
	kind := document.LayerKind(s.Kind)
	if kind == "" {
		kind = document.LayerRect
		if s.Nested != "" {
			kind = document.LayerComposition
		}
	}
	if !layerKinds[kind] {
		return nil, fmt.Errorf("layer %q: unknown kind %q", s.ID, s.Kind)
	}
	if kind == document.LayerComposition && s.Nested == "" {
		return nil, fmt.Errorf("layer %q: composition layers must set 'nested'", s.ID)
	}

	l := &document.Layer{
		ID:                  s.ID,
		CompositionID:       s.Composition,
		Name:                s.Name,
		GraphID:             s.Graph,
		Kind:                kind,
		StartIndex:          s.Start,
		Properties:          s.Properties,
		ParentLayerID:       s.Parent,
		NestedCompositionID: s.Nested,
	}
	if s.Length != nil {
		l.Length = *s.Length
	}
	return l, nil
}

// translateGroup converts the HCL-specific group schema into the document model.
func translateGroup(s *schema.Group) *document.PropertyGroup {
	return &document.PropertyGroup{
		ID:         s.ID,
		LayerID:    s.Layer,
		Name:       document.GroupName(s.Name),
		Properties: s.Properties,
		GraphID:    s.Graph,
	}
}

// translateProperty converts the HCL-specific property schema into the
// document model. A missing value is the zero value of the property's type.
func translateProperty(ctx context.Context, s *schema.Property) (*document.Property, error) {
	t, err := typeExprToValueType(ctx, s.Type)
	if err != nil {
		return nil, fmt.Errorf("property %q: %w", s.ID, err)
	}
	if t == value.TypeAny {
		return nil, fmt.Errorf("property %q: properties cannot be of type any", s.ID)
	}

	v, err := literal(s.Value, t)
	if err != nil {
		return nil, fmt.Errorf("property %q: %w", s.ID, err)
	}
	if s.Min != nil && s.Max != nil && *s.Min > *s.Max {
		return nil, fmt.Errorf("property %q: min %v is greater than max %v", s.ID, *s.Min, *s.Max)
	}

	return &document.Property{
		ID:         s.ID,
		LayerID:    s.Layer,
		Name:       document.PropertyName(s.Name),
		Type:       t,
		Value:      v,
		TimelineID: s.Timeline,
		Min:        s.Min,
		Max:        s.Max,
	}, nil
}

// translateTimeline converts the HCL-specific timeline schema into the
// document model, ordering keyframes by index.
func translateTimeline(s *schema.Timeline) (*document.Timeline, error) {
	tl := &document.Timeline{
		ID:         s.ID,
		IndexShift: s.IndexShift,
		ValueShift: s.ValueShift,
		Keyframes:  make([]document.Keyframe, 0, len(s.Keyframes)),
	}

	ids := make(map[string]bool, len(s.Keyframes))
	indexes := make(map[int]string, len(s.Keyframes))
	for _, k := range s.Keyframes {
		if ids[k.ID] {
			return nil, fmt.Errorf("timeline %q: duplicate keyframe %q", s.ID, k.ID)
		}
		if other, dup := indexes[k.Index]; dup {
			return nil, fmt.Errorf("timeline %q: keyframes %q and %q share index %d", s.ID, other, k.ID, k.Index)
		}
		if !timeline.IsPreset(k.Ease) {
			return nil, fmt.Errorf("timeline %q: keyframe %q: unknown ease %q", s.ID, k.ID, k.Ease)
		}
		ids[k.ID] = true
		indexes[k.Index] = k.ID

		tl.Keyframes = append(tl.Keyframes, document.Keyframe{
			ID:                k.ID,
			Index:             k.Index,
			Value:             k.Value,
			Ease:              k.Ease,
			ControlPointLeft:  translateControlPoint(k.Left),
			ControlPointRight: translateControlPoint(k.Right),
		})
	}

	sort.Slice(tl.Keyframes, func(i, j int) bool {
		return tl.Keyframes[i].Index < tl.Keyframes[j].Index
	})
	return tl, nil
}

func translateControlPoint(s *schema.ControlPoint) *document.ControlPoint {
	if s == nil {
		return nil
	}
	return &document.ControlPoint{TX: s.TX, Value: s.Value, RelativeToDistance: s.Distance}
}

func translateSelection(s *schema.Selection) document.KeyframeSelection {
	sel := make(document.KeyframeSelection, len(s.Keyframes))
	for _, id := range s.Keyframes {
		sel[id] = true
	}
	return sel
}

// translateGraph converts the HCL-specific graph schema into the document model.
func translateGraph(ctx context.Context, s *schema.Graph) (*document.Graph, error) {
	logger := ctxlog.FromContext(ctx)

	g := &document.Graph{
		ID:      s.ID,
		LayerID: s.Layer,
		Nodes:   make(map[string]*document.Node, len(s.Nodes)),
	}
	for _, sn := range s.Nodes {
		if _, dup := g.Nodes[sn.ID]; dup {
			return nil, fmt.Errorf("graph %q: duplicate node %q", s.ID, sn.ID)
		}
		n, err := translateNode(ctx, sn)
		if err != nil {
			return nil, fmt.Errorf("graph %q: %w", s.ID, err)
		}
		g.Nodes[sn.ID] = n
	}
	logger.Debug("Translated node graph.", "graph", s.ID, "nodes", len(g.Nodes))
	return g, nil
}

func translateNode(ctx context.Context, s *schema.Node) (*document.Node, error) {
	n := &document.Node{
		ID:         s.ID,
		Kind:       s.Kind,
		PropertyID: s.Property,
		Expression: s.Expression,
		Inputs:     make([]document.Input, 0, len(s.Inputs)),
		Outputs:    make([]document.Output, 0, len(s.Outputs)),
	}

	if t, ok := literalKinds[s.Kind]; ok {
		v, err := literal(s.Value, t)
		if err != nil {
			return nil, fmt.Errorf("node %q: %w", s.ID, err)
		}
		n.Value = v
	}

	for _, in := range s.Inputs {
		input, err := translateInput(ctx, in)
		if err != nil {
			return nil, fmt.Errorf("node %q: %w", s.ID, err)
		}
		n.Inputs = append(n.Inputs, input)
	}
	for _, out := range s.Outputs {
		t, err := typeExprToValueType(ctx, out.Type)
		if err != nil {
			return nil, fmt.Errorf("node %q: output %q: %w", s.ID, out.Name, err)
		}
		n.Outputs = append(n.Outputs, document.Output{Name: out.Name, Type: t})
	}
	return n, nil
}

// translateInput resolves an input to either a pointer (from) or a literal
// (value). Setting neither yields the zero value of the input's type.
func translateInput(ctx context.Context, s *schema.NodeInput) (document.Input, error) {
	t, err := typeExprToValueType(ctx, s.Type)
	if err != nil {
		return document.Input{}, fmt.Errorf("input %q: %w", s.Name, err)
	}
	in := document.Input{Name: s.Name, Type: t}

	if s.From != "" {
		if !isNull(s.Value) {
			return document.Input{}, fmt.Errorf("input %q: 'value' and 'from' are mutually exclusive", s.Name)
		}
		addr, err := nodeid.Parse(s.From)
		if err != nil {
			return document.Input{}, fmt.Errorf("input %q: %w", s.Name, err)
		}
		in.Pointer = &document.Pointer{NodeID: addr.Node, OutputIndex: addr.Output}
		in.Value = value.Zero(t)
		return in, nil
	}

	v, err := literal(s.Value, t)
	if err != nil {
		return document.Input{}, fmt.Errorf("input %q: %w", s.Name, err)
	}
	in.Value = v
	return in, nil
}
