package testutil

import (
	"github.com/vk/framegrid/internal/document"
	"github.com/vk/framegrid/internal/value"
)

// Doc builds document snapshots for tests. Property ids are
// "<layer>.<PropertyName>" and group ids "<layer>.<GroupName>".
type Doc struct {
	Snap *document.Snapshot
}

// NewDoc starts an empty document.
func NewDoc() *Doc {
	return &Doc{Snap: document.New()}
}

// PropID returns the id the builder gives property name of layerID.
func PropID(layerID string, name document.PropertyName) string {
	return layerID + "." + string(name)
}

// GroupID returns the id the builder gives group name of layerID.
func GroupID(layerID string, name document.GroupName) string {
	return layerID + "." + string(name)
}

// Composition adds an empty composition.
func (d *Doc) Composition(id string, width, height float64, length int) *Doc {
	d.Snap.Compositions[id] = &document.Composition{
		ID:     id,
		Name:   id,
		Width:  width,
		Height: height,
		Length: length,
	}
	return d
}

// Layer appends a layer of kind to composition compID. The layer gets a
// Transform group (anchor 0, scale 1, position 0, rotation 0, opacity 1) and
// a Dimensions group (100x100).
func (d *Doc) Layer(compID, layerID string, kind document.LayerKind) *document.Layer {
	comp := d.Snap.Compositions[compID]
	comp.Layers = append(comp.Layers, layerID)

	l := &document.Layer{
		ID:            layerID,
		CompositionID: compID,
		Name:          layerID,
		Kind:          kind,
		Length:        comp.Length,
	}
	d.Snap.Layers[layerID] = l

	d.group(l, document.GroupTransform, map[document.PropertyName]float64{
		document.AnchorX:   0,
		document.AnchorY:   0,
		document.Scale:     1,
		document.PositionX: 0,
		document.PositionY: 0,
		document.Rotation:  0,
		document.Opacity:   1,
	}, []document.PropertyName{
		document.AnchorX, document.AnchorY, document.Scale,
		document.PositionX, document.PositionY, document.Rotation, document.Opacity,
	})
	d.group(l, document.GroupDimensions, map[document.PropertyName]float64{
		document.Width:  100,
		document.Height: 100,
	}, []document.PropertyName{document.Width, document.Height})
	return l
}

func (d *Doc) group(l *document.Layer, name document.GroupName, defaults map[document.PropertyName]float64, order []document.PropertyName) *document.PropertyGroup {
	g := &document.PropertyGroup{ID: GroupID(l.ID, name), LayerID: l.ID, Name: name}
	for _, prop := range order {
		id := PropID(l.ID, prop)
		d.Snap.Properties[id] = &document.Property{
			ID:      id,
			LayerID: l.ID,
			Name:    prop,
			Type:    value.TypeNumber,
			Value:   value.Num(defaults[prop]),
		}
		g.Properties = append(g.Properties, id)
	}
	d.Snap.Groups[g.ID] = g
	l.Properties = append(l.Properties, g.ID)
	return g
}

// Nest turns layerID into a layer showing composition nestedID.
func (d *Doc) Nest(layerID, nestedID string, startIndex int) *Doc {
	l := d.Snap.Layers[layerID]
	l.Kind = document.LayerComposition
	l.NestedCompositionID = nestedID
	l.StartIndex = startIndex
	return d
}

// Set overrides the static value of a property.
func (d *Doc) Set(layerID string, name document.PropertyName, v value.Value) *Doc {
	p := d.Snap.Properties[PropID(layerID, name)]
	p.Value = v
	p.Type = v.Type
	return d
}

// Animate attaches a timeline with the keyframes to a property.
func (d *Doc) Animate(layerID string, name document.PropertyName, keyframes ...document.Keyframe) *document.Timeline {
	id := PropID(layerID, name) + ".timeline"
	tl := &document.Timeline{ID: id, Keyframes: keyframes}
	d.Snap.Timelines[id] = tl
	d.Snap.Properties[PropID(layerID, name)].TimelineID = id
	return tl
}

// Graph registers a graph and attaches it to layerID as its layer graph.
func (d *Doc) Graph(layerID, graphID string, nodes ...*document.Node) *document.Graph {
	g := NewGraph(graphID, layerID, nodes...)
	d.Snap.Graphs[graphID] = g
	d.Snap.Layers[layerID].GraphID = graphID
	return g
}

// ArrayModifier adds a Modifiers group holding one ArrayModifier group to
// layerID. The modifier iterates count times and is driven by a graph with
// the given nodes. It returns the ArrayModifier group id.
func (d *Doc) ArrayModifier(layerID string, count float64, nodes ...*document.Node) string {
	l := d.Snap.Layers[layerID]

	modID := GroupID(l.ID, document.GroupArrayModifier)
	graphID := modID + ".graph"
	countID := PropID(l.ID, document.ArrayModifierCount)

	d.Snap.Properties[countID] = &document.Property{
		ID:      countID,
		LayerID: l.ID,
		Name:    document.ArrayModifierCount,
		Type:    value.TypeNumber,
		Value:   value.Num(count),
	}
	d.Snap.Groups[modID] = &document.PropertyGroup{
		ID:         modID,
		LayerID:    l.ID,
		Name:       document.GroupArrayModifier,
		Properties: []string{countID},
		GraphID:    graphID,
	}
	modifiersID := GroupID(l.ID, document.GroupModifiers)
	d.Snap.Groups[modifiersID] = &document.PropertyGroup{
		ID:         modifiersID,
		LayerID:    l.ID,
		Name:       document.GroupModifiers,
		Properties: []string{modID},
	}
	l.Properties = append(l.Properties, modifiersID)
	d.Snap.Graphs[graphID] = NewGraph(graphID, l.ID, nodes...)
	return modID
}

// NewGraph builds a graph from nodes.
func NewGraph(id, layerID string, nodes ...*document.Node) *document.Graph {
	g := &document.Graph{ID: id, LayerID: layerID, Nodes: make(map[string]*document.Node, len(nodes))}
	for _, n := range nodes {
		g.Nodes[n.ID] = n
	}
	return g
}

// Lit is a literal number input.
func Lit(name string, n float64) document.Input {
	return document.Input{Name: name, Type: value.TypeNumber, Value: value.Num(n)}
}

// LitValue is a literal input of any type.
func LitValue(name string, v value.Value) document.Input {
	return document.Input{Name: name, Type: v.Type, Value: v}
}

// Ref is an input pointing at output of node.
func Ref(name string, t value.Type, node string, output int) document.Input {
	return document.Input{
		Name:    name,
		Type:    t,
		Value:   value.Zero(t),
		Pointer: &document.Pointer{NodeID: node, OutputIndex: output},
	}
}

// Out declares a node output.
func Out(name string, t value.Type) document.Output {
	return document.Output{Name: name, Type: t}
}

// Node builds a node of kind with inputs and outputs.
func Node(id, kind string, inputs []document.Input, outputs ...document.Output) *document.Node {
	return &document.Node{ID: id, Kind: kind, Inputs: inputs, Outputs: outputs}
}

// NumInput builds a num_input node holding n.
func NumInput(id string, n float64) *document.Node {
	return &document.Node{
		ID:      id,
		Kind:    "num_input",
		Value:   value.Num(n),
		Outputs: []document.Output{Out("value", value.TypeNumber)},
	}
}

// Expr builds an expr node.
func Expr(id, src string, inputs []document.Input, outputs ...document.Output) *document.Node {
	return &document.Node{ID: id, Kind: "expr", Expression: src, Inputs: inputs, Outputs: outputs}
}

// PropertyOutput builds a property_output node assigning its inputs to the
// selected property or group.
func PropertyOutput(id, propertyID string, inputs ...document.Input) *document.Node {
	return &document.Node{ID: id, Kind: "property_output", PropertyID: propertyID, Inputs: inputs}
}

// PropertyInput builds a property_input node reading the selected property or
// group.
func PropertyInput(id, propertyID string, outputs ...document.Output) *document.Node {
	return &document.Node{ID: id, Kind: "property_input", PropertyID: propertyID, Outputs: outputs}
}
