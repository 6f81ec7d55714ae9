// Package document defines the immutable document snapshot the evaluation
// engine reads: compositions, layers, properties and property groups,
// timelines with their selection state, and node graphs.
//
// The snapshot is built by an external collaborator (the editing layer, the
// HCL loader in package hcl, or test fixtures) and is never mutated by the
// engine. All cross references are by string identifier.
package document

import "github.com/vk/framegrid/internal/value"

// LayerKind distinguishes shape primitives from nested-composition layers.
type LayerKind string

const (
	LayerRect        LayerKind = "rect"
	LayerEllipse     LayerKind = "ellipse"
	LayerLine        LayerKind = "line"
	LayerComposition LayerKind = "composition"
)

// PropertyName is the semantic name of a property.
type PropertyName string

const (
	// Transform properties.
	AnchorX   PropertyName = "AnchorX"
	AnchorY   PropertyName = "AnchorY"
	Scale     PropertyName = "Scale"
	PositionX PropertyName = "PositionX"
	PositionY PropertyName = "PositionY"
	Rotation  PropertyName = "Rotation"
	Opacity   PropertyName = "Opacity"

	// Other properties.
	Width        PropertyName = "Width"
	Height       PropertyName = "Height"
	Fill         PropertyName = "Fill"
	StrokeColor  PropertyName = "StrokeColor"
	StrokeWidth  PropertyName = "StrokeWidth"
	BorderRadius PropertyName = "BorderRadius"

	// ArrayModifierCount is the iteration count of an ArrayModifier group.
	ArrayModifierCount PropertyName = "ArrayModifierCount"
	// ArrayModifierBehavior is the transform behavior enum of an ArrayModifier group.
	ArrayModifierBehavior PropertyName = "ArrayModifierBehavior"
)

// GroupName is the semantic name of a property group.
type GroupName string

const (
	GroupTransform     GroupName = "Transform"
	GroupDimensions    GroupName = "Dimensions"
	GroupContent       GroupName = "Content"
	GroupModifiers     GroupName = "Modifiers"
	GroupArrayModifier GroupName = "ArrayModifier"
)

// Composition is a timed container of layers.
type Composition struct {
	ID         string
	Name       string
	Layers     []string
	Width      float64
	Height     float64
	Length     int
	FrameIndex int
}

// Layer is a positioned, animatable element within a composition.
type Layer struct {
	ID            string
	CompositionID string
	Name          string
	GraphID       string
	Kind          LayerKind
	// StartIndex is the composition frame of the layer's first frame.
	StartIndex int
	Length     int
	// Properties lists top-level property and group ids in display order.
	Properties    []string
	ParentLayerID string
	// NestedCompositionID is set for LayerComposition layers.
	NestedCompositionID string
}

// Property is a single animatable value owned by a layer.
type Property struct {
	ID         string
	LayerID    string
	Name       PropertyName
	Type       value.Type
	Value      value.Value
	TimelineID string
	Min        *float64
	Max        *float64
}

// Animated reports whether the property is driven by a timeline.
func (p *Property) Animated() bool {
	return p.TimelineID != ""
}

// PropertyGroup is a named, ordered collection of properties and groups.
type PropertyGroup struct {
	ID         string
	LayerID    string
	Name       GroupName
	Properties []string
	// GraphID is only meaningful for ArrayModifier groups.
	GraphID string
}

// ControlPoint is a bezier handle of a keyframe.
type ControlPoint struct {
	// TX is the handle's position as a fraction (0-1) of the segment length.
	TX float64
	// Value is the handle's value offset relative to the keyframe value.
	Value float64
	// RelativeToDistance is the segment length Value was authored against.
	RelativeToDistance float64
}

// Keyframe is a (frame index, value) pair with optional bezier handles.
type Keyframe struct {
	ID                string
	Index             int
	Value             float64
	ControlPointLeft  *ControlPoint
	ControlPointRight *ControlPoint
	// Ease names an easing preset used towards the next keyframe when neither
	// side of the segment has a control point.
	Ease string
}

// Timeline is the ordered keyframe sequence driving one animated property.
type Timeline struct {
	ID        string
	Keyframes []Keyframe
	// IndexShift and ValueShift describe an in-progress drag of the selected
	// keyframes. They are nil when no drag is active.
	IndexShift *int
	ValueShift *float64
}

// KeyframeSelection is the set of selected keyframe ids of one timeline.
type KeyframeSelection map[string]bool

// Pointer references output OutputIndex of node NodeID in the same graph.
type Pointer struct {
	NodeID      string
	OutputIndex int
}

// Input is a typed node input: a literal value or a pointer.
type Input struct {
	Name    string
	Type    value.Type
	Value   value.Value
	Pointer *Pointer
}

// Output is a typed node output.
type Output struct {
	Name string
	Type value.Type
}

// Node is one compute unit of a graph.
type Node struct {
	ID      string
	Kind    string
	Inputs  []Input
	Outputs []Output

	// Value is the literal of *_input kinds.
	Value value.Value
	// PropertyID is the selected property or group of property_input and
	// property_output kinds. Empty means nothing is selected.
	PropertyID string
	// Expression is the source of expr kinds.
	Expression string
}

// Graph is a set of compute nodes keyed by id.
type Graph struct {
	ID      string
	LayerID string
	Nodes   map[string]*Node
}

// Snapshot is the immutable document the engine evaluates. Properties and
// groups share a single identifier namespace.
type Snapshot struct {
	Compositions map[string]*Composition
	Layers       map[string]*Layer
	Properties   map[string]*Property
	Groups       map[string]*PropertyGroup
	Timelines    map[string]*Timeline
	Selections   map[string]KeyframeSelection
	Graphs       map[string]*Graph
}

// New returns an empty snapshot with all maps allocated.
func New() *Snapshot {
	return &Snapshot{
		Compositions: make(map[string]*Composition),
		Layers:       make(map[string]*Layer),
		Properties:   make(map[string]*Property),
		Groups:       make(map[string]*PropertyGroup),
		Timelines:    make(map[string]*Timeline),
		Selections:   make(map[string]KeyframeSelection),
		Graphs:       make(map[string]*Graph),
	}
}
