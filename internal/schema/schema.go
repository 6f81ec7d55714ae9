// Package schema holds the gohcl-tagged structs a document file is decoded
// into before it is translated into a document.Snapshot.
package schema

import (
	"github.com/hashicorp/hcl/v2"
)

// --- Document Structures ---

// File represents the top-level structure of a document file. A document may
// be split across any number of files; their blocks are merged by id.
type File struct {
	Compositions []*Composition `hcl:"composition,block"`
	Layers       []*Layer       `hcl:"layer,block"`
	Groups       []*Group       `hcl:"group,block"`
	Properties   []*Property    `hcl:"property,block"`
	Timelines    []*Timeline    `hcl:"timeline,block"`
	Selections   []*Selection   `hcl:"selection,block"`
	Graphs       []*Graph       `hcl:"graph,block"`
}

// Composition represents a `composition` block.
type Composition struct {
	ID     string  `hcl:"id,label"`
	Name   string  `hcl:"name,optional"`
	Width  float64 `hcl:"width"`
	Height float64 `hcl:"height"`
	Length int     `hcl:"length"`
	Frame  int     `hcl:"frame,optional"`
	// Layers is the layer stacking order. When omitted, the layers that name
	// this composition are used in file order.
	Layers []string `hcl:"layers,optional"`
}

// Layer represents a `layer` block.
type Layer struct {
	ID          string   `hcl:"id,label"`
	Composition string   `hcl:"composition"`
	Name        string   `hcl:"name,optional"`
	Kind        string   `hcl:"kind,optional"`
	Start       int      `hcl:"start,optional"`
	Length      *int     `hcl:"length,optional"`
	Parent      string   `hcl:"parent,optional"`
	Nested      string   `hcl:"nested,optional"`
	Graph       string   `hcl:"graph,optional"`
	Properties  []string `hcl:"properties,optional"`
}

// Group represents a `group` block, a named collection of properties and
// nested groups.
type Group struct {
	ID         string   `hcl:"id,label"`
	Layer      string   `hcl:"layer"`
	Name       string   `hcl:"name"`
	Properties []string `hcl:"properties,optional"`
	Graph      string   `hcl:"graph,optional"`
}

// Property represents a `property` block. Type is a bare keyword such as
// `number` or `vec2`; Value is any literal expression of that type.
type Property struct {
	ID       string         `hcl:"id,label"`
	Layer    string         `hcl:"layer"`
	Name     string         `hcl:"name"`
	Type     hcl.Expression `hcl:"type"`
	Value    hcl.Expression `hcl:"value,optional"`
	Timeline string         `hcl:"timeline,optional"`
	Min      *float64       `hcl:"min,optional"`
	Max      *float64       `hcl:"max,optional"`
}

// --- Timeline Structures ---

// Timeline represents a `timeline` block. The shift attributes describe an
// in-progress drag preview of the selected keyframes.
type Timeline struct {
	ID         string      `hcl:"id,label"`
	IndexShift *int        `hcl:"index_shift,optional"`
	ValueShift *float64    `hcl:"value_shift,optional"`
	Keyframes  []*Keyframe `hcl:"keyframe,block"`
}

// Keyframe represents a `keyframe` block within a timeline.
type Keyframe struct {
	ID    string        `hcl:"id,label"`
	Index int           `hcl:"index"`
	Value float64       `hcl:"value"`
	Ease  string        `hcl:"ease,optional"`
	Left  *ControlPoint `hcl:"left,block"`
	Right *ControlPoint `hcl:"right,block"`
}

// ControlPoint represents a `left` or `right` bezier handle block.
type ControlPoint struct {
	TX       float64 `hcl:"tx"`
	Value    float64 `hcl:"value"`
	Distance float64 `hcl:"distance,optional"`
}

// Selection represents a `selection` block naming the selected keyframes of
// one timeline.
type Selection struct {
	Timeline  string   `hcl:"timeline,label"`
	Keyframes []string `hcl:"keyframes"`
}

// --- Node Graph Structures ---

// Graph represents a `graph` block.
type Graph struct {
	ID    string  `hcl:"id,label"`
	Layer string  `hcl:"layer,optional"`
	Nodes []*Node `hcl:"node,block"`
}

// Node represents a `node` block within a graph.
type Node struct {
	ID         string         `hcl:"id,label"`
	Kind       string         `hcl:"kind"`
	Value      hcl.Expression `hcl:"value,optional"`
	Property   string         `hcl:"property,optional"`
	Expression string         `hcl:"expression,optional"`
	Inputs     []*NodeInput   `hcl:"input,block"`
	Outputs    []*NodeOutput  `hcl:"output,block"`
}

// NodeInput represents an `input` block. Exactly one of Value and From is
// expected; From is an address such as "node[1]".
type NodeInput struct {
	Name  string         `hcl:"name,label"`
	Type  hcl.Expression `hcl:"type"`
	Value hcl.Expression `hcl:"value,optional"`
	From  string         `hcl:"from,optional"`
}

// NodeOutput represents an `output` block.
type NodeOutput struct {
	Name string         `hcl:"name,label"`
	Type hcl.Expression `hcl:"type"`
}
