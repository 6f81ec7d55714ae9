package nodegraph

import (
	"github.com/vk/framegrid/internal/document"
	"github.com/vk/framegrid/internal/expr"
	"github.com/vk/framegrid/internal/value"
)

// Size is a width and height in pixels.
type Size struct {
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// Context carries everything a node may read while a graph is evaluated.
type Context struct {
	Snapshot      *document.Snapshot
	Frame         int
	CompositionID string
	LayerID       string
	Container     Size

	// Properties holds the resolved value of every property visible to the
	// graph, keyed by property id.
	Properties map[string]value.Value

	// ArrayModifierIndex is the current iteration of an array modifier
	// expansion, or -1 outside of one.
	ArrayModifierIndex int

	Expressions *expr.Cache
	Registry    *Registry

	outputs map[string][]value.Value
}

// NewContext creates a context outside of any array modifier expansion, with
// a fresh expression cache.
func NewContext(snap *document.Snapshot, compositionID, layerID string, frame int) *Context {
	return &Context{
		Snapshot:           snap,
		Frame:              frame,
		CompositionID:      compositionID,
		LayerID:            layerID,
		Properties:         make(map[string]value.Value),
		ArrayModifierIndex: -1,
		Expressions:        expr.NewCache(),
	}
}

// ForIteration returns a copy of c for array modifier iteration index. The
// copy has empty output storage and shares the expression cache.
func (c *Context) ForIteration(index int) *Context {
	next := *c
	next.ArrayModifierIndex = index
	next.outputs = nil
	return &next
}

func (c *Context) registry() *Registry {
	if c.Registry != nil {
		return c.Registry
	}
	return DefaultRegistry()
}

func (c *Context) expressions() *expr.Cache {
	if c.Expressions == nil {
		c.Expressions = expr.NewCache()
	}
	return c.Expressions
}

func (c *Context) storage() map[string][]value.Value {
	if c.outputs == nil {
		c.outputs = make(map[string][]value.Value)
	}
	return c.outputs
}

func (c *Context) resolveTargets(id string) ([]*document.Property, bool) {
	if c.Snapshot == nil {
		return nil, false
	}
	return c.Snapshot.ResolveTargets(id)
}
