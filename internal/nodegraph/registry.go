package nodegraph

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vk/framegrid/internal/document"
	"github.com/vk/framegrid/internal/value"
)

// Kind computes the outputs of a node from its resolved input values.
type Kind interface {
	Compute(inputs []value.Value, n *document.Node, ectx *Context) ([]value.Value, error)
}

// KindFunc adapts a plain function to the Kind interface.
type KindFunc func(inputs []value.Value, n *document.Node, ectx *Context) ([]value.Value, error)

// Compute calls f.
func (f KindFunc) Compute(inputs []value.Value, n *document.Node, ectx *Context) ([]value.Value, error) {
	return f(inputs, n, ectx)
}

// Registry maps kind tags to their implementations.
type Registry struct {
	kinds map[string]Kind
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{kinds: make(map[string]Kind)}
}

// Register adds a kind under tag. Registering a tag twice is a programming
// error and panics.
func (r *Registry) Register(tag string, k Kind) {
	if _, exists := r.kinds[tag]; exists {
		panic(fmt.Sprintf("node kind '%s' already registered", tag))
	}
	r.kinds[tag] = k
}

// Lookup returns the kind registered under tag.
func (r *Registry) Lookup(tag string) (Kind, bool) {
	k, ok := r.kinds[tag]
	return k, ok
}

// Tags returns the registered tags in sorted order.
func (r *Registry) Tags() []string {
	tags := make([]string, 0, len(r.kinds))
	for tag := range r.kinds {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// DefaultRegistry returns the registry holding the built-in node kinds.
func DefaultRegistry() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewRegistry()
		registerBuiltins(defaultRegistry)
	})
	return defaultRegistry
}
