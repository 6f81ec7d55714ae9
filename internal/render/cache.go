package render

import (
	"github.com/vk/framegrid/internal/arraymod"
	"github.com/vk/framegrid/internal/value"
)

type cacheKey struct {
	compositionID string
	frame         int
}

// evaluation is the placement-independent part of a composition at a frame.
type evaluation struct {
	properties map[string]PropertyValue
	computed   map[string]value.Value
	overrides  arraymod.Overrides
	// counts holds the iteration count of every layer with an array modifier.
	counts map[string]int
}

// cache memoizes evaluations by composition and frame. It lives for one
// Evaluate call.
type cache struct {
	entries map[cacheKey]*evaluation
}

func newCache() *cache {
	return &cache{entries: make(map[cacheKey]*evaluation)}
}

func (c *cache) get(compositionID string, frame int) (*evaluation, bool) {
	ev, ok := c.entries[cacheKey{compositionID, frame}]
	return ev, ok
}

func (c *cache) put(compositionID string, frame int, ev *evaluation) {
	c.entries[cacheKey{compositionID, frame}] = ev
}
