package render

import (
	"github.com/vk/framegrid/internal/arraymod"
	"github.com/vk/framegrid/internal/nodegraph"
	"github.com/vk/framegrid/internal/transform"
	"github.com/vk/framegrid/internal/value"
)

// Options controls an evaluation call.
type Options struct {
	// Recursive enables array modifier replication and descent into nested
	// compositions.
	Recursive bool
	// Container is the size exposed to the top-level composition's graphs.
	// The zero value means the composition's own size.
	Container nodegraph.Size
}

// PropertyValue is the value of one property at a frame.
type PropertyValue struct {
	// RawValue is the static or timeline value.
	RawValue value.Value `json:"rawValue"`
	// ComputedValue is RawValue after graph overrides.
	ComputedValue value.Value `json:"computedValue"`
}

// LayerTransforms holds one world transform per array modifier iteration.
type LayerTransforms struct {
	Transform []transform.Affine `json:"transform"`
}

// CompositionRenderValues is the result of evaluating a composition at a
// frame. Results produced from the same cached evaluation share their
// property maps and must be treated as read-only.
type CompositionRenderValues struct {
	CompositionID           string                                      `json:"compositionId"`
	FrameIndex              int                                         `json:"frameIndex"`
	Properties              map[string]PropertyValue                    `json:"properties"`
	ArrayModifierProperties arraymod.Overrides                          `json:"arrayModifierProperties"`
	Transforms              map[string]LayerTransforms                  `json:"transforms"`
	CompositionLayers       map[string]map[int]*CompositionRenderValues `json:"compositionLayers,omitempty"`
}
