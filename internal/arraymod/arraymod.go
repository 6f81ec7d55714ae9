// Package arraymod expands array modifiers: it evaluates a modifier's graph
// once per iteration and collects the property overrides each iteration
// produces.
package arraymod

import (
	"context"
	"math"

	"github.com/vk/framegrid/internal/ctxlog"
	"github.com/vk/framegrid/internal/document"
	"github.com/vk/framegrid/internal/evalerr"
	"github.com/vk/framegrid/internal/nodegraph"
	"github.com/vk/framegrid/internal/value"
)

// Modifier is one ArrayModifier group of a layer.
type Modifier struct {
	GroupID         string
	CountPropertyID string
	// Graph drives the per-iteration overrides. It is nil for a modifier
	// without a graph.
	Graph *document.Graph
}

// Overrides maps property id to iteration index to the value that iteration
// assigned.
type Overrides map[string]map[int]value.Value

// Set records v for property id at iteration i.
func (o Overrides) Set(id string, i int, v value.Value) {
	byIter, ok := o[id]
	if !ok {
		byIter = make(map[int]value.Value)
		o[id] = byIter
	}
	byIter[i] = v
}

// Lookup returns the override of property id at iteration i.
func (o Overrides) Lookup(id string, i int) (value.Value, bool) {
	v, ok := o[id][i]
	return v, ok
}

// Expansion is the result of expanding one modifier.
type Expansion struct {
	Count     int
	Overrides Overrides
}

// Options controls an expansion.
type Options struct {
	// Recursive enables replication. Without it every modifier expands to a
	// single iteration.
	Recursive bool
}

// LayerModifiers returns the ArrayModifier groups under the layer's property
// tree in display order.
func LayerModifiers(snap *document.Snapshot, layerID string) ([]Modifier, error) {
	layer, err := snap.Layer(layerID)
	if err != nil {
		return nil, err
	}

	var mods []Modifier
	var crawl func(id string) error
	crawl = func(id string) error {
		g, ok := snap.Groups[id]
		if !ok {
			return nil
		}
		if g.Name != document.GroupArrayModifier {
			for _, child := range g.Properties {
				if err := crawl(child); err != nil {
					return err
				}
			}
			return nil
		}

		mod := Modifier{GroupID: g.ID}
		for _, p := range snap.GroupMembers(g.ID) {
			if p.Name == document.ArrayModifierCount {
				mod.CountPropertyID = p.ID
			}
		}
		if mod.CountPropertyID == "" {
			e := evalerr.Structuralf("array modifier group %q has no %s property", g.ID, document.ArrayModifierCount)
			e.LayerID = layerID
			return e
		}
		if g.GraphID != "" {
			graph, err := snap.Graph(g.GraphID)
			if err != nil {
				return evalerr.Locate(err, layer.CompositionID, layerID)
			}
			mod.Graph = graph
		}
		mods = append(mods, mod)
		return nil
	}

	for _, id := range layer.Properties {
		if err := crawl(id); err != nil {
			return nil, err
		}
	}
	return mods, nil
}

// MaxCount bounds the iterations of one array modifier.
const MaxCount = 10000

// Count turns a resolved count value into an iteration count: the floor of
// the value within [1, MaxCount] in recursive mode, and 1 otherwise.
// Non-finite counts read as 1.
func Count(v value.Value, recursive bool) int {
	if !recursive {
		return 1
	}
	n := math.Floor(v.Float())
	if math.IsNaN(n) || math.IsInf(n, 0) || n < 1 {
		return 1
	}
	if n > MaxCount {
		return MaxCount
	}
	return int(n)
}

// Expand evaluates the modifier graph once per iteration. Each iteration sees
// its index through array_modifier_index nodes, starts with empty output
// storage and shares base's expression cache. The count is read from base's
// resolved property values.
func Expand(ctx context.Context, mod Modifier, base *nodegraph.Context, opts Options) (*Expansion, error) {
	logger := ctxlog.FromContext(ctx)

	countValue, ok := base.Properties[mod.CountPropertyID]
	if !ok && base.Snapshot != nil {
		if p, found := base.Snapshot.Properties[mod.CountPropertyID]; found {
			countValue = p.Value
		}
	}

	exp := &Expansion{
		Count:     Count(countValue, opts.Recursive),
		Overrides: make(Overrides),
	}
	if mod.Graph == nil {
		return exp, nil
	}

	logger.Debug("Expanding array modifier.", "group", mod.GroupID, "count", exp.Count)
	for i := 0; i < exp.Count; i++ {
		ectx := base.ForIteration(i)
		err := nodegraph.ApplyOutputs(ctx, mod.Graph, ectx, func(id string, v value.Value) {
			exp.Overrides.Set(id, i, v)
		})
		if err != nil {
			return nil, err
		}
	}
	return exp, nil
}
