package document

import (
	"sort"

	"github.com/vk/framegrid/internal/evalerr"
)

// Composition looks up a composition, reporting a structural violation if it
// does not exist.
func (s *Snapshot) Composition(id string) (*Composition, error) {
	c, ok := s.Compositions[id]
	if !ok {
		e := evalerr.Structuralf("composition not found")
		e.CompositionID = id
		return nil, e
	}
	return c, nil
}

// Layer looks up a layer, reporting a structural violation if it does not
// exist.
func (s *Snapshot) Layer(id string) (*Layer, error) {
	l, ok := s.Layers[id]
	if !ok {
		e := evalerr.Structuralf("layer not found")
		e.LayerID = id
		return nil, e
	}
	return l, nil
}

// Graph looks up a node graph, reporting a structural violation if it does
// not exist.
func (s *Snapshot) Graph(id string) (*Graph, error) {
	g, ok := s.Graphs[id]
	if !ok {
		e := evalerr.Structuralf("graph not found")
		e.GraphID = id
		return nil, e
	}
	return g, nil
}

// IsGroup reports whether id names a property group.
func (s *Snapshot) IsGroup(id string) bool {
	_, ok := s.Groups[id]
	return ok
}

// LayerProperties flattens the layer's property tree depth-first, in display
// order, returning properties only.
func (s *Snapshot) LayerProperties(layerID string) ([]*Property, error) {
	layer, err := s.Layer(layerID)
	if err != nil {
		return nil, err
	}

	var out []*Property
	var crawl func(id string) error
	crawl = func(id string) error {
		if g, ok := s.Groups[id]; ok {
			for _, child := range g.Properties {
				if err := crawl(child); err != nil {
					return err
				}
			}
			return nil
		}
		p, ok := s.Properties[id]
		if !ok {
			e := evalerr.Structuralf("property %q not found", id)
			e.LayerID = layerID
			return e
		}
		out = append(out, p)
		return nil
	}

	for _, id := range layer.Properties {
		if err := crawl(id); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// CompositionProperties returns the properties of every layer of the
// composition, layer by layer.
func (s *Snapshot) CompositionProperties(compositionID string) ([]*Property, error) {
	comp, err := s.Composition(compositionID)
	if err != nil {
		return nil, err
	}
	var out []*Property
	for _, layerID := range comp.Layers {
		props, err := s.LayerProperties(layerID)
		if err != nil {
			return nil, evalerr.Locate(err, compositionID, layerID)
		}
		out = append(out, props...)
	}
	return out, nil
}

// TransformProperties returns the properties of the layer's Transform group
// keyed by name. A layer without a Transform group is a structural violation.
func (s *Snapshot) TransformProperties(layerID string) (map[PropertyName]*Property, error) {
	layer, err := s.Layer(layerID)
	if err != nil {
		return nil, err
	}

	for _, id := range layer.Properties {
		g, ok := s.Groups[id]
		if !ok || g.Name != GroupTransform {
			continue
		}
		out := make(map[PropertyName]*Property, len(g.Properties))
		for _, p := range s.GroupMembers(g.ID) {
			out[p.Name] = p
		}
		return out, nil
	}

	e := evalerr.Structuralf("layer does not contain Transform property group")
	e.LayerID = layerID
	return nil, e
}

// GroupMembers returns the direct child properties of a group, skipping
// nested groups and dangling ids.
func (s *Snapshot) GroupMembers(groupID string) []*Property {
	g, ok := s.Groups[groupID]
	if !ok {
		return nil
	}
	out := make([]*Property, 0, len(g.Properties))
	for _, id := range g.Properties {
		if p, ok := s.Properties[id]; ok {
			out = append(out, p)
		}
	}
	return out
}

// ResolveTargets resolves the selection of a property node: a property
// resolves to itself, a group to its direct child properties. ok is false when
// nothing is selected or the selection no longer exists.
func (s *Snapshot) ResolveTargets(id string) (targets []*Property, ok bool) {
	if id == "" {
		return nil, false
	}
	if p, found := s.Properties[id]; found {
		return []*Property{p}, true
	}
	if _, found := s.Groups[id]; found {
		return s.GroupMembers(id), true
	}
	return nil, false
}

// NodeIDs returns the graph's node ids in sorted order.
func (g *Graph) NodeIDs() []string {
	ids := make([]string, 0, len(g.Nodes))
	for id := range g.Nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
