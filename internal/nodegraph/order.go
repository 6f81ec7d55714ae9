package nodegraph

import (
	"github.com/vk/framegrid/internal/document"
	"github.com/vk/framegrid/internal/evalerr"
)

// Order returns the nodes the roots depend on, roots included, in an order
// where every node follows all nodes its inputs point at.
//
// It is a depth-first search with three node states: unvisited, visiting
// (on the current path) and visited. Reaching a visiting node again is a
// cycle.
func Order(g *document.Graph, roots []string) ([]string, error) {
	visited := make(map[string]bool)
	visiting := make(map[string]bool)
	var path []string
	var order []string

	var visit func(id, from string) error
	visit = func(id, from string) error {
		if visited[id] {
			return nil
		}
		if visiting[id] {
			start := 0
			for i, p := range path {
				if p == id {
					start = i
					break
				}
			}
			cycle := append(append([]string(nil), path[start:]...), id)
			return evalerr.Cycle(g.ID, cycle)
		}

		n, ok := g.Nodes[id]
		if !ok {
			if from == "" {
				return evalerr.MissingPointer(g.ID, id, "node does not exist")
			}
			return evalerr.MissingPointer(g.ID, from, "input points at missing node %q", id)
		}

		visiting[id] = true
		path = append(path, id)
		for _, in := range n.Inputs {
			if in.Pointer == nil {
				continue
			}
			if err := visit(in.Pointer.NodeID, id); err != nil {
				return err
			}
		}
		path = path[:len(path)-1]
		delete(visiting, id)

		visited[id] = true
		order = append(order, id)
		return nil
	}

	for _, id := range roots {
		if err := visit(id, ""); err != nil {
			return nil, err
		}
	}
	return order, nil
}
