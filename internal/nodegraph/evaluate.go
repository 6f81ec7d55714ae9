package nodegraph

import (
	"context"
	"errors"
	"sort"

	"github.com/vk/framegrid/internal/ctxlog"
	"github.com/vk/framegrid/internal/document"
	"github.com/vk/framegrid/internal/evalerr"
	"github.com/vk/framegrid/internal/value"
)

// ComputeOutputs evaluates the requested nodes and everything they depend
// on, returning the outputs of the requested nodes keyed by node id. Nodes
// already computed in ectx's output storage are not computed again.
func ComputeOutputs(g *document.Graph, nodeIDs []string, ectx *Context) (map[string][]value.Value, error) {
	order, err := Order(g, nodeIDs)
	if err != nil {
		return nil, err
	}

	storage := ectx.storage()
	reg := ectx.registry()
	for _, id := range order {
		if _, done := storage[id]; done {
			continue
		}
		n := g.Nodes[id]

		inputs, err := resolveInputs(g, n, storage)
		if err != nil {
			return nil, err
		}

		kind, ok := reg.Lookup(n.Kind)
		if !ok {
			return nil, &evalerr.Error{
				Kind:    evalerr.ErrUnknownNodeKind,
				GraphID: g.ID,
				NodeID:  n.ID,
				Msg:     n.Kind,
			}
		}

		out, err := kind.Compute(inputs, n, ectx)
		if err != nil {
			return nil, locateNode(err, g.ID, n.ID)
		}
		storage[id] = out
	}

	result := make(map[string][]value.Value, len(nodeIDs))
	for _, id := range nodeIDs {
		result[id] = storage[id]
	}
	return result, nil
}

// resolveInputs reads each input's literal value or the output it points at.
func resolveInputs(g *document.Graph, n *document.Node, storage map[string][]value.Value) ([]value.Value, error) {
	inputs := make([]value.Value, len(n.Inputs))
	for i, in := range n.Inputs {
		if in.Pointer == nil {
			inputs[i] = in.Value
			continue
		}
		out := storage[in.Pointer.NodeID]
		idx := in.Pointer.OutputIndex
		if idx < 0 || idx >= len(out) {
			return nil, evalerr.MissingPointer(g.ID, n.ID,
				"input %q points at output %d of node %q which has %d outputs",
				in.Name, idx, in.Pointer.NodeID, len(out))
		}
		inputs[i] = out[idx]
	}
	return inputs, nil
}

func locateNode(err error, graphID, nodeID string) error {
	var e *evalerr.Error
	if !errors.As(err, &e) {
		return &evalerr.Error{Kind: evalerr.ErrStructural, GraphID: graphID, NodeID: nodeID, Err: err}
	}
	if e.GraphID == "" {
		e.GraphID = graphID
	}
	if e.NodeID == "" {
		e.NodeID = nodeID
	}
	return e
}

// OutputNodes returns the ids of the graph's property_output nodes in sorted
// order.
func OutputNodes(g *document.Graph) []string {
	var ids []string
	for id, n := range g.Nodes {
		if n.Kind == KindPropertyOutput {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// ApplyOutputs evaluates every property_output node of g and reports each
// assignment it makes through set. Input slot i of an output node assigns
// the i-th target property only when the slot has a pointer. An output node
// whose selection does not resolve is skipped.
func ApplyOutputs(ctx context.Context, g *document.Graph, ectx *Context, set func(propertyID string, v value.Value)) error {
	logger := ctxlog.FromContext(ctx)

	ids := OutputNodes(g)
	if len(ids) == 0 {
		return nil
	}
	outputs, err := ComputeOutputs(g, ids, ectx)
	if err != nil {
		return err
	}

	for _, id := range ids {
		n := g.Nodes[id]
		targets, ok := ectx.resolveTargets(n.PropertyID)
		if !ok {
			logger.Debug("Skipping property output with unresolved selection.", "graph", g.ID, "node", id, "property", n.PropertyID)
			continue
		}
		values := outputs[id]
		for i, in := range n.Inputs {
			if in.Pointer == nil || i >= len(targets) || i >= len(values) {
				continue
			}
			set(targets[i].ID, values[i])
		}
	}
	return nil
}
