// Package evalerr defines the error taxonomy of an evaluation call. Every
// error aborts the call that produced it; callers match on the sentinel kinds
// with errors.Is and read the document location from *Error.
package evalerr

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrStructural marks a document integrity violation, e.g. a layer
	// without its Transform group or a reference to a missing entity.
	ErrStructural = errors.New("structural violation")
	// ErrCyclicGraph marks a cycle among node input pointers.
	ErrCyclicGraph = errors.New("cyclic node graph")
	// ErrMissingPointer marks an input pointer to a missing node or output.
	ErrMissingPointer = errors.New("missing pointer target")
	// ErrUnknownNodeKind marks a node whose kind tag is not registered.
	ErrUnknownNodeKind = errors.New("unknown node kind")
	// ErrExpression marks a failure to parse or evaluate an expression node.
	ErrExpression = errors.New("expression error")
)

// Error locates an evaluation failure in the document.
type Error struct {
	Kind          error
	CompositionID string
	LayerID       string
	GraphID       string
	NodeID        string
	Msg           string
	// Err is the underlying cause, if any.
	Err error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(e.Kind.Error())

	var loc []string
	for _, part := range []struct{ k, v string }{
		{"composition", e.CompositionID},
		{"layer", e.LayerID},
		{"graph", e.GraphID},
		{"node", e.NodeID},
	} {
		if part.v != "" {
			loc = append(loc, fmt.Sprintf("%s=%q", part.k, part.v))
		}
	}
	if len(loc) > 0 {
		sb.WriteString(" [")
		sb.WriteString(strings.Join(loc, " "))
		sb.WriteString("]")
	}
	if e.Msg != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Msg)
	}
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	return sb.String()
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Structuralf builds an ErrStructural error.
func Structuralf(format string, args ...any) *Error {
	return &Error{Kind: ErrStructural, Msg: fmt.Sprintf(format, args...)}
}

// Cycle builds an ErrCyclicGraph error describing the node path.
func Cycle(graphID string, path []string) *Error {
	return &Error{
		Kind:    ErrCyclicGraph,
		GraphID: graphID,
		NodeID:  path[len(path)-1],
		Msg:     "cycle: " + strings.Join(path, " -> "),
	}
}

// MissingPointer builds an ErrMissingPointer error for node nodeID.
func MissingPointer(graphID, nodeID, format string, args ...any) *Error {
	return &Error{
		Kind:    ErrMissingPointer,
		GraphID: graphID,
		NodeID:  nodeID,
		Msg:     fmt.Sprintf(format, args...),
	}
}

// Locate fills in location fields that are still empty. Errors that are not
// *Error are wrapped as structural violations. A nil err stays nil.
func Locate(err error, compositionID, layerID string) error {
	if err == nil {
		return nil
	}
	var e *Error
	if !errors.As(err, &e) {
		return &Error{Kind: ErrStructural, CompositionID: compositionID, LayerID: layerID, Err: err}
	}
	if e.CompositionID == "" {
		e.CompositionID = compositionID
	}
	if e.LayerID == "" {
		e.LayerID = layerID
	}
	return e
}
