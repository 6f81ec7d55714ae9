package nodeid

// Address names one output slot of a node.
type Address struct {
	Node   string
	Output int
}

// New creates an address for the given node output.
func New(node string, output int) *Address {
	return &Address{Node: node, Output: output}
}
