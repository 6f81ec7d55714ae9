package nodeid

import "fmt"

// String serializes the Address into its canonical form. Output 0 is written
// explicitly so the round trip is stable.
func (a *Address) String() string {
	if a == nil {
		return ""
	}
	return fmt.Sprintf("%s[%d]", a.Node, a.Output)
}

// Equal checks whether two addresses point at the same output.
func (a *Address) Equal(other *Address) bool {
	if a == nil || other == nil {
		return a == other
	}
	return *a == *other
}
