package nodeid

import (
	"fmt"
	"regexp"
	"strconv"
)

// addressRegex matches `name` or `name[1]`.
var addressRegex = regexp.MustCompile(`^([a-zA-Z0-9_-]+)(?:\[(\d+)\])?$`)

func isValidNodeName(name string) bool {
	return name != "-" && name != "_"
}

// Parse creates an Address from its canonical string representation.
func Parse(raw string) (*Address, error) {
	if raw == "" {
		return nil, fmt.Errorf("pointer cannot be empty")
	}

	matches := addressRegex.FindStringSubmatch(raw)
	if matches == nil {
		return nil, fmt.Errorf("invalid pointer format: %q", raw)
	}

	name := matches[1]
	if !isValidNodeName(name) {
		return nil, fmt.Errorf("invalid node name: %q", name)
	}

	addr := New(name, 0)
	if matches[2] != "" {
		index, err := strconv.Atoi(matches[2])
		if err != nil {
			// Only reachable on overflow; the regex guarantees digits.
			return nil, fmt.Errorf("invalid output index in %q: %w", raw, err)
		}
		addr.Output = index
	}
	return addr, nil
}
