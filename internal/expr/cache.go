package expr

import (
	"strconv"
	"strings"
	"sync"

	"github.com/vk/framegrid/internal/value"
)

// Cache memoizes parsed programs by node id and expression results by node id
// plus input values. A cache is owned by one evaluation scope.
type Cache struct {
	mu       sync.Mutex
	programs map[string]*Program
	results  map[string][]value.Value

	hits   int
	misses int
}

// NewCache creates an empty expression cache.
func NewCache() *Cache {
	return &Cache{
		programs: make(map[string]*Program),
		results:  make(map[string][]value.Value),
	}
}

// Program returns the parsed program of node nodeID, parsing src on first
// use. A node whose source changed is parsed again.
func (c *Cache) Program(nodeID, src string) (*Program, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if p, ok := c.programs[nodeID]; ok && p.Source == src {
		return p, nil
	}
	p, err := Parse(src)
	if err != nil {
		return nil, err
	}
	c.programs[nodeID] = p
	return p, nil
}

// Result returns a copy of a memoized result.
func (c *Cache) Result(key string) ([]value.Value, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	out, ok := c.results[key]
	if !ok {
		c.misses++
		return nil, false
	}
	c.hits++
	return append([]value.Value(nil), out...), true
}

// Store memoizes a result under key.
func (c *Cache) Store(key string, out []value.Value) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results[key] = append([]value.Value(nil), out...)
}

// Stats reports result lookups that hit and missed.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

// ResultKey identifies the result of node nodeID for the given input values.
// The node id is quoted so no id can run into the input keys.
func ResultKey(nodeID string, inputs []value.Value) string {
	var sb strings.Builder
	sb.WriteString(strconv.Quote(nodeID))
	for _, v := range inputs {
		sb.WriteByte('|')
		sb.WriteString(v.Key())
	}
	return sb.String()
}
