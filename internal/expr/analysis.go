package expr

import (
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/hashicorp/hcl/v2/hclwrite"
)

// TraversalKey generates a stable string for an hcl.Traversal, e.g. `pos.x`.
func TraversalKey(t hcl.Traversal) string {
	return string(hclwrite.TokensForTraversal(t).Bytes())
}

// analyze returns the sorted, unique variable traversals and called function
// names of an expression.
func analyze(expr hcl.Expression) (refs []string, roots []string, funcs []string) {
	traversals := make(map[string]struct{})
	rootNames := make(map[string]struct{})
	for _, traversal := range expr.Variables() {
		traversals[TraversalKey(traversal)] = struct{}{}
		rootNames[traversal.RootName()] = struct{}{}
	}

	functions := make(map[string]struct{})
	if syntaxExpr, ok := expr.(hclsyntax.Expression); ok {
		hclsyntax.VisitAll(syntaxExpr, func(n hclsyntax.Node) hcl.Diagnostics {
			if call, ok := n.(*hclsyntax.FunctionCallExpr); ok {
				functions[call.Name] = struct{}{}
			}
			return nil
		})
	}

	return sortedKeys(traversals), sortedKeys(rootNames), sortedKeys(functions)
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
