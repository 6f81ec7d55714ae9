// This file contains the logic for parsing HCL type keywords (e.g., `number`,
// `vec2`) into value types, and for decoding literal expressions of those types.

package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/vk/framegrid/internal/ctxlog"
	"github.com/vk/framegrid/internal/value"
	"github.com/zclconf/go-cty/cty"
)

// typeExprToValueType converts an HCL type keyword into its value.Type.
func typeExprToValueType(ctx context.Context, expr hcl.Expression) (value.Type, error) {
	logger := ctxlog.FromContext(ctx)

	if expr == nil {
		logger.Debug("Type expression is nil, defaulting to any.")
		return value.TypeAny, nil
	}

	switch v := expr.(type) {
	case *hclsyntax.ScopeTraversalExpr:
		if len(v.Traversal) != 1 {
			return value.TypeAny, fmt.Errorf("invalid type keyword: traversal path is not a single identifier")
		}
		return value.ParseType(v.Traversal.RootName())

	case *hclsyntax.TemplateExpr:
		// Quoted keywords ("number") are accepted as well.
		val, diags := v.Value(nil)
		if diags.HasErrors() {
			return value.TypeAny, fmt.Errorf("invalid type keyword: %w", diags)
		}
		if val.IsNull() || !val.Type().Equals(cty.String) {
			return value.TypeAny, fmt.Errorf("invalid type keyword")
		}
		return value.ParseType(val.AsString())

	default:
		return value.TypeAny, fmt.Errorf("unsupported expression for type definition: %T", v)
	}
}

// isNull reports whether an optional expression was omitted or is null.
func isNull(expr hcl.Expression) bool {
	if expr == nil {
		return true
	}
	val, diags := expr.Value(nil)
	return !diags.HasErrors() && val.IsNull()
}

// literal evaluates a constant expression as a value of type t. An omitted
// expression yields the zero value of t.
func literal(expr hcl.Expression, t value.Type) (value.Value, error) {
	if isNull(expr) {
		return value.Zero(t), nil
	}
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return value.Value{}, fmt.Errorf("invalid literal: %w", diags)
	}
	return value.FromCty(val, t)
}
