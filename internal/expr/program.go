package expr

import (
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/vk/framegrid/internal/value"
	"github.com/zclconf/go-cty/cty"
)

// Slot is a named, typed expression result.
type Slot struct {
	Name string
	Type value.Type
}

// Program is a parsed, validated expression.
type Program struct {
	Source string

	expr  hclsyntax.Expression
	refs  []string
	roots []string
	funcs []string
}

// Parse parses src and checks that every called function exists.
func Parse(src string) (*Program, error) {
	if strings.TrimSpace(src) == "" {
		return nil, fmt.Errorf("expression is empty")
	}

	expr, diags := hclsyntax.ParseExpression([]byte(src), "expression", hcl.InitialPos)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse expression: %w", diags)
	}

	p := &Program{Source: src, expr: expr}
	p.refs, p.roots, p.funcs = analyze(expr)
	for _, name := range p.funcs {
		if _, ok := functions[name]; !ok {
			return nil, fmt.Errorf("call to unknown function %q", name)
		}
	}
	return p, nil
}

// References returns the variable traversals used by the expression.
func (p *Program) References() []string { return p.refs }

// CalledFunctions returns the names of the functions the expression calls.
func (p *Program) CalledFunctions() []string { return p.funcs }

// Evaluate computes the expression with vars bound as top-level variables.
func (p *Program) Evaluate(vars map[string]cty.Value) (cty.Value, error) {
	for _, root := range p.roots {
		if _, ok := vars[root]; !ok {
			return cty.NilVal, fmt.Errorf("reference to undefined input %q", root)
		}
	}

	ctx := &hcl.EvalContext{Variables: vars, Functions: functions}
	val, diags := p.expr.Value(ctx)
	if diags.HasErrors() {
		return cty.NilVal, fmt.Errorf("failed to evaluate expression: %w", diags)
	}
	return val, nil
}

// Run binds the inputs, evaluates the expression and decodes the result into
// the declared outputs. With one output the result is that output's value;
// with several the result must be an object keyed by output name.
func (p *Program) Run(inputs map[string]value.Value, outputs []Slot) ([]value.Value, error) {
	vars := make(map[string]cty.Value, len(inputs))
	for name, v := range inputs {
		cv, err := value.ToCty(v)
		if err != nil {
			return nil, fmt.Errorf("input %q: %w", name, err)
		}
		vars[name] = cv
	}

	result, err := p.Evaluate(vars)
	if err != nil {
		return nil, err
	}

	switch len(outputs) {
	case 0:
		return nil, nil
	case 1:
		v, err := value.FromCty(result, outputs[0].Type)
		if err != nil {
			return nil, fmt.Errorf("output %q: %w", outputs[0].Name, err)
		}
		return []value.Value{v}, nil
	}

	ty := result.Type()
	if result.IsNull() || !(ty.IsObjectType() || ty.IsMapType()) {
		return nil, fmt.Errorf("expression with %d outputs must produce an object, got %s", len(outputs), ty.FriendlyName())
	}
	out := make([]value.Value, len(outputs))
	for i, slot := range outputs {
		attr, ok := attribute(result, slot.Name)
		if !ok {
			return nil, fmt.Errorf("result has no attribute for output %q", slot.Name)
		}
		v, err := value.FromCty(attr, slot.Type)
		if err != nil {
			return nil, fmt.Errorf("output %q: %w", slot.Name, err)
		}
		out[i] = v
	}
	return out, nil
}

func attribute(obj cty.Value, name string) (cty.Value, bool) {
	if !obj.IsKnown() {
		return cty.NilVal, false
	}
	if obj.Type().IsObjectType() {
		if !obj.Type().HasAttribute(name) {
			return cty.NilVal, false
		}
		return obj.GetAttr(name), true
	}
	key := cty.StringVal(name)
	if obj.HasIndex(key).True() {
		return obj.Index(key), true
	}
	return cty.NilVal, false
}
