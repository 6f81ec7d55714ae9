package expr

import (
	"fmt"
	"math"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

var functions = map[string]function.Function{
	"abs":    stdlib.AbsoluteFunc,
	"ceil":   stdlib.CeilFunc,
	"floor":  stdlib.FloorFunc,
	"int":    stdlib.IntFunc,
	"log":    stdlib.LogFunc,
	"max":    stdlib.MaxFunc,
	"min":    stdlib.MinFunc,
	"mod":    stdlib.ModuloFunc,
	"pow":    stdlib.PowFunc,
	"signum": stdlib.SignumFunc,

	"sin":   unaryFunc(math.Sin),
	"cos":   unaryFunc(math.Cos),
	"tan":   unaryFunc(math.Tan),
	"sqrt":  unaryFunc(math.Sqrt),
	"deg":   unaryFunc(func(r float64) float64 { return r * 180 / math.Pi }),
	"rad":   unaryFunc(func(d float64) float64 { return d * math.Pi / 180 }),
	"atan2": binaryFunc(math.Atan2),
	"lerp": numberFunc([]string{"from", "to", "t"}, func(a []float64) float64 {
		return a[0] + (a[1]-a[0])*a[2]
	}),
	"clamp": numberFunc([]string{"num", "min", "max"}, func(a []float64) float64 {
		return math.Max(a[1], math.Min(a[2], a[0]))
	}),
}

// Functions returns the function table available to expressions. The map is
// shared; callers must not modify it.
func Functions() map[string]function.Function {
	return functions
}

func unaryFunc(fn func(float64) float64) function.Function {
	return numberFunc([]string{"num"}, func(a []float64) float64 { return fn(a[0]) })
}

func binaryFunc(fn func(float64, float64) float64) function.Function {
	return numberFunc([]string{"a", "b"}, func(a []float64) float64 { return fn(a[0], a[1]) })
}

// numberFunc builds a cty function over float64 arguments.
func numberFunc(params []string, fn func([]float64) float64) function.Function {
	def := &function.Spec{
		Type: function.StaticReturnType(cty.Number),
		Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
			in := make([]float64, len(args))
			for i, arg := range args {
				in[i], _ = arg.AsBigFloat().Float64()
			}
			out := fn(in)
			if math.IsNaN(out) || math.IsInf(out, 0) {
				return cty.UnknownVal(cty.Number), fmt.Errorf("result is not a finite number")
			}
			return cty.NumberFloatVal(out), nil
		},
	}
	for _, name := range params {
		def.Params = append(def.Params, function.Parameter{Name: name, Type: cty.Number})
	}
	return function.New(def)
}
