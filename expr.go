package marquee

import (
	"fmt"

	"github.com/google/cel-go/cel"
	"github.com/k1LoW/errors"
)

// Expr returns every pixel for which the CEL expression evaluates to true.
// The expression sees the variables pixel, row and column.
func Expr(expression string) (_ []Pixel, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	env, err := cel.NewEnv(
		cel.Variable("pixel", cel.IntType),
		cel.Variable("row", cel.IntType),
		cel.Variable("column", cel.IntType),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}
	ast, issues := env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("failed to compile expression %q: %w", expression, issues.Err())
	}
	if !ast.OutputType().IsExactType(cel.BoolType) {
		return nil, fmt.Errorf("expression %q must evaluate to bool, got %s", expression, ast.OutputType())
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("failed to create program for %q: %w", expression, err)
	}
	var ps []Pixel
	for i := range Size {
		p := Pixel(i)
		out, _, err := prg.Eval(map[string]any{
			"pixel":  i,
			"row":    p.Row(),
			"column": p.Column(),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to evaluate %q at pixel %d: %w", expression, i, err)
		}
		if lit, ok := out.Value().(bool); ok && lit {
			ps = append(ps, p)
		}
	}
	return ps, nil
}
