package template

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/cel-go/cel"
)

// Regular expression to match {{expression}} patterns.
var celExprReg = regexp.MustCompile(`\{\{([^}]+)\}\}`)

// Template is a text with {{CEL expression}} placeholders compiled once
// and executed many times against stores of the same shape.
type Template struct {
	text     string
	programs map[string]cel.Program
}

// Expand expands template expressions in the format {{CEL expression}} with values from the store.
func Expand(template string, store map[string]any) (string, error) {
	t, err := Compile(template, store)
	if err != nil {
		return "", err
	}
	return t.Execute(store)
}

// Compile compiles every expression in template. The variables available to the
// expressions, and their types, are taken from store.
func Compile(template string, store map[string]any) (*Template, error) {
	t := &Template{
		text:     template,
		programs: map[string]cel.Program{},
	}
	matches := celExprReg.FindAllStringSubmatch(template, -1)
	if len(matches) == 0 {
		return t, nil
	}
	env, err := createCELEnv(store)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}
	for _, m := range matches {
		expr := strings.TrimSpace(m[1])
		if _, ok := t.programs[expr]; ok {
			continue
		}
		ast, issues := env.Compile(expr)
		if issues != nil && issues.Err() != nil {
			return nil, fmt.Errorf("template compilation error for '{{%s}}': %w", expr, issues.Err())
		}
		prg, err := env.Program(ast)
		if err != nil {
			return nil, fmt.Errorf("template program creation error for '{{%s}}': %w", expr, err)
		}
		t.programs[expr] = prg
	}
	return t, nil
}

// Execute evaluates the compiled expressions against store.
func (t *Template) Execute(store map[string]any) (string, error) {
	if len(t.programs) == 0 {
		return t.text, nil
	}
	var expandErr error
	result := celExprReg.ReplaceAllStringFunc(t.text, func(match string) string {
		expr := strings.TrimSpace(match[2 : len(match)-2])
		out, _, err := t.programs[expr].Eval(store)
		if err != nil {
			expandErr = fmt.Errorf("template evaluation error for '{{%s}}': %w", expr, err)
			return match
		}
		return fmt.Sprintf("%v", out.Value())
	})
	if expandErr != nil {
		return "", expandErr
	}
	return result, nil
}

// createCELEnv creates a CEL environment with all variables from the store.
func createCELEnv(store map[string]any) (*cel.Env, error) {
	var options []cel.EnvOption
	for key, value := range store {
		options = append(options, cel.Variable(key, inferCELType(value)))
	}
	return cel.NewEnv(options...)
}

// inferCELType infers the CEL type from a Go value.
func inferCELType(value any) *cel.Type {
	switch value.(type) {
	case string:
		return cel.StringType
	case int, int32, int64:
		return cel.IntType
	case float32, float64:
		return cel.DoubleType
	case bool:
		return cel.BoolType
	case map[string]any:
		return cel.MapType(cel.StringType, cel.AnyType)
	case map[string]string:
		return cel.MapType(cel.StringType, cel.StringType)
	case []any:
		return cel.ListType(cel.AnyType)
	case []string:
		return cel.ListType(cel.StringType)
	default:
		return cel.AnyType
	}
}
