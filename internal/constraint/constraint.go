// Package constraint checks numeric inputs against CEL expressions, such as
// "value >= 0.0 && value <= 100.0". Each expression sees the submitted number
// as `value` (double) and must evaluate to a bool.
package constraint

import (
	"fmt"
	"math"
	"net/http"
	"sort"

	"github.com/google/cel-go/cel"
)

// Range returns the CEL expression for an inclusive [min, max] bound.
func Range(min, max float64) string {
	return fmt.Sprintf("value >= %s && value <= %s", celDouble(min), celDouble(max))
}

func celDouble(f float64) string {
	s := fmt.Sprintf("%g", f)
	for _, c := range s {
		if c == '.' || c == 'e' {
			return s
		}
	}
	return s + ".0"
}

// ViolationError reports a value that failed its field's constraint.
type ViolationError struct {
	Field string
	Value float64
	Expr  string
}

func (e *ViolationError) Error() string {
	return fmt.Sprintf("value %g for field %q violates constraint: %s", e.Value, e.Field, e.Expr)
}

// StatusCode maps violations to 422.
func (e *ViolationError) StatusCode() int { return http.StatusUnprocessableEntity }

type rule struct {
	expr    string
	program cel.Program
}

// Set holds one compiled rule per field.
type Set struct {
	rules map[string]rule
}

// Compile builds a Set from field -> CEL expression.
func Compile(exprs map[string]string) (*Set, error) {
	env, err := cel.NewEnv(cel.Variable("value", cel.DoubleType))
	if err != nil {
		return nil, err
	}
	s := &Set{rules: make(map[string]rule, len(exprs))}
	for field, expr := range exprs {
		ast, iss := env.Compile(expr)
		if iss.Err() != nil {
			return nil, fmt.Errorf("field %q: %w", field, iss.Err())
		}
		if !ast.OutputType().IsExactType(cel.BoolType) {
			return nil, fmt.Errorf("field %q: expression must return bool, got %s", field, ast.OutputType())
		}
		prg, err := env.Program(ast)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", field, err)
		}
		s.rules[field] = rule{expr: expr, program: prg}
	}
	return s, nil
}

// Fields returns the constrained field names, sorted.
func (s *Set) Fields() []string {
	out := make([]string, 0, len(s.rules))
	for f := range s.rules {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Expr returns the expression for field.
func (s *Set) Expr(field string) (string, bool) {
	r, ok := s.rules[field]
	return r.expr, ok
}

// Check evaluates field's rule against v. Fields without a rule only need to
// be finite.
func (s *Set) Check(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &ViolationError{Field: field, Value: v, Expr: "finite"}
	}
	if s == nil {
		return nil
	}
	r, ok := s.rules[field]
	if !ok {
		return nil
	}
	out, _, err := r.program.Eval(map[string]any{"value": v})
	if err != nil {
		return fmt.Errorf("evaluate constraint for %q: %w", field, err)
	}
	if pass, ok := out.Value().(bool); !ok || !pass {
		return &ViolationError{Field: field, Value: v, Expr: r.expr}
	}
	return nil
}
