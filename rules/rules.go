package rules

import (
	"fmt"

	"github.com/google/cel-go/cel"

	"github.com/triage-run/faultline/taxonomy"
)

// Rule is a single custom evidence source.
type Rule struct {
	// Name identifies the rule in configuration and error messages.
	Name string `yaml:"name"`

	// Category receives the weight when the expression matches.
	Category taxonomy.Category `yaml:"category"`

	// Weight is the evidence added on a match, in (0,1].
	Weight float64 `yaml:"weight"`

	// Expression is a CEL predicate over the variables message (string,
	// lowercased), stack (string, lowercased) and context (map).
	Expression string `yaml:"expression"`
}

type compiledRule struct {
	category taxonomy.Category
	weight   float64
	program  cel.Program
}

// Set is a compiled collection of rules, safe for concurrent evaluation.
type Set struct {
	rules []compiledRule
}

// Compile validates and compiles the given rules. It fails fast on an
// unknown category, an out-of-range weight, a malformed expression or a
// non-boolean result type, so misconfiguration surfaces at engine
// construction rather than on the classification path.
func Compile(rules ...Rule) (*Set, error) {
	env, err := cel.NewEnv(
		cel.Variable("message", cel.StringType),
		cel.Variable("stack", cel.StringType),
		cel.Variable("context", cel.MapType(cel.StringType, cel.DynType)),
	)
	if err != nil {
		return nil, fmt.Errorf("create rule environment: %w", err)
	}

	set := &Set{rules: make([]compiledRule, 0, len(rules))}
	for _, r := range rules {
		if !r.Category.IsValid() {
			return nil, fmt.Errorf("rule %q: invalid category %q", r.Name, r.Category)
		}
		if r.Weight <= 0 || r.Weight > 1 {
			return nil, fmt.Errorf("rule %q: weight %v outside (0,1]", r.Name, r.Weight)
		}

		ast, iss := env.Compile(r.Expression)
		if iss != nil && iss.Err() != nil {
			return nil, fmt.Errorf("rule %q: compile expression: %w", r.Name, iss.Err())
		}
		if !ast.OutputType().IsExactType(cel.BoolType) {
			return nil, fmt.Errorf("rule %q: expression must yield a boolean, got %s", r.Name, ast.OutputType())
		}

		prg, err := env.Program(ast)
		if err != nil {
			return nil, fmt.Errorf("rule %q: build program: %w", r.Name, err)
		}

		set.rules = append(set.rules, compiledRule{
			category: r.Category,
			weight:   r.Weight,
			program:  prg,
		})
	}
	return set, nil
}

// Len returns the number of compiled rules.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.rules)
}

// Scores evaluates every rule and returns the per-category evidence it
// contributes. Message and stack must already be lowercased. Rules that
// error or yield a non-boolean are skipped.
func (s *Set) Scores(message, stack string, context map[string]any) map[taxonomy.Category]float64 {
	if s == nil || len(s.rules) == 0 {
		return nil
	}
	if context == nil {
		context = map[string]any{}
	}

	activation := map[string]any{
		"message": message,
		"stack":   stack,
		"context": context,
	}

	var scores map[taxonomy.Category]float64
	for _, r := range s.rules {
		out, _, err := r.program.Eval(activation)
		if err != nil {
			continue
		}
		matched, ok := out.Value().(bool)
		if !ok || !matched {
			continue
		}
		if scores == nil {
			scores = make(map[taxonomy.Category]float64)
		}
		scores[r.category] += r.weight
	}
	return scores
}
