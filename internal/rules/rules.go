package rules

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"
)

// Evaluator wraps a CEL environment for village policy formulas. Maneuver
// modifiers and item-affinity conditions live in world data as CEL
// expressions, so game balance changes never touch controller code.
type Evaluator struct {
	env *cel.Env

	mu       sync.Mutex
	programs map[string]cel.Program
}

// NewEvaluator builds the CEL environment with the variables every policy
// formula may reference.
func NewEvaluator() (*Evaluator, error) {
	env, err := cel.NewEnv(
		cel.Variable("maneuver", cel.StringType),
		cel.Variable("environment", cel.StringType),
		cel.Variable("village", cel.StringType),
		cel.Variable("species", cel.StringType),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}
	return &Evaluator{env: env, programs: make(map[string]cel.Program)}, nil
}

// Matches compiles (with caching) and evaluates a boolean policy formula
// against the given variables.
func (e *Evaluator) Matches(formula string, vars map[string]any) (bool, error) {
	prg, err := e.program(formula)
	if err != nil {
		return false, err
	}

	out, _, err := prg.Eval(vars)
	if err != nil {
		return false, fmt.Errorf("policy formula %q evaluation failed: %w", formula, err)
	}

	matched, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("policy formula %q did not yield a boolean", formula)
	}
	return matched, nil
}

func (e *Evaluator) program(formula string) (cel.Program, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if prg, ok := e.programs[formula]; ok {
		return prg, nil
	}

	ast, issues := e.env.Compile(formula)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("policy formula %q compile error: %w", formula, issues.Err())
	}
	prg, err := e.env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("policy formula %q program error: %w", formula, err)
	}

	e.programs[formula] = prg
	return prg, nil
}
