package filter

import (
	"context"

	"github.com/s0up4200/vendctl/entity"
)

// Filter defines the basic interface for entity filters
type Filter interface {
	// Evaluate reports whether props match. Evaluation errors count as no match.
	Evaluate(props *entity.Properties) bool
}

// CompiledFilter represents a pre-compiled filter ready for evaluation
type CompiledFilter interface {
	Filter

	// Match is Evaluate with the evaluation error surfaced.
	Match(props *entity.Properties) (bool, error)

	// Expression returns the original filter expression
	Expression() string
}

// Compiler compiles filter expressions into executable filters
type Compiler interface {
	// Compile parses and compiles a filter expression
	Compile(expression string) (CompiledFilter, error)
}

// CachingCompiler provides caching for compiled filters
type CachingCompiler interface {
	Compiler

	// Clear removes all cached filters
	Clear()

	// Size returns the number of cached filters
	Size() int
}

// Evaluator evaluates filters against entity lists
type Evaluator interface {
	Evaluate(ctx context.Context, filter CompiledFilter, items []*entity.Properties) ([]*entity.Properties, error)
	EvaluateBatch(ctx context.Context, filters map[string]CompiledFilter, items []*entity.Properties) (map[string][]*entity.Properties, error)
}
