package filter

import (
	"maps"
	"strconv"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/s0up4200/vendctl/entity"
)

// timestampLayouts are the formats date helpers accept as strings.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// exprFilter implements CompiledFilter using the expr language
type exprFilter struct {
	expression string
	program    *vm.Program
	helpers    map[string]any
}

// ExprCompilerOption configures an expr compiler
type ExprCompilerOption func(*exprCompiler)

// WithCache enables filter caching with the specified size
func WithCache(size int) ExprCompilerOption {
	return func(c *exprCompiler) {
		if size > 0 {
			c.cache = newLRUCache(size)
		}
	}
}

// WithCustomFunctions adds custom helper functions
func WithCustomFunctions(funcs map[string]any) ExprCompilerOption {
	return func(c *exprCompiler) {
		maps.Copy(c.helperFuncs, funcs)
	}
}

// NewExprCompiler creates a new expr-based filter compiler
func NewExprCompiler(opts ...ExprCompilerOption) CachingCompiler {
	c := &exprCompiler{
		helperFuncs: createHelperFunctions(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// CompileFilter compiles expression with the default helpers and no cache.
func CompileFilter(expression string) (CompiledFilter, error) {
	return NewExprCompiler().Compile(expression)
}

// exprCompiler implements Compiler for expr-based filters
type exprCompiler struct {
	helperFuncs map[string]any
	cache       *lruCache
}

// Compile compiles an expression into an executable filter
func (c *exprCompiler) Compile(expression string) (CompiledFilter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
		}
	}

	if c.cache != nil {
		if cached, ok := c.cache.Get(expression); ok {
			return cached, nil
		}
	}

	// Property names are only known at run time
	program, err := expr.Compile(expression,
		expr.Env(c.compileEnv()),
		expr.AllowUndefinedVariables(),
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	filter := &exprFilter{
		expression: expression,
		program:    program,
		helpers:    c.helperFuncs,
	}

	if c.cache != nil {
		c.cache.Put(expression, filter)
	}

	return filter, nil
}

// compileEnv adds signature stubs for the per-item helpers.
func (c *exprCompiler) compileEnv() map[string]any {
	env := make(map[string]any, len(c.helperFuncs)+4)
	maps.Copy(env, c.helperFuncs)
	addItemHelpers(env, entity.NewProperties())
	return env
}

// Clear removes all cached filters
func (c *exprCompiler) Clear() {
	if c.cache != nil {
		c.cache.Clear()
	}
}

// Size returns the number of cached filters
func (c *exprCompiler) Size() int {
	if c.cache != nil {
		return c.cache.Size()
	}
	return 0
}

// Evaluate returns false for items the expression cannot be evaluated on
func (f *exprFilter) Evaluate(props *entity.Properties) bool {
	ok, err := f.Match(props)
	return err == nil && ok
}

// Match evaluates the filter against props
func (f *exprFilter) Match(props *entity.Properties) (bool, error) {
	result, err := expr.Run(f.program, f.runtimeEnv(props))
	if err != nil {
		id, _ := props.String(entity.IDKey)
		return false, &EvaluationError{
			Expression: f.expression,
			ItemID:     id,
			Reason:     "failed to evaluate expression",
			Err:        err,
		}
	}
	// AsBool guarantees the result type
	return result.(bool), nil
}

// Expression returns the original expression
func (f *exprFilter) Expression() string {
	return f.expression
}

// runtimeEnv exposes every top-level property as a variable plus the
// whole item as "item". Helpers shadow properties of the same name.
func (f *exprFilter) runtimeEnv(props *entity.Properties) map[string]any {
	env := props.Map()
	env["item"] = props.Map()
	maps.Copy(env, f.helpers)
	addItemHelpers(env, props)
	return env
}

// createHelperFunctions creates the static helper functions used during compilation
func createHelperFunctions() map[string]any {
	funcs := make(map[string]any, 16)

	// Date helpers
	funcs["daysSince"] = func(v any) int {
		t, ok := toTime(v)
		if !ok {
			return 0
		}
		return int(time.Since(t).Hours() / 24)
	}
	funcs["daysAgo"] = func(days int) time.Time {
		return time.Now().AddDate(0, 0, -days)
	}
	funcs["parseDate"] = func(s string) time.Time {
		t, _ := toTime(s)
		return t
	}
	funcs["now"] = time.Now

	// String helpers
	funcs["contains"] = func(str, substr string) bool {
		return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
	}
	funcs["startsWith"] = func(str, prefix string) bool {
		return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
	}
	funcs["endsWith"] = func(str, suffix string) bool {
		return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
	}
	funcs["lower"] = strings.ToLower
	funcs["upper"] = strings.ToUpper

	// Numbers arrive as strings in some payloads
	funcs["num"] = func(v any) float64 {
		f, _ := entity.ValueOf(v).Float()
		return f
	}

	return funcs
}

// addItemHelpers adds the helpers bound to one item.
func addItemHelpers(env map[string]any, props *entity.Properties) {
	env["has"] = func(key string) bool {
		return props.Has(key)
	}
	env["get"] = func(key string) any {
		v, ok := props.Get(key)
		if !ok {
			return nil
		}
		return v.Interface()
	}
	env["hasTag"] = func(tag string) bool {
		tags, _ := props.Array("tags")
		for _, t := range tags {
			name, _ := t.Text()
			if obj, ok := t.AsObject(); ok {
				name, _ = obj.String("name")
			}
			if strings.EqualFold(name, tag) {
				return true
			}
		}
		return false
	}
}

func toTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, !t.IsZero()
	case string:
		s := strings.TrimSpace(t)
		for _, layout := range timestampLayouts {
			if parsed, err := time.Parse(layout, s); err == nil {
				return parsed, true
			}
		}
		if secs, err := strconv.ParseInt(s, 10, 64); err == nil {
			return time.Unix(secs, 0), true
		}
	case float64:
		return time.Unix(int64(t), 0), true
	}
	return time.Time{}, false
}
