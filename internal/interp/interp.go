// Package interp implements Lucent's tree-walking interpreter: environment
// chains, closure application, pattern-directed destructuring, and the
// effect-gated builtin dispatch.
package interp

import (
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/lucent-lang/lucent/internal/ast"
	"github.com/lucent-lang/lucent/internal/stdlib"
	"github.com/lucent-lang/lucent/internal/value"
)

// Options configures one interpreter instance. Zero-value fields fall back
// to the process's own streams and an empty argument vector.
type Options struct {
	Args   []string
	Stdout io.Writer
	Stdin  io.Reader
}

// Interpreter evaluates a checked compilation unit. It is single-threaded
// and synchronous: every operation runs to completion on the calling
// goroutine.
type Interpreter struct {
	runID  uuid.UUID
	global *value.Environment
	ctx    *value.BuiltinContext

	// methods maps a type's name to its impl-block methods; implTraits and
	// traitDefaults resolve a missing method through trait default bodies.
	methods       map[string]map[string]*value.Function
	implTraits    map[string][]string
	traitDefaults map[string]map[string]*value.Function

	// fieldOrder records the declared field order of every product type and
	// named-field variant so record values built from literals compare
	// structurally regardless of the order fields were written in.
	fieldOrder map[string][]string

	// effectStack tracks whether the innermost executing function is an
	// effect function. The checker already rejects effect calls from pure
	// contexts; this is the runtime defense-in-depth gate.
	effectStack []bool
}

// New creates an interpreter with the standard library installed in its
// root environment.
func New(opts Options) *Interpreter {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	in := &Interpreter{
		runID:         uuid.New(),
		global:        value.NewEnvironment(),
		methods:       map[string]map[string]*value.Function{},
		implTraits:    map[string][]string{},
		traitDefaults: map[string]map[string]*value.Function{},
		fieldOrder:    map[string][]string{},
	}
	stdlib.Install(in.global)
	in.ctx = &value.BuiltinContext{Caller: in, Args: opts.Args, Stdout: opts.Stdout, Stdin: opts.Stdin}
	return in
}

// RunID identifies this interpreter instance for log/diagnostic correlation.
func (in *Interpreter) RunID() uuid.UUID { return in.runID }

// Run loads file's declarations and evaluates its `main` function. The
// returned error is non-nil iff evaluation halted on a runtime error.
func (in *Interpreter) Run(file *ast.File) (value.Value, error) {
	if errv := in.Load(file); errv != nil {
		return nil, errv
	}
	mainVal, ok := in.global.Get("main")
	if !ok {
		return nil, value.NewError("InvalidOperation", "program has no `main` function")
	}
	// The process entry point is the one place an effect context begins
	// without an enclosing effect function.
	in.effectStack = append(in.effectStack, true)
	result := in.apply(mainVal, nil, nil)
	in.effectStack = in.effectStack[:len(in.effectStack)-1]
	if errv, ok := result.(*value.ErrorSignal); ok {
		return nil, errv
	}
	return result, nil
}

// Eval evaluates a single expression against the global environment,
// outside any effect context. Embedders and tests use this to poke at
// loaded declarations without a `main`.
func (in *Interpreter) Eval(e ast.Expr) (value.Value, error) {
	result := in.evalExpr(e, in.global)
	if errv, ok := result.(*value.ErrorSignal); ok {
		return nil, errv
	}
	if ret, ok := result.(*value.ReturnSignal); ok {
		return ret.Value, nil
	}
	return result, nil
}

// EvalEffect is Eval inside an effect context, for driving effect builtins
// directly (the REPL-adjacent entry point).
func (in *Interpreter) EvalEffect(e ast.Expr) (value.Value, error) {
	in.effectStack = append(in.effectStack, true)
	defer func() { in.effectStack = in.effectStack[:len(in.effectStack)-1] }()
	return in.Eval(e)
}

// TestResult is one `test "name" { ... }` block's outcome.
type TestResult struct {
	Name string
	Err  error
}

// RunTests loads file and executes every test declaration in order, each in
// its own scope and effect context. A failing assertion stops that test but
// not the suite.
func (in *Interpreter) RunTests(file *ast.File) ([]TestResult, error) {
	if errv := in.Load(file); errv != nil {
		return nil, errv
	}
	var results []TestResult
	for _, d := range file.Decls {
		t, ok := d.(*ast.TestDecl)
		if !ok {
			continue
		}
		in.effectStack = append(in.effectStack, true)
		env := value.NewEnclosedEnvironment(in.global)
		result := in.evalBlock(t.Body, env)
		in.effectStack = in.effectStack[:len(in.effectStack)-1]

		r := TestResult{Name: t.Name.Value}
		if errv, ok := result.(*value.ErrorSignal); ok {
			r.Err = errv
		}
		results = append(results, r)
	}
	return results, nil
}

// Call invokes a Lucent function value on behalf of a higher-order builtin
// (value.Caller). The builtin was itself dispatched from an already-gated
// context, so the callee inherits the current effect context.
func (in *Interpreter) Call(fn value.Value, args []value.Value) (value.Value, error) {
	result := in.apply(fn, args, nil)
	if errv, ok := result.(*value.ErrorSignal); ok {
		return nil, errv
	}
	return result, nil
}

func (in *Interpreter) currentEffect() bool {
	if len(in.effectStack) == 0 {
		return false
	}
	return in.effectStack[len(in.effectStack)-1]
}

// apply calls a function or builtin value. self is non-nil for method
// dispatch and is bound before the declared parameters.
func (in *Interpreter) apply(fnv value.Value, args []value.Value, self value.Value) value.Value {
	switch fn := fnv.(type) {
	case *value.Builtin:
		if fn.IsEffect && !in.currentEffect() {
			// The checker forbids this statically; reaching it means a
			// caller bypassed checking.
			return value.NewError("InvalidOperation", "effect builtin %q called from a pure context", fn.Name)
		}
		if fn.Arity >= 0 && len(args) != fn.Arity {
			return value.NewError("ArityMismatch", "%s expects %d argument(s), got %d", fn.Name, fn.Arity, len(args))
		}
		result, err := fn.Fn(in.ctx, args)
		if err != nil {
			if errv, ok := err.(*value.ErrorSignal); ok {
				return errv
			}
			return value.NewError("InvalidOperation", "%s: %s", fn.Name, err.Error())
		}
		return result

	case *value.Function:
		if fn.IsEffect && !in.currentEffect() {
			return value.NewError("InvalidOperation", "effect function %q called from a pure context", fn.Inspect())
		}
		if len(args) != len(fn.Params) {
			return value.NewError("ArityMismatch", "%s expects %d argument(s), got %d", fn.Inspect(), len(fn.Params), len(args))
		}
		env := value.NewEnclosedEnvironment(fn.Env)
		if self != nil {
			env.Define("self", self)
		}
		for i, p := range fn.Params {
			matched, sig := in.matchPattern(p.Pattern, args[i], env)
			if sig != nil {
				return sig
			}
			if !matched {
				return value.NewError("TypeMismatch", "argument %d does not match parameter pattern", i)
			}
		}
		in.effectStack = append(in.effectStack, fn.IsEffect)
		result := in.evalBlock(fn.Body, env)
		in.effectStack = in.effectStack[:len(in.effectStack)-1]

		switch r := result.(type) {
		case *value.ReturnSignal:
			return r.Value
		case *value.BreakSignal:
			return value.NewError("InvalidOperation", "`break` escaped its enclosing loop")
		default:
			return result
		}

	default:
		return value.NewError("InvalidOperation", "cannot call a value of kind %s", fnv.Kind())
	}
}
