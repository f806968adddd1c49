package stdlib

import (
	"bufio"
	"fmt"
	"strings"
	"time"

	"github.com/lucent-lang/lucent/internal/types"
	"github.com/lucent-lang/lucent/internal/value"
)

// display renders a value for io.print/interpolation: strings print raw
// (no quoting), everything else uses Inspect.
func display(v value.Value) string {
	if s, ok := v.(*value.String); ok {
		return s.Value
	}
	return v.Inspect()
}

func ioNamespace() *Namespace {
	return &Namespace{Name: "io", Builtins: []*Descriptor{
		{
			Name: "print", IsEffect: true, Arity: -1, Return: types.TypeVoid,
			Impl: func(ctx *value.BuiltinContext, args []value.Value) (value.Value, error) {
				parts := make([]string, len(args))
				for i, a := range args {
					parts[i] = display(a)
				}
				fmt.Fprint(ctx.Stdout, strings.Join(parts, " "))
				return value.TheVoid, nil
			},
		},
		{
			Name: "println", IsEffect: true, Arity: -1, Return: types.TypeVoid,
			Impl: func(ctx *value.BuiltinContext, args []value.Value) (value.Value, error) {
				parts := make([]string, len(args))
				for i, a := range args {
					parts[i] = display(a)
				}
				fmt.Fprintln(ctx.Stdout, strings.Join(parts, " "))
				return value.TheVoid, nil
			},
		},
		{
			Name: "read_line", IsEffect: true, Arity: 0,
			Impl: func(ctx *value.BuiltinContext, args []value.Value) (value.Value, error) {
				line, err := bufio.NewReader(ctx.Stdin).ReadString('\n')
				if err != nil && line == "" {
					return value.Err(&value.String{Value: err.Error()}), nil
				}
				return value.Ok(&value.String{Value: strings.TrimRight(line, "\n")}), nil
			},
		},
		{
			Name: "args", IsEffect: true, Arity: 0,
			Impl: func(ctx *value.BuiltinContext, args []value.Value) (value.Value, error) {
				out := make([]value.Value, len(ctx.Args))
				for i, a := range ctx.Args {
					out[i] = &value.String{Value: a}
				}
				return &value.Array{Elements: out}, nil
			},
		},
	}}
}

func timeNamespace() *Namespace {
	return &Namespace{Name: "time", Builtins: []*Descriptor{
		{
			Name: "now", IsEffect: true, Arity: 0, Return: types.TypeI64,
			Impl: func(_ *value.BuiltinContext, _ []value.Value) (value.Value, error) {
				return &value.Int{Value: time.Now().UnixMilli()}, nil
			},
		},
		{
			// Blocks the calling thread; the interpreter is single-threaded
			// and synchronous by design.
			Name: "sleep", IsEffect: true, Arity: 1, Return: types.TypeVoid,
			Impl: func(_ *value.BuiltinContext, args []value.Value) (value.Value, error) {
				ms, ok := args[0].(*value.Int)
				if !ok {
					return nil, typeError("time.sleep", "milliseconds", args[0])
				}
				time.Sleep(time.Duration(ms.Value) * time.Millisecond)
				return value.TheVoid, nil
			},
		},
	}}
}

func bareBuiltins() []*Descriptor {
	return []*Descriptor{
		{
			Name: "assert", IsEffect: true, Arity: -1, Return: types.TypeVoid,
			Impl: func(_ *value.BuiltinContext, args []value.Value) (value.Value, error) {
				if len(args) < 1 || len(args) > 2 {
					return nil, arityError("assert", 1, len(args))
				}
				cond, ok := args[0].(*value.Bool)
				if !ok {
					return nil, typeError("assert", "bool", args[0])
				}
				if !cond.Value {
					msg := "assertion failed"
					if len(args) == 2 {
						msg = display(args[1])
					}
					return nil, value.NewError("AssertionFailed", "%s", msg)
				}
				return value.TheVoid, nil
			},
		},
		{
			Name: "assert_eq", IsEffect: true, Arity: 2, Return: types.TypeVoid,
			Impl: func(_ *value.BuiltinContext, args []value.Value) (value.Value, error) {
				if !value.Equal(args[0], args[1]) {
					return nil, value.NewError("AssertionFailed", "assertion failed: %s != %s", args[0].Inspect(), args[1].Inspect())
				}
				return value.TheVoid, nil
			},
		},
	}
}
