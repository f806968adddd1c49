package stdlib

import (
	"github.com/lucent-lang/lucent/internal/types"
	"github.com/lucent-lang/lucent/internal/value"
)

func optionNamespace() *Namespace {
	return &Namespace{Name: "option", Builtins: []*Descriptor{
		{
			Name: "unwrap_or", Arity: 2,
			Impl: func(_ *value.BuiltinContext, args []value.Value) (value.Value, error) {
				opt, ok := args[0].(*value.Option)
				if !ok {
					return nil, typeError("option.unwrap_or", "an Option", args[0])
				}
				if opt.Present {
					return opt.Value, nil
				}
				return args[1], nil
			},
		},
		{
			Name: "map", Arity: 2,
			Impl: func(ctx *value.BuiltinContext, args []value.Value) (value.Value, error) {
				opt, ok := args[0].(*value.Option)
				if !ok {
					return nil, typeError("option.map", "an Option", args[0])
				}
				if !opt.Present {
					return value.None, nil
				}
				mapped, err := ctx.Caller.Call(args[1], []value.Value{opt.Value})
				if err != nil {
					return nil, err
				}
				return value.Some(mapped), nil
			},
		},
		{
			Name: "is_some", Arity: 1, Return: types.TypeBool,
			Impl: func(_ *value.BuiltinContext, args []value.Value) (value.Value, error) {
				opt, ok := args[0].(*value.Option)
				if !ok {
					return nil, typeError("option.is_some", "an Option", args[0])
				}
				return value.NativeBool(opt.Present), nil
			},
		},
		{
			Name: "is_none", Arity: 1, Return: types.TypeBool,
			Impl: func(_ *value.BuiltinContext, args []value.Value) (value.Value, error) {
				opt, ok := args[0].(*value.Option)
				if !ok {
					return nil, typeError("option.is_none", "an Option", args[0])
				}
				return value.NativeBool(!opt.Present), nil
			},
		},
	}}
}

func resultNamespace() *Namespace {
	return &Namespace{Name: "result", Builtins: []*Descriptor{
		{
			Name: "map", Arity: 2,
			Impl: func(ctx *value.BuiltinContext, args []value.Value) (value.Value, error) {
				res, ok := args[0].(*value.Result)
				if !ok {
					return nil, typeError("result.map", "a Result", args[0])
				}
				if !res.IsOk {
					return res, nil
				}
				mapped, err := ctx.Caller.Call(args[1], []value.Value{res.Value})
				if err != nil {
					return nil, err
				}
				return value.Ok(mapped), nil
			},
		},
		{
			Name: "map_err", Arity: 2,
			Impl: func(ctx *value.BuiltinContext, args []value.Value) (value.Value, error) {
				res, ok := args[0].(*value.Result)
				if !ok {
					return nil, typeError("result.map_err", "a Result", args[0])
				}
				if res.IsOk {
					return res, nil
				}
				mapped, err := ctx.Caller.Call(args[1], []value.Value{res.Value})
				if err != nil {
					return nil, err
				}
				return value.Err(mapped), nil
			},
		},
		{
			Name: "unwrap_or", Arity: 2,
			Impl: func(_ *value.BuiltinContext, args []value.Value) (value.Value, error) {
				res, ok := args[0].(*value.Result)
				if !ok {
					return nil, typeError("result.unwrap_or", "a Result", args[0])
				}
				if res.IsOk {
					return res.Value, nil
				}
				return args[1], nil
			},
		},
		{
			Name: "is_ok", Arity: 1, Return: types.TypeBool,
			Impl: func(_ *value.BuiltinContext, args []value.Value) (value.Value, error) {
				res, ok := args[0].(*value.Result)
				if !ok {
					return nil, typeError("result.is_ok", "a Result", args[0])
				}
				return value.NativeBool(res.IsOk), nil
			},
		},
		{
			Name: "is_err", Arity: 1, Return: types.TypeBool,
			Impl: func(_ *value.BuiltinContext, args []value.Value) (value.Value, error) {
				res, ok := args[0].(*value.Result)
				if !ok {
					return nil, typeError("result.is_err", "a Result", args[0])
				}
				return value.NativeBool(!res.IsOk), nil
			},
		},
	}}
}
