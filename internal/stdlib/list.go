package stdlib

import (
	"github.com/lucent-lang/lucent/internal/types"
	"github.com/lucent-lang/lucent/internal/value"
)

// collectionElems flattens a cons-list or array into a slice so every list
// builtin accepts either shape (arrays are the literal syntax, cons-lists
// are what the builtins themselves produce).
func collectionElems(name string, v value.Value) ([]value.Value, error) {
	switch c := v.(type) {
	case *value.List:
		return c.ToSlice(), nil
	case *value.Array:
		return c.Elements, nil
	default:
		return nil, typeError(name, "a list or array", v)
	}
}

func listNamespace() *Namespace {
	return &Namespace{Name: "list", Builtins: []*Descriptor{
		{
			Name: "map", Arity: 2,
			Impl: func(ctx *value.BuiltinContext, args []value.Value) (value.Value, error) {
				elems, err := collectionElems("list.map", args[0])
				if err != nil {
					return nil, err
				}
				out := make([]value.Value, len(elems))
				for i, e := range elems {
					mapped, err := ctx.Caller.Call(args[1], []value.Value{e})
					if err != nil {
						return nil, err
					}
					out[i] = mapped
				}
				return value.ListFromSlice(out), nil
			},
		},
		{
			Name: "filter", Arity: 2,
			Impl: func(ctx *value.BuiltinContext, args []value.Value) (value.Value, error) {
				elems, err := collectionElems("list.filter", args[0])
				if err != nil {
					return nil, err
				}
				var out []value.Value
				for _, e := range elems {
					keep, err := ctx.Caller.Call(args[1], []value.Value{e})
					if err != nil {
						return nil, err
					}
					b, ok := keep.(*value.Bool)
					if !ok {
						return nil, typeError("list.filter predicate", "bool", keep)
					}
					if b.Value {
						out = append(out, e)
					}
				}
				return value.ListFromSlice(out), nil
			},
		},
		{
			Name: "fold", Arity: 3,
			Impl: func(ctx *value.BuiltinContext, args []value.Value) (value.Value, error) {
				elems, err := collectionElems("list.fold", args[0])
				if err != nil {
					return nil, err
				}
				acc := args[1]
				for _, e := range elems {
					acc, err = ctx.Caller.Call(args[2], []value.Value{acc, e})
					if err != nil {
						return nil, err
					}
				}
				return acc, nil
			},
		},
		{
			Name: "length", Arity: 1, Return: types.TypeI64,
			Impl: func(_ *value.BuiltinContext, args []value.Value) (value.Value, error) {
				elems, err := collectionElems("list.length", args[0])
				if err != nil {
					return nil, err
				}
				return &value.Int{Value: int64(len(elems))}, nil
			},
		},
		{
			Name: "reverse", Arity: 1,
			Impl: func(_ *value.BuiltinContext, args []value.Value) (value.Value, error) {
				elems, err := collectionElems("list.reverse", args[0])
				if err != nil {
					return nil, err
				}
				out := value.NilList
				for _, e := range elems {
					out = value.Cons(e, out)
				}
				return out, nil
			},
		},
		{
			Name: "head", Arity: 1,
			Impl: func(_ *value.BuiltinContext, args []value.Value) (value.Value, error) {
				elems, err := collectionElems("list.head", args[0])
				if err != nil {
					return nil, err
				}
				if len(elems) == 0 {
					return value.None, nil
				}
				return value.Some(elems[0]), nil
			},
		},
		{
			Name: "tail", Arity: 1,
			Impl: func(_ *value.BuiltinContext, args []value.Value) (value.Value, error) {
				if l, ok := args[0].(*value.List); ok {
					if l.IsNil {
						return value.NilList, nil
					}
					return l.Tail, nil
				}
				elems, err := collectionElems("list.tail", args[0])
				if err != nil {
					return nil, err
				}
				if len(elems) == 0 {
					return value.NilList, nil
				}
				return value.ListFromSlice(elems[1:]), nil
			},
		},
		{
			Name: "cons", Arity: 2,
			Impl: func(_ *value.BuiltinContext, args []value.Value) (value.Value, error) {
				tail, ok := args[1].(*value.List)
				if !ok {
					return nil, typeError("list.cons", "a list tail", args[1])
				}
				return value.Cons(args[0], tail), nil
			},
		},
		{
			Name: "nil", Arity: 0,
			Impl: func(_ *value.BuiltinContext, _ []value.Value) (value.Value, error) {
				return value.NilList, nil
			},
		},
	}}
}
