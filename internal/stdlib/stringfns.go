package stdlib

import (
	"strings"
	"unicode/utf8"

	"github.com/lucent-lang/lucent/internal/types"
	"github.com/lucent-lang/lucent/internal/value"
)

func wantString(name string, v value.Value) (*value.String, error) {
	s, ok := v.(*value.String)
	if !ok {
		return nil, typeError(name, "a string", v)
	}
	return s, nil
}

func stringNamespace() *Namespace {
	return &Namespace{Name: "string", Builtins: []*Descriptor{
		{
			Name: "len", Arity: 1,
			Params: []types.Type{types.TypeString}, Return: types.TypeI64,
			Impl: func(_ *value.BuiltinContext, args []value.Value) (value.Value, error) {
				s, err := wantString("string.len", args[0])
				if err != nil {
					return nil, err
				}
				return &value.Int{Value: int64(len(s.Value))}, nil
			},
		},
		{
			Name: "upper", Arity: 1,
			Params: []types.Type{types.TypeString}, Return: types.TypeString,
			Impl: func(_ *value.BuiltinContext, args []value.Value) (value.Value, error) {
				s, err := wantString("string.upper", args[0])
				if err != nil {
					return nil, err
				}
				return &value.String{Value: strings.ToUpper(s.Value)}, nil
			},
		},
		{
			Name: "lower", Arity: 1,
			Params: []types.Type{types.TypeString}, Return: types.TypeString,
			Impl: func(_ *value.BuiltinContext, args []value.Value) (value.Value, error) {
				s, err := wantString("string.lower", args[0])
				if err != nil {
					return nil, err
				}
				return &value.String{Value: strings.ToLower(s.Value)}, nil
			},
		},
		{
			Name: "split", Arity: 2,
			Params: []types.Type{types.TypeString, types.TypeString},
			Impl: func(_ *value.BuiltinContext, args []value.Value) (value.Value, error) {
				s, err := wantString("string.split", args[0])
				if err != nil {
					return nil, err
				}
				sep, err := wantString("string.split", args[1])
				if err != nil {
					return nil, err
				}
				parts := strings.Split(s.Value, sep.Value)
				out := make([]value.Value, len(parts))
				for i, p := range parts {
					out[i] = &value.String{Value: p}
				}
				return value.ListFromSlice(out), nil
			},
		},
		{
			Name: "concat", Arity: 2,
			Params: []types.Type{types.TypeString, types.TypeString}, Return: types.TypeString,
			Impl: func(_ *value.BuiltinContext, args []value.Value) (value.Value, error) {
				a, err := wantString("string.concat", args[0])
				if err != nil {
					return nil, err
				}
				b, err := wantString("string.concat", args[1])
				if err != nil {
					return nil, err
				}
				return &value.String{Value: a.Value + b.Value}, nil
			},
		},
		{
			Name: "contains", Arity: 2,
			Params: []types.Type{types.TypeString, types.TypeString}, Return: types.TypeBool,
			Impl: func(_ *value.BuiltinContext, args []value.Value) (value.Value, error) {
				s, err := wantString("string.contains", args[0])
				if err != nil {
					return nil, err
				}
				sub, err := wantString("string.contains", args[1])
				if err != nil {
					return nil, err
				}
				return value.NativeBool(strings.Contains(s.Value, sub.Value)), nil
			},
		},
		{
			// to_utf8 exposes a string's raw byte view: strings are opaque
			// byte sequences with explicit validation primitives.
			Name: "to_utf8", Arity: 1,
			Params: []types.Type{types.TypeString},
			Impl: func(_ *value.BuiltinContext, args []value.Value) (value.Value, error) {
				s, err := wantString("string.to_utf8", args[0])
				if err != nil {
					return nil, err
				}
				bytes := make([]value.Value, len(s.Value))
				for i := 0; i < len(s.Value); i++ {
					bytes[i] = &value.Int{Value: int64(s.Value[i])}
				}
				return &value.Array{Elements: bytes}, nil
			},
		},
		{
			Name: "from_utf8_checked", Arity: 1,
			Impl: func(_ *value.BuiltinContext, args []value.Value) (value.Value, error) {
				arr, ok := args[0].(*value.Array)
				if !ok {
					return nil, typeError("string.from_utf8_checked", "a byte array", args[0])
				}
				buf := make([]byte, len(arr.Elements))
				for i, e := range arr.Elements {
					b, ok := e.(*value.Int)
					if !ok || b.Value < 0 || b.Value > 255 {
						return nil, typeError("string.from_utf8_checked", "a byte array", e)
					}
					buf[i] = byte(b.Value)
				}
				if !utf8.Valid(buf) {
					return value.Err(&value.String{Value: "invalid UTF-8"}), nil
				}
				return value.Ok(&value.String{Value: string(buf)}), nil
			},
		},
	}}
}
