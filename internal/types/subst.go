package types

// Substitution maps generic type-parameter names to concrete resolved
// types.
type Substitution map[string]Type

// Instantiate deep-copies t, replacing every TypeVar node whose name is
// bound in sub; every other node is rebuilt structurally so the result
// shares no mutable state with t.
func Instantiate(t Type, sub Substitution) Type {
	if len(sub) == 0 {
		return t
	}
	switch v := t.(type) {
	case *TypeVar:
		if repl, ok := sub[v.Name]; ok {
			return repl
		}
		return v
	case *Primitive, *Void, *ErrorType, *SelfType, *Named:
		return t
	case *Instantiated:
		args := make([]Type, len(v.Args))
		for i, a := range v.Args {
			args[i] = Instantiate(a, sub)
		}
		return &Instantiated{SymbolID: v.SymbolID, Display: v.Display, Args: args}
	case *Function:
		params := make([]Type, len(v.Params))
		for i, p := range v.Params {
			params[i] = Instantiate(p, sub)
		}
		return &Function{Params: params, Return: Instantiate(v.Return, sub), Effect: v.Effect}
	case *Tuple:
		elems := make([]Type, len(v.Elems))
		for i, e := range v.Elems {
			elems[i] = Instantiate(e, sub)
		}
		return &Tuple{Elems: elems}
	case *Array:
		return &Array{Elem: Instantiate(v.Elem, sub), Len: v.Len}
	case *IO:
		return &IO{Elem: Instantiate(v.Elem, sub)}
	case *Result:
		return &Result{Ok: Instantiate(v.Ok, sub), Err: Instantiate(v.Err, sub)}
	case *Option:
		return &Option{Elem: Instantiate(v.Elem, sub)}
	default:
		return t
	}
}

// InstantiateFieldDefs applies sub to each field of fields, used when
// accessing a field on an Instantiated value.
func InstantiateFieldDefs(fields []FieldDef, sub Substitution) []FieldDef {
	out := make([]FieldDef, len(fields))
	for i, f := range fields {
		out[i] = FieldDef{Name: f.Name, Type: Instantiate(f.Type, sub)}
	}
	return out
}

// InstantiateVariantDefs applies sub to each variant's fields.
func InstantiateVariantDefs(variants []VariantDef, sub Substitution) []VariantDef {
	out := make([]VariantDef, len(variants))
	for i, v := range variants {
		out[i] = VariantDef{Name: v.Name, Named: v.Named, Fields: InstantiateFieldDefs(v.Fields, sub)}
	}
	return out
}

// BuildSubstitution pairs typeParams with args positionally. The caller is
// responsible for arity-checking beforehand.
func BuildSubstitution(typeParams []string, args []Type) Substitution {
	sub := make(Substitution, len(typeParams))
	for i, name := range typeParams {
		if i < len(args) {
			sub[name] = args[i]
		}
	}
	return sub
}
