package check

import (
	"strings"

	"github.com/lucent-lang/lucent/internal/ast"
	"github.com/lucent-lang/lucent/internal/diag"
	"github.com/lucent-lang/lucent/internal/symtab"
	"github.com/lucent-lang/lucent/internal/types"
)

var primitiveKinds = map[string]types.PrimitiveKind{
	"i8": types.I8, "i16": types.I16, "i32": types.I32, "i64": types.I64, "i128": types.I128,
	"u8": types.U8, "u16": types.U16, "u32": types.U32, "u64": types.U64, "u128": types.U128,
	"f32": types.F32, "f64": types.F64,
	"bool": types.Bool, "char": types.Char, "string": types.Str,
}

// resolveTypeExpr converts a syntactic TypeExpr into a resolved types.Type,
// reporting an undefined-type diagnostic and returning types.TypeError on
// failure so callers never need a nil check.
func (c *Checker) resolveTypeExpr(te ast.TypeExpr) types.Type {
	switch t := te.(type) {
	case *ast.PrimitiveTypeExpr:
		if k, ok := primitiveKinds[t.Name]; ok {
			return &types.Primitive{Kind: k}
		}
		c.errorAt(t.Span(), diag.CodeUndefinedType, "unknown primitive type %q", t.Name)
		return types.TypeError

	case *ast.NamedTypeExpr:
		// A generic parameter reference never parses as ast.TypeVarExpr (the
		// parser has no construction path that emits it) — it arrives here
		// as a single-segment NamedTypeExpr instead, so active type-param
		// substitutions are checked first.
		if len(t.Path) == 1 {
			if tv := c.lookupTypeVar(t.Path[0].Name); tv != nil {
				return tv
			}
		}
		segs := pathSegments(t.Path)
		sym := c.Table.LookupPath(c.scope, segs)
		if sym == nil || sym.Kind != symtab.SymTypeDef {
			c.errorAt(t.Span(), diag.CodeUndefinedType, "undefined type %q", strings.Join(segs, "::"))
			return types.TypeError
		}
		def := c.TypeDefs[sym.ID]
		if def == nil {
			return types.TypeError
		}
		if len(def.TypeParams) == 0 {
			return &types.Named{SymbolID: sym.ID, Display: def.Name}
		}
		// A bare reference to a generic type with no arguments list only
		// legally occurs inside its own declaration body (e.g. recursive
		// variants referencing Self's type params) — substitute each
		// parameter with its own TypeVar.
		args := make([]types.Type, len(def.TypeParams))
		for i, p := range def.TypeParams {
			if tv := c.lookupTypeVar(p); tv != nil {
				args[i] = tv
			} else {
				args[i] = &types.TypeVar{Name: p}
			}
		}
		return &types.Instantiated{SymbolID: sym.ID, Display: def.Name, Args: args}

	case *ast.GenericTypeExpr:
		return c.resolveGenericTypeExpr(t)

	case *ast.FnTypeExpr:
		params := make([]types.Type, len(t.Params))
		for i, p := range t.Params {
			params[i] = c.resolveTypeExpr(p)
		}
		ret := types.Type(types.TypeVoid)
		if t.Return != nil {
			ret = c.resolveTypeExpr(t.Return)
		}
		return &types.Function{Params: params, Return: ret, Effect: t.IsEffect}

	case *ast.TupleTypeExpr:
		elems := make([]types.Type, len(t.Elems))
		for i, e := range t.Elems {
			elems[i] = c.resolveTypeExpr(e)
		}
		return &types.Tuple{Elems: elems}

	case *ast.ArrayTypeExpr:
		return &types.Array{Elem: c.resolveTypeExpr(t.Elem), Len: t.Len}

	case *ast.IOTypeExpr:
		return &types.IO{Elem: c.resolveTypeExpr(t.Elem)}

	case *ast.ResultTypeExpr:
		return &types.Result{Ok: c.resolveTypeExpr(t.Ok), Err: c.resolveTypeExpr(t.Err)}

	case *ast.OptionTypeExpr:
		return &types.Option{Elem: c.resolveTypeExpr(t.Elem)}

	case *ast.SelfTypeExpr:
		if self := c.currentSelf(); self != nil {
			return self
		}
		c.errorAt(t.Span(), diag.CodeUndefinedType, "`Self` used outside a trait or impl body")
		return types.TypeError

	case *ast.TypeVarExpr:
		if tv := c.lookupTypeVar(t.Name); tv != nil {
			return tv
		}
		constraints := make([]string, len(t.Constraints))
		for i, id := range t.Constraints {
			constraints[i] = id.Name
		}
		return &types.TypeVar{Name: t.Name, Constraints: constraints}

	case *ast.InferredTypeExpr:
		c.errorAt(t.Span(), diag.CodeUndefinedType, "type annotations are mandatory; `_` is not a valid type here")
		return types.TypeError

	default:
		return types.TypeError
	}
}

func (c *Checker) resolveGenericTypeExpr(t *ast.GenericTypeExpr) types.Type {
	named, ok := t.Base.(*ast.NamedTypeExpr)
	if !ok {
		c.errorAt(t.Span(), diag.CodeUndefinedType, "generic arguments applied to a non-named type")
		return types.TypeError
	}
	segs := pathSegments(named.Path)
	sym := c.Table.LookupPath(c.scope, segs)
	if sym == nil || sym.Kind != symtab.SymTypeDef {
		c.errorAt(t.Span(), diag.CodeUndefinedType, "undefined type %q", strings.Join(segs, "::"))
		return types.TypeError
	}
	def := c.TypeDefs[sym.ID]
	if def == nil {
		return types.TypeError
	}
	if len(def.TypeParams) != len(t.Args) {
		c.errorAt(t.Span(), diag.CodeWrongArgumentCount, "type %q takes %d type argument(s), got %d", def.Name, len(def.TypeParams), len(t.Args))
		return types.TypeError
	}
	args := make([]types.Type, len(t.Args))
	for i, a := range t.Args {
		args[i] = c.resolveTypeExpr(a)
	}
	return &types.Instantiated{SymbolID: sym.ID, Display: def.Name, Args: args}
}

func pathSegments(path []*ast.Ident) []string {
	out := make([]string, len(path))
	for i, id := range path {
		out[i] = id.Name
	}
	return out
}

// splitPath splits an expression-position path-folded identifier (the
// parser joins `a::b::c` into one Ident.Name string) back into segments.
func splitPath(name string) []string {
	return strings.Split(name, "::")
}
