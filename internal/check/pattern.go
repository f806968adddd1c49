package check

import (
	"github.com/lucent-lang/lucent/internal/ast"
	"github.com/lucent-lang/lucent/internal/diag"
	"github.com/lucent-lang/lucent/internal/symtab"
	"github.com/lucent-lang/lucent/internal/types"
	"github.com/lucent-lang/lucent/internal/unify"
)

// patBinding is one name this pattern would introduce if matched against
// the paired type.
type patBinding struct {
	name    string
	typ     types.Type
	mutable bool
	span    ast.Node
}

// destructurePattern structurally walks p against t, collecting every
// identifier binding it introduces. It never fails outright: a shape
// mismatch is reported once and the offending sub-pattern contributes no
// bindings, letting the rest of the walk continue.
func (c *Checker) destructurePattern(p ast.Pattern, t types.Type) []patBinding {
	switch pat := p.(type) {
	case *ast.PatternWild, *ast.PatternRest:
		return nil

	case *ast.PatternIdent:
		return []patBinding{{name: pat.Name.Name, typ: t, mutable: pat.Mutable, span: pat}}

	case *ast.PatternTyped:
		declared := c.resolveTypeExpr(pat.Type)
		if !unify.IsAssignable(declared, t) && !unify.TypesEqual(declared, t) {
			c.errorAt(pat.Span(), diag.CodeTypeMismatch, "pattern type %s does not match value type %s", declared, t)
		}
		return c.destructurePattern(pat.Inner, declared)

	case *ast.PatternTuple:
		tup, ok := t.(*types.Tuple)
		if !ok || len(tup.Elems) != len(pat.Elems) {
			c.errorAt(pat.Span(), diag.CodeTypeMismatch, "tuple pattern does not match type %s", t)
			return nil
		}
		var out []patBinding
		for i, ep := range pat.Elems {
			out = append(out, c.destructurePattern(ep, tup.Elems[i])...)
		}
		return out

	case *ast.PatternOr:
		// Every alternative is expected to bind the same names; the first
		// alternative's bindings are authoritative for typing purposes.
		var out []patBinding
		for _, alt := range pat.Alternatives {
			bs := c.destructurePattern(alt, t)
			if out == nil {
				out = bs
			}
		}
		return out

	case *ast.PatternGuarded:
		bs := c.destructurePattern(pat.Inner, t)
		return bs

	case *ast.PatternRecord:
		return c.destructureRecordPattern(pat, t)

	case *ast.PatternConstructor:
		return c.destructureConstructorPattern(pat, t)

	case *ast.PatternLiteral, *ast.PatternRange:
		return nil

	default:
		return nil
	}
}

func (c *Checker) destructureRecordPattern(pat *ast.PatternRecord, t types.Type) []patBinding {
	fields, sub := c.fieldsOf(t)
	var out []patBinding
	for _, arg := range pat.Fields {
		name := arg.Name
		if name == nil {
			if id, ok := arg.Pattern.(*ast.PatternIdent); ok {
				name = id.Name
			}
		}
		var fieldType types.Type = types.TypeError
		if name != nil {
			for _, f := range fields {
				if f.Name == name.Name {
					fieldType = types.Instantiate(f.Type, sub)
					break
				}
			}
		}
		out = append(out, c.destructurePattern(arg.Pattern, fieldType)...)
	}
	return out
}

func (c *Checker) destructureConstructorPattern(pat *ast.PatternConstructor, t types.Type) []patBinding {
	variant, sub, ok := c.resolveVariant(pat.Path, t)
	if !ok {
		c.errorAt(pat.Span(), diag.CodeUndefinedSymbol, "unknown variant in pattern")
		return nil
	}
	var out []patBinding
	for i, arg := range pat.Args {
		var fieldType types.Type = types.TypeError
		if arg.Name != nil {
			for _, f := range variant.Fields {
				if f.Name == arg.Name.Name {
					fieldType = types.Instantiate(f.Type, sub)
					break
				}
			}
		} else if i < len(variant.Fields) {
			fieldType = types.Instantiate(variant.Fields[i].Type, sub)
		}
		out = append(out, c.destructurePattern(arg.Pattern, fieldType)...)
	}
	return out
}

// fieldsOf returns the product fields of t (directly, or via its Instantiated
// substitution) alongside the substitution to apply to each field's type.
func (c *Checker) fieldsOf(t types.Type) ([]types.FieldDef, types.Substitution) {
	switch v := t.(type) {
	case *types.Named:
		if def := c.TypeDefs[v.SymbolID]; def != nil {
			return def.Fields, nil
		}
	case *types.Instantiated:
		if def := c.TypeDefs[v.SymbolID]; def != nil {
			return def.Fields, types.BuildSubstitution(def.TypeParams, v.Args)
		}
	}
	return nil, nil
}

// resolveVariant finds the VariantDef a constructor pattern/expression path
// names, handling the builtin Option/Result prelude constructors (Some,
// None, Ok, Err) as well as user sum types.
func (c *Checker) resolveVariant(path []*ast.Ident, t types.Type) (types.VariantDef, types.Substitution, bool) {
	if len(path) == 1 {
		switch path[0].Name {
		case "Some":
			if opt, ok := t.(*types.Option); ok {
				return types.VariantDef{Name: "Some", Fields: []types.FieldDef{{Name: "0", Type: opt.Elem}}}, nil, true
			}
		case "None":
			if _, ok := t.(*types.Option); ok {
				return types.VariantDef{Name: "None"}, nil, true
			}
		case "Ok":
			if res, ok := t.(*types.Result); ok {
				return types.VariantDef{Name: "Ok", Fields: []types.FieldDef{{Name: "0", Type: res.Ok}}}, nil, true
			}
		case "Err":
			if res, ok := t.(*types.Result); ok {
				return types.VariantDef{Name: "Err", Fields: []types.FieldDef{{Name: "0", Type: res.Err}}}, nil, true
			}
		}
	}
	sym := c.Table.LookupPath(c.scope, pathSegments(path))
	if sym == nil || sym.Kind != symtab.SymFunction {
		return types.VariantDef{}, nil, false
	}
	var ownerID symtab.ID
	var args []types.Type
	switch v := t.(type) {
	case *types.Named:
		ownerID = v.SymbolID
	case *types.Instantiated:
		ownerID = v.SymbolID
		args = v.Args
	}
	def := c.TypeDefs[ownerID]
	if def == nil {
		return types.VariantDef{}, nil, false
	}
	for _, vdef := range def.Variants {
		if vdef.Name == path[len(path)-1].Name {
			return vdef, types.BuildSubstitution(def.TypeParams, args), true
		}
	}
	return types.VariantDef{}, nil, false
}

// bindPatternInScope destructures p against t and defines every binding it
// introduces directly in scope (used for let/var/for/closure-parameter and
// match-arm positions, where bindings are fresh local symbols).
func (c *Checker) bindPatternInScope(p ast.Pattern, t types.Type, scope *symtab.Scope) {
	for _, b := range c.destructurePattern(p, t) {
		sym, err := c.Table.Define(scope, b.name, symtab.SymVariable, b.span.Span(), false, b.span)
		if err != nil {
			c.errorAt(b.span.Span(), diag.CodeDuplicateDefinition, "duplicate definition of %q", b.name)
			continue
		}
		sym.Mutable = b.mutable
		c.SymbolTypes[sym.ID] = b.typ
	}
}

// bindTopLevelPattern records types for the names a module-scope `let`
// pattern introduces; declareSymbol already Defined them in pass one.
func (c *Checker) bindTopLevelPattern(p ast.Pattern, t types.Type) {
	for _, b := range c.destructurePattern(p, t) {
		sym := c.Table.LookupLocal(c.Table.Root, b.name)
		if sym == nil {
			continue
		}
		sym.Mutable = b.mutable
		c.SymbolTypes[sym.ID] = b.typ
	}
}

// declareTopLevelPattern runs in pass one: it only reserves names (so
// forward references from other top-level decls succeed) without yet
// knowing their resolved type.
func (c *Checker) declareTopLevelPattern(p ast.Pattern, pub bool, node ast.Node) {
	walkPatternNames(p, func(id *ast.Ident, mutable bool) {
		if _, err := c.Table.Define(c.Table.Root, id.Name, symtab.SymVariable, id.Span(), pub, node); err != nil {
			c.errorAt(id.Span(), diag.CodeDuplicateDefinition, "duplicate definition of %q", id.Name)
		}
	})
}

// walkPatternNames visits every PatternIdent name a pattern would bind,
// ignoring the type information destructurePattern otherwise threads
// through (pass one has no resolved types yet).
func walkPatternNames(p ast.Pattern, visit func(id *ast.Ident, mutable bool)) {
	switch pat := p.(type) {
	case *ast.PatternIdent:
		visit(pat.Name, pat.Mutable)
	case *ast.PatternTyped:
		walkPatternNames(pat.Inner, visit)
	case *ast.PatternTuple:
		for _, e := range pat.Elems {
			walkPatternNames(e, visit)
		}
	case *ast.PatternOr:
		if len(pat.Alternatives) > 0 {
			walkPatternNames(pat.Alternatives[0], visit)
		}
	case *ast.PatternGuarded:
		walkPatternNames(pat.Inner, visit)
	case *ast.PatternRecord:
		for _, f := range pat.Fields {
			walkPatternNames(f.Pattern, visit)
		}
	case *ast.PatternConstructor:
		for _, a := range pat.Args {
			walkPatternNames(a.Pattern, visit)
		}
	}
}
