package check

import (
	"github.com/lucent-lang/lucent/internal/ast"
	"github.com/lucent-lang/lucent/internal/diag"
	"github.com/lucent-lang/lucent/internal/pattern"
	"github.com/lucent-lang/lucent/internal/stdlib"
	"github.com/lucent-lang/lucent/internal/symtab"
	"github.com/lucent-lang/lucent/internal/types"
	"github.com/lucent-lang/lucent/internal/unify"
)

// checkExpr resolves e's type, recording it in c.ExprTypes (the interpreter
// does not read this table; it is exposed on the Checker for callers).
// expected carries a type hint downward for literals and variant
// construction; it may be nil when no hint applies.
func (c *Checker) checkExpr(e ast.Expr, expected types.Type) types.Type {
	t := c.checkExprInner(e, expected)
	c.ExprTypes[e] = t
	return t
}

func (c *Checker) checkExprInner(e ast.Expr, expected types.Type) types.Type {
	switch ex := e.(type) {
	case *ast.IntLit:
		return c.intLitType(ex, expected)
	case *ast.FloatLit:
		return c.floatLitType(ex, expected)
	case *ast.StringLit:
		return types.TypeString
	case *ast.InterpStringExpr:
		for _, part := range ex.Parts {
			if part.Expr != nil {
				c.checkExpr(part.Expr, nil)
			}
		}
		return types.TypeString
	case *ast.CharLit:
		return types.TypeChar
	case *ast.BoolLit:
		return types.TypeBool
	case *ast.SelfExpr:
		if self := c.currentSelf(); self != nil {
			return self
		}
		c.errorAt(ex.Span(), diag.CodeInvalidOperation, "`self` used outside a method body")
		return types.TypeError
	case *ast.Ident:
		return c.checkIdent(ex, expected)
	case *ast.BinaryExpr:
		return c.checkBinaryExpr(ex)
	case *ast.UnaryExpr:
		return c.checkUnaryExpr(ex)
	case *ast.FieldExpr:
		return c.checkFieldExpr(ex)
	case *ast.TupleIndexExpr:
		return c.checkTupleIndexExpr(ex)
	case *ast.IndexExpr:
		return c.checkIndexExpr(ex)
	case *ast.CallExpr:
		return c.checkCallExpr(ex, expected)
	case *ast.MethodCallExpr:
		return c.checkMethodCallExpr(ex, expected)
	case *ast.ClosureExpr:
		return c.checkClosureExpr(ex, expected)
	case *ast.BlockExpr:
		return c.checkBlockBody(ex)
	case *ast.IfExpr:
		return c.checkIfExpr(ex, expected)
	case *ast.MatchExpr:
		return c.checkMatchExpr(ex, expected)
	case *ast.TupleExpr:
		return c.checkTupleExpr(ex, expected)
	case *ast.ArrayExpr:
		return c.checkArrayExpr(ex, expected)
	case *ast.RecordExpr:
		return c.checkRecordExpr(ex, expected)
	case *ast.TypeCastExpr:
		return c.checkTypeCastExpr(ex)
	case *ast.RangeExpr:
		return c.checkRangeExpr(ex)
	case *ast.TryExpr:
		return c.checkTryExpr(ex)
	case *ast.CoalesceExpr:
		return c.checkCoalesceExpr(ex)
	case *ast.GroupExpr:
		return c.checkExpr(ex.Inner, expected)
	default:
		return types.TypeError
	}
}

func (c *Checker) intLitType(lit *ast.IntLit, expected types.Type) types.Type {
	if lit.Suffix != "" {
		if k, ok := primitiveKinds[lit.Suffix]; ok && types.IsIntegerKind(k) {
			return &types.Primitive{Kind: k}
		}
		c.errorAt(lit.Span(), diag.CodeUndefinedType, "unknown integer suffix %q", lit.Suffix)
		return types.TypeError
	}
	if p, ok := expected.(*types.Primitive); ok && types.IsIntegerKind(p.Kind) {
		return p
	}
	return types.TypeI32
}

func (c *Checker) floatLitType(lit *ast.FloatLit, expected types.Type) types.Type {
	if lit.Suffix != "" {
		if k, ok := primitiveKinds[lit.Suffix]; ok && types.IsFloatKind(k) {
			return &types.Primitive{Kind: k}
		}
		c.errorAt(lit.Span(), diag.CodeUndefinedType, "unknown float suffix %q", lit.Suffix)
		return types.TypeError
	}
	if p, ok := expected.(*types.Primitive); ok && types.IsFloatKind(p.Kind) {
		return p
	}
	return types.TypeF64
}

// checkIdent resolves a bare or `::`-qualified name reference. A qualified
// path naming a unit variant (`Shape::Empty`) constructs that variant
// directly, and a bare `None` takes the expected Option type (or
// Option[<error>]); every other path is a plain symbol lookup.
func (c *Checker) checkIdent(e *ast.Ident, expected types.Type) types.Type {
	segs := splitPath(e.Name)
	if len(segs) >= 2 {
		if ownerSym, def, vdef, ok := c.lookupUserVariant(segs); ok {
			if len(vdef.Fields) > 0 {
				c.errorAt(e.Span(), diag.CodeWrongArgumentCount, "variant %q requires arguments", vdef.Name)
				return types.TypeError
			}
			return c.instantiateVariantOwner(ownerSym, def, expected, nil)
		}
	} else if segs[0] == "None" {
		if opt, ok := expected.(*types.Option); ok {
			return opt
		}
		return &types.Option{Elem: types.TypeError}
	}

	sym := c.Table.LookupPath(c.scope, segs)
	if sym == nil {
		c.errorAt(e.Span(), diag.CodeUndefinedSymbol, "undefined name %q", e.Name)
		return types.TypeError
	}
	if sym.Kind == symtab.SymTypeDef || sym.Kind == symtab.SymTraitDef {
		c.errorAt(e.Span(), diag.CodeInvalidOperation, "%q names a type, not a value", e.Name)
		return types.TypeError
	}
	if t, ok := c.SymbolTypes[sym.ID]; ok {
		return t
	}
	return types.TypeError
}

// lookupUserVariant resolves a >=2 segment path as `OwningType::variant`:
// every segment but the last names the owning type_def symbol, the last
// names one of its declared variants.
func (c *Checker) lookupUserVariant(segs []string) (*symtab.Symbol, *types.TypeDef, types.VariantDef, bool) {
	if len(segs) < 2 {
		return nil, nil, types.VariantDef{}, false
	}
	ownerSym := c.Table.LookupPath(c.scope, segs[:len(segs)-1])
	if ownerSym == nil || ownerSym.Kind != symtab.SymTypeDef {
		return nil, nil, types.VariantDef{}, false
	}
	def := c.TypeDefs[ownerSym.ID]
	if def == nil {
		return nil, nil, types.VariantDef{}, false
	}
	name := segs[len(segs)-1]
	for _, v := range def.Variants {
		if v.Name == name {
			return ownerSym, def, v, true
		}
	}
	return nil, nil, types.VariantDef{}, false
}

// instantiateVariantOwner produces the resolved type a constructed value of
// ownerSym's sum type takes: Named if the type takes no arguments, otherwise
// an Instantiated built from expected (when it already names this type) or
// from inferred type-variable bindings collected while checking the
// constructor's arguments.
func (c *Checker) instantiateVariantOwner(ownerSym *symtab.Symbol, def *types.TypeDef, expected types.Type, inferred map[string]types.Type) types.Type {
	if len(def.TypeParams) == 0 {
		return &types.Named{SymbolID: ownerSym.ID, Display: def.Name}
	}
	if inst, ok := expected.(*types.Instantiated); ok && inst.SymbolID == ownerSym.ID {
		return inst
	}
	args := make([]types.Type, len(def.TypeParams))
	for i, p := range def.TypeParams {
		if t, ok := inferred[p]; ok {
			args[i] = t
		} else {
			args[i] = types.TypeError
		}
	}
	return &types.Instantiated{SymbolID: ownerSym.ID, Display: def.Name, Args: args}
}

// inferTypeVar walks paramType (a field/variant type possibly containing
// TypeVar nodes bound to the owning type_def's own parameters) against the
// concrete actual type an argument produced, recording the first binding
// seen for each type variable name.
func inferTypeVar(paramType, actual types.Type, inferred map[string]types.Type) {
	switch pt := paramType.(type) {
	case *types.TypeVar:
		if _, ok := inferred[pt.Name]; !ok {
			inferred[pt.Name] = actual
		}
	case *types.Instantiated:
		if av, ok := actual.(*types.Instantiated); ok && av.SymbolID == pt.SymbolID && len(av.Args) == len(pt.Args) {
			for i := range pt.Args {
				inferTypeVar(pt.Args[i], av.Args[i], inferred)
			}
		}
	case *types.Array:
		if av, ok := actual.(*types.Array); ok {
			inferTypeVar(pt.Elem, av.Elem, inferred)
		}
	case *types.Option:
		if av, ok := actual.(*types.Option); ok {
			inferTypeVar(pt.Elem, av.Elem, inferred)
		}
	case *types.Result:
		if av, ok := actual.(*types.Result); ok {
			inferTypeVar(pt.Ok, av.Ok, inferred)
			inferTypeVar(pt.Err, av.Err, inferred)
		}
	case *types.Tuple:
		if av, ok := actual.(*types.Tuple); ok && len(av.Elems) == len(pt.Elems) {
			for i := range pt.Elems {
				inferTypeVar(pt.Elems[i], av.Elems[i], inferred)
			}
		}
	}
}

// checkBuiltinVariantCall handles the prelude constructors Some/None/Ok/Err,
// which are not symtab-backed symbols.
func (c *Checker) checkBuiltinVariantCall(name string, e *ast.CallExpr, expected types.Type) (types.Type, bool) {
	switch name {
	case "Some":
		if len(e.Args) != 1 {
			c.errorAt(e.Span(), diag.CodeWrongArgumentCount, "Some takes exactly 1 argument, got %d", len(e.Args))
			for _, a := range e.Args {
				c.checkExpr(a, nil)
			}
			return types.TypeError, true
		}
		var elemHint types.Type
		if opt, ok := expected.(*types.Option); ok {
			elemHint = opt.Elem
		}
		elem := c.checkExpr(e.Args[0], elemHint)
		return &types.Option{Elem: elem}, true

	case "None":
		if len(e.Args) != 0 {
			c.errorAt(e.Span(), diag.CodeWrongArgumentCount, "None takes no arguments, got %d", len(e.Args))
		}
		if opt, ok := expected.(*types.Option); ok {
			return opt, true
		}
		return &types.Option{Elem: types.TypeError}, true

	case "Ok":
		if len(e.Args) != 1 {
			c.errorAt(e.Span(), diag.CodeWrongArgumentCount, "Ok takes exactly 1 argument, got %d", len(e.Args))
			for _, a := range e.Args {
				c.checkExpr(a, nil)
			}
			return types.TypeError, true
		}
		var okHint, errHint types.Type
		if res, ok := expected.(*types.Result); ok {
			okHint, errHint = res.Ok, res.Err
		}
		ok := c.checkExpr(e.Args[0], okHint)
		if errHint == nil {
			errHint = types.TypeError
		}
		return &types.Result{Ok: ok, Err: errHint}, true

	case "Err":
		if len(e.Args) != 1 {
			c.errorAt(e.Span(), diag.CodeWrongArgumentCount, "Err takes exactly 1 argument, got %d", len(e.Args))
			for _, a := range e.Args {
				c.checkExpr(a, nil)
			}
			return types.TypeError, true
		}
		var okHint, errHint types.Type
		if res, ok := expected.(*types.Result); ok {
			okHint, errHint = res.Ok, res.Err
		}
		errv := c.checkExpr(e.Args[0], errHint)
		if okHint == nil {
			okHint = types.TypeError
		}
		return &types.Result{Ok: okHint, Err: errv}, true
	}
	return nil, false
}

func (c *Checker) checkVariantCall(ownerSym *symtab.Symbol, def *types.TypeDef, vdef types.VariantDef, e *ast.CallExpr, expected types.Type) types.Type {
	if len(e.Args) != len(vdef.Fields) {
		c.errorAt(e.Span(), diag.CodeWrongArgumentCount, "variant %q takes %d argument(s), got %d", vdef.Name, len(vdef.Fields), len(e.Args))
		for _, a := range e.Args {
			c.checkExpr(a, nil)
		}
		return types.TypeError
	}
	inferred := map[string]types.Type{}
	for i, a := range e.Args {
		want := vdef.Fields[i].Type
		got := c.checkExpr(a, want)
		inferTypeVar(want, got, inferred)
		if !unify.IsAssignable(types.Instantiate(want, inferred), got) {
			if _, isErr := got.(*types.ErrorType); !isErr {
				c.errorAt(a.Span(), diag.CodeTypeMismatch, "variant %q field %d: expected %s, found %s", vdef.Name, i, want, got)
			}
		}
	}
	return c.instantiateVariantOwner(ownerSym, def, expected, inferred)
}

// checkBareBuiltinCall types assert/assert_eq, the two builtins that live
// directly in the root environment rather than under a namespace record.
func (c *Checker) checkBareBuiltinCall(desc *stdlib.Descriptor, e *ast.CallExpr) types.Type {
	if desc.IsEffect && !c.currentEffect() {
		c.errorAt(e.Span(), diag.CodeEffectViolation, "cannot call effect builtin %q from a pure function", desc.Name)
	}
	if desc.Arity >= 0 && len(e.Args) != desc.Arity {
		c.errorAt(e.Span(), diag.CodeWrongArgumentCount, "%s expects %d argument(s), got %d", desc.Name, desc.Arity, len(e.Args))
	}
	for i, a := range e.Args {
		var hint types.Type
		if i < len(desc.Params) {
			hint = desc.Params[i]
		}
		got := c.checkExpr(a, hint)
		if hint != nil && !unify.IsAssignable(hint, got) {
			if _, isErr := got.(*types.ErrorType); !isErr {
				c.errorAt(a.Span(), diag.CodeTypeMismatch, "%s argument %d: expected %s, found %s", desc.Name, i, hint, got)
			}
		}
	}
	if desc.Return != nil {
		return desc.Return
	}
	return types.TypeError
}

func (c *Checker) checkCallExpr(e *ast.CallExpr, expected types.Type) types.Type {
	if id, ok := e.Callee.(*ast.Ident); ok {
		segs := splitPath(id.Name)
		if len(segs) == 1 {
			if t, handled := c.checkBuiltinVariantCall(segs[0], e, expected); handled {
				return t
			}
			if c.Table.Lookup(c.scope, segs[0]) == nil {
				if desc, ok := stdlib.Bare(segs[0]); ok {
					return c.checkBareBuiltinCall(desc, e)
				}
			}
		}
		if len(segs) >= 2 {
			if ownerSym, def, vdef, ok := c.lookupUserVariant(segs); ok {
				return c.checkVariantCall(ownerSym, def, vdef, e, expected)
			}
		}
	}

	calleeType := c.checkExpr(e.Callee, nil)
	fn, ok := calleeType.(*types.Function)
	if !ok {
		if _, isErr := calleeType.(*types.ErrorType); !isErr {
			c.errorAt(e.Callee.Span(), diag.CodeNotCallable, "cannot call a value of type %s", calleeType)
		}
		for _, a := range e.Args {
			c.checkExpr(a, nil)
		}
		return types.TypeError
	}
	if fn.Effect && !c.currentEffect() {
		c.errorAt(e.Span(), diag.CodeEffectViolation, "cannot call an effect function from a pure function")
	}
	if len(e.Args) != len(fn.Params) {
		c.errorAt(e.Span(), diag.CodeWrongArgumentCount, "expected %d argument(s), got %d", len(fn.Params), len(e.Args))
		for _, a := range e.Args {
			c.checkExpr(a, nil)
		}
		return fn.Return
	}
	for i, a := range e.Args {
		got := c.checkExpr(a, fn.Params[i])
		if !unify.IsAssignable(fn.Params[i], got) {
			if _, isErr := got.(*types.ErrorType); !isErr {
				c.errorAt(a.Span(), diag.CodeTypeMismatch, "argument %d: expected %s, found %s", i, fn.Params[i], got)
			}
		}
	}
	return fn.Return
}

// lookupMethod finds the method name declared on recvType, searching every
// trait (for a Self receiver inside a default body) or every impl whose
// target type matches (for a concrete receiver).
func (c *Checker) lookupMethod(recvType types.Type, name string) (*types.Function, bool) {
	if _, ok := recvType.(*types.SelfType); ok {
		for _, trait := range c.Traits {
			if fn, ok := trait.Methods[name]; ok {
				return fn, true
			}
		}
		return nil, false
	}
	var symID symtab.ID
	switch v := recvType.(type) {
	case *types.Named:
		symID = v.SymbolID
	case *types.Instantiated:
		symID = v.SymbolID
	default:
		return nil, false
	}
	for _, impl := range c.Impls {
		if impl.TypeSymbolID != symID {
			continue
		}
		if fn, ok := impl.Methods[name]; ok {
			return fn, true
		}
		// A trait impl that omits a defaulted method still provides it.
		if impl.HasTrait {
			if trait := c.Traits[impl.TraitSymbolID]; trait != nil && trait.Defaults[name] {
				if fn, ok := trait.Methods[name]; ok {
					return fn, true
				}
			}
		}
	}
	return nil, false
}

func (c *Checker) checkMethodCallExpr(e *ast.MethodCallExpr, expected types.Type) types.Type {
	if id, ok := e.Receiver.(*ast.Ident); ok {
		if c.Table.Lookup(c.scope, id.Name) == nil && stdlib.IsNamespace(id.Name) {
			return c.checkBuiltinNamespaceCall(id.Name, e)
		}
	}
	recvType := c.checkExpr(e.Receiver, nil)
	fn, ok := c.lookupMethod(recvType, e.Method.Name)
	if !ok {
		if _, isErr := recvType.(*types.ErrorType); !isErr {
			c.errorAt(e.Method.Span(), diag.CodeUndefinedSymbol, "no method %q on type %s", e.Method.Name, recvType)
		}
		for _, a := range e.Args {
			c.checkExpr(a, nil)
		}
		return types.TypeError
	}
	if fn.Effect && !c.currentEffect() {
		c.errorAt(e.Span(), diag.CodeEffectViolation, "cannot call an effect method from a pure function")
	}
	if len(e.Args) != len(fn.Params) {
		c.errorAt(e.Span(), diag.CodeWrongArgumentCount, "method %q: expected %d argument(s), got %d", e.Method.Name, len(fn.Params), len(e.Args))
		for _, a := range e.Args {
			c.checkExpr(a, nil)
		}
		return fn.Return
	}
	for i, a := range e.Args {
		got := c.checkExpr(a, fn.Params[i])
		if !unify.IsAssignable(fn.Params[i], got) {
			if _, isErr := got.(*types.ErrorType); !isErr {
				c.errorAt(a.Span(), diag.CodeTypeMismatch, "method %q argument %d: expected %s, found %s", e.Method.Name, i, fn.Params[i], got)
			}
		}
	}
	return fn.Return
}

// checkBuiltinNamespaceCall types a call into the standard library's
// capability surface. Builtins carry only the static shape the registry
// declares: effect and arity are always enforced; parameter
// and return types are enforced where the descriptor declares them, and a
// generic builtin's result falls back to the error type so the opaque
// capability surface never produces cascading diagnostics.
func (c *Checker) checkBuiltinNamespaceCall(ns string, e *ast.MethodCallExpr) types.Type {
	desc, ok := stdlib.Signature(ns, e.Method.Name)
	if !ok {
		c.errorAt(e.Method.Span(), diag.CodeUndefinedSymbol, "standard library namespace %q has no function %q", ns, e.Method.Name)
		for _, a := range e.Args {
			c.checkExpr(a, nil)
		}
		return types.TypeError
	}
	if desc.IsEffect && !c.currentEffect() {
		c.errorAt(e.Span(), diag.CodeEffectViolation, "cannot call effect builtin %q from a pure function", ns+"."+e.Method.Name)
	}
	if desc.Arity >= 0 && len(e.Args) != desc.Arity {
		c.errorAt(e.Span(), diag.CodeWrongArgumentCount, "%s.%s expects %d argument(s), got %d", ns, e.Method.Name, desc.Arity, len(e.Args))
	}
	for i, a := range e.Args {
		var hint types.Type
		if i < len(desc.Params) {
			hint = desc.Params[i]
		}
		got := c.checkExpr(a, hint)
		if hint != nil && !unify.IsAssignable(hint, got) {
			if _, isErr := got.(*types.ErrorType); !isErr {
				c.errorAt(a.Span(), diag.CodeTypeMismatch, "%s.%s argument %d: expected %s, found %s", ns, e.Method.Name, i, hint, got)
			}
		}
	}
	if desc.Return != nil {
		return desc.Return
	}
	return types.TypeError
}

func (c *Checker) checkFieldExpr(e *ast.FieldExpr) types.Type {
	recvType := c.checkExpr(e.Receiver, nil)
	fields, sub := c.fieldsOf(recvType)
	for _, f := range fields {
		if f.Name == e.Field.Name {
			return types.Instantiate(f.Type, sub)
		}
	}
	if _, isErr := recvType.(*types.ErrorType); !isErr {
		c.errorAt(e.Field.Span(), diag.CodeNoSuchField, "type %s has no field %q", recvType, e.Field.Name)
	}
	return types.TypeError
}

func (c *Checker) checkTupleIndexExpr(e *ast.TupleIndexExpr) types.Type {
	recvType := c.checkExpr(e.Receiver, nil)
	tup, ok := recvType.(*types.Tuple)
	if !ok || e.Index < 0 || e.Index >= len(tup.Elems) {
		if _, isErr := recvType.(*types.ErrorType); !isErr {
			c.errorAt(e.Span(), diag.CodeNoSuchField, "type %s has no tuple element %d", recvType, e.Index)
		}
		return types.TypeError
	}
	return tup.Elems[e.Index]
}

func (c *Checker) checkIndexExpr(e *ast.IndexExpr) types.Type {
	recvType := c.checkExpr(e.Receiver, nil)
	idxType := c.checkExpr(e.Index, nil)
	if !unify.IsNumeric(idxType) {
		if _, isErr := idxType.(*types.ErrorType); !isErr {
			c.errorAt(e.Index.Span(), diag.CodeInvalidOperation, "index must be numeric, found %s", idxType)
		}
	}
	switch v := recvType.(type) {
	case *types.Array:
		return v.Elem
	case *types.Primitive:
		if v.Kind == types.Str {
			return types.TypeChar
		}
	}
	if _, isErr := recvType.(*types.ErrorType); !isErr {
		c.errorAt(e.Receiver.Span(), diag.CodeInvalidOperation, "type %s cannot be indexed", recvType)
	}
	return types.TypeError
}

func (c *Checker) checkClosureExpr(e *ast.ClosureExpr, expected types.Type) types.Type {
	var expectedFn *types.Function
	if fn, ok := expected.(*types.Function); ok {
		expectedFn = fn
	}
	scope := c.pushScope(symtab.ScopeFunction, "<closure>")
	params := make([]types.Type, len(e.Params))
	for i, p := range e.Params {
		var pt types.Type
		switch {
		case p.Type != nil:
			pt = c.resolveTypeExpr(p.Type)
		case expectedFn != nil && i < len(expectedFn.Params):
			pt = expectedFn.Params[i]
		default:
			c.errorAt(p.Span(), diag.CodeUndefinedType, "closure parameter requires a type annotation")
			pt = types.TypeError
		}
		params[i] = pt
		c.bindPatternInScope(p.Pattern, pt, scope)
	}

	explicitRet := e.ReturnType != nil || expectedFn != nil
	ret := types.Type(types.TypeVoid)
	if e.ReturnType != nil {
		ret = c.resolveTypeExpr(e.ReturnType)
	} else if expectedFn != nil {
		ret = expectedFn.Return
	}

	c.pushEffect(e.IsEffect)
	c.pushReturn(ret)
	bodyType := c.checkBlockBody(e.Body)
	if explicitRet {
		if e.Body.Tail != nil && !unify.IsAssignable(ret, bodyType) {
			c.errorAt(e.Body.Tail.Span(), diag.CodeTypeMismatch, "closure returns %s, body produces %s", ret, bodyType)
		}
	} else if e.Body.Tail != nil {
		ret = bodyType
	}
	c.popReturn()
	c.popEffect()
	c.popScope(scope)

	return &types.Function{Params: params, Return: ret, Effect: e.IsEffect}
}

func (c *Checker) checkIfExpr(e *ast.IfExpr, expected types.Type) types.Type {
	condType := c.checkExpr(e.Cond, types.TypeBool)
	if !unify.TypesEqual(condType, types.TypeBool) {
		if _, isErr := condType.(*types.ErrorType); !isErr {
			c.errorAt(e.Cond.Span(), diag.CodeTypeMismatch, "if condition must be bool, found %s", condType)
		}
	}
	thenType := c.checkBlockBody(e.Then)
	if e.Else == nil {
		return types.TypeVoid
	}
	elseType := c.checkExpr(e.Else, expected)
	if !unify.IsAssignable(thenType, elseType) && !unify.IsAssignable(elseType, thenType) {
		if _, isErr := elseType.(*types.ErrorType); !isErr {
			c.errorAt(e.Else.Span(), diag.CodeTypeMismatch, "if branches have incompatible types %s and %s", thenType, elseType)
		}
	}
	return thenType
}

func (c *Checker) checkMatchExpr(e *ast.MatchExpr, expected types.Type) types.Type {
	subjType := c.checkExpr(e.Subject, nil)
	subject := c.classifySubject(subjType)
	if len(e.Arms) == 0 {
		c.errorAt(e.Span(), diag.CodeNonExhaustive, "match has no arms")
		return types.TypeError
	}

	var resultType types.Type
	arms := make([]pattern.Arm, 0, len(e.Arms))
	for _, arm := range e.Arms {
		scope := c.pushScope(symtab.ScopeBlock, "<match-arm>")
		guarded := false
		if g, ok := arm.Pattern.(*ast.PatternGuarded); ok {
			guarded = true
			c.bindPatternInScope(g.Inner, subjType, scope)
			guardType := c.checkExpr(g.Guard, types.TypeBool)
			if !unify.TypesEqual(guardType, types.TypeBool) {
				if _, isErr := guardType.(*types.ErrorType); !isErr {
					c.errorAt(g.Guard.Span(), diag.CodeTypeMismatch, "match guard must be bool, found %s", guardType)
				}
			}
		} else {
			c.bindPatternInScope(arm.Pattern, subjType, scope)
		}

		bodyType := c.checkExpr(arm.Body, expected)
		switch {
		case resultType == nil:
			resultType = bodyType
		case !unify.IsAssignable(resultType, bodyType) && !unify.IsAssignable(bodyType, resultType):
			if _, isErr := bodyType.(*types.ErrorType); !isErr {
				c.errorAt(arm.Body.Span(), diag.CodeTypeMismatch, "match arm produces %s, expected %s", bodyType, resultType)
			}
		}

		arms = append(arms, pattern.Arm{Space: pattern.FromPattern(arm.Pattern), Guarded: guarded})
		c.popScope(scope)
	}

	if missing := pattern.Missing(subject, arms); len(missing) > 0 {
		c.errorAt(e.Span(), diag.CodeNonExhaustive, "non-exhaustive match: missing patterns for %s", pattern.Describe(missing))
	}
	for _, idx := range pattern.Unreachable(arms) {
		c.warnAt(e.Arms[idx].Span(), diag.CodeUnreachablePattern, "unreachable pattern")
	}

	if resultType == nil {
		resultType = types.TypeVoid
	}
	return resultType
}

func (c *Checker) classifySubject(t types.Type) pattern.Subject {
	switch v := t.(type) {
	case *types.Primitive:
		if v.Kind == types.Bool {
			return pattern.Subject{Kind: pattern.SubjectBool}
		}
		return pattern.Subject{Kind: pattern.SubjectOther}
	case *types.Option:
		return pattern.Subject{Kind: pattern.SubjectOption}
	case *types.Result:
		return pattern.Subject{Kind: pattern.SubjectResult}
	case *types.Tuple:
		return pattern.Subject{Kind: pattern.SubjectTuple}
	case *types.Named:
		return c.classifyNamedSubject(v.SymbolID)
	case *types.Instantiated:
		return c.classifyNamedSubject(v.SymbolID)
	default:
		return pattern.Subject{Kind: pattern.SubjectOther}
	}
}

func (c *Checker) classifyNamedSubject(id symtab.ID) pattern.Subject {
	def := c.TypeDefs[id]
	if def == nil {
		return pattern.Subject{Kind: pattern.SubjectOther}
	}
	if def.Variants != nil {
		names := make([]string, len(def.Variants))
		for i, v := range def.Variants {
			names[i] = v.Name
		}
		return pattern.Subject{Kind: pattern.SubjectSum, Variants: names}
	}
	if def.Fields != nil {
		return pattern.Subject{Kind: pattern.SubjectProduct}
	}
	if def.AliasOf != nil {
		return c.classifySubject(def.AliasOf)
	}
	return pattern.Subject{Kind: pattern.SubjectOther}
}

func (c *Checker) checkTupleExpr(e *ast.TupleExpr, expected types.Type) types.Type {
	var expectedTup *types.Tuple
	if t, ok := expected.(*types.Tuple); ok && len(t.Elems) == len(e.Elems) {
		expectedTup = t
	}
	elems := make([]types.Type, len(e.Elems))
	for i, el := range e.Elems {
		var hint types.Type
		if expectedTup != nil {
			hint = expectedTup.Elems[i]
		}
		elems[i] = c.checkExpr(el, hint)
	}
	return &types.Tuple{Elems: elems}
}

func (c *Checker) checkArrayExpr(e *ast.ArrayExpr, expected types.Type) types.Type {
	var elemHint types.Type
	if a, ok := expected.(*types.Array); ok {
		elemHint = a.Elem
	}
	if len(e.Elems) == 0 {
		if elemHint != nil {
			return &types.Array{Elem: elemHint}
		}
		return &types.Array{Elem: types.TypeError}
	}
	first := c.checkExpr(e.Elems[0], elemHint)
	for _, el := range e.Elems[1:] {
		got := c.checkExpr(el, first)
		if !unify.IsAssignable(first, got) {
			if _, isErr := got.(*types.ErrorType); !isErr {
				c.errorAt(el.Span(), diag.CodeTypeMismatch, "array element type %s does not match %s", got, first)
			}
		}
	}
	return &types.Array{Elem: first}
}

func (c *Checker) checkRecordExpr(e *ast.RecordExpr, expected types.Type) types.Type {
	segs := splitPath(e.TypeName.Name)
	if ownerSym, def, vdef, ok := c.lookupUserVariant(segs); ok {
		return c.checkRecordFields(ownerSym, def, vdef.Fields, vdef.Name, e, expected)
	}
	sym := c.Table.LookupPath(c.scope, segs)
	if sym == nil || sym.Kind != symtab.SymTypeDef {
		c.errorAt(e.TypeName.Span(), diag.CodeUndefinedType, "undefined type %q", e.TypeName.Name)
		for _, f := range e.Fields {
			c.checkExpr(f.Value, nil)
		}
		return types.TypeError
	}
	def := c.TypeDefs[sym.ID]
	if def == nil {
		return types.TypeError
	}
	return c.checkRecordFields(sym, def, def.Fields, def.Name, e, expected)
}

func (c *Checker) checkRecordFields(ownerSym *symtab.Symbol, def *types.TypeDef, fieldDefs []types.FieldDef, displayName string, e *ast.RecordExpr, expected types.Type) types.Type {
	inferred := map[string]types.Type{}
	seen := map[string]bool{}
	for _, rf := range e.Fields {
		var fd *types.FieldDef
		for i := range fieldDefs {
			if fieldDefs[i].Name == rf.Name.Name {
				fd = &fieldDefs[i]
				break
			}
		}
		if fd == nil {
			c.errorAt(rf.Name.Span(), diag.CodeNoSuchField, "%q has no field %q", displayName, rf.Name.Name)
			c.checkExpr(rf.Value, nil)
			continue
		}
		seen[rf.Name.Name] = true
		got := c.checkExpr(rf.Value, fd.Type)
		inferTypeVar(fd.Type, got, inferred)
		if !unify.IsAssignable(types.Instantiate(fd.Type, inferred), got) {
			if _, isErr := got.(*types.ErrorType); !isErr {
				c.errorAt(rf.Value.Span(), diag.CodeTypeMismatch, "field %q: expected %s, found %s", rf.Name.Name, fd.Type, got)
			}
		}
	}
	for _, fd := range fieldDefs {
		if !seen[fd.Name] {
			c.errorAt(e.Span(), diag.CodeWrongArgumentCount, "missing field %q in %s literal", fd.Name, displayName)
		}
	}
	return c.instantiateVariantOwner(ownerSym, def, expected, inferred)
}

func (c *Checker) checkTypeCastExpr(e *ast.TypeCastExpr) types.Type {
	valType := c.checkExpr(e.Value, nil)
	target := c.resolveTypeExpr(e.Type)
	if !unify.IsValidCast(valType, target) {
		if _, isErr := valType.(*types.ErrorType); !isErr {
			c.errorAt(e.Span(), diag.CodeInvalidCast, "cannot cast %s to %s", valType, target)
		}
	}
	return target
}

// checkRangeExpr types a range as an iterable array of its bound type,
// integrating with unify.IsIterable/GetIterableElement without a dedicated
// range resolved-type.
func (c *Checker) checkRangeExpr(e *ast.RangeExpr) types.Type {
	elem := types.Type(types.TypeI32)
	if e.Start != nil {
		elem = c.checkExpr(e.Start, nil)
		if !unify.IsNumeric(elem) && !unify.TypesEqual(elem, types.TypeChar) {
			if _, isErr := elem.(*types.ErrorType); !isErr {
				c.errorAt(e.Start.Span(), diag.CodeInvalidOperation, "range bound must be numeric or char, found %s", elem)
			}
		}
	}
	if e.End != nil {
		endType := c.checkExpr(e.End, elem)
		if !unify.TypesEqual(endType, elem) {
			if _, isErr := endType.(*types.ErrorType); !isErr {
				c.errorAt(e.End.Span(), diag.CodeTypeMismatch, "range bounds must share a type: %s vs %s", elem, endType)
			}
		}
	}
	return &types.Array{Elem: elem}
}

func (c *Checker) checkTryExpr(e *ast.TryExpr) types.Type {
	if !c.currentEffect() {
		c.errorAt(e.Span(), diag.CodeEffectViolation, "`?` is only legal inside an effect function")
	}
	valType := c.checkExpr(e.Value, nil)
	switch v := valType.(type) {
	case *types.Result:
		if retRes, ok := c.currentReturn().(*types.Result); ok {
			if !unify.TypesEqual(retRes.Err, v.Err) {
				c.errorAt(e.Span(), diag.CodeEffectViolation, "`?` error type %s does not match enclosing function's error type %s", v.Err, retRes.Err)
			}
		} else {
			c.errorAt(e.Span(), diag.CodeEffectViolation, "`?` on a Result requires the enclosing function to return a Result")
		}
		return v.Ok
	case *types.Option:
		if _, ok := c.currentReturn().(*types.Option); !ok {
			c.errorAt(e.Span(), diag.CodeEffectViolation, "`?` on an Option requires the enclosing function to return an Option")
		}
		return v.Elem
	default:
		if _, isErr := valType.(*types.ErrorType); !isErr {
			c.errorAt(e.Span(), diag.CodeInvalidUnaryOperand, "`?` requires a Result or Option operand, found %s", valType)
		}
		return types.TypeError
	}
}

func (c *Checker) checkCoalesceExpr(e *ast.CoalesceExpr) types.Type {
	valType := c.checkExpr(e.Value, nil)
	switch v := valType.(type) {
	case *types.Option:
		got := c.checkExpr(e.Default, v.Elem)
		if !unify.IsAssignable(v.Elem, got) {
			if _, isErr := got.(*types.ErrorType); !isErr {
				c.errorAt(e.Default.Span(), diag.CodeTypeMismatch, "`??` default: expected %s, found %s", v.Elem, got)
			}
		}
		return v.Elem
	case *types.Result:
		got := c.checkExpr(e.Default, v.Ok)
		if !unify.IsAssignable(v.Ok, got) {
			if _, isErr := got.(*types.ErrorType); !isErr {
				c.errorAt(e.Default.Span(), diag.CodeTypeMismatch, "`??` default: expected %s, found %s", v.Ok, got)
			}
		}
		return v.Ok
	default:
		if _, isErr := valType.(*types.ErrorType); !isErr {
			c.errorAt(e.Span(), diag.CodeInvalidOperation, "`??` requires a Result or Option operand, found %s", valType)
		}
		return types.TypeError
	}
}

func binOpSymbol(op ast.BinaryOp) string {
	switch op {
	case ast.OpAdd:
		return "+"
	case ast.OpSub:
		return "-"
	case ast.OpMul:
		return "*"
	case ast.OpDiv:
		return "/"
	case ast.OpMod:
		return "%"
	case ast.OpLt:
		return "<"
	case ast.OpLe:
		return "<="
	case ast.OpGt:
		return ">"
	case ast.OpGe:
		return ">="
	case ast.OpEq:
		return "=="
	case ast.OpNotEq:
		return "!="
	case ast.OpAnd:
		return "&&"
	case ast.OpOr:
		return "||"
	case ast.OpIs:
		return "is"
	case ast.OpIn:
		return "in"
	default:
		return "?"
	}
}

func (c *Checker) checkBinaryExpr(e *ast.BinaryExpr) types.Type {
	switch e.Op {
	case ast.OpAnd, ast.OpOr:
		lt := c.checkExpr(e.Left, types.TypeBool)
		rt := c.checkExpr(e.Right, types.TypeBool)
		if !unify.TypesEqual(lt, types.TypeBool) {
			if _, isErr := lt.(*types.ErrorType); !isErr {
				c.errorAt(e.Left.Span(), diag.CodeInvalidBinaryOperand, "operand of %q must be bool, found %s", binOpSymbol(e.Op), lt)
			}
		}
		if !unify.TypesEqual(rt, types.TypeBool) {
			if _, isErr := rt.(*types.ErrorType); !isErr {
				c.errorAt(e.Right.Span(), diag.CodeInvalidBinaryOperand, "operand of %q must be bool, found %s", binOpSymbol(e.Op), rt)
			}
		}
		return types.TypeBool

	case ast.OpEq, ast.OpNotEq:
		lt := c.checkExpr(e.Left, nil)
		rt := c.checkExpr(e.Right, lt)
		if !unify.TypesEqual(lt, rt) {
			if _, isErr := rt.(*types.ErrorType); !isErr {
				c.errorAt(e.Span(), diag.CodeInvalidBinaryOperand, "cannot compare %s and %s", lt, rt)
			}
		} else if !unify.IsEquatable(lt) {
			if _, isErr := lt.(*types.ErrorType); !isErr {
				c.errorAt(e.Span(), diag.CodeInvalidBinaryOperand, "type %s does not support %q", lt, binOpSymbol(e.Op))
			}
		}
		return types.TypeBool

	case ast.OpLt, ast.OpLe, ast.OpGt, ast.OpGe:
		lt := c.checkExpr(e.Left, nil)
		rt := c.checkExpr(e.Right, lt)
		if !unify.TypesEqual(lt, rt) {
			if _, isErr := rt.(*types.ErrorType); !isErr {
				c.errorAt(e.Span(), diag.CodeInvalidBinaryOperand, "cannot compare %s and %s", lt, rt)
			}
		} else if !unify.IsComparable(lt) {
			if _, isErr := lt.(*types.ErrorType); !isErr {
				c.errorAt(e.Span(), diag.CodeInvalidBinaryOperand, "type %s does not support %q", lt, binOpSymbol(e.Op))
			}
		}
		return types.TypeBool

	case ast.OpAdd, ast.OpSub, ast.OpMul, ast.OpDiv, ast.OpMod:
		lt := c.checkExpr(e.Left, nil)
		rt := c.checkExpr(e.Right, lt)
		if !unify.TypesEqual(lt, rt) || !unify.IsNumeric(lt) {
			_, lErr := lt.(*types.ErrorType)
			_, rErr := rt.(*types.ErrorType)
			if !lErr && !rErr {
				c.errorAt(e.Span(), diag.CodeInvalidBinaryOperand, "operator %q requires matching numeric operands, found %s and %s", binOpSymbol(e.Op), lt, rt)
			}
			return types.TypeError
		}
		return lt

	case ast.OpIs:
		lt := c.checkExpr(e.Left, nil)
		c.checkIsOperand(lt, e.Right)
		return types.TypeBool

	case ast.OpIn:
		rt := c.checkExpr(e.Right, nil)
		lt := c.checkExpr(e.Left, unify.GetIterableElement(rt))
		if !unify.IsIterable(rt) {
			if _, isErr := rt.(*types.ErrorType); !isErr {
				c.errorAt(e.Right.Span(), diag.CodeInvalidBinaryOperand, "type %s is not iterable", rt)
			}
		} else if elem := unify.GetIterableElement(rt); elem != nil && !unify.TypesEqual(lt, elem) {
			if _, isErr := lt.(*types.ErrorType); !isErr {
				c.errorAt(e.Span(), diag.CodeInvalidBinaryOperand, "cannot test %s `in` %s", lt, rt)
			}
		}
		return types.TypeBool

	default:
		return types.TypeError
	}
}

func (c *Checker) checkIsOperand(lt types.Type, right ast.Expr) {
	id, ok := right.(*ast.Ident)
	if !ok {
		c.errorAt(right.Span(), diag.CodeInvalidBinaryOperand, "right-hand side of `is` must name a variant")
		return
	}
	name := id.Name
	switch v := lt.(type) {
	case *types.Option:
		if name != "Some" && name != "None" {
			c.errorAt(right.Span(), diag.CodeInvalidBinaryOperand, "Option has no variant %q", name)
		}
	case *types.Result:
		if name != "Ok" && name != "Err" {
			c.errorAt(right.Span(), diag.CodeInvalidBinaryOperand, "Result has no variant %q", name)
		}
	case *types.Named:
		c.checkIsVariantName(v.SymbolID, name, right)
	case *types.Instantiated:
		c.checkIsVariantName(v.SymbolID, name, right)
	default:
		if _, isErr := lt.(*types.ErrorType); !isErr {
			c.errorAt(right.Span(), diag.CodeInvalidBinaryOperand, "type %s has no variants", lt)
		}
	}
}

func (c *Checker) checkIsVariantName(ownerID symtab.ID, name string, right ast.Expr) {
	def := c.TypeDefs[ownerID]
	if def == nil {
		return
	}
	for _, v := range def.Variants {
		if v.Name == name {
			return
		}
	}
	c.errorAt(right.Span(), diag.CodeInvalidBinaryOperand, "type %s has no variant %q", def.Name, name)
}

func (c *Checker) checkUnaryExpr(e *ast.UnaryExpr) types.Type {
	operandType := c.checkExpr(e.Operand, nil)
	switch e.Op {
	case ast.OpNeg:
		if !unify.IsNumeric(operandType) {
			if _, isErr := operandType.(*types.ErrorType); !isErr {
				c.errorAt(e.Span(), diag.CodeInvalidUnaryOperand, "unary `-` requires a numeric operand, found %s", operandType)
			}
			return types.TypeError
		}
		return operandType
	case ast.OpNot:
		if !unify.TypesEqual(operandType, types.TypeBool) {
			if _, isErr := operandType.(*types.ErrorType); !isErr {
				c.errorAt(e.Span(), diag.CodeInvalidUnaryOperand, "unary `!` requires a bool operand, found %s", operandType)
			}
		}
		return types.TypeBool
	default:
		return types.TypeError
	}
}
