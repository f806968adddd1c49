package check

import (
	"github.com/lucent-lang/lucent/internal/ast"
	"github.com/lucent-lang/lucent/internal/diag"
	"github.com/lucent-lang/lucent/internal/symtab"
	"github.com/lucent-lang/lucent/internal/types"
	"github.com/lucent-lang/lucent/internal/unify"
)

// collectImports records each import's binding name so a later reference
// produces a targeted diagnostic. Resolving an import to another compiled
// file's symbols is module loading, which is out of scope — Lucent's
// checker operates on one compilation unit.
func (c *Checker) collectImports(file *ast.File) {
	for _, imp := range file.Imports {
		name := importBindingName(imp)
		if _, err := c.Table.Define(c.Table.Root, name, symtab.SymImportAlias, imp.Span(), false, imp); err != nil {
			c.errorAt(imp.Span(), diag.CodeDuplicateDefinition, "duplicate import binding %q", name)
		}
	}
}

func importBindingName(imp *ast.ImportDecl) string {
	if imp.Alias != nil {
		return imp.Alias.Name
	}
	if len(imp.Path) == 0 {
		return ""
	}
	return imp.Path[len(imp.Path)-1].Name
}

// collectDecls is the checker's pass one + the signature half of pass two:
// every top-level name is reserved first so forward references resolve
// regardless of declaration order, then each declaration's own signature
// (field types, function types, trait method shapes) is resolved now that
// every name exists.
func (c *Checker) collectDecls(file *ast.File) {
	for _, d := range file.Decls {
		c.declareSymbol(d)
	}
	for _, d := range file.Decls {
		c.resolveSignature(d)
	}
}

func (c *Checker) declareSymbol(d ast.Decl) {
	switch decl := d.(type) {
	case *ast.FnDecl:
		c.defineOrError(decl.Name, symtab.SymFunction, decl.Pub, decl)
	case *ast.ConstDecl:
		c.defineOrError(decl.Name, symtab.SymVariable, decl.Pub, decl)
	case *ast.LetDecl:
		c.declareTopLevelPattern(decl.Pattern, decl.Pub, decl)
	case *ast.ProductTypeDecl:
		if sym := c.defineOrError(decl.Name, symtab.SymTypeDef, decl.Pub, decl); sym != nil {
			sym.TypeDefKind = symtab.TypeDefProduct
		}
	case *ast.SumTypeDecl:
		if sym := c.defineOrError(decl.Name, symtab.SymTypeDef, decl.Pub, decl); sym != nil {
			sym.TypeDefKind = symtab.TypeDefSum
			for _, v := range decl.Variants {
				c.Table.DefineMember(sym, v.Name.Name, symtab.SymFunction, v.Span(), v)
			}
		}
	case *ast.AliasTypeDecl:
		if sym := c.defineOrError(decl.Name, symtab.SymTypeDef, decl.Pub, decl); sym != nil {
			sym.TypeDefKind = symtab.TypeDefAlias
		}
	case *ast.TraitDecl:
		if sym := c.defineOrError(decl.Name, symtab.SymTraitDef, decl.Pub, decl); sym != nil {
			for _, m := range decl.Methods {
				c.Table.DefineMember(sym, m.Name.Name, symtab.SymFunction, m.Span(), m)
			}
		}
	case *ast.ImplDecl, *ast.TestDecl, *ast.ModuleDecl:
		// no top-level symbol of their own
	}
}

func (c *Checker) defineOrError(name *ast.Ident, kind symtab.SymbolKind, pub bool, node ast.Node) *symtab.Symbol {
	sym, err := c.Table.Define(c.Table.Root, name.Name, kind, name.Span(), pub, node)
	if err != nil {
		c.errorAt(name.Span(), diag.CodeDuplicateDefinition, "duplicate definition of %q", name.Name)
		return nil
	}
	return sym
}

func (c *Checker) resolveSignature(d ast.Decl) {
	switch decl := d.(type) {
	case *ast.FnDecl:
		c.resolveFnSignature(decl)
	case *ast.ConstDecl:
		if sym := c.Table.LookupLocal(c.Table.Root, decl.Name.Name); sym != nil {
			c.SymbolTypes[sym.ID] = c.resolveTypeExpr(decl.Type)
		}
	case *ast.LetDecl:
		c.bindTopLevelPattern(decl.Pattern, c.resolveTypeExpr(decl.Type))
	case *ast.ProductTypeDecl:
		c.resolveProductTypeDef(decl)
	case *ast.SumTypeDecl:
		c.resolveSumTypeDef(decl)
	case *ast.AliasTypeDecl:
		c.resolveAliasTypeDef(decl)
	case *ast.TraitDecl:
		c.resolveTraitDef(decl)
	case *ast.ImplDecl:
		c.resolveImplDef(decl)
	}
}

func (c *Checker) resolveFnSignature(decl *ast.FnDecl) *types.Function {
	sym := c.Table.LookupLocal(c.Table.Root, decl.Name.Name)
	c.pushTypeVars(buildTypeVarMap(decl.TypeParams))
	params := make([]types.Type, len(decl.Params))
	for i, p := range decl.Params {
		params[i] = c.resolveTypeExpr(p.Type)
	}
	ret := types.Type(types.TypeVoid)
	if decl.ReturnType != nil {
		ret = c.resolveTypeExpr(decl.ReturnType)
	}
	c.popTypeVars()
	fn := &types.Function{Params: params, Return: ret, Effect: decl.IsEffect}
	if sym != nil {
		c.SymbolTypes[sym.ID] = fn
	}
	return fn
}

func (c *Checker) resolveProductTypeDef(decl *ast.ProductTypeDecl) {
	sym := c.Table.LookupLocal(c.Table.Root, decl.Name.Name)
	if sym == nil {
		return
	}
	c.pushTypeVars(buildTypeVarMap(decl.TypeParams))
	fields := make([]types.FieldDef, len(decl.Fields))
	for i, f := range decl.Fields {
		fields[i] = types.FieldDef{Name: f.Name.Name, Type: c.resolveTypeExpr(f.Type)}
	}
	c.popTypeVars()
	c.TypeDefs[sym.ID] = &types.TypeDef{
		SymbolID: sym.ID, Name: decl.Name.Name,
		TypeParams: genericParamNames(decl.TypeParams),
		Fields:     fields,
	}
}

func (c *Checker) resolveSumTypeDef(decl *ast.SumTypeDecl) {
	sym := c.Table.LookupLocal(c.Table.Root, decl.Name.Name)
	if sym == nil {
		return
	}
	c.pushTypeVars(buildTypeVarMap(decl.TypeParams))
	variants := make([]types.VariantDef, len(decl.Variants))
	for i, v := range decl.Variants {
		fields := make([]types.FieldDef, len(v.Fields))
		named := false
		for j, f := range v.Fields {
			fields[j] = types.FieldDef{Name: f.Name.Name, Type: c.resolveTypeExpr(f.Type)}
			if f.Name.Name != itoaField(j) {
				named = true
			}
		}
		variants[i] = types.VariantDef{Name: v.Name.Name, Fields: fields, Named: named}
	}
	c.popTypeVars()
	c.TypeDefs[sym.ID] = &types.TypeDef{
		SymbolID: sym.ID, Name: decl.Name.Name,
		TypeParams: genericParamNames(decl.TypeParams),
		Variants:   variants,
	}
}

func itoaField(i int) string {
	digits := "0123456789"
	if i < 10 {
		return string(digits[i])
	}
	// Variant arities beyond 10 are exotic; fall back to a stable scheme
	// rather than guessing at formatting the parser never itself produces.
	out := []byte{}
	for n := i; n > 0; n /= 10 {
		out = append([]byte{digits[n%10]}, out...)
	}
	return string(out)
}

func (c *Checker) resolveAliasTypeDef(decl *ast.AliasTypeDecl) {
	sym := c.Table.LookupLocal(c.Table.Root, decl.Name.Name)
	if sym == nil {
		return
	}
	c.pushTypeVars(buildTypeVarMap(decl.TypeParams))
	aliasOf := c.resolveTypeExpr(decl.Underlying)
	c.popTypeVars()
	c.TypeDefs[sym.ID] = &types.TypeDef{
		SymbolID: sym.ID, Name: decl.Name.Name,
		TypeParams: genericParamNames(decl.TypeParams),
		AliasOf:    aliasOf,
	}
}

func (c *Checker) resolveTraitDef(decl *ast.TraitDecl) {
	sym := c.Table.LookupLocal(c.Table.Root, decl.Name.Name)
	if sym == nil {
		return
	}
	c.pushTypeVars(buildTypeVarMap(decl.TypeParams))
	c.pushSelf(&types.SelfType{})
	methods := map[string]*types.Function{}
	effects := map[string]bool{}
	defaults := map[string]bool{}
	for _, m := range decl.Methods {
		params := make([]types.Type, len(m.Params))
		for i, p := range m.Params {
			params[i] = c.resolveTypeExpr(p.Type)
		}
		ret := types.Type(types.TypeVoid)
		if m.ReturnType != nil {
			ret = c.resolveTypeExpr(m.ReturnType)
		}
		methods[m.Name.Name] = &types.Function{Params: params, Return: ret, Effect: m.IsEffect}
		effects[m.Name.Name] = m.IsEffect
		defaults[m.Name.Name] = m.Default != nil
	}
	c.popSelf()
	c.popTypeVars()
	c.Traits[sym.ID] = &types.TraitDef{SymbolID: sym.ID, Name: decl.Name.Name, Methods: methods, Effects: effects, Defaults: defaults}
}

func (c *Checker) resolveImplDef(decl *ast.ImplDecl) {
	c.pushTypeVars(buildTypeVarMap(decl.TypeParams))
	implType := c.resolveTypeExpr(decl.Type)
	c.pushSelf(implType)

	var traitSym *symtab.Symbol
	if decl.Trait != nil {
		traitSym = c.Table.Lookup(c.scope, decl.Trait.Name)
		if traitSym == nil || traitSym.Kind != symtab.SymTraitDef {
			c.errorAt(decl.Trait.Span(), diag.CodeUndefinedSymbol, "undefined trait %q", decl.Trait.Name)
		}
	}

	methods := map[string]*types.Function{}
	for _, m := range decl.Methods {
		c.pushTypeVars(buildTypeVarMap(m.TypeParams))
		params := make([]types.Type, len(m.Params))
		for i, p := range m.Params {
			params[i] = c.resolveTypeExpr(p.Type)
		}
		ret := types.Type(types.TypeVoid)
		if m.ReturnType != nil {
			ret = c.resolveTypeExpr(m.ReturnType)
		}
		c.popTypeVars()
		methods[m.Name.Name] = &types.Function{Params: params, Return: ret, Effect: m.IsEffect}
	}

	c.popSelf()
	c.popTypeVars()

	var typeSymID symtab.ID
	switch v := implType.(type) {
	case *types.Named:
		typeSymID = v.SymbolID
	case *types.Instantiated:
		typeSymID = v.SymbolID
	}

	impl := &types.ImplDef{HasTrait: traitSym != nil, Methods: methods, TypeSymbolID: typeSymID}
	if traitSym != nil {
		impl.TraitSymbolID = traitSym.ID
		c.checkTraitConformance(decl, traitSym, impl)
	}
	c.Impls = append(c.Impls, impl)
}

// checkTraitConformance validates that impl provides every non-default
// trait method with an assignable signature.
func (c *Checker) checkTraitConformance(decl *ast.ImplDecl, traitSym *symtab.Symbol, impl *types.ImplDef) {
	trait := c.Traits[traitSym.ID]
	if trait == nil {
		return
	}
	for name, sig := range trait.Methods {
		implSig, has := impl.Methods[name]
		if !has {
			if !trait.Defaults[name] {
				c.errorAt(decl.Span(), diag.CodeMissingTraitImpl, "impl of trait %q is missing required method %q", traitSym.Name, name)
			}
			continue
		}
		if len(implSig.Params) != len(sig.Params) {
			c.errorAt(decl.Span(), diag.CodeTraitSignatureMismatch, "method %q: expected %d parameter(s), impl has %d", name, len(sig.Params), len(implSig.Params))
			continue
		}
		for i := range sig.Params {
			if !unify.IsAssignable(sig.Params[i], implSig.Params[i]) {
				c.errorAt(decl.Span(), diag.CodeTraitSignatureMismatch, "method %q parameter %d: trait declares %s, impl declares %s", name, i, sig.Params[i], implSig.Params[i])
			}
		}
		if !unify.IsAssignable(sig.Return, implSig.Return) {
			c.errorAt(decl.Span(), diag.CodeTraitSignatureMismatch, "method %q: trait declares return type %s, impl declares %s", name, sig.Return, implSig.Return)
		}
		if sig.Effect != implSig.Effect {
			c.errorAt(decl.Span(), diag.CodeTraitSignatureMismatch, "method %q: effect annotation does not match trait declaration", name)
		}
	}
}

// checkDecls is pass two: walk every declaration body now that every
// signature is known.
func (c *Checker) checkDecls(file *ast.File) {
	for _, d := range file.Decls {
		switch decl := d.(type) {
		case *ast.FnDecl:
			if decl.Name.Name == "main" && !decl.IsEffect {
				c.errorAt(decl.Span(), diag.CodeEffectViolation, "main function must be declared with the effect keyword")
			}
			c.checkFnBody(decl, nil)
		case *ast.ConstDecl:
			c.checkConstOrLet(decl.Type, decl.Value)
		case *ast.LetDecl:
			c.checkConstOrLet(decl.Type, decl.Value)
		case *ast.TraitDecl:
			c.checkTraitDefaults(decl)
		case *ast.ImplDecl:
			c.checkImplBodies(decl)
		case *ast.TestDecl:
			c.checkTestDecl(decl)
		}
	}
}

func (c *Checker) checkConstOrLet(typeExpr ast.TypeExpr, value ast.Expr) {
	want := c.resolveTypeExpr(typeExpr)
	got := c.checkExpr(value, want)
	if !unify.IsAssignable(want, got) {
		c.errorAt(value.Span(), diag.CodeTypeMismatch, "expected type %s, found %s", want, got)
	}
}

// checkFnBody checks decl's body. selfType is non-nil when decl is a trait
// default or impl method, in which case it is pushed as the `Self` type for
// the duration of the body.
func (c *Checker) checkFnBody(decl *ast.FnDecl, selfType types.Type) {
	if decl.Body == nil {
		return
	}
	c.pushTypeVars(buildTypeVarMap(decl.TypeParams))
	if selfType != nil {
		c.pushSelf(selfType)
	}
	c.pushEffect(decl.IsEffect)
	ret := types.Type(types.TypeVoid)
	if decl.ReturnType != nil {
		ret = c.resolveTypeExpr(decl.ReturnType)
	}
	c.pushReturn(ret)

	scope := c.pushScope(symtab.ScopeFunction, decl.Name.Name)
	for _, p := range decl.Params {
		c.bindPatternInScope(p.Pattern, c.resolveTypeExpr(p.Type), scope)
	}
	bodyType := c.checkBlockBody(decl.Body)
	if decl.Body.Tail != nil && !unify.IsAssignable(ret, bodyType) {
		c.errorAt(decl.Body.Tail.Span(), diag.CodeTypeMismatch, "function %q returns %s, body produces %s", decl.Name.Name, ret, bodyType)
	}
	c.popScope(scope)

	c.popReturn()
	c.popEffect()
	if selfType != nil {
		c.popSelf()
	}
	c.popTypeVars()
}

func (c *Checker) checkTraitDefaults(decl *ast.TraitDecl) {
	c.pushSelf(&types.SelfType{})
	for _, m := range decl.Methods {
		if m.Default == nil {
			continue
		}
		fn := &ast.FnDecl{Pub: false, IsEffect: m.IsEffect, Name: m.Name, Params: m.Params, ReturnType: m.ReturnType, Body: m.Default}
		c.checkFnBody(fn, &types.SelfType{})
	}
	c.popSelf()
}

func (c *Checker) checkImplBodies(decl *ast.ImplDecl) {
	implType := c.resolveTypeExprInImplScope(decl)
	c.pushTypeVars(buildTypeVarMap(decl.TypeParams))
	for _, m := range decl.Methods {
		c.pushTypeVars(buildTypeVarMap(m.TypeParams))
		c.checkFnBody(m, implType)
		c.popTypeVars()
	}
	c.popTypeVars()
}

// resolveTypeExprInImplScope re-resolves decl's target type with its own
// generic parameters active, mirroring resolveImplDef (that earlier pass's
// result is not retained per-impl, only folded into types.ImplDef).
func (c *Checker) resolveTypeExprInImplScope(decl *ast.ImplDecl) types.Type {
	c.pushTypeVars(buildTypeVarMap(decl.TypeParams))
	t := c.resolveTypeExpr(decl.Type)
	c.popTypeVars()
	return t
}

func (c *Checker) checkTestDecl(decl *ast.TestDecl) {
	c.pushEffect(true)
	c.pushReturn(types.TypeVoid)
	scope := c.pushScope(symtab.ScopeFunction, "test")
	c.checkBlockBody(decl.Body)
	c.popScope(scope)
	c.popReturn()
	c.popEffect()
}
