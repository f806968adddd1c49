// Package ast defines Lucent's typed abstract syntax tree: declarations,
// statements, expressions, patterns, and syntactic type annotations.
package ast

import "github.com/lucent-lang/lucent/internal/token"

// Node is any AST node carrying a source span.
type Node interface {
	Span() token.Span
}

// Decl is a top-level declaration.
type Decl interface {
	Node
	declNode()
	IsPub() bool
}

// Stmt is a function-body statement.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is an expression.
type Expr interface {
	Node
	exprNode()
}

// TypeExpr is a syntactic (pre-resolution) type annotation.
type TypeExpr interface {
	Node
	typeNode()
}

// Pattern is a match/binding pattern.
type Pattern interface {
	Node
	patternNode()
}

// Ident is a bare identifier reference, reused across decls/exprs/patterns.
type Ident struct {
	Name string
	span token.Span
}

func NewIdent(name string, span token.Span) *Ident { return &Ident{Name: name, span: span} }
func (i *Ident) Span() token.Span                  { return i.span }
func (i *Ident) exprNode()                         {}

// File is the root node of a parsed compilation unit.
type File struct {
	Module  *ModuleDecl
	Imports []*ImportDecl
	Decls   []Decl
	span    token.Span
}

func NewFile(span token.Span) *File { return &File{span: span} }
func (f *File) Span() token.Span    { return f.span }
func (f *File) SetSpan(s token.Span) { f.span = s }

// ModuleDecl names the module a file belongs to.
type ModuleDecl struct {
	Name *Ident
	span token.Span
}

func NewModuleDecl(name *Ident, span token.Span) *ModuleDecl { return &ModuleDecl{Name: name, span: span} }
func (d *ModuleDecl) Span() token.Span                       { return d.span }
func (d *ModuleDecl) declNode()                              {}
func (d *ModuleDecl) IsPub() bool                            { return true }

// ImportDecl brings a qualified path into scope, optionally aliased.
type ImportDecl struct {
	Path  []*Ident
	Alias *Ident
	span  token.Span
}

func NewImportDecl(path []*Ident, alias *Ident, span token.Span) *ImportDecl {
	return &ImportDecl{Path: path, Alias: alias, span: span}
}
func (d *ImportDecl) Span() token.Span { return d.span }
func (d *ImportDecl) declNode()        {}
func (d *ImportDecl) IsPub() bool      { return false }

// GenericParam is one `[T: Trait1 + Trait2]` type parameter.
type GenericParam struct {
	Name        *Ident
	Constraints []*Ident
}

// Param is a function parameter.
type Param struct {
	Pattern Pattern
	Type    TypeExpr
	span    token.Span
}

func NewParam(pattern Pattern, typ TypeExpr, span token.Span) *Param {
	return &Param{Pattern: pattern, Type: typ, span: span}
}
func (p *Param) Span() token.Span { return p.span }

// WhereClause constrains generic parameters beyond their declaration site.
type WhereClause struct {
	Constraints []WhereConstraint
	span        token.Span
}

type WhereConstraint struct {
	Param *Ident
	Trait *Ident
}

func (w *WhereClause) Span() token.Span { return w.span }

// FnDecl is a function declaration. IsEffect reflects the `effect` keyword
// and drives the effect discipline.
type FnDecl struct {
	Pub        bool
	IsEffect   bool
	Name       *Ident
	TypeParams []GenericParam
	Params     []*Param
	ReturnType TypeExpr
	Where      *WhereClause
	Body       *BlockExpr
	span       token.Span
}

func NewFnDecl(pub, isEffect bool, name *Ident, typeParams []GenericParam, params []*Param, returnType TypeExpr, where *WhereClause, body *BlockExpr, span token.Span) *FnDecl {
	return &FnDecl{
		Pub: pub, IsEffect: isEffect, Name: name, TypeParams: typeParams,
		Params: params, ReturnType: returnType, Where: where, Body: body, span: span,
	}
}
func (d *FnDecl) Span() token.Span { return d.span }
func (d *FnDecl) declNode()        {}
func (d *FnDecl) IsPub() bool      { return d.Pub }

// ConstDecl is a top-level constant.
type ConstDecl struct {
	Pub   bool
	Name  *Ident
	Type  TypeExpr
	Value Expr
	span  token.Span
}

func NewConstDecl(pub bool, name *Ident, typ TypeExpr, value Expr, span token.Span) *ConstDecl {
	return &ConstDecl{Pub: pub, Name: name, Type: typ, Value: value, span: span}
}
func (d *ConstDecl) Span() token.Span { return d.span }
func (d *ConstDecl) declNode()        {}
func (d *ConstDecl) IsPub() bool      { return d.Pub }

// LetDecl is a top-level (module-scope) binding.
type LetDecl struct {
	Pub     bool
	Pattern Pattern
	Type    TypeExpr
	Value   Expr
	span    token.Span
}

func NewLetDecl(pub bool, pattern Pattern, typ TypeExpr, value Expr, span token.Span) *LetDecl {
	return &LetDecl{Pub: pub, Pattern: pattern, Type: typ, Value: value, span: span}
}
func (d *LetDecl) Span() token.Span { return d.span }
func (d *LetDecl) declNode()        {}
func (d *LetDecl) IsPub() bool      { return d.Pub }

// Field is a product-type field or a record-pattern/record-expr field.
type Field struct {
	Name *Ident
	Type TypeExpr
	span token.Span
}

func NewField(name *Ident, typ TypeExpr, span token.Span) *Field { return &Field{Name: name, Type: typ, span: span} }
func (f *Field) Span() token.Span                                { return f.span }

// ProductTypeDecl is a `struct` declaration.
type ProductTypeDecl struct {
	Pub        bool
	Name       *Ident
	TypeParams []GenericParam
	Fields     []*Field
	span       token.Span
}

func NewProductTypeDecl(pub bool, name *Ident, typeParams []GenericParam, fields []*Field, span token.Span) *ProductTypeDecl {
	return &ProductTypeDecl{Pub: pub, Name: name, TypeParams: typeParams, Fields: fields, span: span}
}
func (d *ProductTypeDecl) Span() token.Span { return d.span }
func (d *ProductTypeDecl) declNode()        {}
func (d *ProductTypeDecl) IsPub() bool      { return d.Pub }

// VariantDecl is one arm of a sum type.
type VariantDecl struct {
	Name   *Ident
	Fields []*Field // positional fields use synthesized names "0","1",...; empty for unit variants
	span   token.Span
}

func (v *VariantDecl) Span() token.Span { return v.span }

func NewVariantDecl(name *Ident, fields []*Field, span token.Span) *VariantDecl {
	return &VariantDecl{Name: name, Fields: fields, span: span}
}

// SumTypeDecl is an `enum` declaration.
type SumTypeDecl struct {
	Pub        bool
	Name       *Ident
	TypeParams []GenericParam
	Variants   []*VariantDecl
	span       token.Span
}

func NewSumTypeDecl(pub bool, name *Ident, typeParams []GenericParam, variants []*VariantDecl, span token.Span) *SumTypeDecl {
	return &SumTypeDecl{Pub: pub, Name: name, TypeParams: typeParams, Variants: variants, span: span}
}
func (d *SumTypeDecl) Span() token.Span { return d.span }
func (d *SumTypeDecl) declNode()        {}
func (d *SumTypeDecl) IsPub() bool      { return d.Pub }

// AliasTypeDecl is a `type Name[T] = OtherType` declaration.
type AliasTypeDecl struct {
	Pub        bool
	Name       *Ident
	TypeParams []GenericParam
	Underlying TypeExpr
	span       token.Span
}

func NewAliasTypeDecl(pub bool, name *Ident, typeParams []GenericParam, underlying TypeExpr, span token.Span) *AliasTypeDecl {
	return &AliasTypeDecl{Pub: pub, Name: name, TypeParams: typeParams, Underlying: underlying, span: span}
}
func (d *AliasTypeDecl) Span() token.Span { return d.span }
func (d *AliasTypeDecl) declNode()        {}
func (d *AliasTypeDecl) IsPub() bool      { return d.Pub }

// TraitMethodSig is one method signature declared by a trait, with an
// optional default body.
type TraitMethodSig struct {
	Name       *Ident
	IsEffect   bool
	Params     []*Param
	ReturnType TypeExpr
	Default    *BlockExpr // nil if the trait requires implementors to supply a body
	span       token.Span
}

func (m *TraitMethodSig) Span() token.Span { return m.span }

func NewTraitMethodSig(name *Ident, isEffect bool, params []*Param, returnType TypeExpr, def *BlockExpr, span token.Span) *TraitMethodSig {
	return &TraitMethodSig{Name: name, IsEffect: isEffect, Params: params, ReturnType: returnType, Default: def, span: span}
}

// TraitDecl declares a trait (interface) with method signatures.
type TraitDecl struct {
	Pub        bool
	Name       *Ident
	TypeParams []GenericParam
	Methods    []*TraitMethodSig
	span       token.Span
}

func NewTraitDecl(pub bool, name *Ident, typeParams []GenericParam, methods []*TraitMethodSig, span token.Span) *TraitDecl {
	return &TraitDecl{Pub: pub, Name: name, TypeParams: typeParams, Methods: methods, span: span}
}
func (d *TraitDecl) Span() token.Span { return d.span }
func (d *TraitDecl) declNode()        {}
func (d *TraitDecl) IsPub() bool      { return d.Pub }

// ImplDecl implements a trait for a type (or provides inherent methods when
// Trait is nil).
type ImplDecl struct {
	TypeParams []GenericParam
	Trait      *Ident
	Type       TypeExpr
	Methods    []*FnDecl
	span       token.Span
}

func NewImplDecl(typeParams []GenericParam, trait *Ident, typ TypeExpr, methods []*FnDecl, span token.Span) *ImplDecl {
	return &ImplDecl{TypeParams: typeParams, Trait: trait, Type: typ, Methods: methods, span: span}
}
func (d *ImplDecl) Span() token.Span { return d.span }
func (d *ImplDecl) declNode()        {}
func (d *ImplDecl) IsPub() bool      { return false }

// TestDecl is a `test "name" { ... }` block.
type TestDecl struct {
	Name *Token_StringLit
	Body *BlockExpr
	span token.Span
}

// Token_StringLit is a plain string literal used for test names, kept
// distinct from StringLit so test declarations never carry interpolation
// concerns.
type Token_StringLit struct {
	Value string
	span  token.Span
}

func (s *Token_StringLit) Span() token.Span { return s.span }

func NewTokenStringLit(value string, span token.Span) *Token_StringLit {
	return &Token_StringLit{Value: value, span: span}
}

func NewTestDecl(name *Token_StringLit, body *BlockExpr, span token.Span) *TestDecl {
	return &TestDecl{Name: name, Body: body, span: span}
}
func (d *TestDecl) Span() token.Span { return d.span }
func (d *TestDecl) declNode()        {}
func (d *TestDecl) IsPub() bool      { return false }
