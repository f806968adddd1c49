package ast

import "github.com/lucent-lang/lucent/internal/token"

// PrimitiveTypeExpr names a built-in scalar type by keyword ("i32", "bool", ...).
type PrimitiveTypeExpr struct {
	Name string
	span token.Span
}

func NewPrimitiveTypeExpr(name string, span token.Span) *PrimitiveTypeExpr {
	return &PrimitiveTypeExpr{Name: name, span: span}
}
func (t *PrimitiveTypeExpr) Span() token.Span { return t.span }
func (t *PrimitiveTypeExpr) typeNode()        {}

// NamedTypeExpr references a user-declared type by (possibly qualified) name.
type NamedTypeExpr struct {
	Path []*Ident
	span token.Span
}

func NewNamedTypeExpr(path []*Ident, span token.Span) *NamedTypeExpr { return &NamedTypeExpr{Path: path, span: span} }
func (t *NamedTypeExpr) Span() token.Span                            { return t.span }
func (t *NamedTypeExpr) typeNode()                                   {}

// GenericTypeExpr applies type arguments to a base type: `Base[T, U]`.
type GenericTypeExpr struct {
	Base TypeExpr
	Args []TypeExpr
	span token.Span
}

func NewGenericTypeExpr(base TypeExpr, args []TypeExpr, span token.Span) *GenericTypeExpr {
	return &GenericTypeExpr{Base: base, Args: args, span: span}
}
func (t *GenericTypeExpr) Span() token.Span { return t.span }
func (t *GenericTypeExpr) typeNode()        {}

// FnTypeExpr is `fn(P, ...) -> R`, optionally `effect fn(...) -> R`.
type FnTypeExpr struct {
	IsEffect bool
	Params   []TypeExpr
	Return   TypeExpr
	span     token.Span
}

func NewFnTypeExpr(isEffect bool, params []TypeExpr, ret TypeExpr, span token.Span) *FnTypeExpr {
	return &FnTypeExpr{IsEffect: isEffect, Params: params, Return: ret, span: span}
}
func (t *FnTypeExpr) Span() token.Span { return t.span }
func (t *FnTypeExpr) typeNode()        {}

// TupleTypeExpr is `(T1, T2, ...)`.
type TupleTypeExpr struct {
	Elems []TypeExpr
	span  token.Span
}

func NewTupleTypeExpr(elems []TypeExpr, span token.Span) *TupleTypeExpr { return &TupleTypeExpr{Elems: elems, span: span} }
func (t *TupleTypeExpr) Span() token.Span                               { return t.span }
func (t *TupleTypeExpr) typeNode()                                      {}

// ArrayTypeExpr is `[T]` (Len == nil) or `[T: N]` (fixed length).
type ArrayTypeExpr struct {
	Elem TypeExpr
	Len  *int
	span token.Span
}

func NewArrayTypeExpr(elem TypeExpr, length *int, span token.Span) *ArrayTypeExpr {
	return &ArrayTypeExpr{Elem: elem, Len: length, span: span}
}
func (t *ArrayTypeExpr) Span() token.Span { return t.span }
func (t *ArrayTypeExpr) typeNode()        {}

// IOTypeExpr is `IO[T]`.
type IOTypeExpr struct {
	Elem TypeExpr
	span token.Span
}

func NewIOTypeExpr(elem TypeExpr, span token.Span) *IOTypeExpr { return &IOTypeExpr{Elem: elem, span: span} }
func (t *IOTypeExpr) Span() token.Span                         { return t.span }
func (t *IOTypeExpr) typeNode()                                {}

// ResultTypeExpr is `Result[T, E]`.
type ResultTypeExpr struct {
	Ok   TypeExpr
	Err  TypeExpr
	span token.Span
}

func NewResultTypeExpr(ok, err TypeExpr, span token.Span) *ResultTypeExpr {
	return &ResultTypeExpr{Ok: ok, Err: err, span: span}
}
func (t *ResultTypeExpr) Span() token.Span { return t.span }
func (t *ResultTypeExpr) typeNode()        {}

// OptionTypeExpr is `Option[T]`.
type OptionTypeExpr struct {
	Elem TypeExpr
	span token.Span
}

func NewOptionTypeExpr(elem TypeExpr, span token.Span) *OptionTypeExpr { return &OptionTypeExpr{Elem: elem, span: span} }
func (t *OptionTypeExpr) Span() token.Span                             { return t.span }
func (t *OptionTypeExpr) typeNode()                                    {}

// SelfTypeExpr is the bare `Self` type used inside trait/impl bodies.
type SelfTypeExpr struct{ span token.Span }

func NewSelfTypeExpr(span token.Span) *SelfTypeExpr { return &SelfTypeExpr{span: span} }
func (t *SelfTypeExpr) Span() token.Span            { return t.span }
func (t *SelfTypeExpr) typeNode()                   {}

// TypeVarExpr is a generic type parameter reference, e.g. `T` with optional
// trait bounds written at the use site (`T: Eq`).
type TypeVarExpr struct {
	Name        string
	Constraints []*Ident
	span        token.Span
}

func NewTypeVarExpr(name string, constraints []*Ident, span token.Span) *TypeVarExpr {
	return &TypeVarExpr{Name: name, Constraints: constraints, span: span}
}
func (t *TypeVarExpr) Span() token.Span { return t.span }
func (t *TypeVarExpr) typeNode()        {}

// InferredTypeExpr is the `_` placeholder. Annotations are mandatory in
// Lucent, so the checker always rejects this node with a diagnostic rather
// than attempting inference.
type InferredTypeExpr struct{ span token.Span }

func NewInferredTypeExpr(span token.Span) *InferredTypeExpr { return &InferredTypeExpr{span: span} }
func (t *InferredTypeExpr) Span() token.Span                { return t.span }
func (t *InferredTypeExpr) typeNode()                       {}
