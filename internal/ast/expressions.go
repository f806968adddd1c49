package ast

import "github.com/lucent-lang/lucent/internal/token"

// IntLit is an integer literal; Suffix records an explicit width/sign
// suffix ("" if none was written).
type IntLit struct {
	Value  int64
	Suffix string
	span   token.Span
}

func NewIntLit(v int64, suffix string, span token.Span) *IntLit { return &IntLit{Value: v, Suffix: suffix, span: span} }
func (e *IntLit) Span() token.Span                              { return e.span }
func (e *IntLit) exprNode()                                     {}

// FloatLit is a float literal.
type FloatLit struct {
	Value  float64
	Suffix string
	span   token.Span
}

func NewFloatLit(v float64, suffix string, span token.Span) *FloatLit { return &FloatLit{Value: v, Suffix: suffix, span: span} }
func (e *FloatLit) Span() token.Span                                  { return e.span }
func (e *FloatLit) exprNode()                                         {}

// StringLit is a plain (non-interpolated) string literal.
type StringLit struct {
	Value string
	span  token.Span
}

func NewStringLit(v string, span token.Span) *StringLit { return &StringLit{Value: v, span: span} }
func (e *StringLit) Span() token.Span                    { return e.span }
func (e *StringLit) exprNode()                           {}

// StringPart is one chunk of an interpolated string: a literal run or an
// embedded expression.
type StringPart struct {
	Literal string
	Expr    Expr // nil for literal-only parts
}

// InterpStringExpr is a string literal containing `${...}` segments.
type InterpStringExpr struct {
	Parts []StringPart
	span  token.Span
}

func NewInterpStringExpr(parts []StringPart, span token.Span) *InterpStringExpr {
	return &InterpStringExpr{Parts: parts, span: span}
}
func (e *InterpStringExpr) Span() token.Span { return e.span }
func (e *InterpStringExpr) exprNode()        {}

// CharLit is a single Unicode scalar literal.
type CharLit struct {
	Value rune
	span  token.Span
}

func NewCharLit(v rune, span token.Span) *CharLit { return &CharLit{Value: v, span: span} }
func (e *CharLit) Span() token.Span               { return e.span }
func (e *CharLit) exprNode()                      {}

// BoolLit is `true`/`false`.
type BoolLit struct {
	Value bool
	span  token.Span
}

func NewBoolLit(v bool, span token.Span) *BoolLit { return &BoolLit{Value: v, span: span} }
func (e *BoolLit) Span() token.Span               { return e.span }
func (e *BoolLit) exprNode()                      {}

// SelfExpr is the bare `self` receiver reference.
type SelfExpr struct{ span token.Span }

func NewSelfExpr(span token.Span) *SelfExpr { return &SelfExpr{span: span} }
func (e *SelfExpr) Span() token.Span        { return e.span }
func (e *SelfExpr) exprNode()               {}

// BinaryOp enumerates binary operators.
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpLt
	OpLe
	OpGt
	OpGe
	OpEq
	OpNotEq
	OpAnd
	OpOr
	OpIs
	OpIn
)

// BinaryExpr is a binary operator application.
type BinaryExpr struct {
	Op    BinaryOp
	Left  Expr
	Right Expr
	span  token.Span
}

func NewBinaryExpr(op BinaryOp, left, right Expr, span token.Span) *BinaryExpr {
	return &BinaryExpr{Op: op, Left: left, Right: right, span: span}
}
func (e *BinaryExpr) Span() token.Span { return e.span }
func (e *BinaryExpr) exprNode()        {}

// UnaryOp enumerates unary operators.
type UnaryOp int

const (
	OpNeg UnaryOp = iota
	OpNot
)

// UnaryExpr is a unary operator application.
type UnaryExpr struct {
	Op      UnaryOp
	Operand Expr
	span    token.Span
}

func NewUnaryExpr(op UnaryOp, operand Expr, span token.Span) *UnaryExpr {
	return &UnaryExpr{Op: op, Operand: operand, span: span}
}
func (e *UnaryExpr) Span() token.Span { return e.span }
func (e *UnaryExpr) exprNode()        {}

// FieldExpr is `receiver.field`.
type FieldExpr struct {
	Receiver Expr
	Field    *Ident
	span     token.Span
}

func NewFieldExpr(receiver Expr, field *Ident, span token.Span) *FieldExpr {
	return &FieldExpr{Receiver: receiver, Field: field, span: span}
}
func (e *FieldExpr) Span() token.Span { return e.span }
func (e *FieldExpr) exprNode()        {}

// TupleIndexExpr is `receiver.0`.
type TupleIndexExpr struct {
	Receiver Expr
	Index    int
	span     token.Span
}

func NewTupleIndexExpr(receiver Expr, index int, span token.Span) *TupleIndexExpr {
	return &TupleIndexExpr{Receiver: receiver, Index: index, span: span}
}
func (e *TupleIndexExpr) Span() token.Span { return e.span }
func (e *TupleIndexExpr) exprNode()        {}

// IndexExpr is `receiver[index]`.
type IndexExpr struct {
	Receiver Expr
	Index    Expr
	span     token.Span
}

func NewIndexExpr(receiver, index Expr, span token.Span) *IndexExpr {
	return &IndexExpr{Receiver: receiver, Index: index, span: span}
}
func (e *IndexExpr) Span() token.Span { return e.span }
func (e *IndexExpr) exprNode()        {}

// CallExpr is `callee(args...)`. It is also how positional variant
// constructors (`Some(1)`, `Ok(x)`) are represented syntactically — the
// checker disambiguates by resolving Callee against the symbol table.
type CallExpr struct {
	Callee Expr
	Args   []Expr
	span   token.Span
}

func NewCallExpr(callee Expr, args []Expr, span token.Span) *CallExpr {
	return &CallExpr{Callee: callee, Args: args, span: span}
}
func (e *CallExpr) Span() token.Span { return e.span }
func (e *CallExpr) exprNode()        {}

// MethodCallExpr is `receiver.method(args...)`.
type MethodCallExpr struct {
	Receiver Expr
	Method   *Ident
	Args     []Expr
	span     token.Span
}

func NewMethodCallExpr(receiver Expr, method *Ident, args []Expr, span token.Span) *MethodCallExpr {
	return &MethodCallExpr{Receiver: receiver, Method: method, Args: args, span: span}
}
func (e *MethodCallExpr) Span() token.Span { return e.span }
func (e *MethodCallExpr) exprNode()        {}

// ClosureExpr is an anonymous function literal.
type ClosureExpr struct {
	IsEffect   bool
	Params     []*Param
	ReturnType TypeExpr // may be nil; the checker then takes the expected function type's return, else the body tail's type, else void
	Body       *BlockExpr
	span       token.Span
}

func NewClosureExpr(isEffect bool, params []*Param, returnType TypeExpr, body *BlockExpr, span token.Span) *ClosureExpr {
	return &ClosureExpr{IsEffect: isEffect, Params: params, ReturnType: returnType, Body: body, span: span}
}
func (e *ClosureExpr) Span() token.Span { return e.span }
func (e *ClosureExpr) exprNode()        {}

// BlockExpr is `{ stmts...; tail? }`; Tail is nil when the block has no
// trailing expression (its type is then void).
type BlockExpr struct {
	Stmts []Stmt
	Tail  Expr
	span  token.Span
}

func NewBlockExpr(stmts []Stmt, tail Expr, span token.Span) *BlockExpr {
	return &BlockExpr{Stmts: stmts, Tail: tail, span: span}
}
func (e *BlockExpr) Span() token.Span        { return e.span }
func (e *BlockExpr) SetSpan(s token.Span)    { e.span = s }
func (e *BlockExpr) exprNode()               {}

// IfExpr is `if cond { then } else { else }`. Else is nil for a statement-
// position `if` with no else branch.
type IfExpr struct {
	Cond Expr
	Then *BlockExpr
	Else Expr // *BlockExpr or *IfExpr (else-if chain), nil if absent
	span token.Span
}

func NewIfExpr(cond Expr, then *BlockExpr, els Expr, span token.Span) *IfExpr {
	return &IfExpr{Cond: cond, Then: then, Else: els, span: span}
}
func (e *IfExpr) Span() token.Span { return e.span }
func (e *IfExpr) exprNode()        {}

// MatchArm is one `pattern => body` arm of a match expression.
type MatchArm struct {
	Pattern Pattern
	Body    Expr
	span    token.Span
}

func NewMatchArm(pattern Pattern, body Expr, span token.Span) MatchArm {
	return MatchArm{Pattern: pattern, Body: body, span: span}
}
func (a MatchArm) Span() token.Span { return a.span }

// MatchExpr matches Subject against Arms in declaration order.
type MatchExpr struct {
	Subject Expr
	Arms    []MatchArm
	span    token.Span
}

func NewMatchExpr(subject Expr, arms []MatchArm, span token.Span) *MatchExpr {
	return &MatchExpr{Subject: subject, Arms: arms, span: span}
}
func (e *MatchExpr) Span() token.Span { return e.span }
func (e *MatchExpr) exprNode()        {}

// TupleExpr is `(a, b, c)`.
type TupleExpr struct {
	Elems []Expr
	span  token.Span
}

func NewTupleExpr(elems []Expr, span token.Span) *TupleExpr { return &TupleExpr{Elems: elems, span: span} }
func (e *TupleExpr) Span() token.Span                       { return e.span }
func (e *TupleExpr) exprNode()                              {}

// ArrayExpr is `[a, b, c]`.
type ArrayExpr struct {
	Elems []Expr
	span  token.Span
}

func NewArrayExpr(elems []Expr, span token.Span) *ArrayExpr { return &ArrayExpr{Elems: elems, span: span} }
func (e *ArrayExpr) Span() token.Span                       { return e.span }
func (e *ArrayExpr) exprNode()                              {}

// RecordField is one `name: value` pair in a record literal.
type RecordField struct {
	Name  *Ident
	Value Expr
}

// RecordExpr is `TypeName { field: value, ... }`. It also represents
// named-field variant construction (`Circle { radius: 1.0 }`) — see CallExpr.
type RecordExpr struct {
	TypeName *Ident
	Fields   []RecordField
	span     token.Span
}

func NewRecordExpr(typeName *Ident, fields []RecordField, span token.Span) *RecordExpr {
	return &RecordExpr{TypeName: typeName, Fields: fields, span: span}
}
func (e *RecordExpr) Span() token.Span { return e.span }
func (e *RecordExpr) exprNode()        {}

// TypeCastExpr is `expr as Type`.
type TypeCastExpr struct {
	Value Expr
	Type  TypeExpr
	span  token.Span
}

func NewTypeCastExpr(value Expr, typ TypeExpr, span token.Span) *TypeCastExpr {
	return &TypeCastExpr{Value: value, Type: typ, span: span}
}
func (e *TypeCastExpr) Span() token.Span { return e.span }
func (e *TypeCastExpr) exprNode()        {}

// RangeExpr is `start..end` or `start..=end`; either bound may be nil.
type RangeExpr struct {
	Start     Expr
	End       Expr
	Inclusive bool
	span      token.Span
}

func NewRangeExpr(start, end Expr, inclusive bool, span token.Span) *RangeExpr {
	return &RangeExpr{Start: start, End: end, Inclusive: inclusive, span: span}
}
func (e *RangeExpr) Span() token.Span { return e.span }
func (e *RangeExpr) exprNode()        {}

// TryExpr is `expr?`.
type TryExpr struct {
	Value Expr
	span  token.Span
}

func NewTryExpr(value Expr, span token.Span) *TryExpr { return &TryExpr{Value: value, span: span} }
func (e *TryExpr) Span() token.Span                   { return e.span }
func (e *TryExpr) exprNode()                          {}

// CoalesceExpr is `expr ?? default`.
type CoalesceExpr struct {
	Value   Expr
	Default Expr
	span    token.Span
}

func NewCoalesceExpr(value, def Expr, span token.Span) *CoalesceExpr {
	return &CoalesceExpr{Value: value, Default: def, span: span}
}
func (e *CoalesceExpr) Span() token.Span { return e.span }
func (e *CoalesceExpr) exprNode()        {}

// GroupExpr is a parenthesized expression, preserved so spans remain
// faithful to source even though it is otherwise transparent.
type GroupExpr struct {
	Inner Expr
	span  token.Span
}

func NewGroupExpr(inner Expr, span token.Span) *GroupExpr { return &GroupExpr{Inner: inner, span: span} }
func (e *GroupExpr) Span() token.Span                     { return e.span }
func (e *GroupExpr) exprNode()                            {}
