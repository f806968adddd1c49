package ast

import "github.com/lucent-lang/lucent/internal/token"

// LetStmt is an immutable binding with a mandatory type annotation and
// initializer.
type LetStmt struct {
	Pattern Pattern
	Type    TypeExpr
	Value   Expr
	span    token.Span
}

func NewLetStmt(pattern Pattern, typ TypeExpr, value Expr, span token.Span) *LetStmt {
	return &LetStmt{Pattern: pattern, Type: typ, Value: value, span: span}
}
func (s *LetStmt) Span() token.Span { return s.span }
func (s *LetStmt) stmtNode()        {}

// VarStmt is a mutable binding; Value may be nil.
type VarStmt struct {
	Pattern Pattern
	Type    TypeExpr
	Value   Expr
	span    token.Span
}

func NewVarStmt(pattern Pattern, typ TypeExpr, value Expr, span token.Span) *VarStmt {
	return &VarStmt{Pattern: pattern, Type: typ, Value: value, span: span}
}
func (s *VarStmt) Span() token.Span { return s.span }
func (s *VarStmt) stmtNode()        {}

// AssignOp enumerates `=` and the compound assignment operators.
type AssignOp int

const (
	AssignPlain AssignOp = iota
	AssignAdd
	AssignSub
	AssignMul
	AssignDiv
)

// AssignStmt assigns to an existing mutable place.
type AssignStmt struct {
	Target Expr
	Op     AssignOp
	Value  Expr
	span   token.Span
}

func NewAssignStmt(target Expr, op AssignOp, value Expr, span token.Span) *AssignStmt {
	return &AssignStmt{Target: target, Op: op, Value: value, span: span}
}
func (s *AssignStmt) Span() token.Span { return s.span }
func (s *AssignStmt) stmtNode()        {}

// ForStmt destructures each element of Iterable into Pattern and runs Body.
type ForStmt struct {
	Pattern  Pattern
	Iterable Expr
	Body     *BlockExpr
	span     token.Span
}

func NewForStmt(pattern Pattern, iterable Expr, body *BlockExpr, span token.Span) *ForStmt {
	return &ForStmt{Pattern: pattern, Iterable: iterable, Body: body, span: span}
}
func (s *ForStmt) Span() token.Span { return s.span }
func (s *ForStmt) stmtNode()        {}

// WhileStmt repeats Body while Cond is true.
type WhileStmt struct {
	Cond Expr
	Body *BlockExpr
	span token.Span
}

func NewWhileStmt(cond Expr, body *BlockExpr, span token.Span) *WhileStmt {
	return &WhileStmt{Cond: cond, Body: body, span: span}
}
func (s *WhileStmt) Span() token.Span { return s.span }
func (s *WhileStmt) stmtNode()        {}

// LoopStmt repeats Body unconditionally until a `break`.
type LoopStmt struct {
	Body *BlockExpr
	span token.Span
}

func NewLoopStmt(body *BlockExpr, span token.Span) *LoopStmt { return &LoopStmt{Body: body, span: span} }
func (s *LoopStmt) Span() token.Span                         { return s.span }
func (s *LoopStmt) stmtNode()                                {}

// ReturnStmt returns Value (nil for a bare `return`) from the enclosing function.
type ReturnStmt struct {
	Value Expr
	span  token.Span
}

func NewReturnStmt(value Expr, span token.Span) *ReturnStmt { return &ReturnStmt{Value: value, span: span} }
func (s *ReturnStmt) Span() token.Span                       { return s.span }
func (s *ReturnStmt) stmtNode()                              {}

// BreakStmt exits the innermost loop.
type BreakStmt struct{ span token.Span }

func NewBreakStmt(span token.Span) *BreakStmt { return &BreakStmt{span: span} }
func (s *BreakStmt) Span() token.Span         { return s.span }
func (s *BreakStmt) stmtNode()                {}

// ExprStmt evaluates Expr for its side effects (result discarded unless it
// is the block's tail expression — the parser marks tail position separately).
type ExprStmt struct {
	Expr Expr
	span token.Span
}

func NewExprStmt(expr Expr, span token.Span) *ExprStmt { return &ExprStmt{Expr: expr, span: span} }
func (s *ExprStmt) Span() token.Span                   { return s.span }
func (s *ExprStmt) stmtNode()                          {}
