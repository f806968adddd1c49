package ast

import "github.com/lucent-lang/lucent/internal/token"

// PatternWild is the `_` wildcard.
type PatternWild struct{ span token.Span }

func NewPatternWild(span token.Span) *PatternWild { return &PatternWild{span: span} }
func (p *PatternWild) Span() token.Span           { return p.span }
func (p *PatternWild) patternNode()               {}

// PatternIdent binds the matched value to a name.
type PatternIdent struct {
	Name    *Ident
	Mutable bool
	span    token.Span
}

func NewPatternIdent(name *Ident, mutable bool, span token.Span) *PatternIdent {
	return &PatternIdent{Name: name, Mutable: mutable, span: span}
}
func (p *PatternIdent) Span() token.Span { return p.span }
func (p *PatternIdent) patternNode()      {}

// LiteralKind enumerates the primitive literal kinds a pattern can match.
type LiteralKind int

const (
	LiteralInt LiteralKind = iota
	LiteralFloat
	LiteralString
	LiteralChar
	LiteralBool
)

// PatternLiteral matches an exact literal value.
type PatternLiteral struct {
	Kind   LiteralKind
	Int    int64
	Float  float64
	String string
	Char   rune
	Bool   bool
	span   token.Span
}

func (p *PatternLiteral) Span() token.Span { return p.span }
func (p *PatternLiteral) patternNode()     {}

func NewPatternLiteralInt(v int64, span token.Span) *PatternLiteral {
	return &PatternLiteral{Kind: LiteralInt, Int: v, span: span}
}
func NewPatternLiteralFloat(v float64, span token.Span) *PatternLiteral {
	return &PatternLiteral{Kind: LiteralFloat, Float: v, span: span}
}
func NewPatternLiteralString(v string, span token.Span) *PatternLiteral {
	return &PatternLiteral{Kind: LiteralString, String: v, span: span}
}
func NewPatternLiteralChar(v rune, span token.Span) *PatternLiteral {
	return &PatternLiteral{Kind: LiteralChar, Char: v, span: span}
}
func NewPatternLiteralBool(v bool, span token.Span) *PatternLiteral {
	return &PatternLiteral{Kind: LiteralBool, Bool: v, span: span}
}

// PatternArg is one argument of a constructor pattern, optionally named
// (record-style `Variant { field: pat }`).
type PatternArg struct {
	Name    *Ident // nil for positional arguments
	Pattern Pattern
}

// PatternConstructor matches a sum-type variant, e.g. `Some(x)`, `Circle { radius }`.
type PatternConstructor struct {
	Path []*Ident
	Args []PatternArg
	span token.Span
}

func NewPatternConstructor(path []*Ident, args []PatternArg, span token.Span) *PatternConstructor {
	return &PatternConstructor{Path: path, Args: args, span: span}
}
func (p *PatternConstructor) Span() token.Span { return p.span }
func (p *PatternConstructor) patternNode()      {}

// PatternRecord matches a product-type value by field, with an optional
// `..` rest marker permitting unmatched fields.
type PatternRecord struct {
	TypeName *Ident // nil when the type is inferred from context
	Fields   []PatternArg
	HasRest  bool
	span     token.Span
}

func NewPatternRecord(typeName *Ident, fields []PatternArg, hasRest bool, span token.Span) *PatternRecord {
	return &PatternRecord{TypeName: typeName, Fields: fields, HasRest: hasRest, span: span}
}
func (p *PatternRecord) Span() token.Span { return p.span }
func (p *PatternRecord) patternNode()      {}

// PatternTuple matches a tuple positionally.
type PatternTuple struct {
	Elems []Pattern
	span  token.Span
}

func NewPatternTuple(elems []Pattern, span token.Span) *PatternTuple { return &PatternTuple{Elems: elems, span: span} }
func (p *PatternTuple) Span() token.Span                             { return p.span }
func (p *PatternTuple) patternNode()                                 {}

// PatternOr matches if any alternative matches: `1 | 2 | 3`.
type PatternOr struct {
	Alternatives []Pattern
	span         token.Span
}

func NewPatternOr(alts []Pattern, span token.Span) *PatternOr { return &PatternOr{Alternatives: alts, span: span} }
func (p *PatternOr) Span() token.Span                         { return p.span }
func (p *PatternOr) patternNode()                              {}

// PatternGuarded attaches a boolean guard expression to an inner pattern.
// Guards translate conservatively for exhaustiveness: the inner pattern's
// space is used for coverage, but a guarded arm never discharges
// exhaustiveness on its own.
type PatternGuarded struct {
	Inner Pattern
	Guard Expr
	span  token.Span
}

func NewPatternGuarded(inner Pattern, guard Expr, span token.Span) *PatternGuarded {
	return &PatternGuarded{Inner: inner, Guard: guard, span: span}
}
func (p *PatternGuarded) Span() token.Span { return p.span }
func (p *PatternGuarded) patternNode()      {}

// PatternRangeKind distinguishes the subject type a range pattern ranges over.
type PatternRangeKind int

const (
	RangeInt PatternRangeKind = iota
	RangeChar
)

// PatternRange matches values within [Start, End] or [Start, End).
type PatternRange struct {
	Kind      PatternRangeKind
	Start     Pattern // a *PatternLiteral, or nil for an open-start range
	End       Pattern
	Inclusive bool
	span      token.Span
}

func NewPatternRange(kind PatternRangeKind, start, end Pattern, inclusive bool, span token.Span) *PatternRange {
	return &PatternRange{Kind: kind, Start: start, End: end, Inclusive: inclusive, span: span}
}
func (p *PatternRange) Span() token.Span { return p.span }
func (p *PatternRange) patternNode()      {}

// PatternRest is the `..` marker inside a tuple/record pattern.
type PatternRest struct{ span token.Span }

func NewPatternRest(span token.Span) *PatternRest { return &PatternRest{span: span} }
func (p *PatternRest) Span() token.Span           { return p.span }
func (p *PatternRest) patternNode()               {}

// PatternTyped ascribes an explicit type to an inner pattern: `x: i32`.
type PatternTyped struct {
	Inner Pattern
	Type  TypeExpr
	span  token.Span
}

func NewPatternTyped(inner Pattern, typ TypeExpr, span token.Span) *PatternTyped {
	return &PatternTyped{Inner: inner, Type: typ, span: span}
}
func (p *PatternTyped) Span() token.Span { return p.span }
func (p *PatternTyped) patternNode()      {}
