// Package types defines Lucent's resolved type representation: the
// canonical form types take after name resolution.
package types

import (
	"fmt"
	"strings"

	"github.com/lucent-lang/lucent/internal/symtab"
)

// Type is any resolved type. The unexported marker method seals the
// interface to this package's concrete kinds, keeping the resolved type
// system a closed tagged union.
type Type interface {
	String() string
	isType()
}

// PrimitiveKind enumerates scalar primitive kinds.
type PrimitiveKind string

const (
	I8   PrimitiveKind = "i8"
	I16  PrimitiveKind = "i16"
	I32  PrimitiveKind = "i32"
	I64  PrimitiveKind = "i64"
	I128 PrimitiveKind = "i128"
	U8   PrimitiveKind = "u8"
	U16  PrimitiveKind = "u16"
	U32  PrimitiveKind = "u32"
	U64  PrimitiveKind = "u64"
	U128 PrimitiveKind = "u128"
	F32  PrimitiveKind = "f32"
	F64  PrimitiveKind = "f64"
	Bool PrimitiveKind = "bool"
	Char PrimitiveKind = "char"
	Str  PrimitiveKind = "string"
)

var signedInts = map[PrimitiveKind]bool{I8: true, I16: true, I32: true, I64: true, I128: true}
var unsignedInts = map[PrimitiveKind]bool{U8: true, U16: true, U32: true, U64: true, U128: true}
var floats = map[PrimitiveKind]bool{F32: true, F64: true}

// IsIntegerKind reports whether k is a signed or unsigned integer width.
func IsIntegerKind(k PrimitiveKind) bool { return signedInts[k] || unsignedInts[k] }

// IsFloatKind reports whether k is f32/f64.
func IsFloatKind(k PrimitiveKind) bool { return floats[k] }

// IsSignedKind reports whether k is a signed integer width.
func IsSignedKind(k PrimitiveKind) bool { return signedInts[k] }

// Primitive is a scalar type.
type Primitive struct{ Kind PrimitiveKind }

func (p *Primitive) String() string { return string(p.Kind) }
func (p *Primitive) isType()        {}

var (
	TypeI32    = &Primitive{Kind: I32}
	TypeI64    = &Primitive{Kind: I64}
	TypeF64    = &Primitive{Kind: F64}
	TypeBool   = &Primitive{Kind: Bool}
	TypeChar   = &Primitive{Kind: Char}
	TypeString = &Primitive{Kind: Str}
)

// Void is the unit type: blocks with no tail expression, bare `return`, etc.
type Void struct{}

func (v *Void) String() string { return "void" }
func (v *Void) isType()        {}

// TypeVoid is the shared Void instance.
var TypeVoid = &Void{}

// ErrorType is the distinguished type used only during checking to swallow
// invalid sub-expressions: it unifies with anything, and
// is never allowed to reach a runtime Value.
type ErrorType struct{}

func (e *ErrorType) String() string { return "<error>" }
func (e *ErrorType) isType()        {}

// TypeError is the shared ErrorType instance.
var TypeError = &ErrorType{}

// Named references a type_def symbol (a struct/enum/alias) that takes no
// type arguments (or whose arguments are carried by the symbol's own
// declaration — used for non-generic named types).
type Named struct {
	SymbolID symtab.ID
	Display  string
}

func (n *Named) String() string { return n.Display }
func (n *Named) isType()        {}

// Instantiated applies concrete type arguments to a generic type_def's base
// symbol. Arity must match the referenced definition's declared type
// parameter count.
type Instantiated struct {
	SymbolID symtab.ID
	Display  string
	Args     []Type
}

func (i *Instantiated) String() string {
	parts := make([]string, len(i.Args))
	for idx, a := range i.Args {
		parts[idx] = a.String()
	}
	return fmt.Sprintf("%s[%s]", i.Display, strings.Join(parts, ", "))
}
func (i *Instantiated) isType() {}

// Function is a function type; Effect mirrors the parsed effect annotation
// verbatim.
type Function struct {
	Params []Type
	Return Type
	Effect bool
}

func (f *Function) String() string {
	parts := make([]string, len(f.Params))
	for i, p := range f.Params {
		parts[i] = p.String()
	}
	prefix := ""
	if f.Effect {
		prefix = "effect "
	}
	return fmt.Sprintf("%sfn(%s) -> %s", prefix, strings.Join(parts, ", "), f.Return.String())
}
func (f *Function) isType() {}

// Tuple is a fixed-arity product of anonymous fields.
type Tuple struct{ Elems []Type }

func (t *Tuple) String() string {
	parts := make([]string, len(t.Elems))
	for i, e := range t.Elems {
		parts[i] = e.String()
	}
	return fmt.Sprintf("(%s)", strings.Join(parts, ", "))
}
func (t *Tuple) isType() {}

// Array is `[T]` (Len == nil, dynamically sized) or `[T; N]` (Len != nil).
type Array struct {
	Elem Type
	Len  *int
}

func (a *Array) String() string {
	if a.Len != nil {
		return fmt.Sprintf("[%s; %d]", a.Elem.String(), *a.Len)
	}
	return fmt.Sprintf("[%s]", a.Elem.String())
}
func (a *Array) isType() {}

// IO wraps a type produced by an effectful computation.
type IO struct{ Elem Type }

func (i *IO) String() string { return fmt.Sprintf("IO[%s]", i.Elem.String()) }
func (i *IO) isType()        {}

// Result is `Result[Ok, Err]`.
type Result struct {
	Ok  Type
	Err Type
}

func (r *Result) String() string { return fmt.Sprintf("Result[%s, %s]", r.Ok.String(), r.Err.String()) }
func (r *Result) isType()        {}

// Option is `Option[T]`.
type Option struct{ Elem Type }

func (o *Option) String() string { return fmt.Sprintf("Option[%s]", o.Elem.String()) }
func (o *Option) isType()        {}

// TypeVar is an unresolved generic type parameter, carrying its declared
// trait bounds.
type TypeVar struct {
	Name        string
	Constraints []string
}

func (v *TypeVar) String() string { return v.Name }
func (v *TypeVar) isType()        {}

// SelfType is the `Self` placeholder used inside trait/impl bodies.
type SelfType struct{}

func (s *SelfType) String() string { return "Self" }
func (s *SelfType) isType()        {}
