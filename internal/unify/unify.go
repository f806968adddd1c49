// Package unify implements Lucent's structural type predicates: equality,
// assignability, cast legality, and the comparable/equatable/iterable/
// numeric predicate table.
package unify

import "github.com/lucent-lang/lucent/internal/types"

// TypesEqual reports structural equality between a and b. The error type
// unifies with anything, bounding diagnostic cascades to one per root cause.
func TypesEqual(a, b types.Type) bool {
	if isErrorType(a) || isErrorType(b) {
		return true
	}
	switch av := a.(type) {
	case *types.Primitive:
		bv, ok := b.(*types.Primitive)
		return ok && av.Kind == bv.Kind
	case *types.Void:
		_, ok := b.(*types.Void)
		return ok
	case *types.SelfType:
		_, ok := b.(*types.SelfType)
		return ok
	case *types.Named:
		bv, ok := b.(*types.Named)
		return ok && av.SymbolID == bv.SymbolID
	case *types.Instantiated:
		bv, ok := b.(*types.Instantiated)
		if !ok || av.SymbolID != bv.SymbolID || len(av.Args) != len(bv.Args) {
			return false
		}
		for i := range av.Args {
			if !TypesEqual(av.Args[i], bv.Args[i]) {
				return false
			}
		}
		return true
	case *types.Function:
		bv, ok := b.(*types.Function)
		if !ok || av.Effect != bv.Effect || len(av.Params) != len(bv.Params) {
			return false
		}
		for i := range av.Params {
			if !TypesEqual(av.Params[i], bv.Params[i]) {
				return false
			}
		}
		return TypesEqual(av.Return, bv.Return)
	case *types.Tuple:
		bv, ok := b.(*types.Tuple)
		if !ok || len(av.Elems) != len(bv.Elems) {
			return false
		}
		for i := range av.Elems {
			if !TypesEqual(av.Elems[i], bv.Elems[i]) {
				return false
			}
		}
		return true
	case *types.Array:
		bv, ok := b.(*types.Array)
		if !ok || !TypesEqual(av.Elem, bv.Elem) {
			return false
		}
		if (av.Len == nil) != (bv.Len == nil) {
			return false
		}
		return av.Len == nil || *av.Len == *bv.Len
	case *types.IO:
		bv, ok := b.(*types.IO)
		return ok && TypesEqual(av.Elem, bv.Elem)
	case *types.Result:
		bv, ok := b.(*types.Result)
		return ok && TypesEqual(av.Ok, bv.Ok) && TypesEqual(av.Err, bv.Err)
	case *types.Option:
		bv, ok := b.(*types.Option)
		return ok && TypesEqual(av.Elem, bv.Elem)
	case *types.TypeVar:
		bv, ok := b.(*types.TypeVar)
		return ok && av.Name == bv.Name
	default:
		return false
	}
}

func isErrorType(t types.Type) bool {
	_, ok := t.(*types.ErrorType)
	return ok
}

// IsAssignable reports whether a value of type source may be assigned to a
// place of type target: equality, plus integer-width/signedness lenience
// and fixed-to-dynamic array assignability.
func IsAssignable(target, source types.Type) bool {
	if TypesEqual(target, source) {
		return true
	}
	if tp, ok := target.(*types.Primitive); ok {
		if sp, ok := source.(*types.Primitive); ok {
			if types.IsIntegerKind(tp.Kind) && types.IsIntegerKind(sp.Kind) {
				return true
			}
		}
	}
	if ta, ok := target.(*types.Array); ok && ta.Len == nil {
		if sa, ok := source.(*types.Array); ok && TypesEqual(ta.Elem, sa.Elem) {
			return true
		}
	}
	return false
}

// IsValidCast reports whether `source as target` is legal: identity,
// numeric-to-numeric, or char-to-integer and integer-to-char.
func IsValidCast(source, target types.Type) bool {
	if TypesEqual(source, target) {
		return true
	}
	sp, sOK := source.(*types.Primitive)
	tp, tOK := target.(*types.Primitive)
	if !sOK || !tOK {
		return false
	}
	sNum := types.IsIntegerKind(sp.Kind) || types.IsFloatKind(sp.Kind)
	tNum := types.IsIntegerKind(tp.Kind) || types.IsFloatKind(tp.Kind)
	if sNum && tNum {
		return true
	}
	if sp.Kind == types.Char && types.IsIntegerKind(tp.Kind) {
		return true
	}
	if types.IsIntegerKind(sp.Kind) && tp.Kind == types.Char {
		return true
	}
	return false
}

// IsNumeric reports whether t is an integer width or f32/f64.
func IsNumeric(t types.Type) bool {
	p, ok := t.(*types.Primitive)
	return ok && (types.IsIntegerKind(p.Kind) || types.IsFloatKind(p.Kind))
}

// IsComparable reports whether t supports <, <=, >, >=: numeric, char, or string.
func IsComparable(t types.Type) bool {
	p, ok := t.(*types.Primitive)
	if !ok {
		return false
	}
	return types.IsIntegerKind(p.Kind) || types.IsFloatKind(p.Kind) || p.Kind == types.Char || p.Kind == types.Str
}

// IsEquatable reports whether t supports ==/!=: primitives, tuples/arrays/
// Options/Results of equatables, and named types (optimistically — the
// checker has no trait-bound derivation pass, so it trusts user types).
func IsEquatable(t types.Type) bool {
	switch v := t.(type) {
	case *types.Primitive:
		return true
	case *types.Tuple:
		for _, e := range v.Elems {
			if !IsEquatable(e) {
				return false
			}
		}
		return true
	case *types.Array:
		return IsEquatable(v.Elem)
	case *types.Option:
		return IsEquatable(v.Elem)
	case *types.Result:
		return IsEquatable(v.Ok) && IsEquatable(v.Err)
	case *types.Named, *types.Instantiated:
		return true
	default:
		return false
	}
}

// IsIterable reports whether t can be the subject of a `for` loop or `in`
// expression: arrays, strings, Options, Results, and instantiated
// collection types (first type argument is the element) — named types are
// optimistically iterable, matching the equatable predicate's stance.
func IsIterable(t types.Type) bool {
	switch t.(type) {
	case *types.Array:
		return true
	case *types.Option:
		return true
	case *types.Result:
		return true
	case *types.Instantiated, *types.Named:
		return true
	}
	if p, ok := t.(*types.Primitive); ok && p.Kind == types.Str {
		return true
	}
	return false
}

// GetIterableElement returns the element type a `for` loop pattern binds
// against for an iterable t, or nil if t is not iterable.
func GetIterableElement(t types.Type) types.Type {
	switch v := t.(type) {
	case *types.Array:
		return v.Elem
	case *types.Option:
		return v.Elem
	case *types.Result:
		return v.Ok
	case *types.Instantiated:
		if len(v.Args) > 0 {
			return v.Args[0]
		}
		return types.TypeError
	case *types.Primitive:
		if v.Kind == types.Str {
			return types.TypeChar
		}
	}
	return nil
}
