package unify

import (
	"testing"

	"github.com/lucent-lang/lucent/internal/types"
)

// sampleTypes is a small corpus covering every resolved-type kind the
// predicates dispatch on, used for the symmetry/reflexivity property.
func sampleTypes() []types.Type {
	three := 3
	return []types.Type{
		types.TypeI32,
		types.TypeI64,
		types.TypeF64,
		types.TypeBool,
		types.TypeChar,
		types.TypeString,
		types.TypeVoid,
		types.TypeError,
		&types.Named{SymbolID: 1, Display: "Point"},
		&types.Named{SymbolID: 2, Display: "Shape"},
		&types.Instantiated{SymbolID: 3, Display: "Pair", Args: []types.Type{types.TypeI32, types.TypeString}},
		&types.Function{Params: []types.Type{types.TypeI32}, Return: types.TypeBool},
		&types.Function{Params: []types.Type{types.TypeI32}, Return: types.TypeBool, Effect: true},
		&types.Tuple{Elems: []types.Type{types.TypeI32, types.TypeChar}},
		&types.Array{Elem: types.TypeI32},
		&types.Array{Elem: types.TypeI32, Len: &three},
		&types.IO{Elem: types.TypeVoid},
		&types.Result{Ok: types.TypeI32, Err: types.TypeString},
		&types.Option{Elem: types.TypeI32},
		&types.TypeVar{Name: "T"},
		&types.SelfType{},
	}
}

func TestTypesEqualReflexiveAndSymmetric(t *testing.T) {
	samples := sampleTypes()
	for _, a := range samples {
		if !TypesEqual(a, a) {
			t.Errorf("TypesEqual(%s, %s) = false, want true", a, a)
		}
		for _, b := range samples {
			if TypesEqual(a, b) != TypesEqual(b, a) {
				t.Errorf("TypesEqual asymmetric for %s and %s", a, b)
			}
		}
	}
}

func TestErrorTypeUnifiesWithEverything(t *testing.T) {
	for _, a := range sampleTypes() {
		if !TypesEqual(types.TypeError, a) || !TypesEqual(a, types.TypeError) {
			t.Errorf("error type must unify with %s", a)
		}
	}
}

func TestIsAssignableIntegerWidths(t *testing.T) {
	u8 := &types.Primitive{Kind: types.U8}
	i128 := &types.Primitive{Kind: types.I128}

	if !IsAssignable(types.TypeI32, types.TypeI64) {
		t.Error("integer assignment must ignore width")
	}
	if !IsAssignable(u8, i128) || !IsAssignable(i128, u8) {
		t.Error("integer assignment must ignore signedness")
	}
	if IsAssignable(types.TypeI32, types.TypeF64) {
		t.Error("float must not be assignable to integer")
	}
	if IsAssignable(types.TypeF64, types.TypeI32) {
		t.Error("integer must not be assignable to float")
	}
}

func TestIsAssignableFixedToDynamicArray(t *testing.T) {
	three := 3
	fixed := &types.Array{Elem: types.TypeI32, Len: &three}
	dynamic := &types.Array{Elem: types.TypeI32}

	if !IsAssignable(dynamic, fixed) {
		t.Error("[i32; 3] must be assignable to [i32]")
	}
	if IsAssignable(fixed, dynamic) {
		t.Error("[i32] must not be assignable to [i32; 3]")
	}
}

func TestIsValidCast(t *testing.T) {
	cases := []struct {
		source, target types.Type
		want           bool
	}{
		{types.TypeI32, types.TypeI32, true},
		{types.TypeI32, types.TypeF64, true},
		{types.TypeF64, types.TypeI32, true},
		{types.TypeChar, types.TypeI32, true},
		{types.TypeI32, types.TypeChar, true},
		{types.TypeString, types.TypeI32, false},
		{types.TypeBool, types.TypeI32, false},
		{types.TypeChar, types.TypeF64, false},
	}
	for _, c := range cases {
		if got := IsValidCast(c.source, c.target); got != c.want {
			t.Errorf("IsValidCast(%s, %s) = %v, want %v", c.source, c.target, got, c.want)
		}
	}
}

func TestPredicateTable(t *testing.T) {
	if !IsNumeric(types.TypeI32) || !IsNumeric(types.TypeF64) || IsNumeric(types.TypeBool) {
		t.Error("numeric predicate mismatch")
	}
	if !IsComparable(types.TypeChar) || !IsComparable(types.TypeString) || IsComparable(types.TypeVoid) {
		t.Error("comparable predicate mismatch")
	}
	if !IsEquatable(&types.Tuple{Elems: []types.Type{types.TypeI32, types.TypeString}}) {
		t.Error("tuple of equatables must be equatable")
	}
	if IsEquatable(&types.Function{Return: types.TypeVoid}) {
		t.Error("functions must not be equatable")
	}
}

func TestIterableElements(t *testing.T) {
	if el := GetIterableElement(&types.Array{Elem: types.TypeI32}); !TypesEqual(el, types.TypeI32) {
		t.Errorf("array element = %v, want i32", el)
	}
	if el := GetIterableElement(types.TypeString); !TypesEqual(el, types.TypeChar) {
		t.Errorf("string element = %v, want char", el)
	}
	inst := &types.Instantiated{SymbolID: 9, Display: "List", Args: []types.Type{types.TypeBool}}
	if el := GetIterableElement(inst); !TypesEqual(el, types.TypeBool) {
		t.Errorf("instantiated element = %v, want first type arg", el)
	}
	if GetIterableElement(types.TypeI32) != nil {
		t.Error("i32 must not be iterable")
	}
	if IsIterable(types.TypeBool) {
		t.Error("bool must not be iterable")
	}
}
