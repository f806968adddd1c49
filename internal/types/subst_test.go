package types

import (
	"testing"

	"github.com/go-test/deep"
)

func TestInstantiateReplacesTypeVars(t *testing.T) {
	sub := Substitution{"T": TypeI32, "E": TypeString}

	got := Instantiate(&Result{Ok: &TypeVar{Name: "T"}, Err: &TypeVar{Name: "E"}}, sub)
	want := &Result{Ok: TypeI32, Err: TypeString}
	if diff := deep.Equal(got, want); diff != nil {
		t.Errorf("Instantiate mismatch: %v", diff)
	}
}

func TestInstantiateRebuildsStructurally(t *testing.T) {
	sub := Substitution{"T": TypeBool}
	orig := &Function{
		Params: []Type{&Array{Elem: &TypeVar{Name: "T"}}, &Option{Elem: &TypeVar{Name: "T"}}},
		Return: &Tuple{Elems: []Type{&TypeVar{Name: "T"}, TypeI32}},
		Effect: true,
	}

	got := Instantiate(orig, sub).(*Function)
	want := &Function{
		Params: []Type{&Array{Elem: TypeBool}, &Option{Elem: TypeBool}},
		Return: &Tuple{Elems: []Type{TypeBool, TypeI32}},
		Effect: true,
	}
	if diff := deep.Equal(got, want); diff != nil {
		t.Errorf("Instantiate mismatch: %v", diff)
	}

	// The original must be untouched: instantiation deep-copies.
	if _, ok := orig.Params[0].(*Array).Elem.(*TypeVar); !ok {
		t.Error("Instantiate mutated its input")
	}
}

func TestInstantiateLeavesUnboundVars(t *testing.T) {
	got := Instantiate(&TypeVar{Name: "U"}, Substitution{"T": TypeI32})
	if tv, ok := got.(*TypeVar); !ok || tv.Name != "U" {
		t.Errorf("unbound type var must survive, got %v", got)
	}
}

func TestInstantiateEmptySubstitutionIsIdentity(t *testing.T) {
	orig := &Option{Elem: &TypeVar{Name: "T"}}
	if got := Instantiate(orig, nil); got != Type(orig) {
		t.Error("empty substitution must return the input unchanged")
	}
}

func TestBuildSubstitution(t *testing.T) {
	sub := BuildSubstitution([]string{"T", "E"}, []Type{TypeI32, TypeString})
	if sub["T"] != Type(TypeI32) || sub["E"] != Type(TypeString) {
		t.Errorf("unexpected substitution %v", sub)
	}
}

func TestInstantiateVariantDefs(t *testing.T) {
	variants := []VariantDef{
		{Name: "Circle", Fields: []FieldDef{{Name: "0", Type: &TypeVar{Name: "T"}}}},
		{Name: "Empty"},
	}
	got := InstantiateVariantDefs(variants, Substitution{"T": TypeF64})
	if got[0].Fields[0].Type != Type(TypeF64) {
		t.Errorf("variant field not substituted: %v", got[0].Fields[0].Type)
	}
	if len(got[1].Fields) != 0 {
		t.Errorf("unit variant must stay empty")
	}
}
