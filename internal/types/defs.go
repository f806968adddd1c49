package types

import "github.com/lucent-lang/lucent/internal/symtab"

// VariantDef describes one variant of a resolved sum type.
type VariantDef struct {
	Name    string
	Fields  []FieldDef // empty for unit variants; synthesized names "0","1",... for positional variants
	Named   bool       // true if the variant uses named fields (`Circle { radius: f64 }`)
}

// FieldDef is one field of a resolved product type or sum-type variant.
type FieldDef struct {
	Name string
	Type Type
}

// TypeDef is the resolved shape of a `struct`/`enum`/`type` declaration,
// stored alongside its symtab.Symbol so the checker and interpreter can
// look up field/variant shapes without re-walking the AST.
type TypeDef struct {
	SymbolID   symtab.ID
	Name       string
	TypeParams []string

	// exactly one of the following is populated, selected by
	// symtab.Symbol.TypeDefKind
	Fields     []FieldDef   // product
	Variants   []VariantDef // sum
	AliasOf    Type         // alias
}

// TraitDef is the resolved shape of a `trait` declaration.
type TraitDef struct {
	SymbolID symtab.ID
	Name     string
	Methods  map[string]*Function // method name -> signature (Self substituted per impl)
	Effects  map[string]bool      // method name -> whether it is declared effect
	Defaults map[string]bool      // method name -> has a default body
}

// ImplDef records one `impl Trait for Type` (or inherent `impl Type`) block.
type ImplDef struct {
	HasTrait      bool
	TraitSymbolID symtab.ID
	TypeSymbolID  symtab.ID
	Methods       map[string]*Function
}
