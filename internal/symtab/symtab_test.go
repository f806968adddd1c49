package symtab

import (
	"errors"
	"testing"

	"github.com/lucent-lang/lucent/internal/token"
)

func TestDefineAndLookup(t *testing.T) {
	tbl := New("main")

	sym, err := tbl.Define(tbl.Root, "x", SymVariable, token.Span{}, false, nil)
	if err != nil {
		t.Fatalf("Define failed: %v", err)
	}
	if got := tbl.Lookup(tbl.Root, "x"); got != sym {
		t.Fatalf("Lookup returned %v, want %v", got, sym)
	}
	if tbl.Lookup(tbl.Root, "y") != nil {
		t.Fatal("Lookup of undefined name must return nil")
	}
}

func TestDuplicateDefinition(t *testing.T) {
	tbl := New("main")

	if _, err := tbl.Define(tbl.Root, "x", SymVariable, token.Span{}, false, nil); err != nil {
		t.Fatalf("first Define failed: %v", err)
	}
	_, err := tbl.Define(tbl.Root, "x", SymFunction, token.Span{}, false, nil)
	var dup *DuplicateDefinitionError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateDefinitionError, got %v", err)
	}
	if dup.Name != "x" || dup.Existing == nil {
		t.Fatalf("unexpected error payload: %+v", dup)
	}
}

func TestShadowingAcrossScopes(t *testing.T) {
	tbl := New("main")

	outer, _ := tbl.Define(tbl.Root, "x", SymVariable, token.Span{}, false, nil)
	block := tbl.Enter(tbl.Root, ScopeBlock, "<block>")
	inner, err := tbl.Define(block, "x", SymVariable, token.Span{}, false, nil)
	if err != nil {
		t.Fatalf("shadowing across scopes must be legal: %v", err)
	}

	if got := tbl.Lookup(block, "x"); got != inner {
		t.Fatal("inner scope must see the shadowing symbol")
	}
	if got := tbl.Lookup(tbl.Root, "x"); got != outer {
		t.Fatal("outer scope must still see its own symbol")
	}
}

func TestLookupWalksOutward(t *testing.T) {
	tbl := New("main")

	sym, _ := tbl.Define(tbl.Root, "f", SymFunction, token.Span{}, true, nil)
	fnScope := tbl.Enter(tbl.Root, ScopeFunction, "f")
	blockScope := tbl.Enter(fnScope, ScopeBlock, "<block>")

	if got := tbl.Lookup(blockScope, "f"); got != sym {
		t.Fatal("Lookup must walk outward through parents")
	}
	if got := tbl.LookupLocal(blockScope, "f"); got != nil {
		t.Fatal("LookupLocal must not walk outward")
	}
}

func TestLookupPathThroughMembers(t *testing.T) {
	tbl := New("main")

	shape, _ := tbl.Define(tbl.Root, "Shape", SymTypeDef, token.Span{}, true, nil)
	circle := tbl.DefineMember(shape, "Circle", SymFunction, token.Span{}, nil)

	if got := tbl.LookupPath(tbl.Root, []string{"Shape", "Circle"}); got != circle {
		t.Fatalf("LookupPath returned %v, want the Circle member", got)
	}
	if tbl.LookupPath(tbl.Root, []string{"Shape", "Square"}) != nil {
		t.Fatal("LookupPath of a missing member must return nil")
	}

	// Sibling types may reuse member names without colliding.
	color, _ := tbl.Define(tbl.Root, "Color", SymTypeDef, token.Span{}, true, nil)
	red := tbl.DefineMember(color, "Circle", SymFunction, token.Span{}, nil)
	if got := tbl.LookupPath(tbl.Root, []string{"Color", "Circle"}); got != red {
		t.Fatal("member names must be scoped to their owner")
	}
}

func TestImportAliasIsTransparent(t *testing.T) {
	tbl := New("main")

	target, _ := tbl.Define(tbl.Root, "real", SymFunction, token.Span{}, true, nil)
	alias, _ := tbl.Define(tbl.Root, "alias", SymImportAlias, token.Span{}, false, nil)
	tbl.BindAlias(alias, target)

	if got := tbl.Lookup(tbl.Root, "alias"); got != target {
		t.Fatalf("alias lookup returned %v, want the bound target", got)
	}
}

func TestScopeIDsAreUnique(t *testing.T) {
	tbl := New("main")
	a := tbl.Enter(tbl.Root, ScopeFunction, "a")
	b := tbl.Enter(a, ScopeBlock, "b")
	if a.ID == b.ID || a.ID == tbl.Root.ID {
		t.Fatal("scope IDs must be unique")
	}
	if b.Parent != a || a.Parent != tbl.Root {
		t.Fatal("scope parents must chain to the root")
	}
}
