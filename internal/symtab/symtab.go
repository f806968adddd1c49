// Package symtab implements Lucent's lexical scope tree and symbol table.
package symtab

import (
	"fmt"

	"github.com/lucent-lang/lucent/internal/ast"
	"github.com/lucent-lang/lucent/internal/token"
)

// ID uniquely identifies a symbol within a compilation unit. Monotonic
// counters keep checker diagnostics and golden tests deterministic across
// runs, unlike a random identity scheme.
type ID uint64

// ScopeID uniquely identifies a scope, used by the checker to assert
// balanced enter/leave pairs.
type ScopeID uint64

// ScopeKind classifies a scope by the construct that introduced it.
type ScopeKind int

const (
	ScopeModule ScopeKind = iota
	ScopeFunction
	ScopeBlock
	ScopeImpl
	ScopeTrait
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeModule:
		return "module"
	case ScopeFunction:
		return "function"
	case ScopeBlock:
		return "block"
	case ScopeImpl:
		return "impl"
	case ScopeTrait:
		return "trait"
	default:
		return "unknown"
	}
}

// SymbolKind classifies what a symbol names.
type SymbolKind int

const (
	SymVariable SymbolKind = iota
	SymFunction
	SymTypeDef
	SymTraitDef
	SymTypeParam
	SymImportAlias
)

// TypeDefKind distinguishes the three shapes a SymTypeDef symbol can take.
type TypeDefKind int

const (
	TypeDefSum TypeDefKind = iota
	TypeDefProduct
	TypeDefAlias
)

// Symbol is one named entity visible in some scope.
type Symbol struct {
	ID         ID
	Name       string
	Kind       SymbolKind
	TypeDefKind TypeDefKind // valid iff Kind == SymTypeDef
	Scope      ScopeID     // the scope this symbol lives in
	Span       token.Span
	Pub        bool
	Mutable    bool     // valid iff Kind == SymVariable
	Node       ast.Node // declaring AST node, nil for synthetic/builtin symbols

	// ResolvedID is populated once an import_alias symbol is bound to the
	// symbol it re-exports; lookups transparently follow it.
	ResolvedID ID

	// Variants/Fields name the members of a type_def symbol so lookupPath
	// can resolve `Type::variant` / `Type.field` without re-walking the AST.
	Members map[string]ID
}

// Scope is one node in the lexical scope tree.
type Scope struct {
	ID     ScopeID
	Kind   ScopeKind
	Parent *Scope
	Name   string // module/function/type name this scope belongs to, for diagnostics

	symbols map[string]*Symbol
	order   []string // insertion order, so iteration is deterministic
}

// DuplicateDefinitionError is returned by Define when name already exists
// in the given scope (shadowing across scopes remains legal).
type DuplicateDefinitionError struct {
	Name     string
	Existing *Symbol
}

func (e *DuplicateDefinitionError) Error() string {
	return fmt.Sprintf("duplicate definition of %q in this scope", e.Name)
}

// Table owns every scope and symbol created during one compilation unit.
type Table struct {
	nextSymbolID ID
	nextScopeID  ScopeID
	scopes       map[ScopeID]*Scope
	symbols      map[ID]*Symbol
	Root         *Scope
}

// New creates a table with a freshly created module-kind root scope.
func New(moduleName string) *Table {
	t := &Table{
		scopes:  make(map[ScopeID]*Scope),
		symbols: make(map[ID]*Symbol),
	}
	t.Root = t.newScope(nil, ScopeModule, moduleName)
	return t
}

func (t *Table) newScope(parent *Scope, kind ScopeKind, name string) *Scope {
	s := &Scope{
		ID:      t.nextScopeID,
		Kind:    kind,
		Parent:  parent,
		Name:    name,
		symbols: make(map[string]*Symbol),
	}
	t.nextScopeID++
	t.scopes[s.ID] = s
	return s
}

// Enter creates and returns a new child scope. Callers must pair every
// Enter with exactly one matching exit acknowledgement (the checker tracks
// this by asserting the returned ScopeID against the one it expects to
// leave — see internal/check).
func (t *Table) Enter(parent *Scope, kind ScopeKind, name string) *Scope {
	return t.newScope(parent, kind, name)
}

// Define inserts a symbol into scope, assigning it a fresh ID. It fails
// with *DuplicateDefinitionError if name is already bound in this exact
// scope: shadowing across distinct scopes is always legal.
func (t *Table) Define(scope *Scope, name string, kind SymbolKind, span token.Span, pub bool, node ast.Node) (*Symbol, error) {
	if existing, ok := scope.symbols[name]; ok {
		return nil, &DuplicateDefinitionError{Name: name, Existing: existing}
	}
	sym := &Symbol{
		ID:    t.nextSymbolID,
		Name:  name,
		Kind:  kind,
		Scope: scope.ID,
		Span:  span,
		Pub:   pub,
		Node:  node,
	}
	t.nextSymbolID++
	scope.symbols[name] = sym
	scope.order = append(scope.order, name)
	t.symbols[sym.ID] = sym
	return sym, nil
}

// Symbol looks a symbol up by its stable ID.
func (t *Table) Symbol(id ID) *Symbol { return t.symbols[id] }

// Lookup walks scope and its ancestors outward, returning the first symbol
// bound to name. Import-alias symbols are followed transparently.
func (t *Table) Lookup(scope *Scope, name string) *Symbol {
	for s := scope; s != nil; s = s.Parent {
		if sym, ok := s.symbols[name]; ok {
			return t.resolveAlias(sym)
		}
	}
	return nil
}

// LookupLocal looks up name only in scope itself, not its ancestors. Used
// by Define's duplicate check and by callers that need to distinguish
// shadowing from redefinition.
func (t *Table) LookupLocal(scope *Scope, name string) *Symbol {
	if sym, ok := scope.symbols[name]; ok {
		return t.resolveAlias(sym)
	}
	return nil
}

func (t *Table) resolveAlias(sym *Symbol) *Symbol {
	seen := map[ID]bool{}
	for sym.Kind == SymImportAlias {
		if seen[sym.ID] {
			return sym // cyclic alias; caller's resolution pass already diagnoses this
		}
		seen[sym.ID] = true
		target := t.symbols[sym.ResolvedID]
		if target == nil {
			return sym
		}
		sym = target
	}
	return sym
}

// LookupPath resolves a `::`-qualified sequence such as `shapes::Circle` by
// locating the first segment in scope, then descending through each
// subsequent segment via the preceding symbol's exported Members.
func (t *Table) LookupPath(scope *Scope, segments []string) *Symbol {
	if len(segments) == 0 {
		return nil
	}
	sym := t.Lookup(scope, segments[0])
	if sym == nil {
		return nil
	}
	for _, seg := range segments[1:] {
		if sym.Members == nil {
			return nil
		}
		id, ok := sym.Members[seg]
		if !ok {
			return nil
		}
		sym = t.resolveAlias(t.symbols[id])
	}
	return sym
}

// AddMember records that sym exports a member named memberName (e.g. a sum
// type's variant, a module's public function) resolvable via LookupPath.
func (t *Table) AddMember(sym *Symbol, memberName string, memberID ID) {
	if sym.Members == nil {
		sym.Members = make(map[string]ID)
	}
	sym.Members[memberName] = memberID
}

// DefineMember creates a symbol for one structural member of owner (a sum
// type's variant, a trait's method) and wires it in via AddMember. Unlike
// Define, it does not participate in lexical scope lookup, so sibling types
// may reuse member names (two enums can each have a "Red" variant) without
// colliding.
func (t *Table) DefineMember(owner *Symbol, memberName string, kind SymbolKind, span token.Span, node ast.Node) *Symbol {
	sym := &Symbol{
		ID:    t.nextSymbolID,
		Name:  memberName,
		Kind:  kind,
		Scope: owner.Scope,
		Span:  span,
		Node:  node,
	}
	t.nextSymbolID++
	t.symbols[sym.ID] = sym
	t.AddMember(owner, memberName, sym.ID)
	return sym
}

// BindAlias records that an import_alias symbol now refers to target.
func (t *Table) BindAlias(alias *Symbol, target *Symbol) {
	alias.ResolvedID = target.ID
}
