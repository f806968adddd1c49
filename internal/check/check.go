// Package check implements Lucent's type checker: name resolution against
// internal/symtab, resolved-type construction, effect discipline, and
// control-flow typing.
package check

import (
	"fmt"

	"github.com/lucent-lang/lucent/internal/ast"
	"github.com/lucent-lang/lucent/internal/diag"
	"github.com/lucent-lang/lucent/internal/symtab"
	"github.com/lucent-lang/lucent/internal/token"
	"github.com/lucent-lang/lucent/internal/types"
)

// Checker walks one compilation unit's AST once, top-down, collecting
// diagnostics into a Batch rather than failing fast.
type Checker struct {
	Table    *symtab.Table
	TypeDefs map[symtab.ID]*types.TypeDef
	Traits   map[symtab.ID]*types.TraitDef
	Impls    []*types.ImplDef

	// SymbolTypes/ExprTypes are the checker's own side-tables: symtab.Symbol
	// carries no resolved Type field because internal/symtab is shared
	// across stages that have no notion of a resolved type.
	SymbolTypes map[symtab.ID]types.Type
	ExprTypes   map[ast.Expr]types.Type

	filename string
	batch    *diag.Batch

	scope      *symtab.Scope
	scopeStack []*symtab.Scope

	typeVarStack []map[string]*types.TypeVar
	selfStack    []types.Type
	effectStack  []bool
	returnStack  []types.Type
	loopDepth    int
}

// NewChecker creates a checker for a single file named filename.
func NewChecker(filename string) *Checker {
	return &Checker{
		TypeDefs:    map[symtab.ID]*types.TypeDef{},
		Traits:      map[symtab.ID]*types.TraitDef{},
		SymbolTypes: map[symtab.ID]types.Type{},
		ExprTypes:   map[ast.Expr]types.Type{},
		filename:    filename,
		batch:       diag.NewBatch(),
	}
}

// Check runs the full two-pass type check over file and returns the
// accumulated diagnostic batch. Callers should consult batch.HasErrors()
// before handing the checker's tables to the interpreter.
func (c *Checker) Check(file *ast.File) *diag.Batch {
	moduleName := "main"
	if file.Module != nil && file.Module.Name != nil {
		moduleName = file.Module.Name.Name
	}
	c.Table = symtab.New(moduleName)
	c.scope = c.Table.Root

	// The aggregate `std` record is predeclared with no resolved type:
	// member access through it resolves optimistically (the capability
	// surface is opaque to the checker; the per-namespace call path in
	// checkBuiltinNamespaceCall is where real static checking happens).
	c.Table.Define(c.Table.Root, "std", symtab.SymVariable, token.Span{}, false, nil)

	c.collectImports(file)
	c.collectDecls(file)
	c.checkDecls(file)

	return c.batch
}

// pushScope enters a new child scope of the current scope and tracks it on
// the balance stack.
func (c *Checker) pushScope(kind symtab.ScopeKind, name string) *symtab.Scope {
	s := c.Table.Enter(c.scope, kind, name)
	c.scopeStack = append(c.scopeStack, s)
	c.scope = s
	return s
}

// popScope leaves expected, panicking if the scope stack is unbalanced.
// Scope balance is an invariant, not a recoverable error condition.
func (c *Checker) popScope(expected *symtab.Scope) {
	n := len(c.scopeStack)
	if n == 0 || c.scopeStack[n-1].ID != expected.ID {
		panic(fmt.Sprintf("check: unbalanced scope leave: expected %d, stack is %v", expected.ID, c.scopeStack))
	}
	c.scopeStack = c.scopeStack[:n-1]
	if len(c.scopeStack) == 0 {
		c.scope = c.Table.Root
	} else {
		c.scope = c.scopeStack[len(c.scopeStack)-1]
	}
}

func (c *Checker) pushTypeVars(vars map[string]*types.TypeVar) {
	c.typeVarStack = append(c.typeVarStack, vars)
}

func (c *Checker) popTypeVars() {
	c.typeVarStack = c.typeVarStack[:len(c.typeVarStack)-1]
}

func (c *Checker) lookupTypeVar(name string) *types.TypeVar {
	for i := len(c.typeVarStack) - 1; i >= 0; i-- {
		if tv, ok := c.typeVarStack[i][name]; ok {
			return tv
		}
	}
	return nil
}

func (c *Checker) currentSelf() types.Type {
	if len(c.selfStack) == 0 {
		return nil
	}
	return c.selfStack[len(c.selfStack)-1]
}

func (c *Checker) pushSelf(t types.Type) { c.selfStack = append(c.selfStack, t) }
func (c *Checker) popSelf()              { c.selfStack = c.selfStack[:len(c.selfStack)-1] }

func (c *Checker) currentEffect() bool {
	if len(c.effectStack) == 0 {
		return false
	}
	return c.effectStack[len(c.effectStack)-1]
}

func (c *Checker) pushEffect(isEffect bool) { c.effectStack = append(c.effectStack, isEffect) }
func (c *Checker) popEffect()               { c.effectStack = c.effectStack[:len(c.effectStack)-1] }

func (c *Checker) currentReturn() types.Type {
	if len(c.returnStack) == 0 {
		return nil
	}
	return c.returnStack[len(c.returnStack)-1]
}

func (c *Checker) pushReturn(t types.Type) { c.returnStack = append(c.returnStack, t) }
func (c *Checker) popReturn()              { c.returnStack = c.returnStack[:len(c.returnStack)-1] }

// genericParamNames extracts the bare names of a generic parameter list.
func genericParamNames(params []ast.GenericParam) []string {
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Name.Name
	}
	return names
}

// buildTypeVarMap wraps names into fresh TypeVars for pushTypeVars, reading
// each parameter's constraint list verbatim.
func buildTypeVarMap(params []ast.GenericParam) map[string]*types.TypeVar {
	out := make(map[string]*types.TypeVar, len(params))
	for _, p := range params {
		constraints := make([]string, len(p.Constraints))
		for i, id := range p.Constraints {
			constraints[i] = id.Name
		}
		out[p.Name.Name] = &types.TypeVar{Name: p.Name.Name, Constraints: constraints}
	}
	return out
}
