package check

import (
	"github.com/lucent-lang/lucent/internal/ast"
	"github.com/lucent-lang/lucent/internal/diag"
	"github.com/lucent-lang/lucent/internal/symtab"
	"github.com/lucent-lang/lucent/internal/types"
	"github.com/lucent-lang/lucent/internal/unify"
)

// checkBlockBody checks a block's statements in order, then its tail
// expression. The block's type is its tail's type, or void when no tail
// exists. Every block introduces exactly one scope, entered and left here
// so the balance invariant holds on every path out.
func (c *Checker) checkBlockBody(block *ast.BlockExpr) types.Type {
	scope := c.pushScope(symtab.ScopeBlock, "<block>")
	for _, s := range block.Stmts {
		c.checkStmt(s)
	}
	result := types.Type(types.TypeVoid)
	if block.Tail != nil {
		result = c.checkExpr(block.Tail, nil)
	} else if n := len(block.Stmts); n > 0 {
		// A block whose last statement diverges (return/break) produces no
		// value of its own; the error type stands in for "never" so the
		// block unifies with whatever the surrounding context expects.
		switch block.Stmts[n-1].(type) {
		case *ast.ReturnStmt, *ast.BreakStmt:
			result = types.TypeError
		}
	}
	c.popScope(scope)
	return result
}

func (c *Checker) checkStmt(s ast.Stmt) {
	switch stmt := s.(type) {
	case *ast.LetStmt:
		c.checkLetStmt(stmt)
	case *ast.VarStmt:
		c.checkVarStmt(stmt)
	case *ast.AssignStmt:
		c.checkAssignStmt(stmt)
	case *ast.ForStmt:
		c.checkForStmt(stmt)
	case *ast.WhileStmt:
		c.checkWhileStmt(stmt)
	case *ast.LoopStmt:
		c.loopDepth++
		c.checkBlockBody(stmt.Body)
		c.loopDepth--
	case *ast.ReturnStmt:
		c.checkReturnStmt(stmt)
	case *ast.BreakStmt:
		if c.loopDepth == 0 {
			c.errorAt(stmt.Span(), diag.CodeInvalidOperation, "`break` outside of a loop")
		}
	case *ast.ExprStmt:
		c.checkExpr(stmt.Expr, nil)
	}
}

// checkLetStmt checks an immutable binding. The type annotation is
// mandatory; when it is missing the initializer's type stands in so the
// bound names still resolve downstream.
func (c *Checker) checkLetStmt(stmt *ast.LetStmt) {
	var want types.Type
	if stmt.Type != nil {
		want = c.resolveTypeExpr(stmt.Type)
	} else {
		c.errorAt(stmt.Span(), diag.CodeUndefinedType, "`let` binding requires a type annotation")
	}
	got := c.checkExpr(stmt.Value, want)
	if want == nil {
		want = got
	} else if !unify.IsAssignable(want, got) {
		if _, isErr := got.(*types.ErrorType); !isErr {
			c.errorAt(stmt.Value.Span(), diag.CodeTypeMismatch, "expected type %s, found %s", want, got)
		}
	}
	c.bindPatternInScope(stmt.Pattern, want, c.scope)
}

func (c *Checker) checkVarStmt(stmt *ast.VarStmt) {
	var want types.Type
	if stmt.Type != nil {
		want = c.resolveTypeExpr(stmt.Type)
	} else {
		c.errorAt(stmt.Span(), diag.CodeUndefinedType, "`var` binding requires a type annotation")
	}
	if stmt.Value != nil {
		got := c.checkExpr(stmt.Value, want)
		if want == nil {
			want = got
		} else if !unify.IsAssignable(want, got) {
			if _, isErr := got.(*types.ErrorType); !isErr {
				c.errorAt(stmt.Value.Span(), diag.CodeTypeMismatch, "expected type %s, found %s", want, got)
			}
		}
	}
	if want == nil {
		want = types.TypeError
	}
	for _, b := range c.destructurePattern(stmt.Pattern, want) {
		sym, err := c.Table.Define(c.scope, b.name, symtab.SymVariable, b.span.Span(), false, b.span)
		if err != nil {
			c.errorAt(b.span.Span(), diag.CodeDuplicateDefinition, "duplicate definition of %q", b.name)
			continue
		}
		sym.Mutable = true
		c.SymbolTypes[sym.ID] = b.typ
	}
}

func (c *Checker) checkAssignStmt(stmt *ast.AssignStmt) {
	targetType := c.checkAssignTarget(stmt.Target)
	got := c.checkExpr(stmt.Value, targetType)
	if stmt.Op != ast.AssignPlain {
		if !unify.IsNumeric(targetType) || !unify.TypesEqual(targetType, got) {
			_, tErr := targetType.(*types.ErrorType)
			_, gErr := got.(*types.ErrorType)
			if !tErr && !gErr {
				c.errorAt(stmt.Span(), diag.CodeInvalidBinaryOperand, "compound assignment requires matching numeric operands, found %s and %s", targetType, got)
			}
		}
		return
	}
	if !unify.IsAssignable(targetType, got) {
		if _, isErr := got.(*types.ErrorType); !isErr {
			c.errorAt(stmt.Value.Span(), diag.CodeTypeMismatch, "cannot assign %s to a target of type %s", got, targetType)
		}
	}
}

// checkAssignTarget validates that an expression names a mutable place and
// returns the place's type. Field, index, and tuple-element targets are
// places whenever their root is; only root identifier mutability is
// declared in the source, so that is where it is enforced.
func (c *Checker) checkAssignTarget(target ast.Expr) types.Type {
	switch t := target.(type) {
	case *ast.Ident:
		sym := c.Table.LookupPath(c.scope, splitPath(t.Name))
		if sym == nil {
			c.errorAt(t.Span(), diag.CodeUndefinedSymbol, "undefined name %q", t.Name)
			return types.TypeError
		}
		if sym.Kind != symtab.SymVariable {
			c.errorAt(t.Span(), diag.CodeInvalidOperation, "cannot assign to %q", t.Name)
			return types.TypeError
		}
		if !sym.Mutable {
			c.errorAt(t.Span(), diag.CodeInvalidOperation, "cannot assign to immutable binding %q (declare it with `var`)", t.Name)
		}
		if typ, ok := c.SymbolTypes[sym.ID]; ok {
			c.ExprTypes[target] = typ
			return typ
		}
		return types.TypeError
	case *ast.FieldExpr, *ast.IndexExpr, *ast.TupleIndexExpr:
		return c.checkExpr(target, nil)
	default:
		c.errorAt(target.Span(), diag.CodeInvalidOperation, "invalid assignment target")
		c.checkExpr(target, nil)
		return types.TypeError
	}
}

func (c *Checker) checkForStmt(stmt *ast.ForStmt) {
	iterType := c.checkExpr(stmt.Iterable, nil)
	elem := unify.GetIterableElement(iterType)
	if !unify.IsIterable(iterType) {
		if _, isErr := iterType.(*types.ErrorType); !isErr {
			c.errorAt(stmt.Iterable.Span(), diag.CodeInvalidOperation, "type %s is not iterable", iterType)
		}
	}
	if elem == nil {
		elem = types.TypeError
	}
	scope := c.pushScope(symtab.ScopeBlock, "<for>")
	c.bindPatternInScope(stmt.Pattern, elem, scope)
	c.loopDepth++
	c.checkBlockBody(stmt.Body)
	c.loopDepth--
	c.popScope(scope)
}

func (c *Checker) checkWhileStmt(stmt *ast.WhileStmt) {
	condType := c.checkExpr(stmt.Cond, types.TypeBool)
	if !unify.TypesEqual(condType, types.TypeBool) {
		if _, isErr := condType.(*types.ErrorType); !isErr {
			c.errorAt(stmt.Cond.Span(), diag.CodeTypeMismatch, "while condition must be bool, found %s", condType)
		}
	}
	c.loopDepth++
	c.checkBlockBody(stmt.Body)
	c.loopDepth--
}

func (c *Checker) checkReturnStmt(stmt *ast.ReturnStmt) {
	ret := c.currentReturn()
	if ret == nil {
		ret = types.TypeVoid
	}
	if stmt.Value == nil {
		if !unify.TypesEqual(ret, types.TypeVoid) {
			c.errorAt(stmt.Span(), diag.CodeTypeMismatch, "bare `return` in a function returning %s", ret)
		}
		return
	}
	got := c.checkExpr(stmt.Value, ret)
	if !unify.IsAssignable(ret, got) {
		if _, isErr := got.(*types.ErrorType); !isErr {
			c.errorAt(stmt.Value.Span(), diag.CodeTypeMismatch, "return type mismatch: expected %s, found %s", ret, got)
		}
	}
}
