package interp

import (
	"github.com/lucent-lang/lucent/internal/ast"
	"github.com/lucent-lang/lucent/internal/value"
)

// evalBlock executes a block's statements in order within env, then its
// tail expression. The caller supplies the scope: function application and
// block-expression evaluation each pass a freshly enclosed environment.
func (in *Interpreter) evalBlock(block *ast.BlockExpr, env *value.Environment) value.Value {
	for _, s := range block.Stmts {
		if sig := in.execStmt(s, env); sig != nil {
			return sig
		}
	}
	if block.Tail != nil {
		return in.evalExpr(block.Tail, env)
	}
	return value.TheVoid
}

// execStmt executes one statement. It returns nil for normal completion,
// or a signal (return/break/error) the enclosing construct must handle.
func (in *Interpreter) execStmt(s ast.Stmt, env *value.Environment) value.Value {
	switch stmt := s.(type) {
	case *ast.LetStmt:
		return in.execBinding(stmt.Pattern, stmt.Value, env)
	case *ast.VarStmt:
		if stmt.Value == nil {
			return in.bindIrrefutable(stmt.Pattern, value.TheVoid, env)
		}
		return in.execBinding(stmt.Pattern, stmt.Value, env)
	case *ast.AssignStmt:
		return in.execAssign(stmt, env)
	case *ast.ForStmt:
		return in.execFor(stmt, env)
	case *ast.WhileStmt:
		return in.execWhile(stmt, env)
	case *ast.LoopStmt:
		for {
			result := in.evalBlock(stmt.Body, value.NewEnclosedEnvironment(env))
			if _, ok := result.(*value.BreakSignal); ok {
				return nil
			}
			if value.IsSignal(result) {
				return result
			}
		}
	case *ast.ReturnStmt:
		if stmt.Value == nil {
			return &value.ReturnSignal{Value: value.TheVoid}
		}
		v := in.evalExpr(stmt.Value, env)
		if value.IsSignal(v) {
			return v
		}
		return &value.ReturnSignal{Value: v}
	case *ast.BreakStmt:
		return &value.BreakSignal{}
	case *ast.ExprStmt:
		v := in.evalExpr(stmt.Expr, env)
		if value.IsSignal(v) {
			return v
		}
		return nil
	default:
		return value.NewError("InvalidOperation", "cannot execute statement")
	}
}

func (in *Interpreter) execBinding(p ast.Pattern, init ast.Expr, env *value.Environment) value.Value {
	v := in.evalExpr(init, env)
	if value.IsSignal(v) {
		return v
	}
	return in.bindIrrefutable(p, v, env)
}

// bindIrrefutable destructures v into p's bindings. Binding positions only
// accept patterns the checker proved irrefutable; a non-match here means
// the program bypassed checking.
func (in *Interpreter) bindIrrefutable(p ast.Pattern, v value.Value, env *value.Environment) value.Value {
	matched, sig := in.matchPattern(p, v, env)
	if sig != nil {
		return sig
	}
	if !matched {
		return value.NewError("TypeMismatch", "binding pattern did not match %s", v.Inspect())
	}
	return nil
}

func (in *Interpreter) execAssign(stmt *ast.AssignStmt, env *value.Environment) value.Value {
	newVal := in.evalExpr(stmt.Value, env)
	if value.IsSignal(newVal) {
		return newVal
	}

	combine := func(old value.Value) value.Value {
		if stmt.Op == ast.AssignPlain {
			return newVal
		}
		return evalArithmetic(compoundOp(stmt.Op), old, newVal)
	}

	switch target := stmt.Target.(type) {
	case *ast.Ident:
		old, ok := env.Get(target.Name)
		if !ok {
			return value.NewError("InvalidOperation", "undefined name %q", target.Name)
		}
		v := combine(old)
		if value.IsSignal(v) {
			return v
		}
		if !env.Assign(target.Name, v) {
			return value.NewError("InvalidOperation", "undefined name %q", target.Name)
		}
		return nil

	case *ast.FieldExpr:
		recv := in.evalExpr(target.Receiver, env)
		if value.IsSignal(recv) {
			return recv
		}
		rec, ok := recv.(*value.Record)
		if !ok {
			return value.NewError("TypeMismatch", "value of kind %s has no fields", recv.Kind())
		}
		for i := range rec.Fields {
			if rec.Fields[i].Name == target.Field.Name {
				v := combine(rec.Fields[i].Value)
				if value.IsSignal(v) {
					return v
				}
				rec.Fields[i].Value = v
				return nil
			}
		}
		return value.NewError("InvalidOperation", "%s has no field %q", rec.TypeName, target.Field.Name)

	case *ast.IndexExpr:
		recv := in.evalExpr(target.Receiver, env)
		if value.IsSignal(recv) {
			return recv
		}
		arr, ok := recv.(*value.Array)
		if !ok {
			return value.NewError("TypeMismatch", "value of kind %s cannot be index-assigned", recv.Kind())
		}
		idxv := in.evalExpr(target.Index, env)
		if value.IsSignal(idxv) {
			return idxv
		}
		idx, ok := idxv.(*value.Int)
		if !ok {
			return value.NewError("TypeMismatch", "index must be an integer, got %s", idxv.Kind())
		}
		if idx.Value < 0 || idx.Value >= int64(len(arr.Elements)) {
			return value.NewError("InvalidOperation", "index %d out of bounds for array of length %d", idx.Value, len(arr.Elements))
		}
		v := combine(arr.Elements[idx.Value])
		if value.IsSignal(v) {
			return v
		}
		arr.Elements[idx.Value] = v
		return nil

	default:
		return value.NewError("InvalidOperation", "invalid assignment target")
	}
}

func compoundOp(op ast.AssignOp) ast.BinaryOp {
	switch op {
	case ast.AssignAdd:
		return ast.OpAdd
	case ast.AssignSub:
		return ast.OpSub
	case ast.AssignMul:
		return ast.OpMul
	default:
		return ast.OpDiv
	}
}

func (in *Interpreter) execFor(stmt *ast.ForStmt, env *value.Environment) value.Value {
	iter := in.evalExpr(stmt.Iterable, env)
	if value.IsSignal(iter) {
		return iter
	}
	elems, errv := iterableElems(iter)
	if errv != nil {
		return errv
	}
	for _, elem := range elems {
		iterEnv := value.NewEnclosedEnvironment(env)
		matched, sig := in.matchPattern(stmt.Pattern, elem, iterEnv)
		if sig != nil {
			return sig
		}
		if !matched {
			return value.NewError("TypeMismatch", "loop pattern did not match %s", elem.Inspect())
		}
		result := in.evalBlock(stmt.Body, iterEnv)
		if _, ok := result.(*value.BreakSignal); ok {
			return nil
		}
		if value.IsSignal(result) {
			return result
		}
	}
	return nil
}

func (in *Interpreter) execWhile(stmt *ast.WhileStmt, env *value.Environment) value.Value {
	for {
		cond := in.evalExpr(stmt.Cond, env)
		if value.IsSignal(cond) {
			return cond
		}
		b, ok := cond.(*value.Bool)
		if !ok {
			return value.NewError("TypeMismatch", "while condition must be bool, got %s", cond.Kind())
		}
		if !b.Value {
			return nil
		}
		result := in.evalBlock(stmt.Body, value.NewEnclosedEnvironment(env))
		if _, ok := result.(*value.BreakSignal); ok {
			return nil
		}
		if value.IsSignal(result) {
			return result
		}
	}
}
