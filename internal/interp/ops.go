package interp

import (
	"strings"

	"github.com/lucent-lang/lucent/internal/ast"
	"github.com/lucent-lang/lucent/internal/value"
)

func (in *Interpreter) evalBinary(e *ast.BinaryExpr, env *value.Environment) value.Value {
	// && and || short-circuit: the right operand must not evaluate unless
	// needed.
	if e.Op == ast.OpAnd || e.Op == ast.OpOr {
		left := in.evalExpr(e.Left, env)
		if value.IsSignal(left) {
			return left
		}
		lb, ok := left.(*value.Bool)
		if !ok {
			return value.NewError("TypeMismatch", "logical operand must be bool, got %s", left.Kind())
		}
		if e.Op == ast.OpAnd && !lb.Value {
			return value.False
		}
		if e.Op == ast.OpOr && lb.Value {
			return value.True
		}
		right := in.evalExpr(e.Right, env)
		if value.IsSignal(right) {
			return right
		}
		rb, ok := right.(*value.Bool)
		if !ok {
			return value.NewError("TypeMismatch", "logical operand must be bool, got %s", right.Kind())
		}
		return value.NativeBool(rb.Value)
	}

	left := in.evalExpr(e.Left, env)
	if value.IsSignal(left) {
		return left
	}

	if e.Op == ast.OpIs {
		return in.evalIs(left, e.Right)
	}

	right := in.evalExpr(e.Right, env)
	if value.IsSignal(right) {
		return right
	}

	switch e.Op {
	case ast.OpEq:
		return value.NativeBool(value.Equal(left, right))
	case ast.OpNotEq:
		return value.NativeBool(!value.Equal(left, right))
	case ast.OpIn:
		return in.evalIn(left, right)
	case ast.OpAdd, ast.OpSub, ast.OpMul, ast.OpDiv, ast.OpMod:
		return evalArithmetic(e.Op, left, right)
	case ast.OpLt, ast.OpLe, ast.OpGt, ast.OpGe:
		return evalComparison(e.Op, left, right)
	default:
		return value.NewError("InvalidOperation", "unknown binary operator")
	}
}

func evalArithmetic(op ast.BinaryOp, left, right value.Value) value.Value {
	switch l := left.(type) {
	case *value.Int:
		r, ok := right.(*value.Int)
		if !ok {
			return value.NewError("TypeMismatch", "arithmetic operands must share a type: %s and %s", left.Kind(), right.Kind())
		}
		switch op {
		case ast.OpAdd:
			return &value.Int{Value: l.Value + r.Value}
		case ast.OpSub:
			return &value.Int{Value: l.Value - r.Value}
		case ast.OpMul:
			return &value.Int{Value: l.Value * r.Value}
		case ast.OpDiv:
			if r.Value == 0 {
				return value.NewError("InvalidOperation", "division by zero")
			}
			return &value.Int{Value: l.Value / r.Value}
		default:
			if r.Value == 0 {
				return value.NewError("InvalidOperation", "modulo by zero")
			}
			return &value.Int{Value: l.Value % r.Value}
		}
	case *value.Float:
		r, ok := right.(*value.Float)
		if !ok {
			return value.NewError("TypeMismatch", "arithmetic operands must share a type: %s and %s", left.Kind(), right.Kind())
		}
		switch op {
		case ast.OpAdd:
			return &value.Float{Value: l.Value + r.Value}
		case ast.OpSub:
			return &value.Float{Value: l.Value - r.Value}
		case ast.OpMul:
			return &value.Float{Value: l.Value * r.Value}
		case ast.OpDiv:
			return &value.Float{Value: l.Value / r.Value}
		default:
			return value.NewError("InvalidOperation", "modulo is not defined for floats")
		}
	default:
		return value.NewError("TypeMismatch", "arithmetic requires numeric operands, got %s", left.Kind())
	}
}

func evalComparison(op ast.BinaryOp, left, right value.Value) value.Value {
	cmp, ok := compareValues(left, right)
	if !ok {
		return value.NewError("TypeMismatch", "cannot compare %s and %s", left.Kind(), right.Kind())
	}
	switch op {
	case ast.OpLt:
		return value.NativeBool(cmp < 0)
	case ast.OpLe:
		return value.NativeBool(cmp <= 0)
	case ast.OpGt:
		return value.NativeBool(cmp > 0)
	default:
		return value.NativeBool(cmp >= 0)
	}
}

// compareValues orders two comparable values (numeric, char, string).
func compareValues(a, b value.Value) (int, bool) {
	switch av := a.(type) {
	case *value.Int:
		bv, ok := b.(*value.Int)
		if !ok {
			return 0, false
		}
		return compareInt64(av.Value, bv.Value), true
	case *value.Float:
		bv, ok := b.(*value.Float)
		if !ok {
			return 0, false
		}
		switch {
		case av.Value < bv.Value:
			return -1, true
		case av.Value > bv.Value:
			return 1, true
		default:
			return 0, true
		}
	case *value.Char:
		bv, ok := b.(*value.Char)
		if !ok {
			return 0, false
		}
		return compareInt64(int64(av.Value), int64(bv.Value)), true
	case *value.String:
		bv, ok := b.(*value.String)
		if !ok {
			return 0, false
		}
		return strings.Compare(av.Value, bv.Value), true
	default:
		return 0, false
	}
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// evalIs tests a value's variant: `v is Some`, `r is Err`, `shape is Circle`.
func (in *Interpreter) evalIs(left value.Value, right ast.Expr) value.Value {
	id, ok := right.(*ast.Ident)
	if !ok {
		return value.NewError("InvalidOperation", "right-hand side of `is` must name a variant")
	}
	name := id.Name
	if i := strings.LastIndex(name, "::"); i >= 0 {
		name = name[i+2:]
	}
	switch v := left.(type) {
	case *value.Option:
		if name == "Some" {
			return value.NativeBool(v.Present)
		}
		return value.NativeBool(!v.Present)
	case *value.Result:
		if name == "Ok" {
			return value.NativeBool(v.IsOk)
		}
		return value.NativeBool(!v.IsOk)
	case *value.Record:
		tag := v.TypeName
		if i := strings.LastIndex(tag, "::"); i >= 0 {
			tag = tag[i+2:]
		}
		return value.NativeBool(tag == name)
	default:
		return value.NewError("TypeMismatch", "value of kind %s has no variants", left.Kind())
	}
}

func (in *Interpreter) evalIn(needle, haystack value.Value) value.Value {
	elems, errv := iterableElems(haystack)
	if errv != nil {
		return errv
	}
	for _, e := range elems {
		if value.Equal(needle, e) {
			return value.True
		}
	}
	return value.False
}

func (in *Interpreter) evalUnary(e *ast.UnaryExpr, env *value.Environment) value.Value {
	operand := in.evalExpr(e.Operand, env)
	if value.IsSignal(operand) {
		return operand
	}
	switch e.Op {
	case ast.OpNeg:
		switch v := operand.(type) {
		case *value.Int:
			return &value.Int{Value: -v.Value}
		case *value.Float:
			return &value.Float{Value: -v.Value}
		default:
			return value.NewError("TypeMismatch", "unary `-` requires a numeric operand, got %s", operand.Kind())
		}
	case ast.OpNot:
		b, ok := operand.(*value.Bool)
		if !ok {
			return value.NewError("TypeMismatch", "unary `!` requires a bool operand, got %s", operand.Kind())
		}
		return value.NativeBool(!b.Value)
	default:
		return value.NewError("InvalidOperation", "unknown unary operator")
	}
}

// iterableElems flattens an iterable runtime value into its elements:
// arrays, strings (chars), cons-lists, Option (zero or one element), and
// Result (the Ok payload or nothing).
func iterableElems(v value.Value) ([]value.Value, *value.ErrorSignal) {
	switch c := v.(type) {
	case *value.Array:
		return c.Elements, nil
	case *value.String:
		runes := []rune(c.Value)
		out := make([]value.Value, len(runes))
		for i, r := range runes {
			out[i] = &value.Char{Value: r}
		}
		return out, nil
	case *value.List:
		return c.ToSlice(), nil
	case *value.Option:
		if c.Present {
			return []value.Value{c.Value}, nil
		}
		return nil, nil
	case *value.Result:
		if c.IsOk {
			return []value.Value{c.Value}, nil
		}
		return nil, nil
	default:
		return nil, value.NewError("TypeMismatch", "value of kind %s is not iterable", v.Kind())
	}
}
