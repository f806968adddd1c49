package interp

import (
	"strings"

	"github.com/lucent-lang/lucent/internal/ast"
	"github.com/lucent-lang/lucent/internal/value"
)

// evalExpr evaluates one expression. Control-flow and error signals
// propagate as values (value.ReturnSignal, value.BreakSignal,
// value.ErrorSignal) and are stripped by the construct that owns them.
func (in *Interpreter) evalExpr(e ast.Expr, env *value.Environment) value.Value {
	switch ex := e.(type) {
	case *ast.IntLit:
		return &value.Int{Value: ex.Value}
	case *ast.FloatLit:
		return &value.Float{Value: ex.Value}
	case *ast.StringLit:
		return &value.String{Value: ex.Value}
	case *ast.CharLit:
		return &value.Char{Value: ex.Value}
	case *ast.BoolLit:
		return value.NativeBool(ex.Value)
	case *ast.InterpStringExpr:
		return in.evalInterpString(ex, env)
	case *ast.Ident:
		return in.evalIdent(ex, env)
	case *ast.SelfExpr:
		if v, ok := env.Get("self"); ok {
			return v
		}
		return value.NewError("InvalidOperation", "`self` used outside a method body")
	case *ast.BinaryExpr:
		return in.evalBinary(ex, env)
	case *ast.UnaryExpr:
		return in.evalUnary(ex, env)
	case *ast.FieldExpr:
		return in.evalField(ex, env)
	case *ast.TupleIndexExpr:
		return in.evalTupleIndex(ex, env)
	case *ast.IndexExpr:
		return in.evalIndex(ex, env)
	case *ast.CallExpr:
		return in.evalCall(ex, env)
	case *ast.MethodCallExpr:
		return in.evalMethodCall(ex, env)
	case *ast.ClosureExpr:
		return &value.Function{Params: ex.Params, IsEffect: ex.IsEffect, Body: ex.Body, Env: env}
	case *ast.BlockExpr:
		return in.evalBlock(ex, value.NewEnclosedEnvironment(env))
	case *ast.IfExpr:
		return in.evalIf(ex, env)
	case *ast.MatchExpr:
		return in.evalMatch(ex, env)
	case *ast.TupleExpr:
		elems, sig := in.evalExprs(ex.Elems, env)
		if sig != nil {
			return sig
		}
		return &value.Tuple{Elements: elems}
	case *ast.ArrayExpr:
		elems, sig := in.evalExprs(ex.Elems, env)
		if sig != nil {
			return sig
		}
		return &value.Array{Elements: elems}
	case *ast.RecordExpr:
		return in.evalRecord(ex, env)
	case *ast.TypeCastExpr:
		return in.evalCast(ex, env)
	case *ast.RangeExpr:
		return in.evalRange(ex, env)
	case *ast.TryExpr:
		return in.evalTry(ex, env)
	case *ast.CoalesceExpr:
		return in.evalCoalesce(ex, env)
	case *ast.GroupExpr:
		return in.evalExpr(ex.Inner, env)
	default:
		return value.NewError("InvalidOperation", "cannot evaluate expression")
	}
}

// evalExprs evaluates a slice left-to-right, stopping at the first signal.
func (in *Interpreter) evalExprs(exprs []ast.Expr, env *value.Environment) ([]value.Value, value.Value) {
	out := make([]value.Value, len(exprs))
	for i, e := range exprs {
		v := in.evalExpr(e, env)
		if value.IsSignal(v) {
			return nil, v
		}
		out[i] = v
	}
	return out, nil
}

func (in *Interpreter) evalInterpString(e *ast.InterpStringExpr, env *value.Environment) value.Value {
	var b strings.Builder
	for _, part := range e.Parts {
		b.WriteString(part.Literal)
		if part.Expr == nil {
			continue
		}
		v := in.evalExpr(part.Expr, env)
		if value.IsSignal(v) {
			return v
		}
		if s, ok := v.(*value.String); ok {
			b.WriteString(s.Value)
		} else {
			b.WriteString(v.Inspect())
		}
	}
	return &value.String{Value: b.String()}
}

func (in *Interpreter) evalIdent(e *ast.Ident, env *value.Environment) value.Value {
	if v, ok := env.Get(e.Name); ok {
		return v
	}
	if e.Name == "None" {
		return value.None
	}
	return value.NewError("InvalidOperation", "undefined name %q", e.Name)
}

func (in *Interpreter) evalCall(e *ast.CallExpr, env *value.Environment) value.Value {
	if id, ok := e.Callee.(*ast.Ident); ok {
		switch id.Name {
		case "Some", "Ok", "Err":
			args, sig := in.evalExprs(e.Args, env)
			if sig != nil {
				return sig
			}
			if len(args) != 1 {
				return value.NewError("ArityMismatch", "%s expects 1 argument, got %d", id.Name, len(args))
			}
			switch id.Name {
			case "Some":
				return value.Some(args[0])
			case "Ok":
				return value.Ok(args[0])
			default:
				return value.Err(args[0])
			}
		}
	}
	callee := in.evalExpr(e.Callee, env)
	if value.IsSignal(callee) {
		return callee
	}
	args, sig := in.evalExprs(e.Args, env)
	if sig != nil {
		return sig
	}
	return in.apply(callee, args, nil)
}

func (in *Interpreter) evalMethodCall(e *ast.MethodCallExpr, env *value.Environment) value.Value {
	recv := in.evalExpr(e.Receiver, env)
	if value.IsSignal(recv) {
		return recv
	}
	args, sig := in.evalExprs(e.Args, env)
	if sig != nil {
		return sig
	}

	// Namespace and plain records expose callable fields (the standard
	// library's `list`/`io`/... records, and any user record holding a
	// function value).
	if rec, ok := recv.(*value.Record); ok {
		if fv, ok := rec.Get(e.Method.Name); ok {
			switch fv.(type) {
			case *value.Builtin, *value.Function:
				return in.apply(fv, args, nil)
			}
		}
		if fn, ok := in.lookupMethod(rootTypeName(rec.TypeName), e.Method.Name); ok {
			return in.apply(fn, args, recv)
		}
	}
	return value.NewError("InvalidOperation", "no method %q on value of kind %s", e.Method.Name, recv.Kind())
}

// rootTypeName strips the variant suffix off a qualified record tag so
// method lookup targets the owning type (`Shape::Circle` -> `Shape`).
func rootTypeName(tag string) string {
	if i := strings.Index(tag, "::"); i >= 0 {
		return tag[:i]
	}
	return tag
}

func (in *Interpreter) evalField(e *ast.FieldExpr, env *value.Environment) value.Value {
	recv := in.evalExpr(e.Receiver, env)
	if value.IsSignal(recv) {
		return recv
	}
	rec, ok := recv.(*value.Record)
	if !ok {
		return value.NewError("TypeMismatch", "value of kind %s has no fields", recv.Kind())
	}
	if v, ok := rec.Get(e.Field.Name); ok {
		return v
	}
	return value.NewError("InvalidOperation", "%s has no field %q", rec.TypeName, e.Field.Name)
}

func (in *Interpreter) evalTupleIndex(e *ast.TupleIndexExpr, env *value.Environment) value.Value {
	recv := in.evalExpr(e.Receiver, env)
	if value.IsSignal(recv) {
		return recv
	}
	tup, ok := recv.(*value.Tuple)
	if !ok {
		return value.NewError("TypeMismatch", "value of kind %s is not a tuple", recv.Kind())
	}
	if e.Index < 0 || e.Index >= len(tup.Elements) {
		return value.NewError("InvalidOperation", "tuple index %d out of range", e.Index)
	}
	return tup.Elements[e.Index]
}

func (in *Interpreter) evalIndex(e *ast.IndexExpr, env *value.Environment) value.Value {
	recv := in.evalExpr(e.Receiver, env)
	if value.IsSignal(recv) {
		return recv
	}
	idxv := in.evalExpr(e.Index, env)
	if value.IsSignal(idxv) {
		return idxv
	}
	idx, ok := idxv.(*value.Int)
	if !ok {
		return value.NewError("TypeMismatch", "index must be an integer, got %s", idxv.Kind())
	}
	switch r := recv.(type) {
	case *value.Array:
		if idx.Value < 0 || idx.Value >= int64(len(r.Elements)) {
			return value.NewError("InvalidOperation", "index %d out of bounds for array of length %d", idx.Value, len(r.Elements))
		}
		return r.Elements[idx.Value]
	case *value.String:
		runes := []rune(r.Value)
		if idx.Value < 0 || idx.Value >= int64(len(runes)) {
			return value.NewError("InvalidOperation", "index %d out of bounds for string of length %d", idx.Value, len(runes))
		}
		return &value.Char{Value: runes[idx.Value]}
	default:
		return value.NewError("TypeMismatch", "value of kind %s cannot be indexed", recv.Kind())
	}
}

func (in *Interpreter) evalIf(e *ast.IfExpr, env *value.Environment) value.Value {
	cond := in.evalExpr(e.Cond, env)
	if value.IsSignal(cond) {
		return cond
	}
	b, ok := cond.(*value.Bool)
	if !ok {
		return value.NewError("TypeMismatch", "if condition must be bool, got %s", cond.Kind())
	}
	if b.Value {
		return in.evalBlock(e.Then, value.NewEnclosedEnvironment(env))
	}
	if e.Else != nil {
		return in.evalExpr(e.Else, env)
	}
	return value.TheVoid
}

func (in *Interpreter) evalMatch(e *ast.MatchExpr, env *value.Environment) value.Value {
	subject := in.evalExpr(e.Subject, env)
	if value.IsSignal(subject) {
		return subject
	}
	for _, arm := range e.Arms {
		armEnv := value.NewEnclosedEnvironment(env)
		matched, sig := in.matchPattern(arm.Pattern, subject, armEnv)
		if sig != nil {
			return sig
		}
		if matched {
			return in.evalExpr(arm.Body, armEnv)
		}
	}
	// The checker proved exhaustiveness; an unmatched subject means the
	// program bypassed checking.
	return value.NewError("InvalidOperation", "no match arm matched %s", subject.Inspect())
}

func (in *Interpreter) evalRecord(e *ast.RecordExpr, env *value.Environment) value.Value {
	fields := make([]value.RecordField, 0, len(e.Fields))
	for _, f := range e.Fields {
		v := in.evalExpr(f.Value, env)
		if value.IsSignal(v) {
			return v
		}
		fields = append(fields, value.RecordField{Name: f.Name.Name, Value: v})
	}
	name := e.TypeName.Name
	if order, ok := in.fieldOrder[name]; ok {
		fields = reorderFields(fields, order)
	}
	return &value.Record{TypeName: name, Fields: fields}
}

// reorderFields arranges fields into the type's declared order so record
// equality is insensitive to literal field order. Fields the declaration
// does not know keep their written order at the end (the checker has
// already diagnosed them).
func reorderFields(fields []value.RecordField, order []string) []value.RecordField {
	out := make([]value.RecordField, 0, len(fields))
	used := make([]bool, len(fields))
	for _, name := range order {
		for i, f := range fields {
			if !used[i] && f.Name == name {
				out = append(out, f)
				used[i] = true
				break
			}
		}
	}
	for i, f := range fields {
		if !used[i] {
			out = append(out, f)
		}
	}
	return out
}

func (in *Interpreter) evalRange(e *ast.RangeExpr, env *value.Environment) value.Value {
	if e.Start == nil || e.End == nil {
		return value.NewError("InvalidOperation", "open-ended range cannot be materialized")
	}
	start := in.evalExpr(e.Start, env)
	if value.IsSignal(start) {
		return start
	}
	end := in.evalExpr(e.End, env)
	if value.IsSignal(end) {
		return end
	}
	switch s := start.(type) {
	case *value.Int:
		en, ok := end.(*value.Int)
		if !ok {
			return value.NewError("TypeMismatch", "range bounds must share a type")
		}
		return intRange(s.Value, en.Value, e.Inclusive)
	case *value.Char:
		en, ok := end.(*value.Char)
		if !ok {
			return value.NewError("TypeMismatch", "range bounds must share a type")
		}
		arr := intRange(int64(s.Value), int64(en.Value), e.Inclusive)
		chars := arr.(*value.Array)
		for i, v := range chars.Elements {
			chars.Elements[i] = &value.Char{Value: rune(v.(*value.Int).Value)}
		}
		return chars
	default:
		return value.NewError("TypeMismatch", "range bounds must be integers or chars, got %s", start.Kind())
	}
}

func intRange(start, end int64, inclusive bool) value.Value {
	if inclusive {
		end++
	}
	if end < start {
		return &value.Array{}
	}
	elems := make([]value.Value, 0, end-start)
	for i := start; i < end; i++ {
		elems = append(elems, &value.Int{Value: i})
	}
	return &value.Array{Elements: elems}
}

// evalTry implements `e?`: an Err or None operand returns itself from the
// enclosing function; Ok/Some unwrap in place.
func (in *Interpreter) evalTry(e *ast.TryExpr, env *value.Environment) value.Value {
	v := in.evalExpr(e.Value, env)
	if value.IsSignal(v) {
		return v
	}
	switch r := v.(type) {
	case *value.Result:
		if r.IsOk {
			return r.Value
		}
		return &value.ReturnSignal{Value: r}
	case *value.Option:
		if r.Present {
			return r.Value
		}
		return &value.ReturnSignal{Value: value.None}
	default:
		return value.NewError("TypeMismatch", "`?` requires a Result or Option, got %s", v.Kind())
	}
}

func (in *Interpreter) evalCoalesce(e *ast.CoalesceExpr, env *value.Environment) value.Value {
	v := in.evalExpr(e.Value, env)
	if value.IsSignal(v) {
		return v
	}
	switch r := v.(type) {
	case *value.Option:
		if r.Present {
			return r.Value
		}
	case *value.Result:
		if r.IsOk {
			return r.Value
		}
	default:
		return value.NewError("TypeMismatch", "`??` requires a Result or Option, got %s", v.Kind())
	}
	return in.evalExpr(e.Default, env)
}

// evalCast implements `expr as Type`: identity, numeric<->numeric, and
// char<->integer.
func (in *Interpreter) evalCast(e *ast.TypeCastExpr, env *value.Environment) value.Value {
	v := in.evalExpr(e.Value, env)
	if value.IsSignal(v) {
		return v
	}
	prim, ok := e.Type.(*ast.PrimitiveTypeExpr)
	if !ok {
		return v
	}
	switch prim.Name {
	case "f32", "f64":
		switch src := v.(type) {
		case *value.Int:
			return &value.Float{Value: float64(src.Value)}
		case *value.Float:
			return src
		}
	case "char":
		switch src := v.(type) {
		case *value.Int:
			return &value.Char{Value: rune(src.Value)}
		case *value.Char:
			return src
		}
	case "bool", "string":
		return v
	default: // the integer widths
		switch src := v.(type) {
		case *value.Int:
			return src
		case *value.Float:
			return &value.Int{Value: int64(src.Value)}
		case *value.Char:
			return &value.Int{Value: int64(src.Value)}
		}
	}
	return value.NewError("InvalidOperation", "cannot cast %s to %s", v.Kind(), prim.Name)
}
