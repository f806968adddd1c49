package interp

import (
	"strings"

	"github.com/lucent-lang/lucent/internal/ast"
	"github.com/lucent-lang/lucent/internal/value"
)

// matchPattern tests v against p, defining any bindings p introduces into
// env. The second return carries a signal (a guard that errored) and is nil
// on the normal path. Bindings from a failed alternative may remain in env;
// callers allocate a fresh arm environment per attempt, so partial bindings
// never leak into an executed body.
func (in *Interpreter) matchPattern(p ast.Pattern, v value.Value, env *value.Environment) (bool, value.Value) {
	switch pat := p.(type) {
	case *ast.PatternWild, *ast.PatternRest:
		return true, nil

	case *ast.PatternIdent:
		env.Define(pat.Name.Name, v)
		return true, nil

	case *ast.PatternTyped:
		return in.matchPattern(pat.Inner, v, env)

	case *ast.PatternLiteral:
		return matchLiteral(pat, v), nil

	case *ast.PatternTuple:
		return in.matchTuple(pat, v, env)

	case *ast.PatternOr:
		for _, alt := range pat.Alternatives {
			matched, sig := in.matchPattern(alt, v, env)
			if sig != nil {
				return false, sig
			}
			if matched {
				return true, nil
			}
		}
		return false, nil

	case *ast.PatternGuarded:
		matched, sig := in.matchPattern(pat.Inner, v, env)
		if sig != nil || !matched {
			return false, sig
		}
		guard := in.evalExpr(pat.Guard, env)
		if value.IsSignal(guard) {
			return false, guard
		}
		b, ok := guard.(*value.Bool)
		if !ok {
			return false, value.NewError("TypeMismatch", "match guard must be bool, got %s", guard.Kind())
		}
		return b.Value, nil

	case *ast.PatternRange:
		return matchRange(pat, v), nil

	case *ast.PatternRecord:
		return in.matchRecord(pat, v, env)

	case *ast.PatternConstructor:
		return in.matchConstructor(pat, v, env)

	default:
		return false, nil
	}
}

func matchLiteral(pat *ast.PatternLiteral, v value.Value) bool {
	switch pat.Kind {
	case ast.LiteralInt:
		iv, ok := v.(*value.Int)
		return ok && iv.Value == pat.Int
	case ast.LiteralFloat:
		fv, ok := v.(*value.Float)
		return ok && fv.Value == pat.Float
	case ast.LiteralString:
		sv, ok := v.(*value.String)
		return ok && sv.Value == pat.String
	case ast.LiteralChar:
		cv, ok := v.(*value.Char)
		return ok && cv.Value == pat.Char
	case ast.LiteralBool:
		bv, ok := v.(*value.Bool)
		return ok && bv.Value == pat.Bool
	default:
		return false
	}
}

func matchRange(pat *ast.PatternRange, v value.Value) bool {
	var ord int64
	switch val := v.(type) {
	case *value.Int:
		ord = val.Value
	case *value.Char:
		ord = int64(val.Value)
	default:
		return false
	}
	if start, ok := pat.Start.(*ast.PatternLiteral); ok {
		lo := start.Int
		if start.Kind == ast.LiteralChar {
			lo = int64(start.Char)
		}
		if ord < lo {
			return false
		}
	}
	if end, ok := pat.End.(*ast.PatternLiteral); ok {
		hi := end.Int
		if end.Kind == ast.LiteralChar {
			hi = int64(end.Char)
		}
		if pat.Inclusive {
			if ord > hi {
				return false
			}
		} else if ord >= hi {
			return false
		}
	}
	return true
}

func (in *Interpreter) matchTuple(pat *ast.PatternTuple, v value.Value, env *value.Environment) (bool, value.Value) {
	tup, ok := v.(*value.Tuple)
	if !ok {
		return false, nil
	}
	restAt := -1
	for i, e := range pat.Elems {
		if _, ok := e.(*ast.PatternRest); ok {
			restAt = i
			break
		}
	}
	if restAt < 0 {
		if len(pat.Elems) != len(tup.Elements) {
			return false, nil
		}
		for i, e := range pat.Elems {
			matched, sig := in.matchPattern(e, tup.Elements[i], env)
			if sig != nil || !matched {
				return false, sig
			}
		}
		return true, nil
	}
	// `(a, .., z)`: prefix before the rest, suffix after it.
	suffix := pat.Elems[restAt+1:]
	if restAt+len(suffix) > len(tup.Elements) {
		return false, nil
	}
	for i := 0; i < restAt; i++ {
		matched, sig := in.matchPattern(pat.Elems[i], tup.Elements[i], env)
		if sig != nil || !matched {
			return false, sig
		}
	}
	for i, e := range suffix {
		matched, sig := in.matchPattern(e, tup.Elements[len(tup.Elements)-len(suffix)+i], env)
		if sig != nil || !matched {
			return false, sig
		}
	}
	return true, nil
}

func (in *Interpreter) matchRecord(pat *ast.PatternRecord, v value.Value, env *value.Environment) (bool, value.Value) {
	rec, ok := v.(*value.Record)
	if !ok {
		return false, nil
	}
	if pat.TypeName != nil && !tagMatches(rec.TypeName, pat.TypeName.Name) {
		return false, nil
	}
	for _, arg := range pat.Fields {
		name := arg.Name
		if name == nil {
			if id, ok := arg.Pattern.(*ast.PatternIdent); ok {
				name = id.Name
			} else {
				return false, nil
			}
		}
		fv, ok := rec.Get(name.Name)
		if !ok {
			return false, nil
		}
		matched, sig := in.matchPattern(arg.Pattern, fv, env)
		if sig != nil || !matched {
			return false, sig
		}
	}
	return true, nil
}

func (in *Interpreter) matchConstructor(pat *ast.PatternConstructor, v value.Value, env *value.Environment) (bool, value.Value) {
	variant := pat.Path[len(pat.Path)-1].Name

	switch val := v.(type) {
	case *value.Option:
		switch variant {
		case "Some":
			if !val.Present {
				return false, nil
			}
			return in.matchConstructorArgs(pat, []value.Value{val.Value}, nil, env)
		case "None":
			return !val.Present && len(pat.Args) == 0, nil
		}
		return false, nil

	case *value.Result:
		switch variant {
		case "Ok":
			if !val.IsOk {
				return false, nil
			}
			return in.matchConstructorArgs(pat, []value.Value{val.Value}, nil, env)
		case "Err":
			if val.IsOk {
				return false, nil
			}
			return in.matchConstructorArgs(pat, []value.Value{val.Value}, nil, env)
		}
		return false, nil

	case *value.Record:
		if !tagMatches(val.TypeName, variant) {
			return false, nil
		}
		positional := make([]value.Value, len(val.Fields))
		for i, f := range val.Fields {
			positional[i] = f.Value
		}
		return in.matchConstructorArgs(pat, positional, val, env)

	default:
		return false, nil
	}
}

// matchConstructorArgs matches a constructor pattern's arguments:
// positionally against positional, or by field name against rec when the
// argument is named.
func (in *Interpreter) matchConstructorArgs(pat *ast.PatternConstructor, positional []value.Value, rec *value.Record, env *value.Environment) (bool, value.Value) {
	for i, arg := range pat.Args {
		var target value.Value
		if arg.Name != nil {
			if rec == nil {
				return false, nil
			}
			fv, ok := rec.Get(arg.Name.Name)
			if !ok {
				return false, nil
			}
			target = fv
		} else {
			if i >= len(positional) {
				return false, nil
			}
			target = positional[i]
		}
		matched, sig := in.matchPattern(arg.Pattern, target, env)
		if sig != nil || !matched {
			return false, sig
		}
	}
	return true, nil
}

// tagMatches compares a value's qualified tag against a pattern's (possibly
// qualified) name by final segment, so `Circle`, `Shape::Circle`, and an
// imported alias path all match a `Shape::Circle` value.
func tagMatches(tag, name string) bool {
	if i := strings.LastIndex(tag, "::"); i >= 0 {
		tag = tag[i+2:]
	}
	if i := strings.LastIndex(name, "::"); i >= 0 {
		name = name[i+2:]
	}
	return tag == name
}
