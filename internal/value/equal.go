package value

// Equal reports structural equality between two values of (presumed)
// equatable, checker-validated types.
func Equal(a, b Value) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case *Void:
		return true
	case *Int:
		return av.Value == b.(*Int).Value
	case *Float:
		return av.Value == b.(*Float).Value
	case *Bool:
		return av.Value == b.(*Bool).Value
	case *Char:
		return av.Value == b.(*Char).Value
	case *String:
		return av.Value == b.(*String).Value
	case *Array:
		bv := b.(*Array)
		if len(av.Elements) != len(bv.Elements) {
			return false
		}
		for i := range av.Elements {
			if !Equal(av.Elements[i], bv.Elements[i]) {
				return false
			}
		}
		return true
	case *Tuple:
		bv := b.(*Tuple)
		if len(av.Elements) != len(bv.Elements) {
			return false
		}
		for i := range av.Elements {
			if !Equal(av.Elements[i], bv.Elements[i]) {
				return false
			}
		}
		return true
	case *List:
		bv := b.(*List)
		x, y := av, bv
		for {
			if x.IsNil != y.IsNil {
				return false
			}
			if x.IsNil {
				return true
			}
			if !Equal(x.Head, y.Head) {
				return false
			}
			x, y = x.Tail, y.Tail
		}
	case *Option:
		bv := b.(*Option)
		if av.Present != bv.Present {
			return false
		}
		if !av.Present {
			return true
		}
		return Equal(av.Value, bv.Value)
	case *Result:
		bv := b.(*Result)
		if av.IsOk != bv.IsOk {
			return false
		}
		return Equal(av.Value, bv.Value)
	case *Record:
		bv := b.(*Record)
		if av.TypeName != bv.TypeName || len(av.Fields) != len(bv.Fields) {
			return false
		}
		for i := range av.Fields {
			if av.Fields[i].Name != bv.Fields[i].Name {
				return false
			}
			if !Equal(av.Fields[i].Value, bv.Fields[i].Value) {
				return false
			}
		}
		return true
	default:
		// Functions and builtins have no equatable identity in the spec;
		// falling through to false matches "not comparable" rather than
		// risking a false positive on pointer identity.
		return false
	}
}
