package pattern

import "strings"

// MissingPattern describes one uncovered case of a non-exhaustive match.
// Variant is set when the case corresponds to a nameable variant (sum-type
// variants, Option/Result arms, bool values); Description is always set and
// is what diagnostics render.
type MissingPattern struct {
	Description string
	Variant     string
}

// Missing returns the cases arms leave uncovered for subject, applying
// the per-subject-type rules below. Guarded arms contribute Empty in place
// of their real space — a guard can never discharge exhaustiveness on its
// own, even when the guard is syntactically `if true`.
func Missing(subject Subject, arms []Arm) []MissingPattern {
	spaces := make([]Space, len(arms))
	for i, a := range arms {
		if a.Guarded {
			spaces[i] = Empty{}
		} else {
			spaces[i] = a.Space
		}
	}

	switch subject.Kind {
	case SubjectBool:
		t, f, any := coveredBools(spaces)
		if any {
			return nil
		}
		var out []MissingPattern
		if !t {
			out = append(out, MissingPattern{Description: "true", Variant: "true"})
		}
		if !f {
			out = append(out, MissingPattern{Description: "false", Variant: "false"})
		}
		return out

	case SubjectSum:
		names, any := coveredVariantNames(spaces)
		if any {
			return nil
		}
		var out []MissingPattern
		for _, v := range subject.Variants {
			if !names[v] {
				out = append(out, MissingPattern{Description: v, Variant: v})
			}
		}
		return out

	case SubjectOption:
		names, any := coveredVariantNames(spaces)
		if any {
			return nil
		}
		var out []MissingPattern
		if !names["Some"] {
			out = append(out, MissingPattern{Description: "Some(_)", Variant: "Some"})
		}
		if !names["None"] {
			out = append(out, MissingPattern{Description: "None", Variant: "None"})
		}
		return out

	case SubjectResult:
		names, any := coveredVariantNames(spaces)
		if any {
			return nil
		}
		var out []MissingPattern
		if !names["Ok"] {
			out = append(out, MissingPattern{Description: "Ok(_)", Variant: "Ok"})
		}
		if !names["Err"] {
			out = append(out, MissingPattern{Description: "Err(_)", Variant: "Err"})
		}
		return out

	case SubjectProduct:
		any, found := hasExhaustingShape(spaces, func(s Space) bool {
			_, ok := s.(Record)
			return ok
		})
		if any || found {
			return nil
		}
		return []MissingPattern{{Description: "`_` or a record pattern"}}

	case SubjectTuple:
		any, found := hasExhaustingShape(spaces, isAllWild)
		if any || found {
			return nil
		}
		return []MissingPattern{{Description: "`_` or `(_, ...)`"}}

	default: // SubjectOther: ints, strings, floats, aliases over these
		_, any := coveredVariantNames(spaces)
		if any {
			return nil
		}
		return []MissingPattern{{Description: "`_`"}}
	}
}

// Describe joins missing-case descriptions for a single "non-exhaustive
// match" diagnostic per site.
func Describe(missing []MissingPattern) string {
	parts := make([]string, len(missing))
	for i, m := range missing {
		parts[i] = m.Description
	}
	return strings.Join(parts, ", ")
}
