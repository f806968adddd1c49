package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMissingBool(t *testing.T) {
	subject := Subject{Kind: SubjectBool}

	missing := Missing(subject, []Arm{{Space: BoolValue{Value: true}}})
	assert.Equal(t, []MissingPattern{{Description: "false", Variant: "false"}}, missing)
	assert.Equal(t, "false", Describe(missing))

	assert.Empty(t, Missing(subject, []Arm{{Space: Any{}}}))
}

func TestMissingSumListsEveryUncoveredVariant(t *testing.T) {
	subject := Subject{Kind: SubjectSum, Variants: []string{"Red", "Green", "Blue"}}

	missing := Missing(subject, []Arm{{Space: Constructor{Variant: "Green"}}})
	assert.Equal(t, []MissingPattern{
		{Description: "Red", Variant: "Red"},
		{Description: "Blue", Variant: "Blue"},
	}, missing)
	assert.Equal(t, "Red, Blue", Describe(missing))
}

func TestMissingOptionAndResult(t *testing.T) {
	missing := Missing(Subject{Kind: SubjectOption}, []Arm{{Space: Constructor{Variant: "Some"}}})
	assert.Equal(t, []MissingPattern{{Description: "None", Variant: "None"}}, missing)

	missing = Missing(Subject{Kind: SubjectResult}, nil)
	assert.Equal(t, []MissingPattern{
		{Description: "Ok(_)", Variant: "Ok"},
		{Description: "Err(_)", Variant: "Err"},
	}, missing)
}

func TestMissingOtherRequiresCatchAll(t *testing.T) {
	subject := Subject{Kind: SubjectOther}

	missing := Missing(subject, []Arm{{Space: IntValue{Value: 1}}, {Space: IntValue{Value: 2}}})
	assert.Equal(t, []MissingPattern{{Description: "`_`"}}, missing)

	assert.Empty(t, Missing(subject, []Arm{{Space: Any{}}}))
}

func TestMissingGuardNeverDischarges(t *testing.T) {
	subject := Subject{Kind: SubjectBool}
	arms := []Arm{
		{Space: BoolValue{Value: true}, Guarded: true},
		{Space: BoolValue{Value: false}},
	}
	missing := Missing(subject, arms)
	assert.Equal(t, []MissingPattern{{Description: "true", Variant: "true"}}, missing)
}

func TestUnreachable_GuardedPrecedingDoesNotCover(t *testing.T) {
	// A guarded arm may fail at runtime, so it never renders later arms
	// unreachable.
	arms := []Arm{
		{Space: Any{}, Guarded: true},
		{Space: IntValue{Value: 1}},
		{Space: Any{}},
	}
	assert.Empty(t, Unreachable(arms))
}

func TestMissingTupleWantsWildcardShape(t *testing.T) {
	subject := Subject{Kind: SubjectTuple}

	missing := Missing(subject, []Arm{{Space: Tuple{Elems: []Space{IntValue{Value: 1}, Any{}}}}})
	assert.Equal(t, []MissingPattern{{Description: "`_` or `(_, ...)`"}}, missing)

	assert.Empty(t, Missing(subject, []Arm{{Space: Tuple{Elems: []Space{Any{}, Any{}}}}}))
}
