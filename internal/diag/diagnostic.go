// Package diag defines the diagnostic surface shared by every pipeline
// stage.
package diag

import (
	"github.com/google/uuid"
	"github.com/lucent-lang/lucent/internal/token"
)

// Stage identifies which compiler phase produced a diagnostic.
type Stage string

const (
	StageLexer      Stage = "lexer"
	StageParser     Stage = "parser"
	StageResolve    Stage = "resolve"
	StageTypeCheck  Stage = "typecheck"
	StagePattern    Stage = "pattern"
	StageInterpret  Stage = "interpret"
)

// Severity captures how impactful a diagnostic is.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Code is a stable machine-readable identifier for a diagnostic.
type Code string

const (
	CodeLexerUnterminatedString       Code = "LEX_UNTERMINATED_STRING"
	CodeLexerUnterminatedBlockComment Code = "LEX_UNTERMINATED_BLOCK_COMMENT"
	CodeLexerIllegalRune              Code = "LEX_ILLEGAL_RUNE"

	CodeParseUnexpectedToken Code = "PARSE_UNEXPECTED_TOKEN"
	CodeParseUnsupported     Code = "PARSE_UNSUPPORTED"

	CodeDuplicateDefinition Code = "DUPLICATE_DEFINITION"
	CodeUndefinedSymbol     Code = "UNDEFINED_SYMBOL"
	CodeUndefinedType       Code = "UNDEFINED_TYPE"
	CodeTypeMismatch        Code = "TYPE_MISMATCH"
	CodeWrongArgumentCount  Code = "WRONG_ARGUMENT_COUNT"
	CodeInvalidBinaryOperand Code = "INVALID_BINARY_OPERAND"
	CodeInvalidUnaryOperand  Code = "INVALID_UNARY_OPERAND"
	CodeNoSuchField          Code = "NO_SUCH_FIELD"
	CodeNotCallable          Code = "NOT_CALLABLE"
	CodeEffectViolation      Code = "EFFECT_VIOLATION"
	CodeNonExhaustive        Code = "NON_EXHAUSTIVE_MATCH"
	CodeUnreachablePattern   Code = "UNREACHABLE_PATTERN"
	CodeMissingTraitImpl     Code = "MISSING_TRAIT_IMPL"
	CodeTraitSignatureMismatch Code = "TRAIT_SIGNATURE_MISMATCH"

	CodeInvalidCast     Code = "INVALID_CAST"
	CodeInvalidOperation Code = "INVALID_OPERATION"
	CodeArityMismatch    Code = "ARITY_MISMATCH"
	CodeAssertionFailed  Code = "ASSERTION_FAILED"
	CodeOutOfMemory      Code = "OUT_OF_MEMORY"
)

// Span mirrors token.Span in diagnostic-facing form so this package does not
// force every consumer to depend on the lexer's internal representation.
type Span struct {
	Filename string
	Line     int
	Column   int
	Start    int
	End      int
}

// FromTokenSpan converts a token.Span into a diag.Span.
func FromTokenSpan(s token.Span) Span {
	return Span{
		Filename: s.Filename,
		Line:     s.Start.Line,
		Column:   s.Start.Column,
		Start:    s.Start.Offset,
		End:      s.End.Offset,
	}
}

// IsValid reports whether the span carries real location information.
func (s Span) IsValid() bool {
	return s.Line > 0
}

// RelatedSpan attaches a secondary span with an explanatory label to a
// diagnostic (e.g. "first defined here").
type RelatedSpan struct {
	Span    Span
	Message string
}

// Diagnostic is a single compiler message.
type Diagnostic struct {
	Stage      Stage
	Severity   Severity
	Code       Code
	Message    string
	Span       Span
	Related    []RelatedSpan
	Suggestion string
}

// Batch is an ordered collection of diagnostics produced by one
// check/run invocation, tagged with a run ID for correlation.
type Batch struct {
	RunID       uuid.UUID
	Diagnostics []Diagnostic
}

// NewBatch creates an empty, freshly identified diagnostic batch.
func NewBatch() *Batch {
	return &Batch{RunID: uuid.New()}
}

// Add appends a diagnostic to the batch, preserving production order.
func (b *Batch) Add(d Diagnostic) {
	b.Diagnostics = append(b.Diagnostics, d)
}

// HasErrors reports whether the batch contains a diagnostic with severity
// error or higher.
func (b *Batch) HasErrors() bool {
	for _, d := range b.Diagnostics {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Errors returns only the error-severity diagnostics.
func (b *Batch) Errors() []Diagnostic {
	var out []Diagnostic
	for _, d := range b.Diagnostics {
		if d.Severity == SeverityError {
			out = append(out, d)
		}
	}
	return out
}

// Warnings returns only the warning-severity diagnostics.
func (b *Batch) Warnings() []Diagnostic {
	var out []Diagnostic
	for _, d := range b.Diagnostics {
		if d.Severity == SeverityWarning {
			out = append(out, d)
		}
	}
	return out
}
