package check

import (
	"fmt"

	"github.com/lucent-lang/lucent/internal/diag"
	"github.com/lucent-lang/lucent/internal/token"
)

func (c *Checker) errorAt(span token.Span, code diag.Code, format string, args ...interface{}) {
	c.batch.Add(diag.Diagnostic{
		Stage:    diag.StageTypeCheck,
		Severity: diag.SeverityError,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Span:     diag.FromTokenSpan(span),
	})
}

func (c *Checker) warnAt(span token.Span, code diag.Code, format string, args ...interface{}) {
	c.batch.Add(diag.Diagnostic{
		Stage:    diag.StageTypeCheck,
		Severity: diag.SeverityWarning,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Span:     diag.FromTokenSpan(span),
	})
}
