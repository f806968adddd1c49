package diag

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// Formatter renders diagnostics in a Rust-style format with source
// snippets, caching loaded source files by name.
type Formatter struct {
	sourceCache map[string]string
	out         io.Writer
}

// NewFormatter creates a formatter writing to stderr.
func NewFormatter() *Formatter {
	return &Formatter{sourceCache: make(map[string]string), out: os.Stderr}
}

// NewFormatterTo creates a formatter writing to an arbitrary writer (used
// by tests).
func NewFormatterTo(w io.Writer) *Formatter {
	return &Formatter{sourceCache: make(map[string]string), out: w}
}

// LoadSource registers in-memory source text for filename so spans can be
// rendered without touching the filesystem (the CLI's stdin mode and all
// tests use this rather than os.ReadFile).
func (f *Formatter) LoadSource(filename, src string) {
	f.sourceCache[filename] = src
}

// Format renders a single diagnostic.
func (f *Formatter) Format(d Diagnostic) {
	f.printHeader(d)

	if d.Span.IsValid() {
		f.printSpan(d.Span, "^", d.Span)
	}
	for _, r := range d.Related {
		fmt.Fprintf(f.out, "  note: %s\n", r.Message)
		if r.Span.IsValid() {
			f.printSpan(r.Span, "~", d.Span)
		}
	}
	if d.Suggestion != "" {
		fmt.Fprintf(f.out, "  help: %s\n", d.Suggestion)
	}
}

// FormatAll renders every diagnostic in a batch, in production order.
func (f *Formatter) FormatAll(b *Batch) {
	for _, d := range b.Diagnostics {
		f.Format(d)
	}
	errs, warns := 0, 0
	for _, d := range b.Diagnostics {
		switch d.Severity {
		case SeverityError:
			errs++
		case SeverityWarning:
			warns++
		}
	}
	fmt.Fprintf(f.out, "%d error(s), %d warning(s)\n", errs, warns)
}

func (f *Formatter) printHeader(d Diagnostic) {
	severity := string(d.Severity)
	if severity == "" {
		severity = "error"
	}
	if d.Code != "" {
		fmt.Fprintf(f.out, "%s[%s]: %s\n", severity, d.Code, d.Message)
	} else {
		fmt.Fprintf(f.out, "%s: %s\n", severity, d.Message)
	}
}

func (f *Formatter) printSpan(span Span, marker string, primary Span) {
	src, ok := f.sourceCache[span.Filename]
	if !ok || span.Line <= 0 {
		if span.Filename != "" {
			fmt.Fprintf(f.out, "  --> %s:%d:%d\n", span.Filename, span.Line, span.Column)
		}
		return
	}
	lines := strings.Split(src, "\n")
	if span.Line > len(lines) {
		return
	}
	fmt.Fprintf(f.out, "  --> %s:%d:%d\n", span.Filename, span.Line, span.Column)
	line := lines[span.Line-1]
	lineNumWidth := len(fmt.Sprintf("%d", span.Line))
	fmt.Fprintf(f.out, " %*s |\n", lineNumWidth, "")
	fmt.Fprintf(f.out, " %d | %s\n", span.Line, line)

	width := span.End - span.Start
	if width < 1 {
		width = 1
	}
	col := span.Column - 1
	if col < 0 {
		col = 0
	}
	underline := strings.Repeat(" ", col) + strings.Repeat(marker, width)
	fmt.Fprintf(f.out, " %*s | %s\n", lineNumWidth, "", underline)
}

// sortStable orders a batch's diagnostics by (line, column) while
// preserving production order for ties, approximating source order without
// discarding the sequence the diagnostics were produced in.
func sortStable(ds []Diagnostic) []Diagnostic {
	out := make([]Diagnostic, len(ds))
	copy(out, ds)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Span.Line != out[j].Span.Line {
			return out[i].Span.Line < out[j].Span.Line
		}
		return out[i].Span.Column < out[j].Span.Column
	})
	return out
}
