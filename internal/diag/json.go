package diag

import (
	"encoding/json"
	"io"
)

// jsonDiagnostic is the wire shape of one diagnostic in --format=json
// output. It mirrors Diagnostic with stable lower-case keys so tooling
// built on the CLI does not depend on Go field names.
type jsonDiagnostic struct {
	Stage      string        `json:"stage"`
	Severity   string        `json:"severity"`
	Code       string        `json:"code,omitempty"`
	Message    string        `json:"message"`
	Span       Span          `json:"span"`
	Related    []RelatedSpan `json:"related,omitempty"`
	Suggestion string        `json:"suggestion,omitempty"`
}

type jsonBatch struct {
	RunID       string           `json:"run_id"`
	Diagnostics []jsonDiagnostic `json:"diagnostics"`
}

// WriteJSON renders a batch as a single JSON document.
func WriteJSON(w io.Writer, b *Batch) error {
	out := jsonBatch{RunID: b.RunID.String(), Diagnostics: make([]jsonDiagnostic, len(b.Diagnostics))}
	for i, d := range b.Diagnostics {
		out.Diagnostics[i] = jsonDiagnostic{
			Stage:      string(d.Stage),
			Severity:   string(d.Severity),
			Code:       string(d.Code),
			Message:    d.Message,
			Span:       d.Span,
			Related:    d.Related,
			Suggestion: d.Suggestion,
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
