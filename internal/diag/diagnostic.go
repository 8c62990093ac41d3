package diag

import (
	"github.com/JakobDegen/captures/internal/source"
)

// Note attaches secondary context to a diagnostic, usually pointing at
// another span (the earlier directive of a duplicate pair, for example).
type Note struct {
	Span source.Span
	Msg  string
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}
