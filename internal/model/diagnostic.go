package model

// Severity classifies a parsed diagnostic.
type Severity int

const (
	// SeverityUnknown marks output the parser could not structure. The
	// diagnostic's Raw field carries the original text verbatim.
	SeverityUnknown Severity = iota
	SeverityError
	SeverityWarning
	SeverityNote
	SeverityHelp
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityNote:
		return "note"
	case SeverityHelp:
		return "help"
	}

	return "unknown"
}

// Span is a labeled source location attached to a diagnostic.
type Span struct {
	File  string
	Line  int
	Col   int
	Label string
}

// Suggestion is a machine-applicable replacement attached to a diagnostic.
type Suggestion struct {
	Span        Span
	Replacement string
}

// Diagnostic is one structured record extracted from the tool's output.
// Records are produced only by parsing; emission order is preserved.
type Diagnostic struct {
	Severity    Severity
	Code        string
	Message     string
	Spans       []Span
	Suggestions []Suggestion

	// Raw holds the verbatim text for lines the parser could not
	// structure. Comparison falls back to raw equality for these.
	Raw string
}

// IsRaw reports whether the diagnostic is an opaque unparsed line.
func (d Diagnostic) IsRaw() bool {
	return d.Severity == SeverityUnknown
}
