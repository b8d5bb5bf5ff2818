package domain

import (
	"regexp"
	"strconv"
	"strings"

	m "github.com/mouse-blink/gild/internal/model"
)

var (
	headerRe = regexp.MustCompile(`^(error|warning|note|help)(?:\[([A-Za-z0-9]+)\])?: (.*)$`)
	spanRe   = regexp.MustCompile(`^\s*-->\s*(.+?):(\d+|LL):(\d+|COL)\s*$`)
	subRe    = regexp.MustCompile(`^\s*= (note|help): (.*)$`)
	gutterRe = regexp.MustCompile(`^\s*(\d*)\s*\|(.*)$`)
	labelRe  = regexp.MustCompile(`^\s*(\^+|~+)\s*(.*)$`)
)

// ParseDiagnostics extracts structured records from normalized tool output.
// The parser is tolerant: lines it cannot structure are retained as opaque
// raw records so comparison can fall back to text equality. Emission order
// is preserved; records are never re-sorted.
func ParseDiagnostics(normalized string) []m.Diagnostic {
	if normalized == "" {
		return nil
	}

	var (
		diags   []m.Diagnostic
		current *m.Diagnostic

		// last numbered source line seen in the gutter, used to build
		// suggestions out of help renderings
		pendingLine int
		pendingCode string
	)

	flush := func() {
		if current != nil {
			diags = append(diags, *current)
			current = nil
		}
		pendingLine, pendingCode = 0, ""
	}

	for _, line := range strings.Split(normalized, "\n") {
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}

		if match := headerRe.FindStringSubmatch(line); match != nil {
			flush()
			current = &m.Diagnostic{
				Severity: severityFromLabel(match[1]),
				Code:     match[2],
				Message:  match[3],
			}

			continue
		}

		if match := subRe.FindStringSubmatch(line); match != nil {
			// A subordinate "= note:" closes its parent's span block, so
			// flush first to keep emission order.
			flush()
			diags = append(diags, m.Diagnostic{
				Severity: severityFromLabel(match[1]),
				Message:  match[2],
			})

			continue
		}

		if current != nil {
			if match := spanRe.FindStringSubmatch(line); match != nil {
				current.Spans = append(current.Spans, m.Span{
					File: match[1],
					Line: atoiOrZero(match[2]),
					Col:  atoiOrZero(match[3]),
				})

				continue
			}

			if match := gutterRe.FindStringSubmatch(line); match != nil {
				consumeGutter(current, match, &pendingLine, &pendingCode)
				continue
			}
		}

		flush()
		diags = append(diags, m.Diagnostic{Raw: line})
	}

	flush()

	return diags
}

// consumeGutter folds one `|` gutter line into the current diagnostic:
// caret markers become span labels, tilde markers under a help rendering
// become suggestions.
func consumeGutter(current *m.Diagnostic, match []string, pendingLine *int, pendingCode *string) {
	lineNo, body := match[1], match[2]

	if lineNo != "" {
		*pendingLine = atoiOrZero(lineNo)
		*pendingCode = strings.TrimSpace(body)

		return
	}

	marker := labelRe.FindStringSubmatch(body)
	if marker == nil {
		return
	}

	switch {
	case strings.HasPrefix(marker[1], "^"):
		if len(current.Spans) > 0 {
			current.Spans[len(current.Spans)-1].Label = marker[2]
		}
	case strings.HasPrefix(marker[1], "~") && current.Severity == m.SeverityHelp:
		current.Suggestions = append(current.Suggestions, m.Suggestion{
			Span:        m.Span{Line: *pendingLine},
			Replacement: *pendingCode,
		})
	}
}

func severityFromLabel(label string) m.Severity {
	switch label {
	case "error":
		return m.SeverityError
	case "warning":
		return m.SeverityWarning
	case "note":
		return m.SeverityNote
	case "help":
		return m.SeverityHelp
	}

	return m.SeverityUnknown
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}

	return n
}
