package domain

import (
	"fmt"
	"strings"
	"time"

	m "github.com/mouse-blink/gild/internal/model"
)

// DirectivePrefix introduces a harness directive inside a test source's
// leading comment block.
const DirectivePrefix = "//@"

// ParseDirectives extracts the per-test configuration from the header of a
// test source. Scanning stops at the first line that is neither blank nor
// a line comment, so directives cannot appear below code. An unknown
// directive or a duplicate revision name is an error; the scheduler turns
// it into an error verdict for that test without touching its siblings.
func ParseDirectives(src []byte) (m.Directives, error) {
	d := m.Directives{ExitClass: m.ExitSuccess}
	seen := make(map[string]struct{})

	for _, line := range strings.Split(string(src), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if !strings.HasPrefix(trimmed, "//") {
			break
		}

		if !strings.HasPrefix(trimmed, DirectivePrefix) {
			continue
		}

		body := strings.TrimSpace(strings.TrimPrefix(trimmed, DirectivePrefix))
		if err := applyDirective(&d, seen, body); err != nil {
			return m.Directives{}, err
		}
	}

	return d, nil
}

func applyDirective(d *m.Directives, seen map[string]struct{}, body string) error {
	key, value, _ := strings.Cut(body, ":")
	key = strings.TrimSpace(key)
	value = strings.TrimSpace(value)

	switch key {
	case "revisions":
		for _, rev := range strings.Fields(value) {
			if _, dup := seen[rev]; dup {
				return fmt.Errorf("duplicate revision %q", rev)
			}

			seen[rev] = struct{}{}
			d.Revisions = append(d.Revisions, rev)
		}
	case "check-pass":
		d.ExitClass = m.ExitSuccess
	case "check-fail":
		d.ExitClass = m.ExitFailure
	case "check-any":
		d.ExitClass = m.ExitAny
	case "aux":
		for _, aux := range strings.Fields(value) {
			d.AuxFiles = append(d.AuxFiles, m.Path(aux))
		}
	case "timeout":
		t, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("timeout directive: %w", err)
		}

		d.Timeout = t
	case "args":
		d.ExtraArgs = append(d.ExtraArgs, strings.Fields(value)...)
	case "ignore":
		d.Ignored = true
		d.IgnoreReason = value
	default:
		return fmt.Errorf("unknown directive %q", key)
	}

	return nil
}
