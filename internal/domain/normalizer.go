// Package domain implements the harness pipeline: directive parsing,
// output normalization, diagnostic parsing, diffing, scheduling and
// verdict aggregation.
package domain

import (
	"path/filepath"
	"regexp"
	"strings"
)

// RootPlaceholder substitutes the corpus root's absolute path in
// normalized output so golden files stay portable across checkouts.
const RootPlaceholder = "$DIR"

// CoordPlaceholder substitutes line:column coordinates of vendored
// locations, which drift with upstream edits the test does not control.
const CoordPlaceholder = "LL:COL"

type normRule struct {
	re          *regexp.Regexp
	replacement string
}

// Normalizer rewrites raw tool output into the canonical comparable form.
// It is a pure function of its construction inputs: rules are applied in
// a fixed order because later rules rely on earlier substitutions.
type Normalizer struct {
	rules []normRule
}

// NewNormalizer builds the rule set for a corpus rooted at root. Rule
// order: root path collapse, vendored coordinate scrub, line-ending
// canonicalization, trailing-whitespace strip.
func NewNormalizer(root string, vendorPrefixes []string) *Normalizer {
	var rules []normRule

	root = strings.TrimRight(filepath.Clean(root), `/\`)
	slashed := filepath.ToSlash(root)
	backslashed := strings.ReplaceAll(slashed, "/", `\`)

	// A boundary after the root keeps sibling checkouts intact: /ci/corpus
	// must not rewrite inside /ci/corpus2.
	const boundary = `($|[^\w.-])`

	if root != "" && root != "." {
		rules = append(rules, normRule{
			re:          regexp.MustCompile(regexp.QuoteMeta(slashed) + boundary),
			replacement: "$$DIR${1}",
		})
		if backslashed != slashed {
			rules = append(rules, normRule{
				re:          regexp.MustCompile(regexp.QuoteMeta(backslashed) + boundary),
				replacement: "$$DIR${1}",
			})
		}
	}

	for _, prefix := range vendorPrefixes {
		prefix = strings.Trim(filepath.ToSlash(prefix), "/")
		if prefix == "" {
			continue
		}

		rules = append(rules, normRule{
			re:          regexp.MustCompile(`((?:\$DIR/)?` + regexp.QuoteMeta(prefix) + `/[^\s:]+):\d+:\d+`),
			replacement: "$1:" + CoordPlaceholder,
		})
	}

	rules = append(rules,
		normRule{re: regexp.MustCompile(`\r\n?`), replacement: "\n"},
		normRule{re: regexp.MustCompile(`(?m)[ \t]+$`), replacement: ""},
	)

	return &Normalizer{rules: rules}
}

// Normalize applies the rule set in order. A rule whose pattern matches
// nothing is a no-op. Normalize is idempotent.
func (n *Normalizer) Normalize(raw string) string {
	out := raw
	for _, r := range n.rules {
		out = r.re.ReplaceAllString(out, r.replacement)
	}

	return out
}
