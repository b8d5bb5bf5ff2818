package domain

import (
	"github.com/pmezard/go-difflib/difflib"
)

// Compare checks normalized actual output against the stored expectation.
// found distinguishes a missing golden file from an empty one: absence
// means nothing was ever recorded, an empty file explicitly expects no
// output. On mismatch it returns a unified diff with the golden text as
// the base, so additions in the report are newly introduced output.
func Compare(actual, expected string, found bool) (ok bool, diff string) {
	if !found {
		if actual == "" {
			return true, ""
		}

		return false, renderDiff("", actual)
	}

	if actual == expected {
		return true, ""
	}

	return false, renderDiff(expected, actual)
}

func renderDiff(expected, actual string) string {
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(expected),
		B:        difflib.SplitLines(actual),
		FromFile: "golden",
		ToFile:   "actual",
		Context:  3,
	})
	if err != nil {
		// difflib only errors on writer failures, which cannot happen
		// with the string writer.
		return "diff unavailable: " + err.Error()
	}

	return diff
}
