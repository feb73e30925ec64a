// Package spine enforces a minimum set of evidence-gathering probes for
// queries whose keywords imply a factual claim is coming, regardless of
// what the translator proposed. It is the last line of defense against
// "no probes, no evidence, but an answer anyway".
package spine

import (
	"strings"
	"unicode"
)

var packageLeadIns = []string{
	"do i have ",
	"do you have ",
	"is ",
	"have i got ",
	"got ",
}

var packageStopwords = map[string]bool{
	"it":    true,
	"there": true,
	"this":  true,
}

// extractPackageName pulls a package/tool name out of "do I have X" style
// queries. Ported from the original's extract_package_name: it scans a
// fixed list of lead-in phrases, takes the run of alphanumeric/-/_
// characters after the match, and rejects the pronoun stopwords that the
// lead-in patterns sometimes capture by accident ("is it installed?").
func extractPackageName(text string) (string, bool) {
	lower := strings.ToLower(text)

	for _, leadIn := range packageLeadIns {
		idx := strings.Index(lower, leadIn)
		if idx < 0 {
			continue
		}
		start := idx + len(leadIn)
		if start > len(text) {
			continue
		}
		rest := text[start:]

		pkg := takeWhileIdentChar(rest)
		if len(pkg) <= 1 {
			continue
		}
		pkgLower := strings.ToLower(pkg)
		if packageStopwords[pkgLower] {
			continue
		}
		return pkgLower, true
	}

	return "", false
}

func takeWhileIdentChar(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' {
			b.WriteRune(r)
			continue
		}
		break
	}
	return b.String()
}
