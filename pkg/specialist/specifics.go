package specialist

import "regexp"

// numericSpecific matches a number with at least one digit, optionally with
// a decimal point, a percent sign, or a short unit suffix — the shape of a
// "specific" a reader would treat as a measured fact rather than a rounded
// generality ("about half" doesn't match; "47.3%" and "16GB" do).
var numericSpecific = regexp.MustCompile(`\b\d+(\.\d+)?\s?(%|[A-Za-z]{1,4})?\b`)

// CountUnverifiableSpecifics counts numeric-looking tokens inside claims
// that have no supporting evidence. A grounded claim is allowed to contain
// numbers (they came from a probe or the knowledge pack); it's a number
// asserted with nothing backing it that the reliability scorer needs to
// know about.
func CountUnverifiableSpecifics(claims []Claim) int {
	count := 0
	for _, c := range claims {
		if c.Grounded() {
			continue
		}
		count += len(numericSpecific.FindAllString(c.Text, -1))
	}
	return count
}
