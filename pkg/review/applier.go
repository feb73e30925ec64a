package review

import (
	"fmt"
	"strings"
)

// Apply deterministically turns draft into a revised draft per instr:
// forbidden claims are removed by literal substring replacement with
// "[removed]", and required claims not already present get a trailing
// structured marker for the next review round to notice. Apply never
// invents content — it only removes text the instruction names or appends
// a fixed-size marker, so |new draft| <= |old draft| + a small constant
// overhead per marker, matching spec.md §8's applier invariant.
//
// This is spec.md §9's documented Open Question made concrete: literal
// substring matching is fragile under a paraphrased forbidden claim, but
// spec.md preserves this as the minimum behavior and flags a semantically
// aware applier as future work rather than guessing intent here.
func Apply(draft string, instr RevisionInstruction) (string, []string) {
	newDraft := draft
	var changeLog []string

	for _, forbidden := range instr.ForbiddenClaims {
		if forbidden == "" || !strings.Contains(newDraft, forbidden) {
			continue
		}
		newDraft = strings.ReplaceAll(newDraft, forbidden, "[removed]")
		changeLog = append(changeLog, fmt.Sprintf("removed claim: %q", forbidden))
	}

	for _, required := range instr.RequiredClaims {
		if required == "" {
			continue
		}
		marker := RequiredClaimMarker(required)
		if strings.Contains(newDraft, required) || strings.Contains(newDraft, marker) {
			continue
		}
		newDraft = strings.TrimRight(newDraft, "\n") + "\n" + marker
		changeLog = append(changeLog, fmt.Sprintf("marked unmet required claim: %q", required))
	}

	return newDraft, changeLog
}

// RequiredClaimMarker is the structured marker a required-but-unsatisfiable
// claim leaves behind for the next review round: "if required claims cannot
// be satisfied from existing evidence, the applier leaves a structured
// marker". Exported so callers revising a Draft's claim list after Apply can
// recognise and reconstruct the same marker.
func RequiredClaimMarker(required string) string {
	return fmt.Sprintf("[needs: %s]", required)
}
