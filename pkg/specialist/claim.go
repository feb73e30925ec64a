// Package specialist assembles the ticket's draft answer from probe
// evidence and the knowledge pack, either LLM-composed (preferred) or
// template-assembled (on LLM failure), and extracts the parallel Claim
// structure the reliability scorer and review gate need.
package specialist

import "github.com/jjgarcianorway/anna/pkg/probe"

// SourceKind identifies what, if anything, grounds a Claim.
type SourceKind string

const (
	SourceProbe      SourceKind = "probe"
	SourcePack       SourceKind = "pack"
	SourceUngrounded SourceKind = "ungrounded"
)

// Evidence is a Claim's supporting reference: a probe's output, a
// knowledge-pack entry, or nothing. Exactly one of ProbeID/PackEntryID is
// meaningful, selected by Kind.
type Evidence struct {
	Kind        SourceKind
	ProbeID     probe.ID
	PackEntryID string

	// Invented is set only when Kind is SourceUngrounded because the claim
	// cited a probe or pack id that was never actually offered as evidence,
	// as opposed to a plain [none] commentary line. It's what lets a caller
	// tell a fabricated citation apart from deliberate non-factual prose.
	Invented bool
}

// Claim is one factual statement in the draft answer, paired with its
// evidence reference.
type Claim struct {
	Text     string
	Evidence Evidence
}

// Grounded reports whether c is backed by a probe or pack entry.
func (c Claim) Grounded() bool {
	return c.Evidence.Kind == SourceProbe || c.Evidence.Kind == SourcePack
}

// GroundingRatio computes |grounded claims| / |total claims|, the exact
// input the reliability scorer reads. An empty claim set has a grounding
// ratio of 0, which correctly triggers the scorer's no-claims-but-evidence-
// required deduction rather than dividing by zero into something
// accidentally favorable.
func GroundingRatio(claims []Claim) float64 {
	if len(claims) == 0 {
		return 0
	}
	grounded := 0
	for _, c := range claims {
		if c.Grounded() {
			grounded++
		}
	}
	return float64(grounded) / float64(len(claims))
}
