// Package reliability computes a deterministic, pure reliability score from
// the structural facts of one specialist draft. It never touches probes,
// the LLM, or the clock: the same Input always yields the same Output.
package reliability

import "math"

// Reason names a scoring deduction, attached to Output so a reviewer or
// revision step can explain the score without recomputing it.
type Reason string

const (
	ReasonNotGrounded       Reason = "not_grounded"
	ReasonEvidenceMissing   Reason = "evidence_missing"
	ReasonInventionDetected Reason = "invention_detected"
	ReasonContradiction     Reason = "contradiction"
	ReasonUnverifiable      Reason = "unverifiable_specifics"
	ReasonBudgetExceeded    Reason = "budget_exceeded"
	ReasonFallbackUsed      Reason = "fallback_used"
)

// Fallback records which fallback path, if any, produced the draft being
// scored.
type Fallback string

const (
	FallbackNone          Fallback = "none"
	FallbackDeterministic Fallback = "deterministic"
	FallbackTimeout       Fallback = "timeout"
)

// Input is everything the scorer needs, computed upstream by the specialist
// and probe executor. All fields are plain values; Input carries no
// references to probes, tickets, or the LLM.
type Input struct {
	GroundingRatio        float64
	TotalClaims           int
	EvidenceRequired      bool
	NoInvention           bool
	Contradictions        int
	UnverifiableSpecifics int
	BudgetExceeded        bool
	Fallback              Fallback
}

// Output is the scorer's verdict.
type Output struct {
	Score   int
	Reasons []Reason
}

// Score computes a reliability score from in, per the fixed deduction table:
// starting at 100, each condition below subtracts points additively, and the
// final score is capped at 0 (never negative). Order of deductions does not
// affect the total since they are purely additive.
func Score(in Input) Output {
	score := 100.0
	var reasons []Reason

	if in.GroundingRatio < 0.5 && in.EvidenceRequired {
		score -= 40 * (0.5 - in.GroundingRatio) / 0.5
		reasons = append(reasons, ReasonNotGrounded)
	}

	if in.TotalClaims == 0 && in.EvidenceRequired {
		score -= 30
		reasons = append(reasons, ReasonEvidenceMissing)
	}

	if !in.NoInvention {
		score -= 40
		reasons = append(reasons, ReasonInventionDetected)
	}

	if in.Contradictions > 0 {
		score -= 25 * float64(minInt(in.Contradictions, 2))
		reasons = append(reasons, ReasonContradiction)
	}

	if in.UnverifiableSpecifics > 0 {
		score -= 10 * float64(minInt(in.UnverifiableSpecifics, 3))
		reasons = append(reasons, ReasonUnverifiable)
	}

	if in.BudgetExceeded {
		score -= 15
		reasons = append(reasons, ReasonBudgetExceeded)
	}

	switch in.Fallback {
	case FallbackDeterministic:
		score -= 10
		reasons = append(reasons, ReasonFallbackUsed)
	case FallbackTimeout:
		score -= 15
		reasons = append(reasons, ReasonFallbackUsed)
	}

	if score < 0 {
		score = 0
	}

	return Output{
		Score:   int(math.Round(score)),
		Reasons: reasons,
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
