package review

import (
	"fmt"
	"log/slog"

	"github.com/jjgarcianorway/anna/pkg/probe"
	"github.com/jjgarcianorway/anna/pkg/reliability"
)

var logger = slog.With("component", "review_junior")

// DefaultJuniorRoundsMax is spec.md §6's default junior_rounds_max.
const DefaultJuniorRoundsMax = 2

// DefaultJuniorThreshold is the score a draft must meet to be verified
// without a revision round, per spec.md §4.8.
const DefaultJuniorThreshold = 80

// JuniorVerification is one junior review round's result.
type JuniorVerification struct {
	Round       int
	Score       int
	Verified    bool
	Instruction RevisionInstruction
	Verdict     Verdict
}

// Junior is the team-specialised reviewer invoked after the specialist
// drafts an answer and whenever the gate or a prior junior round calls for
// revision. It never talks to an LLM: verification is entirely a function
// of the reliability scorer's output, translated into an actionable
// instruction via the fixed map spec.md §4.8 names.
type Junior struct {
	Threshold int
}

// NewJunior returns a Junior with the given verification threshold. A
// threshold of 0 uses DefaultJuniorThreshold.
func NewJunior(threshold int) *Junior {
	if threshold <= 0 {
		threshold = DefaultJuniorThreshold
	}
	return &Junior{Threshold: threshold}
}

// Verify scores in and, if the score clears j.Threshold, returns a verified
// result. Otherwise it builds a RevisionInstruction from the scorer's
// reasons, the probes that failed in this round (recommended for re-run),
// and the evidence kinds the ticket required but didn't get grounded.
func (j *Junior) Verify(round int, in reliability.Input, failedProbes []probe.ID, requiredEvidence []probe.EvidenceKind) JuniorVerification {
	out := reliability.Score(in)
	verified := out.Score >= j.Threshold

	var instruction RevisionInstruction
	if !verified {
		instruction = instructionFromReasons(out.Reasons, failedProbes, requiredEvidence)
	}

	verdict := Verdict{
		Reviewer: ReviewerJunior,
		Score:    out.Score,
		Issues:   instruction.Issues,
	}
	verdict.Severity = severityFor(out.Score, instruction.Issues)
	if !in.NoInvention {
		verdict.Severity = SeverityBlocker
	}

	if verified {
		logger.Debug("draft verified", "stage", "review_junior", "round", round, "score", out.Score)
	} else {
		logger.Debug("draft not verified", "stage", "review_junior", "round", round, "score", out.Score, "issues", instruction.Issues)
	}

	return JuniorVerification{
		Round:       round,
		Score:       out.Score,
		Verified:    verified,
		Instruction: instruction,
		Verdict:     verdict,
	}
}

// instructionFromReasons implements spec.md §4.8's fixed reason→issue map:
// ProbeFailed→MissingProbes with a recommended-probe list, LowConfidence→
// TooVague, InventionDetected→UnverifiableClaims, NotGrounded→MissingEvidence
// with one required claim per missing evidence kind, EvidenceMissing→
// MissingEvidence. pkg/reliability's Reason set has no ProbeFailed,
// ProbeTimeout or LowConfidence reason; this function maps from what the
// scorer actually emits, plus the failedProbes this round observed
// directly, rather than from reason strings the scorer doesn't produce.
func instructionFromReasons(reasons []reliability.Reason, failedProbes []probe.ID, requiredEvidence []probe.EvidenceKind) RevisionInstruction {
	var instr RevisionInstruction
	seen := make(map[Issue]bool)
	add := func(i Issue) {
		if !seen[i] {
			seen[i] = true
			instr.Issues = append(instr.Issues, i)
		}
	}

	for _, r := range reasons {
		switch r {
		case reliability.ReasonNotGrounded, reliability.ReasonEvidenceMissing:
			if seen[IssueMissingEvidence] {
				continue
			}
			add(IssueMissingEvidence)
			for _, kind := range requiredEvidence {
				instr.RequiredClaims = append(instr.RequiredClaims, fmt.Sprintf("include %s data", kind))
			}
		case reliability.ReasonInventionDetected:
			add(IssueUnverifiableClaims)
		case reliability.ReasonContradiction:
			add(IssueContradiction)
		case reliability.ReasonUnverifiable:
			add(IssueUnverifiableClaims)
		case reliability.ReasonBudgetExceeded, reliability.ReasonFallbackUsed:
			// Tolerated on their own; contribute no actionable issue unless
			// paired with one of the reasons above.
		}
	}

	if len(failedProbes) > 0 {
		add(IssueMissingProbes)
		for _, id := range failedProbes {
			instr.RecommendedProbes = append(instr.RecommendedProbes, id.Canonical())
		}
	}

	if len(instr.Issues) == 0 {
		add(IssueTooVague)
	}

	return instr
}
