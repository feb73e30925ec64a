package review

import "log/slog"

var seniorLogger = slog.With("component", "review_senior")

// DefaultSeniorRoundsMax is spec.md §6's default senior_rounds_max.
const DefaultSeniorRoundsMax = 1

// SeniorEscalation is the senior reviewer's verdict on one escalation.
type SeniorEscalation struct {
	Successful  bool
	Instruction RevisionInstruction
	Reason      string
	Verdict     Verdict
}

// Senior is invoked when the gate returns EscalateToSenior or the junior
// exhausts its rounds without verifying a draft. Unlike the junior, it
// looks at the whole history of junior rounds for this ticket rather than
// just the latest one, so it can name a recurring failure category instead
// of repeating the same narrow instruction.
type Senior struct{}

// NewSenior returns a Senior. It holds no state: every call is a pure
// function of the history handed to it.
func NewSenior() *Senior {
	return &Senior{}
}

// Escalate inspects history (every junior round run so far on this ticket,
// oldest first) and produces a structural instruction targeting whichever
// issue recurred most. Ties are broken by issueOrder's fixed precedence so
// the result is deterministic. If history carries no issue at all (it is
// empty, or every round verified and recorded none), Escalate reports
// failure so the orchestrator can surface ClarifyUser or Abandoned instead
// of looping forever.
func (s *Senior) Escalate(history []JuniorVerification) SeniorEscalation {
	counts := make(map[Issue]int)
	for _, round := range history {
		for _, issue := range round.Instruction.Issues {
			counts[issue]++
		}
	}

	top, ok := dominantIssue(counts)
	if !ok {
		seniorLogger.Warn("no recurring issue to escalate on", "stage", "review_senior", "rounds", len(history))
		return SeniorEscalation{
			Successful: false,
			Reason:     "no recurring issue pattern across junior rounds to act on",
			Verdict:    Verdict{Reviewer: ReviewerSenior, Severity: SeverityBlocker},
		}
	}

	instr := structuralInstruction(top, history)
	seniorLogger.Info("escalation instruction produced", "stage", "review_senior", "issue", top, "forbidden_claims", len(instr.ForbiddenClaims), "recommended_probes", len(instr.RecommendedProbes))

	return SeniorEscalation{
		Successful:  true,
		Instruction: instr,
		Verdict: Verdict{
			Reviewer: ReviewerSenior,
			Severity: SeverityWarning,
			Issues:   instr.Issues,
		},
	}
}

// dominantIssue returns the most frequent issue in counts, breaking ties by
// issueOrder's fixed precedence. ok is false if counts is empty.
func dominantIssue(counts map[Issue]int) (Issue, bool) {
	best := 0
	var top Issue
	for _, issue := range issueOrder {
		if n := counts[issue]; n > best {
			best = n
			top = issue
		}
	}
	return top, best > 0
}

// structuralInstruction turns the dominant recurring issue into a more
// pointed instruction than any single junior round produced, pulling the
// union of recommended probes the junior already surfaced for that issue.
func structuralInstruction(top Issue, history []JuniorVerification) RevisionInstruction {
	instr := RevisionInstruction{Issues: []Issue{top}}

	seenProbes := make(map[string]bool)
	seenForbidden := make(map[string]bool)
	for _, round := range history {
		if !round.Instruction.HasIssue(top) {
			continue
		}
		for _, p := range round.Instruction.RecommendedProbes {
			if !seenProbes[p] {
				seenProbes[p] = true
				instr.RecommendedProbes = append(instr.RecommendedProbes, p)
			}
		}
		for _, f := range round.Instruction.ForbiddenClaims {
			if !seenForbidden[f] {
				seenForbidden[f] = true
				instr.ForbiddenClaims = append(instr.ForbiddenClaims, f)
			}
		}
	}

	switch top {
	case IssueMissingEvidence:
		instr.RequiredClaims = []string{"an auditable claim with specific values drawn only from the probes that were run"}
		instr.Explanation = "junior review repeatedly found ungrounded claims; every factual statement must cite the probe or pack entry that supports it"
	case IssueUnverifiableClaims:
		instr.Explanation = "junior review repeatedly found unverifiable or invented specifics; remove any claim that does not cite real evidence"
	case IssueContradiction:
		instr.Explanation = "junior review repeatedly found contradictory claims; reconcile or drop the conflicting statements"
	case IssueMissingProbes:
		instr.Explanation = "the same probes keep failing or going unrun; re-run them before drafting again"
	case IssueTooVague:
		instr.Explanation = "the draft remains too vague after revision; state a concrete, evidence-backed answer or ask the user to clarify"
	default:
		instr.Explanation = "junior review repeatedly flagged the same issue; address it directly"
	}

	return instr
}
