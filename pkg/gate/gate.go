// Package gate implements the deterministic-first review gate: a pure
// function that decides Accept/Revise/Escalate from reliability signals
// alone, only falling through to LLM-assisted review when the signals are
// genuinely ambiguous. DecisionClarifyUser is declared but Gate never
// returns it.
package gate

// Decision is the gate's verdict.
type Decision string

const (
	DecisionAccept      Decision = "accept"
	DecisionRevise      Decision = "revise"
	DecisionEscalate    Decision = "escalate_to_senior"
	DecisionClarifyUser Decision = "clarify_user"
)

// Issue names why a decision was reached, mirroring ReviewIssueKind.
type Issue string

const (
	IssueContradiction         Issue = "contradiction"
	IssueTooVague              Issue = "too_vague"
	IssueMissingEvidence       Issue = "missing_evidence"
	IssueUnverifiableSpecifics Issue = "unverifiable_specifics"
)

// Fallback mirrors reliability.Fallback without importing it, keeping gate
// dependency-free; the orchestrator is responsible for translating one into
// the other.
type Fallback string

const (
	FallbackNone          Fallback = "none"
	FallbackDeterministic Fallback = "deterministic"
	FallbackTimeout       Fallback = "timeout"
)

// Context carries every deterministic signal the gate reads. It is built
// fresh per gate call; nothing about it is mutated by Gate.
type Context struct {
	ReliabilityScore      int
	GroundingRatio        float64
	TotalClaims           int
	InventionDetected     bool
	Contradictions        int
	UnverifiableSpecifics int
	EvidenceRequired      bool
	BudgetExceeded        bool
	Fallback              Fallback
}

// Thresholds parameterizes the gate's score cutoffs.
type Thresholds struct {
	AcceptScore         int
	MinGrounding        float64
	FallbackAcceptScore int
}

// DefaultThresholds returns the thresholds spec.md names as defaults.
func DefaultThresholds() Thresholds {
	return Thresholds{AcceptScore: 80, MinGrounding: 0.5, FallbackAcceptScore: 70}
}

// Outcome is the gate's result.
type Outcome struct {
	Decision    Decision
	Reasons     []Issue
	RequiresLLM bool
	Confidence  float64
}

func accept() Outcome {
	return Outcome{Decision: DecisionAccept, Confidence: 1.0}
}

func acceptWithFallback() Outcome {
	return Outcome{Decision: DecisionAccept, Confidence: 0.85}
}

func revise(reasons ...Issue) Outcome {
	return Outcome{Decision: DecisionRevise, Reasons: reasons, Confidence: 0.9}
}

func escalate(reasons ...Issue) Outcome {
	return Outcome{Decision: DecisionEscalate, Reasons: reasons, Confidence: 0.95}
}

func unclear() Outcome {
	return Outcome{Decision: DecisionRevise, RequiresLLM: true, Confidence: 0.5}
}

// Gate evaluates ctx against thresholds and returns the first matching rule
// in the fixed order below. It performs no I/O and depends on nothing but
// its arguments, so it is safe to call concurrently and its result is
// stable under repeated calls with an equal Context.
func Gate(ctx Context, thresholds Thresholds) Outcome {
	// Rule 1: invention is a hard fail regardless of score.
	if ctx.InventionDetected {
		return escalate(IssueContradiction)
	}

	// Rule 2: any contradiction escalates.
	if ctx.Contradictions > 0 {
		return escalate(IssueContradiction)
	}

	// Rule 3: evidence was required but nothing was claimed.
	if ctx.TotalClaims == 0 && ctx.EvidenceRequired {
		return revise(IssueTooVague)
	}

	// Rule 4: evidence was required but grounding is too thin.
	if ctx.GroundingRatio < thresholds.MinGrounding && ctx.EvidenceRequired {
		return revise(IssueMissingEvidence)
	}

	// Rule 5: high score with no contradictions is a clean accept.
	if ctx.ReliabilityScore >= thresholds.AcceptScore && ctx.Contradictions == 0 {
		return accept()
	}

	// Rule 6: a fallback draft with a decent score still clears the bar,
	// just with reduced confidence.
	if ctx.Fallback == FallbackDeterministic || ctx.Fallback == FallbackTimeout {
		if ctx.ReliabilityScore >= thresholds.FallbackAcceptScore {
			return acceptWithFallback()
		}
	}

	// Rule 7: budget exhaustion with a usable result is still an accept.
	if ctx.BudgetExceeded && ctx.ReliabilityScore >= 60 {
		return acceptWithFallback()
	}

	// Rule 8: medium scores are genuinely ambiguous; let an LLM reviewer
	// break the tie instead of guessing deterministically.
	if ctx.ReliabilityScore >= 50 && ctx.ReliabilityScore < thresholds.AcceptScore {
		return unclear()
	}

	// Rule 9: low scores get one deterministic revision attempt before any
	// LLM involvement, with reasons inferred from which signal is worst.
	if ctx.ReliabilityScore < 50 {
		var reasons []Issue
		if ctx.GroundingRatio < thresholds.MinGrounding {
			reasons = append(reasons, IssueMissingEvidence)
		}
		if ctx.UnverifiableSpecifics > 0 {
			reasons = append(reasons, IssueUnverifiableSpecifics)
		}
		if len(reasons) == 0 {
			reasons = append(reasons, IssueTooVague)
		}
		return revise(reasons...)
	}

	// Rule 10: default, reached only when every signal above is exactly at
	// a boundary no prior rule claimed.
	return unclear()
}
