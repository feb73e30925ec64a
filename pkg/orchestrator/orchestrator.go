// Package orchestrator drives one ticket through its whole lifecycle: route
// it, enforce minimum evidence, run probes, draft an answer, and loop it
// through review until it reaches a terminal status. It is the single
// place that owns a *ticket.Ticket and its *transcript.Transcript for the
// ticket's lifetime — every other package in the pipeline is a pure or
// narrowly-scoped collaborator the orchestrator calls in sequence.
package orchestrator

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jjgarcianorway/anna/pkg/desk"
	"github.com/jjgarcianorway/anna/pkg/gate"
	"github.com/jjgarcianorway/anna/pkg/knowledge"
	"github.com/jjgarcianorway/anna/pkg/probe"
	"github.com/jjgarcianorway/anna/pkg/reliability"
	"github.com/jjgarcianorway/anna/pkg/review"
	"github.com/jjgarcianorway/anna/pkg/specialist"
	"github.com/jjgarcianorway/anna/pkg/spine"
	"github.com/jjgarcianorway/anna/pkg/ticket"
	"github.com/jjgarcianorway/anna/pkg/transcript"
	"github.com/jjgarcianorway/anna/pkg/translator"
)

// Config holds every budget and threshold the pipeline needs, matching
// spec.md §6's named defaults.
type Config struct {
	TranslatorMs int
	PerProbeMs   int
	TotalProbeMs int
	SpecialistMs int
	SeniorMs     int

	ProbeConcurrency    int
	ProbeOutputCapBytes int

	JuniorRoundsMax int
	SeniorRoundsMax int
	JuniorThreshold int

	AcceptScore         int
	MinGrounding        float64
	FallbackAcceptScore int
}

// DefaultConfig returns spec.md §6's defaults. ProbeConcurrency and
// ProbeOutputCapBytes aren't named there; 4 and 8192 are this
// implementation's own reasonable defaults for a local single-user daemon,
// not a spec-mandated value.
func DefaultConfig() Config {
	return Config{
		TranslatorMs:        8000,
		PerProbeMs:          4000,
		TotalProbeMs:        10000,
		SpecialistMs:        12000,
		SeniorMs:            8000,
		ProbeConcurrency:    4,
		ProbeOutputCapBytes: 8192,
		JuniorRoundsMax:     review.DefaultJuniorRoundsMax,
		SeniorRoundsMax:     review.DefaultSeniorRoundsMax,
		JuniorThreshold:     review.DefaultJuniorThreshold,
		AcceptScore:         80,
		MinGrounding:        0.5,
		FallbackAcceptScore: 70,
	}
}

// Orchestrator wires every pipeline collaborator together. It holds no
// per-ticket state itself; each Handle call constructs its own Ticket and
// Transcript.
type Orchestrator struct {
	Translator *translator.Translator
	Executor   *probe.Executor
	Specialist *specialist.Specialist
	Pack       []knowledge.Entry
	Cfg        Config
}

// New constructs an Orchestrator from its collaborators.
func New(t *translator.Translator, executor *probe.Executor, sp *specialist.Specialist, pack []knowledge.Entry, cfg Config) *Orchestrator {
	return &Orchestrator{Translator: t, Executor: executor, Specialist: sp, Pack: pack, Cfg: cfg}
}

// Handle runs userText through translation, probing, drafting, and the
// bounded review loop, returning the ServiceDeskResult for whatever
// terminal status the ticket reached. A panic anywhere in the pipeline is
// recovered and surfaced as an Abandoned result rather than crashing the
// caller, mirroring the teacher's base agent never letting a strategy's
// panic escape past the controller.
func (o *Orchestrator) Handle(ctx context.Context, userText string) (result desk.Result) {
	ticketID := uuid.NewString()
	tr := transcript.New(ticketID)
	logger := slog.With("ticket_id", ticketID, "component", "orchestrator")
	logger.Info("ticket received")

	var t *ticket.Ticket
	var results []probe.Result
	var fallback reliability.Fallback

	defer func() {
		if r := recover(); r != nil {
			logger.Error("recovered from panic", "stage", "orchestrator", "error", r)
			tr.Append(&transcript.Message{
				Common: transcript.Common{Stage: "orchestrator"},
				Text:   transcript.NewDiagnosticText(fmt.Sprintf("recovered from panic: %v", r)),
			})
			result = o.buildResult(ticketID, t, tr, ticket.StatusAbandoned, "", 0, false, nil, results, fallback, "panic_recovered")
		}
	}()

	overall := time.Duration(o.Cfg.TranslatorMs+o.Cfg.TotalProbeMs+o.Cfg.SpecialistMs) * time.Millisecond
	overall += time.Duration((o.Cfg.JuniorRoundsMax+o.Cfg.SeniorRoundsMax+1)*o.Cfg.SeniorMs) * time.Millisecond
	ctx, cancel := context.WithTimeout(ctx, overall)
	defer cancel()

	out := o.Translator.Translate(ctx, userText)
	decision := spine.EnforceMinimum(userText, out.ProposedProbes)
	risk := ticket.RiskFor(out.Intent)
	logger.Debug("translated", "stage", "translator", "domain", out.Domain, "intent", out.Intent, "team", out.Team, "probes", len(decision.Probes))

	t = ticket.New(ticketID, userText, out.Domain, out.Intent, out.Team, out.RouteClass, risk, decision.Probes, decision.EvidenceKinds, decision.Enforced)

	tr.Append(&transcript.TicketCreated{
		Common: transcript.Common{Stage: "translator", ElapsedMs: t.ElapsedMs()},
		Domain: out.Domain,
		Intent: string(out.Intent),
		Team:   out.Team,
		Risk:   string(risk),
	})

	t.SetStatus(ticket.StatusProbing)
	tr.Append(&transcript.StatusChanged{
		Common: transcript.Common{Stage: "probes", ElapsedMs: t.ElapsedMs()},
		From:   string(ticket.StatusCreated), To: string(ticket.StatusProbing),
	})

	probeStart := time.Now()
	results = o.Executor.Run(ctx, decision.Probes, transcriptProgress{tr: tr, t: t})
	budgetExceeded := o.Cfg.TotalProbeMs > 0 && time.Since(probeStart) >= time.Duration(o.Cfg.TotalProbeMs)*time.Millisecond
	logger.Debug("probes complete", "stage", "probes", "count", len(results), "budget_exceeded", budgetExceeded)

	t.SetStatus(ticket.StatusDrafting)
	tr.Append(&transcript.StatusChanged{
		Common: transcript.Common{Stage: "specialist", ElapsedMs: t.ElapsedMs()},
		From:   string(ticket.StatusProbing), To: string(ticket.StatusDrafting),
	})

	draft := o.Specialist.Compose(ctx, userText, results, o.Pack)
	fallback = draft.Fallback
	logger.Debug("draft composed", "stage", "specialist", "claims", len(draft.Claims), "no_invention", draft.NoInvention, "fallback", string(fallback))

	t.SetStatus(ticket.StatusReviewing)
	tr.Append(&transcript.StatusChanged{
		Common: transcript.Common{Stage: "review", ElapsedMs: t.ElapsedMs()},
		From:   string(ticket.StatusDrafting), To: string(ticket.StatusReviewing),
	})

	currentText := draft.Text
	claims := draft.Claims
	noInvention := draft.NoInvention
	evidenceRequired := t.Snapshot().EvidenceRequired
	failedProbes := failedProbeIDs(results)
	requiredEvidence := t.Snapshot().RequiredEvidence

	var history []review.JuniorVerification
	junior := review.NewJunior(o.Cfg.JuniorThreshold)
	senior := review.NewSenior()
	thresholds := gate.Thresholds{AcceptScore: o.Cfg.AcceptScore, MinGrounding: o.Cfg.MinGrounding, FallbackAcceptScore: o.Cfg.FallbackAcceptScore}

	maxRounds := o.Cfg.JuniorRoundsMax + o.Cfg.SeniorRoundsMax + 2

	for round := 0; round < maxRounds; round++ {
		groundingRatio := specialist.GroundingRatio(claims)
		// A draft with no grounded claims at all counts as evidence-required
		// for gating purposes even if the spine never enforced a probe for
		// this query: an answer that cites nothing real shouldn't pass
		// review just because the ticket's own route didn't demand evidence.
		in := reliability.Input{
			GroundingRatio:        groundingRatio,
			TotalClaims:           len(claims),
			EvidenceRequired:      evidenceRequired || groundingRatio == 0,
			NoInvention:           noInvention,
			Contradictions:        0,
			UnverifiableSpecifics: specialist.CountUnverifiableSpecifics(claims),
			BudgetExceeded:        budgetExceeded,
			Fallback:              fallback,
		}
		scored := reliability.Score(in)
		t.SetReliabilityScore(scored.Score)

		gateCtx := gate.Context{
			ReliabilityScore:      scored.Score,
			GroundingRatio:        in.GroundingRatio,
			TotalClaims:           in.TotalClaims,
			InventionDetected:     !noInvention,
			Contradictions:        in.Contradictions,
			UnverifiableSpecifics: in.UnverifiableSpecifics,
			EvidenceRequired:      in.EvidenceRequired,
			BudgetExceeded:        budgetExceeded,
			Fallback:              gate.Fallback(fallback),
		}
		outcome := gate.Gate(gateCtx, thresholds)
		logger.Debug("gate decision", "stage", "review", "round", round, "decision", string(outcome.Decision), "score", scored.Score)

		tr.Append(&transcript.ReviewGateDecision{
			Common:      transcript.Common{Stage: "review", ElapsedMs: t.ElapsedMs()},
			Decision:    string(outcome.Decision),
			Score:       scored.Score,
			Reasons:     gateIssuesToStrings(outcome.Reasons),
			RequiresLLM: outcome.RequiresLLM,
			Confidence:  outcome.Confidence,
		})

		switch outcome.Decision {

		case gate.DecisionAccept:
			t.SetDraft(currentText)
			t.SetStatus(ticket.StatusAnswered)
			tr.Append(&transcript.FinalAnswer{
				Common: transcript.Common{Stage: "review", ElapsedMs: t.ElapsedMs()},
				Status: string(ticket.StatusAnswered), ReliabilityScore: scored.Score,
			})
			logger.Info("ticket answered", "stage", "review", "score", scored.Score, "reviewer_outcome", "accepted")
			return o.buildResult(ticketID, t, tr, ticket.StatusAnswered, currentText, scored.Score, false, nil, results, fallback, "accepted")

		case gate.DecisionEscalate:
			t.SetStatus(ticket.StatusEscalating)
			tr.Append(&transcript.StatusChanged{
				Common: transcript.Common{Stage: "review", ElapsedMs: t.ElapsedMs()},
				From:   string(ticket.StatusReviewing), To: string(ticket.StatusEscalating),
			})
			logger.Warn("escalating to senior", "stage", "review", "round", round, "invention_detected", gateCtx.InventionDetected)

			history = append(history, review.JuniorVerification{Instruction: escalationInstruction(claims, in)})

			newText, newClaims, terminal, reason := o.escalateToSenior(t, tr, senior, history, currentText, claims, logger)
			if terminal {
				t.SetStatus(ticket.StatusClarifying)
				logger.Info("ticket needs clarification", "stage", "review", "reviewer_outcome", reason)
				return o.buildResult(ticketID, t, tr, ticket.StatusClarifying, currentText, scored.Score, true, clarificationFor(userText), results, fallback, reason)
			}
			currentText, claims = newText, newClaims
			noInvention = true
			t.SetStatus(ticket.StatusReviewing)
			tr.Append(&transcript.StatusChanged{
				Common: transcript.Common{Stage: "review", ElapsedMs: t.ElapsedMs()},
				From:   string(ticket.StatusEscalating), To: string(ticket.StatusReviewing),
			})
			continue

		case gate.DecisionRevise:
			t.SetStatus(ticket.StatusRevising)
			tr.Append(&transcript.StatusChanged{
				Common: transcript.Common{Stage: "review", ElapsedMs: t.ElapsedMs()},
				From:   string(ticket.StatusReviewing), To: string(ticket.StatusRevising),
			})

			if t.Snapshot().JuniorRounds >= o.Cfg.JuniorRoundsMax {
				t.SetStatus(ticket.StatusEscalating)
				tr.Append(&transcript.StatusChanged{
					Common: transcript.Common{Stage: "review", ElapsedMs: t.ElapsedMs()},
					From:   string(ticket.StatusRevising), To: string(ticket.StatusEscalating),
				})

				newText, newClaims, terminal, reason := o.escalateToSenior(t, tr, senior, history, currentText, claims, logger)
				if terminal {
					t.SetStatus(ticket.StatusClarifying)
					logger.Info("ticket needs clarification", "stage", "review", "reviewer_outcome", reason)
					return o.buildResult(ticketID, t, tr, ticket.StatusClarifying, currentText, scored.Score, true, clarificationFor(userText), results, fallback, reason)
				}
				currentText, claims = newText, newClaims
				noInvention = true
				t.SetStatus(ticket.StatusReviewing)
				tr.Append(&transcript.StatusChanged{
					Common: transcript.Common{Stage: "review", ElapsedMs: t.ElapsedMs()},
					From:   string(ticket.StatusEscalating), To: string(ticket.StatusReviewing),
				})
				continue
			}

			jRound := t.IncrementJuniorRounds()
			jv := junior.Verify(jRound, in, failedProbes, requiredEvidence)
			history = append(history, jv)
			tr.Append(&transcript.JuniorReview{
				Common: transcript.Common{Stage: "review", ElapsedMs: t.ElapsedMs()},
				Round:  jRound, Score: jv.Score, Verified: jv.Verified, Issues: reviewIssuesToStrings(jv.Instruction.Issues),
			})
			logger.Debug("junior review", "stage", "review", "round", jRound, "verified", jv.Verified, "score", jv.Score)

			if jv.Verified {
				t.SetDraft(currentText)
				t.SetStatus(ticket.StatusAnswered)
				tr.Append(&transcript.FinalAnswer{
					Common: transcript.Common{Stage: "review", ElapsedMs: t.ElapsedMs()},
					Status: string(ticket.StatusAnswered), ReliabilityScore: jv.Score,
				})
				logger.Info("ticket answered", "stage", "review", "score", jv.Score, "reviewer_outcome", "junior_verified")
				return o.buildResult(ticketID, t, tr, ticket.StatusAnswered, currentText, jv.Score, false, nil, results, fallback, "junior_verified")
			}

			currentText, claims = applyRevision(currentText, claims, jv.Instruction, tr, t)
			t.SetStatus(ticket.StatusReviewing)
			tr.Append(&transcript.StatusChanged{
				Common: transcript.Common{Stage: "review", ElapsedMs: t.ElapsedMs()},
				From:   string(ticket.StatusRevising), To: string(ticket.StatusReviewing),
			})
			continue

		default:
			// Gate never returns ClarifyUser directly (an "unclear" signal
			// folds into Revise with RequiresLLM set); nothing else reaches
			// here, but a future gate outcome value shouldn't loop silently.
			t.SetStatus(ticket.StatusClarifying)
			logger.Warn("unhandled gate decision", "stage", "review", "decision", string(outcome.Decision))
			return o.buildResult(ticketID, t, tr, ticket.StatusClarifying, currentText, scored.Score, true, clarificationFor(userText), results, fallback, "unhandled_gate_decision")
		}
	}

	t.SetStatus(ticket.StatusAbandoned)
	logger.Warn("ticket abandoned", "stage", "review", "reviewer_outcome", "round_budget_exhausted")
	return o.buildResult(ticketID, t, tr, ticket.StatusAbandoned, currentText, t.Snapshot().ReliabilityScore, false, nil, results, fallback, "round_budget_exhausted")
}

// escalateToSenior increments the ticket's senior round count, invokes
// senior review, and — if successful — applies the resulting instruction.
// terminal is true if the caller should stop at ClarifyUser: the senior
// round cap was already hit, or the senior reviewer found no recurring
// issue to act on.
func (o *Orchestrator) escalateToSenior(t *ticket.Ticket, tr *transcript.Transcript, senior *review.Senior, history []review.JuniorVerification, currentText string, claims []specialist.Claim, logger *slog.Logger) (newText string, newClaims []specialist.Claim, terminal bool, reason string) {
	if t.Snapshot().SeniorRounds >= o.Cfg.SeniorRoundsMax {
		logger.Warn("senior rounds exhausted", "stage", "review", "senior_rounds_max", o.Cfg.SeniorRoundsMax)
		return currentText, claims, true, "senior_rounds_exhausted"
	}
	round := t.IncrementSeniorRounds()

	esc := senior.Escalate(history)
	tr.Append(&transcript.SeniorEscalation{
		Common:     transcript.Common{Stage: "review", ElapsedMs: t.ElapsedMs()},
		Round:      round,
		Successful: esc.Successful,
		Reason:     esc.Reason,
	})
	logger.Debug("senior escalation", "stage", "review", "round", round, "successful", esc.Successful, "forbidden_claims", len(esc.Instruction.ForbiddenClaims))
	if !esc.Successful {
		return currentText, claims, true, "senior_no_actionable_issue"
	}

	text, revised := applyRevision(currentText, claims, esc.Instruction, tr, t)
	return text, revised, false, ""
}

// escalationInstruction builds the instruction fed into senior review's
// history the moment the gate itself escalates (invention or contradiction),
// before any junior round has run on this draft. Forbidding exactly the
// claims the specialist invented is what lets a single senior round remove
// a fabricated specific without a prior junior pass ever seeing it.
func escalationInstruction(claims []specialist.Claim, in reliability.Input) review.RevisionInstruction {
	if !in.NoInvention {
		var forbidden []string
		for _, c := range claims {
			if c.Evidence.Kind == specialist.SourceUngrounded && c.Evidence.Invented {
				forbidden = append(forbidden, c.Text)
			}
		}
		return review.RevisionInstruction{Issues: []review.Issue{review.IssueUnverifiableClaims}, ForbiddenClaims: forbidden}
	}
	if in.Contradictions > 0 {
		return review.RevisionInstruction{Issues: []review.Issue{review.IssueContradiction}}
	}
	return review.RevisionInstruction{Issues: []review.Issue{review.IssueTooVague}}
}

// applyRevision runs the deterministic applier over text, logs the change,
// and keeps claims in sync with the edited draft: forbidden claims are
// dropped, and an unmet required claim gets the same marker text Apply
// appended, so the next round's grounding ratio reflects what the draft
// actually says.
func applyRevision(text string, claims []specialist.Claim, instr review.RevisionInstruction, tr *transcript.Transcript, t *ticket.Ticket) (string, []specialist.Claim) {
	newText, changeLog := review.Apply(text, instr)
	tr.Append(&transcript.RevisionApplied{
		Common:    transcript.Common{Stage: "review", ElapsedMs: t.ElapsedMs()},
		ChangeLog: changeLog,
	})
	return newText, reviseClaims(claims, instr)
}

func reviseClaims(claims []specialist.Claim, instr review.RevisionInstruction) []specialist.Claim {
	forbidden := make(map[string]bool, len(instr.ForbiddenClaims))
	for _, f := range instr.ForbiddenClaims {
		forbidden[f] = true
	}

	out := make([]specialist.Claim, 0, len(claims))
	for _, c := range claims {
		if forbidden[c.Text] {
			continue
		}
		out = append(out, c)
	}

	for _, required := range instr.RequiredClaims {
		marker := review.RequiredClaimMarker(required)
		present := false
		for _, c := range out {
			if c.Text == marker {
				present = true
				break
			}
		}
		if !present {
			out = append(out, specialist.Claim{Text: marker, Evidence: specialist.Evidence{Kind: specialist.SourceUngrounded}})
		}
	}

	return out
}

func clarificationFor(userText string) *desk.ClarificationRequest {
	return &desk.ClarificationRequest{
		Question: fmt.Sprintf("I couldn't verify a reliable answer to %q. Could you narrow down what you're asking, or tell me which system detail matters most?", userText),
	}
}

// buildResult assembles the ServiceDeskResult for a terminal (or
// panic-abandoned) ticket. t may be nil only in the panic-recovery path,
// when the ticket itself was never constructed.
func (o *Orchestrator) buildResult(ticketID string, t *ticket.Ticket, tr *transcript.Transcript, status ticket.Status, answer string, score int, needsClarification bool, clarification *desk.ClarificationRequest, results []probe.Result, fallback reliability.Fallback, reviewerOutcome string) desk.Result {
	var buf strings.Builder
	_ = tr.WriteJSONLines(&buf)

	var domain string
	var requiredEvidence []probe.EvidenceKind
	var juniorRounds, seniorRounds int
	if t != nil {
		snap := t.Snapshot()
		domain = snap.Domain
		requiredEvidence = snap.RequiredEvidence
		juniorRounds = snap.JuniorRounds
		seniorRounds = snap.SeniorRounds
	}

	kinds := evidenceKindsToStrings(requiredEvidence)

	return desk.Result{
		TicketID:         ticketID,
		Domain:           domain,
		Status:           string(status),
		Answer:           answer,
		ReliabilityScore: score,
		Evidence: desk.Evidence{
			ProbesExecuted: executedProbeNames(results),
			EvidenceKinds:  kinds,
		},
		NeedsClarification:   needsClarification,
		ClarificationRequest: clarification,
		ExecutionTrace: desk.ExecutionTrace{
			EvidenceKinds:   kinds,
			FallbackUsed:    string(fallback),
			ReviewerOutcome: reviewerOutcome,
			JuniorRounds:    juniorRounds,
			SeniorRounds:    seniorRounds,
		},
		TranscriptJSONL: buf.String(),
	}
}

type transcriptProgress struct {
	tr *transcript.Transcript
	t  *ticket.Ticket
}

func (p transcriptProgress) ProbeStarted(id probe.ID) {
	p.tr.Append(&transcript.ProbeRunning{
		Common:  transcript.Common{Stage: "probes", ElapsedMs: p.t.ElapsedMs()},
		ProbeID: id.Canonical(),
	})
}

func (p transcriptProgress) ProbeFinished(id probe.ID, res probe.Result) {
	p.tr.Append(&transcript.ProbeComplete{
		Common:     transcript.Common{Stage: "probes", ElapsedMs: p.t.ElapsedMs()},
		ProbeID:    id.Canonical(),
		ExitCode:   res.ExitCode,
		DurationMs: res.DurationMs,
		TimedOut:   res.TimedOut,
	})
}

func failedProbeIDs(results []probe.Result) []probe.ID {
	var out []probe.ID
	for _, r := range results {
		if r.TimedOut || r.ExitCode != 0 {
			out = append(out, r.ID)
		}
	}
	return out
}

func executedProbeNames(results []probe.Result) []string {
	out := make([]string, 0, len(results))
	for _, r := range results {
		out = append(out, r.ID.Canonical())
	}
	return out
}

func evidenceKindsToStrings(kinds []probe.EvidenceKind) []string {
	out := make([]string, 0, len(kinds))
	for _, k := range kinds {
		out = append(out, string(k))
	}
	return out
}

func gateIssuesToStrings(issues []gate.Issue) []string {
	out := make([]string, 0, len(issues))
	for _, i := range issues {
		out = append(out, string(i))
	}
	return out
}

func reviewIssuesToStrings(issues []review.Issue) []string {
	out := make([]string, 0, len(issues))
	for _, i := range issues {
		out = append(out, string(i))
	}
	return out
}
