// Package ticket defines the unit of work that flows through the pipeline:
// its immutable request attributes, its mutable state-machine fields, and
// the transitions between its statuses.
package ticket

import (
	"sync"
	"time"

	"github.com/jjgarcianorway/anna/pkg/probe"
)

// Intent classifies what kind of request the user made.
type Intent string

const (
	IntentQuestion    Intent = "question"
	IntentInvestigate Intent = "investigate"
	IntentRequest     Intent = "request"
)

// RiskLevel classifies how much latitude a ticket has to change the system.
// RiskFor gives Question and Investigate tickets ReadOnly and Request
// tickets LowRiskChange; HighRiskChange is never produced here and is
// carried so the orchestrator's output can be consumed by the separate
// action-plan execution engine without a schema change.
type RiskLevel string

const (
	RiskReadOnly       RiskLevel = "read_only"
	RiskLowRiskChange  RiskLevel = "low_risk_change"
	RiskHighRiskChange RiskLevel = "high_risk_change"
)

// Status is a Ticket's place in the state machine described in spec §4.11.
type Status string

const (
	StatusCreated     Status = "created"
	StatusProbing     Status = "probing"
	StatusDrafting    Status = "drafting"
	StatusReviewing   Status = "reviewing"
	StatusRevising    Status = "revising"
	StatusEscalating  Status = "escalating"
	StatusAnswered    Status = "answered"
	StatusClarifying  Status = "clarifying"
	StatusAbandoned   Status = "abandoned"
)

// RiskFor derives the risk level a ticket is created with from its intent.
// Question and Investigate never change system state; Request may, so it
// starts at LowRiskChange rather than ReadOnly.
func RiskFor(intent Intent) RiskLevel {
	switch intent {
	case IntentRequest:
		return RiskLowRiskChange
	default:
		return RiskReadOnly
	}
}

// Terminal reports whether s is one of the pipeline's terminal statuses.
func (s Status) Terminal() bool {
	switch s {
	case StatusAnswered, StatusClarifying, StatusAbandoned:
		return true
	default:
		return false
	}
}

// Ticket is the single unit of work the orchestrator owns exclusively for
// its lifetime. Mirrors the teacher's single-owner Session
// (pkg/session/types.go): mutators take the lock, readers get a Snapshot
// copy, and no caller outside the orchestrator holds a *Ticket across
// suspension points.
type Ticket struct {
	mu sync.Mutex

	id        string
	createdAt time.Time

	// Immutable request attributes, set once at creation.
	userText         string
	domain           string
	intent           Intent
	team             string
	routeClass       string
	risk             RiskLevel
	plannedProbes    []probe.ID
	requiredEvidence []probe.EvidenceKind
	evidenceRequired bool

	// Mutable state-machine fields.
	status           Status
	juniorRounds     int
	seniorRounds     int
	draft            string
	reliabilityScore int
}

// New creates a Ticket in StatusCreated with the given immutable attributes.
func New(id, userText, domain string, intent Intent, team, routeClass string, risk RiskLevel, plannedProbes []probe.ID, requiredEvidence []probe.EvidenceKind, evidenceRequired bool) *Ticket {
	return &Ticket{
		id:               id,
		createdAt:        time.Now(),
		userText:         userText,
		domain:           domain,
		intent:           intent,
		team:             team,
		routeClass:       routeClass,
		risk:             risk,
		plannedProbes:    plannedProbes,
		requiredEvidence: requiredEvidence,
		evidenceRequired: evidenceRequired,
		status:           StatusCreated,
	}
}

// Snapshot is an immutable copy of a Ticket's fields, safe to read and pass
// around without holding the Ticket's lock.
type Snapshot struct {
	ID               string
	UserText         string
	Domain           string
	Intent           Intent
	Team             string
	RouteClass       string
	Risk             RiskLevel
	PlannedProbes    []probe.ID
	RequiredEvidence []probe.EvidenceKind
	EvidenceRequired bool
	Status           Status
	JuniorRounds     int
	SeniorRounds     int
	Draft            string
	ReliabilityScore int
}

// Snapshot returns a copy of t's current state.
func (t *Ticket) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	return Snapshot{
		ID:               t.id,
		UserText:         t.userText,
		Domain:           t.domain,
		Intent:           t.intent,
		Team:             t.team,
		RouteClass:       t.routeClass,
		Risk:             t.risk,
		PlannedProbes:    append([]probe.ID(nil), t.plannedProbes...),
		RequiredEvidence: append([]probe.EvidenceKind(nil), t.requiredEvidence...),
		EvidenceRequired: t.evidenceRequired,
		Status:           t.status,
		JuniorRounds:     t.juniorRounds,
		SeniorRounds:     t.seniorRounds,
		Draft:            t.draft,
		ReliabilityScore: t.reliabilityScore,
	}
}

// ID returns the ticket's identity without taking the lock (it is set once
// at construction and never mutated).
func (t *Ticket) ID() string { return t.id }

// ElapsedMs returns milliseconds since ticket creation, for stamping
// transcript events.
func (t *Ticket) ElapsedMs() int64 {
	return time.Since(t.createdAt).Milliseconds()
}

// SetStatus transitions the ticket to status.
func (t *Ticket) SetStatus(status Status) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.status = status
}

// Status returns the ticket's current status.
func (t *Ticket) Status() Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status
}

// SetDraft replaces the current draft answer.
func (t *Ticket) SetDraft(draft string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.draft = draft
}

// SetReliabilityScore records the most recent scorer output.
func (t *Ticket) SetReliabilityScore(score int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.reliabilityScore = score
}

// IncrementJuniorRounds increments and returns the new junior round count.
func (t *Ticket) IncrementJuniorRounds() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.juniorRounds++
	return t.juniorRounds
}

// IncrementSeniorRounds increments and returns the new senior round count.
func (t *Ticket) IncrementSeniorRounds() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.seniorRounds++
	return t.seniorRounds
}
