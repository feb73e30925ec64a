package orchestrator

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jjgarcianorway/anna/pkg/knowledge"
	"github.com/jjgarcianorway/anna/pkg/llm"
	"github.com/jjgarcianorway/anna/pkg/probe"
	"github.com/jjgarcianorway/anna/pkg/specialist"
	"github.com/jjgarcianorway/anna/pkg/translator"
)

// fakeRunner always succeeds, echoing the probe's own canonical id as its
// output, so tests can assert on which probes actually ran without shelling
// out to the real host.
type fakeRunner struct{}

func (fakeRunner) Run(_ context.Context, id probe.ID, _ int) (probe.Result, error) {
	command, _ := probe.CommandOf(id)
	return probe.Result{ID: id, Command: command, Output: "ok: " + id.Canonical(), ExitCode: 0, DurationMs: 1}, nil
}

func newTestOrchestrator() *Orchestrator {
	tr := translator.New(nil, 2*time.Second)
	exec := probe.NewExecutor(fakeRunner{}, probe.Budget{
		PerProbe: time.Second, Total: 2 * time.Second, Concurrency: 4, OutputCapBytes: 4096,
	})
	sp := specialist.New(nil, 2*time.Second)
	return New(tr, exec, sp, knowledge.ArchPack, DefaultConfig())
}

func TestHandleAcceptsGroundedSystemHealthQuery(t *testing.T) {
	o := newTestOrchestrator()
	result := o.Handle(context.Background(), "what's wrong with my system, any errors?")

	require.Equal(t, "answered", result.Status)
	assert.GreaterOrEqual(t, result.ReliabilityScore, 80)
	assert.False(t, result.NeedsClarification)
	assert.NotEmpty(t, result.Evidence.ProbesExecuted)
	assert.NotEmpty(t, result.Answer)
	assert.NotEmpty(t, result.TranscriptJSONL)
}

func TestHandleClarifiesOnVagueQueryWithNoEvidence(t *testing.T) {
	o := newTestOrchestrator()
	result := o.Handle(context.Background(), "what should I do today")

	require.Equal(t, "clarifying", result.Status)
	assert.True(t, result.NeedsClarification)
	require.NotNil(t, result.ClarificationRequest)
	assert.NotEmpty(t, result.ClarificationRequest.Question)
	assert.Equal(t, 2, result.ExecutionTrace.JuniorRounds)
	assert.Equal(t, 1, result.ExecutionTrace.SeniorRounds)
}

func TestHandleRedactsInventedClaimOnEscalation(t *testing.T) {
	tr := translator.New(nil, 2*time.Second)
	exec := probe.NewExecutor(fakeRunner{}, probe.Budget{
		PerProbe: time.Second, Total: 2 * time.Second, Concurrency: 4, OutputCapBytes: 4096,
	})
	client := llm.NewStubClient("[probe:totally_fake_probe] Your GPU is an Nvidia RTX 4090.")
	sp := specialist.New(client, 2*time.Second)
	o := New(tr, exec, sp, knowledge.ArchPack, DefaultConfig())

	result := o.Handle(context.Background(), "what's wrong with my system, any errors?")

	assert.GreaterOrEqual(t, result.ExecutionTrace.SeniorRounds, 1)
	assert.NotContains(t, result.Answer, "RTX 4090")
	assert.Contains(t, result.TranscriptJSONL, "removed claim")
}

func TestHandleNeverPanicsOnNilContextDeadline(t *testing.T) {
	o := newTestOrchestrator()
	assert.NotPanics(t, func() {
		o.Handle(context.Background(), "do I have firefox installed?")
	})
}
