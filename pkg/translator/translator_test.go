package translator

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jjgarcianorway/anna/pkg/llm"
	"github.com/jjgarcianorway/anna/pkg/ticket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslateWithNilClientUsesFallback(t *testing.T) {
	tr := New(nil, time.Second)
	out := tr.Translate(context.Background(), "how much memory do I have")

	assert.True(t, out.UsedFallback)
	assert.Equal(t, ticket.IntentQuestion, out.Intent)
	assert.Equal(t, "performance", out.Domain)
	assert.Empty(t, out.ProposedProbes)
}

func TestTranslateUsesLLMResponseWhenValid(t *testing.T) {
	stub := llm.NewStubClient(`{"intent":"question","domain":"performance","team":"Performance","route_class":"memory_usage","proposed_probes":["free"]}`)
	tr := New(stub, time.Second)

	out := tr.Translate(context.Background(), "how much memory do I have")

	require.False(t, out.UsedFallback)
	assert.Equal(t, ticket.IntentQuestion, out.Intent)
	assert.Equal(t, "Performance", out.Team)
	require.Len(t, out.ProposedProbes, 1)
	assert.Equal(t, "free", string(out.ProposedProbes[0].Name))
}

func TestTranslateToleratesProseWrappedJSON(t *testing.T) {
	stub := llm.NewStubClient("Sure, here you go:\n```json\n{\"intent\":\"question\",\"domain\":\"storage\",\"team\":\"Storage\",\"route_class\":\"disk_usage\",\"proposed_probes\":[]}\n```")
	tr := New(stub, time.Second)

	out := tr.Translate(context.Background(), "how much disk do I have")
	require.False(t, out.UsedFallback)
	assert.Equal(t, "Storage", out.Team)
}

func TestTranslateDropsInventedProbesWithoutFailing(t *testing.T) {
	stub := llm.NewStubClient(`{"intent":"question","domain":"performance","team":"Performance","route_class":"memory_usage","proposed_probes":["free","rm -rf /","not_a_probe"]}`)
	tr := New(stub, time.Second)

	out := tr.Translate(context.Background(), "memory check")
	require.False(t, out.UsedFallback)
	require.Len(t, out.ProposedProbes, 1)
	assert.Equal(t, "free", string(out.ProposedProbes[0].Name))
}

func TestTranslateFallsBackOnLLMFailure(t *testing.T) {
	stub := &llm.StubClient{Err: llm.Unavailable(errors.New("down"))}
	tr := New(stub, time.Second)

	out := tr.Translate(context.Background(), "how much memory do I have")
	assert.True(t, out.UsedFallback)
}

func TestTranslateFallsBackOnMalformedJSON(t *testing.T) {
	stub := llm.NewStubClient("not json at all")
	tr := New(stub, time.Second)

	out := tr.Translate(context.Background(), "how much memory do I have")
	assert.True(t, out.UsedFallback)
}

func TestTranslateFallsBackOnUnknownIntent(t *testing.T) {
	stub := llm.NewStubClient(`{"intent":"sabotage","domain":"performance","team":"Performance","route_class":"memory_usage","proposed_probes":[]}`)
	tr := New(stub, time.Second)

	out := tr.Translate(context.Background(), "how much memory do I have")
	assert.True(t, out.UsedFallback)
}

func TestTranslateFallsBackOnMissingFields(t *testing.T) {
	stub := llm.NewStubClient(`{"intent":"question","domain":"","team":"Performance","route_class":"memory_usage","proposed_probes":[]}`)
	tr := New(stub, time.Second)

	out := tr.Translate(context.Background(), "how much memory do I have")
	assert.True(t, out.UsedFallback)
}

func TestFallbackNeverProposesProbes(t *testing.T) {
	tr := New(nil, time.Second)
	out := tr.Translate(context.Background(), "do i have nano installed")
	assert.Empty(t, out.ProposedProbes, "spec requires the deterministic fallback to emit an empty probe list")
}
