package transcript

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressEventConstructors(t *testing.T) {
	assert.Equal(t, ProgressStarting, NewStarting(30).Type)
	assert.Equal(t, 30, NewStarting(30).TimeoutSec)

	running := NewProbeRunning("free")
	assert.Equal(t, ProgressProbeRunning, running.Type)
	assert.Equal(t, "free", running.ProbeID)
	assert.Equal(t, StageProbes, running.Stage)

	complete := NewProbeComplete("df", 0, 42)
	assert.Equal(t, ProgressProbeComplete, complete.Type)
	assert.Equal(t, 0, complete.ExitCode)
	assert.Equal(t, int64(42), complete.DurationMs)

	assert.Equal(t, ProgressComplete, NewComplete().Type)
	assert.Equal(t, ProgressTimeout, NewTimeout(StageSpecialist).Type)
}

func TestProgressEventErrorDetailIsCapped(t *testing.T) {
	ev := NewError(StageReview, strings.Repeat("x", 1000))
	assert.LessOrEqual(t, len(ev.Detail.String()), MaxDiagnosticBytes)
}

func TestProgressEventSerializedSizeBudget(t *testing.T) {
	ev := NewError(StageSpecialist, strings.Repeat("y", 1000))
	data, err := json.Marshal(ev)
	require.NoError(t, err)
	assert.Less(t, len(data), 512, "progress events must stay well under the size budget")
}

func TestProgressEventOmitsZeroFields(t *testing.T) {
	data, err := json.Marshal(NewComplete())
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	_, hasProbeID := raw["probe_id"]
	assert.False(t, hasProbeID, "complete events carry no probe-specific fields")
}
