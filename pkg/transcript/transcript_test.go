package transcript

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranscriptAppendAndEvents(t *testing.T) {
	tr := New("tkt-1")
	tr.Append(&TicketCreated{
		Common: Common{Stage: "translator", ElapsedMs: 0},
		Domain: "memory", Intent: "diagnose", Team: "system", Risk: "low",
	})
	tr.Append(&StatusChanged{
		Common: Common{Stage: "probes", ElapsedMs: 10},
		From:   "created", To: "probing",
	})

	events := tr.Events()
	require.Len(t, events, 2)
	assert.Equal(t, KindTicketCreated, events[0].Kind())
	assert.Equal(t, KindStatusChanged, events[1].Kind())
	assert.Equal(t, "tkt-1", events[0].Base().TicketID)
}

func TestTranscriptEnforcesMonotonicElapsed(t *testing.T) {
	tr := New("tkt-1")
	tr.Append(&Message{Common: Common{ElapsedMs: 100}, Text: NewDiagnosticText("first")})
	tr.Append(&Message{Common: Common{ElapsedMs: 50}, Text: NewDiagnosticText("second")})

	events := tr.Events()
	require.Len(t, events, 2)
	assert.Equal(t, int64(100), events[0].Base().ElapsedMs)
	assert.Equal(t, int64(100), events[1].Base().ElapsedMs, "elapsed_ms must never regress")
}

func TestTranscriptCapsEventCount(t *testing.T) {
	tr := New("tkt-1")
	for i := 0; i < MaxEvents+10; i++ {
		tr.Append(&Message{Common: Common{ElapsedMs: int64(i)}, Text: NewDiagnosticText("event")})
	}

	events := tr.Events()
	assert.Len(t, events, MaxEvents+1, "capped events plus one coalescing marker")
	assert.True(t, tr.Capped())

	last := events[len(events)-1]
	msg, ok := last.(*Message)
	require.True(t, ok)
	assert.Contains(t, msg.Text.String(), "capped")

	tr.Append(&Message{Common: Common{ElapsedMs: 9999}, Text: NewDiagnosticText("dropped")})
	assert.Len(t, tr.Events(), MaxEvents+1, "appends after capping must be silently dropped")
}

func TestTranscriptWriteJSONLines(t *testing.T) {
	tr := New("tkt-1")
	tr.Append(&TicketCreated{
		Common: Common{Stage: "translator"},
		Domain: "memory", Intent: "diagnose", Team: "system", Risk: "low",
	})
	tr.Append(&FinalAnswer{
		Common: Common{Stage: "review", ElapsedMs: 20},
		Status: "answered", ReliabilityScore: 90,
	})

	var buf bytes.Buffer
	require.NoError(t, tr.WriteJSONLines(&buf))

	lines := bytes.Split(bytes.TrimRight(buf.Bytes(), "\n"), []byte("\n"))
	require.Len(t, lines, 2)

	var env envelope
	require.NoError(t, json.Unmarshal(lines[0], &env))
	assert.Equal(t, KindTicketCreated, env.Kind)

	require.NoError(t, json.Unmarshal(lines[1], &env))
	assert.Equal(t, KindFinalAnswer, env.Kind)
}

func TestTranscriptLen(t *testing.T) {
	tr := New("tkt-1")
	assert.Equal(t, 0, tr.Len())
	tr.Append(&Message{Text: NewDiagnosticText("x")})
	assert.Equal(t, 1, tr.Len())
}
