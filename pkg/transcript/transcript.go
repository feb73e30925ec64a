package transcript

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"sync"
)

// MaxEvents caps the number of events retained per ticket. Once reached,
// further appends are dropped and replaced by a single coalescing marker so
// a runaway ticket cannot grow its transcript without bound.
const MaxEvents = 256

// Transcript is the append-only event log for one ticket. It is owned
// exclusively by the orchestrator for the lifetime of the ticket it belongs
// to, mirroring the teacher's single-owner Session in pkg/session/types.go —
// callers elsewhere in the pipeline receive a *Transcript to append to, never
// a copy, and never hold one past the ticket's lifetime. The mutex exists
// because the probe executor's goroutines append progress events
// concurrently with each other and with the orchestrator goroutine.
type Transcript struct {
	mu       sync.Mutex
	ticketID string
	events   []Event
	capped   bool
	lastMs   int64
}

// New returns an empty transcript for the given ticket.
func New(ticketID string) *Transcript {
	return &Transcript{ticketID: ticketID}
}

// Append records ev. ElapsedMs on ev.Base() must be >= the elapsed_ms of the
// previously appended event; Append clamps it upward to preserve strict
// monotonicity rather than rejecting the event, since callers compute
// elapsed time from a wall clock and two events can legitimately race to the
// same millisecond.
//
// Once MaxEvents events have been recorded, Append records nothing further
// except a single trailing Message noting that the transcript was capped.
func (t *Transcript) Append(ev Event) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.capped {
		return
	}

	base := ev.Base()
	if base.TicketID == "" {
		base.TicketID = t.ticketID
	}
	if base.ElapsedMs < t.lastMs {
		base.ElapsedMs = t.lastMs
	}
	t.lastMs = base.ElapsedMs

	if len(t.events) >= MaxEvents {
		t.capped = true
		t.events = append(t.events, &Message{
			Common: Common{
				TicketID:  t.ticketID,
				Stage:     base.Stage,
				ElapsedMs: t.lastMs,
			},
			Text: NewDiagnosticText("transcript capped at maximum event count"),
		})
		return
	}

	t.events = append(t.events, ev)
}

// Events returns a snapshot slice of the events recorded so far. The slice
// is a copy; mutating it does not affect the transcript.
func (t *Transcript) Events() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]Event, len(t.events))
	copy(out, t.events)
	return out
}

// Len reports how many events have been recorded, including the coalescing
// marker if the transcript is capped.
func (t *Transcript) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.events)
}

// Capped reports whether the event cap has been reached.
func (t *Transcript) Capped() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.capped
}

// envelope is the on-wire shape of one transcript line: the discriminant
// plus the variant's own fields nested as an object under "event".
type envelope struct {
	Kind  Kind            `json:"kind"`
	Event json.RawMessage `json:"event"`
}

// WriteJSONLines serializes the transcript as newline-delimited JSON, one
// event per line, in append order. This is the on-disk/on-wire transcript
// format referenced by spec.md §3.
func (t *Transcript) WriteJSONLines(w io.Writer) error {
	t.mu.Lock()
	events := make([]Event, len(t.events))
	copy(events, t.events)
	t.mu.Unlock()

	bw := bufio.NewWriter(w)
	for _, ev := range events {
		raw, err := json.Marshal(ev)
		if err != nil {
			return fmt.Errorf("marshal event kind %q: %w", ev.Kind(), err)
		}
		env := envelope{Kind: ev.Kind(), Event: raw}
		line, err := json.Marshal(env)
		if err != nil {
			return fmt.Errorf("marshal envelope kind %q: %w", ev.Kind(), err)
		}
		if _, err := bw.Write(line); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}
