package ticket

import (
	"sync"
	"testing"

	"github.com/jjgarcianorway/anna/pkg/probe"
	"github.com/stretchr/testify/assert"
)

func newTestTicket() *Ticket {
	return New("tkt-1", "how much disk do I have", "storage", IntentQuestion,
		"system", "disk_usage", RiskReadOnly,
		[]probe.ID{probe.Df()}, []probe.EvidenceKind{probe.EvidenceDisk}, true)
}

func TestNewTicketStartsCreated(t *testing.T) {
	tk := newTestTicket()
	assert.Equal(t, StatusCreated, tk.Status())
	assert.Equal(t, "tkt-1", tk.ID())
}

func TestSnapshotReflectsCurrentState(t *testing.T) {
	tk := newTestTicket()
	tk.SetStatus(StatusProbing)
	tk.SetDraft("draft text")
	tk.SetReliabilityScore(72)

	snap := tk.Snapshot()
	assert.Equal(t, StatusProbing, snap.Status)
	assert.Equal(t, "draft text", snap.Draft)
	assert.Equal(t, 72, snap.ReliabilityScore)
	assert.Equal(t, []probe.ID{probe.Df()}, snap.PlannedProbes)
}

func TestSnapshotIsACopyNotAReference(t *testing.T) {
	tk := newTestTicket()
	snap := tk.Snapshot()
	snap.PlannedProbes[0] = probe.Free()

	assert.Equal(t, probe.Df(), tk.Snapshot().PlannedProbes[0], "mutating a snapshot must not affect the ticket")
}

func TestIncrementJuniorRounds(t *testing.T) {
	tk := newTestTicket()
	assert.Equal(t, 1, tk.IncrementJuniorRounds())
	assert.Equal(t, 2, tk.IncrementJuniorRounds())
	assert.Equal(t, 2, tk.Snapshot().JuniorRounds)
}

func TestIncrementSeniorRounds(t *testing.T) {
	tk := newTestTicket()
	assert.Equal(t, 1, tk.IncrementSeniorRounds())
}

func TestStatusTerminal(t *testing.T) {
	assert.True(t, StatusAnswered.Terminal())
	assert.True(t, StatusClarifying.Terminal())
	assert.True(t, StatusAbandoned.Terminal())
	assert.False(t, StatusProbing.Terminal())
	assert.False(t, StatusReviewing.Terminal())
}

func TestConcurrentMutatorsAreSafe(t *testing.T) {
	tk := newTestTicket()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tk.IncrementJuniorRounds()
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, tk.Snapshot().JuniorRounds)
}
