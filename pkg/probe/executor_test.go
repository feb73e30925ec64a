package probe

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRunner returns a canned result per probe name and tracks concurrency,
// so executor tests never shell out.
type fakeRunner struct {
	mu          sync.Mutex
	inFlight    int32
	maxInFlight int32
	delay       time.Duration
	results     map[Name]Result
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{results: make(map[Name]Result)}
}

func (f *fakeRunner) Run(ctx context.Context, id ID, outputCapBytes int) (Result, error) {
	cur := atomic.AddInt32(&f.inFlight, 1)
	defer atomic.AddInt32(&f.inFlight, -1)

	f.mu.Lock()
	if cur > f.maxInFlight {
		f.maxInFlight = cur
	}
	f.mu.Unlock()

	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return Result{ID: id, TimedOut: true, ExitCode: SpawnFailureExitCode}, nil
		}
	}

	if res, ok := f.results[id.Name]; ok {
		res.ID = id
		return res, nil
	}
	return Result{ID: id, ExitCode: 0, Output: "ok"}, nil
}

func TestExecutorRunReturnsResultPerProbe(t *testing.T) {
	runner := newFakeRunner()
	exec := NewExecutor(runner, Budget{Concurrency: 4, PerProbe: time.Second, Total: time.Second})

	ids := []ID{Lscpu(), Free(), Df()}
	results := exec.Run(context.Background(), ids, nil)

	require.Len(t, results, 3)
	for i, id := range ids {
		assert.Equal(t, id, results[i].ID)
		assert.Equal(t, 0, results[i].ExitCode)
	}
}

func TestExecutorRespectsConcurrencyLimit(t *testing.T) {
	runner := newFakeRunner()
	runner.delay = 30 * time.Millisecond

	exec := NewExecutor(runner, Budget{Concurrency: 2, PerProbe: time.Second, Total: time.Second})

	ids := []ID{Lscpu(), Free(), Df(), Lsblk(), Sensors(), IPAddr()}
	exec.Run(context.Background(), ids, nil)

	assert.LessOrEqual(t, runner.maxInFlight, int32(2))
}

func TestExecutorEnforcesTotalBudget(t *testing.T) {
	runner := newFakeRunner()
	runner.delay = 200 * time.Millisecond

	exec := NewExecutor(runner, Budget{Concurrency: 1, PerProbe: time.Second, Total: 50 * time.Millisecond})

	ids := []ID{Lscpu(), Free(), Df()}
	results := exec.Run(context.Background(), ids, nil)

	require.Len(t, results, 3)
	timedOut := 0
	for _, r := range results {
		if r.TimedOut {
			timedOut++
		}
	}
	assert.Greater(t, timedOut, 0, "at least one probe should be cut off by the total budget")
}

type recordingProgress struct {
	mu       sync.Mutex
	started  []ID
	finished []ID
}

func (p *recordingProgress) ProbeStarted(id ID) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.started = append(p.started, id)
}

func (p *recordingProgress) ProbeFinished(id ID, _ Result) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.finished = append(p.finished, id)
}

func TestExecutorReportsProgress(t *testing.T) {
	runner := newFakeRunner()
	exec := NewExecutor(runner, Budget{Concurrency: 2, PerProbe: time.Second, Total: time.Second})
	prog := &recordingProgress{}

	ids := []ID{Lscpu(), Free()}
	exec.Run(context.Background(), ids, prog)

	assert.Len(t, prog.started, 2)
	assert.Len(t, prog.finished, 2)
}

func TestExecutorDefaultsConcurrencyToOne(t *testing.T) {
	exec := NewExecutor(newFakeRunner(), Budget{})
	assert.Equal(t, 1, exec.budget.Concurrency)
}
