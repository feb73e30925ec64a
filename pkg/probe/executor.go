package probe

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

var logger = slog.With("component", "probe_executor")

// Progress is the callback an Executor uses to surface probe lifecycle
// events. The orchestrator wires this to append transcript events and
// publish ProgressEvents; tests can pass a no-op.
type Progress interface {
	ProbeStarted(id ID)
	ProbeFinished(id ID, result Result)
}

// NoopProgress discards every callback. Useful in tests that only care
// about the returned results.
type NoopProgress struct{}

func (NoopProgress) ProbeStarted(ID)          {}
func (NoopProgress) ProbeFinished(ID, Result) {}

// Budget bounds one batch of probe execution.
type Budget struct {
	// PerProbe is the maximum duration any single probe may run.
	PerProbe time.Duration
	// Total is the maximum duration the whole batch may run, regardless of
	// how many probes are still pending.
	Total time.Duration
	// Concurrency is the maximum number of probes running at once.
	Concurrency int
	// OutputCapBytes bounds each probe's captured output.
	OutputCapBytes int
}

// Executor runs a batch of probes concurrently, bounded by Budget, and
// reports progress as each probe starts and finishes. Grounded on the
// teacher's MCP ToolExecutor (pkg/mcp/executor.go) for the shape of a
// thin struct wrapping a capability interface, and on the bounded
// concurrent-dispatch pattern used for sub-agent orchestration.
type Executor struct {
	runner Runner
	budget Budget
}

// NewExecutor returns an Executor that runs probes via runner under budget.
func NewExecutor(runner Runner, budget Budget) *Executor {
	if budget.Concurrency <= 0 {
		budget.Concurrency = 1
	}
	return &Executor{runner: runner, budget: budget}
}

// Run executes every id in ids, respecting e.budget.Concurrency concurrent
// probes and e.budget.Total for the whole batch. It always returns exactly
// len(ids) results, in the same order as ids — a probe that never got a
// chance to start because Total's deadline expired first is recorded as a
// timed-out result with SpawnFailureExitCode, never silently dropped.
func (e *Executor) Run(ctx context.Context, ids []ID, progress Progress) []Result {
	if progress == nil {
		progress = NoopProgress{}
	}

	logger.Debug("running probe batch", "stage", "probes", "count", len(ids), "concurrency", e.budget.Concurrency)

	results := make([]Result, len(ids))

	batchCtx := ctx
	var cancel context.CancelFunc
	if e.budget.Total > 0 {
		batchCtx, cancel = context.WithTimeout(ctx, e.budget.Total)
		defer cancel()
	}

	g, gctx := errgroup.WithContext(batchCtx)
	g.SetLimit(e.budget.Concurrency)

	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			// A sibling probe's hard failure must not cancel this one; only
			// the batch deadline or caller cancellation should.
			if gctx.Err() != nil {
				results[i] = timedOutResult(id)
				return nil
			}

			progress.ProbeStarted(id)

			probeCtx := gctx
			var probeCancel context.CancelFunc
			if e.budget.PerProbe > 0 {
				probeCtx, probeCancel = context.WithTimeout(gctx, e.budget.PerProbe)
				defer probeCancel()
			}

			res, err := e.runner.Run(probeCtx, id, e.budget.OutputCapBytes)
			if err != nil {
				logger.Warn("probe failed", "stage", "probes", "probe", id.Canonical(), "error", err)
				res = Result{
					ID:       id,
					ExitCode: SpawnFailureExitCode,
					Output:   err.Error(),
				}
			}
			results[i] = res
			progress.ProbeFinished(id, res)
			return nil
		})
	}

	// Errors are never returned by the goroutines above; results are always
	// recorded in-slice even on failure, so the group error is unused here.
	_ = g.Wait()

	for i, id := range ids {
		if results[i].ID.Name == "" {
			logger.Warn("probe never ran before batch deadline", "stage", "probes", "probe", id.Canonical())
			results[i] = timedOutResult(id)
		}
	}

	return results
}

func timedOutResult(id ID) Result {
	command, _ := CommandOf(id)
	return Result{
		ID:       id,
		Command:  command,
		ExitCode: SpawnFailureExitCode,
		TimedOut: true,
		Output:   "probe did not run before batch deadline elapsed",
	}
}
