package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
)

// Processor converts one input file into one output file.
type Processor interface {
	// Accepts reports whether the processor handles path at all.
	Accepts(path string) bool
	// Output maps an input path to its output path.
	Output(path string) string
	Process(ctx context.Context, input, output string) error
}

// BatchResult summarizes a Runner.Run call.
type BatchResult struct {
	Processed int
	Skipped   int
	Failed    int
	Items     []ItemSnapshot
}

// Err joins the errors of all failed items, or returns nil.
func (r BatchResult) Err() error {
	var errs []error
	for _, it := range r.Items {
		if it.Status == StatusFailed {
			errs = append(errs, fmt.Errorf("%s: %w", it.Input, it.Err))
		}
	}
	return errors.Join(errs...)
}

// Runner feeds files to a Processor from a pool of worker goroutines.
type Runner struct {
	proc    Processor
	workers int
	log     *slog.Logger

	// OnDone, when set, is called after each item settles. Calls are
	// serialized.
	OnDone func(ItemSnapshot)
	doneMu sync.Mutex
}

func NewRunner(proc Processor, workers int, log *slog.Logger) *Runner {
	if workers <= 0 {
		workers = 1
	}
	return &Runner{proc: proc, workers: workers, log: log}
}

// Run processes inputs and waits for all of them. Inputs the processor does
// not accept and inputs whose output already exists are skipped. A failing
// item never stops the others.
func (r *Runner) Run(ctx context.Context, inputs []string) BatchResult {
	items := make([]*Item, 0, len(inputs))
	queue := make(chan *Item, len(inputs))

	for _, in := range inputs {
		if !r.proc.Accepts(in) {
			it := newItem(in, "")
			it.SetStatus(StatusSkipped, "unsupported file type")
			items = append(items, it)
			r.done(it)
			continue
		}
		it := newItem(in, r.proc.Output(in))
		items = append(items, it)
		if _, err := os.Stat(it.Output); err == nil {
			it.SetStatus(StatusSkipped, "output exists")
			r.done(it)
			continue
		}
		queue <- it
	}
	close(queue)

	var wg sync.WaitGroup
	for range r.workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for it := range queue {
				r.process(ctx, it)
			}
		}()
	}
	wg.Wait()

	var res BatchResult
	for _, it := range items {
		snap := it.Snapshot()
		switch snap.Status {
		case StatusCompleted:
			res.Processed++
		case StatusSkipped:
			res.Skipped++
		case StatusFailed:
			res.Failed++
		}
		res.Items = append(res.Items, snap)
	}
	return res
}

func (r *Runner) process(ctx context.Context, it *Item) {
	log := r.log.With("input", it.Input, "output", it.Output)
	if err := ctx.Err(); err != nil {
		it.Fail(err)
		r.done(it)
		return
	}

	it.SetStatus(StatusProcessing, "")
	log.Info("processing")
	if err := r.proc.Process(ctx, it.Input, it.Output); err != nil {
		log.Error("processing failed", "error", err)
		it.Fail(err)
	} else {
		log.Info("completed")
		it.SetStatus(StatusCompleted, "")
	}
	r.done(it)
}

func (r *Runner) done(it *Item) {
	snap := it.Snapshot()
	if snap.Status == StatusSkipped {
		r.log.Debug("skipped", "input", snap.Input, "reason", snap.Reason)
	}
	if r.OnDone != nil {
		r.doneMu.Lock()
		r.OnDone(snap)
		r.doneMu.Unlock()
	}
}
