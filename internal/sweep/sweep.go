package sweep

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sort"
	"sync"
	"time"

	"roomsim/internal/logging"
	"roomsim/internal/sims/room"
)

// Result pairs a job with the report of its run.
type Result struct {
	Job    Job         `json:"job"`
	Report room.Report `json:"report"`
}

// Runner executes jobs on a fixed pool of goroutines.
type Runner struct {
	// Workers is the pool size; values below 1 use runtime.NumCPU.
	Workers int
	Logger  *slog.Logger
}

// Run executes every job and returns the results ordered by job index, so
// the output does not depend on scheduling. Cancelling ctx stops handing
// out jobs; runs already started finish and the context error is returned.
func (r Runner) Run(ctx context.Context, jobs []Job) ([]Result, error) {
	workers := r.Workers
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	workers = min(workers, max(len(jobs), 1))
	log := r.Logger
	if log == nil {
		log = logging.Discard()
	}

	queue := make(chan Job)
	results := make(chan Result)
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range queue {
				res, err := runJob(job)
				if err != nil {
					mu.Lock()
					if firstErr == nil {
						firstErr = err
					}
					mu.Unlock()
					continue
				}
				log.Debug("run finished",
					"job", job.Index,
					"combo", job.Combo,
					"iteration", job.Iteration,
					"percent_cleaned", res.Report.PercentCleaned,
					"steps", res.Report.Steps)
				results <- res
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		defer close(queue)
		for _, job := range jobs {
			select {
			case queue <- job:
			case <-ctx.Done():
				return
			}
		}
	}()

	start := time.Now()
	all := make([]Result, 0, len(jobs))
	for res := range results {
		all = append(all, res)
	}
	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sort.Slice(all, func(i, j int) bool { return all[i].Job.Index < all[j].Job.Index })
	log.Info("sweep finished",
		"runs", len(all),
		"workers", workers,
		"elapsed", time.Since(start).Round(time.Millisecond))
	return all, nil
}

func runJob(job Job) (Result, error) {
	sim, err := room.New(job.Config)
	if err != nil {
		return Result{}, fmt.Errorf("job %d: %w", job.Index, err)
	}
	return Result{Job: job, Report: sim.Run()}, nil
}
