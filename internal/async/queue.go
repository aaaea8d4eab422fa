// Package async runs document extraction on a bounded worker pool. An
// Extractor holds no mutable state, so workers share one.
package async

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/joseph-ayodele/report-filer/internal/extract"
)

// ErrClosed is returned by Enqueue after Shutdown.
var ErrClosed = errors.New("queue is shutting down")

// Analyzer is satisfied by *extract.Extractor.
type Analyzer interface {
	Analyze(ctx context.Context, path string) (extract.Result, error)
}

// Job is one document to extract. Seq orders results for callers that
// need input order back.
type Job struct {
	Seq         int
	Path        string
	SubmittedAt time.Time
}

// Outcome pairs a job with its extraction result or error.
type Outcome struct {
	Job
	Result extract.Result
	Err    error
}

type ExtractQueue struct {
	base    context.Context
	an      Analyzer
	logger  *slog.Logger
	workers int
	timeout time.Duration

	ch   chan Job
	out  chan Outcome
	wg   sync.WaitGroup
	once sync.Once

	mu     sync.Mutex
	closed bool
}

type Option func(*ExtractQueue)

func WithWorkers(n int) Option {
	return func(q *ExtractQueue) {
		if n > 0 {
			q.workers = n
		}
	}
}

func WithQueueSize(n int) Option {
	return func(q *ExtractQueue) {
		if n > 0 {
			q.ch = make(chan Job, n)
		}
	}
}

func WithProcessTimeout(d time.Duration) Option {
	return func(q *ExtractQueue) {
		if d > 0 {
			q.timeout = d
		}
	}
}

// NewExtractQueue starts the workers. Each job runs under a timeout derived
// from ctx, so cancelling ctx stops extractions in flight. Outcomes are
// delivered on Results, which closes once Shutdown has drained every worker.
func NewExtractQueue(ctx context.Context, an Analyzer, logger *slog.Logger, opts ...Option) *ExtractQueue {
	if logger == nil {
		logger = slog.Default()
	}
	q := &ExtractQueue{
		base:    ctx,
		an:      an,
		logger:  logger,
		workers: 4,
		timeout: time.Minute,
		ch:      make(chan Job, 64),
		out:     make(chan Outcome, 64),
	}
	for _, o := range opts {
		o(q)
	}
	q.start()
	return q
}

func (q *ExtractQueue) start() {
	q.once.Do(func() {
		for i := 0; i < q.workers; i++ {
			q.wg.Add(1)
			go func(workerID int) {
				defer q.wg.Done()
				q.logger.Debug("worker started", "worker_id", workerID)

				for job := range q.ch {
					ctx, cancel := context.WithTimeout(q.base, q.timeout)
					res, err := q.an.Analyze(ctx, job.Path)
					cancel()

					if err != nil {
						q.logger.Error("extraction failed", "worker_id", workerID, "path", job.Path, "error", err)
					} else {
						q.logger.Debug("extracted document", "worker_id", workerID, "path", job.Path,
							"wait_ms", time.Since(job.SubmittedAt).Milliseconds())
					}
					q.out <- Outcome{Job: job, Result: res, Err: err}
				}

				q.logger.Debug("worker stopped", "worker_id", workerID)
			}(i + 1)
		}
		go func() {
			q.wg.Wait()
			close(q.out)
		}()
	})
}

// Results yields one Outcome per enqueued job, in completion order.
func (q *ExtractQueue) Results() <-chan Outcome { return q.out }

// Enqueue blocks while the queue is full.
func (q *ExtractQueue) Enqueue(ctx context.Context, job Job) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		q.logger.Warn("cannot enqueue: queue is shutting down", "path", job.Path)
		return ErrClosed
	}
	if job.SubmittedAt.IsZero() {
		job.SubmittedAt = time.Now()
	}
	select {
	case q.ch <- job:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Shutdown stops accepting jobs and waits for queued ones to finish or for
// ctx to end.
func (q *ExtractQueue) Shutdown(ctx context.Context) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	close(q.ch)
	q.mu.Unlock()

	done := make(chan struct{})
	go func() { defer close(done); q.wg.Wait() }()

	select {
	case <-ctx.Done():
		q.logger.Warn("shutdown interrupted by context")
	case <-done:
		q.logger.Debug("queue drained, shutdown complete")
	}
}

// ExtractAll analyzes every path on a fresh queue and returns the outcomes
// in input order.
func ExtractAll(ctx context.Context, an Analyzer, paths []string, logger *slog.Logger, opts ...Option) []Outcome {
	q := NewExtractQueue(ctx, an, logger, opts...)

	outcomes := make([]Outcome, 0, len(paths))
	collected := make(chan struct{})
	go func() {
		defer close(collected)
		for o := range q.Results() {
			outcomes = append(outcomes, o)
		}
	}()

	for i, p := range paths {
		if err := q.Enqueue(ctx, Job{Seq: i, Path: p}); err != nil {
			q.Shutdown(context.Background())
			<-collected
			// jobs never enqueued carry the enqueue error
			outcomes = append(outcomes, missing(paths, outcomes, err)...)
			return sorted(outcomes)
		}
	}
	q.Shutdown(context.Background())
	<-collected
	return sorted(outcomes)
}

func missing(paths []string, have []Outcome, err error) []Outcome {
	seen := make(map[int]bool, len(have))
	for _, o := range have {
		seen[o.Seq] = true
	}
	var out []Outcome
	for i, p := range paths {
		if !seen[i] {
			out = append(out, Outcome{Job: Job{Seq: i, Path: p}, Err: err})
		}
	}
	return out
}

func sorted(outcomes []Outcome) []Outcome {
	sort.Slice(outcomes, func(i, j int) bool { return outcomes[i].Seq < outcomes[j].Seq })
	return outcomes
}
