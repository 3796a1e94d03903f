package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"assethunt-engine/internal/domain"
	"assethunt-engine/internal/pipeline"
)

const (
	DefaultConcurrency = 5
	DefaultSubmitDelay = 100 * time.Millisecond
)

// Manager is the part of the download manager the dispatcher needs.
type Manager interface {
	Probe(ctx context.Context) bool
	Submit(ctx context.Context, job domain.DownloadJob) (string, error)
}

type Config struct {
	OutputRoot       string
	Concurrency      int
	SubmitDelay      time.Duration
	DefaultExtension string
}

type Dispatcher struct {
	cfg    Config
	mgr    Manager
	logger *slog.Logger
}

func New(cfg Config, mgr Manager, logger *slog.Logger) *Dispatcher {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = DefaultConcurrency
	}
	if cfg.SubmitDelay < 0 {
		cfg.SubmitDelay = 0
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Dispatcher{cfg: cfg, mgr: mgr, logger: logger.With("component", "dispatch")}
}

// Report partitions job outcomes. Reachable is false when the probe failed
// and nothing was submitted.
type Report struct {
	Successful []domain.JobOutcome `json:"successful"`
	Failed     []domain.JobOutcome `json:"failed"`
	Reachable  bool                `json:"reachable"`
}

func (r Report) Total() int { return len(r.Successful) + len(r.Failed) }

// Err summarizes the batch: nil when at least one job was added.
func (r Report) Err() error {
	switch {
	case len(r.Successful) > 0:
		return nil
	case !r.Reachable:
		return pipeline.Wrap(pipeline.ErrConnectivity, "dispatch", "probe", fmt.Sprintf("%d jobs not submitted", len(r.Failed)), nil)
	case len(r.Failed) == 0:
		return pipeline.Wrap(pipeline.ErrNoJobsAdded, "dispatch", "", "nothing to submit", nil)
	default:
		return pipeline.Wrap(pipeline.ErrNoJobsAdded, "dispatch", "", fmt.Sprintf("all %d submissions failed", len(r.Failed)), nil)
	}
}

// Validate rejects resources that cannot become jobs. It runs before any
// network activity.
func Validate(rs []domain.Resource) error {
	var errs []error
	for i, r := range rs {
		if r.Title == "" {
			errs = append(errs, fmt.Errorf("resource %d: missing title", i))
		}
		if r.DownloadURL == "" {
			errs = append(errs, fmt.Errorf("resource %d: missing download_url", i))
		}
	}
	if len(errs) > 0 {
		return pipeline.Wrap(pipeline.ErrInput, "dispatch", "validate", "", errors.Join(errs...))
	}
	return nil
}

// Dispatch probes the manager, then submits every resource through a bounded
// worker pool. Each worker pauses SubmitDelay after each submission. Every
// resource ends up in exactly one partition.
func (d *Dispatcher) Dispatch(ctx context.Context, rs []domain.Resource) Report {
	if len(rs) == 0 {
		return Report{Reachable: true}
	}

	if !d.mgr.Probe(ctx) {
		d.logger.Warn("download manager unreachable, nothing submitted", "jobs", len(rs))
		rep := Report{Failed: make([]domain.JobOutcome, 0, len(rs))}
		err := pipeline.Wrap(pipeline.ErrConnectivity, "dispatch", "probe", "", nil)
		for _, r := range rs {
			rep.Failed = append(rep.Failed, failed(BuildJob(d.cfg.OutputRoot, r, d.cfg.DefaultExtension), err))
		}
		return rep
	}

	workers := min(d.cfg.Concurrency, len(rs))
	workCh := make(chan domain.Resource)
	outCh := make(chan domain.JobOutcome, len(rs))

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for r := range workCh {
				outCh <- d.submit(ctx, r)
				d.pause(ctx)
			}
		}()
	}

	go func() {
		defer close(workCh)
		for _, r := range rs {
			workCh <- r
		}
	}()

	wg.Wait()
	close(outCh)

	rep := Report{Reachable: true}
	for o := range outCh {
		if o.OK {
			rep.Successful = append(rep.Successful, o)
		} else {
			rep.Failed = append(rep.Failed, o)
		}
	}

	d.logger.Info("dispatch complete",
		"total", len(rs),
		"succeeded", len(rep.Successful),
		"failed", len(rep.Failed))
	return rep
}

// submit never lets a cancelled context skip a resource: the manager call
// fails fast and the outcome is recorded as a failure.
func (d *Dispatcher) submit(ctx context.Context, r domain.Resource) domain.JobOutcome {
	job := BuildJob(d.cfg.OutputRoot, r, d.cfg.DefaultExtension)
	if err := ctx.Err(); err != nil {
		return failed(job, pipeline.Wrap(pipeline.ErrSubmission, "dispatch", "submit", r.Title, err))
	}

	gid, err := d.mgr.Submit(ctx, job)
	if err != nil {
		d.logger.Warn("submit failed", "title", r.Title, "error", err)
		return failed(job, pipeline.Wrap(pipeline.ErrSubmission, "dispatch", "submit", r.Title, err))
	}
	d.logger.Info("submitted", "title", r.Title, "gid", gid, "category", job.Resource.Category)
	return domain.JobOutcome{Job: job, OK: true, TaskID: gid}
}

func (d *Dispatcher) pause(ctx context.Context) {
	if d.cfg.SubmitDelay <= 0 {
		return
	}
	t := time.NewTimer(d.cfg.SubmitDelay)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

func failed(job domain.DownloadJob, err error) domain.JobOutcome {
	return domain.JobOutcome{Job: job, Reason: err.Error(), Err: err}
}
