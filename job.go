// SPDX-License-Identifier: EPL-2.0

package stemsep

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ik5/stemsep/separator"
)

// State is the lifecycle of a Job.
type State int

const (
	Idle State = iota
	Running
	Done
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Done:
		return "done"
	case Failed:
		return "failed"
	}
	return "unknown"
}

var ErrJobStarted = errors.New("job already started")

// Job separates one file and records how it went. A Job runs once.
type Job struct {
	id     string
	opts   Options
	logger *slog.Logger

	mtx    sync.Mutex
	state  State
	err    error
	result *separator.Result
}

// NewJob creates an idle job. A nil logger discards log output.
func NewJob(opts Options, logger *slog.Logger) *Job {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	id := uuid.New().String()

	return &Job{id: id, opts: opts, logger: logger.With("job", id)}
}

// ID identifies the job in log records.
func (j *Job) ID() string { return j.id }

func (j *Job) State() State {
	j.mtx.Lock()
	defer j.mtx.Unlock()

	return j.state
}

// Err returns the failure of a Failed job.
func (j *Job) Err() error {
	j.mtx.Lock()
	defer j.mtx.Unlock()

	return j.err
}

// Result returns the stems of a Done job.
func (j *Job) Result() *separator.Result {
	j.mtx.Lock()
	defer j.mtx.Unlock()

	return j.result
}

type outcome struct {
	res *separator.Result
	err error
}

// Run separates path and blocks until it finishes or ctx is done.
// Running a job that is not Idle returns ErrJobStarted.
func (j *Job) Run(ctx context.Context, path string) (*separator.Result, error) {
	j.mtx.Lock()
	if j.state != Idle {
		state := j.state
		j.mtx.Unlock()
		j.logger.Warn("job rerun rejected", "path", path, "state", state)
		return nil, ErrJobStarted
	}
	j.state = Running
	j.mtx.Unlock()

	start := time.Now()
	j.logger.Info("separation started", "path", path)

	// buffered so the worker never blocks after a cancellation
	done := make(chan outcome, 1)
	go func() {
		res, err := SeparateFile(path, j.opts)
		done <- outcome{res: res, err: err}
	}()

	var out outcome
	select {
	case out = <-done:
	case <-ctx.Done():
		out.err = ctx.Err()
	}

	j.finish(out)

	if out.err != nil {
		j.logger.Error("separation failed", "path", path, "elapsed", time.Since(start), "error", out.err)
		return nil, out.err
	}

	j.logger.Info("separation done",
		"path", path,
		"elapsed", time.Since(start),
		"duration", out.res.Vocals.Duration(),
		"sample_rate", out.res.Vocals.SampleRate,
	)

	return out.res, nil
}

func (j *Job) finish(out outcome) {
	j.mtx.Lock()
	defer j.mtx.Unlock()

	if out.err != nil {
		j.state = Failed
		j.err = out.err
		return
	}

	j.state = Done
	j.result = out.res
}
