// Package batch rotates many independent sequences concurrently.
package batch

import (
	"context"
	"fmt"
	"rotator/internal/ctxlog"
	"rotator/internal/rec"
	"rotator/internal/rotate"
	"slices"

	"golang.org/x/sync/errgroup"
)

type Direction string

const (
	Left  Direction = "left"
	Right Direction = "right"
)

// Shift returns the left shift that rotating n elements by d in this direction amounts to.
func (dir Direction) Shift(n, d int) (int, error) {
	switch dir {
	case "", Left:
		return rotate.Normalize(n, d), nil
	case Right:
		return rotate.Normalize(n, -d), nil
	default:
		return 0, fmt.Errorf("unknown direction %q", dir)
	}
}

// Job is a single rotation. Values is rotated in place.
type Job struct {
	Name      string    `yaml:"name"`
	Values    []any     `yaml:"values"`
	D         int       `yaml:"d"`
	Direction Direction `yaml:"direction"`
}

// Recorder receives every completed rotation.
type Recorder interface {
	Add(source, name string, d, shift int, before, after any) (uint64, error)
}

// Run rotates the values of every job using at most workers goroutines.
// Each job's slice is touched by exactly one goroutine.
// The first failing job cancels the rest. recorder may be nil.
func Run(ctx context.Context, jobs []Job, workers int, recorder Recorder) error {
	if workers <= 0 {
		workers = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	scheduled := 0
	for i := range jobs {
		if gctx.Err() != nil {
			break
		}

		job := &jobs[i]
		g.Go(func() error {
			return run(gctx, job, recorder)
		})
		scheduled++
	}

	err := g.Wait()
	if err != nil {
		return err
	}
	if scheduled < len(jobs) {
		return fmt.Errorf("stopped after %d of %d jobs: %w", scheduled, len(jobs), context.Cause(ctx))
	}
	return nil
}

func run(ctx context.Context, job *Job, recorder Recorder) (err error) {
	defer rec.Wrap(&err, "job %q: %w", job.Name)

	if err := ctx.Err(); err != nil {
		return err
	}

	shift, err := job.Direction.Shift(len(job.Values), job.D)
	if err != nil {
		return err
	}

	var before []any
	if recorder != nil {
		before = slices.Clone(job.Values)
	}

	rotate.Left(job.Values, shift)

	logger := ctxlog.Get(ctx)
	logger.Info("rotated", "job", job.Name, "len", len(job.Values), "d", job.D, "direction", job.Direction, "shift", shift)

	if recorder != nil {
		if _, err := recorder.Add("batch", job.Name, job.D, shift, before, job.Values); err != nil {
			return err
		}
	}
	return nil
}
