package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"rotator/internal/batch"
	"rotator/internal/config"
	"rotator/internal/ctxlog"
	"rotator/internal/display"
	"rotator/internal/history"
	"rotator/internal/rec"
	"syscall"
)

func run(ctx context.Context, args []string, out io.Writer) (err error) {
	defer rec.Error(&err)

	c := demo()
	if len(args) > 0 {
		c, err = config.Load[Config](ctx, args[0])
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}
	}

	ctx = ctxlog.Setup(ctx, "rotate", c.Log.Dir)
	logger := ctxlog.Get(ctx)

	var recorder batch.Recorder
	if c.History != nil {
		logger.Info("opening history", "file", c.History.File)
		store := history.Open(*c.History)
		defer ctxlog.Close(ctx, "history", store)
		recorder = store
	}

	logger.Info("rotating", "jobs", len(c.Jobs), "workers", c.Workers)
	err = batch.Run(ctx, c.Jobs, c.Workers, recorder)
	if err != nil {
		return fmt.Errorf("batch: %w", err)
	}

	for _, job := range c.Jobs {
		if len(c.Jobs) > 1 {
			if _, err := fmt.Fprintf(out, "# %s\n", job.Name); err != nil {
				return err
			}
		}
		if err := display.Print(out, job.Values); err != nil {
			return err
		}
	}

	return nil
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	err := run(ctx, os.Args[1:], os.Stdout)
	if err != nil {
		ctxlog.Get(ctx).Error("rotate failed", "error", err)
		os.Exit(1)
	}
}
