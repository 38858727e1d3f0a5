package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"rotator/internal/config"
	"rotator/internal/ctxlog"
	"rotator/internal/history"
	"rotator/internal/rec"
	"syscall"
)

type Config struct {
	Log     config.Log      `yaml:"log"`
	History *history.Config `yaml:"history"`
}

func run(ctx context.Context, filename string) (err error) {
	defer rec.Error(&err)

	c, err := config.Load[Config](ctx, filename)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.History == nil {
		return errors.New("config: history is required")
	}

	ctx = ctxlog.Setup(ctx, "history", c.Log.Dir)
	logger := ctxlog.Get(ctx)

	logger.Info("opening history", "file", c.History.File)
	store := history.Open(*c.History)
	defer ctxlog.Close(ctx, "history", store)

	for id, r := range store.All() {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		logger.Info("rotation",
			"id", id,
			"at", r.At,
			"source", r.Source,
			"name", r.Name,
			"d", r.D,
			"shift", r.Shift,
			"before", string(r.Before),
			"after", string(r.After),
		)
	}

	return nil
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	filename := "config.yaml"
	if len(os.Args) > 1 {
		filename = os.Args[1]
	}

	err := run(ctx, filename)
	if err != nil {
		ctxlog.Get(ctx).Error("history failed", "error", err)
		os.Exit(1)
	}
}
