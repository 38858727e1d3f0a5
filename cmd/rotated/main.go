package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"rotator/internal/config"
	"rotator/internal/ctxlog"
	"rotator/internal/history"
	"rotator/internal/rec"
	"rotator/internal/server"
	"syscall"
)

type Config struct {
	Log     config.Log      `yaml:"log"`
	History *history.Config `yaml:"history"`
	Server  server.Config   `yaml:"server"`
}

func run(ctx context.Context, filename string) (err error) {
	defer rec.Error(&err)

	c, err := config.Load[Config](ctx, filename)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	ctx = ctxlog.Setup(ctx, "rotated", c.Log.Dir)
	logger := ctxlog.Get(ctx)

	var store server.Store
	if c.History != nil {
		logger.Info("opening history", "file", c.History.File)
		s := history.Open(*c.History)
		defer ctxlog.Close(ctx, "history", s)
		store = s
	}

	logger.Info("starting server")
	srv := server.New(c.Server, store)

	return srv.Run(ctx)
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
		ctxlog.Get(ctx).Error("server stopped unexpectedly", "error", err)
		os.Exit(1)
	}
	ctxlog.Get(ctx).Info("server stopped")
}
