// Package server provides the HTTP rotation API and its lifecycle management.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"rotator/internal/ctxlog"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Server struct {
	addr            string
	handler         http.Handler
	limiter         *limiter
	shutdownTimeout time.Duration
}

// New builds the server. store may be nil, which disables history.
// It panics on incomplete config.
func New(config Config, store Store) *Server {
	if config.Port == 0 {
		panic("server: port is required")
	}
	if config.LimitBuckets == 0 {
		panic("server: limitBuckets is required")
	}
	if config.LimitPeriod == 0 {
		panic("server: limitPeriod is required")
	}
	if config.LimitMaxConcurrent == 0 {
		panic("server: limitMaxConcurrent is required")
	}
	if config.MaxValues == 0 {
		panic("server: maxValues is required")
	}
	if config.MaxBodyBytes == 0 {
		panic("server: maxBodyBytes is required")
	}
	if config.ShutdownTimeout == 0 {
		panic("server: shutdownTimeout is required")
	}

	m := newMetrics()
	lim := newLimiter(config.LimitBuckets, config.LimitPeriod, config.LimitMaxConcurrent, statusHandler(http.StatusTooManyRequests))

	a := &api{
		store:        store,
		metrics:      m,
		maxValues:    config.MaxValues,
		maxBodyBytes: config.MaxBodyBytes,
	}

	mux := http.NewServeMux()

	for _, route := range []struct {
		pattern string
		handler http.Handler
	}{
		{"/", statusHandler(http.StatusNotFound)},
		{"POST /rotate", lim.middleware(http.HandlerFunc(a.rotate))},
		{"GET /history", lim.middleware(http.HandlerFunc(a.history))},
		{"GET /metrics", promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})},
	} {
		slog.Info("registering handler", "pattern", route.pattern)
		mux.Handle(route.pattern, route.handler)
	}

	handler := http.Handler(mux)
	handler = newRecover(handler, statusHandler(http.StatusInternalServerError))
	handler = logMiddleware(m, handler)

	return &Server{
		addr:            fmt.Sprintf("0.0.0.0:%d", config.Port),
		handler:         handler,
		limiter:         lim,
		shutdownTimeout: config.ShutdownTimeout,
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	logger := ctxlog.Get(ctx)
	defer s.limiter.stop()

	srv := &http.Server{
		Addr:        s.addr,
		Handler:     s,
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	serveErrCh := make(chan error, 1)
	go func() {
		defer cancel()
		logger.Info("server is running", "addr", s.addr)
		serveErrCh <- srv.ListenAndServe()
	}()

	<-ctx.Done()

	logger.Info("server is shutting down")

	stopCtx, stopCancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer stopCancel()

	shutdownErr := srv.Shutdown(stopCtx)
	if errors.Is(shutdownErr, context.DeadlineExceeded) {
		logger.Error("server shutdown timeout exceeded")
	} else if shutdownErr == nil {
		logger.Info("all clients closed successfully")
	}

	serveErr := <-serveErrCh
	if errors.Is(serveErr, http.ErrServerClosed) {
		serveErr = nil
	}

	return errors.Join(serveErr, shutdownErr)
}
