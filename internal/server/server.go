package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"sync/atomic"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/Brownie44l1/pageserver/internal/pages"
)

// ErrServerUsed is returned by Serve when the server has already served once.
// The worker pool cannot be restarted, so a Server is single-use.
var ErrServerUsed = errors.New("server already served")

// Server accepts connections and hands each one to a worker that answers a
// single request and closes it.
type Server struct {
	Logger  Logger
	Metrics *Metrics
	Tracer  trace.Tracer

	config   Config
	resolver *pages.Resolver
	buffers  *BufferPool
	pool     *WorkerPool[net.Conn]

	mu       sync.Mutex
	listener net.Listener
	closed   atomic.Bool
	served   atomic.Bool
}

// New validates cfg and checks the document root. A missing not-found page
// is reported here rather than on the first request that needs it.
func New(cfg Config) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	resolver, err := pages.NewResolver(pages.Dir(cfg.DocumentRoot), cfg.IndexPage, cfg.NotFoundPage)
	if err != nil {
		return nil, fmt.Errorf("document root %s: %w", cfg.DocumentRoot, err)
	}

	return &Server{
		Logger:   NewDefaultLogger(),
		Metrics:  NewMetrics(),
		Tracer:   otel.Tracer(instrumentationName),
		config:   cfg,
		resolver: resolver,
		buffers:  NewBufferPool(cfg.BufferSize),
		pool:     NewWorkerPool[net.Conn](cfg.WorkerCount(), cfg.QueueSize),
	}, nil
}

// ListenAndServe binds Config.Addr and serves until Close or Shutdown
func (s *Server) ListenAndServe() error {
	listener, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return err
	}
	return s.Serve(listener)
}

// Serve accepts connections on listener. It returns nil once the server is
// closed. Serve may only be called once; later calls close listener and
// return ErrServerUsed.
func (s *Server) Serve(listener net.Listener) error {
	if s.served.Swap(true) {
		listener.Close()
		return ErrServerUsed
	}

	s.mu.Lock()
	s.listener = listener
	s.mu.Unlock()

	s.pool.Start(s.serveConn)
	defer s.pool.Close()

	if s.closed.Load() {
		listener.Close()
		return nil
	}

	s.Logger.Info("server started",
		Field{"addr", listener.Addr().String()},
		Field{"workers", s.pool.Size()},
	)

	for {
		conn, err := listener.Accept()
		if err != nil {
			if s.closed.Load() {
				return nil
			}
			s.Logger.Error("accept failed", Field{"error", err.Error()})
			continue
		}

		s.pool.Submit(conn)
	}
}

// Addr returns the bound address, or nil before Serve
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Workers returns the worker pool size
func (s *Server) Workers() int {
	return s.pool.Size()
}

func (s *Server) Stats() MetricsSnapshot {
	return s.Metrics.Snapshot()
}

// Close stops accepting connections. Connections already queued are still
// answered.
func (s *Server) Close() error {
	s.closed.Store(true)

	s.mu.Lock()
	listener := s.listener
	s.mu.Unlock()

	if listener == nil {
		return nil
	}
	if err := listener.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
		return err
	}
	return nil
}

// Shutdown closes the listener and waits for the workers to drain
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.Close(); err != nil {
		return err
	}
	if s.Addr() == nil {
		return nil
	}

	select {
	case <-s.pool.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
