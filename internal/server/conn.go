package server

import (
	"context"
	"net"
	"runtime/debug"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Brownie44l1/pageserver/internal/response"
)

// serveConn answers the single request on conn and closes it. I/O failures
// drop this connection only.
func (s *Server) serveConn(workerID int, conn net.Conn) {
	defer conn.Close()

	start := time.Now()
	remote := conn.RemoteAddr().String()

	ctx, span := s.Tracer.Start(context.Background(), "serveConn",
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(
			attribute.Int("worker.id", workerID),
			attribute.String("client.address", remote),
		),
	)
	defer span.End()

	s.Metrics.ConnectionOpened(ctx)
	defer s.Metrics.ConnectionClosed(ctx)

	s.Logger.Info("executing on worker",
		Field{"worker", workerID},
		Field{"client_ip", remote},
	)

	buf := s.buffers.Get()
	defer s.buffers.Put(buf)

	n, err := conn.Read(buf)
	if n == 0 && err != nil {
		s.drop(ctx, span, workerID, "read", err)
		return
	}

	page := s.respond(buf[:n], workerID)

	w := response.NewWriter(conn)
	if err := w.WritePage(page); err != nil {
		s.drop(ctx, span, workerID, "write", err)
		return
	}

	duration := time.Since(start)
	s.Metrics.RecordRequest(ctx, workerID, int(page.Status), duration)
	span.SetAttributes(
		attribute.Int("http.response.status_code", int(page.Status)),
		attribute.Int("http.response.size", w.BytesWritten()),
	)

	s.Logger.Info("request handled",
		Field{"worker", workerID},
		Field{"status", int(page.Status)},
		Field{"bytes", w.BytesWritten()},
		Field{"duration_ms", duration.Milliseconds()},
		Field{"client_ip", remote},
	)
}

// respond resolves the page, turning a resolver failure or panic into a 500
func (s *Server) respond(buf []byte, workerID int) (page response.Page) {
	defer func() {
		if r := recover(); r != nil {
			s.Logger.Error("panic recovered",
				Field{"error", r},
				Field{StackKey, string(debug.Stack())},
				Field{"worker", workerID},
			)
			page = response.InternalError()
		}
	}()

	p, err := s.resolver.Respond(buf)
	if err != nil {
		s.Logger.Error("page resolution failed",
			Field{"error", err.Error()},
			Field{"worker", workerID},
		)
		return response.InternalError()
	}
	return p
}

func (s *Server) drop(ctx context.Context, span trace.Span, workerID int, stage string, err error) {
	s.Metrics.RecordDropped(ctx, workerID, stage)
	span.RecordError(err)
	span.SetStatus(codes.Error, stage+" failed")

	s.Logger.Warn("connection dropped",
		Field{"worker", workerID},
		Field{"stage", stage},
		Field{"error", err.Error()},
	)
}
