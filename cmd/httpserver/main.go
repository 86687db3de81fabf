package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Brownie44l1/pageserver/internal/server"
	"github.com/Brownie44l1/pageserver/internal/telemetry"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	config := server.DefaultConfig()

	srv, err := server.New(config)
	if err != nil {
		return err
	}

	logger, err := server.NewLoggerFromConfig(os.Stdout, config.LogLevel)
	if err != nil {
		return err
	}
	srv.Logger = logger

	if telemetry.Enabled() {
		shutdownTelemetry, err := telemetry.Setup(ctx)
		if err != nil {
			return err
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdownTelemetry(ctx); err != nil {
				fmt.Fprintf(os.Stderr, "Telemetry shutdown error: %v\n", err)
			}
		}()

		srv.Logger = server.NewOTelLogger("pageserver")
	}

	serverErrCh := make(chan error, 1)
	go func() {
		fmt.Printf("Listening on http://%s , running on %d workers 🚀\n", config.Addr, srv.Workers())
		serverErrCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrCh:
		return err
	case <-ctx.Done():
		stop()
	}

	fmt.Println("\n🛑 Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	stats := srv.Stats()
	fmt.Printf("\n📈 Final Stats:\n")
	fmt.Printf("   Total Requests: %d\n", stats.RequestsTotal)
	fmt.Printf("   Total Errors: %d\n", stats.ErrorsTotal)
	fmt.Printf("   Dropped Connections: %d\n", stats.DroppedTotal)
	fmt.Printf("   Workers Used: %d\n", len(stats.RequestsByWorker))

	fmt.Println("✨ Server stopped gracefully")
	return nil
}
