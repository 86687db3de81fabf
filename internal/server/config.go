package server

import (
	"errors"
	"fmt"
	"runtime"
)

var ErrInvalidConfig = errors.New("invalid server config")

// Config holds everything the server needs to start
type Config struct {
	Addr string

	// BufferSize is the capacity of the single read made on each connection.
	// Longer requests are truncated.
	BufferSize int

	// Workers fixes the pool size. When zero it is derived from the CPU
	// count scaled by WorkerFraction.
	Workers        int
	WorkerFraction float64

	// QueueSize is how many accepted connections may wait for a worker
	// before the accept loop blocks.
	QueueSize int

	DocumentRoot string
	IndexPage    string
	NotFoundPage string

	LogLevel string
}

// DefaultConfig returns the stock deployment settings
func DefaultConfig() Config {
	return Config{
		Addr:           "127.0.0.1:3000",
		BufferSize:     1024,
		WorkerFraction: 0.8,
		QueueSize:      128,
		DocumentRoot:   "frontend",
		IndexPage:      "index.html",
		NotFoundPage:   "404.html",
		LogLevel:       "info",
	}
}

// WorkerCount returns the pool size, never less than one
func (c Config) WorkerCount() int {
	if c.Workers > 0 {
		return c.Workers
	}
	n := int(float64(runtime.NumCPU()) * c.WorkerFraction)
	if n < 1 {
		n = 1
	}
	return n
}

func (c Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: empty address", ErrInvalidConfig)
	case c.BufferSize <= 0:
		return fmt.Errorf("%w: buffer size must be positive, got %d", ErrInvalidConfig, c.BufferSize)
	case c.Workers < 0:
		return fmt.Errorf("%w: negative worker count %d", ErrInvalidConfig, c.Workers)
	case c.Workers == 0 && (c.WorkerFraction <= 0 || c.WorkerFraction > 1):
		return fmt.Errorf("%w: worker fraction must be in (0, 1], got %v", ErrInvalidConfig, c.WorkerFraction)
	case c.QueueSize < 0:
		return fmt.Errorf("%w: negative queue size %d", ErrInvalidConfig, c.QueueSize)
	case c.DocumentRoot == "":
		return fmt.Errorf("%w: empty document root", ErrInvalidConfig)
	case c.IndexPage == "" || c.NotFoundPage == "":
		return fmt.Errorf("%w: index and not-found pages are required", ErrInvalidConfig)
	}
	return nil
}
