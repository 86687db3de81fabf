package server

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "127.0.0.1:3000", cfg.Addr)
	assert.Equal(t, 1024, cfg.BufferSize)
	assert.Equal(t, 0.8, cfg.WorkerFraction)
	assert.Equal(t, "frontend", cfg.DocumentRoot)
	assert.Equal(t, "index.html", cfg.IndexPage)
	assert.Equal(t, "404.html", cfg.NotFoundPage)
}

func TestWorkerCount(t *testing.T) {
	cfg := DefaultConfig()

	n := cfg.WorkerCount()
	assert.GreaterOrEqual(t, n, 1)
	assert.LessOrEqual(t, n, runtime.NumCPU())
	assert.Equal(t, max(1, int(float64(runtime.NumCPU())*0.8)), n)

	cfg.Workers = 7
	assert.Equal(t, 7, cfg.WorkerCount())

	// tiny fractions still leave one worker
	cfg.Workers = 0
	cfg.WorkerFraction = 0.0001
	assert.Equal(t, 1, cfg.WorkerCount())
}

func TestConfigValidate(t *testing.T) {
	tests := map[string]func(c *Config){
		"empty addr":         func(c *Config) { c.Addr = "" },
		"zero buffer":        func(c *Config) { c.BufferSize = 0 },
		"negative workers":   func(c *Config) { c.Workers = -1 },
		"zero fraction":      func(c *Config) { c.WorkerFraction = 0 },
		"fraction above one": func(c *Config) { c.WorkerFraction = 1.5 },
		"negative queue":     func(c *Config) { c.QueueSize = -1 },
		"empty root":         func(c *Config) { c.DocumentRoot = "" },
		"no index page":      func(c *Config) { c.IndexPage = "" },
		"no not-found page":  func(c *Config) { c.NotFoundPage = "" },
	}

	for name, mutate := range tests {
		cfg := DefaultConfig()
		mutate(&cfg)
		err := cfg.Validate()
		assert.ErrorIs(t, err, ErrInvalidConfig, name)
	}

	// fraction is ignored once the worker count is fixed
	cfg := DefaultConfig()
	cfg.Workers = 3
	cfg.WorkerFraction = 0
	assert.NoError(t, cfg.Validate())
}
