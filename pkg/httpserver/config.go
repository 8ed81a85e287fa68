package httpserver

import (
	"log/slog"
	"time"
)

type Config struct {
	Addr            string        `env:"HTTP_ADDR" envDefault:":3000"`
	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"30s"`
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"90s"` // generation calls are slow
	IdleTimeout     time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"120s"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Option configures the HTTP server.
type Option func(*Server)

// WithLogger sets the logger passed to hooks and used for lifecycle events.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}

// WithStartHook registers a callback that runs right before the server starts listening.
func WithStartHook(h func(*slog.Logger)) Option {
	return func(s *Server) {
		if h != nil {
			s.startHooks = append(s.startHooks, h)
		}
	}
}

// WithStopHook registers a callback that runs after the server has shut down.
func WithStopHook(h func(*slog.Logger)) Option {
	return func(s *Server) {
		if h != nil {
			s.stopHooks = append(s.stopHooks, h)
		}
	}
}
