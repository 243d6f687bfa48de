package common

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
)

// ShutdownHook is a function executed after a termination signal is received
// but before the HTTP servers begin their graceful shutdown. Errors are logged
// and shutdown continues regardless.
type ShutdownHook func(ctx context.Context) error

// RunServerWithShutdown starts the servers and blocks until SIGINT or SIGTERM.
// Hooks then run in order, each with hookTimeout, before every server is shut
// down within the overall shutdownTimeout.
func RunServerWithShutdown(servers []*http.Server, name string, shutdownTimeout, hookTimeout time.Duration, hooks ...ShutdownHook) {
	if hookTimeout <= 0 {
		hookTimeout = 5 * time.Second
	}

	for _, server := range servers {
		go func(server *http.Server) {
			log.Info().Str("addr", server.Addr).Msgf("starting %s", name)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatal().Err(err).Str("addr", server.Addr).Msgf("%s listen error", name)
			}
		}(server)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Info().Msgf("shutdown signal received for %s", name)

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	for i, h := range hooks {
		if h == nil {
			continue
		}
		hCtx, hCancel := context.WithTimeout(ctx, hookTimeout)
		if err := h(hCtx); err != nil {
			log.Error().Err(err).Int("hook", i).Msg("shutdown hook failed")
		}
		if errors.Is(hCtx.Err(), context.DeadlineExceeded) {
			log.Warn().Int("hook", i).Msg("shutdown hook timed out")
		}
		hCancel()
	}

	for _, server := range servers {
		if err := server.Shutdown(ctx); err != nil {
			log.Error().Err(err).Str("addr", server.Addr).Msg("graceful shutdown failed")
		}
	}
	log.Info().Msgf("%s shutdown complete", name)
}

// TimeoutConfig holds server and shutdown related timeouts.
type TimeoutConfig struct {
	ReadHeader time.Duration `mapstructure:"read_header"`
	Read       time.Duration `mapstructure:"read"`
	Write      time.Duration `mapstructure:"write"`
	Idle       time.Duration `mapstructure:"idle"`
	Shutdown   time.Duration `mapstructure:"shutdown"`
	Hook       time.Duration `mapstructure:"hook"`
}

func DefaultTimeouts() TimeoutConfig {
	return TimeoutConfig{
		ReadHeader: 5 * time.Second,
		Read:       15 * time.Second,
		Write:      30 * time.Second,
		Idle:       2 * time.Minute,
		Shutdown:   15 * time.Second,
		Hook:       5 * time.Second,
	}
}

// WithDefaults replaces unset or negative durations with the defaults.
func (c TimeoutConfig) WithDefaults() TimeoutConfig {
	d := DefaultTimeouts()
	apply := func(curr *time.Duration, def time.Duration) {
		if *curr <= 0 {
			*curr = def
		}
	}
	apply(&c.ReadHeader, d.ReadHeader)
	apply(&c.Read, d.Read)
	apply(&c.Write, d.Write)
	apply(&c.Idle, d.Idle)
	apply(&c.Shutdown, d.Shutdown)
	apply(&c.Hook, d.Hook)
	return c
}

// NewServerWithTimeouts attaches timeout settings to an existing *http.Server or creates a new one if nil.
func NewServerWithTimeouts(base *http.Server, cfg TimeoutConfig) *http.Server {
	if base == nil {
		base = &http.Server{}
	}
	base.ReadHeaderTimeout = cfg.ReadHeader
	base.ReadTimeout = cfg.Read
	base.WriteTimeout = cfg.Write
	base.IdleTimeout = cfg.Idle
	return base
}
