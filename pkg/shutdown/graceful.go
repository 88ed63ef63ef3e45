package shutdown

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"time"

	"github.com/honeycarbs/jobhub/pkg/logging"
)

type Stoppable interface {
	Shutdown(ctx context.Context) error
}

// Func adapts a plain function to Stoppable.
type Func func(ctx context.Context) error

func (f Func) Shutdown(ctx context.Context) error { return f(ctx) }

// Serve runs serve in the background until it returns or one of signals
// arrives, then stops every component in order. It returns only after the
// components are stopped and serve has returned or timeout elapsed.
func Serve(ctx context.Context, signals []os.Signal, timeout time.Duration, log *logging.Logger, serve func() error, components ...Stoppable) error {
	sigCtx, stop := signal.NotifyContext(ctx, signals...)
	defer stop()

	served := make(chan error, 1)
	go func() { served <- serve() }()

	var serveErr error
	select {
	case <-sigCtx.Done():
		log.Info("shutdown signal received")
		stopErr := Stop(timeout, log, components...)
		select {
		case serveErr = <-served:
		case <-time.After(timeout):
			log.Warn("server did not return after shutdown", "timeout", timeout)
		}
		return errors.Join(serveErr, stopErr)
	case serveErr = <-served:
		if serveErr != nil {
			log.Error("server exited", "err", serveErr)
		}
		return errors.Join(serveErr, Stop(timeout, log, components...))
	}
}

// Stop shuts components down in order, sharing one timeout. Later components
// are still stopped when an earlier one fails.
func Stop(timeout time.Duration, log *logging.Logger, components ...Stoppable) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var errs []error
	for _, c := range components {
		if c == nil {
			continue
		}
		if err := c.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}

	err := errors.Join(errs...)
	if err != nil {
		log.Warn("graceful shutdown completed with error", "err", err)
	} else {
		log.Info("graceful shutdown completed successfully")
	}
	return err
}
