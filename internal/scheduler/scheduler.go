// Package scheduler keeps provider caches warm on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/honeycarbs/jobhub/pkg/logging"
)

// Warmer refreshes stale caches.
type Warmer interface {
	Warm(ctx context.Context)
}

// Scheduler runs Warm on a cron spec. A run still in progress when the next
// tick fires makes that tick a no-op.
type Scheduler struct {
	cron   *cron.Cron
	warmer Warmer
	spec   string
	logger *logging.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New validates spec and builds a stopped scheduler. An empty spec yields a
// scheduler whose Start and Stop do nothing.
func New(spec string, warmer Warmer, logger *logging.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = logging.Nop()
	}
	s := &Scheduler{warmer: warmer, spec: spec, logger: logger}
	if spec == "" {
		return s, nil
	}
	if warmer == nil {
		return nil, fmt.Errorf("scheduler: warmer is required")
	}

	cl := cronLogger{logger}
	s.cron = cron.New(
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)
	if _, err := cron.ParseStandard(spec); err != nil {
		return nil, fmt.Errorf("scheduler: invalid schedule %q: %w", spec, err)
	}
	return s, nil
}

// Enabled reports whether a schedule is configured.
func (s *Scheduler) Enabled() bool {
	return s.cron != nil
}

// Start registers the warm-up job and runs one warm-up immediately in the
// background so caches fill without waiting for the first tick.
func (s *Scheduler) Start(ctx context.Context) error {
	if !s.Enabled() {
		s.logger.Info("warm-up schedule disabled")
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return fmt.Errorf("scheduler: already started")
	}
	runCtx, cancel := context.WithCancel(ctx)

	if _, err := s.cron.AddFunc(s.spec, func() { s.run(runCtx) }); err != nil {
		cancel()
		return fmt.Errorf("cron.AddFunc: %w", err)
	}
	s.cancel = cancel

	s.cron.Start()
	s.logger.Info("warm-up scheduled", "spec", s.spec)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.run(runCtx)
	}()

	return nil
}

// Stop cancels running warm-ups and waits for them until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) error {
	if !s.Enabled() {
		return nil
	}

	s.mu.Lock()
	cancel := s.cancel
	s.mu.Unlock()
	if cancel == nil {
		return nil
	}
	cancel()

	done := make(chan struct{})
	go func() {
		<-s.cron.Stop().Done()
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("warm-up stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Scheduler) run(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	s.logger.Debug("warm-up started")
	s.warmer.Warm(ctx)
}

// cronLogger routes cron's own messages through the application logger.
type cronLogger struct {
	l *logging.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...any) {
	c.l.Debug(msg, keysAndValues...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...any) {
	c.l.Error(msg, append([]any{"error", err}, keysAndValues...)...)
}
