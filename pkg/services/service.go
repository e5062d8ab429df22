// Package services implements the operator's periodic control loops:
// the tick-driven scanners, schedulers, and expirers that observe and
// reconcile the State aggregate once per tick.
package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SamMauldin/super-sorting-system/pkg/config"
	"github.com/SamMauldin/super-sorting-system/pkg/state"
)

// Service is one control-loop participant. New constructs it from
// configuration; Tick runs one iteration against the shared State,
// which the caller already holds locked.
type Service interface {
	Name() string
	Tick(s *state.State)
}

// NewFunc constructs a Service from configuration, mirroring the
// constructor-per-service pattern every service below follows.
type NewFunc func(cfg *config.Config) Service

// orderedServiceFactories is the contractual execution order: hold
// expiration follows the defragger so its freshly created holds
// aren't immediately harvested, and aborted-operation recovery
// follows agent expiration so it observes the aborts agent
// expiration just created.
var orderedServiceFactories = []NewFunc{
	func(cfg *config.Config) Service { return NewInventoryScanner(cfg) },
	func(cfg *config.Config) Service { return NewAgentExpiration(cfg) },
	func(cfg *config.Config) Service { return NewDefragger(cfg) },
	func(cfg *config.Config) Service { return NewHoldExpiration(cfg) },
	func(cfg *config.Config) Service { return NewNodeScanner(cfg) },
	func(cfg *config.Config) Service { return NewShulkerUnloader(cfg) },
	func(cfg *config.Config) Service { return NewShulkerLoader(cfg) },
	func(cfg *config.Config) Service { return NewOperationExpiration(cfg) },
	func(cfg *config.Config) Service { return NewAbortedOperationRecovery(cfg) },
	func(cfg *config.Config) Service { return NewAlertExpiration(cfg) },
}

// Runner owns the ordered service list and the background ticker that
// drives them, following the same Start/Stop/ticker shape used
// elsewhere in this codebase for periodic background work.
type Runner struct {
	interval time.Duration
	services []Service
	state    *state.State

	cancel context.CancelFunc
	done   chan struct{}
}

// NewRunner constructs every service in contractual order and wires
// them to the given interval and State.
func NewRunner(cfg *config.Config, st *state.State, interval time.Duration) *Runner {
	svcs := make([]Service, 0, len(orderedServiceFactories))
	for _, factory := range orderedServiceFactories {
		svcs = append(svcs, factory(cfg))
	}

	return &Runner{interval: interval, services: svcs, state: st}
}

// Start launches the background tick loop.
func (r *Runner) Start(ctx context.Context) {
	if r.cancel != nil {
		return
	}
	ctx, r.cancel = context.WithCancel(ctx)
	r.done = make(chan struct{})

	go r.run(ctx)

	slog.Info("services runner started", "interval", r.interval, "service_count", len(r.services))
}

// Stop signals the tick loop to exit and waits for it to finish.
func (r *Runner) Stop() {
	if r.cancel == nil {
		return
	}
	r.cancel()
	<-r.done
	slog.Info("services runner stopped")
}

func (r *Runner) run(ctx context.Context) {
	defer close(r.done)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.tick()
		}
	}
}

// tick runs every service once, serially, in contractual order, under
// a single State lock, recording each service's wall-clock duration.
func (r *Runner) tick() {
	r.state.With(func(s *state.State) {
		for _, svc := range r.services {
			start := time.Now()
			svc.Tick(s)
			s.Metrics.RecordTick(svc.Name(), time.Since(start))
		}
	})
}
