package tracker

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/emberpixel/hermes/internal/metrics"
	"github.com/emberpixel/hermes/internal/models"
	"github.com/sourcegraph/conc/pool"
)

// LocationProvider yields the person's latest position, name and status.
type LocationProvider interface {
	PersonState(ctx context.Context) (*models.PersonSample, error)
}

// TrainProvider yields the live train snapshot in feed order. An empty
// snapshot is valid.
type TrainProvider interface {
	TrainView(ctx context.Context) ([]models.Train, error)
}

// TransitionJournal records state changes for later inspection. Journal
// failures are logged, never fatal to the loop.
type TransitionJournal interface {
	RecordTransition(ctx context.Context, from, to, detail string, at time.Time) error
}

// Tracker drives the presence polling loop: once per interval it fetches the
// person and train feeds concurrently, advances the state machine and
// publishes the result into the shared view.
type Tracker struct {
	log      *slog.Logger
	location LocationProvider
	trains   TrainProvider
	journal  TransitionJournal
	metrics  *metrics.Metrics
	interval time.Duration

	holder *Holder
	state  State // owned by the loop goroutine, nil before the first tick
	alive  atomic.Bool
}

// New creates a Tracker. The journal may be nil to disable transition
// recording.
func New(
	log *slog.Logger,
	location LocationProvider,
	trains TrainProvider,
	journal TransitionJournal,
	appMetrics *metrics.Metrics,
	interval time.Duration,
) *Tracker {
	t := &Tracker{
		log:      log,
		location: location,
		trains:   trains,
		journal:  journal,
		metrics:  appMetrics,
		interval: interval,
		holder:   &Holder{},
	}
	t.alive.Store(true)

	return t
}

// View exposes the shared presence view for render consumers. It outlives
// the loop: after the loop dies the last published snapshot stays readable.
func (t *Tracker) View() *Holder {
	return t.holder
}

// Stop requests a graceful stop. The flag is checked once at the top of each
// iteration, so an in-flight tick always runs to completion. Cancelling the
// Run context is the forceful path and cuts the loop at any suspension point.
func (t *Tracker) Stop() {
	t.alive.Store(false)
}

// Run executes ticks until the liveness flag drops, the context is cancelled
// or a tick fails. There is no retry: the first failed fetch or state
// evaluation terminates the loop permanently.
func (t *Tracker) Run(ctx context.Context) error {
	t.log.InfoContext(ctx, "Presence tracker started", "interval", t.interval)

	for t.alive.Load() {
		if err := t.tick(ctx); err != nil {
			t.log.ErrorContext(ctx, "Tick failed, stopping tracker", "error", err)
			return err
		}

		select {
		case <-ctx.Done():
			t.log.InfoContext(ctx, "Presence tracker stopped.")
			return ctx.Err()
		case <-time.After(t.interval):
		}
	}

	t.log.InfoContext(ctx, "Presence tracker stopped.")

	return nil
}

// tick runs one fetch-and-advance cycle. Both feeds are fetched concurrently
// and must both succeed before the state machine advances; the new state,
// name and status are then published together.
func (t *Tracker) tick(ctx context.Context) error {
	var (
		person   *models.PersonSample
		snapshot []models.Train
	)

	fetches := pool.New().WithErrors().WithContext(ctx)
	fetches.Go(func(ctx context.Context) error {
		start := time.Now()
		sample, err := t.location.PersonState(ctx)
		t.metrics.FetchSeconds.WithLabelValues("person").Observe(time.Since(start).Seconds())
		if err != nil {
			return fmt.Errorf("failed to fetch person state: %w", err)
		}
		person = sample

		return nil
	})
	fetches.Go(func(ctx context.Context) error {
		start := time.Now()
		trains, err := t.trains.TrainView(ctx)
		t.metrics.FetchSeconds.WithLabelValues("trains").Observe(time.Since(start).Seconds())
		if err != nil {
			return fmt.Errorf("failed to fetch train snapshot: %w", err)
		}
		snapshot = trains

		return nil
	})

	if err := fetches.Wait(); err != nil {
		t.metrics.Ticks.WithLabelValues("failure").Inc()
		return err
	}

	now := time.Now()
	next, err := Advance(t.state, now, person.Location, snapshot)
	if err != nil {
		t.metrics.Ticks.WithLabelValues("failure").Inc()
		return fmt.Errorf("failed to advance presence state: %w", err)
	}

	t.recordTransition(ctx, t.state, next, now)
	t.state = next
	t.holder.Publish(next, person.Name, person.Status)

	t.metrics.SetCurrentState(next.Name())
	t.metrics.Ticks.WithLabelValues("success").Inc()

	return nil
}

func (t *Tracker) recordTransition(ctx context.Context, prev, next State, at time.Time) {
	from, fromDetail := "none", ""
	if prev != nil {
		from, fromDetail = prev.Name(), prev.detail()
	}
	if from == next.Name() && fromDetail == next.detail() {
		return
	}

	t.log.DebugContext(ctx, "Presence state transition",
		"from", from, "to", next.Name(), "detail", next.detail())
	t.metrics.Transitions.WithLabelValues(from, next.Name()).Inc()

	if t.journal == nil {
		return
	}
	if err := t.journal.RecordTransition(ctx, from, next.Name(), next.detail(), at); err != nil {
		t.log.ErrorContext(ctx, "Could not journal presence transition", "error", err)
	}
}
