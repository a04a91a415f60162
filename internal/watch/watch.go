// Package watch recompiles the stored blueprint whenever it changes.
package watch

import (
	"context"
	"fmt"
	"time"

	"github.com/dyluth/architect/internal/compiler"
	"github.com/dyluth/architect/internal/store"
	"github.com/dyluth/architect/pkg/blueprint"
	"go.uber.org/zap"
)

// maxAttempts bounds how often one refresh retries while writes keep landing.
const maxAttempts = 5

// Update is one compiled revision of the blueprint.
type Update struct {
	Revision  int64
	Blueprint blueprint.Blueprint
	Outputs   compiler.Outputs
}

// Run compiles the current blueprint, then recompiles after every change until
// ctx is cancelled. Stores that implement store.Subscriber push changes; the
// revision is also polled every interval.
//
// Bursts of writes coalesce: pending events are drained and only the newest
// revision is compiled. An update is delivered only if the revision did not
// move while it was being compiled, so onChange never sees a superseded result.
// onChange runs on the watcher goroutine.
//
// Run returns nil when ctx is cancelled.
func Run(ctx context.Context, s store.Store, interval time.Duration, logger *zap.Logger, onChange func(Update)) error {
	if interval <= 0 {
		return fmt.Errorf("watch interval must be positive, got %v", interval)
	}

	var events <-chan store.Event
	if sub, ok := s.(store.Subscriber); ok {
		subscription, err := sub.Subscribe(ctx)
		if err != nil {
			return fmt.Errorf("failed to subscribe to blueprint events: %w", err)
		}
		defer subscription.Close()
		events = subscription.Events()
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	w := &watcher{store: s, logger: logger, onChange: onChange, last: -1}
	w.refresh(ctx)

	for {
		select {
		case <-ctx.Done():
			return nil

		case _, ok := <-events:
			if !ok {
				// Subscription ended; keep polling
				events = nil
				continue
			}
			drain(events)
			w.refresh(ctx)

		case <-ticker.C:
			w.refresh(ctx)
		}
	}
}

type watcher struct {
	store    store.Store
	logger   *zap.Logger
	onChange func(Update)
	last     int64
}

func (w *watcher) refresh(ctx context.Context) {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		rev, err := w.store.Revision(ctx)
		if err != nil {
			w.warn(ctx, "failed to read blueprint revision", err)
			return
		}
		if rev == w.last {
			return
		}

		bp, err := w.store.Load(ctx)
		if err != nil {
			w.warn(ctx, "failed to load blueprint", err)
			return
		}
		outputs := compiler.Compile(bp)

		latest, err := w.store.Revision(ctx)
		if err != nil {
			w.warn(ctx, "failed to read blueprint revision", err)
			return
		}
		if latest != rev {
			w.logger.Debug("discarding superseded compile",
				zap.Int64("revision", rev), zap.Int64("latest", latest))
			continue
		}

		w.last = rev
		w.logger.Debug("blueprint compiled", zap.Int64("revision", rev))
		w.onChange(Update{Revision: rev, Blueprint: bp, Outputs: outputs})
		return
	}
}

func (w *watcher) warn(ctx context.Context, msg string, err error) {
	if ctx.Err() != nil {
		return
	}
	w.logger.Warn(msg, zap.Error(err))
}

func drain(events <-chan store.Event) {
	for {
		select {
		case _, ok := <-events:
			if !ok {
				return
			}
		default:
			return
		}
	}
}

// FormatUpdate renders a one-line summary of an update for terminal output.
func FormatUpdate(u Update, at time.Time) string {
	name := u.Blueprint.ProjectName
	if name == "" {
		name = compiler.UntitledProject
	}
	nodes := len(compiler.BuildWorkflowGraph(u.Blueprint).Nodes)
	return fmt.Sprintf("[%s] 🔄 Compiled %s: %d nodes, %d actions", at.Format("15:04:05"), name, nodes, len(u.Blueprint.Actions))
}
