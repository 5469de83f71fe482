package display

import (
	"context"
	"log/slog"
	"time"

	"github.com/emberpixel/hermes/internal/render"
)

// Driver repaints the surface at a fixed cadence on its own schedule,
// independent of the polling loop's tick rate.
type Driver struct {
	log      *slog.Logger
	renderer render.Renderer
	surface  *TerminalSurface
	period   time.Duration
}

func NewDriver(log *slog.Logger, renderer render.Renderer, surface *TerminalSurface, period time.Duration) *Driver {
	return &Driver{
		log:      log,
		renderer: renderer,
		surface:  surface,
		period:   period,
	}
}

// Run repaints until the context is cancelled or a render fails. Render
// errors are surfaced by the renderer synchronously; the driver logs them
// and stops rather than painting a broken frame.
func (d *Driver) Run(ctx context.Context) {
	d.log.InfoContext(ctx, "Display driver started", "period", d.period)

	d.surface.Enter()
	defer d.surface.Leave()

	ticker := time.NewTicker(d.period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			d.log.InfoContext(ctx, "Display driver stopped.")
			return
		case <-ticker.C:
			if err := d.renderer.Render(d.surface); err != nil {
				d.log.ErrorContext(ctx, "Render failed, stopping display driver", "error", err)
				return
			}
			d.surface.Flush()
		}
	}
}
