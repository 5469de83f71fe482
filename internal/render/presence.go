package render

import (
	"fmt"

	"github.com/emberpixel/hermes/internal/tracker"
)

const unknownText = "Unknown"

// Line positions for the two-line presence layout.
var (
	namePos   = Point{X: 0, Y: 1}
	statusPos = Point{X: 0, Y: 3}
)

// PresenceRenderer paints the shared presence view: the person's name on the
// first line and their transit status on the second.
type PresenceRenderer struct {
	view *tracker.Holder
}

func NewPresenceRenderer(view *tracker.Holder) *PresenceRenderer {
	return &PresenceRenderer{view: view}
}

// Render takes a short-lived snapshot of the shared view and draws it. Until
// the first state is published the frame is left untouched. Draw errors
// propagate to the caller unmodified.
func (r *PresenceRenderer) Render(s Surface) error {
	snap := r.view.Snapshot()
	if snap.State == nil {
		return nil
	}

	if err := s.Fill(Black); err != nil {
		return err
	}

	name := unknownText
	if snap.Name != nil {
		name = *snap.Name
	}
	if err := s.DrawText(namePos, name, White); err != nil {
		return err
	}

	return s.DrawText(statusPos, statusText(snap), White)
}

func statusText(snap tracker.View) string {
	switch state := snap.State.(type) {
	case tracker.AtStation:
		return fmt.Sprintf("At Station %s", state.Station.Label())
	case tracker.OnTrain:
		return fmt.Sprintf("On Train %s", state.TrainID)
	default:
		if snap.Status != nil {
			return *snap.Status
		}
		return unknownText
	}
}
