package render_test

import (
	"errors"
	"testing"

	"github.com/emberpixel/hermes/internal/render"
	"github.com/emberpixel/hermes/internal/tracker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSurface records draw calls so tests can assert on the painted frame.
type fakeSurface struct {
	filled    bool
	fillColor render.Color
	texts     []drawnText
	fillErr   error
	drawErr   error
}

type drawnText struct {
	pos   render.Point
	text  string
	color render.Color
}

func (f *fakeSurface) Fill(c render.Color) error {
	if f.fillErr != nil {
		return f.fillErr
	}
	f.filled = true
	f.fillColor = c

	return nil
}

func (f *fakeSurface) DrawText(p render.Point, text string, c render.Color) error {
	if f.drawErr != nil {
		return f.drawErr
	}
	f.texts = append(f.texts, drawnText{pos: p, text: text, color: c})

	return nil
}

func TestPresenceRenderer_Render(t *testing.T) {
	name := "Jane"

	t.Run("no frame before the first publish", func(t *testing.T) {
		holder := &tracker.Holder{}
		surface := &fakeSurface{}

		err := render.NewPresenceRenderer(holder).Render(surface)

		require.NoError(t, err)
		assert.False(t, surface.filled)
		assert.Empty(t, surface.texts)
	})

	t.Run("no status shows the raw status text", func(t *testing.T) {
		holder := &tracker.Holder{}
		status := "not_home"
		holder.Publish(tracker.NoStatus{}, &name, &status)
		surface := &fakeSurface{}

		err := render.NewPresenceRenderer(holder).Render(surface)

		require.NoError(t, err)
		assert.True(t, surface.filled)
		assert.Equal(t, render.Black, surface.fillColor)
		require.Len(t, surface.texts, 2)
		assert.Equal(t, drawnText{pos: render.Point{X: 0, Y: 1}, text: "Jane", color: render.White}, surface.texts[0])
		assert.Equal(t, drawnText{pos: render.Point{X: 0, Y: 3}, text: "not_home", color: render.White}, surface.texts[1])
	})

	t.Run("missing name and status fall back to Unknown", func(t *testing.T) {
		holder := &tracker.Holder{}
		holder.Publish(tracker.NoStatus{}, nil, nil)
		surface := &fakeSurface{}

		err := render.NewPresenceRenderer(holder).Render(surface)

		require.NoError(t, err)
		require.Len(t, surface.texts, 2)
		assert.Equal(t, "Unknown", surface.texts[0].text)
		assert.Equal(t, "Unknown", surface.texts[1].text)
	})

	t.Run("at station shows the station label", func(t *testing.T) {
		holder := &tracker.Holder{}
		status := "not_home"
		holder.Publish(tracker.AtStation{Station: "suburban"}, &name, &status)
		surface := &fakeSurface{}

		err := render.NewPresenceRenderer(holder).Render(surface)

		require.NoError(t, err)
		require.Len(t, surface.texts, 2)
		assert.Equal(t, "At Station Suburban Station", surface.texts[1].text)
	})

	t.Run("on train shows the train id", func(t *testing.T) {
		holder := &tracker.Holder{}
		holder.Publish(tracker.OnTrain{TrainID: "517"}, &name, nil)
		surface := &fakeSurface{}

		err := render.NewPresenceRenderer(holder).Render(surface)

		require.NoError(t, err)
		require.Len(t, surface.texts, 2)
		assert.Equal(t, "On Train 517", surface.texts[1].text)
	})

	t.Run("fill errors propagate", func(t *testing.T) {
		holder := &tracker.Holder{}
		holder.Publish(tracker.NoStatus{}, &name, nil)
		fillErr := errors.New("panel gone")
		surface := &fakeSurface{fillErr: fillErr}

		err := render.NewPresenceRenderer(holder).Render(surface)

		assert.ErrorIs(t, err, fillErr)
	})

	t.Run("draw errors propagate", func(t *testing.T) {
		holder := &tracker.Holder{}
		holder.Publish(tracker.NoStatus{}, &name, nil)
		drawErr := errors.New("panel gone")
		surface := &fakeSurface{drawErr: drawErr}

		err := render.NewPresenceRenderer(holder).Render(surface)

		assert.ErrorIs(t, err, drawErr)
	})
}
