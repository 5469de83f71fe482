package display

import (
	"fmt"

	"github.com/emberpixel/hermes/internal/render"
	"github.com/muesli/termenv"
)

// TerminalSurface implements render.Surface on a terminal, standing in for
// the LED panel: a fixed character grid where a text line maps to a row.
// Draw calls accumulate into a frame; Flush paints the frame.
type TerminalSurface struct {
	out    *termenv.Output
	width  int
	height int
	ops    []textOp
}

type textOp struct {
	pos   render.Point
	text  string
	color render.Color
}

func NewTerminalSurface(out *termenv.Output, width, height int) *TerminalSurface {
	return &TerminalSurface{out: out, width: width, height: height}
}

// Fill resets the frame. The terminal stand-in only supports a dark
// background, so the color is accepted and the frame is simply cleared.
func (s *TerminalSurface) Fill(_ render.Color) error {
	s.ops = s.ops[:0]

	return nil
}

// DrawText queues left-aligned text at the given position. Text outside the
// grid is clipped, matching panel behavior.
func (s *TerminalSurface) DrawText(p render.Point, text string, c render.Color) error {
	if p.Y < 0 || p.Y >= s.height || p.X >= s.width {
		return nil
	}

	runes := []rune(text)
	if p.X+len(runes) > s.width {
		runes = runes[:s.width-p.X]
	}

	s.ops = append(s.ops, textOp{pos: p, text: string(runes), color: c})

	return nil
}

// Flush paints the accumulated frame onto the terminal.
func (s *TerminalSurface) Flush() {
	s.out.ClearScreen()

	profile := s.out.ColorProfile()
	for _, op := range s.ops {
		s.out.MoveCursor(op.pos.Y+1, op.pos.X+1)
		styled := s.out.String(op.text).Foreground(profile.Color(hexColor(op.color)))
		fmt.Fprint(s.out, styled.String())
	}
}

// Enter prepares the terminal for exclusive drawing.
func (s *TerminalSurface) Enter() {
	s.out.AltScreen()
	s.out.HideCursor()
}

// Leave restores the terminal.
func (s *TerminalSurface) Leave() {
	s.out.ShowCursor()
	s.out.ExitAltScreen()
}

func hexColor(c render.Color) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
