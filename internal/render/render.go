package render

// Color is a 24-bit RGB color.
type Color struct {
	R, G, B uint8
}

var (
	Black = Color{}
	White = Color{R: 255, G: 255, B: 255}
)

// Point addresses a text position on the surface, origin top-left.
type Point struct {
	X, Y int
}

// Surface is the drawing capability a display driver hands to renderers:
// fill the whole surface with a solid color and draw left-aligned text at a
// position. Both operations are synchronous and fail only through their own
// error return.
type Surface interface {
	Fill(c Color) error
	DrawText(p Point, text string, c Color) error
}

// Renderer paints one frame onto a surface.
type Renderer interface {
	Render(s Surface) error
}
