// Package render draws the world onto a terminal.
package render

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/jungle2d/engine/internal/component"
)

// Canvas is the drawing surface the render systems use.
type Canvas interface {
	Size() (w, h int)
	// SetCell draws one grapheme cluster at x, y and returns its width in
	// columns.
	SetCell(x, y int, glyph string, style tcell.Style) int
	// DrawText draws text from x, y and returns the number of columns used.
	DrawText(x, y int, text string, style tcell.Style) int
	FillRect(x, y, w, h int, fill rune, style tcell.Style)
	DrawRect(x, y, w, h int, style tcell.Style)
	Clear()
	Show()
}

// Camera is the visible part of the world, in world units.
type Camera = component.Rect

// ToScreen converts a world position to screen cells. Fixed positions are
// already in screen space.
func ToScreen(cam Camera, p component.Vec2, fixed bool) (x, y int) {
	if fixed {
		return int(math.Floor(p.X)), int(math.Floor(p.Y))
	}
	return int(math.Floor(p.X - cam.X)), int(math.Floor(p.Y - cam.Y))
}

// Color parses a colour name or #rrggbb value; unknown names give the
// default colour.
func Color(name string) tcell.Color {
	if name == "" {
		return tcell.ColorDefault
	}
	return tcell.GetColor(name)
}
