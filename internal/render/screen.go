package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Screen is a Canvas over a tcell screen.
type Screen struct {
	screen tcell.Screen
	bg     tcell.Style
}

// NewScreen wraps an initialised tcell screen.
func NewScreen(s tcell.Screen) *Screen {
	return &Screen{
		screen: s,
		bg:     tcell.StyleDefault.Background(tcell.NewRGBColor(21, 21, 21)),
	}
}

// Tcell returns the wrapped screen.
func (s *Screen) Tcell() tcell.Screen { return s.screen }

func (s *Screen) Size() (int, int) { return s.screen.Size() }

func (s *Screen) SetCell(x, y int, glyph string, style tcell.Style) int {
	runes := []rune(glyph)
	if len(runes) == 0 {
		return 0
	}
	var combc []rune
	if len(runes) > 1 {
		combc = runes[1:]
	}
	s.screen.SetContent(x, y, runes[0], combc, style)
	w := runewidth.StringWidth(glyph)
	if w == 2 {
		// Fill the second column to avoid rendering artifacts.
		s.screen.SetContent(x+1, y, ' ', nil, style)
	}
	if w < 1 {
		w = 1
	}
	return w
}

func (s *Screen) DrawText(x, y int, text string, style tcell.Style) int {
	col := x
	for _, ch := range text {
		w := runewidth.RuneWidth(ch)
		if w == 0 {
			continue
		}
		s.screen.SetContent(col, y, ch, nil, style)
		col += w
	}
	return col - x
}

func (s *Screen) FillRect(x, y, w, h int, fill rune, style tcell.Style) {
	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			s.screen.SetContent(col, row, fill, nil, style)
		}
	}
}

func (s *Screen) DrawRect(x, y, w, h int, style tcell.Style) {
	if w <= 0 || h <= 0 {
		return
	}
	if w == 1 || h == 1 {
		s.FillRect(x, y, w, h, '█', style)
		return
	}
	right, bottom := x+w-1, y+h-1
	for col := x + 1; col < right; col++ {
		s.screen.SetContent(col, y, '─', nil, style)
		s.screen.SetContent(col, bottom, '─', nil, style)
	}
	for row := y + 1; row < bottom; row++ {
		s.screen.SetContent(x, row, '│', nil, style)
		s.screen.SetContent(right, row, '│', nil, style)
	}
	s.screen.SetContent(x, y, '┌', nil, style)
	s.screen.SetContent(right, y, '┐', nil, style)
	s.screen.SetContent(x, bottom, '└', nil, style)
	s.screen.SetContent(right, bottom, '┘', nil, style)
}

// Clear paints the whole screen with the background colour.
func (s *Screen) Clear() {
	s.screen.SetStyle(s.bg)
	s.screen.Clear()
}

func (s *Screen) Show() { s.screen.Show() }
