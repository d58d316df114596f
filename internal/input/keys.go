// Package input turns terminal events into game events.
package input

import (
	"github.com/gdamore/tcell/v2"

	"github.com/jungle2d/engine/internal/core/event"
)

// Translate maps a terminal key to a KeyPressed event. Keys the game does
// not use report false.
func Translate(ev *tcell.EventKey) (event.KeyPressed, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return event.KeyPressed{Key: event.KeyUp}, true
	case tcell.KeyRight:
		return event.KeyPressed{Key: event.KeyRight}, true
	case tcell.KeyDown:
		return event.KeyPressed{Key: event.KeyDown}, true
	case tcell.KeyLeft:
		return event.KeyPressed{Key: event.KeyLeft}, true
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return event.KeyPressed{Key: event.KeyEscape}, true
	case tcell.KeyRune:
		r := ev.Rune()
		if r == ' ' {
			return event.KeyPressed{Key: event.KeySpace, Rune: r}, true
		}
		return event.KeyPressed{Key: event.KeyRune, Rune: r}, true
	}
	return event.KeyPressed{}, false
}
