package game

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap/zapcore"

	coresys "github.com/jungle2d/engine/internal/core/system"
)

// overlayLines is how many journal entries the debug overlay shows.
const overlayLines = 6

func (g *Game) drawOverlay(f coresys.Frame) {
	w, h := g.canvas.Size()
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)

	fps := 0.0
	if f.Delta > 0 {
		fps = 1 / f.Delta.Seconds()
	}
	g.canvas.DrawText(0, 0, fmt.Sprintf("frame %d  fps %.0f  entities %d", f.Number, fps, g.reg.NumEntities()), style)

	if g.journal == nil {
		return
	}
	entries := g.journal.Tail(overlayLines)
	top := h - len(entries)
	for i, e := range entries {
		line := fmt.Sprintf("%-5s %s", e.Level.CapitalString(), e.Message)
		if len(line) > w {
			line = line[:w]
		}
		g.canvas.DrawText(0, top+i, line, style.Foreground(levelColor(e.Level)))
	}
}

func levelColor(l zapcore.Level) tcell.Color {
	switch {
	case l >= zapcore.ErrorLevel:
		return tcell.ColorRed
	case l == zapcore.WarnLevel:
		return tcell.ColorYellow
	}
	return tcell.ColorSilver
}
