package system

import (
	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/jungle2d/engine/internal/core/event"
	coresys "github.com/jungle2d/engine/internal/core/system"
	"github.com/jungle2d/engine/internal/input"
)

// EventSource yields the terminal events gathered since the last frame.
type EventSource interface {
	Drain(fn func(tcell.Event)) int
}

// Controls receives the keys handled by the driver itself.
type Controls interface {
	Quit()
	ToggleDebug()
	Resize()
}

// InputSystem drains pending terminal events and publishes key presses on
// the bus. Escape quits and 'd' toggles the debug view; both are published
// too. Phase 0 (Input).
type InputSystem struct {
	source   EventSource
	bus      *event.Bus
	controls Controls
	log      *zap.Logger
}

func NewInputSystem(source EventSource, bus *event.Bus, controls Controls, log *zap.Logger) *InputSystem {
	return &InputSystem{source: source, bus: bus, controls: controls, log: log}
}

func (s *InputSystem) Phase() coresys.Phase { return coresys.PhaseInput }

func (s *InputSystem) Update(_ coresys.Frame) {
	s.source.Drain(s.handle)
}

func (s *InputSystem) handle(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		s.controls.Resize()
	case *tcell.EventKey:
		key, ok := input.Translate(ev)
		if !ok {
			return
		}
		switch {
		case key.Key == event.KeyEscape:
			s.controls.Quit()
		case key.Is('d'):
			s.controls.ToggleDebug()
		}
		s.log.Debug("key pressed", zap.Stringer("key", key.Key), zap.String("rune", string(key.Rune)))
		event.Emit(s.bus, key)
	}
}
