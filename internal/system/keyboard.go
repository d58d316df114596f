package system

import (
	"github.com/jungle2d/engine/internal/component"
	"github.com/jungle2d/engine/internal/core/ecs"
	"github.com/jungle2d/engine/internal/core/event"
)

var keyboardKey = ecs.NewSystemKey("keyboard-control")

// Sprite sheet rows for each heading.
const (
	rowUp = iota
	rowRight
	rowDown
	rowLeft
)

// KeyboardControlSystem steers keyboard-controlled entities with the arrow
// keys, setting both velocity and the sprite row facing that way.
type KeyboardControlSystem struct {
	ecs.Base
	reg *ecs.Registry
}

func NewKeyboardControlSystem(reg *ecs.Registry) (*KeyboardControlSystem, error) {
	s := &KeyboardControlSystem{reg: reg}
	if err := requireAll(reg, &s.Base,
		ecs.Require[component.Sprite],
		ecs.Require[component.KeyboardControlled],
		ecs.Require[component.RigidBody],
	); err != nil {
		return nil, err
	}
	return s, nil
}

func (*KeyboardControlSystem) SystemKey() ecs.SystemKey { return keyboardKey }

func (s *KeyboardControlSystem) SubscribeToEvents(bus *event.Bus) {
	event.Subscribe(bus, s, s.onKeyPressed)
}

func (s *KeyboardControlSystem) onKeyPressed(ev *event.KeyPressed) {
	ecs.Each3(s.reg, s.Entities(), func(_ ecs.Entity, sp *component.Sprite, kc *component.KeyboardControlled, rb *component.RigidBody) {
		switch ev.Key {
		case event.KeyUp:
			rb.Velocity, sp.Row = kc.Up, rowUp
		case event.KeyRight:
			rb.Velocity, sp.Row = kc.Right, rowRight
		case event.KeyDown:
			rb.Velocity, sp.Row = kc.Down, rowDown
		case event.KeyLeft:
			rb.Velocity, sp.Row = kc.Left, rowLeft
		}
	})
}
