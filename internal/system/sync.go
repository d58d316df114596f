package system

import (
	"github.com/jungle2d/engine/internal/core/ecs"
	"github.com/jungle2d/engine/internal/core/event"
	coresys "github.com/jungle2d/engine/internal/core/system"
)

// FrameSyncSystem starts every frame: it resets the event bus, lets each
// subscriber subscribe again, then applies the registry's pending entity
// additions and kills. Phase 1 (PreUpdate).
type FrameSyncSystem struct {
	reg         *ecs.Registry
	bus         *event.Bus
	subscribers []Subscriber
}

func NewFrameSyncSystem(reg *ecs.Registry, bus *event.Bus, subscribers ...Subscriber) *FrameSyncSystem {
	return &FrameSyncSystem{reg: reg, bus: bus, subscribers: subscribers}
}

func (s *FrameSyncSystem) Phase() coresys.Phase { return coresys.PhasePreUpdate }

func (s *FrameSyncSystem) Update(_ coresys.Frame) {
	s.bus.Reset()
	for _, sub := range s.subscribers {
		sub.SubscribeToEvents(s.bus)
	}
	s.reg.Update()
}
