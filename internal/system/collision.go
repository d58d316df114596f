package system

import (
	"go.uber.org/zap"

	"github.com/jungle2d/engine/internal/component"
	"github.com/jungle2d/engine/internal/core/ecs"
	"github.com/jungle2d/engine/internal/core/event"
	coresys "github.com/jungle2d/engine/internal/core/system"
)

var collisionKey = ecs.NewSystemKey("collision")

// CollisionSystem tests every pair of colliders and emits a Collision event
// for each overlapping pair. Handlers run synchronously while the pairs are
// being checked; any kills they request wait for the next registry update.
// Phase 2 (Update).
type CollisionSystem struct {
	ecs.Base
	reg *ecs.Registry
	bus *event.Bus
	log *zap.Logger

	boxes []box
}

type box struct {
	e      ecs.Entity
	bounds component.Rect
}

func NewCollisionSystem(reg *ecs.Registry, bus *event.Bus, log *zap.Logger) (*CollisionSystem, error) {
	s := &CollisionSystem{reg: reg, bus: bus, log: log}
	if err := requireAll(reg, &s.Base,
		ecs.Require[component.Transform],
		ecs.Require[component.BoxCollider],
	); err != nil {
		return nil, err
	}
	return s, nil
}

func (*CollisionSystem) SystemKey() ecs.SystemKey { return collisionKey }

func (s *CollisionSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *CollisionSystem) Update(_ coresys.Frame) {
	s.boxes = s.boxes[:0]
	ecs.Each2(s.reg, s.Entities(), func(e ecs.Entity, t *component.Transform, c *component.BoxCollider) {
		s.boxes = append(s.boxes, box{e: e, bounds: c.Bounds(*t)})
	})
	for i := range s.boxes {
		for j := i + 1; j < len(s.boxes); j++ {
			a, b := s.boxes[i], s.boxes[j]
			if !a.bounds.Intersects(b.bounds) {
				continue
			}
			if ce := s.log.Check(zap.DebugLevel, "collision"); ce != nil {
				ce.Write(zap.Uint32("a", a.e.ID()), zap.Uint32("b", b.e.ID()))
			}
			event.Emit(s.bus, event.Collision{A: a.e, B: b.e})
		}
	}
}
