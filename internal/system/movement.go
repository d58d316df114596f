package system

import (
	"github.com/jungle2d/engine/internal/component"
	"github.com/jungle2d/engine/internal/core/ecs"
	coresys "github.com/jungle2d/engine/internal/core/system"
)

var movementKey = ecs.NewSystemKey("movement")

// MovementSystem integrates velocity into position. Phase 2 (Update).
type MovementSystem struct {
	ecs.Base
	reg *ecs.Registry
}

func NewMovementSystem(reg *ecs.Registry) (*MovementSystem, error) {
	s := &MovementSystem{reg: reg}
	if err := requireAll(reg, &s.Base,
		ecs.Require[component.Transform],
		ecs.Require[component.RigidBody],
	); err != nil {
		return nil, err
	}
	return s, nil
}

func (*MovementSystem) SystemKey() ecs.SystemKey { return movementKey }

func (s *MovementSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *MovementSystem) Update(f coresys.Frame) {
	dt := f.Seconds()
	ecs.Each2(s.reg, s.Entities(), func(_ ecs.Entity, t *component.Transform, rb *component.RigidBody) {
		t.Position = t.Position.Add(rb.Velocity.Scale(dt))
	})
}
