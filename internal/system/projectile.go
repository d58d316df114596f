package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/jungle2d/engine/internal/component"
	"github.com/jungle2d/engine/internal/core/ecs"
	"github.com/jungle2d/engine/internal/core/event"
	coresys "github.com/jungle2d/engine/internal/core/system"
	"github.com/jungle2d/engine/internal/factory"
)

var (
	projectileEmitKey      = ecs.NewSystemKey("projectile-emit")
	projectileLifecycleKey = ecs.NewSystemKey("projectile-lifecycle")
)

// ProjectileEmitSystem fires projectiles from emitters on a timer, and from
// the camera-follow entity when Space is pressed. Phase 3 (PostUpdate).
type ProjectileEmitSystem struct {
	ecs.Base
	reg *ecs.Registry
	log *zap.Logger
	now time.Duration // time of the last Update, used by key handlers
}

func NewProjectileEmitSystem(reg *ecs.Registry, log *zap.Logger) (*ProjectileEmitSystem, error) {
	s := &ProjectileEmitSystem{reg: reg, log: log}
	if err := requireAll(reg, &s.Base,
		ecs.Require[component.ProjectileEmitter],
		ecs.Require[component.Transform],
	); err != nil {
		return nil, err
	}
	return s, nil
}

func (*ProjectileEmitSystem) SystemKey() ecs.SystemKey { return projectileEmitKey }

func (s *ProjectileEmitSystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

func (s *ProjectileEmitSystem) SubscribeToEvents(bus *event.Bus) {
	event.Subscribe(bus, s, s.onKeyPressed)
}

func (s *ProjectileEmitSystem) onKeyPressed(ev *event.KeyPressed) {
	if ev.Key != event.KeySpace {
		return
	}
	for _, e := range s.Entities() {
		if !ecs.HasComponent[component.CameraFollow](s.reg, e) {
			continue
		}
		em, err := ecs.GetComponent[component.ProjectileEmitter](s.reg, e)
		if err != nil {
			continue
		}
		t, err := ecs.GetComponent[component.Transform](s.reg, e)
		if err != nil {
			continue
		}
		var heading component.Vec2
		if rb, err := ecs.GetComponent[component.RigidBody](s.reg, e); err == nil {
			heading = component.Vec2{X: sign(rb.Velocity.X), Y: sign(rb.Velocity.Y)}
		}
		emitter, pos := *em, factory.Muzzle(s.reg, e, *t)
		if _, err := factory.NewProjectile(s.reg, pos, emitter.Velocity.Mul(heading), emitter, s.now); err != nil {
			s.log.Error("fire projectile", zap.Uint32("entity", e.ID()), zap.Error(err))
			continue
		}
		s.log.Debug("projectile fired", zap.Uint32("entity", e.ID()))
	}
}

func (s *ProjectileEmitSystem) Update(f coresys.Frame) {
	s.now = f.Now
	for _, e := range s.Entities() {
		em, err := ecs.GetComponent[component.ProjectileEmitter](s.reg, e)
		if err != nil || em.RepeatFrequency == 0 {
			continue
		}
		if f.Now-em.LastEmissionTime <= em.RepeatFrequency {
			continue
		}
		t, err := ecs.GetComponent[component.Transform](s.reg, e)
		if err != nil {
			continue
		}
		// Copy before creating: the new entity may grow the pools.
		emitter, pos := *em, factory.Muzzle(s.reg, e, *t)
		if _, err := factory.NewProjectile(s.reg, pos, emitter.Velocity, emitter, f.Now); err != nil {
			s.log.Error("emit projectile", zap.Uint32("entity", e.ID()), zap.Error(err))
			continue
		}
		if em, err = ecs.GetComponent[component.ProjectileEmitter](s.reg, e); err == nil {
			em.LastEmissionTime = f.Now
		}
	}
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// ProjectileLifecycleSystem kills projectiles that outlived their duration.
// Phase 3 (PostUpdate).
type ProjectileLifecycleSystem struct {
	ecs.Base
	reg *ecs.Registry
	log *zap.Logger
}

func NewProjectileLifecycleSystem(reg *ecs.Registry, log *zap.Logger) (*ProjectileLifecycleSystem, error) {
	s := &ProjectileLifecycleSystem{reg: reg, log: log}
	if err := requireAll(reg, &s.Base, ecs.Require[component.Projectile]); err != nil {
		return nil, err
	}
	return s, nil
}

func (*ProjectileLifecycleSystem) SystemKey() ecs.SystemKey { return projectileLifecycleKey }

func (s *ProjectileLifecycleSystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

func (s *ProjectileLifecycleSystem) Update(f coresys.Frame) {
	ecs.Each1(s.reg, s.Entities(), func(e ecs.Entity, p *component.Projectile) {
		if p.Expired(f.Now) {
			kill(s.reg, s.log, e)
		}
	})
}
