package system

import (
	"go.uber.org/zap"

	"github.com/jungle2d/engine/internal/component"
	"github.com/jungle2d/engine/internal/core/ecs"
	"github.com/jungle2d/engine/internal/core/event"
	"github.com/jungle2d/engine/internal/factory"
	"github.com/jungle2d/engine/internal/scripting"
)

var damageKey = ecs.NewSystemKey("damage")

// DamageCalculator turns a projectile hit into lost health.
type DamageCalculator interface {
	CalcProjectileDamage(ctx scripting.DamageContext) int
}

// DamageSystem applies projectile hits reported by collisions. Hostile
// projectiles hurt the player; friendly ones hurt enemies. It has no
// per-frame work of its own.
type DamageSystem struct {
	ecs.Base
	reg  *ecs.Registry
	calc DamageCalculator // nil uses the projectile's nominal damage
	log  *zap.Logger
}

func NewDamageSystem(reg *ecs.Registry, calc DamageCalculator, log *zap.Logger) (*DamageSystem, error) {
	s := &DamageSystem{reg: reg, calc: calc, log: log}
	if err := requireAll(reg, &s.Base, ecs.Require[component.BoxCollider]); err != nil {
		return nil, err
	}
	return s, nil
}

func (*DamageSystem) SystemKey() ecs.SystemKey { return damageKey }

func (s *DamageSystem) SubscribeToEvents(bus *event.Bus) {
	event.Subscribe(bus, s, s.onCollision)
}

func (s *DamageSystem) onCollision(ev *event.Collision) {
	a, b := ev.A, ev.B
	switch {
	case s.isProjectile(a) && s.reg.HasTag(b, factory.TagPlayer):
		s.hit(a, b, true)
	case s.isProjectile(b) && s.reg.HasTag(a, factory.TagPlayer):
		s.hit(b, a, true)
	case s.isProjectile(a) && s.reg.BelongsToGroup(b, factory.GroupEnemies):
		s.hit(a, b, false)
	case s.isProjectile(b) && s.reg.BelongsToGroup(a, factory.GroupEnemies):
		s.hit(b, a, false)
	}
}

// isProjectile ignores projectiles that already hit something this frame.
func (s *DamageSystem) isProjectile(e ecs.Entity) bool {
	return s.reg.BelongsToGroup(e, factory.GroupProjectiles) && !s.reg.IsPendingKill(e)
}

func (s *DamageSystem) hit(projectile, target ecs.Entity, targetIsPlayer bool) {
	p, err := ecs.GetComponent[component.Projectile](s.reg, projectile)
	if err != nil {
		s.log.Warn("projectile without payload", zap.Uint32("entity", projectile.ID()), zap.Error(err))
		return
	}
	// Player shots pass through the player, enemy shots through enemies.
	if p.Friendly == targetIsPlayer {
		return
	}
	health, err := ecs.GetComponent[component.Health](s.reg, target)
	if err != nil {
		s.log.Warn("hit target has no health", zap.Uint32("entity", target.ID()), zap.Error(err))
		return
	}

	dmg := p.HitPercentDamage
	if s.calc != nil {
		dmg = s.calc.CalcProjectileDamage(scripting.DamageContext{
			HitPercentDamage: p.HitPercentDamage,
			TargetHealth:     health.Percentage,
			TargetIsPlayer:   targetIsPlayer,
			Friendly:         p.Friendly,
		})
	}
	health.Percentage -= dmg
	s.log.Debug("projectile hit",
		zap.Uint32("target", target.ID()),
		zap.Bool("player", targetIsPlayer),
		zap.Int("damage", dmg),
		zap.Int("health", health.Percentage))

	if health.Percentage <= 0 {
		health.Percentage = 0
		kill(s.reg, s.log, target)
		s.log.Info("entity destroyed", zap.Uint32("entity", target.ID()), zap.Bool("player", targetIsPlayer))
	}
	kill(s.reg, s.log, projectile)
}
