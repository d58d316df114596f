// Package factory creates the game's entities.
package factory

import (
	"fmt"
	"time"

	"github.com/jungle2d/engine/internal/component"
	"github.com/jungle2d/engine/internal/core/ecs"
)

// Tags and groups used by gameplay systems.
const (
	TagPlayer        = "player"
	GroupEnemies     = "enemies"
	GroupProjectiles = "projectiles"
	GroupTiles       = "tiles"
)

// BulletAsset is the texture every projectile uses.
const BulletAsset = "bullet-image"

// builder adds components to one entity and keeps the first failure.
type builder struct {
	reg *ecs.Registry
	e   ecs.Entity
	err error
}

func newBuilder(reg *ecs.Registry) *builder {
	return &builder{reg: reg, e: reg.CreateEntity()}
}

func with[T any](b *builder, v T) {
	if b.err == nil {
		b.err = ecs.AddComponent(b.reg, b.e, v)
	}
}

func (b *builder) tag(name string) {
	if b.err == nil && name != "" {
		b.err = b.reg.TagEntity(b.e, name)
	}
}

func (b *builder) group(name string) {
	if b.err == nil && name != "" {
		b.err = b.reg.GroupEntity(b.e, name)
	}
}

// done returns the entity, killing it again if any step failed.
func (b *builder) done() (ecs.Entity, error) {
	if b.err != nil {
		_ = b.reg.KillEntity(b.e)
		return 0, b.err
	}
	return b.e, nil
}

// NewProjectile creates a projectile fired from an emitter at pos with the
// given velocity. It lives for the emitter's duration, starting at now.
func NewProjectile(reg *ecs.Registry, pos, vel component.Vec2, em component.ProjectileEmitter, now time.Duration) (ecs.Entity, error) {
	b := newBuilder(reg)
	with(b, component.Transform{Position: pos, Scale: component.Vec2{X: 1, Y: 1}})
	with(b, component.RigidBody{Velocity: vel})
	with(b, component.Sprite{AssetID: BulletAsset, Width: 1, Height: 1, ZIndex: 4})
	with(b, component.BoxCollider{Width: 1, Height: 1})
	with(b, component.Projectile{
		Friendly:         em.Friendly,
		HitPercentDamage: em.HitPercentDamage,
		Duration:         em.Duration,
		StartTime:        now,
	})
	b.group(GroupProjectiles)
	e, err := b.done()
	if err != nil {
		return 0, fmt.Errorf("create projectile: %w", err)
	}
	return e, nil
}

// Muzzle returns where a shooter's projectiles appear: the centre of its
// sprite, or its position when it has none.
func Muzzle(reg *ecs.Registry, e ecs.Entity, t component.Transform) component.Vec2 {
	pos := t.Position
	if sp, err := ecs.GetComponent[component.Sprite](reg, e); err == nil {
		s := t.ScaleOr1()
		pos.X += s.X * float64(sp.Width) / 2
		pos.Y += s.Y * float64(sp.Height) / 2
	}
	return pos
}
