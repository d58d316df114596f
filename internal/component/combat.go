package component

import "time"

// BoxCollider is the entity's hit box, relative to its transform.
type BoxCollider struct {
	Width  float64
	Height float64
	Offset Vec2
}

// Bounds returns the collider rectangle in world space. The transform's
// scale does not apply to colliders.
func (c BoxCollider) Bounds(t Transform) Rect {
	return Rect{
		X: t.Position.X + c.Offset.X,
		Y: t.Position.Y + c.Offset.Y,
		W: c.Width,
		H: c.Height,
	}
}

// Health is a percentage in [0, 100]. The entity dies at zero.
type Health struct {
	Percentage int
}

// Projectile damages whatever it hits. Friendly projectiles only hurt
// enemies; the others only hurt the player.
type Projectile struct {
	Friendly         bool
	HitPercentDamage int
	Duration         time.Duration
	StartTime        time.Duration
}

// Expired reports whether the projectile has outlived its duration at now.
func (p Projectile) Expired(now time.Duration) bool {
	return now-p.StartTime > p.Duration
}

// ProjectileEmitter spawns projectiles every RepeatFrequency. A zero
// frequency disables timed emission; the entity can still fire on demand.
type ProjectileEmitter struct {
	Velocity         Vec2
	RepeatFrequency  time.Duration
	Duration         time.Duration
	HitPercentDamage int
	Friendly         bool
	LastEmissionTime time.Duration
}
