package component

// Transform places an entity in the world.
type Transform struct {
	Position Vec2
	Scale    Vec2 // zero is treated as 1
	Rotation float64
}

// ScaleOr1 returns the scale with zero axes replaced by 1.
func (t Transform) ScaleOr1() Vec2 {
	s := t.Scale
	if s.X == 0 {
		s.X = 1
	}
	if s.Y == 0 {
		s.Y = 1
	}
	return s
}

// RigidBody moves its entity by Velocity world units per second.
type RigidBody struct {
	Velocity Vec2
}
