package component

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRectIntersects(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 2, H: 2}
	cases := []struct {
		name string
		b    Rect
		want bool
	}{
		{"overlap", Rect{X: 1, Y: 1, W: 2, H: 2}, true},
		{"inside", Rect{X: 0.5, Y: 0.5, W: 0.5, H: 0.5}, true},
		{"touching edge", Rect{X: 2, Y: 0, W: 1, H: 1}, false},
		{"apart", Rect{X: 5, Y: 5, W: 1, H: 1}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, a.Intersects(tc.b))
			assert.Equal(t, tc.want, tc.b.Intersects(a))
		})
	}
}

func TestColliderBounds(t *testing.T) {
	c := BoxCollider{Width: 2, Height: 1, Offset: Vec2{X: 1}}
	got := c.Bounds(Transform{Position: Vec2{X: 3, Y: 4}, Scale: Vec2{X: 2}})
	assert.Equal(t, Rect{X: 4, Y: 4, W: 2, H: 1}, got)
}

func TestProjectileExpired(t *testing.T) {
	p := Projectile{Duration: time.Second, StartTime: 2 * time.Second}
	assert.False(t, p.Expired(3*time.Second))
	assert.True(t, p.Expired(3*time.Second+time.Millisecond))
}

func TestVec2(t *testing.T) {
	v := Vec2{X: 3, Y: 4}
	assert.Equal(t, 5.0, v.Len())
	assert.Equal(t, Vec2{X: 6, Y: 8}, v.Scale(2))
	assert.Equal(t, Vec2{X: 4, Y: 4}, v.Add(Vec2{X: 1}))
	assert.True(t, Vec2{}.IsZero())
}
