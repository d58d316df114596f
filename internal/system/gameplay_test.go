package system

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/jungle2d/engine/internal/component"
	"github.com/jungle2d/engine/internal/core/ecs"
	"github.com/jungle2d/engine/internal/core/event"
	coresys "github.com/jungle2d/engine/internal/core/system"
	"github.com/jungle2d/engine/internal/factory"
	"github.com/jungle2d/engine/internal/render"
	"github.com/jungle2d/engine/internal/scripting"
)

func TestMovement(t *testing.T) {
	w := newWorld()
	mv := add(t, w, must(NewMovementSystem(w.reg)))
	e := spawn(t, w, comp(at(1, 1)), comp(component.RigidBody{Velocity: component.Vec2{X: 4, Y: -2}}))
	still := spawn(t, w, comp(at(5, 5)))
	w.reg.Update()

	mv.Update(coresys.Frame{Delta: 500 * time.Millisecond})

	assert.Equal(t, component.Vec2{X: 3, Y: 0}, get[component.Transform](t, w, e).Position)
	assert.Equal(t, component.Vec2{X: 5, Y: 5}, get[component.Transform](t, w, still).Position)
}

func TestFrameAt(t *testing.T) {
	loop := component.Animation{NumFrames: 2, FrameRate: 10, Loop: true, StartTime: time.Second}
	once := component.Animation{NumFrames: 8, FrameRate: 5, StartTime: 0}
	cases := []struct {
		name string
		a    component.Animation
		now  time.Duration
		want int
	}{
		{"start", loop, time.Second, 0},
		{"second frame", loop, time.Second + 100*time.Millisecond, 1},
		{"wraps", loop, time.Second + 200*time.Millisecond, 0},
		{"before start", loop, 0, 0},
		{"no loop holds last", once, 10 * time.Second, 7},
		{"no loop midway", once, time.Second, 5},
		{"single frame", component.Animation{NumFrames: 1, FrameRate: 10}, time.Hour, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, frameAt(tc.a, tc.now))
		})
	}
}

func TestAnimationSetsSpriteColumn(t *testing.T) {
	w := newWorld()
	anim := add(t, w, must(NewAnimationSystem(w.reg)))
	e := spawn(t, w,
		comp(component.Sprite{AssetID: "radar"}),
		comp(component.Animation{NumFrames: 8, FrameRate: 5, Loop: true}))
	w.reg.Update()

	anim.Update(frame(600 * time.Millisecond))

	assert.Equal(t, 3, get[component.Sprite](t, w, e).Column)
	assert.Equal(t, 3, get[component.Animation](t, w, e).CurrentFrame)
}

func TestCollisionEmitsOverlappingPairs(t *testing.T) {
	w := newWorld()
	cs := add(t, w, must(NewCollisionSystem(w.reg, w.bus, w.log)))
	box := comp(component.BoxCollider{Width: 2, Height: 2})
	a := spawn(t, w, comp(at(0, 0)), box)
	b := spawn(t, w, comp(at(1, 1)), box)
	spawn(t, w, comp(at(10, 10)), box)
	d := spawn(t, w, comp(at(2, 0)), box) // touches a, overlaps b
	w.reg.Update()

	var got []event.Collision
	event.Subscribe(w.bus, nil, func(ev *event.Collision) { got = append(got, *ev) })
	cs.Update(frame(0))

	assert.Equal(t, []event.Collision{{A: a, B: b}, {A: b, B: d}}, got)
}

type fixedDamage int

func (d fixedDamage) CalcProjectileDamage(scripting.DamageContext) int { return int(d) }

func damageWorld(t *testing.T, calc DamageCalculator) *world {
	t.Helper()
	w := newWorld()
	ds := add(t, w, must(NewDamageSystem(w.reg, calc, w.log)))
	ds.SubscribeToEvents(w.bus)
	return w
}

func spawnProjectile(t *testing.T, w *world, friendly bool, dmg int) ecs.Entity {
	t.Helper()
	e, err := factory.NewProjectile(w.reg, component.Vec2{}, component.Vec2{},
		component.ProjectileEmitter{Friendly: friendly, HitPercentDamage: dmg, Duration: time.Second}, 0)
	require.NoError(t, err)
	return e
}

func spawnTarget(t *testing.T, w *world, health int, tag, group string) ecs.Entity {
	t.Helper()
	e := spawn(t, w, comp(at(0, 0)), comp(component.BoxCollider{Width: 1, Height: 1}), comp(component.Health{Percentage: health}))
	if tag != "" {
		require.NoError(t, w.reg.TagEntity(e, tag))
	}
	if group != "" {
		require.NoError(t, w.reg.GroupEntity(e, group))
	}
	return e
}

func TestDamageHostileProjectileHitsPlayer(t *testing.T) {
	w := damageWorld(t, nil)
	player := spawnTarget(t, w, 100, factory.TagPlayer, "")
	p := spawnProjectile(t, w, false, 30)
	w.reg.Update()

	event.Emit(w.bus, event.Collision{A: player, B: p})

	assert.Equal(t, 70, get[component.Health](t, w, player).Percentage)
	assert.True(t, w.reg.IsPendingKill(p))
	assert.False(t, w.reg.IsPendingKill(player))

	event.Emit(w.bus, event.Collision{A: p, B: player})
	assert.Equal(t, 70, get[component.Health](t, w, player).Percentage, "a spent projectile does no more damage")
}

func TestDamageFriendlyFire(t *testing.T) {
	w := damageWorld(t, nil)
	player := spawnTarget(t, w, 100, factory.TagPlayer, "")
	enemy := spawnTarget(t, w, 100, "", factory.GroupEnemies)
	own := spawnProjectile(t, w, true, 30)
	hostile := spawnProjectile(t, w, false, 30)
	w.reg.Update()

	event.Emit(w.bus, event.Collision{A: own, B: player})
	event.Emit(w.bus, event.Collision{A: hostile, B: enemy})

	assert.Equal(t, 100, get[component.Health](t, w, player).Percentage)
	assert.Equal(t, 100, get[component.Health](t, w, enemy).Percentage)
	assert.False(t, w.reg.IsPendingKill(own))
	assert.False(t, w.reg.IsPendingKill(hostile))
}

func TestDamageKillsEnemy(t *testing.T) {
	w := damageWorld(t, fixedDamage(50))
	enemy := spawnTarget(t, w, 40, "", factory.GroupEnemies)
	p := spawnProjectile(t, w, true, 10)
	w.reg.Update()

	event.Emit(w.bus, event.Collision{A: enemy, B: p})

	assert.Equal(t, 0, get[component.Health](t, w, enemy).Percentage)
	assert.True(t, w.reg.IsPendingKill(enemy))
	w.reg.Update()
	assert.False(t, w.reg.IsAlive(enemy))
	assert.Empty(t, w.reg.GetEntitiesByGroup(factory.GroupEnemies))
}

func TestDamageIgnoresUnrelatedPairs(t *testing.T) {
	w := damageWorld(t, nil)
	a := spawnTarget(t, w, 100, "", factory.GroupEnemies)
	b := spawnTarget(t, w, 100, factory.TagPlayer, "")
	w.reg.Update()

	event.Emit(w.bus, event.Collision{A: a, B: b})
	assert.Equal(t, 100, get[component.Health](t, w, a).Percentage)
	assert.Equal(t, 100, get[component.Health](t, w, b).Percentage)
}

func TestKeyboardControl(t *testing.T) {
	w := newWorld()
	kc := add(t, w, must(NewKeyboardControlSystem(w.reg)))
	kc.SubscribeToEvents(w.bus)
	e := spawn(t, w,
		comp(component.Sprite{}),
		comp(component.RigidBody{}),
		comp(component.KeyboardControlled{
			Up:    component.Vec2{Y: -1},
			Right: component.Vec2{X: 2},
			Down:  component.Vec2{Y: 1},
			Left:  component.Vec2{X: -2},
		}))
	w.reg.Update()

	cases := []struct {
		key event.Key
		vel component.Vec2
		row int
	}{
		{event.KeyRight, component.Vec2{X: 2}, rowRight},
		{event.KeyDown, component.Vec2{Y: 1}, rowDown},
		{event.KeyLeft, component.Vec2{X: -2}, rowLeft},
		{event.KeyUp, component.Vec2{Y: -1}, rowUp},
	}
	for _, tc := range cases {
		t.Run(tc.key.String(), func(t *testing.T) {
			event.Emit(w.bus, event.KeyPressed{Key: tc.key})
			assert.Equal(t, tc.vel, get[component.RigidBody](t, w, e).Velocity)
			assert.Equal(t, tc.row, get[component.Sprite](t, w, e).Row)
		})
	}

	event.Emit(w.bus, event.KeyPressed{Key: event.KeySpace})
	assert.Equal(t, component.Vec2{Y: -1}, get[component.RigidBody](t, w, e).Velocity, "other keys leave velocity alone")
}

func TestCameraFollowsAndClamps(t *testing.T) {
	w := newWorld()
	cam := &render.Camera{W: 20, H: 10}
	cs := add(t, w, must(NewCameraMovementSystem(w.reg, cam)))
	cs.SetMapSize(100, 40)
	e := spawn(t, w, comp(at(50, 20)), comp(component.CameraFollow{}))
	w.reg.Update()

	cases := []struct {
		name         string
		pos          component.Vec2
		wantX, wantY float64
	}{
		{"centred", component.Vec2{X: 50, Y: 20}, 40, 15},
		{"top left", component.Vec2{X: 2, Y: 1}, 0, 0},
		{"bottom right", component.Vec2{X: 99, Y: 39}, 80, 30},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			get[component.Transform](t, w, e).Position = tc.pos
			cs.Update(frame(0))
			assert.Equal(t, tc.wantX, cam.X)
			assert.Equal(t, tc.wantY, cam.Y)
		})
	}

	cs.SetMapSize(10, 5)
	cs.Update(frame(0))
	assert.Zero(t, cam.X, "a map smaller than the view pins the camera")
	assert.Zero(t, cam.Y)
}

func TestTimedEmission(t *testing.T) {
	w := newWorld()
	pe := add(t, w, must(NewProjectileEmitSystem(w.reg, w.log)))
	tank := spawn(t, w,
		comp(at(10, 10)),
		comp(component.Sprite{Width: 2, Height: 2}),
		comp(component.ProjectileEmitter{
			Velocity:         component.Vec2{X: 5},
			RepeatFrequency:  time.Second,
			Duration:         3 * time.Second,
			HitPercentDamage: 10,
		}))
	spawn(t, w, comp(at(0, 0)), comp(component.ProjectileEmitter{Duration: time.Second})) // on demand only
	w.reg.Update()

	pe.Update(frame(time.Second))
	assert.Empty(t, w.reg.GetEntitiesByGroup(factory.GroupProjectiles), "fires only after a full period")

	pe.Update(frame(1500 * time.Millisecond))
	shots := w.reg.GetEntitiesByGroup(factory.GroupProjectiles)
	require.Len(t, shots, 1)
	assert.Equal(t, component.Vec2{X: 11, Y: 11}, get[component.Transform](t, w, shots[0]).Position)
	assert.Equal(t, component.Vec2{X: 5}, get[component.RigidBody](t, w, shots[0]).Velocity)
	p := get[component.Projectile](t, w, shots[0])
	assert.Equal(t, 1500*time.Millisecond, p.StartTime)
	assert.False(t, p.Friendly)
	assert.Equal(t, 1500*time.Millisecond, get[component.ProjectileEmitter](t, w, tank).LastEmissionTime)

	pe.Update(frame(2 * time.Second))
	assert.Len(t, w.reg.GetEntitiesByGroup(factory.GroupProjectiles), 1)
}

func TestSpaceFiresFromCameraFollowEntity(t *testing.T) {
	w := newWorld()
	pe := add(t, w, must(NewProjectileEmitSystem(w.reg, w.log)))
	pe.SubscribeToEvents(w.bus)
	spawn(t, w,
		comp(at(4, 4)),
		comp(component.RigidBody{Velocity: component.Vec2{X: -3}}),
		comp(component.CameraFollow{}),
		comp(component.ProjectileEmitter{Velocity: component.Vec2{X: 15, Y: 15}, Duration: time.Second, Friendly: true}))
	spawn(t, w, comp(at(0, 0)), comp(component.ProjectileEmitter{Velocity: component.Vec2{X: 1}}))
	w.reg.Update()
	pe.Update(frame(7 * time.Second))

	event.Emit(w.bus, event.KeyPressed{Key: event.KeyRune, Rune: 'x'})
	assert.Empty(t, w.reg.GetEntitiesByGroup(factory.GroupProjectiles))

	event.Emit(w.bus, event.KeyPressed{Key: event.KeySpace, Rune: ' '})
	shots := w.reg.GetEntitiesByGroup(factory.GroupProjectiles)
	require.Len(t, shots, 1)
	assert.Equal(t, component.Vec2{X: -15}, get[component.RigidBody](t, w, shots[0]).Velocity)
	p := get[component.Projectile](t, w, shots[0])
	assert.True(t, p.Friendly)
	assert.Equal(t, 7*time.Second, p.StartTime)
}

func TestProjectileLifecycle(t *testing.T) {
	w := newWorld()
	pl := add(t, w, must(NewProjectileLifecycleSystem(w.reg, w.log)))
	p := spawnProjectile(t, w, true, 10)
	w.reg.Update()

	pl.Update(frame(time.Second))
	assert.False(t, w.reg.IsPendingKill(p))
	pl.Update(frame(time.Second + time.Millisecond))
	assert.True(t, w.reg.IsPendingKill(p))
}

func TestKillLogsStaleHandle(t *testing.T) {
	w := newWorld()
	core, logs := observer.New(zapcore.DebugLevel)
	e := w.reg.CreateEntity()
	kill(w.reg, zap.New(core), e)
	assert.True(t, w.reg.IsPendingKill(e))
	assert.Zero(t, logs.FilterMessage("kill skipped").Len())

	w.reg.Update()
	kill(w.reg, zap.New(core), e)

	skipped := logs.FilterMessage("kill skipped").All()
	require.Len(t, skipped, 1)
	assert.Equal(t, uint32(e), skipped[0].ContextMap()["entity"])
	assert.Contains(t, skipped[0].ContextMap()["error"], "invalid entity")
}

type subscriberFunc func(*event.Bus)

func (f subscriberFunc) SubscribeToEvents(b *event.Bus) { f(b) }

func TestFrameSyncResubscribesAndUpdates(t *testing.T) {
	w := newWorld()
	mv := add(t, w, must(NewMovementSystem(w.reg)))
	calls := 0
	sub := subscriberFunc(func(b *event.Bus) {
		event.Subscribe(b, nil, func(*event.Collision) { calls++ })
	})
	fs := NewFrameSyncSystem(w.reg, w.bus, sub)
	event.Subscribe(w.bus, nil, func(*event.Collision) { t.Fatal("stale handler survived the reset") })
	e := spawn(t, w, comp(at(0, 0)), comp(component.RigidBody{}))

	fs.Update(frame(0))

	assert.True(t, mv.Contains(e))
	event.Emit(w.bus, event.Collision{})
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, event.Subscribers[event.Collision](w.bus))
	assert.Equal(t, coresys.PhasePreUpdate, fs.Phase())
}

func TestDamageLogsDestroyedEntities(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	w := newWorld()
	w.log = zap.New(core)
	ds := add(t, w, must(NewDamageSystem(w.reg, nil, w.log)))
	ds.SubscribeToEvents(w.bus)
	player := spawnTarget(t, w, 10, factory.TagPlayer, "")
	p := spawnProjectile(t, w, false, 10)
	w.reg.Update()

	event.Emit(w.bus, event.Collision{A: p, B: player})

	assert.Equal(t, 1, logs.FilterMessage("entity destroyed").Len())
	assert.True(t, w.reg.IsPendingKill(player))
}
