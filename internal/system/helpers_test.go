package system

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jungle2d/engine/internal/component"
	"github.com/jungle2d/engine/internal/core/ecs"
	"github.com/jungle2d/engine/internal/core/event"
	coresys "github.com/jungle2d/engine/internal/core/system"
)

type world struct {
	reg *ecs.Registry
	bus *event.Bus
	log *zap.Logger
}

func newWorld() *world {
	return &world{reg: ecs.NewRegistry(), bus: event.NewBus(nil), log: zap.NewNop()}
}

func must[S any](s S, err error) S {
	if err != nil {
		panic(err)
	}
	return s
}

// add registers s with the registry; it must happen before entities are
// created for s to see them.
func add[S ecs.System](t *testing.T, w *world, s S) S {
	t.Helper()
	require.NoError(t, ecs.AddSystem(w.reg, s))
	return s
}

func spawn(t *testing.T, w *world, comps ...func(*ecs.Registry, ecs.Entity) error) ecs.Entity {
	t.Helper()
	e := w.reg.CreateEntity()
	for _, c := range comps {
		require.NoError(t, c(w.reg, e))
	}
	return e
}

func comp[T any](v T) func(*ecs.Registry, ecs.Entity) error {
	return func(r *ecs.Registry, e ecs.Entity) error { return ecs.AddComponent(r, e, v) }
}

func get[T any](t *testing.T, w *world, e ecs.Entity) *T {
	t.Helper()
	c, err := ecs.GetComponent[T](w.reg, e)
	require.NoError(t, err)
	return c
}

func frame(now time.Duration) coresys.Frame {
	return coresys.Frame{Now: now, Delta: 10 * time.Millisecond}
}

func at(x, y float64) component.Transform {
	return component.Transform{Position: component.Vec2{X: x, Y: y}, Scale: component.Vec2{X: 1, Y: 1}}
}
