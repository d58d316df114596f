package system

import (
	"github.com/jungle2d/engine/internal/component"
	"github.com/jungle2d/engine/internal/core/ecs"
	coresys "github.com/jungle2d/engine/internal/core/system"
	"github.com/jungle2d/engine/internal/render"
)

var cameraKey = ecs.NewSystemKey("camera-movement")

// CameraMovementSystem centres the camera on the camera-follow entity and
// keeps it inside the map. Phase 3 (PostUpdate).
type CameraMovementSystem struct {
	ecs.Base
	reg    *ecs.Registry
	camera *render.Camera
	mapW   float64
	mapH   float64
}

func NewCameraMovementSystem(reg *ecs.Registry, camera *render.Camera) (*CameraMovementSystem, error) {
	s := &CameraMovementSystem{reg: reg, camera: camera}
	if err := requireAll(reg, &s.Base,
		ecs.Require[component.CameraFollow],
		ecs.Require[component.Transform],
	); err != nil {
		return nil, err
	}
	return s, nil
}

func (*CameraMovementSystem) SystemKey() ecs.SystemKey { return cameraKey }

func (s *CameraMovementSystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

// SetMapSize sets the world bounds the camera is clamped to.
func (s *CameraMovementSystem) SetMapSize(w, h float64) {
	s.mapW, s.mapH = w, h
}

func (s *CameraMovementSystem) Update(_ coresys.Frame) {
	cam := s.camera
	ecs.Each1(s.reg, s.Entities(), func(_ ecs.Entity, t *component.Transform) {
		cam.X = clamp(t.Position.X-cam.W/2, 0, s.mapW-cam.W)
		cam.Y = clamp(t.Position.Y-cam.H/2, 0, s.mapH-cam.H)
	})
}

// clamp limits v to [lo, hi]; when the map is smaller than the view, hi is
// below lo and the camera stays at lo.
func clamp(v, lo, hi float64) float64 {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
