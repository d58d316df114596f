package system

import (
	"time"

	"github.com/jungle2d/engine/internal/component"
	"github.com/jungle2d/engine/internal/core/ecs"
	coresys "github.com/jungle2d/engine/internal/core/system"
)

var animationKey = ecs.NewSystemKey("animation")

// AnimationSystem advances sprite sheet columns. Phase 2 (Update).
type AnimationSystem struct {
	ecs.Base
	reg *ecs.Registry
}

func NewAnimationSystem(reg *ecs.Registry) (*AnimationSystem, error) {
	s := &AnimationSystem{reg: reg}
	if err := requireAll(reg, &s.Base,
		ecs.Require[component.Animation],
		ecs.Require[component.Sprite],
	); err != nil {
		return nil, err
	}
	return s, nil
}

func (*AnimationSystem) SystemKey() ecs.SystemKey { return animationKey }

func (s *AnimationSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *AnimationSystem) Update(f coresys.Frame) {
	ecs.Each2(s.reg, s.Entities(), func(_ ecs.Entity, a *component.Animation, sp *component.Sprite) {
		a.CurrentFrame = frameAt(*a, f.Now)
		sp.Column = a.CurrentFrame
	})
}

// frameAt returns the frame shown at now. Non-looping animations stop on
// their last frame.
func frameAt(a component.Animation, now time.Duration) int {
	if a.NumFrames <= 1 || a.FrameRate <= 0 {
		return 0
	}
	elapsed := now - a.StartTime
	if elapsed < 0 {
		return 0
	}
	n := int(elapsed.Milliseconds() * int64(a.FrameRate) / 1000)
	if !a.Loop && n >= a.NumFrames {
		return a.NumFrames - 1
	}
	return n % a.NumFrames
}
