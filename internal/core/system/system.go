package system

import "time"

// Phase defines execution ordering within a single frame.
type Phase int

const (
	PhaseInput      Phase = iota // 0: key events into the bus
	PhasePreUpdate               // 1: bus reset, resubscribe, registry update
	PhaseUpdate                  // 2: movement, animation, collision
	PhasePostUpdate              // 3: emission, lifecycle, camera
	PhaseRender                  // 4: draw to the canvas
	PhaseCleanup                 // 5: end-of-frame bookkeeping
)

var phaseNames = [...]string{"input", "pre-update", "update", "post-update", "render", "cleanup"}

func (p Phase) String() string {
	if p >= 0 && int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "unknown"
}

// Frame is the per-frame context handed to every system.
type Frame struct {
	Number uint64
	Now    time.Duration // since the game started
	Delta  time.Duration // since the previous frame
}

// Seconds returns Delta in seconds, the unit velocities are expressed in.
func (f Frame) Seconds() float64 { return f.Delta.Seconds() }

// System is the interface every runnable system implements.
type System interface {
	Phase() Phase
	Update(f Frame)
}
