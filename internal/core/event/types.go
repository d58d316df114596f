package event

import "github.com/jungle2d/engine/internal/core/ecs"

// Collision is emitted once per overlapping pair per frame.
type Collision struct {
	A, B ecs.Entity
}

// Key identifies the keys the game reacts to.
type Key uint8

const (
	KeyRune Key = iota // printable key; see KeyPressed.Rune
	KeyUp
	KeyRight
	KeyDown
	KeyLeft
	KeySpace
	KeyEscape
)

var keyNames = [...]string{"rune", "up", "right", "down", "left", "space", "escape"}

func (k Key) String() string {
	if int(k) < len(keyNames) {
		return keyNames[k]
	}
	return "unknown"
}

// KeyPressed is emitted by the input layer for every key press.
type KeyPressed struct {
	Key  Key
	Rune rune
}

// Is reports whether the event is the printable key r.
func (k KeyPressed) Is(r rune) bool { return k.Key == KeyRune && k.Rune == r }
