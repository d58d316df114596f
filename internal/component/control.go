package component

// KeyboardControlled sets the entity's velocity from the arrow keys.
type KeyboardControlled struct {
	Up    Vec2
	Right Vec2
	Down  Vec2
	Left  Vec2
}

// CameraFollow marks the entity the camera centres on.
type CameraFollow struct{}
