package ecs

import "github.com/rotisserie/eris"

// Error kinds returned by the registry. Call sites wrap them with context, so
// compare with errors.Is or eris.Is.
var (
	// ErrCapacityExceeded means registering another component type would
	// overflow the signature width.
	ErrCapacityExceeded = eris.New("ecs: component capacity exceeded")

	// ErrNotFound covers a missing component, system, tag or pool.
	ErrNotFound = eris.New("ecs: not found")

	// ErrInvalidEntity means the entity id is not currently live.
	ErrInvalidEntity = eris.New("ecs: invalid entity")

	// ErrDuplicateSystem means a system with the same key was already added.
	ErrDuplicateSystem = eris.New("ecs: system already added")
)
