package ecs

import (
	"fmt"
	"reflect"
	"slices"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// SystemKey identifies one system type. Keys are handed out by NewSystemKey
// from package-level variable initialisers, so every system type gets its key
// once, at init, instead of being looked up by runtime type identity.
type SystemKey uint16

var systemKeyNames []string

// NewSystemKey assigns the next key. Call it only from package initialisation.
func NewSystemKey(name string) SystemKey {
	systemKeyNames = append(systemKeyNames, name)
	return SystemKey(len(systemKeyNames) - 1)
}

func (k SystemKey) String() string {
	if int(k) < len(systemKeyNames) {
		return systemKeyNames[k]
	}
	return fmt.Sprintf("system#%d", uint16(k))
}

// System is implemented by every system type. Embed Base to get the entity
// list and signature, and return a constant key from SystemKey without
// reading the receiver: GetSystem calls it on the zero value of the type.
type System interface {
	SystemKey() SystemKey
	base() *Base
}

// Base carries a system's requirement signature and its cached list of
// matching entities. The list is maintained by the Registry only.
type Base struct {
	signature Signature
	entities  []Entity
}

func (b *Base) base() *Base { return b }

// Signature returns the requirement signature.
func (b *Base) Signature() Signature { return b.signature }

// Entities returns the matching entities in admission order. The slice is
// owned by the system and must not be modified.
func (b *Base) Entities() []Entity { return b.entities }

// Len returns the number of matching entities.
func (b *Base) Len() int { return len(b.entities) }

// Contains reports whether e is in the cached list.
func (b *Base) Contains(e Entity) bool { return slices.Contains(b.entities, e) }

func (b *Base) addEntity(e Entity) {
	b.entities = append(b.entities, e)
}

func (b *Base) removeEntity(e Entity) {
	b.entities = slices.DeleteFunc(b.entities, func(other Entity) bool { return other == e })
}

// Require declares that the system embedding b needs component T. Call it
// while constructing the system, before AddSystem.
func Require[T any](r *Registry, b *Base) error {
	id, err := ComponentIDOf[T](r)
	if err != nil {
		return err
	}
	b.signature = b.signature.Set(id)
	return nil
}

// AddSystem registers s under its key. Entities already admitted are not
// back-filled; s only sees entities born after it was added.
func AddSystem(r *Registry, s System) error {
	key := s.SystemKey()
	if _, ok := r.systems[key]; ok {
		return eris.Wrapf(ErrDuplicateSystem, "add system %s", key)
	}
	r.systems[key] = s
	r.systemOrder = append(r.systemOrder, key)
	r.log.Info("system added",
		zap.String("system", key.String()),
		zap.String("signature", s.base().Signature().String()))
	return nil
}

// keyOf resolves the key of S from its zero value. It reports false when S
// is an interface type or its SystemKey method reads the nil receiver.
func keyOf[S System]() (key SystemKey, ok bool) {
	var zero S
	if any(zero) == nil {
		return 0, false
	}
	defer func() {
		if recover() != nil {
			key, ok = 0, false
		}
	}()
	return zero.SystemKey(), true
}

// GetSystem returns the registered instance of S.
func GetSystem[S System](r *Registry) (S, error) {
	var zero S
	key, ok := keyOf[S]()
	if !ok {
		return zero, eris.Wrapf(ErrNotFound, "system type %s has no key", reflect.TypeFor[S]())
	}
	s, ok := r.systems[key]
	if !ok {
		return zero, eris.Wrapf(ErrNotFound, "system %s", key)
	}
	typed, ok := s.(S)
	if !ok {
		return zero, eris.Wrapf(ErrNotFound, "system %s is %T", key, s)
	}
	return typed, nil
}

// HasSystem reports whether S was added.
func HasSystem[S System](r *Registry) bool {
	key, ok := keyOf[S]()
	if !ok {
		return false
	}
	_, ok = r.systems[key]
	return ok
}

// RemoveSystem drops S. Removing an unknown system fails with ErrNotFound.
func RemoveSystem[S System](r *Registry) error {
	key, ok := keyOf[S]()
	if !ok {
		return eris.Wrapf(ErrNotFound, "remove system type %s", reflect.TypeFor[S]())
	}
	if _, ok := r.systems[key]; !ok {
		return eris.Wrapf(ErrNotFound, "remove system %s", key)
	}
	delete(r.systems, key)
	r.systemOrder = slices.DeleteFunc(r.systemOrder, func(k SystemKey) bool { return k == key })
	return nil
}
