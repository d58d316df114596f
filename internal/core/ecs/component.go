package ecs

import (
	"reflect"

	"github.com/rotisserie/eris"
)

// MaxComponents bounds the number of distinct component types; it equals the
// Signature width.
const MaxComponents = 32

// ComponentID is the small integer assigned to a component payload type.
type ComponentID uint8

// TypeRegistry assigns every component payload type a stable id on first use.
// It is owned by a Registry (or injected into several) rather than being
// process-wide, and Reset gives tests a clean slate.
type TypeRegistry struct {
	ids   map[reflect.Type]ComponentID
	types []reflect.Type
}

func NewTypeRegistry() *TypeRegistry {
	return &TypeRegistry{
		ids:   make(map[reflect.Type]ComponentID, MaxComponents),
		types: make([]reflect.Type, 0, MaxComponents),
	}
}

// ID returns the id for t, assigning the next free one if t is new.
func (tr *TypeRegistry) ID(t reflect.Type) (ComponentID, error) {
	if id, ok := tr.ids[t]; ok {
		return id, nil
	}
	if len(tr.types) >= MaxComponents {
		return 0, eris.Wrapf(ErrCapacityExceeded, "register %s: %d types already registered", t, len(tr.types))
	}
	id := ComponentID(len(tr.types))
	tr.ids[t] = id
	tr.types = append(tr.types, t)
	return id, nil
}

// Lookup returns the id for t without registering it.
func (tr *TypeRegistry) Lookup(t reflect.Type) (ComponentID, bool) {
	id, ok := tr.ids[t]
	return id, ok
}

// Type returns the payload type registered under id, or nil.
func (tr *TypeRegistry) Type(id ComponentID) reflect.Type {
	if int(id) >= len(tr.types) {
		return nil
	}
	return tr.types[id]
}

// Len returns the number of registered types.
func (tr *TypeRegistry) Len() int { return len(tr.types) }

// Reset forgets every assignment.
func (tr *TypeRegistry) Reset() {
	clear(tr.ids)
	tr.types = tr.types[:0]
}

// pool is dense storage for one payload type, indexed by entity id. Slots are
// never compacted; a removed component only loses its signature bit.
type pool[T any] struct {
	data []T
}

func (p *pool[T]) set(idx uint32, v T) {
	if n := int(idx) + 1; n > len(p.data) {
		p.data = append(p.data, make([]T, n-len(p.data))...)
	}
	p.data[idx] = v
}

func (p *pool[T]) get(idx uint32) *T {
	if int(idx) >= len(p.data) {
		return nil
	}
	return &p.data[idx]
}

func (p *pool[T]) size() int { return len(p.data) }

// sizer lets the registry report pool sizes without knowing element types.
type sizer interface {
	size() int
}

// ComponentIDOf returns the id for T in r's type registry, assigning one on
// first use.
func ComponentIDOf[T any](r *Registry) (ComponentID, error) {
	return r.types.ID(reflect.TypeFor[T]())
}

// poolOf returns the pool for T stored under id. The table holds pools of
// mixed element types, so the concrete type is checked here.
func poolOf[T any](r *Registry, id ComponentID, create bool) (*pool[T], error) {
	if int(id) >= len(r.pools) {
		if !create {
			return nil, eris.Wrapf(ErrNotFound, "no pool for component %d", id)
		}
		r.pools = append(r.pools, make([]sizer, int(id)+1-len(r.pools))...)
	}
	if r.pools[id] == nil {
		if !create {
			return nil, eris.Wrapf(ErrNotFound, "no pool for component %d", id)
		}
		r.pools[id] = &pool[T]{}
	}
	p, ok := r.pools[id].(*pool[T])
	if !ok {
		return nil, eris.Wrapf(ErrNotFound, "pool %d holds %T, not %s", id, r.pools[id], reflect.TypeFor[T]())
	}
	return p, nil
}

// AddComponent stores v as e's component of type T, replacing any previous
// value, and sets the signature bit. An already-admitted entity is not
// re-matched against systems; membership is only evaluated when the entity
// is born or killed.
func AddComponent[T any](r *Registry, e Entity, v T) error {
	if !r.IsAlive(e) {
		return eris.Wrapf(ErrInvalidEntity, "add %s to %s", reflect.TypeFor[T](), e)
	}
	id, err := ComponentIDOf[T](r)
	if err != nil {
		return err
	}
	p, err := poolOf[T](r, id, true)
	if err != nil {
		return err
	}
	p.set(e.ID(), v)
	r.signatures[e] = r.signatures[e].Set(id)
	return nil
}

// RemoveComponent clears e's signature bit for T. The pool slot keeps its
// stale value but is no longer reachable.
func RemoveComponent[T any](r *Registry, e Entity) error {
	if !r.IsAlive(e) {
		return eris.Wrapf(ErrInvalidEntity, "remove %s from %s", reflect.TypeFor[T](), e)
	}
	id, ok := r.types.Lookup(reflect.TypeFor[T]())
	if !ok {
		return nil
	}
	r.signatures[e] = r.signatures[e].Clear(id)
	return nil
}

// HasComponent reports whether e currently holds a T. It never fails: unknown
// types and dead entities simply report false.
func HasComponent[T any](r *Registry, e Entity) bool {
	if !r.IsAlive(e) {
		return false
	}
	id, ok := r.types.Lookup(reflect.TypeFor[T]())
	if !ok {
		return false
	}
	return r.signatures[e].Test(id)
}

// GetComponent returns a pointer to e's T. The pointer is only valid until the
// pool next grows, so callers must not keep it past the current call.
func GetComponent[T any](r *Registry, e Entity) (*T, error) {
	if !r.IsAlive(e) {
		return nil, eris.Wrapf(ErrInvalidEntity, "get %s of %s", reflect.TypeFor[T](), e)
	}
	id, ok := r.types.Lookup(reflect.TypeFor[T]())
	if !ok || !r.signatures[e].Test(id) {
		return nil, eris.Wrapf(ErrNotFound, "%s has no %s", e, reflect.TypeFor[T]())
	}
	p, err := poolOf[T](r, id, false)
	if err != nil {
		return nil, err
	}
	c := p.get(e.ID())
	if c == nil {
		return nil, eris.Wrapf(ErrNotFound, "%s has no %s slot", e, reflect.TypeFor[T]())
	}
	return c, nil
}
