package ecs

import (
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Registry owns every piece of entity state: component pools, signatures,
// systems, the free-id list, the pending add/kill buffers and the tag and
// group indices. It is the single point of mutation and is not safe for
// concurrent use; the frame loop owns it.
type Registry struct {
	types       *TypeRegistry
	ownsTypes   bool
	ids         idAllocator
	signatures  []Signature
	pools       []sizer
	systems     map[SystemKey]System
	systemOrder []SystemKey
	toAdd       entityQueue
	toKill      entityQueue
	tags        tagIndex
	groups      groupIndex
	log         *zap.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(r *Registry) { r.log = log }
}

// WithTypes injects a shared type registry, for example to keep component
// ids identical across several registries. Reset leaves an injected type
// registry alone; clear it with Types().Reset() once no registry uses it.
func WithTypes(types *TypeRegistry) Option {
	return func(r *Registry) { r.types = types }
}

func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		signatures: make([]Signature, 0, 256),
		pools:      make([]sizer, 0, MaxComponents),
		systems:    make(map[SystemKey]System, 16),
		toAdd:      newEntityQueue(),
		toKill:     newEntityQueue(),
		tags:       newTagIndex(),
		groups:     newGroupIndex(),
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.types == nil {
		r.types = NewTypeRegistry()
		r.ownsTypes = true
	}
	return r
}

// Types returns the component type registry.
func (r *Registry) Types() *TypeRegistry { return r.types }

// CreateEntity allocates an id, recycled ids first, and queues the entity for
// admission. Systems do not see it until the next Update.
func (r *Registry) CreateEntity() Entity {
	e := Entity(r.ids.acquire())
	if n := int(e) + 1; n > len(r.signatures) {
		r.signatures = append(r.signatures, make([]Signature, n-len(r.signatures))...)
	}
	r.signatures[e] = 0
	r.toAdd.push(e)
	r.log.Debug("entity created", zap.Uint32("entity", e.ID()))
	return e
}

// KillEntity queues e for removal at the next Update. Until then e stays live
// and keeps its components, tag and group. Killing twice in a frame is a no-op.
func (r *Registry) KillEntity(e Entity) error {
	if !r.IsAlive(e) {
		return eris.Wrapf(ErrInvalidEntity, "kill %s", e)
	}
	if r.toKill.push(e) {
		r.log.Debug("entity killed", zap.Uint32("entity", e.ID()))
	}
	return nil
}

// IsAlive reports whether e is currently allocated. Entities pending admission
// or pending kill are alive.
func (r *Registry) IsAlive(e Entity) bool { return r.ids.isAlive(e.ID()) }

// IsPendingKill reports whether e will be removed at the next Update.
func (r *Registry) IsPendingKill(e Entity) bool { return r.toKill.contains(e) }

// Signature returns e's component signature, or zero for a dead entity.
func (r *Registry) Signature(e Entity) Signature {
	if !r.IsAlive(e) {
		return 0
	}
	return r.signatures[e]
}

// NumEntities returns the number of live entities.
func (r *Registry) NumEntities() int { return r.ids.live() }

// Pending returns the sizes of the add and kill buffers.
func (r *Registry) Pending() (adds, kills int) { return r.toAdd.len(), r.toKill.len() }

// PoolSize returns the number of slots in the pool for id, zero if none exists.
func (r *Registry) PoolSize(id ComponentID) int {
	if int(id) >= len(r.pools) || r.pools[id] == nil {
		return 0
	}
	return r.pools[id].size()
}

// Update applies the structural changes staged since the last call. Pending
// additions are matched against every system first; pending kills are then
// removed from every system, stripped of signature, tag and group, and their
// ids returned to the free list.
func (r *Registry) Update() {
	adds, kills := r.Pending()
	r.toAdd.drain(r.addEntityToSystems)
	r.toKill.drain(func(e Entity) {
		r.removeEntityFromSystems(e)
		r.signatures[e] = 0
		r.tags.remove(e)
		r.groups.remove(e)
		r.ids.release(e.ID())
	})
	if adds > 0 || kills > 0 {
		r.log.Debug("registry updated", zap.Int("added", adds), zap.Int("killed", kills))
	}
}

func (r *Registry) addEntityToSystems(e Entity) {
	sig := r.signatures[e]
	for _, key := range r.systemOrder {
		b := r.systems[key].base()
		if sig.Matches(b.signature) {
			b.addEntity(e)
		}
	}
}

func (r *Registry) removeEntityFromSystems(e Entity) {
	for _, key := range r.systemOrder {
		r.systems[key].base().removeEntity(e)
	}
}

// Reset returns the registry to its freshly constructed state: every entity,
// pool, system and index is dropped. The type registry is cleared only when
// the registry created it.
func (r *Registry) Reset() {
	r.ids.reset()
	r.signatures = r.signatures[:0]
	r.pools = r.pools[:0]
	clear(r.systems)
	r.systemOrder = r.systemOrder[:0]
	r.toAdd.reset()
	r.toKill.reset()
	r.tags = newTagIndex()
	r.groups = newGroupIndex()
	if r.ownsTypes {
		r.types.Reset()
	}
}
