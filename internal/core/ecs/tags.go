package ecs

import (
	"slices"

	"github.com/rotisserie/eris"
)

// tagIndex is the exclusive entity <-> name association.
type tagIndex struct {
	byName   map[string]Entity
	byEntity map[Entity]string
}

func newTagIndex() tagIndex {
	return tagIndex{
		byName:   make(map[string]Entity),
		byEntity: make(map[Entity]string),
	}
}

func (t *tagIndex) set(e Entity, name string) {
	if old, ok := t.byEntity[e]; ok && old != name {
		delete(t.byName, old)
	}
	if holder, ok := t.byName[name]; ok && holder != e {
		delete(t.byEntity, holder)
	}
	t.byName[name] = e
	t.byEntity[e] = name
}

func (t *tagIndex) remove(e Entity) {
	if name, ok := t.byEntity[e]; ok {
		delete(t.byName, name)
		delete(t.byEntity, e)
	}
}

// groupIndex maps a group name to its members and each member back to its
// single group.
type groupIndex struct {
	byName   map[string]map[Entity]struct{}
	byEntity map[Entity]string
}

func newGroupIndex() groupIndex {
	return groupIndex{
		byName:   make(map[string]map[Entity]struct{}),
		byEntity: make(map[Entity]string),
	}
}

func (g *groupIndex) add(e Entity, name string) {
	if old, ok := g.byEntity[e]; ok {
		if old == name {
			return
		}
		g.drop(e, old)
	}
	members, ok := g.byName[name]
	if !ok {
		members = make(map[Entity]struct{})
		g.byName[name] = members
	}
	members[e] = struct{}{}
	g.byEntity[e] = name
}

func (g *groupIndex) remove(e Entity) {
	if name, ok := g.byEntity[e]; ok {
		g.drop(e, name)
		delete(g.byEntity, e)
	}
}

func (g *groupIndex) drop(e Entity, name string) {
	members := g.byName[name]
	delete(members, e)
	if len(members) == 0 {
		delete(g.byName, name)
	}
}

// TagEntity gives e the tag name. A different tag previously held by e is
// dropped, and any other entity holding name loses it.
func (r *Registry) TagEntity(e Entity, name string) error {
	if !r.IsAlive(e) {
		return eris.Wrapf(ErrInvalidEntity, "tag %s as %q", e, name)
	}
	r.tags.set(e, name)
	return nil
}

// HasTag reports whether e currently holds the tag name.
func (r *Registry) HasTag(e Entity, name string) bool {
	holder, ok := r.tags.byName[name]
	return ok && holder == e
}

// TagOf returns e's tag, if any.
func (r *Registry) TagOf(e Entity) (string, bool) {
	name, ok := r.tags.byEntity[e]
	return name, ok
}

// GetEntityByTag returns the entity holding name.
func (r *Registry) GetEntityByTag(name string) (Entity, error) {
	e, ok := r.tags.byName[name]
	if !ok {
		return 0, eris.Wrapf(ErrNotFound, "tag %q", name)
	}
	return e, nil
}

// RemoveTag drops e's tag. It is a no-op when e has none.
func (r *Registry) RemoveTag(e Entity) { r.tags.remove(e) }

// GroupEntity adds e to the group name, moving it out of any previous group.
func (r *Registry) GroupEntity(e Entity, name string) error {
	if !r.IsAlive(e) {
		return eris.Wrapf(ErrInvalidEntity, "group %s into %q", e, name)
	}
	r.groups.add(e, name)
	return nil
}

// BelongsToGroup reports whether e is a member of the group name.
func (r *Registry) BelongsToGroup(e Entity, name string) bool {
	_, ok := r.groups.byName[name][e]
	return ok
}

// GroupOf returns e's group, if any.
func (r *Registry) GroupOf(e Entity) (string, bool) {
	name, ok := r.groups.byEntity[e]
	return name, ok
}

// GetEntitiesByGroup returns the members of name sorted by id. An unknown
// group yields an empty slice.
func (r *Registry) GetEntitiesByGroup(name string) []Entity {
	members := r.groups.byName[name]
	out := make([]Entity, 0, len(members))
	for e := range members {
		out = append(out, e)
	}
	slices.Sort(out)
	return out
}

// RemoveGroup takes e out of its group. It is a no-op when e has none.
func (r *Registry) RemoveGroup(e Entity) { r.groups.remove(e) }
