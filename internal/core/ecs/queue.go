package ecs

// entityQueue is the deferred command buffer behind CreateEntity and
// KillEntity: an insertion-ordered set drained once per frame by Update.
type entityQueue struct {
	order []Entity
	seen  map[Entity]struct{}
}

func newEntityQueue() entityQueue {
	return entityQueue{
		order: make([]Entity, 0, 64),
		seen:  make(map[Entity]struct{}, 64),
	}
}

// push queues e unless it is already queued. It reports whether e was added.
func (q *entityQueue) push(e Entity) bool {
	if _, ok := q.seen[e]; ok {
		return false
	}
	q.seen[e] = struct{}{}
	q.order = append(q.order, e)
	return true
}

func (q *entityQueue) contains(e Entity) bool {
	_, ok := q.seen[e]
	return ok
}

func (q *entityQueue) len() int { return len(q.order) }

// drain calls fn for each queued entity in insertion order, then empties the
// queue.
func (q *entityQueue) drain(fn func(Entity)) {
	for _, e := range q.order {
		fn(e)
	}
	q.reset()
}

func (q *entityQueue) reset() {
	q.order = q.order[:0]
	clear(q.seen)
}
