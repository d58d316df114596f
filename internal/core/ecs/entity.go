package ecs

import "strconv"

// Entity names one row across every component pool. It is a plain value with
// no reference to the Registry that issued it; ids are recycled after a kill
// is processed, so a handle is only meaningful until then.
type Entity uint32

// ID returns the numeric identifier.
func (e Entity) ID() uint32 { return uint32(e) }

func (e Entity) String() string { return "entity#" + strconv.FormatUint(uint64(e), 10) }

// idAllocator hands out entity ids. Released ids are reused in FIFO order
// before the monotonic counter advances; the counter itself never rewinds.
// free[head:] is the queue; the consumed prefix is compacted away once it
// passes half the slice.
type idAllocator struct {
	next  uint32
	free  []uint32
	head  int
	alive []bool
}

func (a *idAllocator) acquire() uint32 {
	var id uint32
	if a.head < len(a.free) {
		id = a.free[a.head]
		a.head++
		if a.head*2 >= len(a.free) {
			n := copy(a.free, a.free[a.head:])
			a.free = a.free[:n]
			a.head = 0
		}
	} else {
		id = a.next
		a.next++
	}
	if int(id) >= len(a.alive) {
		a.alive = append(a.alive, make([]bool, int(id)+1-len(a.alive))...)
	}
	a.alive[id] = true
	return id
}

func (a *idAllocator) release(id uint32) {
	if !a.isAlive(id) {
		return
	}
	a.alive[id] = false
	a.free = append(a.free, id)
}

func (a *idAllocator) isAlive(id uint32) bool {
	return int(id) < len(a.alive) && a.alive[id]
}

// live returns the number of ids currently handed out.
func (a *idAllocator) live() int {
	return int(a.next) - (len(a.free) - a.head)
}

func (a *idAllocator) reset() {
	a.next = 0
	a.free = a.free[:0]
	a.head = 0
	a.alive = a.alive[:0]
}
