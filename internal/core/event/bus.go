package event

import (
	"reflect"

	"go.uber.org/zap"
)

// Bus is a synchronous, type-indexed publish/subscribe table. Handlers run on
// the caller's goroutine, in subscription order, as soon as Emit is called.
// The frame driver resets the bus once per frame and systems subscribe again,
// so subscriptions never outlive the frame they were made in.
type Bus struct {
	handlers map[reflect.Type][]subscription
	log      *zap.Logger
}

type subscription struct {
	owner any
	fn    any // func(*T) for the key type T
}

func NewBus(log *zap.Logger) *Bus {
	if log == nil {
		log = zap.NewNop()
	}
	return &Bus{
		handlers: make(map[reflect.Type][]subscription, 8),
		log:      log,
	}
}

// Subscribe registers fn for events of type T. owner identifies the
// subscriber for Unsubscribe and may be nil.
func Subscribe[T any](b *Bus, owner any, fn func(*T)) {
	t := reflect.TypeFor[T]()
	b.handlers[t] = append(b.handlers[t], subscription{owner: owner, fn: fn})
}

// Emit delivers ev to every handler subscribed to T. Each handler gets its own
// copy, so a handler mutating its event is not observed by the next one; the
// copy is shallow. Handlers may emit further events. Subscriptions added while
// ev is being delivered do not receive it.
func Emit[T any](b *Bus, ev T) {
	subs := b.handlers[reflect.TypeFor[T]()]
	for _, s := range subs {
		cp := ev
		s.fn.(func(*T))(&cp)
	}
}

// Reset drops every subscription.
func (b *Bus) Reset() {
	if ce := b.log.Check(zap.DebugLevel, "event bus reset"); ce != nil {
		ce.Write(zap.Int("types", len(b.handlers)))
	}
	clear(b.handlers)
}

// Unsubscribe removes every handler registered by owner and returns how many
// were removed. Owners whose dynamic type is not comparable never match.
func (b *Bus) Unsubscribe(owner any) int {
	if owner == nil || !reflect.TypeOf(owner).Comparable() {
		return 0
	}
	removed := 0
	for t, subs := range b.handlers {
		// Build a fresh slice: an Emit in progress may still be ranging over
		// the old one.
		kept := make([]subscription, 0, len(subs))
		for _, s := range subs {
			if s.owner != nil && reflect.TypeOf(s.owner).Comparable() && s.owner == owner {
				removed++
				continue
			}
			kept = append(kept, s)
		}
		if len(kept) == 0 {
			delete(b.handlers, t)
		} else {
			b.handlers[t] = kept
		}
	}
	if removed > 0 {
		b.log.Debug("handlers unsubscribed", zap.Int("count", removed))
	}
	return removed
}

// Subscribers returns the number of handlers registered for T.
func Subscribers[T any](b *Bus) int {
	return len(b.handlers[reflect.TypeFor[T]()])
}
