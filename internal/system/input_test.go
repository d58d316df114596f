package system

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"

	"github.com/jungle2d/engine/internal/core/event"
	coresys "github.com/jungle2d/engine/internal/core/system"
)

type queuedEvents []tcell.Event

func (q *queuedEvents) Drain(fn func(tcell.Event)) int {
	n := len(*q)
	for _, ev := range *q {
		fn(ev)
	}
	*q = nil
	return n
}

type controlCalls struct {
	quit, debug, resize int
}

func (c *controlCalls) Quit()        { c.quit++ }
func (c *controlCalls) ToggleDebug() { c.debug++ }
func (c *controlCalls) Resize()      { c.resize++ }

func TestInputPublishesKeys(t *testing.T) {
	w := newWorld()
	src := &queuedEvents{
		tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone),
		tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone),
		tcell.NewEventKey(tcell.KeyRune, 'd', tcell.ModNone),
		tcell.NewEventResize(80, 24),
		tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone),
	}
	ctl := &controlCalls{}
	in := NewInputSystem(src, w.bus, ctl, w.log)

	var keys []event.Key
	event.Subscribe(w.bus, nil, func(ev *event.KeyPressed) { keys = append(keys, ev.Key) })
	in.Update(frame(0))

	assert.Equal(t, []event.Key{event.KeyRight, event.KeySpace, event.KeyRune, event.KeyEscape}, keys)
	assert.Equal(t, controlCalls{quit: 1, debug: 1, resize: 1}, *ctl)
	assert.Equal(t, coresys.PhaseInput, in.Phase())

	in.Update(frame(0))
	assert.Len(t, keys, 4, "drained events are not replayed")
}
