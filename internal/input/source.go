package input

import (
	"context"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
)

// Source polls a tcell screen on its own goroutine and buffers the events
// for the frame loop, which drains them without blocking.
type Source struct {
	screen tcell.Screen
	events chan tcell.Event
	log    *zap.Logger
}

func NewSource(screen tcell.Screen, buffer int, log *zap.Logger) *Source {
	if log == nil {
		log = zap.NewNop()
	}
	return &Source{
		screen: screen,
		events: make(chan tcell.Event, buffer),
		log:    log,
	}
}

// Events returns the buffered event stream.
func (s *Source) Events() <-chan tcell.Event { return s.events }

// Start polls until ctx is cancelled or the screen is finalised. Events that
// arrive while the buffer is full are dropped.
func (s *Source) Start(ctx context.Context) {
	go func() {
		for {
			ev := s.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case <-ctx.Done():
				return
			case s.events <- ev:
			default:
				s.log.Warn("input buffer full, event dropped")
			}
		}
	}()
}

// Drain passes every buffered event to fn and returns how many there were.
func (s *Source) Drain(fn func(tcell.Event)) int {
	n := 0
	for {
		select {
		case ev := <-s.events:
			fn(ev)
			n++
		default:
			return n
		}
	}
}
