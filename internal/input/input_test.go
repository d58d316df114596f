package input

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jungle2d/engine/internal/core/event"
)

func TestTranslate(t *testing.T) {
	cases := []struct {
		name string
		ev   *tcell.EventKey
		want event.KeyPressed
		ok   bool
	}{
		{"up", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), event.KeyPressed{Key: event.KeyUp}, true},
		{"right", tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone), event.KeyPressed{Key: event.KeyRight}, true},
		{"down", tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone), event.KeyPressed{Key: event.KeyDown}, true},
		{"left", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), event.KeyPressed{Key: event.KeyLeft}, true},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), event.KeyPressed{Key: event.KeyEscape}, true},
		{"space", tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), event.KeyPressed{Key: event.KeySpace, Rune: ' '}, true},
		{"d", tcell.NewEventKey(tcell.KeyRune, 'd', tcell.ModNone), event.KeyPressed{Key: event.KeyRune, Rune: 'd'}, true},
		{"f1", tcell.NewEventKey(tcell.KeyF1, 0, tcell.ModNone), event.KeyPressed{}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Translate(tc.ev)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSourceDeliversScreenEvents(t *testing.T) {
	ss := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, ss.Init())
	defer ss.Fini()

	src := NewSource(ss, 16, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	src.Start(ctx)

	ss.InjectKey(tcell.KeyRune, 'x', tcell.ModNone)

	var got []rune
	require.Eventually(t, func() bool {
		src.Drain(func(ev tcell.Event) {
			if k, ok := ev.(*tcell.EventKey); ok {
				got = append(got, k.Rune())
			}
		})
		return len(got) == 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, []rune{'x'}, got)
}

func TestDrainEmpty(t *testing.T) {
	src := NewSource(nil, 1, nil)
	assert.Zero(t, src.Drain(func(tcell.Event) { t.Fatal("unexpected event") }))
}
