// Package system holds the gameplay systems. Each one embeds ecs.Base for
// entity membership and implements coresys.System so the runner can
// schedule it.
package system

import (
	"go.uber.org/zap"

	"github.com/jungle2d/engine/internal/core/ecs"
	"github.com/jungle2d/engine/internal/core/event"
)

// Subscriber is implemented by systems that listen on the event bus. The bus
// is reset every frame, so SubscribeToEvents runs once per frame.
type Subscriber interface {
	SubscribeToEvents(bus *event.Bus)
}

type requirement func(*ecs.Registry, *ecs.Base) error

func requireAll(reg *ecs.Registry, b *ecs.Base, reqs ...requirement) error {
	for _, req := range reqs {
		if err := req(reg, b); err != nil {
			return err
		}
	}
	return nil
}

// kill queues e for removal. A stale handle is only logged; the frame goes on.
func kill(reg *ecs.Registry, log *zap.Logger, e ecs.Entity) {
	if err := reg.KillEntity(e); err != nil {
		log.Debug("kill skipped", zap.Uint32("entity", e.ID()), zap.Error(err))
	}
}
