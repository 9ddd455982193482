package ecs

import (
	"github.com/phanxgames/trellis"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// DragEventType is the Donburi event type for trellis drag events.
var DragEventType = events.NewEventType[trellis.DragEvent]()

type donburiSink struct {
	world donburi.World
	kinds map[trellis.EventKind]bool
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Events are
// queued on DragEventType and delivered by ProcessEvents. With no kinds every
// event is forwarded.
func NewDonburiSink(world donburi.World, kinds ...trellis.EventKind) trellis.EventSink {
	s := &donburiSink{world: world}
	if len(kinds) > 0 {
		s.kinds = make(map[trellis.EventKind]bool, len(kinds))
		for _, k := range kinds {
			s.kinds[k] = true
		}
	}
	return s
}

func (s *donburiSink) EmitEvent(event trellis.DragEvent) {
	if s.kinds != nil && !s.kinds[event.Kind] {
		return
	}
	DragEventType.Publish(s.world, event)
}
