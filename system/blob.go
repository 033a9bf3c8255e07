package system

import (
	"github.com/lixenwraith/minesim/core"
	"github.com/lixenwraith/minesim/engine"
	"github.com/lixenwraith/minesim/event"
	"github.com/lixenwraith/minesim/parameter"
)

// blobActivity walks the blob toward the nearest vein and consumes it on contact
// A consumed vein leaves a quake behind and delays the blob by an extra period
func (s *Simulation) blobActivity(blob *engine.Entity) {
	next := blob.ActionPeriod()

	if vein, ok := s.world.FindNearest(blob.Position(), core.KindVein); ok {
		target := vein.Position()
		s.step(blob, target, blobBlocked)

		if blob.Position().Adjacent(target) {
			s.destroy(vein)
			s.statConsumed.Add(1)
			s.emit(event.EventVeinConsumed, vein, target)

			s.spawn(NewQuake(target, s.images.Frames(parameter.QuakeKey)))
			next += blob.ActionPeriod()
		}
	}

	s.reschedule(blob, next)
}
