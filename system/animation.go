package system

import (
	"github.com/lixenwraith/minesim/engine"
	"github.com/lixenwraith/minesim/event"
)

// animate advances e's frame and reschedules while the repeat budget lasts
func (s *Simulation) animate(e *engine.Entity, r event.Repeat) {
	e.NextFrame()
	if next, ok := r.Next(); ok {
		s.sched.Schedule(e, event.Animation(next), e.AnimationPeriod())
	}
}
