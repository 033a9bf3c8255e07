package system

import (
	"github.com/lixenwraith/minesim/core"
	"github.com/lixenwraith/minesim/engine"
	"github.com/lixenwraith/minesim/event"
)

// minerNotFullActivity walks toward the nearest ore and harvests it on contact
func (s *Simulation) minerNotFullActivity(miner *engine.Entity) {
	ore, ok := s.world.FindNearest(miner.Position(), core.KindOre)
	if ok {
		target := ore.Position()
		s.step(miner, target, minerBlocked)

		if miner.Position().Adjacent(target) {
			miner.Harvest()
			s.destroy(ore)
			s.statHarvested.Add(1)
			s.emit(event.EventOreHarvested, miner, target)

			if miner.Full() && s.transform(miner, core.KindMinerFull) {
				return
			}
		}
	}
	s.reschedule(miner, miner.ActionPeriod())
}

// minerFullActivity walks toward the nearest blacksmith and unloads on contact
func (s *Simulation) minerFullActivity(miner *engine.Entity) {
	smith, ok := s.world.FindNearest(miner.Position(), core.KindBlacksmith)
	if ok {
		target := smith.Position()
		s.step(miner, target, minerBlocked)

		if miner.Position().Adjacent(target) && s.transform(miner, core.KindMinerNotFull) {
			return
		}
	}
	s.reschedule(miner, miner.ActionPeriod())
}

// transform replaces miner with a fresh entity of kind at the same cell
// Returns false, leaving the world untouched, if miner is not live
func (s *Simulation) transform(miner *engine.Entity, kind core.Kind) bool {
	if !miner.Live() {
		return false
	}

	cfg := miner.Config()
	var next *engine.Entity
	switch kind {
	case core.KindMinerFull:
		next = NewMinerFull(cfg.ID, cfg.Position, cfg.ResourceLimit, cfg.ActionPeriod, cfg.AnimationPeriod, cfg.Frames)
	case core.KindMinerNotFull:
		next = NewMinerNotFull(cfg.ID, cfg.Position, cfg.ResourceLimit, cfg.ActionPeriod, cfg.AnimationPeriod, cfg.Frames)
	default:
		panic("system: transform into non-miner kind " + kind.String())
	}

	s.sched.CancelAll(miner)
	s.world.Remove(miner)
	s.world.Add(next)
	s.ScheduleActions(next)

	s.statTransformed.Add(1)
	s.emit(event.EventMinerTransformed, next, cfg.Position)
	return true
}
