package system

import (
	"time"

	"github.com/lixenwraith/minesim/asset"
	"github.com/lixenwraith/minesim/core"
	"github.com/lixenwraith/minesim/engine"
	"github.com/lixenwraith/minesim/parameter"
)

func NewObstacle(id string, pos core.Point, frames asset.Frames) *engine.Entity {
	return engine.NewEntity(engine.EntityConfig{
		Kind:     core.KindObstacle,
		ID:       id,
		Position: pos,
		Frames:   frames,
	})
}

func NewBlacksmith(id string, pos core.Point, frames asset.Frames) *engine.Entity {
	return engine.NewEntity(engine.EntityConfig{
		Kind:     core.KindBlacksmith,
		ID:       id,
		Position: pos,
		Frames:   frames,
	})
}

func NewVein(id string, pos core.Point, actionPeriod time.Duration, frames asset.Frames) *engine.Entity {
	return engine.NewEntity(engine.EntityConfig{
		Kind:         core.KindVein,
		ID:           id,
		Position:     pos,
		Frames:       frames,
		ActionPeriod: period(actionPeriod),
	})
}

func NewOre(id string, pos core.Point, actionPeriod time.Duration, frames asset.Frames) *engine.Entity {
	return engine.NewEntity(engine.EntityConfig{
		Kind:         core.KindOre,
		ID:           id,
		Position:     pos,
		Frames:       frames,
		ActionPeriod: period(actionPeriod),
	})
}

func NewOreBlob(id string, pos core.Point, actionPeriod, animationPeriod time.Duration, frames asset.Frames) *engine.Entity {
	return engine.NewEntity(engine.EntityConfig{
		Kind:            core.KindOreBlob,
		ID:              id,
		Position:        pos,
		Frames:          frames,
		ActionPeriod:    period(actionPeriod),
		AnimationPeriod: period(animationPeriod),
	})
}

// NewQuake builds a quake with the fixed quake periods
func NewQuake(pos core.Point, frames asset.Frames) *engine.Entity {
	return engine.NewEntity(engine.EntityConfig{
		Kind:            core.KindQuake,
		ID:              parameter.QuakeID,
		Position:        pos,
		Frames:          frames,
		ActionPeriod:    parameter.QuakeActionPeriod,
		AnimationPeriod: parameter.QuakeAnimationPeriod,
	})
}

// NewMinerNotFull builds an empty miner
func NewMinerNotFull(id string, pos core.Point, resourceLimit int, actionPeriod, animationPeriod time.Duration, frames asset.Frames) *engine.Entity {
	return engine.NewEntity(engine.EntityConfig{
		Kind:            core.KindMinerNotFull,
		ID:              id,
		Position:        pos,
		Frames:          frames,
		ResourceLimit:   resourceLimit,
		ActionPeriod:    period(actionPeriod),
		AnimationPeriod: period(animationPeriod),
	})
}

// NewMinerFull builds a miner carrying resourceLimit units
func NewMinerFull(id string, pos core.Point, resourceLimit int, actionPeriod, animationPeriod time.Duration, frames asset.Frames) *engine.Entity {
	return engine.NewEntity(engine.EntityConfig{
		Kind:            core.KindMinerFull,
		ID:              id,
		Position:        pos,
		Frames:          frames,
		ResourceLimit:   resourceLimit,
		ResourceCount:   resourceLimit,
		ActionPeriod:    period(actionPeriod),
		AnimationPeriod: period(animationPeriod),
	})
}

func period(d time.Duration) time.Duration {
	return max(d, parameter.MinPeriod)
}

// randomPeriod draws a millisecond-granular period in [lo, hi)
func (s *Simulation) randomPeriod(lo, hi time.Duration) time.Duration {
	span := int((hi - lo) / time.Millisecond)
	if span <= 0 {
		return lo
	}
	return lo + time.Duration(s.rng.Intn(span))*time.Millisecond
}
