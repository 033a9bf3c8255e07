package system

import (
	"github.com/lixenwraith/minesim/engine"
	"github.com/lixenwraith/minesim/parameter"
)

// veinActivity spawns an ore in the first open neighboring cell, then waits a full period
func (s *Simulation) veinActivity(vein *engine.Entity) {
	if p, ok := s.world.FindOpenAround(vein.Position()); ok {
		ore := NewOre(
			parameter.OreIDPrefix+vein.ID(),
			p,
			s.randomPeriod(parameter.OreCorruptMin, parameter.OreCorruptMax),
			s.images.Frames(parameter.OreKey),
		)
		s.spawn(ore)
	}
	s.reschedule(vein, vein.ActionPeriod())
}

// oreActivity corrupts the ore into a blob in place; ore never fires twice
func (s *Simulation) oreActivity(ore *engine.Entity) {
	pos := ore.Position()
	s.destroy(ore)

	blob := NewOreBlob(
		ore.ID()+parameter.BlobIDSuffix,
		pos,
		ore.ActionPeriod()/parameter.BlobPeriodScale,
		s.randomPeriod(parameter.BlobAnimationMin, parameter.BlobAnimationMax),
		s.images.Frames(parameter.BlobKey),
	)
	s.spawn(blob)
}

// quakeActivity removes the quake regardless of remaining animation frames
func (s *Simulation) quakeActivity(quake *engine.Entity) {
	s.destroy(quake)
}
