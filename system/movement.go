package system

import (
	"github.com/lixenwraith/minesim/core"
	"github.com/lixenwraith/minesim/engine"
	"github.com/lixenwraith/minesim/vmath"
)

// blockedFunc reports whether an occupant stops a mover from entering its cell
type blockedFunc func(occupant *engine.Entity) bool

// minerBlocked: miners never enter an occupied cell
func minerBlocked(*engine.Entity) bool { return true }

// blobBlocked: blobs pass over ore
func blobBlocked(occupant *engine.Entity) bool {
	return occupant.Kind() != core.KindOre
}

// nextPosition picks the single step e takes toward target
// Horizontal first, vertical as fallback, stay in place if both are blocked
func (s *Simulation) nextPosition(e *engine.Entity, target core.Point, blocked blockedFunc) core.Point {
	pos := e.Position()

	if horiz := vmath.Sign(target.X - pos.X); horiz != 0 {
		candidate := pos.Add(horiz, 0)
		if !s.isBlocked(candidate, blocked) {
			return candidate
		}
	}

	if vert := vmath.Sign(target.Y - pos.Y); vert != 0 {
		candidate := pos.Add(0, vert)
		if !s.isBlocked(candidate, blocked) {
			return candidate
		}
	}

	return pos
}

func (s *Simulation) isBlocked(p core.Point, blocked blockedFunc) bool {
	occupant, ok := s.world.Occupant(p)
	return ok && blocked(occupant)
}

// step moves e once toward target, crushing a permitted occupant of the destination
func (s *Simulation) step(e *engine.Entity, target core.Point, blocked blockedFunc) {
	next := s.nextPosition(e, target, blocked)
	if next == e.Position() {
		return
	}
	if occupant, ok := s.world.Occupant(next); ok {
		s.destroy(occupant)
	}
	s.world.MoveTo(e, next)
}
