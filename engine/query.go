package engine

import "github.com/lixenwraith/minesim/core"

// FindNearest returns the live entity of kind closest to p
// Ties go to the entity added first
func (w *World) FindNearest(p core.Point, kind core.Kind) (*Entity, bool) {
	var nearest *Entity
	best := 0
	for _, e := range w.entities {
		if e.kind != kind {
			continue
		}
		d := e.pos.DistanceSquared(p)
		if nearest == nil || d < best {
			nearest, best = e, d
		}
	}
	return nearest, nearest != nil
}

// FindOpenAround returns the first free in-bounds cell of the 3x3 block centered on p
// Scan order is row-major: dy outer, dx inner, center included
func (w *World) FindOpenAround(p core.Point) (core.Point, bool) {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			q := p.Add(dx, dy)
			if w.WithinBounds(q) && !w.IsOccupied(q) {
				return q, true
			}
		}
	}
	return core.Point{}, false
}

// CountKind returns the number of live entities of kind
func (w *World) CountKind(kind core.Kind) int {
	n := 0
	for _, e := range w.entities {
		if e.kind == kind {
			n++
		}
	}
	return n
}
