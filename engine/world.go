package engine

import (
	"fmt"
	"slices"

	"github.com/lixenwraith/minesim/core"
)

// World owns the background grid, the occupancy grid and the live entity set
// Invariant: a cell references entity E iff E is live and E.Position() is that cell
type World struct {
	rows, cols int

	background []Background
	occupancy  *SpatialGrid

	// Live entities in insertion order; iteration order drives nearest-entity tie breaks
	entities []*Entity
}

// NewWorld creates a fixed-size world filled with bg
func NewWorld(rows, cols int, bg Background) *World {
	if rows < 0 {
		rows = 0
	}
	if cols < 0 {
		cols = 0
	}
	w := &World{
		rows:       rows,
		cols:       cols,
		background: make([]Background, rows*cols),
		occupancy:  NewSpatialGrid(cols, rows),
	}
	for i := range w.background {
		w.background[i] = bg
	}
	return w
}

func (w *World) Rows() int { return w.rows }
func (w *World) Cols() int { return w.cols }

// WithinBounds reports whether p lies in [0,cols)x[0,rows)
func (w *World) WithinBounds(p core.Point) bool {
	return w.occupancy.InBounds(p)
}

// IsOccupied reports whether an entity sits at p; false out of bounds
func (w *World) IsOccupied(p core.Point) bool {
	return w.occupancy.HasAny(p)
}

// Occupant returns the entity at p
func (w *World) Occupant(p core.Point) (*Entity, bool) {
	e := w.occupancy.Get(p)
	return e, e != nil
}

// TryAdd places e, failing with ErrPositionOccupied if its cell is taken
// Out of bounds placement is silently ignored
func (w *World) TryAdd(e *Entity) error {
	if w.IsOccupied(e.pos) {
		return fmt.Errorf("add %s %q at %v: %w", e.kind, e.id, e.pos, ErrPositionOccupied)
	}
	w.Add(e)
	return nil
}

// Add places e at its position without checking occupancy
// Callers verify the cell is free; a stale occupant would be evicted
// Out of bounds placement is a no-op
func (w *World) Add(e *Entity) {
	if !w.WithinBounds(e.pos) {
		return
	}
	if other := w.occupancy.Get(e.pos); other != nil && other != e {
		w.RemoveAt(e.pos)
	}
	w.occupancy.Set(e.pos, e)
	if !e.live {
		e.live = true
		w.entities = append(w.entities, e)
	}
}

// Remove takes e out of the world. Scheduler events of e are untouched,
// callers pair this with cancellation
func (w *World) Remove(e *Entity) {
	if !e.live {
		return
	}
	w.RemoveAt(e.pos)
}

// RemoveAt removes whatever occupies p and returns it
func (w *World) RemoveAt(p core.Point) (*Entity, bool) {
	e := w.occupancy.Get(p)
	if e == nil {
		return nil, false
	}
	w.occupancy.Clear(p)
	if i := slices.Index(w.entities, e); i >= 0 {
		w.entities = slices.Delete(w.entities, i, i+1)
	}
	e.live = false
	e.pos = Removed
	return e, true
}

// MoveTo relocates e to p, evicting any occupant of p
// No-op when p is e's current position, out of bounds, or e is not live
func (w *World) MoveTo(e *Entity, p core.Point) {
	if !e.live || !w.WithinBounds(p) || p == e.pos {
		return
	}
	w.occupancy.Clear(e.pos)
	w.RemoveAt(p)
	w.occupancy.Set(p, e)
	e.pos = p
}

// Entities returns the live entities in insertion order
func (w *World) Entities() []*Entity {
	return slices.Clone(w.entities)
}

// EntityCount returns the number of live entities
func (w *World) EntityCount() int {
	return len(w.entities)
}

// SetBackground replaces the background at p, ignored out of bounds
func (w *World) SetBackground(p core.Point, bg Background) {
	if !w.WithinBounds(p) {
		return
	}
	w.background[p.Y*w.cols+p.X] = bg
}

// BackgroundAt returns the background at p
func (w *World) BackgroundAt(p core.Point) (Background, bool) {
	if !w.WithinBounds(p) {
		return Background{}, false
	}
	return w.background[p.Y*w.cols+p.X], true
}

// CheckInvariants verifies occupancy and the live set agree
func (w *World) CheckInvariants() error {
	seen := make(map[*Entity]struct{}, len(w.entities))
	for _, e := range w.entities {
		if !e.live {
			return fmt.Errorf("entity %q in live set is marked dead", e.id)
		}
		if _, dup := seen[e]; dup {
			return fmt.Errorf("entity %q listed twice", e.id)
		}
		seen[e] = struct{}{}
		if !w.WithinBounds(e.pos) {
			return fmt.Errorf("entity %q out of bounds at %v", e.id, e.pos)
		}
		if got := w.occupancy.Get(e.pos); got != e {
			return fmt.Errorf("entity %q at %v not referenced by its cell", e.id, e.pos)
		}
	}
	occupied := 0
	for _, e := range w.occupancy.Cells {
		if e == nil {
			continue
		}
		occupied++
		if _, ok := seen[e]; !ok {
			return fmt.Errorf("cell references entity %q outside the live set", e.id)
		}
	}
	if occupied != len(w.entities) {
		return fmt.Errorf("%d occupied cells for %d live entities", occupied, len(w.entities))
	}
	return nil
}
