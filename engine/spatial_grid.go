package engine

import "github.com/lixenwraith/minesim/core"

// SpatialGrid is a dense single-occupancy grid
// It is the authoritative answer to "what is where"
type SpatialGrid struct {
	Width  int
	Height int
	Cells  []*Entity // 1D array: index = y*Width + x
}

// NewSpatialGrid creates a new grid with the specified dimensions
func NewSpatialGrid(width, height int) *SpatialGrid {
	return &SpatialGrid{
		Width:  width,
		Height: height,
		Cells:  make([]*Entity, width*height),
	}
}

// InBounds reports whether p lies inside the grid
func (g *SpatialGrid) InBounds(p core.Point) bool {
	return p.X >= 0 && p.X < g.Width && p.Y >= 0 && p.Y < g.Height
}

// Get returns the occupant at p, nil if empty or out of bounds
func (g *SpatialGrid) Get(p core.Point) *Entity {
	if !g.InBounds(p) {
		return nil
	}
	return g.Cells[p.Y*g.Width+p.X]
}

// Set stores e at p, soft clip on out of bounds
func (g *SpatialGrid) Set(p core.Point, e *Entity) {
	if !g.InBounds(p) {
		return
	}
	g.Cells[p.Y*g.Width+p.X] = e
}

// Clear empties the cell at p
func (g *SpatialGrid) Clear(p core.Point) {
	g.Set(p, nil)
}

// HasAny returns true if the cell at p is occupied
func (g *SpatialGrid) HasAny(p core.Point) bool {
	return g.Get(p) != nil
}
