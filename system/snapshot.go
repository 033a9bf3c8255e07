package system

import (
	"time"

	"github.com/lixenwraith/minesim/asset"
	"github.com/lixenwraith/minesim/core"
)

// EntityView is an immutable copy of one live entity
type EntityView struct {
	ID            string
	Kind          core.Kind
	Position      core.Point
	Frame         asset.Frame
	ResourceCount int
	ResourceLimit int
}

// Snapshot is a point-in-time copy of the world, safe to hand to other goroutines
type Snapshot struct {
	Time     time.Duration
	Rows     int
	Cols     int
	Entities []EntityView
}

// Snapshot copies every live entity in insertion order
func (s *Simulation) Snapshot() Snapshot {
	live := s.world.Entities()
	snap := Snapshot{
		Time:     s.sched.Now(),
		Rows:     s.world.Rows(),
		Cols:     s.world.Cols(),
		Entities: make([]EntityView, 0, len(live)),
	}
	for _, e := range live {
		snap.Entities = append(snap.Entities, EntityView{
			ID:            e.ID(),
			Kind:          e.Kind(),
			Position:      e.Position(),
			Frame:         e.CurrentFrame(),
			ResourceCount: e.ResourceCount(),
			ResourceLimit: e.ResourceLimit(),
		})
	}
	return snap
}
