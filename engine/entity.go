package engine

import (
	"time"

	"github.com/lixenwraith/minesim/asset"
	"github.com/lixenwraith/minesim/core"
)

// Removed is the position assigned to an entity once it leaves the world
// Kept out of the grid so stale references are easy to spot while debugging
var Removed = core.Point{X: -1, Y: -1}

// EntityConfig carries the construction-time attributes of an entity
type EntityConfig struct {
	Kind            core.Kind
	ID              string
	Position        core.Point
	Frames          asset.Frames
	ResourceLimit   int
	ResourceCount   int
	ActionPeriod    time.Duration
	AnimationPeriod time.Duration
}

// Entity is a grid-bound actor
// Position is a mirror of the occupancy grid and is written only by World
type Entity struct {
	kind core.Kind
	id   string
	pos  core.Point
	live bool

	frames     asset.Frames
	frameIndex int

	resourceLimit int
	resourceCount int

	actionPeriod    time.Duration
	animationPeriod time.Duration
}

// NewEntity creates a detached entity; it becomes live once placed in a World
func NewEntity(cfg EntityConfig) *Entity {
	frames := cfg.Frames
	if len(frames) == 0 {
		frames = asset.Frames{asset.Placeholder}
	}
	return &Entity{
		kind:            cfg.Kind,
		id:              cfg.ID,
		pos:             cfg.Position,
		frames:          frames,
		resourceLimit:   cfg.ResourceLimit,
		resourceCount:   cfg.ResourceCount,
		actionPeriod:    cfg.ActionPeriod,
		animationPeriod: cfg.AnimationPeriod,
	}
}

func (e *Entity) Kind() core.Kind                { return e.kind }
func (e *Entity) ID() string                     { return e.id }
func (e *Entity) Position() core.Point           { return e.pos }
func (e *Entity) Live() bool                     { return e.live }
func (e *Entity) Frames() asset.Frames           { return e.frames }
func (e *Entity) FrameIndex() int                { return e.frameIndex }
func (e *Entity) ResourceLimit() int             { return e.resourceLimit }
func (e *Entity) ResourceCount() int             { return e.resourceCount }
func (e *Entity) ActionPeriod() time.Duration    { return e.actionPeriod }
func (e *Entity) AnimationPeriod() time.Duration { return e.animationPeriod }

// CurrentFrame returns the frame currently displayed, side-effect free
func (e *Entity) CurrentFrame() asset.Frame {
	return e.frames.At(e.frameIndex)
}

// NextFrame advances the frame index modulo the cycle length
func (e *Entity) NextFrame() {
	e.frameIndex = (e.frameIndex + 1) % len(e.frames)
}

// Harvest increments the resource count by one
func (e *Entity) Harvest() {
	e.resourceCount++
}

// Full reports whether the resource count reached the limit
func (e *Entity) Full() bool {
	return e.resourceCount >= e.resourceLimit
}

// Config returns the attributes needed to rebuild e, positioned where e is now
func (e *Entity) Config() EntityConfig {
	return EntityConfig{
		Kind:            e.kind,
		ID:              e.id,
		Position:        e.pos,
		Frames:          e.frames,
		ResourceLimit:   e.resourceLimit,
		ResourceCount:   e.resourceCount,
		ActionPeriod:    e.actionPeriod,
		AnimationPeriod: e.animationPeriod,
	}
}
