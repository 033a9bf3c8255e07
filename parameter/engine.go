package parameter

import "time"

// Driver Loop Timing
const (
	// FrameUpdateInterval is the rendering frame rate interval (~30 FPS)
	FrameUpdateInterval = 33 * time.Millisecond

	// SimulationStepInterval is the wall-clock interval between drain calls
	SimulationStepInterval = 50 * time.Millisecond

	// DefaultSpeed is the virtual-time multiplier applied to wall-clock elapsed time
	DefaultSpeed = 1.0

	// MaxSpeed caps the speed multiplier reachable from the keyboard
	MaxSpeed = 64.0

	// MinSpeed is the lowest non-zero speed multiplier reachable from the keyboard
	MinSpeed = 0.125
)

// World Defaults
const (
	// DefaultWorldRows is used when no world file overrides the grid size
	DefaultWorldRows = 30

	// DefaultWorldCols is used when no world file overrides the grid size
	DefaultWorldCols = 40

	// DefaultBackgroundKey is the image key of the background filling every cell at construction
	DefaultBackgroundKey = "grass"
)
