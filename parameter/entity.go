package parameter

import "time"

// Image keys resolved against the asset store
const (
	BlobKey       = "blob"
	QuakeKey      = "quake"
	MinerKey      = "miner"
	ObstacleKey   = "obstacle"
	OreKey        = "ore"
	BlacksmithKey = "blacksmith"
	VeinKey       = "vein"
)

// Ore lifecycle
const (
	// OreIDPrefix is prepended to the vein id for spawned ore
	OreIDPrefix = "ore -- "

	// OreCorruptMin is the lower bound (inclusive) of a spawned ore's action period
	OreCorruptMin = 20000 * time.Millisecond

	// OreCorruptMax is the upper bound (exclusive) of a spawned ore's action period
	OreCorruptMax = 30000 * time.Millisecond
)

// Ore blob
const (
	// BlobIDSuffix is appended to the ore id when it turns into a blob
	BlobIDSuffix = " -- blob"

	// BlobPeriodScale divides the ore action period to obtain the blob action period
	BlobPeriodScale = 4

	// BlobAnimationMin is the lower bound (inclusive) of a blob's animation period
	BlobAnimationMin = 50 * time.Millisecond

	// BlobAnimationMax is the upper bound (exclusive) of a blob's animation period
	BlobAnimationMax = 150 * time.Millisecond
)

// Quake
const (
	QuakeID              = "quake"
	QuakeActionPeriod    = 1100 * time.Millisecond
	QuakeAnimationPeriod = 100 * time.Millisecond

	// QuakeAnimationRepeatCount is the number of animation frames a quake plays
	QuakeAnimationRepeatCount = 10
)

// MinPeriod is the floor applied to action and animation periods of scheduled entities
const MinPeriod = time.Millisecond
