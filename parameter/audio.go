package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100

	// AudioBufferDuration determines speaker latency
	AudioBufferDuration = 100 * time.Millisecond

	// MinSoundGap between two plays of the same cue, in wall-clock time
	MinSoundGap = 80 * time.Millisecond
)

// Harvest Sound (bell)
const (
	HarvestSoundDuration           = 400 * time.Millisecond
	HarvestSoundAttack             = 5 * time.Millisecond
	HarvestSoundFundamentalRelease = 350 * time.Millisecond
	HarvestSoundOvertoneRelease    = 150 * time.Millisecond
)

// Unload Sound (two-note chime)
const (
	UnloadSoundNote1Duration = 80 * time.Millisecond
	UnloadSoundNote2Duration = 280 * time.Millisecond
	UnloadSoundAttack        = 5 * time.Millisecond
	UnloadSoundNote1Release  = 40 * time.Millisecond
	UnloadSoundNote2Release  = 200 * time.Millisecond
)

// Quake Sound (noise rumble over a low saw)
const (
	QuakeSoundDuration = 500 * time.Millisecond
	QuakeSoundAttack   = 20 * time.Millisecond
	QuakeSoundRelease  = 350 * time.Millisecond
	QuakeSoundFreq     = 55.0 // Hz
)

// Spawn Sound (short sine blip)
const (
	SpawnSoundDuration = 60 * time.Millisecond
	SpawnSoundFreq     = 660.0 // Hz
)
