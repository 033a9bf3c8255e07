package audio

// SoundType represents different sound cues
type SoundType int

const (
	SoundHarvest SoundType = iota // Miner picked up ore
	SoundUnload                   // Miner transformed at a blacksmith or on filling up
	SoundQuake                    // Blob consumed a vein
	SoundSpawn                    // Vein produced ore
	soundTypeCount
)

var soundNames = [soundTypeCount]string{"harvest", "unload", "quake", "spawn"}

func (s SoundType) String() string {
	if s < 0 || s >= soundTypeCount {
		return "unknown"
	}
	return soundNames[s]
}

// AudioConfig holds mixer settings
type AudioConfig struct {
	Enabled       bool
	MasterVolume  float64
	SampleRate    int
	EffectVolumes map[SoundType]float64
}

// DefaultAudioConfig returns audio defaults
func DefaultAudioConfig() *AudioConfig {
	return &AudioConfig{
		Enabled:      true,
		MasterVolume: 0.5,
		SampleRate:   44100,
		EffectVolumes: map[SoundType]float64{
			SoundHarvest: 0.5,
			SoundUnload:  0.6,
			SoundQuake:   0.8,
			SoundSpawn:   0.2,
		},
	}
}
