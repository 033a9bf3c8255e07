package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	"github.com/lixenwraith/minesim/parameter"
	"github.com/lixenwraith/minesim/vmath"
)

// WaveType selects the oscillator shape
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// shape maps a phase in [0,1) to a sample in [-1,1]; noise ignores the phase
func (w WaveType) shape(phase float64, noise *vmath.FastRand) float64 {
	switch w {
	case WaveSquare:
		if phase < 0.5 {
			return 1
		}
		return -1
	case WaveSaw:
		return 2*phase - 1
	case WaveNoise:
		return float64(noise.Intn(2001))/1000 - 1
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}

// oscillator is a finite mono tone duplicated on both channels
type oscillator struct {
	wave  WaveType
	step  float64 // phase increment per sample
	phase float64
	left  int // samples still to produce
	noise *vmath.FastRand
}

// NewOscillator creates a tone of freq Hz lasting duration
// Noise is seeded from freq so identical cues sound identical
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		wave:  wave,
		step:  freq / float64(rate),
		left:  rate.N(duration),
		noise: vmath.NewFastRand(uint64(freq*1000) + 1),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	n = min(len(samples), o.left)
	for i := 0; i < n; i++ {
		v := o.wave.shape(o.phase, o.noise)
		samples[i] = [2]float64{v, v}
		_, o.phase = math.Modf(o.phase + o.step)
	}
	o.left -= n
	return n, n > 0
}

func (o *oscillator) Err() error { return nil }

// envelope scales a stream by a linear attack, flat sustain and linear release
type envelope struct {
	streamer beep.Streamer
	pos      int
	total    int
	attack   int
	release  int
}

// NewEnvelope shapes s over duration; the stream is cut at duration
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer: s,
		total:    rate.N(duration),
		attack:   rate.N(attack),
		release:  rate.N(release),
	}
}

// gain returns the multiplier at sample pos
func (e *envelope) gain(pos int) float64 {
	g := 1.0
	if e.attack > 0 && pos < e.attack {
		g = float64(pos) / float64(e.attack)
	}
	if left := e.total - pos; e.release > 0 && left < e.release {
		g = min(g, float64(left)/float64(e.release))
	}
	return g
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	if e.pos >= e.total {
		return 0, false
	}
	if room := e.total - e.pos; len(samples) > room {
		samples = samples[:room]
	}

	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		g := e.gain(e.pos)
		samples[i][0] *= g
		samples[i][1] *= g
		e.pos++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// math.Log2(0) is -Inf, so zero volume becomes silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// CreateHarvestSound generates a short bell for an ore pickup
func CreateHarvestSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	fund := NewOscillator(880.0, parameter.HarvestSoundDuration, WaveSine, rate)
	fundShaped := NewEnvelope(fund, parameter.HarvestSoundDuration, parameter.HarvestSoundAttack, parameter.HarvestSoundFundamentalRelease, rate)

	over := NewOscillator(1760.0, parameter.HarvestSoundDuration, WaveSine, rate)
	overShaped := NewEnvelope(over, parameter.HarvestSoundDuration, parameter.HarvestSoundAttack, parameter.HarvestSoundOvertoneRelease, rate)

	mixed := beep.Take(rate.N(parameter.HarvestSoundDuration), beep.Mix(
		newVolume(fundShaped, 0.7),
		newVolume(overShaped, 0.3),
	))
	return newVolume(mixed, cfg.EffectVolumes[SoundHarvest]*cfg.MasterVolume)
}

// CreateUnloadSound generates a two-note chime for a miner transform
func CreateUnloadSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	n1 := NewOscillator(987.77, parameter.UnloadSoundNote1Duration, WaveSquare, rate)
	n1Shaped := NewEnvelope(n1, parameter.UnloadSoundNote1Duration, parameter.UnloadSoundAttack, parameter.UnloadSoundNote1Release, rate)

	n2 := NewOscillator(1318.51, parameter.UnloadSoundNote2Duration, WaveSquare, rate)
	n2Shaped := NewEnvelope(n2, parameter.UnloadSoundNote2Duration, parameter.UnloadSoundAttack, parameter.UnloadSoundNote2Release, rate)

	return newVolume(beep.Seq(n1Shaped, n2Shaped), cfg.EffectVolumes[SoundUnload]*cfg.MasterVolume)
}

// CreateQuakeSound generates a low rumble for a consumed vein
func CreateQuakeSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	noise := NewOscillator(0, parameter.QuakeSoundDuration, WaveNoise, rate)
	noiseShaped := NewEnvelope(noise, parameter.QuakeSoundDuration, parameter.QuakeSoundAttack, parameter.QuakeSoundRelease, rate)

	saw := NewOscillator(parameter.QuakeSoundFreq, parameter.QuakeSoundDuration, WaveSaw, rate)
	sawShaped := NewEnvelope(saw, parameter.QuakeSoundDuration, parameter.QuakeSoundAttack, parameter.QuakeSoundRelease, rate)

	mixed := beep.Take(rate.N(parameter.QuakeSoundDuration), beep.Mix(
		newVolume(noiseShaped, 0.4),
		newVolume(sawShaped, 0.6),
	))
	return newVolume(mixed, cfg.EffectVolumes[SoundQuake]*cfg.MasterVolume)
}

// CreateSpawnSound generates a short sine blip for a new ore
func CreateSpawnSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	sine, err := generators.SineTone(rate, parameter.SpawnSoundFreq)
	if err != nil {
		return beep.Silence(0)
	}
	blip := beep.Take(rate.N(parameter.SpawnSoundDuration), sine)
	return newVolume(blip, cfg.EffectVolumes[SoundSpawn]*cfg.MasterVolume)
}

// GetSoundEffect returns the streamer for soundType, nil if unknown
func GetSoundEffect(soundType SoundType, cfg *AudioConfig) beep.Streamer {
	switch soundType {
	case SoundHarvest:
		return CreateHarvestSound(cfg)
	case SoundUnload:
		return CreateUnloadSound(cfg)
	case SoundQuake:
		return CreateQuakeSound(cfg)
	case SoundSpawn:
		return CreateSpawnSound(cfg)
	default:
		return nil
	}
}
