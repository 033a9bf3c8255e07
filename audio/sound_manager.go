package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/minesim/core"
	"github.com/lixenwraith/minesim/event"
	"github.com/lixenwraith/minesim/parameter"
)

// SoundManager turns simulation notifications into sound cues
// Registered on the simulation router; HandleEvent runs on the simulation goroutine
type SoundManager struct {
	mu          sync.Mutex
	cfg         *AudioConfig
	mixer       *beep.Mixer
	initialized bool

	lastPlayed [soundTypeCount]time.Time
	played     [soundTypeCount]int

	// play sends a streamer to the output, swapped in tests
	play func(beep.Streamer)
	now  func() time.Time
}

// NewSoundManager creates a new sound manager
func NewSoundManager(cfg *AudioConfig) *SoundManager {
	if cfg == nil {
		cfg = DefaultAudioConfig()
	}
	sm := &SoundManager{
		cfg:   cfg,
		mixer: &beep.Mixer{},
		now:   time.Now,
	}
	sm.play = func(s beep.Streamer) {
		speaker.Lock()
		sm.mixer.Add(s)
		speaker.Unlock()
	}
	return sm
}

// Initialize sets up the speaker; failure leaves the manager silent
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized || !sm.cfg.Enabled {
		return nil
	}

	rate := beep.SampleRate(sm.cfg.SampleRate)
	if err := speaker.Init(rate, rate.N(parameter.AudioBufferDuration)); err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup stops all sounds and closes the speaker
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	sm.initialized = false
}

// Play queues a cue unless the same cue played within MinSoundGap
func (sm *SoundManager) Play(st SoundType) bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || st < 0 || st >= soundTypeCount {
		return false
	}

	now := sm.now()
	if now.Sub(sm.lastPlayed[st]) < parameter.MinSoundGap {
		return false
	}

	streamer := GetSoundEffect(st, sm.cfg)
	if streamer == nil {
		return false
	}
	sm.lastPlayed[st] = now
	sm.played[st]++
	sm.play(streamer)
	return true
}

// Played returns how many times st was actually queued
func (sm *SoundManager) Played(st SoundType) int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.played[st]
}

// HandleEvent implements event.Listener
func (sm *SoundManager) HandleEvent(ev event.GameEvent) {
	if st, ok := soundFor(ev); ok {
		sm.Play(st)
	}
}

// EventTypes implements event.Listener
func (sm *SoundManager) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventOreHarvested,
		event.EventMinerTransformed,
		event.EventVeinConsumed,
		event.EventEntitySpawned,
	}
}

// soundFor maps a notification to its cue
func soundFor(ev event.GameEvent) (SoundType, bool) {
	switch ev.Type {
	case event.EventOreHarvested:
		return SoundHarvest, true
	case event.EventMinerTransformed:
		return SoundUnload, true
	case event.EventVeinConsumed:
		return SoundQuake, true
	case event.EventEntitySpawned:
		if ev.Kind == core.KindOre {
			return SoundSpawn, true
		}
	}
	return 0, false
}
