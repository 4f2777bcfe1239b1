package audio

import (
	"fmt"
	"log"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// SoundManager plays gameplay cues through the system speaker.
// Every Play call is a no-op until Initialize succeeds, so a machine without
// an audio device runs the game silently.
type SoundManager struct {
	mu          sync.Mutex
	config      *AudioConfig
	mixer       *beep.Mixer
	initialized bool
	played      [soundTypeCount]int

	// add hands a streamer to the running mixer; replaced in tests
	add func(beep.Streamer)
}

// NewSoundManager creates a sound manager; nil cfg uses DefaultAudioConfig
func NewSoundManager(cfg *AudioConfig) *SoundManager {
	if cfg == nil {
		cfg = DefaultAudioConfig()
	}
	sm := &SoundManager{
		config: cfg,
		mixer:  &beep.Mixer{},
	}
	sm.add = sm.addToMixer
	return sm
}

// Initialize opens the speaker and starts the mixer
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if !sm.config.Enabled {
		log.Printf("[AUDIO] [INFO] audio disabled by configuration")
		return nil
	}

	rate := beep.SampleRate(sm.config.SampleRate)
	if err := speaker.Init(rate, rate.N(sm.config.BufferSize)); err != nil {
		return fmt.Errorf("speaker init: %w", err)
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	log.Printf("[AUDIO] [INFO] speaker ready at %d Hz", sm.config.SampleRate)
	return nil
}

// Cleanup stops playback and releases the speaker
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Clear()
	speaker.Close()
	sm.initialized = false
}

// Eat plays the food cue
func (sm *SoundManager) Eat() { sm.play(SoundEat) }

// SpeedUp plays the interval shortened cue
func (sm *SoundManager) SpeedUp() { sm.play(SoundSpeedUp) }

// Crash plays the collision cue
func (sm *SoundManager) Crash() { sm.play(SoundCrash) }

// Win plays the full board cue
func (sm *SoundManager) Win() { sm.play(SoundWin) }

// Played reports how many times a cue reached the mixer
func (sm *SoundManager) Played(soundType SoundType) int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if soundType < 0 || soundType >= soundTypeCount {
		return 0
	}
	return sm.played[soundType]
}

func (sm *SoundManager) play(soundType SoundType) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || !sm.config.Enabled {
		return
	}

	streamer := GetSoundEffect(soundType, sm.config)
	if streamer == nil {
		return
	}
	sm.add(streamer)
	sm.played[soundType]++
}

func (sm *SoundManager) addToMixer(s beep.Streamer) {
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}
