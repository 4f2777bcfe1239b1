package audio

import "time"

// SoundType represents different sound effects
type SoundType int

const (
	SoundEat     SoundType = iota // Food consumed
	SoundSpeedUp                  // Tick interval shortened
	SoundCrash                    // Wall or self collision
	SoundWin                      // Board filled
	soundTypeCount
)

// AudioConfig holds volume and output settings
type AudioConfig struct {
	Enabled       bool
	MasterVolume  float64 // 0.0-1.0
	EffectVolumes [soundTypeCount]float64
	SampleRate    int
	BufferSize    time.Duration
}

// DefaultAudioConfig returns audio enabled at moderate volume
func DefaultAudioConfig() *AudioConfig {
	return &AudioConfig{
		Enabled:      true,
		MasterVolume: 0.5,
		EffectVolumes: [soundTypeCount]float64{
			SoundEat:     0.6,
			SoundSpeedUp: 0.5,
			SoundCrash:   0.8,
			SoundWin:     0.6,
		},
		SampleRate: 44100,
		BufferSize: 100 * time.Millisecond,
	}
}

// Effect envelope timings
const (
	eatSoundDuration = 60 * time.Millisecond
	eatSoundAttack   = 2 * time.Millisecond
	eatSoundRelease  = 40 * time.Millisecond

	speedUpNoteDuration = 70 * time.Millisecond
	speedUpAttack       = 5 * time.Millisecond
	speedUpRelease      = 30 * time.Millisecond

	crashSoundDuration = 350 * time.Millisecond
	crashSoundAttack   = 1 * time.Millisecond
	crashSoundRelease  = 300 * time.Millisecond

	winNoteDuration = 120 * time.Millisecond
	winNoteAttack   = 5 * time.Millisecond
	winNoteRelease  = 80 * time.Millisecond
)
