package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates raw audio waves
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a new oscillator for wave generation
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	samples := rate.N(duration)
	return &oscillator{
		freq:     freq,
		phase:    0,
		duration: samples,
		position: 0,
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, false
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		// Advance phase
		o.phase += o.freq / float64(o.rate)
		o.phase = o.phase - math.Floor(o.phase) // Keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// NewEnvelope creates an ADSR envelope (simplified to just attack/release)
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	sus := total - att - rel
	if sus < 0 {
		sus = 0
	}

	return &envelope{
		streamer:       s,
		position:       0,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: sus,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, false
		}

		var vol float64 = 1.0

		// Attack phase
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		// Release phase
		releaseStart := e.attackSamples + e.sustainSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			remaining := e.totalSamples - e.position
			vol = float64(remaining) / float64(e.releaseSamples)
			if vol < 0 {
				vol = 0
			}
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// Helper to create a volume effect safely
// math.Log2(0) is -Inf, so we handle 0 volume by making it silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// Sound effect generators

// CreateEatSound generates a short square blip
func CreateEatSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	osc := NewOscillator(660.0, eatSoundDuration, WaveSquare, rate)
	shaped := NewEnvelope(osc, eatSoundDuration, eatSoundAttack, eatSoundRelease, rate)

	return newVolume(shaped, cfg.EffectVolumes[SoundEat]*cfg.MasterVolume)
}

// CreateSpeedUpSound generates a rising two-note chirp
func CreateSpeedUpSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	// E5 then A5
	n1 := NewOscillator(659.25, speedUpNoteDuration, WaveSine, rate)
	n1Shaped := NewEnvelope(n1, speedUpNoteDuration, speedUpAttack, speedUpRelease, rate)
	n2 := NewOscillator(880.0, speedUpNoteDuration, WaveSine, rate)
	n2Shaped := NewEnvelope(n2, speedUpNoteDuration, speedUpAttack, speedUpRelease, rate)

	return newVolume(beep.Seq(n1Shaped, n2Shaped), cfg.EffectVolumes[SoundSpeedUp]*cfg.MasterVolume)
}

// CreateCrashSound generates a noise burst over a low saw
func CreateCrashSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	noise := NewOscillator(0, crashSoundDuration, WaveNoise, rate)
	noiseShaped := NewEnvelope(noise, crashSoundDuration, crashSoundAttack, crashSoundRelease, rate)
	low := NewOscillator(80.0, crashSoundDuration, WaveSaw, rate)
	lowShaped := NewEnvelope(low, crashSoundDuration, crashSoundAttack, crashSoundRelease, rate)

	// Take bounds the mix, which would otherwise pad with silence
	mixed := beep.Take(rate.N(crashSoundDuration), beep.Mix(
		newVolume(noiseShaped, 0.6),
		newVolume(lowShaped, 0.4),
	))
	return newVolume(mixed, cfg.EffectVolumes[SoundCrash]*cfg.MasterVolume)
}

// CreateWinSound generates a major arpeggio
func CreateWinSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	// C5 E5 G5 C6
	freqs := []float64{523.25, 659.25, 783.99, 1046.5}
	notes := make([]beep.Streamer, len(freqs))
	for i, f := range freqs {
		osc := NewOscillator(f, winNoteDuration, WaveSquare, rate)
		notes[i] = NewEnvelope(osc, winNoteDuration, winNoteAttack, winNoteRelease, rate)
	}

	return newVolume(beep.Seq(notes...), cfg.EffectVolumes[SoundWin]*cfg.MasterVolume)
}

// GetSoundEffect returns the appropriate sound effect streamer for the given type
func GetSoundEffect(soundType SoundType, cfg *AudioConfig) beep.Streamer {
	switch soundType {
	case SoundEat:
		return CreateEatSound(cfg)
	case SoundSpeedUp:
		return CreateSpeedUpSound(cfg)
	case SoundCrash:
		return CreateCrashSound(cfg)
	case SoundWin:
		return CreateWinSound(cfg)
	default:
		return nil
	}
}
