package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/revenant/core"
	"github.com/lixenwraith/revenant/parameter"
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
	sweep    float64 // Hz per second, applied to freq over the duration
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a new oscillator for wave generation
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

// NewSweepOscillator creates an oscillator whose pitch drifts over time
func NewSweepOscillator(freq, sweep float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		sweep:    sweep,
		duration: rate.N(duration),
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
		freq := o.freq + o.sweep*float64(o.position)/float64(o.rate)
		o.phase += freq / float64(o.rate)
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
// All builders emit at unity gain; the engine applies configured volume

// CreateGunshotSound generates a sharp cracking noise burst with a low thump
func CreateGunshotSound(rate beep.SampleRate) beep.Streamer {
	noise := NewOscillator(0, parameter.GunshotDuration, WaveNoise, rate)
	crack := NewEnvelope(noise, parameter.GunshotDuration, parameter.GunshotAttack, parameter.GunshotRelease, rate)

	thump := NewSweepOscillator(120.0, -400.0, parameter.GunshotDuration, WaveSine, rate)
	thumpShaped := NewEnvelope(thump, parameter.GunshotDuration, parameter.GunshotAttack, parameter.GunshotRelease, rate)

	return beep.Mix(
		newVolume(crack, 0.6),
		newVolume(thumpShaped, 0.4),
	)
}

// CreateBurstSound generates a wider boom for the ring burst
func CreateBurstSound(rate beep.SampleRate) beep.Streamer {
	noise := NewOscillator(0, parameter.BurstDuration, WaveNoise, rate)
	body := NewEnvelope(noise, parameter.BurstDuration, parameter.BurstAttack, parameter.BurstRelease, rate)

	boom := NewSweepOscillator(80.0, -100.0, parameter.BurstDuration, WaveSine, rate)
	boomShaped := NewEnvelope(boom, parameter.BurstDuration, parameter.BurstAttack, parameter.BurstRelease, rate)

	return beep.Mix(
		newVolume(body, 0.4),
		newVolume(boomShaped, 0.6),
	)
}

// CreateImpactSound generates a short click for bullet hits
func CreateImpactSound(rate beep.SampleRate) beep.Streamer {
	osc := NewOscillator(440.0, parameter.ImpactDuration, WaveSquare, rate)
	return NewEnvelope(osc, parameter.ImpactDuration, parameter.ImpactAttack, parameter.ImpactRelease, rate)
}

// CreateSwingSound generates a rising whoosh for the sledge swing
func CreateSwingSound(rate beep.SampleRate) beep.Streamer {
	noise := NewOscillator(0, parameter.SwingDuration, WaveNoise, rate)
	return NewEnvelope(noise, parameter.SwingDuration, parameter.SwingAttack, parameter.SwingRelease, rate)
}

// CreateStompSound generates a low thud for leg touchdown
func CreateStompSound(rate beep.SampleRate) beep.Streamer {
	osc := NewSweepOscillator(70.0, -120.0, parameter.StompDuration, WaveSine, rate)
	return NewEnvelope(osc, parameter.StompDuration, parameter.StompAttack, parameter.StompRelease, rate)
}

// CreateSpawnSound generates a two-note chime for spawn materialization
func CreateSpawnSound(rate beep.SampleRate) beep.Streamer {
	n1 := NewOscillator(659.26, parameter.SpawnNoteDuration, WaveSine, rate)
	n1Shaped := NewEnvelope(n1, parameter.SpawnNoteDuration, parameter.SpawnAttack, parameter.SpawnRelease, rate)

	n2 := NewOscillator(987.77, parameter.SpawnNoteDuration, WaveSine, rate)
	n2Shaped := NewEnvelope(n2, parameter.SpawnNoteDuration, parameter.SpawnAttack, parameter.SpawnRelease, rate)

	return beep.Seq(n1Shaped, n2Shaped)
}

// GetSoundEffect returns the appropriate sound effect streamer for the given type
func GetSoundEffect(soundType core.SoundType, rate beep.SampleRate) beep.Streamer {
	switch soundType {
	case core.SoundGunshot:
		return CreateGunshotSound(rate)
	case core.SoundBurst:
		return CreateBurstSound(rate)
	case core.SoundImpact:
		return CreateImpactSound(rate)
	case core.SoundSwing:
		return CreateSwingSound(rate)
	case core.SoundStomp:
		return CreateStompSound(rate)
	case core.SoundSpawn:
		return CreateSpawnSound(rate)
	default:
		return nil
	}
}
