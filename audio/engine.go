package audio

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/revenant/core"
	"github.com/lixenwraith/revenant/parameter"
)

// AudioEngine renders sound effects through the system speaker
// Playback attributed to an entity runs through a resampler so the
// entity's time scale bends pitch and rate together
type AudioEngine struct {
	config *AudioConfig
	cache  *soundCache
	mixer  *beep.Mixer
	rate   beep.SampleRate

	mu    sync.Mutex
	rates map[core.Entity]float64
	live  map[core.Entity][]*beep.Resampler

	running    atomic.Bool
	muted      atomic.Bool
	silentMode atomic.Bool
}

// NewAudioEngine creates an audio engine
func NewAudioEngine(cfg ...*AudioConfig) (*AudioEngine, error) {
	config := DefaultAudioConfig()
	if len(cfg) > 0 && cfg[0] != nil {
		config = cfg[0]
	}

	rate := beep.SampleRate(config.SampleRate)
	ae := &AudioEngine{
		config: config,
		cache:  newSoundCache(rate),
		mixer:  &beep.Mixer{},
		rate:   rate,
		rates:  make(map[core.Entity]float64),
		live:   make(map[core.Entity][]*beep.Resampler),
	}
	ae.muted.Store(!config.Enabled)

	ae.cache.preload()

	return ae, nil
}

// Start opens the speaker and attaches the mixer
func (ae *AudioEngine) Start() error {
	if ae.running.Load() {
		return fmt.Errorf("audio engine already running")
	}

	if err := speaker.Init(ae.rate, ae.rate.N(parameter.AudioBufferDuration)); err != nil {
		// No output device. Keep running silently so callers need no
		// special handling
		ae.silentMode.Store(true)
		ae.running.Store(true)
		return nil
	}

	speaker.Play(ae.mixer)
	ae.running.Store(true)
	return nil
}

// Stop silences and detaches everything
func (ae *AudioEngine) Stop() {
	if !ae.running.Load() {
		return
	}
	if !ae.silentMode.Load() {
		speaker.Clear()
	}
	ae.mu.Lock()
	ae.live = make(map[core.Entity][]*beep.Resampler)
	ae.mu.Unlock()
	ae.running.Store(false)
}

// Play renders a one-shot sound effect at normal rate
func (ae *AudioEngine) Play(st core.SoundType) bool {
	return ae.play(st, nil)
}

// PlayFrom renders a sound attributed to an entity at its current rate
// Sounds from an entity whose time is stopped are suppressed
func (ae *AudioEngine) PlayFrom(e core.Entity, st core.SoundType) bool {
	return ae.play(st, &e)
}

func (ae *AudioEngine) play(st core.SoundType, source *core.Entity) bool {
	if !ae.running.Load() || ae.muted.Load() || ae.silentMode.Load() {
		return false
	}

	streamer := ae.cache.get(st)
	if streamer == nil {
		return false
	}

	vol := ae.config.EffectVolumes[st] * ae.config.MasterVolume
	shaped := newVolume(streamer, vol)

	if source == nil {
		speaker.Lock()
		ae.mixer.Add(shaped)
		speaker.Unlock()
		return true
	}

	e := *source
	ae.mu.Lock()
	ratio, ok := ae.rates[e]
	if !ok {
		ratio = 1.0
	}
	if ratio <= 0 {
		ae.mu.Unlock()
		return false
	}
	resampled := beep.ResampleRatio(parameter.ResampleQuality, ratio, shaped)
	ae.live[e] = append(ae.live[e], resampled)
	ae.mu.Unlock()

	done := beep.Callback(func() {
		ae.release(e, resampled)
	})

	speaker.Lock()
	ae.mixer.Add(beep.Seq(resampled, done))
	speaker.Unlock()
	return true
}

// release drops a finished resampler from the live set
func (ae *AudioEngine) release(e core.Entity, r *beep.Resampler) {
	ae.mu.Lock()
	defer ae.mu.Unlock()

	active := ae.live[e]
	for i, res := range active {
		if res == r {
			active[i] = active[len(active)-1]
			active = active[:len(active)-1]
			break
		}
	}
	if len(active) == 0 {
		delete(ae.live, e)
	} else {
		ae.live[e] = active
	}
}

// SetSpeed records an entity's playback rate and retunes in-flight sounds
func (ae *AudioEngine) SetSpeed(e core.Entity, speed float64) {
	ae.mu.Lock()
	ae.rates[e] = speed
	active := make([]*beep.Resampler, len(ae.live[e]))
	copy(active, ae.live[e])
	ae.mu.Unlock()

	if speed <= 0 || len(active) == 0 {
		return
	}

	speaker.Lock()
	for _, r := range active {
		r.SetRatio(speed)
	}
	speaker.Unlock()
}

// ToggleMute flips the mute state, returning the new state
func (ae *AudioEngine) ToggleMute() bool {
	muted := !ae.muted.Load()
	ae.muted.Store(muted)
	return muted
}

// IsMuted reports the mute state
func (ae *AudioEngine) IsMuted() bool {
	return ae.muted.Load()
}

// IsRunning reports whether the engine has started
func (ae *AudioEngine) IsRunning() bool {
	return ae.running.Load()
}
