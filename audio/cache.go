package audio

import (
	"sync"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/revenant/core"
)

// soundCache stores pre-rendered unity-gain sample buffers
// Rendering once and replaying slices keeps the mix goroutine free of
// synthesis work
type soundCache struct {
	mu     sync.RWMutex
	format beep.Format
	store  [core.SoundTypeCount]*beep.Buffer
}

func newSoundCache(rate beep.SampleRate) *soundCache {
	return &soundCache{
		format: beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2},
	}
}

// get returns a fresh streamer over the cached buffer, rendering on demand
func (c *soundCache) get(st core.SoundType) beep.Streamer {
	if st < 0 || st >= core.SoundTypeCount {
		return nil
	}

	c.mu.RLock()
	if buf := c.store[st]; buf != nil {
		c.mu.RUnlock()
		return buf.Streamer(0, buf.Len())
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	// Double-check after acquiring write lock
	if buf := c.store[st]; buf != nil {
		return buf.Streamer(0, buf.Len())
	}

	src := GetSoundEffect(st, c.format.SampleRate)
	if src == nil {
		return nil
	}
	buf := beep.NewBuffer(c.format)
	buf.Append(src)
	c.store[st] = buf
	return buf.Streamer(0, buf.Len())
}

// preload renders frequently used sounds at init
func (c *soundCache) preload() {
	c.get(core.SoundStomp) // Screamers step constantly
	c.get(core.SoundGunshot)
}
