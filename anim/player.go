// Package anim advances named clips on a per-entity player
//
// Players track elapsed time through a clip at a signed speed. Negative
// speeds rewind the clip and clamp at zero, matching how a cancelled
// wind-up plays back out of the pose it reached
package anim

import (
	"time"
)

// Clip is a named animation with a fixed base duration
type Clip struct {
	Name     string
	Duration time.Duration
}

// Player advances one active clip at a time
type Player struct {
	clips map[string]Clip

	current    string
	elapsed    time.Duration
	speed      float64
	repeat     bool
	transition time.Duration // Remaining blend-in time
}

// NewPlayer creates a player over the given clip set
func NewPlayer(clips []Clip) *Player {
	m := make(map[string]Clip, len(clips))
	for _, c := range clips {
		m[c.Name] = c
	}
	return &Player{clips: m, speed: 1.0}
}

// Start switches to a clip from its beginning at unit speed
func (p *Player) Start(name string) *Player {
	p.current = name
	p.elapsed = 0
	p.speed = 1.0
	p.repeat = false
	p.transition = 0
	return p
}

// StartWithTransition switches to a clip, blending in over d
func (p *Player) StartWithTransition(name string, d time.Duration) *Player {
	p.Start(name)
	p.transition = d
	return p
}

// SetSpeed sets the playback rate; negative rewinds
func (p *Player) SetSpeed(speed float64) *Player {
	p.speed = speed
	return p
}

// Repeat loops the current clip
func (p *Player) Repeat() *Player {
	p.repeat = true
	return p
}

// Speed returns the playback rate
func (p *Player) Speed() float64 {
	return p.speed
}

// Current returns the active clip name, empty when idle
func (p *Player) Current() string {
	return p.current
}

// ClipDuration returns the base duration of a registered clip
func (p *Player) ClipDuration(name string) (time.Duration, bool) {
	clip, ok := p.clips[name]
	return clip.Duration, ok
}

// Elapsed returns progress through the active clip
func (p *Player) Elapsed() time.Duration {
	return p.elapsed
}

// SetElapsed moves the playhead; values clamp into the clip
func (p *Player) SetElapsed(d time.Duration) *Player {
	clip, ok := p.clips[p.current]
	if !ok {
		return p
	}
	if d < 0 {
		d = 0
	}
	if d > clip.Duration {
		d = clip.Duration
	}
	p.elapsed = d
	return p
}

// Finished reports whether a non-repeating clip played out
func (p *Player) Finished() bool {
	clip, ok := p.clips[p.current]
	if !ok {
		return true
	}
	return !p.repeat && p.speed >= 0 && p.elapsed >= clip.Duration
}

// Advance moves the playhead by dt at the current speed
// Reversed playback clamps at the clip start instead of wrapping
func (p *Player) Advance(dt time.Duration) {
	clip, ok := p.clips[p.current]
	if !ok {
		return
	}
	if p.transition > 0 {
		p.transition -= dt
		if p.transition < 0 {
			p.transition = 0
		}
	}

	p.elapsed += time.Duration(float64(dt) * p.speed)

	if p.elapsed < 0 {
		p.elapsed = 0
		return
	}
	if p.elapsed >= clip.Duration {
		if p.repeat && clip.Duration > 0 {
			p.elapsed %= clip.Duration
		} else {
			p.elapsed = clip.Duration
		}
	}
}
