package systems

import (
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/revenant/core"
	"github.com/lixenwraith/revenant/engine"
	"github.com/lixenwraith/revenant/event"
	"github.com/lixenwraith/revenant/parameter"
)

// AudioSystem forwards sound requests to the audio backend
// Requests carrying a source entity play at that entity's time scale
type AudioSystem struct {
	world *engine.World
	log   *zap.Logger
}

// NewAudioSystem creates the audio bridge system
func NewAudioSystem(world *engine.World, log *zap.Logger) *AudioSystem {
	return &AudioSystem{
		world: world,
		log:   log.Named("audio"),
	}
}

// Priority returns the system's priority
func (s *AudioSystem) Priority() int {
	return parameter.PriorityAudio
}

// EventTypes returns the events this system consumes
func (s *AudioSystem) EventTypes() []event.EventType {
	return []event.EventType{event.EventSoundRequest}
}

// HandleEvent plays the requested sound
func (s *AudioSystem) HandleEvent(world *engine.World, ev event.GameEvent) {
	p, ok := ev.Payload.(*event.SoundRequestPayload)
	if !ok {
		return
	}

	audio, ok := engine.GetResource[*engine.AudioResource](world.Resources)
	if !ok || audio.Player == nil {
		return
	}

	if p.Source != core.NoEntity {
		audio.Player.PlayFrom(p.Source, p.Sound)
	} else {
		audio.Player.Play(p.Sound)
	}
}

// Update is event-driven only
func (s *AudioSystem) Update(world *engine.World, dt time.Duration) {}
