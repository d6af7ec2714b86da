package audio

import (
	"encoding/json"
	"os"
	"strconv"

	"github.com/lixenwraith/revenant/core"
	"github.com/lixenwraith/revenant/parameter"
)

// AudioConfig holds playback settings
type AudioConfig struct {
	Enabled       bool
	MasterVolume  float64
	EffectVolumes map[core.SoundType]float64
	SampleRate    int
}

// DefaultAudioConfig returns sane defaults with audio muted
func DefaultAudioConfig() *AudioConfig {
	return &AudioConfig{
		Enabled:      false,
		MasterVolume: 0.7,
		EffectVolumes: map[core.SoundType]float64{
			core.SoundStomp:   0.8,
			core.SoundGunshot: 0.6,
			core.SoundBurst:   0.7,
			core.SoundImpact:  0.5,
			core.SoundSwing:   0.6,
			core.SoundSpawn:   0.7,
		},
		SampleRate: parameter.AudioSampleRate,
	}
}

// LoadAudioConfig loads audio configuration from environment variables
func LoadAudioConfig() *AudioConfig {
	cfg := DefaultAudioConfig()

	if enabled := os.Getenv("REVENANT_AUDIO_ENABLED"); enabled != "" {
		if val, err := strconv.ParseBool(enabled); err == nil {
			cfg.Enabled = val
		}
	}

	// Master volume (0-100 converted to 0.0-1.0)
	if volume := os.Getenv("REVENANT_MASTER_VOLUME"); volume != "" {
		if val, err := strconv.Atoi(volume); err == nil {
			cfg.MasterVolume = float64(val) / 100.0
			if cfg.MasterVolume < 0 {
				cfg.MasterVolume = 0
			}
			if cfg.MasterVolume > 1 {
				cfg.MasterVolume = 1
			}
		}
	}

	// Per-effect volumes from JSON
	if effectVols := os.Getenv("REVENANT_SFX_VOLUMES"); effectVols != "" {
		var volumes map[string]float64
		if err := json.Unmarshal([]byte(effectVols), &volumes); err == nil {
			names := map[string]core.SoundType{
				"stomp":   core.SoundStomp,
				"gunshot": core.SoundGunshot,
				"burst":   core.SoundBurst,
				"impact":  core.SoundImpact,
				"swing":   core.SoundSwing,
				"spawn":   core.SoundSpawn,
			}
			for name, st := range names {
				if v, ok := volumes[name]; ok {
					cfg.EffectVolumes[st] = v
				}
			}
		}
	}

	if sampleRate := os.Getenv("REVENANT_SAMPLE_RATE"); sampleRate != "" {
		if val, err := strconv.Atoi(sampleRate); err == nil && val > 0 {
			cfg.SampleRate = val
		}
	}

	return cfg
}
