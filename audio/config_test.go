package audio

import (
	"testing"

	"github.com/lixenwraith/revenant/core"
	"github.com/lixenwraith/revenant/parameter"
)

func TestDefaultAudioConfig(t *testing.T) {
	cfg := DefaultAudioConfig()

	if cfg.Enabled {
		t.Error("Audio must default to muted")
	}
	if cfg.MasterVolume != 0.7 {
		t.Errorf("Expected master volume 0.7, got %v", cfg.MasterVolume)
	}
	if cfg.SampleRate != parameter.AudioSampleRate {
		t.Errorf("Expected default sample rate, got %d", cfg.SampleRate)
	}
	for _, st := range []core.SoundType{
		core.SoundStomp, core.SoundGunshot, core.SoundBurst,
		core.SoundImpact, core.SoundSwing, core.SoundSpawn,
	} {
		if _, ok := cfg.EffectVolumes[st]; !ok {
			t.Errorf("Missing default volume for sound %d", st)
		}
	}
}

func TestLoadAudioConfigFromEnv(t *testing.T) {
	t.Setenv("REVENANT_AUDIO_ENABLED", "true")
	t.Setenv("REVENANT_MASTER_VOLUME", "45")
	t.Setenv("REVENANT_SFX_VOLUMES", `{"stomp": 0.3, "gunshot": 0.9}`)
	t.Setenv("REVENANT_SAMPLE_RATE", "44100")

	cfg := LoadAudioConfig()

	if !cfg.Enabled {
		t.Error("Expected audio enabled from env")
	}
	if cfg.MasterVolume != 0.45 {
		t.Errorf("Expected master volume 0.45, got %v", cfg.MasterVolume)
	}
	if cfg.EffectVolumes[core.SoundStomp] != 0.3 {
		t.Errorf("Expected stomp volume override, got %v", cfg.EffectVolumes[core.SoundStomp])
	}
	if cfg.EffectVolumes[core.SoundGunshot] != 0.9 {
		t.Errorf("Expected gunshot volume override, got %v", cfg.EffectVolumes[core.SoundGunshot])
	}
	if cfg.SampleRate != 44100 {
		t.Errorf("Expected sample rate override, got %d", cfg.SampleRate)
	}
}

func TestLoadAudioConfigClampsVolume(t *testing.T) {
	t.Setenv("REVENANT_MASTER_VOLUME", "250")
	if cfg := LoadAudioConfig(); cfg.MasterVolume != 1.0 {
		t.Errorf("Expected clamp to 1.0, got %v", cfg.MasterVolume)
	}

	t.Setenv("REVENANT_MASTER_VOLUME", "-10")
	if cfg := LoadAudioConfig(); cfg.MasterVolume != 0 {
		t.Errorf("Expected clamp to 0, got %v", cfg.MasterVolume)
	}
}

func TestLoadAudioConfigIgnoresGarbage(t *testing.T) {
	t.Setenv("REVENANT_AUDIO_ENABLED", "banana")
	t.Setenv("REVENANT_MASTER_VOLUME", "loud")
	t.Setenv("REVENANT_SFX_VOLUMES", "{not json")
	t.Setenv("REVENANT_SAMPLE_RATE", "-8000")

	cfg := LoadAudioConfig()
	def := DefaultAudioConfig()

	if cfg.Enabled != def.Enabled || cfg.MasterVolume != def.MasterVolume || cfg.SampleRate != def.SampleRate {
		t.Errorf("Garbage env must fall back to defaults, got %+v", cfg)
	}
}

func TestSoundCacheRendersEffects(t *testing.T) {
	cache := newSoundCache(48000)

	for st := core.SoundType(0); st < core.SoundTypeCount; st++ {
		streamer := cache.get(st)
		if streamer == nil {
			t.Fatalf("Expected streamer for sound %d", st)
		}

		buf := make([][2]float64, 512)
		n, ok := streamer.Stream(buf)
		if n == 0 || !ok {
			t.Errorf("Sound %d rendered no samples", st)
		}
	}
}

func TestSoundCacheReusesBuffers(t *testing.T) {
	cache := newSoundCache(48000)

	a := cache.get(core.SoundGunshot)
	b := cache.get(core.SoundGunshot)
	if a == nil || b == nil {
		t.Fatal("Expected cached streamers")
	}

	// Separate streamers over the same pre-rendered buffer
	if a == b {
		t.Error("Each get must return an independent playhead")
	}
}
