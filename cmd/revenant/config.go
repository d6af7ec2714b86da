package main

import (
	"github.com/spf13/viper"
)

// Config is the top-level runtime configuration
type Config struct {
	Game   GameConfig   `mapstructure:"game"`
	Island IslandConfig `mapstructure:"island"`
	Audio  AudioConfig  `mapstructure:"audio"`
	Spawns []SpawnEntry `mapstructure:"spawns"`
}

type GameConfig struct {
	TickMs     int    `mapstructure:"tick_ms"`
	MaxDeltaMs int    `mapstructure:"max_delta_ms"`
	DataDir    string `mapstructure:"data_dir"`
}

// IslandConfig shapes the single demo nav island
type IslandConfig struct {
	Width         int      `mapstructure:"width"`
	Height        int      `mapstructure:"height"`
	CellSize      float64  `mapstructure:"cell_size"`
	MinFlowTicks  int      `mapstructure:"min_flow_ticks"`
	DirtyDistance int      `mapstructure:"dirty_distance"`
	Walls         [][2]int `mapstructure:"walls"`
	Border        bool     `mapstructure:"border"`

	// Maze carves a generated wall layout instead of hand-placed walls
	Maze         bool    `mapstructure:"maze"`
	MazeBraiding float64 `mapstructure:"maze_braiding"`
	MazeSeed     int64   `mapstructure:"maze_seed"`
}

type AudioConfig struct {
	Muted bool `mapstructure:"muted"`
}

// SpawnEntry schedules an enemy spawn at a simulation frame
type SpawnEntry struct {
	Kind    string  `mapstructure:"kind"`
	X       float64 `mapstructure:"x"`
	Z       float64 `mapstructure:"z"`
	AtFrame int64   `mapstructure:"at_frame"`
}

// LoadConfig reads the YAML config; a missing file yields defaults
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("game.tick_ms", 50)
	v.SetDefault("game.max_delta_ms", 100)
	v.SetDefault("game.data_dir", "./data/agents")
	v.SetDefault("island.width", 48)
	v.SetDefault("island.height", 24)
	v.SetDefault("island.cell_size", 1.0)
	v.SetDefault("island.min_flow_ticks", 3)
	v.SetDefault("island.dirty_distance", 4)
	v.SetDefault("island.border", true)
	v.SetDefault("island.maze_braiding", 0.5)
	v.SetDefault("audio.muted", true)

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
