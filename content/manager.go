package content

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/revenant/core"
)

const (
	// DefaultDataDir is scanned when no directory is configured
	DefaultDataDir = "./data/agents"
)

// agentFile is the YAML document shape: a map of named definitions
type agentFile struct {
	Agents map[string]core.AgentDefinition `yaml:"agents"`
}

// ContentManager handles discovery and loading of agent definition files
type ContentManager struct {
	log     *zap.Logger
	dataDir string
	files   []string
}

// NewContentManager creates a new content manager
func NewContentManager(log *zap.Logger) *ContentManager {
	return &ContentManager{
		log:     log.Named("content"),
		dataDir: DefaultDataDir,
	}
}

// DataDir returns the configured definition directory
func (cm *ContentManager) DataDir() string {
	return cm.dataDir
}

// DiscoverFiles scans the data directory for YAML definition files
// A missing directory is not an error, just no files to load
func (cm *ContentManager) DiscoverFiles() error {
	if _, err := os.Stat(cm.dataDir); os.IsNotExist(err) {
		cm.log.Info("data directory does not exist, no definitions discovered",
			zap.String("dir", cm.dataDir))
		return nil
	}

	entries, err := os.ReadDir(cm.dataDir)
	if err != nil {
		return fmt.Errorf("failed to read data directory: %w", err)
	}

	cm.files = cm.files[:0]
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		if strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml") {
			cm.files = append(cm.files, filepath.Join(cm.dataDir, name))
		}
	}

	cm.log.Info("discovered definition files", zap.Int("count", len(cm.files)))
	return nil
}

// Files returns the list of discovered definition files
func (cm *ContentManager) Files() []string {
	return cm.files
}

// LoadAll parses every discovered file into one merged definition set
// A definition repeated across files keeps the last one loaded; files
// that fail to parse or validate are skipped, not fatal
func (cm *ContentManager) LoadAll() map[string]core.AgentDefinition {
	merged := make(map[string]core.AgentDefinition)

	for _, path := range cm.files {
		defs, err := cm.loadFile(path)
		if err != nil {
			cm.log.Warn("skipping definition file",
				zap.String("path", path), zap.Error(err))
			continue
		}
		for name, def := range defs {
			if _, dup := merged[name]; dup {
				cm.log.Warn("duplicate agent definition overridden",
					zap.String("name", name), zap.String("path", path))
			}
			merged[name] = def
		}
	}

	return merged
}

func (cm *ContentManager) loadFile(path string) (map[string]core.AgentDefinition, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc agentFile
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}

	defs := make(map[string]core.AgentDefinition, len(doc.Agents))
	for name, def := range doc.Agents {
		def.Name = name
		if err := ValidateDefinition(def); err != nil {
			cm.log.Warn("dropping invalid agent definition",
				zap.String("name", name), zap.Error(err))
			continue
		}
		defs[name] = def
	}
	return defs, nil
}

// ValidateDefinition rejects definitions the spawn layer cannot build
func ValidateDefinition(def core.AgentDefinition) error {
	switch def.Kind {
	case "dummy", "boombox", "screamer":
	default:
		return fmt.Errorf("unknown kind %q", def.Kind)
	}
	if def.Health <= 0 {
		return fmt.Errorf("health must be positive, got %v", def.Health)
	}
	if def.Radius <= 0 {
		return fmt.Errorf("radius must be positive, got %v", def.Radius)
	}
	if def.MaxVelocity < 0 {
		return fmt.Errorf("max velocity must not be negative, got %v", def.MaxVelocity)
	}
	if def.Path != nil {
		switch def.Path.Kind {
		case "beeline", "strafe":
		default:
			return fmt.Errorf("unknown path kind %q", def.Path.Kind)
		}
		if def.Path.Kind == "strafe" {
			switch def.Path.CircularKind {
			case "linear", "angular":
			default:
				return fmt.Errorf("unknown circular kind %q", def.Path.CircularKind)
			}
		}
	}
	if def.Walk != nil {
		if len(def.Walk.Legs) == 0 {
			return fmt.Errorf("walker needs at least one leg")
		}
		if def.Walk.StepDuration <= 0 {
			return fmt.Errorf("step duration must be positive, got %v", def.Walk.StepDuration)
		}
	}
	return nil
}
