package wizard

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mrsinham/ctdose/internal/checklist"
	"github.com/mrsinham/ctdose/internal/logging"
)

// Config represents the configuration file for YAML serialization.
type Config struct {
	OutputDir       string    `yaml:"output_dir"`
	DefaultContrast string    `yaml:"default_contrast"`
	Log             LogConfig `yaml:"log"`
}

// LogConfig holds logging settings with YAML tags.
type LogConfig struct {
	File  string `yaml:"file"`
	Level string `yaml:"level"`
}

// LoadFromYAML reads a config file and resolves it over DefaultSettings.
func LoadFromYAML(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Settings{}, fmt.Errorf("parsing config: %w", err)
	}

	return cfg.Apply(DefaultSettings())
}

// Apply overlays the non-empty values of c onto base.
func (c Config) Apply(base Settings) (Settings, error) {
	s := base
	if c.OutputDir != "" {
		s.OutputDir = c.OutputDir
	}
	if c.DefaultContrast != "" {
		mode, err := checklist.ParseMode(c.DefaultContrast)
		if err != nil {
			return Settings{}, fmt.Errorf("default_contrast: %w", err)
		}
		s.DefaultContrast = mode
	}
	if c.Log.File != "" {
		s.LogFile = c.Log.File
	}
	if c.Log.Level != "" {
		if _, err := logging.ParseLevel(c.Log.Level); err != nil {
			return Settings{}, fmt.Errorf("log.level: %w", err)
		}
		s.LogLevel = c.Log.Level
	}
	return s, nil
}

// ToConfig converts Settings to the YAML form.
func ToConfig(s Settings) Config {
	return Config{
		OutputDir:       s.OutputDir,
		DefaultContrast: s.DefaultContrast.String(),
		Log: LogConfig{
			File:  s.LogFile,
			Level: s.LogLevel,
		},
	}
}

// SaveToYAML writes settings to a YAML file.
func SaveToYAML(s Settings, path string) error {
	data, err := yaml.Marshal(ToConfig(s))
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}
