package main

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type SeedConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type Config struct {
	VelocityPath   string      `yaml:"velocity_path"`
	BasinPath      string      `yaml:"basin_path"`
	OutputPath     string      `yaml:"output_path"`
	SpeedThreshold float64     `yaml:"speed_threshold"`
	StepLength     float64     `yaml:"step_length"`
	MaxSteps       int         `yaml:"max_steps"`
	DefaultSeed    *SeedConfig `yaml:"default_seed"`
	SnapshotDir    string      `yaml:"snapshot_dir"`
}

func defaultConfig() *Config {
	return &Config{
		OutputPath:     "seed_points.csv",
		SpeedThreshold: 0.1,   // m per day
		StepLength:     250,   // half a grid cell
		MaxSteps:       10000, // safety bound for closed loops
	}
}

// loadConfig reads a yaml config file over the defaults. A missing file
// falls back to defaults; validation catches the unset input paths either
// way.
func loadConfig(path string) (*Config, error) {
	config := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	config.VelocityPath = expandPath(config.VelocityPath)
	config.BasinPath = expandPath(config.BasinPath)
	config.OutputPath = expandPath(config.OutputPath)
	config.SnapshotDir = expandPath(config.SnapshotDir)
	return config, nil
}

func (c *Config) Validate() error {
	if c.VelocityPath == "" {
		return fmt.Errorf("velocity_path is not set")
	}
	if c.BasinPath == "" {
		return fmt.Errorf("basin_path is not set")
	}
	if c.OutputPath == "" {
		return fmt.Errorf("output_path is not set")
	}
	if c.StepLength <= 0 {
		return fmt.Errorf("step_length must be positive, got %v", c.StepLength)
	}
	if c.SpeedThreshold < 0 {
		return fmt.Errorf("speed_threshold must not be negative, got %v", c.SpeedThreshold)
	}
	if c.MaxSteps < 1 {
		return fmt.Errorf("max_steps must be at least 1, got %d", c.MaxSteps)
	}
	return nil
}

func (c *Config) TraceConfig() TraceConfig {
	return TraceConfig{
		StepLength:     c.StepLength,
		SpeedThreshold: c.SpeedThreshold,
		MaxSteps:       c.MaxSteps,
	}
}

func expandPath(path string) string {
	if path == "" {
		return path
	}
	if path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
