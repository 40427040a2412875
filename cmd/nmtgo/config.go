package main

import (
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// Config represents the nmtgo configuration file
// (~/.config/nmtgo/config.yaml). All fields are pointers so "not set" is
// distinguishable from zero values.
type Config struct {
	BeamWidth *int64 `yaml:"beam_width"`
	NBest     *int64 `yaml:"nbest"`
	MaxLength *int64 `yaml:"max_length"`
	Port      *int64 `yaml:"port"`
	Workers   *int64 `yaml:"workers"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

func configPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "nmtgo", "config.yaml")
}

// applyServeConfig applies config file defaults where the corresponding
// CLI flag was not explicitly set.
func applyServeConfig(c *cli.Command, cfg Config, port *int64) {
	applyDecodeConfig(c, cfg)
	if cfg.Port != nil && !c.IsSet("port") {
		*port = *cfg.Port
	}
	if cfg.Workers != nil && !c.IsSet("workers") {
		workers = *cfg.Workers
	}
}

func applyDecodeConfig(c *cli.Command, cfg Config) {
	if cfg.BeamWidth != nil && !c.IsSet("beam-width") && !c.IsSet("beamsize") {
		beamWidth = *cfg.BeamWidth
	}
	if cfg.NBest != nil && !c.IsSet("nbest") {
		nbest = *cfg.NBest
	}
	if cfg.MaxLength != nil && !c.IsSet("max-length") {
		maxLength = *cfg.MaxLength
	}
	if cfg.LogLevel != "" && !c.IsSet("log-level") {
		logLevel = cfg.LogLevel
	}
	if cfg.LogFormat != "" && !c.IsSet("log-format") {
		logFormat = cfg.LogFormat
	}
}

// LoadConfig reads the config file. Returns a zero Config if the file
// doesn't exist or cannot be parsed.
func LoadConfig() Config {
	path := configPath()
	if path == "" {
		return Config{}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}
	}
	return cfg
}
