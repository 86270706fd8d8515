package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
	"github.com/k1LoW/expand"
)

const appName = "marquee"

var (
	homePath       string
	configHomePath string
	stateHomePath  string
)

type Config struct {
	// number of commits per pixel
	Depth int `yaml:"depth,omitempty" json:"depth,omitempty"`
	// host the repository is pushed to
	Host string `yaml:"host,omitempty" json:"host,omitempty"`
	// branch created and pushed
	Branch string `yaml:"branch,omitempty" json:"branch,omitempty"`
	// message template of pixel commits
	Message string `yaml:"message,omitempty" json:"message,omitempty"`
	// message of the commit that adds the README
	RootMessage string `yaml:"rootMessage,omitempty" json:"rootMessage,omitempty"`
	// README template
	Readme string `yaml:"readme,omitempty" json:"readme,omitempty"`
}

func init() {
	var err error
	homePath, err = os.UserHomeDir()
	if err != nil {
		panic(fmt.Sprintf("failed to get home directory: %v", err))
	}
}

// Load loads the configuration from the config file.
// It searches for config files in the following order:
// 1. $XDG_CONFIG_HOME/marquee/config-{profile}.yml
// 2. $XDG_CONFIG_HOME/marquee/config.yml
// Environment variables in the file are expanded before parsing.
// If no config file is found, it returns an empty Config struct.
func Load(profile string) (*Config, error) {
	var configBasePaths []string
	if profile != "" {
		configBasePaths = append(configBasePaths, filepath.Join(configPath(), fmt.Sprintf("config-%s", profile)))
	}
	configBasePaths = append(configBasePaths, filepath.Join(configPath(), "config"))
	cfg := &Config{}
	for _, basePath := range configBasePaths {
		for _, ext := range []string{".yml", ".yaml"} {
			configPath := basePath + ext
			if b, err := os.ReadFile(configPath); err == nil {
				if err := yaml.Unmarshal(expand.ExpandenvYAMLBytes(b), cfg); err != nil {
					return nil, fmt.Errorf("failed to unmarshal config: %w", err)
				}
				return cfg, nil
			}
		}
	}
	return cfg, nil
}

// configPath returns the path to the configuration directory.
func configPath() string {
	if configHomePath != "" {
		return configHomePath
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		configHomePath = filepath.Join(v, appName)
	} else {
		configHomePath = filepath.Join(homePath, ".config", appName)
	}
	return configHomePath
}

// StateHomePath returns the path to the state directory, where error dumps are written.
func StateHomePath() string {
	if stateHomePath != "" {
		return stateHomePath
	}
	if v := os.Getenv("XDG_STATE_HOME"); v != "" {
		stateHomePath = filepath.Join(v, appName)
	} else {
		stateHomePath = filepath.Join(homePath, ".local", "state", appName)
	}
	return stateHomePath
}
