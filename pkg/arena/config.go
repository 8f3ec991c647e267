// Copyright © 2026 Jon Arve Ovesen
//
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.

package arena

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ConfigName is the configuration file looked up when no explicit path
// is given, first in the working directory and then under the user's
// configuration directory.
const ConfigName = "arena.yaml"

type Config struct {
	// The engine playing White.
	Engine EngineConfig `yaml:"engine"`

	// The model playing Black.
	Model ModelConfig `yaml:"model"`

	// Proposal rounds given to the model each turn before
	// falling back to a random legal move.
	Retries int `yaml:"retries"`

	// Number of games played in one session.
	Games int `yaml:"games"`

	Event string `yaml:"event"` // Event field of the PGN.
	Site  string `yaml:"site"`  // Site field of the PGN.

	// File the game PGNs are appended to.
	PGNOut string `yaml:"pgn-out"`

	Openings struct {
		File  string `yaml:"file"`
		Order string `yaml:"order"`
	} `yaml:"openings"`
}

type ModelConfig struct {
	// Name field of the PGN for the model's side.
	Name string `yaml:"name"`

	// Model identifier sent to the inference API.
	ID string `yaml:"id"`
}

// DefaultConfig returns the standard arena setup: a skill-capped
// Stockfish on a tenth of a second per move against Gemini Flash,
// three proposal rounds per turn.
func DefaultConfig() *Config {
	config := &Config{
		Retries: 3,
		Games:   1,
		Event:   "Cyberchess Dojo",
		Site:    "Arena",
		PGNOut:  "training_data.pgn",
	}

	config.Engine = EngineConfig{
		Name:       "Stockfish Level 5",
		SkillLevel: 5,
		MoveTime:   0.1,
	}

	config.Model = ModelConfig{
		Name: "Gemini 1.5 Flash",
		ID:   "gemini-1.5-flash",
	}

	return config
}

// LoadConfig reads the session configuration from the given file. An
// empty path searches the standard locations; if no file is found the
// defaults are returned as-is.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	if path == "" {
		path = findConfig()
		if path == "" {
			return config, nil
		}
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}

	if err := yaml.Unmarshal(file, config); err != nil {
		return nil, errors.Wrap(err, "parse config")
	}

	return config, nil
}

func findConfig() string {
	if _, err := os.Stat(ConfigName); err == nil {
		return ConfigName
	}

	path := filepath.Join(xdg.ConfigHome, "arena", ConfigName)
	if _, err := os.Stat(path); err == nil {
		return path
	}

	return ""
}

func (config *Config) Validate() error {
	switch {
	case config.Engine.Cmd == "":
		return errors.New("config: engine command not configured")
	case config.Engine.MoveTime <= 0:
		return errors.New("config: engine move time must be positive")
	case config.Engine.SkillLevel < 0 || config.Engine.SkillLevel > 20:
		return errors.New("config: engine skill level must be between 0 and 20")
	case config.Retries < 1:
		return errors.New("config: at least one proposal round is required")
	case config.Games < 1:
		return errors.New("config: at least one game is required")
	default:
		return nil
	}
}
