package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration is a time.Duration that unmarshals from Go duration strings in
// YAML ("60s", "1m30s", "500ms").
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// PlayerConfig describes a single participant.
type PlayerConfig struct {
	Name  string `yaml:"name,omitempty"`
	Human bool   `yaml:"human"`
	// Keys maps keyboard characters to table slots for human players:
	// the i-th rune submits an action for slot i. Ignored for bots.
	Keys string `yaml:"keys,omitempty"`
}

// GameConfig represents the top-level meld.yml configuration. It is loaded
// once at startup and consumed read-only by the game core.
type GameConfig struct {
	Players          []PlayerConfig `yaml:"players"`
	TableSize        int            `yaml:"table_size"`
	FeatureSize      int            `yaml:"feature_size"`
	DeckSize         int            `yaml:"deck_size"`
	TurnTimeout      Duration       `yaml:"turn_timeout"`
	WarningThreshold Duration       `yaml:"warning_threshold"`
	PointFreeze      Duration       `yaml:"point_freeze"`
	PenaltyFreeze    Duration       `yaml:"penalty_freeze"`
	EndPause         Duration       `yaml:"end_pause"`
	Hints            bool           `yaml:"hints,omitempty"`
	// BotDelay throttles bot action generation. Zero means unthrottled:
	// bots run at full speed, bounded only by queue backpressure.
	BotDelay Duration `yaml:"bot_delay,omitempty"`
}

// Default returns the classic game configuration: one human against one
// bot, a 12-slot table, sets of 3 from an 81-card deck, one-minute rounds.
func Default() *GameConfig {
	return &GameConfig{
		Players: []PlayerConfig{
			{Name: "player-1", Human: true, Keys: "qwerasdfzxcv"},
			{Name: "bot-1", Human: false},
		},
		TableSize:        12,
		FeatureSize:      3,
		DeckSize:         81,
		TurnTimeout:      Duration(60 * time.Second),
		WarningThreshold: Duration(10 * time.Second),
		PointFreeze:      Duration(1 * time.Second),
		PenaltyFreeze:    Duration(3 * time.Second),
		EndPause:         Duration(5 * time.Second),
	}
}

// Load reads and validates a meld.yml file.
func Load(path string) (*GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg GameConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate performs strict validation on the configuration.
func (c *GameConfig) Validate() error {
	if len(c.Players) == 0 {
		return fmt.Errorf("no players defined")
	}
	if c.TableSize <= 0 {
		return fmt.Errorf("table_size must be positive, got %d", c.TableSize)
	}
	if c.FeatureSize < 2 {
		return fmt.Errorf("feature_size must be at least 2, got %d", c.FeatureSize)
	}
	if c.DeckSize < c.TableSize {
		return fmt.Errorf("deck_size (%d) must be at least table_size (%d)", c.DeckSize, c.TableSize)
	}
	if c.TurnTimeout <= 0 {
		return fmt.Errorf("turn_timeout must be positive")
	}
	if c.WarningThreshold < 0 || c.WarningThreshold > c.TurnTimeout {
		return fmt.Errorf("warning_threshold must be between 0 and turn_timeout")
	}
	if c.PointFreeze < 0 || c.PenaltyFreeze < 0 || c.EndPause < 0 || c.BotDelay < 0 {
		return fmt.Errorf("freeze, pause and delay durations must not be negative")
	}
	for i, p := range c.Players {
		if p.Human && len(p.Keys) < c.TableSize {
			return fmt.Errorf("player %d is human but maps %d keys for a %d-slot table",
				i, len(p.Keys), c.TableSize)
		}
	}
	return nil
}
