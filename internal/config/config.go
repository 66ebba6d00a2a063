// Package config provides YAML-based configuration loading and variant
// presets for the Blokus sandbox, SSH server and chat relay.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/tui-blokus/internal/games/blokus/core"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("config: invalid value")

// BlokusConfig contains all configuration for the application.
type BlokusConfig struct {
	Rules   RulesConfig   `yaml:"rules"`
	Display DisplayConfig `yaml:"display"`
	Relay   RelayConfig   `yaml:"relay"`
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
}

// RulesConfig selects the board rules.
type RulesConfig struct {
	Variant   string `yaml:"variant"`    // corners, classic or edges
	StartRule string `yaml:"start_rule"` // overrides the variant's rule when set
}

// DisplayConfig controls the terminal UI.
type DisplayConfig struct {
	ShowOverlay bool `yaml:"show_overlay"` // validity overlay on at start
	ShowHelp    bool `yaml:"show_help"`    // full key help instead of the short bar
	ChatLines   int  `yaml:"chat_lines"`   // chat history shown in SSH sessions
}

// RelayConfig defines the chat relay.
type RelayConfig struct {
	Addr            string `yaml:"addr"`
	DefaultRoom     string `yaml:"default_room"`
	MaxMessageLen   int    `yaml:"max_message_len"`
	SendBuffer      int    `yaml:"send_buffer"`
	CleanupInterval int    `yaml:"cleanup_interval"` // seconds between empty-room sweeps
}

// ServerConfig defines the SSH server.
type ServerConfig struct {
	Addr        string `yaml:"addr"`
	HostKeyPath string `yaml:"host_key_path"`
	IdleTimeout int    `yaml:"idle_timeout"` // minutes
}

// StorageConfig locates the SQLite database.
type StorageConfig struct {
	Path string `yaml:"path"`
}

// CleanupEvery returns the relay cleanup interval as a duration.
func (r RelayConfig) CleanupEvery() time.Duration {
	return time.Duration(r.CleanupInterval) * time.Second
}

// IdleTimeoutDuration returns the SSH idle timeout as a duration.
func (s ServerConfig) IdleTimeoutDuration() time.Duration {
	return time.Duration(s.IdleTimeout) * time.Minute
}

// StartRule resolves the effective start rule: the explicit rule when set,
// otherwise the variant's rule.
func (c BlokusConfig) StartRule() (core.StartRule, error) {
	if c.Rules.StartRule != "" {
		return ParseStartRule(c.Rules.StartRule)
	}
	v, err := ParseVariant(c.Rules.Variant)
	if err != nil {
		return core.StartCorners, err
	}
	return v.StartRule(), nil
}

// GameID returns the registry id of the configured variant.
func (c BlokusConfig) GameID() string {
	v, err := ParseVariant(c.Rules.Variant)
	if err != nil {
		return VariantCorners.GameID()
	}
	return v.GameID()
}

// Validate checks that every value is usable.
func (c BlokusConfig) Validate() error {
	if _, err := ParseVariant(c.Rules.Variant); err != nil {
		return err
	}
	if c.Rules.StartRule != "" {
		if _, err := ParseStartRule(c.Rules.StartRule); err != nil {
			return err
		}
	}
	switch {
	case c.Relay.Addr == "":
		return fmt.Errorf("%w: relay.addr is empty", ErrInvalidConfig)
	case c.Relay.MaxMessageLen <= 0:
		return fmt.Errorf("%w: relay.max_message_len must be positive", ErrInvalidConfig)
	case c.Relay.SendBuffer <= 0:
		return fmt.Errorf("%w: relay.send_buffer must be positive", ErrInvalidConfig)
	case c.Relay.CleanupInterval <= 0:
		return fmt.Errorf("%w: relay.cleanup_interval must be positive", ErrInvalidConfig)
	case c.Server.Addr == "":
		return fmt.Errorf("%w: server.addr is empty", ErrInvalidConfig)
	case c.Server.IdleTimeout < 0:
		return fmt.Errorf("%w: server.idle_timeout is negative", ErrInvalidConfig)
	case c.Display.ChatLines < 0:
		return fmt.Errorf("%w: display.chat_lines is negative", ErrInvalidConfig)
	}
	return nil
}
