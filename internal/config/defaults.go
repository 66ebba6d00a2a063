package config

import (
	_ "embed"
)

//go:embed defaults/blokus.yaml
var defaultBlokusYAML []byte

// DefaultBlokusConfig returns the hardcoded configuration used when no
// YAML source is available.
func DefaultBlokusConfig() BlokusConfig {
	return BlokusConfig{
		Rules: RulesConfig{
			Variant: string(VariantCorners),
		},
		Display: DisplayConfig{
			ShowOverlay: false,
			ShowHelp:    false,
			ChatLines:   6,
		},
		Relay: RelayConfig{
			Addr:            "0.0.0.0:6969",
			DefaultRoom:     "lobby",
			MaxMessageLen:   512,
			SendBuffer:      64,
			CleanupInterval: 30,
		},
		Server: ServerConfig{
			Addr:        ":2323",
			HostKeyPath: ".ssh/blokus_ed25519",
			IdleTimeout: 30,
		},
		Storage: StorageConfig{
			Path: "~/.blokus/blokus.db",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultBlokusYAML
}
