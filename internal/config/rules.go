package config

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-blokus/internal/games/blokus/core"
)

// VariantPreset names a rules preset.
type VariantPreset string

const (
	VariantCorners VariantPreset = "corners" // any board corner starts
	VariantClassic VariantPreset = "classic" // each color starts in its home corner
	VariantEdges   VariantPreset = "edges"   // any border cell starts
)

// Variants lists every preset.
var Variants = []VariantPreset{VariantCorners, VariantClassic, VariantEdges}

// ParseVariant parses a preset name. Empty means corners.
func ParseVariant(s string) (VariantPreset, error) {
	switch VariantPreset(strings.ToLower(strings.TrimSpace(s))) {
	case "", VariantCorners:
		return VariantCorners, nil
	case VariantClassic:
		return VariantClassic, nil
	case VariantEdges:
		return VariantEdges, nil
	}
	return VariantCorners, fmt.Errorf("%w: unknown variant %q", ErrInvalidConfig, s)
}

// StartRule returns the rule the preset plays with.
func (v VariantPreset) StartRule() core.StartRule {
	switch v {
	case VariantClassic:
		return core.StartOwnCorner
	case VariantEdges:
		return core.StartEdges
	default:
		return core.StartCorners
	}
}

// GameID returns the registry id of the preset's sandbox.
func (v VariantPreset) GameID() string {
	switch v {
	case VariantClassic:
		return "blokus_classic"
	case VariantEdges:
		return "blokus_edges"
	default:
		return "blokus"
	}
}

// ApplyVariant switches the config to a preset, clearing any explicit
// start rule so the preset's rule applies.
func ApplyVariant(cfg *BlokusConfig, preset VariantPreset) {
	cfg.Rules.Variant = string(preset)
	cfg.Rules.StartRule = ""
}

// ParseStartRule maps a config string to an engine start rule.
func ParseStartRule(s string) (core.StartRule, error) {
	r, err := core.ParseStartRule(s)
	if err != nil {
		return r, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return r, nil
}
