// Package config loads the optional analysis profile: an HCL file of
// defaults, overridable by environment variables. Command-line flags
// override both.
package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Profile holds run defaults shared by the analysis subcommands.
type Profile struct {
	Defaults Defaults `hcl:"defaults,block"`
}

// Defaults are the tunables every run starts from.
type Defaults struct {
	HandSize     int     `hcl:"hand_size,optional" env:"DECKODDS_HAND_SIZE"`
	Draws        int     `hcl:"draws,optional" env:"DECKODDS_DRAWS"`
	Samples      int     `hcl:"samples,optional" env:"DECKODDS_SAMPLES"`
	CardsPerTurn float64 `hcl:"cards_per_turn,optional" env:"DECKODDS_CARDS_PER_TURN"`
	Workers      int     `hcl:"workers,optional" env:"DECKODDS_WORKERS"`
	CardDB       string  `hcl:"card_db,optional" env:"DECKODDS_CARD_DB"`
}

// DefaultProfile returns the built-in defaults.
func DefaultProfile() *Profile {
	return &Profile{
		Defaults: Defaults{
			HandSize:     5,
			Draws:        10,
			Samples:      10000,
			CardsPerTurn: 1,
		},
	}
}

// Load reads the profile file when it exists, falls back to the
// built-in defaults when it does not, and applies environment
// overrides either way.
func Load(filename string) (*Profile, error) {
	profile := DefaultProfile()

	if _, err := os.Stat(filename); err == nil {
		parser := hclparse.NewParser()
		file, diags := parser.ParseHCLFile(filename)
		if diags.HasErrors() {
			return nil, fmt.Errorf("parsing profile %s: %s", filename, diags.Error())
		}

		var loaded Profile
		if diags := gohcl.DecodeBody(file.Body, nil, &loaded); diags.HasErrors() {
			return nil, fmt.Errorf("decoding profile %s: %s", filename, diags.Error())
		}
		merge(&profile.Defaults, loaded.Defaults)
	}

	if err := env.Parse(&profile.Defaults); err != nil {
		return nil, fmt.Errorf("parsing environment overrides: %w", err)
	}

	if err := profile.Validate(); err != nil {
		return nil, err
	}
	return profile, nil
}

// merge copies set fields from an HCL-decoded profile over the
// built-in defaults, leaving unset fields alone.
func merge(dst *Defaults, src Defaults) {
	if src.HandSize != 0 {
		dst.HandSize = src.HandSize
	}
	if src.Draws != 0 {
		dst.Draws = src.Draws
	}
	if src.Samples != 0 {
		dst.Samples = src.Samples
	}
	if src.CardsPerTurn != 0 {
		dst.CardsPerTurn = src.CardsPerTurn
	}
	if src.Workers != 0 {
		dst.Workers = src.Workers
	}
	if src.CardDB != "" {
		dst.CardDB = src.CardDB
	}
}

// Validate rejects profiles no run could use.
func (p *Profile) Validate() error {
	d := p.Defaults
	if d.HandSize < 1 {
		return fmt.Errorf("profile: hand_size must be positive, got %d", d.HandSize)
	}
	if d.Draws < 0 {
		return fmt.Errorf("profile: draws must be non-negative, got %d", d.Draws)
	}
	if d.Samples < 1 {
		return fmt.Errorf("profile: samples must be positive, got %d", d.Samples)
	}
	if d.CardsPerTurn <= 0 {
		return fmt.Errorf("profile: cards_per_turn must be positive, got %g", d.CardsPerTurn)
	}
	return nil
}
