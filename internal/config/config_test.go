package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	profile, err := Load(filepath.Join(t.TempDir(), "absent.hcl"))
	require.NoError(t, err)

	assert.Equal(t, 5, profile.Defaults.HandSize)
	assert.Equal(t, 10, profile.Defaults.Draws)
	assert.Equal(t, 10000, profile.Defaults.Samples)
	assert.Equal(t, 1.0, profile.Defaults.CardsPerTurn)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.hcl")
	content := `
defaults {
  hand_size = 6
  samples   = 50000
}
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	profile, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 6, profile.Defaults.HandSize)
	assert.Equal(t, 50000, profile.Defaults.Samples)
	// untouched fields keep their built-in values
	assert.Equal(t, 10, profile.Defaults.Draws)
	assert.Equal(t, 1.0, profile.Defaults.CardsPerTurn)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.hcl")
	require.NoError(t, os.WriteFile(path, []byte("defaults {\n  samples = 2000\n}\n"), 0o644))

	t.Setenv("DECKODDS_SAMPLES", "777")
	t.Setenv("DECKODDS_CARDS_PER_TURN", "1.5")

	profile, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 777, profile.Defaults.Samples)
	assert.Equal(t, 1.5, profile.Defaults.CardsPerTurn)
}

func TestLoad_RejectsInvalidProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.hcl")
	require.NoError(t, os.WriteFile(path, []byte("defaults {\n  hand_size = -1\n}\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hand_size")
}

func TestLoad_RejectsMalformedHCL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.hcl")
	require.NoError(t, os.WriteFile(path, []byte("defaults {"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}
