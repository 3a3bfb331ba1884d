package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jask/timeportal/core"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadFileMissingUsesDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, 400*time.Millisecond, cfg.TransitionDelay())
	assert.Equal(t, core.DefaultBounds(), cfg.Bounds())
	assert.Equal(t, core.DefaultLocations(), cfg.Locations)
	assert.Equal(t, 2023, cfg.Wizard.ReferenceYear)
	assert.False(t, cfg.Wizard.RequireFields)
}

func TestLoadFileOverrides(t *testing.T) {
	path := writeConfig(t, `
default_location = "moon"

[wizard]
transition_ms = 50
require_fields = true

[year]
min = 2000
max = 3000
step = 25
default = 2500

[keys]
next = ["ctrl+f"]

[[locations]]
id = "mars"
name = "Mars"

[[locations]]
id = "moon"
name = "Moon"
`)
	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 50*time.Millisecond, cfg.TransitionDelay())
	assert.True(t, cfg.Wizard.RequireFields)
	assert.Equal(t, YearConfig{Min: 2000, Max: 3000, Step: 25, Default: 2500}, cfg.Year)
	assert.Equal(t, []core.Location{{ID: "mars", Name: "Mars"}, {ID: "moon", Name: "Moon"}}, cfg.Locations)
	assert.Equal(t, "moon", cfg.Bounds().DefaultLocation)
	assert.Equal(t, []string{"ctrl+f"}, cfg.Keys["next"])
	assert.Equal(t, 10, cfg.Travelers.Max, "unset sections keep defaults")
}

func TestLoadFileEnvOverride(t *testing.T) {
	t.Setenv("TIMEPORTAL_WIZARD_TRANSITION_MS", "10")
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, 10*time.Millisecond, cfg.TransitionDelay())
}

func TestLoadFileRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "collapsed year range", body: "[year]\nmin = 2000\nmax = 2000\n", want: "year.max"},
		{name: "negative delay", body: "[wizard]\ntransition_ms = -1\n", want: "transition_ms"},
		{name: "unknown default location", body: "default_location = \"atlantis\"\n", want: "default_location"},
		{name: "zero travelers", body: "[travelers]\nmin = 0\n", want: "travelers range"},
		{name: "oversized party", body: "[travelers]\nmax = 50\n", want: "travelers range"},
		{name: "year min off grid", body: "[year]\nmin = 1805\nmax = 2505\n", want: "off the year.step"},
		{name: "year span off grid", body: "[year]\nmin = 1800\nmax = 2505\n", want: "off the year.step"},
		{name: "malformed toml", body: "[year\n", want: "read config"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadFile(writeConfig(t, tc.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestValidateHintsFixes(t *testing.T) {
	cfg := Default()
	cfg.Year.Min = 1805
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, errors.FlattenHints(err), "multiples of 10")

	cfg = Default()
	cfg.Travelers.Max = 11
	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, errors.FlattenHints(err), "[1, 10]")
}

func TestValidateDuplicateLocation(t *testing.T) {
	cfg := Default()
	cfg.Locations = append(cfg.Locations, core.Location{ID: "rio", Name: "Rio again"})
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate id")
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := Default()
	cfg.Wizard.TransitionMS = 120
	cfg.Log.Path = "/tmp/timeportal.log"
	require.NoError(t, Save(path, cfg))

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 120, loaded.Wizard.TransitionMS)
	assert.Equal(t, "/tmp/timeportal.log", loaded.Log.Path)
	assert.Equal(t, cfg.Locations, loaded.Locations)
	assert.Equal(t, cfg.Bounds(), loaded.Bounds())
}

func TestPathHonoursEnv(t *testing.T) {
	t.Setenv("TIMEPORTAL_CONFIG", "/etc/timeportal.toml")
	p, err := Path()
	require.NoError(t, err)
	assert.Equal(t, "/etc/timeportal.toml", p)
}
