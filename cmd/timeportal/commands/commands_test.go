package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jask/timeportal/core"
)

func TestMain(m *testing.M) {
	pterm.DisableStyling()
	os.Exit(m.Run())
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func absentConfig(t *testing.T) string {
	return filepath.Join(t.TempDir(), "absent.toml")
}

func decodeBooking(t *testing.T, out string) core.Booking {
	t.Helper()
	var b core.Booking
	require.NoError(t, json.Unmarshal([]byte(out), &b))
	return b
}

func TestBookJSON(t *testing.T) {
	out, err := run(t, "book", "--config", absentConfig(t),
		"--name", "Ada", "--email", "ada@example.com",
		"--year", "1850", "--location", "Tokio",
		"--travelers", "3", "--purpose", "research", "--json")
	require.NoError(t, err)

	b := decodeBooking(t, out)
	assert.Equal(t, "Ada", b.Draft.Name)
	assert.Equal(t, "ada@example.com", b.Draft.Email)
	assert.Equal(t, 1850, b.Draft.Year)
	assert.Equal(t, "tokyo", b.Draft.LocationID)
	assert.Equal(t, "Tokyo", b.LocationName)
	assert.Equal(t, 3, b.Draft.Travelers)
	assert.Equal(t, "research", b.Draft.Purpose)
	assert.NotEqual(t, b.ID, b.SessionID)
	assert.False(t, b.ConfirmedAt.IsZero())
}

func TestBookDefaults(t *testing.T) {
	out, err := run(t, "book", "--config", absentConfig(t), "--json")
	require.NoError(t, err)
	b := decodeBooking(t, out)
	assert.Equal(t, 2150, b.Draft.Year)
	assert.Equal(t, "new-york", b.Draft.LocationID)
	assert.Equal(t, 1, b.Draft.Travelers)
}

func TestBookClampsOutOfRangeValues(t *testing.T) {
	out, err := run(t, "book", "--config", absentConfig(t), "--year", "3000", "--travelers", "0", "--json")
	require.NoError(t, err)
	b := decodeBooking(t, out)
	assert.Equal(t, 2500, b.Draft.Year)
	assert.Equal(t, 1, b.Draft.Travelers)
}

func TestBookTextOutput(t *testing.T) {
	out, err := run(t, "book", "--config", absentConfig(t), "--name", "Ada", "--year", "1850", "--location", "tokyo")
	require.NoError(t, err)
	assert.Contains(t, out, "Your journey to Tokyo in 1850 has been confirmed.")
	assert.Contains(t, out, "Ada")
}

func TestBookUnknownLocation(t *testing.T) {
	_, err := run(t, "book", "--config", absentConfig(t), "--location", "atlantis-under-the-sea")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown destination")
	assert.Contains(t, errors.FlattenHints(err), "timeportal locations")
}

func TestBookRequiredFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[wizard]\nrequire_fields = true\n"), 0o644))

	_, err := run(t, "book", "--config", path, "--email", "ada@example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing name")

	out, err := run(t, "book", "--config", path, "--name", "Ada", "--email", "ada@example.com", "--json")
	require.NoError(t, err)
	assert.Equal(t, "Ada", decodeBooking(t, out).Draft.Name)
}

func TestBookRejectsArgs(t *testing.T) {
	_, err := run(t, "book", "--config", absentConfig(t), "tokyo")
	require.Error(t, err)
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	out, err := run(t, "config", "init", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, path)
	require.FileExists(t, path)

	_, err = run(t, "config", "init", "--config", path)
	require.Error(t, err)
	assert.Contains(t, errors.FlattenHints(err), "--force")

	_, err = run(t, "config", "init", "--config", path, "--force")
	require.NoError(t, err)

	out, err = run(t, "locations", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "* new-york")
	assert.Contains(t, out, "Sydney")
}

func TestConfigInitRepairsBrokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[year]\nmin = 10\nmax = 5\n"), 0o644))

	_, err := run(t, "locations", "--config", path)
	require.Error(t, err)

	_, err = run(t, "config", "init", "--config", path, "--force")
	require.NoError(t, err)
	_, err = run(t, "locations", "--config", path)
	require.NoError(t, err)
}

func TestConfigPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.toml")
	out, err := run(t, "config", "path", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, path)
}

func TestDriveConfirmsOnLastStep(t *testing.T) {
	w := core.NewWizard(core.WizardOptions{})
	require.True(t, w.SetField(core.FieldName, "Ada"))
	b, err := drive(w)
	require.NoError(t, err)
	assert.Equal(t, "Ada", b.Draft.Name)
	assert.Equal(t, 0, w.Step())
	assert.Equal(t, "", w.Draft().Name)
}
