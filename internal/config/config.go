package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"

	"github.com/jask/timeportal/core"
)

// Config holds application configuration.
type Config struct {
	Wizard          WizardConfig
	Year            YearConfig
	Travelers       TravelersConfig
	Locations       []core.Location
	DefaultLocation string `mapstructure:"default_location"`
	Keys            map[string][]string
	Log             LogConfig
}

// WizardConfig controls step transitions.
type WizardConfig struct {
	TransitionMS  int  `mapstructure:"transition_ms"`
	RequireFields bool `mapstructure:"require_fields"`
	ReferenceYear int  `mapstructure:"reference_year"`
}

// YearConfig bounds the destination year dial.
type YearConfig struct {
	Min     int
	Max     int
	Step    int
	Default int
}

// TravelersConfig bounds the travelers dial.
type TravelersConfig struct {
	Min     int
	Max     int
	Default int
}

// LogConfig holds the log sink. An empty path disables logging.
type LogConfig struct {
	Path  string
	Level string
}

func (c Config) TransitionDelay() time.Duration {
	return time.Duration(c.Wizard.TransitionMS) * time.Millisecond
}

func (c Config) Bounds() core.Bounds {
	return core.Bounds{
		YearMin:          c.Year.Min,
		YearMax:          c.Year.Max,
		YearStep:         c.Year.Step,
		YearDefault:      c.Year.Default,
		TravelersMin:     c.Travelers.Min,
		TravelersMax:     c.Travelers.Max,
		TravelersDefault: c.Travelers.Default,
		DefaultLocation:  c.DefaultLocation,
	}
}

func Default() Config {
	b := core.DefaultBounds()
	return Config{
		Wizard: WizardConfig{
			TransitionMS:  int(core.DefaultTransitionDelay / time.Millisecond),
			ReferenceYear: 2023,
		},
		Year:            YearConfig{Min: b.YearMin, Max: b.YearMax, Step: b.YearStep, Default: b.YearDefault},
		Travelers:       TravelersConfig{Min: b.TravelersMin, Max: b.TravelersMax, Default: b.TravelersDefault},
		Locations:       core.DefaultLocations(),
		DefaultLocation: b.DefaultLocation,
		Keys:            map[string][]string{},
		Log:             LogConfig{Level: "info"},
	}
}

// Path is the config file location: $TIMEPORTAL_CONFIG, else
// <user config dir>/timeportal/config.toml.
func Path() (string, error) {
	if p := os.Getenv("TIMEPORTAL_CONFIG"); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Wrap(err, "user config dir")
	}
	return filepath.Join(dir, "timeportal", "config.toml"), nil
}

// Load reads configuration from file and env. Env var overrides use prefix TIMEPORTAL_.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Config{}, err
	}
	return LoadFile(path)
}

// LoadFile is Load with an explicit file. A missing file is not an error.
func LoadFile(path string) (Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetConfigType("toml")
	v.SetConfigFile(path)

	v.SetEnvPrefix("TIMEPORTAL")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil && !isNotExist(err) {
		return Config{}, errors.Wrapf(err, "read config %s", path)
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, errors.Wrap(err, "unmarshal config")
	}
	if err := c.Validate(); err != nil {
		return Config{}, errors.WithHintf(err, "check %s", path)
	}
	return c, nil
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("wizard.transition_ms", d.Wizard.TransitionMS)
	v.SetDefault("wizard.require_fields", d.Wizard.RequireFields)
	v.SetDefault("wizard.reference_year", d.Wizard.ReferenceYear)
	v.SetDefault("year.min", d.Year.Min)
	v.SetDefault("year.max", d.Year.Max)
	v.SetDefault("year.step", d.Year.Step)
	v.SetDefault("year.default", d.Year.Default)
	v.SetDefault("travelers.min", d.Travelers.Min)
	v.SetDefault("travelers.max", d.Travelers.Max)
	v.SetDefault("travelers.default", d.Travelers.Default)
	v.SetDefault("locations", d.Locations)
	v.SetDefault("default_location", d.DefaultLocation)
	v.SetDefault("log.path", d.Log.Path)
	v.SetDefault("log.level", d.Log.Level)
}

func isNotExist(err error) bool {
	var nf viper.ConfigFileNotFoundError
	return errors.As(err, &nf) || errors.Is(err, os.ErrNotExist)
}

// Validate checks the invariants the wizard relies on.
func (c Config) Validate() error {
	if c.Wizard.TransitionMS < 0 {
		return errors.Newf("wizard.transition_ms must not be negative, got %d", c.Wizard.TransitionMS)
	}
	if c.Year.Max <= c.Year.Min {
		return errors.Newf("year.max (%d) must be greater than year.min (%d)", c.Year.Max, c.Year.Min)
	}
	if c.Year.Step <= 0 {
		return errors.Newf("year.step must be positive, got %d", c.Year.Step)
	}
	if c.Year.Min%c.Year.Step != 0 || (c.Year.Max-c.Year.Min)%c.Year.Step != 0 {
		return errors.WithHintf(
			errors.Newf("year range [%d, %d] is off the year.step %d grid", c.Year.Min, c.Year.Max, c.Year.Step),
			"make year.min and year.max multiples of %d", c.Year.Step)
	}
	if c.Year.Default < c.Year.Min || c.Year.Default > c.Year.Max {
		return errors.Newf("year.default %d outside [%d, %d]", c.Year.Default, c.Year.Min, c.Year.Max)
	}
	if c.Travelers.Min < core.MinTravelers || c.Travelers.Max > core.MaxTravelers || c.Travelers.Max <= c.Travelers.Min {
		return errors.WithHintf(
			errors.Newf("travelers range [%d, %d] is invalid", c.Travelers.Min, c.Travelers.Max),
			"keep travelers within [%d, %d]", core.MinTravelers, core.MaxTravelers)
	}
	if c.Travelers.Default < c.Travelers.Min || c.Travelers.Default > c.Travelers.Max {
		return errors.Newf("travelers.default %d outside [%d, %d]", c.Travelers.Default, c.Travelers.Min, c.Travelers.Max)
	}
	if len(c.Locations) == 0 {
		return errors.New("at least one location is required")
	}
	seen := make(map[string]bool, len(c.Locations))
	for i, l := range c.Locations {
		if strings.TrimSpace(l.ID) == "" || strings.TrimSpace(l.Name) == "" {
			return errors.Newf("locations[%d]: id and name are required", i)
		}
		if seen[l.ID] {
			return errors.Newf("locations[%d]: duplicate id %q", i, l.ID)
		}
		seen[l.ID] = true
	}
	if !seen[c.DefaultLocation] {
		return errors.Newf("default_location %q is not a configured location", c.DefaultLocation)
	}
	return nil
}

type fileLayout struct {
	Wizard struct {
		TransitionMS  int  `toml:"transition_ms"`
		RequireFields bool `toml:"require_fields"`
		ReferenceYear int  `toml:"reference_year"`
	} `toml:"wizard"`
	Year struct {
		Min     int `toml:"min"`
		Max     int `toml:"max"`
		Step    int `toml:"step"`
		Default int `toml:"default"`
	} `toml:"year"`
	Travelers struct {
		Min     int `toml:"min"`
		Max     int `toml:"max"`
		Default int `toml:"default"`
	} `toml:"travelers"`
	DefaultLocation string              `toml:"default_location"`
	Keys            map[string][]string `toml:"keys,omitempty"`
	Log             struct {
		Path  string `toml:"path"`
		Level string `toml:"level"`
	} `toml:"log"`
	Locations []core.Location `toml:"locations"`
}

// Save writes cfg as TOML, creating the config directory if needed.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "mkdir config dir")
	}
	var out fileLayout
	out.Wizard.TransitionMS = cfg.Wizard.TransitionMS
	out.Wizard.RequireFields = cfg.Wizard.RequireFields
	out.Wizard.ReferenceYear = cfg.Wizard.ReferenceYear
	out.Year.Min, out.Year.Max, out.Year.Step, out.Year.Default = cfg.Year.Min, cfg.Year.Max, cfg.Year.Step, cfg.Year.Default
	out.Travelers.Min, out.Travelers.Max, out.Travelers.Default = cfg.Travelers.Min, cfg.Travelers.Max, cfg.Travelers.Default
	out.DefaultLocation = cfg.DefaultLocation
	out.Keys = cfg.Keys
	out.Log.Path, out.Log.Level = cfg.Log.Path, cfg.Log.Level
	out.Locations = cfg.Locations

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create config")
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(out); err != nil {
		return errors.Wrap(err, "write config")
	}
	return nil
}
