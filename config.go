package gesture

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Duration is a time.Duration that decodes from TOML strings such as
// "300ms" or "1s".
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// ProfileConfig is the file form of a Profile.
type ProfileConfig struct {
	Start         Thresholds `toml:"start"`
	Delta         Thresholds `toml:"delta"`
	Inertia       Thresholds `toml:"inertia"`
	TapRange      float64    `toml:"tap_range"`
	DragHoldDelay Duration   `toml:"drag_hold_delay"`
}

// InertiaFileConfig is the file form of an InertiaConfig.
type InertiaFileConfig struct {
	Duration     Duration `toml:"duration"`
	Interval     Duration `toml:"interval"`
	Displacement float64  `toml:"displacement"`
	Rotation     float64  `toml:"rotation"`
	Expansion    float64  `toml:"expansion"`
}

// Config is the TOML configuration of a Recognizer. Keys missing from a file
// keep their default values.
//
//	settings = ["translate", "rotate", "scale", "inertia"]
//
//	[touch]
//	tap_range = 12
//	drag_hold_delay = "250ms"
//
//	[touch.start]
//	translate_x = 20
//	translate_y = 20
//
//	[inertia]
//	duration = "800ms"
type Config struct {
	Settings []string          `toml:"settings"`
	Touch    ProfileConfig     `toml:"touch"`
	Pen      ProfileConfig     `toml:"pen"`
	Mouse    ProfileConfig     `toml:"mouse"`
	Inertia  InertiaFileConfig `toml:"inertia"`
}

// DefaultConfig returns the configuration matching DefaultTables and
// DefaultInertiaConfig, with every manipulation gesture requested.
func DefaultConfig() Config {
	t := DefaultTables()
	i := DefaultInertiaConfig()
	return Config{
		Settings: []string{"all"},
		Touch:    profileConfig(t.Touch),
		Pen:      profileConfig(t.Pen),
		Mouse:    profileConfig(t.Mouse),
		Inertia: InertiaFileConfig{
			Duration:     Duration(i.Duration),
			Interval:     Duration(i.Interval),
			Displacement: i.Displacement,
			Rotation:     i.Rotation,
			Expansion:    i.Expansion,
		},
	}
}

func profileConfig(p Profile) ProfileConfig {
	return ProfileConfig{
		Start:         p.Start,
		Delta:         p.Delta,
		Inertia:       p.Inertia,
		TapRange:      p.TapRange,
		DragHoldDelay: Duration(p.DragHoldDelay),
	}
}

func (p ProfileConfig) profile() Profile {
	return Profile{
		Start:         p.Start,
		Delta:         p.Delta,
		Inertia:       p.Inertia,
		TapRange:      p.TapRange,
		DragHoldDelay: time.Duration(p.DragHoldDelay),
	}
}

// DecodeConfig parses TOML data on top of DefaultConfig. Unknown keys are
// an error.
func DecodeConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("decode gesture config: %w", err)
	}
	if err := checkUndecoded(md); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads and parses a TOML file on top of DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("load gesture config %s: %w", path, err)
	}
	if err := checkUndecoded(md); err != nil {
		return Config{}, fmt.Errorf("load gesture config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("load gesture config %s: %w", path, err)
	}
	return cfg, nil
}

func checkUndecoded(md toml.MetaData) error {
	keys := md.Undecoded()
	if len(keys) == 0 {
		return nil
	}
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.String()
	}
	slices.Sort(names)
	return fmt.Errorf("decode gesture config: unknown keys: %s", strings.Join(names, ", "))
}

// Validate checks the settings names and that no tolerance or duration is
// negative.
func (c Config) Validate() error {
	if _, err := c.GestureSettings(); err != nil {
		return err
	}
	for _, p := range []struct {
		name string
		cfg  ProfileConfig
	}{{"touch", c.Touch}, {"pen", c.Pen}, {"mouse", c.Mouse}} {
		for _, t := range []Thresholds{p.cfg.Start, p.cfg.Delta, p.cfg.Inertia} {
			if t.TranslateX < 0 || t.TranslateY < 0 || t.Rotate < 0 || t.Expansion < 0 {
				return fmt.Errorf("gesture config: %s: negative threshold", p.name)
			}
		}
		if p.cfg.TapRange < 0 || p.cfg.DragHoldDelay < 0 {
			return fmt.Errorf("gesture config: %s: negative tap range or hold delay", p.name)
		}
	}
	if c.Inertia.Duration < 0 || c.Inertia.Interval <= 0 {
		return fmt.Errorf("gesture config: inertia duration must be >= 0 and interval > 0")
	}
	return nil
}

// GestureSettings parses Settings.
func (c Config) GestureSettings() (GestureSettings, error) {
	s, err := ParseGestureSettings(c.Settings)
	if err != nil {
		return 0, fmt.Errorf("gesture config: %w", err)
	}
	return s, nil
}

// Tables returns the configured threshold tables.
func (c Config) Tables() Tables {
	return Tables{
		Touch: c.Touch.profile(),
		Pen:   c.Pen.profile(),
		Mouse: c.Mouse.profile(),
	}
}

// InertiaConfig returns the configured inertia simulation.
func (c Config) InertiaConfig() InertiaConfig {
	return InertiaConfig{
		Duration:     time.Duration(c.Inertia.Duration),
		Interval:     time.Duration(c.Inertia.Interval),
		Displacement: c.Inertia.Displacement,
		Rotation:     c.Inertia.Rotation,
		Expansion:    c.Inertia.Expansion,
	}
}

// ApplyConfig validates cfg and applies its settings, tables and inertia
// configuration to new episodes.
func (r *Recognizer) ApplyConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		Logger().Error(err, "rejecting gesture config")
		return err
	}
	s, err := cfg.GestureSettings()
	if err != nil {
		return err
	}
	r.settings = s
	r.tables = cfg.Tables()
	r.inertia = cfg.InertiaConfig()
	return nil
}
