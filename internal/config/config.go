// Package config loads the window and simulation configuration from a TOML
// file and holds the built-in presets.
package config

import (
	"sort"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"github.com/coreyshuman/Constellation/internal/constellation"
)

// Window holds the window parameters
type Window struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
	TPS    int    `toml:"tps"` // ticks per second
}

// Config holds everything needed to start the application
type Config struct {
	Window  Window `toml:"window"`
	ShowFPS bool   `toml:"show_fps"`
	Seed    int64  `toml:"seed"` // 0 picks a time-based seed

	// Settings overrides the default simulation settings, keyed by setting name
	Settings map[string]any `toml:"settings"`

	// Presets are named bundles of settings, merged over the built-ins
	Presets map[string]map[string]any `toml:"presets"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Window: Window{
			Width:  1280,
			Height: 720,
			Title:  "Constellation",
			TPS:    60,
		},
		Settings: map[string]any{},
		Presets:  builtinPresets(),
	}
}

// Load parses the TOML config file at path. The file overwrites defaults.
func Load(path string) (*Config, error) {
	var file Config
	md, err := toml.DecodeFile(path, &file)
	if err != nil {
		return nil, errors.Wrapf(err, "parse config %s", path)
	}
	if keys := md.Undecoded(); len(keys) > 0 {
		return nil, errors.Errorf("config %s: unknown keys %v", path, keys)
	}

	conf := Default()
	if md.IsDefined("window", "width") {
		conf.Window.Width = file.Window.Width
	}
	if md.IsDefined("window", "height") {
		conf.Window.Height = file.Window.Height
	}
	if md.IsDefined("window", "title") {
		conf.Window.Title = file.Window.Title
	}
	if md.IsDefined("window", "tps") {
		conf.Window.TPS = file.Window.TPS
	}
	conf.ShowFPS = file.ShowFPS
	conf.Seed = file.Seed
	for k, v := range file.Settings {
		conf.Settings[k] = v
	}
	for name, p := range file.Presets {
		conf.Presets[name] = p
	}

	if err := conf.Validate(); err != nil {
		return nil, errors.Wrapf(err, "config %s", path)
	}
	return conf, nil
}

// Validate checks the window parameters and that every settings override and
// preset is accepted by the simulation
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return errors.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	if c.Window.TPS <= 0 {
		return errors.Errorf("tps %d must be positive", c.Window.TPS)
	}
	if _, err := c.SimulationSettings(); err != nil {
		return err
	}
	for _, name := range c.PresetNames() {
		s := constellation.DefaultSettings()
		if err := apply(&s, c.Presets[name]); err != nil {
			return errors.Wrapf(err, "preset %q", name)
		}
	}
	return nil
}

// SimulationSettings returns the default settings with the overrides applied
func (c *Config) SimulationSettings() (constellation.Settings, error) {
	s := constellation.DefaultSettings()
	if err := apply(&s, c.Settings); err != nil {
		return s, err
	}
	return s, nil
}

// PresetNames lists the preset names in sorted order
func (c *Config) PresetNames() []string {
	names := make([]string, 0, len(c.Presets))
	for name := range c.Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// apply sets values on s through the validated setter, in key order
func apply(s *constellation.Settings, values map[string]any) error {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := s.Set(k, values[k]); err != nil {
			return err
		}
	}
	return nil
}
