// Package config loads scanner settings and tuning profiles from YAML.
//
// A Profile carries the blob size filters, background threshold, alignment
// band and overlay palette for one kind of sheet capture. Two profiles are
// built in ("standard" and "faded"); a config file may define more or
// override a built-in by reusing its name.
//
//	cfg, err := config.LoadConfig("scanner.yaml")
//	profile, err := cfg.ResolveProfile()
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ironsheep/sheet-scanner/internal/grid"
)

// Config holds run settings shared by the CLI and the MCP server.
type Config struct {
	// Profile names the tuning profile to use.
	Profile string `yaml:"profile"`

	// CandidateDigits is the length of the candidate number. Zero disables it.
	CandidateDigits int `yaml:"candidate_digits"`

	// Columns is the number of printed answer columns: 1, 2 or 4.
	Columns int `yaml:"columns"`

	// Debug enables the overlay image for every scanned sheet.
	Debug bool `yaml:"debug"`

	// DebugDir receives overlay images. Defaults to the sheet's directory.
	DebugDir string `yaml:"debug_dir,omitempty"`

	// Workers bounds the number of sheets scanned in parallel.
	Workers int `yaml:"workers"`

	// Profiles defines additional or overriding profiles.
	Profiles []Profile `yaml:"profiles,omitempty"`
}

// Default returns the settings used when no config file is given.
func Default() *Config {
	return &Config{
		Profile: DefaultProfile,
		Columns: 1,
		Workers: 4,
	}
}

// LoadConfig reads and validates a YAML config file. Omitted fields keep
// their Default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveConfig writes cfg to path as YAML.
func SaveConfig(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config YAML: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks the run settings and every configured profile.
func (c *Config) Validate() error {
	if c.CandidateDigits < 0 {
		return fmt.Errorf("candidate_digits must not be negative, got %d", c.CandidateDigits)
	}
	if _, err := grid.Offsets(c.Columns); err != nil {
		return fmt.Errorf("columns: %w", err)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}

	seen := make(map[string]bool, len(c.Profiles))
	for i, p := range c.Profiles {
		if p.Name == "" {
			return fmt.Errorf("profiles[%d].name is required", i)
		}
		if seen[p.Name] {
			return fmt.Errorf("profiles[%d]: duplicate profile %s", i, p.Name)
		}
		seen[p.Name] = true
		if err := p.Validate(); err != nil {
			return fmt.Errorf("profiles[%d]: %w", i, err)
		}
	}

	if _, err := c.ResolveProfile(); err != nil {
		return err
	}
	return nil
}

// ResolveProfile returns the profile named by c.Profile, preferring a
// configured profile over a built-in of the same name.
func (c *Config) ResolveProfile() (Profile, error) {
	return c.LookupProfile(c.Profile)
}

// LookupProfile finds a profile by name. An empty name selects
// DefaultProfile.
func (c *Config) LookupProfile(name string) (Profile, error) {
	if name == "" {
		name = DefaultProfile
	}
	for _, p := range c.Profiles {
		if p.Name == name {
			return p, nil
		}
	}
	if p, ok := Builtin(name); ok {
		return p, nil
	}
	return Profile{}, fmt.Errorf("%w: %s", ErrUnknownProfile, name)
}

// AllProfiles lists the built-in profiles followed by configured ones.
// A configured profile replaces the built-in it shares a name with.
func (c *Config) AllProfiles() []Profile {
	overrides := make(map[string]Profile, len(c.Profiles))
	for _, p := range c.Profiles {
		overrides[p.Name] = p
	}

	out := make([]Profile, 0, len(builtins)+len(c.Profiles))
	for _, p := range Builtins() {
		if o, ok := overrides[p.Name]; ok {
			out = append(out, o)
			delete(overrides, p.Name)
			continue
		}
		out = append(out, p)
	}
	for _, p := range c.Profiles {
		if _, ok := overrides[p.Name]; ok {
			out = append(out, p)
		}
	}
	return out
}
