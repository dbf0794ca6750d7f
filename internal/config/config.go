// Package config loads the vlist YAML configuration and applies environment
// overrides on top of the built-in defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	"github.com/rshade/vlist/internal/sizepos"
)

// SchemaVersion is the config file version written by DefaultConfig.
const SchemaVersion = "1.0.0"

// supportedSchema is the range of config file versions this build reads.
const supportedSchema = "^1.0.0"

// Environment variables that override the config file.
const (
	EnvConfigPath = "VLIST_CONFIG"
	EnvLogLevel   = "VLIST_LOG_LEVEL"
	EnvLogFormat  = "VLIST_LOG_FORMAT"
	EnvLogFile    = "VLIST_LOG_FILE"
	EnvOverscan   = "VLIST_OVERSCAN"
	EnvAlign      = "VLIST_ALIGN"
)

// Directions accepted by ListConfig.Direction.
const (
	DirectionVertical   = "vertical"
	DirectionHorizontal = "horizontal"
)

// Defaults for the list section.
const (
	DefaultEstimatedItemSize = 1.0
	DefaultOverscan          = 3
	DefaultSnapDelay         = 100 * time.Millisecond
	maxOverscan              = 1000
)

// Common configuration errors.
var (
	ErrUnsupportedSchema = errors.New("unsupported config version")
	ErrInvalidConfig     = errors.New("invalid configuration")
)

// Config is the vlist configuration file.
type Config struct {
	Version string        `json:"version" yaml:"version"`
	List    ListConfig    `json:"list" yaml:"list"`
	Logging LoggingConfig `json:"logging" yaml:"logging"`
}

// ListConfig holds defaults for the list shell and the CLI commands.
type ListConfig struct {
	// EstimatedItemSize is assumed for items that have not been measured.
	EstimatedItemSize float64 `json:"estimated_item_size" yaml:"estimated_item_size"`

	// Overscan is the number of extra items rendered on each side of the viewport.
	Overscan int `json:"overscan" yaml:"overscan"`

	// Align is the scroll-to-item alignment: start, center, end or auto.
	Align string `json:"align" yaml:"align"`

	// Direction is vertical or horizontal.
	Direction string `json:"direction" yaml:"direction"`

	// Snap aligns the viewport to the nearest item once scrolling stops.
	Snap bool `json:"snap" yaml:"snap"`

	// SnapDelay is how long scrolling must pause before snapping.
	SnapDelay time.Duration `json:"snap_delay" yaml:"snap_delay"`

	// Wrap word-wraps items to the viewport width in vertical mode.
	Wrap bool `json:"wrap" yaml:"wrap"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `json:"level" yaml:"level"`
	Format string `json:"format" yaml:"format"`
	File   string `json:"file" yaml:"file"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Version: SchemaVersion,
		List: ListConfig{
			EstimatedItemSize: DefaultEstimatedItemSize,
			Overscan:          DefaultOverscan,
			Align:             string(sizepos.AlignStart),
			Direction:         DirectionVertical,
			SnapDelay:         DefaultSnapDelay,
			Wrap:              true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// DefaultPath returns ~/.vlist/config.yaml, or a relative path when the home
// directory cannot be determined.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(".vlist", "config.yaml")
	}
	return filepath.Join(home, ".vlist", "config.yaml")
}

// ResolvePath picks the config file path: the flag value, then VLIST_CONFIG,
// then DefaultPath.
func ResolvePath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv(EnvConfigPath); env != "" {
		return env
	}
	return DefaultPath()
}

// Load reads the config at path on top of the defaults, applies environment
// overrides and validates the result. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	if err := cfg.ApplyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnvOverrides applies VLIST_* environment variables.
func (c *Config) ApplyEnvOverrides() error {
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		c.Logging.File = v
	}
	if v := os.Getenv(EnvAlign); v != "" {
		c.List.Align = v
	}
	if v := os.Getenv(EnvOverscan); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer, got %q", ErrInvalidConfig, EnvOverscan, v)
		}
		c.List.Overscan = n
	}
	return nil
}

// Validate checks the schema version and every field.
func (c *Config) Validate() error {
	if err := checkSchema(c.Version); err != nil {
		return err
	}
	return c.List.Validate()
}

func checkSchema(v string) error {
	if v == "" {
		return nil
	}
	parsed, err := semver.NewVersion(v)
	if err != nil {
		return fmt.Errorf("%w: %q is not a semantic version", ErrUnsupportedSchema, v)
	}
	constraint, err := semver.NewConstraint(supportedSchema)
	if err != nil {
		return err
	}
	if !constraint.Check(parsed) {
		return fmt.Errorf("%w: %s does not satisfy %s", ErrUnsupportedSchema, v, supportedSchema)
	}
	return nil
}

// Validate checks the list section.
func (l ListConfig) Validate() error {
	if !(l.EstimatedItemSize > 0) {
		return fmt.Errorf("%w: list.estimated_item_size must be > 0, got %v", ErrInvalidConfig, l.EstimatedItemSize)
	}
	if l.Overscan < 0 || l.Overscan > maxOverscan {
		return fmt.Errorf("%w: list.overscan must be between 0 and %d, got %d", ErrInvalidConfig, maxOverscan, l.Overscan)
	}
	if _, err := sizepos.ParseAlign(l.Align); err != nil {
		return fmt.Errorf("%w: list.align: %w", ErrInvalidConfig, err)
	}
	switch strings.ToLower(l.Direction) {
	case "", DirectionVertical, DirectionHorizontal:
	default:
		return fmt.Errorf("%w: list.direction must be vertical or horizontal, got %q", ErrInvalidConfig, l.Direction)
	}
	if l.SnapDelay < 0 {
		return fmt.Errorf("%w: list.snap_delay must be >= 0, got %s", ErrInvalidConfig, l.SnapDelay)
	}
	return nil
}

// AlignValue returns the parsed alignment. Call Validate first.
func (l ListConfig) AlignValue() sizepos.Align {
	a, err := sizepos.ParseAlign(l.Align)
	if err != nil {
		return sizepos.AlignStart
	}
	return a
}

// Horizontal reports whether the list scrolls horizontally.
func (l ListConfig) Horizontal() bool {
	return strings.EqualFold(l.Direction, DirectionHorizontal)
}

// EnsureDir creates the directory that holds path.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o750)
}

// Save writes c to path as YAML.
func (c *Config) Save(path string) error {
	if err := EnsureDir(path); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := c.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	return nil
}

// Marshal returns c as YAML.
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	return data, nil
}
