// Package config loads run settings for the appicon CLI.
//
// Settings come from three layers, later layers overriding earlier ones:
// built-in defaults, an optional TOML file, and APPICON_* environment
// variables. Command-line flags are applied on top by the CLI.
//
// Example appicon.toml:
//
//	destination = "build/icons"
//	include = ["svg", "png"]
//	png_sizes = [32, 64, 1024]
//	renderer = "native"
//	workers = 4
package config

import (
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"

	"github.com/matzehuels/appicon/pkg/errors"
	"github.com/matzehuels/appicon/pkg/pipeline"
	"github.com/matzehuels/appicon/pkg/raster"
)

// DefaultFile is the config file picked up from the working directory when
// no path is given.
const DefaultFile = "appicon.toml"

// DefaultDestination is the output directory used when none is configured.
const DefaultDestination = "icons"

// Config holds the settings for one run.
type Config struct {
	Destination string   `toml:"destination" env:"APPICON_DESTINATION"`
	Include     []string `toml:"include"     env:"APPICON_INCLUDE" envSeparator:","`
	PNGSizes    []int    `toml:"png_sizes"` // APPICON_PNG_SIZES, see envSizes
	Renderer    string   `toml:"renderer"    env:"APPICON_RENDERER"`
	Workers     int      `toml:"workers"     env:"APPICON_WORKERS"` // 0 means GOMAXPROCS
}

// envSizes reads APPICON_PNG_SIZES as raw tokens so bad values are reported
// the same way as the --png-sizes flag.
type envSizes struct {
	PNGSizes []string `env:"APPICON_PNG_SIZES" envSeparator:","`
}

// Default returns the built-in settings: every format, the default PNG
// sizes, and automatic renderer selection.
func Default() Config {
	return Config{
		Destination: DefaultDestination,
		Renderer:    raster.BackendAuto,
	}
}

// Load returns the defaults overlaid with the TOML file at path and then
// with the environment. An empty path uses DefaultFile if it exists.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		if _, err := os.Stat(DefaultFile); err == nil {
			path = DefaultFile
		}
	}
	if path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFile overlays the settings present in a TOML file. Keys missing from
// the file keep their current values; unknown keys are an error.
func (c *Config) LoadFile(path string) error {
	meta, err := toml.DecodeFile(path, c)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Wrap(errors.ErrCodeFileNotFound, err, "config file not found: %s", path)
		}
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return errors.New(errors.ErrCodeInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

// ApplyEnv overlays the APPICON_* variables that are set.
func (c *Config) ApplyEnv() error {
	if err := env.Parse(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse env")
	}
	var raw envSizes
	if err := env.Parse(&raw); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse env")
	}
	if len(raw.PNGSizes) > 0 {
		sizes, err := errors.ParseSizes(raw.PNGSizes)
		if err != nil {
			return err
		}
		c.PNGSizes = sizes
	}
	return nil
}

// Validate checks every setting.
func (c Config) Validate() error {
	if err := errors.ValidateDestination(c.Destination); err != nil {
		return err
	}
	if err := pipeline.ValidateFormats(c.Include); err != nil {
		return err
	}
	if err := errors.ValidateSizes(c.PNGSizes); err != nil {
		return err
	}
	if !raster.ValidBackend(c.Renderer) {
		return errors.New(errors.ErrCodeInvalidConfig,
			"invalid renderer: %q (must be one of: %s)", c.Renderer, strings.Join(raster.Backends, ", "))
	}
	if c.Workers < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "invalid workers: %d (must be 0 or positive)", c.Workers)
	}
	return nil
}

// Selection converts the include list and PNG sizes into a pipeline
// selection.
func (c Config) Selection() (pipeline.Selection, error) {
	sel, err := pipeline.ParseSelection(c.Include, nil)
	if err != nil {
		return pipeline.Selection{}, err
	}
	sel.PNGSizes = c.PNGSizes
	return sel, sel.Validate()
}
