// This file is part of Retroreplay.
//
// Retroreplay is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Retroreplay is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Retroreplay.  If not, see <https://www.gnu.org/licenses/>.

package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/jetsetilly/retroreplay/curated"
	"github.com/jetsetilly/retroreplay/gifexport"
	"github.com/jetsetilly/retroreplay/integration"
	"github.com/jetsetilly/retroreplay/paths"
	"github.com/jetsetilly/retroreplay/replay"
	"github.com/jetsetilly/retroreplay/statsview"
)

// Filename of the configuration file in the resource directory.
const Filename = "config.yaml"

// Config for the retroreplay command.
type Config struct {
	// directories containing custom integrations
	IntegrationPaths []string `yaml:"integration_paths" env:"RETROREPLAY_INTEGRATION_PATHS" envSeparator:":"`

	// one of STABLE, CUSTOM or ALL
	Inttype string `yaml:"inttype" env:"RETROREPLAY_INTTYPE"`

	SkipFirstStep bool `yaml:"skip_first_step" env:"RETROREPLAY_SKIP_FIRST_STEP"`

	// path of the session record database
	Database string `yaml:"database" env:"RETROREPLAY_DATABASE"`

	GIFStride int `yaml:"gif_stride" env:"RETROREPLAY_GIF_STRIDE"`

	// echo the log to stderr
	LogEcho bool `yaml:"log_echo" env:"RETROREPLAY_LOG_ECHO"`

	Statsview        bool   `yaml:"statsview" env:"RETROREPLAY_STATSVIEW"`
	StatsviewAddress string `yaml:"statsview_address" env:"RETROREPLAY_STATSVIEW_ADDRESS"`

	// an empty address means metrics are not served
	MetricsAddress string `yaml:"metrics_address" env:"RETROREPLAY_METRICS_ADDRESS"`
}

// Default returns the configuration used when there is no configuration file.
func Default() Config {
	opts := replay.DefaultOptions()
	return Config{
		Inttype:          opts.Inttype.String(),
		SkipFirstStep:    opts.SkipFirstStep,
		Database:         "records.db",
		GIFStride:        gifexport.DefaultStride,
		StatsviewAddress: statsview.DefaultAddress,
	}
}

// Load the configuration file at path and apply the environment. A missing
// file is not an error and the defaults are used instead.
func Load(path string) (Config, error) {
	cfg := Default()

	d, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return Config{}, curated.Errorf("config: %v", err)
		}
	} else if err := yaml.Unmarshal(d, &cfg); err != nil {
		return Config{}, curated.Errorf("config: %s: %v", path, err)
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, curated.Errorf("config: %v", err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// LoadResource loads the configuration file from the resource directory.
func LoadResource() (Config, error) {
	p, err := paths.ResourcePath(Filename)
	if err != nil {
		return Config{}, curated.Errorf("config: %v", err)
	}
	return Load(p)
}

// Save the configuration to path.
func (cfg Config) Save(path string) error {
	d, err := yaml.Marshal(cfg)
	if err != nil {
		return curated.Errorf("config: %v", err)
	}
	if err := os.WriteFile(path, d, 0o600); err != nil {
		return curated.Errorf("config: %v", err)
	}
	return nil
}

func (cfg Config) validate() error {
	if _, err := integration.ParseType(cfg.Inttype); err != nil {
		return curated.Errorf("config: %v", err)
	}
	if cfg.GIFStride < 1 {
		return curated.Errorf("config: gif stride must be at least 1, not %d", cfg.GIFStride)
	}
	return nil
}

// ReplayOptions returns the replay options described by the configuration.
func (cfg Config) ReplayOptions() replay.Options {
	opts := replay.DefaultOptions()
	if t, err := integration.ParseType(cfg.Inttype); err == nil {
		opts.Inttype = t
	}
	opts.SkipFirstStep = cfg.SkipFirstStep
	return opts
}

// Registry returns an integration registry with the configured custom paths.
func (cfg Config) Registry() *integration.Registry {
	return integration.NewRegistry(cfg.IntegrationPaths...)
}
