/*
 * config.go, part of goatmos.
 *
 *
 * Copyright 2024 The goatmos authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 */

// Package config holds the run configuration: where the model lives and how to run it,
// which species to override, when a run counts as converged, and where the results go.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config is the goatmos run configuration.
type Config struct {
	Simulation  SimulationConfig  `yaml:"simulation"`
	Species     SpeciesConfig     `yaml:"species"`
	Convergence ConvergenceConfig `yaml:"convergence"`
	Output      OutputConfig      `yaml:"output"`
	Store       StoreConfig       `yaml:"store"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// SimulationConfig describes the model installation. File paths are relative to ModelDir.
type SimulationConfig struct {
	ModelDir         string `yaml:"model_dir"`
	PhotochemCommand string `yaml:"photochem_command"`
	ClimaCommand     string `yaml:"clima_command"`
	Timeout          string `yaml:"timeout"` // per command

	SpeciesFile     string `yaml:"species_file"`
	PhotochemInput  string `yaml:"photochem_input"`
	ClimaInput      string `yaml:"clima_input"`
	PhotochemOutput string `yaml:"photochem_output"`
	ClimaOutput     string `yaml:"clima_output"`

	// Iteration limits, written to the input files under the given keys.
	// A zero limit or an empty key leaves the input file alone.
	MaxPhotochemIterations int    `yaml:"max_photochem_iterations"`
	PhotochemStepsKey      string `yaml:"photochem_steps_key"`
	MaxClimaSteps          int    `yaml:"max_clima_steps"`
	ClimaStepsKey          string `yaml:"clima_steps_key"`
}

// SpeciesConfig holds the species overrides applied before each run.
type SpeciesConfig struct {
	Concentrations map[string]float64 `yaml:"concentrations"` // fixed mixing ratios
	Fluxes         map[string]float64 `yaml:"fluxes"`         // surface fluxes
	FluxScalings   []float64          `yaml:"flux_scalings"`  // one run per factor in a scan
}

// ConvergenceConfig holds the climate convergence tolerances.
type ConvergenceConfig struct {
	DIVFrms float64 `yaml:"divfrms"`
	DT      float64 `yaml:"dt"`
	Window  int     `yaml:"window"`
}

// OutputConfig says where results go.
type OutputConfig struct {
	Dir          string `yaml:"dir"`
	Archive      bool   `yaml:"archive"`       // keep zstd compressed copies of the raw model output
	ArchiveLevel int    `yaml:"archive_level"` // 1 (fastest) to 4 (best)
	Workers      int    `yaml:"workers"`
}

// StoreConfig configures the run ledger.
type StoreConfig struct {
	Path string `yaml:"path"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`
}

// DefaultConfig returns the configuration for a standard model checkout in ./atmos.
func DefaultConfig() *Config {
	return &Config{
		Simulation: SimulationConfig{
			ModelDir:         "atmos",
			PhotochemCommand: "./Photo.run",
			ClimaCommand:     "./Clima.run",
			Timeout:          "6h",
			SpeciesFile:      "PHOTOCHEM/INPUTFILES/species.dat",
			PhotochemInput:   "PHOTOCHEM/INPUTFILES/input_photchem.dat",
			ClimaInput:       "CLIMA/IO/input_clima.dat",
			PhotochemOutput:  "PHOTOCHEM/OUTPUT/out.out",
			ClimaOutput:      "CLIMA/IO/clima_allout.tab",
			MaxClimaSteps:    400,
			ClimaStepsKey:    "NSTEPS",
		},
		Species: SpeciesConfig{
			Concentrations: map[string]float64{},
			Fluxes:         map[string]float64{},
		},
		Convergence: ConvergenceConfig{
			DIVFrms: 1e-3,
			DT:      1e-2,
			Window:  10,
		},
		Output: OutputConfig{
			Dir:          "results",
			ArchiveLevel: 2,
			Workers:      4,
		},
		Store: StoreConfig{
			Path: "goatmos.db",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file. Missing settings keep their defaults,
// and a missing file gives the default configuration.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errors.Wrap(err, "failed to read config")
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse config")
	}
	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "failed to create config directory")
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(err, "failed to write config")
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if dir := os.Getenv("GOATMOS_MODEL_DIR"); dir != "" {
		c.Simulation.ModelDir = dir
	}
	if path := os.Getenv("GOATMOS_DB"); path != "" {
		c.Store.Path = path
	}
}

// CommandTimeout returns the per command timeout. Zero means no timeout.
func (c *Config) CommandTimeout() time.Duration {
	if c.Simulation.Timeout == "" {
		return 0
	}
	d, err := time.ParseDuration(c.Simulation.Timeout)
	if err != nil {
		return 6 * time.Hour
	}
	return d
}

// ValidLevels lists the accepted logging levels.
var ValidLevels = []string{"debug", "info", "warn", "error"}

// Validate validates the configuration.
func (c *Config) Validate() error {
	s := c.Simulation
	if s.ModelDir == "" {
		return errors.New("simulation.model_dir not configured")
	}
	if s.PhotochemCommand == "" || s.ClimaCommand == "" {
		return errors.New("simulation commands not configured")
	}
	if s.SpeciesFile == "" || s.PhotochemOutput == "" || s.ClimaOutput == "" {
		return errors.New("simulation file names not configured")
	}
	if s.Timeout != "" {
		if _, err := time.ParseDuration(s.Timeout); err != nil {
			return errors.Wrapf(err, "invalid simulation.timeout %q", s.Timeout)
		}
	}
	if s.MaxPhotochemIterations < 0 || s.MaxClimaSteps < 0 {
		return errors.New("negative iteration limit")
	}
	for name := range c.Species.Concentrations {
		if _, ok := c.Species.Fluxes[name]; ok {
			return errors.Errorf("species %s has both a concentration and a flux override", name)
		}
	}
	for _, v := range c.Species.FluxScalings {
		if v <= 0 {
			return errors.Errorf("invalid flux scaling %g", v)
		}
	}
	if c.Convergence.DIVFrms <= 0 || c.Convergence.DT <= 0 {
		return errors.New("convergence tolerances must be positive")
	}
	if c.Convergence.Window < 1 {
		return errors.New("convergence.window must be at least 1")
	}
	if c.Output.Dir == "" {
		return errors.New("output.dir not configured")
	}
	if c.Output.ArchiveLevel < 1 || c.Output.ArchiveLevel > 4 {
		return errors.Errorf("invalid output.archive_level %d (valid: 1-4)", c.Output.ArchiveLevel)
	}
	if c.Output.Workers < 1 {
		return errors.New("output.workers must be at least 1")
	}
	valid := false
	for _, l := range ValidLevels {
		if c.Logging.Level == l {
			valid = true
			break
		}
	}
	if !valid {
		return errors.Errorf("invalid logging level: %s (valid: %v)", c.Logging.Level, ValidLevels)
	}
	return nil
}
