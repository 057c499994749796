/*
 * config_test.go, part of goatmos.
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

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "./Photo.run", cfg.Simulation.PhotochemCommand)
	assert.Equal(t, "NSTEPS", cfg.Simulation.ClimaStepsKey)
	assert.Equal(t, 10, cfg.Convergence.Window)
	assert.Equal(t, 6*time.Hour, cfg.CommandTimeout())
}

func TestConfig_SaveLoad(t *testing.T) {
	t.Setenv("GOATMOS_MODEL_DIR", "")
	t.Setenv("GOATMOS_DB", "")
	path := filepath.Join(t.TempDir(), "sub", "goatmos.yaml")

	cfg := DefaultConfig()
	cfg.Simulation.ModelDir = "/opt/atmos"
	cfg.Species.Concentrations["O2"] = 0.21
	cfg.Species.Fluxes["CH4"] = 1e11
	cfg.Species.FluxScalings = []float64{0.5, 1, 2}
	cfg.Output.Archive = true
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestConfig_LoadPartial(t *testing.T) {
	t.Setenv("GOATMOS_MODEL_DIR", "")
	t.Setenv("GOATMOS_DB", "")
	path := filepath.Join(t.TempDir(), "goatmos.yaml")
	data := `
simulation:
  model_dir: /data/atmos
  max_clima_steps: 250
convergence:
  window: 5
logging:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/data/atmos", cfg.Simulation.ModelDir)
	assert.Equal(t, 250, cfg.Simulation.MaxClimaSteps)
	assert.Equal(t, "./Clima.run", cfg.Simulation.ClimaCommand)
	assert.Equal(t, 5, cfg.Convergence.Window)
	assert.Equal(t, 1e-3, cfg.Convergence.DIVFrms)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestConfig_LoadMissingAndBroken(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nothing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("simulation: [1, 2"), 0644))
	_, err = Load(path)
	assert.Error(t, err)
}

func TestConfig_EnvOverrides(t *testing.T) {
	t.Setenv("GOATMOS_MODEL_DIR", "/env/atmos")
	t.Setenv("GOATMOS_DB", "/env/runs.db")
	path := filepath.Join(t.TempDir(), "goatmos.yaml")
	require.NoError(t, DefaultConfig().Save(path))
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/env/atmos", cfg.Simulation.ModelDir)
	assert.Equal(t, "/env/runs.db", cfg.Store.Path)
}

func TestConfig_Validate(t *testing.T) {
	cases := map[string]func(*Config){
		"model dir":      func(c *Config) { c.Simulation.ModelDir = "" },
		"command":        func(c *Config) { c.Simulation.ClimaCommand = "" },
		"timeout":        func(c *Config) { c.Simulation.Timeout = "soon" },
		"conflict":       func(c *Config) { c.Species.Concentrations["O2"] = 0.2; c.Species.Fluxes["O2"] = 1 },
		"scaling":        func(c *Config) { c.Species.FluxScalings = []float64{1, 0} },
		"tolerance":      func(c *Config) { c.Convergence.DT = 0 },
		"window":         func(c *Config) { c.Convergence.Window = 0 },
		"archive level":  func(c *Config) { c.Output.ArchiveLevel = 7 },
		"workers":        func(c *Config) { c.Output.Workers = 0 },
		"logging level":  func(c *Config) { c.Logging.Level = "loud" },
		"negative limit": func(c *Config) { c.Simulation.MaxClimaSteps = -1 },
	}
	for name, mod := range cases {
		cfg := DefaultConfig()
		mod(cfg)
		assert.Error(t, cfg.Validate(), name)
	}
}
