/*
 * run.go, part of goatmos.
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

package run

import (
	"bytes"
	"context"
	"math"
	"os"
	"path/filepath"
	"time"

	atmos "github.com/goatmos/goatmos"
	"github.com/goatmos/goatmos/clima"
	"github.com/goatmos/goatmos/config"
	"github.com/goatmos/goatmos/driver"
	"github.com/goatmos/goatmos/params"
	"github.com/goatmos/goatmos/photochem"
	"github.com/goatmos/goatmos/runstore"
	"github.com/goatmos/goatmos/species"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Result is the outcome of one run.
type Result struct {
	Record      *runstore.Run
	Photochem   *photochem.Result
	Clima       *clima.Result
	Convergence clima.Convergence
	Archived    []string //paths of the compressed raw outputs
}

// Runner runs simulations.
type Runner struct {
	Driver driver.Driver
	Config *config.Config
	Store  *runstore.Store //may be nil
	now    func() time.Time
	newID  func() uuid.UUID
}

// New returns a Runner that drives the model with d, configured by cfg,
// and records its runs in store, if not nil.
func New(d driver.Driver, cfg *config.Config, store *runstore.Store) *Runner {
	return &Runner{Driver: d, Config: cfg, Store: store, now: time.Now, newID: uuid.New}
}

// ScaledFluxes returns the configured flux overrides multiplied by scaling.
func ScaledFluxes(fluxes map[string]float64, scaling float64) map[string]float64 {
	ret := make(map[string]float64, len(fluxes))
	for k, v := range fluxes {
		ret[k] = v * scaling
	}
	return ret
}

func copyMap(m map[string]float64) map[string]float64 {
	ret := make(map[string]float64, len(m))
	for k, v := range m {
		ret[k] = v
	}
	return ret
}

// Run performs one coupled run with the configured fluxes multiplied by scaling.
// The run is recorded even when it fails; the returned Result is never nil.
func (R *Runner) Run(ctx context.Context, scaling float64) (res *Result, err error) {
	cfg := R.Config
	rec := &runstore.Run{
		ID:             R.newID(),
		Started:        R.now(),
		Scaling:        scaling,
		Concentrations: copyMap(cfg.Species.Concentrations),
		Fluxes:         ScaledFluxes(cfg.Species.Fluxes, scaling),
		FinalDIVFrms:   math.NaN(),
	}
	rec.OutputDir = filepath.Join(cfg.Output.Dir, rec.ID.String())
	res = &Result{Record: rec}
	log := atmos.Logger("run").With(zap.String("run", rec.ID.String()), zap.Float64("scaling", scaling))
	log.Info("starting run")
	defer func() {
		rec.Finished = R.now()
		if err != nil {
			rec.Error = err.Error()
			log.Error("run failed", zap.Error(err))
		} else {
			log.Info("run finished", zap.Bool("converged", rec.Converged), zap.Int("iterations", rec.Iterations))
		}
		if R.Store != nil {
			if err2 := R.Store.Record(context.WithoutCancel(ctx), rec); err2 != nil && err == nil {
				err = err2
			}
		}
	}()

	if err = os.MkdirAll(rec.OutputDir, 0755); err != nil {
		return res, errors.Wrap(err, "creating output directory")
	}
	if err = R.prepareSpecies(ctx, rec.Concentrations, rec.Fluxes); err != nil {
		return res, err
	}
	if err = R.setLimits(ctx); err != nil {
		return res, err
	}
	for _, command := range []string{cfg.Simulation.PhotochemCommand, cfg.Simulation.ClimaCommand} {
		if err = R.execute(ctx, command); err != nil {
			return res, err
		}
	}
	if res.Photochem, err = R.parsePhotochem(ctx, rec.OutputDir); err != nil {
		return res, err
	}
	if res.Clima, err = R.parseClima(ctx, rec.OutputDir); err != nil {
		return res, err
	}
	res.Convergence = res.Clima.Convergence(clima.Criteria{
		DIVFrms: cfg.Convergence.DIVFrms,
		DT:      cfg.Convergence.DT,
		Window:  cfg.Convergence.Window,
	})
	rec.Converged = res.Convergence.Converged
	rec.Iterations = res.Convergence.Iterations
	if rec.Iterations > 0 {
		rec.FinalDIVFrms = res.Convergence.FinalDIVFrms
	}
	if cfg.Output.Archive {
		if res.Archived, err = R.archive(ctx, rec.OutputDir); err != nil {
			return res, err
		}
	}
	return res, nil
}

// Scan runs one simulation per scaling factor, in order. A failed run does not stop the
// scan; the error of the first failure is returned along with all the results.
func (R *Runner) Scan(ctx context.Context, scalings []float64) ([]*Result, error) {
	var ret []*Result
	var first error
	for i, s := range scalings {
		if err := ctx.Err(); err != nil {
			return ret, err
		}
		res, err := R.Run(ctx, s)
		ret = append(ret, res)
		if err != nil && first == nil {
			first = errors.Wrapf(err, "run %d of %d (scaling %g)", i+1, len(scalings), s)
		}
	}
	return ret, first
}

// prepareSpecies applies the overrides to the model's species file.
func (R *Runner) prepareSpecies(ctx context.Context, conc, flux map[string]float64) error {
	name := R.Config.Simulation.SpeciesFile
	data, err := R.Driver.ReadOutput(ctx, name)
	if err != nil {
		return err
	}
	f, err := species.Read(bytes.NewReader(data))
	if err != nil {
		return atmos.Decorate(err, "run.prepareSpecies", filepath.Base(name))
	}
	if err := f.Modify(conc, flux); err != nil {
		return atmos.Decorate(err, "run.prepareSpecies", filepath.Base(name))
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return errors.Wrap(err, "writing species file")
	}
	return R.Driver.WriteInput(ctx, name, buf.Bytes())
}

// setLimits writes the iteration limits to the input parameter files.
func (R *Runner) setLimits(ctx context.Context) error {
	s := R.Config.Simulation
	for _, v := range []struct {
		file, key string
		limit     int
	}{
		{s.PhotochemInput, s.PhotochemStepsKey, s.MaxPhotochemIterations},
		{s.ClimaInput, s.ClimaStepsKey, s.MaxClimaSteps},
	} {
		if v.file == "" || v.key == "" || v.limit <= 0 {
			continue
		}
		data, err := R.Driver.ReadOutput(ctx, v.file)
		if err != nil {
			return err
		}
		p, err := params.Read(bytes.NewReader(data))
		if err != nil {
			return atmos.Decorate(err, "run.setLimits", filepath.Base(v.file))
		}
		if err := p.SetInt(v.key, v.limit); err != nil {
			return errors.Wrap(err, v.file)
		}
		var buf bytes.Buffer
		if err := p.Write(&buf); err != nil {
			return err
		}
		if err := R.Driver.WriteInput(ctx, v.file, buf.Bytes()); err != nil {
			return err
		}
	}
	return nil
}

func (R *Runner) execute(ctx context.Context, command string) error {
	if t := R.Config.CommandTimeout(); t > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t)
		defer cancel()
	}
	return R.Driver.Execute(ctx, command)
}

func (R *Runner) parsePhotochem(ctx context.Context, outdir string) (*photochem.Result, error) {
	name := R.Config.Simulation.PhotochemOutput
	data, err := R.Driver.ReadOutput(ctx, name)
	if err != nil {
		return nil, err
	}
	res, err := photochem.ParseReader(bytes.NewReader(data))
	if err != nil {
		return nil, atmos.Decorate(err, "run.parsePhotochem", filepath.Base(name))
	}
	return res, res.WriteCSV(outdir)
}

func (R *Runner) parseClima(ctx context.Context, outdir string) (*clima.Result, error) {
	name := R.Config.Simulation.ClimaOutput
	data, err := R.Driver.ReadOutput(ctx, name)
	if err != nil {
		return nil, err
	}
	res, err := clima.ParseReader(bytes.NewReader(data))
	if err != nil {
		return nil, atmos.Decorate(err, "run.parseClima", filepath.Base(name))
	}
	return res, res.WriteCSV(outdir)
}
