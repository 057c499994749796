/*
 * archive.go, part of goatmos.
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
	"context"
	"io"
	"os"
	"path/filepath"

	atmos "github.com/goatmos/goatmos"
	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ArchiveExt is appended to the name of each archived file.
const ArchiveExt = ".zst"

// archived returns the model files kept with each run.
func (R *Runner) archived() []string {
	s := R.Config.Simulation
	var ret []string
	for _, v := range []string{s.PhotochemOutput, s.ClimaOutput, s.SpeciesFile, s.PhotochemInput, s.ClimaInput} {
		if v != "" {
			ret = append(ret, v)
		}
	}
	return ret
}

// archive compresses the raw model files into outdir. Each file is handled by its own
// goroutine, at most Output.Workers at a time.
func (R *Runner) archive(ctx context.Context, outdir string) ([]string, error) {
	files := R.archived()
	ret := make([]string, len(files))
	level := zstd.EncoderLevel(R.Config.Output.ArchiveLevel)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(R.Config.Output.Workers, 1))
	for i, name := range files {
		i, name := i, name
		g.Go(func() error {
			data, err := R.Driver.ReadOutput(gctx, name)
			if err != nil {
				return err
			}
			dest := filepath.Join(outdir, filepath.Base(name)+ArchiveExt)
			if err := compress(dest, data, level); err != nil {
				return errors.Wrapf(err, "archiving %s", name)
			}
			ret[i] = dest
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	atmos.Logger("run").Debug("archived raw output", zap.Strings("files", ret))
	return ret, nil
}

func compress(dest string, data []byte, level zstd.EncoderLevel) error {
	return atmos.WriteFile(dest, func(w io.Writer) error {
		enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(level))
		if err != nil {
			return err
		}
		if _, err := enc.Write(data); err != nil {
			enc.Close()
			return err
		}
		return enc.Close()
	})
}

// ReadArchive returns the decompressed contents of an archived file.
func ReadArchive(name string) ([]byte, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, errors.Wrap(err, name)
	}
	defer dec.Close()
	b, err := io.ReadAll(dec)
	if err != nil {
		return nil, errors.Wrap(err, name)
	}
	return b, nil
}
