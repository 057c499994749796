/*
 * driver.go, part of goatmos.
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

/*
Package driver abstracts the environment the photochemical and climate models run in. The
run orchestration only needs to put input files in place, run the model commands
and get the output files back, so anything that can do those three things (a local
installation, a container, a remote host) can drive a simulation.
*/
package driver

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	atmos "github.com/goatmos/goatmos"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Driver runs the model.
type Driver interface {
	// WriteInput writes data to the given path, relative to the model's root.
	WriteInput(ctx context.Context, path string, data []byte) error
	// ReadOutput returns the contents of the given path, relative to the model's root.
	ReadOutput(ctx context.Context, path string) ([]byte, error)
	// Execute runs a shell command in the model's root and waits for it to finish.
	Execute(ctx context.Context, command string) error
}

// DefaultLogName is the file, in the model's root, where Local appends the output of the commands.
const DefaultLogName = "goatmos.log"

// Local drives a model installed in a local directory.
type Local struct {
	Dir     string
	LogName string   //defaults to DefaultLogName
	Env     []string //added to the environment of the commands, in "KEY=value" form.
}

// NewLocal returns a Local driver for the model installed in dir.
func NewLocal(dir string) (*Local, error) {
	st, err := os.Stat(dir)
	if err != nil {
		return nil, errors.Wrap(err, "model directory")
	}
	if !st.IsDir() {
		return nil, errors.Errorf("model directory %s is not a directory", dir)
	}
	return &Local{Dir: dir, LogName: DefaultLogName}, nil
}

func (L *Local) path(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(L.Dir, p)
}

// WriteInput writes data to path.
func (L *Local) WriteInput(ctx context.Context, path string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p := L.path(path)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return errors.Wrapf(err, "writing input %s", path)
	}
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return errors.Wrapf(err, "writing input %s", path)
	}
	return nil
}

// ReadOutput reads path.
func (L *Local) ReadOutput(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(L.path(path))
	if err != nil {
		return nil, errors.Wrapf(err, "reading output %s", path)
	}
	return b, nil
}

// Execute runs command with "sh -c" in the model directory. The standard output and error
// of the command are appended to the driver's log file.
func (L *Local) Execute(ctx context.Context, command string) (err error) {
	name := L.LogName
	if name == "" {
		name = DefaultLogName
	}
	logf, err := os.OpenFile(L.path(name), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return errors.Wrap(err, "opening command log")
	}
	defer func() {
		if err2 := logf.Close(); err == nil && err2 != nil {
			err = errors.Wrap(err2, "closing command log")
		}
	}()
	fmt.Fprintf(logf, "### %s: %s\n", time.Now().Format(time.RFC3339), command)
	log := atmos.Logger("driver")
	log.Info("running", zap.String("command", command), zap.String("dir", L.Dir))
	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	cmd.Dir = L.Dir
	cmd.Env = append(os.Environ(), L.Env...)
	cmd.Stdout = logf
	cmd.Stderr = logf
	start := time.Now()
	if err = cmd.Run(); err != nil {
		log.Error("command failed", zap.String("command", command), zap.Error(err))
		return errors.Wrapf(err, "running %q", command)
	}
	log.Info("done", zap.String("command", command), zap.Duration("took", time.Since(start)))
	return nil
}
