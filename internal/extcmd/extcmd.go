// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package extcmd runs the external tools of the pipeline (triangulator,
// spatial selector) as blocking processes and checks that they produced
// their output files.
package extcmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// ErrToolFailed is returned when a tool exits with a non-zero status, cannot
// be started, times out or leaves an expected output file missing.
var ErrToolFailed = errors.New("extcmd: tool failed")

const (
	// maxStderr bounds the stderr tail kept in errors.
	maxStderr = 512
	// waitDelay bounds the wait for output pipes after the tool is killed.
	waitDelay = time.Second
)

// Command is one invocation of an external tool.
type Command struct {
	Name string
	Args []string
	// Stdout, if set, is the file the tool's standard output is written to.
	Stdout string
	// Outputs are files that must exist after a successful run.
	Outputs []string
}

// Parse splits a command line on whitespace into a Command.
func Parse(line string) (Command, error) {
	f := strings.Fields(line)
	if len(f) == 0 {
		return Command{}, errors.New("extcmd: empty command")
	}
	return Command{Name: f[0], Args: f[1:]}, nil
}

// String returns the command line.
func (c Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// Runner runs commands. The zero value runs in the current directory with no
// timeout.
type Runner struct {
	// Dir is the working directory; relative Stdout and Outputs paths are
	// resolved against it.
	Dir string
	// Timeout, if positive, bounds every run.
	Timeout time.Duration
}

// Run executes c and waits for it to finish.
func (r *Runner) Run(ctx context.Context, c Command) error {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = r.Dir
	cmd.WaitDelay = waitDelay
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if c.Stdout != "" {
		out, err := os.Create(r.path(c.Stdout))
		if err != nil {
			return fmt.Errorf("extcmd: %s: %w", c.Name, err)
		}
		defer out.Close()
		cmd.Stdout = out
	}

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			err = ctx.Err()
		}
		return fmt.Errorf("%w: %s: %v%s", ErrToolFailed, c, err, tail(stderr.Bytes()))
	}

	for _, p := range c.Outputs {
		if _, err := os.Stat(r.path(p)); err != nil {
			return fmt.Errorf("%w: %s: missing output %s", ErrToolFailed, c, p)
		}
	}
	return nil
}

func (r *Runner) path(p string) string {
	if r.Dir == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(r.Dir, p)
}

func tail(b []byte) string {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return ""
	}
	if len(b) > maxStderr {
		b = b[len(b)-maxStderr:]
	}
	return ": " + string(b)
}
