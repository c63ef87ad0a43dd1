// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package selector

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/2dChan/s2floes/geofiles"
	"github.com/2dChan/s2floes/internal/extcmd"
)

const (
	defaultBinary     = "gmt"
	defaultResolution = "l"
	defaultInput      = "temp.lli"
	defaultOutput     = "selected.lli"
)

// ErrNoCoastLines is returned by GMT for a buffered query without shoreline
// segments to measure the buffer from.
var ErrNoCoastLines = errors.New("selector: buffer needs coast lines")

// GMT selects points with gmt gmtselect. The points are written to Input,
// gmtselect runs with its standard output captured to Output and the result
// is read back. Both files are removed afterwards unless Keep is set.
type GMT struct {
	Runner *extcmd.Runner
	// Binary defaults to "gmt".
	Binary string
	// Input and Output are relative to the runner directory.
	Input  string
	Output string
	Keep   bool
}

// Args returns the gmtselect arguments for a query. The buffer is only
// applied with coast.Lines set.
func (g *GMT) Args(coast Coastline, bufferKm float64) []string {
	res := coast.Resolution
	if res == "" {
		res = defaultResolution
	}
	// -N wet/dry masks for ocean, land, lake, island, pond.
	mask := "-Nk/s/s/s/s"
	if coast.Side == Land {
		mask = "-Ns/k/k/k/k"
	}
	args := []string{"gmtselect", g.input(), "-D" + res, mask}
	if bufferKm > 0 && coast.Lines != "" {
		args = append(args, "-fg",
			"-L"+coast.Lines+"+d"+strconv.FormatFloat(bufferKm, 'f', -1, 64)+"k")
	}
	return args
}

// SelectNear implements Selector.
func (g *GMT) SelectNear(ctx context.Context, points []geofiles.LonLatIndex, coast Coastline, bufferKm float64) ([]geofiles.LonLatIndex, error) {
	if bufferKm > 0 && coast.Lines == "" {
		return nil, fmt.Errorf("%w: %v km", ErrNoCoastLines, bufferKm)
	}
	r := g.Runner
	if r == nil {
		r = &extcmd.Runner{}
	}

	in, out := g.path(r, g.input()), g.path(r, g.output())
	if err := geofiles.WriteLLIFile(in, points); err != nil {
		return nil, fmt.Errorf("selector: %w", err)
	}
	if !g.Keep {
		defer os.Remove(in)
		defer os.Remove(out)
	}

	binary := g.Binary
	if binary == "" {
		binary = defaultBinary
	}
	cmd := extcmd.Command{
		Name:    binary,
		Args:    g.Args(coast, bufferKm),
		Stdout:  g.output(),
		Outputs: []string{g.output()},
	}
	if err := r.Run(ctx, cmd); err != nil {
		return nil, err
	}

	selected, err := geofiles.ReadLLIFile(out)
	if err != nil {
		return nil, fmt.Errorf("selector: %w", err)
	}
	return selected, nil
}

func (g *GMT) input() string {
	if g.Input == "" {
		return defaultInput
	}
	return g.Input
}

func (g *GMT) output() string {
	if g.Output == "" {
		return defaultOutput
	}
	return g.Output
}

func (g *GMT) path(r *extcmd.Runner, p string) string {
	if r.Dir == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(r.Dir, p)
}
