// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package s2floes

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/2dChan/s2floes/geofiles"
	"github.com/2dChan/s2floes/internal/extcmd"
	"github.com/golang/geo/r3"
	"github.com/golang/geo/s2"
)

// BasePlaceholder is replaced by the base path of the exchange files in the
// arguments of a CommandTriangulator.
const BasePlaceholder = "{base}"

// Triangulator computes the Voronoi diagram of points on the unit sphere.
type Triangulator interface {
	Triangulate(ctx context.Context, points []r3.Vector) (*Diagram, error)
}

// HullTriangulator computes the diagram in process with NewDiagram.
type HullTriangulator struct {
	// Eps is the hull tolerance; zero means the default.
	Eps float64
}

// Triangulate implements Triangulator.
func (h HullTriangulator) Triangulate(ctx context.Context, points []r3.Vector) (*Diagram, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sites := make(s2.PointVector, len(points))
	for i, p := range points {
		sites[i] = s2.Point{Vector: p.Normalize()}
	}
	var setters []DiagramOption
	if h.Eps != 0 {
		setters = append(setters, WithEps(h.Eps))
	}
	return NewDiagram(sites, setters...)
}

// CommandTriangulator delegates to an external tool. The points are written
// to Base+".xyz", the tool is run, and the diagram is read back from
// Base+VertexSuffix and Base+CellSuffix. Outputs of an earlier run are removed
// first, so both files must be written by the tool.
type CommandTriangulator struct {
	Runner  *extcmd.Runner
	Command extcmd.Command
	// Base is the path of the exchange files without suffix, relative to the
	// runner directory.
	Base string
}

// Triangulate implements Triangulator.
func (c CommandTriangulator) Triangulate(ctx context.Context, points []r3.Vector) (*Diagram, error) {
	r := c.Runner
	if r == nil {
		r = &extcmd.Runner{}
	}
	base := c.Base
	if base == "" {
		base = "points"
	}
	path := base
	if r.Dir != "" && !filepath.IsAbs(base) {
		path = filepath.Join(r.Dir, base)
	}

	if err := geofiles.WriteXYZFile(path+".xyz", points); err != nil {
		return nil, fmt.Errorf("s2floes: %w", err)
	}
	for _, suffix := range []string{VertexSuffix, CellSuffix} {
		if err := os.Remove(path + suffix); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("s2floes: %w", err)
		}
	}

	cmd := extcmd.Command{
		Name:    c.Command.Name,
		Args:    make([]string, len(c.Command.Args)),
		Stdout:  c.Command.Stdout,
		Outputs: append([]string{base + VertexSuffix, base + CellSuffix}, c.Command.Outputs...),
	}
	for i, a := range c.Command.Args {
		cmd.Args[i] = strings.ReplaceAll(a, BasePlaceholder, base)
	}
	if err := r.Run(ctx, cmd); err != nil {
		return nil, err
	}

	return ReadDiagramFiles(path)
}
