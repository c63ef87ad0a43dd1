// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package s2floes holds the spherical Voronoi diagram the floe mesh is built
// from, reads and writes it in the .voronoi.xyz/.voronoi.xyzf file pair, and
// computes it either in process or with an external triangulator.
package s2floes

import (
	"errors"
	"fmt"

	"github.com/2dChan/s2floes/s2delaunay"
	"github.com/golang/geo/s2"
)

const (
	defaultEps = 1e-12
)

// Diagram is a Voronoi diagram on the unit sphere stored as a flat vertex pool
// and a CSR cell table: the vertices of cell i are
// CellVertices[CellOffsets[i]:CellOffsets[i+1]].
//
// Sites and CellNeighbors are only known for diagrams computed in process.
// A diagram read from files has neither, and its cells may reference vertex
// indices outside Vertices.
type Diagram struct {
	Sites    s2.PointVector
	Vertices s2.PointVector

	// NOTE: Sorted CCW per cell, looking out of the sphere from its center
	// (clockwise seen from outside).
	CellVertices []int
	// NOTE: Sorted CCW per cell, looking out of the sphere from its center.
	CellNeighbors []int
	CellOffsets   []int

	eps float64
}

// NumCells returns the number of cells.
func (d *Diagram) NumCells() int {
	if len(d.CellOffsets) == 0 {
		return 0
	}
	return len(d.CellOffsets) - 1
}

// Cell returns a view of cell i.
func (d *Diagram) Cell(i int) (Cell, error) {
	if i < 0 || i >= d.NumCells() {
		return Cell{}, fmt.Errorf("Cell: index %d out of range [0 %d)", i, d.NumCells())
	}
	return Cell{idx: i, d: d}, nil
}

type DiagramOptions struct {
	Eps float64
}

type DiagramOption func(*DiagramOptions) error

// WithEps sets the tolerance of the underlying convex hull.
func WithEps(eps float64) DiagramOption {
	return func(o *DiagramOptions) error {
		if eps <= 0 {
			return fmt.Errorf("s2floes: eps must be positive, got %v", eps)
		}
		o.Eps = eps
		return nil
	}
}

// NewDiagram computes the Voronoi diagram of sites. Voronoi vertices are the
// circumcenters of the Delaunay triangles, and cell i lists the triangles
// incident to site i.
func NewDiagram(sites s2.PointVector, setters ...DiagramOption) (*Diagram, error) {
	opts := DiagramOptions{
		Eps: defaultEps,
	}
	for _, set := range setters {
		if err := set(&opts); err != nil {
			return nil, err
		}
	}

	dt, err := s2delaunay.NewTriangulation(sites, s2delaunay.WithEps(opts.Eps))
	if err != nil {
		return nil, err
	}

	numTriangles := len(dt.Triangles)
	d := &Diagram{
		Sites:         dt.Vertices,
		Vertices:      make(s2.PointVector, numTriangles),
		CellVertices:  dt.IncidentTriangleIndices,
		CellNeighbors: make([]int, len(dt.IncidentTriangleIndices)),
		CellOffsets:   dt.IncidentTriangleOffsets,
		eps:           opts.Eps,
	}

	for i := range numTriangles {
		d.Vertices[i] = dt.Circumcenter(i)
	}

	for vIdx := range dt.Vertices {
		offset := dt.IncidentTriangleOffsets[vIdx]
		copy(d.CellNeighbors[offset:], dt.Neighbors(vIdx))
	}

	return d, nil
}

// Relax applies steps rounds of Lloyd relaxation: every site moves to the
// centroid of its cell and the diagram is recomputed. It needs the sites of
// a computed diagram.
func (d *Diagram) Relax(steps int) error {
	if len(d.Sites) == 0 {
		return errors.New("s2floes: relax: diagram has no sites")
	}
	for range steps {
		sites := make(s2.PointVector, d.NumCells())
		for i := range sites {
			cell, err := d.Cell(i)
			if err != nil {
				return err
			}
			loop, err := cell.Loop()
			if err != nil {
				return err
			}
			sites[i] = s2.Point{Vector: loop.Centroid().Normalize()}
		}
		nd, err := NewDiagram(sites, WithEps(d.eps))
		if err != nil {
			return fmt.Errorf("s2floes: relax: %w", err)
		}
		*d = *nd
	}
	return nil
}
