// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package s2floes

import (
	"errors"
	"fmt"

	"github.com/golang/geo/s2"
)

// Cell represents a Voronoi cell. It is a view structure for accessing a cell in a Diagram.
// The cell's index corresponds to the index of its site in the Diagram's Sites.
type Cell struct {
	idx int
	d   *Diagram
}

// SiteIndex returns the index of the site in the Diagram's Sites.
func (c Cell) SiteIndex() int {
	return c.idx
}

// Site returns the site point of the cell, or the zero Point if the Diagram
// has no sites.
func (c Cell) Site() s2.Point {
	if c.idx >= len(c.d.Sites) {
		return s2.Point{}
	}
	return c.d.Sites[c.idx]
}

// NumVertices returns the number of vertices in the cell.
func (c Cell) NumVertices() int {
	return c.d.CellOffsets[c.idx+1] - c.d.CellOffsets[c.idx]
}

// VertexIndices returns the indices of the vertices that form the cell in the Diagram's Vertices,
// sorted in counter-clockwise order when looking out of the sphere.
func (c Cell) VertexIndices() []int {
	return c.d.CellVertices[c.d.CellOffsets[c.idx]:c.d.CellOffsets[c.idx+1]]
}

// Vertex returns the vertex at the specified index.
// It returns an error if the index is out of range or the cell references a
// vertex missing from the Diagram.
func (c Cell) Vertex(i int) (s2.Point, error) {
	start := c.d.CellOffsets[c.idx]
	end := c.d.CellOffsets[c.idx+1]
	if i < 0 || i >= end-start {
		return s2.Point{}, fmt.Errorf("Vertex: index %d out of range [0 %d)", i, end-start)
	}
	v := c.d.CellVertices[start+i]
	if v < 0 || v >= len(c.d.Vertices) {
		return s2.Point{}, fmt.Errorf("Vertex: vertex %d out of range [0 %d)", v, len(c.d.Vertices))
	}
	return c.d.Vertices[v], nil
}

// NumNeighbors returns the number of neighboring cells. For a computed
// Diagram this equals the number of vertices; a Diagram read from files has
// no neighbor table.
func (c Cell) NumNeighbors() int {
	if len(c.d.CellNeighbors) == 0 {
		return 0
	}
	return c.d.CellOffsets[c.idx+1] - c.d.CellOffsets[c.idx]
}

// NeighborIndices returns the indices of the neighboring cells in the Diagram,
// sorted in counter-clockwise order when looking out of the sphere.
func (c Cell) NeighborIndices() []int {
	if len(c.d.CellNeighbors) == 0 {
		return nil
	}
	return c.d.CellNeighbors[c.d.CellOffsets[c.idx]:c.d.CellOffsets[c.idx+1]]
}

// Neighbor returns the neighboring cell at the specified index.
// It returns an error if the index is out of range.
func (c Cell) Neighbor(i int) (Cell, error) {
	if len(c.d.CellNeighbors) == 0 {
		return Cell{}, errors.New("Neighbor: diagram has no neighbor table")
	}
	start := c.d.CellOffsets[c.idx]
	end := c.d.CellOffsets[c.idx+1]
	if i < 0 || i >= end-start {
		return Cell{}, fmt.Errorf("Neighbor: index %d out of range [0 %d)", i, end-start)
	}
	nc, err := c.d.Cell(c.d.CellNeighbors[start+i])
	if err != nil {
		return Cell{}, err
	}
	return nc, nil
}

// Loop returns the boundary of the cell as an S2 loop with the cell on its
// left, that is with the vertices in reverse storage order.
func (c Cell) Loop() (*s2.Loop, error) {
	n := c.NumVertices()
	pts := make([]s2.Point, n)
	for i := range n {
		v, err := c.Vertex(i)
		if err != nil {
			return nil, err
		}
		pts[n-1-i] = v
	}
	return s2.LoopFromPoints(pts), nil
}
