// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package mesh turns a spherical Voronoi diagram into floes: one polygon per
// valid cell, the adjacency of cells that share a vertex, and per-floe state
// flags from a coastline classification.
package mesh

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/2dChan/s2floes"
	"github.com/2dChan/s2floes/geocoords"
	"github.com/2dChan/s2floes/polygon"
	"github.com/paulmach/orb"
)

var (
	// ErrVertexOutOfRange is recorded for a cell referencing a vertex missing
	// from the vertex table.
	ErrVertexOutOfRange = errors.New("mesh: vertex index out of range")
	// ErrTooFewVertices is recorded for a cell with fewer than 3 vertices.
	ErrTooFewVertices = errors.New("mesh: too few vertices")
)

// State is a set of floe flags.
type State uint8

const (
	StateFree   State = 0x1
	StateSteady State = 0x2
	StateStatic State = 0x4
)

func (s State) String() string {
	switch s {
	case StateFree:
		return "free"
	case StateSteady:
		return "steady"
	case StateStatic:
		return "static"
	}
	return fmt.Sprintf("State(%#x)", uint8(s))
}

// Link is an unordered pair of polygon indices stored with Link[0] < Link[1].
type Link [2]int

// Rejection records a cell excluded from the mesh.
type Rejection struct {
	Cell int
	Err  error
}

// Mesh is an indexed collection of floes. Polygons, Cells and States are
// index aligned; States is empty until a classification pass sets it.
type Mesh struct {
	Polygons []*polygon.Polygon
	// Cells holds the source cell index of each polygon.
	Cells []int
	// Links is sorted and holds no duplicates and no self pairs.
	Links    []Link
	States   []State
	Rejected []Rejection
}

// Build creates a polygon for every valid cell of d and links polygons that
// share a vertex. Invalid cells are recorded in Rejected and skipped.
func Build(d *s2floes.Diagram) (*Mesh, error) {
	if d == nil || d.NumCells() == 0 {
		return nil, errors.New("mesh: empty diagram")
	}

	m := &Mesh{}
	owners := make([][]int, len(d.Vertices))
	for c := range d.NumCells() {
		idx := cellVertices(d, c)
		p, err := newPolygon(d, idx)
		if err != nil {
			m.Rejected = append(m.Rejected, Rejection{Cell: c, Err: fmt.Errorf("cell %d: %w", c, err)})
			continue
		}
		pi := len(m.Polygons)
		m.Polygons = append(m.Polygons, p)
		m.Cells = append(m.Cells, c)
		for _, v := range idx {
			if n := len(owners[v]); n == 0 || owners[v][n-1] != pi {
				owners[v] = append(owners[v], pi)
			}
		}
	}

	set := make(map[Link]struct{})
	for _, o := range owners {
		for i := range o {
			for j := i + 1; j < len(o); j++ {
				set[newLink(o[i], o[j])] = struct{}{}
			}
		}
	}
	m.Links = sortedLinks(set)
	return m, nil
}

// Len returns the number of polygons.
func (m *Mesh) Len() int {
	return len(m.Polygons)
}

// Neighbors returns the polygons linked to polygon i in increasing order.
func (m *Mesh) Neighbors(i int) []int {
	var out []int
	for _, l := range m.Links {
		switch i {
		case l[0]:
			out = append(out, l[1])
		case l[1]:
			out = append(out, l[0])
		}
	}
	slices.Sort(out)
	return out
}

// Delta returns the smallest inscribed radius over all polygons, a bound on
// the contact resolution of the mesh.
func (m *Mesh) Delta() float64 {
	r := math.Inf(1)
	for _, p := range m.Polygons {
		r = math.Min(r, p.InscribedRadius())
	}
	return r
}

// FilterRegion drops every polygon with a vertex outside b and returns the
// number of dropped polygons. Longitudes are compared in [0, 360).
func (m *Mesh) FilterRegion(b orb.Bound) int {
	keep := make([]bool, m.Len())
	for i, p := range m.Polygons {
		keep[i] = true
		for _, v := range p.Vertices {
			if !b.Contains(orb.Point{geocoords.NormLon(v[0]), v[1]}) {
				keep[i] = false
				break
			}
		}
	}
	return m.retain(keep)
}

// retain keeps the polygons flagged in keep, remaps Links and returns the
// number of dropped polygons.
func (m *Mesh) retain(keep []bool) int {
	remap := make([]int, len(keep))
	n := 0
	for i, k := range keep {
		remap[i] = -1
		if !k {
			continue
		}
		remap[i] = n
		m.Polygons[n] = m.Polygons[i]
		m.Cells[n] = m.Cells[i]
		if len(m.States) > 0 {
			m.States[n] = m.States[i]
		}
		n++
	}
	dropped := len(keep) - n
	clear(m.Polygons[n:])
	m.Polygons = m.Polygons[:n]
	m.Cells = m.Cells[:n]
	if len(m.States) > 0 {
		m.States = m.States[:n]
	}

	links := m.Links[:0]
	for _, l := range m.Links {
		a, b := remap[l[0]], remap[l[1]]
		if a >= 0 && b >= 0 {
			links = append(links, newLink(a, b))
		}
	}
	// Remapping is monotonic, so links stay sorted.
	m.Links = links
	return dropped
}

func (m *Mesh) ensureStates() {
	if len(m.States) == m.Len() {
		return
	}
	m.States = make([]State, m.Len())
	for i := range m.States {
		m.States[i] = StateFree
	}
}

// cellVertices returns the vertex indices of cell c with consecutive repeats
// removed.
func cellVertices(d *s2floes.Diagram, c int) []int {
	raw := d.CellVertices[d.CellOffsets[c]:d.CellOffsets[c+1]]
	idx := make([]int, 0, len(raw))
	for _, v := range raw {
		if len(idx) == 0 || idx[len(idx)-1] != v {
			idx = append(idx, v)
		}
	}
	if len(idx) > 1 && idx[0] == idx[len(idx)-1] {
		idx = idx[:len(idx)-1]
	}
	return idx
}

func newPolygon(d *s2floes.Diagram, idx []int) (*polygon.Polygon, error) {
	if len(idx) < 3 {
		return nil, fmt.Errorf("%w: %d", ErrTooFewVertices, len(idx))
	}
	outline := make([]orb.Point, len(idx))
	for i, v := range idx {
		if v < 0 || v >= len(d.Vertices) {
			return nil, fmt.Errorf("%w: %d not in [1 %d]", ErrVertexOutOfRange, v+1, len(d.Vertices))
		}
		outline[i] = geocoords.XYZToGeo(d.Vertices[v].Vector)
	}
	return polygon.New(outline)
}

func newLink(a, b int) Link {
	if a > b {
		a, b = b, a
	}
	return Link{a, b}
}

func sortedLinks(set map[Link]struct{}) []Link {
	links := make([]Link, 0, len(set))
	for l := range set {
		links = append(links, l)
	}
	slices.SortFunc(links, func(a, b Link) int {
		if a[0] != b[0] {
			return a[0] - b[0]
		}
		return a[1] - b[1]
	})
	return links
}
