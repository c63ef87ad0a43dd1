// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package s2floes

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/2dChan/s2floes/geofiles"
	"github.com/golang/geo/r3"
	"github.com/golang/geo/s2"
)

const (
	// VertexSuffix names the vertex table of a diagram: one x y z per line.
	VertexSuffix = ".voronoi.xyz"
	// CellSuffix names the cell table of a diagram: per line the 1-based
	// vertex indices of one cell followed by a sentinel field.
	CellSuffix = ".voronoi.xyzf"

	cellSentinel = "-1"
)

// ReadDiagram reads a diagram from its vertex and cell tables. Cell indices
// are not checked against the vertex table; see Cell.Vertex.
func ReadDiagram(vertices, cells io.Reader) (*Diagram, error) {
	vs, err := geofiles.ReadXYZ(vertices)
	if err != nil {
		return nil, fmt.Errorf("s2floes: vertices: %w", err)
	}

	d := &Diagram{
		Vertices:    make(s2.PointVector, len(vs)),
		CellOffsets: []int{0},
	}
	for i, v := range vs {
		d.Vertices[i] = s2.Point{Vector: v}
	}

	err = geofiles.Fields(cells, func(line int, fields []string) error {
		// The last field is the sentinel.
		for _, f := range fields[:len(fields)-1] {
			idx, err := strconv.Atoi(f)
			if err != nil {
				return fmt.Errorf("s2floes: cells: line %d: %w", line, err)
			}
			d.CellVertices = append(d.CellVertices, idx-1)
		}
		d.CellOffsets = append(d.CellOffsets, len(d.CellVertices))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return d, nil
}

// WriteDiagram writes the vertex and cell tables of d.
func WriteDiagram(vertices, cells io.Writer, d *Diagram) error {
	vs := make([]r3.Vector, len(d.Vertices))
	for i, v := range d.Vertices {
		vs[i] = v.Vector
	}
	if err := geofiles.WriteXYZ(vertices, vs); err != nil {
		return fmt.Errorf("s2floes: vertices: %w", err)
	}

	bw := bufio.NewWriter(cells)
	for i := range d.NumCells() {
		for _, v := range d.CellVertices[d.CellOffsets[i]:d.CellOffsets[i+1]] {
			bw.WriteString(strconv.Itoa(v + 1))
			bw.WriteByte(' ')
		}
		bw.WriteString(cellSentinel)
		bw.WriteByte('\n')
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("s2floes: cells: %w", err)
	}
	return nil
}

// ReadDiagramFiles reads base+VertexSuffix and base+CellSuffix.
func ReadDiagramFiles(base string) (*Diagram, error) {
	vf, err := os.Open(base + VertexSuffix)
	if err != nil {
		return nil, err
	}
	defer vf.Close()
	cf, err := os.Open(base + CellSuffix)
	if err != nil {
		return nil, err
	}
	defer cf.Close()

	return ReadDiagram(vf, cf)
}

// WriteDiagramFiles writes d to base+VertexSuffix and base+CellSuffix.
func WriteDiagramFiles(base string, d *Diagram) (err error) {
	vf, err := os.Create(base + VertexSuffix)
	if err != nil {
		return err
	}
	defer closeFile(vf, &err)
	cf, err := os.Create(base + CellSuffix)
	if err != nil {
		return err
	}
	defer closeFile(cf, &err)

	return WriteDiagram(vf, cf, d)
}

func closeFile(f *os.File, err *error) {
	if cerr := f.Close(); cerr != nil && *err == nil {
		*err = cerr
	}
}
