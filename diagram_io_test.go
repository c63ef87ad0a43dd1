// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package s2floes

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/golang/geo/s2"
	"github.com/google/go-cmp/cmp"
)

func TestReadDiagram(t *testing.T) {
	vertices := "1 0 0\n0 1 0\n0 0 1\n-1 0 0\n"
	cells := "1 2 3 -1\n\n2 4 3 1 0\n9 1 -1\n-1\n"

	d, err := ReadDiagram(strings.NewReader(vertices), strings.NewReader(cells))
	if err != nil {
		t.Fatalf("ReadDiagram(...) error = %v, want nil", err)
	}
	if got := len(d.Vertices); got != 4 {
		t.Errorf("len(d.Vertices) = %v, want 4", got)
	}
	if diff := cmp.Diff([]int{0, 1, 2, 1, 3, 2, 0, 8, 0}, d.CellVertices); diff != "" {
		t.Errorf("d.CellVertices mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{0, 3, 7, 9, 9}, d.CellOffsets); diff != "" {
		t.Errorf("d.CellOffsets mismatch (-want +got):\n%s", diff)
	}
	if got := d.NumCells(); got != 4 {
		t.Errorf("d.NumCells() = %v, want 4", got)
	}
}

func TestReadDiagram_Malformed(t *testing.T) {
	tests := []struct {
		name     string
		vertices string
		cells    string
	}{
		{"bad vertex", "1 0\n", "1 -1\n"},
		{"bad cell index", "1 0 0\n", "1 x -1\n"},
		{"fractional cell index", "1 0 0\n", "1.5 1 -1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadDiagram(strings.NewReader(tt.vertices), strings.NewReader(tt.cells))
			if err == nil {
				t.Errorf("ReadDiagram(%q, %q) error = nil, want non-nil", tt.vertices, tt.cells)
			}
		})
	}
}

func TestWriteDiagram_RoundTrip(t *testing.T) {
	vd := mustNewDiagram(t, 50)

	var vb, cb bytes.Buffer
	if err := WriteDiagram(&vb, &cb, vd); err != nil {
		t.Fatalf("WriteDiagram(...) error = %v, want nil", err)
	}
	if !strings.HasSuffix(strings.SplitN(cb.String(), "\n", 2)[0], " -1") {
		t.Errorf("cell line %q has no sentinel", strings.SplitN(cb.String(), "\n", 2)[0])
	}

	got, err := ReadDiagram(&vb, &cb)
	if err != nil {
		t.Fatalf("ReadDiagram(...) error = %v, want nil", err)
	}
	if diff := cmp.Diff(vd.Vertices, got.Vertices, cmp.AllowUnexported(s2.Point{})); diff != "" {
		t.Errorf("Vertices mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(vd.CellVertices, got.CellVertices); diff != "" {
		t.Errorf("CellVertices mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(vd.CellOffsets, got.CellOffsets); diff != "" {
		t.Errorf("CellOffsets mismatch (-want +got):\n%s", diff)
	}
}

func TestDiagramFiles_RoundTrip(t *testing.T) {
	vd := mustNewDiagram(t, 20)
	base := filepath.Join(t.TempDir(), "mesh")
	if err := WriteDiagramFiles(base, vd); err != nil {
		t.Fatalf("WriteDiagramFiles(...) error = %v, want nil", err)
	}
	got, err := ReadDiagramFiles(base)
	if err != nil {
		t.Fatalf("ReadDiagramFiles(...) error = %v, want nil", err)
	}
	if diff := cmp.Diff(vd.CellOffsets, got.CellOffsets); diff != "" {
		t.Errorf("CellOffsets mismatch (-want +got):\n%s", diff)
	}

	if _, err := ReadDiagramFiles(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Errorf("ReadDiagramFiles(missing) error = nil, want non-nil")
	}
}
