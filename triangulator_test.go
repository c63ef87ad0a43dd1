// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package s2floes

import (
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/2dChan/s2floes/geofiles"
	"github.com/2dChan/s2floes/internal/extcmd"
	"github.com/2dChan/s2floes/utils"
	"github.com/google/go-cmp/cmp"
)

func TestHullTriangulator(t *testing.T) {
	points := utils.GenerateRandomVectors(100, 1)
	// Scaled input is projected back onto the sphere.
	points[0] = points[0].Mul(3)

	d, err := HullTriangulator{}.Triangulate(context.Background(), points)
	if err != nil {
		t.Fatalf("Triangulate(...) error = %v, want nil", err)
	}
	if got, want := d.NumCells(), len(points); got != want {
		t.Errorf("d.NumCells() = %v, want %v", got, want)
	}
	if got, want := len(d.Vertices), 2*len(points)-4; got != want {
		t.Errorf("len(d.Vertices) = %v, want %v", got, want)
	}
}

func TestHullTriangulator_Errors(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := (HullTriangulator{}).Triangulate(ctx, utils.GenerateRandomVectors(10, 0)); err == nil {
		t.Errorf("Triangulate(cancelled) error = nil, want non-nil")
	}
	if _, err := (HullTriangulator{Eps: -1}).Triangulate(context.Background(), utils.GenerateRandomVectors(10, 0)); err == nil {
		t.Errorf("Triangulate(eps -1) error = nil, want non-nil")
	}
}

func TestCommandTriangulator(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	dir := t.TempDir()

	// A fake tool that copies a prepared diagram into place.
	want := mustNewDiagram(t, 30)
	if err := WriteDiagramFiles(filepath.Join(dir, "fixture"), want); err != nil {
		t.Fatalf("WriteDiagramFiles(...) error = %v, want nil", err)
	}
	points := utils.GenerateRandomVectors(30, 0)

	tests := []struct {
		name    string
		script  string
		stale   bool
		wantErr error
	}{
		{
			"success",
			"test -s {base}.xyz && cp fixture.voronoi.xyz {base}.voronoi.xyz && cp fixture.voronoi.xyzf {base}.voronoi.xyzf",
			false,
			nil,
		},
		{"non-zero exit", "exit 2", false, extcmd.ErrToolFailed},
		{"missing cells", "cp fixture.voronoi.xyz {base}.voronoi.xyz", false, extcmd.ErrToolFailed},
		{"outputs of an earlier run", "true", true, extcmd.ErrToolFailed},
	}
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := CommandTriangulator{
				Runner:  &extcmd.Runner{Dir: dir},
				Command: extcmd.Command{Name: "sh", Args: []string{"-c", tt.script}},
				Base:    "run" + string(rune('a'+i)),
			}
			if tt.stale {
				if err := WriteDiagramFiles(filepath.Join(dir, tr.Base), want); err != nil {
					t.Fatalf("WriteDiagramFiles(...) error = %v, want nil", err)
				}
			}
			got, err := tr.Triangulate(context.Background(), points)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Triangulate(...) error = %v, want %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if diff := cmp.Diff(want.CellVertices, got.CellVertices); diff != "" {
				t.Errorf("CellVertices mismatch (-want +got):\n%s", diff)
			}
			written, err := geofiles.ReadXYZFile(filepath.Join(dir, tr.Base+".xyz"))
			if err != nil {
				t.Fatalf("ReadXYZFile(...) error = %v, want nil", err)
			}
			if diff := cmp.Diff(points, written); diff != "" {
				t.Errorf("written points mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
