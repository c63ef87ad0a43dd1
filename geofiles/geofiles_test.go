// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package geofiles

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/google/go-cmp/cmp"
	"github.com/paulmach/orb"
)

func TestReadLL(t *testing.T) {
	in := "# lon lat\n10\t20\n\n-5.5 89.999\n> segment\n359.25   -0.125\n"
	want := []orb.Point{{10, 20}, {-5.5, 89.999}, {359.25, -0.125}}
	got, err := ReadLL(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadLL(...) error = %v, want nil", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ReadLL(...) mismatch (-want +got):\n%s", diff)
	}
}

func TestReadLLI_FloatIndex(t *testing.T) {
	in := "1 2 3\n4 5 6.0\n"
	want := []LonLatIndex{
		{Point: orb.Point{1, 2}, Index: 3},
		{Point: orb.Point{4, 5}, Index: 6},
	}
	got, err := ReadLLI(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadLLI(...) error = %v, want nil", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ReadLLI(...) mismatch (-want +got):\n%s", diff)
	}
}

func TestRead_Malformed(t *testing.T) {
	tests := []struct {
		name string
		read func(string) error
		in   string
	}{
		{"ll short line", func(s string) error { _, err := ReadLL(strings.NewReader(s)); return err }, "1 2\n3\n"},
		{"ll not a number", func(s string) error { _, err := ReadLL(strings.NewReader(s)); return err }, "1 x\n"},
		{"lli fractional index", func(s string) error { _, err := ReadLLI(strings.NewReader(s)); return err }, "1 2 3.5\n"},
		{"xyz short line", func(s string) error { _, err := ReadXYZ(strings.NewReader(s)); return err }, "1 2\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.read(tt.in)
			if !errors.Is(err, ErrMalformed) {
				t.Errorf("read(%q) error = %v, want %v", tt.in, err, ErrMalformed)
			}
		})
	}
}

func TestLLI_RoundTrip(t *testing.T) {
	want := []LonLatIndex{
		{Point: orb.Point{0.1, -0.2}, Index: 0},
		{Point: orb.Point{359.999999999, 89.5}, Index: 41},
		{Point: orb.Point{1.0 / 3, 2.0 / 3}, Index: 7},
	}
	var buf bytes.Buffer
	if err := WriteLLI(&buf, want); err != nil {
		t.Fatalf("WriteLLI(...) error = %v, want nil", err)
	}
	got, err := ReadLLI(&buf)
	if err != nil {
		t.Fatalf("ReadLLI(...) error = %v, want nil", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ReadLLI(WriteLLI(...)) mismatch (-want +got):\n%s", diff)
	}
}

func TestFiles_RoundTrip(t *testing.T) {
	dir := t.TempDir()

	ll := []orb.Point{{1, 2}, {3, 4}}
	llPath := filepath.Join(dir, "a.ll")
	if err := WriteLLFile(llPath, ll); err != nil {
		t.Fatalf("WriteLLFile(...) error = %v, want nil", err)
	}
	gotLL, err := ReadLLFile(llPath)
	if err != nil {
		t.Fatalf("ReadLLFile(...) error = %v, want nil", err)
	}
	if diff := cmp.Diff(ll, gotLL); diff != "" {
		t.Errorf("ReadLLFile(...) mismatch (-want +got):\n%s", diff)
	}

	xyz := []r3.Vector{{X: 1, Y: 0, Z: 0}, {X: 0.6, Y: 0.8, Z: 0}, {X: 0, Y: 0, Z: -1}}
	xyzPath := filepath.Join(dir, "a.xyz")
	if err := WriteXYZFile(xyzPath, xyz); err != nil {
		t.Fatalf("WriteXYZFile(...) error = %v, want nil", err)
	}
	gotXYZ, err := ReadXYZFile(xyzPath)
	if err != nil {
		t.Fatalf("ReadXYZFile(...) error = %v, want nil", err)
	}
	if diff := cmp.Diff(xyz, gotXYZ); diff != "" {
		t.Errorf("ReadXYZFile(...) mismatch (-want +got):\n%s", diff)
	}

	lli := []LonLatIndex{{Point: orb.Point{5, 6}, Index: 2}}
	lliPath := filepath.Join(dir, "a.lli")
	if err := WriteLLIFile(lliPath, lli); err != nil {
		t.Fatalf("WriteLLIFile(...) error = %v, want nil", err)
	}
	gotLLI, err := ReadLLIFile(lliPath)
	if err != nil {
		t.Fatalf("ReadLLIFile(...) error = %v, want nil", err)
	}
	if diff := cmp.Diff(lli, gotLLI); diff != "" {
		t.Errorf("ReadLLIFile(...) mismatch (-want +got):\n%s", diff)
	}
}

func TestReadFile_Missing(t *testing.T) {
	if _, err := ReadXYZFile(filepath.Join(t.TempDir(), "missing.xyz")); err == nil {
		t.Errorf("ReadXYZFile(missing) error = nil, want non-nil")
	}
}
