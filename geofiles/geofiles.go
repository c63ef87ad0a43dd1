// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package geofiles reads and writes the whitespace separated point tables
// exchanged with external tools:
//
//	.ll   lon lat
//	.lli  lon lat index
//	.xyz  x y z
//
// Blank lines and GMT header lines starting with '#' or '>' are skipped.
package geofiles

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/golang/geo/r3"
	"github.com/paulmach/orb"
)

// ErrMalformed is returned for a line that cannot be parsed.
var ErrMalformed = errors.New("geofiles: malformed line")

// LonLatIndex is a geographic point tagged with the index of its owner.
type LonLatIndex struct {
	Point orb.Point
	Index int
}

// ReadLL reads a .ll table.
func ReadLL(r io.Reader) ([]orb.Point, error) {
	var out []orb.Point
	err := scanFloats(r, 2, func(f []float64) error {
		out = append(out, orb.Point{f[0], f[1]})
		return nil
	})
	return out, err
}

// WriteLL writes a .ll table.
func WriteLL(w io.Writer, points []orb.Point) error {
	bw := bufio.NewWriter(w)
	for _, p := range points {
		writeFloats(bw, p[0], p[1])
	}
	return bw.Flush()
}

// ReadLLI reads a .lli table. The index column may be written as a float by
// the producing tool; it must still hold an integer value.
func ReadLLI(r io.Reader) ([]LonLatIndex, error) {
	var out []LonLatIndex
	err := scanFloats(r, 3, func(f []float64) error {
		idx := f[2]
		if idx != math.Trunc(idx) || math.Abs(idx) > math.MaxInt32 {
			return fmt.Errorf("index %v is not an integer", idx)
		}
		out = append(out, LonLatIndex{Point: orb.Point{f[0], f[1]}, Index: int(idx)})
		return nil
	})
	return out, err
}

// WriteLLI writes a .lli table.
func WriteLLI(w io.Writer, points []LonLatIndex) error {
	bw := bufio.NewWriter(w)
	for _, p := range points {
		bw.WriteString(formatFloat(p.Point[0]))
		bw.WriteByte('\t')
		bw.WriteString(formatFloat(p.Point[1]))
		bw.WriteByte('\t')
		bw.WriteString(strconv.Itoa(p.Index))
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// ReadXYZ reads a .xyz table.
func ReadXYZ(r io.Reader) ([]r3.Vector, error) {
	var out []r3.Vector
	err := scanFloats(r, 3, func(f []float64) error {
		out = append(out, r3.Vector{X: f[0], Y: f[1], Z: f[2]})
		return nil
	})
	return out, err
}

// WriteXYZ writes a .xyz table.
func WriteXYZ(w io.Writer, points []r3.Vector) error {
	bw := bufio.NewWriter(w)
	for _, p := range points {
		writeFloats(bw, p.X, p.Y, p.Z)
	}
	return bw.Flush()
}

// ReadLLFile reads the .ll table at path.
func ReadLLFile(path string) ([]orb.Point, error) {
	return readFile(path, ReadLL)
}

// WriteLLFile writes points to the .ll table at path.
func WriteLLFile(path string, points []orb.Point) error {
	return writeFile(path, func(w io.Writer) error { return WriteLL(w, points) })
}

// ReadLLIFile reads the .lli table at path.
func ReadLLIFile(path string) ([]LonLatIndex, error) {
	return readFile(path, ReadLLI)
}

// WriteLLIFile writes points to the .lli table at path.
func WriteLLIFile(path string, points []LonLatIndex) error {
	return writeFile(path, func(w io.Writer) error { return WriteLLI(w, points) })
}

// ReadXYZFile reads the .xyz table at path.
func ReadXYZFile(path string) ([]r3.Vector, error) {
	return readFile(path, ReadXYZ)
}

// WriteXYZFile writes points to the .xyz table at path.
func WriteXYZFile(path string, points []r3.Vector) error {
	return writeFile(path, func(w io.Writer) error { return WriteXYZ(w, points) })
}

// Fields returns the fields of every data line of r, skipping blank and
// header lines. fn receives the 1-based line number.
func Fields(r io.Reader, fn func(line int, fields []string) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || text[0] == '#' || text[0] == '>' {
			continue
		}
		if err := fn(line, strings.Fields(text)); err != nil {
			return err
		}
	}
	return sc.Err()
}

func scanFloats(r io.Reader, n int, fn func([]float64) error) error {
	buf := make([]float64, n)
	return Fields(r, func(line int, fields []string) error {
		if len(fields) < n {
			return fmt.Errorf("%w %d: %d fields, want %d", ErrMalformed, line, len(fields), n)
		}
		for i := range n {
			v, err := strconv.ParseFloat(fields[i], 64)
			if err != nil {
				return fmt.Errorf("%w %d: %v", ErrMalformed, line, err)
			}
			buf[i] = v
		}
		if err := fn(buf); err != nil {
			return fmt.Errorf("%w %d: %v", ErrMalformed, line, err)
		}
		return nil
	})
}

func writeFloats(bw *bufio.Writer, vs ...float64) {
	for i, v := range vs {
		if i > 0 {
			bw.WriteByte('\t')
		}
		bw.WriteString(formatFloat(v))
	}
	bw.WriteByte('\n')
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func readFile[T any](path string, read func(io.Reader) (T, error)) (T, error) {
	f, err := os.Open(path)
	if err != nil {
		var zero T
		return zero, err
	}
	defer f.Close()

	v, err := read(f)
	if err != nil {
		return v, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return f.Close()
}
