// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package hpgrid

import (
	"fmt"
	"math"
	"sort"

	"github.com/2dChan/s2floes/geocoords"
	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
)

// Filter returns the subset of points in which no two points are closer than
// psi. points is not modified.
//
// Points are visited in order of increasing x (ties keep input order) and the
// first one is always kept. A candidate is compared with the kept points from
// the most recent backwards until their x gap reaches the chord of psi; it is
// rejected as soon as its dot product with one of them exceeds cos(psi). The
// result follows the sweep order, so it depends on that order and is not a
// maximal independent set.
func Filter(points []r3.Vector, psi s1.Angle, setters ...FilterOption) ([]r3.Vector, error) {
	opts := FilterOptions{}
	for _, set := range setters {
		if err := set(&opts); err != nil {
			return nil, err
		}
	}
	if opts.Density == nil {
		if !(psi > 0) {
			return nil, fmt.Errorf("%w: psi = %v", ErrInvalidResolution, psi.Radians())
		}
		opts.Density = func(r3.Vector) s1.Angle { return psi }
	}
	if len(points) == 0 {
		return nil, nil
	}

	sorted := make([]r3.Vector, len(points))
	copy(sorted, points)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].X < sorted[j].X })

	kept := make([]r3.Vector, 1, len(sorted))
	kept[0] = sorted[0]
	for _, m := range sorted[1:] {
		d := opts.Density(m)
		if !(d > 0) {
			return nil, fmt.Errorf("%w: density %v at %v", ErrInvalidResolution, d.Radians(), m)
		}
		if isolated(m, kept, math.Cos(d.Radians()), geocoords.ChordLength(d)) {
			kept = append(kept, m)
		}
	}
	return kept, nil
}

func isolated(m r3.Vector, kept []r3.Vector, cosPsi, chord float64) bool {
	for k := len(kept) - 1; k >= 0; k-- {
		if m.X-kept[k].X >= chord {
			return true
		}
		if m.Dot(kept[k]) > cosPsi {
			return false
		}
	}
	return true
}
