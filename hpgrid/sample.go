// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package hpgrid

import (
	"math"
	"math/rand"

	"github.com/2dChan/s2floes/geocoords"
	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
)

// Sample returns exactly d.PointCount(psi) points drawn uniformly by solid
// angle over the domain. The azimuth is uniform over the phi interval and the
// polar angle is acos(2V-1) with V uniform between (1+cos ThetaMax)/2 and
// (1+cos ThetaMin)/2. The band layout of PointCount only sizes the sample;
// points are not placed on it.
func Sample(d Domain, psi s1.Angle, setters ...SampleOption) ([]r3.Vector, error) {
	opts := SampleOptions{}
	for _, set := range setters {
		if err := set(&opts); err != nil {
			return nil, err
		}
	}
	if opts.Rand == nil {
		//nolint:gosec
		opts.Rand = rand.New(rand.NewSource(rand.Int63()))
	}

	n, err := d.PointCount(psi)
	if err != nil {
		return nil, err
	}

	v0 := 0.5 * (1 + math.Cos(d.thetaMax.Radians()))
	v1 := 0.5 * (1 + math.Cos(d.thetaMin.Radians()))

	points := make([]r3.Vector, n)
	for i := range n {
		phi := d.phiMin + s1.Angle(opts.Rand.Float64())*d.dPhi
		v := v0 + opts.Rand.Float64()*(v1-v0)
		theta := s1.Angle(math.Acos(math.Max(-1, math.Min(1, 2*v-1))))
		points[i] = geocoords.SphericalToXYZ(theta, phi)
	}
	return points, nil
}
