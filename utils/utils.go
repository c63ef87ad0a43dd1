// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package utils provides seeded point fixtures for tests and benchmarks of the
// sampling, triangulation and mesh packages.

package utils

import (
	"math"
	"math/rand"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// GenerateRandomPoints generates a vector of random points on the S2 sphere.
// The seed parameter ensures reproducibility.
func GenerateRandomPoints(cnt int, seed int64) s2.PointVector {
	//nolint:gosec
	random := rand.New(rand.NewSource(seed))
	points := make(s2.PointVector, cnt)

	for i := range cnt {
		points[i] = s2.PointFromLatLng(s2.LatLng{
			Lat: s1.Angle(math.Asin(2*random.Float64() - 1)),
			Lng: s1.Angle((random.Float64()*2 - 1) * math.Pi),
		})
	}

	return points
}

// GenerateRandomVectors is GenerateRandomPoints as plain vectors.
func GenerateRandomVectors(cnt int, seed int64) []r3.Vector {
	return Vectors(GenerateRandomPoints(cnt, seed))
}

// GenerateCap generates cnt random points within the spherical cap of the
// given radius around center.
func GenerateCap(cnt int, center r3.Vector, radius s1.Angle, seed int64) []r3.Vector {
	//nolint:gosec
	random := rand.New(rand.NewSource(seed))
	c := center.Normalize()
	u := c.Ortho()
	w := c.Cross(u)

	minZ := math.Cos(radius.Radians())
	points := make([]r3.Vector, cnt)
	for i := range cnt {
		z := minZ + random.Float64()*(1-minZ)
		r := math.Sqrt(math.Max(0, 1-z*z))
		s, co := math.Sincos(2 * math.Pi * random.Float64())
		points[i] = c.Mul(z).Add(u.Mul(r * co)).Add(w.Mul(r * s))
	}
	return points
}

// Vectors converts points to r3 vectors.
func Vectors(points s2.PointVector) []r3.Vector {
	vs := make([]r3.Vector, len(points))
	for i, p := range points {
		vs[i] = p.Vector
	}
	return vs
}

// Points converts vectors to normalized S2 points.
func Points(vs []r3.Vector) s2.PointVector {
	points := make(s2.PointVector, len(vs))
	for i, v := range vs {
		points[i] = s2.Point{Vector: v.Normalize()}
	}
	return points
}
