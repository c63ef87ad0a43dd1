// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package polygon computes the physical parameters of a floe from its
// geographic outline: area, centroid, moment of inertia per unit mass,
// orientation quaternion and vertices in the local frame.
//
// Floes are assumed to be small compared to the sphere, so every quantity is
// computed on the flat fan of triangles spanned by the chords between the
// vertices. Outlines comparable with the sphere itself get no guarantee.
package polygon

import (
	"errors"
	"fmt"
	"math"

	"github.com/2dChan/s2floes/geocoords"
	"github.com/golang/geo/r3"
	"github.com/paulmach/orb"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/num/quat"
)

// ErrDegenerate is returned for outlines with fewer than 3 distinct vertices
// or without area.
var ErrDegenerate = errors.New("polygon: degenerate polygon")

// minArea is the area below which an outline is treated as collapsed. A 1 m
// floe on the unit Earth sphere is still above 1e-14.
const minArea = 1e-20

// Polygon is a floe outline with its derived parameters. All Cartesian
// quantities live on the unit sphere.
type Polygon struct {
	// Vertices is the closed outline as {lon, lat} in degrees. The last vertex
	// connects to the first one.
	Vertices []orb.Point
	// XYZ holds Vertices as Cartesian vectors.
	XYZ []r3.Vector
	// Local holds XYZ rotated into the local frame of Orientation. The local
	// pole is the centroid, so z is close to 1 and x, y span the tangent plane.
	Local []r3.Vector

	Area float64
	// Moment is the polar moment of inertia about the centroid per unit mass.
	Moment float64
	// Centroid is the unit vector through the centre of mass.
	Centroid r3.Vector
	// Orientation rotates the local frame into the global one.
	Orientation quat.Number

	// centre of mass of the flat fan, inside the sphere.
	mass r3.Vector
}

// New returns the polygon of the given outline.
func New(vertices []orb.Point) (*Polygon, error) {
	p := &Polygon{}
	if err := p.Update(vertices); err != nil {
		return nil, err
	}
	return p, nil
}

// Update replaces the outline and recomputes every parameter. On error p is
// left unchanged.
func (p *Polygon) Update(vertices []orb.Point) error {
	if n := distinct(vertices); n < 3 {
		return fmt.Errorf("%w: %d distinct vertices", ErrDegenerate, n)
	}

	n := len(vertices)
	xyz := make([]r3.Vector, n)
	var apex r3.Vector
	for i, v := range vertices {
		xyz[i] = geocoords.GeoToXYZ(v)
		apex = apex.Add(xyz[i])
	}
	// Vertex mean, only used as the first fan apex.
	apex = apex.Mul(1 / float64(n))

	weights := make([]float64, n)
	var c r3.Vector
	for i := range n {
		j := (i + 1) % n
		weights[i] = xyz[i].Sub(apex).Cross(xyz[j].Sub(apex)).Norm()
		c = c.Add(xyz[i].Add(xyz[j]).Add(apex).Mul(weights[i]))
	}
	total := floats.Sum(weights)
	if !(total/2 > minArea) {
		return fmt.Errorf("%w: area %v", ErrDegenerate, total/2)
	}
	c = c.Mul(1 / (3 * total))

	// Second fan from the centre of mass.
	inertia := make([]float64, n)
	for i := range n {
		j := (i + 1) % n
		a := xyz[i].Sub(c)
		b := xyz[j].Sub(c)
		w := a.Cross(b).Norm()
		inertia[i] = w * (b.Norm2() + a.Dot(b) + a.Norm2())
		weights[i] = w
	}
	moment := floats.Sum(inertia) / (6 * floats.Sum(weights))

	q := geocoords.Quat0(c)
	local := make([]r3.Vector, n)
	for i, v := range xyz {
		local[i] = geocoords.RotateInverse(q, v)
	}

	outline := make([]orb.Point, n)
	copy(outline, vertices)

	*p = Polygon{
		Vertices:    outline,
		XYZ:         xyz,
		Local:       local,
		Area:        total / 2,
		Moment:      moment,
		Centroid:    c.Normalize(),
		Orientation: q,
		mass:        c,
	}
	return nil
}

// InscribedRadius returns the smallest distance from the centre of mass to
// the line of an edge, an estimate of the largest circle that fits inside
// the polygon.
func (p *Polygon) InscribedRadius() float64 {
	r := math.Inf(1)
	n := len(p.XYZ)
	for i := range n {
		r = math.Min(r, altitude(p.mass, p.XYZ[(i+n-1)%n], p.XYZ[i]))
	}
	return r
}

// Contains reports whether the direction of pt falls inside the outline. The
// test is a winding count in the tangent plane of the local frame.
func (p *Polygon) Contains(pt r3.Vector) bool {
	l := geocoords.RotateInverse(p.Orientation, pt.Normalize())
	if l.Z <= 0 {
		return false
	}
	// Central projection onto the tangent plane z = 1.
	x, y := l.X/l.Z, l.Y/l.Z

	inside := false
	n := len(p.Local)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		xi, yi := p.Local[i].X/p.Local[i].Z, p.Local[i].Y/p.Local[i].Z
		xj, yj := p.Local[j].X/p.Local[j].Z, p.Local[j].Y/p.Local[j].Z
		if (yi > y) != (yj > y) && x < (xj-xi)*(y-yi)/(yj-yi)+xi {
			inside = !inside
		}
	}
	return inside
}

// ContainsGeo is Contains for a geographic point.
func (p *Polygon) ContainsGeo(pt orb.Point) bool {
	return p.Contains(geocoords.GeoToXYZ(pt))
}

// altitude returns the distance from c to the line through a and b, or the
// distance to a when the edge has no length.
func altitude(c, a, b r3.Vector) float64 {
	d := b.Sub(a).Norm()
	if d == 0 {
		return c.Sub(a).Norm()
	}
	return b.Sub(a).Cross(c.Sub(a)).Norm() / d
}

// distinct counts the distinct vertices. Longitude is meaningless at the
// poles.
func distinct(vertices []orb.Point) int {
	seen := make(map[orb.Point]struct{}, len(vertices))
	for _, v := range vertices {
		lon := geocoords.NormLon(v.Lon())
		if math.Abs(v.Lat()) == 90 {
			lon = 0
		}
		seen[orb.Point{lon, v.Lat()}] = struct{}{}
	}
	return len(seen)
}
