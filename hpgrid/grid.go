// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package hpgrid

import (
	"math"

	"github.com/2dChan/s2floes/geocoords"
	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
)

// Angular holds the spherical coordinates of a grid point.
type Angular struct {
	Phi   s1.Angle
	Theta s1.Angle
}

// Grid owns the point set of one domain. Points and Angular are index
// aligned.
type Grid struct {
	Domain  Domain
	Points  []r3.Vector
	Angular []Angular
}

// NewGrid returns an empty grid over d.
func NewGrid(d Domain) *Grid {
	return &Grid{Domain: d}
}

// Len returns the number of points in the grid.
func (g *Grid) Len() int {
	return len(g.Points)
}

// Generate replaces the grid points with a fresh Sample of the domain.
func (g *Grid) Generate(psi s1.Angle, setters ...SampleOption) error {
	points, err := Sample(g.Domain, psi, setters...)
	if err != nil {
		return err
	}
	g.set(points)
	return nil
}

// Append adds points to the grid.
func (g *Grid) Append(points ...r3.Vector) {
	for _, p := range points {
		g.Points = append(g.Points, p)
		g.Angular = append(g.Angular, angularOf(p))
	}
}

// Filter replaces the grid points with Filter(g.Points, psi).
func (g *Grid) Filter(psi s1.Angle, setters ...FilterOption) error {
	points, err := Filter(g.Points, psi, setters...)
	if err != nil {
		return err
	}
	g.set(points)
	return nil
}

// Clear removes all points.
func (g *Grid) Clear() {
	g.Points = nil
	g.Angular = nil
}

func (g *Grid) set(points []r3.Vector) {
	g.Points = points
	g.Angular = make([]Angular, len(points))
	for i, p := range points {
		g.Angular[i] = angularOf(p)
	}
}

func angularOf(p r3.Vector) Angular {
	theta, phi := geocoords.XYZToSpherical(p)
	if phi < 0 {
		phi += 2 * math.Pi
	}
	return Angular{Phi: phi, Theta: theta}
}
