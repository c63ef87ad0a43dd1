// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package hpgrid generates point sets on the unit sphere with a requested
// average angular resolution and thins them to blue noise. The points seed
// the Voronoi tessellation that becomes the floe mesh.
package hpgrid

import (
	"errors"
	"fmt"
	"math"

	"github.com/golang/geo/s1"
)

var (
	// ErrInvalidDomain is returned for a domain with ThetaMin >= ThetaMax.
	ErrInvalidDomain = errors.New("hpgrid: invalid domain")
	// ErrInvalidResolution is returned for a non-positive resolution.
	ErrInvalidResolution = errors.New("hpgrid: invalid resolution")
)

// Domain is a rectangle in spherical coordinates: an azimuth interval
// [PhiMin, PhiMax] and a polar interval [ThetaMin, ThetaMax]. When PhiMax is
// less than PhiMin the azimuth interval wraps through 2π.
type Domain struct {
	phiMin, phiMax     s1.Angle
	thetaMin, thetaMax s1.Angle
	dPhi, dTheta       s1.Angle
}

// WholeSphere returns the domain covering the entire sphere.
func WholeSphere() Domain {
	d, _ := NewDomain(0, 2*math.Pi, 0, math.Pi)
	return d
}

// NewDomain returns a domain from intervals in radians.
func NewDomain(phiMin, phiMax, thetaMin, thetaMax s1.Angle) (Domain, error) {
	if !(thetaMin < thetaMax) {
		return Domain{}, fmt.Errorf("%w: theta interval [%v, %v] is empty", ErrInvalidDomain,
			thetaMin.Radians(), thetaMax.Radians())
	}
	dPhi := phiMax - phiMin
	if dPhi < 0 {
		dPhi += 2 * math.Pi
	}
	return Domain{
		phiMin:   phiMin,
		phiMax:   phiMax,
		thetaMin: thetaMin,
		thetaMax: thetaMax,
		dPhi:     dPhi,
		dTheta:   thetaMax - thetaMin,
	}, nil
}

// NewDomainDegrees returns a domain from intervals given in degrees.
func NewDomainDegrees(phiMin, phiMax, thetaMin, thetaMax float64) (Domain, error) {
	return NewDomain(
		s1.Angle(phiMin)*s1.Degree, s1.Angle(phiMax)*s1.Degree,
		s1.Angle(thetaMin)*s1.Degree, s1.Angle(thetaMax)*s1.Degree,
	)
}

// NewDomainLonLat returns the domain of the geographic box
// [minLon, maxLon] x [minLat, maxLat] in degrees.
func NewDomainLonLat(minLon, maxLon, minLat, maxLat float64) (Domain, error) {
	return NewDomainDegrees(minLon, maxLon, 90-maxLat, 90-minLat)
}

func (d Domain) PhiMin() s1.Angle   { return d.phiMin }
func (d Domain) PhiMax() s1.Angle   { return d.phiMax }
func (d Domain) ThetaMin() s1.Angle { return d.thetaMin }
func (d Domain) ThetaMax() s1.Angle { return d.thetaMax }

// DPhi returns the width of the azimuth interval, wrap included.
func (d Domain) DPhi() s1.Angle { return d.dPhi }

// DTheta returns the height of the polar interval.
func (d Domain) DTheta() s1.Angle { return d.dTheta }

// PointCount returns how many uniformly spread points give the domain an
// average resolution psi. The polar range is cut into ceil(DTheta/psi) bands
// of equal height and band j at theta = j*dtheta holds
// 1 + |floor(DPhi*sin(theta)/dtheta)| points.
func (d Domain) PointCount(psi s1.Angle) (int, error) {
	if !(psi > 0) || math.IsInf(psi.Radians(), 1) {
		return 0, fmt.Errorf("%w: psi = %v", ErrInvalidResolution, psi.Radians())
	}
	nTheta := int(math.Ceil(d.dTheta.Radians() / psi.Radians()))
	dTheta := d.dTheta.Radians() / float64(nTheta)

	n := 0
	for j := range nTheta {
		theta := float64(j) * dTheta
		n += 1 + int(math.Abs(math.Floor(d.dPhi.Radians()*math.Sin(theta)/dTheta)))
	}
	return n, nil
}

// Includes reports whether o lies inside d. Wrapped azimuth intervals are
// compared by their unwrapped bounds.
func (d Domain) Includes(o Domain) bool {
	return o.phiMin >= d.phiMin && o.phiMin+o.dPhi <= d.phiMin+d.dPhi &&
		o.thetaMin >= d.thetaMin && o.thetaMax <= d.thetaMax
}
