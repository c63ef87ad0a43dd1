// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package geocoords converts between geographic (lon/lat degrees), spherical
// (theta/phi) and Cartesian unit-sphere coordinates, and builds the rotation
// quaternions that move a floe between its local frame and the global one.
package geocoords

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
	"github.com/paulmach/orb"
	"gonum.org/v1/gonum/num/quat"
)

// North is the reference pole of every local frame.
var North = r3.Vector{X: 0, Y: 0, Z: 1}

// GeoToXYZ returns the unit vector of a geographic point given as
// orb.Point{lon, lat} in degrees.
func GeoToXYZ(p orb.Point) r3.Vector {
	theta := s1.Angle(90-p.Lat()) * s1.Degree
	phi := s1.Angle(p.Lon()) * s1.Degree
	return SphericalToXYZ(theta, phi)
}

// SphericalToXYZ returns the unit vector for polar angle theta and azimuth phi.
func SphericalToXYZ(theta, phi s1.Angle) r3.Vector {
	st, ct := math.Sincos(theta.Radians())
	sp, cp := math.Sincos(phi.Radians())
	return r3.Vector{X: st * cp, Y: st * sp, Z: ct}
}

// XYZToSpherical returns the polar angle and the azimuth of v. The azimuth
// lies in (-π, π]. v does not have to be normalized.
func XYZToSpherical(v r3.Vector) (theta, phi s1.Angle) {
	r := v.Norm()
	if r == 0 {
		return 0, 0
	}
	z := math.Max(-1, math.Min(1, v.Z/r))
	return s1.Angle(math.Acos(z)), s1.Angle(math.Atan2(v.Y, v.X))
}

// XYZToGeo returns the geographic point of v with the longitude in [0, 360)
// and the latitude in [-90, 90].
func XYZToGeo(v r3.Vector) orb.Point {
	theta, phi := XYZToSpherical(v)
	return orb.Point{NormLon(phi.Degrees()), NormLat(90 - theta.Degrees())}
}

// NormLon reduces a longitude in degrees to [0, 360).
func NormLon(lon float64) float64 {
	lon = math.Mod(lon, 360)
	if lon < 0 {
		lon += 360
	}
	// -tiny + 360 rounds to 360.
	if lon >= 360 {
		lon -= 360
	}
	return lon
}

// NormDelta reduces an angle difference in degrees to (-180, 180].
func NormDelta(d float64) float64 {
	d = math.Mod(d, 360)
	if d <= -180 {
		d += 360
	} else if d > 180 {
		d -= 360
	}
	return d
}

// NormLat reduces a latitude in degrees to [-90, 90]. Values past a pole are
// reflected back across it.
func NormLat(lat float64) float64 {
	lat = NormDelta(lat)
	switch {
	case lat > 90:
		lat = 180 - lat
	case lat < -90:
		lat = -180 - lat
	}
	return lat
}

// ChordLength returns the straight-line distance between two unit vectors
// separated by the arc psi.
func ChordLength(psi s1.Angle) float64 {
	if psi >= s1.Angle(math.Pi) {
		return 2
	}
	return 2 * math.Sin(psi.Radians()/2)
}

// Quat0 returns the shortest rotation that takes North to the direction of v.
// The rotation is about normalize(v × North) by -acos(v_z/|v|). When v lies
// on the pole axis the axis is undefined: North itself (and the zero vector)
// give the identity and the south pole a half turn about the x axis.
func Quat0(v r3.Vector) quat.Number {
	r := v.Norm()
	if r == 0 {
		return quat.Number{Real: 1}
	}
	axis := v.Cross(North)
	if axis.Norm() == 0 {
		if v.Z > 0 {
			return quat.Number{Real: 1}
		}
		return quat.Number{Imag: 1}
	}
	z := math.Max(-1, math.Min(1, v.Z/r))
	return AxisAngle(axis, -math.Acos(z))
}

// AxisAngle returns the unit quaternion rotating by angle radians about axis.
func AxisAngle(axis r3.Vector, angle float64) quat.Number {
	a := axis.Normalize()
	s, c := math.Sincos(angle / 2)
	return quat.Number{Real: c, Imag: s * a.X, Jmag: s * a.Y, Kmag: s * a.Z}
}

// Rotate applies the rotation q to v as q·v·q*.
func Rotate(q quat.Number, v r3.Vector) r3.Vector {
	p := quat.Mul(quat.Mul(q, quat.Number{Imag: v.X, Jmag: v.Y, Kmag: v.Z}), quat.Conj(q))
	return r3.Vector{X: p.Imag, Y: p.Jmag, Z: p.Kmag}
}

// RotateInverse applies the inverse of the unit rotation q to v, moving a
// global vector into the local frame of q.
func RotateInverse(q quat.Number, v r3.Vector) r3.Vector {
	return Rotate(quat.Conj(q), v)
}

// QuatToGeo returns the geographic position of the local pole of q, i.e. the
// centre of a floe oriented by q.
func QuatToGeo(q quat.Number) orb.Point {
	return XYZToGeo(Rotate(q, North))
}
