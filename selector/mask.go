// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package selector

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/2dChan/s2floes/geocoords"
	"github.com/2dChan/s2floes/geofiles"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
	"github.com/paulmach/orb/simplify"
)

// Mask selects points in process against land polygons given in lon/lat
// degrees with longitudes in [-180, 180]. Distances to the shoreline are
// great-circle distances to Shore.
type Mask struct {
	Land orb.MultiPolygon
	// Shore samples the shoreline. NewMask fills it with the ring vertices.
	Shore []orb.Point
}

// NewMask returns a mask over land.
func NewMask(land orb.MultiPolygon) *Mask {
	m := &Mask{Land: land}
	m.Shore = shorePoints(land)
	return m
}

// ReadMaskGeoJSON builds a mask from the Polygon and MultiPolygon features of
// a GeoJSON feature collection.
func ReadMaskGeoJSON(data []byte) (*Mask, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("selector: %w", err)
	}
	var land orb.MultiPolygon
	for _, f := range fc.Features {
		switch g := f.Geometry.(type) {
		case orb.Polygon:
			land = append(land, g)
		case orb.MultiPolygon:
			land = append(land, g...)
		}
	}
	if len(land) == 0 {
		return nil, errors.New("selector: no polygons in feature collection")
	}
	return NewMask(land), nil
}

// LoadMaskGeoJSON reads a mask from a GeoJSON file.
func LoadMaskGeoJSON(path string) (*Mask, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ReadMaskGeoJSON(data)
}

// Simplify reduces the land outline with Douglas-Peucker at threshold degrees
// and resamples the shoreline.
func (m *Mask) Simplify(threshold float64) {
	m.Land = simplify.DouglasPeucker(threshold).MultiPolygon(m.Land)
	m.Shore = shorePoints(m.Land)
}

// Densify inserts shoreline samples so that consecutive samples along a ring
// are at most stepKm apart.
func (m *Mask) Densify(stepKm float64) {
	if stepKm <= 0 {
		return
	}
	var shore []orb.Point
	for _, poly := range m.Land {
		for _, ring := range poly {
			for i := range ring {
				a, b := ring[i], ring[(i+1)%len(ring)]
				shore = append(shore, a)
				shore = appendBetween(shore, a, b, stepKm*1000)
			}
		}
	}
	m.Shore = shore
}

// IsLand reports whether p lies on land.
func (m *Mask) IsLand(p orb.Point) bool {
	return planar.MultiPolygonContains(m.Land, wrap(p))
}

// ShoreDistance returns the great-circle distance in meters from p to the
// nearest shoreline sample, or +Inf if there is none.
func (m *Mask) ShoreDistance(p orb.Point) float64 {
	p = wrap(p)
	best := math.Inf(1)
	for _, s := range m.Shore {
		if d := geo.DistanceHaversine(p, s); d < best {
			best = d
		}
	}
	return best
}

// SelectNear implements Selector.
func (m *Mask) SelectNear(ctx context.Context, points []geofiles.LonLatIndex, coast Coastline, bufferKm float64) ([]geofiles.LonLatIndex, error) {
	var out []geofiles.LonLatIndex
	for i, p := range points {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		if (coast.Side == Land) != m.IsLand(p.Point) {
			continue
		}
		if bufferKm > 0 && !m.near(p.Point, bufferKm*1000) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (m *Mask) near(p orb.Point, meters float64) bool {
	p = wrap(p)
	b := geo.NewBoundAroundPoint(p, meters)
	for _, s := range m.Shore {
		if !b.Contains(s) && !b.Contains(orb.Point{s[0] + 360, s[1]}) && !b.Contains(orb.Point{s[0] - 360, s[1]}) {
			continue
		}
		if geo.DistanceHaversine(p, s) <= meters {
			return true
		}
	}
	return false
}

// wrap moves p to longitudes in (-180, 180].
func wrap(p orb.Point) orb.Point {
	return orb.Point{geocoords.NormDelta(p[0]), p[1]}
}

func shorePoints(land orb.MultiPolygon) []orb.Point {
	var shore []orb.Point
	for _, poly := range land {
		for _, ring := range poly {
			shore = append(shore, ring...)
		}
	}
	return shore
}

func appendBetween(dst []orb.Point, a, b orb.Point, step float64) []orb.Point {
	if geo.DistanceHaversine(a, b) <= step {
		return dst
	}
	mid := geo.Midpoint(a, b)
	dst = appendBetween(dst, a, mid, step)
	dst = append(dst, mid)
	return appendBetween(dst, mid, b, step)
}
