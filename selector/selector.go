// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package selector decides on which side of a coastline points lie.
//
// A Selector returns the points of a batch that fall on the requested side
// of the coastline, optionally only those within a buffer distance of the
// shoreline. Points keep their Index, so callers can map the result back to
// the owners of the points.
package selector

import (
	"context"
	"fmt"

	"github.com/2dChan/s2floes/geofiles"
)

// Side is a side of a coastline.
type Side int

const (
	Ocean Side = iota
	Land
)

func (s Side) String() string {
	switch s {
	case Ocean:
		return "ocean"
	case Land:
		return "land"
	}
	return fmt.Sprintf("Side(%d)", int(s))
}

// Coastline describes the reference coastline of a query.
type Coastline struct {
	Side Side
	// Resolution is the GMT coastline resolution: c, l, i, h or f.
	Resolution string
	// Lines is a file with the shoreline as line segments, used for buffer
	// queries by GMT.
	Lines string
}

// Selector selects points relative to a coastline.
type Selector interface {
	// SelectNear returns the points on coast.Side. If bufferKm is positive,
	// only points within bufferKm of the shoreline are returned.
	SelectNear(ctx context.Context, points []geofiles.LonLatIndex, coast Coastline, bufferKm float64) ([]geofiles.LonLatIndex, error)
}

// Indices returns the set of distinct indices of points.
func Indices(points []geofiles.LonLatIndex) map[int]struct{} {
	set := make(map[int]struct{}, len(points))
	for _, p := range points {
		set[p.Index] = struct{}{}
	}
	return set
}
