// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package mesh

import (
	"context"
	"fmt"
	"slices"

	"github.com/2dChan/s2floes/geofiles"
	"github.com/2dChan/s2floes/selector"
	"github.com/paulmach/orb"
)

// Points returns every polygon vertex tagged with the index of its polygon.
func (m *Mesh) Points() []geofiles.LonLatIndex {
	var out []geofiles.LonLatIndex
	for i, p := range m.Polygons {
		for _, v := range p.Vertices {
			out = append(out, geofiles.LonLatIndex{Point: v, Index: i})
		}
	}
	return out
}

// ClearLand drops every polygon without a vertex on the ocean side of coast
// and returns the number of dropped polygons. On error m is unchanged.
func (m *Mesh) ClearLand(ctx context.Context, sel selector.Selector, coast selector.Coastline) (int, error) {
	coast.Side = selector.Ocean
	wet, err := sel.SelectNear(ctx, m.Points(), coast, 0)
	if err != nil {
		return 0, fmt.Errorf("mesh: clear land: %w", err)
	}
	keep := make([]bool, m.Len())
	for _, p := range wet {
		if p.Index >= 0 && p.Index < len(keep) {
			keep[p.Index] = true
		}
	}
	return m.retain(keep), nil
}

// Classify marks the polygons that have vertices within bufferKm of the
// shoreline on both the ocean and the land side as StateStatic and every
// other polygon as StateFree. It returns the static polygon indices in
// increasing order. On error m is unchanged.
func (m *Mesh) Classify(ctx context.Context, sel selector.Selector, coast selector.Coastline, bufferKm float64) ([]int, error) {
	points := m.Points()

	coast.Side = selector.Ocean
	wet, err := sel.SelectNear(ctx, points, coast, bufferKm)
	if err != nil {
		return nil, fmt.Errorf("mesh: classify %v: %w", coast.Side, err)
	}
	coast.Side = selector.Land
	dry, err := sel.SelectNear(ctx, points, coast, bufferKm)
	if err != nil {
		return nil, fmt.Errorf("mesh: classify %v: %w", coast.Side, err)
	}

	dryIdx := selector.Indices(dry)
	var static []int
	for i := range selector.Indices(wet) {
		if _, ok := dryIdx[i]; ok && i >= 0 && i < m.Len() {
			static = append(static, i)
		}
	}
	slices.Sort(static)

	m.States = make([]State, m.Len())
	for i := range m.States {
		m.States[i] = StateFree
	}
	for _, i := range static {
		m.States[i] = StateStatic
	}
	return static, nil
}

// MarkStatic marks as StateStatic the first polygon containing each of
// points and returns the number of newly marked polygons.
func (m *Mesh) MarkStatic(points []orb.Point) int {
	m.ensureStates()
	marked := 0
	for _, pt := range points {
		for i, p := range m.Polygons {
			if !p.ContainsGeo(pt) {
				continue
			}
			if m.States[i] != StateStatic {
				m.States[i] = StateStatic
				marked++
			}
			break
		}
	}
	return marked
}
