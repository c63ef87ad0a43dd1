// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package hpgrid

import (
	"errors"
	"math/rand"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
)

// SampleOptions configures Sample.
type SampleOptions struct {
	Rand *rand.Rand
}

// SampleOption is a functional option for Sample.
type SampleOption func(*SampleOptions) error

// WithSeed makes Sample draw from a source seeded with seed.
func WithSeed(seed int64) SampleOption {
	return func(o *SampleOptions) error {
		//nolint:gosec
		o.Rand = rand.New(rand.NewSource(seed))
		return nil
	}
}

// WithRand makes Sample draw from r. r is advanced by the call.
func WithRand(r *rand.Rand) SampleOption {
	return func(o *SampleOptions) error {
		if r == nil {
			return errors.New("WithRand: rand must be non-nil")
		}
		o.Rand = r
		return nil
	}
}

// DensityFunc returns the minimum separation required around p.
type DensityFunc func(p r3.Vector) s1.Angle

// FilterOptions configures Filter.
type FilterOptions struct {
	Density DensityFunc
}

// FilterOption is a functional option for Filter.
type FilterOption func(*FilterOptions) error

// WithDensity replaces the constant separation passed to Filter with a
// separation that depends on the candidate point. It lets one pass refine the
// mesh in a region of interest.
func WithDensity(f DensityFunc) FilterOption {
	return func(o *FilterOptions) error {
		if f == nil {
			return errors.New("WithDensity: density func must be non-nil")
		}
		o.Density = f
		return nil
	}
}
