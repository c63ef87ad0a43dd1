// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package config holds the settings of the floe generation pipeline. Values
// come from environment variables, optionally preloaded from .env files.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Selector kinds.
const (
	SelectorNone = "none"
	SelectorGMT  = "gmt"
	SelectorMask = "mask"
)

// Config is the explicit configuration passed to every pipeline step.
type Config struct {
	// Domain in degrees. MinLon > MaxLon wraps through 360.
	MinLon, MaxLon float64
	MinLat, MaxLat float64

	// Resolution is the sampling resolution in degrees.
	Resolution float64
	// FilterResolution is the blue-noise separation in degrees.
	FilterResolution float64
	Seed             int64

	// WorkDir holds the exchange files of external tools.
	WorkDir string
	// Base is the exchange file base name.
	Base string
	// Triangulator is "hull" or a command line with {base} placeholders.
	Triangulator string
	Timeout      time.Duration
	// RelaxSteps is the number of Lloyd relaxation rounds of an in-process
	// diagram.
	RelaxSteps int

	// Selector is none, gmt or mask.
	Selector      string
	MaskPath      string
	GMTBinary     string
	GMTResolution string
	CoastLines    string
	BufferKm      float64

	// StaticPoints is an optional .ll file of points whose floes are static.
	StaticPoints string
	// Output is the base name of the .lli table of the final mesh.
	Output string
}

// Default returns the configuration used for unset variables.
func Default() Config {
	return Config{
		MinLon:           0,
		MaxLon:           360,
		MinLat:           -90,
		MaxLat:           90,
		Resolution:       2,
		FilterResolution: 2,
		Seed:             1,
		WorkDir:          ".",
		Base:             "floes",
		Triangulator:     "hull",
		Timeout:          10 * time.Minute,
		Selector:         SelectorNone,
		GMTBinary:        "gmt",
		GMTResolution:    "l",
		BufferKm:         50,
		Output:           "mesh",
	}
}

// LoadEnv loads the given .env files, ignoring missing ones, and reads the
// configuration from the environment.
func LoadEnv(files ...string) (Config, error) {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("config: %s: %w", f, err)
		}
	}
	return Load(os.Getenv)
}

// Load reads the configuration through getenv. Unset variables keep their
// Default value.
func Load(getenv func(string) string) (Config, error) {
	c := Default()
	p := parser{getenv: getenv}

	p.float("FLOE_MIN_LON", &c.MinLon)
	p.float("FLOE_MAX_LON", &c.MaxLon)
	p.float("FLOE_MIN_LAT", &c.MinLat)
	p.float("FLOE_MAX_LAT", &c.MaxLat)
	p.float("FLOE_RESOLUTION", &c.Resolution)
	c.FilterResolution = c.Resolution
	p.float("FLOE_FILTER_RESOLUTION", &c.FilterResolution)
	p.int64("FLOE_SEED", &c.Seed)

	p.string("FLOE_WORK_DIR", &c.WorkDir)
	p.string("FLOE_BASE", &c.Base)
	p.string("FLOE_TRIANGULATOR", &c.Triangulator)
	p.duration("FLOE_TIMEOUT", &c.Timeout)
	var relax int64
	p.int64("FLOE_RELAX_STEPS", &relax)
	c.RelaxSteps = int(relax)

	p.string("FLOE_SELECTOR", &c.Selector)
	p.string("FLOE_MASK", &c.MaskPath)
	p.string("FLOE_GMT", &c.GMTBinary)
	p.string("FLOE_GMT_RESOLUTION", &c.GMTResolution)
	p.string("FLOE_COAST_LINES", &c.CoastLines)
	p.float("FLOE_BUFFER_KM", &c.BufferKm)

	p.string("FLOE_STATIC_POINTS", &c.StaticPoints)
	p.string("FLOE_OUTPUT", &c.Output)

	if len(p.errs) > 0 {
		return Config{}, errors.Join(p.errs...)
	}
	c.Selector = strings.ToLower(c.Selector)
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks the configuration.
func (c Config) Validate() error {
	var errs []error
	if c.MinLat >= c.MaxLat {
		errs = append(errs, fmt.Errorf("config: latitude range [%v %v] is empty", c.MinLat, c.MaxLat))
	}
	if c.MinLat < -90 || c.MaxLat > 90 {
		errs = append(errs, fmt.Errorf("config: latitude range [%v %v] exceeds [-90 90]", c.MinLat, c.MaxLat))
	}
	if !(c.Resolution > 0) {
		errs = append(errs, fmt.Errorf("config: resolution %v must be positive", c.Resolution))
	}
	if !(c.FilterResolution > 0) {
		errs = append(errs, fmt.Errorf("config: filter resolution %v must be positive", c.FilterResolution))
	}
	if strings.TrimSpace(c.Triangulator) == "" {
		errs = append(errs, errors.New("config: triangulator is empty"))
	}
	switch c.Selector {
	case SelectorNone:
	case SelectorGMT:
		if c.BufferKm > 0 && c.CoastLines == "" {
			errs = append(errs, errors.New("config: gmt selector with a buffer needs FLOE_COAST_LINES"))
		}
	case SelectorMask:
		if c.MaskPath == "" {
			errs = append(errs, errors.New("config: mask selector needs FLOE_MASK"))
		}
	default:
		errs = append(errs, fmt.Errorf("config: unknown selector %q", c.Selector))
	}
	if c.RelaxSteps < 0 {
		errs = append(errs, fmt.Errorf("config: relax steps %d is negative", c.RelaxSteps))
	}
	if c.BufferKm < 0 {
		errs = append(errs, fmt.Errorf("config: buffer %v km is negative", c.BufferKm))
	}
	return errors.Join(errs...)
}

type parser struct {
	getenv func(string) string
	errs   []error
}

func (p *parser) string(key string, dst *string) {
	if v := strings.TrimSpace(p.getenv(key)); v != "" {
		*dst = v
	}
}

func (p *parser) float(key string, dst *float64) {
	v := strings.TrimSpace(p.getenv(key))
	if v == "" {
		return
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("config: %s: %w", key, err))
		return
	}
	*dst = f
}

func (p *parser) int64(key string, dst *int64) {
	v := strings.TrimSpace(p.getenv(key))
	if v == "" {
		return
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("config: %s: %w", key, err))
		return
	}
	*dst = n
}

func (p *parser) duration(key string, dst *time.Duration) {
	v := strings.TrimSpace(p.getenv(key))
	if v == "" {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("config: %s: %w", key, err))
		return
	}
	*dst = d
}
