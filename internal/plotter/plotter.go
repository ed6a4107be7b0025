// Package plotter rasterizes geographic points onto a fixed-size character grid.
package plotter

import (
	"errors"
	"fmt"
	"math"

	"github.com/UnknownOlympus/geosketch/internal/models"
)

// Common errors for the plotter.
var (
	ErrInvalidDimensions   = errors.New("grid dimensions must be positive")
	ErrNonFiniteCoordinate = errors.New("cannot plot a non-finite coordinate")
)

// Option customizes a Plotter.
type Option func(*Plotter)

// WithBoundsPolicy sets how the bounding box is computed. Defaults to BoundsExact.
func WithBoundsPolicy(policy BoundsPolicy) Option {
	return func(p *Plotter) {
		p.policy = policy
	}
}

// Plotter maps points onto a width x height grid by linear scaling of the
// bounding box. Higher latitudes land nearer the top row.
type Plotter struct {
	width  int
	height int
	policy BoundsPolicy
}

// New creates a plotter for a width x height grid.
func New(width, height int, opts ...Option) (*Plotter, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w, got %dx%d", ErrInvalidDimensions, width, height)
	}

	p := &Plotter{width: width, height: height, policy: BoundsExact}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

func (p *Plotter) Width() int { return p.width }

func (p *Plotter) Height() int { return p.height }

func (p *Plotter) Policy() BoundsPolicy { return p.policy }

// Render rasterizes points. An empty slice yields a nil grid and a nil error:
// there is nothing to draw.
//
// An axis whose span is zero (every point shares the coordinate) gets a scale
// of zero, so all points sit at offset 0 on that axis. Points whose cell falls
// outside the grid are dropped. Several points in one cell mark it once.
func (p *Plotter) Render(points []models.GeoPoint) (*Grid, error) {
	for idx, pt := range points {
		if !pt.IsFinite() {
			return nil, fmt.Errorf("%w: point %d (lat=%v, lon=%v)", ErrNonFiniteCoordinate, idx, pt.Latitude, pt.Longitude)
		}
	}

	bbox, ok := ComputeBounds(points, p.policy)
	if !ok {
		return nil, nil
	}

	grid := newGrid(p.width, p.height)
	grid.Bounds = bbox
	grid.Points = len(points)

	latScale := axisScale(p.height, bbox.MinLat, bbox.MaxLat)
	lonScale := axisScale(p.width, bbox.MinLon, bbox.MaxLon)

	for _, pt := range points {
		x, okX := cellIndex((pt.Longitude-bbox.MinLon)*lonScale, p.width)
		y, okY := cellIndex((bbox.MaxLat-pt.Latitude)*latScale, p.height)
		if okX && okY {
			grid.set(x, y)
		}
	}

	return grid, nil
}

// axisScale returns cells per degree along one axis, or 0 when the span is
// not positive.
func axisScale(cells int, lo, hi float64) float64 {
	span := hi - lo
	if !(span > 0) || math.IsInf(span, 0) {
		return 0
	}
	return float64(cells-1) / span
}

// cellIndex floors offset and reports whether it falls in [0, cells).
func cellIndex(offset float64, cells int) (int, bool) {
	idx := math.Floor(offset)
	if !(idx >= 0 && idx < float64(cells)) {
		return 0, false
	}
	return int(idx), true
}
