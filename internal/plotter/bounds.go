package plotter

import (
	"fmt"
	"strings"

	"github.com/UnknownOlympus/geosketch/internal/models"
)

// BoundsPolicy selects how the bounding box of a point set is computed.
type BoundsPolicy int

const (
	// BoundsExact seeds the box from the first point and widens it over the rest.
	BoundsExact BoundsPolicy = iota
	// BoundsLegacy starts from 0/1 sentinels and also overwrites a bound while it
	// still equals its sentinel. Data containing exactly 0 or 1 can therefore
	// produce a box that does not cover every point.
	BoundsLegacy
)

// ParseBoundsPolicy maps "exact" and "legacy" (case-insensitive) to a policy.
func ParseBoundsPolicy(name string) (BoundsPolicy, error) {
	switch strings.ToLower(name) {
	case "exact", "":
		return BoundsExact, nil
	case "legacy":
		return BoundsLegacy, nil
	default:
		return BoundsExact, fmt.Errorf("unsupported bounds policy: %s", name)
	}
}

func (p BoundsPolicy) String() string {
	if p == BoundsLegacy {
		return "legacy"
	}
	return "exact"
}

// BBox is the latitude/longitude rectangle a grid is scaled to.
type BBox struct {
	MinLat float64
	MaxLat float64
	MinLon float64
	MaxLon float64
}

func (b BBox) String() string {
	return fmt.Sprintf("Lat %.2f to %.2f, Lon %.2f to %.2f", b.MinLat, b.MaxLat, b.MinLon, b.MaxLon)
}

// ComputeBounds returns the bounding box of points under the given policy.
// The second result is false when points is empty.
func ComputeBounds(points []models.GeoPoint, policy BoundsPolicy) (BBox, bool) {
	if len(points) == 0 {
		return BBox{}, false
	}
	if policy == BoundsLegacy {
		return legacyBounds(points), true
	}
	return exactBounds(points), true
}

func exactBounds(points []models.GeoPoint) BBox {
	first := points[0]
	bbox := BBox{MinLat: first.Latitude, MaxLat: first.Latitude, MinLon: first.Longitude, MaxLon: first.Longitude}
	for _, pt := range points[1:] {
		if pt.Latitude < bbox.MinLat {
			bbox.MinLat = pt.Latitude
		}
		if pt.Latitude > bbox.MaxLat {
			bbox.MaxLat = pt.Latitude
		}
		if pt.Longitude < bbox.MinLon {
			bbox.MinLon = pt.Longitude
		}
		if pt.Longitude > bbox.MaxLon {
			bbox.MaxLon = pt.Longitude
		}
	}
	return bbox
}

func legacyBounds(points []models.GeoPoint) BBox {
	bbox := BBox{MinLat: 0, MaxLat: 1, MinLon: 0, MaxLon: 1}
	for _, pt := range points {
		if pt.Latitude < bbox.MinLat || bbox.MinLat == 0 {
			bbox.MinLat = pt.Latitude
		}
		if pt.Latitude > bbox.MaxLat || bbox.MaxLat == 1 {
			bbox.MaxLat = pt.Latitude
		}
		if pt.Longitude < bbox.MinLon || bbox.MinLon == 0 {
			bbox.MinLon = pt.Longitude
		}
		if pt.Longitude > bbox.MaxLon || bbox.MaxLon == 1 {
			bbox.MaxLon = pt.Longitude
		}
	}
	return bbox
}
