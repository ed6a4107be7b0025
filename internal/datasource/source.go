package datasource

import (
	"context"
	"errors"
	"fmt"

	"github.com/UnknownOlympus/geosketch/internal/models"
)

// NoLimit asks a Source to return every valid record it has.
const NoLimit = -1

// Source is an interface that defines a method for loading coordinates.
// The Load method takes a context and a record limit as input,
// and returns the loaded points in source order and an error if any occurs.
type Source interface {
	Load(ctx context.Context, limit int) ([]models.GeoPoint, error)
}

// Common errors for data sources.
var (
	ErrInvalidLimit        = errors.New("limit must be -1 or positive")
	ErrArchiveNotFound     = errors.New("archive not found")
	ErrArchiveEmpty        = errors.New("no entries found in archive")
	ErrNoValidRecords      = errors.New("no valid geolocation records found")
	ErrShortRecord         = errors.New("record has too few fields")
	ErrNonFiniteCoordinate = errors.New("coordinate is not a finite number")
)

// ValidateLimit checks that limit is NoLimit or a positive count.
func ValidateLimit(limit int) error {
	if limit != NoLimit && limit <= 0 {
		return fmt.Errorf("%w, got %d", ErrInvalidLimit, limit)
	}

	return nil
}
