package datasource

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/UnknownOlympus/geosketch/internal/metrics"
	"github.com/UnknownOlympus/geosketch/internal/models"
	"github.com/UnknownOlympus/geosketch/internal/repository"
)

// PostgresSource implements the Source interface by reading a latitude/longitude table.
type PostgresSource struct {
	repo    repository.Interface // Repository used to query the table
	table   string               // Table holding the coordinates
	log     *slog.Logger         // Logger for logging operations
	metrics *metrics.Metrics     // Metrics for loaded and skipped rows
}

// NewPostgresSource creates a source reading coordinates from table through repo.
func NewPostgresSource(
	repo repository.Interface,
	table string,
	log *slog.Logger,
	metrics *metrics.Metrics,
) *PostgresSource {
	return &PostgresSource{
		repo:    repo,
		table:   table,
		log:     log,
		metrics: metrics,
	}
}

// Load fetches up to limit points. Rows holding NaN or infinite values are skipped
// with a warning, so fewer than limit points may be returned even when the table
// has more valid rows.
func (s *PostgresSource) Load(ctx context.Context, limit int) ([]models.GeoPoint, error) {
	if err := ValidateLimit(limit); err != nil {
		return nil, err
	}

	startTime := time.Now()
	rows, err := s.repo.FetchCoordinates(ctx, s.table, limit)
	s.metrics.LoadSeconds.WithLabelValues(metrics.SourceLabelPG).Observe(time.Since(startTime).Seconds())
	if err != nil {
		return nil, fmt.Errorf("failed to load coordinates from postgres: %w", err)
	}

	points := make([]models.GeoPoint, 0, len(rows))
	for idx, point := range rows {
		if !point.IsFinite() {
			s.metrics.RowsSkipped.WithLabelValues(metrics.ReasonNonFinite).Inc()
			s.log.WarnContext(ctx, "Skipping invalid row",
				"row", idx+1,
				"reason", metrics.ReasonNonFinite,
				"error", ErrNonFiniteCoordinate)
			continue
		}
		points = append(points, point)
	}

	if len(points) == 0 {
		return nil, ErrNoValidRecords
	}

	s.metrics.RecordsLoaded.WithLabelValues(metrics.SourceLabelPG).Add(float64(len(points)))
	s.log.InfoContext(ctx, "Successfully loaded geolocation records", "count", len(points), "table", s.table)

	return points, nil
}
