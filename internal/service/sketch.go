package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/UnknownOlympus/geosketch/internal/datasource"
	"github.com/UnknownOlympus/geosketch/internal/metrics"
	"github.com/UnknownOlympus/geosketch/internal/plotter"
)

// SketchService loads coordinates from a data source and rasterizes them
// into an ASCII grid, reporting progress on out.
type SketchService struct {
	log        *slog.Logger      // Logger for logging service activities
	source     datasource.Source // Source the coordinates are loaded from
	sourceName string            // Name of the source for log records
	metrics    *metrics.Metrics  // Metrics for tracking render performance
	limit      int               // Maximum number of records to load
	out        io.Writer         // Destination of status lines and the grid
}

// NewSketchService creates a new instance of SketchService.
// It takes a logger, a data source, the source name, metrics for
// monitoring, the record limit passed to the source, and the writer
// status lines and grids are printed to.
func NewSketchService(
	log *slog.Logger,
	source datasource.Source,
	sourceName string,
	metrics *metrics.Metrics,
	limit int,
	out io.Writer,
) *SketchService {
	return &SketchService{
		log:        log,
		source:     source,
		sourceName: sourceName,
		metrics:    metrics,
		limit:      limit,
		out:        out,
	}
}

// Sketch loads the points and renders them with plot. When there is nothing
// to draw it prints a notice and returns a nil grid without an error.
func (ss *SketchService) Sketch(ctx context.Context, plot *plotter.Plotter) (*plotter.Grid, error) {
	ss.printf("Getting location data...\n")
	ss.log.DebugContext(ctx, "Loading points", "source", ss.sourceName, "limit", ss.limit)

	points, err := ss.source.Load(ctx, ss.limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load location data: %w", err)
	}
	ss.printf("Successfully loaded %d geolocation records\n", len(points))

	ss.printf("Generating ASCII art...\n")
	startTime := time.Now()
	grid, err := plot.Render(points)
	ss.metrics.RenderSeconds.Observe(time.Since(startTime).Seconds())
	if err != nil {
		return nil, fmt.Errorf("failed to render grid: %w", err)
	}

	if grid == nil {
		ss.printf("No data to plot\n")
		return nil, nil
	}

	ss.metrics.CellsOccupied.Set(float64(grid.OccupiedCells()))
	ss.log.InfoContext(ctx, "Grid rendered",
		"width", grid.Width,
		"height", grid.Height,
		"points", grid.Points,
		"occupied_cells", grid.OccupiedCells(),
		"bounds_policy", plot.Policy().String(),
	)

	return grid, nil
}

// Generate sketches the points and prints the resulting grid to the service output.
func (ss *SketchService) Generate(ctx context.Context, plot *plotter.Plotter, opts plotter.WriteOptions) error {
	grid, err := ss.Sketch(ctx, plot)
	if err != nil {
		return err
	}
	if grid == nil {
		return nil
	}

	if err = plotter.Write(ss.out, grid, opts); err != nil {
		return fmt.Errorf("failed to print grid: %w", err)
	}

	return nil
}

func (ss *SketchService) printf(format string, args ...any) {
	if _, err := fmt.Fprintf(ss.out, format, args...); err != nil {
		ss.log.Error("failed to write status line", "error", err)
	}
}
