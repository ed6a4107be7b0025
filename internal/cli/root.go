// Package cli provides the geosketch root command.
//
//	geosketch                      # 120x120 grid (or GEOSKETCH_WIDTH/HEIGHT)
//	geosketch <height> <width>     # explicit grid size, height first
//	geosketch 40 80 --limit 5000 --frame
//	geosketch --source postgres -i # interactive viewer over a database table
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/UnknownOlympus/geosketch/internal/config"
	"github.com/UnknownOlympus/geosketch/internal/datasource"
	"github.com/UnknownOlympus/geosketch/internal/metrics"
	"github.com/UnknownOlympus/geosketch/internal/plotter"
	"github.com/UnknownOlympus/geosketch/internal/repository"
	"github.com/UnknownOlympus/geosketch/internal/service"
	"github.com/UnknownOlympus/geosketch/internal/viewer"
)

const banner = "ASCII Sketcher\n================================\n"

// Common errors for command line handling.
var (
	ErrInvalidArguments = errors.New("invalid arguments: please provide two integers for height and width")
	ErrArgumentCount    = errors.New("expected no arguments or exactly two (height width)")
)

type flags struct {
	source      string
	archive     string
	limit       int
	bounds      string
	frame       bool
	interactive bool
}

// NewRootCommand builds the command that loads points and prints the sketch.
// Flag defaults come from cfg.
func NewRootCommand(cfg *config.Config, logger *slog.Logger, appMetrics *metrics.Metrics) *cobra.Command {
	opts := flags{
		source:  cfg.Source,
		archive: cfg.ArchivePath,
		limit:   cfg.Limit,
		bounds:  cfg.Bounds,
		frame:   cfg.Frame,
	}

	cmd := &cobra.Command{
		Use:   "geosketch [height width]",
		Short: "Render geographic coordinates as an ASCII grid",
		Long: `geosketch loads latitude/longitude pairs from a zipped CSV file
(or a PostgreSQL table) and prints them as a grid of '*' characters,
scaled to the bounding box of the data. Higher latitudes are drawn
nearer the top.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cmd.OutOrStdout(), cfg, logger, appMetrics, opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.source, "source", opts.source, "data source type: local or postgres")
	cmd.Flags().StringVar(&opts.archive, "archive", opts.archive, "zipped CSV file read by the local source")
	cmd.Flags().IntVar(&opts.limit, "limit", opts.limit, "maximum number of records to load, -1 for all")
	cmd.Flags().StringVar(&opts.bounds, "bounds", opts.bounds, "bounding box policy: exact or legacy")
	cmd.Flags().BoolVar(&opts.frame, "frame", opts.frame, "draw a border around the grid")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "show the grid in a scrollable viewer")

	return cmd
}

func run(
	ctx context.Context,
	out io.Writer,
	cfg *config.Config,
	logger *slog.Logger,
	appMetrics *metrics.Metrics,
	opts flags,
	args []string,
) error {
	fmt.Fprint(out, banner)

	width, height, err := parseDimensions(args, cfg.Width, cfg.Height)
	if err != nil {
		return err
	}

	policy, err := plotter.ParseBoundsPolicy(opts.bounds)
	if err != nil {
		return err
	}

	plot, err := plotter.New(width, height, plotter.WithBoundsPolicy(policy))
	if err != nil {
		return err
	}

	if err = datasource.ValidateLimit(opts.limit); err != nil {
		return err
	}

	sourceCfg := datasource.SourceConfig{
		Type:        datasource.SourceType(opts.source),
		ArchivePath: opts.archive,
		Table:       cfg.Database.Table,
		Logger:      logger,
		Metrics:     appMetrics,
	}

	if strings.EqualFold(opts.source, string(datasource.SourceTypePostgres)) {
		pool, errDB := repository.NewDatabase(ctx, cfg.Database)
		if errDB != nil {
			return fmt.Errorf("failed to connect to database: %w", errDB)
		}
		defer pool.Close()
		sourceCfg.Repository = repository.NewRepository(pool, logger)
	}

	source, err := datasource.NewSource(sourceCfg)
	if err != nil {
		return err
	}

	logger.DebugContext(ctx, "Sketch requested",
		"source", opts.source, "width", width, "height", height, "limit", opts.limit, "bounds", policy.String())

	sketcher := service.NewSketchService(logger, source, opts.source, appMetrics, opts.limit, out)

	if !opts.interactive {
		return sketcher.Generate(ctx, plot, plotter.WriteOptions{Frame: opts.frame})
	}

	grid, err := sketcher.Sketch(ctx, plot)
	if err != nil || grid == nil {
		return err
	}
	return viewer.Run(grid)
}

// parseDimensions returns the grid width and height. Positional arguments are
// height first, then width.
func parseDimensions(args []string, width, height int) (int, int, error) {
	switch len(args) {
	case 0:
		return width, height, nil
	case 2:
		h, errH := strconv.Atoi(args[0])
		w, errW := strconv.Atoi(args[1])
		if errH != nil || errW != nil {
			return 0, 0, ErrInvalidArguments
		}
		return w, h, nil
	default:
		return 0, 0, fmt.Errorf("%w, got %d", ErrArgumentCount, len(args))
	}
}
