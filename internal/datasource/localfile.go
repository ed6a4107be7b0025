package datasource

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/UnknownOlympus/geosketch/internal/metrics"
	"github.com/UnknownOlympus/geosketch/internal/models"
	"github.com/klauspost/compress/zip"
)

// Column layout of the postcode CSV: id, postcode, latitude, longitude, ...
const (
	latitudeField  = 2
	longitudeField = 3
	minFields      = 4

	defaultCapacity = 1024
)

// LocalFileSource implements the Source interface on top of a zip archive
// holding a single CSV file with a header row.
type LocalFileSource struct {
	path    string           // Path of the zip archive
	log     *slog.Logger     // Logger for logging operations
	metrics *metrics.Metrics // Metrics for loaded and skipped rows
}

// NewLocalFileSource creates a source reading the archive at path.
func NewLocalFileSource(path string, log *slog.Logger, metrics *metrics.Metrics) *LocalFileSource {
	return &LocalFileSource{
		path:    path,
		log:     log,
		metrics: metrics,
	}
}

// Load reads up to limit points from the first file of the archive.
// Rows that cannot be parsed are skipped with a warning. It fails when the
// archive is missing, has no entries, or yields no valid rows at all.
func (s *LocalFileSource) Load(ctx context.Context, limit int) ([]models.GeoPoint, error) {
	if err := ValidateLimit(limit); err != nil {
		return nil, err
	}

	if _, err := os.Stat(s.path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrArchiveNotFound, s.path)
		}
		return nil, fmt.Errorf("failed to stat archive %s: %w", s.path, err)
	}

	startTime := time.Now()
	defer func() {
		s.metrics.LoadSeconds.WithLabelValues(metrics.SourceLabelLocal).Observe(time.Since(startTime).Seconds())
	}()

	archive, err := zip.OpenReader(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive %s: %w", s.path, err)
	}
	defer archive.Close()

	entry := firstRegularFile(archive.File)
	if entry == nil {
		return nil, fmt.Errorf("%w: %s", ErrArchiveEmpty, s.path)
	}

	s.log.DebugContext(ctx, "Reading archive entry", "archive", s.path, "entry", entry.Name)

	reader, err := entry.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open archive entry %s: %w", entry.Name, err)
	}
	defer reader.Close()

	points, err := s.readPoints(ctx, reader, limit)
	if err != nil {
		return nil, err
	}

	if len(points) == 0 {
		return nil, ErrNoValidRecords
	}

	s.metrics.RecordsLoaded.WithLabelValues(metrics.SourceLabelLocal).Add(float64(len(points)))
	s.log.InfoContext(ctx, "Successfully loaded geolocation records", "count", len(points), "archive", s.path)

	return points, nil
}

// readPoints parses CSV rows after the header until the input ends or limit is reached.
func (s *LocalFileSource) readPoints(ctx context.Context, src io.Reader, limit int) ([]models.GeoPoint, error) {
	capacity := defaultCapacity
	if limit > 0 && limit < capacity {
		capacity = limit
	}
	points := make([]models.GeoPoint, 0, capacity)

	reader := csv.NewReader(src)
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = true

	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return points, nil
		}
		var parseErr *csv.ParseError
		if !errors.As(err, &parseErr) {
			return nil, fmt.Errorf("failed to read csv header: %w", err)
		}
	}

	for limit == NoLimit || len(points) < limit {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				s.skip(ctx, parseErr.StartLine, metrics.ReasonMalformed, err)
				continue
			}
			return nil, fmt.Errorf("failed to read csv record: %w", err)
		}

		line, _ := reader.FieldPos(0)
		point, reason, err := parseRecord(record)
		if err != nil {
			s.skip(ctx, line, reason, err)
			continue
		}
		points = append(points, point)
	}

	return points, nil
}

func (s *LocalFileSource) skip(ctx context.Context, line int, reason string, err error) {
	s.metrics.RowsSkipped.WithLabelValues(reason).Inc()
	s.log.WarnContext(ctx, "Skipping invalid row", "line", line, "reason", reason, "error", err)
}

// parseRecord extracts a point from a CSV record. On failure it also returns
// the skip reason used for metrics.
func parseRecord(record []string) (models.GeoPoint, string, error) {
	if len(record) < minFields {
		return models.GeoPoint{}, metrics.ReasonShortRow,
			fmt.Errorf("%w: got %d, want at least %d", ErrShortRecord, len(record), minFields)
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(record[latitudeField]), 64)
	if err != nil {
		return models.GeoPoint{}, metrics.ReasonParse, fmt.Errorf("invalid number format for latitude: %w", err)
	}

	lon, err := strconv.ParseFloat(strings.TrimSpace(record[longitudeField]), 64)
	if err != nil {
		return models.GeoPoint{}, metrics.ReasonParse, fmt.Errorf("invalid number format for longitude: %w", err)
	}

	point := models.GeoPoint{Latitude: lat, Longitude: lon}
	if !point.IsFinite() {
		return models.GeoPoint{}, metrics.ReasonNonFinite,
			fmt.Errorf("%w: lat=%v lon=%v", ErrNonFiniteCoordinate, lat, lon)
	}

	return point, "", nil
}

func firstRegularFile(files []*zip.File) *zip.File {
	for _, file := range files {
		if !file.FileInfo().IsDir() {
			return file
		}
	}

	return nil
}
