package datasource

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/UnknownOlympus/geosketch/internal/metrics"
	"github.com/UnknownOlympus/geosketch/internal/repository"
)

// SourceType represents the type of data source.
type SourceType string

const (
	// SourceTypeLocal represents a zipped CSV file on the local disk.
	SourceTypeLocal SourceType = "local"
	// SourceTypePostgres represents a PostgreSQL table with latitude and longitude columns.
	SourceTypePostgres SourceType = "postgres"
)

// SourceConfig holds configuration for creating a data source.
type SourceConfig struct {
	Type        SourceType           // Type of source to create
	ArchivePath string               // Path of the zip archive (used by the local source)
	Repository  repository.Interface // Repository (used by the postgres source)
	Table       string               // Table name (used by the postgres source)
	Logger      *slog.Logger         // Logger for the source
	Metrics     *metrics.Metrics     // Metrics for the source
}

// NewSource creates a data source based on the provided configuration.
// The type is matched case-insensitively.
//
// Supported source types:
// - "local": zipped CSV file, requires ArchivePath
// - "postgres": PostgreSQL table, requires Repository and Table
//
// Returns an error if the source type is unsupported or if required settings are missing.
func NewSource(config SourceConfig) (Source, error) {
	switch SourceType(strings.ToLower(string(config.Type))) {
	case SourceTypeLocal:
		return newLocalFileSource(config)
	case SourceTypePostgres:
		return newPostgresSource(config)
	default:
		return nil, fmt.Errorf("unsupported source type: %s", config.Type)
	}
}

func newLocalFileSource(config SourceConfig) (Source, error) {
	if config.ArchivePath == "" {
		return nil, errors.New("archive path is required for local source")
	}

	return NewLocalFileSource(config.ArchivePath, config.Logger, config.Metrics), nil
}

func newPostgresSource(config SourceConfig) (Source, error) {
	if config.Repository == nil {
		return nil, errors.New("repository is required for postgres source")
	}

	if config.Table == "" {
		return nil, errors.New("table is required for postgres source")
	}

	return NewPostgresSource(config.Repository, config.Table, config.Logger, config.Metrics), nil
}
