package repository

import (
	"context"
	"log/slog"

	"github.com/UnknownOlympus/geosketch/internal/models"
	"github.com/jackc/pgx/v5"
)

// Database is the subset of pgxpool.Pool used by the repository.
type Database interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type Repository struct {
	db  Database
	log *slog.Logger
}

type Interface interface {
	FetchCoordinates(ctx context.Context, table string, limit int) ([]models.GeoPoint, error)
}

// NewRepository creates a new instance of Repository with the provided Database.
// It returns a pointer to the newly created Repository.
func NewRepository(db Database, log *slog.Logger) *Repository {
	return &Repository{db: db, log: log}
}
