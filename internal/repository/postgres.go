package repository

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strings"

	"github.com/UnknownOlympus/geosketch/internal/config"
	"github.com/UnknownOlympus/geosketch/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const fetchCoordinatesQuery = `
		SELECT latitude, longitude
		FROM %s
		WHERE
			latitude IS NOT NULL
			AND longitude IS NOT NULL
		LIMIT $1;
	`

// NewDatabase opens a connection pool to PostgreSQL and verifies it with a ping.
func NewDatabase(ctx context.Context, cfg config.PostgresConfig) (*pgxpool.Pool, error) {
	dsn := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(cfg.User, cfg.Password),
		Host:   net.JoinHostPort(cfg.Host, cfg.Port),
		Path:   cfg.Name,
	}

	pool, err := pgxpool.New(ctx, dsn.String())
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return pool, nil
}

// FetchCoordinates retrieves latitude/longitude pairs from the given table.
// Rows with a NULL coordinate are excluded. A limit of zero or less reads every row.
//
// Parameters:
// - ctx: The context for the operation, allowing for cancellation and timeout.
// - table: The table name, optionally schema-qualified ("public.postcodes").
// - limit: The maximum number of rows to retrieve.
//
// Returns:
// - A slice of models.GeoPoint in the order returned by the database.
// - An error if the query fails or if there is an issue scanning the results.
func (r *Repository) FetchCoordinates(ctx context.Context, table string, limit int) ([]models.GeoPoint, error) {
	var points []models.GeoPoint
	query := fmt.Sprintf(fetchCoordinatesQuery, QuoteTable(table))

	// LIMIT NULL is the same as omitting the clause.
	var limitArg any
	if limit > 0 {
		limitArg = limit
	}

	rows, err := r.db.Query(ctx, query, limitArg)
	if err != nil {
		return nil, fmt.Errorf("failed to query coordinates: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var point models.GeoPoint
		if errScan := rows.Scan(&point.Latitude, &point.Longitude); errScan != nil {
			return nil, fmt.Errorf("failed to scan coordinates: %w", errScan)
		}
		points = append(points, point)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read row: %w", err)
	}

	r.log.DebugContext(ctx, "Coordinates fetched from database", "table", table, "count", len(points))

	return points, nil
}

// QuoteTable sanitizes a possibly schema-qualified table name for use in a query.
func QuoteTable(table string) string {
	return pgx.Identifier(strings.Split(table, ".")).Sanitize()
}
