package repository_test

import (
	"log/slog"
	"regexp"
	"testing"

	"github.com/UnknownOlympus/geosketch/internal/models"
	"github.com/UnknownOlympus/geosketch/internal/repository"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fetchCoordinatesQuery = `
		SELECT latitude, longitude
		FROM "geo_locations"
		WHERE
			latitude IS NOT NULL
			AND longitude IS NOT NULL
		LIMIT $1;
	`

func TestFetchCoordinates(t *testing.T) {
	t.Parallel()
	logger := slog.Default()
	ctx := t.Context()
	limit := 10

	t.Run("error - query coordinates", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectQuery(regexp.QuoteMeta(fetchCoordinatesQuery)).
			WithArgs(limit).
			WillReturnError(assert.AnError)

		points, err := repo.FetchCoordinates(ctx, "geo_locations", limit)

		require.Nil(t, points)
		require.Error(t, err)
		require.ErrorContains(t, err, "failed to query coordinates")
		require.ErrorIs(t, err, assert.AnError)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error - scan coordinates", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectQuery(regexp.QuoteMeta(fetchCoordinatesQuery)).
			WithArgs(limit).
			WillReturnRows(
				pgxmock.NewRows([]string{"latitude", "longitude"}).AddRow("north", 1.5),
			)

		points, err := repo.FetchCoordinates(ctx, "geo_locations", limit)

		require.Nil(t, points)
		require.Error(t, err)
		require.ErrorContains(t, err, "failed to scan coordinates")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error - rows error", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectQuery(regexp.QuoteMeta(fetchCoordinatesQuery)).
			WithArgs(limit).
			WillReturnRows(
				pgxmock.NewRows([]string{"latitude", "longitude"}).AddRow(57.1, -2.2).
					RowError(1, assert.AnError),
			)

		points, err := repo.FetchCoordinates(ctx, "geo_locations", limit)

		require.Nil(t, points)
		require.Error(t, err)
		require.ErrorContains(t, err, "failed to read row")
		require.ErrorIs(t, err, assert.AnError)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success - fetch coordinates", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectQuery(regexp.QuoteMeta(fetchCoordinatesQuery)).
			WithArgs(limit).
			WillReturnRows(
				pgxmock.NewRows([]string{"latitude", "longitude"}).
					AddRow(57.144165, -2.114848).
					AddRow(57.137880, -2.121487),
			)

		points, err := repo.FetchCoordinates(ctx, "geo_locations", limit)

		require.NoError(t, err)
		assert.Equal(t, []models.GeoPoint{
			{Latitude: 57.144165, Longitude: -2.114848},
			{Latitude: 57.137880, Longitude: -2.121487},
		}, points)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success - no limit passes NULL", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectQuery(regexp.QuoteMeta(fetchCoordinatesQuery)).
			WithArgs(nil).
			WillReturnRows(
				pgxmock.NewRows([]string{"latitude", "longitude"}).AddRow(51.5, -0.12),
			)

		points, err := repo.FetchCoordinates(ctx, "geo_locations", -1)

		require.NoError(t, err)
		assert.Len(t, points, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestQuoteTable(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `"geo_locations"`, repository.QuoteTable("geo_locations"))
	assert.Equal(t, `"public"."postcodes"`, repository.QuoteTable("public.postcodes"))
	assert.Equal(t, `"bad""name"`, repository.QuoteTable(`bad"name`))
}
