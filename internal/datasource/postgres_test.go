package datasource_test

import (
	"log/slog"
	"math"
	"testing"

	"github.com/UnknownOlympus/geosketch/internal/datasource"
	"github.com/UnknownOlympus/geosketch/internal/metrics"
	"github.com/UnknownOlympus/geosketch/internal/models"
	"github.com/UnknownOlympus/geosketch/test/mocks"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresSource_Load(t *testing.T) {
	ctx := t.Context()
	logger := slog.Default()

	t.Run("success", func(t *testing.T) {
		mockRepo := mocks.NewInterface(t)
		appMetrics := metrics.NewMetrics(prometheus.NewRegistry())
		source := datasource.NewPostgresSource(mockRepo, "geo_locations", logger, appMetrics)
		rows := []models.GeoPoint{{Latitude: 57.1, Longitude: -2.1}, {Latitude: 51.5, Longitude: -0.1}}

		mockRepo.On("FetchCoordinates", ctx, "geo_locations", 5).Return(rows, nil).Once()

		points, err := source.Load(ctx, 5)

		require.NoError(t, err)
		assert.Equal(t, rows, points)
		assert.InDelta(t, 2, testutil.ToFloat64(appMetrics.RecordsLoaded.WithLabelValues(metrics.SourceLabelPG)), 0)
	})

	t.Run("no limit is passed through", func(t *testing.T) {
		mockRepo := mocks.NewInterface(t)
		source := datasource.NewPostgresSource(mockRepo, "geo_locations", logger,
			metrics.NewMetrics(prometheus.NewRegistry()))

		mockRepo.On("FetchCoordinates", ctx, "geo_locations", datasource.NoLimit).
			Return([]models.GeoPoint{{Latitude: 1, Longitude: 2}}, nil).Once()

		points, err := source.Load(ctx, datasource.NoLimit)

		require.NoError(t, err)
		assert.Len(t, points, 1)
	})

	t.Run("non-finite rows are skipped", func(t *testing.T) {
		mockRepo := mocks.NewInterface(t)
		appMetrics := metrics.NewMetrics(prometheus.NewRegistry())
		source := datasource.NewPostgresSource(mockRepo, "geo_locations", logger, appMetrics)
		rows := []models.GeoPoint{
			{Latitude: math.NaN(), Longitude: 1},
			{Latitude: 3, Longitude: math.Inf(-1)},
			{Latitude: 4, Longitude: 5},
		}

		mockRepo.On("FetchCoordinates", ctx, "geo_locations", 3).Return(rows, nil).Once()

		points, err := source.Load(ctx, 3)

		require.NoError(t, err)
		assert.Equal(t, []models.GeoPoint{{Latitude: 4, Longitude: 5}}, points)
		assert.InDelta(t, 2, testutil.ToFloat64(appMetrics.RowsSkipped.WithLabelValues(metrics.ReasonNonFinite)), 0)
	})

	t.Run("repository error", func(t *testing.T) {
		mockRepo := mocks.NewInterface(t)
		source := datasource.NewPostgresSource(mockRepo, "geo_locations", logger,
			metrics.NewMetrics(prometheus.NewRegistry()))

		mockRepo.On("FetchCoordinates", ctx, "geo_locations", 5).Return(nil, assert.AnError).Once()

		points, err := source.Load(ctx, 5)

		require.Nil(t, points)
		require.ErrorIs(t, err, assert.AnError)
		require.ErrorContains(t, err, "failed to load coordinates from postgres")
	})

	t.Run("empty table", func(t *testing.T) {
		mockRepo := mocks.NewInterface(t)
		source := datasource.NewPostgresSource(mockRepo, "geo_locations", logger,
			metrics.NewMetrics(prometheus.NewRegistry()))

		mockRepo.On("FetchCoordinates", ctx, "geo_locations", 5).Return([]models.GeoPoint{}, nil).Once()

		points, err := source.Load(ctx, 5)

		require.Nil(t, points)
		require.ErrorIs(t, err, datasource.ErrNoValidRecords)
	})

	t.Run("invalid limit does not query", func(t *testing.T) {
		mockRepo := mocks.NewInterface(t)
		source := datasource.NewPostgresSource(mockRepo, "geo_locations", logger,
			metrics.NewMetrics(prometheus.NewRegistry()))

		points, err := source.Load(ctx, 0)

		require.Nil(t, points)
		require.ErrorIs(t, err, datasource.ErrInvalidLimit)
		mockRepo.AssertNotCalled(t, "FetchCoordinates")
	})
}
