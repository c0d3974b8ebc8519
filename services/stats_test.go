package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/restsoft-app/restsoft-pos/models"
)

func statOrders(now time.Time) []models.Order {
	return []models.Order{
		{ID: 1, Total: 1000, Origin: models.OriginSalon, PlacedAt: now.Add(-1 * time.Hour)},
		{ID: 2, Total: 500, Origin: models.OriginDelivery, PlacedAt: now.Add(-2 * time.Hour)},
		{ID: 3, Total: 700, Origin: models.OriginCounter, PlacedAt: now.Add(-26 * time.Hour)},
		{ID: 4, Total: 300, Origin: models.OriginSalon, PlacedAt: now.AddDate(0, 0, -40)},
	}
}

func TestAggregateDayWindow(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 30, 18, 30, 0, 0, time.UTC)
	report, err := Aggregate(statOrders(now), PeriodDay, "", now)
	require.NoError(t, err)

	require.Len(t, report.Buckets, 24)
	// only the two orders inside the last 24 hours count
	assert.Equal(t, 2, report.OrderCount)
	assert.Equal(t, 1500.0, report.GrandTotal)
}

func TestAggregateWeekSpanishLabels(t *testing.T) {
	t.Parallel()

	// a Sunday, so the last bucket is Domingo
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	report, err := Aggregate(nil, PeriodWeek, "", now)
	require.NoError(t, err)

	require.Len(t, report.Buckets, 7)
	assert.Equal(t, "Lunes", report.Buckets[0].Label)
	assert.Equal(t, "Domingo", report.Buckets[6].Label)
}

func TestAggregateOriginFilter(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 30, 18, 30, 0, 0, time.UTC)
	report, err := Aggregate(statOrders(now), PeriodDay, models.OriginDelivery, now)
	require.NoError(t, err)

	assert.Equal(t, 1, report.OrderCount)
	assert.Equal(t, 500.0, report.GrandTotal)
}

func TestAggregateOriginBreakdown(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 30, 18, 30, 0, 0, time.UTC)
	report, err := Aggregate(statOrders(now), PeriodMonth, "", now)
	require.NoError(t, err)

	var salon, delivery, counter float64
	for _, b := range report.Buckets {
		salon += b.Salon
		delivery += b.Delivery
		counter += b.Counter
	}
	assert.Equal(t, 1000.0, salon)
	assert.Equal(t, 500.0, delivery)
	assert.Equal(t, 700.0, counter)
	assert.Equal(t, report.GrandTotal, salon+delivery+counter)
}

func TestAggregateYearTwelveMonths(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	report, err := Aggregate(nil, PeriodYear, "", now)
	require.NoError(t, err)

	require.Len(t, report.Buckets, 12)
	assert.Equal(t, "Sep", report.Buckets[0].Label)
	assert.Equal(t, "Ago", report.Buckets[11].Label)
}

func TestAggregateRejectsUnknownPeriodAndOrigin(t *testing.T) {
	t.Parallel()

	now := time.Now()
	_, err := Aggregate(nil, "decade", "", now)
	assert.True(t, errors.Is(err, ErrValidation))

	_, err = Aggregate(nil, PeriodDay, "drive-thru", now)
	assert.True(t, errors.Is(err, ErrValidation))
}
